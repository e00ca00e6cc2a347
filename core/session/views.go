package session

// View identifies a screen in the app.
type View int

const (
	ViewWelcome View = iota
	ViewLogin
	ViewRegister
	ViewForgotPassword
	ViewDashboard
	ViewExplore
	ViewMyGroups
	ViewStudyPlanner
	ViewShareNotes
	ViewStudyRoom
	ViewProfile
	ViewNotifications
	ViewChatRoom
	ViewGroupChat
	ViewHelp
)

var viewNames = map[View]string{
	ViewWelcome:        "WELCOME",
	ViewLogin:          "LOGIN",
	ViewRegister:       "REGISTER",
	ViewForgotPassword: "FORGOT_PASSWORD",
	ViewDashboard:      "DASHBOARD",
	ViewExplore:        "EXPLORE",
	ViewMyGroups:       "MY_GROUPS",
	ViewStudyPlanner:   "STUDY_PLANNER",
	ViewShareNotes:     "SHARE_NOTES",
	ViewStudyRoom:      "STUDY_ROOM",
	ViewProfile:        "PROFILE",
	ViewNotifications:  "NOTIFICATIONS",
	ViewChatRoom:       "CHAT_ROOM",
	ViewGroupChat:      "GROUP_CHAT",
	ViewHelp:           "HELP",
}

func (v View) String() string {
	if name, ok := viewNames[v]; ok {
		return name
	}
	return "UNKNOWN"
}

// Back resolves where leaving a screen lands. The auth screens fall back
// to the welcome screen, chats return to where they were opened from,
// everything else lands on the dashboard.
func Back(from View) View {
	switch from {
	case ViewLogin, ViewRegister, ViewForgotPassword:
		return ViewWelcome
	case ViewChatRoom:
		return ViewNotifications
	case ViewGroupChat:
		return ViewMyGroups
	default:
		return ViewDashboard
	}
}

// ShowNav reports whether the navigation chrome is visible on a screen.
// It never shows while logged out, in a chat, or on the auth and help
// screens.
func ShowNav(v View, loggedIn bool) bool {
	if !loggedIn {
		return false
	}
	switch v {
	case ViewWelcome, ViewLogin, ViewRegister, ViewForgotPassword, ViewChatRoom, ViewGroupChat, ViewHelp:
		return false
	}
	return true
}
