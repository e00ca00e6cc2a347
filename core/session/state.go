package session

// State tracks where the student is in the app and who they are talking
// to. It is a single-user session, no locking needed.
type State struct {
	view           View
	LoggedIn       bool
	Anonymous      bool
	ActiveChatUser string
	ActiveGroup    string
}

func NewState() *State {
	return &State{view: ViewWelcome}
}

func (s *State) View() View { return s.view }

func (s *State) Goto(v View) { s.view = v }

// Back leaves the current screen.
func (s *State) Back() { s.view = Back(s.view) }

// NavVisible reports whether the navigation chrome shows on the current
// screen.
func (s *State) NavVisible() bool { return ShowNav(s.view, s.LoggedIn) }

// SignIn moves a freshly authenticated student to the dashboard.
func (s *State) SignIn() {
	s.LoggedIn = true
	s.view = ViewDashboard
}

// SignOut drops the session and returns to the welcome screen.
func (s *State) SignOut() {
	s.LoggedIn = false
	s.Anonymous = false
	s.ActiveChatUser = ""
	s.ActiveGroup = ""
	s.view = ViewWelcome
}

// OpenChat starts a private chat with the named friend.
func (s *State) OpenChat(name string) {
	s.ActiveChatUser = name
	s.view = ViewChatRoom
}

// OpenGroupChat enters the named group's chat.
func (s *State) OpenGroupChat(name string) {
	s.ActiveGroup = name
	s.view = ViewGroupChat
}
