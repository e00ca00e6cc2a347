package main

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/chzyer/readline"

	"github.com/studymate/studymate/core"
	"github.com/studymate/studymate/core/chat"
	"github.com/studymate/studymate/core/groups"
	"github.com/studymate/studymate/core/notes"
	"github.com/studymate/studymate/core/planner"
	"github.com/studymate/studymate/core/session"
	"github.com/studymate/studymate/core/user"
)

func (a *app) run(ctx context.Context) error {
	fmt.Printf("%s - your studies, your mates. Type 'help' to get started.\n", a.conf.AppName)
	a.restoreSession(ctx)

	for {
		a.rl.SetPrompt(a.promptString())
		line, err := a.rl.Readline()
		if err == readline.ErrInterrupt {
			continue
		} else if err == io.EOF {
			return nil
		} else if err != nil {
			return err
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		args := strings.Fields(line)

		if args[0] == "exit" || args[0] == "quit" {
			fmt.Println("Goodbye!")
			return nil
		}

		if a.state.LoggedIn {
			err = a.execute(ctx, args)
		} else {
			err = a.executeAnonymousCmd(ctx, args)
		}
		switch {
		case err == io.EOF:
			return nil
		case err != nil:
			a.logger.Error(fmt.Sprintf("command failed: %v", err), err)
			fmt.Println("Something went wrong. Check the logs.")
		}
	}
}

func (a *app) executeAnonymousCmd(ctx context.Context, args []string) error {
	switch args[0] {
	case "login":
		email := ""
		if len(args) > 1 {
			email = args[1]
		}
		return a.login(ctx, email)
	case "register":
		return a.register(ctx)
	case "forgot":
		return a.forgotPassword(ctx)
	case "help":
		fmt.Println("Commands: login [email], register, forgot, exit")
	default:
		fmt.Println("Sign in first. Commands: login, register, forgot, exit")
	}
	return nil
}

func (a *app) execute(ctx context.Context, args []string) error {
	cmd, rest := args[0], args[1:]
	switch cmd {
	case "help":
		a.printHelp()
	case "task", "tasks":
		return a.handleTasks(ctx, rest)
	case "schedule":
		return a.handleSchedule(ctx, rest)
	case "note", "notes":
		return a.handleNotes(ctx, rest)
	case "library":
		a.handleLibrary()
	case "explore":
		return a.handleExplore(ctx, rest)
	case "groups":
		a.handleMyGroups()
	case "friends":
		a.handleFriends()
	case "inbox":
		return a.handleInbox(ctx, rest)
	case "chat":
		return a.handleChat(ctx, strings.Join(rest, " "))
	case "groupchat":
		return a.handleGroupChat(ctx, strings.Join(rest, " "))
	case "summarize":
		return a.handleSummarize(ctx, rest)
	case "quiz":
		return a.handleQuiz(ctx, rest)
	case "advice":
		a.handleAdvice(ctx, strings.Join(rest, " "))
	case "profile":
		return a.handleProfile(ctx, rest)
	case "anon":
		a.state.Anonymous = !a.state.Anonymous
		if a.state.Anonymous {
			fmt.Println("Anonymous mode on. Your nickname is hidden.")
		} else {
			fmt.Println("Anonymous mode off.")
		}
	case "logout":
		a.logout(ctx)
	default:
		fmt.Printf("Unknown command %q. Type 'help' for the list.\n", cmd)
	}
	return nil
}

func (a *app) printHelp() {
	fmt.Println(`Study planner:
  tasks                     list tasks
  task add <text>           add a task
  task done <n>             toggle task #n
  task rm <n>               delete task #n
  schedule                  show the class schedule
  schedule add <title> [time]
  schedule rm <n>

Notes:
  notes                     list my notes
  note add                  post a new note
  note rm <n>               delete note #n
  library                   notes shared by friends
  summarize <n>             summarize note #n
  quiz <n>                  quiz me on note #n
  advice <subject>          study tips for a subject

Find your mates:
  explore groups|friends|notes [query]
  groups                    my study groups
  friends                   my friends
  inbox                     notifications and friend requests
  inbox accept|decline <n>
  chat <friend>             private chat
  groupchat <group>         group chat

Account:
  profile                   show my profile
  profile edit              change nickname or email
  anon                      toggle anonymous mode
  logout, exit`)
}

// ---- study planner ----

func (a *app) handleTasks(ctx context.Context, args []string) error {
	a.state.Goto(session.ViewStudyPlanner)
	if len(args) == 0 {
		tasks := a.planSvc.Tasks()
		if len(tasks) == 0 {
			fmt.Println("No tasks yet. Use 'task add <text>'.")
			return nil
		}
		for i, task := range tasks {
			mark := " "
			if task.Completed {
				mark = "x"
			}
			fmt.Printf("%2d. [%s] %s\n", i+1, mark, task.Text)
		}
		return nil
	}

	switch args[0] {
	case "add":
		task, err := a.planSvc.AddTask(ctx, strings.Join(args[1:], " "))
		if err != nil {
			return a.report(err)
		}
		fmt.Printf("Added %q.\n", task.Text)
	case "done":
		task, ok := a.pickTask(args[1:])
		if !ok {
			return nil
		}
		toggled, err := a.planSvc.ToggleTask(ctx, task.ID)
		if err != nil {
			return a.report(err)
		}
		if toggled.Completed {
			fmt.Printf("Done: %q.\n", toggled.Text)
		} else {
			fmt.Printf("Reopened: %q.\n", toggled.Text)
		}
	case "rm":
		task, ok := a.pickTask(args[1:])
		if !ok {
			return nil
		}
		if err := a.planSvc.DeleteTask(ctx, task.ID); err != nil {
			return a.report(err)
		}
		fmt.Printf("Removed %q.\n", task.Text)
	default:
		fmt.Println("Usage: task add <text> | task done <n> | task rm <n>")
	}
	return nil
}

func (a *app) pickTask(args []string) (planner.Task, bool) {
	tasks := a.planSvc.Tasks()
	n, valid := pickIndex(args, len(tasks))
	if !valid {
		fmt.Println("Give a task number from 'tasks'.")
		return planner.Task{}, false
	}
	return tasks[n], true
}

func (a *app) handleSchedule(ctx context.Context, args []string) error {
	a.state.Goto(session.ViewStudyPlanner)
	if len(args) == 0 {
		items := a.planSvc.Schedule()
		if len(items) == 0 {
			fmt.Println("Nothing scheduled. Use 'schedule add <title> [time]'.")
			return nil
		}
		for i, item := range items {
			fmt.Printf("%2d. %s %s - %s\n", i+1, item.Day, item.Time, item.Title)
		}
		return nil
	}

	switch args[0] {
	case "add":
		if len(args) < 2 {
			fmt.Println("Usage: schedule add <title> [time]")
			return nil
		}
		title := args[1]
		timeSlot := strings.Join(args[2:], " ")
		item, err := a.planSvc.AddScheduleItem(ctx, title, timeSlot)
		if err != nil {
			return a.report(err)
		}
		fmt.Printf("Scheduled %q on %s at %s.\n", item.Title, item.Day, item.Time)
	case "rm":
		items := a.planSvc.Schedule()
		n, valid := pickIndex(args[1:], len(items))
		if !valid {
			fmt.Println("Give an item number from 'schedule'.")
			return nil
		}
		if err := a.planSvc.DeleteScheduleItem(ctx, items[n].ID); err != nil {
			return a.report(err)
		}
		fmt.Printf("Removed %q.\n", items[n].Title)
	default:
		fmt.Println("Usage: schedule add <title> [time] | schedule rm <n>")
	}
	return nil
}

// ---- notes ----

func (a *app) handleNotes(ctx context.Context, args []string) error {
	a.state.Goto(session.ViewShareNotes)
	if len(args) == 0 {
		all := a.noteSvc.All()
		if len(all) == 0 {
			fmt.Println("You haven't posted any notes yet. Use 'note add'.")
			return nil
		}
		for i, n := range all {
			fmt.Printf("%2d. %s (%s)\n", i+1, n.Title, n.Subject)
		}
		return nil
	}

	switch args[0] {
	case "add":
		title, err := a.prompt("Title: ")
		if err != nil {
			return err
		}
		content, err := a.prompt("Content: ")
		if err != nil {
			return err
		}
		author := "Me"
		if profile, ok := a.usrSvc.Active(); ok && !a.state.Anonymous {
			author = profile.Nickname
		}
		if _, err = a.noteSvc.Add(ctx, title, content, author); err != nil {
			return a.report(err)
		}
		fmt.Println("Notes uploaded!")
	case "rm":
		all := a.noteSvc.All()
		n, valid := pickIndex(args[1:], len(all))
		if !valid {
			fmt.Println("Give a note number from 'notes'.")
			return nil
		}
		if err := a.noteSvc.Delete(ctx, all[n].ID); err != nil {
			return a.report(err)
		}
		fmt.Printf("Removed %q.\n", all[n].Title)
	default:
		fmt.Println("Usage: note add | note rm <n>")
	}
	return nil
}

func (a *app) handleLibrary() {
	a.state.Goto(session.ViewShareNotes)
	profile, ok := a.usrSvc.Active()
	if !ok {
		return
	}
	shared := notes.FriendLibrary(profile.Friends)
	if len(shared) == 0 {
		fmt.Println("No friends' notes available. Add friends in 'explore' to see their shared study material!")
		return
	}
	for _, n := range shared {
		fmt.Printf("- %s (%s * %s)\n", n.Title, n.Author, n.Code)
	}
}

// ---- explore ----

func (a *app) handleExplore(ctx context.Context, args []string) error {
	a.state.Goto(session.ViewExplore)
	if len(args) == 0 {
		fmt.Println("Usage: explore groups|friends|notes [query]")
		return nil
	}
	query := strings.Join(args[1:], " ")

	switch args[0] {
	case "groups":
		found := groups.Search(query)
		if len(found) == 0 {
			fmt.Println("No study groups found...")
			return nil
		}
		for _, g := range found {
			mark := " "
			if a.groupSvc.IsJoined(g) {
				mark = "+"
			}
			fmt.Printf(" [%s] %s\n", mark, g)
		}
		if g, err := a.prompt("Toggle membership of (blank to skip): "); err != nil {
			return err
		} else if g != "" {
			joined, err := a.groupSvc.Toggle(ctx, g)
			if err != nil {
				return a.report(err)
			}
			if joined {
				fmt.Printf("Joined %q.\n", g)
			} else {
				fmt.Printf("Left %q.\n", g)
			}
		}
	case "friends":
		profile, _ := a.usrSvc.Active()
		found := user.SearchStudents(query)
		if len(found) == 0 {
			fmt.Println("No students found...")
			return nil
		}
		for _, f := range found {
			mark := " "
			if profile.HasFriend(f) {
				mark = "+"
			}
			fmt.Printf(" [%s] %s\n", mark, f)
		}
		if name, err := a.prompt("Send friend request to (blank to skip): "); err != nil {
			return err
		} else if name != "" {
			if err := a.notifSvc.RequestFriend(name); err != nil {
				fmt.Println("Request already pending.")
				return nil
			}
			fmt.Printf("Friend request sent to %s.\n", name)
		}
	case "notes":
		found := notes.SearchCatalog(query)
		if len(found) == 0 {
			fmt.Println("No notes found...")
			return nil
		}
		for i, n := range found {
			fmt.Printf("%2d. %s (%s * %s)\n", i+1, n.Title, n.Author, n.Code)
		}
		if pick, err := a.prompt("Open note number (blank to skip): "); err != nil {
			return err
		} else if pick != "" {
			n, valid := pickIndex([]string{pick}, len(found))
			if !valid {
				return nil
			}
			fmt.Printf("\n%s\n%s * %s\n\n%s\n", found[n].Title, found[n].Author, found[n].Code, found[n].Content)
		}
	default:
		fmt.Println("Usage: explore groups|friends|notes [query]")
	}
	return nil
}

func (a *app) handleMyGroups() {
	a.state.Goto(session.ViewMyGroups)
	joined := a.groupSvc.Joined()
	if len(joined) == 0 {
		fmt.Println("You haven't joined any groups. Try 'explore groups'.")
		return
	}
	for _, g := range joined {
		fmt.Printf("- %s\n", g)
	}
}

func (a *app) handleFriends() {
	profile, ok := a.usrSvc.Active()
	if !ok {
		return
	}
	if len(profile.Friends) == 0 {
		fmt.Println("No friends yet. Try 'explore friends'.")
		return
	}
	for _, f := range profile.Friends {
		fmt.Printf("- %s\n", f)
	}
}

// ---- notifications ----

func (a *app) handleInbox(ctx context.Context, args []string) error {
	a.state.Goto(session.ViewNotifications)

	if len(args) > 0 {
		requests := a.notifSvc.FriendRequests()
		n, valid := pickIndex(args[1:], len(requests))
		if !valid {
			fmt.Println("Give a request number from 'inbox'.")
			return nil
		}
		switch args[0] {
		case "accept":
			if err := a.notifSvc.Accept(ctx, requests[n].ID); err != nil {
				return a.report(err)
			}
			fmt.Printf("You and %s are now friends.\n", requests[n].Sender)
		case "decline":
			if err := a.notifSvc.Decline(requests[n].ID); err != nil {
				return a.report(err)
			}
			fmt.Println("Request declined.")
		default:
			fmt.Println("Usage: inbox [accept|decline <n>]")
		}
		return nil
	}

	requests := a.notifSvc.FriendRequests()
	fmt.Printf("Friend requests (%d)\n", len(requests))
	for i, r := range requests {
		fmt.Printf("%2d. %s %s (%s)\n", i+1, r.Sender, r.Message, r.Time)
	}
	if len(requests) == 0 {
		fmt.Println("    No pending requests")
	}

	messages := a.notifSvc.Messages()
	fmt.Println("Direct messages")
	for _, m := range messages {
		fmt.Printf("    %s: %s (%s)\n", m.Sender, m.Message, m.Time)
	}
	if len(messages) == 0 {
		fmt.Println("    Your inbox is empty")
	}

	a.notifSvc.MarkSeen()
	return nil
}

// ---- chat ----

func (a *app) handleChat(ctx context.Context, friend string) error {
	if friend == "" {
		fmt.Println("Usage: chat <friend>")
		return nil
	}
	profile, ok := a.usrSvc.Active()
	if !ok || !profile.HasFriend(friend) {
		fmt.Printf("%s is not in your friends list yet.\n", friend)
		return nil
	}
	a.state.OpenChat(friend)
	defer a.state.Back()
	return a.chatLoop(ctx, chat.NewConversation(a.gen, friend), friend)
}

func (a *app) handleGroupChat(ctx context.Context, group string) error {
	if group == "" {
		fmt.Println("Usage: groupchat <group>")
		return nil
	}
	if !a.groupSvc.IsJoined(group) {
		fmt.Printf("Join %q first ('explore groups').\n", group)
		return nil
	}
	a.state.OpenGroupChat(group)
	defer a.state.Back()
	return a.chatLoop(ctx, chat.NewGroupConversation(a.gen, group, groups.Members(group)), group)
}

func (a *app) chatLoop(ctx context.Context, conv *chat.Conversation, label string) error {
	fmt.Printf("Chatting in %q. Type '/back' to leave.\n", label)
	for {
		line, err := a.prompt("you> ")
		if err == io.EOF {
			return nil
		} else if err != nil {
			return err
		}
		if line == "/back" {
			return nil
		}
		if line == "" {
			continue
		}
		reply, err := conv.Send(ctx, line)
		if err != nil {
			fmt.Println(err)
			continue
		}
		name := reply.SenderName
		if name == "" {
			name = label
		}
		fmt.Printf("%s [%s]: %s\n", name, reply.Timestamp, reply.Text)
	}
}

// ---- study tools ----

func (a *app) handleSummarize(ctx context.Context, args []string) error {
	a.state.Goto(session.ViewStudyRoom)
	note, ok := a.pickNote(args)
	if !ok {
		return nil
	}
	room := chat.NewStudyRoom(a.gen)
	fmt.Println(room.Summarize(ctx, note.Content))
	return nil
}

func (a *app) handleQuiz(ctx context.Context, args []string) error {
	a.state.Goto(session.ViewStudyRoom)
	note, ok := a.pickNote(args)
	if !ok {
		return nil
	}
	room := chat.NewStudyRoom(a.gen)
	questions := room.Quiz(ctx, note.Content)
	if len(questions) == 0 {
		fmt.Println("Could not build a quiz from that note.")
		return nil
	}
	score := 0
	for i, q := range questions {
		fmt.Printf("\nQ%d. %s\n", i+1, q.Question)
		for j, opt := range q.Options {
			fmt.Printf("  %d) %s\n", j+1, opt)
		}
		answer, err := a.prompt("Your answer: ")
		if err != nil {
			return err
		}
		if n, convErr := strconv.Atoi(answer); convErr == nil && n-1 == q.CorrectAnswer {
			score++
			fmt.Println("Correct!")
		} else if q.CorrectAnswer >= 0 && q.CorrectAnswer < len(q.Options) {
			fmt.Printf("Not quite. It was: %s\n", q.Options[q.CorrectAnswer])
		}
	}
	fmt.Printf("\nYou scored %d/%d.\n", score, len(questions))
	return nil
}

func (a *app) handleAdvice(ctx context.Context, subject string) {
	if subject == "" {
		fmt.Println("Usage: advice <subject>")
		return
	}
	a.state.Goto(session.ViewStudyRoom)
	room := chat.NewStudyRoom(a.gen)
	fmt.Println(room.Advice(ctx, subject))
}

func (a *app) pickNote(args []string) (notes.Note, bool) {
	all := a.noteSvc.All()
	n, valid := pickIndex(args, len(all))
	if !valid {
		fmt.Println("Give a note number from 'notes'.")
		return notes.Note{}, false
	}
	return all[n], true
}

// ---- profile ----

func (a *app) handleProfile(ctx context.Context, args []string) error {
	a.state.Goto(session.ViewProfile)
	profile, ok := a.usrSvc.Active()
	if !ok {
		return nil
	}

	if len(args) == 0 {
		fmt.Printf("Nickname: %s\nEmail: %s\nFriends: %d\nGroups: %d\nNotes: %d\n",
			profile.Nickname, profile.Email, len(profile.Friends), len(a.groupSvc.Joined()), len(a.noteSvc.All()))
		return nil
	}
	if args[0] != "edit" {
		fmt.Println("Usage: profile [edit]")
		return nil
	}

	nickname, err := a.prompt(fmt.Sprintf("Nickname [%s]: ", profile.Nickname))
	if err != nil {
		return err
	}
	email, err := a.prompt(fmt.Sprintf("Email [%s]: ", profile.Email))
	if err != nil {
		return err
	}
	updated, err := a.usrSvc.UpdateActive(ctx, user.UpdateProfile{Nickname: nickname, Email: email})
	if err != nil {
		return a.report(err)
	}
	if err = a.sessions.Save(ctx, updated.Email); err != nil {
		a.logger.Warn("saving session", "err", err)
	}
	fmt.Println("Profile saved.")
	return nil
}

// report prints expected user-facing failures and passes the rest up.
func (a *app) report(err error) error {
	if core.IsValidationError(err) {
		fmt.Println(err)
		return nil
	}
	if core.IsPersistenceError(err) {
		fmt.Println("Could not save that change. Your data is unchanged.")
		a.logger.Error(fmt.Sprintf("persisting change: %v", err), err)
		return nil
	}
	return err
}

// pickIndex parses a 1-based list index from args.
func pickIndex(args []string, size int) (int, bool) {
	if len(args) == 0 {
		return 0, false
	}
	n, err := strconv.Atoi(args[0])
	if err != nil || n < 1 || n > size {
		return 0, false
	}
	return n - 1, true
}
