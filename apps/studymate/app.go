package main

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"syscall"
	"time"

	"github.com/chzyer/readline"
	"golang.org/x/term"

	"github.com/studymate/studymate/core"
	"github.com/studymate/studymate/core/chat"
	"github.com/studymate/studymate/core/groups"
	"github.com/studymate/studymate/core/notes"
	"github.com/studymate/studymate/core/notify"
	"github.com/studymate/studymate/core/planner"
	"github.com/studymate/studymate/core/session"
	"github.com/studymate/studymate/core/user"
)

var readPasswordFunc = term.ReadPassword // mockable

type app struct {
	conf   *core.Config
	logger core.Logger
	rl     *readline.Instance

	usrSvc   user.Service
	planSvc  planner.Service
	noteSvc  notes.Service
	groupSvc groups.Service
	notifSvc notify.Service
	mailSvc  core.EmailService
	gen      chat.Generator
	sessions *session.Manager

	state *session.State
}

func newApp(
	conf *core.Config,
	logger core.Logger,
	rl *readline.Instance,
	usrSvc user.Service,
	planSvc planner.Service,
	noteSvc notes.Service,
	groupSvc groups.Service,
	notifSvc notify.Service,
	mailSvc core.EmailService,
	gen chat.Generator,
	sessions *session.Manager,
) *app {
	return &app{
		conf:     conf,
		logger:   logger,
		rl:       rl,
		usrSvc:   usrSvc,
		planSvc:  planSvc,
		noteSvc:  noteSvc,
		groupSvc: groupSvc,
		notifSvc: notifSvc,
		mailSvc:  mailSvc,
		gen:      gen,
		sessions: sessions,
		state:    session.NewState(),
	}
}

// restoreSession signs the student back in from a saved session token.
func (a *app) restoreSession(ctx context.Context) {
	email, ok := a.sessions.Restore(ctx)
	if !ok {
		return
	}
	profile, err := a.usrSvc.RecoverByEmail(ctx, email)
	if err != nil {
		a.logger.Debug("saved session refers to an unknown account", "email", email)
		return
	}
	a.state.SignIn()
	fmt.Printf("Welcome back, %s!\n", profile.Nickname)
}

func (a *app) login(ctx context.Context, email string) error {
	if email == "" {
		var err error
		if email, err = a.prompt("Email: "); err != nil {
			return err
		}
	}
	pwd, err := a.promptPassword("Password: ")
	if err != nil {
		return err
	}

	profile, err := a.usrSvc.Login(ctx, email, pwd)
	if err != nil {
		if errors.Is(err, user.ErrInvalidCredentials) {
			fmt.Println("Invalid email or password.")
			return nil
		}
		return err
	}
	if err = a.sessions.Save(ctx, profile.Email); err != nil {
		a.logger.Warn("saving session", "err", err)
	}
	a.state.SignIn()
	fmt.Printf("Welcome back, %s!\n", profile.Nickname)
	return nil
}

func (a *app) register(ctx context.Context) error {
	nickname, err := a.prompt("Nickname: ")
	if err != nil {
		return err
	}
	email, err := a.prompt("Email: ")
	if err != nil {
		return err
	}
	pwd, err := a.promptPassword("Password: ")
	if err != nil {
		return err
	}
	confirm, err := a.promptPassword("Confirm password: ")
	if err != nil {
		return err
	}

	profile, err := a.usrSvc.Register(ctx, user.NewProfile{
		Nickname:        nickname,
		Email:           email,
		Password:        pwd,
		PasswordConfirm: confirm,
	})
	if err != nil {
		if core.IsValidationError(err) || errors.Is(err, user.ErrEmailExists) {
			fmt.Println(err)
			return nil
		}
		return err
	}
	if err = a.sessions.Save(ctx, profile.Email); err != nil {
		a.logger.Warn("saving session", "err", err)
	}
	a.state.SignIn()
	fmt.Printf("Account created. Welcome, %s!\n", profile.Nickname)
	return nil
}

// forgotPassword walks the email and code verification steps, then signs
// the student in.
func (a *app) forgotPassword(ctx context.Context) error {
	recovery := user.NewRecovery(a.usrSvc, a.mailSvc, a.conf, a.logger)

	email, err := a.prompt("Account email: ")
	if err != nil {
		return err
	}
	if err = recovery.Start(ctx, email); err != nil {
		if errors.Is(err, user.ErrNotFound) {
			fmt.Println("No account with that email.")
			return nil
		}
		if errors.Is(err, user.ErrMailDispatch) {
			fmt.Println("Could not send the recovery email. Try again later.")
			return nil
		}
		return err
	}
	fmt.Println("A 6-digit code was sent to your inbox. It expires in 1 hour.")

	for recovery.State() == user.StateCodeVerification {
		code, err := a.prompt(fmt.Sprintf("Code, valid %s (or 'resend' / 'cancel'): ", recovery.Remaining().Round(time.Minute)))
		if err != nil {
			return err
		}
		switch strings.ToLower(code) {
		case "cancel":
			return nil
		case "resend":
			if err = recovery.Resend(ctx); err != nil {
				fmt.Println("Could not resend the code. Try again later.")
			} else {
				fmt.Println("A fresh code is on its way. The old one no longer works.")
			}
			continue
		}

		switch err = recovery.Verify(code); {
		case err == nil:
		case errors.Is(err, user.ErrCodeExpired):
			fmt.Println("That code has expired. Use 'resend' to get a new one.")
			continue
		case errors.Is(err, user.ErrInvalidCode):
			fmt.Println("That code does not match.")
			continue
		default:
			return err
		}
	}

	profile, err := a.usrSvc.RecoverByEmail(ctx, recovery.Email())
	if err != nil {
		return err
	}
	if err = a.sessions.Save(ctx, profile.Email); err != nil {
		a.logger.Warn("saving session", "err", err)
	}
	a.state.SignIn()
	fmt.Printf("Verified. Welcome back, %s!\n", profile.Nickname)
	return nil
}

func (a *app) logout(ctx context.Context) {
	if err := a.sessions.Clear(ctx); err != nil {
		a.logger.Warn("clearing session", "err", err)
	}
	a.state.SignOut()
	fmt.Println("Signed out.")
}

func (a *app) prompt(label string) (string, error) {
	a.rl.SetPrompt(label)
	defer a.rl.SetPrompt(a.promptString())
	line, err := a.rl.Readline()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func (a *app) promptPassword(label string) (string, error) {
	fmt.Print(label)
	pwd, err := readPasswordFunc(syscall.Stdin)
	fmt.Println()
	if err != nil {
		return "", err
	}
	return string(pwd), nil
}

func (a *app) promptString() string {
	if !a.state.LoggedIn {
		return "studymate> "
	}
	name := "studymate"
	if a.state.Anonymous {
		name = "anonymous"
	} else if profile, ok := a.usrSvc.Active(); ok {
		name = strings.ToLower(profile.Nickname)
	}
	badge := ""
	if a.notifSvc.HasUnread() {
		badge = "*"
	}
	return fmt.Sprintf("%s%s> ", name, badge)
}
