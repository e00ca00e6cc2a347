package user

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"net/mail"
	"time"

	"github.com/studymate/studymate/core"
)

var (
	nowFunc = time.Now // mockable

	// errors
	ErrInvalidCode  = errors.New("incorrect verification code")
	ErrCodeExpired  = errors.New("this code has expired")
	ErrMailDispatch = fmt.Errorf("recovery email could not be sent: %w", core.ErrCollaborator)
)

// RecoveryState tracks the account recovery flow.
type RecoveryState int

const (
	StateEmailEntry RecoveryState = iota
	StateCodeVerification
	StateVerified
)

// Recovery drives the emailed one-time-code flow:
// EMAIL_ENTRY -> CODE_VERIFICATION -> VERIFIED. Only the most recently
// generated code is ever valid; resending permanently invalidates the old one.
type Recovery struct {
	svc     Service
	mailSvc core.EmailService
	conf    *core.Config
	log     core.Logger

	state    RecoveryState
	email    string
	nickname string
	code     string
	expiry   time.Time
}

func NewRecovery(svc Service, mailSvc core.EmailService, conf *core.Config, log core.Logger) *Recovery {
	return &Recovery{svc: svc, mailSvc: mailSvc, conf: conf, log: log}
}

func (r *Recovery) State() RecoveryState { return r.state }
func (r *Recovery) Email() string        { return r.email }

// Start matches the email against registered users, generates a code with a
// fresh expiry and dispatches it. On dispatch failure the flow stays in
// EMAIL_ENTRY so the user can retry.
func (r *Recovery) Start(ctx context.Context, email string) error {
	p, err := r.svc.GetByEmail(email)
	if err != nil {
		return err
	}

	r.email = core.CleanString(email, true /* lower */)
	r.nickname = p.Nickname
	if err := r.issue(ctx); err != nil {
		return err
	}
	r.state = StateCodeVerification
	return nil
}

// Resend regenerates the code and expiry and re-dispatches.
func (r *Recovery) Resend(ctx context.Context) error {
	if r.state != StateCodeVerification {
		return ErrInvalidCode
	}
	return r.issue(ctx)
}

// Verify succeeds iff the input matches the current code and now <= expiry.
// An expired code fails even on an exact match.
func (r *Recovery) Verify(code string) error {
	if r.state != StateCodeVerification {
		return ErrInvalidCode
	}
	if nowFunc().After(r.expiry) {
		return ErrCodeExpired
	}
	if code != r.code {
		return ErrInvalidCode
	}
	r.state = StateVerified
	return nil
}

// Remaining reports the time left on the current code, for the visible
// countdown; zero once expired.
func (r *Recovery) Remaining() time.Duration {
	if d := r.expiry.Sub(nowFunc()); d > 0 {
		return d
	}
	return 0
}

func (r *Recovery) issue(ctx context.Context) error {
	code, err := generateCode()
	if err != nil {
		return err
	}
	expiry := nowFunc().Add(r.conf.RecoveryCodeTimeout)

	msg := &core.EmailMessage{
		To:           []mail.Address{{Name: r.nickname, Address: r.email}},
		Subject:      "Account Recovery",
		TemplateName: "password-reset",
		TemplateData: struct {
			Nickname  string
			Code      string
			ExpiresIn string
		}{r.nickname, code, fmt.Sprintf("%d minutes", int(r.conf.RecoveryCodeTimeout.Minutes()))},
	}
	if err := msg.Render(r.conf.AppName); err != nil {
		return err
	}
	if err := r.mailSvc.Send(ctx, msg); err != nil {
		r.log.Error(fmt.Sprintf("dispatching recovery code to %s: %v", r.email, err), err)
		return ErrMailDispatch
	}

	r.code = code
	r.expiry = expiry
	return nil
}

// generateCode returns a 6-digit numeric code, zero-padded, uniform on
// 000000-999999.
func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
