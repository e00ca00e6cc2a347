package session

import (
	"context"

	"github.com/pkg/errors"

	"github.com/studymate/studymate/core"
)

// Manager keeps the signed-in student's session alive across app
// restarts by storing a signed token.
type Manager struct {
	store core.KVStore
	conf  *core.Config
	log   core.Logger
}

func NewManager(store core.KVStore, conf *core.Config, log core.Logger) *Manager {
	return &Manager{store: store, conf: conf, log: log}
}

// Save issues a session token for the email and persists it.
func (m *Manager) Save(ctx context.Context, email string) error {
	token, err := NewToken(m.conf, email)
	if err != nil {
		return err
	}
	if err = m.store.Set(ctx, core.KeySession, token); err != nil {
		return errors.Wrap(err, "persisting session token")
	}
	return nil
}

// Restore returns the email of the previously signed-in student. ok is
// false when no session was saved or the saved token no longer verifies;
// a stale token is treated as signed out, not as a failure.
func (m *Manager) Restore(ctx context.Context) (email string, ok bool) {
	token, err := m.store.Get(ctx, core.KeySession)
	if err != nil || token == "" {
		return "", false
	}
	email, err = ParseToken(m.conf, token)
	if err != nil {
		m.log.Debug("discarding saved session", "err", err)
		return "", false
	}
	return email, true
}

// Clear drops the saved session.
func (m *Manager) Clear(ctx context.Context) error {
	return errors.Wrap(m.store.Set(ctx, core.KeySession, ""), "clearing session token")
}
