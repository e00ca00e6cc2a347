package dummymail

import (
	"context"
	"sync"

	"github.com/studymate/studymate/core"
)

// Service records messages instead of sending them; tests inspect Sent and
// may inject a dispatch failure.
type Service struct {
	mu   sync.Mutex
	sent []core.EmailMessage

	SendErr error
}

var _ core.EmailService = (*Service)(nil)

func NewService() *Service { return &Service{} }

func (svc *Service) Send(_ context.Context, msg *core.EmailMessage) error {
	if svc.SendErr != nil {
		return svc.SendErr
	}
	svc.mu.Lock()
	defer svc.mu.Unlock()
	svc.sent = append(svc.sent, *msg)
	return nil
}

func (svc *Service) Sent() []core.EmailMessage {
	svc.mu.Lock()
	defer svc.mu.Unlock()
	out := make([]core.EmailMessage, len(svc.sent))
	copy(out, svc.sent)
	return out
}
