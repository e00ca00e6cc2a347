package dummytextgen

import (
	"context"
	"sync"

	"github.com/studymate/studymate/core/chat"
)

// Service returns scripted text instead of calling the generation API;
// tests inject replies and failures.
type Service struct {
	mu      sync.Mutex
	replies []string

	Summary   string
	Questions []chat.QuizQuestion
	Tips      string
	Err       error
}

var _ chat.Generator = (*Service)(nil)

func NewService(replies ...string) *Service {
	return &Service{replies: replies}
}

func (svc *Service) Reply(_ context.Context, _ []chat.Message, persona, _ string) (string, error) {
	if svc.Err != nil {
		return "", svc.Err
	}
	svc.mu.Lock()
	defer svc.mu.Unlock()
	if len(svc.replies) == 0 {
		return "hey! " + persona + " here", nil
	}
	next := svc.replies[0]
	if len(svc.replies) > 1 {
		svc.replies = svc.replies[1:]
	}
	return next, nil
}

func (svc *Service) Summarize(context.Context, string) (string, error) {
	return svc.Summary, svc.Err
}

func (svc *Service) Quiz(context.Context, string) ([]chat.QuizQuestion, error) {
	if svc.Err != nil {
		return nil, svc.Err
	}
	return svc.Questions, nil
}

func (svc *Service) Advice(context.Context, string) (string, error) {
	return svc.Tips, svc.Err
}
