package chat

import (
	"context"
	"errors"
	"math/rand"
	"testing"
	"time"
)

// stubGen scripts generator behavior for conversation tests.
type stubGen struct {
	reply    string
	err      error
	block    chan struct{} // when set, Reply waits until closed
	lastPeer string
	lastGrp  string
}

func (g *stubGen) Reply(ctx context.Context, history []Message, persona, groupContext string) (string, error) {
	g.lastPeer = persona
	g.lastGrp = groupContext
	if g.block != nil {
		<-g.block
	}
	return g.reply, g.err
}

func (g *stubGen) Summarize(ctx context.Context, content string) (string, error) {
	return g.reply, g.err
}

func (g *stubGen) Quiz(ctx context.Context, content string) ([]QuizQuestion, error) {
	if g.err != nil {
		return nil, g.err
	}
	return []QuizQuestion{{Question: "q", Options: []string{"a", "b"}, CorrectAnswer: 1}}, nil
}

func (g *stubGen) Advice(ctx context.Context, subject string) (string, error) {
	return g.reply, g.err
}

func TestSendAppendsBothSides(t *testing.T) {
	gen := &stubGen{reply: "ya for sure"}
	conv := NewConversation(gen, "Sheila Putri")

	reply, err := conv.Send(context.Background(), "library at 3?")
	if err != nil {
		t.Fatalf("Send() failed: %v", err)
	}
	if reply.Text != "ya for sure" || reply.Sender != SenderOther {
		t.Errorf("reply = %+v", reply)
	}
	if gen.lastPeer != "Sheila Putri" || gen.lastGrp != "" {
		t.Errorf("generator saw persona %q, group %q", gen.lastPeer, gen.lastGrp)
	}

	msgs := conv.Messages()
	if len(msgs) != 2 || msgs[0].Sender != SenderMe || msgs[0].Text != "library at 3?" {
		t.Errorf("history = %+v", msgs)
	}
}

func TestSendRejectsBlank(t *testing.T) {
	conv := NewConversation(&stubGen{}, "Sheila Putri")
	if _, err := conv.Send(context.Background(), "  "); !errors.Is(err, ErrEmptyMessage) {
		t.Errorf("Send(blank) error = %v, want ErrEmptyMessage", err)
	}
}

func TestSendGuardsSingleExchange(t *testing.T) {
	gen := &stubGen{reply: "hey!", block: make(chan struct{})}
	conv := NewConversation(gen, "Sheila Putri")

	firstDone := make(chan error, 1)
	go func() {
		_, err := conv.Send(context.Background(), "hey")
		firstDone <- err
	}()

	// wait for the first exchange to be in flight
	for !conv.Pending() {
		time.Sleep(time.Millisecond)
	}

	if _, err := conv.Send(context.Background(), "you there?"); !errors.Is(err, ErrExchangePending) {
		t.Errorf("second Send() error = %v, want ErrExchangePending", err)
	}

	close(gen.block)
	if err := <-firstDone; err != nil {
		t.Fatalf("first Send() failed: %v", err)
	}
	if conv.Pending() {
		t.Error("conversation still pending after reply")
	}
}

func TestSendFallsBackWhenGeneratorFails(t *testing.T) {
	gen := &stubGen{err: errors.New("network down")}
	conv := NewConversation(gen, "Sheila Putri")

	reply, err := conv.Send(context.Background(), "hey")
	if err != nil {
		t.Fatalf("Send() failed: %v", err)
	}
	if reply.Text != "signal is bad here, wait" {
		t.Errorf("fallback reply = %q", reply.Text)
	}
}

func TestGroupReplyComesFromPickedMember(t *testing.T) {
	gen := &stubGen{reply: "sounds good"}
	conv := NewGroupConversation(gen, "HCI Group", []string{"Sheila Putri", "Amir Hakim", "Mira Santoso"})

	randFn = func(n int) int { return 2 }
	defer func() { randFn = rand.Intn }()

	reply, err := conv.Send(context.Background(), "anyone done the assignment?")
	if err != nil {
		t.Fatalf("Send() failed: %v", err)
	}
	if reply.SenderName != "Mira Santoso" {
		t.Errorf("SenderName = %q, want Mira Santoso", reply.SenderName)
	}
	if gen.lastGrp != "HCI Group" {
		t.Errorf("generator saw group %q", gen.lastGrp)
	}
}

func TestStudyRoomFallbacks(t *testing.T) {
	ctx := context.Background()

	failing := NewStudyRoom(&stubGen{err: errors.New("network down")})
	if got := failing.Summarize(ctx, "notes"); got != "An error occurred while summarizing." {
		t.Errorf("Summarize() fallback = %q", got)
	}
	if got := failing.Quiz(ctx, "notes"); len(got) != 0 {
		t.Errorf("Quiz() fallback = %+v, want empty", got)
	}
	if got := failing.Advice(ctx, "Statistics"); got != "Keep studying hard!" {
		t.Errorf("Advice() fallback = %q", got)
	}

	empty := NewStudyRoom(&stubGen{})
	if got := empty.Summarize(ctx, "notes"); got != "Failed to generate summary." {
		t.Errorf("Summarize() on empty output = %q", got)
	}
	if got := empty.Advice(ctx, "Statistics"); got != "Focus and persistence are key!" {
		t.Errorf("Advice() on empty output = %q", got)
	}

	working := NewStudyRoom(&stubGen{reply: "revise daily"})
	if got := working.Quiz(ctx, "notes"); len(got) != 1 || got[0].CorrectAnswer != 1 {
		t.Errorf("Quiz() = %+v", got)
	}
}
