package chat

import (
	"context"
	"errors"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

var (
	nowFunc = time.Now
	randFn  = rand.Intn

	ErrEmptyMessage    = errors.New("a message is required")
	ErrExchangePending = errors.New("still waiting for a reply")
)

// fallbackReply is sent when the generator is unreachable.
const fallbackReply = "signal is bad here, wait"

// Conversation is a chat with one friend or a group. History lives in
// memory only and is gone when the chat closes.
type Conversation struct {
	gen     Generator
	peer    string
	group   string
	members []string

	mu       sync.Mutex
	messages []Message
	pending  bool
}

// NewConversation opens a private chat with a friend.
func NewConversation(gen Generator, friendName string) *Conversation {
	return &Conversation{gen: gen, peer: friendName}
}

// NewGroupConversation opens a group chat. Replies come from a randomly
// picked member.
func NewGroupConversation(gen Generator, groupName string, members []string) *Conversation {
	return &Conversation{gen: gen, group: groupName, members: members}
}

func (c *Conversation) Messages() []Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Message, len(c.messages))
	copy(out, c.messages)
	return out
}

// Pending reports whether a reply is still being composed.
func (c *Conversation) Pending() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pending
}

// Send posts the student's message and waits for the peer's reply. Only
// one exchange may be in flight at a time. A generator failure still
// yields a reply, with canned text.
func (c *Conversation) Send(ctx context.Context, text string) (Message, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Message{}, ErrEmptyMessage
	}

	c.mu.Lock()
	if c.pending {
		c.mu.Unlock()
		return Message{}, ErrExchangePending
	}
	c.pending = true
	c.messages = append(c.messages, Message{
		ID:        uuid.NewString(),
		Text:      text,
		Sender:    SenderMe,
		Timestamp: nowFunc().Format("15:04"),
	})
	history := make([]Message, len(c.messages))
	copy(history, c.messages)
	responder := c.peer
	if c.group != "" && len(c.members) > 0 {
		responder = c.members[randFn(len(c.members))]
	}
	c.mu.Unlock()

	replyText, err := c.gen.Reply(ctx, history, responder, c.group)
	if err != nil || replyText == "" {
		replyText = fallbackReply
	}

	reply := Message{
		ID:        uuid.NewString(),
		Text:      replyText,
		Sender:    SenderOther,
		Timestamp: nowFunc().Format("15:04"),
	}
	if c.group != "" {
		reply.SenderName = responder
	}

	c.mu.Lock()
	c.messages = append(c.messages, reply)
	c.pending = false
	c.mu.Unlock()
	return reply, nil
}
