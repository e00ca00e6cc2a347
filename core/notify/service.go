package notify

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/studymate/studymate/core"
	"github.com/studymate/studymate/core/user"
)

// Kind discriminates inbox entries.
type Kind string

const (
	KindMessage       Kind = "message"
	KindFriendRequest Kind = "friend_request"
)

// Notification is an inbox entry. The inbox lives in memory only and
// empties when the app exits.
type Notification struct {
	ID      string `json:"id"`
	Sender  string `json:"sender"`
	Message string `json:"message"`
	Time    string `json:"time"`
	Kind    Kind   `json:"type"`
	Read    bool   `json:"read,omitempty"`
}

var (
	ErrNotFound       = errors.New("notification not found")
	ErrRequestPending = errors.New("a friend request to this student is already pending")
)

type Service interface {
	// All returns the inbox, most recent first.
	All() []Notification
	// FriendRequests returns pending friend requests.
	FriendRequests() []Notification
	// Messages returns direct message notifications.
	Messages() []Notification
	// HasUnread reports whether the inbox holds anything unseen.
	HasUnread() bool
	// MarkSeen clears the unread indicator.
	MarkSeen()
	// Push adds a direct message notification to the inbox.
	Push(sender, message string)
	// RequestFriend sends a friend request to the named student. The
	// counterpart request lands in the inbox after a short delay.
	RequestFriend(name string) error
	// Accept confirms a friend request: the sender joins the friends
	// list and the notification is consumed.
	Accept(ctx context.Context, id string) error
	// Decline consumes a friend request without adding the sender.
	Decline(id string) error
	// Close cancels friend request deliveries still in flight.
	Close()
}

type service struct {
	usrSvc user.Service
	delay  time.Duration
	log    core.Logger

	mu      sync.Mutex
	inbox   []Notification
	unread  bool
	pending map[string]*time.Timer
	closed  bool
}

func NewService(usrSvc user.Service, conf *core.Config, log core.Logger) Service {
	return &service{
		usrSvc:  usrSvc,
		delay:   conf.FriendRequestDelay,
		log:     log,
		pending: make(map[string]*time.Timer),
	}
}

func (svc *service) All() []Notification {
	svc.mu.Lock()
	defer svc.mu.Unlock()
	out := make([]Notification, len(svc.inbox))
	copy(out, svc.inbox)
	return out
}

func (svc *service) FriendRequests() []Notification { return svc.filter(KindFriendRequest) }
func (svc *service) Messages() []Notification       { return svc.filter(KindMessage) }

func (svc *service) filter(kind Kind) []Notification {
	svc.mu.Lock()
	defer svc.mu.Unlock()
	out := make([]Notification, 0, len(svc.inbox))
	for _, n := range svc.inbox {
		if n.Kind == kind {
			out = append(out, n)
		}
	}
	return out
}

func (svc *service) HasUnread() bool {
	svc.mu.Lock()
	defer svc.mu.Unlock()
	return svc.unread
}

func (svc *service) MarkSeen() {
	svc.mu.Lock()
	defer svc.mu.Unlock()
	svc.unread = false
	for i := range svc.inbox {
		svc.inbox[i].Read = true
	}
}

func (svc *service) Push(sender, message string) {
	svc.deliver(Notification{
		ID:      uuid.NewString(),
		Sender:  sender,
		Message: message,
		Time:    "Just now",
		Kind:    KindMessage,
	})
}

func (svc *service) RequestFriend(name string) error {
	svc.mu.Lock()
	defer svc.mu.Unlock()
	if svc.closed {
		return nil
	}
	if _, ok := svc.pending[name]; ok {
		return ErrRequestPending
	}
	svc.pending[name] = time.AfterFunc(svc.delay, func() {
		svc.mu.Lock()
		delete(svc.pending, name)
		svc.mu.Unlock()
		svc.deliver(Notification{
			ID:      uuid.NewString(),
			Sender:  name,
			Message: "wants to be your friend",
			Time:    "Just now",
			Kind:    KindFriendRequest,
		})
	})
	svc.log.Debug("friend request sent", "to", name)
	return nil
}

func (svc *service) deliver(n Notification) {
	svc.mu.Lock()
	defer svc.mu.Unlock()
	if svc.closed {
		return
	}
	svc.inbox = append([]Notification{n}, svc.inbox...)
	svc.unread = true
}

func (svc *service) Accept(ctx context.Context, id string) error {
	n, err := svc.take(id)
	if err != nil {
		return err
	}
	if _, err = svc.usrSvc.AddFriend(ctx, n.Sender); err != nil {
		// keep the request actionable when the friends list fails to persist
		svc.deliver(n)
		return err
	}
	return nil
}

func (svc *service) Decline(id string) error {
	_, err := svc.take(id)
	return err
}

// take removes the notification with the given id from the inbox.
func (svc *service) take(id string) (Notification, error) {
	svc.mu.Lock()
	defer svc.mu.Unlock()
	for i, n := range svc.inbox {
		if n.ID == id {
			svc.inbox = append(svc.inbox[:i:i], svc.inbox[i+1:]...)
			return n, nil
		}
	}
	return Notification{}, ErrNotFound
}

func (svc *service) Close() {
	svc.mu.Lock()
	defer svc.mu.Unlock()
	svc.closed = true
	for name, timer := range svc.pending {
		timer.Stop()
		delete(svc.pending, name)
	}
}
