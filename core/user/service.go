package user

import (
	"context"
	"errors"

	"github.com/studymate/studymate/core"
	"github.com/studymate/studymate/storage/mirror"
)

var (
	// errors
	ErrNotFound           = errors.New("user not found")
	ErrEmailExists        = errors.New("a user with this email already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrNoActiveProfile    = errors.New("no active profile")
)

type (
	// Service is the profile synchronizer: the single write path for the
	// active profile and the registered-users collection.
	Service interface {
		Register(ctx context.Context, np NewProfile) (Profile, error)
		Login(ctx context.Context, email, password string) (Profile, error)
		RecoverByEmail(ctx context.Context, email string) (Profile, error)
		GetByEmail(email string) (Profile, error)
		Active() (Profile, bool)
		UpdateActive(ctx context.Context, up UpdateProfile) (Profile, error)
		AddFriend(ctx context.Context, name string) (Profile, error)
		Registered() []Profile
	}

	service struct {
		users  *mirror.Collection[Profile]
		active *mirror.Value[Profile]
		log    core.Logger
	}
)

func NewService(users *mirror.Collection[Profile], active *mirror.Value[Profile], log core.Logger) Service {
	return &service{users: users, active: active, log: log}
}

// Load wires the service from the durable store, coercing legacy profile
// shapes (absent friends) on the way in.
func Load(ctx context.Context, store core.KVStore, log core.Logger) Service {
	users := mirror.LoadCollection[Profile](ctx, store, core.KeyRegisteredUsers, log)
	active := mirror.LoadValue[Profile](ctx, store, core.KeyProfile, log, withFriends)
	return NewService(users, active, log)
}

func (svc *service) Register(ctx context.Context, np NewProfile) (Profile, error) {
	if err := np.Validate(); err != nil {
		return Profile{}, err
	}
	if _, err := svc.GetByEmail(np.Email); err == nil {
		return Profile{}, core.NewValidationError(ErrEmailExists, core.FieldError{Field: "email", Error: ErrEmailExists.Error()})
	}

	p := Profile{Nickname: np.Nickname, Email: np.Email, Friends: []string{}}
	if err := p.SetPassword(np.Password); err != nil {
		return Profile{}, err
	}

	if err := svc.users.Replace(ctx, func(users []Profile) []Profile {
		return append(users, p)
	}); err != nil {
		return Profile{}, err
	}
	if err := svc.active.Set(ctx, p); err != nil {
		return Profile{}, err
	}
	return p, nil
}

func (svc *service) Login(ctx context.Context, email, password string) (Profile, error) {
	p, err := svc.GetByEmail(email)
	if err != nil {
		return Profile{}, ErrInvalidCredentials
	}
	if err := p.CheckPassword(password); err != nil {
		return Profile{}, ErrInvalidCredentials
	}

	p = withFriends(p)
	if err := svc.active.Set(ctx, p); err != nil {
		return Profile{}, err
	}
	return p, nil
}

// RecoverByEmail adopts a registered profile as active by email alone. Only
// reached after the recovery code verification step.
func (svc *service) RecoverByEmail(ctx context.Context, email string) (Profile, error) {
	p, err := svc.GetByEmail(email)
	if err != nil {
		return Profile{}, err
	}

	p = withFriends(p)
	if err := svc.active.Set(ctx, p); err != nil {
		return Profile{}, err
	}
	return p, nil
}

// GetByEmail does a case-insensitive email lookup against registered users.
func (svc *service) GetByEmail(email string) (Profile, error) {
	email = core.CleanString(email, true /* lower */)
	for _, p := range svc.users.Items() {
		if core.CleanString(p.Email, true) == email {
			return p, nil
		}
	}
	return Profile{}, ErrNotFound
}

func (svc *service) Active() (Profile, bool) {
	return svc.active.Get()
}

// UpdateActive merges partial fields into the active profile and persists it,
// writing through to the matching registered-users entry so a later login
// does not resurrect stale data.
func (svc *service) UpdateActive(ctx context.Context, up UpdateProfile) (Profile, error) {
	orig, ok := svc.active.Get()
	if !ok {
		return Profile{}, ErrNoActiveProfile
	}
	if err := up.Validate(orig); err != nil {
		return Profile{}, err
	}
	if up.Email != core.CleanString(orig.Email, true) {
		if _, err := svc.GetByEmail(up.Email); err == nil {
			return Profile{}, core.NewValidationError(ErrEmailExists, core.FieldError{Field: "email", Error: ErrEmailExists.Error()})
		}
	}

	next := orig
	next.Nickname = up.Nickname
	next.Email = up.Email
	return next, svc.syncActive(ctx, orig.Email, next)
}

// AddFriend appends an unseen name to the active profile's friends.
func (svc *service) AddFriend(ctx context.Context, name string) (Profile, error) {
	orig, ok := svc.active.Get()
	if !ok {
		return Profile{}, ErrNoActiveProfile
	}
	if orig.HasFriend(name) {
		return orig, nil
	}

	next := orig
	next.Friends = append(append([]string{}, orig.Friends...), name)
	return next, svc.syncActive(ctx, orig.Email, next)
}

func (svc *service) Registered() []Profile {
	return svc.users.Items()
}

// syncActive persists the updated active profile and its registered-users
// entry (matched by the pre-update email). The two keys are written
// independently; there is no cross-key atomicity in the store.
func (svc *service) syncActive(ctx context.Context, origEmail string, next Profile) error {
	origEmail = core.CleanString(origEmail, true)
	if err := svc.users.Replace(ctx, func(users []Profile) []Profile {
		for i, p := range users {
			if core.CleanString(p.Email, true) == origEmail {
				users[i] = next
				break
			}
		}
		return users
	}); err != nil {
		return err
	}
	return svc.active.Set(ctx, next)
}
