package user

import (
	"golang.org/x/crypto/bcrypt"

	"github.com/studymate/studymate/core"
)

// Profile is a registered account. The active profile is a copy of one
// registered entry, addressed by session; mutations go through Service so the
// two never drift apart.
type Profile struct {
	Nickname     string   `json:"nickname"`
	Email        string   `json:"email"`
	PasswordHash []byte   `json:"password,omitempty"`
	Friends      []string `json:"friends"`
}

func (p *Profile) SetPassword(pwd string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(pwd), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	p.PasswordHash = hash
	return nil
}

func (p *Profile) CheckPassword(pwd string) error {
	return bcrypt.CompareHashAndPassword(p.PasswordHash, []byte(pwd))
}

func (p *Profile) HasFriend(name string) bool {
	for _, f := range p.Friends {
		if f == name {
			return true
		}
	}
	return false
}

// withFriends defaults an absent friends attribute to an empty slice: every
// consumer assumes profile.Friends is a defined (possibly empty) sequence.
func withFriends(p Profile) Profile {
	if p.Friends == nil {
		p.Friends = []string{}
	}
	return p
}

// NewProfile contains information needed to register a new Profile.
type NewProfile struct {
	Nickname        string `json:"nickname" validate:"required,alphanum_"`
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required"`
	PasswordConfirm string `json:"password_confirm" validate:"required,eqfield=Password"`
}

func (np *NewProfile) Validate() error {
	np.Nickname = core.CleanString(np.Nickname)
	np.Email = core.CleanString(np.Email, true /* lower */)

	if err := core.Validate.Struct(np); err != nil {
		return core.TranslateError(err)
	}
	return nil
}

// UpdateProfile defines what information may be provided to modify the active Profile.
type UpdateProfile struct {
	Nickname string `json:"nickname" validate:"omitempty,alphanum_"`
	Email    string `json:"email" validate:"omitempty,email"`
}

func (up *UpdateProfile) Validate(orig Profile) error {
	nickname := core.CleanString(up.Nickname)
	if nickname != "" {
		up.Nickname = nickname
	} else {
		up.Nickname = orig.Nickname
	}

	email := core.CleanString(up.Email, true /* lower */)
	if email != "" {
		up.Email = email
	} else {
		up.Email = orig.Email
	}

	if err := core.Validate.Struct(up); err != nil {
		return core.TranslateError(err)
	}
	return nil
}
