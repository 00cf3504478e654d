package types

import (
	"time"

	"github.com/google/uuid"
)

// Gender is the numeric gender code stored on a user record.
type Gender int

const (
	GenderUnspecified Gender = iota
	GenderMale
	GenderFemale
)

// Valid reports whether g is one of the accepted codes 0, 1 or 2.
func (g Gender) Valid() bool {
	return g >= GenderUnspecified && g <= GenderFemale
}

// User is the single entity held by the directory.
type User struct {
	ID           uuid.UUID  `json:"id" example:"d290f1ee-6c54-4b01-90e6-d701748f0851"`
	Login        string     `json:"login" example:"ivan"`
	PasswordHash string     `json:"-"` // bcrypt hash, never exposed
	Name         string     `json:"name" example:"Иван"`
	Gender       Gender     `json:"gender" example:"1"`
	Birthday     *time.Time `json:"birthday,omitempty"`
	IsAdmin      bool       `json:"is_admin"`

	CreatedOn time.Time `json:"created_on"`
	CreatedBy string    `json:"created_by"`

	ModifiedOn *time.Time `json:"modified_on,omitempty"`
	ModifiedBy string     `json:"modified_by,omitempty"`

	RevokedOn *time.Time `json:"revoked_on,omitempty"`
	RevokedBy string     `json:"revoked_by,omitempty"`
}

// IsActive reports whether the user has not been revoked.
func (u User) IsActive() bool {
	return u.RevokedOn == nil
}

// Role derives the token role from the admin flag.
func (u User) Role() string {
	if u.IsAdmin {
		return RoleAdmin
	}
	return RoleUser
}

// Clone returns a copy that shares no pointers with u.
func (u User) Clone() User {
	c := u
	c.Birthday = cloneTime(u.Birthday)
	c.ModifiedOn = cloneTime(u.ModifiedOn)
	c.RevokedOn = cloneTime(u.RevokedOn)
	return c
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}

// CreateUserParams carries the caller supplied fields of a new user.
type CreateUserParams struct {
	Login    string
	Password string
	Name     string
	Gender   Gender
	Birthday *time.Time
	IsAdmin  bool
}
