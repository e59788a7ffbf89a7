package user

import (
	"fmt"
	"time"

	c "authflow/internal/core/domain/common"
	e "authflow/internal/core/domain/errors"
)

type ID int64

type Name string

type PasswordHash string

func (p PasswordHash) String() string {
	return "***"
}

type RawPassword string

func (p RawPassword) String() string {
	return "***"
}

type ActivationToken string

type SessionToken string

type User struct {
	ID              ID
	Email           c.Email
	Name            Name
	PasswordHash    PasswordHash
	CreatedAt       time.Time
	ActivatedAt     c.Optional[time.Time]
	ActivationToken c.Optional[ActivationToken]
}

func (u *User) Validate() error {
	if u.Email == "" {
		return e.NewInvalidStateError(fmt.Sprintf("email is not set for user %d", u.ID))
	}
	if u.PasswordHash == "" {
		return e.NewInvalidStateError(fmt.Sprintf("password hash is not set for user %d", u.ID))
	}
	return nil
}

func (u *User) IsActive() bool {
	return u.ActivatedAt.IsPresent
}
