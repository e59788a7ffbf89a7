package user

import (
	"context"
	"time"

	c "authflow/internal/core/domain/common"
)

type CreateUserInput struct {
	Email           c.Email
	Name            Name
	PasswordHash    PasswordHash
	CreatedAt       time.Time
	ActivatedAt     c.Optional[time.Time]
	ActivationToken c.Optional[ActivationToken]
}

type UserRepository interface {
	Create(ctx context.Context, input CreateUserInput) (User, error)
	GetByID(ctx context.Context, id ID) (User, error)
	GetByEmail(ctx context.Context, email c.Email) (User, error)
	Activate(ctx context.Context, token ActivationToken, at time.Time) (User, error)
	SetPassword(ctx context.Context, id ID, password PasswordHash) error
}

type CreateSessionInput struct {
	UserID    ID
	Token     SessionToken
	CreatedAt time.Time
}

type SessionRepository interface {
	Create(ctx context.Context, input CreateSessionInput) error
	GetUserByToken(ctx context.Context, token SessionToken) (User, error)
	Delete(ctx context.Context, token SessionToken) (userID ID, err error)
	DeleteAllForUser(ctx context.Context, userID ID) (count int64, err error)
}

type PasswordResetRepository interface {
	// Upsert stores the request replacing any previous one of the same user.
	Upsert(ctx context.Context, request PasswordResetRequest) error
	// GetActiveByTokenHash locks and returns an unconsumed request that expires after now.
	GetActiveByTokenHash(ctx context.Context, hash PasswordResetTokenHash, now time.Time) (PasswordResetRequest, error)
	MarkConsumed(ctx context.Context, userID ID, hash PasswordResetTokenHash, at time.Time) error
	Delete(ctx context.Context, userID ID, hash PasswordResetTokenHash) error
	DeleteStale(ctx context.Context, now time.Time) (count int64, err error)
}
