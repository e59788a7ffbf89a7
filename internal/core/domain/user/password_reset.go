package user

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"

	c "authflow/internal/core/domain/common"

	"github.com/golang-module/carbon/v2"
)

const DefaultPasswordResetValidHours = 1

// PasswordResetToken is the opaque value mailed to the user. Only its hash is stored.
type PasswordResetToken string

func (t PasswordResetToken) String() string {
	return "***"
}

func (t PasswordResetToken) Hash() PasswordResetTokenHash {
	sum := sha256.Sum256([]byte(t))
	return PasswordResetTokenHash(hex.EncodeToString(sum[:]))
}

type PasswordResetTokenHash string

type PasswordResetRequest struct {
	UserID     ID
	TokenHash  PasswordResetTokenHash
	CreatedAt  time.Time
	ExpiresAt  time.Time
	ConsumedAt c.Optional[time.Time]
}

func NewPasswordResetRequest(
	userID ID,
	token PasswordResetToken,
	now time.Time,
	validHours int,
) PasswordResetRequest {
	return PasswordResetRequest{
		UserID:    userID,
		TokenHash: token.Hash(),
		CreatedAt: now,
		ExpiresAt: carbon.Time2Carbon(now).AddHours(validHours).Carbon2Time(),
	}
}

// IsActive reports whether the request can still be redeemed at the given moment.
func (r *PasswordResetRequest) IsActive(now time.Time) bool {
	return !r.ConsumedAt.IsPresent && r.ExpiresAt.After(now)
}

type PasswordResetTokenGenerator interface {
	GeneratePasswordResetToken() (PasswordResetToken, error)
}

type PasswordResetTokenSender interface {
	SendPasswordResetToken(ctx context.Context, user User, token PasswordResetToken) error
}

type PasswordChangedEvent struct {
	UserID ID        `json:"userId"`
	At     time.Time `json:"at"`
}

type PasswordChangedPublisher interface {
	PublishPasswordChanged(ctx context.Context, event PasswordChangedEvent) error
}

type PasswordChangedSender interface {
	SendPasswordChanged(ctx context.Context, user User, at time.Time) error
}
