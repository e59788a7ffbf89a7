package user

import (
	"testing"
	"time"

	c "authflow/internal/core/domain/common"

	"github.com/stretchr/testify/require"
)

func TestPasswordResetTokenHash(t *testing.T) {
	token := PasswordResetToken("test")
	require.Equal(
		t,
		PasswordResetTokenHash("9f86d081884c7d659a2feaa0c55ad015a3bf4f1b2b0b822cd15d6c15b0f00a08"),
		token.Hash(),
	)
	require.Equal(t, token.Hash(), PasswordResetToken("test").Hash())
	require.NotEqual(t, token.Hash(), PasswordResetToken("Test").Hash())
}

func TestNewPasswordResetRequestExpiresAfterWindow(t *testing.T) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

	req := NewPasswordResetRequest(ID(1), PasswordResetToken("T1"), now, DefaultPasswordResetValidHours)

	require.Equal(t, ID(1), req.UserID)
	require.Equal(t, PasswordResetToken("T1").Hash(), req.TokenHash)
	require.True(t, req.CreatedAt.Equal(now))
	require.True(t, req.ExpiresAt.Equal(now.Add(time.Hour)))
	require.False(t, req.ConsumedAt.IsPresent)
}

func TestPasswordResetRequestIsActive(t *testing.T) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	req := NewPasswordResetRequest(ID(1), PasswordResetToken("T1"), now, 1)

	require.True(t, req.IsActive(now))
	require.True(t, req.IsActive(now.Add(59*time.Minute)))
	require.False(t, req.IsActive(now.Add(time.Hour)))
	require.False(t, req.IsActive(now.Add(2*time.Hour)))

	req.ConsumedAt = c.NewOptional(now, true)
	require.False(t, req.IsActive(now))
}
