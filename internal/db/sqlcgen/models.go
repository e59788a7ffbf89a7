package sqlcgen

import (
	"database/sql"
	"time"

	"github.com/jackc/pgtype"
)

type PasswordReset struct {
	UserID     int64
	TokenHash  string
	CreatedAt  time.Time
	ExpiresAt  time.Time
	ConsumedAt pgtype.Timestamptz
}

type Session struct {
	Token     string
	UserID    int64
	CreatedAt time.Time
}

type User struct {
	ID              int64
	Email           string
	Name            string
	PasswordHash    string
	CreatedAt       time.Time
	ActivatedAt     sql.NullTime
	ActivationToken sql.NullString
}
