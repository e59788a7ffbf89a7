// Queries from internal/db/queries/password_reset.sql, in the layout sqlc emits for sqlc.yaml.

package sqlcgen

import (
	"context"
	"time"

	"github.com/jackc/pgtype"
)

const deletePasswordReset = `-- name: DeletePasswordReset :execrows
DELETE FROM password_reset WHERE user_id = $1 AND token_hash = $2
`

type DeletePasswordResetParams struct {
	UserID    int64
	TokenHash string
}

func (q *Queries) DeletePasswordReset(ctx context.Context, arg DeletePasswordResetParams) (int64, error) {
	result, err := q.db.Exec(ctx, deletePasswordReset, arg.UserID, arg.TokenHash)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}

const deleteStalePasswordResets = `-- name: DeleteStalePasswordResets :execrows
DELETE FROM password_reset WHERE expires_at <= $1 OR consumed_at IS NOT NULL
`

func (q *Queries) DeleteStalePasswordResets(ctx context.Context, expiresAt time.Time) (int64, error) {
	result, err := q.db.Exec(ctx, deleteStalePasswordResets, expiresAt)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}

const getActivePasswordResetByTokenHash = `-- name: GetActivePasswordResetByTokenHash :one
SELECT user_id, token_hash, created_at, expires_at, consumed_at FROM password_reset
WHERE token_hash = $1 AND expires_at > $2 AND consumed_at IS NULL
FOR UPDATE
`

type GetActivePasswordResetByTokenHashParams struct {
	TokenHash string
	ExpiresAt time.Time
}

func (q *Queries) GetActivePasswordResetByTokenHash(ctx context.Context, arg GetActivePasswordResetByTokenHashParams) (PasswordReset, error) {
	row := q.db.QueryRow(ctx, getActivePasswordResetByTokenHash, arg.TokenHash, arg.ExpiresAt)
	var i PasswordReset
	err := row.Scan(
		&i.UserID,
		&i.TokenHash,
		&i.CreatedAt,
		&i.ExpiresAt,
		&i.ConsumedAt,
	)
	return i, err
}

const markPasswordResetConsumed = `-- name: MarkPasswordResetConsumed :execrows
UPDATE password_reset SET consumed_at = $3
WHERE user_id = $1 AND token_hash = $2 AND consumed_at IS NULL
`

type MarkPasswordResetConsumedParams struct {
	UserID     int64
	TokenHash  string
	ConsumedAt pgtype.Timestamptz
}

func (q *Queries) MarkPasswordResetConsumed(ctx context.Context, arg MarkPasswordResetConsumedParams) (int64, error) {
	result, err := q.db.Exec(ctx, markPasswordResetConsumed, arg.UserID, arg.TokenHash, arg.ConsumedAt)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}

const upsertPasswordReset = `-- name: UpsertPasswordReset :exec
INSERT INTO password_reset (user_id, token_hash, created_at, expires_at, consumed_at)
VALUES ($1, $2, $3, $4, NULL)
ON CONFLICT (user_id) DO UPDATE SET
    token_hash = EXCLUDED.token_hash,
    created_at = EXCLUDED.created_at,
    expires_at = EXCLUDED.expires_at,
    consumed_at = NULL
`

type UpsertPasswordResetParams struct {
	UserID    int64
	TokenHash string
	CreatedAt time.Time
	ExpiresAt time.Time
}

func (q *Queries) UpsertPasswordReset(ctx context.Context, arg UpsertPasswordResetParams) error {
	_, err := q.db.Exec(ctx, upsertPasswordReset,
		arg.UserID,
		arg.TokenHash,
		arg.CreatedAt,
		arg.ExpiresAt,
	)
	return err
}
