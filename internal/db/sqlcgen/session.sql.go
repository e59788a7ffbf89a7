// Queries from internal/db/queries/session.sql, in the layout sqlc emits for sqlc.yaml.

package sqlcgen

import (
	"context"
	"time"
)

const createSession = `-- name: CreateSession :exec
INSERT INTO session (token, user_id, created_at) VALUES ($1, $2, $3)
`

type CreateSessionParams struct {
	Token     string
	UserID    int64
	CreatedAt time.Time
}

func (q *Queries) CreateSession(ctx context.Context, arg CreateSessionParams) error {
	_, err := q.db.Exec(ctx, createSession, arg.Token, arg.UserID, arg.CreatedAt)
	return err
}

const deleteSessionByToken = `-- name: DeleteSessionByToken :one
DELETE FROM session WHERE token = $1 RETURNING user_id
`

func (q *Queries) DeleteSessionByToken(ctx context.Context, token string) (int64, error) {
	row := q.db.QueryRow(ctx, deleteSessionByToken, token)
	var user_id int64
	err := row.Scan(&user_id)
	return user_id, err
}

const deleteSessionsByUserID = `-- name: DeleteSessionsByUserID :execrows
DELETE FROM session WHERE user_id = $1
`

func (q *Queries) DeleteSessionsByUserID(ctx context.Context, userID int64) (int64, error) {
	result, err := q.db.Exec(ctx, deleteSessionsByUserID, userID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}

const getUserBySessionToken = `-- name: GetUserBySessionToken :one
SELECT "user".id, "user".email, "user".name, "user".password_hash, "user".created_at, "user".activated_at, "user".activation_token FROM "user" JOIN session ON session.user_id = "user".id
WHERE session.token = $1
`

func (q *Queries) GetUserBySessionToken(ctx context.Context, token string) (User, error) {
	row := q.db.QueryRow(ctx, getUserBySessionToken, token)
	var i User
	err := row.Scan(
		&i.ID,
		&i.Email,
		&i.Name,
		&i.PasswordHash,
		&i.CreatedAt,
		&i.ActivatedAt,
		&i.ActivationToken,
	)
	return i, err
}
