// Queries from internal/db/queries/user.sql, in the layout sqlc emits for sqlc.yaml.

package sqlcgen

import (
	"context"
	"database/sql"
	"time"
)

const activateUser = `-- name: ActivateUser :one
UPDATE "user" SET activated_at = $2, activation_token = NULL
WHERE activation_token = $1 AND activated_at IS NULL
RETURNING id, email, name, password_hash, created_at, activated_at, activation_token
`

type ActivateUserParams struct {
	ActivationToken sql.NullString
	ActivatedAt     sql.NullTime
}

func (q *Queries) ActivateUser(ctx context.Context, arg ActivateUserParams) (User, error) {
	row := q.db.QueryRow(ctx, activateUser, arg.ActivationToken, arg.ActivatedAt)
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

const createUser = `-- name: CreateUser :one
INSERT INTO "user" (email, name, password_hash, created_at, activated_at, activation_token)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING id, email, name, password_hash, created_at, activated_at, activation_token
`

type CreateUserParams struct {
	Email           string
	Name            string
	PasswordHash    string
	CreatedAt       time.Time
	ActivatedAt     sql.NullTime
	ActivationToken sql.NullString
}

func (q *Queries) CreateUser(ctx context.Context, arg CreateUserParams) (User, error) {
	row := q.db.QueryRow(ctx, createUser,
		arg.Email,
		arg.Name,
		arg.PasswordHash,
		arg.CreatedAt,
		arg.ActivatedAt,
		arg.ActivationToken,
	)
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

const getUserByEmail = `-- name: GetUserByEmail :one
SELECT id, email, name, password_hash, created_at, activated_at, activation_token FROM "user" WHERE email = $1
`

func (q *Queries) GetUserByEmail(ctx context.Context, email string) (User, error) {
	row := q.db.QueryRow(ctx, getUserByEmail, email)
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

const getUserByID = `-- name: GetUserByID :one
SELECT id, email, name, password_hash, created_at, activated_at, activation_token FROM "user" WHERE id = $1
`

func (q *Queries) GetUserByID(ctx context.Context, id int64) (User, error) {
	row := q.db.QueryRow(ctx, getUserByID, id)
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

const setUserPasswordHash = `-- name: SetUserPasswordHash :execrows
UPDATE "user" SET password_hash = $2 WHERE id = $1
`

type SetUserPasswordHashParams struct {
	ID           int64
	PasswordHash string
}

func (q *Queries) SetUserPasswordHash(ctx context.Context, arg SetUserPasswordHashParams) (int64, error) {
	result, err := q.db.Exec(ctx, setUserPasswordHash, arg.ID, arg.PasswordHash)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}
