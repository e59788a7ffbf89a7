package user

import (
	"context"
	"database/sql"
	"errors"
	"time"

	c "authflow/internal/core/domain/common"
	e "authflow/internal/core/domain/errors"
	"authflow/internal/core/domain/user"
	"authflow/internal/db/sqlcgen"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"
)

const PG_UNIQUE_CONSTRAINT_ERR_CODE = "23505"
const EMAIL_CONSTRAINT_NAME = "user_email_idx"

type PgxUserRepository struct {
	queries *sqlcgen.Queries
}

func NewPgxRepository(db sqlcgen.DBTX) *PgxUserRepository {
	if db == nil {
		panic(e.NewNilArgumentError("db"))
	}
	return &PgxUserRepository{queries: sqlcgen.New(db)}
}

func (r *PgxUserRepository) Create(ctx context.Context, input user.CreateUserInput) (u user.User, err error) {
	dbuser, err := r.queries.CreateUser(ctx, sqlcgen.CreateUserParams{
		Email:           string(input.Email),
		Name:            string(input.Name),
		PasswordHash:    string(input.PasswordHash),
		CreatedAt:       input.CreatedAt,
		ActivatedAt:     encodeOptionalTime(input.ActivatedAt),
		ActivationToken: encodeActivationToken(input.ActivationToken),
	})

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == PG_UNIQUE_CONSTRAINT_ERR_CODE && pgErr.ConstraintName == EMAIL_CONSTRAINT_NAME {
			return u, user.ErrEmailAlreadyExists
		}
	}
	if err != nil {
		return u, err
	}
	return decodeValidUser(dbuser)
}

func (r *PgxUserRepository) GetByID(ctx context.Context, id user.ID) (u user.User, err error) {
	dbuser, err := r.queries.GetUserByID(ctx, int64(id))
	if errors.Is(err, pgx.ErrNoRows) {
		return u, user.ErrUserDoesNotExist
	}
	if err != nil {
		return u, err
	}
	return decodeValidUser(dbuser)
}

func (r *PgxUserRepository) GetByEmail(ctx context.Context, email c.Email) (u user.User, err error) {
	dbuser, err := r.queries.GetUserByEmail(ctx, string(email))
	if errors.Is(err, pgx.ErrNoRows) {
		return u, user.ErrUserDoesNotExist
	}
	if err != nil {
		return u, err
	}
	return decodeValidUser(dbuser)
}

func (r *PgxUserRepository) Activate(
	ctx context.Context,
	token user.ActivationToken,
	at time.Time,
) (u user.User, err error) {
	dbuser, err := r.queries.ActivateUser(ctx, sqlcgen.ActivateUserParams{
		ActivationToken: sql.NullString{String: string(token), Valid: true},
		ActivatedAt:     sql.NullTime{Time: at, Valid: true},
	})
	if errors.Is(err, pgx.ErrNoRows) {
		return u, user.ErrUserDoesNotExist
	}
	if err != nil {
		return u, err
	}
	return decodeValidUser(dbuser)
}

func (r *PgxUserRepository) SetPassword(ctx context.Context, id user.ID, password user.PasswordHash) error {
	updated, err := r.queries.SetUserPasswordHash(ctx, sqlcgen.SetUserPasswordHashParams{
		ID:           int64(id),
		PasswordHash: string(password),
	})
	if err != nil {
		return err
	}
	if updated == 0 {
		return user.ErrUserDoesNotExist
	}
	return nil
}

func encodeActivationToken(token c.Optional[user.ActivationToken]) sql.NullString {
	return sql.NullString{String: string(token.Value), Valid: token.IsPresent}
}

func encodeOptionalTime(at c.Optional[time.Time]) sql.NullTime {
	return sql.NullTime{Time: at.Value, Valid: at.IsPresent}
}

func decodeValidUser(dbuser sqlcgen.User) (user.User, error) {
	u := decodeUser(dbuser)
	if err := u.Validate(); err != nil {
		return u, err
	}
	return u, nil
}

func decodeUser(u sqlcgen.User) user.User {
	return user.User{
		ID:              user.ID(u.ID),
		Email:           c.Email(u.Email),
		Name:            user.Name(u.Name),
		PasswordHash:    user.PasswordHash(u.PasswordHash),
		CreatedAt:       u.CreatedAt.UTC(),
		ActivatedAt:     c.NewOptional(u.ActivatedAt.Time.UTC(), u.ActivatedAt.Valid),
		ActivationToken: c.NewOptional(user.ActivationToken(u.ActivationToken.String), u.ActivationToken.Valid),
	}
}
