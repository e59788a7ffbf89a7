package passwordreset

import (
	"context"
	"errors"
	"time"

	c "authflow/internal/core/domain/common"
	e "authflow/internal/core/domain/errors"
	"authflow/internal/core/domain/user"
	"authflow/internal/db/sqlcgen"

	"github.com/jackc/pgtype"
	"github.com/jackc/pgx/v4"
)

type PgxPasswordResetRepository struct {
	queries *sqlcgen.Queries
}

func NewPgxPasswordResetRepository(db sqlcgen.DBTX) *PgxPasswordResetRepository {
	if db == nil {
		panic(e.NewNilArgumentError("db"))
	}
	return &PgxPasswordResetRepository{queries: sqlcgen.New(db)}
}

func (r *PgxPasswordResetRepository) Upsert(ctx context.Context, request user.PasswordResetRequest) error {
	return r.queries.UpsertPasswordReset(ctx, sqlcgen.UpsertPasswordResetParams{
		UserID:    int64(request.UserID),
		TokenHash: string(request.TokenHash),
		CreatedAt: request.CreatedAt,
		ExpiresAt: request.ExpiresAt,
	})
}

// GetActiveByTokenHash holds a row lock until the surrounding transaction ends.
func (r *PgxPasswordResetRepository) GetActiveByTokenHash(
	ctx context.Context,
	hash user.PasswordResetTokenHash,
	now time.Time,
) (request user.PasswordResetRequest, err error) {
	row, err := r.queries.GetActivePasswordResetByTokenHash(ctx, sqlcgen.GetActivePasswordResetByTokenHashParams{
		TokenHash: string(hash),
		ExpiresAt: now,
	})
	if errors.Is(err, pgx.ErrNoRows) {
		return request, user.ErrPasswordResetRequestDoesNotExist
	}
	if err != nil {
		return request, err
	}
	return decodePasswordReset(row), nil
}

func (r *PgxPasswordResetRepository) MarkConsumed(
	ctx context.Context,
	userID user.ID,
	hash user.PasswordResetTokenHash,
	at time.Time,
) error {
	updated, err := r.queries.MarkPasswordResetConsumed(ctx, sqlcgen.MarkPasswordResetConsumedParams{
		UserID:     int64(userID),
		TokenHash:  string(hash),
		ConsumedAt: pgtype.Timestamptz{Time: at, Status: pgtype.Present},
	})
	if err != nil {
		return err
	}
	if updated == 0 {
		return user.ErrPasswordResetRequestDoesNotExist
	}
	return nil
}

func (r *PgxPasswordResetRepository) Delete(ctx context.Context, userID user.ID, hash user.PasswordResetTokenHash) error {
	deleted, err := r.queries.DeletePasswordReset(ctx, sqlcgen.DeletePasswordResetParams{
		UserID:    int64(userID),
		TokenHash: string(hash),
	})
	if err != nil {
		return err
	}
	if deleted == 0 {
		return user.ErrPasswordResetRequestDoesNotExist
	}
	return nil
}

// DeleteStale removes expired and consumed requests.
func (r *PgxPasswordResetRepository) DeleteStale(ctx context.Context, now time.Time) (int64, error) {
	return r.queries.DeleteStalePasswordResets(ctx, now)
}

func decodePasswordReset(row sqlcgen.PasswordReset) user.PasswordResetRequest {
	return user.PasswordResetRequest{
		UserID:     user.ID(row.UserID),
		TokenHash:  user.PasswordResetTokenHash(row.TokenHash),
		CreatedAt:  row.CreatedAt.UTC(),
		ExpiresAt:  row.ExpiresAt.UTC(),
		ConsumedAt: c.NewOptional(row.ConsumedAt.Time.UTC(), row.ConsumedAt.Status == pgtype.Present),
	}
}
