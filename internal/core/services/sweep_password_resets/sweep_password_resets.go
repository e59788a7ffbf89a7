package sweeppasswordresets

import (
	"context"
	"time"

	e "authflow/internal/core/domain/errors"
	"authflow/internal/core/domain/logging"
	"authflow/internal/core/domain/user"
	"authflow/internal/core/services"
)

type Input struct{}

type Result struct {
	Deleted int64
}

type service struct {
	log                     logging.Logger
	passwordResetRepository user.PasswordResetRepository
	now                     func() time.Time
}

// New removes expired and consumed password reset requests.
// Lookups reject such requests anyway, the sweep only keeps the table small.
func New(
	log logging.Logger,
	passwordResetRepository user.PasswordResetRepository,
	now func() time.Time,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if passwordResetRepository == nil {
		panic(e.NewNilArgumentError("passwordResetRepository"))
	}
	if now == nil {
		panic(e.NewNilArgumentError("now"))
	}
	return &service{
		log:                     log,
		passwordResetRepository: passwordResetRepository,
		now:                     now,
	}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	deleted, err := s.passwordResetRepository.DeleteStale(ctx, s.now())
	if err != nil {
		logging.Error(ctx, s.log, err)
		return result, err
	}
	if deleted > 0 {
		s.log.Info(ctx, "Stale password reset requests deleted.", logging.Entry("count", deleted))
	}
	return Result{Deleted: deleted}, nil
}
