package activateuser

import (
	"context"
	"errors"
	"time"

	e "authflow/internal/core/domain/errors"
	"authflow/internal/core/domain/logging"
	uow "authflow/internal/core/domain/unit_of_work"
	"authflow/internal/core/domain/user"
	"authflow/internal/core/services"
)

type Input struct {
	ActivationToken user.ActivationToken
}

type Result struct {
	User user.User
}

type service struct {
	log logging.Logger
	uow uow.UnitOfWork
	now func() time.Time
}

func New(
	log logging.Logger,
	uow uow.UnitOfWork,
	now func() time.Time,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if uow == nil {
		panic(e.NewNilArgumentError("uow"))
	}
	if now == nil {
		panic(e.NewNilArgumentError("now"))
	}
	return &service{
		log: log,
		uow: uow,
		now: now,
	}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	if input.ActivationToken == "" {
		return result, user.ErrInvalidActivationToken
	}

	tx, err := s.uow.Begin(ctx)
	if err != nil {
		logging.Error(ctx, s.log, err)
		return result, err
	}
	defer tx.Rollback(ctx)

	u, err := tx.Users().Activate(ctx, input.ActivationToken, s.now())
	if errors.Is(err, user.ErrInvalidActivationToken) {
		return result, err
	}
	if err != nil {
		logging.Error(ctx, s.log, err)
		return result, err
	}

	if err = tx.Commit(ctx); err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("userID", u.ID))
		return result, err
	}

	s.log.Info(ctx, "User successfully activated.", logging.Entry("userID", u.ID))
	return Result{User: u}, nil
}
