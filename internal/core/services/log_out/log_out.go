package logout

import (
	"context"
	"errors"

	e "authflow/internal/core/domain/errors"
	"authflow/internal/core/domain/logging"
	"authflow/internal/core/domain/user"
	"authflow/internal/core/services"
)

type Input struct {
	Token user.SessionToken
}

type Result struct{}

type service struct {
	log                   logging.Logger
	sessionRepository     user.SessionRepository
	sessionEventPublisher user.SessionEventPublisher
}

func New(
	log logging.Logger,
	sessionRepository user.SessionRepository,
	sessionEventPublisher user.SessionEventPublisher,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if sessionRepository == nil {
		panic(e.NewNilArgumentError("sessionRepository"))
	}
	if sessionEventPublisher == nil {
		panic(e.NewNilArgumentError("sessionEventPublisher"))
	}
	return &service{
		log:                   log,
		sessionRepository:     sessionRepository,
		sessionEventPublisher: sessionEventPublisher,
	}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	userID, err := s.sessionRepository.Delete(ctx, input.Token)
	if errors.Is(err, user.ErrSessionDoesNotExist) {
		return result, err
	}
	if err != nil {
		logging.Error(ctx, s.log, err)
		return result, err
	}

	s.sessionEventPublisher.PublishSessionEvent(ctx, userID, user.SessionEventSignedOut)
	s.log.Info(ctx, "User logged out.", logging.Entry("userID", userID))
	return result, nil
}
