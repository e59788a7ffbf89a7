package revokesessions

import (
	"context"

	e "authflow/internal/core/domain/errors"
	"authflow/internal/core/domain/logging"
	"authflow/internal/core/domain/user"
	"authflow/internal/core/services"
	"authflow/internal/core/services/auth"
)

type Input struct {
	User user.User
}

func (i Input) WithAuthenticatedUser(u user.User) auth.Input {
	i.User = u
	return i
}

type Result struct {
	Revoked int64
}

type service struct {
	log                   logging.Logger
	sessionRepository     user.SessionRepository
	sessionEventPublisher user.SessionEventPublisher
}

// New signs the user out of every device including the current one.
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
	revoked, err := s.sessionRepository.DeleteAllForUser(ctx, input.User.ID)
	if err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("userID", input.User.ID))
		return result, err
	}

	s.sessionEventPublisher.PublishSessionEvent(ctx, input.User.ID, user.SessionEventSessionsRevoked)
	s.log.Info(
		ctx,
		"User sessions have been revoked.",
		logging.Entry("userID", input.User.ID),
		logging.Entry("revoked", revoked),
	)
	return Result{Revoked: revoked}, nil
}
