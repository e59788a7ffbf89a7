package notifypasswordchanged

import (
	"context"
	"errors"

	e "authflow/internal/core/domain/errors"
	"authflow/internal/core/domain/logging"
	"authflow/internal/core/domain/user"
	"authflow/internal/core/services"
)

type Input struct {
	Event user.PasswordChangedEvent
}

type Result struct{}

type service struct {
	log            logging.Logger
	userRepository user.UserRepository
	sender         user.PasswordChangedSender
}

func New(
	log logging.Logger,
	userRepository user.UserRepository,
	sender user.PasswordChangedSender,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if userRepository == nil {
		panic(e.NewNilArgumentError("userRepository"))
	}
	if sender == nil {
		panic(e.NewNilArgumentError("sender"))
	}
	return &service{
		log:            log,
		userRepository: userRepository,
		sender:         sender,
	}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	u, err := s.userRepository.GetByID(ctx, input.Event.UserID)
	if errors.Is(err, user.ErrUserDoesNotExist) {
		s.log.Warning(ctx, "Password changed for unknown user.", logging.Entry("userID", input.Event.UserID))
		return result, nil
	}
	if err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("userID", input.Event.UserID))
		return result, err
	}

	if err := s.sender.SendPasswordChanged(ctx, u, input.Event.At); err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("userID", u.ID))
		return result, err
	}

	s.log.Info(ctx, "Password changed notice has been sent.", logging.Entry("userID", u.ID))
	return result, nil
}
