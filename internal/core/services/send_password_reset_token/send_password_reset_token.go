package sendpasswordresettoken

import (
	"context"
	"errors"
	"time"

	c "authflow/internal/core/domain/common"
	e "authflow/internal/core/domain/errors"
	"authflow/internal/core/domain/logging"
	"authflow/internal/core/domain/user"
	"authflow/internal/core/services"
)

type Input struct {
	Email c.Email
}

func (i Input) GetRateLimitKey() string {
	return "send-password-reset-token::" + string(i.Email)
}

type Result struct{}

type service struct {
	log                     logging.Logger
	userRepository          user.UserRepository
	passwordResetRepository user.PasswordResetRepository
	tokenGenerator          user.PasswordResetTokenGenerator
	sender                  user.PasswordResetTokenSender
	now                     func() time.Time
	validHours              int
}

func New(
	log logging.Logger,
	userRepository user.UserRepository,
	passwordResetRepository user.PasswordResetRepository,
	tokenGenerator user.PasswordResetTokenGenerator,
	sender user.PasswordResetTokenSender,
	now func() time.Time,
	validHours int,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if userRepository == nil {
		panic(e.NewNilArgumentError("userRepository"))
	}
	if passwordResetRepository == nil {
		panic(e.NewNilArgumentError("passwordResetRepository"))
	}
	if tokenGenerator == nil {
		panic(e.NewNilArgumentError("tokenGenerator"))
	}
	if sender == nil {
		panic(e.NewNilArgumentError("sender"))
	}
	if now == nil {
		panic(e.NewNilArgumentError("now"))
	}
	if validHours <= 0 {
		validHours = user.DefaultPasswordResetValidHours
	}
	return &service{
		log:                     log,
		userRepository:          userRepository,
		passwordResetRepository: passwordResetRepository,
		tokenGenerator:          tokenGenerator,
		sender:                  sender,
		now:                     now,
		validHours:              validHours,
	}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	u, err := s.userRepository.GetByEmail(ctx, input.Email)
	if errors.Is(err, context.Canceled) {
		return result, err
	}
	if errors.Is(err, user.ErrUserDoesNotExist) {
		// The caller gets the same answer for known and unknown emails.
		s.log.Info(ctx, "Password reset requested for unknown email.", logging.Entry("email", input.Email))
		return result, nil
	}
	if err != nil {
		s.log.Error(ctx, "Could not get user by email.", logging.Entry("email", input.Email), logging.Entry("err", err))
		return result, err
	}

	token, err := s.tokenGenerator.GeneratePasswordResetToken()
	if err != nil {
		s.log.Error(ctx, "Could not generate password reset token.", logging.Entry("err", err))
		return result, err
	}

	request := user.NewPasswordResetRequest(u.ID, token, s.now(), s.validHours)
	err = s.passwordResetRepository.Upsert(ctx, request)
	if errors.Is(err, context.Canceled) {
		return result, err
	}
	if err != nil {
		s.log.Error(
			ctx,
			"Could not store password reset request.",
			logging.Entry("userID", u.ID),
			logging.Entry("err", err),
		)
		return result, err
	}

	err = s.sender.SendPasswordResetToken(ctx, u, token)
	if errors.Is(err, context.Canceled) {
		return result, err
	}
	if err != nil {
		s.log.Error(
			ctx,
			"Could not send password reset token.",
			logging.Entry("userID", u.ID),
			logging.Entry("err", err),
		)
		return result, err
	}

	s.log.Info(
		ctx,
		"Password reset token has been sent.",
		logging.Entry("userID", u.ID),
		logging.Entry("expiresAt", request.ExpiresAt),
	)
	return result, nil
}
