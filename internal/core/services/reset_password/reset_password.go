package resetpassword

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
	Token       user.PasswordResetToken
	NewPassword user.RawPassword
}

func (i Input) GetRateLimitKey() string {
	return "reset-password::" + string(i.Token.Hash())
}

type Result struct {
	UserID user.ID
}

type service struct {
	log                      logging.Logger
	unitOfWork               uow.UnitOfWork
	passwordResetRepository  user.PasswordResetRepository
	passwordHasher           user.PasswordHasher
	passwordChangedPublisher user.PasswordChangedPublisher
	sessionEventPublisher    user.SessionEventPublisher
	now                      func() time.Time
}

func New(
	log logging.Logger,
	unitOfWork uow.UnitOfWork,
	passwordResetRepository user.PasswordResetRepository,
	passwordHasher user.PasswordHasher,
	passwordChangedPublisher user.PasswordChangedPublisher,
	sessionEventPublisher user.SessionEventPublisher,
	now func() time.Time,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if unitOfWork == nil {
		panic(e.NewNilArgumentError("unitOfWork"))
	}
	if passwordResetRepository == nil {
		panic(e.NewNilArgumentError("passwordResetRepository"))
	}
	if passwordHasher == nil {
		panic(e.NewNilArgumentError("passwordHasher"))
	}
	if passwordChangedPublisher == nil {
		panic(e.NewNilArgumentError("passwordChangedPublisher"))
	}
	if sessionEventPublisher == nil {
		panic(e.NewNilArgumentError("sessionEventPublisher"))
	}
	if now == nil {
		panic(e.NewNilArgumentError("now"))
	}
	return &service{
		log:                      log,
		unitOfWork:               unitOfWork,
		passwordResetRepository:  passwordResetRepository,
		passwordHasher:           passwordHasher,
		passwordChangedPublisher: passwordChangedPublisher,
		sessionEventPublisher:    sessionEventPublisher,
		now:                      now,
	}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	if input.Token == "" {
		return result, user.ErrInvalidOrExpiredPasswordResetToken
	}

	passwordHash, err := s.passwordHasher.HashPassword(input.NewPassword)
	if err != nil {
		s.log.Error(ctx, "Could not hash password.", logging.Entry("err", err))
		return result, err
	}

	now := s.now()
	request, err := s.consume(ctx, input.Token.Hash(), passwordHash, now)
	if err != nil {
		return result, err
	}

	// The request is already marked as consumed, a leftover row is harmless.
	if err := s.passwordResetRepository.Delete(ctx, request.UserID, request.TokenHash); err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("userID", request.UserID))
	}

	err = s.passwordChangedPublisher.PublishPasswordChanged(
		ctx,
		user.PasswordChangedEvent{UserID: request.UserID, At: now},
	)
	if err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("userID", request.UserID))
	}
	s.sessionEventPublisher.PublishSessionEvent(ctx, request.UserID, user.SessionEventSessionsRevoked)

	s.log.Info(ctx, "New password has been successfully set.", logging.Entry("userID", request.UserID))
	return Result{UserID: request.UserID}, nil
}

func (s *service) consume(
	ctx context.Context,
	tokenHash user.PasswordResetTokenHash,
	passwordHash user.PasswordHash,
	now time.Time,
) (request user.PasswordResetRequest, err error) {
	tx, err := s.unitOfWork.Begin(ctx)
	if errors.Is(err, context.Canceled) {
		return request, err
	}
	if err != nil {
		s.log.Error(ctx, "Could not begin unit of work.", logging.Entry("err", err))
		return request, err
	}
	defer tx.Rollback(ctx)

	request, err = tx.PasswordResets().GetActiveByTokenHash(ctx, tokenHash, now)
	if errors.Is(err, context.Canceled) {
		return request, err
	}
	if errors.Is(err, user.ErrPasswordResetRequestDoesNotExist) {
		s.log.Info(ctx, "Password reset token is invalid or expired.")
		return request, user.ErrInvalidOrExpiredPasswordResetToken
	}
	if err != nil {
		s.log.Error(ctx, "Could not get password reset request.", logging.Entry("err", err))
		return request, err
	}

	if err := tx.Users().SetPassword(ctx, request.UserID, passwordHash); err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("userID", request.UserID))
		return request, err
	}
	if err := tx.PasswordResets().MarkConsumed(ctx, request.UserID, tokenHash, now); err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("userID", request.UserID))
		return request, err
	}
	revoked, err := tx.Sessions().DeleteAllForUser(ctx, request.UserID)
	if err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("userID", request.UserID))
		return request, err
	}

	if err := tx.Commit(ctx); err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("userID", request.UserID))
		return request, err
	}

	s.log.Info(
		ctx,
		"Password reset request has been consumed.",
		logging.Entry("userID", request.UserID),
		logging.Entry("revokedSessions", revoked),
	)
	return request, nil
}
