package user

import (
	"errors"
)

var (
	ErrEmailAlreadyExists                 = errors.New("email already exists")
	ErrUserDoesNotExist                   = errors.New("user does not exist")
	ErrInvalidCredentials                 = errors.New("invalid credentials")
	ErrUserIsNotActive                    = errors.New("user is not active")
	ErrInvalidActivationToken             = errors.New("invalid activation token")
	ErrSessionDoesNotExist                = errors.New("session does not exist")
	ErrInvalidOrExpiredPasswordResetToken = errors.New("invalid or expired password reset token")
	ErrPasswordResetRequestDoesNotExist   = errors.New("password reset request does not exist")
)
