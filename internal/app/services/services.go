package services

import (
	"authflow/internal/app/deps"
	drl "authflow/internal/core/domain/rate_limiter"
	"authflow/internal/core/services"
	activateuser "authflow/internal/core/services/activate_user"
	"authflow/internal/core/services/auth"
	getuserbysessiontoken "authflow/internal/core/services/get_user_by_session_token"
	loginwithemail "authflow/internal/core/services/log_in_with_email"
	logout "authflow/internal/core/services/log_out"
	notifypasswordchanged "authflow/internal/core/services/notify_password_changed"
	ratelimiting "authflow/internal/core/services/rate_limiting"
	resetpassword "authflow/internal/core/services/reset_password"
	revokesessions "authflow/internal/core/services/revoke_sessions"
	sendpasswordresettoken "authflow/internal/core/services/send_password_reset_token"
	signupwithemail "authflow/internal/core/services/sign_up_with_email"
	sweeppasswordresets "authflow/internal/core/services/sweep_password_resets"
	"authflow/internal/implementations/metrics"
)

type Services struct {
	SignUpWithEmail        services.Service[signupwithemail.Input, signupwithemail.Result]
	ActivateUser           services.Service[activateuser.Input, activateuser.Result]
	LogInWithEmail         services.Service[loginwithemail.Input, loginwithemail.Result]
	LogOut                 services.Service[logout.Input, logout.Result]
	RevokeSessions         services.Service[revokesessions.Input, revokesessions.Result]
	GetUserBySessionToken  services.Service[getuserbysessiontoken.Input, getuserbysessiontoken.Result]
	SendPasswordResetToken services.Service[sendpasswordresettoken.Input, sendpasswordresettoken.Result]
	ResetPassword          services.Service[resetpassword.Input, resetpassword.Result]
	SweepPasswordResets    services.Service[sweeppasswordresets.Input, sweeppasswordresets.Result]
	NotifyPasswordChanged  services.Service[notifypasswordchanged.Input, notifypasswordchanged.Result]
}

func InitServices(deps *deps.Deps) *Services {
	s := &Services{}

	s.SignUpWithEmail = metrics.WithOutcomes(
		deps.Metrics,
		"sign_up_with_email",
		ratelimiting.WithRateLimiting(
			deps.Logger,
			deps.RateLimiter,
			drl.Limit{Interval: drl.Hour, Value: 5},
			signupwithemail.NewWithActivationTokenSending(
				deps.Logger,
				deps.UserActivationTokenSender,
				signupwithemail.New(
					deps.Logger,
					deps.UnitOfWork,
					deps.PasswordHasher,
					deps.UserActivationTokenGenerator,
					deps.Now,
				),
			),
		),
	)
	s.ActivateUser = activateuser.New(
		deps.Logger,
		deps.UnitOfWork,
		deps.Now,
	)
	s.LogInWithEmail = metrics.WithOutcomes(
		deps.Metrics,
		"log_in_with_email",
		ratelimiting.WithRateLimiting(
			deps.Logger,
			deps.RateLimiter,
			drl.Limit{Interval: drl.Hour, Value: 10},
			loginwithemail.New(
				deps.Logger,
				deps.UserRepository,
				deps.SessionRepository,
				deps.PasswordHasher,
				deps.UserSessionTokenGenerator,
				deps.SessionEventPublisher,
				deps.Now,
			),
		),
	)
	s.LogOut = logout.New(
		deps.Logger,
		deps.SessionRepository,
		deps.SessionEventPublisher,
	)
	s.RevokeSessions = auth.WithAuthentication(
		deps.SessionRepository,
		revokesessions.New(
			deps.Logger,
			deps.SessionRepository,
			deps.SessionEventPublisher,
		),
	)
	s.GetUserBySessionToken = getuserbysessiontoken.New(
		deps.Logger,
		deps.SessionRepository,
	)
	s.SendPasswordResetToken = metrics.WithOutcomes(
		deps.Metrics,
		"send_password_reset_token",
		ratelimiting.WithRateLimiting(
			deps.Logger,
			deps.RateLimiter,
			drl.Limit{Interval: drl.Hour, Value: 3},
			sendpasswordresettoken.New(
				deps.Logger,
				deps.UserRepository,
				deps.PasswordResetRepository,
				deps.PasswordResetTokenGenerator,
				deps.PasswordResetTokenSender,
				deps.Now,
				deps.Config.PasswordResetValidDurationHours,
			),
		),
	)
	s.ResetPassword = metrics.WithOutcomes(
		deps.Metrics,
		"reset_password",
		ratelimiting.WithRateLimiting(
			deps.Logger,
			deps.RateLimiter,
			drl.Limit{Interval: drl.Minute, Value: 5},
			resetpassword.New(
				deps.Logger,
				deps.UnitOfWork,
				deps.PasswordResetRepository,
				deps.PasswordHasher,
				deps.PasswordChangedPublisher,
				deps.SessionEventPublisher,
				deps.Now,
			),
		),
	)
	s.SweepPasswordResets = metrics.WithOutcomes(
		deps.Metrics,
		"sweep_password_resets",
		sweeppasswordresets.New(
			deps.Logger,
			deps.PasswordResetRepository,
			deps.Now,
		),
	)
	s.NotifyPasswordChanged = notifypasswordchanged.New(
		deps.Logger,
		deps.UserRepository,
		deps.PasswordChangedSender,
	)

	return s
}
