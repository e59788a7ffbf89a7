package app

import (
	"net/http"

	"authflow/internal/app/deps"
	"authflow/internal/app/services"
	"authflow/internal/http/handlers/auth"
	activateuser "authflow/internal/http/handlers/auth/activate_user"
	loginwithemail "authflow/internal/http/handlers/auth/log_in_with_email"
	logout "authflow/internal/http/handlers/auth/log_out"
	resetpassword "authflow/internal/http/handlers/auth/reset_password"
	revokesessions "authflow/internal/http/handlers/auth/revoke_sessions"
	sendpasswordresettoken "authflow/internal/http/handlers/auth/send_password_reset_token"
	signupwithemail "authflow/internal/http/handlers/auth/sign_up_with_email"
	"authflow/internal/http/handlers/user/events"
	me "authflow/internal/http/handlers/user/me"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

func InitHttpServer(deps *deps.Deps, s *services.Services) *http.Server {
	return &http.Server{
		Handler: NewRouter(deps, s),
		Addr:    deps.Config.ListenAddr(),
	}
}

func NewRouter(deps *deps.Deps, s *services.Services) http.Handler {
	authRouter := chi.NewRouter()
	authRouter.Method(http.MethodPost, "/signup", signupwithemail.New(s.SignUpWithEmail, deps.Config.IsTestMode))
	authRouter.Method(http.MethodPost, "/activate", activateuser.New(s.ActivateUser))
	authRouter.Method(http.MethodPost, "/login", loginwithemail.New(s.LogInWithEmail))
	authRouter.Method(http.MethodPost, "/logout", logout.New(s.LogOut))
	authRouter.Method(
		http.MethodPost,
		"/password_reset/token",
		sendpasswordresettoken.New(s.SendPasswordResetToken),
	)
	authRouter.Method(http.MethodPut, "/password_reset", resetpassword.New(s.ResetPassword))
	authRouter.With(auth.SetAuthTokenToContext).Method(
		http.MethodPost,
		"/sessions/revoke",
		revokesessions.New(s.RevokeSessions),
	)

	profileRouter := chi.NewRouter()
	profileRouter.Method(http.MethodGet, "/me", me.New(s.GetUserBySessionToken))
	profileRouter.Method(
		http.MethodGet,
		"/events/{sessionToken}",
		events.New(deps.Logger, deps.SseServer, s.GetUserBySessionToken),
	)

	router := chi.NewRouter()
	router.Use(deps.Metrics.Middleware)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   deps.Config.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: false,
		MaxAge:           300, // Maximum value not ignored by any of major browsers
	}))
	router.Mount("/auth", authRouter)
	router.Mount("/profile", profileRouter)
	router.Method(http.MethodGet, "/metrics", deps.Metrics.Handler())

	return router
}
