package revokesessions

import (
	"errors"
	"net/http"

	e "authflow/internal/core/domain/errors"
	"authflow/internal/core/domain/user"
	"authflow/internal/core/services"
	revokesessions "authflow/internal/core/services/revoke_sessions"
	"authflow/internal/http/handlers/response"
)

type Handler struct {
	service services.Service[revokesessions.Input, revokesessions.Result]
}

func New(
	service services.Service[revokesessions.Input, revokesessions.Result],
) *Handler {
	if service == nil {
		panic(e.NewNilArgumentError("service"))
	}
	return &Handler{service: service}
}

type Result struct {
	Revoked int64 `json:"revoked"`
}

// ServeHTTP expects the session token to be put into the context by auth middleware.
func (h *Handler) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	result, err := h.service.Run(r.Context(), revokesessions.Input{})
	if errors.Is(err, user.ErrUserDoesNotExist) {
		response.RenderUnauthorized(rw)
		return
	}
	if err != nil {
		response.RenderInternalError(rw)
		return
	}
	response.Render(rw, Result{Revoked: result.Revoked}, http.StatusOK)
}
