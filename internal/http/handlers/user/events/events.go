package events

import (
	"errors"
	"net/http"

	e "authflow/internal/core/domain/errors"
	"authflow/internal/core/domain/logging"
	"authflow/internal/core/domain/user"
	"authflow/internal/core/services"
	s "authflow/internal/core/services/get_user_by_session_token"
	sessionevents "authflow/internal/implementations/session_events"
	"authflow/internal/http/handlers/auth"
	"authflow/internal/http/handlers/response"

	"github.com/go-chi/chi/v5"
	"github.com/r3labs/sse/v2"
)

type Handler struct {
	log       logging.Logger
	service   services.Service[s.Input, s.Result]
	sseServer *sse.Server
}

func New(
	log logging.Logger,
	sseServer *sse.Server,
	service services.Service[s.Input, s.Result],
) *Handler {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if sseServer == nil {
		panic(e.NewNilArgumentError("sseServer"))
	}
	if service == nil {
		panic(e.NewNilArgumentError("service"))
	}
	return &Handler{log: log, sseServer: sseServer, service: service}
}

// ServeHTTP subscribes the session owner to their own stream. EventSource cannot
// set headers, so the session token comes as a URL parameter.
func (h *Handler) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "sessionToken")
	if token == "" || len(token) > auth.AUTH_TOKEN_MAX_LEN {
		response.RenderUnauthorized(rw)
		return
	}

	result, err := h.service.Run(r.Context(), s.Input{Token: user.SessionToken(token)})
	if err != nil {
		switch {
		case errors.Is(err, user.ErrUserDoesNotExist):
			response.RenderUnauthorized(rw)
		default:
			response.RenderInternalError(rw)
		}
		return
	}

	streamID := r.URL.Query().Get("stream")
	if streamID != sessionevents.StreamID(result.User.ID) {
		response.RenderError(rw, "invalid stream", response.ErrorCodeInvalidRequest, http.StatusBadRequest)
		return
	}

	go func() {
		<-r.Context().Done()
		h.log.Info(
			r.Context(),
			"Unsubscribed from session events.",
			logging.Entry("userID", result.User.ID),
		)
	}()

	h.log.Info(
		r.Context(),
		"Subscribed to session events.",
		logging.Entry("userID", result.User.ID),
		logging.Entry("streamID", streamID),
	)
	h.sseServer.ServeHTTP(rw, r)
}
