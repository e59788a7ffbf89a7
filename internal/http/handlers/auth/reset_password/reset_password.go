package resetpassword

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	e "authflow/internal/core/domain/errors"
	ratelimiter "authflow/internal/core/domain/rate_limiter"
	"authflow/internal/core/domain/user"
	"authflow/internal/core/services"
	resetpassword "authflow/internal/core/services/reset_password"
	"authflow/internal/http/handlers/response"
	"authflow/internal/http/handlers/rules"

	validation "github.com/go-ozzo/ozzo-validation"
)

type Handler struct {
	service services.Service[resetpassword.Input, resetpassword.Result]
}

func New(
	service services.Service[resetpassword.Input, resetpassword.Result],
) *Handler {
	if service == nil {
		panic(e.NewNilArgumentError("service"))
	}
	return &Handler{service: service}
}

type Input struct {
	Token    string `json:"token"`
	Password string `json:"password"`
}

func (i *Input) FromJSON(r io.Reader) error {
	e := json.NewDecoder(r)
	return e.Decode(i)
}

func (i Input) Validate() error {
	return validation.ValidateStruct(&i,
		validation.Field(&i.Token, rules.Token...),
		validation.Field(&i.Password, rules.Password...),
	)
}

func (h *Handler) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	input := Input{}
	if err := input.FromJSON(r.Body); err != nil {
		response.RenderInvalidRequest(rw)
		return
	}
	if err := input.Validate(); err != nil {
		response.RenderValidationError(rw, err)
		return
	}

	_, err := h.service.Run(
		r.Context(),
		resetpassword.Input{
			Token:       user.PasswordResetToken(input.Token),
			NewPassword: user.RawPassword(input.Password),
		},
	)
	switch {
	case err == nil:
		response.RenderSuccess(rw, http.StatusOK)
	case errors.Is(err, user.ErrInvalidOrExpiredPasswordResetToken):
		response.RenderError(rw, "Invalid or expired token", response.ErrorCodeInvalidOrExpiredToken, http.StatusBadRequest)
	case errors.Is(err, ratelimiter.ErrRateLimitExceeded):
		response.RenderRateLimitExceeded(rw)
	default:
		response.RenderInternalError(rw)
	}
}
