package loginwithemail

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	c "authflow/internal/core/domain/common"
	e "authflow/internal/core/domain/errors"
	ratelimiter "authflow/internal/core/domain/rate_limiter"
	"authflow/internal/core/domain/user"
	"authflow/internal/core/services"
	loginwithemail "authflow/internal/core/services/log_in_with_email"
	"authflow/internal/http/handlers/response"
	"authflow/internal/http/handlers/rules"

	validation "github.com/go-ozzo/ozzo-validation"
)

type Handler struct {
	service services.Service[loginwithemail.Input, loginwithemail.Result]
}

func New(
	service services.Service[loginwithemail.Input, loginwithemail.Result],
) *Handler {
	if service == nil {
		panic(e.NewNilArgumentError("service"))
	}
	return &Handler{service: service}
}

type Input struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type Result struct {
	Token string `json:"token"`
}

func (i *Input) FromJSON(r io.Reader) error {
	e := json.NewDecoder(r)
	if err := e.Decode(i); err != nil {
		return err
	}
	i.Email = string(c.NewEmail(i.Email))
	return nil
}

func (i Input) Validate() error {
	return validation.ValidateStruct(&i,
		validation.Field(&i.Email, rules.Email...),
		validation.Field(&i.Password, validation.Required, validation.Length(rules.PASSWORD_MIN_LEN, rules.PASSWORD_MAX_LEN)),
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

	result, err := h.service.Run(
		r.Context(),
		loginwithemail.Input{Email: c.NewEmail(input.Email), Password: user.RawPassword(input.Password)},
	)
	switch {
	case errors.Is(err, ratelimiter.ErrRateLimitExceeded):
		response.RenderRateLimitExceeded(rw)
	case errors.Is(err, user.ErrInvalidCredentials):
		response.RenderError(rw, "invalid credentials", response.ErrorCodeInvalidCredentials, http.StatusUnauthorized)
	case errors.Is(err, user.ErrUserIsNotActive):
		response.RenderError(rw, "user is not active", response.ErrorCodeUserNotActive, http.StatusForbidden)
	case err != nil:
		response.RenderInternalError(rw)
	default:
		response.Render(rw, Result{Token: string(result.Token)}, http.StatusOK)
	}
}
