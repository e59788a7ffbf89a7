package signupwithemail

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
	signupwithemail "authflow/internal/core/services/sign_up_with_email"
	"authflow/internal/http/handlers/response"
	"authflow/internal/http/handlers/rules"

	validation "github.com/go-ozzo/ozzo-validation"
)

type Handler struct {
	service    services.Service[signupwithemail.Input, signupwithemail.Result]
	isTestMode bool
}

func New(
	service services.Service[signupwithemail.Input, signupwithemail.Result],
	isTestMode bool,
) *Handler {
	if service == nil {
		panic(e.NewNilArgumentError("service"))
	}
	return &Handler{service: service, isTestMode: isTestMode}
}

type Input struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
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
		validation.Field(&i.Name, rules.Name...),
		validation.Field(&i.Email, rules.Email...),
		validation.Field(&i.Password, rules.Password...),
		validation.Field(
			&i.ConfirmPassword,
			validation.Required,
			rules.Equals(i.Password, "passwords do not match"),
		),
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
		signupwithemail.Input{
			Name:     user.Name(input.Name),
			Email:    c.NewEmail(input.Email),
			Password: user.RawPassword(input.Password),
		},
	)
	switch {
	case errors.Is(err, user.ErrEmailAlreadyExists):
		response.RenderError(rw, "user already exists", response.ErrorCodeUserAlreadyExists, http.StatusConflict)
		return
	case errors.Is(err, ratelimiter.ErrRateLimitExceeded):
		response.RenderRateLimitExceeded(rw)
		return
	case err != nil:
		response.RenderInternalError(rw)
		return
	}

	if h.isTestMode && result.User.ActivationToken.IsPresent {
		rw.Header().Set("x-test-activation-token", string(result.User.ActivationToken.Value))
	}
	response.RenderSuccess(rw, http.StatusCreated)
}
