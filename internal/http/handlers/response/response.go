package response

import (
	"encoding/json"
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation"
)

type ErrorCode string

const (
	ErrorCodeInvalidRequest         ErrorCode = "INVALID_REQUEST"
	ErrorCodeValidationFailed       ErrorCode = "VALIDATION_FAILED"
	ErrorCodeInvalidOrExpiredToken  ErrorCode = "INVALID_OR_EXPIRED_TOKEN"
	ErrorCodeUserAlreadyExists      ErrorCode = "USER_ALREADY_EXISTS"
	ErrorCodeInvalidActivationToken ErrorCode = "INVALID_ACTIVATION_TOKEN"
	ErrorCodeInvalidCredentials     ErrorCode = "INVALID_CREDENTIALS"
	ErrorCodeUserNotActive          ErrorCode = "USER_NOT_ACTIVE"
	ErrorCodeUnauthorized           ErrorCode = "UNAUTHORIZED"
	ErrorCodeRateLimitExceeded      ErrorCode = "RATE_LIMIT_EXCEEDED"
	ErrorCodeInternal               ErrorCode = "INTERNAL_ERROR"
)

type errorResponse struct {
	Error  string    `json:"error"`
	Code   ErrorCode `json:"code"`
	Fields error     `json:"fields,omitempty"`
}

type successResponse struct {
	Success bool `json:"success"`
}

func RenderUnauthorized(rw http.ResponseWriter) {
	RenderError(rw, "invalid authentication token", ErrorCodeUnauthorized, http.StatusUnauthorized)
}

func RenderInternalError(rw http.ResponseWriter) {
	RenderError(rw, "internal error", ErrorCodeInternal, http.StatusInternalServerError)
}

func RenderRateLimitExceeded(rw http.ResponseWriter) {
	RenderError(rw, "rate limit exceeded", ErrorCodeRateLimitExceeded, http.StatusTooManyRequests)
}

func RenderInvalidRequest(rw http.ResponseWriter) {
	RenderError(rw, "invalid request data", ErrorCodeInvalidRequest, http.StatusBadRequest)
}

// RenderValidationError exposes per-field messages of ozzo validation errors.
func RenderValidationError(rw http.ResponseWriter, err error) {
	res := errorResponse{Error: "invalid request data", Code: ErrorCodeValidationFailed}
	if fields, ok := err.(validation.Errors); ok {
		res.Fields = fields
	}
	Render(rw, res, http.StatusBadRequest)
}

func RenderError(rw http.ResponseWriter, msg string, code ErrorCode, status int) {
	Render(rw, errorResponse{Error: msg, Code: code}, status)
}

func RenderSuccess(rw http.ResponseWriter, status int) {
	Render(rw, successResponse{Success: true}, status)
}

func Render(rw http.ResponseWriter, res interface{}, status int) {
	rw.Header().Set("Content-Type", "application/json")

	content, err := json.Marshal(res)
	if err != nil {
		rw.WriteHeader(http.StatusInternalServerError)
		return
	}

	rw.WriteHeader(status)
	rw.Write(content)
}
