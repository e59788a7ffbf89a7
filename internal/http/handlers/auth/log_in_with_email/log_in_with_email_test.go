package loginwithemail

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	c "authflow/internal/core/domain/common"
	ratelimiter "authflow/internal/core/domain/rate_limiter"
	"authflow/internal/core/domain/user"
	loginwithemail "authflow/internal/core/services/log_in_with_email"

	"github.com/stretchr/testify/require"
)

const VALID_BODY = `{"email": "a@x.com", "password": "NewPass1"}`

type stubService struct {
	err   error
	input *loginwithemail.Input
}

func (s *stubService) Run(ctx context.Context, input loginwithemail.Input) (result loginwithemail.Result, err error) {
	s.input = &input
	if s.err != nil {
		return result, s.err
	}
	return loginwithemail.Result{Token: user.SessionToken("session-token")}, nil
}

func TestLogInWithEmailHandler(t *testing.T) {
	cases := []struct {
		id             string
		body           string
		serviceErr     error
		expectedStatus int
		expectedBody   string
	}{
		{id: "success", body: VALID_BODY, expectedStatus: http.StatusOK, expectedBody: `{"token":"session-token"}`},
		{
			id:             "invalid credentials",
			body:           VALID_BODY,
			serviceErr:     user.ErrInvalidCredentials,
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `{"error":"invalid credentials","code":"INVALID_CREDENTIALS"}`,
		},
		{
			id:             "not active",
			body:           VALID_BODY,
			serviceErr:     user.ErrUserIsNotActive,
			expectedStatus: http.StatusForbidden,
			expectedBody:   `{"error":"user is not active","code":"USER_NOT_ACTIVE"}`,
		},
		{id: "rate limit", body: VALID_BODY, serviceErr: ratelimiter.ErrRateLimitExceeded, expectedStatus: http.StatusTooManyRequests},
		{id: "unexpected error", body: VALID_BODY, serviceErr: errors.New("boom"), expectedStatus: http.StatusInternalServerError},
		{id: "short password", body: `{"email": "a@x.com", "password": "short"}`, expectedStatus: http.StatusBadRequest},
	}

	for _, testcase := range cases {
		t.Run(testcase.id, func(t *testing.T) {
			rw := httptest.NewRecorder()
			New(&stubService{err: testcase.serviceErr}).ServeHTTP(
				rw,
				httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(testcase.body)),
			)

			require.Equal(t, testcase.expectedStatus, rw.Code)
			if testcase.expectedBody != "" {
				require.JSONEq(t, testcase.expectedBody, rw.Body.String())
			}
		})
	}
}

func TestLogInWithEmailHandlerTrimsEmailBeforeValidation(t *testing.T) {
	stub := &stubService{}
	rw := httptest.NewRecorder()
	New(stub).ServeHTTP(
		rw,
		httptest.NewRequest(
			http.MethodPost,
			"/auth/login",
			strings.NewReader(`{"email": " A@X.com ", "password": "NewPass1"}`),
		),
	)

	require.Equal(t, http.StatusOK, rw.Code)
	require.Equal(t, c.Email("a@x.com"), stub.input.Email)
}
