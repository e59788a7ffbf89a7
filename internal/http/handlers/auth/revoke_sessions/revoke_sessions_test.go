package revokesessions

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"authflow/internal/core/domain/user"
	revokesessions "authflow/internal/core/services/revoke_sessions"

	"github.com/stretchr/testify/require"
)

type stubService struct {
	err error
}

func (s *stubService) Run(ctx context.Context, input revokesessions.Input) (result revokesessions.Result, err error) {
	if s.err != nil {
		return result, s.err
	}
	return revokesessions.Result{Revoked: 3}, nil
}

func TestRevokeSessionsHandler(t *testing.T) {
	cases := []struct {
		id             string
		serviceErr     error
		expectedStatus int
		expectedBody   string
	}{
		{id: "success", expectedStatus: http.StatusOK, expectedBody: `{"revoked":3}`},
		{id: "unauthenticated", serviceErr: user.ErrUserDoesNotExist, expectedStatus: http.StatusUnauthorized},
		{id: "unexpected error", serviceErr: errors.New("boom"), expectedStatus: http.StatusInternalServerError},
	}

	for _, testcase := range cases {
		t.Run(testcase.id, func(t *testing.T) {
			rw := httptest.NewRecorder()
			New(&stubService{err: testcase.serviceErr}).ServeHTTP(
				rw,
				httptest.NewRequest(http.MethodPost, "/auth/sessions/revoke", nil),
			)

			require.Equal(t, testcase.expectedStatus, rw.Code)
			if testcase.expectedBody != "" {
				require.JSONEq(t, testcase.expectedBody, rw.Body.String())
			}
		})
	}
}
