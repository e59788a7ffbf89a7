package signupwithemail

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	c "authflow/internal/core/domain/common"
	"authflow/internal/core/domain/user"
	signupwithemail "authflow/internal/core/services/sign_up_with_email"

	"github.com/stretchr/testify/require"
)

const VALID_BODY = `{"name": "Alice", "email": "a@x.com", "password": "NewPass1", "confirmPassword": "NewPass1"}`

type stubService struct {
	err   error
	input *signupwithemail.Input
}

func (s *stubService) Run(ctx context.Context, input signupwithemail.Input) (result signupwithemail.Result, err error) {
	s.input = &input
	if s.err != nil {
		return result, s.err
	}
	result.User = user.User{
		ID:              user.ID(1),
		Email:           input.Email,
		Name:            input.Name,
		ActivationToken: c.NewOptional(user.ActivationToken("activation-token"), true),
	}
	return result, nil
}

func TestSignUpWithEmailHandler(t *testing.T) {
	cases := []struct {
		id             string
		body           string
		serviceErr     error
		expectedStatus int
		expectedBody   string
	}{
		{
			id:             "success",
			body:           VALID_BODY,
			expectedStatus: http.StatusCreated,
			expectedBody:   `{"success":true}`,
		},
		{
			id:             "email already exists",
			body:           VALID_BODY,
			serviceErr:     user.ErrEmailAlreadyExists,
			expectedStatus: http.StatusConflict,
			expectedBody:   `{"error":"user already exists","code":"USER_ALREADY_EXISTS"}`,
		},
		{
			id:             "unexpected error",
			body:           VALID_BODY,
			serviceErr:     errors.New("db is down"),
			expectedStatus: http.StatusInternalServerError,
		},
		{
			id:             "passwords do not match",
			body:           `{"name": "Alice", "email": "a@x.com", "password": "NewPass1", "confirmPassword": "NewPass2"}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			id:             "name too short",
			body:           `{"name": "A", "email": "a@x.com", "password": "NewPass1", "confirmPassword": "NewPass1"}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			id:             "weak password",
			body:           `{"name": "Alice", "email": "a@x.com", "password": "password", "confirmPassword": "password"}`,
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, testcase := range cases {
		t.Run(testcase.id, func(t *testing.T) {
			stub := &stubService{err: testcase.serviceErr}
			handler := New(stub, false)

			rw := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/auth/signup", strings.NewReader(testcase.body))
			handler.ServeHTTP(rw, req)

			require.Equal(t, testcase.expectedStatus, rw.Code)
			if testcase.expectedBody != "" {
				require.JSONEq(t, testcase.expectedBody, rw.Body.String())
			}
			require.Empty(t, rw.Header().Get("x-test-activation-token"))
		})
	}
}

func TestSignUpWithEmailHandlerPassesNormalizedInput(t *testing.T) {
	stub := &stubService{}
	handler := New(stub, true)

	rw := httptest.NewRecorder()
	body := `{"name": "Alice", "email": " A@X.com", "password": "NewPass1", "confirmPassword": "NewPass1"}`
	handler.ServeHTTP(rw, httptest.NewRequest(http.MethodPost, "/auth/signup", strings.NewReader(body)))

	require.Equal(t, http.StatusCreated, rw.Code)
	require.Equal(t, c.Email("a@x.com"), stub.input.Email)
	require.Equal(t, user.Name("Alice"), stub.input.Name)
	require.Equal(t, user.RawPassword("NewPass1"), stub.input.Password)
	require.Equal(t, "activation-token", rw.Header().Get("x-test-activation-token"))
}
