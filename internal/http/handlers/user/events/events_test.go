package events

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	c "authflow/internal/core/domain/common"
	"authflow/internal/core/domain/logging"
	"authflow/internal/core/domain/user"
	service "authflow/internal/core/services/get_user_by_session_token"

	"github.com/go-chi/chi/v5"
	"github.com/r3labs/sse/v2"
	"github.com/stretchr/testify/require"
)

type stubService struct{}

func (s *stubService) Run(ctx context.Context, input service.Input) (result service.Result, err error) {
	if input.Token != user.SessionToken("abc") {
		return result, user.ErrUserDoesNotExist
	}
	result.User = user.User{
		ID:           user.ID(7),
		Email:        c.NewEmail("a@x.com"),
		PasswordHash: user.PasswordHash("hash"),
	}
	return result, nil
}

func newTestServer(t *testing.T) (*httptest.Server, *sse.Server) {
	sseServer := sse.New()
	sseServer.AutoStream = true
	sseServer.AutoReplay = false
	t.Cleanup(sseServer.Close)

	router := chi.NewRouter()
	router.Method(
		http.MethodGet,
		"/profile/events/{sessionToken}",
		New(logging.NewFakeLogger(), sseServer, &stubService{}),
	)
	server := httptest.NewServer(router)
	t.Cleanup(server.Close)
	return server, sseServer
}

func TestEventsHandlerRejectsRequests(t *testing.T) {
	server, _ := newTestServer(t)

	cases := []struct {
		id             string
		path           string
		expectedStatus int
	}{
		{id: "unknown token", path: "/profile/events/unknown?stream=7", expectedStatus: http.StatusUnauthorized},
		{id: "foreign stream", path: "/profile/events/abc?stream=8", expectedStatus: http.StatusBadRequest},
		{id: "missing stream", path: "/profile/events/abc", expectedStatus: http.StatusBadRequest},
	}
	for _, testcase := range cases {
		t.Run(testcase.id, func(t *testing.T) {
			resp, err := http.Get(server.URL + testcase.path)
			require.Nil(t, err)
			defer resp.Body.Close()
			require.Equal(t, testcase.expectedStatus, resp.StatusCode)
		})
	}
}

func TestEventsHandlerSubscribes(t *testing.T) {
	server, sseServer := newTestServer(t)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, server.URL+"/profile/events/abc?stream=7", nil)
	require.Nil(t, err)

	resp, err := http.DefaultClient.Do(req)
	require.Nil(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))
	require.True(t, sseServer.StreamExists("7"))
}

func TestEventsHandlerKeepsStreamForRemainingSubscribers(t *testing.T) {
	server, sseServer := newTestServer(t)

	subscribe := func(ctx context.Context) *http.Response {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, server.URL+"/profile/events/abc?stream=7", nil)
		require.Nil(t, err)
		resp, err := http.DefaultClient.Do(req)
		require.Nil(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		return resp
	}

	firstCtx, closeFirst := context.WithCancel(context.Background())
	first := subscribe(firstCtx)
	secondCtx, closeSecond := context.WithTimeout(context.Background(), 5*time.Second)
	defer closeSecond()
	second := subscribe(secondCtx)
	defer second.Body.Close()

	closeFirst()
	first.Body.Close()

	require.Never(
		t,
		func() bool { return !sseServer.StreamExists("7") },
		300*time.Millisecond,
		20*time.Millisecond,
	)
}
