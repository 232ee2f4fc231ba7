package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"

	"github.com/adanyl0v/notebook-todo/internal/delivery/http/v1"
	"github.com/adanyl0v/notebook-todo/internal/repository/memory"
	"github.com/adanyl0v/notebook-todo/internal/services"
)

type tokenVerifier map[string]string

func (v tokenVerifier) Verify(_ context.Context, token string) (string, error) {
	userID, ok := v[token]
	if !ok {
		return "", errors.New("unknown token")
	}
	return userID, nil
}

// newTestServer runs the real task API over an in-memory store and
// counts the requests it receives.
func newTestServer(t *testing.T) (*httptest.Server, *atomic.Int64) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	var requests atomic.Int64
	router := gin.New()
	router.Use(func(c *gin.Context) {
		requests.Add(1)
		c.Next()
	})
	v1.RegisterRoutes(router, v1.New(
		zerolog.Nop(),
		tokenVerifier{"alice-token": "auth0|alice", "bob-token": "auth0|bob"},
		services.NewTaskService(zerolog.Nop(), memory.New()),
	))

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)
	return server, &requests
}

func tokenSource(token string) oauth2.TokenSource {
	return oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token, TokenType: "Bearer"})
}

func authenticatedController(t *testing.T, serverURL, token string) *Controller {
	t.Helper()
	ctrl := NewController(serverURL, newHTTPClient())
	require.NoError(t, ctrl.Authenticate(context.Background(), tokenSource(token)))
	return ctrl
}

func newHTTPClient() *http.Client {
	return &http.Client{}
}

func TestController_Scenario(t *testing.T) {
	server, _ := newTestServer(t)
	ctx := context.Background()

	ctrl := NewController(server.URL, newHTTPClient())
	assert.Equal(t, StatusUnauthenticated, ctrl.State().Status)

	require.NoError(t, ctrl.Authenticate(ctx, tokenSource("alice-token")))
	assert.Equal(t, StatusReady, ctrl.State().Status)
	assert.Empty(t, ctrl.State().Tasks)

	created, err := ctrl.Add(ctx, "Buy milk")
	require.NoError(t, err)
	require.NotNil(t, created)
	assert.NotEmpty(t, created.ID)
	assert.False(t, created.Completed)

	toggled, err := ctrl.Toggle(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, toggled.Completed)

	state := ctrl.State()
	require.Len(t, state.Tasks, 1)
	assert.True(t, state.Tasks[0].Completed)
	assert.Equal(t, Stats{Completed: 1, Total: 1}, ctrl.Stats())

	require.NoError(t, ctrl.Remove(ctx, created.ID))
	assert.Empty(t, ctrl.State().Tasks)

	require.NoError(t, ctrl.Load(ctx))
	assert.Empty(t, ctrl.State().Tasks)
}

func TestController_MergesWithoutRefetching(t *testing.T) {
	server, requests := newTestServer(t)
	ctx := context.Background()
	ctrl := authenticatedController(t, server.URL, "alice-token")
	requests.Store(0)

	first, err := ctrl.Add(ctx, "one")
	require.NoError(t, err)
	_, err = ctrl.Add(ctx, "two")
	require.NoError(t, err)
	_, err = ctrl.Toggle(ctx, first.ID)
	require.NoError(t, err)
	require.NoError(t, ctrl.Remove(ctx, first.ID))

	assert.Equal(t, int64(4), requests.Load(), "one request per action")

	state := ctrl.State()
	require.Len(t, state.Tasks, 1)
	assert.Equal(t, "two", state.Tasks[0].Text)
}

func TestController_DuplicateAddsAreNotDeduplicated(t *testing.T) {
	server, _ := newTestServer(t)
	ctx := context.Background()
	ctrl := authenticatedController(t, server.URL, "alice-token")

	_, err := ctrl.Add(ctx, "Buy milk")
	require.NoError(t, err)
	_, err = ctrl.Add(ctx, "Buy milk")
	require.NoError(t, err)

	assert.Len(t, ctrl.State().Tasks, 2)
}

func TestController_BlankAddIsIgnored(t *testing.T) {
	server, requests := newTestServer(t)
	ctrl := authenticatedController(t, server.URL, "alice-token")
	requests.Store(0)

	task, err := ctrl.Add(context.Background(), "   ")
	assert.NoError(t, err)
	assert.Nil(t, task)
	assert.Zero(t, requests.Load())
	assert.Empty(t, ctrl.State().Tasks)
}

func TestController_FailedRequestLeavesStateUnchanged(t *testing.T) {
	server, _ := newTestServer(t)
	ctx := context.Background()

	alice := authenticatedController(t, server.URL, "alice-token")
	task, err := alice.Add(ctx, "Buy milk")
	require.NoError(t, err)

	// Another device removes the task behind this controller's back.
	other := authenticatedController(t, server.URL, "alice-token")
	require.NoError(t, other.Remove(ctx, task.ID))

	before := alice.State()
	_, err = alice.Toggle(ctx, task.ID)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.Status)
	assert.Equal(t, before, alice.State())
}

func TestController_ToggleUnknownLocalTask(t *testing.T) {
	server, _ := newTestServer(t)
	ctrl := authenticatedController(t, server.URL, "alice-token")

	_, err := ctrl.Toggle(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrTaskNotFound)
}

func TestController_Unauthenticated(t *testing.T) {
	server, requests := newTestServer(t)
	ctx := context.Background()
	ctrl := NewController(server.URL, newHTTPClient())

	assert.ErrorIs(t, ctrl.Load(ctx), ErrUnauthenticated)
	_, err := ctrl.Add(ctx, "Buy milk")
	assert.ErrorIs(t, err, ErrUnauthenticated)
	_, err = ctrl.Toggle(ctx, "1")
	assert.ErrorIs(t, err, ErrUnauthenticated)
	assert.ErrorIs(t, ctrl.Remove(ctx, "1"), ErrUnauthenticated)
	assert.Zero(t, requests.Load())
}

func TestController_RejectedToken(t *testing.T) {
	server, _ := newTestServer(t)
	ctrl := NewController(server.URL, newHTTPClient())

	err := ctrl.Authenticate(context.Background(), tokenSource("mallory-token"))

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
	assert.Equal(t, StatusUnauthenticated, ctrl.State().Status)
	assert.Empty(t, ctrl.State().Tasks)
}

func TestController_OwnersSeeOnlyTheirTasks(t *testing.T) {
	server, _ := newTestServer(t)
	ctx := context.Background()

	alice := authenticatedController(t, server.URL, "alice-token")
	_, err := alice.Add(ctx, "Alice's task")
	require.NoError(t, err)

	bob := authenticatedController(t, server.URL, "bob-token")
	assert.Empty(t, bob.State().Tasks)
}

func TestAPI_Health(t *testing.T) {
	server, _ := newTestServer(t)

	health, err := NewAPI(server.URL+"/", newHTTPClient()).Health(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "OK", health.Status)
	assert.NotEmpty(t, health.Timestamp)
}
