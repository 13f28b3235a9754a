package httpapi

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/thenoetrevino/tally/internal/app"
	"github.com/thenoetrevino/tally/internal/auth"
	"github.com/thenoetrevino/tally/internal/config"
	"github.com/thenoetrevino/tally/internal/database"
	"github.com/thenoetrevino/tally/internal/events"
	"github.com/thenoetrevino/tally/internal/testutil"
)

// ============================================================================
// TEST HELPERS
// ============================================================================

type testServer struct {
	t      *testing.T
	server *Server
}

func setupServer(t *testing.T, opts ...app.Option) *testServer {
	t.Helper()
	db := testutil.SetupTestDB(t)

	tokens, err := auth.NewTokens("test-secret", time.Hour)
	require.NoError(t, err)

	broker := events.NewBroker(16)
	t.Cleanup(func() { _ = broker.Close() })

	base := []app.Option{
		app.WithTokens(tokens),
		app.WithAuthOptions(auth.WithBcryptCost(bcrypt.MinCost)),
		app.WithEventPublisher(broker),
	}
	a := app.New(database.NewRepository(db), append(base, opts...)...)
	a.Broker = broker

	return &testServer{t: t, server: NewServer(a, config.Default())}
}

func (ts *testServer) do(method, path, token string, body any) *httptest.ResponseRecorder {
	ts.t.Helper()
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(ts.t, err)
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	ts.server.Handler().ServeHTTP(rec, req)
	return rec
}

func (ts *testServer) register(username string) string {
	ts.t.Helper()
	rec := ts.do(http.MethodPost, "/api/auth/register", "", CredentialsRequest{Username: username, Password: "password"})
	require.Equal(ts.t, http.StatusOK, rec.Code, rec.Body.String())
	var resp TokenResponse
	require.NoError(ts.t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp.Token
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

// ============================================================================
// TEST CASES
// ============================================================================

func TestHealthz(t *testing.T) {
	t.Parallel()
	ts := setupServer(t)

	rec := ts.do(http.MethodGet, "/healthz", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "ok")
}

func TestAuthFlow(t *testing.T) {
	t.Parallel()
	ts := setupServer(t)

	token := ts.register("alice")
	assert.NotEmpty(t, token)

	rec := ts.do(http.MethodPost, "/api/auth/register", "", CredentialsRequest{Username: "alice", Password: "password"})
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "A user with this username already exists : alice")

	rec = ts.do(http.MethodPost, "/api/auth/login", "", CredentialsRequest{Username: "alice", Password: "password"})
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = ts.do(http.MethodPost, "/api/auth/login", "", CredentialsRequest{Username: "alice", Password: "wrong-one"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = ts.do(http.MethodPost, "/api/auth/register", "", CredentialsRequest{Username: "al", Password: "password"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "VALIDATION_ERROR", decode[map[string]string](t, rec)["code"])

	rec = ts.do(http.MethodPost, "/api/auth/register", "", CredentialsRequest{Username: "bobby", Password: strings.Repeat("p", 80)})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "VALIDATION_ERROR", decode[map[string]string](t, rec)["code"])
	assert.Contains(t, rec.Body.String(), "Password must be at most 72 characters")
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	t.Parallel()
	ts := setupServer(t)

	for _, path := range []string{"/api/projects/user/alice", "/api/analytics/totalTasks/1", "/api/metrics"} {
		rec := ts.do(http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, path)

		rec = ts.do(http.MethodGet, path, "garbage", nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, path)
	}
}

func TestProjectAndTaskLifecycle(t *testing.T) {
	t.Parallel()
	ts := setupServer(t)
	token := ts.register("alice")

	// Create ignores any client-supplied owner
	rec := ts.do(http.MethodPost, "/api/projects", token, map[string]any{
		"title": "Website", "description": "Relaunch", "userId": 999,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	project := decode[map[string]any](t, rec)
	projectID := int(project["id"].(float64))
	assert.NotEqual(t, float64(999), project["userId"])

	rec = ts.do(http.MethodGet, "/api/projects/user/alice?page=0&size=10", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	page := decode[map[string]any](t, rec)
	assert.EqualValues(t, 1, page["totalItems"])
	assert.EqualValues(t, 1, page["totalPages"])
	assert.Len(t, page["items"], 1)

	for i, completed := range []bool{true, false, false, false} {
		rec = ts.do(http.MethodPost, "/api/tasks", token, map[string]any{
			"title":     fmt.Sprintf("task %d", i),
			"deadline":  "2024-03-01",
			"completed": completed,
			"projectId": projectID,
		})
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	}
	task := decode[map[string]any](t, rec)
	assert.Equal(t, "2024-03-01", task["deadline"])

	rec = ts.do(http.MethodGet, fmt.Sprintf("/api/tasks/project/%d?size=3&page=1", projectID), token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	page = decode[map[string]any](t, rec)
	assert.EqualValues(t, 4, page["totalItems"])
	assert.EqualValues(t, 2, page["totalPages"])
	assert.Len(t, page["items"], 1)

	rec = ts.do(http.MethodGet, fmt.Sprintf("/api/analytics/totalTasks/%d", projectID), token, nil)
	assert.JSONEq(t, `{"totalTasks":4}`, rec.Body.String())
	rec = ts.do(http.MethodGet, fmt.Sprintf("/api/analytics/totalCompletdTasks/%d", projectID), token, nil)
	assert.JSONEq(t, `{"totalTasks":1}`, rec.Body.String())
	rec = ts.do(http.MethodGet, fmt.Sprintf("/api/analytics/progression/%d", projectID), token, nil)
	assert.JSONEq(t, `{"percentageProgression":0.25}`, rec.Body.String())

	rec = ts.do(http.MethodPut, "/api/projects", token, map[string]any{"id": projectID, "title": "Renamed"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Renamed", decode[map[string]any](t, rec)["title"])

	rec = ts.do(http.MethodDelete, fmt.Sprintf("/api/projects/%d", projectID), token, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = ts.do(http.MethodGet, fmt.Sprintf("/api/analytics/summary/%d", projectID), token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	summary := decode[map[string]any](t, rec)
	assert.EqualValues(t, 0, summary["totalTasks"])
	assert.Nil(t, summary["percentageProgression"])
}

func TestErrorMapping(t *testing.T) {
	t.Parallel()
	ts := setupServer(t)
	token := ts.register("alice")

	tests := []struct {
		name   string
		method string
		path   string
		body   any
		status int
		substr string
	}{
		{"unknown user", http.MethodGet, "/api/projects/user/ghost", nil, http.StatusNotFound, "User not found with username : ghost"},
		{"task on missing project", http.MethodPost, "/api/tasks", map[string]any{"title": "x", "projectId": 999}, http.StatusNotFound, "Project not found with id : 999"},
		{"delete missing task", http.MethodDelete, "/api/tasks/55", nil, http.StatusNotFound, "Task with id : 55 not found"},
		{"delete missing project", http.MethodDelete, "/api/projects/55", nil, http.StatusNotFound, "Project with id : 55 not found"},
		{"bad page size", http.MethodGet, "/api/projects/user/alice?size=0", nil, http.StatusBadRequest, "page size"},
		{"non-numeric page", http.MethodGet, "/api/projects/user/alice?page=abc", nil, http.StatusBadRequest, "page must be an integer"},
		{"bad id", http.MethodDelete, "/api/tasks/abc", nil, http.StatusBadRequest, "id must be a positive integer"},
		{"missing title", http.MethodPost, "/api/projects", map[string]any{"description": "x"}, http.StatusBadRequest, "Title is required"},
		{"bad deadline", http.MethodPost, "/api/tasks", map[string]any{"title": "x", "projectId": 1, "deadline": "tomorrow"}, http.StatusBadRequest, "invalid request body"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := ts.do(tt.method, tt.path, token, tt.body)
			assert.Equal(t, tt.status, rec.Code, rec.Body.String())
			assert.Contains(t, rec.Body.String(), tt.substr)
		})
	}
}

func TestProgression_EmptyProjectIsNull(t *testing.T) {
	t.Parallel()
	ts := setupServer(t)
	token := ts.register("alice")

	rec := ts.do(http.MethodPost, "/api/projects", token, map[string]any{"title": "Empty"})
	require.Equal(t, http.StatusCreated, rec.Code)
	id := int(decode[map[string]any](t, rec)["id"].(float64))

	rec = ts.do(http.MethodGet, fmt.Sprintf("/api/analytics/progression/%d", id), token, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"percentageProgression":null}`, rec.Body.String())
}

func TestOwnershipEnforcedOverHTTP(t *testing.T) {
	t.Parallel()
	ts := setupServer(t, app.WithOwnershipEnforcement(true))
	alice := ts.register("alice")
	bob := ts.register("bobby")

	rec := ts.do(http.MethodPost, "/api/projects", alice, map[string]any{"title": "Private"})
	require.Equal(t, http.StatusCreated, rec.Code)
	id := int(decode[map[string]any](t, rec)["id"].(float64))

	rec = ts.do(http.MethodDelete, fmt.Sprintf("/api/projects/%d", id), bob, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	t.Parallel()
	ts := setupServer(t)
	token := ts.register("alice")
	ts.do(http.MethodGet, "/api/projects/user/ghost", token, nil)

	rec := ts.do(http.MethodGet, "/api/metrics", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	snap := decode[MetricsSnapshot](t, rec)
	assert.GreaterOrEqual(t, snap.RequestsTotal, int64(2))
	assert.GreaterOrEqual(t, snap.ClientErrors, int64(1))
}

func TestEventStream(t *testing.T) {
	t.Parallel()
	ts := setupServer(t)
	token := ts.register("alice")

	srv := httptest.NewServer(ts.server.Handler())
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL+"/api/events", nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	reader := bufio.NewReader(resp.Body)
	line, err := reader.ReadString('\n')
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(line, ": subscribed"), line)

	rec := ts.do(http.MethodPost, "/api/projects", token, map[string]any{"title": "Streamed"})
	require.Equal(t, http.StatusCreated, rec.Code)

	var eventLine string
	for {
		line, err = reader.ReadString('\n')
		require.NoError(t, err)
		if strings.HasPrefix(line, "event: ") {
			eventLine = strings.TrimSpace(line)
			break
		}
	}
	assert.Equal(t, "event: project_created", eventLine)
}

func TestEventStream_OwnershipEnforced(t *testing.T) {
	t.Parallel()
	ts := setupServer(t, app.WithOwnershipEnforcement(true))
	alice := ts.register("alice")
	bob := ts.register("bobby")

	rec := ts.do(http.MethodPost, "/api/projects", alice, map[string]any{"title": "Private"})
	require.Equal(t, http.StatusCreated, rec.Code)
	id := int(decode[map[string]any](t, rec)["id"].(float64))

	rec = ts.do(http.MethodGet, "/api/events", bob, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code, rec.Body.String())

	rec = ts.do(http.MethodGet, fmt.Sprintf("/api/events?projectId=%d", id), bob, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code, rec.Body.String())

	rec = ts.do(http.MethodGet, "/api/events?projectId=999", bob, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code, rec.Body.String())

	srv := httptest.NewServer(ts.server.Handler())
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf("%s/api/events?projectId=%d", srv.URL, id), nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+alice)

	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
