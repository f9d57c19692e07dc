//go:build e2e

package e2e_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/slotswap-backend/internal/adapter/postgres/testhelper"
	"github.com/heartmarshall/slotswap-backend/internal/app"
	authpkg "github.com/heartmarshall/slotswap-backend/internal/auth"
	"github.com/heartmarshall/slotswap-backend/internal/config"
)

const (
	jwtSecret = "test-secret-at-least-32-chars-long!!"
	jwtIssuer = "test-issuer"
)

// ---------------------------------------------------------------------------
// testServer wraps the full-stack HTTP server for E2E tests.
// ---------------------------------------------------------------------------

type testServer struct {
	URL    string
	Client *http.Client
	Pool   *pgxpool.Pool
	jwt    *authpkg.JWTManager
}

// testLogWriter adapts testing.T to io.Writer for slog.
type testLogWriter struct{ t *testing.T }

func (w testLogWriter) Write(p []byte) (int, error) {
	w.t.Helper()
	w.t.Log(string(p))
	return len(p), nil
}

// setupTestServer bootstraps the full application stack backed by
// a real PostgreSQL container (shared via testhelper).
func setupTestServer(t *testing.T) *testServer {
	t.Helper()

	pool := testhelper.SetupTestDB(t)
	logger := slog.New(slog.NewTextHandler(testLogWriter{t}, nil))

	cfg := &config.Config{
		Storage: config.StorageConfig{Driver: config.StorageDriverPostgres},
		Auth: config.AuthConfig{
			JWTSecret:        jwtSecret,
			JWTIssuer:        jwtIssuer,
			AccessTokenTTL:   15 * time.Minute,
			PasswordHashCost: 4,
		},
		CORS: config.CORSConfig{
			AllowedOrigins:   "*",
			AllowedMethods:   "GET,POST,PUT,DELETE,OPTIONS",
			AllowedHeaders:   "Authorization,Content-Type",
			AllowCredentials: true,
			MaxAge:           86400,
		},
	}

	srv := app.NewServer(cfg, logger, app.NewPostgresStorage(pool))
	t.Cleanup(srv.Stop)

	httpSrv := httptest.NewServer(srv.Handler)
	t.Cleanup(httpSrv.Close)

	return &testServer{
		URL:    httpSrv.URL,
		Client: httpSrv.Client(),
		Pool:   pool,
		jwt:    authpkg.NewJWTManager(jwtSecret, jwtIssuer, 15*time.Minute),
	}
}

// request sends a JSON request and returns status plus raw body.
func (ts *testServer) request(t *testing.T, method, path, token string, body any) (int, []byte) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req, err := http.NewRequest(method, ts.URL+path, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := ts.Client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, raw
}

// object is request with the body decoded into a JSON object.
func (ts *testServer) object(t *testing.T, method, path, token string, body any) (int, map[string]any) {
	t.Helper()
	status, raw := ts.request(t, method, path, token, body)
	var out map[string]any
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &out), "body: %s", raw)
	}
	return status, out
}

// list is request with the body decoded into a JSON array.
func (ts *testServer) list(t *testing.T, method, path, token string) (int, []map[string]any) {
	t.Helper()
	status, raw := ts.request(t, method, path, token, nil)
	var out []map[string]any
	require.NoError(t, json.Unmarshal(raw, &out), "body: %s", raw)
	return status, out
}

// createTestUserWithID inserts a user directly into the DB and returns a
// valid access token plus the user's ID.
func createTestUserWithID(t *testing.T, ts *testServer) (string, uuid.UUID) {
	t.Helper()

	user := testhelper.SeedUser(t, ts.Pool)

	tok, err := ts.jwt.GenerateAccessToken(user.ID)
	require.NoError(t, err)

	return tok, user.ID
}

// createSlot creates an event through the API and returns its ID.
func createSlot(t *testing.T, ts *testServer, token, title string, start time.Time, status string) string {
	t.Helper()

	code, body := ts.object(t, http.MethodPost, "/api/events", token, map[string]any{
		"title":     title,
		"startTime": start,
		"endTime":   start.Add(time.Hour),
		"status":    status,
	})
	require.Equal(t, http.StatusCreated, code, body)
	return body["id"].(string)
}
