//go:build e2e

package e2e_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/linkmark-backend/internal/adapter/postgres"
	analyticsrepo "github.com/heartmarshall/linkmark-backend/internal/adapter/postgres/analytics"
	bookmarkrepo "github.com/heartmarshall/linkmark-backend/internal/adapter/postgres/bookmark"
	categoryrepo "github.com/heartmarshall/linkmark-backend/internal/adapter/postgres/category"
	settingsrepo "github.com/heartmarshall/linkmark-backend/internal/adapter/postgres/settings"
	tagrepo "github.com/heartmarshall/linkmark-backend/internal/adapter/postgres/tag"
	"github.com/heartmarshall/linkmark-backend/internal/adapter/postgres/testhelper"
	userrepo "github.com/heartmarshall/linkmark-backend/internal/adapter/postgres/user"
	"github.com/heartmarshall/linkmark-backend/internal/adapter/provider/straico"
	authpkg "github.com/heartmarshall/linkmark-backend/internal/auth"
	"github.com/heartmarshall/linkmark-backend/internal/config"
	"github.com/heartmarshall/linkmark-backend/internal/service/analytics"
	bookmarksvc "github.com/heartmarshall/linkmark-backend/internal/service/bookmark"
	categorysvc "github.com/heartmarshall/linkmark-backend/internal/service/category"
	summarysvc "github.com/heartmarshall/linkmark-backend/internal/service/summary"
	tagsvc "github.com/heartmarshall/linkmark-backend/internal/service/tag"
	usersvc "github.com/heartmarshall/linkmark-backend/internal/service/user"
	"github.com/heartmarshall/linkmark-backend/internal/transport/middleware"
	"github.com/heartmarshall/linkmark-backend/internal/transport/rest"
)

// ---------------------------------------------------------------------------
// testServer wraps the full-stack HTTP server for E2E tests.
// ---------------------------------------------------------------------------

type testServer struct {
	URL      string
	Client   *http.Client
	Pool     *pgxpool.Pool
	Recorder *analytics.Recorder
	jwt      *authpkg.JWTManager
}

// testLogWriter adapts testing.T to io.Writer for slog.
type testLogWriter struct{ t *testing.T }

func (w testLogWriter) Write(p []byte) (int, error) {
	w.t.Helper()
	w.t.Log(string(p))
	return len(p), nil
}

// setupTestServer bootstraps the full application stack backed by a real
// PostgreSQL container (shared via testhelper). The Straico client points at
// straicoURL; pass "" when the test never reaches the AI gateway.
func setupTestServer(t *testing.T, straicoURL string) *testServer {
	t.Helper()

	pool := testhelper.SetupTestDB(t)

	logger := slog.New(slog.NewTextHandler(testLogWriter{t}, nil))
	txm := postgres.NewTxManager(pool)

	users := userrepo.New(pool)
	settings := settingsrepo.New(pool)
	categories := categoryrepo.New(pool)
	tags := tagrepo.New(pool)
	bookmarks := bookmarkrepo.New(pool)
	events := analyticsrepo.New(pool)

	recorder := analytics.NewRecorder(logger, events, 64, 5*time.Second)
	t.Cleanup(recorder.Close)
	feed := analytics.NewFeed(logger, events)

	jwtMgr := authpkg.NewJWTManager("test-secret-at-least-32-chars-long!!", "test-issuer", 15*time.Minute)
	straicoClient := straico.NewClientWithURL(straicoURL, 10*time.Second, logger)

	tagService := tagsvc.NewService(logger, tags, txm, 500)
	categoryService := categorysvc.NewService(logger, categories, bookmarks, txm, 100)
	bookmarkService := bookmarksvc.NewService(logger, bookmarks, tags, categories, recorder, txm, 10000)
	summaryService := summarysvc.NewService(logger, settings, bookmarkService, straicoClient, 0.7, 512)
	userService := usersvc.NewService(logger, users, settings, jwtMgr)

	router := rest.NewRouter(rest.RouterDeps{
		Health:     rest.NewHealthHandler(pool, "test-version"),
		Auth:       rest.NewAuthHandler(userService, logger),
		Bookmarks:  rest.NewBookmarkHandler(bookmarkService, summaryService, logger),
		Categories: rest.NewCategoryHandler(categoryService, logger),
		Tags:       rest.NewTagHandler(tagService, logger),
		Analytics:  rest.NewAnalyticsHandler(feed, logger),
		Settings:   rest.NewSettingsHandler(userService, summaryService, logger),
		AuthMW:     middleware.Auth(jwtMgr),
	})

	handler := middleware.Chain(
		middleware.RequestID,
		middleware.Recovery(logger),
		middleware.CORS(config.CORSConfig{
			AllowedOrigins:   "*",
			AllowedMethods:   "GET,POST,PATCH,DELETE,OPTIONS",
			AllowedHeaders:   "Authorization,Content-Type",
			AllowCredentials: true,
			MaxAge:           86400,
		}),
	)(router)

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return &testServer{
		URL:      srv.URL,
		Client:   srv.Client(),
		Pool:     pool,
		Recorder: recorder,
		jwt:      jwtMgr,
	}
}

// ---------------------------------------------------------------------------
// apiRequest sends a JSON request and returns status + decoded envelope.
// ---------------------------------------------------------------------------

func (ts *testServer) apiRequest(t *testing.T, method, path string, body any, token string) (int, map[string]any) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		require.NoError(t, err, "marshal request body")
		reader = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequest(method, ts.URL+path, reader)
	require.NoError(t, err, "create request")
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := ts.Client.Do(req)
	require.NoError(t, err, "do request")
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNoContent {
		return resp.StatusCode, nil
	}

	var result map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result), "decode response")
	return resp.StatusCode, result
}

// envData extracts the "data" map from a success envelope.
func envData(t *testing.T, result map[string]any) map[string]any {
	t.Helper()
	require.Equal(t, true, result["success"], "expected success envelope, got: %v", result)
	data, ok := result["data"].(map[string]any)
	require.True(t, ok, "expected data object in response")
	return data
}

// envList extracts the "data" array from a success envelope.
func envList(t *testing.T, result map[string]any) []any {
	t.Helper()
	require.Equal(t, true, result["success"], "expected success envelope, got: %v", result)
	list, ok := result["data"].([]any)
	require.True(t, ok, "expected data array in response")
	return list
}

// envErrorCode extracts the error code from a failure envelope.
func envErrorCode(t *testing.T, result map[string]any) string {
	t.Helper()
	require.Equal(t, false, result["success"], "expected failure envelope, got: %v", result)
	errObj, ok := result["error"].(map[string]any)
	require.True(t, ok, "expected error object in response")
	code, ok := errObj["code"].(string)
	require.True(t, ok, "expected code string in error")
	return code
}

// ---------------------------------------------------------------------------
// User and content helpers.
// ---------------------------------------------------------------------------

// registerTestUser registers a fresh user through the API and returns the
// access token.
func registerTestUser(t *testing.T, ts *testServer) string {
	t.Helper()

	email := fmt.Sprintf("test-%s@example.com", uuid.NewString()[:8])
	status, result := ts.apiRequest(t, http.MethodPost, "/api/v1/auth/register", map[string]any{
		"email":    email,
		"password": "correct-horse-battery",
	}, "")
	require.Equal(t, http.StatusCreated, status, "register: %v", result)

	data := envData(t, result)
	token, ok := data["accessToken"].(string)
	require.True(t, ok, "expected accessToken in register response")
	return token
}

// createBookmark creates a bookmark through the API and returns its id.
func createBookmark(t *testing.T, ts *testServer, token, url, title string) string {
	t.Helper()

	status, result := ts.apiRequest(t, http.MethodPost, "/api/v1/bookmarks", map[string]any{
		"url":   url,
		"title": title,
	}, token)
	require.Equal(t, http.StatusCreated, status, "create bookmark: %v", result)

	data := envData(t, result)
	id, ok := data["id"].(string)
	require.True(t, ok, "expected bookmark id")
	return id
}

// createCategory creates a category through the API and returns its id.
func createCategory(t *testing.T, ts *testServer, token, name string) string {
	t.Helper()

	status, result := ts.apiRequest(t, http.MethodPost, "/api/v1/categories", map[string]any{
		"name": name,
	}, token)
	require.Equal(t, http.StatusCreated, status, "create category: %v", result)

	data := envData(t, result)
	id, ok := data["id"].(string)
	require.True(t, ok, "expected category id")
	return id
}
