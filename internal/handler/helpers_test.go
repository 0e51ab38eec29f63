package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/msomdec/recipe-api/internal/handler"
	"github.com/msomdec/recipe-api/internal/repository/sqlite"
	"github.com/msomdec/recipe-api/internal/service"
	"github.com/msomdec/recipe-api/internal/validation"
)

const testJWTSecret = "test-secret-for-handler-tests-0123456789"

type testEnv struct {
	srv  *httptest.Server
	db   *sqlite.DB
	auth *service.AuthService
}

func newTestServices(t *testing.T) (handler.Services, *sqlite.DB) {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	db, err := sqlite.New(dbPath)
	if err != nil {
		t.Fatalf("New DB: %v", err)
	}
	if err := db.Migrate(context.Background()); err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	v := validation.New()
	limiter := service.NewRateLimiter(1000, 1000)
	t.Cleanup(limiter.Stop)

	return handler.Services{
		Auth:        service.NewAuthService(db.Users(), v, testJWTSecret, time.Hour, 4),
		Tags:        service.NewTagService(db.Tags(), v),
		Ingredients: service.NewIngredientService(db.Ingredients(), v),
		Recipes:     service.NewRecipeService(db, db, v),
		AuthLimiter: limiter,
		DB:          db,
	}, db
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	svc, db := newTestServices(t)
	srv := httptest.NewServer(handler.NewRouter(svc, handler.Options{CORSOrigins: []string{"*"}}))
	t.Cleanup(srv.Close)
	return &testEnv{srv: srv, db: db, auth: svc.Auth}
}

// tokenFor registers email and returns a bearer token for it.
func (e *testEnv) tokenFor(t *testing.T, email string) string {
	t.Helper()
	ctx := context.Background()
	_, err := e.auth.Register(ctx, service.RegisterRequest{Email: email, Name: "Test User", Password: "password123"})
	require.NoError(t, err)
	token, _, err := e.auth.Login(ctx, service.LoginRequest{Email: email, Password: "password123"})
	require.NoError(t, err)
	return token
}

// do sends body as JSON and returns the status with the raw response body.
func (e *testEnv) do(t *testing.T, method, path, token string, body any) (int, []byte) {
	t.Helper()
	var r io.Reader
	if body != nil {
		switch b := body.(type) {
		case string:
			r = bytes.NewBufferString(b)
		default:
			data, err := json.Marshal(b)
			require.NoError(t, err)
			r = bytes.NewReader(data)
		}
	}

	req, err := http.NewRequest(method, e.srv.URL+path, r)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, data
}

// doJSON is do followed by decoding the response into out.
func (e *testEnv) doJSON(t *testing.T, method, path, token string, body, out any) int {
	t.Helper()
	status, data := e.do(t, method, path, token, body)
	if out != nil && len(data) > 0 {
		require.NoError(t, json.Unmarshal(data, out), "body: %s", data)
	}
	return status
}

type nameJSON struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type recipeJSON struct {
	ID          int64      `json:"id"`
	Title       string     `json:"title"`
	TimeMinutes int        `json:"time_minutes"`
	Price       string     `json:"price"`
	Link        string     `json:"link"`
	Description *string    `json:"description"`
	Tags        []nameJSON `json:"tags"`
	Ingredients []nameJSON `json:"ingredients"`
}

type errorJSON struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields"`
}

func names(entries ...string) []map[string]string {
	out := make([]map[string]string, len(entries))
	for i, n := range entries {
		out[i] = map[string]string{"name": n}
	}
	return out
}

func stringsReader(s string) io.Reader {
	return bytes.NewBufferString(s)
}
