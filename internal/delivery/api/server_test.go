package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"tasklist/config"
	apimiddleware "tasklist/internal/delivery/api/middleware"
	"tasklist/internal/delivery/api/response"
	"tasklist/internal/delivery/api/router"
	"tasklist/internal/delivery/api/router/handler"
	"tasklist/internal/infra/auth"
	"tasklist/internal/infra/persistence/database"
	"tasklist/internal/infra/pubsub"
	"tasklist/internal/usecase/impl"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const testSecret = "integration-secret"

type envelope struct {
	Data  json.RawMessage     `json:"data"`
	Error *response.ErrorInfo `json:"error"`
	Meta  *response.MetaInfo  `json:"meta"`
}

type testApp struct {
	t    *testing.T
	echo *echo.Echo
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()

	cfg := &config.Config{}
	cfg.HTTP.MaxRequestBodySize = "100KB"
	cfg.Database.Driver = config.DriverSQLite
	cfg.Database.DSN = "file:" + filepath.Join(t.TempDir(), "api.db") + "?_pragma=foreign_keys(1)"
	cfg.Token = config.TokenConfig{
		Secret:     testSecret,
		Algorithm:  config.SigningAlgorithmHS256,
		DefaultTTL: 15 * time.Minute,
		LoginTTL:   30 * time.Minute,
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	db, err := database.Open(cfg, logger)
	require.NoError(t, err)
	require.NoError(t, database.Migrate(t.Context(), db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	identityRepo := database.NewIdentityRepository(db)
	taskRepo := database.NewTaskRepository(db)
	hasher := auth.NewBcryptHasherWithCost(bcrypt.MinCost, nil)
	tokenService, err := auth.NewJWTService(cfg)
	require.NoError(t, err)

	authenticator := impl.NewAuthenticator(impl.AuthenticatorParams{
		IdentityRepo: identityRepo,
		Hasher:       hasher,
		Logger:       logger,
	})
	userUC := impl.NewUserService(impl.UserServiceParams{
		IdentityRepo:  identityRepo,
		Hasher:        hasher,
		TokenService:  tokenService,
		Authenticator: authenticator,
		Logger:        logger,
	})
	taskUC := impl.NewTaskService(impl.TaskServiceParams{
		TaskRepo:     taskRepo,
		IdentityRepo: identityRepo,
		Guard:        auth.NewOwnershipGuard(),
		Publisher:    pubsub.NewNoopPublisher(logger),
		Logger:       logger,
	})

	e := NewEcho(cfg, logger, router.RouterParams{
		UserHandler:    handler.NewUserHandler(userUC),
		TaskHandler:    handler.NewTaskHandler(taskUC),
		HealthHandler:  handler.NewHealthHandler(db),
		AuthMiddleware: apimiddleware.NewAuthMiddleware(userUC),
	})

	return &testApp{t: t, echo: e}
}

func (a *testApp) do(method, path string, body any, token string) (*httptest.ResponseRecorder, envelope) {
	a.t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(a.t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	a.echo.ServeHTTP(rec, req)

	var env envelope
	if rec.Body.Len() > 0 {
		require.NoError(a.t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	}

	return rec, env
}

func (a *testApp) register(username, password string) {
	a.t.Helper()

	rec, _ := a.do(http.MethodPost, "/users", handler.CredentialsRequest{Username: username, Password: password}, "")
	require.Equal(a.t, http.StatusCreated, rec.Code, rec.Body.String())
}

func (a *testApp) login(username, password string) handler.TokenResponse {
	a.t.Helper()

	rec, env := a.do(http.MethodPost, "/login", handler.CredentialsRequest{Username: username, Password: password}, "")
	require.Equal(a.t, http.StatusOK, rec.Code, rec.Body.String())

	var token handler.TokenResponse
	require.NoError(a.t, json.Unmarshal(env.Data, &token))

	return token
}

func (a *testApp) createTask(token, title string) handler.TaskResponse {
	a.t.Helper()

	rec, env := a.do(http.MethodPost, "/todo", handler.TaskRequest{Title: title}, token)
	require.Equal(a.t, http.StatusCreated, rec.Code, rec.Body.String())

	var task handler.TaskResponse
	require.NoError(a.t, json.Unmarshal(env.Data, &task))

	return task
}

func TestAPI_OwnershipScenario(t *testing.T) {
	app := newTestApp(t)

	app.register("alice", "pw1")
	app.register("bob", "pw2")

	aliceToken := app.login("alice", "pw1")
	assert.Equal(t, "bearer", aliceToken.TokenType)
	assert.WithinDuration(t, time.Now().Add(30*time.Minute), aliceToken.ExpiresAt, time.Minute)

	task := app.createTask(aliceToken.AccessToken, "buy milk")
	bobToken := app.login("bob", "pw2")

	itemPath := fmt.Sprintf("/todo/item/%d", task.ID)
	taskPath := fmt.Sprintf("/todo/%d", task.ID)

	rec, env := app.do(http.MethodGet, itemPath, nil, bobToken.AccessToken)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "FORBIDDEN", env.Error.Code)
	assert.Nil(t, env.Error.Details)

	rec, _ = app.do(http.MethodGet, "/todo/alice", nil, bobToken.AccessToken)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec, _ = app.do(http.MethodPut, taskPath, handler.TaskRequest{Title: "hijacked"}, bobToken.AccessToken)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec, _ = app.do(http.MethodDelete, taskPath, nil, bobToken.AccessToken)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec, env = app.do(http.MethodGet, "/todo/alice", nil, aliceToken.AccessToken)
	require.Equal(t, http.StatusOK, rec.Code)
	var tasks []handler.TaskResponse
	require.NoError(t, json.Unmarshal(env.Data, &tasks))
	require.Len(t, tasks, 1)
	assert.Equal(t, "buy milk", tasks[0].Title)

	rec, env = app.do(http.MethodPut, taskPath, handler.TaskRequest{Title: "buy oat milk", Content: "1 liter"}, aliceToken.AccessToken)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var updated handler.TaskResponse
	require.NoError(t, json.Unmarshal(env.Data, &updated))
	assert.Equal(t, "buy oat milk", updated.Title)
	assert.Equal(t, "1 liter", updated.Content)

	rec, _ = app.do(http.MethodDelete, taskPath, nil, aliceToken.AccessToken)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec, env = app.do(http.MethodGet, itemPath, nil, aliceToken.AccessToken)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "TASK_NOT_FOUND", env.Error.Code)

	// A missing task is reported as not found to everyone, owner or not.
	rec, _ = app.do(http.MethodGet, itemPath, nil, bobToken.AccessToken)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAPI_Registration(t *testing.T) {
	app := newTestApp(t)

	rec, env := app.do(http.MethodPost, "/users", handler.CredentialsRequest{Username: "alice", Password: "pw1"}, "")
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.NotContains(t, rec.Body.String(), "pw1")
	assert.NotContains(t, rec.Body.String(), "$2a$")

	var user handler.UserResponse
	require.NoError(t, json.Unmarshal(env.Data, &user))
	assert.Equal(t, "alice", user.Username)
	assert.NotZero(t, user.ID)

	rec, env = app.do(http.MethodPost, "/users", handler.CredentialsRequest{Username: "alice", Password: "other"}, "")
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "DUPLICATE_USERNAME", env.Error.Code)

	rec, env = app.do(http.MethodPost, "/users", handler.CredentialsRequest{Username: "", Password: "pw"}, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "VALIDATION_FAILED", env.Error.Code)
	assert.Equal(t, "username is required", env.Error.Details)
}

func TestAPI_LoginFailuresLookAlike(t *testing.T) {
	app := newTestApp(t)
	app.register("alice", "pw1")

	wrongRec, wrongEnv := app.do(http.MethodPost, "/login", handler.CredentialsRequest{Username: "alice", Password: "nope"}, "")
	unknownRec, unknownEnv := app.do(http.MethodPost, "/login", handler.CredentialsRequest{Username: "ghost", Password: "nope"}, "")

	assert.Equal(t, http.StatusUnauthorized, wrongRec.Code)
	assert.Equal(t, http.StatusUnauthorized, unknownRec.Code)
	assert.Equal(t, "INVALID_CREDENTIALS", wrongEnv.Error.Code)
	assert.Equal(t, *wrongEnv.Error, *unknownEnv.Error)
}

func TestAPI_LoginAcceptsForm(t *testing.T) {
	app := newTestApp(t)
	app.register("alice", "pw1")

	form := url.Values{"username": {"alice"}, "password": {"pw1"}}
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	rec := httptest.NewRecorder()
	app.echo.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), "access_token")
}

func TestAPI_TokenFailures(t *testing.T) {
	app := newTestApp(t)
	app.register("alice", "pw1")

	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "alice",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)

	forged, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "alice",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
	}).SignedString([]byte("someone-else"))
	require.NoError(t, err)

	orphan, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "ghost",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)

	tests := []struct {
		name     string
		token    string
		wantCode string
	}{
		{name: "missing", token: "", wantCode: "UNAUTHORIZED"},
		{name: "malformed", token: "garbage", wantCode: "TOKEN_MALFORMED"},
		{name: "expired", token: expired, wantCode: "TOKEN_EXPIRED"},
		{name: "bad signature", token: forged, wantCode: "TOKEN_BAD_SIGNATURE"},
		{name: "unknown subject", token: orphan, wantCode: "UNAUTHORIZED"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, env := app.do(http.MethodGet, "/todo/alice", nil, tt.token)
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.Equal(t, tt.wantCode, env.Error.Code)
			assert.Equal(t, "Bearer", rec.Header().Get(echo.HeaderWWWAuthenticate))
		})
	}
}

func TestAPI_TaskValidation(t *testing.T) {
	app := newTestApp(t)
	app.register("alice", "pw1")
	token := app.login("alice", "pw1").AccessToken

	rec, env := app.do(http.MethodPost, "/todo", handler.TaskRequest{Title: strings.Repeat("x", 151)}, token)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "title must be at most 150 characters", env.Error.Details)

	rec, _ = app.do(http.MethodPost, "/todo", handler.TaskRequest{Title: "ok", Content: strings.Repeat("x", 251)}, token)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, _ = app.do(http.MethodGet, "/todo/item/abc", nil, token)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAPI_RequestIDAndHealth(t *testing.T) {
	app := newTestApp(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Request-Id", "trace-123")
	rec := httptest.NewRecorder()
	app.echo.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "trace-123", rec.Header().Get("X-Request-Id"))

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	assert.Equal(t, "trace-123", env.Meta.RequestID)
	assert.JSONEq(t, `{"status":"ok","database":"ok"}`, string(env.Data))
}

func TestAPI_UnknownRoute(t *testing.T) {
	app := newTestApp(t)

	rec, env := app.do(http.MethodGet, "/nope", nil, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "HTTP_ERROR", env.Error.Code)
}
