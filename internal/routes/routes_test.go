package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"employee-portal/config"
	"employee-portal/internal/report"
	"employee-portal/internal/repository"
	"employee-portal/internal/token"
	"employee-portal/internal/usecase"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

type testEnv struct {
	app    *fiber.App
	tokens *token.Manager
	now    time.Time
}

func newTestEnv(t *testing.T, loginLimit int) *testEnv {
	t.Helper()
	db, err := config.ConnectDB(&config.Config{DBDriver: "sqlite", DatabaseDSN: ":memory:", AppEnv: "test"})
	require.NoError(t, err)

	env := &testEnv{
		tokens: token.NewManager("test-secret", time.Hour),
		now:    time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC),
	}
	env.app = NewApp(db, Options{
		Tokens:         env.tokens,
		Now:            func() time.Time { return env.now },
		RequestTimeout: 5 * time.Second,
		LoginRateLimit: loginLimit,
	})

	users := usecase.NewUserUsecase(repository.NewUserRepository(db), env.tokens)
	_, _, err = users.EnsureAdmin(context.Background(), "admin", "admin@example.com", "admin123")
	require.NoError(t, err)
	return env
}

func (e *testEnv) do(t *testing.T, method, path string, body interface{}, bearer string) (int, map[string]interface{}) {
	t.Helper()
	resp := e.raw(t, method, path, body, bearer)
	defer resp.Body.Close()

	out := map[string]interface{}{}
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &out), string(raw))
	}
	return resp.StatusCode, out
}

func (e *testEnv) raw(t *testing.T, method, path string, body interface{}, bearer string) *http.Response {
	t.Helper()
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		rd = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func (e *testEnv) login(t *testing.T, username, password string) string {
	t.Helper()
	status, body := e.do(t, http.MethodPost, "/api/login", map[string]string{"username": username, "password": password}, "")
	require.Equal(t, http.StatusOK, status, body)
	return body["token"].(string)
}

func (e *testEnv) signup(t *testing.T, username string) string {
	t.Helper()
	status, body := e.do(t, http.MethodPost, "/api/register", map[string]string{
		"username": username,
		"email":    username + "@example.com",
		"password": "secret",
	}, "")
	require.Equal(t, http.StatusCreated, status, body)
	return e.login(t, username, "secret")
}

func data(body map[string]interface{}) map[string]interface{} {
	d, _ := body["data"].(map[string]interface{})
	return d
}

func TestPublicEndpoints(t *testing.T) {
	env := newTestEnv(t, 0)

	status, body := env.do(t, http.MethodGet, "/health", nil, "")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "ok", body["status"])

	status, body = env.do(t, http.MethodGet, "/api/time", nil, "")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "2024-01-01T09:00:00Z", body["time"])
	assert.Equal(t, float64(env.now.UnixMilli()), body["timestamp"])
	assert.Equal(t, "UTC", body["timezone"])
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	env := newTestEnv(t, 0)

	status, body := env.do(t, http.MethodPost, "/api/attendance/clock-in", nil, "")
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "unauthorized", body["kind"])
	assert.Equal(t, "missing_token", body["code"])

	status, body = env.do(t, http.MethodGet, "/api/me", nil, "not-a-token")
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "invalid_token", body["code"])
}

func TestRegisterLoginAndMe(t *testing.T) {
	env := newTestEnv(t, 0)
	tok := env.signup(t, "alice")

	status, body := env.do(t, http.MethodGet, "/api/me", nil, tok)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "alice", data(body)["username"])
	assert.Equal(t, "user", data(body)["role"])
	assert.NotContains(t, data(body), "password")

	status, body = env.do(t, http.MethodPost, "/api/register", map[string]string{
		"username": "alice", "email": "other@example.com", "password": "secret",
	}, "")
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "username_taken", body["code"])

	status, body = env.do(t, http.MethodPost, "/api/login", map[string]string{"username": "alice", "password": "nope"}, "")
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "invalid_credentials", body["code"])
}

func TestAttendanceFlow(t *testing.T) {
	env := newTestEnv(t, 0)
	tok := env.signup(t, "alice")

	status, body := env.do(t, http.MethodPost, "/api/attendance/clock-out", nil, tok)
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "no_open_session", body["code"])

	status, _ = env.do(t, http.MethodPost, "/api/attendance/clock-in", nil, tok)
	require.Equal(t, http.StatusCreated, status)

	status, body = env.do(t, http.MethodPost, "/api/attendance/clock-in", nil, tok)
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "already_open", body["code"])
	assert.Equal(t, "conflict", body["kind"])

	env.now = env.now.Add(2*time.Hour + 15*time.Minute)
	status, body = env.do(t, http.MethodGet, "/api/attendance/status", nil, tok)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, data(body)["is_clocked_in"])
	assert.Equal(t, "02:15:00", data(body)["formatted_elapsed"])

	env.now = env.now.Add(6*time.Hour + 15*time.Minute)
	status, body = env.do(t, http.MethodPost, "/api/attendance/clock-out", nil, tok)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "08:30:00", data(body)["formatted_working_hours"])

	status, body = env.do(t, http.MethodGet, "/api/attendance/history?min_hours=8.5&sort=duration&order=asc", nil, tok)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, body["data"], 1)

	status, body = env.do(t, http.MethodGet, "/api/attendance/history?min_hours=9", nil, tok)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, body["data"], 0)

	status, body = env.do(t, http.MethodGet, "/api/attendance/history?sort=salary", nil, tok)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "invalid_query", body["code"])
	assert.NotEmpty(t, body["fields"])
}

func TestLeaveFlow(t *testing.T) {
	env := newTestEnv(t, 0)
	alice := env.signup(t, "alice")
	bob := env.signup(t, "bob")

	status, body := env.do(t, http.MethodPost, "/api/leave/request", map[string]string{
		"leave_type": "sick", "start_date": "2024-02-01", "end_date": "2024-01-30", "reason": "flu",
	}, alice)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "invalid_date_range", body["code"])

	status, body = env.do(t, http.MethodPost, "/api/leave/request", map[string]string{"leave_type": "sick"}, alice)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "missing_field", body["code"])
	assert.Len(t, body["fields"], 3)

	status, body = env.do(t, http.MethodPost, "/api/leave/request", map[string]string{
		"leave_type": "Casual", "start_date": "2024-02-01", "end_date": "2024-02-02", "reason": "family",
	}, alice)
	require.Equal(t, http.StatusCreated, status)
	leaveID := data(body)["id"].(string)
	assert.Equal(t, "pending", data(body)["status"])

	// another user cannot delete it
	status, body = env.do(t, http.MethodDelete, "/api/leave/"+leaveID, nil, bob)
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, "forbidden", body["kind"])

	status, body = env.do(t, http.MethodGet, "/api/leave/history", nil, alice)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, body["data"], 1)

	status, _ = env.do(t, http.MethodDelete, "/api/leave/"+leaveID, nil, alice)
	assert.Equal(t, http.StatusOK, status)

	status, body = env.do(t, http.MethodDelete, "/api/leave/"+leaveID, nil, alice)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "leave_not_found", body["code"])
}

func TestAdminRoutes(t *testing.T) {
	env := newTestEnv(t, 0)
	alice := env.signup(t, "alice")
	admin := env.login(t, "admin", "admin123")

	status, body := env.do(t, http.MethodGet, "/api/admin/users", nil, alice)
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, "role_denied", body["code"])

	status, body = env.do(t, http.MethodGet, "/api/admin/users", nil, admin)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, body["data"], 1)

	status, body = env.do(t, http.MethodPost, "/api/admin/users", map[string]string{
		"username": "bad name", "email": "x", "password": "1", "role": "root",
	}, admin)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Len(t, body["fields"], 4)

	status, body = env.do(t, http.MethodPost, "/api/admin/users", map[string]string{
		"username": "carol", "email": "carol@example.com", "password": "1234", "role": "user",
	}, admin)
	require.Equal(t, http.StatusCreated, status)
	carolID := data(body)["id"]

	status, body = env.do(t, http.MethodPatch, "/api/admin/users/abc/role", map[string]string{"role": "admin"}, admin)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "invalid_user_id", body["code"])

	status, body = env.do(t, http.MethodPatch, "/api/admin/users/"+jsonNumber(carolID)+"/role", map[string]string{"role": "admin"}, admin)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "admin", data(body)["role"])

	// leave decisions
	status, body = env.do(t, http.MethodPost, "/api/leave/request", map[string]string{
		"leave_type": "vacation", "start_date": "2024-03-01", "end_date": "2024-03-05", "reason": "trip",
	}, alice)
	require.Equal(t, http.StatusCreated, status)
	leaveID := data(body)["id"].(string)

	status, body = env.do(t, http.MethodGet, "/api/admin/leave/pending", nil, admin)
	require.Equal(t, http.StatusOK, status)
	require.Len(t, body["data"], 1)

	status, body = env.do(t, http.MethodPatch, "/api/admin/leave/"+leaveID, map[string]string{"status": "maybe"}, admin)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "invalid_decision", body["code"])

	status, body = env.do(t, http.MethodPatch, "/api/admin/leave/"+leaveID, map[string]string{"status": "approved"}, admin)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "approved", data(body)["status"])

	status, body = env.do(t, http.MethodDelete, "/api/leave/"+leaveID, nil, alice)
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "invalid_state", body["code"])
}

func TestAdminAttendanceExport(t *testing.T) {
	env := newTestEnv(t, 0)
	alice := env.signup(t, "alice")
	admin := env.login(t, "admin", "admin123")

	status, _ := env.do(t, http.MethodPost, "/api/attendance/clock-in", nil, alice)
	require.Equal(t, http.StatusCreated, status)
	env.now = env.now.Add(8 * time.Hour)
	status, _ = env.do(t, http.MethodPost, "/api/attendance/clock-out", nil, alice)
	require.Equal(t, http.StatusOK, status)

	status, body := env.do(t, http.MethodGet, "/api/admin/attendance?sort=username", nil, admin)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, body["data"], 1)

	resp := env.raw(t, http.MethodGet, "/api/admin/attendance/export", nil, admin)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, report.ContentTypeXLSX, resp.Header.Get("Content-Type"))

	f, err := excelize.OpenReader(resp.Body)
	require.NoError(t, err)
	defer f.Close()
	v, err := f.GetCellValue("Attendance", "D2")
	require.NoError(t, err)
	assert.Equal(t, "08:00:00", v)
}

func TestLoginRateLimit(t *testing.T) {
	env := newTestEnv(t, 2)
	creds := map[string]string{"username": "admin", "password": "wrong"}

	for i := 0; i < 2; i++ {
		status, _ := env.do(t, http.MethodPost, "/api/login", creds, "")
		assert.Equal(t, http.StatusUnauthorized, status)
	}
	status, body := env.do(t, http.MethodPost, "/api/login", creds, "")
	assert.Equal(t, http.StatusTooManyRequests, status)
	assert.Equal(t, "too_many_attempts", body["code"])
}

func TestUnknownRouteUsesErrorShape(t *testing.T) {
	env := newTestEnv(t, 0)

	status, body := env.do(t, http.MethodGet, "/api/nope", nil, "")
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "not_found", body["kind"])
}

func jsonNumber(v interface{}) string {
	b, _ := json.Marshal(v)
	return string(b)
}
