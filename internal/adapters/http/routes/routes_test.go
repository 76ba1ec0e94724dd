package routes

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gatepass/internal/adapters/persistence/repositories"
	"gatepass/internal/config"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		AppMode:     "dev",
		StaticDir:   t.TempDir(),
		BodyLimitMB: 1,
		Storage:     config.StorageConfig{Driver: config.StorageMemory, SerializeWrites: true},
		JWT:         config.JWTConfig{Secret: "test-secret", AccessTokenMins: 5},
		Auth:        config.AuthConfig{PasswordHashing: config.PasswordPlain},
	}
}

func newTestApp(t *testing.T, cfg *config.Config) *fiber.App {
	t.Helper()
	repo := repositories.NewSnapshotRepository(
		repositories.NewMemoryStore(),
		config.SeedSnapshot,
		repositories.WithDiagnostic(func(string, error) {}),
	)
	app := NewApp(cfg)
	Setup(app, repo, nil, cfg)
	return app
}

type call struct {
	method string
	path   string
	body   string
	token  string
}

func do(t *testing.T, app *fiber.App, c call) (int, map[string]interface{}) {
	t.Helper()

	req := httptest.NewRequest(c.method, c.path, strings.NewReader(c.body))
	if c.body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var out map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return resp.StatusCode, out
}

func createPass(t *testing.T, app *fiber.App, studentID string) map[string]interface{} {
	t.Helper()
	body := fmt.Sprintf(`{"studentId":%q,"studentName":"A","reason":"home"}`, studentID)
	status, out := do(t, app, call{method: http.MethodPost, path: "/api/passes", body: body})
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, true, out["success"])
	return out["pass"].(map[string]interface{})
}

func login(t *testing.T, app *fiber.App, username string) string {
	t.Helper()
	body := fmt.Sprintf(`{"username":%q,"password":"pass123"}`, username)
	_, out := do(t, app, call{method: http.MethodPost, path: "/api/login", body: body})
	require.Equal(t, true, out["success"])
	return out["token"].(string)
}

func TestLiveness(t *testing.T) {
	app := newTestApp(t, newTestConfig(t))

	status, out := do(t, app, call{method: http.MethodGet, path: "/api/test"})

	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, out["success"])
	assert.Equal(t, "Server is working", out["message"])
}

func TestHealthCheck(t *testing.T) {
	app := newTestApp(t, newTestConfig(t))

	status, out := do(t, app, call{method: http.MethodGet, path: "/health"})

	assert.Equal(t, http.StatusOK, status)
	checks := out["checks"].(map[string]interface{})
	assert.Equal(t, "healthy", checks["storage"])
}

func TestLogin(t *testing.T) {
	app := newTestApp(t, newTestConfig(t))

	t.Run("seeded student", func(t *testing.T) {
		status, out := do(t, app, call{
			method: http.MethodPost,
			path:   "/api/login",
			body:   `{"username":"student1","password":"pass123"}`,
		})

		assert.Equal(t, http.StatusOK, status)
		assert.Equal(t, true, out["success"])
		user := out["user"].(map[string]interface{})
		assert.Equal(t, "1", user["id"])
		assert.Equal(t, "student1", user["username"])
		assert.Equal(t, "student", user["role"])
		assert.Equal(t, "Rahul Kumar", user["name"])
		assert.NotContains(t, user, "password")
		assert.NotEmpty(t, out["token"])
	})

	t.Run("wrong password", func(t *testing.T) {
		status, out := do(t, app, call{
			method: http.MethodPost,
			path:   "/api/login",
			body:   `{"username":"student1","password":"nope"}`,
		})

		assert.Equal(t, http.StatusOK, status)
		assert.Equal(t, false, out["success"])
		assert.Equal(t, "Invalid credentials", out["message"])
	})

	t.Run("missing fields", func(t *testing.T) {
		_, out := do(t, app, call{method: http.MethodPost, path: "/api/login", body: `{"username":"student1"}`})
		assert.Equal(t, false, out["success"])
		assert.Equal(t, "Username and password are required", out["message"])
	})

	t.Run("empty body", func(t *testing.T) {
		status, out := do(t, app, call{method: http.MethodPost, path: "/api/login"})
		assert.Equal(t, http.StatusOK, status)
		assert.Equal(t, "Username and password are required", out["message"])
	})

	t.Run("form body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/login", strings.NewReader("username=mod1&password=pass123"))
		req.Header.Set("Content-Type", fiber.MIMEApplicationForm)

		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		defer resp.Body.Close()

		var out map[string]interface{}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
		assert.Equal(t, true, out["success"])
		assert.Equal(t, "moderator", out["user"].(map[string]interface{})["role"])
	})
}

func TestRegister(t *testing.T) {
	app := newTestApp(t, newTestConfig(t))
	valid := `{"fullName":"A","studentId":"S1","email":"a@x.com","phone":"1","course":"CS","year":"2","password":"p"}`

	status, out := do(t, app, call{method: http.MethodPost, path: "/api/register", body: valid})
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, out["success"])
	assert.Equal(t, "Registration successful", out["message"])
	user := out["user"].(map[string]interface{})
	assert.Equal(t, "S1", user["username"])
	assert.Equal(t, "student", user["role"])
	assert.Equal(t, "A", user["name"])

	_, out = do(t, app, call{method: http.MethodPost, path: "/api/register", body: valid})
	assert.Equal(t, false, out["success"])
	assert.Equal(t, "Student ID already exists", out["message"])

	sameEmail := strings.Replace(valid, `"S1"`, `"S2"`, 1)
	_, out = do(t, app, call{method: http.MethodPost, path: "/api/register", body: sameEmail})
	assert.Equal(t, false, out["success"])
	assert.Equal(t, "Email already registered", out["message"])

	takenUsername := strings.Replace(strings.Replace(valid, `"S1"`, `"mod1"`, 1), "a@x.com", "m@x.com", 1)
	_, out = do(t, app, call{method: http.MethodPost, path: "/api/register", body: takenUsername})
	assert.Equal(t, "Student ID already exists", out["message"])

	_, out = do(t, app, call{method: http.MethodPost, path: "/api/register", body: `{"fullName":"B","studentId":"S9"}`})
	assert.Equal(t, false, out["success"])
	assert.Equal(t, "All fields are required", out["message"])

	_, out = do(t, app, call{method: http.MethodPost, path: "/api/login", body: `{"username":"S1","password":"p"}`})
	assert.Equal(t, true, out["success"])
}

func TestPassLifecycle(t *testing.T) {
	app := newTestApp(t, newTestConfig(t))

	pass := createPass(t, app, "S1")
	id := pass["id"].(string)
	assert.Equal(t, "pending", pass["status"])
	assert.Equal(t, "general", pass["category"])
	assert.Nil(t, pass["approvedAt"])
	assert.Nil(t, pass["usedAt"])
	assert.Nil(t, pass["returnTime"])
	assert.NotEmpty(t, pass["requestedAt"])

	_, out := do(t, app, call{method: http.MethodGet, path: "/api/passes/student/S1"})
	assert.Equal(t, true, out["success"])
	assert.Len(t, out["passes"], 1)

	_, out = do(t, app, call{method: http.MethodGet, path: "/api/passes/student/nobody"})
	assert.Equal(t, true, out["success"])
	assert.Len(t, out["passes"], 0)

	_, out = do(t, app, call{method: http.MethodPut, path: "/api/passes/" + id + "/use"})
	assert.Equal(t, false, out["success"])
	assert.Equal(t, "Pass not approved", out["message"])

	_, out = do(t, app, call{
		method: http.MethodPut,
		path:   "/api/passes/" + id,
		body:   `{"status":"approved","moderatorRemarks":"ok"}`,
	})
	assert.Equal(t, true, out["success"])
	approved := out["pass"].(map[string]interface{})
	assert.Equal(t, "approved", approved["status"])
	assert.Equal(t, "ok", approved["moderatorRemarks"])
	assert.NotNil(t, approved["approvedAt"])

	_, out = do(t, app, call{method: http.MethodPut, path: "/api/passes/" + id + "/use"})
	assert.Equal(t, true, out["success"])
	assert.NotNil(t, out["pass"].(map[string]interface{})["usedAt"])

	_, out = do(t, app, call{method: http.MethodGet, path: "/api/passes/" + id})
	assert.Equal(t, true, out["success"])
	stored := out["pass"].(map[string]interface{})
	assert.Equal(t, id, stored["id"])
	assert.NotNil(t, stored["usedAt"])
}

func TestPassNotFound(t *testing.T) {
	app := newTestApp(t, newTestConfig(t))

	calls := []call{
		{method: http.MethodGet, path: "/api/passes/does-not-exist"},
		{method: http.MethodPut, path: "/api/passes/does-not-exist", body: `{"status":"approved"}`},
		{method: http.MethodPut, path: "/api/passes/does-not-exist/use"},
	}
	for _, c := range calls {
		status, out := do(t, app, c)
		assert.Equal(t, http.StatusOK, status, c.method+" "+c.path)
		assert.Equal(t, false, out["success"], c.method+" "+c.path)
		assert.Equal(t, "Pass not found", out["message"], c.method+" "+c.path)
	}
}

func TestMalformedJSON(t *testing.T) {
	app := newTestApp(t, newTestConfig(t))

	for _, path := range []string{"/api/login", "/api/register", "/api/passes"} {
		status, out := do(t, app, call{method: http.MethodPost, path: path, body: `{"username":`})
		assert.Equal(t, http.StatusBadRequest, status, path)
		assert.Equal(t, false, out["success"], path)
		assert.Equal(t, "Invalid JSON format in request body", out["message"], path)
	}
}

func TestNumericFields(t *testing.T) {
	app := newTestApp(t, newTestConfig(t))

	t.Run("register with numeric year and phone", func(t *testing.T) {
		body := `{"fullName":"A","studentId":4242,"email":"a@x.com","phone":9876543210,"course":"CS","year":2,"password":"p"}`
		status, out := do(t, app, call{method: http.MethodPost, path: "/api/register", body: body})

		assert.Equal(t, http.StatusOK, status)
		assert.Equal(t, true, out["success"])
		assert.Equal(t, "4242", out["user"].(map[string]interface{})["username"])

		_, out = do(t, app, call{method: http.MethodPost, path: "/api/login", body: `{"username":4242,"password":"p"}`})
		assert.Equal(t, true, out["success"])
	})

	t.Run("pass with numeric student id", func(t *testing.T) {
		status, out := do(t, app, call{
			method: http.MethodPost,
			path:   "/api/passes",
			body:   `{"studentId":12345,"studentName":"A","reason":"home","returnTime":1800}`,
		})

		assert.Equal(t, http.StatusOK, status)
		assert.Equal(t, true, out["success"])
		pass := out["pass"].(map[string]interface{})
		assert.Equal(t, "12345", pass["studentId"])
		assert.Equal(t, "1800", pass["returnTime"])

		_, out = do(t, app, call{method: http.MethodGet, path: "/api/passes/student/12345"})
		assert.Len(t, out["passes"], 1)
	})

	t.Run("object field is malformed", func(t *testing.T) {
		status, out := do(t, app, call{method: http.MethodPost, path: "/api/passes", body: `{"studentId":{"id":1}}`})

		assert.Equal(t, http.StatusBadRequest, status)
		assert.Equal(t, "Invalid JSON format in request body", out["message"])
	})
}

func TestUpdateStatusEmptyBody(t *testing.T) {
	app := newTestApp(t, newTestConfig(t))
	id := createPass(t, app, "S1")["id"].(string)

	status, out := do(t, app, call{method: http.MethodPut, path: "/api/passes/" + id})

	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, out["success"])
	pass := out["pass"].(map[string]interface{})
	assert.Equal(t, "", pass["status"])
	assert.Equal(t, "", pass["moderatorRemarks"])
	assert.Nil(t, pass["approvedAt"])

	_, out = do(t, app, call{method: http.MethodPut, path: "/api/passes/" + id + "/use"})
	assert.Equal(t, false, out["success"])
	assert.Equal(t, "Pass not approved", out["message"])
}

func TestListPassesPagination(t *testing.T) {
	app := newTestApp(t, newTestConfig(t))
	for i := 0; i < 3; i++ {
		createPass(t, app, "S1")
	}

	_, out := do(t, app, call{method: http.MethodGet, path: "/api/passes"})
	assert.Len(t, out["passes"], 3)
	assert.NotContains(t, out, "meta")

	_, out = do(t, app, call{method: http.MethodGet, path: "/api/passes?limit=2&page=2"})
	assert.Len(t, out["passes"], 1)
	meta := out["meta"].(map[string]interface{})
	assert.Equal(t, float64(3), meta["total"])
	assert.Equal(t, float64(2), meta["total_pages"])

	status, out := do(t, app, call{method: http.MethodGet, path: "/api/passes?page=2305843009213693953&limit=4"})
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, out["success"])
	assert.Len(t, out["passes"], 0)
}

func TestRequireAuth(t *testing.T) {
	cfg := newTestConfig(t)
	cfg.Auth.RequireAuth = true
	app := newTestApp(t, cfg)

	id := createPass(t, app, "S1")["id"].(string)
	decision := `{"status":"approved","moderatorRemarks":"ok"}`

	status, _ := do(t, app, call{method: http.MethodPut, path: "/api/passes/" + id, body: decision})
	assert.Equal(t, http.StatusUnauthorized, status)

	status, _ = do(t, app, call{method: http.MethodPut, path: "/api/passes/" + id, body: decision, token: "garbage"})
	assert.Equal(t, http.StatusUnauthorized, status)

	status, _ = do(t, app, call{method: http.MethodPut, path: "/api/passes/" + id, body: decision, token: login(t, app, "student1")})
	assert.Equal(t, http.StatusForbidden, status)

	status, out := do(t, app, call{method: http.MethodPut, path: "/api/passes/" + id, body: decision, token: login(t, app, "mod1")})
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, out["success"])

	status, _ = do(t, app, call{method: http.MethodPut, path: "/api/passes/" + id + "/use", token: login(t, app, "mod1")})
	assert.Equal(t, http.StatusForbidden, status)

	status, out = do(t, app, call{method: http.MethodPut, path: "/api/passes/" + id + "/use", token: login(t, app, "gate1")})
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, out["success"])
}

func TestStaticFiles(t *testing.T) {
	cfg := newTestConfig(t)
	require.NoError(t, os.WriteFile(filepath.Join(cfg.StaticDir, "index.html"), []byte("<h1>gate</h1>"), 0o644))
	app := newTestApp(t, cfg)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/index.html", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	status, out := do(t, app, call{method: http.MethodGet, path: "/missing.html"})
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, false, out["success"])
}

func TestDashboard(t *testing.T) {
	app := newTestApp(t, newTestConfig(t))
	createPass(t, app, "S1")
	createPass(t, app, "S2")

	_, out := do(t, app, call{method: http.MethodGet, path: "/api/dashboard"})
	assert.Equal(t, true, out["success"])
	dashboard := out["dashboard"].(map[string]interface{})
	assert.Equal(t, float64(4), dashboard["totalUsers"])
	assert.Equal(t, float64(2), dashboard["passes"].(map[string]interface{})["pending"])
	assert.Len(t, dashboard["recentPasses"], 2)

	_, out = do(t, app, call{method: http.MethodGet, path: "/api/dashboard/student/S1"})
	assert.Equal(t, true, out["success"])
	student := out["dashboard"].(map[string]interface{})
	assert.Equal(t, "S1", student["studentId"])
	assert.Nil(t, student["activePass"])
	assert.NotNil(t, student["latestPass"])
}
