package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/terraincognita07/selene/internal/db"
	"github.com/terraincognita07/selene/internal/security"
)

const testSecretKey = "0123456789abcdef0123456789abcdef"

var testNow = time.Date(2025, time.January, 15, 10, 0, 0, 0, time.UTC)

type testServer struct {
	app      *fiber.App
	handler  *Handler
	database *gorm.DB
}

func newTestServer(t *testing.T, options AppOptions) *testServer {
	t.Helper()

	database, err := db.OpenSQLite(filepath.Join(t.TempDir(), "selene-api-test.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := database.DB()
	if err != nil {
		t.Fatalf("open sql db: %v", err)
	}
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	handler, err := NewHandler(database, testSecretKey, time.UTC, []string{"en", "ru"})
	if err != nil {
		t.Fatalf("init handler: %v", err)
	}
	handler.now = func() time.Time { return testNow }

	return &testServer{
		app:      NewApp(handler, options),
		handler:  handler,
		database: database,
	}
}

func (server *testServer) setNow(value time.Time) {
	server.handler.now = func() time.Time { return value }
}

func mustIssueToken(t *testing.T, userID uint, issuedAt time.Time, ttl time.Duration) string {
	t.Helper()
	token, err := security.IssueToken([]byte(testSecretKey), userID, ttl, issuedAt)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	return token
}

func (server *testServer) request(t *testing.T, method string, path string, token string, body any) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("encode body: %v", err)
		}
		reader = bytes.NewReader(encoded)
	}

	request := httptest.NewRequest(method, path, reader)
	if body != nil {
		request.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		request.Header.Set("Authorization", "Bearer "+token)
	}

	response, err := server.app.Test(request, -1)
	if err != nil {
		t.Fatalf("%s %s failed: %v", method, path, err)
	}
	return response
}

func (server *testServer) requestAs(t *testing.T, userID uint, method string, path string, body any) *http.Response {
	t.Helper()
	return server.request(t, method, path, mustIssueToken(t, userID, testNow, time.Hour), body)
}

func expectStatus(t *testing.T, response *http.Response, status int) {
	t.Helper()
	if response.StatusCode != status {
		payload, _ := io.ReadAll(response.Body)
		t.Fatalf("expected status %d, got %d: %s", status, response.StatusCode, string(payload))
	}
}

func decodeJSON[T any](t *testing.T, response *http.Response) T {
	t.Helper()

	var payload T
	if err := json.NewDecoder(response.Body).Decode(&payload); err != nil {
		t.Fatalf("decode response body: %v", err)
	}
	return payload
}

func readAPIError(t *testing.T, response *http.Response) string {
	t.Helper()
	return decodeJSON[map[string]string](t, response)["error"]
}
