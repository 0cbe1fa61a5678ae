package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"mindhaven/internal/config"
	"mindhaven/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func testConfig() *config.Config {
	return &config.Config{
		Port:           "8460",
		Env:            "test",
		JWTSecret:      "handler-test-secret",
		BlogBaseURL:    "http://blog.invalid",
		HuggingFaceURL: "http://moderation.invalid",
		GeminiBaseURL:  "http://gemini.invalid",
		GeminiModel:    "gemini-1.5-flash",
	}
}

func setupHandlerTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Community{},
		&models.Post{},
		&models.Comment{},
		&models.Vote{},
		&models.ChatSession{},
		&models.ChatMessage{},
	); err != nil {
		t.Fatalf("migrate sqlite: %v", err)
	}

	return db
}

// setupServerTest builds a server over an in-memory database and routes
// mounted on a bare app. Per-route rate limits are bypassed in the test env.
func setupServerTest(t *testing.T, cfg *config.Config) (*fiber.App, *Server, *gorm.DB) {
	t.Helper()
	t.Setenv("APP_ENV", "test")

	if cfg == nil {
		cfg = testConfig()
	}

	db := setupHandlerTestDB(t)
	s, err := NewServerWithDeps(cfg, db, nil)
	require.NoError(t, err)

	app := fiber.New()
	s.SetupRoutes(app)
	return app, s, db
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body any, token string) (*http.Response, map[string]any) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	var decoded map[string]any
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &decoded), "body: %s", raw)
	}
	return resp, decoded
}

// signupAndLogin registers a user through the API and returns a live token.
func signupAndLogin(t *testing.T, app *fiber.App, email, name string) string {
	t.Helper()

	resp, body := doJSON(t, app, http.MethodPost, "/api/auth/signup", map[string]string{
		"email":        email,
		"display_name": name,
		"password":     "SecurePass12!@",
	}, "")
	require.Equal(t, http.StatusCreated, resp.StatusCode, "signup body: %v", body)

	token, _ := body["token"].(string)
	require.NotEmpty(t, token)
	return token
}
