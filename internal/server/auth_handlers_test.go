package server

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignupLoginProfileFlow(t *testing.T) {
	app, _, _ := setupServerTest(t, nil)

	token := signupAndLogin(t, app, "sam@example.com", "quiet_listener")

	resp, body := doJSON(t, app, http.MethodGet, "/api/users/me", nil, token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "sam@example.com", body["email"])
	assert.Equal(t, "quiet_listener", body["display_name"])

	// Password hash never leaves the API.
	_, exposed := body["password"]
	assert.False(t, exposed)
}

func TestSignupRejectsWeakPassword(t *testing.T) {
	app, _, _ := setupServerTest(t, nil)

	resp, body := doJSON(t, app, http.MethodPost, "/api/auth/signup", map[string]string{
		"email":        "weak@example.com",
		"display_name": "weak_user",
		"password":     "short",
	}, "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION_ERROR", body["code"])
}

func TestLoginWrongPassword(t *testing.T) {
	app, _, _ := setupServerTest(t, nil)
	signupAndLogin(t, app, "sam@example.com", "quiet_listener")

	resp, _ := doJSON(t, app, http.MethodPost, "/api/auth/login", map[string]string{
		"email":    "sam@example.com",
		"password": "WrongPass12!@",
	}, "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestProtectedRouteRequiresToken(t *testing.T) {
	app, _, _ := setupServerTest(t, nil)

	resp, _ := doJSON(t, app, http.MethodGet, "/api/users/me", nil, "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, _ = doJSON(t, app, http.MethodGet, "/api/users/me", nil, "not-a-jwt")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
