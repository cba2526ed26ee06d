package server

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegister(t *testing.T) {
	t.Run("Success Returns Public Fields Only", func(t *testing.T) {
		app, _ := setupTestServer(t)

		resp := doJSON(t, app, http.MethodPost, "/api/auth/register", "", map[string]any{
			"username":   "alice",
			"email":      "alice@example.com",
			"password":   "correct-horse-9",
			"first_name": "Alice",
		})
		require.Equal(t, http.StatusCreated, resp.StatusCode)

		body := decodeBody(t, resp)
		assert.Equal(t, "alice", body["username"])
		assert.Equal(t, "Alice", body["first_name"])
		assert.Contains(t, body, "date_joined")
		assert.NotContains(t, body, "password")
	})

	t.Run("Password Confirmation Mismatch", func(t *testing.T) {
		app, _ := setupTestServer(t)

		resp := doJSON(t, app, http.MethodPost, "/api/auth/register", "", map[string]any{
			"username":              "alice",
			"email":                 "alice@example.com",
			"password":              "correct-horse-9",
			"password_confirmation": "different-horse-9",
		})
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)

		body := decodeBody(t, resp)
		fields, ok := body["fields"].(map[string]any)
		require.True(t, ok)
		assert.Contains(t, fields, "password_confirmation")
	})

	t.Run("Weak Password And Bad Email Report Per Field", func(t *testing.T) {
		app, _ := setupTestServer(t)

		resp := doJSON(t, app, http.MethodPost, "/api/auth/register", "", map[string]any{
			"username": "bob",
			"email":    "not-an-email",
			"password": "12345678",
		})
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)

		body := decodeBody(t, resp)
		fields, ok := body["fields"].(map[string]any)
		require.True(t, ok)
		assert.Contains(t, fields, "email")
		assert.Contains(t, fields, "password")
	})

	t.Run("Duplicate Username Conflicts", func(t *testing.T) {
		app, _ := setupTestServer(t)
		registerAndLogin(t, app, "alice")

		resp := doJSON(t, app, http.MethodPost, "/api/auth/register", "", map[string]any{
			"username": "alice",
			"email":    "other@example.com",
			"password": "correct-horse-9",
		})
		require.Equal(t, http.StatusConflict, resp.StatusCode)

		body := decodeBody(t, resp)
		fields, ok := body["fields"].(map[string]any)
		require.True(t, ok)
		assert.Contains(t, fields, "username")
	})

	t.Run("Registration Creates Profile Atomically", func(t *testing.T) {
		app, _ := setupTestServer(t)
		token := registerAndLogin(t, app, "alice")

		resp := doJSON(t, app, http.MethodGet, "/api/profile", token, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		body := decodeBody(t, resp)
		user, ok := body["user"].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "alice", user["username"])
	})
}

func TestLogin(t *testing.T) {
	app, _ := setupTestServer(t)
	registerAndLogin(t, app, "alice")

	t.Run("Valid Credentials Return Token Pair", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodPost, "/api/auth/login", "", map[string]any{
			"username": "alice",
			"password": "correct-horse-9",
		})
		require.Equal(t, http.StatusOK, resp.StatusCode)

		body := decodeBody(t, resp)
		assert.NotEmpty(t, body["access_token"])
		assert.NotEmpty(t, body["refresh_token"])
	})

	t.Run("Wrong Password And Unknown User Are Indistinguishable", func(t *testing.T) {
		wrongPass := doJSON(t, app, http.MethodPost, "/api/auth/login", "", map[string]any{
			"username": "alice",
			"password": "wrong",
		})
		unknown := doJSON(t, app, http.MethodPost, "/api/auth/login", "", map[string]any{
			"username": "ghost",
			"password": "wrong",
		})

		require.Equal(t, http.StatusUnauthorized, wrongPass.StatusCode)
		require.Equal(t, http.StatusUnauthorized, unknown.StatusCode)
		assert.Equal(t, decodeBody(t, wrongPass)["error"], decodeBody(t, unknown)["error"])
	})
}

func TestRefresh(t *testing.T) {
	app, _ := setupTestServer(t)
	registerAndLogin(t, app, "alice")

	login := doJSON(t, app, http.MethodPost, "/api/auth/login", "", map[string]any{
		"username": "alice",
		"password": "correct-horse-9",
	})
	require.Equal(t, http.StatusOK, login.StatusCode)
	tokens := decodeBody(t, login)

	t.Run("Refresh Token Yields New Access Token", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodPost, "/api/auth/refresh", "", map[string]any{
			"refresh_token": tokens["refresh_token"],
		})
		require.Equal(t, http.StatusOK, resp.StatusCode)

		body := decodeBody(t, resp)
		access, ok := body["access_token"].(string)
		require.True(t, ok)

		// The fresh access token must work on a protected route.
		profile := doJSON(t, app, http.MethodGet, "/api/profile", access, nil)
		assert.Equal(t, http.StatusOK, profile.StatusCode)
		_ = profile.Body.Close()
	})

	t.Run("Access Token Is Rejected As Refresh Token", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodPost, "/api/auth/refresh", "", map[string]any{
			"refresh_token": tokens["access_token"],
		})
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		_ = resp.Body.Close()
	})

	t.Run("Refresh Token Cannot Access Protected Routes", func(t *testing.T) {
		refresh, ok := tokens["refresh_token"].(string)
		require.True(t, ok)

		resp := doJSON(t, app, http.MethodGet, "/api/profile", refresh, nil)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		_ = resp.Body.Close()
	})

	t.Run("Missing Body Is Bad Request", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodPost, "/api/auth/refresh", "", map[string]any{})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		_ = resp.Body.Close()
	})
}
