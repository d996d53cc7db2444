package server_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/semdex/auth-service/audit"
	"github.com/semdex/auth-service/auth"
	"github.com/semdex/auth-service/devices"
	"github.com/semdex/auth-service/directory"
	"github.com/semdex/auth-service/server"
	"github.com/semdex/auth-service/token"
	"github.com/semdex/auth-service/users"
	"github.com/stretchr/testify/require"
)

type stubConfig struct{}

func (stubConfig) GetPort() string                 { return ":0" }
func (stubConfig) GetAppName() string              { return "SEMDEX Auth Test" }
func (stubConfig) GetEnv() string                  { return "TEST" }
func (stubConfig) GetDatabaseDSN() string          { return "" }
func (stubConfig) GetDeviceDBPath() string         { return "" }
func (stubConfig) GetMagicLinkScheme() string      { return "semdex" }
func (stubConfig) GetSigningSecret() string        { return "handler-test-secret" }
func (stubConfig) GetTokenLifetime() time.Duration { return time.Hour }

func setupTestServer(t *testing.T) (*server.Server, *audit.InMemoryRepo, *token.Service) {
	t.Helper()

	ur := users.NewInMemoryRepo()
	ur.Add(users.User{
		Email:       "pbernardproxy@gmail.com",
		Phone:       "+230 54557219",
		FullName:    "Patrick Ian Bernard",
		SharesOwned: 125000,
	})
	ar := audit.NewInMemoryRepo()

	tokens, err := token.NewService("handler-test-secret", time.Hour)
	require.NoError(t, err)

	sessions, err := auth.NewSessionService(auth.Repos{
		Users:   ur,
		Audit:   ar,
		Devices: devices.NewInMemoryRepo(),
	}, directory.Semdex(), tokens)
	require.NoError(t, err)

	srv, err := server.New(stubConfig{}, sessions)
	require.NoError(t, err)
	return srv, ar, tokens
}

func postJSON(t *testing.T, srv http.Handler, path string, payload any) *httptest.ResponseRecorder {
	t.Helper()

	body, err := json.Marshal(payload)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	return rec
}

func TestLoginEndpoint(t *testing.T) {
	srv, auditRepo, tokens := setupTestServer(t)

	rec := postJSON(t, srv, server.RouteAuthLogin, map[string]string{
		"identifier": "pbernardproxy@gmail.com",
		"method":     "email",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var result auth.LoginResult
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&result))
	require.Equal(t, "Patrick Ian Bernard", result.User.FullName)

	claims, err := tokens.Verify(result.Token)
	require.NoError(t, err)
	require.Equal(t, result.User.ID, claims.UserID)

	require.Len(t, auditRepo.Entries(), 1)
}

func TestLoginEndpointRejectsUnknown(t *testing.T) {
	srv, auditRepo, _ := setupTestServer(t)

	rec := postJSON(t, srv, server.RouteAuthLogin, map[string]string{
		"identifier": "unknown@example.com",
		"method":     "email",
	})
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Empty(t, auditRepo.Entries())
}

func TestLoginEndpointValidation(t *testing.T) {
	srv, _, _ := setupTestServer(t)

	rec := postJSON(t, srv, server.RouteAuthLogin, map[string]string{"identifier": ""})
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCurrentUserEndpoint(t *testing.T) {
	srv, _, tokens := setupTestServer(t)

	signed, err := tokens.Issue(1, "pbernardproxy@gmail.com")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, server.RouteAuthMe, nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var user users.User
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&user))
	require.Equal(t, "pbernardproxy@gmail.com", user.Email)
}

func TestCurrentUserEndpointWithoutToken(t *testing.T) {
	srv, _, _ := setupTestServer(t)

	req := httptest.NewRequest(http.MethodGet, server.RouteAuthMe, nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLogoutEndpoint(t *testing.T) {
	srv, auditRepo, _ := setupTestServer(t)

	rec := postJSON(t, srv, server.RouteAuthLogout, map[string]int64{"userId": 1})
	require.Equal(t, http.StatusNoContent, rec.Code)

	entries := auditRepo.Entries()
	require.Len(t, entries, 1)
	require.Equal(t, audit.ActionLogout, entries[0].Action)
}

func TestDeviceLoginEndpointUnregistered(t *testing.T) {
	srv, _, _ := setupTestServer(t)

	rec := postJSON(t, srv, server.RouteAuthDeviceLogin, map[string]string{"deviceId": "device-123"})
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestMagicLinkEndpoint(t *testing.T) {
	srv, _, _ := setupTestServer(t)

	rec := postJSON(t, srv, server.RouteAuthMagicLink, map[string]string{"email": "pbernardproxy@gmail.com"})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		MagicLink string `json:"magicLink"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.Contains(t, resp.MagicLink, "semdex://auth/magic?token=")
}

func TestHealthEndpoint(t *testing.T) {
	srv, _, _ := setupTestServer(t)

	req := httptest.NewRequest(http.MethodGet, server.RouteHealth, nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
}
