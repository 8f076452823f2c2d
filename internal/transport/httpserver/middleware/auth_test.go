package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"court-register-go/internal/auth"
	"court-register-go/internal/config"
	"court-register-go/pkg/logger"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSigningKey = "middleware-test-signing-key"

func token(t *testing.T, authorities, scopes []string, expires time.Time) string {
	t.Helper()
	claims := auth.Claims{
		UserName:    "ITAG_USER",
		Authorities: authorities,
		Scope:       scopes,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expires),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSigningKey))
	require.NoError(t, err)
	return signed
}

func protected(t *testing.T, cfg config.AuthConfig) http.Handler {
	t.Helper()
	authenticator, err := NewAuthenticator(cfg, logger.Nop())
	require.NoError(t, err)

	final := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(auth.PrincipalName(r.Context())))
	})
	return authenticator.Middleware(RequireAuthority(auth.RoleMaintainRefData, auth.ScopeWrite)(final))
}

func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body.Error.Code
}

func TestAuthenticator(t *testing.T) {
	handler := protected(t, config.AuthConfig{JWTSigningKey: testSigningKey})
	future := time.Now().Add(time.Hour)

	tests := []struct {
		name   string
		header string
		status int
		code   string
	}{
		{name: "missing token", header: "", status: http.StatusUnauthorized, code: "invalid_token"},
		{name: "malformed header", header: "Token abc", status: http.StatusUnauthorized, code: "invalid_token"},
		{name: "garbage token", header: "Bearer abc.def.ghi", status: http.StatusUnauthorized, code: "invalid_token"},
		{
			name:   "expired token",
			header: "Bearer " + token(t, []string{auth.RoleMaintainRefData}, []string{"write"}, time.Now().Add(-time.Minute)),
			status: http.StatusUnauthorized,
			code:   "invalid_token",
		},
		{
			name:   "missing role",
			header: "Bearer " + token(t, []string{"ROLE_OTHER"}, []string{"write"}, future),
			status: http.StatusForbidden,
			code:   "forbidden",
		},
		{
			name:   "read scope only",
			header: "Bearer " + token(t, []string{auth.RoleMaintainRefData}, []string{"read"}, future),
			status: http.StatusForbidden,
			code:   "forbidden",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/court-maintenance", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, tt.code, errorCode(t, rec))
		})
	}
}

func TestAuthenticatorAcceptsMaintainer(t *testing.T) {
	handler := protected(t, config.AuthConfig{JWTSigningKey: testSigningKey})

	req := httptest.NewRequest(http.MethodPost, "/court-maintenance", nil)
	req.Header.Set("Authorization", "Bearer "+token(t, []string{auth.RoleMaintainRefData}, []string{"read", "write"}, time.Now().Add(time.Hour)))
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ITAG_USER", rec.Body.String())
}

func TestAuthenticatorSkipAuth(t *testing.T) {
	handler := protected(t, config.AuthConfig{SkipAuth: true, MockPrincipal: "local-dev"})

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/court-maintenance", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "local-dev", rec.Body.String())
}

func TestNewAuthenticatorRequiresKey(t *testing.T) {
	_, err := NewAuthenticator(config.AuthConfig{}, logger.Nop())
	assert.Error(t, err)
}

func TestCORS(t *testing.T) {
	handler := NewCORS([]string{"http://localhost:3000"})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodOptions, "/courts", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/courts", nil)
	req.Header.Set("Origin", "http://evil.example")
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}
