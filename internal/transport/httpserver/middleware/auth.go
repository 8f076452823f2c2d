package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"court-register-go/internal/auth"
	"court-register-go/internal/config"
	"court-register-go/pkg/logger"
)

type tokenVerifier interface {
	Verify(token string) (auth.Principal, error)
}

// Authenticator resolves the bearer token of a request into an auth.Principal.
type Authenticator struct {
	verifier tokenVerifier
	skipAuth bool
	mock     auth.Principal
	log      logger.Logger
}

func NewAuthenticator(cfg config.AuthConfig, log logger.Logger) (*Authenticator, error) {
	a := &Authenticator{
		skipAuth: cfg.SkipAuth,
		mock: auth.Principal{
			Name:        strings.TrimSpace(cfg.MockPrincipal),
			Authorities: []string{auth.RoleMaintainRefData},
			Scopes:      []string{"read", auth.ScopeWrite},
		},
		log: log,
	}
	if cfg.SkipAuth {
		return a, nil
	}

	verifier, err := auth.NewVerifier(cfg)
	if err != nil {
		return nil, err
	}
	a.verifier = verifier
	return a, nil
}

// Middleware rejects requests without a valid bearer token.
func (a *Authenticator) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if a.skipAuth {
			if a.mock.Name == "" {
				writeError(w, http.StatusInternalServerError, "auth_not_configured", "auth mock principal not configured")
				return
			}
			next.ServeHTTP(w, r.WithContext(auth.WithPrincipal(r.Context(), a.mock)))
			return
		}

		if a.verifier == nil {
			writeError(w, http.StatusInternalServerError, "auth_not_configured", "auth not configured")
			return
		}

		token, ok := bearerToken(r.Header.Get("Authorization"))
		if !ok {
			unauthorized(w, "invalid token")
			return
		}

		principal, err := a.verifier.Verify(token)
		if err != nil {
			a.log.BusinessError("auth: token rejected", err, "path", r.URL.Path)
			if errors.Is(err, auth.ErrTokenExpired) {
				unauthorized(w, "token has expired")
				return
			}
			unauthorized(w, "invalid token")
			return
		}

		next.ServeHTTP(w, r.WithContext(auth.WithPrincipal(r.Context(), principal)))
	})
}

// RequireAuthority allows only principals holding authority and scope.
func RequireAuthority(authority, scope string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal, ok := auth.PrincipalFromContext(r.Context())
			if !ok {
				unauthorized(w, "invalid token")
				return
			}
			if !principal.HasAuthority(authority) || !principal.HasScope(scope) {
				writeError(w, http.StatusForbidden, "forbidden", "access denied")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func bearerToken(value string) (string, bool) {
	parts := strings.Fields(value)
	if len(parts) != 2 {
		return "", false
	}
	if !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	return parts[1], true
}

func unauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("WWW-Authenticate", `Bearer realm="court-register"`)
	writeError(w, http.StatusUnauthorized, "invalid_token", message)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"error": map[string]string{
			"code":    code,
			"message": message,
		},
	})
}
