package auth

import (
	"context"
	"slices"
	"strings"
)

const (
	RoleMaintainRefData = "ROLE_MAINTAIN_REF_DATA"
	ScopeWrite          = "write"

	UnknownPrincipal = "unknown"
)

// Principal is the authenticated caller of a request.
type Principal struct {
	Name        string
	ClientID    string
	Authorities []string
	Scopes      []string
}

func (p Principal) HasAuthority(authority string) bool {
	return slices.Contains(p.Authorities, authority)
}

func (p Principal) HasScope(scope string) bool {
	return slices.ContainsFunc(p.Scopes, func(s string) bool { return strings.EqualFold(s, scope) })
}

type contextKey int

const principalKey contextKey = iota

func WithPrincipal(ctx context.Context, principal Principal) context.Context {
	return context.WithValue(ctx, principalKey, principal)
}

func PrincipalFromContext(ctx context.Context) (Principal, bool) {
	principal, ok := ctx.Value(principalKey).(Principal)
	if !ok || principal.Name == "" {
		return Principal{}, false
	}
	return principal, true
}

// PrincipalName returns the caller name recorded in audit events.
func PrincipalName(ctx context.Context) string {
	if principal, ok := PrincipalFromContext(ctx); ok {
		return principal.Name
	}
	return UnknownPrincipal
}
