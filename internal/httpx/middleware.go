package httpx

import (
	"context"
	"net/http"
	"strings"

	"github.com/Mobile-Craft/order-manager/internal/auth"
)

type ctxKey int

const claimsKey ctxKey = 0

// Auth validates bearer tokens and enforces the role capability sets.
// The service runs for one business; tokens scoped to another one are
// rejected outright.
type Auth struct {
	Secret     []byte
	BusinessID string
}

// Require returns middleware that admits only tokens whose role grants
// the capability.
func (a *Auth) Require(capability auth.Capability) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
			if raw == "" || raw == r.Header.Get("Authorization") {
				writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "missing bearer token"})
				return
			}
			claims, err := auth.ParseToken(raw, a.Secret)
			if err != nil {
				writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "invalid token"})
				return
			}
			if a.BusinessID != "" && claims.BusinessID != a.BusinessID {
				writeJSON(w, http.StatusForbidden, map[string]string{"error": "wrong business"})
				return
			}
			if !claims.Role.Can(capability) {
				writeJSON(w, http.StatusForbidden, map[string]string{"error": "role not allowed"})
				return
			}
			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), claimsKey, claims)))
		})
	}
}

// ClaimsFrom returns the verified claims stored by Require.
func ClaimsFrom(r *http.Request) (auth.Claims, bool) {
	c, ok := r.Context().Value(claimsKey).(auth.Claims)
	return c, ok
}
