package auth

import (
	"net/http"
	"strings"

	"github.com/firedesk/timecard/internal/platform/httpx"
	"github.com/firedesk/timecard/internal/shared"
)

// Middleware authenticates bearer tokens and attaches the identity to the
// request context.
type Middleware struct {
	Tokens *TokenManager
}

// RequireAuth rejects requests without a valid bearer token.
func (m Middleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			httpx.Problem(w, http.StatusUnauthorized, "Unauthorized", "missing bearer token")
			return
		}
		id, err := m.Tokens.Parse(token)
		if err != nil {
			httpx.Problem(w, http.StatusUnauthorized, "Unauthorized", "invalid bearer token")
			return
		}
		next.ServeHTTP(w, r.WithContext(shared.ContextWithIdentity(r.Context(), id)))
	})
}

// RequireAdmin rejects authenticated requests from non-admin identities.
func (m Middleware) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := shared.IdentityFromContext(r.Context())
		if id == nil || !id.Admin {
			httpx.Problem(w, http.StatusForbidden, "Forbidden", "admin access required")
			return
		}
		next.ServeHTTP(w, r)
	})
}
