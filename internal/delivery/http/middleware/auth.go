package middleware

import (
	"context"
	"net/http"
	"strings"

	h "investorbooking/internal/delivery/http/helpers"
	"investorbooking/internal/domain"
)

type contextKey string

const adminEmailKey contextKey = "adminEmail"

// SetAdminEmail returns a context with the administrator email set. Used by auth middleware.
func SetAdminEmail(ctx context.Context, email string) context.Context {
	return context.WithValue(ctx, adminEmailKey, email)
}

// AdminFromContext reports whether the request was made by the authenticated
// administrator, and by which email. This is the whole authorization surface
// of the service.
func AdminFromContext(ctx context.Context) (string, bool) {
	email, ok := ctx.Value(adminEmailKey).(string)
	return email, ok
}

// RequireAdmin returns a wrapper that validates the Bearer token and marks the
// request context as administrator. If the token is missing or invalid, it
// responds with 401 and does not call next.
func RequireAdmin(verifier domain.TokenVerifier) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			auth := r.Header.Get("Authorization")
			if auth == "" {
				h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "missing authorization header")
				return
			}
			const prefix = "Bearer "
			if !strings.HasPrefix(auth, prefix) {
				h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "invalid authorization format")
				return
			}
			token := strings.TrimSpace(auth[len(prefix):])
			if token == "" {
				h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "missing token")
				return
			}
			email, err := verifier.Verify(token)
			if err != nil {
				h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "invalid or expired token")
				return
			}
			r = r.WithContext(SetAdminEmail(r.Context(), email))
			next(w, r)
		}
	}
}
