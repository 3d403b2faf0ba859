package auth

import (
	"context"
	"net/http"
	"strings"
)

type contextKey struct{ name string }

var userIDKey = contextKey{"userID"}

// TokenFromRequest extracts a bearer token from the Authorization header,
// falling back to the token query parameter. The fallback exists for
// WebSocket upgrades, where browsers can't attach custom headers.
func TokenFromRequest(r *http.Request) string {
	if h := r.Header.Get("Authorization"); h != "" {
		if tok, ok := strings.CutPrefix(h, "Bearer "); ok {
			return strings.TrimSpace(tok)
		}
		return ""
	}
	return r.URL.Query().Get("token")
}

// AuthMiddleware rejects requests without a valid token and stores the
// authenticated user id in the request context.
func (s *Service) AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tok := TokenFromRequest(r)
		if tok == "" {
			writeError(w, http.StatusUnauthorized, "missing credentials")
			return
		}

		userID, err := s.ValidateToken(tok)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "invalid token")
			return
		}

		next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), userID)))
	})
}

// WithUserID returns a context carrying the authenticated user id.
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// UserIDFromContext returns the authenticated user id, or "" when the
// request did not pass the middleware.
func UserIDFromContext(ctx context.Context) string {
	userID, _ := ctx.Value(userIDKey).(string)
	return userID
}
