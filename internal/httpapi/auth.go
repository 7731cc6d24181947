package httpapi

import (
	"context"
	"net/http"
	"strings"
)

// contextKey is a private type for context keys to avoid collisions.
type contextKey string

// subjectKey is the context key holding the authenticated username.
const subjectKey contextKey = "taskboard_subject"

// requireAuth validates the bearer token and stores its subject in the
// request context. Missing, malformed, expired and badly signed tokens are
// all answered with the same 401.
func (s *Server) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenString := extractBearer(r)
		if tokenString == "" {
			unauthorized(w, "not authenticated")
			return
		}

		subject, err := s.tokens.Verify(tokenString)
		if err != nil {
			unauthorized(w, "could not validate credentials")
			return
		}

		ctx := context.WithValue(r.Context(), subjectKey, subject)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// extractBearer pulls the token out of the Authorization header.
func extractBearer(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if len(auth) > len(prefix) && strings.EqualFold(auth[:len(prefix)], prefix) {
		return auth[len(prefix):]
	}
	return ""
}

// unauthorized answers 401 with the WWW-Authenticate hint the original
// backend sent.
func unauthorized(w http.ResponseWriter, msg string) {
	w.Header().Set("WWW-Authenticate", "Bearer")
	writeError(w, http.StatusUnauthorized, msg)
}

// subjectFromContext returns the authenticated username, or "" outside of
// requireAuth.
func subjectFromContext(ctx context.Context) string {
	if v := ctx.Value(subjectKey); v != nil {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}
