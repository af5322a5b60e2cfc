package auth

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"go.uber.org/zap"
)

// RequireVendor is a middleware factory that authenticates the request from
// its Bearer token and injects the resolved vendor session into the context.
// Handlers behind it re-derive the acting vendor from the session only.
func RequireVendor(svc Service, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || token == "" {
				http.Error(w, "Unauthorized: bearer token required", http.StatusUnauthorized)
				return
			}

			session, err := svc.VerifyToken(r.Context(), token)
			if err != nil {
				logger.Warn("session token rejected", zap.String("remote_addr", r.RemoteAddr), zap.Error(err))
				http.Error(w, "Unauthorized: invalid session", http.StatusUnauthorized)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithSession(r.Context(), session)))
		})
	}
}

// AdminKeyHeader carries the administrator API key.
const AdminKeyHeader = "X-Admin-Key"

// RequireAdminKey is a middleware factory guarding the administrative surface
// with a shared API key.
func RequireAdminKey(key string, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got := r.Header.Get(AdminKeyHeader)
			if got == "" || subtle.ConstantTimeCompare([]byte(got), []byte(key)) != 1 {
				logger.Warn("admin key rejected", zap.String("remote_addr", r.RemoteAddr))
				http.Error(w, "Unauthorized: admin key required", http.StatusUnauthorized)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
