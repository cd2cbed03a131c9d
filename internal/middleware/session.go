package middleware

import (
	"net/http"

	"go.uber.org/zap"

	"dirtyduck.club/storefront/internal/logging"
	"dirtyduck.club/storefront/internal/session"
)

// Session resolves the visitor's shell from the signed session cookie, creating
// a fresh session when the cookie is missing, tampered with or expired. The
// cookie is re-signed on every request so its age tracks the last visit.
func Session(store *session.Store, codec *session.Codec) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			prev := codec.Read(r)
			id, sh, err := store.Acquire(prev)
			if err != nil {
				WriteError(w, r, http.StatusServiceUnavailable, "shutting down")
				return
			}
			// cookie must go out before any handler writes the body
			if err := codec.Write(w, id); err != nil {
				logging.FromContext(r.Context()).Error("session cookie", zap.Error(err))
			}
			next.ServeHTTP(w, r.WithContext(WithShell(r.Context(), id, sh)))
		})
	}
}
