package auth

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/vovandreevik/Automation-of-the-Dean-office/internal/httputil"
	"github.com/vovandreevik/Automation-of-the-Dean-office/internal/user"
)

type contextKey string

// UserKey is the context key for the authenticated user
const UserKey contextKey = "user"

// Middleware validates the bearer token and adds the verified user to the
// request context. A missing or invalid token ends the request with 401 and
// a bearer challenge.
func Middleware(service *Service, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r)
			if !ok {
				logger.WarnContext(r.Context(), "missing bearer token", "path", r.URL.Path)
				unauthorized(w)
				return
			}

			usr, err := service.UserFromToken(r.Context(), token)
			if err != nil {
				logger.WarnContext(r.Context(), "invalid token", "error", err)
				unauthorized(w)
				return
			}

			ctx := context.WithValue(r.Context(), UserKey, usr)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// AdminMiddleware gates mutating routes; it must run after Middleware.
func AdminMiddleware(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			usr, ok := CurrentUser(r.Context())
			if !ok {
				unauthorized(w)
				return
			}
			if !usr.IsAdmin() {
				logger.WarnContext(r.Context(), "admin role required", "login", usr.Login, "path", r.URL.Path)
				httputil.RespondWithError(w, http.StatusForbidden, "you do not have permission to perform this action")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// CurrentUser extracts the authenticated user from the context
func CurrentUser(ctx context.Context) (*user.User, bool) {
	usr, ok := ctx.Value(UserKey).(*user.User)
	return usr, ok
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if len(header) <= len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return "", false
	}
	return header[len(prefix):], true
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("WWW-Authenticate", "Bearer")
	httputil.RespondWithError(w, http.StatusUnauthorized, "invalid authentication credentials")
}
