package auth_test

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/vovandreevik/Automation-of-the-Dean-office/internal/auth"
	"github.com/vovandreevik/Automation-of-the-Dean-office/internal/user"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMiddleware(t *testing.T) {
	service, _ := newTestService(t)
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	var seen *user.User
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = auth.CurrentUser(r.Context())
		w.WriteHeader(http.StatusOK)
	})
	protected := auth.Middleware(service, logger)(next)

	t.Run("MissingHeader", func(t *testing.T) {
		rec := httptest.NewRecorder()
		protected.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/groups", nil))

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "Bearer", rec.Header().Get("WWW-Authenticate"))
	})

	t.Run("MalformedHeader", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/groups", nil)
		req.Header.Set("Authorization", "Basic abc123")
		rec := httptest.NewRecorder()
		protected.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("InvalidToken", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/groups", nil)
		req.Header.Set("Authorization", "Bearer not-a-token")
		rec := httptest.NewRecorder()
		protected.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("ValidToken", func(t *testing.T) {
		resp, err := service.Login(context.Background(), "ivanov", "password123")
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/groups", nil)
		req.Header.Set("Authorization", "Bearer "+resp.AccessToken)
		rec := httptest.NewRecorder()
		protected.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		require.NotNil(t, seen)
		assert.Equal(t, "ivanov", seen.Login)
	})
}

func TestAdminMiddleware(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	gated := auth.AdminMiddleware(logger)(next)

	withUser := func(u *user.User) *http.Request {
		req := httptest.NewRequest(http.MethodDelete, "/groups/1", nil)
		return req.WithContext(context.WithValue(req.Context(), auth.UserKey, u))
	}

	t.Run("Admin", func(t *testing.T) {
		rec := httptest.NewRecorder()
		gated.ServeHTTP(rec, withUser(&user.User{ID: 1, Login: "admin", Role: user.RoleAdmin}))

		assert.Equal(t, http.StatusNoContent, rec.Code)
	})

	t.Run("PlainUser", func(t *testing.T) {
		rec := httptest.NewRecorder()
		gated.ServeHTTP(rec, withUser(&user.User{ID: 2, Login: "ivanov", Role: user.RoleUser}))

		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("NoUserInContext", func(t *testing.T) {
		rec := httptest.NewRecorder()
		gated.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/groups/1", nil))

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}
