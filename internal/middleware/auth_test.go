// File: internal/middleware/auth_test.go
package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/roomhub/go-roomhub/internal/domain"
	"github.com/roomhub/go-roomhub/internal/repository/user"
	"github.com/roomhub/go-roomhub/internal/services/user_services"
)

type noopLogger struct{}

func (noopLogger) Info(msg string, keysAndValues ...interface{})  {}
func (noopLogger) Error(msg string, keysAndValues ...interface{}) {}
func (noopLogger) Debug(msg string, keysAndValues ...interface{}) {}
func (noopLogger) Warn(msg string, keysAndValues ...interface{})  {}

func setupAuthService(t *testing.T) (*user_services.AuthService, string, uint) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := db.AutoMigrate(&domain.User{}); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	svc := user_services.NewAuthService(user.NewGormUserRepository(db), "test-secret", noopLogger{})
	u, token, err := svc.Register(context.Background(), "alice", "alice@example.com", "password123")
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	return svc, token, u.ID
}

func TestRequireAuth(t *testing.T) {
	svc, token, userID := setupAuthService(t)

	var gotUserID uint
	var called bool
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		gotUserID, _ = CurrentUserID(r)
	})
	handler := RequireAuth(svc)(next)

	t.Run("no cookie redirects to sign-in", func(t *testing.T) {
		called = false
		req := httptest.NewRequest("GET", "/createRoom", nil)
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		if called {
			t.Error("next handler must not run for anonymous requests")
		}
		if rec.Code != http.StatusSeeOther {
			t.Errorf("expected status 303, got %d", rec.Code)
		}
		if loc := rec.Header().Get("Location"); loc != "/signIn" {
			t.Errorf("expected redirect to /signIn, got %q", loc)
		}
	})

	t.Run("invalid cookie is cleared and redirected", func(t *testing.T) {
		called = false
		req := httptest.NewRequest("GET", "/createRoom", nil)
		req.AddCookie(&http.Cookie{Name: AuthCookieName, Value: "bogus"})
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		if called {
			t.Error("next handler must not run for an invalid token")
		}
		if rec.Code != http.StatusSeeOther {
			t.Errorf("expected status 303, got %d", rec.Code)
		}

		cleared := false
		for _, c := range rec.Result().Cookies() {
			if c.Name == AuthCookieName && c.Value == "" {
				cleared = true
			}
		}
		if !cleared {
			t.Error("expected the auth cookie to be cleared")
		}
	})

	t.Run("valid cookie passes the user id through", func(t *testing.T) {
		called = false
		req := httptest.NewRequest("GET", "/createRoom", nil)
		req.AddCookie(&http.Cookie{Name: AuthCookieName, Value: token})
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		if !called {
			t.Fatal("expected next handler to run")
		}
		if gotUserID != userID {
			t.Errorf("expected user ID %d in context, got %d", userID, gotUserID)
		}
	})
}

func TestOptionalAuth(t *testing.T) {
	svc, token, userID := setupAuthService(t)

	var gotUserID uint
	var gotOK bool
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserID, gotOK = CurrentUserID(r)
	})
	handler := OptionalAuth(svc)(next)

	t.Run("anonymous request passes through", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/", nil)
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Errorf("expected status 200, got %d", rec.Code)
		}
		if gotOK {
			t.Error("expected no user id for anonymous request")
		}
	})

	t.Run("valid cookie populates the context", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/", nil)
		req.AddCookie(&http.Cookie{Name: AuthCookieName, Value: token})
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		if !gotOK || gotUserID != userID {
			t.Errorf("expected user ID %d in context, got %d (ok=%v)", userID, gotUserID, gotOK)
		}
	})
}
