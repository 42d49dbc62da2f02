package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/workforce-hub/auth-api/internal/core/domain"
	"github.com/workforce-hub/auth-api/internal/core/service"
)

func newIssuer(t *testing.T) *service.SessionIssuer {
	t.Helper()
	issuer, err := service.NewSessionIssuer("secret", time.Hour)
	if err != nil {
		t.Fatalf("new issuer: %v", err)
	}
	return issuer
}

func runAuth(t *testing.T, issuer *service.SessionIssuer, header string, next echo.HandlerFunc) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := Auth(issuer)(next)(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	return rec
}

func unreachable(t *testing.T) echo.HandlerFunc {
	return func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	}
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	issuer := newIssuer(t)
	token, err := issuer.Issue(&domain.User{
		ID:    "u-1",
		Phone: domain.StringPtr("+919406038554"),
		Role:  domain.RoleAdmin,
	})
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	called := false
	rec := runAuth(t, issuer, "Bearer "+token, func(c echo.Context) error {
		called = true
		if c.Get("user_id") != "u-1" {
			t.Fatalf("user_id not set")
		}
		if c.Get("role") != domain.RoleAdmin {
			t.Fatalf("role not set")
		}
		if c.Get("phone") != "+919406038554" {
			t.Fatalf("phone not set")
		}
		return c.NoContent(http.StatusOK)
	})

	if !called {
		t.Fatalf("next not called")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAuthMiddleware_MissingHeader(t *testing.T) {
	rec := runAuth(t, newIssuer(t), "", unreachable(t))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAuthMiddleware_InvalidHeaderFormat(t *testing.T) {
	for _, h := range []string{"Token abc", "Bearer", "Bearer   "} {
		rec := runAuth(t, newIssuer(t), h, unreachable(t))
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("header %q: expected 401, got %d", h, rec.Code)
		}
	}
}

func TestAuthMiddleware_InvalidToken(t *testing.T) {
	rec := runAuth(t, newIssuer(t), "Bearer not-a-token", unreachable(t))
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
}

func TestAuthMiddleware_ExpiredToken(t *testing.T) {
	issuer := newIssuer(t)
	issuer.WithClock(func() time.Time { return time.Now().Add(-2 * time.Hour) })
	token, _ := issuer.Issue(&domain.User{ID: "u-1", Role: domain.RoleUser})
	issuer.WithClock(time.Now)

	rec := runAuth(t, issuer, "Bearer "+token, unreachable(t))
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
}

func TestAuthMiddleware_ForeignSignature(t *testing.T) {
	other, _ := service.NewSessionIssuer("another-secret", time.Hour)
	token, _ := other.Issue(&domain.User{ID: "u-1", Role: domain.RoleAdmin})

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "bearer "+token)
	c := e.NewContext(req, httptest.NewRecorder())

	err := Auth(newIssuer(t))(unreachable(t))(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusForbidden {
		t.Fatalf("expected 403 HTTPError, got %v", err)
	}
}
