package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/workforce-hub/auth-api/internal/core/domain"
)

type stubUserService struct {
	users map[string]*domain.User
}

func (s *stubUserService) Get(_ context.Context, id string) (*domain.User, error) {
	u, ok := s.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return u, nil
}

func (s *stubUserService) UpdateName(ctx context.Context, id, name string) (*domain.User, error) {
	u, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	u.Name = name
	return u, nil
}

func newUserStub() *stubUserService {
	return &stubUserService{users: map[string]*domain.User{
		"u-1": {ID: "u-1", Name: "Meera", Phone: domain.StringPtr("+919000000004"), Role: domain.RoleUser},
	}}
}

func TestUserHandler_Me(t *testing.T) {
	e := newEcho()
	handler := NewUserHandler(newUserStub())

	req := httptest.NewRequest(http.MethodGet, "/users/me", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("user_id", "u-1")

	if err := handler.Me(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	var resp struct {
		Success bool        `json:"success"`
		User    domain.User `json:"user"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if !resp.Success || resp.User.ID != "u-1" || resp.User.Name != "Meera" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
}

func TestUserHandler_Me_MissingClaims(t *testing.T) {
	e := newEcho()
	handler := NewUserHandler(newUserStub())

	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/users/me", nil), httptest.NewRecorder())
	err := handler.Me(c)

	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 HTTPError, got %v", err)
	}
}

func TestUserHandler_Me_UserGone(t *testing.T) {
	e := newEcho()
	handler := NewUserHandler(newUserStub())

	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/users/me", nil), httptest.NewRecorder())
	c.Set("user_id", "u-deleted")
	if err := handler.Me(c); err != domain.ErrUserNotFound {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestUserHandler_UpdateMe(t *testing.T) {
	e := newEcho()
	stub := newUserStub()
	handler := NewUserHandler(stub)

	req := httptest.NewRequest(http.MethodPatch, "/users/me", strings.NewReader(`{"name":"Meera Iyer"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("user_id", "u-1")

	if err := handler.UpdateMe(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK || stub.users["u-1"].Name != "Meera Iyer" {
		t.Fatalf("update not applied: %d %s", rec.Code, rec.Body.String())
	}
}

func TestUserHandler_UpdateMe_Validation(t *testing.T) {
	e := newEcho()
	handler := NewUserHandler(newUserStub())

	req := httptest.NewRequest(http.MethodPatch, "/users/me", strings.NewReader(`{"name":""}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	c := e.NewContext(req, httptest.NewRecorder())
	c.Set("user_id", "u-1")

	var ve *ValidationError
	if err := handler.UpdateMe(c); !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestUserHandler_GetByID(t *testing.T) {
	e := newEcho()
	handler := NewUserHandler(newUserStub())

	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
	c.SetParamNames("id")
	c.SetParamValues("u-1")

	if err := handler.GetByID(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"Meera"`) {
		t.Fatalf("unexpected response: %d %s", rec.Code, rec.Body.String())
	}
}
