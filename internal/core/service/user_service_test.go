package service

import (
	"context"
	"testing"

	"github.com/workforce-hub/auth-api/internal/core/domain"
)

func TestUserService_Get(t *testing.T) {
	repo := newStubUserRepo()
	u := repo.add(&domain.User{Name: "Kiran", Role: domain.RoleUser})
	svc := NewUserService(repo)

	got, err := svc.Get(context.Background(), u.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Name != "Kiran" {
		t.Fatalf("unexpected user: %+v", got)
	}

	if _, err := svc.Get(context.Background(), "missing"); err != domain.ErrUserNotFound {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestUserService_UpdateName(t *testing.T) {
	repo := newStubUserRepo()
	u := repo.add(&domain.User{Name: "New User", Role: domain.RoleUser})
	svc := NewUserService(repo)

	got, err := svc.UpdateName(context.Background(), u.ID, "Kiran Rao")
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if got.Name != "Kiran Rao" || got.UpdatedAt.IsZero() {
		t.Fatalf("unexpected user: %+v", got)
	}
	stored, _ := repo.FindByID(context.Background(), u.ID)
	if stored.Name != "Kiran Rao" {
		t.Fatalf("name not persisted")
	}
}
