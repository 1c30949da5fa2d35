package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Rgonzalez7/elias-portfolio/internal/model"
)

func testUser(id, email string) model.User {
	return model.User{
		ID:        id,
		Name:      "Test User",
		Email:     email,
		Password:  "p",
		Role:      model.RoleUser,
		CreatedAt: time.Now().UTC(),
	}
}

func TestMemoryCreateAndGet(t *testing.T) {
	ctx := context.Background()
	store := NewMemory()

	if err := store.Create(ctx, testUser("u1", "a@x.com")); err != nil {
		t.Fatalf("create error: %v", err)
	}

	byID, err := store.GetByID(ctx, "u1")
	if err != nil {
		t.Fatalf("get by id error: %v", err)
	}
	if byID.Email != "a@x.com" {
		t.Fatalf("unexpected user: %+v", byID)
	}

	byEmail, err := store.GetByEmail(ctx, "a@x.com")
	if err != nil {
		t.Fatalf("get by email error: %v", err)
	}
	if byEmail.ID != "u1" {
		t.Fatalf("unexpected user: %+v", byEmail)
	}
}

func TestMemoryDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	store := NewMemory()

	if err := store.Create(ctx, testUser("u1", "a@x.com")); err != nil {
		t.Fatalf("create error: %v", err)
	}
	err := store.Create(ctx, testUser("u2", "a@x.com"))
	if !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestMemoryNotFound(t *testing.T) {
	ctx := context.Background()
	store := NewMemory()

	if _, err := store.GetByID(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := store.GetByEmail(ctx, "missing@x.com"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestNormalizeEmail(t *testing.T) {
	if got := NormalizeEmail("  A@X.com "); got != "a@x.com" {
		t.Fatalf("unexpected normalization: %q", got)
	}
}
