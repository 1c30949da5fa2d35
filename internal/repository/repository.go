package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/Rgonzalez7/elias-portfolio/internal/model"
)

var (
	ErrNotFound   = errors.New("user not found")
	ErrEmailTaken = errors.New("email already registered")
)

// Users is the user store behind the auth endpoints. Implementations must
// treat the normalized email as the uniqueness key.
type Users interface {
	Create(ctx context.Context, user model.User) error
	GetByID(ctx context.Context, id string) (model.User, error)
	GetByEmail(ctx context.Context, email string) (model.User, error)
}

// NormalizeEmail lowercases and trims an address for use as the uniqueness key.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
