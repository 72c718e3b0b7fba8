package repository

import (
	"context"
	"errors"

	"github.com/oksasatya/go-blog-api/internal/domain/entity"
)

// ErrNotFound is returned by repositories when no row matches.
var ErrNotFound = errors.New("not found")

// UserRepository defines the interface for user-related database operations.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	// GetByEmail includes the password hash; callers must not serialize it.
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	ListByRole(ctx context.Context, role entity.Role) ([]*entity.User, error)
}
