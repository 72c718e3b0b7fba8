package repository

import (
	"context"

	"github.com/oksasatya/go-blog-api/internal/domain/entity"
)

// BlogRepository defines the interface for blog-related database operations.
type BlogRepository interface {
	Create(ctx context.Context, b *entity.Blog) error
	GetByID(ctx context.Context, id string) (*entity.Blog, error)
	ListPublished(ctx context.Context) ([]*entity.Blog, error)
	ListByCreator(ctx context.Context, userID string) ([]*entity.Blog, error)
	Update(ctx context.Context, b *entity.Blog) error
	Delete(ctx context.Context, id string) error
}
