package repository

import (
	"context"
	"errors"

	"github.com/baharkarakas/blog-backend/internal/models"
)

var (
	ErrNotFound  = errors.New("not found")
	ErrDuplicate = errors.New("duplicate key")
)

type Users interface {
	Create(ctx context.Context, u models.User) (models.User, error)
	GetByID(ctx context.Context, id string) (models.User, error)
	GetByEmail(ctx context.Context, email string) (models.User, error)
	// Authors returns the public projection for each known id; unknown ids are omitted.
	Authors(ctx context.Context, ids []string) (map[string]models.Author, error)
}

type Blogs interface {
	Create(ctx context.Context, b models.Blog) (models.Blog, error)
	GetByID(ctx context.Context, id string) (models.Blog, error)
	List(ctx context.Context, f BlogFilter) ([]models.Blog, error)
	ListByAuthor(ctx context.Context, authorID string) ([]models.Blog, error)
	Update(ctx context.Context, b models.Blog) (models.Blog, error)
	// IncrementReadCount bumps read_count by one in a single store operation.
	IncrementReadCount(ctx context.Context, id string) (models.Blog, error)
	Delete(ctx context.Context, id string) error
}
