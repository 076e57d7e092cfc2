package repository

import (
	"context"

	"tubeshelf/internal/domain"
)

// UserRepository defines persistence operations for User entities.
type UserRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, user *domain.User) (int64, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	// DeleteCascading removes the user plus every playlist and
	// watch-later entry owned by its username, in one transaction.
	DeleteCascading(ctx context.Context, id int64) error
}
