package ports

import (
	"context"

	"github.com/wanderlust-travel/wanderlust/internal/core/domain"
)

// ReviewRepository defines persistence operations for reviews.
type ReviewRepository interface {
	Create(ctx context.Context, r *domain.Review) (string, error)
	FindByID(ctx context.Context, id string) (*domain.Review, error)
	// FindByIDs returns the reviews that exist among ids, preserving the
	// input order. Missing ids are skipped, not errors.
	FindByIDs(ctx context.Context, ids []string) ([]*domain.Review, error)
	Delete(ctx context.Context, id string) error
	// DeleteMany removes all reviews with the given ids and returns how many
	// documents were actually deleted.
	DeleteMany(ctx context.Context, ids []string) (int64, error)
}
