package ports

import (
	"context"

	"github.com/wanderlust-travel/wanderlust/internal/core/domain"
)

// ListingRepository defines persistence operations for listings.
//
// PushReview and PullReview mutate the review-id list through single-document
// atomic updates; the lifecycle invariants rely on that atomicity, so they
// must not be reimplemented as read-modify-write.
type ListingRepository interface {
	Create(ctx context.Context, l *domain.Listing) (string, error)
	FindByID(ctx context.Context, id string) (*domain.Listing, error)
	FindAll(ctx context.Context) ([]*domain.Listing, error)
	// Update replaces the mutable fields of the listing document.
	// Last write wins; there is no optimistic concurrency control.
	Update(ctx context.Context, l *domain.Listing) error
	Delete(ctx context.Context, id string) error
	// PushReview appends reviewID to the listing's review list.
	PushReview(ctx context.Context, listingID, reviewID string) error
	// PullReview removes reviewID from the listing's review list.
	PullReview(ctx context.Context, listingID, reviewID string) error
}
