package ports

import (
	"context"

	"github.com/wanderlust-travel/wanderlust/internal/core/domain"
)

// ReviewInput carries the validated form fields for a new review.
type ReviewInput struct {
	Comment string
	Rating  int
}

// ReviewService defines the review lifecycle use cases.
type ReviewService interface {
	// Create persists the review and appends its id to the listing's review
	// list. Returns domain.ErrListingNotFound when the listing is gone.
	Create(ctx context.Context, listingID, authorID string, input ReviewInput) (*domain.Review, error)
	Find(ctx context.Context, id string) (*domain.Review, error)
	// Delete removes reviewID from the listing's list first, then deletes
	// the review record, so a concurrent reader never sees a dangling
	// reference. Authorization (author-or-owner) is the gate's job.
	Delete(ctx context.Context, listingID, reviewID string) error
}
