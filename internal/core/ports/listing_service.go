package ports

import (
	"context"

	"github.com/wanderlust-travel/wanderlust/internal/core/domain"
)

// ListingInput carries the validated form fields for creating or updating a
// listing. Image is nil when no new file was uploaded.
type ListingInput struct {
	Title       string
	Description string
	Price       float64
	Location    string
	Country     string
	Image       *domain.Image
}

// ListingService defines the listing lifecycle use cases.
//
// Update and Delete take the already-loaded listing: the ownership gate
// loads it once, and the policy that only the gate checks ownership keeps
// authorization out of these methods.
type ListingService interface {
	ListAll(ctx context.Context) ([]*domain.Listing, error)
	Create(ctx context.Context, ownerID string, input ListingInput) (string, error)
	// Get resolves the owner and reviews (with authors) for the show page.
	// Review population is best-effort: on failure the detail carries an
	// empty review slice instead of an error.
	Get(ctx context.Context, id string) (*domain.ListingDetail, error)
	Find(ctx context.Context, id string) (*domain.Listing, error)
	Update(ctx context.Context, l *domain.Listing, input ListingInput) error
	// Delete removes the listing and cascades to every referenced review,
	// returning how many reviews were removed. The cascade completes before
	// Delete returns; a failed review cleanup after the listing delete
	// surfaces as an error without rollback.
	Delete(ctx context.Context, l *domain.Listing) (int64, error)
}
