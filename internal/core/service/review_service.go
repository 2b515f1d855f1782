package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/wanderlust-travel/wanderlust/internal/core/domain"
	"github.com/wanderlust-travel/wanderlust/internal/core/ports"
)

// ReviewService implements the review lifecycle use cases.
type ReviewService struct {
	reviews  ports.ReviewRepository
	listings ports.ListingRepository
	logger   zerolog.Logger
}

func NewReviewService(reviews ports.ReviewRepository, listings ports.ListingRepository, logger zerolog.Logger) *ReviewService {
	return &ReviewService{reviews: reviews, listings: listings, logger: logger}
}

// Create persists a new review and appends its id to the listing's review
// list. The two writes are sequential; the append is an atomic $push on the
// listing document. A review whose append fails is removed again so it never
// exists unreferenced.
func (s *ReviewService) Create(ctx context.Context, listingID, authorID string, input ports.ReviewInput) (*domain.Review, error) {
	if _, err := s.listings.FindByID(ctx, listingID); err != nil {
		return nil, err
	}

	r := &domain.Review{
		Comment:   input.Comment,
		Rating:    input.Rating,
		Author:    authorID,
		CreatedAt: time.Now().UTC(),
	}

	id, err := s.reviews.Create(ctx, r)
	if err != nil {
		s.logger.Error().Err(err).Str("listing_id", listingID).Msg("failed to create review")
		return nil, err
	}
	r.ID = id

	if err := s.listings.PushReview(ctx, listingID, id); err != nil {
		// The listing vanished or the push failed: drop the orphan so the
		// "referenced by its listing" invariant holds.
		if delErr := s.reviews.Delete(ctx, id); delErr != nil {
			s.logger.Error().Err(delErr).Str("review_id", id).Msg("failed to remove orphan review")
		}
		return nil, err
	}

	s.logger.Info().Str("review_id", id).Str("listing_id", listingID).Int("rating", input.Rating).Msg("review created")
	return r, nil
}

func (s *ReviewService) Find(ctx context.Context, id string) (*domain.Review, error) {
	return s.reviews.FindByID(ctx, id)
}

// Delete removes the review's reference from the listing first and then the
// review record, so a concurrent reader of the listing never resolves a
// dangling id. Authorization is enforced by the author-or-owner gate before
// this is called.
func (s *ReviewService) Delete(ctx context.Context, listingID, reviewID string) error {
	if err := s.listings.PullReview(ctx, listingID, reviewID); err != nil {
		return err
	}

	if err := s.reviews.Delete(ctx, reviewID); err != nil {
		s.logger.Error().Err(err).Str("review_id", reviewID).Msg("review unreferenced but record delete failed")
		return err
	}

	s.logger.Info().Str("review_id", reviewID).Str("listing_id", listingID).Msg("review deleted")
	return nil
}
