package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/wanderlust-travel/wanderlust/internal/core/domain"
	"github.com/wanderlust-travel/wanderlust/internal/core/ports"
)

// ImageCleaner schedules removal of uploaded image objects that are no
// longer referenced by any listing. Best-effort by design: a lost cleanup
// leaves an unreferenced blob, never a broken listing.
type ImageCleaner interface {
	Enqueue(filename string)
}

// ListingService implements the listing lifecycle use cases.
type ListingService struct {
	listings ports.ListingRepository
	reviews  ports.ReviewRepository
	users    ports.UserRepository
	cleaner  ImageCleaner
	logger   zerolog.Logger
}

func NewListingService(listings ports.ListingRepository, reviews ports.ReviewRepository, users ports.UserRepository, cleaner ImageCleaner, logger zerolog.Logger) *ListingService {
	return &ListingService{listings: listings, reviews: reviews, users: users, cleaner: cleaner, logger: logger}
}

func (s *ListingService) ListAll(ctx context.Context) ([]*domain.Listing, error) {
	return s.listings.FindAll(ctx)
}

// Create persists a new listing owned by ownerID with an empty review list.
// A blank description is replaced by the canonical placeholder and a missing
// image by the canonical default image.
func (s *ListingService) Create(ctx context.Context, ownerID string, input ports.ListingInput) (string, error) {
	l := &domain.Listing{
		Title:       input.Title,
		Description: input.Description,
		Price:       input.Price,
		Location:    input.Location,
		Country:     input.Country,
		Owner:       ownerID,
		Reviews:     []string{},
		CreatedAt:   time.Now().UTC(),
	}
	if l.Description == "" {
		l.Description = domain.DefaultDescription
	}
	if input.Image != nil {
		l.Image = *input.Image
	} else {
		l.Image = domain.Image{URL: domain.DefaultImageURL, Filename: domain.DefaultImageName}
	}

	id, err := s.listings.Create(ctx, l)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to create listing")
		return "", err
	}

	s.logger.Info().Str("listing_id", id).Str("owner", ownerID).Msg("listing created")
	return id, nil
}

func (s *ListingService) Find(ctx context.Context, id string) (*domain.Listing, error) {
	return s.listings.FindByID(ctx, id)
}

// Get loads the listing and resolves the owner plus all referenced reviews
// with their authors. A failed review population degrades to an empty review
// slice for this fetch; a failed author or owner lookup degrades to an empty
// display name. Only a missing listing is an error.
func (s *ListingService) Get(ctx context.Context, id string) (*domain.ListingDetail, error) {
	l, err := s.listings.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	detail := &domain.ListingDetail{Listing: *l, Resolved: []domain.ResolvedReview{}}

	if l.Owner != "" {
		if owner, err := s.users.FindByID(ctx, l.Owner); err == nil {
			detail.OwnerName = owner.Username
		}
	}

	if len(l.Reviews) == 0 {
		return detail, nil
	}

	revs, err := s.reviews.FindByIDs(ctx, l.Reviews)
	if err != nil {
		s.logger.Warn().Err(err).Str("listing_id", id).Msg("review population failed, rendering without reviews")
		return detail, nil
	}

	for _, r := range revs {
		rr := domain.ResolvedReview{Review: *r}
		if r.Author != "" {
			if author, err := s.users.FindByID(ctx, r.Author); err == nil {
				rr.AuthorName = author.Username
			}
		}
		detail.Resolved = append(detail.Resolved, rr)
	}
	return detail, nil
}

// Update replaces the listing's mutable fields. When no new image is
// supplied the existing one is retained. Concurrent owner edits are
// last-write-wins.
func (s *ListingService) Update(ctx context.Context, l *domain.Listing, input ports.ListingInput) error {
	oldImage := l.Image

	l.Title = input.Title
	l.Description = input.Description
	if l.Description == "" {
		l.Description = domain.DefaultDescription
	}
	l.Price = input.Price
	l.Location = input.Location
	l.Country = input.Country
	if input.Image != nil {
		l.Image = *input.Image
	}

	if err := s.listings.Update(ctx, l); err != nil {
		s.logger.Error().Err(err).Str("listing_id", l.ID).Msg("failed to update listing")
		return err
	}

	if input.Image != nil && oldImage.Filename != domain.DefaultImageName && oldImage.Filename != "" {
		s.scheduleCleanup(oldImage.Filename)
	}

	s.logger.Info().Str("listing_id", l.ID).Msg("listing updated")
	return nil
}

// Delete removes the listing document and then deletes every review it
// referenced. The cascade runs to completion before Delete returns, so no
// orphan reviews are observable afterwards. If the review cleanup fails
// after the listing delete the error is surfaced without rollback; retrying
// the request is safe because DeleteMany on already-deleted ids is a no-op.
func (s *ListingService) Delete(ctx context.Context, l *domain.Listing) (int64, error) {
	if err := s.listings.Delete(ctx, l.ID); err != nil {
		return 0, err
	}

	var removed int64
	if len(l.Reviews) > 0 {
		n, err := s.reviews.DeleteMany(ctx, l.Reviews)
		if err != nil {
			s.logger.Error().Err(err).Str("listing_id", l.ID).Int("reviews", len(l.Reviews)).
				Msg("listing deleted but review cascade failed")
			return n, err
		}
		removed = n
	}

	if l.Image.Filename != domain.DefaultImageName && l.Image.Filename != "" {
		s.scheduleCleanup(l.Image.Filename)
	}

	s.logger.Info().Str("listing_id", l.ID).Int64("reviews_removed", removed).Msg("listing deleted")
	return removed, nil
}

func (s *ListingService) scheduleCleanup(filename string) {
	if s.cleaner == nil {
		return
	}
	s.cleaner.Enqueue(filename)
}
