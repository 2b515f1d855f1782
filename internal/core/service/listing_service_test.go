package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/wanderlust-travel/wanderlust/internal/core/domain"
	"github.com/wanderlust-travel/wanderlust/internal/core/ports"
)

// ---------------------------------------------------------------------------
// In-memory stub repositories
// ---------------------------------------------------------------------------

type stubListingRepo struct {
	byID    map[string]*domain.Listing
	nextID  int
	ops     []string // records mutating calls in order
	findErr error
	pushErr error
	pullErr error
}

func newStubListingRepo() *stubListingRepo {
	return &stubListingRepo{byID: make(map[string]*domain.Listing)}
}

func (r *stubListingRepo) Create(_ context.Context, l *domain.Listing) (string, error) {
	r.nextID++
	id := fmt.Sprintf("listing-%d", r.nextID)
	clone := *l
	clone.ID = id
	r.byID[id] = &clone
	return id, nil
}

func (r *stubListingRepo) FindByID(_ context.Context, id string) (*domain.Listing, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	l, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrListingNotFound
	}
	clone := *l
	clone.Reviews = append([]string(nil), l.Reviews...)
	return &clone, nil
}

func (r *stubListingRepo) FindAll(_ context.Context) ([]*domain.Listing, error) {
	out := make([]*domain.Listing, 0, len(r.byID))
	for _, l := range r.byID {
		clone := *l
		out = append(out, &clone)
	}
	return out, nil
}

// Update mirrors the Mongo repository: the review list is not part of the
// $set document, so a stale edit cannot clobber review membership.
func (r *stubListingRepo) Update(_ context.Context, l *domain.Listing) error {
	stored, ok := r.byID[l.ID]
	if !ok {
		return domain.ErrListingNotFound
	}
	clone := *l
	clone.Reviews = stored.Reviews
	r.byID[l.ID] = &clone
	r.ops = append(r.ops, "update:"+l.ID)
	return nil
}

func (r *stubListingRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return domain.ErrListingNotFound
	}
	delete(r.byID, id)
	r.ops = append(r.ops, "delete:"+id)
	return nil
}

func (r *stubListingRepo) PushReview(_ context.Context, listingID, reviewID string) error {
	if r.pushErr != nil {
		return r.pushErr
	}
	l, ok := r.byID[listingID]
	if !ok {
		return domain.ErrListingNotFound
	}
	l.Reviews = append(l.Reviews, reviewID)
	r.ops = append(r.ops, "push:"+reviewID)
	return nil
}

func (r *stubListingRepo) PullReview(_ context.Context, listingID, reviewID string) error {
	if r.pullErr != nil {
		return r.pullErr
	}
	l, ok := r.byID[listingID]
	if !ok {
		return domain.ErrListingNotFound
	}
	kept := l.Reviews[:0]
	for _, id := range l.Reviews {
		if id != reviewID {
			kept = append(kept, id)
		}
	}
	l.Reviews = kept
	r.ops = append(r.ops, "pull:"+reviewID)
	return nil
}

type stubReviewRepo struct {
	byID          map[string]*domain.Review
	nextID        int
	ops           []string
	findByIDsErr  error
	deleteManyErr error
}

func newStubReviewRepo() *stubReviewRepo {
	return &stubReviewRepo{byID: make(map[string]*domain.Review)}
}

func (r *stubReviewRepo) Create(_ context.Context, rev *domain.Review) (string, error) {
	r.nextID++
	id := fmt.Sprintf("review-%d", r.nextID)
	clone := *rev
	clone.ID = id
	r.byID[id] = &clone
	return id, nil
}

func (r *stubReviewRepo) FindByID(_ context.Context, id string) (*domain.Review, error) {
	rev, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrReviewNotFound
	}
	clone := *rev
	return &clone, nil
}

func (r *stubReviewRepo) FindByIDs(_ context.Context, ids []string) ([]*domain.Review, error) {
	if r.findByIDsErr != nil {
		return nil, r.findByIDsErr
	}
	out := []*domain.Review{}
	for _, id := range ids {
		if rev, ok := r.byID[id]; ok {
			clone := *rev
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *stubReviewRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return domain.ErrReviewNotFound
	}
	delete(r.byID, id)
	r.ops = append(r.ops, "delete:"+id)
	return nil
}

func (r *stubReviewRepo) DeleteMany(_ context.Context, ids []string) (int64, error) {
	if r.deleteManyErr != nil {
		return 0, r.deleteManyErr
	}
	var n int64
	for _, id := range ids {
		if _, ok := r.byID[id]; ok {
			delete(r.byID, id)
			n++
		}
	}
	r.ops = append(r.ops, fmt.Sprintf("deleteMany:%d", n))
	return n, nil
}

type stubUserRepo struct {
	byID       map[string]*domain.User
	byEmail    map[string]*domain.User
	byUsername map[string]*domain.User
	nextID     int
	findErr    error
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{
		byID:       make(map[string]*domain.User),
		byEmail:    make(map[string]*domain.User),
		byUsername: make(map[string]*domain.User),
	}
}

func (r *stubUserRepo) Create(_ context.Context, u *domain.User) (*domain.User, error) {
	if _, ok := r.byEmail[u.Email]; ok {
		return nil, domain.ErrEmailTaken
	}
	r.nextID++
	clone := *u
	clone.ID = fmt.Sprintf("user-%d", r.nextID)
	r.byID[clone.ID] = &clone
	r.byEmail[clone.Email] = &clone
	r.byUsername[clone.Username] = &clone
	return &clone, nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	u, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	u, ok := r.byEmail[email]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	u, ok := r.byUsername[username]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

type stubCleaner struct {
	enqueued []string
}

func (c *stubCleaner) Enqueue(filename string) {
	c.enqueued = append(c.enqueued, filename)
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

var discardLogger = zerolog.Nop()

func newListingService(listings *stubListingRepo, reviews *stubReviewRepo, users *stubUserRepo, cleaner *stubCleaner) *ListingService {
	var c ImageCleaner
	if cleaner != nil {
		c = cleaner
	}
	return NewListingService(listings, reviews, users, c, discardLogger)
}

func seedListing(repo *stubListingRepo, owner string, reviews ...string) *domain.Listing {
	l := &domain.Listing{
		Title:     "Cozy Cabin",
		Image:     domain.Image{URL: domain.DefaultImageURL, Filename: domain.DefaultImageName},
		Price:     120,
		Location:  "Lauterbrunnen",
		Country:   "Switzerland",
		Owner:     owner,
		Reviews:   append([]string{}, reviews...),
		CreatedAt: time.Now().UTC(),
	}
	id, _ := repo.Create(context.Background(), l)
	stored := repo.byID[id]
	return stored
}

func seedReview(repo *stubReviewRepo, author string) string {
	id, _ := repo.Create(context.Background(), &domain.Review{
		Comment: "lovely place",
		Rating:  5,
		Author:  author,
	})
	return id
}

// ---------------------------------------------------------------------------
// Create
// ---------------------------------------------------------------------------

func TestListingService_Create_AppliesDefaults(t *testing.T) {
	listings := newStubListingRepo()
	svc := newListingService(listings, newStubReviewRepo(), newStubUserRepo(), nil)

	id, err := svc.Create(context.Background(), "user-1", ports.ListingInput{
		Title:    "Beach Hut",
		Price:    80,
		Location: "Goa",
		Country:  "India",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	stored := listings.byID[id]
	if stored.Description != domain.DefaultDescription {
		t.Fatalf("expected placeholder description, got %q", stored.Description)
	}
	if stored.Image.URL != domain.DefaultImageURL || stored.Image.Filename != domain.DefaultImageName {
		t.Fatalf("expected default image, got %+v", stored.Image)
	}
	if stored.Owner != "user-1" {
		t.Fatalf("expected owner user-1, got %q", stored.Owner)
	}
	if stored.Reviews == nil || len(stored.Reviews) != 0 {
		t.Fatalf("expected empty review list, got %v", stored.Reviews)
	}
}

func TestListingService_Create_KeepsProvidedImageAndDescription(t *testing.T) {
	listings := newStubListingRepo()
	svc := newListingService(listings, newStubReviewRepo(), newStubUserRepo(), nil)

	img := &domain.Image{URL: "http://blob/x.jpg", Filename: "x.jpg"}
	id, err := svc.Create(context.Background(), "user-1", ports.ListingInput{
		Title:       "Loft",
		Description: "bright and airy",
		Price:       200,
		Location:    "Berlin",
		Country:     "Germany",
		Image:       img,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	stored := listings.byID[id]
	if stored.Description != "bright and airy" {
		t.Fatalf("description overwritten: %q", stored.Description)
	}
	if stored.Image != *img {
		t.Fatalf("image not stored: %+v", stored.Image)
	}
}

// ---------------------------------------------------------------------------
// Get
// ---------------------------------------------------------------------------

func TestListingService_Get_ResolvesOwnerAndReviews(t *testing.T) {
	listings := newStubListingRepo()
	reviews := newStubReviewRepo()
	users := newStubUserRepo()

	owner, _ := users.Create(context.Background(), &domain.User{Email: "o@example.com", Username: "olivia"})
	author, _ := users.Create(context.Background(), &domain.User{Email: "a@example.com", Username: "arjun"})

	rid := seedReview(reviews, author.ID)
	l := seedListing(listings, owner.ID, rid)

	svc := newListingService(listings, reviews, users, nil)

	detail, err := svc.Get(context.Background(), l.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if detail.OwnerName != "olivia" {
		t.Fatalf("owner not resolved: %q", detail.OwnerName)
	}
	if len(detail.Resolved) != 1 {
		t.Fatalf("expected 1 resolved review, got %d", len(detail.Resolved))
	}
	if detail.Resolved[0].AuthorName != "arjun" {
		t.Fatalf("author not resolved: %q", detail.Resolved[0].AuthorName)
	}
}

func TestListingService_Get_PopulationFailureDegradesToEmpty(t *testing.T) {
	listings := newStubListingRepo()
	reviews := newStubReviewRepo()
	reviews.findByIDsErr = errors.New("cursor exploded")

	l := seedListing(listings, "user-1", "review-ghost")
	svc := newListingService(listings, reviews, newStubUserRepo(), nil)

	detail, err := svc.Get(context.Background(), l.ID)
	if err != nil {
		t.Fatalf("population failure must not fail the read: %v", err)
	}
	if len(detail.Resolved) != 0 {
		t.Fatalf("expected empty reviews, got %d", len(detail.Resolved))
	}
}

func TestListingService_Get_MissingReviewSkipped(t *testing.T) {
	listings := newStubListingRepo()
	reviews := newStubReviewRepo()

	rid := seedReview(reviews, "")
	l := seedListing(listings, "user-1", rid, "review-gone")
	svc := newListingService(listings, reviews, newStubUserRepo(), nil)

	detail, err := svc.Get(context.Background(), l.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(detail.Resolved) != 1 {
		t.Fatalf("expected only the existing review, got %d", len(detail.Resolved))
	}
}

func TestListingService_Get_NotFound(t *testing.T) {
	svc := newListingService(newStubListingRepo(), newStubReviewRepo(), newStubUserRepo(), nil)

	_, err := svc.Get(context.Background(), "nope")
	if !errors.Is(err, domain.ErrListingNotFound) {
		t.Fatalf("expected ErrListingNotFound, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// Update
// ---------------------------------------------------------------------------

func TestListingService_Update_RetainsImageWhenNoneSupplied(t *testing.T) {
	listings := newStubListingRepo()
	l := seedListing(listings, "user-1")
	l.Image = domain.Image{URL: "http://blob/old.jpg", Filename: "old.jpg"}
	listings.byID[l.ID].Image = l.Image

	svc := newListingService(listings, newStubReviewRepo(), newStubUserRepo(), nil)

	err := svc.Update(context.Background(), l, ports.ListingInput{
		Title:    "Renamed",
		Price:    99,
		Location: "Lauterbrunnen",
		Country:  "Switzerland",
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}

	stored := listings.byID[l.ID]
	if stored.Title != "Renamed" {
		t.Fatalf("title not updated: %q", stored.Title)
	}
	if stored.Image.Filename != "old.jpg" {
		t.Fatalf("existing image was cleared: %+v", stored.Image)
	}
}

func TestListingService_Update_ReplacingImageSchedulesCleanup(t *testing.T) {
	listings := newStubListingRepo()
	cleaner := &stubCleaner{}
	l := seedListing(listings, "user-1")
	l.Image = domain.Image{URL: "http://blob/old.jpg", Filename: "old.jpg"}
	listings.byID[l.ID].Image = l.Image

	svc := newListingService(listings, newStubReviewRepo(), newStubUserRepo(), cleaner)

	err := svc.Update(context.Background(), l, ports.ListingInput{
		Title:    "Cozy Cabin",
		Price:    120,
		Location: "Lauterbrunnen",
		Country:  "Switzerland",
		Image:    &domain.Image{URL: "http://blob/new.jpg", Filename: "new.jpg"},
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}

	if len(cleaner.enqueued) != 1 || cleaner.enqueued[0] != "old.jpg" {
		t.Fatalf("expected cleanup of old.jpg, got %v", cleaner.enqueued)
	}
}

// Two owner sessions editing the same listing are last-write-wins: there is
// no optimistic concurrency control, so the later update silently overwrites
// the earlier one. Known accepted race, pinned here so a future "fix" is a
// deliberate decision.
func TestListingService_Update_LastWriteWins(t *testing.T) {
	listings := newStubListingRepo()
	l := seedListing(listings, "user-1")
	svc := newListingService(listings, newStubReviewRepo(), newStubUserRepo(), nil)

	sessionA := *l
	sessionB := *l

	if err := svc.Update(context.Background(), &sessionA, ports.ListingInput{
		Title: "From A", Price: 1, Location: "X", Country: "Y",
	}); err != nil {
		t.Fatalf("update A: %v", err)
	}
	if err := svc.Update(context.Background(), &sessionB, ports.ListingInput{
		Title: "From B", Price: 2, Location: "X", Country: "Y",
	}); err != nil {
		t.Fatalf("update B: %v", err)
	}

	if got := listings.byID[l.ID].Title; got != "From B" {
		t.Fatalf("expected last write to win, got %q", got)
	}
}

// ---------------------------------------------------------------------------
// Delete + cascade
// ---------------------------------------------------------------------------

func TestListingService_Delete_CascadesReviews(t *testing.T) {
	for _, n := range []int{0, 1, 5} {
		t.Run(fmt.Sprintf("%d_reviews", n), func(t *testing.T) {
			listings := newStubListingRepo()
			reviews := newStubReviewRepo()

			ids := make([]string, 0, n)
			for i := 0; i < n; i++ {
				ids = append(ids, seedReview(reviews, "user-2"))
			}
			l := seedListing(listings, "user-1", ids...)

			svc := newListingService(listings, reviews, newStubUserRepo(), nil)

			removed, err := svc.Delete(context.Background(), l)
			if err != nil {
				t.Fatalf("delete: %v", err)
			}
			if removed != int64(n) {
				t.Fatalf("expected %d cascaded reviews, got %d", n, removed)
			}
			if _, ok := listings.byID[l.ID]; ok {
				t.Fatalf("listing still present")
			}
			if len(reviews.byID) != 0 {
				t.Fatalf("orphan reviews left behind: %d", len(reviews.byID))
			}
		})
	}
}

func TestListingService_Delete_CascadeFailureSurfaces(t *testing.T) {
	listings := newStubListingRepo()
	reviews := newStubReviewRepo()
	reviews.deleteManyErr = errors.New("mongo down")

	rid := seedReview(reviews, "user-2")
	l := seedListing(listings, "user-1", rid)

	svc := newListingService(listings, reviews, newStubUserRepo(), nil)

	_, err := svc.Delete(context.Background(), l)
	if err == nil {
		t.Fatalf("expected cascade failure to surface")
	}
	// No rollback: the listing is gone even though the cascade failed.
	if _, ok := listings.byID[l.ID]; ok {
		t.Fatalf("expected listing deleted despite failed cascade")
	}
}

func TestListingService_Delete_SchedulesImageCleanupForUploads(t *testing.T) {
	listings := newStubListingRepo()
	cleaner := &stubCleaner{}

	l := seedListing(listings, "user-1")
	l.Image = domain.Image{URL: "http://blob/pic.jpg", Filename: "pic.jpg"}
	listings.byID[l.ID].Image = l.Image

	svc := newListingService(listings, newStubReviewRepo(), newStubUserRepo(), cleaner)
	if _, err := svc.Delete(context.Background(), l); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if len(cleaner.enqueued) != 1 || cleaner.enqueued[0] != "pic.jpg" {
		t.Fatalf("expected image cleanup, got %v", cleaner.enqueued)
	}
}

func TestListingService_Delete_DefaultImageNotCleaned(t *testing.T) {
	listings := newStubListingRepo()
	cleaner := &stubCleaner{}

	l := seedListing(listings, "user-1")
	svc := newListingService(listings, newStubReviewRepo(), newStubUserRepo(), cleaner)

	if _, err := svc.Delete(context.Background(), l); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if len(cleaner.enqueued) != 0 {
		t.Fatalf("default image must not be cleaned: %v", cleaner.enqueued)
	}
}

func TestListingService_Delete_NotFound(t *testing.T) {
	svc := newListingService(newStubListingRepo(), newStubReviewRepo(), newStubUserRepo(), nil)

	_, err := svc.Delete(context.Background(), &domain.Listing{ID: "ghost"})
	if !errors.Is(err, domain.ErrListingNotFound) {
		t.Fatalf("expected ErrListingNotFound, got %v", err)
	}
}

// Guard against accidental reuse of the placeholder for real descriptions.
func TestDefaultDescriptionIsAURL(t *testing.T) {
	if !strings.HasPrefix(domain.DefaultDescription, "https://") {
		t.Fatalf("placeholder changed shape: %q", domain.DefaultDescription)
	}
}
