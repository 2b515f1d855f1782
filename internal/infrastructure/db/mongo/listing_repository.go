package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/wanderlust-travel/wanderlust/internal/core/domain"
)

const collectionListings = "listings"

type ListingRepository struct {
	col *mongo.Collection
}

func NewListingRepository(db *mongo.Database) *ListingRepository {
	return &ListingRepository{col: db.Collection(collectionListings)}
}

// mongoListing is the document shape; the domain type keeps string ids so
// the ObjectID conversion stays inside this package.
type mongoListing struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Title       string             `bson:"title"`
	Description string             `bson:"description"`
	Image       domain.Image       `bson:"image"`
	Price       float64            `bson:"price"`
	Location    string             `bson:"location"`
	Country     string             `bson:"country"`
	Owner       string             `bson:"owner,omitempty"`
	Reviews     []string           `bson:"reviews"`
	CreatedAt   time.Time          `bson:"created_at"`
}

func (d *mongoListing) toDomain() *domain.Listing {
	reviews := d.Reviews
	if reviews == nil {
		reviews = []string{}
	}
	return &domain.Listing{
		ID:          d.ID.Hex(),
		Title:       d.Title,
		Description: d.Description,
		Image:       d.Image,
		Price:       d.Price,
		Location:    d.Location,
		Country:     d.Country,
		Owner:       d.Owner,
		Reviews:     reviews,
		CreatedAt:   d.CreatedAt,
	}
}

func (r *ListingRepository) Create(ctx context.Context, l *domain.Listing) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoListing{
		Title:       l.Title,
		Description: l.Description,
		Image:       l.Image,
		Price:       l.Price,
		Location:    l.Location,
		Country:     l.Country,
		Owner:       l.Owner,
		Reviews:     l.Reviews,
		CreatedAt:   l.CreatedAt,
	}

	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		return "", fmt.Errorf("insert listing: %w", err)
	}

	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", fmt.Errorf("insert listing: unexpected id type %T", res.InsertedID)
	}
	return oid.Hex(), nil
}

func (r *ListingRepository) FindByID(ctx context.Context, id string) (*domain.Listing, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrListingNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc mongoListing
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrListingNotFound
		}
		return nil, fmt.Errorf("find listing: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *ListingRepository) FindAll(ctx context.Context) ([]*domain.Listing, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("find listings: %w", err)
	}
	defer cur.Close(ctx)

	listings := []*domain.Listing{}
	for cur.Next(ctx) {
		var doc mongoListing
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode listing: %w", err)
		}
		listings = append(listings, doc.toDomain())
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("iterate listings: %w", err)
	}
	return listings, nil
}

// Update replaces the mutable fields of the listing document. The review
// list is intentionally excluded: it only changes through PushReview and
// PullReview so review membership cannot be clobbered by a stale edit form.
func (r *ListingRepository) Update(ctx context.Context, l *domain.Listing) error {
	oid, err := primitive.ObjectIDFromHex(l.ID)
	if err != nil {
		return domain.ErrListingNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	update := bson.M{"$set": bson.M{
		"title":       l.Title,
		"description": l.Description,
		"image":       l.Image,
		"price":       l.Price,
		"location":    l.Location,
		"country":     l.Country,
	}}

	res, err := r.col.UpdateByID(ctx, oid, update)
	if err != nil {
		return fmt.Errorf("update listing: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrListingNotFound
	}
	return nil
}

func (r *ListingRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrListingNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete listing: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrListingNotFound
	}
	return nil
}

// PushReview appends reviewID to the listing's review list as a single
// atomic document update.
func (r *ListingRepository) PushReview(ctx context.Context, listingID, reviewID string) error {
	oid, err := primitive.ObjectIDFromHex(listingID)
	if err != nil {
		return domain.ErrListingNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateByID(ctx, oid, bson.M{"$push": bson.M{"reviews": reviewID}})
	if err != nil {
		return fmt.Errorf("push review: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrListingNotFound
	}
	return nil
}

// PullReview removes reviewID from the listing's review list as a single
// atomic document update.
func (r *ListingRepository) PullReview(ctx context.Context, listingID, reviewID string) error {
	oid, err := primitive.ObjectIDFromHex(listingID)
	if err != nil {
		return domain.ErrListingNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateByID(ctx, oid, bson.M{"$pull": bson.M{"reviews": reviewID}})
	if err != nil {
		return fmt.Errorf("pull review: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrListingNotFound
	}
	return nil
}

// EnsureIndexes creates the indexes the listing queries rely on.
func (r *ListingRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "owner", Value: 1}}},
		{Keys: bson.D{{Key: "country", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
