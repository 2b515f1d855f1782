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

const collectionReviews = "reviews"

type ReviewRepository struct {
	col *mongo.Collection
}

func NewReviewRepository(db *mongo.Database) *ReviewRepository {
	return &ReviewRepository{col: db.Collection(collectionReviews)}
}

type mongoReview struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Comment   string             `bson:"comment"`
	Rating    int                `bson:"rating"`
	Author    string             `bson:"author,omitempty"`
	CreatedAt time.Time          `bson:"created_at"`
}

func (d *mongoReview) toDomain() *domain.Review {
	return &domain.Review{
		ID:        d.ID.Hex(),
		Comment:   d.Comment,
		Rating:    d.Rating,
		Author:    d.Author,
		CreatedAt: d.CreatedAt,
	}
}

func (r *ReviewRepository) Create(ctx context.Context, rev *domain.Review) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoReview{
		Comment:   rev.Comment,
		Rating:    rev.Rating,
		Author:    rev.Author,
		CreatedAt: rev.CreatedAt,
	}

	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		return "", fmt.Errorf("insert review: %w", err)
	}

	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", fmt.Errorf("insert review: unexpected id type %T", res.InsertedID)
	}
	return oid.Hex(), nil
}

func (r *ReviewRepository) FindByID(ctx context.Context, id string) (*domain.Review, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrReviewNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc mongoReview
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrReviewNotFound
		}
		return nil, fmt.Errorf("find review: %w", err)
	}
	return doc.toDomain(), nil
}

// FindByIDs returns the reviews that exist among ids in the order the ids
// were given. Ids that do not resolve are skipped: the listing show page
// tolerates partially missing reviews.
func (r *ReviewRepository) FindByIDs(ctx context.Context, ids []string) ([]*domain.Review, error) {
	oids := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		oid, err := primitive.ObjectIDFromHex(id)
		if err != nil {
			continue
		}
		oids = append(oids, oid)
	}
	if len(oids) == 0 {
		return []*domain.Review{}, nil
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{"_id": bson.M{"$in": oids}})
	if err != nil {
		return nil, fmt.Errorf("find reviews: %w", err)
	}
	defer cur.Close(ctx)

	byID := make(map[string]*domain.Review, len(oids))
	for cur.Next(ctx) {
		var doc mongoReview
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode review: %w", err)
		}
		rev := doc.toDomain()
		byID[rev.ID] = rev
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("iterate reviews: %w", err)
	}

	ordered := make([]*domain.Review, 0, len(byID))
	for _, id := range ids {
		if rev, ok := byID[id]; ok {
			ordered = append(ordered, rev)
		}
	}
	return ordered, nil
}

func (r *ReviewRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrReviewNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete review: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrReviewNotFound
	}
	return nil
}

// DeleteMany removes all reviews with the given ids. Already-deleted ids are
// not errors, which makes a retried cascade idempotent.
func (r *ReviewRepository) DeleteMany(ctx context.Context, ids []string) (int64, error) {
	oids := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		oid, err := primitive.ObjectIDFromHex(id)
		if err != nil {
			continue
		}
		oids = append(oids, oid)
	}
	if len(oids) == 0 {
		return 0, nil
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteMany(ctx, bson.M{"_id": bson.M{"$in": oids}})
	if err != nil {
		return 0, fmt.Errorf("delete reviews: %w", err)
	}
	return res.DeletedCount, nil
}
