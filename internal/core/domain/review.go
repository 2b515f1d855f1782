package domain

import "time"

const (
	MinRating = 1
	MaxRating = 5
)

// Review is a rated comment attached to a listing.
type Review struct {
	ID      string `json:"id" bson:"_id,omitempty"`
	Comment string `json:"comment" bson:"comment"`
	Rating  int    `json:"rating" bson:"rating"`
	// Author is empty on legacy records and is treated as "unowned": the
	// review can then only be deleted by the listing owner.
	Author    string    `json:"author,omitempty" bson:"author,omitempty"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}

// AuthoredBy reports whether userID wrote this review. Empty author matches
// nobody.
func (r *Review) AuthoredBy(userID string) bool {
	return r.Author != "" && r.Author == userID
}

// ResolvedReview is a review with its author's username resolved for
// rendering.
type ResolvedReview struct {
	Review
	AuthorName string
}
