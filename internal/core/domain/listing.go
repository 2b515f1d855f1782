package domain

import "time"

// Canonical fallbacks applied when a listing is created without a
// description or an image. Stored verbatim so existing records render the
// same placeholder everywhere.
const (
	DefaultDescription = "https://unsplash.com/photos/a-lake-surrounded-by-mountains-and-trees-under-a-cloudy-sky-q_kmIm1TpVU"
	DefaultImageURL    = "https://images.unsplash.com/photo-1469474968028-56623f02e42e"
	DefaultImageName   = "default-listing"
)

// Image is a reference to an uploaded picture in the blob store.
type Image struct {
	URL      string `json:"url" bson:"url"`
	Filename string `json:"filename" bson:"filename"`
}

// Listing is the core aggregate: a property record owned by a user, holding
// an ordered list of review ids.
type Listing struct {
	ID          string    `json:"id" bson:"_id,omitempty"`
	Title       string    `json:"title" bson:"title"`
	Description string    `json:"description" bson:"description"`
	Image       Image     `json:"image" bson:"image"`
	Price       float64   `json:"price" bson:"price"`
	Location    string    `json:"location" bson:"location"`
	Country     string    `json:"country" bson:"country"`
	// Owner is empty on legacy records; an empty owner matches nobody, so
	// ownership-gated operations are denied for such listings.
	Owner     string    `json:"owner,omitempty" bson:"owner,omitempty"`
	Reviews   []string  `json:"reviews" bson:"reviews"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}

// OwnedBy reports whether userID may perform owner-only actions. An empty
// owner (legacy record) matches nobody.
func (l *Listing) OwnedBy(userID string) bool {
	return l.Owner != "" && l.Owner == userID
}

// References reports whether reviewID is in this listing's review list.
func (l *Listing) References(reviewID string) bool {
	for _, id := range l.Reviews {
		if id == reviewID {
			return true
		}
	}
	return false
}

// ListingDetail is a listing with its owner and reviews resolved for the
// show page. Reviews resolve best-effort: a population failure degrades to
// an empty slice, never a hard error.
type ListingDetail struct {
	Listing
	OwnerName string
	Resolved  []ResolvedReview
}
