package handler

import (
	"github.com/wanderlust-travel/wanderlust/internal/core/ports"
)

// Typed form payloads for the HTML surface. Validation tags replace the
// original's runtime shape-checking; a failed c.Validate renders the 400
// error page with the field messages.

type listingForm struct {
	Title       string  `form:"title"       validate:"required"`
	Description string  `form:"description"`
	Price       float64 `form:"price"       validate:"gte=0"`
	Location    string  `form:"location"    validate:"required"`
	Country     string  `form:"country"     validate:"required"`
}

func (f listingForm) toInput() ports.ListingInput {
	return ports.ListingInput{
		Title:       f.Title,
		Description: f.Description,
		Price:       f.Price,
		Location:    f.Location,
		Country:     f.Country,
	}
}

// Rating deliberately has no required tag: a missing field binds to 0, which
// gte=1 already rejects, and required would shadow the range message.
type reviewForm struct {
	Comment string `form:"comment" validate:"required"`
	Rating  int    `form:"rating"  validate:"gte=1,lte=5"`
}

func (f reviewForm) toInput() ports.ReviewInput {
	return ports.ReviewInput{Comment: f.Comment, Rating: f.Rating}
}

type signupForm struct {
	Email    string `form:"email"    validate:"required,email"`
	Username string `form:"username" validate:"required"`
	Password string `form:"password" validate:"required,min=6"`
}

type loginForm struct {
	Username string `form:"username" validate:"required"`
	Password string `form:"password" validate:"required"`
}
