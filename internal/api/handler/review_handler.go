package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/wanderlust-travel/wanderlust/internal/api/metrics"
	"github.com/wanderlust-travel/wanderlust/internal/api/middleware"
	"github.com/wanderlust-travel/wanderlust/internal/core/domain"
	"github.com/wanderlust-travel/wanderlust/internal/core/ports"
	"github.com/wanderlust-travel/wanderlust/internal/session"
)

// ReviewHandler handles review creation and deletion nested under a listing.
type ReviewHandler struct {
	reviews ports.ReviewService
}

func NewReviewHandler(reviews ports.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviews: reviews}
}

// Create handles POST /listings/:id/reviews.
func (h *ReviewHandler) Create(c echo.Context) error {
	var form reviewForm
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid review data")
	}
	if err := c.Validate(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	listingID := c.Param("id")
	s := session.FromContext(c)

	r, err := h.reviews.Create(c.Request().Context(), listingID, s.UserID, form.toInput())
	if err != nil {
		return err
	}

	metrics.ReviewsCreatedTotal.WithLabelValues(strconv.Itoa(r.Rating)).Inc()
	s.Flash(session.FlashSuccess, "Review submitted successfully!")
	return c.Redirect(http.StatusSeeOther, "/listings/"+listingID)
}

// Delete handles DELETE /listings/:id/reviews/:reviewId. The author-or-owner
// gate already loaded and authorized both records.
func (h *ReviewHandler) Delete(c echo.Context) error {
	l, ok := middleware.ListingFromContext(c)
	if !ok {
		return domain.ErrListingNotFound
	}
	r, ok := middleware.ReviewFromContext(c)
	if !ok {
		return domain.ErrReviewNotFound
	}

	if err := h.reviews.Delete(c.Request().Context(), l.ID, r.ID); err != nil {
		return err
	}

	metrics.ReviewsDeletedTotal.WithLabelValues("request").Inc()

	s := session.FromContext(c)
	s.Flash(session.FlashSuccess, "Review deleted successfully!")
	return c.Redirect(http.StatusSeeOther, "/listings/"+l.ID)
}
