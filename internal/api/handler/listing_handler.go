package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/wanderlust-travel/wanderlust/internal/api/metrics"
	"github.com/wanderlust-travel/wanderlust/internal/api/middleware"
	"github.com/wanderlust-travel/wanderlust/internal/core/domain"
	"github.com/wanderlust-travel/wanderlust/internal/core/ports"
	"github.com/wanderlust-travel/wanderlust/internal/session"
)

// ListingHandler handles the listing pages and mutations. Ownership is
// enforced by the gates on the route, never here.
type ListingHandler struct {
	listings ports.ListingService
	blob     ports.BlobStore
}

func NewListingHandler(listings ports.ListingService, blob ports.BlobStore) *ListingHandler {
	return &ListingHandler{listings: listings, blob: blob}
}

// Index handles GET /listings.
func (h *ListingHandler) Index(c echo.Context) error {
	all, err := h.listings.ListAll(c.Request().Context())
	if err != nil {
		return err
	}
	return render(c, http.StatusOK, "listings/index", map[string]any{"Listings": all})
}

// NewForm handles GET /listings/new.
func (h *ListingHandler) NewForm(c echo.Context) error {
	return render(c, http.StatusOK, "listings/new", nil)
}

// Create handles POST /listings.
func (h *ListingHandler) Create(c echo.Context) error {
	var form listingForm
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid listing data")
	}
	if err := c.Validate(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	input := form.toInput()
	img, err := h.uploadedImage(c)
	if err != nil {
		return err
	}
	input.Image = img

	s := session.FromContext(c)
	if _, err := h.listings.Create(c.Request().Context(), s.UserID, input); err != nil {
		return err
	}

	metrics.ListingsCreatedTotal.Inc()
	s.Flash(session.FlashSuccess, "New listing created successfully!")
	return c.Redirect(http.StatusSeeOther, "/listings")
}

// Show handles GET /listings/:id.
func (h *ListingHandler) Show(c echo.Context) error {
	detail, err := h.listings.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}

	s := session.FromContext(c)
	return render(c, http.StatusOK, "listings/show", map[string]any{
		"Listing": detail,
		"IsOwner": detail.OwnedBy(s.UserID),
	})
}

// EditForm handles GET /listings/:id/edit. The ownership gate already loaded
// the listing.
func (h *ListingHandler) EditForm(c echo.Context) error {
	l, ok := middleware.ListingFromContext(c)
	if !ok {
		return domain.ErrListingNotFound
	}
	return render(c, http.StatusOK, "listings/edit", map[string]any{"Listing": l})
}

// Update handles PUT /listings/:id.
func (h *ListingHandler) Update(c echo.Context) error {
	l, ok := middleware.ListingFromContext(c)
	if !ok {
		return domain.ErrListingNotFound
	}

	var form listingForm
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid listing data")
	}
	if err := c.Validate(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	input := form.toInput()
	img, err := h.uploadedImage(c)
	if err != nil {
		return err
	}
	input.Image = img

	if err := h.listings.Update(c.Request().Context(), l, input); err != nil {
		return err
	}

	s := session.FromContext(c)
	s.Flash(session.FlashSuccess, "Listing updated successfully!")
	return c.Redirect(http.StatusSeeOther, "/listings/"+l.ID)
}

// Delete handles DELETE /listings/:id. The review cascade completes inside
// the service before this returns.
func (h *ListingHandler) Delete(c echo.Context) error {
	l, ok := middleware.ListingFromContext(c)
	if !ok {
		return domain.ErrListingNotFound
	}

	removed, err := h.listings.Delete(c.Request().Context(), l)
	if err != nil {
		return err
	}

	metrics.ListingsDeletedTotal.Inc()
	metrics.ReviewsDeletedTotal.WithLabelValues("cascade").Add(float64(removed))

	s := session.FromContext(c)
	s.Flash(session.FlashSuccess, "\""+l.Title+"\" listing deleted successfully!")
	return c.Redirect(http.StatusSeeOther, "/listings")
}

// uploadedImage reads the optional multipart image field and uploads it to
// the blob store. A request without a file returns (nil, nil): create falls
// back to the default image, update keeps the existing one.
func (h *ListingHandler) uploadedImage(c echo.Context) (*domain.Image, error) {
	fh, err := c.FormFile("image")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return nil, nil
		}
		return nil, echo.NewHTTPError(http.StatusBadRequest, "invalid image upload")
	}

	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, err := h.blob.UploadImage(c.Request().Context(), fh.Filename, f, fh.Size, fh.Header.Get("Content-Type"))
	if err != nil {
		return nil, err
	}
	return &img, nil
}
