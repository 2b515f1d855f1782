package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/wanderlust-travel/wanderlust/internal/core/domain"
)

// errorPage is the data bag handed to the error template.
type errorPage struct {
	Status  int
	Message string
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their appropriate HTTP status codes.
//   - Logs unexpected errors internally without leaking details to the page.
//   - Renders the shared error template with the failure's status code.
//
// 404-class failures (missing listing/review/user, unknown route) are logged
// at debug only; they are noise, not faults.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err, log, c)

		if rerr := c.Render(code, "error", errorPage{Status: code, Message: msg}); rerr != nil {
			log.Error().Err(rerr).Msg("failed to render error page")
			_ = c.String(code, msg)
		}
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (bind failures, 404 from the router, validation
	// rejections wrapped by handlers).
	var he *echo.HTTPError
	if errors.As(err, &he) {
		if he.Code == http.StatusNotFound {
			log.Debug().Str("path", c.Request().URL.Path).Msg("page not found")
		}
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	switch {
	case errors.Is(err, domain.ErrListingNotFound):
		log.Debug().Str("path", c.Request().URL.Path).Msg("listing not found")
		return http.StatusNotFound, "Listing not found"
	case errors.Is(err, domain.ErrReviewNotFound):
		log.Debug().Str("path", c.Request().URL.Path).Msg("review not found")
		return http.StatusNotFound, "Review not found"
	case errors.Is(err, domain.ErrUserNotFound):
		log.Debug().Str("path", c.Request().URL.Path).Msg("user not found")
		return http.StatusNotFound, "User not found"
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, "Access forbidden"
	}

	// Unexpected error: log the real cause, render a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "Something went wrong"
}
