package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/wanderlust-travel/wanderlust/internal/session"
)

// viewData assembles the common data bag every template receives: the page's
// own payload plus session-derived state (flash notices, auth info).
func viewData(c echo.Context, data map[string]any) map[string]any {
	if data == nil {
		data = map[string]any{}
	}
	s := session.FromContext(c)
	data["Flashes"] = s.PopFlashes()
	data["LoggedIn"] = s.LoggedIn()
	data["UserID"] = s.UserID
	return data
}

// render executes a template with the merged view data.
func render(c echo.Context, status int, name string, data map[string]any) error {
	return c.Render(status, name, viewData(c, data))
}
