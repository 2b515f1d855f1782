package session

import (
	"github.com/labstack/echo/v4"
)

const contextKey = "wanderlust.session"

// Middleware loads the request's session into the echo context before the
// handler runs and persists any changes afterwards. Persisting after the
// handler is safe: only the cookie must be set before the response commits,
// and that happens at load time for fresh sessions.
func Middleware(m *Manager) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			s := m.load(c)
			c.Set(contextKey, s)

			err := next(c)

			// Re-fetch from the context: Destroy swaps in a fresh session.
			current := FromContext(c)
			if perr := m.persist(c.Request().Context(), current); perr != nil {
				m.logger.Error().Err(perr).Str("sid", current.ID).Msg("failed to persist session")
			}
			return err
		}
	}
}

// FromContext returns the request's session. It panics when the session
// middleware is not installed, which is a wiring bug, not a runtime
// condition.
func FromContext(c echo.Context) *Session {
	s, ok := c.Get(contextKey).(*Session)
	if !ok {
		panic("session: middleware not installed")
	}
	return s
}
