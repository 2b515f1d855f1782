package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/wanderlust-travel/wanderlust/internal/api/metrics"
	"github.com/wanderlust-travel/wanderlust/internal/core/domain"
	"github.com/wanderlust-travel/wanderlust/internal/core/ports"
	"github.com/wanderlust-travel/wanderlust/internal/session"
)

// UserHandler handles signup, login, and logout.
type UserHandler struct {
	auth     ports.AuthService
	sessions *session.Manager
}

func NewUserHandler(auth ports.AuthService, sessions *session.Manager) *UserHandler {
	return &UserHandler{auth: auth, sessions: sessions}
}

// SignupForm handles GET /signup.
func (h *UserHandler) SignupForm(c echo.Context) error {
	return render(c, http.StatusOK, "users/signup", nil)
}

// Signup handles POST /signup. Failures flash a notice and return to the
// signup form; a successful registration logs the user in immediately.
func (h *UserHandler) Signup(c echo.Context) error {
	s := session.FromContext(c)

	var form signupForm
	if err := c.Bind(&form); err != nil {
		s.Flash(session.FlashError, "Please fill in all required fields correctly.")
		return c.Redirect(http.StatusSeeOther, "/signup")
	}
	if err := c.Validate(&form); err != nil {
		s.Flash(session.FlashError, err.Error())
		return c.Redirect(http.StatusSeeOther, "/signup")
	}

	user, err := h.auth.Signup(c.Request().Context(), form.Email, form.Username, form.Password)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrEmailTaken):
			s.Flash(session.FlashError, "A user with this email is already registered. Please use a different email or login.")
		case errors.Is(err, domain.ErrUsernameTaken):
			s.Flash(session.FlashError, "This username is already taken.")
		default:
			s.Flash(session.FlashError, "Registration failed. Please try again.")
		}
		return c.Redirect(http.StatusSeeOther, "/signup")
	}

	s.Login(user.ID)
	s.Flash(session.FlashSuccess, "User registered successfully!")
	return c.Redirect(http.StatusSeeOther, "/listings")
}

// LoginForm handles GET /login.
func (h *UserHandler) LoginForm(c echo.Context) error {
	return render(c, http.StatusOK, "users/login", nil)
}

// Login handles POST /login. On success the user is redirected to the page
// they originally requested, when one was recorded.
func (h *UserHandler) Login(c echo.Context) error {
	s := session.FromContext(c)

	var form loginForm
	if err := c.Bind(&form); err != nil {
		s.Flash(session.FlashError, "Invalid username or password.")
		return c.Redirect(http.StatusSeeOther, "/login")
	}
	if err := c.Validate(&form); err != nil {
		s.Flash(session.FlashError, "Invalid username or password.")
		return c.Redirect(http.StatusSeeOther, "/login")
	}

	user, err := h.auth.Login(c.Request().Context(), form.Username, form.Password)
	if err != nil {
		metrics.LoginFailuresTotal.Inc()
		s.Flash(session.FlashError, "Invalid username or password.")
		return c.Redirect(http.StatusSeeOther, "/login")
	}

	s.Login(user.ID)
	s.Flash(session.FlashSuccess, "Logged in successfully!")

	target := s.PopReturnTo()
	if target == "" {
		target = "/listings"
	}
	return c.Redirect(http.StatusSeeOther, target)
}

// Logout handles GET /logout.
func (h *UserHandler) Logout(c echo.Context) error {
	s := session.FromContext(c)

	fresh, err := h.sessions.Destroy(c, s)
	if err != nil {
		return err
	}

	fresh.Flash(session.FlashSuccess, "Logged out successfully!")
	return c.Redirect(http.StatusSeeOther, "/listings")
}
