// Package session implements server-side sessions for the HTML surface.
// Session state (user id, post-login redirect target, flash notices) lives
// in Redis under the session id; the browser only carries a signed cookie
// referencing that id.
package session

// Flash kinds, matched by the templates when styling notices.
const (
	FlashSuccess = "success"
	FlashError   = "error"
)

// Flash is a one-shot user-facing notice, drained on the next page render.
type Flash struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// Session is the per-browser state. The zero UserID means "not logged in".
type Session struct {
	ID       string  `json:"-"`
	UserID   string  `json:"user_id,omitempty"`
	ReturnTo string  `json:"return_to,omitempty"`
	Flashes  []Flash `json:"flashes,omitempty"`

	dirty     bool
	destroyed bool
}

// LoggedIn reports whether the session belongs to an authenticated user.
func (s *Session) LoggedIn() bool {
	return s.UserID != ""
}

// Login binds the session to a user.
func (s *Session) Login(userID string) {
	s.UserID = userID
	s.dirty = true
}

// Flash queues a one-shot notice for the next rendered page.
func (s *Session) Flash(kind, message string) {
	s.Flashes = append(s.Flashes, Flash{Kind: kind, Message: message})
	s.dirty = true
}

// PopFlashes drains and returns all queued notices.
func (s *Session) PopFlashes() []Flash {
	if len(s.Flashes) == 0 {
		return nil
	}
	out := s.Flashes
	s.Flashes = nil
	s.dirty = true
	return out
}

// RememberReturnTo records the originally requested path so a successful
// login can redirect back to it.
func (s *Session) RememberReturnTo(path string) {
	s.ReturnTo = path
	s.dirty = true
}

// PopReturnTo clears and returns the recorded redirect target, or "" when
// none was set.
func (s *Session) PopReturnTo() string {
	target := s.ReturnTo
	if target != "" {
		s.ReturnTo = ""
		s.dirty = true
	}
	return target
}
