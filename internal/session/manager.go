package session

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

const (
	// CookieName is the session cookie set on the browser.
	CookieName = "wanderlust_session"

	defaultTTL = 14 * 24 * time.Hour
)

// ErrNoSession is returned by a Store when the session id is unknown.
var ErrNoSession = errors.New("session: not found")

// Store persists raw session state keyed by session id. Implemented by the
// Redis adapter; tests substitute an in-memory map.
type Store interface {
	Get(ctx context.Context, sid string) ([]byte, error)
	Set(ctx context.Context, sid string, data []byte, ttl time.Duration) error
	Del(ctx context.Context, sid string) error
}

// Manager loads, persists, and destroys sessions around each request.
type Manager struct {
	store  Store
	codec  *CookieCodec
	ttl    time.Duration
	secure bool
	logger zerolog.Logger
}

func NewManager(store Store, codec *CookieCodec, ttl time.Duration, secure bool, logger zerolog.Logger) *Manager {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &Manager{store: store, codec: codec, ttl: ttl, secure: secure, logger: logger}
}

// load restores the session referenced by the request cookie, or starts a
// fresh one. Store failures and tampered cookies both degrade to a fresh
// session rather than failing the request.
func (m *Manager) load(c echo.Context) *Session {
	cookie, err := c.Cookie(CookieName)
	if err != nil || cookie.Value == "" {
		return m.fresh(c)
	}

	sid, err := m.codec.Decode(cookie.Value)
	if err != nil {
		return m.fresh(c)
	}

	data, err := m.store.Get(c.Request().Context(), sid)
	if err != nil {
		if !errors.Is(err, ErrNoSession) {
			m.logger.Warn().Err(err).Msg("session load failed, starting fresh session")
		}
		return m.fresh(c)
	}

	s := &Session{ID: sid}
	if err := json.Unmarshal(data, s); err != nil {
		m.logger.Warn().Err(err).Str("sid", sid).Msg("corrupt session state, starting fresh session")
		return m.fresh(c)
	}
	return s
}

// fresh creates a new session and sets its cookie immediately, before any
// handler can commit the response.
func (m *Manager) fresh(c echo.Context) *Session {
	s := &Session{ID: uuid.NewString(), dirty: true}

	token, err := m.codec.Encode(s.ID)
	if err != nil {
		m.logger.Error().Err(err).Msg("failed to sign session cookie")
		return s
	}

	c.SetCookie(&http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(m.ttl.Seconds()),
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return s
}

// persist writes the session state back to the store with a sliding TTL.
func (m *Manager) persist(ctx context.Context, s *Session) error {
	if s.destroyed || !s.dirty {
		return nil
	}

	data, err := json.Marshal(s)
	if err != nil {
		return err
	}
	return m.store.Set(ctx, s.ID, data, m.ttl)
}

// Destroy deletes the session state and replaces it with a fresh, anonymous
// session (new id, new cookie). The fresh session becomes the request's
// current session, so a post-logout flash still has somewhere to live.
func (m *Manager) Destroy(c echo.Context, s *Session) (*Session, error) {
	s.destroyed = true
	s.UserID = ""

	err := m.store.Del(c.Request().Context(), s.ID)

	ns := m.fresh(c)
	c.Set(contextKey, ns)
	return ns, err
}
