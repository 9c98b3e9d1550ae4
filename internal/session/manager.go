package session

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorags/sewa-lapangan/internal/domain"
	"github.com/gorags/sewa-lapangan/pkg/logger"
)

type contextKey struct{}

// Manager ties a Store to the session cookie.
type Manager struct {
	store  Store
	name   string
	ttl    time.Duration
	secure bool
}

func NewManager(store Store, cookieName string, ttl time.Duration, secure bool) *Manager {
	return &Manager{store: store, name: cookieName, ttl: ttl, secure: secure}
}

// Start stores s under a fresh token and sets the cookie. Any token already
// on the request is discarded first.
func (m *Manager) Start(w http.ResponseWriter, r *http.Request, s *domain.Session) error {
	if c, err := r.Cookie(m.name); err == nil && c.Value != "" {
		if err := m.store.Delete(r.Context(), c.Value); err != nil {
			logger.WarnContext(r.Context(), "Failed to delete previous session", "error", err)
		}
	}
	s.Token = uuid.NewString()
	if s.CreatedAt.IsZero() {
		s.CreatedAt = time.Now().UTC()
	}
	if err := m.store.Save(r.Context(), s, m.ttl); err != nil {
		return err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     m.name,
		Value:    s.Token,
		Path:     "/",
		MaxAge:   int(m.ttl.Seconds()),
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// Load returns the session named by the request cookie, or nil when there is
// none or it has expired.
func (m *Manager) Load(r *http.Request) (*domain.Session, error) {
	c, err := r.Cookie(m.name)
	if err != nil || c.Value == "" {
		return nil, nil
	}
	s, err := m.store.Get(r.Context(), c.Value)
	if err != nil || s == nil {
		return nil, err
	}
	s.Token = c.Value
	return s, nil
}

func (m *Manager) Destroy(w http.ResponseWriter, r *http.Request) error {
	var err error
	if c, cerr := r.Cookie(m.name); cerr == nil && c.Value != "" {
		err = m.store.Delete(r.Context(), c.Value)
	}
	http.SetCookie(w, &http.Cookie{
		Name:     m.name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return err
}

// Middleware loads the session once per request and stores it on the context.
func (m *Manager) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s, err := m.Load(r)
		if err != nil {
			logger.WarnContext(r.Context(), "Failed to load session; continuing anonymous", "error", err)
		}
		if err != nil || s == nil {
			next.ServeHTTP(w, r)
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), contextKey{}, s)))
	})
}

// FromContext returns the session placed by Middleware, or nil.
func FromContext(ctx context.Context) *domain.Session {
	s, _ := ctx.Value(contextKey{}).(*domain.Session)
	return s
}
