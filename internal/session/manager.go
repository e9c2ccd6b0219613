// Package session owns the authenticated/anonymous session state of a
// browser. Sessions live in server-side storage; the browser only holds
// an opaque session ID cookie.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/bobmcallan/investx-portal/internal/common"
	"github.com/bobmcallan/investx-portal/internal/interfaces"
	"github.com/bobmcallan/investx-portal/internal/models"
)

// CookieName is the browser cookie that carries the session ID.
const CookieName = "investx_session"

var (
	// ErrNoSession means the ID is unknown or the session has expired.
	ErrNoSession = errors.New("no active session")
	// ErrInvalidToken means the API token could not be accepted.
	ErrInvalidToken = errors.New("invalid api token")
)

// Manager begins, looks up and ends sessions. It is created once at
// start-up and closed on shutdown.
type Manager struct {
	store  interfaces.SessionStorage
	secret []byte
	ttl    time.Duration
	logger *common.Logger
	now    func() time.Time

	stopOnce sync.Once
	stop     chan struct{}
	done     chan struct{}
}

// NewManager creates a Manager. When jwtSecret is empty, token expiry is
// read without verifying the signature.
func NewManager(store interfaces.SessionStorage, jwtSecret string, ttl time.Duration, logger *common.Logger) *Manager {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	if logger == nil {
		logger = common.NewSilentLogger()
	}
	var secret []byte
	if jwtSecret != "" {
		secret = []byte(jwtSecret)
	}
	return &Manager{
		store:  store,
		secret: secret,
		ttl:    ttl,
		logger: logger,
		now:    time.Now,
		stop:   make(chan struct{}),
	}
}

// Begin moves a browser from anonymous to authenticated by persisting a
// new session for token and user.
func (m *Manager) Begin(ctx context.Context, token string, user models.User) (*models.Session, error) {
	expires, err := m.tokenExpiry(token)
	if err != nil {
		return nil, err
	}

	now := m.now()
	sess := &models.Session{
		ID:        uuid.NewString(),
		Token:     token,
		User:      user,
		CreatedAt: now,
		ExpiresAt: expires,
	}
	if err := m.store.Save(ctx, sess); err != nil {
		return nil, fmt.Errorf("failed to begin session: %w", err)
	}

	m.logger.Info().Str("user_id", user.ID).Str("expires_at", expires.Format(time.RFC3339)).Msg("Session started")
	return sess, nil
}

// Lookup returns the live session for id. Expired sessions are deleted
// and reported as ErrNoSession.
func (m *Manager) Lookup(ctx context.Context, id string) (*models.Session, error) {
	if id == "" {
		return nil, ErrNoSession
	}
	sess, err := m.store.Get(ctx, id)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return nil, ErrNoSession
		}
		return nil, err
	}
	if sess.IsExpired(m.now()) {
		if err := m.store.Delete(ctx, id); err != nil {
			m.logger.Warn().Err(err).Msg("Failed to delete expired session")
		}
		return nil, ErrNoSession
	}
	return sess, nil
}

// End moves a browser back to anonymous. Ending an unknown session is
// not an error.
func (m *Manager) End(ctx context.Context, id string) error {
	if id == "" {
		return nil
	}
	if err := m.store.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to end session: %w", err)
	}
	m.logger.Debug().Msg("Session ended")
	return nil
}

// Purge removes every expired session.
func (m *Manager) Purge(ctx context.Context) (int, error) {
	return m.store.PurgeExpired(ctx, m.now())
}

// StartJanitor purges expired sessions every interval until Close.
func (m *Manager) StartJanitor(interval time.Duration) {
	if interval <= 0 || m.done != nil {
		return
	}
	m.done = make(chan struct{})
	go func() {
		defer close(m.done)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-m.stop:
				return
			case <-ticker.C:
				n, err := m.Purge(context.Background())
				if err != nil {
					m.logger.Warn().Err(err).Msg("Session purge failed")
				} else if n > 0 {
					m.logger.Info().Int("count", n).Msg("Purged expired sessions")
				}
			}
		}
	}()
}

// Close stops the janitor. It does not close the underlying storage.
func (m *Manager) Close() error {
	m.stopOnce.Do(func() {
		close(m.stop)
		if m.done != nil {
			<-m.done
		}
	})
	return nil
}

// tokenExpiry reads exp from a JWT. Tokens without exp, or opaque
// tokens when no secret is configured, get the session TTL.
func (m *Manager) tokenExpiry(token string) (time.Time, error) {
	if token == "" {
		return time.Time{}, ErrInvalidToken
	}
	fallback := m.now().Add(m.ttl)

	var claims jwt.RegisteredClaims
	if m.secret != nil {
		_, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (interface{}, error) {
			return m.secret, nil
		},
			jwt.WithValidMethods([]string{"HS256", "HS384", "HS512"}),
			jwt.WithTimeFunc(m.now),
		)
		if err != nil {
			return time.Time{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
		}
	} else {
		if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
			return fallback, nil
		}
	}

	if claims.ExpiresAt == nil {
		return fallback, nil
	}
	exp := claims.ExpiresAt.Time
	if !m.now().Before(exp) {
		return time.Time{}, fmt.Errorf("%w: token expired", ErrInvalidToken)
	}
	return exp, nil
}
