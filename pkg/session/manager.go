package session

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/dmitrymomot/sessionguard/pkg/cookie"
	"github.com/dmitrymomot/sessionguard/pkg/logger"
)

// Manager ties a Transport that carries the session ID to a Store that
// holds the session record.
type Manager struct {
	store         Store
	transport     Transport
	config        Config
	cookieManager *cookie.Manager
	cookieOptions []cookie.Option
	locks         *keyedMutex
	logger        *slog.Logger
	done          chan struct{}
	closeOnce     sync.Once
	wg            sync.WaitGroup
}

// New creates a new session manager with the given options
func New(opts ...Option) *Manager {
	m := &Manager{
		config: DefaultConfig(),
		locks:  newKeyedMutex(),
		logger: logger.Discard(),
		done:   make(chan struct{}),
	}

	for _, opt := range opts {
		opt(m)
	}

	if m.store == nil {
		m.store = NewMemoryStore(m.config.TTL)
	}

	if m.transport == nil {
		if m.cookieManager == nil {
			// Fail fast on misconfiguration to prevent insecure runtime behavior
			panic("session: cookie manager is required when using default cookie transport")
		}
		cookieOpts := []CookieOption{
			WithSecureCookie(m.config.SecureCookies),
			WithCookieAttributes(m.cookieOptions...),
		}
		if m.config.SignedCookies {
			cookieOpts = append(cookieOpts, WithSignedCookie())
		}
		m.transport = NewCookieTransport(m.cookieManager, m.config.CookieName, cookieOpts...)
	}

	if cleaner, ok := m.store.(ExpiredCleaner); ok && m.config.CleanupInterval > 0 {
		m.wg.Add(1)
		go m.cleanupWorker(cleaner)
	}

	return m
}

// Store returns the underlying session store
func (m *Manager) Store() Store {
	return m.store
}

// Resolve returns the ID of the live session referenced by the request
func (m *Manager) Resolve(ctx context.Context, r *http.Request) (string, error) {
	id, err := m.transport.GetToken(r)
	if err != nil {
		return "", err
	}

	if !validID(id) {
		return "", ErrInvalidSessionID
	}

	exists, err := m.store.Exists(ctx, id)
	if err != nil {
		return "", errors.Join(ErrStore, err)
	}
	if !exists {
		return "", ErrSessionNotFound
	}

	return id, nil
}

// Ensure returns the live session ID referenced by the request, starting a
// new session and sending its ID to the client when there is none
func (m *Manager) Ensure(ctx context.Context, w http.ResponseWriter, r *http.Request) (string, error) {
	id, err := m.Resolve(ctx, r)
	if err == nil {
		return id, nil
	}
	if errors.Is(err, ErrStore) {
		return "", err
	}

	id, err = m.store.StartNew(ctx)
	if err != nil {
		return "", errors.Join(ErrStore, err)
	}

	if err := m.SetToken(w, id); err != nil {
		_ = m.store.Destroy(ctx, id)
		return "", err
	}

	return id, nil
}

// SetToken sends the session ID to the client
func (m *Manager) SetToken(w http.ResponseWriter, sessionID string) error {
	return m.transport.SetToken(w, sessionID, m.config.TTL)
}

// Destroy deletes the session referenced by the request and clears the token
func (m *Manager) Destroy(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	id, err := m.transport.GetToken(r)
	if err == nil && id != "" {
		if err := m.store.Destroy(ctx, id); err != nil {
			return errors.Join(ErrStore, err)
		}
	}

	return m.transport.ClearToken(w)
}

// Lock serializes work on a single session within this process and returns
// the matching unlock function. The fingerprint protocol reads and then
// writes the session, so concurrent requests for one session must not
// interleave. Deployments with several processes need a store-level lock.
func (m *Manager) Lock(sessionID string) (unlock func()) {
	return m.locks.lock(sessionID)
}

// Close stops the cleanup worker and closes the store if it is closable
func (m *Manager) Close() error {
	var err error
	m.closeOnce.Do(func() {
		close(m.done)
		m.wg.Wait()
		if c, ok := m.store.(io.Closer); ok {
			err = c.Close()
		}
	})
	return err
}

// cleanupWorker periodically removes expired sessions
func (m *Manager) cleanupWorker(cleaner ExpiredCleaner) {
	defer m.wg.Done()

	ticker := time.NewTicker(m.config.CleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			m.sweep(cleaner)
		case <-m.done:
			return
		}
	}
}

// sweep runs one expired-session cleanup, bounded by the cleanup interval.
func (m *Manager) sweep(cleaner ExpiredCleaner) {
	ctx, cancel := context.WithTimeout(context.Background(), m.config.CleanupInterval)
	defer cancel()

	if err := cleaner.DeleteExpired(ctx); err != nil {
		m.logger.WarnContext(ctx, "expired session cleanup failed",
			logger.Component("session"),
			logger.Error(err),
		)
	}
}
