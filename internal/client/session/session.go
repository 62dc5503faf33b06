// Package session owns the authentication lifecycle: logging in through an
// identity provider, binding the resulting credential to the call gateway,
// and logging out again, either on request or after a period of inactivity.
package session

import (
	"context"
	"sync"
	"time"

	"github.com/vrmarket/vrmarket/internal/identity"
	"github.com/vrmarket/vrmarket/internal/logging"
)

// DefaultIdleTimeout is how long a session survives without activity.
const DefaultIdleTimeout = 30 * time.Minute

// Provider performs the actual authentication handshake.
type Provider interface {
	Login(ctx context.Context) (*identity.Credential, error)
	Logout(ctx context.Context) error
}

// Binder receives the active credential; the call gateway implements it.
type Binder interface {
	Bind(*identity.Credential)
	Reset()
}

// Manager tracks the current session. Safe for concurrent use; concurrent
// logins settle last-write-wins.
type Manager struct {
	provider Provider
	binder   Binder
	logger   logging.Logger

	idleTimeout   time.Duration
	checkInterval time.Duration
	now           func() time.Time

	mu           sync.Mutex
	cred         *identity.Credential
	lastActivity time.Time
	stopWatch    chan struct{}
	onTimeout    []func()
}

// Option configures a Manager.
type Option func(*Manager)

// WithIdleTimeout overrides the inactivity window. Zero disables the idle
// watcher entirely.
func WithIdleTimeout(d time.Duration) Option {
	return func(m *Manager) { m.idleTimeout = d }
}

func NewManager(provider Provider, binder Binder, logger logging.Logger, opts ...Option) *Manager {
	m := &Manager{
		provider:      provider,
		binder:        binder,
		logger:        logger,
		idleTimeout:   DefaultIdleTimeout,
		checkInterval: time.Second,
		now:           time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.checkInterval > m.idleTimeout/2 && m.idleTimeout > 0 {
		m.checkInterval = m.idleTimeout / 2
	}
	return m
}

// OnIdleTimeout registers a callback to run after an idle session is
// logged out. Register before Login; callbacks run on the watcher
// goroutine.
func (m *Manager) OnIdleTimeout(fn func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onTimeout = append(m.onTimeout, fn)
}

// Login authenticates through the provider and binds the credential to the
// gateway. A login over an existing session replaces it.
func (m *Manager) Login(ctx context.Context) error {
	cred, err := m.provider.Login(ctx)
	if err != nil {
		return err
	}

	m.mu.Lock()
	if m.stopWatch != nil {
		close(m.stopWatch)
		m.stopWatch = nil
	}
	m.cred = cred
	m.lastActivity = m.now()
	if m.idleTimeout > 0 {
		m.stopWatch = make(chan struct{})
		go m.watch(m.stopWatch)
	}
	m.mu.Unlock()

	m.binder.Bind(cred)
	m.logger.Info(ctx, "session started", "principal", cred.Principal)
	return nil
}

// Logout ends the session. Calling it without an active session is a no-op.
func (m *Manager) Logout(ctx context.Context) error {
	m.mu.Lock()
	if m.cred == nil {
		m.mu.Unlock()
		return nil
	}
	m.cred = nil
	if m.stopWatch != nil {
		close(m.stopWatch)
		m.stopWatch = nil
	}
	m.mu.Unlock()

	m.binder.Reset()
	if err := m.provider.Logout(ctx); err != nil {
		m.logger.Warn(ctx, "provider logout failed", "error", err.Error())
		return err
	}
	m.logger.Info(ctx, "session ended")
	return nil
}

// Authenticated reports whether a non-expired session with a non-anonymous
// principal is active. An anonymous credential never counts as signed in.
func (m *Manager) Authenticated() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cred != nil &&
		m.cred.Principal != identity.AnonymousPrincipal &&
		m.now().Before(m.cred.Expires)
}

// Principal returns the session principal, or the anonymous principal when
// signed out.
func (m *Manager) Principal() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.cred == nil {
		return identity.AnonymousPrincipal
	}
	return m.cred.Principal
}

// Touch records user activity, pushing the idle deadline forward.
func (m *Manager) Touch() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastActivity = m.now()
}

func (m *Manager) watch(stop chan struct{}) {
	ticker := time.NewTicker(m.checkInterval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			m.mu.Lock()
			idle := m.cred != nil && m.now().Sub(m.lastActivity) >= m.idleTimeout
			expired := m.cred != nil && !m.now().Before(m.cred.Expires)
			m.mu.Unlock()
			if !idle && !expired {
				continue
			}

			ctx := context.Background()
			if err := m.Logout(ctx); err != nil {
				m.logger.Warn(ctx, "idle logout failed", "error", err.Error())
			}
			m.logger.Info(ctx, "session closed after inactivity")

			m.mu.Lock()
			callbacks := make([]func(), len(m.onTimeout))
			copy(callbacks, m.onTimeout)
			m.mu.Unlock()
			for _, fn := range callbacks {
				fn()
			}
			return
		}
	}
}
