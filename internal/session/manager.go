// Package session holds the process-wide credential and its lifecycle.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"github.com/thisispriyanshii/edviron-frontend/internal/api"
	"github.com/thisispriyanshii/edviron-frontend/internal/common"
	"github.com/thisispriyanshii/edviron-frontend/internal/model"
)

// State is the lifecycle stage of the session.
type State int

// Session states.
const (
	Uninitialized State = iota
	Loading
	Authenticated
	Anonymous
)

func (s State) String() string {
	switch s {
	case Uninitialized:
		return "uninitialized"
	case Loading:
		return "loading"
	case Authenticated:
		return "authenticated"
	case Anonymous:
		return "anonymous"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Authenticator is the capability views use to read and change the credential.
type Authenticator interface {
	Token() string
	Login(ctx context.Context, creds model.Credentials) (model.User, error)
	Register(ctx context.Context, reg model.Registration) (model.User, error)
	Logout() error
}

// Manager owns the credential. Dashboard commands read the token from other
// goroutines, so all fields are guarded.
type Manager struct {
	store    Store
	backend  api.AuthBackend
	logger   *zap.Logger
	validate *validator.Validate
	now      func() time.Time
	user     model.User
	token    string
	mu       sync.RWMutex
	state    State
}

// NewManager creates an Uninitialized manager persisting to store.
func NewManager(store Store) *Manager {
	if store == nil {
		store = NewMemoryStore()
	}
	return &Manager{
		store:    store,
		logger:   zap.L().Named("session"),
		validate: validator.New(),
		now:      time.Now,
	}
}

// SetBackend attaches the auth endpoints. The API client reads its bearer
// token from the manager, so it is wired after construction.
func (m *Manager) SetBackend(backend api.AuthBackend) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.backend = backend
}

// Token implements Authenticator and api.TokenSource.
func (m *Manager) Token() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.token
}

// State returns the lifecycle stage.
func (m *Manager) State() State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state
}

// User returns the signed-in user when the session is Authenticated.
func (m *Manager) User() (model.User, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.user, m.state == Authenticated
}

// Restore loads the saved credential and confirms it with the backend. An
// expired or rejected credential leaves the session Anonymous without error.
func (m *Manager) Restore(ctx context.Context) error {
	m.mu.Lock()
	m.state = Loading
	backend := m.backend
	m.mu.Unlock()

	saved, err := m.store.Load()
	if errors.Is(err, ErrNoSession) {
		m.becomeAnonymous()
		return nil
	}
	if err != nil {
		m.becomeAnonymous()
		return err
	}

	if expired, exp := m.expired(saved.AccessToken); expired {
		m.logger.Info("saved session expired", zap.Time("expired_at", exp))
		m.discard()
		return nil
	}

	if backend == nil {
		m.becomeAnonymous()
		return fmt.Errorf("%w: session backend not set", common.ErrMissingConfig)
	}

	m.mu.Lock()
	m.token = saved.AccessToken
	m.mu.Unlock()

	user, err := backend.Profile(ctx)
	if err != nil {
		if common.IsAuth(err) {
			m.logger.Info("saved session rejected by server")
			m.discard()
			return nil
		}
		m.becomeAnonymous()
		return fmt.Errorf("failed to confirm session: %w", err)
	}

	m.authenticate(saved.AccessToken, user)
	return nil
}

// Login signs in and persists the credential.
func (m *Manager) Login(ctx context.Context, creds model.Credentials) (model.User, error) {
	if err := m.validate.Struct(creds); err != nil {
		return model.User{}, common.Validation("enter a valid email and password")
	}

	backend, err := m.requireBackend()
	if err != nil {
		return model.User{}, err
	}

	resp, err := backend.Login(ctx, creds)
	if err != nil {
		return model.User{}, err
	}
	return m.accept(resp)
}

// Register creates an account and signs in with it.
func (m *Manager) Register(ctx context.Context, reg model.Registration) (model.User, error) {
	if err := m.validate.Struct(reg); err != nil {
		return model.User{}, common.Validation("name, a valid email and a password of at least 6 characters are required")
	}

	backend, err := m.requireBackend()
	if err != nil {
		return model.User{}, err
	}

	resp, err := backend.Register(ctx, reg)
	if err != nil {
		return model.User{}, err
	}
	return m.accept(resp)
}

// Logout forgets the credential.
func (m *Manager) Logout() error {
	m.becomeAnonymous()
	return m.store.Clear()
}

// Invalidate drops a credential the server rejected.
func (m *Manager) Invalidate() {
	m.logger.Info("session invalidated")
	m.discard()
}

func (m *Manager) accept(resp model.AuthResponse) (model.User, error) {
	if resp.AccessToken == "" {
		return model.User{}, fmt.Errorf("%w: server returned no access token", common.ErrAuth)
	}

	m.authenticate(resp.AccessToken, resp.User)
	if err := m.store.Save(Saved{AccessToken: resp.AccessToken, User: resp.User, SavedAt: m.now()}); err != nil {
		m.logger.Warn("failed to persist session", zap.Error(err))
	}
	return resp.User, nil
}

func (m *Manager) requireBackend() (api.AuthBackend, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.backend == nil {
		return nil, fmt.Errorf("%w: session backend not set", common.ErrMissingConfig)
	}
	return m.backend, nil
}

func (m *Manager) authenticate(token string, user model.User) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = token
	m.user = user
	m.state = Authenticated
}

func (m *Manager) becomeAnonymous() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = ""
	m.user = model.User{}
	m.state = Anonymous
}

func (m *Manager) discard() {
	m.becomeAnonymous()
	if err := m.store.Clear(); err != nil {
		m.logger.Warn("failed to clear session", zap.Error(err))
	}
}

// expired reports whether token is a JWT whose exp claim has passed. Tokens
// that are not JWTs or carry no exp are left to the server to judge.
func (m *Manager) expired(token string) (bool, time.Time) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false, time.Time{}
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false, time.Time{}
	}
	return !m.now().Before(exp.Time), exp.Time
}

var (
	_ Authenticator   = (*Manager)(nil)
	_ api.TokenSource = (*Manager)(nil)
)
