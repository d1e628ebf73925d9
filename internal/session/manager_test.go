package session

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/thisispriyanshii/edviron-frontend/internal/api"
	"github.com/thisispriyanshii/edviron-frontend/internal/common"
	"github.com/thisispriyanshii/edviron-frontend/internal/model"
)

type mockBackend struct {
	mock.Mock
}

func (m *mockBackend) Login(ctx context.Context, creds model.Credentials) (model.AuthResponse, error) {
	args := m.Called(ctx, creds)
	return args.Get(0).(model.AuthResponse), args.Error(1)
}

func (m *mockBackend) Register(ctx context.Context, reg model.Registration) (model.AuthResponse, error) {
	args := m.Called(ctx, reg)
	return args.Get(0).(model.AuthResponse), args.Error(1)
}

func (m *mockBackend) Profile(ctx context.Context) (model.User, error) {
	args := m.Called(ctx)
	return args.Get(0).(model.User), args.Error(1)
}

func signedToken(t *testing.T, exp time.Time) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "u1",
		"exp": exp.Unix(),
	}).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return token
}

var admin = model.User{ID: "u1", Email: "admin@example.com", Name: "Admin", Role: "admin"}

func TestManager_StartsUninitialized(t *testing.T) {
	m := NewManager(nil)
	assert.Equal(t, Uninitialized, m.State())
	assert.Empty(t, m.Token())

	_, ok := m.User()
	assert.False(t, ok)
}

func TestManager_RestoreWithoutSavedSession(t *testing.T) {
	backend := &mockBackend{}
	m := NewManager(NewMemoryStore())
	m.SetBackend(backend)

	require.NoError(t, m.Restore(context.Background()))
	assert.Equal(t, Anonymous, m.State())
	backend.AssertNotCalled(t, "Profile", mock.Anything)
}

func TestManager_RestoreExpiredToken(t *testing.T) {
	store := NewMemoryStore()
	require.NoError(t, store.Save(Saved{AccessToken: signedToken(t, time.Now().Add(-time.Hour)), User: admin}))

	backend := &mockBackend{}
	m := NewManager(store)
	m.SetBackend(backend)

	require.NoError(t, m.Restore(context.Background()))
	assert.Equal(t, Anonymous, m.State())
	assert.Empty(t, m.Token())
	backend.AssertNotCalled(t, "Profile", mock.Anything)

	_, err := store.Load()
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestManager_RestoreConfirmsWithProfile(t *testing.T) {
	token := signedToken(t, time.Now().Add(time.Hour))
	store := NewMemoryStore()
	require.NoError(t, store.Save(Saved{AccessToken: token, User: model.User{ID: "u1"}}))

	m := NewManager(store)
	backend := &mockBackend{}
	backend.On("Profile", mock.Anything).Run(func(mock.Arguments) {
		assert.Equal(t, token, m.Token())
	}).Return(admin, nil)
	m.SetBackend(backend)

	require.NoError(t, m.Restore(context.Background()))
	assert.Equal(t, Authenticated, m.State())
	assert.Equal(t, token, m.Token())

	user, ok := m.User()
	assert.True(t, ok)
	assert.Equal(t, admin, user)
	backend.AssertExpectations(t)
}

func TestManager_RestoreRejectedByServer(t *testing.T) {
	store := NewMemoryStore()
	require.NoError(t, store.Save(Saved{AccessToken: "opaque-token"}))

	backend := &mockBackend{}
	backend.On("Profile", mock.Anything).Return(model.User{}, &api.Error{Kind: common.ErrAuth, StatusCode: 401})

	m := NewManager(store)
	m.SetBackend(backend)

	require.NoError(t, m.Restore(context.Background()))
	assert.Equal(t, Anonymous, m.State())

	_, err := store.Load()
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestManager_RestoreTransportFailureKeepsSavedToken(t *testing.T) {
	store := NewMemoryStore()
	require.NoError(t, store.Save(Saved{AccessToken: "opaque-token"}))

	backend := &mockBackend{}
	backend.On("Profile", mock.Anything).Return(model.User{}, &api.Error{Kind: common.ErrTransport})

	m := NewManager(store)
	m.SetBackend(backend)

	err := m.Restore(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrTransport)
	assert.Equal(t, Anonymous, m.State())

	saved, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, "opaque-token", saved.AccessToken)
}

func TestManager_LoginAndLogout(t *testing.T) {
	store := NewMemoryStore()
	creds := model.Credentials{Email: "admin@example.com", Password: "secret"}

	backend := &mockBackend{}
	backend.On("Login", mock.Anything, creds).Return(model.AuthResponse{AccessToken: "jwt", User: admin}, nil)

	m := NewManager(store)
	m.SetBackend(backend)

	user, err := m.Login(context.Background(), creds)
	require.NoError(t, err)
	assert.Equal(t, admin, user)
	assert.Equal(t, Authenticated, m.State())
	assert.Equal(t, "jwt", m.Token())

	saved, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, "jwt", saved.AccessToken)

	require.NoError(t, m.Logout())
	assert.Equal(t, Anonymous, m.State())
	assert.Empty(t, m.Token())
	_, err = store.Load()
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestManager_LoginValidation(t *testing.T) {
	backend := &mockBackend{}
	m := NewManager(nil)
	m.SetBackend(backend)

	_, err := m.Login(context.Background(), model.Credentials{Email: "not-an-email", Password: "x"})
	assert.ErrorIs(t, err, common.ErrValidation)
	backend.AssertNotCalled(t, "Login", mock.Anything, mock.Anything)
}

func TestManager_LoginFailureLeavesStateUnchanged(t *testing.T) {
	backend := &mockBackend{}
	backend.On("Login", mock.Anything, mock.Anything).Return(model.AuthResponse{}, &api.Error{Kind: common.ErrAuth, Message: "Invalid credentials"})

	m := NewManager(nil)
	m.SetBackend(backend)
	require.NoError(t, m.Restore(context.Background()))

	_, err := m.Login(context.Background(), model.Credentials{Email: "a@b.co", Password: "bad"})
	require.Error(t, err)
	assert.Equal(t, "Invalid credentials", common.Message(err, "Login failed"))
	assert.Equal(t, Anonymous, m.State())
}

func TestManager_Register(t *testing.T) {
	reg := model.Registration{Email: "new@example.com", Password: "secret1", Name: "New", SchoolID: "s1"}

	backend := &mockBackend{}
	backend.On("Register", mock.Anything, reg).Return(model.AuthResponse{AccessToken: "jwt2", User: model.User{ID: "u2", SchoolID: "s1"}}, nil)

	m := NewManager(nil)
	m.SetBackend(backend)

	user, err := m.Register(context.Background(), reg)
	require.NoError(t, err)
	assert.Equal(t, "s1", user.SchoolID)
	assert.Equal(t, "jwt2", m.Token())

	_, err = m.Register(context.Background(), model.Registration{Email: "x@example.com", Password: "123", Name: "X"})
	assert.ErrorIs(t, err, common.ErrValidation)
}

func TestManager_Invalidate(t *testing.T) {
	store := NewMemoryStore()
	backend := &mockBackend{}
	backend.On("Login", mock.Anything, mock.Anything).Return(model.AuthResponse{AccessToken: "jwt", User: admin}, nil)

	m := NewManager(store)
	m.SetBackend(backend)
	_, err := m.Login(context.Background(), model.Credentials{Email: "admin@example.com", Password: "secret"})
	require.NoError(t, err)

	m.Invalidate()
	assert.Equal(t, Anonymous, m.State())
	assert.Empty(t, m.Token())
	_, err = store.Load()
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestManager_RestoreWithoutBackend(t *testing.T) {
	store := NewMemoryStore()
	require.NoError(t, store.Save(Saved{AccessToken: "opaque"}))

	err := NewManager(store).Restore(context.Background())
	assert.ErrorIs(t, err, common.ErrMissingConfig)
}

func TestFileStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "session.json")
	store := NewFileStore(path)

	_, err := store.Load()
	assert.ErrorIs(t, err, ErrNoSession)

	saved := Saved{AccessToken: "jwt", User: admin, SavedAt: time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)}
	require.NoError(t, store.Save(saved))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	loaded, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, saved.AccessToken, loaded.AccessToken)
	assert.Equal(t, saved.User, loaded.User)
	assert.True(t, saved.SavedAt.Equal(loaded.SavedAt))

	require.NoError(t, store.Clear())
	require.NoError(t, store.Clear())
	_, err = store.Load()
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestFileStore_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	_, err := NewFileStore(path).Load()
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNoSession)
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "authenticated", Authenticated.String())
	assert.Equal(t, "State(9)", State(9).String())
}
