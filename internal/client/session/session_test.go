package session

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/vrmarket/vrmarket/internal/identity"
	"github.com/vrmarket/vrmarket/internal/logging"
)

type fakeProvider struct {
	mu       sync.Mutex
	cred     *identity.Credential
	loginN   int
	logoutN  int
	loginErr error
}

func (f *fakeProvider) Login(ctx context.Context) (*identity.Credential, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.loginN++
	if f.loginErr != nil {
		return nil, f.loginErr
	}
	return f.cred, nil
}

func (f *fakeProvider) Logout(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.logoutN++
	return nil
}

func (f *fakeProvider) logouts() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.logoutN
}

type fakeBinder struct {
	mu     sync.Mutex
	bound  *identity.Credential
	resets int
}

func (f *fakeBinder) Bind(c *identity.Credential) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.bound = c
}

func (f *fakeBinder) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.bound = nil
	f.resets++
}

func (f *fakeBinder) current() *identity.Credential {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.bound
}

func validCred() *identity.Credential {
	return &identity.Credential{
		Principal: "w7x7r-cok77-xa",
		Token:     "tok",
		Expires:   time.Now().Add(time.Hour),
	}
}

func TestLoginBindsCredential(t *testing.T) {
	p := &fakeProvider{cred: validCred()}
	b := &fakeBinder{}
	m := NewManager(p, b, logging.NewDiscard(), WithIdleTimeout(0))

	require.False(t, m.Authenticated())
	require.Equal(t, identity.AnonymousPrincipal, m.Principal())

	require.NoError(t, m.Login(context.Background()))
	require.True(t, m.Authenticated())
	require.Equal(t, "w7x7r-cok77-xa", m.Principal())
	require.NotNil(t, b.current())
}

func TestLoginFailureLeavesSessionClean(t *testing.T) {
	p := &fakeProvider{loginErr: errors.New("user cancelled")}
	b := &fakeBinder{}
	m := NewManager(p, b, logging.NewDiscard(), WithIdleTimeout(0))

	require.Error(t, m.Login(context.Background()))
	require.False(t, m.Authenticated())
	require.Nil(t, b.current())
}

func TestLogout(t *testing.T) {
	p := &fakeProvider{cred: validCred()}
	b := &fakeBinder{}
	m := NewManager(p, b, logging.NewDiscard(), WithIdleTimeout(0))

	require.NoError(t, m.Login(context.Background()))
	require.NoError(t, m.Logout(context.Background()))
	require.False(t, m.Authenticated())
	require.Nil(t, b.current())
	require.Equal(t, 1, p.logouts())
}

func TestLogoutIdempotent(t *testing.T) {
	p := &fakeProvider{cred: validCred()}
	m := NewManager(p, &fakeBinder{}, logging.NewDiscard(), WithIdleTimeout(0))

	require.NoError(t, m.Logout(context.Background()))
	require.NoError(t, m.Logout(context.Background()))
	require.Zero(t, p.logouts(), "provider must not be asked to log out a session that never started")
}

func TestExpiredCredentialIsNotAuthenticated(t *testing.T) {
	p := &fakeProvider{cred: &identity.Credential{
		Principal: "w7x7r-cok77-xa",
		Token:     "tok",
		Expires:   time.Now().Add(-time.Minute),
	}}
	m := NewManager(p, &fakeBinder{}, logging.NewDiscard(), WithIdleTimeout(0))

	require.NoError(t, m.Login(context.Background()))
	require.False(t, m.Authenticated())
}

func TestAnonymousCredentialIsNotAuthenticated(t *testing.T) {
	p := &fakeProvider{cred: &identity.Credential{
		Principal: identity.AnonymousPrincipal,
		Token:     "tok",
		Expires:   time.Now().Add(time.Hour),
	}}
	m := NewManager(p, &fakeBinder{}, logging.NewDiscard(), WithIdleTimeout(0))

	require.NoError(t, m.Login(context.Background()))
	require.False(t, m.Authenticated())
	require.Equal(t, identity.AnonymousPrincipal, m.Principal())
}

func TestIdleTimeoutLogsOut(t *testing.T) {
	p := &fakeProvider{cred: validCred()}
	b := &fakeBinder{}
	m := NewManager(p, b, logging.NewDiscard(), WithIdleTimeout(40*time.Millisecond))

	fired := make(chan struct{})
	m.OnIdleTimeout(func() { close(fired) })

	require.NoError(t, m.Login(context.Background()))

	select {
	case <-fired:
	case <-time.After(2 * time.Second):
		t.Fatal("idle timeout never fired")
	}
	require.False(t, m.Authenticated())
	require.Nil(t, b.current())
	require.Equal(t, 1, p.logouts())
}

func TestTouchDefersIdleTimeout(t *testing.T) {
	p := &fakeProvider{cred: validCred()}
	m := NewManager(p, &fakeBinder{}, logging.NewDiscard(), WithIdleTimeout(80*time.Millisecond))

	require.NoError(t, m.Login(context.Background()))

	// keep the session busy past where the idle window would have closed
	deadline := time.Now().Add(200 * time.Millisecond)
	for time.Now().Before(deadline) {
		m.Touch()
		time.Sleep(10 * time.Millisecond)
	}
	require.True(t, m.Authenticated())

	require.NoError(t, m.Logout(context.Background()))
}

func TestRelogin(t *testing.T) {
	first := validCred()
	p := &fakeProvider{cred: first}
	b := &fakeBinder{}
	m := NewManager(p, b, logging.NewDiscard(), WithIdleTimeout(0))

	require.NoError(t, m.Login(context.Background()))

	second := validCred()
	second.Principal = "aaaaa-aa"
	p.mu.Lock()
	p.cred = second
	p.mu.Unlock()

	require.NoError(t, m.Login(context.Background()))
	require.Equal(t, "aaaaa-aa", m.Principal())
	require.Same(t, second, b.current())
}
