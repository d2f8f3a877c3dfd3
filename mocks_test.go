package authstate_test

import (
	"context"
	"sync"

	authstate "github.com/goliatone/go-auth-state"
	"github.com/goliatone/go-router"
	"github.com/stretchr/testify/mock"
)

// MockBackend implements every collaborator through testify/mock
type MockBackend struct {
	mock.Mock
}

func (m *MockBackend) LoadUser(ctx context.Context) (authstate.User, error) {
	args := m.Called(ctx)
	user, _ := args.Get(0).(authstate.User)
	return user, args.Error(1)
}

func (m *MockBackend) Signup(ctx context.Context, params authstate.AuthParams, opts authstate.AuthOptions) (authstate.User, error) {
	args := m.Called(ctx, params, opts)
	user, _ := args.Get(0).(authstate.User)
	return user, args.Error(1)
}

func (m *MockBackend) Login(ctx context.Context, params authstate.AuthParams, opts authstate.AuthOptions) (authstate.User, error) {
	args := m.Called(ctx, params, opts)
	user, _ := args.Get(0).(authstate.User)
	return user, args.Error(1)
}

func (m *MockBackend) ResetPassword(ctx context.Context, params authstate.ResetPasswordParams, opts authstate.AuthOptions) (any, error) {
	args := m.Called(ctx, params, opts)
	return args.Get(0), args.Error(1)
}

func (m *MockBackend) UpdatePassword(ctx context.Context, params authstate.UpdatePasswordParams, opts authstate.AuthOptions) (any, error) {
	args := m.Called(ctx, params, opts)
	return args.Get(0), args.Error(1)
}

func (m *MockBackend) VerifyOtp(ctx context.Context, params authstate.OtpParams, opts authstate.AuthOptions) (bool, error) {
	args := m.Called(ctx, params, opts)
	return args.Bool(0), args.Error(1)
}

func (m *MockBackend) Logout(ctx context.Context, opts authstate.AuthOptions) error {
	args := m.Called(ctx, opts)
	return args.Error(0)
}

func (m *MockBackend) GetToken(ctx context.Context) (authstate.Token, error) {
	args := m.Called(ctx)
	token, _ := args.Get(0).(authstate.Token)
	return token, args.Error(1)
}

// Callbacks wires every mocked method, including OnGetToken
func (m *MockBackend) Callbacks() authstate.Callbacks {
	return authstate.Callbacks{
		OnLoadUser:       m.LoadUser,
		OnSignup:         m.Signup,
		OnLogin:          m.Login,
		OnResetPassword:  m.ResetPassword,
		OnUpdatePassword: m.UpdatePassword,
		OnVerifyOtp:      m.VerifyOtp,
		OnLogout:         m.Logout,
		OnGetToken:       m.GetToken,
	}
}

// fakeBackend is a small in-memory identity backend. Signing up or logging
// in stores a token, logging out drops it.
type fakeBackend struct {
	mu        sync.Mutex
	token     authstate.Token
	user      authstate.User
	listeners map[int]authstate.AuthStateChangeFunc
	nextID    int
	tokenErr  error
	tokenHits int
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{listeners: map[int]authstate.AuthStateChangeFunc{}}
}

func (f *fakeBackend) callbacks() authstate.Callbacks {
	return authstate.Callbacks{
		OnLoadUser: func(context.Context) (authstate.User, error) {
			f.mu.Lock()
			defer f.mu.Unlock()
			return f.user, nil
		},
		OnSignup: func(_ context.Context, params authstate.AuthParams, _ authstate.AuthOptions) (authstate.User, error) {
			f.mu.Lock()
			defer f.mu.Unlock()
			f.token = "token-" + authstate.Token(params.Email)
			f.user = &authstate.DefaultUser{ID: "u1", Email: params.Email}
			return nil, nil
		},
		OnLogin: func(_ context.Context, params authstate.AuthParams, _ authstate.AuthOptions) (authstate.User, error) {
			f.mu.Lock()
			defer f.mu.Unlock()
			f.token = "token-" + authstate.Token(params.Email)
			f.user = &authstate.DefaultUser{ID: "u1", Email: params.Email}
			return f.user, nil
		},
		OnLogout: func(context.Context, authstate.AuthOptions) error {
			f.mu.Lock()
			defer f.mu.Unlock()
			f.token = ""
			f.user = nil
			return nil
		},
		OnGetToken: func(context.Context) (authstate.Token, error) {
			f.mu.Lock()
			defer f.mu.Unlock()
			f.tokenHits++
			if f.tokenErr != nil {
				return "", f.tokenErr
			}
			return f.token, nil
		},
		OnAuthStateChange: f.subscribe,
	}
}

func (f *fakeBackend) subscribe(fn authstate.AuthStateChangeFunc) func() {
	f.mu.Lock()
	id := f.nextID
	f.nextID++
	f.listeners[id] = fn
	f.mu.Unlock()

	return func() {
		f.mu.Lock()
		delete(f.listeners, id)
		f.mu.Unlock()
	}
}

// emit notifies every registered listener
func (f *fakeBackend) emit(user authstate.User) {
	f.mu.Lock()
	fns := make([]authstate.AuthStateChangeFunc, 0, len(f.listeners))
	for _, fn := range f.listeners {
		fns = append(fns, fn)
	}
	f.mu.Unlock()

	for _, fn := range fns {
		fn(user)
	}
}

func (f *fakeBackend) listenerCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.listeners)
}

func (f *fakeBackend) setSession(token authstate.Token, user authstate.User) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.token = token
	f.user = user
}

func (f *fakeBackend) failToken(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tokenErr = err
}

// manualFocus is a FocusSource driven by the test
type manualFocus struct {
	mu        sync.Mutex
	listeners map[int]func()
	nextID    int
}

func newManualFocus() *manualFocus {
	return &manualFocus{listeners: map[int]func(){}}
}

func (m *manualFocus) Subscribe(fn func()) func() {
	m.mu.Lock()
	id := m.nextID
	m.nextID++
	m.listeners[id] = fn
	m.mu.Unlock()

	return func() {
		m.mu.Lock()
		delete(m.listeners, id)
		m.mu.Unlock()
	}
}

func (m *manualFocus) fire() {
	m.mu.Lock()
	fns := make([]func(), 0, len(m.listeners))
	for _, fn := range m.listeners {
		fns = append(fns, fn)
	}
	m.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
}

func (m *manualFocus) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.listeners)
}

// captureLogger records log lines
type captureLogger struct {
	mu    sync.Mutex
	lines []string
}

func (l *captureLogger) record(level, format string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.lines = append(l.lines, level+" "+format)
}

func (l *captureLogger) Debug(format string, args ...any) { l.record("debug", format) }
func (l *captureLogger) Info(format string, args ...any)  { l.record("info", format) }
func (l *captureLogger) Error(format string, args ...any) { l.record("error", format) }

// MockRouterContext implements the parts of router.Context the middleware
// touches. Everything else panics through the nil embedded interface.
type MockRouterContext struct {
	router.Context
	ctx    context.Context
	locals map[any]any
}

func newMockRouterContext() *MockRouterContext {
	return &MockRouterContext{ctx: context.Background(), locals: map[any]any{}}
}

func (m *MockRouterContext) Context() context.Context {
	return m.ctx
}

func (m *MockRouterContext) SetContext(ctx context.Context) {
	m.ctx = ctx
}

func (m *MockRouterContext) Locals(key any, value ...any) any {
	if len(value) > 0 {
		m.locals[key] = value[0]
		return value[0]
	}
	return m.locals[key]
}
