package authstate

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/goliatone/go-print"
	"github.com/google/uuid"
)

// Controller owns the client side session state and funnels every
// authentication action through the injected collaborators.
type Controller struct {
	id           uuid.UUID
	cb           collaborators
	store        *sessionStore
	logger       Logger
	loggerSet    bool
	activitySink ActivitySink
	now          func() time.Time

	focusSources      []FocusSource
	revalidateOnFocus bool
	loadOnMount       bool

	mu    sync.Mutex
	scope *mountScope
}

// mountScope is the lifetime of a single Mount call. Events delivered
// after the scope is torn down are dropped.
type mountScope struct {
	ctx      context.Context
	cancel   context.CancelFunc
	done     atomic.Bool
	mu       sync.Mutex
	teardown []func()
}

func (s *mountScope) active() bool {
	return !s.done.Load()
}

func (s *mountScope) add(fn func()) {
	if fn == nil {
		return
	}
	s.mu.Lock()
	s.teardown = append(s.teardown, fn)
	s.mu.Unlock()
}

func (s *mountScope) close() {
	if !s.done.CompareAndSwap(false, true) {
		return
	}
	s.mu.Lock()
	fns := s.teardown
	s.teardown = nil
	s.mu.Unlock()

	for i := len(fns) - 1; i >= 0; i-- {
		fns[i]()
	}
	s.cancel()
}

type loadMarker struct{}

// withinLoad tags ctx so state changes made by LoadUser do not trigger
// another LoadUser run.
func withinLoad(ctx context.Context) context.Context {
	return context.WithValue(ctx, loadMarker{}, true)
}

func isWithinLoad(ctx context.Context) bool {
	v, _ := ctx.Value(loadMarker{}).(bool)
	return v
}

// New creates a controller over the given collaborators. The controller
// starts unauthenticated and loading.
func New(callbacks Callbacks, opts ...Option) *Controller {
	c := &Controller{
		id:                uuid.New(),
		cb:                normalizeCallbacks(callbacks),
		store:             newSessionStore(),
		logger:            defLogger{},
		activitySink:      noopActivitySink{},
		now:               time.Now,
		revalidateOnFocus: true,
		loadOnMount:       true,
	}

	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}

	return c
}

// ID identifies this controller instance in logs and activity events
func (c *Controller) ID() string {
	return c.id.String()
}

// State returns the current session snapshot
func (c *Controller) State() State {
	return c.store.get()
}

// Subscribe registers a listener invoked synchronously after each state
// mutation. The returned function removes it.
func (c *Controller) Subscribe(listener Listener) (unsubscribe func()) {
	return c.store.subscribe(listener)
}

// Mount starts the reactive triggers: auth state change notifications,
// focus sources and the initial LoadUser. The returned function tears
// everything down, same as Close.
func (c *Controller) Mount(ctx context.Context) (unmount func(), err error) {
	c.mu.Lock()
	if c.scope != nil {
		c.mu.Unlock()
		return nil, ErrAlreadyMounted
	}
	mctx, cancel := context.WithCancel(ctx)
	scope := &mountScope{ctx: mctx, cancel: cancel}
	c.scope = scope
	c.mu.Unlock()

	if c.cb.hasStateChange {
		unsubscribe := c.cb.stateChange(func(user User) {
			if !scope.active() {
				return
			}
			c.applyAuthenticated(scope.ctx, !isNilUser(user))
		})
		scope.add(unsubscribe)
	}

	if c.revalidateOnFocus {
		for _, src := range c.focusSources {
			unsubscribe := src.Subscribe(func() {
				if !scope.active() {
					return
				}
				c.CheckAuth(scope.ctx)
			})
			scope.add(unsubscribe)
		}
	}

	if c.loadOnMount {
		if err := c.LoadUser(scope.ctx); err != nil {
			c.logger.Error("auth state %s: initial load failed: %s", c.ID(), err)
		}
	}

	return func() { c.unmount(scope) }, nil
}

// Close tears down the current mount, if any.
func (c *Controller) Close() {
	c.mu.Lock()
	scope := c.scope
	c.mu.Unlock()

	if scope != nil {
		c.unmount(scope)
	}
}

func (c *Controller) unmount(scope *mountScope) {
	c.mu.Lock()
	if c.scope == scope {
		c.scope = nil
	}
	c.mu.Unlock()

	scope.close()
}

func (c *Controller) mounted() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.scope != nil && c.scope.active()
}

// Focus signals that the host regained focus. It revalidates the token
// while the controller is mounted with focus revalidation enabled, and is
// a no-op otherwise.
func (c *Controller) Focus(ctx context.Context) {
	if !c.revalidateOnFocus || !c.mounted() {
		return
	}
	c.CheckAuth(ctx)
}

// CheckAuth asks the collaborator for the current token and derives the
// authenticated flag from it. Errors are never surfaced, a failed check
// means unauthenticated. Without an OnGetToken collaborator the flag driven
// by OnAuthStateChange is returned as is.
func (c *Controller) CheckAuth(ctx context.Context) bool {
	if !c.cb.hasGetToken {
		return c.store.get().IsAuthenticated
	}

	token, err := c.cb.getToken(ctx)
	if err != nil {
		c.logger.Debug("auth state %s: token check failed: %s", c.ID(), err)
		c.record(ctx, ActivityEventTokenCheckError, "", err, nil)
		c.applyAuthenticated(ctx, false)
		return false
	}

	authenticated := token.Valid()
	c.applyAuthenticated(ctx, authenticated)
	return authenticated
}

// LoadUser revalidates the token and, when authenticated, loads the
// profile. Authenticated without a profile counts as unauthenticated. The
// loading flag is always cleared.
func (c *Controller) LoadUser(ctx context.Context) error {
	ctx = withinLoad(ctx)
	defer c.store.setLoading(false)

	if !c.CheckAuth(ctx) {
		return nil
	}

	user, err := c.cb.loadUser(ctx)
	if err != nil {
		c.record(ctx, ActivityEventUserLoadError, "", err, nil)
		return err
	}

	if isNilUser(user) {
		c.record(ctx, ActivityEventUserMissing, "", nil, nil)
		c.applyAuthenticated(ctx, false)
		return nil
	}

	c.logger.Debug("auth state %s: user loaded %s", c.ID(), print.MaybePrettyJSON(user))
	c.store.setUser(user)
	c.record(ctx, ActivityEventUserLoaded, user.GetID(), nil, nil)
	return nil
}

// SignUp runs the signup collaborator, then revalidates the token in case
// the backend opened a session as a side effect.
func (c *Controller) SignUp(ctx context.Context, params AuthParams, opts AuthOptions) (User, error) {
	user, err := c.cb.signup(ctx, params, opts)
	if err != nil {
		return user, err
	}

	c.CheckAuth(ctx)
	c.record(ctx, ActivityEventSignup, userID(user), nil, map[string]any{"provider": params.Provider})
	return user, nil
}

// LogIn runs the login collaborator, then revalidates the token.
func (c *Controller) LogIn(ctx context.Context, params AuthParams, opts AuthOptions) (User, error) {
	user, err := c.cb.login(ctx, params, opts)
	if err != nil {
		return user, err
	}

	c.CheckAuth(ctx)
	c.record(ctx, ActivityEventLogin, userID(user), nil, map[string]any{"provider": params.Provider})
	return user, nil
}

// LogOut runs the logout collaborator and clears local state once it
// succeeds. On error the state is left untouched. The cleared state is
// what LogOut returns with, even while mounted.
func (c *Controller) LogOut(ctx context.Context, opts AuthOptions) error {
	if err := c.cb.logout(ctx, opts); err != nil {
		return err
	}

	// the flip is final: a reload here would re-authenticate from a token
	// the backend failed to revoke
	prev := c.store.get()
	if c.store.clear() {
		c.onAuthenticatedChanged(withinLoad(ctx), false)
	}
	c.record(ctx, ActivityEventLogout, userID(prev.User), nil, nil)
	return nil
}

// VerifyOtp forwards to OnVerifyOtp unchanged. It does not touch local state.
func (c *Controller) VerifyOtp(ctx context.Context, params OtpParams, opts AuthOptions) (bool, error) {
	return c.cb.verifyOtp(ctx, params, opts)
}

// ResetPassword forwards to OnResetPassword unchanged. It does not touch
// local state.
func (c *Controller) ResetPassword(ctx context.Context, params ResetPasswordParams, opts AuthOptions) (any, error) {
	return c.cb.resetPassword(ctx, params, opts)
}

// UpdatePassword forwards to OnUpdatePassword unchanged. It does not touch
// local state.
func (c *Controller) UpdatePassword(ctx context.Context, params UpdatePasswordParams, opts AuthOptions) (any, error) {
	return c.cb.updatePassword(ctx, params, opts)
}

// GetToken returns the raw session token from the collaborator
func (c *Controller) GetToken(ctx context.Context) (Token, error) {
	return c.cb.getToken(ctx)
}

func (c *Controller) applyAuthenticated(ctx context.Context, authenticated bool) {
	if c.store.setAuthenticated(authenticated) {
		c.onAuthenticatedChanged(ctx, authenticated)
	}
}

// onAuthenticatedChanged reloads the user on every flip of the flag while
// mounted, unless the flip came from LoadUser itself.
func (c *Controller) onAuthenticatedChanged(ctx context.Context, authenticated bool) {
	event := ActivityEventUnauthenticated
	if authenticated {
		event = ActivityEventAuthenticated
	}
	c.record(ctx, event, "", nil, nil)

	if isWithinLoad(ctx) || !c.mounted() {
		return
	}

	if err := c.LoadUser(ctx); err != nil {
		c.logger.Error("auth state %s: reload after state change failed: %s", c.ID(), err)
	}
}

func (c *Controller) record(ctx context.Context, eventType ActivityEventType, uid string, err error, metadata map[string]any) {
	event := ActivityEvent{
		EventType:    eventType,
		ControllerID: c.ID(),
		UserID:       uid,
		Err:          err,
		Metadata:     metadata,
		OccurredAt:   c.now(),
	}

	if sinkErr := c.activitySink.Record(ctx, event); sinkErr != nil {
		c.logger.Error("auth state %s: activity sink failed for %s: %s", c.ID(), eventType, sinkErr)
	}
}

func userID(u User) string {
	if isNilUser(u) {
		return ""
	}
	return u.GetID()
}
