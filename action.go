package authstate

import (
	"context"
	"sync"
)

// ActionKind selects the controller action backing a login form
type ActionKind string

const (
	ActionLogIn  ActionKind = "logIn"
	ActionSignUp ActionKind = "signUp"
)

// ActionState tracks the last invocation of an Action
type ActionState[R any] struct {
	Loading bool
	Err     error
	Data    R
}

// ActionFunc is the shape shared by every controller action
type ActionFunc[P any, R any] func(ctx context.Context, params P, opts AuthOptions) (R, error)

// Action wraps one controller action and records whether it is running,
// what it returned and how it failed, so forms can render progress.
type Action[P any, R any] struct {
	mu       sync.RWMutex
	state    ActionState[R]
	fn       ActionFunc[P, R]
	validate func(P) error
}

// NewAction wraps fn. Mostly useful for custom collaborator flows, the
// New*Action helpers cover the controller surface.
func NewAction[P any, R any](fn ActionFunc[P, R]) *Action[P, R] {
	return &Action[P, R]{fn: fn}
}

// NewLoginAction tracks LogIn, or SignUp when kind is ActionSignUp.
// Unknown kinds fall back to LogIn.
func NewLoginAction(c *Controller, kind ActionKind) *Action[AuthParams, User] {
	if kind == ActionSignUp {
		return NewAction[AuthParams, User](c.SignUp)
	}
	return NewAction[AuthParams, User](c.LogIn)
}

func NewSignUpAction(c *Controller) *Action[AuthParams, User] {
	return NewAction[AuthParams, User](c.SignUp)
}

func NewOtpAction(c *Controller) *Action[OtpParams, bool] {
	return NewAction[OtpParams, bool](c.VerifyOtp)
}

func NewResetPasswordAction(c *Controller) *Action[ResetPasswordParams, any] {
	return NewAction[ResetPasswordParams, any](c.ResetPassword)
}

func NewUpdatePasswordAction(c *Controller) *Action[UpdatePasswordParams, any] {
	return NewAction[UpdatePasswordParams, any](c.UpdatePassword)
}

// WithValidator checks params before every Run. A failing check is
// recorded like any other error and the action is not invoked.
// ValidateOtpParams and friends fit here.
func (a *Action[P, R]) WithValidator(validate func(P) error) *Action[P, R] {
	a.mu.Lock()
	a.validate = validate
	a.mu.Unlock()
	return a
}

// Run invokes the action. The result and error are returned unchanged and
// also kept in State.
func (a *Action[P, R]) Run(ctx context.Context, params P, opts AuthOptions) (R, error) {
	a.mu.Lock()
	validate := a.validate
	a.mu.Unlock()

	if validate != nil {
		if err := validate(params); err != nil {
			var zero R
			a.mu.Lock()
			a.state = ActionState[R]{Err: err}
			a.mu.Unlock()
			return zero, err
		}
	}

	a.mu.Lock()
	a.state.Loading = true
	a.state.Err = nil
	a.mu.Unlock()

	data, err := a.fn(ctx, params, opts)

	a.mu.Lock()
	a.state.Loading = false
	a.state.Err = err
	a.state.Data = data
	a.mu.Unlock()

	return data, err
}

// State returns the tracked state of the last run
func (a *Action[P, R]) State() ActionState[R] {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.state
}

// Reset clears the tracked state
func (a *Action[P, R]) Reset() {
	a.mu.Lock()
	a.state = ActionState[R]{}
	a.mu.Unlock()
}
