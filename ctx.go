package authstate

import "context"

var controllerCtxKey = &contextKey{"auth_state"}

type contextKey struct {
	name string
}

// WithController sets the Controller in the given context
func WithController(ctx context.Context, c *Controller) context.Context {
	return context.WithValue(ctx, controllerCtxKey, c)
}

// FromContext finds the controller from the context.
func FromContext(ctx context.Context) (*Controller, bool) {
	if ctx == nil {
		return nil, false
	}
	c, ok := ctx.Value(controllerCtxKey).(*Controller)
	return c, ok && c != nil
}

// MustFromContext returns the controller from the context and panics when
// there is none. Reading auth state outside a controller scope is a
// programming error.
func MustFromContext(ctx context.Context) *Controller {
	c, ok := FromContext(ctx)
	if !ok {
		panic(ErrControllerMissing)
	}
	return c
}

// StateFromContext returns the session snapshot of the scoped controller
func StateFromContext(ctx context.Context) State {
	return MustFromContext(ctx).State()
}

// CurrentUser returns the loaded user of the scoped controller, nil if none
func CurrentUser(ctx context.Context) User {
	return MustFromContext(ctx).State().User
}
