package authstate

import (
	"github.com/goliatone/go-router"
)

// DefaultLocalsKey is where Middleware stores the controller in the router locals
const DefaultLocalsKey = "auth_state"

// MiddlewareConfig configures Middleware
type MiddlewareConfig struct {
	// LocalsKey overrides DefaultLocalsKey
	LocalsKey string
	// StateKey, when set, also stores the State snapshot in the locals so
	// templates can read it
	StateKey string
}

// Middleware exposes the controller to downstream handlers through the
// standard context (see FromContext) and the router locals.
func Middleware(c *Controller, config ...MiddlewareConfig) router.MiddlewareFunc {
	var cfg MiddlewareConfig
	if len(config) > 0 {
		cfg = config[0]
	}
	if cfg.LocalsKey == "" {
		cfg.LocalsKey = DefaultLocalsKey
	}

	return func(hf router.HandlerFunc) router.HandlerFunc {
		return func(ctx router.Context) error {
			ctx.Locals(cfg.LocalsKey, c)
			if cfg.StateKey != "" {
				ctx.Locals(cfg.StateKey, c.State())
			}
			ctx.SetContext(WithController(ctx.Context(), c))
			return hf(ctx)
		}
	}
}

// FromRouterContext extracts the controller from the router locals
func FromRouterContext(ctx router.Context, key string) (*Controller, bool) {
	if key == "" {
		key = DefaultLocalsKey
	}
	raw := ctx.Locals(key)
	if raw == nil {
		return nil, false
	}
	c, ok := raw.(*Controller)
	return c, ok
}
