package authstate

import "time"

// Option customizes controller construction.
type Option func(*Controller)

// WithLogger overrides the logger used for background failures.
func WithLogger(logger Logger) Option {
	return func(c *Controller) {
		if logger != nil {
			c.logger = logger
			c.loggerSet = true
		}
	}
}

// WithActivitySink sets the ActivitySink used to publish state events.
func WithActivitySink(sink ActivitySink) Option {
	return func(c *Controller) {
		c.activitySink = normalizeActivitySink(sink)
	}
}

// WithClock injects a custom clock (useful for tests).
func WithClock(clock func() time.Time) Option {
	return func(c *Controller) {
		if clock != nil {
			c.now = clock
		}
	}
}

// WithFocusSource registers host signals that trigger token revalidation
// while the controller is mounted.
func WithFocusSource(sources ...FocusSource) Option {
	return func(c *Controller) {
		for _, src := range sources {
			if src != nil {
				c.focusSources = append(c.focusSources, src)
			}
		}
	}
}

// WithRevalidateOnFocus toggles focus driven revalidation. Enabled by default.
func WithRevalidateOnFocus(enabled bool) Option {
	return func(c *Controller) {
		c.revalidateOnFocus = enabled
	}
}

// WithLoadOnMount toggles the initial LoadUser run by Mount. Enabled by default.
func WithLoadOnMount(enabled bool) Option {
	return func(c *Controller) {
		c.loadOnMount = enabled
	}
}

// WithConfig applies a loaded Config. A positive RevalidateInterval adds an
// IntervalFocus source. The configured log settings only apply when no
// logger was given through WithLogger, regardless of option order.
func WithConfig(cfg Config) Option {
	return func(c *Controller) {
		c.revalidateOnFocus = cfg.RevalidateOnFocus
		c.loadOnMount = cfg.LoadOnMount
		if cfg.RevalidateInterval > 0 {
			c.focusSources = append(c.focusSources, IntervalFocus(cfg.RevalidateInterval))
		}
		if !c.loggerSet && (cfg.Log.Level != "" || cfg.Log.Format != "") {
			c.logger = NewLogger(cfg.Log)
		}
	}
}
