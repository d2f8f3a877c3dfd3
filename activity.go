package authstate

import (
	"context"
	"time"
)

// ActivityEventType names a session transition reported to an ActivitySink
type ActivityEventType string

const (
	ActivityEventSignup          ActivityEventType = "auth.signup"
	ActivityEventLogin           ActivityEventType = "auth.login"
	ActivityEventLogout          ActivityEventType = "auth.logout"
	ActivityEventAuthenticated   ActivityEventType = "auth.state.authenticated"
	ActivityEventUnauthenticated ActivityEventType = "auth.state.unauthenticated"
	ActivityEventTokenCheckError ActivityEventType = "auth.token.check_failed"
	ActivityEventUserLoaded      ActivityEventType = "auth.user.loaded"
	ActivityEventUserMissing     ActivityEventType = "auth.user.missing"
	ActivityEventUserLoadError   ActivityEventType = "auth.user.load_failed"
)

// ActivityEvent describes one transition of a controller's session.
// UserID is empty until a profile has been loaded.
type ActivityEvent struct {
	EventType    ActivityEventType
	ControllerID string
	UserID       string
	Err          error
	Metadata     map[string]any
	OccurredAt   time.Time
}

// ActivitySink receives session transitions. Record runs synchronously on
// the goroutine that caused the transition, failures are only logged.
type ActivitySink interface {
	Record(ctx context.Context, event ActivityEvent) error
}

// ActivitySinkFunc lets a plain function act as an ActivitySink
type ActivitySinkFunc func(ctx context.Context, event ActivityEvent) error

func (f ActivitySinkFunc) Record(ctx context.Context, event ActivityEvent) error {
	if f == nil {
		return nil
	}
	return f(ctx, event)
}

type noopActivitySink struct{}

func (noopActivitySink) Record(context.Context, ActivityEvent) error {
	return nil
}

func normalizeActivitySink(s ActivitySink) ActivitySink {
	if s == nil {
		return noopActivitySink{}
	}
	return s
}
