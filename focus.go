package authstate

import (
	"sync"
	"time"
)

// FocusSource delivers "host regained focus" signals. Subscribe must
// return a function that stops delivery.
type FocusSource interface {
	Subscribe(fn func()) (unsubscribe func())
}

// FocusFunc adapts a function to the FocusSource interface.
type FocusFunc func(fn func()) (unsubscribe func())

// Subscribe implements FocusSource.
func (f FocusFunc) Subscribe(fn func()) func() {
	if f == nil {
		return func() {}
	}
	unsubscribe := f(fn)
	if unsubscribe == nil {
		return func() {}
	}
	return unsubscribe
}

// ChannelFocus turns every receive on ch into a focus signal. Delivery
// stops when ch is closed or the subscription is removed.
func ChannelFocus(ch <-chan struct{}) FocusSource {
	return FocusFunc(func(fn func()) func() {
		return pump(fn, func(stop <-chan struct{}) bool {
			select {
			case <-stop:
				return false
			case _, ok := <-ch:
				return ok
			}
		})
	})
}

// IntervalFocus emits a focus signal every d. Useful for hosts without a
// focus notion that still want sessions revalidated periodically.
func IntervalFocus(d time.Duration) FocusSource {
	return FocusFunc(func(fn func()) func() {
		if d <= 0 {
			return func() {}
		}
		ticker := time.NewTicker(d)
		unsubscribe := pump(fn, func(stop <-chan struct{}) bool {
			select {
			case <-stop:
				return false
			case <-ticker.C:
				return true
			}
		})
		return func() {
			unsubscribe()
			ticker.Stop()
		}
	})
}

// pump runs fn each time wait returns true, on its own goroutine.
// The returned function stops the loop and waits for it to exit, so it
// must not be called from inside fn.
func pump(fn func(), wait func(stop <-chan struct{}) bool) func() {
	stop := make(chan struct{})
	done := make(chan struct{})

	go func() {
		defer close(done)
		for wait(stop) {
			select {
			case <-stop:
				return
			default:
			}
			fn()
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() {
			close(stop)
			<-done
		})
	}
}
