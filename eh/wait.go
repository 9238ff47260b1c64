package eh

import (
	"context"
	"time"

	"github.com/xiaoapeng/go-eventhub/event"
)

// Forever signals "wait indefinitely" to TaskJoin and WaitEvent.
const Forever time.Duration = -1

// WaitEvent blocks the calling task until predicate is true or timeout
// elapses, registering as a waiter on ev so a concurrent Notify wakes it
// promptly instead of relying on being polled. Forever (the same value as
// timer.Forever) waits indefinitely; any other zero or negative timeout is
// treated as already elapsed, so predicate is checked once before giving
// up. ctx, if non-nil, is an additional cancellation source.
//
// This is the Go rendering of the original's eh_event_wait_condition_timeout:
// event.WaitConditionTimeout supplies the generic retry-until-true loop,
// this function supplies the scheduler-specific pieces (who is waiting, and
// how to actually suspend them) that event deliberately knows nothing about.
func WaitEvent(ctx context.Context, ev *event.Event, predicate func() bool, timeout time.Duration) error {
	return waitConditionTimeout(ctx, ev, rt.current, predicate, timeout)
}

func waitConditionTimeout(ctx context.Context, ev *event.Event, self *Task, predicate func() bool, timeout time.Duration) error {
	// Only Forever means "wait indefinitely" — any other value, including
	// zero or a negative duration, is a deadline that has already elapsed:
	// predicate still gets checked once (WaitConditionTimeout's loop checks
	// it before ever calling block) before giving up.
	hasDeadline := timeout != Forever
	var deadline time.Time
	if hasDeadline {
		deadline = time.Now().Add(timeout)
	}
	block := func() error {
		remaining := time.Duration(-1)
		if hasDeadline {
			remaining = time.Until(deadline)
			if remaining <= 0 {
				return ErrTimeout
			}
		}
		return blockSelf(ctx, remaining)
	}
	return event.WaitConditionTimeout(ev, self, predicate, block)
}
