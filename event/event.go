// Package event provides the runtime's external notify/wait primitive. It
// deliberately has no dependency on the scheduler: an Event only ever sees
// its waiters through the Waiter interface, and WaitConditionTimeout's
// actual suspension is supplied by the caller's block closure. This keeps
// the scheduler (which needs an *Event on every Task) and this package from
// forming an import cycle.
package event

import "sync"

// Event is a multi-waiter notification point. Unlike a condition variable,
// Notify does not require the caller to hold any lock associated with the
// predicate it represents — predicates are plain closures evaluated by
// WaitConditionTimeout's caller.
type Event struct {
	name    string
	waiters *waiterQueue

	mu     sync.Mutex
	closed bool
}

// New creates an Event for diagnostic/log purposes named name.
func New(name string) *Event {
	return &Event{name: name, waiters: newWaiterQueue()}
}

// Clean marks the event closed. Calling AddWaiter or Notify after Clean is a
// caller error; Clean itself is safe to call more than once.
func (e *Event) Clean() {
	e.mu.Lock()
	e.closed = true
	e.mu.Unlock()
}

// AddWaiter registers w to be woken by the next Notify. A waiter that gives
// up waiting before any Notify arrives (e.g. its own timeout fires first)
// is simply dropped the next time Notify drains the queue — Wake on a
// waiter that has already moved on must be a harmless no-op.
func (e *Event) AddWaiter(w Waiter) {
	e.waiters.enqueue(w)
}

// Notify wakes every waiter currently registered, draining the queue.
func (e *Event) Notify() {
	for {
		w := e.waiters.dequeue()
		if w == nil {
			return
		}
		w.Wake()
	}
}

// WaitConditionTimeout blocks, by repeatedly invoking block, until
// predicate reports true. self is re-registered on ev before every call to
// block so a concurrent Notify can always reach it; block is responsible
// for all deadline/cancellation bookkeeping (the scheduler supplies a
// closure that tracks a single absolute deadline across the whole call, not
// a fresh one per iteration) and returns a non-nil error when it gives up
// without predicate becoming true.
func WaitConditionTimeout(ev *Event, self Waiter, predicate func() bool, block func() error) error {
	for !predicate() {
		ev.AddWaiter(self)
		if err := block(); err != nil {
			return err
		}
	}
	return nil
}
