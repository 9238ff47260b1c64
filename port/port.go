// Package port defines the platform seam the core schedules through: time,
// mutual exclusion, idle waiting, and allocation. Concrete implementations
// live in port/hosted (Linux/epoll-backed) and port/baremetal (pluggable
// interrupt hooks); the core never imports either by name.
package port

import (
	"sync"
	"unsafe"
)

// Port is the platform-specific collaborator the core consumes for
// critical sections, monotonic time, idle handling, and allocation.
type Port interface {
	// EnterCritical disables whatever concurrent interference the platform
	// needs disabled (interrupts on bare metal, a mutex when hosted) and
	// returns an opaque token for the matching ExitCritical.
	EnterCritical() (state uint32)
	ExitCritical(state uint32)

	// ClocksPerSec is the tick rate ClockMonotonic counts in.
	ClocksPerSec() uint64
	// ClockMonotonic returns the current tick count; must never go backwards.
	ClockMonotonic() uint64

	// IdleOrExternEventHandler runs when the ready ring has nothing else to
	// schedule. Implementations should sleep for at most the event loop's
	// current idle budget (see package timer) and return promptly once an
	// external event arrives or IdleBreak is called.
	IdleOrExternEventHandler()
	// IdleBreak asks a blocked IdleOrExternEventHandler to return as soon
	// as possible. Safe to call from any goroutine, including from inside
	// a critical section.
	IdleBreak()

	Malloc(size uintptr) (unsafe.Pointer, error)
	Free(ptr unsafe.Pointer)
}

var (
	mu     sync.RWMutex
	active Port
)

// Register installs the active platform port. Call it once, before
// eh.GlobalInit; registering again replaces the previous port.
func Register(p Port) {
	mu.Lock()
	defer mu.Unlock()
	active = p
}

// Active returns the currently registered port, or nil if none has been
// registered yet.
func Active() Port {
	mu.RLock()
	defer mu.RUnlock()
	return active
}

// ActiveOrPanic returns the currently registered port. The core calls this
// from every scheduling path that cannot proceed without one; reaching it
// with no port registered is a caller setup error, not a runtime condition
// to recover from.
func ActiveOrPanic() Port {
	p := Active()
	if p == nil {
		panic("eh: no platform port registered; call port.Register before eh.GlobalInit")
	}
	return p
}
