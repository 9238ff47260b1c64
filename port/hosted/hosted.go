// Package hosted is the Port implementation for hosted operating systems: a
// plain mutex critical section, the OS monotonic clock as a microsecond
// counter, a sync.Pool-backed allocator (the same pooling idiom the teacher
// library uses for its queue nodes), and an OS-specific idle waiter bounded
// by the next scheduled timer.
package hosted

import (
	"sync"
	"time"
	"unsafe"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/xiaoapeng/go-eventhub/config"
	"github.com/xiaoapeng/go-eventhub/eh"
	"github.com/xiaoapeng/go-eventhub/port"
	"github.com/xiaoapeng/go-eventhub/timer"
)

type idleWaiter interface {
	// Wait blocks for at most budget (timer.Forever means indefinitely),
	// returning early if Break was called.
	Wait(budget time.Duration) error
	Break()
	Close() error
}

type Port struct {
	critMu sync.Mutex

	arenaMu sync.Mutex
	arenas  map[unsafe.Pointer]*arena
	pool    sync.Pool

	idle idleWaiter
}

type arena struct {
	buf []byte
}

const clocksPerSec = 1_000_000 // microsecond ticks, matching the original linux platform port

var bootTime = time.Now()

// New builds a hosted Port from cfg. It does not register itself; call
// Register to do that once construction succeeds.
func New(cfg config.Runtime) (*Port, error) {
	p := &Port{arenas: make(map[unsafe.Pointer]*arena)}
	p.pool.New = func() any { return new(arena) }

	idle, err := newIdleWaiter(cfg)
	if err != nil {
		return nil, errors.Wrap(err, "hosted: failed to initialise idle waiter")
	}
	p.idle = idle
	return p, nil
}

// Register installs p as the active eh port and as an eh module, so
// GlobalInit/GlobalExit drive its teardown through the same ordered
// registry the coroutine backend and other pluggable collaborators use.
func Register(p *Port) {
	port.Register(p)
	eh.RegisterModule("port/hosted", func() error {
		log.Debug().Msg("hosted: port module init")
		return nil
	}, func() {
		if err := p.Close(); err != nil {
			log.Warn().Err(err).Msg("hosted: port module exit: close failed")
		}
	})
}

func (p *Port) EnterCritical() uint32 {
	p.critMu.Lock()
	return 0
}

func (p *Port) ExitCritical(uint32) {
	p.critMu.Unlock()
}

func (p *Port) ClocksPerSec() uint64 { return clocksPerSec }

func (p *Port) ClockMonotonic() uint64 {
	return uint64(monotonicNowMicros())
}

func (p *Port) IdleOrExternEventHandler() {
	budget := timer.IdleTime()
	if err := p.idle.Wait(budget); err != nil {
		log.Warn().Err(err).Msg("hosted: idle wait error")
	}
}

func (p *Port) IdleBreak() {
	p.idle.Break()
}

func (p *Port) Malloc(size uintptr) (unsafe.Pointer, error) {
	if size == 0 {
		return nil, nil
	}
	a := p.pool.Get().(*arena)
	if uintptr(cap(a.buf)) < size {
		a.buf = make([]byte, size)
	} else {
		a.buf = a.buf[:size]
		for i := range a.buf {
			a.buf[i] = 0
		}
	}
	ptr := unsafe.Pointer(&a.buf[0])
	p.arenaMu.Lock()
	p.arenas[ptr] = a
	p.arenaMu.Unlock()
	return ptr, nil
}

func (p *Port) Free(ptr unsafe.Pointer) {
	if ptr == nil {
		return
	}
	p.arenaMu.Lock()
	a, ok := p.arenas[ptr]
	delete(p.arenas, ptr)
	p.arenaMu.Unlock()
	if ok {
		p.pool.Put(a)
	}
}

// Close releases OS resources held by the idle waiter (the epoll fd and
// eventfd on Linux).
func (p *Port) Close() error {
	return p.idle.Close()
}
