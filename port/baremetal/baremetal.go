// Package baremetal is a Port implementation shaped for interrupt-driven
// targets (the original's Cortex-M33 platform port): critical sections are
// a single PRIMASK-style disable/restore rather than a mutex, and
// allocation/clock/idle access are all hook functions the embedding build
// supplies, since Go has no portable way to touch interrupt mask registers
// or a hardware tick counter itself.
//
// A real Cortex-M build wires Hooks to its own CMSIS-equivalent primitives
// (disable/enable interrupts, a SysTick-driven monotonic counter, a WFI-based
// idle handler) the same way the original's platform.c does; this package
// only supplies the Port plumbing and the critical-section nesting count
// the original tracks per core.
package baremetal

import (
	"unsafe"

	"github.com/rs/zerolog/log"

	"github.com/xiaoapeng/go-eventhub/eh"
	"github.com/xiaoapeng/go-eventhub/port"
)

// Hooks are the platform primitives a concrete target must supply. A zero
// Hooks is not usable: New returns an error if any field is nil.
type Hooks struct {
	// DisableInterrupts disables interrupts (PRIMASK=1) and returns the
	// prior interrupt-enabled state, mirroring eh_enter_critical's use of
	// __get_PRIMASK/__disable_irq.
	DisableInterrupts func() (wasEnabled bool)
	// RestoreInterrupts restores the interrupt-enabled state EnterCritical
	// observed.
	RestoreInterrupts func(wasEnabled bool)

	// ClockMonotonic reads a free-running hardware tick counter.
	ClockMonotonic func() uint64
	// ClocksPerSec is that counter's tick rate.
	ClocksPerSec uint64

	// Idle is called with nothing runnable; a real target executes WFI
	// (or WFE) here, bounded by whatever timer peripheral the build wires
	// up to fire within the event loop's idle budget.
	Idle func()
	// Break asks a blocked Idle to return promptly — typically by pending
	// a low-priority interrupt.
	Break func()

	// Malloc/Free back the port's allocator. Pass a fixed-pool allocator
	// on targets without a heap.
	Malloc func(size uintptr) (unsafe.Pointer, error)
	Free   func(ptr unsafe.Pointer)
}

type Port struct {
	hooks Hooks

	// nestCount tracks critical-section nesting the same way the original
	// platform port does with a recursive lock: every EnterCritical call
	// disables interrupts, but only the outermost one records the prior
	// interrupt state, and only the matching outermost ExitCritical
	// restores it.
	nestCount    uint32
	wasEnabled   bool
}

// New validates hooks and returns a Port backed by them. It does not
// register itself; call Register once construction succeeds.
func New(hooks Hooks) (*Port, error) {
	switch {
	case hooks.DisableInterrupts == nil, hooks.RestoreInterrupts == nil:
		return nil, eh.ErrInvalidArg
	case hooks.ClockMonotonic == nil, hooks.ClocksPerSec == 0:
		return nil, eh.ErrInvalidArg
	case hooks.Idle == nil, hooks.Break == nil:
		return nil, eh.ErrInvalidArg
	case hooks.Malloc == nil, hooks.Free == nil:
		return nil, eh.ErrInvalidArg
	}
	return &Port{hooks: hooks}, nil
}

// Register installs p as the active eh port and as an eh module.
func Register(p *Port) {
	port.Register(p)
	eh.RegisterModule("port/baremetal", func() error {
		log.Debug().Msg("baremetal: port module init")
		return nil
	}, func() {
		log.Debug().Msg("baremetal: port module exit")
	})
}

// EnterCritical disables interrupts, records the prior interrupt state on
// first entry, and returns the nesting depth observed, so a correctly
// paired ExitCritical only restores interrupts once every nested critical
// section has exited.
func (p *Port) EnterCritical() uint32 {
	wasEnabled := p.hooks.DisableInterrupts()
	p.nestCount++
	if p.nestCount == 1 {
		p.wasEnabled = wasEnabled
	}
	return p.nestCount
}

func (p *Port) ExitCritical(state uint32) {
	_ = state
	p.nestCount--
	if p.nestCount == 0 {
		p.hooks.RestoreInterrupts(p.wasEnabled)
	}
}

func (p *Port) ClocksPerSec() uint64       { return p.hooks.ClocksPerSec }
func (p *Port) ClockMonotonic() uint64     { return p.hooks.ClockMonotonic() }
func (p *Port) IdleOrExternEventHandler()  { p.hooks.Idle() }
func (p *Port) IdleBreak()                 { p.hooks.Break() }

func (p *Port) Malloc(size uintptr) (unsafe.Pointer, error) { return p.hooks.Malloc(size) }
func (p *Port) Free(ptr unsafe.Pointer)                     { p.hooks.Free(ptr) }
