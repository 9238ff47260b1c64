//go:build eh_pendsv

package eh

import "github.com/rs/zerolog/log"

// taskContext is the pended-swap variant: every handoff is queued to a
// single dispatcher goroutine rather than performed inline on the caller,
// the software analogue of PendSV_Handler in the interrupt-driven ARMv8-M
// rendering. It costs an extra hop of latency in exchange for every handoff
// passing through one well-known goroutine, which is the property builds
// targeting a pended-interrupt model actually want to preserve.
type taskContext struct {
	ch chan any
}

const minStackFrame = 64

type pendRequest struct {
	arg  any
	to   *taskContext
	done chan struct{}
}

var pendQueue = make(chan pendRequest)

func init() {
	RegisterModule("eh/context-pend-dispatcher", pendDispatcherInit, pendDispatcherExit)
}

var pendStop chan struct{}

func pendDispatcherInit() error {
	pendStop = make(chan struct{})
	go pendDispatcherLoop(pendStop)
	log.Debug().Msg("eh: pended context-switch dispatcher started")
	return nil
}

func pendDispatcherExit() {
	close(pendStop)
}

func pendDispatcherLoop(stop chan struct{}) {
	for {
		select {
		case req := <-pendQueue:
			req.to.ch <- req.arg
			close(req.done)
		case <-stop:
			return
		}
	}
}

func newTaskContext(stackLo, stackHi uintptr, trampoline func(first any)) (*taskContext, error) {
	if stackHi < stackLo || stackHi-stackLo < minStackFrame {
		return nil, newError(MallocError, "stack region of %d bytes is too small for the initial frame", stackHi-stackLo)
	}
	ctx := &taskContext{ch: make(chan any)}
	go func() {
		first := <-ctx.ch
		trampoline(first)
		select {}
	}()
	return ctx, nil
}

func swapContext(arg any, from, to *taskContext) any {
	done := make(chan struct{})
	pendQueue <- pendRequest{arg: arg, to: to, done: done}
	<-done
	return <-from.ch
}
