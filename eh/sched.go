package eh

import (
	"context"
	"time"

	"github.com/xiaoapeng/go-eventhub/port"
	"github.com/xiaoapeng/go-eventhub/timer"
)

// ringInitSingle makes t a one-element circular list of itself — the same
// "self-linked, detached node" trick the original uses so a brand-new
// task's first wake-up can go through the exact same splice code as a
// genuine wait-list removal.
func ringInitSingle(t *Task) {
	t.prev, t.next = t, t
}

func ringInsertAfter(anchor, t *Task) {
	t.next = anchor.next
	t.prev = anchor
	anchor.next.prev = t
	anchor.next = t
}

func ringRemove(t *Task) {
	t.prev.next = t.next
	t.next.prev = t.prev
	t.prev, t.next = t, t
}

// taskList is a plain FIFO, used for the wait list and the finish list.
// Membership in a taskList and membership in the ready ring share the same
// prev/next fields on Task since a task is only ever in one at a time.
type taskList struct {
	head, tail *Task
}

func (l *taskList) pushTail(t *Task) {
	t.next = nil
	t.prev = l.tail
	if l.tail != nil {
		l.tail.next = t
	} else {
		l.head = t
	}
	l.tail = t
}

// remove is a no-op when t is not actually linked into l (t.prev == t.next
// == t, the self-loop ringInitSingle leaves a task in): both pointer writes
// below become no-ops against t itself, and l.head/l.tail are left alone.
func (l *taskList) remove(t *Task) {
	if t.prev != nil {
		t.prev.next = t.next
	} else {
		l.head = t.next
	}
	if t.next != nil {
		t.next.prev = t.prev
	} else {
		l.tail = t.prev
	}
	t.prev, t.next = t, t
}

// taskNext performs one scheduling step: pick the task after current in the
// ready ring, demote current according to its own state, and swap into the
// new task. The critical section only covers the list bookkeeping — the
// swapContext call that actually hands off control runs outside it, per the
// original design, since a context switch may take arbitrarily long from
// the port's point of view.
func taskNext() error {
	state := port.ActiveOrPanic().EnterCritical()
	cur := rt.current
	if cur.next == cur {
		cur.state = StateRunning
		port.ActiveOrPanic().ExitCritical(state)
		return newError(SchedulingError, "no other task in the ready ring")
	}
	to := cur.next
	rt.current = to

	switch cur.state {
	case StateReady, StateRunning:
		cur.state = StateReady
	case StateWait:
		ringRemove(cur)
		rt.waitList.pushTail(cur)
	case StateFinish:
		ringRemove(cur)
		rt.finishList.pushTail(cur)
	}
	to.state = StateRunning
	port.ActiveOrPanic().ExitCritical(state)

	swapContext(nil, cur.ctx, to.ctx)
	return nil
}

// TaskYield voluntarily gives up the rest of the current task's turn,
// returning to the ready ring to be scheduled again in its turn.
func TaskYield() error {
	return taskNext()
}

// TaskWake moves a Wait task back to Ready, splicing it into the ready ring
// immediately after the currently running task so it is scheduled promptly
// without starving whatever else is already ready. Waking a task that is
// not currently Wait is a no-op — Notify draining a queue of waiters that
// includes some which already gave up relies on this.
func TaskWake(t *Task) {
	state := port.ActiveOrPanic().EnterCritical()
	if t.state != StateWait {
		port.ActiveOrPanic().ExitCritical(state)
		return
	}
	rt.waitList.remove(t)
	t.state = StateReady
	ringInsertAfter(rt.current, t)
	port.ActiveOrPanic().ExitCritical(state)
	port.ActiveOrPanic().IdleBreak()
}

// blockSelf marks the calling task Wait and reschedules, returning once
// something wakes it again. remaining < 0 means wait indefinitely; ctx, if
// non-nil, is an additional wake source (its cancellation wakes the task
// with ctx.Err()).
func blockSelf(ctx context.Context, remaining time.Duration) error {
	t := rt.current

	state := port.ActiveOrPanic().EnterCritical()
	t.state = StateWait
	t.reason = wakeReasonNone
	port.ActiveOrPanic().ExitCritical(state)

	var tm *timer.Timer
	if remaining >= 0 {
		tm = timer.Schedule(time.Now().Add(remaining), func() {
			setWakeReason(t, wakeReasonTimeout)
			TaskWake(t)
		})
	}

	stop := make(chan struct{})
	if ctx != nil && ctx.Done() != nil {
		go func() {
			select {
			case <-ctx.Done():
				setWakeReason(t, wakeReasonCancel)
				TaskWake(t)
			case <-stop:
			}
		}()
	}

	err := taskNext()
	close(stop)
	if tm != nil {
		tm.Cancel()
	}
	if err != nil {
		return err
	}

	switch t.reason {
	case wakeReasonTimeout:
		return ErrTimeout
	case wakeReasonCancel:
		return ctx.Err()
	default:
		return nil
	}
}

func setWakeReason(t *Task, r wakeReason) {
	state := port.ActiveOrPanic().EnterCritical()
	t.reason = r
	port.ActiveOrPanic().ExitCritical(state)
}
