package eh

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/xiaoapeng/go-eventhub/event"
	"github.com/xiaoapeng/go-eventhub/port"
)

// State is one of the four task lifecycle states. A task is a member of
// exactly one scheduling list at a time: Ready/Running tasks sit in the
// ready ring, Wait tasks in the wait list, Finish tasks in the finish list.
type State int

const (
	StateReady State = iota
	StateRunning
	StateWait
	StateFinish
)

func (s State) String() string {
	switch s {
	case StateReady:
		return "ready"
	case StateRunning:
		return "running"
	case StateWait:
		return "wait"
	case StateFinish:
		return "finish"
	default:
		return "unknown"
	}
}

type wakeReason int

const (
	wakeReasonNone wakeReason = iota
	wakeReasonTimeout
	wakeReasonCancel
)

// Task is a single coroutine: its own parked task-goroutine (ctx), its
// scheduling-list membership (prev/next), and the bookkeeping TaskJoin and
// the event layer need to observe it finish.
type Task struct {
	Name string
	ID   uuid.UUID

	stack      []byte
	stackOwned bool

	entry    func(arg any) int
	entryArg any
	result   int

	ctx *taskContext

	state  State
	reason wakeReason

	prev, next *Task

	doneEvent *event.Event
}

// State reports the task's current lifecycle state.
func (t *Task) State() State { return t.state }

// Result reports the value the task's entry returned, or the value it
// passed to TaskExit. Valid once State() == StateFinish.
func (t *Task) Result() int { return t.result }

// Wake implements event.Waiter so a *Task can be registered directly as a
// waiter on an *event.Event.
func (t *Task) Wake() { TaskWake(t) }

func taskEntryTrampoline(t *Task) func(first any) {
	return func(first any) {
		_ = first
		result := t.entry(t.entryArg)

		state := port.ActiveOrPanic().EnterCritical()
		t.result = result
		t.state = StateFinish
		port.ActiveOrPanic().ExitCritical(state)

		t.doneEvent.Notify()
		log.Debug().Str("task", t.Name).Int("result", result).Msg("eh: task finished")

		// Reschedule away permanently; this call never returns because
		// nothing will ever swap back into a Finish task's context.
		_ = taskNext()
	}
}

func taskCreateStack(name string, isStatic bool, stack []byte, entry func(any) int, arg any) (*Task, error) {
	if entry == nil {
		return nil, newError(InvalidParameter, "entry function must not be nil")
	}
	t := &Task{
		Name:       name,
		ID:         uuid.New(),
		stack:      stack,
		stackOwned: !isStatic,
		entry:      entry,
		entryArg:   arg,
		state:      StateWait,
		doneEvent:  event.New(name + ".done"),
	}
	ringInitSingle(t)

	lo, hi := stackBounds(stack)
	ctx, err := newTaskContext(lo, hi, taskEntryTrampoline(t))
	if err != nil {
		return nil, err
	}
	t.ctx = ctx

	log.Debug().Str("task", name).Str("id", t.ID.String()).Int("stack_bytes", len(stack)).Msg("eh: task created")
	// t.state == StateWait and t is not yet linked into the wait list (its
	// ring pointers still form the self-loop ringInitSingle left it in),
	// which is exactly the shape TaskWake's list removal treats as a no-op.
	// This mirrors the original's use of a detached, self-linked list node
	// to fold "first schedule" into the same code path as "woken from wait".
	TaskWake(t)
	return t, nil
}

// TaskCreate allocates a stackSize-byte stack from the active port and
// starts a new task running entry(arg). The task begins Ready, spliced into
// the ready ring immediately after the calling task.
func TaskCreate(name string, stackSize uint32, arg any, entry func(any) int) (*Task, error) {
	stack, err := allocStack(stackSize)
	if err != nil {
		return nil, errors.Wrap(err, "eh: task create")
	}
	t, err := taskCreateStack(name, false, stack, entry, arg)
	if err != nil {
		freeStack(stack)
		return nil, err
	}
	return t, nil
}

// TaskCreateStatic starts a new task using a caller-owned stack buffer. The
// buffer is never freed by the runtime; TaskDestroy leaves it untouched.
func TaskCreateStatic(name string, stack []byte, arg any, entry func(any) int) (*Task, error) {
	return taskCreateStack(name, true, stack, entry, arg)
}

// TaskSelf returns the task currently running.
func TaskSelf() *Task { return rt.current }

// TaskDestroy removes a Finish (or Wait/ready) task from every scheduling
// list it could be a member of, cleans its done event, and frees its stack
// if the runtime owns it. Destroying the currently running task, or a task
// still racing its own finish transition, is the caller's mistake to avoid.
func TaskDestroy(t *Task) { destroyTask(t) }

func destroyTask(t *Task) {
	t.doneEvent.Clean()
	state := port.ActiveOrPanic().EnterCritical()
	switch t.state {
	case StateFinish:
		rt.finishList.remove(t)
	case StateWait:
		rt.waitList.remove(t)
	default:
		ringRemove(t)
	}
	port.ActiveOrPanic().ExitCritical(state)
	if t.stackOwned {
		freeStack(t.stack)
	}
}

// TaskExit marks the calling task Finish with the given result and
// reschedules. Calling it from the main task is a no-op, matching the
// original's refusal to let the main task finish by this path; stop the
// loop with LoopExit instead.
func TaskExit(result int) {
	if rt.current == rt.main {
		return
	}
	state := port.ActiveOrPanic().EnterCritical()
	rt.current.result = result
	rt.current.state = StateFinish
	port.ActiveOrPanic().ExitCritical(state)
	rt.current.doneEvent.Notify()
	_ = taskNext()
}

// TaskJoin blocks the calling task until task finishes, then reaps it and
// returns its result. A zero or negative timeout other than Forever is
// treated as "already elapsed": TaskJoin will still check once before
// giving up. ctx, if non-nil, is an additional cancellation source layered
// on top of the original's single timeout parameter.
func TaskJoin(ctx context.Context, task *Task, timeout time.Duration) (int, error) {
	if task == nil {
		return 0, newError(InvalidParameter, "task must not be nil")
	}
	if rt.state != stateExit {
		predicate := func() bool { return task.state == StateFinish }
		if err := waitConditionTimeout(ctx, task.doneEvent, rt.current, predicate, timeout); err != nil {
			return 0, err
		}
	}
	result := task.result
	destroyTask(task)
	return result, nil
}
