package eh

import (
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/xiaoapeng/go-eventhub/event"
	"github.com/xiaoapeng/go-eventhub/timer"
)

type schedulerState int

const (
	stateInit schedulerState = iota
	stateRun
	stateIdleOrEvent
	stateExit
)

type runtimeState struct {
	current *Task
	main    *Task

	waitList   taskList
	finishList taskList

	stopFlag     bool
	loopStopCode int

	state schedulerState
}

var rt runtimeState

// GlobalInit resets the scheduler to a fresh main task and runs every
// registered module's init hook in registration order. A port must already
// be registered (see package port) before calling this.
func GlobalInit() error {
	rt = runtimeState{state: stateInit}
	main := &Task{
		Name:      "main",
		ID:        uuid.New(),
		state:     StateRunning,
		doneEvent: event.New("main.done"),
		// The main task has no trampoline goroutine of its own: whichever
		// real goroutine calls LoopRun/TaskYield/TaskJoin as "main" blocks
		// directly on this channel when swapped away from, and resumes
		// from exactly that point in its own call stack when swapped back
		// into — there is nothing to park ahead of time.
		ctx: &taskContext{ch: make(chan any)},
	}
	ringInitSingle(main)
	rt.current = main
	rt.main = main

	if err := moduleGroupInit(); err != nil {
		return errors.Wrap(err, "eh: global init failed")
	}
	log.Info().Msg("eh: global init complete")
	return nil
}

// GlobalExit drains the finish list, runs every registered module's exit
// hook in reverse registration order, and resets the shared timer wheel.
func GlobalExit() {
	drainFinishList()
	moduleGroupExit()
	timer.Reset()
	log.Info().Msg("eh: global exit complete")
}

func drainFinishList() {
	for {
		t := rt.finishList.head
		if t == nil {
			return
		}
		destroyTask(t)
	}
}
