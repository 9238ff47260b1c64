package eh

import (
	"github.com/xiaoapeng/go-eventhub/port"
	"github.com/xiaoapeng/go-eventhub/timer"
)

// LoopRun drives the scheduler until LoopExit is called: check timers,
// advance the ready ring by one task, and — once the ring comes back around
// to the loop's own task and no other task is ready — idle for up to the
// next timer's deadline. It returns the code passed to LoopExit.
func LoopRun() (int, error) {
	rt.state = stateRun
	rt.stopFlag = false
	for {
		timer.Check()
		// taskNext's error (the ring momentarily holding only this task) is
		// the steady state of an event loop whenever every worker is
		// blocked — drop it and fall through to the idle handler, same as
		// eh_loop_run's __await__ eh_task_next() in the original.
		_ = taskNext()
		if rt.stopFlag {
			break
		}
		// Idle only when the loop's own task is alone in the ready ring. A
		// wake that races this check calls IdleBreak, so the idle wait below
		// still returns promptly.
		state := port.ActiveOrPanic().EnterCritical()
		othersReady := rt.current.next != rt.current
		port.ActiveOrPanic().ExitCritical(state)
		if othersReady {
			continue
		}
		rt.state = stateIdleOrEvent
		port.ActiveOrPanic().IdleOrExternEventHandler()
		rt.state = stateRun
	}
	rt.state = stateExit
	return rt.loopStopCode, nil
}

// LoopExit requests the loop stop after its current scheduling pass,
// reporting code as LoopRun's return value.
func LoopExit(code int) {
	rt.loopStopCode = code
	rt.stopFlag = true
	TaskExit(code)
}
