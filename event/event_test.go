package event_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/xiaoapeng/go-eventhub/event"
)

type fakeWaiter struct {
	woken int
}

func (w *fakeWaiter) Wake() { w.woken++ }

func TestNotifyWakesAllRegisteredWaiters(t *testing.T) {
	ev := event.New("test")
	a, b := &fakeWaiter{}, &fakeWaiter{}
	ev.AddWaiter(a)
	ev.AddWaiter(b)

	ev.Notify()

	require.Equal(t, 1, a.woken)
	require.Equal(t, 1, b.woken)
}

func TestNotifyOnEmptyQueueIsANoOp(t *testing.T) {
	ev := event.New("test")
	require.NotPanics(t, ev.Notify)
}

func TestWaitConditionTimeoutReturnsImmediatelyWhenAlreadyTrue(t *testing.T) {
	ev := event.New("test")
	calls := 0
	block := func() error {
		calls++
		return nil
	}
	err := event.WaitConditionTimeout(ev, &fakeWaiter{}, func() bool { return true }, block)
	require.NoError(t, err)
	require.Zero(t, calls)
}

func TestWaitConditionTimeoutLoopsUntilPredicateOrError(t *testing.T) {
	ev := event.New("test")
	calls := 0
	satisfied := false
	predicate := func() bool { return satisfied }
	block := func() error {
		calls++
		if calls == 2 {
			satisfied = true
		}
		return nil
	}
	err := event.WaitConditionTimeout(ev, &fakeWaiter{}, predicate, block)
	require.NoError(t, err)
	require.Equal(t, 2, calls)
}

func TestWaitConditionTimeoutPropagatesBlockError(t *testing.T) {
	ev := event.New("test")
	wantErr := errors.New("timed out")
	err := event.WaitConditionTimeout(ev, &fakeWaiter{}, func() bool { return false }, func() error { return wantErr })
	require.ErrorIs(t, err, wantErr)
}
