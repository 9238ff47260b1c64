package timer_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/xiaoapeng/go-eventhub/timer"
)

func TestCheckFiresDueTimersInOrder(t *testing.T) {
	timer.Reset()
	defer timer.Reset()

	var fired []string
	timer.Schedule(time.Now().Add(-2*time.Millisecond), func() { fired = append(fired, "a") })
	timer.Schedule(time.Now().Add(-1*time.Millisecond), func() { fired = append(fired, "b") })
	timer.Schedule(time.Now().Add(time.Hour), func() { fired = append(fired, "c") })

	timer.Check()

	require.Equal(t, []string{"a", "b"}, fired)
}

func TestCancelPreventsFiring(t *testing.T) {
	timer.Reset()
	defer timer.Reset()

	fired := false
	tm := timer.Schedule(time.Now().Add(-time.Millisecond), func() { fired = true })
	tm.Cancel()

	timer.Check()

	require.False(t, fired)
}

func TestIdleTimeReflectsNearestDeadline(t *testing.T) {
	timer.Reset()
	defer timer.Reset()

	require.Equal(t, timer.Forever, timer.IdleTime())

	timer.Schedule(time.Now().Add(50*time.Millisecond), func() {})
	idle := timer.IdleTime()
	require.Greater(t, idle, time.Duration(0))
	require.LessOrEqual(t, idle, 50*time.Millisecond)
}
