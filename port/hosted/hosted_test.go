package hosted_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/xiaoapeng/go-eventhub/config"
	"github.com/xiaoapeng/go-eventhub/port/hosted"
)

func TestMallocFreeRoundTrip(t *testing.T) {
	p, err := hosted.New(config.Default())
	require.NoError(t, err)
	defer p.Close()

	ptr, err := p.Malloc(128)
	require.NoError(t, err)
	require.NotNil(t, ptr)
	p.Free(ptr)

	// A second allocation of the same size should reuse the pooled arena
	// without erroring.
	ptr2, err := p.Malloc(128)
	require.NoError(t, err)
	require.NotNil(t, ptr2)
	p.Free(ptr2)
}

func TestIdleBreakReturnsWaitPromptly(t *testing.T) {
	p, err := hosted.New(config.Default())
	require.NoError(t, err)
	defer p.Close()

	done := make(chan struct{})
	go func() {
		p.IdleOrExternEventHandler()
		close(done)
	}()

	time.Sleep(5 * time.Millisecond)
	p.IdleBreak()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("IdleBreak did not unblock IdleOrExternEventHandler in time")
	}
}

func TestClockMonotonicNeverGoesBackwards(t *testing.T) {
	p, err := hosted.New(config.Default())
	require.NoError(t, err)
	defer p.Close()

	a := p.ClockMonotonic()
	time.Sleep(time.Millisecond)
	b := p.ClockMonotonic()
	require.GreaterOrEqual(t, b, a)
}
