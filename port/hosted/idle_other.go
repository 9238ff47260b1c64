//go:build !linux

package hosted

import (
	"time"

	"github.com/xiaoapeng/go-eventhub/config"
)

// channelIdleWaiter is the portable fallback idle waiter for hosted builds
// on operating systems without an epoll/eventfd pair. It replaces the
// Linux path's eventfd wakeup with a plain channel, sized
// 1 so Break is idempotent without blocking a caller that races ahead of
// Wait.
type channelIdleWaiter struct {
	brk chan struct{}
}

func newIdleWaiter(_ config.Runtime) (idleWaiter, error) {
	return &channelIdleWaiter{brk: make(chan struct{}, 1)}, nil
}

func (w *channelIdleWaiter) Wait(budget time.Duration) error {
	if budget < 0 {
		<-w.brk
		return nil
	}
	t := time.NewTimer(budget)
	defer t.Stop()
	select {
	case <-w.brk:
	case <-t.C:
	}
	return nil
}

func (w *channelIdleWaiter) Break() {
	select {
	case w.brk <- struct{}{}:
	default:
	}
}

func (w *channelIdleWaiter) Close() error { return nil }

func monotonicNowMicros() int64 {
	return time.Since(bootTime).Microseconds()
}
