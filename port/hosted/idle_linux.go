//go:build linux

package hosted

import (
	"time"

	"github.com/pkg/errors"
	"golang.org/x/sys/unix"

	"github.com/xiaoapeng/go-eventhub/config"
)

// epollIdleWaiter bounds idle waiting with epoll_wait on a single eventfd —
// the same wake-pipe shape as the example pack's event loop poller, reduced
// to the one fd the core's idle-or-event handler actually needs.
type epollIdleWaiter struct {
	epfd   int
	wakeFd int
	events []unix.EpollEvent
}

func newIdleWaiter(cfg config.Runtime) (idleWaiter, error) {
	wakeFd, err := unix.Eventfd(0, unix.EFD_CLOEXEC|unix.EFD_NONBLOCK)
	if err != nil {
		return nil, errors.Wrap(err, "hosted: eventfd")
	}
	epfd, err := unix.EpollCreate1(unix.EPOLL_CLOEXEC)
	if err != nil {
		_ = unix.Close(wakeFd)
		return nil, errors.Wrap(err, "hosted: epoll_create1")
	}
	ev := unix.EpollEvent{Events: unix.EPOLLIN, Fd: int32(wakeFd)}
	if err := unix.EpollCtl(epfd, unix.EPOLL_CTL_ADD, wakeFd, &ev); err != nil {
		_ = unix.Close(wakeFd)
		_ = unix.Close(epfd)
		return nil, errors.Wrap(err, "hosted: epoll_ctl")
	}
	batch := cfg.IdleEpollBatch
	if batch <= 0 {
		batch = 1
	}
	return &epollIdleWaiter{epfd: epfd, wakeFd: wakeFd, events: make([]unix.EpollEvent, batch)}, nil
}

func (w *epollIdleWaiter) Wait(budget time.Duration) error {
	ms := -1
	if budget >= 0 {
		ms = int(budget.Milliseconds())
		if ms == 0 && budget > 0 {
			ms = 1
		}
	}
	_, err := unix.EpollWait(w.epfd, w.events, ms)
	if err != nil && err != unix.EINTR {
		return errors.Wrap(err, "hosted: epoll_wait")
	}
	w.drain()
	return nil
}

func (w *epollIdleWaiter) drain() {
	var buf [8]byte
	for {
		if _, err := unix.Read(w.wakeFd, buf[:]); err != nil {
			return
		}
	}
}

func (w *epollIdleWaiter) Break() {
	var one [8]byte
	one[7] = 1
	_, _ = unix.Write(w.wakeFd, one[:])
}

func (w *epollIdleWaiter) Close() error {
	_ = unix.Close(w.wakeFd)
	return unix.Close(w.epfd)
}

func monotonicNowMicros() int64 {
	var ts unix.Timespec
	_ = unix.ClockGettime(unix.CLOCK_MONOTONIC, &ts)
	return ts.Sec*1_000_000 + ts.Nsec/1000
}
