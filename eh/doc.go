// Package eh implements a cooperative, single-threaded coroutine runtime:
// one ready ring of runnable tasks, a wait list for blocked tasks, a finish
// list for tasks awaiting reaping, and a module registry that lets platform
// ports and coroutine backends attach themselves without this package
// referencing them by name.
//
// Exactly one task runs at a time. A "context switch" is modelled as
// handing control to another task's parked goroutine and blocking the
// caller's own goroutine until something later hands control back to it —
// see context.go. This keeps the single-active-task scheduling contract of
// the original bare-metal design without requiring a raw stack-pointer swap,
// which Go does not expose.
//
// Callers must register a platform port (see package port) before calling
// GlobalInit; see package port/hosted for a Linux/epoll-backed port and
// port/baremetal for a pluggable interrupt-driven one.
package eh
