package eh

import (
	"unsafe"

	"github.com/xiaoapeng/go-eventhub/port"
)

// stackBounds reports the advisory [lo, hi) address range of a Go-managed
// stack buffer, the accounting equivalent of the raw stack_lim/stack_top
// pair the original coroutine backend carves out of a caller-owned region.
// Go grows each task-goroutine's real stack itself; these bounds exist only
// so newTaskContext can apply the same minimum-frame-size check the
// original does.
func stackBounds(stack []byte) (lo, hi uintptr) {
	if len(stack) == 0 {
		return 0, 0
	}
	lo = uintptr(unsafe.Pointer(&stack[0]))
	hi = lo + uintptr(len(stack))
	return lo, hi
}

func allocStack(size uint32) ([]byte, error) {
	p := port.Active()
	if p == nil {
		return nil, newError(MallocError, "no platform port registered")
	}
	ptr, err := p.Malloc(uintptr(size))
	if err != nil {
		return nil, err
	}
	if ptr == nil {
		return nil, newError(MallocError, "allocation of %d bytes failed", size)
	}
	return unsafe.Slice((*byte)(ptr), size), nil
}

func freeStack(stack []byte) {
	if len(stack) == 0 {
		return
	}
	if p := port.Active(); p != nil {
		p.Free(unsafe.Pointer(&stack[0]))
	}
}
