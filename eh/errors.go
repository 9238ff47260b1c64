package eh

import (
	"fmt"

	"github.com/pkg/errors"
)

// Kind categorizes a core-level error, mirroring the original signed
// error-code convention (0 == ok, every error a distinct negative code).
type Kind int

const (
	_ Kind = iota
	// MallocError means the active port's allocator (or the stack region
	// supplied to TaskCreateStatic) could not satisfy a request.
	MallocError
	// SchedulingError means TaskNext found no other task in the ready ring
	// to switch to.
	SchedulingError
	// InvalidParameter means a caller-supplied argument failed validation.
	InvalidParameter
	// Timeout means a bounded wait (TaskJoin, event.WaitConditionTimeout)
	// elapsed before its condition became true.
	Timeout
)

func (k Kind) String() string {
	switch k {
	case MallocError:
		return "malloc error"
	case SchedulingError:
		return "scheduling error"
	case InvalidParameter:
		return "invalid parameter"
	case Timeout:
		return "timeout"
	default:
		return fmt.Sprintf("unknown error kind(%d)", int(k))
	}
}

// Error is the core's own error type. Errors originating from collaborators
// (the port, the allocator) are wrapped with errors.Wrap rather than
// reconstructed as *Error, so errors.Is/errors.As still reach the original.
type Error struct {
	Kind Kind
	msg  string
}

func (e *Error) Error() string {
	if e.msg == "" {
		return e.Kind.String()
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.msg)
}

// Is lets errors.Is(err, eh.ErrTimeout) succeed through wrapping without
// requiring exact pointer identity.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

func newError(kind Kind, format string, args ...any) error {
	return errors.WithStack(&Error{Kind: kind, msg: fmt.Sprintf(format, args...)})
}

// Sentinel errors for errors.Is comparisons against Kind alone.
var (
	ErrMalloc     error = &Error{Kind: MallocError}
	ErrScheduling error = &Error{Kind: SchedulingError}
	ErrInvalidArg error = &Error{Kind: InvalidParameter}
	ErrTimeout    error = &Error{Kind: Timeout}
)
