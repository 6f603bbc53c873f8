package tape

import (
	"errors"
	"fmt"
)

// ErrClosed reports an operation against a tape whose backing handle has
// been closed.
var ErrClosed = errors.New("tape: backing handle is closed")

// CapacityError reports a bulk transfer whose element count exceeds the
// configured memory budget. It is produced before any I/O takes place
// and usually signals a mismatch between ram_limit and the record width.
type CapacityError struct {
	Op        string // "read" or "write"
	Requested uint64 // elements asked for
	Limit     uint64 // elements the budget allows
	RAMLimit  uint64 // the budget itself, in bytes
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("tape: ram limit exceeded on %s: requested %d elements, budget of %d bytes allows %d",
		e.Op, e.Requested, e.RAMLimit, e.Limit)
}

// IsCapacityError reports whether err is (or wraps) a CapacityError.
func IsCapacityError(err error) bool {
	var ce *CapacityError
	return errors.As(err, &ce)
}
