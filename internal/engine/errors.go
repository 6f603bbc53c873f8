package engine

import (
	"errors"
	"fmt"
)

// BudgetError reports a memory budget too small to hold even one
// element, which would make run generation loop forever. It signals a
// misconfigured ram_limit, not a runtime fault.
type BudgetError struct {
	RAMLimit uint64 // configured budget in bytes
	Width    int    // element width in bytes
}

func (e *BudgetError) Error() string {
	return fmt.Sprintf("engine: ram limit of %d bytes cannot hold a single %d-byte element", e.RAMLimit, e.Width)
}

// IsBudgetError reports whether err is (or wraps) a BudgetError.
func IsBudgetError(err error) bool {
	var be *BudgetError
	return errors.As(err, &be)
}
