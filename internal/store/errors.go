package store

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned by lookups for an id that has no row. It is an
// expected absence signal, not a failure of the store.
var ErrNotFound = errors.New("pokemon not found")

// ConstraintViolation reports a row the store rejected, typically because a
// foreign key did not resolve. The failed table's transaction has been rolled
// back when this error surfaces, so no partial table remains.
type ConstraintViolation struct {
	Table string
	Row   any
	Err   error
}

func (e *ConstraintViolation) Error() string {
	return fmt.Sprintf("constraint violation in table %s (row %+v): %v", e.Table, e.Row, e.Err)
}

func (e *ConstraintViolation) Unwrap() error {
	return e.Err
}
