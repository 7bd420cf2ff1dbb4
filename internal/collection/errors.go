package collection

import (
	"errors"
	"fmt"
)

// Op names a controller operation for error reporting and telemetry.
type Op string

const (
	OpLoad   Op = "load"
	OpCreate Op = "create"
	OpUpdate Op = "update"
	OpDelete Op = "delete"
)

var (
	// ErrNotFound indicates the record doesn't exist in the source.
	ErrNotFound = errors.New("record not found")
	// ErrInvalidInput indicates a malformed draft or patch.
	ErrInvalidInput = errors.New("invalid record input")
)

// OpError is the failure surfaced to the UI layer: one operation, one
// collection, one human-readable message. The prior collection state is
// always left intact when an OpError is returned.
type OpError struct {
	Op         Op
	Collection string
	Err        error
}

func (e *OpError) Error() string {
	return fmt.Sprintf("%s failed for collection %q: %v", e.Op, e.Collection, e.Err)
}

func (e *OpError) Unwrap() error { return e.Err }

func opError(op Op, collection string, err error) *OpError {
	return &OpError{Op: op, Collection: collection, Err: err}
}
