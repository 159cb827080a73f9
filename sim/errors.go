package sim

import (
	"errors"
	"fmt"
)

// Kernel error taxonomy. All of them are programming or configuration errors:
// the run is aborted and never retried.
var (
	ErrInvalidDelta   = errors.New("negative scheduling delta")
	ErrDeadlock       = errors.New("event queue drained before the terminal process completed")
	ErrDoubleRelease  = errors.New("resource released without a matching grant")
	ErrInvalidAmount  = errors.New("amount must be positive")
	ErrUnsatisfiable  = errors.New("amount exceeds container capacity")
	errNilProcess     = errors.New("process must not be nil")
	errForeignRequest = errors.New("request belongs to another resource")
)

// SimError ties a kernel error to the component that raised it and the tick it happened at.
type SimError struct {
	Component string
	Tick      int64
	Err       error
}

func (e *SimError) Error() string {
	return fmt.Sprintf("%s at tick %d: %v", e.Component, e.Tick, e.Err)
}

func (e *SimError) Unwrap() error {
	return e.Err
}

func newSimError(component string, tick int64, err error) *SimError {
	return &SimError{Component: component, Tick: tick, Err: err}
}
