package reminder

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation marks input rejected before any state change.
	ErrValidation = errors.New("invalid reminder")
	// ErrStorage marks a failure reading or writing the persisted list.
	ErrStorage = errors.New("reminder storage")
)

// ValidationError names the offending field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid reminder: %s %s", e.Field, e.Reason)
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// StorageError wraps the durable store failure behind Op ("read", "decode", "write").
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("reminder storage: %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

func (e *StorageError) Is(target error) bool { return target == ErrStorage }
