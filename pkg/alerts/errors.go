package alerts

import (
	"fmt"
	"sort"
	"strings"

	"github.com/pkg/errors"
)

var (
	ErrDuplicateID       = errors.New("alert id already exists")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrInvalidStatus     = errors.New("unknown alert status")
	ErrStoreClosed       = errors.New("alert store is closed")
)

// ValidationError reports a malformed payload or request. Nothing is
// persisted when it is returned.
type ValidationError struct {
	Issues map[string][]string
	Err    error
}

func (e *ValidationError) Error() string {
	var parts []string
	if e.Err != nil {
		parts = append(parts, e.Err.Error())
	}
	fields := make([]string, 0, len(e.Issues))
	for field := range e.Issues {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	for _, field := range fields {
		parts = append(parts, fmt.Sprintf("%s: %s", field, strings.Join(e.Issues[field], ", ")))
	}
	if len(parts) == 0 {
		return "validation error"
	}
	return "validation error: " + strings.Join(parts, "; ")
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// StorageError wraps a failure of the persistence layer. It is never retried
// here; callers decide.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage error: %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

func (e *StorageError) Cause() error {
	return errors.Cause(e.Err)
}

func newStorageError(op string, err error) *StorageError {
	return &StorageError{Op: op, Err: errors.WithStack(err)}
}

func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

func IsStorageError(err error) bool {
	var se *StorageError
	return errors.As(err, &se)
}
