package distance

import (
	"errors"
	"fmt"
)

// Common errors.
var (
	ErrUnknownVariant = errors.New("unknown distance table variant")
	ErrTableNotFound  = errors.New("distance table not found")
	ErrInvalidTable   = errors.New("invalid distance table")
)

// TableError describes a failure to load a distance table.
type TableError struct {
	Source string // File path or embedded table name
	Err    error
}

// Error implements the error interface.
func (e *TableError) Error() string {
	return fmt.Sprintf("distance table %q: %v", e.Source, e.Err)
}

// Unwrap returns the underlying error.
func (e *TableError) Unwrap() error {
	return e.Err
}
