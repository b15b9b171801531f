package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// ErrDecode marks an upload payload that is malformed or not UTF-8 CSV.
	ErrDecode = errors.New("could not parse file")
	// ErrLookupMiss marks a panel that names a file no longer in the session.
	ErrLookupMiss = errors.New("file not found in session")
	// ErrTypeCoercion marks a column that could not be coerced to the requested type.
	ErrTypeCoercion = errors.New("type coercion failed")
	// ErrUnknownRole marks a panel key whose role has no handler.
	ErrUnknownRole = errors.New("unknown panel role")
	// ErrUnknownColumn marks a column name not present in a table.
	ErrUnknownColumn = errors.New("unknown column")
)

// NewDecodeError attaches the filename and reason to ErrDecode
func NewDecodeError(filename string, reason string) error {
	return fmt.Errorf("%w: %s: %s", ErrDecode, filename, reason)
}

// NewLookupMiss attaches the filename to ErrLookupMiss
func NewLookupMiss(filename string) error {
	return fmt.Errorf("%w: %s", ErrLookupMiss, filename)
}

// IsDecodeError checks for ErrDecode in the chain
func IsDecodeError(err error) bool {
	return errors.Is(err, ErrDecode)
}

// IsLookupMiss checks for ErrLookupMiss in the chain
func IsLookupMiss(err error) bool {
	return errors.Is(err, ErrLookupMiss)
}
