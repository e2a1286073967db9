package repository

import (
	"errors"
	"fmt"
)

var (
	// ErrBookNotFound means no book matches the requested id
	ErrBookNotFound = errors.New("book not found")
	// ErrStoreUnavailable wraps any failure talking to the database
	ErrStoreUnavailable = errors.New("book store unavailable")
)

// storeError tags a driver error as ErrStoreUnavailable while keeping the
// original cause reachable through errors.Is / errors.As
func storeError(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, ErrStoreUnavailable, err)
}
