package kernel

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotWired is matched by every MissingDependenciesError
var ErrNotWired = errors.New("kernel is not fully wired")

// MissingDependenciesError lists the components Validate found unset
type MissingDependenciesError struct {
	Missing []string
}

func (e *MissingDependenciesError) Error() string {
	return fmt.Sprintf("%v: missing %s", ErrNotWired, strings.Join(e.Missing, ", "))
}

func (e *MissingDependenciesError) Unwrap() error {
	return ErrNotWired
}
