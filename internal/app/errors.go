package app

import (
	"errors"
	"fmt"
)

// ErrNoPages is returned when nothing is left to show after filtering.
var ErrNoPages = errors.New("no pages to show")

// LoadError reports a target that could not be read.
type LoadError struct {
	Path string // File or directory being loaded
	Err  error  // Underlying error
}

func (e *LoadError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("load %s: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("load %s", e.Path)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// IsLoadError checks if err came from reading the target.
func IsLoadError(err error) bool {
	var loadErr *LoadError
	return errors.As(err, &loadErr)
}
