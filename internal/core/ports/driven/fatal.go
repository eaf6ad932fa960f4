package driven

import "errors"

// FatalError marks a stage error that must terminate the run instead
// of being counted as a per-document drop. Stages return it wrapped
// around the underlying cause; the runner checks with IsFatal.
type FatalError struct {
	Err error
}

// Error implements the error interface.
func (e *FatalError) Error() string {
	return "fatal: " + e.Err.Error()
}

// Unwrap returns the underlying cause.
func (e *FatalError) Unwrap() error {
	return e.Err
}

// Fatal wraps an error so the runner aborts the run on it.
func Fatal(err error) error {
	return &FatalError{Err: err}
}

// IsFatal reports whether an error carries the fatal marker.
func IsFatal(err error) bool {
	var fe *FatalError
	return errors.As(err, &fe)
}
