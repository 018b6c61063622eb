package paramfile

import "fmt"

// LoadError reports why a parameter file could not be opened. Nothing from
// the file has been applied when a LoadError is returned.
type LoadError struct {
	Path   string
	Line   int // 0 when the error is not tied to a line
	Reason string
	Err    error
}

func (e *LoadError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("cannot open parameter file %s (line %d): %s", e.Path, e.Line, e.Reason)
	}
	return fmt.Sprintf("cannot open parameter file %s: %s", e.Path, e.Reason)
}

// Unwrap returns the underlying cause.
func (e *LoadError) Unwrap() error {
	return e.Err
}
