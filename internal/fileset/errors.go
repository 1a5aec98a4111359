// Package fileset holds the documents selected for single analysis and multi-resume comparison.
package fileset

import (
	"fmt"
	"strings"
)

// MinComparisonResumes is the smallest number of resumes a comparison accepts.
const MinComparisonResumes = 2

// ValidationError reports a selection that is not ready to submit.
type ValidationError struct {
	Message string
	Missing []string
}

func (e *ValidationError) Error() string {
	if len(e.Missing) == 0 {
		return e.Message
	}
	return fmt.Sprintf("%s (missing: %s)", e.Message, strings.Join(e.Missing, ", "))
}

// LoadError reports a document that could not be read from disk.
type LoadError struct {
	Path  string
	Cause error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("failed to load %s: %v", e.Path, e.Cause)
}

func (e *LoadError) Unwrap() error {
	return e.Cause
}
