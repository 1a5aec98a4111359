// Package report exports a completed analysis as a downloadable document.
package report

import (
	"errors"
	"fmt"
)

// ErrNoAnalysis is returned when an export is requested without a completed analysis.
var ErrNoAnalysis = errors.New("no analysis data available for report generation")

// ReportGenerationError reports a failed or empty report. No file is written when it is returned.
type ReportGenerationError struct { //nolint:revive // name mirrors the error taxonomy
	Message string
	Cause   error
}

func (e *ReportGenerationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *ReportGenerationError) Unwrap() error {
	return e.Cause
}

// PersistError reports a report that was generated but could not be saved.
type PersistError struct {
	Path  string
	Cause error
}

func (e *PersistError) Error() string {
	return fmt.Sprintf("failed to save report to %s: %v", e.Path, e.Cause)
}

func (e *PersistError) Unwrap() error {
	return e.Cause
}
