package workflow

import (
	"errors"
	"fmt"

	"github.com/jonathan/resume-matcher/internal/fileset"
	"github.com/jonathan/resume-matcher/internal/report"
	"github.com/jonathan/resume-matcher/internal/scoring"
	"github.com/jonathan/resume-matcher/internal/types"
)

// Status messages shown to the user.
const (
	MsgAnalysisSucceeded = "Analysis completed successfully!"
	MsgAnalysisFailed    = "Analysis failed: "
	MsgComparisonDone    = "Comparison completed!"
	MsgComparisonFailed  = "Comparison failed: "
	MsgReportStarted     = "Generating report..."
	MsgReportSaved       = "Report downloaded successfully!"
	MsgReportFailed      = "Report download failed: "
	MsgNoAnalysis        = "No analysis data available for report generation"
)

// Event is a discrete, named change to the workflow.
type Event interface {
	EventName() string
}

// ResumeSelected replaces the single-mode resume.
type ResumeSelected struct{ File types.FileRef }

// JobDescriptionSelected replaces the job description.
type JobDescriptionSelected struct{ File types.FileRef }

// ResumesAdded appends comparison resumes.
type ResumesAdded struct{ Files []types.FileRef }

// ResumeRemoved removes a comparison resume by index.
type ResumeRemoved struct{ Index int }

// FileDropped routes a dropped file to a target slot.
type FileDropped struct {
	Target types.DropTarget
	File   types.FileRef
}

// ModeToggled switches between single and comparison mode.
type ModeToggled struct{}

// ResetRequested clears selections, results and status.
type ResetRequested struct{}

// ValidationFailed records a submission rejected before any request.
type ValidationFailed struct{ Err error }

// RequestDispatched marks the start of an analysis or comparison request.
type RequestDispatched struct{}

// AnalysisSucceeded delivers a single-mode result and its history entry.
type AnalysisSucceeded struct {
	Epoch  uint64
	Result *types.AnalysisResult
	Entry  types.HistoryEntry
}

// AnalysisFailed delivers a single-mode failure.
type AnalysisFailed struct {
	Epoch uint64
	Err   error
}

// ComparisonSucceeded delivers a comparison result.
type ComparisonSucceeded struct {
	Epoch  uint64
	Result *types.ComparisonResult
}

// ComparisonFailed delivers a comparison failure.
type ComparisonFailed struct {
	Epoch uint64
	Err   error
}

// ReportStarted marks the start of a report export.
type ReportStarted struct{}

// ReportSaved records a persisted report.
type ReportSaved struct {
	Epoch uint64
	Saved report.Saved
}

// ReportFailed records a failed report export.
type ReportFailed struct {
	Epoch uint64
	Err   error
}

func (ResumeSelected) EventName() string         { return "resume_selected" }
func (JobDescriptionSelected) EventName() string { return "job_description_selected" }
func (ResumesAdded) EventName() string           { return "resumes_added" }
func (ResumeRemoved) EventName() string          { return "resume_removed" }
func (FileDropped) EventName() string            { return "file_dropped" }
func (ModeToggled) EventName() string            { return "mode_toggled" }
func (ResetRequested) EventName() string         { return "reset_requested" }
func (ValidationFailed) EventName() string       { return "validation_failed" }
func (RequestDispatched) EventName() string      { return "request_dispatched" }
func (AnalysisSucceeded) EventName() string      { return "analysis_succeeded" }
func (AnalysisFailed) EventName() string         { return "analysis_failed" }
func (ComparisonSucceeded) EventName() string    { return "comparison_succeeded" }
func (ComparisonFailed) EventName() string       { return "comparison_failed" }
func (ReportStarted) EventName() string          { return "report_started" }
func (ReportSaved) EventName() string            { return "report_saved" }
func (ReportFailed) EventName() string           { return "report_failed" }

// Reduce applies e to s and returns the next state. It has no side effects.
//
// Completion events carry the epoch captured at dispatch. When that epoch is
// no longer current the completion only ends the outstanding operation and
// its payload is dropped.
func Reduce(s State, e Event) State {
	switch e := e.(type) {
	case ResumeSelected:
		s.Files = s.Files.SelectResume(e.File)
	case JobDescriptionSelected:
		s.Files = s.Files.SelectJobDescription(e.File)
	case ResumesAdded:
		s.Files = s.Files.AddResumes(e.Files...)
	case ResumeRemoved:
		s.Files = s.Files.RemoveResume(e.Index)
	case FileDropped:
		s.Files = s.Files.AcceptDrop(s.Mode, e.Target, e.File)

	case ModeToggled:
		s = cleared(s)
		s.Mode = s.Mode.Toggle()
	case ResetRequested:
		s = cleared(s)

	case ValidationFailed:
		s.Status = types.Failure(validationMessage(e.Err))

	case RequestDispatched:
		s.Loading = true
		s.Status = types.Status{}
		if s.Mode == types.ModeSingle {
			s.Analysis = nil
		}

	case AnalysisSucceeded:
		s.Loading = false
		if e.Epoch != s.Epoch {
			return s
		}
		s.Analysis = e.Result
		s.History = s.History.Record(e.Entry)
		s.Status = types.Success(MsgAnalysisSucceeded)
	case AnalysisFailed:
		s.Loading = false
		if e.Epoch != s.Epoch {
			return s
		}
		s.Analysis = nil
		s.Status = types.Failure(MsgAnalysisFailed + Detail(e.Err))
	case ComparisonSucceeded:
		s.Loading = false
		if e.Epoch != s.Epoch {
			return s
		}
		s.Comparison = e.Result
		s.Status = types.Success(comparisonMessage(e.Result))
	case ComparisonFailed:
		s.Loading = false
		if e.Epoch != s.Epoch {
			return s
		}
		s.Status = types.Failure(MsgComparisonFailed + Detail(e.Err))

	case ReportStarted:
		s.Exporting = true
		s.Status = types.Info(MsgReportStarted)
	case ReportSaved:
		s.Exporting = false
		if e.Epoch != s.Epoch {
			return s
		}
		s.Status = types.Success(MsgReportSaved)
	case ReportFailed:
		s.Exporting = false
		if e.Epoch != s.Epoch {
			return s
		}
		if errors.Is(e.Err, report.ErrNoAnalysis) {
			s.Status = types.Failure(MsgNoAnalysis)
		} else {
			s.Status = types.Failure(MsgReportFailed + Detail(e.Err))
		}
	}
	return s
}

// cleared drops selections, results and status, and starts a new epoch.
// Outstanding operations keep their flags until their completions arrive.
func cleared(s State) State {
	s.Files = s.Files.Reset()
	s.Analysis = nil
	s.Comparison = nil
	s.Status = types.Status{}
	s.Epoch++
	return s
}

// Detail extracts the user-facing text of a failure. Service details are
// surfaced verbatim.
func Detail(err error) string {
	if err == nil {
		return "unknown error"
	}
	var svcErr *scoring.ServiceError
	if errors.As(err, &svcErr) {
		return svcErr.Error()
	}
	return err.Error()
}

func validationMessage(err error) string {
	var vErr *fileset.ValidationError
	if errors.As(err, &vErr) {
		return vErr.Message
	}
	return Detail(err)
}

func comparisonMessage(result *types.ComparisonResult) string {
	best, ok := result.Best()
	if !ok {
		return MsgComparisonDone
	}
	return fmt.Sprintf("%s Best match: %s (%s%%)", MsgComparisonDone, best.Filename, types.FormatScore(best.MatchScore))
}
