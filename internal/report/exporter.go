package report

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/jonathan/resume-matcher/internal/scoring"
	"github.com/jonathan/resume-matcher/internal/types"
)

// FilenamePrefix starts every synthesized report filename.
const FilenamePrefix = "resume_analysis_report_"

// Generator produces a binary report for an analysis.
type Generator interface {
	GenerateReport(ctx context.Context, result *types.AnalysisResult) (*scoring.Report, error)
}

// Persister saves report bytes to the user's device and returns where they landed.
type Persister interface {
	Persist(ctx context.Context, data []byte, suggestedName string) (string, error)
}

// Saved describes a persisted report.
type Saved struct {
	Filename string
	Path     string
	Bytes    int
}

// Exporter turns an analysis into a saved report.
type Exporter struct {
	generator Generator
	persister Persister
	now       func() time.Time
}

// NewExporter creates an Exporter. now may be nil to use the wall clock.
func NewExporter(generator Generator, persister Persister, now func() time.Time) *Exporter {
	if now == nil {
		now = time.Now
	}
	return &Exporter{generator: generator, persister: persister, now: now}
}

// Export requests a report for result and persists it.
func (e *Exporter) Export(ctx context.Context, result *types.AnalysisResult) (Saved, error) {
	if result == nil {
		return Saved{}, ErrNoAnalysis
	}

	report, err := e.generator.GenerateReport(ctx, result)
	if err != nil {
		return Saved{}, &ReportGenerationError{Message: "report request failed", Cause: err}
	}
	if report == nil || len(report.Data) == 0 {
		return Saved{}, &ReportGenerationError{Message: "received empty report"}
	}

	name := Filename(report.SuggestedFilename, e.now())
	path, err := e.persister.Persist(ctx, report.Data, name)
	if err != nil {
		return Saved{}, err
	}
	return Saved{Filename: filepath.Base(path), Path: path, Bytes: len(report.Data)}, nil
}

// Filename picks the service's suggestion when it is usable, otherwise a
// timestamped name. Directory components in a suggestion are dropped.
func Filename(suggested string, now time.Time) string {
	suggested = strings.ReplaceAll(strings.TrimSpace(suggested), `\`, "/")
	base := filepath.Base(suggested)
	if suggested != "" && base != "." && base != "/" && base != ".." {
		return base
	}
	return fmt.Sprintf("%s%d.pdf", FilenamePrefix, now.UnixMilli())
}
