package report

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jonathan/resume-matcher/internal/scoring"
	"github.com/jonathan/resume-matcher/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubGenerator struct {
	report *scoring.Report
	err    error
	calls  int
}

func (g *stubGenerator) GenerateReport(_ context.Context, _ *types.AnalysisResult) (*scoring.Report, error) {
	g.calls++
	return g.report, g.err
}

type recordingPersister struct {
	calls int
	name  string
	err   error
}

func (p *recordingPersister) Persist(_ context.Context, data []byte, name string) (string, error) {
	p.calls++
	p.name = name
	if p.err != nil {
		return "", p.err
	}
	return filepath.Join("/downloads", name), nil
}

var fixedNow = time.UnixMilli(1700000000123)

func now() time.Time { return fixedNow }

func TestExport_NilAnalysis(t *testing.T) {
	gen := &stubGenerator{}
	per := &recordingPersister{}

	_, err := NewExporter(gen, per, now).Export(context.Background(), nil)

	assert.ErrorIs(t, err, ErrNoAnalysis)
	assert.Equal(t, 0, gen.calls)
	assert.Equal(t, 0, per.calls)
}

func TestExport_UsesSuggestedFilename(t *testing.T) {
	gen := &stubGenerator{report: &scoring.Report{Data: []byte("%PDF-1.4"), SuggestedFilename: "report_sess-1.pdf"}}
	per := &recordingPersister{}

	saved, err := NewExporter(gen, per, now).Export(context.Background(), &types.AnalysisResult{MatchScore: 82})

	require.NoError(t, err)
	assert.Equal(t, "report_sess-1.pdf", per.name)
	assert.Equal(t, "report_sess-1.pdf", saved.Filename)
	assert.Equal(t, 8, saved.Bytes)
}

func TestExport_FallbackFilename(t *testing.T) {
	gen := &stubGenerator{report: &scoring.Report{Data: []byte("%PDF-1.4")}}
	per := &recordingPersister{}

	_, err := NewExporter(gen, per, now).Export(context.Background(), &types.AnalysisResult{})

	require.NoError(t, err)
	assert.Equal(t, "resume_analysis_report_1700000000123.pdf", per.name)
}

func TestExport_EmptyBody(t *testing.T) {
	gen := &stubGenerator{report: &scoring.Report{Data: nil, SuggestedFilename: "x.pdf"}}
	per := &recordingPersister{}

	_, err := NewExporter(gen, per, now).Export(context.Background(), &types.AnalysisResult{})

	var genErr *ReportGenerationError
	require.ErrorAs(t, err, &genErr)
	assert.Equal(t, "received empty report", genErr.Error())
	assert.Equal(t, 0, per.calls)
}

func TestExport_GeneratorFailure(t *testing.T) {
	cause := &scoring.ServiceError{Op: "generate report", StatusCode: 500, Detail: "renderer crashed"}
	gen := &stubGenerator{err: cause}
	per := &recordingPersister{}

	_, err := NewExporter(gen, per, now).Export(context.Background(), &types.AnalysisResult{})

	var genErr *ReportGenerationError
	require.ErrorAs(t, err, &genErr)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, 0, per.calls)
}

func TestExport_PersistFailure(t *testing.T) {
	gen := &stubGenerator{report: &scoring.Report{Data: []byte("pdf")}}
	per := &recordingPersister{err: errors.New("disk full")}

	_, err := NewExporter(gen, per, now).Export(context.Background(), &types.AnalysisResult{})

	assert.EqualError(t, err, "disk full")
}

func TestFilename(t *testing.T) {
	tests := []struct {
		name      string
		suggested string
		want      string
	}{
		{"plain", "report.pdf", "report.pdf"},
		{"strips directories", "../../etc/report.pdf", "report.pdf"},
		{"strips windows directories", `C:\tmp\report.pdf`, "report.pdf"},
		{"empty", "", "resume_analysis_report_1700000000123.pdf"},
		{"whitespace", "   ", "resume_analysis_report_1700000000123.pdf"},
		{"dot dot", "..", "resume_analysis_report_1700000000123.pdf"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Filename(tt.suggested, fixedNow))
		})
	}
}

func TestExport_WithDirPersister(t *testing.T) {
	dir := t.TempDir()
	gen := &stubGenerator{report: &scoring.Report{Data: []byte("%PDF-1.7 body"), SuggestedFilename: "analysis.pdf"}}

	saved, err := NewExporter(gen, NewDirPersister(dir), now).Export(context.Background(), &types.AnalysisResult{})
	require.NoError(t, err)

	got, err := os.ReadFile(saved.Path)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.7 body", string(got))
	assert.Equal(t, filepath.Join(dir, "analysis.pdf"), saved.Path)
}
