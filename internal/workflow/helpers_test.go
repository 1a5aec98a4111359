package workflow

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/jonathan/resume-matcher/internal/report"
	"github.com/jonathan/resume-matcher/internal/scoring"
	"github.com/jonathan/resume-matcher/internal/types"
)

func pdf(name string) types.FileRef {
	return types.NewFileRef(name, []byte("%PDF-1.4 "+name))
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeScorer answers from canned values. When release is set, every call
// blocks until release is closed or the context ends.
type fakeScorer struct {
	mu           sync.Mutex
	matchCalls   int
	compareCalls int
	lastResumes  []string

	started chan struct{}
	release chan struct{}

	analysis   *types.AnalysisResult
	comparison *types.ComparisonResult
	err        error
	scores     []float64
}

func (f *fakeScorer) Match(ctx context.Context, _, _ types.FileRef) (*types.AnalysisResult, error) {
	f.mu.Lock()
	f.matchCalls++
	n := f.matchCalls
	f.mu.Unlock()

	if err := f.wait(ctx, "match"); err != nil {
		return nil, err
	}
	if f.err != nil {
		return nil, f.err
	}
	if len(f.scores) > 0 {
		return &types.AnalysisResult{MatchScore: f.scores[(n-1)%len(f.scores)], SessionID: "sess"}, nil
	}
	return f.analysis, nil
}

func (f *fakeScorer) CompareMultiple(ctx context.Context, _ types.FileRef, resumes []types.FileRef) (*types.ComparisonResult, error) {
	f.mu.Lock()
	f.compareCalls++
	f.lastResumes = f.lastResumes[:0]
	for _, r := range resumes {
		f.lastResumes = append(f.lastResumes, r.Name())
	}
	f.mu.Unlock()

	if err := f.wait(ctx, "compare"); err != nil {
		return nil, err
	}
	if f.err != nil {
		return nil, f.err
	}
	return f.comparison, nil
}

func (f *fakeScorer) wait(ctx context.Context, op string) error {
	if f.started != nil {
		f.started <- struct{}{}
	}
	if f.release == nil {
		return nil
	}
	select {
	case <-f.release:
		return nil
	case <-ctx.Done():
		return &scoring.TransportError{Op: op, Timeout: true, Cause: ctx.Err()}
	}
}

func (f *fakeScorer) calls() (match, compare int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.matchCalls, f.compareCalls
}

type fakeExporter struct {
	mu      sync.Mutex
	calls   int
	saved   report.Saved
	err     error
	started chan struct{}
	release chan struct{}
}

func (f *fakeExporter) Export(ctx context.Context, _ *types.AnalysisResult) (report.Saved, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
	if f.started != nil {
		f.started <- struct{}{}
	}
	if f.release != nil {
		select {
		case <-f.release:
		case <-ctx.Done():
			return report.Saved{}, ctx.Err()
		}
	}
	return f.saved, f.err
}

func (f *fakeExporter) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func newController(scorer Scorer, exporter ReportExporter) *Controller {
	return NewController(Options{
		Scorer:   scorer,
		Exporter: exporter,
		Logger:   quietLogger(),
		Now:      func() time.Time { return time.Date(2024, 5, 17, 9, 30, 0, 0, time.UTC) },
	})
}

// readySingle returns a controller with a complete single-mode selection.
func readySingle(scorer Scorer, exporter ReportExporter) *Controller {
	c := newController(scorer, exporter)
	c.SelectResume(pdf("r.pdf"))
	c.SelectJobDescription(pdf("jd.pdf"))
	return c
}

// readyComparison returns a controller in comparison mode with a job
// description and resumes A, B and C.
func readyComparison(scorer Scorer) *Controller {
	c := newController(scorer, nil)
	c.Toggle()
	c.SelectJobDescription(pdf("jd.pdf"))
	c.AddResumes(pdf("A"), pdf("B"), pdf("C"))
	return c
}
