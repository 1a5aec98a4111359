package workflow

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/jonathan/resume-matcher/internal/history"
	"github.com/jonathan/resume-matcher/internal/report"
	"github.com/jonathan/resume-matcher/internal/types"
)

// Default per-request timeouts.
const (
	DefaultMatchTimeout   = 30 * time.Second
	DefaultCompareTimeout = 60 * time.Second
	DefaultReportTimeout  = 60 * time.Second
)

var (
	// ErrBusy is returned when a conflicting operation is already outstanding.
	ErrBusy = errors.New("a request is already in progress")
	// ErrStale is returned when a response arrived after a reset or mode switch and was discarded.
	ErrStale = errors.New("response discarded: selections changed while the request was in flight")
	// ErrNoExporter is returned by ExportReport when no ReportExporter was configured.
	ErrNoExporter = errors.New("report export is not configured")
)

// Scorer is the part of the Scoring Service the workflow calls.
type Scorer interface {
	Match(ctx context.Context, resume, jd types.FileRef) (*types.AnalysisResult, error)
	CompareMultiple(ctx context.Context, jd types.FileRef, resumes []types.FileRef) (*types.ComparisonResult, error)
}

// ReportExporter generates and persists a report for an analysis.
type ReportExporter interface {
	Export(ctx context.Context, result *types.AnalysisResult) (report.Saved, error)
}

// Options configures a Controller.
type Options struct {
	Scorer         Scorer
	Exporter       ReportExporter
	MatchTimeout   time.Duration
	CompareTimeout time.Duration
	ReportTimeout  time.Duration
	Logger         *slog.Logger
	Now            func() time.Time
}

// Controller owns the workflow state. Intents are applied one at a time;
// readers get immutable snapshots.
type Controller struct {
	mu    sync.Mutex
	state State

	scorer         Scorer
	exporter       ReportExporter
	matchTimeout   time.Duration
	compareTimeout time.Duration
	reportTimeout  time.Duration
	logger         *slog.Logger
	now            func() time.Time

	subs   map[int]chan State
	nextID int
}

// NewController creates a Controller in the initial state.
func NewController(opts Options) *Controller {
	c := &Controller{
		state:          Initial(),
		scorer:         opts.Scorer,
		exporter:       opts.Exporter,
		matchTimeout:   opts.MatchTimeout,
		compareTimeout: opts.CompareTimeout,
		reportTimeout:  opts.ReportTimeout,
		logger:         opts.Logger,
		now:            opts.Now,
		subs:           make(map[int]chan State),
	}
	if c.matchTimeout <= 0 {
		c.matchTimeout = DefaultMatchTimeout
	}
	if c.compareTimeout <= 0 {
		c.compareTimeout = DefaultCompareTimeout
	}
	if c.reportTimeout <= 0 {
		c.reportTimeout = DefaultReportTimeout
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}
	if c.now == nil {
		c.now = time.Now
	}
	return c
}

// State returns the current snapshot.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// SelectResume replaces the single-mode resume.
func (c *Controller) SelectResume(file types.FileRef) State {
	return c.apply(ResumeSelected{File: file})
}

// SelectJobDescription replaces the job description.
func (c *Controller) SelectJobDescription(file types.FileRef) State {
	return c.apply(JobDescriptionSelected{File: file})
}

// AddResumes appends comparison resumes in order.
func (c *Controller) AddResumes(files ...types.FileRef) State {
	return c.apply(ResumesAdded{Files: files})
}

// RemoveResume removes the comparison resume at index; out-of-range is a no-op.
func (c *Controller) RemoveResume(index int) State {
	return c.apply(ResumeRemoved{Index: index})
}

// AcceptDrop routes a dropped file to target.
func (c *Controller) AcceptDrop(target types.DropTarget, file types.FileRef) State {
	return c.apply(FileDropped{Target: target, File: file})
}

// Toggle switches mode and clears everything transient.
func (c *Controller) Toggle() State {
	return c.apply(ModeToggled{})
}

// ResetAll clears selections, results and status.
func (c *Controller) ResetAll() State {
	return c.apply(ResetRequested{})
}

// Submit validates the selection for the current mode and runs one request.
//
// It returns ErrBusy without a request while another request or a report
// export is outstanding, and the validation error without a request when the
// selection is incomplete.
// Otherwise it blocks until the request resolves or its timeout expires.
func (c *Controller) Submit(ctx context.Context) error {
	c.mu.Lock()
	if c.state.Loading || c.state.Exporting {
		c.mu.Unlock()
		c.logger.Debug("submit ignored while busy", "loading", c.state.Loading, "exporting", c.state.Exporting)
		return ErrBusy
	}
	if err := c.state.Files.Validate(c.state.Mode); err != nil {
		c.applyLocked(ValidationFailed{Err: err})
		c.mu.Unlock()
		return err
	}
	c.applyLocked(RequestDispatched{})
	dispatched := c.state
	c.mu.Unlock()

	if dispatched.Mode == types.ModeComparison {
		return c.compare(ctx, dispatched)
	}
	return c.match(ctx, dispatched)
}

func (c *Controller) match(ctx context.Context, s State) error {
	resume, _ := s.Files.Resume()
	jd, _ := s.Files.JobDescription()

	ctx, cancel := context.WithTimeout(ctx, c.matchTimeout)
	defer cancel()

	start := time.Now()
	result, err := c.scorer.Match(ctx, resume, jd)
	if err != nil {
		c.logger.Warn("analysis failed", "error", err, "duration", time.Since(start))
		if !c.complete(s.Epoch, AnalysisFailed{Epoch: s.Epoch, Err: err}) {
			return ErrStale
		}
		return err
	}

	entry := history.NewEntry(resume.Name(), jd.Name(), result.MatchScore, result.SessionID, c.now())
	c.logger.Info("analysis completed",
		"resume", resume.Name(),
		"score", result.MatchScore,
		"session_id", result.SessionID,
		"duration", time.Since(start))
	if !c.complete(s.Epoch, AnalysisSucceeded{Epoch: s.Epoch, Result: result, Entry: entry}) {
		return ErrStale
	}
	return nil
}

func (c *Controller) compare(ctx context.Context, s State) error {
	jd, _ := s.Files.JobDescription()
	resumes := s.Files.Resumes()

	ctx, cancel := context.WithTimeout(ctx, c.compareTimeout)
	defer cancel()

	start := time.Now()
	result, err := c.scorer.CompareMultiple(ctx, jd, resumes)
	if err != nil {
		c.logger.Warn("comparison failed", "error", err, "duration", time.Since(start))
		if !c.complete(s.Epoch, ComparisonFailed{Epoch: s.Epoch, Err: err}) {
			return ErrStale
		}
		return err
	}

	c.logger.Info("comparison completed",
		"resumes", len(resumes),
		"results", len(result.Results),
		"duration", time.Since(start))
	if !c.complete(s.Epoch, ComparisonSucceeded{Epoch: s.Epoch, Result: result}) {
		return ErrStale
	}
	return nil
}

// ExportReport generates a report for the current analysis and persists it.
// It returns report.ErrNoAnalysis without a request when no analysis exists,
// whether or not an exporter is configured.
func (c *Controller) ExportReport(ctx context.Context) (report.Saved, error) {
	c.mu.Lock()
	if c.state.Exporting {
		c.mu.Unlock()
		return report.Saved{}, ErrBusy
	}
	if c.state.Analysis == nil {
		c.applyLocked(ReportFailed{Epoch: c.state.Epoch, Err: report.ErrNoAnalysis})
		c.mu.Unlock()
		return report.Saved{}, report.ErrNoAnalysis
	}
	if c.exporter == nil {
		c.mu.Unlock()
		return report.Saved{}, ErrNoExporter
	}
	c.applyLocked(ReportStarted{})
	epoch, analysis := c.state.Epoch, c.state.Analysis
	c.mu.Unlock()

	ctx, cancel := context.WithTimeout(ctx, c.reportTimeout)
	defer cancel()

	saved, err := c.exporter.Export(ctx, analysis)
	if err != nil {
		c.logger.Warn("report export failed", "error", err)
		if !c.complete(epoch, ReportFailed{Epoch: epoch, Err: err}) {
			return report.Saved{}, ErrStale
		}
		return report.Saved{}, err
	}

	c.logger.Info("report saved", "path", saved.Path, "bytes", saved.Bytes)
	if !c.complete(epoch, ReportSaved{Epoch: epoch, Saved: saved}) {
		return saved, ErrStale
	}
	return saved, nil
}

// Subscribe returns a channel that receives the current state and every
// later one. A slow reader only sees the latest snapshot; the controller
// never waits on it. Call cancel to stop and close the channel.
func (c *Controller) Subscribe() (<-chan State, func()) {
	ch := make(chan State, 1)

	c.mu.Lock()
	id := c.nextID
	c.nextID++
	c.subs[id] = ch
	ch <- c.state
	c.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			c.mu.Lock()
			delete(c.subs, id)
			close(ch)
			c.mu.Unlock()
		})
	}
	return ch, cancel
}

func (c *Controller) apply(e Event) State {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.applyLocked(e)
	return c.state
}

// complete applies a completion event and reports whether its epoch was current.
func (c *Controller) complete(epoch uint64, e Event) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	current := c.state.Epoch == epoch
	c.applyLocked(e)
	if !current {
		c.logger.Info("discarded stale response",
			"event", e.EventName(),
			"dispatched_epoch", epoch,
			"current_epoch", c.state.Epoch)
	}
	return current
}

func (c *Controller) applyLocked(e Event) {
	c.state = Reduce(c.state, e)
	c.logger.Debug("state transition",
		"event", e.EventName(),
		"mode", c.state.Mode.String(),
		"epoch", c.state.Epoch,
		"loading", c.state.Loading,
		"exporting", c.state.Exporting,
		"status", c.state.Status.Message)
	c.publishLocked()
}

func (c *Controller) publishLocked() {
	for _, ch := range c.subs {
		select {
		case ch <- c.state:
			continue
		default:
		}
		// Replace the unread snapshot with the latest one.
		select {
		case <-ch:
		default:
		}
		select {
		case ch <- c.state:
		default:
		}
	}
}
