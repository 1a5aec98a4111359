// Package workflow drives the upload and analysis workflow: mode switching,
// document selection, one in-flight scoring request, history and report export.
//
// All state lives in a single immutable State value. It only changes through
// Reduce, which applies one named Event at a time.
package workflow

import (
	"github.com/jonathan/resume-matcher/internal/fileset"
	"github.com/jonathan/resume-matcher/internal/history"
	"github.com/jonathan/resume-matcher/internal/types"
)

// State is one snapshot of the workflow.
type State struct {
	Mode       types.Mode
	Files      fileset.FileSet
	Analysis   *types.AnalysisResult
	Comparison *types.ComparisonResult
	History    history.Ledger
	Status     types.Status

	// Loading is true while an analysis or comparison request is outstanding.
	Loading bool
	// Exporting is true while a report export is outstanding.
	Exporting bool
	// Epoch identifies the current generation of selections. Responses
	// dispatched under an older epoch are discarded.
	Epoch uint64
}

// Initial returns the starting state: single mode, nothing selected.
func Initial() State {
	return State{Mode: types.ModeSingle}
}

// Snapshot is a serializable view of State for the CLI and the intent API.
type Snapshot struct {
	Mode           types.Mode              `json:"mode"`
	Resume         *FileInfo               `json:"resume,omitempty"`
	JobDescription *FileInfo               `json:"job_description,omitempty"`
	Resumes        []FileInfo              `json:"resumes"`
	Analysis       *types.AnalysisResult   `json:"analysis,omitempty"`
	Comparison     *types.ComparisonResult `json:"comparison,omitempty"`
	History        []types.HistoryEntry    `json:"history"`
	Status         types.Status            `json:"status"`
	Loading        bool                    `json:"loading"`
	Exporting      bool                    `json:"exporting"`
	Epoch          uint64                  `json:"epoch"`
}

// FileInfo describes a selected document without its content.
type FileInfo struct {
	Name        string `json:"name"`
	SizeBytes   int64  `json:"size_bytes"`
	ContentType string `json:"content_type"`
}

func fileInfo(f types.FileRef) FileInfo {
	return FileInfo{Name: f.Name(), SizeBytes: f.Size(), ContentType: f.ContentType()}
}

// Snapshot converts the state into its serializable view.
func (s State) Snapshot() Snapshot {
	snap := Snapshot{
		Mode:       s.Mode,
		Resumes:    []FileInfo{},
		Analysis:   s.Analysis,
		Comparison: s.Comparison,
		History:    s.History.Entries(),
		Status:     s.Status,
		Loading:    s.Loading,
		Exporting:  s.Exporting,
		Epoch:      s.Epoch,
	}
	if f, ok := s.Files.Resume(); ok {
		info := fileInfo(f)
		snap.Resume = &info
	}
	if f, ok := s.Files.JobDescription(); ok {
		info := fileInfo(f)
		snap.JobDescription = &info
	}
	for _, f := range s.Files.Resumes() {
		snap.Resumes = append(snap.Resumes, fileInfo(f))
	}
	return snap
}
