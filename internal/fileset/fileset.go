package fileset

import "github.com/jonathan/resume-matcher/internal/types"

// FileSet is an immutable selection of documents for both modes.
// Every operation returns a new FileSet and leaves the receiver untouched.
type FileSet struct {
	resume         *types.FileRef
	jobDescription *types.FileRef
	resumes        []types.FileRef
}

// Resume returns the single-mode resume, if selected.
func (s FileSet) Resume() (types.FileRef, bool) {
	if s.resume == nil {
		return types.FileRef{}, false
	}
	return *s.resume, true
}

// JobDescription returns the job description, if selected. It is shared by both modes.
func (s FileSet) JobDescription() (types.FileRef, bool) {
	if s.jobDescription == nil {
		return types.FileRef{}, false
	}
	return *s.jobDescription, true
}

// Resumes returns a copy of the comparison resumes in insertion order.
func (s FileSet) Resumes() []types.FileRef {
	out := make([]types.FileRef, len(s.resumes))
	copy(out, s.resumes)
	return out
}

// ResumeCount returns the number of comparison resumes.
func (s FileSet) ResumeCount() int {
	return len(s.resumes)
}

// IsEmpty reports whether nothing is selected in either mode.
func (s FileSet) IsEmpty() bool {
	return s.resume == nil && s.jobDescription == nil && len(s.resumes) == 0
}

// SelectResume replaces the single-mode resume.
func (s FileSet) SelectResume(file types.FileRef) FileSet {
	s.resume = &file
	return s
}

// SelectJobDescription replaces the job description.
func (s FileSet) SelectJobDescription(file types.FileRef) FileSet {
	s.jobDescription = &file
	return s
}

// AddResumes appends to the comparison resumes. Order is preserved and duplicates are kept.
func (s FileSet) AddResumes(files ...types.FileRef) FileSet {
	if len(files) == 0 {
		return s
	}
	next := make([]types.FileRef, 0, len(s.resumes)+len(files))
	next = append(next, s.resumes...)
	next = append(next, files...)
	s.resumes = next
	return s
}

// RemoveResume drops the comparison resume at index. Out-of-range indexes are a no-op.
func (s FileSet) RemoveResume(index int) FileSet {
	if index < 0 || index >= len(s.resumes) {
		return s
	}
	next := make([]types.FileRef, 0, len(s.resumes)-1)
	next = append(next, s.resumes[:index]...)
	next = append(next, s.resumes[index+1:]...)
	s.resumes = next
	return s
}

// AcceptDrop routes a dropped file to the named slot.
// In comparison mode a drop on the resume target appends instead of replacing.
func (s FileSet) AcceptDrop(mode types.Mode, target types.DropTarget, file types.FileRef) FileSet {
	switch target {
	case types.DropResume:
		if mode == types.ModeComparison {
			return s.AddResumes(file)
		}
		return s.SelectResume(file)
	case types.DropJobDescription:
		return s.SelectJobDescription(file)
	default:
		return s
	}
}

// Reset clears every slot in both modes.
func (s FileSet) Reset() FileSet {
	return FileSet{}
}

// ValidateSingle checks that a single analysis can be submitted.
func (s FileSet) ValidateSingle() error {
	var missing []string
	if s.resume == nil {
		missing = append(missing, "resume")
	}
	if s.jobDescription == nil {
		missing = append(missing, "job description")
	}
	if len(missing) > 0 {
		return &ValidationError{
			Message: "Please select both files to continue",
			Missing: missing,
		}
	}
	return nil
}

// ValidateComparison checks that a comparison can be submitted.
func (s FileSet) ValidateComparison() error {
	var missing []string
	if s.jobDescription == nil {
		missing = append(missing, "job description")
	}
	if len(s.resumes) < MinComparisonResumes {
		missing = append(missing, "resumes")
	}
	if len(missing) > 0 {
		return &ValidationError{
			Message: "Please select a job description and at least 2 resumes",
			Missing: missing,
		}
	}
	return nil
}

// Validate checks the selection for the given mode.
func (s FileSet) Validate(mode types.Mode) error {
	if mode == types.ModeComparison {
		return s.ValidateComparison()
	}
	return s.ValidateSingle()
}
