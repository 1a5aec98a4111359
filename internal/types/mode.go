package types

import (
	"fmt"
	"strings"
)

// Mode is the active operating mode of the upload workflow.
type Mode int

const (
	// ModeSingle analyses one resume against one job description.
	ModeSingle Mode = iota
	// ModeComparison ranks several resumes against one job description.
	ModeComparison
)

func (m Mode) String() string {
	switch m {
	case ModeSingle:
		return "single"
	case ModeComparison:
		return "comparison"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// Toggle returns the other mode.
func (m Mode) Toggle() Mode {
	if m == ModeComparison {
		return ModeSingle
	}
	return ModeComparison
}

// MarshalText implements encoding.TextMarshaler.
func (m Mode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *Mode) UnmarshalText(text []byte) error {
	mode, err := ParseMode(string(text))
	if err != nil {
		return err
	}
	*m = mode
	return nil
}

// ParseMode parses a mode name as produced by String.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "single":
		return ModeSingle, nil
	case "comparison", "compare":
		return ModeComparison, nil
	default:
		return ModeSingle, fmt.Errorf("unknown mode %q", s)
	}
}

// DropTarget names the slot a dropped file is routed to.
type DropTarget string

const (
	// DropResume routes to the resume slot (appends in comparison mode).
	DropResume DropTarget = "resume"
	// DropJobDescription routes to the job description slot.
	DropJobDescription DropTarget = "jobDescription"
)

// ParseDropTarget converts a raw target name into a DropTarget.
func ParseDropTarget(s string) (DropTarget, error) {
	switch DropTarget(s) {
	case DropResume, DropJobDescription:
		return DropTarget(s), nil
	case "jd":
		return DropJobDescription, nil
	default:
		return "", fmt.Errorf("unknown drop target %q (want %q or %q)", s, DropResume, DropJobDescription)
	}
}
