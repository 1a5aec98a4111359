package types

import "time"

// DateLayout is the calendar-date format used for HistoryEntry.Date.
const DateLayout = "2006-01-02"

// HistoryEntry records one completed single analysis.
type HistoryEntry struct {
	ID                 string    `json:"id"`
	ResumeName         string    `json:"resume"`
	JobDescriptionName string    `json:"jd"`
	Score              float64   `json:"score"`
	Date               string    `json:"date"`
	CreatedAt          time.Time `json:"created_at"`
	SessionID          string    `json:"session_id"`
}

// SessionHistoryItem is one row of the Scoring Service's server-side history for a session.
type SessionHistoryItem struct {
	ID                     int64    `json:"id"`
	ResumeFilename         string   `json:"resume_filename"`
	JDFilename             string   `json:"jd_filename"`
	MatchScore             float64  `json:"match_score"`
	CreatedAt              string   `json:"created_at"`
	MatchedKeywords        []string `json:"matched_keywords"`
	MissingKeywords        []string `json:"missing_keywords"`
	ImprovementSuggestions []string `json:"improvement_suggestions"`
}

// Highlight is the Scoring Service's keyword highlighting of both documents.
type Highlight struct {
	HighlightedResume string   `json:"highlighted_resume"`
	HighlightedJD     string   `json:"highlighted_jd"`
	MatchedKeywords   []string `json:"matched_keywords"`
}

// HealthStatus is the Scoring Service's health payload.
type HealthStatus struct {
	Status    string `json:"status"`
	Service   string `json:"service"`
	Timestamp string `json:"timestamp"`
}
