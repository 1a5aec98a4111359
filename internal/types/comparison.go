package types

// ComparisonEntry is one resume's result within a comparison.
type ComparisonEntry struct {
	Filename             string  `json:"filename"`
	MatchScore           float64 `json:"match_score"`
	MatchedKeywordsCount int     `json:"matched_keywords_count"`
	MissingKeywordsCount int     `json:"missing_keywords_count,omitempty"`
	ATSScore             float64 `json:"ats_score"`
	CompletenessScore    float64 `json:"completeness_score"`
}

// ComparisonResult is the Scoring Service's multi-resume comparison.
// Results keep the order the service returned them in.
type ComparisonResult struct {
	JobDescription   string            `json:"job_description,omitempty"`
	Results          []ComparisonEntry `json:"results"`
	BestMatch        *ComparisonEntry  `json:"best_match,omitempty"`
	TotalComparisons int               `json:"total_comparisons,omitempty"`
	SessionID        string            `json:"session_id,omitempty"`
}

// Best returns the designated best match. The service's designation wins;
// without one, the highest score wins and ties go to the lowest index.
func (c *ComparisonResult) Best() (ComparisonEntry, bool) {
	if c == nil {
		return ComparisonEntry{}, false
	}
	if c.BestMatch != nil {
		return *c.BestMatch, true
	}
	if len(c.Results) == 0 {
		return ComparisonEntry{}, false
	}
	best := 0
	for i := 1; i < len(c.Results); i++ {
		if c.Results[i].MatchScore > c.Results[best].MatchScore {
			best = i
		}
	}
	return c.Results[best], true
}
