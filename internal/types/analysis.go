package types

import (
	"encoding/json"
	"strconv"
)

// AnalysisResult is the Scoring Service's single-resume analysis.
// The raw payload is retained so a report request echoes exactly what was received.
type AnalysisResult struct {
	Resume                 string               `json:"resume"`
	JobDescription         string               `json:"job_description"`
	MatchScore             float64              `json:"match_score"`
	MatchedKeywords        []string             `json:"matched_keywords"`
	MissingKeywords        []string             `json:"missing_keywords"`
	ResumeSkillsFound      []string             `json:"resume_skills_found,omitempty"`
	JDSkillsRequired       []string             `json:"jd_skills_required,omitempty"`
	Breakdown              Breakdown            `json:"breakdown"`
	ATS                    ATSAnalysis          `json:"ats_analysis"`
	Completeness           CompletenessAnalysis `json:"completeness_analysis"`
	ActionVerbs            ActionVerbsAnalysis  `json:"action_verbs_analysis"`
	QuantifiableImpact     ImpactAnalysis       `json:"quantifiable_impact_analysis"`
	ExperienceYears        int                  `json:"experience_years"`
	ImprovementSuggestions []string             `json:"improvement_suggestions"`
	SessionID              string               `json:"session_id"`
	Message                string               `json:"message,omitempty"`

	raw json.RawMessage
}

// Breakdown details how the match score was composed.
type Breakdown struct {
	BaseScore               float64  `json:"base_score"`
	SkillsMatchScore        float64  `json:"skills_match_score"`
	ATSScore                float64  `json:"ats_score"`
	CompletenessScore       float64  `json:"completeness_score"`
	ActionVerbsScore        float64  `json:"action_verbs_score"`
	QuantifiableImpactScore float64  `json:"quantifiable_impact_score"`
	SkillsMatched           int      `json:"skills_matched"`
	TotalJDSkills           int      `json:"total_jd_skills"`
	CoveragePercentage      float64  `json:"coverage_percentage"`
	BonusPoints             float64  `json:"bonus_points"`
	PenaltyPoints           float64  `json:"penalty_points"`
	HighValueMatches        []string `json:"high_value_matches,omitempty"`
	MissingKeySkills        []string `json:"missing_key_skills,omitempty"`
}

// ATSAnalysis is the machine-readability sub-score.
type ATSAnalysis struct {
	Score         float64  `json:"score"`
	Issues        []string `json:"issues"`
	IsATSFriendly bool     `json:"is_ats_friendly"`
}

// CompletenessAnalysis reports which standard resume sections were found.
type CompletenessAnalysis struct {
	Score           float64  `json:"score"`
	SectionsFound   []string `json:"sections_found"`
	MissingSections []string `json:"missing_sections"`
}

// ActionVerbsAnalysis reports strong and weak action verb usage.
type ActionVerbsAnalysis struct {
	Score       float64  `json:"score"`
	StrongVerbs []string `json:"strong_verbs"`
	WeakVerbs   []string `json:"weak_verbs"`
	TotalVerbs  int      `json:"total_verbs"`
}

// ImpactAnalysis reports quantifiable achievements.
type ImpactAnalysis struct {
	Score               float64  `json:"score"`
	QuantifiableMetrics []string `json:"quantifiable_metrics"`
	Count               int      `json:"count"`
}

type analysisAlias AnalysisResult

// UnmarshalJSON decodes the analysis and keeps a copy of the raw payload.
func (a *AnalysisResult) UnmarshalJSON(data []byte) error {
	var decoded analysisAlias
	if err := json.Unmarshal(data, &decoded); err != nil {
		return err
	}
	*a = AnalysisResult(decoded)
	a.raw = append(json.RawMessage(nil), data...)
	return nil
}

// MarshalJSON re-emits the payload as received when available.
func (a AnalysisResult) MarshalJSON() ([]byte, error) {
	if len(a.raw) > 0 {
		return a.raw, nil
	}
	return json.Marshal(analysisAlias(a))
}

// FormatScore renders a score with the fewest digits needed (82 -> "82", 82.5 -> "82.5").
func FormatScore(score float64) string {
	return strconv.FormatFloat(score, 'f', -1, 64)
}
