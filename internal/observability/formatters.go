// Package observability provides formatted terminal output for the CLI.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/jonathan/resume-matcher/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

var (
	colorGreen  = color.New(color.FgGreen, color.Bold)
	colorBlue   = color.New(color.FgBlue, color.Bold)
	colorYellow = color.New(color.FgYellow)
	colorRed    = color.New(color.FgRed, color.Bold)
	colorCyan   = color.New(color.FgCyan)
)

// ScoreBand names the quality band a match score falls in.
func ScoreBand(score float64) string {
	switch {
	case score >= 80:
		return "Excellent Match"
	case score >= 60:
		return "Good Match"
	case score >= 40:
		return "Moderate Match"
	default:
		return "Needs Improvement"
	}
}

func scoreColor(score float64) *color.Color {
	switch {
	case score >= 80:
		return colorGreen
	case score >= 60:
		return colorBlue
	case score >= 40:
		return colorYellow
	default:
		return colorRed
	}
}

// Printer handles formatted output for the CLI
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

func truncate(s string, width int) string {
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	return string(r[:width-3]) + "..."
}

func writeList(sb *strings.Builder, label string, items []string, limit int) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(sb, "%s:\n", label)
	count := min(len(items), limit)
	for i := 0; i < count; i++ {
		fmt.Fprintf(sb, "  • %s\n", items[i])
	}
	if len(items) > limit {
		fmt.Fprintf(sb, "  ... and %d more\n", len(items)-limit)
	}
}

// PrintStatus outputs a status line colored by its kind.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintStatus(status types.Status) {
	if status.IsZero() {
		return
	}
	switch status.Kind {
	case types.StatusSuccess:
		colorGreen.Fprintf(p.out, "✓ %s\n", status.Message)
	case types.StatusFailure:
		colorRed.Fprintf(p.out, "✗ %s\n", status.Message)
	default:
		colorCyan.Fprintf(p.out, "… %s\n", status.Message)
	}
}

// PrintAnalysis outputs a human-readable summary of a single analysis.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintAnalysis(result *types.AnalysisResult) {
	if result == nil {
		return
	}

	score := result.MatchScore
	scoreColor(score).Fprintf(p.out, "%s%%  %s\n", types.FormatScore(score), ScoreBand(score))

	var sb strings.Builder
	fmt.Fprintf(&sb, "Skills matched:   %d/%d (%s%% coverage)\n",
		result.Breakdown.SkillsMatched, result.Breakdown.TotalJDSkills,
		types.FormatScore(result.Breakdown.CoveragePercentage))
	ats := "no"
	if result.ATS.IsATSFriendly {
		ats = "yes"
	}
	fmt.Fprintf(&sb, "ATS score:        %s (friendly: %s)\n", types.FormatScore(result.ATS.Score), ats)
	fmt.Fprintf(&sb, "Completeness:     %s\n", types.FormatScore(result.Completeness.Score))
	fmt.Fprintf(&sb, "Action verbs:     %s\n", types.FormatScore(result.ActionVerbs.Score))
	fmt.Fprintf(&sb, "Impact:           %s (%d metrics)\n",
		types.FormatScore(result.QuantifiableImpact.Score), result.QuantifiableImpact.Count)
	fmt.Fprintf(&sb, "Experience:       %d years\n", result.ExperienceYears)
	if result.SessionID != "" {
		fmt.Fprintf(&sb, "Session:          %s\n", result.SessionID)
	}
	sb.WriteString("\n")

	writeList(&sb, "Matched keywords", result.MatchedKeywords, maxItemsToShow)
	writeList(&sb, "Missing keywords", result.MissingKeywords, maxItemsToShow)
	writeList(&sb, "Missing sections", result.Completeness.MissingSections, maxItemsToShow)
	writeList(&sb, "Strong verbs", result.ActionVerbs.StrongVerbs, 3)

	p.printBox("MATCH ANALYSIS", strings.TrimSuffix(sb.String(), "\n"))

	if len(result.ImprovementSuggestions) > 0 {
		var tips strings.Builder
		for i, s := range result.ImprovementSuggestions {
			fmt.Fprintf(&tips, "%d. %s\n", i+1, s)
		}
		p.printBox("IMPROVEMENT SUGGESTIONS", strings.TrimSuffix(tips.String(), "\n"))
	}
}

// PrintComparison outputs every compared resume in the service's order,
// marking the best match.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintComparison(result *types.ComparisonResult) {
	if result == nil {
		return
	}

	best, hasBest := result.Best()
	if hasBest {
		scoreColor(best.MatchScore).Fprintf(p.out, "Best match: %s (%s%%)\n",
			best.Filename, types.FormatScore(best.MatchScore))
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%-3s %-22s %6s %5s %5s %5s\n", "#", "Resume", "Score", "Keys", "ATS", "Comp")
	for i, e := range result.Results {
		marker := " "
		if hasBest && e.Filename == best.Filename {
			marker = "*"
		}
		fmt.Fprintf(&sb, "%s%-2d %-22s %6s %5d %5s %5s\n",
			marker, i+1, truncate(e.Filename, 22), types.FormatScore(e.MatchScore),
			e.MatchedKeywordsCount, types.FormatScore(e.ATSScore), types.FormatScore(e.CompletenessScore))
	}
	p.printBox("RESUME COMPARISON", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintHistory outputs the local history ledger, most recent first.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintHistory(entries []types.HistoryEntry) {
	if len(entries) == 0 {
		fmt.Fprintln(p.out, "No analysis history yet")
		return
	}

	var sb strings.Builder
	for i, e := range entries {
		fmt.Fprintf(&sb, "%s  %s%%  %s vs %s\n", e.Date, types.FormatScore(e.Score), e.ResumeName, e.JobDescriptionName)
		fmt.Fprintf(&sb, "    id %s\n", e.ID)
		fmt.Fprintf(&sb, "    session %s\n", e.SessionID)
		if i < len(entries)-1 {
			sb.WriteString("\n")
		}
	}
	p.printBox("ANALYSIS HISTORY", sb.String())
}

// PrintSessionHistory outputs the service's stored analyses for a session.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintSessionHistory(sessionID string, items []types.SessionHistoryItem) {
	if len(items) == 0 {
		fmt.Fprintf(p.out, "No stored analyses for session %s\n", sessionID)
		return
	}

	var sb strings.Builder
	for i, item := range items {
		fmt.Fprintf(&sb, "%s%%  %s vs %s\n", types.FormatScore(item.MatchScore), item.ResumeFilename, item.JDFilename)
		if item.CreatedAt != "" {
			fmt.Fprintf(&sb, "    %s\n", item.CreatedAt)
		}
		writeList(&sb, "    Missing", item.MissingKeywords, 3)
		if i < len(items)-1 {
			sb.WriteString("\n")
		}
	}
	p.printBox("SESSION "+sessionID, strings.TrimSuffix(sb.String(), "\n"))
}

// PrintHighlight outputs the matched keywords found by the service.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintHighlight(h *types.Highlight) {
	if h == nil {
		return
	}
	if len(h.MatchedKeywords) == 0 {
		fmt.Fprintln(p.out, "No matching keywords found")
		return
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "%d keywords appear in both documents:\n", len(h.MatchedKeywords))
	for _, k := range h.MatchedKeywords {
		fmt.Fprintf(&sb, "  • %s\n", k)
	}
	p.printBox("KEYWORD HIGHLIGHTS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintHealth outputs the Scoring Service's health.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintHealth(baseURL string, h *types.HealthStatus) {
	if h == nil {
		return
	}
	c := colorGreen
	if !strings.EqualFold(h.Status, "healthy") && !strings.EqualFold(h.Status, "ok") {
		c = colorYellow
	}
	c.Fprintf(p.out, "%s: %s\n", baseURL, h.Status)
}
