// Package observability provides formatted terminal output for the CLI.
package observability

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/jonathan/teamhealth/internal/analysis"
	"github.com/jonathan/teamhealth/internal/maturity"
	"github.com/jonathan/teamhealth/internal/scoring"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// barWidth is the width of a percentage bar
	barWidth = 20
)

// Printer handles formatted output for CLI commands
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

	for _, line := range strings.Split(content, "\n") {
		for _, wrapped := range wrap(line, boxWidth-4) {
			fmt.Fprintf(p.out, "│ %s%s │\n", wrapped, strings.Repeat(" ", boxWidth-4-len([]rune(wrapped))))
		}
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// wrap breaks a line on spaces so no piece exceeds width runes. Leading indentation is kept on continuation lines.
func wrap(line string, width int) []string {
	if len([]rune(line)) <= width {
		return []string{line}
	}
	indent := line[:len(line)-len(strings.TrimLeft(line, " "))]

	var lines []string
	current := ""
	for _, word := range strings.Fields(line) {
		candidate := word
		if current != "" {
			candidate = current + " " + word
		} else {
			candidate = indent + word
		}
		if len([]rune(candidate)) > width && current != "" {
			lines = append(lines, current)
			candidate = indent + "  " + word
		}
		for len([]rune(candidate)) > width {
			r := []rune(candidate)
			lines = append(lines, string(r[:width]))
			candidate = string(r[width:])
		}
		current = candidate
	}
	return append(lines, current)
}

func bar(percentage int) string {
	filled := percentage * barWidth / 100
	filled = max(0, min(barWidth, filled))
	return strings.Repeat("█", filled) + strings.Repeat("░", barWidth-filled)
}

// PrintOverall outputs the overall score and its maturity narrative
func (p *Printer) PrintOverall(title string, overall maturity.Overall) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Overall:  %d%%  %s\n", overall.Percentage, bar(overall.Percentage)))
	if overall.Fine != nil {
		sb.WriteString(fmt.Sprintf("Level %s - %s\n\n", overall.Fine.Level, overall.Fine.Name))
		sb.WriteString(overall.Fine.Description)
	} else {
		sb.WriteString(overall.Tier.String() + "\n\n")
		sb.WriteString(overall.TierDescription)
	}
	p.printBox(strings.ToUpper(title), sb.String())
}

// PrintCategories outputs one block per classified category
func (p *Printer) PrintCategories(reports []maturity.CategoryReport) {
	if len(reports) == 0 {
		return
	}

	var sb strings.Builder
	for i, r := range reports {
		sb.WriteString(fmt.Sprintf("%s\n", r.Name))
		sb.WriteString(fmt.Sprintf("  %3d%%  %s  avg %s/5\n", r.Percentage, bar(r.Percentage), r.Average))
		sb.WriteString(fmt.Sprintf("  %s (%s)\n", r.Tier, r.Band))
		if r.Action != "" {
			sb.WriteString(fmt.Sprintf("  → %s\n", r.Action))
		}
		for _, fb := range r.Feedback {
			sb.WriteString(fmt.Sprintf("  • %s\n", fb))
		}
		if i < len(reports)-1 {
			sb.WriteString("\n")
		}
	}
	p.printBox("CATEGORIES", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintComparison outputs individual against team scores
func (p *Printer) PrintComparison(rows []scoring.Comparison) {
	if len(rows) == 0 {
		return
	}

	var sb strings.Builder
	for _, r := range rows {
		sb.WriteString(fmt.Sprintf("%-28s %3d%% vs %3d%%  %+d (%s)\n", r.Name, r.Individual, r.Team, r.Diff, r.Alignment))
	}
	p.printBox("INDIVIDUAL VS TEAM", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintAnalysis outputs a meeting analysis result with criteria in name order
func (p *Printer) PrintAnalysis(result *analysis.Result) {
	if result == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Overall:  %.1f/%d (%s)\n\n", result.OverallScore, analysis.MaxScore, analysis.ScoreBand(result.OverallScore)))
	sb.WriteString(result.Summary + "\n\n")

	names := make([]string, 0, len(result.Scores))
	for name := range result.Scores {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		s := result.Scores[name]
		sb.WriteString(fmt.Sprintf("%-20s %4.1f/%d\n", name, s.Score, analysis.MaxScore))
		if s.Explanation != "" {
			sb.WriteString(fmt.Sprintf("  %s\n", s.Explanation))
		}
	}

	if len(result.Strengths) > 0 {
		sb.WriteString("\nStrengths:\n")
		for _, s := range result.Strengths {
			sb.WriteString(fmt.Sprintf("  • %s\n", s))
		}
	}
	if len(result.Improvements) > 0 {
		sb.WriteString("\nImprovements:\n")
		for _, s := range result.Improvements {
			sb.WriteString(fmt.Sprintf("  • %s\n", s))
		}
	}

	p.printBox("MEETING ANALYSIS", strings.TrimSuffix(sb.String(), "\n"))
}
