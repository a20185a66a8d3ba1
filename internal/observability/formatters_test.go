package observability

import (
	"bytes"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/teamhealth/internal/analysis"
	"github.com/jonathan/teamhealth/internal/catalog"
	"github.com/jonathan/teamhealth/internal/maturity"
	"github.com/jonathan/teamhealth/internal/scoring"
)

func TestPrintOverall_Fine(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintOverall("Team Health Diagnostic Assessment", maturity.ClassifyOverall(catalog.TeamDiagnostic(), 72))
	output := buf.String()

	assert.Contains(t, output, "TEAM HEALTH DIAGNOSTIC ASSESSMENT")
	assert.Contains(t, output, "72%")
	assert.Contains(t, output, "Level 4.0 - Proactive maturity")
}

func TestPrintOverall_Coarse(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintOverall("Quick", maturity.ClassifyOverall(catalog.QuickTest(), 45))

	assert.Contains(t, buf.String(), "Level 2 - Emerging")
}

func TestPrintCategories(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	quiz := catalog.TeamDiagnostic()
	results := []scoring.CategoryResult{
		{Category: catalog.Delivery, Name: "Delivery & Predictability", Average: "2.0", Percentage: 40},
	}
	p.PrintCategories(maturity.ClassifyCategories(quiz, maturity.TeamActions, results))
	output := buf.String()

	assert.Contains(t, output, "CATEGORIES")
	assert.Contains(t, output, "Delivery & Predictability")
	assert.Contains(t, output, "Level 2 - Emerging (fair)")
	assert.Contains(t, output, "→")
}

func TestPrintCategories_Empty(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintCategories(nil)
	assert.Empty(t, buf.String())
}

func TestPrintComparison(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintComparison([]scoring.Comparison{
		{Name: "Trust", Individual: 80, Team: 60, Diff: 20, Alignment: scoring.AlignmentAbove},
	})

	assert.Contains(t, buf.String(), "+20 (above)")
}

func TestPrintAnalysis(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintAnalysis(&analysis.Result{
		Summary:      "A focused planning meeting.",
		OverallScore: 7.5,
		Scores: map[string]analysis.CriterionScore{
			"Trust":    {Score: 8, Explanation: "People spoke freely."},
			"Delivery": {Score: 6, Explanation: "Dates were vague."},
		},
		Strengths:    []string{"Clear agenda"},
		Improvements: []string{"Assign owners"},
	})
	output := buf.String()

	assert.Contains(t, output, "MEETING ANALYSIS")
	assert.Contains(t, output, "7.5/10")
	assert.Less(t, strings.Index(output, "Delivery"), strings.Index(output, "Trust"))
	assert.Contains(t, output, "Clear agenda")
	assert.Contains(t, output, "Assign owners")
}

func TestPrintAnalysis_Nil(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintAnalysis(nil)
	assert.Empty(t, buf.String())
}

func TestPrintBox_WrapsLongLines(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.printBox("TITLE", strings.Repeat("word ", 40))

	for _, line := range strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n") {
		assert.Equal(t, boxWidth, utf8.RuneCountInString(line), "line %q", line)
	}
}

func TestBar(t *testing.T) {
	assert.Equal(t, strings.Repeat("░", barWidth), bar(0))
	assert.Equal(t, strings.Repeat("█", barWidth), bar(100))
	assert.Equal(t, 10, strings.Count(bar(50), "█"))
}
