// Package scoring turns a partial answer set into per-category and overall percentage scores.
package scoring

import (
	"fmt"
	"math"

	"github.com/jonathan/teamhealth/internal/catalog"
)

// AnswerSet maps a question id to a rating in [1,5]
type AnswerSet map[int]int

// CategoryResult is the aggregate for one category with at least one answer
type CategoryResult struct {
	Category   catalog.CategoryKey `json:"category"`
	Name       string              `json:"name"`
	AverageRaw float64             `json:"average_raw"`
	Average    string              `json:"average"`
	Percentage int                 `json:"percentage"`
}

// ComputeResults groups the quiz questions by category and averages the answered ratings.
// Categories without any answer are omitted. Output follows first appearance in the catalog.
func ComputeResults(quiz *catalog.Quiz, answers AnswerSet) []CategoryResult {
	type tally struct {
		sum   int
		count int
	}

	var order []catalog.CategoryKey
	tallies := make(map[catalog.CategoryKey]*tally)

	for _, q := range quiz.Questions {
		t, seen := tallies[q.Category]
		if !seen {
			t = &tally{}
			tallies[q.Category] = t
			order = append(order, q.Category)
		}
		if rating, ok := answers[q.ID]; ok {
			t.sum += rating
			t.count++
		}
	}

	results := make([]CategoryResult, 0, len(order))
	for _, key := range order {
		t := tallies[key]
		if t.count == 0 {
			continue
		}
		avg := float64(t.sum) / float64(t.count)
		results = append(results, CategoryResult{
			Category:   key,
			Name:       quiz.CategoryName(key),
			AverageRaw: avg,
			Average:    fmt.Sprintf("%.1f", avg),
			Percentage: int(math.Round(float64(t.sum) * 20 / float64(t.count))),
		})
	}
	return results
}

// ComputeOverall is the rounded mean of the category percentages, or 0 when there are none.
// Categories weigh equally regardless of their question count.
func ComputeOverall(results []CategoryResult) int {
	if len(results) == 0 {
		return 0
	}
	sum := 0
	for _, r := range results {
		sum += r.Percentage
	}
	return int(math.Round(float64(sum) / float64(len(results))))
}

// Find returns the result for a category
func Find(results []CategoryResult, key catalog.CategoryKey) (CategoryResult, bool) {
	for _, r := range results {
		if r.Category == key {
			return r, true
		}
	}
	return CategoryResult{}, false
}

// Answered reports whether every question in the quiz has an answer
func Answered(quiz *catalog.Quiz, answers AnswerSet) bool {
	for _, q := range quiz.Questions {
		if _, ok := answers[q.ID]; !ok {
			return false
		}
	}
	return true
}
