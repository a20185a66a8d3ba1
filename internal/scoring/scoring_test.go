package scoring

import (
	"math"
	"math/rand"
	"testing"

	"github.com/jonathan/teamhealth/internal/catalog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sixCategoryQuiz() *catalog.Quiz {
	keys := []catalog.CategoryKey{
		catalog.Delivery, catalog.Ownership, catalog.Communication,
		catalog.Trust, catalog.Value, catalog.Leadership,
	}
	q := &catalog.Quiz{Kind: "six", Title: "Six"}
	for i, k := range keys {
		q.Categories = append(q.Categories, catalog.Category{Key: k, Name: string(k)})
		q.Questions = append(q.Questions, catalog.Question{ID: i + 1, Text: "q", Category: k})
	}
	return q
}

func TestComputeResults_AllFives(t *testing.T) {
	quiz := sixCategoryQuiz()
	answers := AnswerSet{1: 5, 2: 5, 3: 5, 4: 5, 5: 5, 6: 5}

	results := ComputeResults(quiz, answers)

	require.Len(t, results, 6)
	for _, r := range results {
		assert.Equal(t, 100, r.Percentage)
		assert.Equal(t, "5.0", r.Average)
	}
	assert.Equal(t, 100, ComputeOverall(results))
}

func TestComputeResults_TwoQuestionsOneCategory(t *testing.T) {
	quiz := &catalog.Quiz{
		Categories: []catalog.Category{{Key: "a", Name: "A"}},
		Questions: []catalog.Question{
			{ID: 1, Category: "a"},
			{ID: 2, Category: "a"},
		},
	}

	results := ComputeResults(quiz, AnswerSet{1: 2, 2: 4})

	require.Len(t, results, 1)
	assert.Equal(t, catalog.CategoryKey("a"), results[0].Category)
	assert.Equal(t, "A", results[0].Name)
	assert.InDelta(t, 3.0, results[0].AverageRaw, 1e-9)
	assert.Equal(t, 60, results[0].Percentage)
}

func TestComputeResults_OmitsUnansweredCategories(t *testing.T) {
	quiz := catalog.TeamDiagnostic()
	// Only delivery (1-6) and trust (19-24) questions answered
	answers := AnswerSet{1: 3, 2: 4, 19: 1}

	results := ComputeResults(quiz, answers)

	require.Len(t, results, 2)
	assert.Equal(t, catalog.Delivery, results[0].Category)
	assert.Equal(t, 70, results[0].Percentage)
	assert.Equal(t, catalog.Trust, results[1].Category)
	assert.Equal(t, 20, results[1].Percentage)

	_, ok := Find(results, catalog.Ownership)
	assert.False(t, ok)
}

func TestComputeResults_OrderFollowsCatalog(t *testing.T) {
	quiz := catalog.QuickTest()
	answers := AnswerSet{}
	for _, q := range quiz.Questions {
		answers[q.ID] = 3
	}

	results := ComputeResults(quiz, answers)

	require.Len(t, results, 6)
	want := []catalog.CategoryKey{
		catalog.Trust, catalog.Collaboration, catalog.Ownership,
		catalog.Delivery, catalog.Leadership, catalog.Value,
	}
	for i, key := range want {
		assert.Equal(t, key, results[i].Category)
	}
}

func TestComputeResults_Rounding(t *testing.T) {
	quiz := &catalog.Quiz{
		Categories: []catalog.Category{{Key: "a", Name: "A"}},
		Questions: []catalog.Question{
			{ID: 1, Category: "a"},
			{ID: 2, Category: "a"},
			{ID: 3, Category: "a"},
		},
	}

	// 7/3 = 2.333.. -> 46.67 -> 47
	results := ComputeResults(quiz, AnswerSet{1: 2, 2: 2, 3: 3})
	require.Len(t, results, 1)
	assert.Equal(t, 47, results[0].Percentage)
	assert.Equal(t, "2.3", results[0].Average)
}

func TestComputeResults_Empty(t *testing.T) {
	results := ComputeResults(catalog.TeamDiagnostic(), AnswerSet{})
	assert.Empty(t, results)
	assert.Equal(t, 0, ComputeOverall(results))
}

func TestComputeResults_IgnoresUnknownIDs(t *testing.T) {
	results := ComputeResults(sixCategoryQuiz(), AnswerSet{99: 5})
	assert.Empty(t, results)
}

func TestComputeResults_Properties(t *testing.T) {
	quiz := catalog.TeamDiagnostic()
	rng := rand.New(rand.NewSource(42))

	for i := 0; i < 200; i++ {
		answers := AnswerSet{}
		for _, q := range quiz.Questions {
			if rng.Intn(3) > 0 {
				answers[q.ID] = rng.Intn(5) + 1
			}
		}

		first := ComputeResults(quiz, answers)
		second := ComputeResults(quiz, answers)
		assert.Equal(t, first, second, "pure function")

		for _, r := range first {
			assert.GreaterOrEqual(t, r.Percentage, 0)
			assert.LessOrEqual(t, r.Percentage, 100)
			assert.Equal(t, int(math.Round(r.AverageRaw*20)), r.Percentage)
		}

		// Raising one answered rating never lowers its category
		for id, rating := range answers {
			if rating == 5 {
				continue
			}
			question, _ := quiz.Question(id)
			before, _ := Find(first, question.Category)

			raised := AnswerSet{}
			for k, v := range answers {
				raised[k] = v
			}
			raised[id] = rating + 1
			after, ok := Find(ComputeResults(quiz, raised), question.Category)
			require.True(t, ok)
			assert.GreaterOrEqual(t, after.Percentage, before.Percentage)
			break
		}
	}
}

func TestComputeOverall(t *testing.T) {
	tests := []struct {
		name        string
		percentages []int
		want        int
	}{
		{"empty", nil, 0},
		{"single", []int{100}, 100},
		{"two", []int{60, 80}, 70},
		{"rounds half up", []int{60, 61}, 61},
		{"rounds down", []int{33, 33, 34}, 33},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var results []CategoryResult
			for _, p := range tt.percentages {
				results = append(results, CategoryResult{Percentage: p})
			}
			assert.Equal(t, tt.want, ComputeOverall(results))
		})
	}
}

func TestAnswered(t *testing.T) {
	quiz := sixCategoryQuiz()
	assert.False(t, Answered(quiz, AnswerSet{1: 3}))
	assert.True(t, Answered(quiz, AnswerSet{1: 1, 2: 2, 3: 3, 4: 4, 5: 5, 6: 1}))
}

func TestCompare(t *testing.T) {
	individual := []CategoryResult{
		{Category: catalog.Delivery, Name: "Delivery", Percentage: 80},
		{Category: catalog.Trust, Name: "Trust", Percentage: 40},
		{Category: catalog.Value, Name: "Value", Percentage: 65},
		{Category: catalog.Leadership, Name: "Leadership", Percentage: 50},
	}
	team := []CategoryResult{
		{Category: catalog.Delivery, Percentage: 70},
		{Category: catalog.Trust, Percentage: 60},
		{Category: catalog.Value, Percentage: 60},
	}

	rows := Compare(individual, team)

	require.Len(t, rows, 4)
	assert.Equal(t, Comparison{Category: catalog.Delivery, Name: "Delivery", Individual: 80, Team: 70, Diff: 10, Alignment: AlignmentAbove}, rows[0])
	assert.Equal(t, -20, rows[1].Diff)
	assert.Equal(t, AlignmentBelow, rows[1].Alignment)
	assert.Equal(t, 5, rows[2].Diff)
	assert.Equal(t, AlignmentAligned, rows[2].Alignment)
	// Team has no leadership result
	assert.Equal(t, 0, rows[3].Team)
	assert.Equal(t, AlignmentAbove, rows[3].Alignment)
}

func TestScoreBand(t *testing.T) {
	assert.Equal(t, BandExcellent, ScoreBand(100))
	assert.Equal(t, BandExcellent, ScoreBand(80))
	assert.Equal(t, BandGood, ScoreBand(79))
	assert.Equal(t, BandGood, ScoreBand(60))
	assert.Equal(t, BandFair, ScoreBand(59))
	assert.Equal(t, BandFair, ScoreBand(40))
	assert.Equal(t, BandLow, ScoreBand(39))
	assert.Equal(t, BandLow, ScoreBand(0))
}
