package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuiltinQuizzes_Valid(t *testing.T) {
	for _, q := range []*Quiz{TeamDiagnostic(), Individual(), QuickTest()} {
		t.Run(string(q.Kind), func(t *testing.T) {
			require.NoError(t, q.Validate())
			assert.Len(t, q.Categories, 6)
		})
	}
}

func TestTeamDiagnostic_SixQuestionsPerCategory(t *testing.T) {
	q := TeamDiagnostic()
	require.Len(t, q.Questions, 36)

	counts := make(map[CategoryKey]int)
	for _, question := range q.Questions {
		counts[question.Category]++
	}
	for _, c := range q.Categories {
		assert.Equal(t, 6, counts[c.Key], "category %s", c.Key)
	}

	assert.Equal(t, GranularityFine, q.Granularity)
	assert.Equal(t, ReportActions, q.Report)
	assert.True(t, q.AllowRevise)
}

func TestIndividual_MultipleChoice(t *testing.T) {
	q := Individual()
	require.Len(t, q.Questions, 12)
	for _, question := range q.Questions {
		assert.Len(t, question.Options, 5, "question %d", question.ID)
	}
	assert.Equal(t, ReportFeedback, q.Report)
}

func TestQuickTest_Configuration(t *testing.T) {
	q := QuickTest()
	require.Len(t, q.Questions, 12)
	assert.Equal(t, GranularityCoarse, q.Granularity)
	assert.Equal(t, ReportNone, q.Report)
	assert.False(t, q.AllowRevise)

	_, ok := q.Category(Collaboration)
	assert.True(t, ok)
	_, ok = q.Category(Communication)
	assert.False(t, ok)
}

func TestCategoryColors_ConsistentAcrossQuizzes(t *testing.T) {
	colors := make(map[CategoryKey]string)
	for _, q := range []*Quiz{TeamDiagnostic(), Individual(), QuickTest()} {
		for _, c := range q.Categories {
			if existing, ok := colors[c.Key]; ok {
				assert.Equal(t, existing, c.Color, "color drift for %s in %s", c.Key, q.Kind)
			}
			colors[c.Key] = c.Color
		}
	}
}

func TestQuiz_Validate_DuplicateID(t *testing.T) {
	q := QuickTest()
	q.Questions[1].ID = q.Questions[0].ID

	err := q.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate question id")
}

func TestQuiz_Validate_UnknownCategory(t *testing.T) {
	q := QuickTest()
	q.Questions[0].Category = Communication

	err := q.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown category")
}

func TestQuiz_Validate_OptionsLength(t *testing.T) {
	q := Individual()
	q.Questions[0].Options = q.Questions[0].Options[:3]

	assert.Error(t, q.Validate())
}

func TestQuiz_Validate_BadColor(t *testing.T) {
	q := QuickTest()
	q.Categories[0].Color = "orange"

	assert.Error(t, q.Validate())
}

func TestRatingLabel(t *testing.T) {
	team := TeamDiagnostic()
	question, ok := team.Question(1)
	require.True(t, ok)
	assert.Equal(t, "Never", team.RatingLabel(question, 1))
	assert.Equal(t, "Always", team.RatingLabel(question, 5))
	assert.Empty(t, team.RatingLabel(question, 0))
	assert.Empty(t, team.RatingLabel(question, 6))

	individual := Individual()
	question, ok = individual.Question(4)
	require.True(t, ok)
	assert.Equal(t, "To blame others or external factors and move on.", individual.RatingLabel(question, 1))
}

func TestCategoryName_FallsBackToKey(t *testing.T) {
	q := TeamDiagnostic()
	assert.Equal(t, "Trust & Psychological Safety", q.CategoryName(Trust))
	assert.Equal(t, "collaboration", q.CategoryName(Collaboration))
}

func TestDefaultRegistry(t *testing.T) {
	r := Default()

	quizzes := r.List()
	require.Len(t, quizzes, 3)
	assert.Equal(t, KindTeamDiagnostic, quizzes[0].Kind)
	assert.Equal(t, KindIndividual, quizzes[1].Kind)
	assert.Equal(t, KindQuickTest, quizzes[2].Kind)

	_, ok := r.Get("missing")
	assert.False(t, ok)
}

func TestRegistry_RegisterReplaces(t *testing.T) {
	r := Default()
	replacement := QuickTest()
	replacement.Title = "Replaced"

	require.NoError(t, r.Register(replacement))

	got, ok := r.Get(KindQuickTest)
	require.True(t, ok)
	assert.Equal(t, "Replaced", got.Title)
	assert.Len(t, r.List(), 3)
}

func TestRegistry_RegisterNil(t *testing.T) {
	r := Default()
	assert.Error(t, r.Register(nil))
}

const pulseYAML = `kind: pulse
title: Weekly Pulse
categories:
  - key: trust
    name: Trust
    color: "#f97316"
  - key: value
    name: Value
questions:
  - id: 1
    text: I feel safe to speak up.
    category: trust
  - id: 2
    text: Our work matters.
    category: value
`

func TestLoadFile_Defaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pulse.yaml")
	require.NoError(t, os.WriteFile(path, []byte(pulseYAML), 0o644))

	q, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, Kind("pulse"), q.Kind)
	assert.Equal(t, GranularityCoarse, q.Granularity)
	assert.Equal(t, ReportNone, q.Report)
	assert.Len(t, q.Questions, 2)
}

func TestLoadFile_Invalid(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "broken.yaml")
	require.NoError(t, os.WriteFile(path, []byte("kind: broken\ntitle: Broken\n"), 0o644))

	_, err := LoadFile(path)
	assert.Error(t, err)
}

func TestLoadFile_Missing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read quiz file")
}

func TestRegistry_LoadDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "pulse.yml"), []byte(pulseYAML), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0o644))

	r := Default()
	n, err := r.LoadDir(dir)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	_, ok := r.Get("pulse")
	assert.True(t, ok)
	assert.Len(t, r.List(), 4)
}
