// Package analysis scores meeting transcripts against team health criteria using an LLM.
package analysis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/jonathan/teamhealth/internal/llm"
	"github.com/jonathan/teamhealth/internal/prompts"
	"github.com/jonathan/teamhealth/internal/schemas"
)

// DefaultCriteria are offered before the user edits the list
var DefaultCriteria = []string{"Delivery", "Trust", "Leadership", "Value", "Collaboration", "Ownership"}

// MaxScore bounds every score the service returns
const MaxScore = 10

// CriterionScore is the score for one criterion
type CriterionScore struct {
	Score       float64 `json:"score"`
	Explanation string  `json:"explanation"`
}

// Result is the analysis of one transcript. It is display data only.
type Result struct {
	Summary      string                    `json:"summary"`
	OverallScore float64                   `json:"overallScore"`
	Scores       map[string]CriterionScore `json:"scores"`
	Strengths    []string                  `json:"strengths"`
	Improvements []string                  `json:"improvements"`
}

// ErrEmptyTranscript and ErrNoCriteria reject requests before any LLM call
var (
	ErrEmptyTranscript = errors.New("transcript is empty")
	ErrNoCriteria      = errors.New("at least one criterion is required")
)

// APICallError wraps a failed LLM call
type APICallError struct {
	Err error
}

func (e *APICallError) Error() string {
	return fmt.Sprintf("analysis service call failed: %v", e.Err)
}

func (e *APICallError) Unwrap() error {
	return e.Err
}

// ResponseError is returned when the LLM answer does not match the expected shape
type ResponseError struct {
	Raw string
	Err error
}

func (e *ResponseError) Error() string {
	return fmt.Sprintf("analysis service returned an invalid response: %v", e.Err)
}

func (e *ResponseError) Unwrap() error {
	return e.Err
}

// Analyzer calls the LLM with the meeting prompt
type Analyzer struct {
	client llm.Client
	tier   llm.ModelTier
	logger *zap.Logger
}

// NewAnalyzer creates an analyzer using the standard model tier
func NewAnalyzer(client llm.Client, logger *zap.Logger) *Analyzer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Analyzer{client: client, tier: llm.TierStandard, logger: logger}
}

// WithTier returns a copy of the analyzer using another model tier
func (a *Analyzer) WithTier(tier llm.ModelTier) *Analyzer {
	c := *a
	c.tier = tier
	return &c
}

// NormalizeCriteria trims names, drops blanks and removes exact duplicates, keeping first occurrence
func NormalizeCriteria(criteria []string) []string {
	seen := make(map[string]bool, len(criteria))
	out := make([]string, 0, len(criteria))
	for _, c := range criteria {
		c = strings.TrimSpace(c)
		if c == "" || seen[c] {
			continue
		}
		seen[c] = true
		out = append(out, c)
	}
	return out
}

// Analyze scores transcript against criteria. Scores in the answer are clamped to [0, MaxScore].
func (a *Analyzer) Analyze(ctx context.Context, transcript string, criteria []string) (*Result, error) {
	transcript = strings.TrimSpace(transcript)
	if transcript == "" {
		return nil, ErrEmptyTranscript
	}
	criteria = NormalizeCriteria(criteria)
	if len(criteria) == 0 {
		return nil, ErrNoCriteria
	}

	system, err := prompts.Get("analysis.json", "meeting-system")
	if err != nil {
		return nil, err
	}
	prompt, err := prompts.Render("analysis.json", "meeting-analysis", map[string]string{
		"Transcript": transcript,
		"Criteria":   strings.Join(criteria, ", "),
	})
	if err != nil {
		return nil, err
	}

	a.logger.Debug("analyzing transcript",
		zap.Int("transcript_chars", len(transcript)),
		zap.Strings("criteria", criteria),
		zap.String("model", a.client.GetModel(a.tier)))

	raw, err := a.client.GenerateJSON(ctx, system, prompt, a.tier)
	if err != nil {
		return nil, &APICallError{Err: err}
	}

	if err := schemas.Validate(schemas.MeetingAnalysis, raw); err != nil {
		return nil, &ResponseError{Raw: raw, Err: err}
	}

	var result Result
	if err := json.Unmarshal([]byte(raw), &result); err != nil {
		return nil, &ResponseError{Raw: raw, Err: err}
	}
	result.clamp()
	return &result, nil
}

func (r *Result) clamp() {
	r.OverallScore = clamp(r.OverallScore)
	for name, s := range r.Scores {
		s.Score = clamp(s.Score)
		r.Scores[name] = s
	}
	if r.Strengths == nil {
		r.Strengths = []string{}
	}
	if r.Improvements == nil {
		r.Improvements = []string{}
	}
}

func clamp(score float64) float64 {
	switch {
	case score < 0:
		return 0
	case score > MaxScore:
		return MaxScore
	default:
		return score
	}
}

// Band is a display bucket for a 0..10 score
type Band string

const (
	BandGood Band = "good"
	BandFair Band = "fair"
	BandPoor Band = "poor"
)

// ScoreBand buckets a score as >=8 good, >=6 fair, else poor
func ScoreBand(score float64) Band {
	switch {
	case score >= 8:
		return BandGood
	case score >= 6:
		return BandFair
	default:
		return BandPoor
	}
}
