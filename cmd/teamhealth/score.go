package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/jonathan/teamhealth/internal/catalog"
	"github.com/jonathan/teamhealth/internal/maturity"
	"github.com/jonathan/teamhealth/internal/observability"
	"github.com/jonathan/teamhealth/internal/report"
	"github.com/jonathan/teamhealth/internal/scoring"
)

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Score an answer file against a quiz",
	Long: `Score a JSON or YAML answer file mapping question id to rating (1-5) and print per-category
results, maturity tiers and the quiz's recommendations. Optionally export the report as a PDF.`,
	RunE: runScore,
}

var (
	scoreQuiz    string
	scoreAnswers string
	scorePDF     string
	scoreJSON    bool
)

// scoreOutput is the machine-readable form of a scored answer file
type scoreOutput struct {
	Kind     catalog.Kind              `json:"kind"`
	Answered int                       `json:"answered"`
	Total    int                       `json:"total"`
	Results  []scoring.CategoryResult  `json:"results"`
	Overall  maturity.Overall          `json:"overall"`
	Report   []maturity.CategoryReport `json:"report"`
}

func init() {
	scoreCmd.Flags().StringVarP(&scoreQuiz, "quiz", "q", string(catalog.KindTeamDiagnostic), "Quiz kind")
	scoreCmd.Flags().StringVarP(&scoreAnswers, "answers", "a", "", "Path to answers file, .json or .yaml (required)")
	scoreCmd.Flags().StringVar(&scorePDF, "pdf", "", "Write the report as PDF to this path")
	scoreCmd.Flags().BoolVar(&scoreJSON, "json", false, "Print JSON instead of formatted text")

	if err := scoreCmd.MarkFlagRequired("answers"); err != nil {
		panic(fmt.Sprintf("failed to mark answers flag as required: %v", err))
	}

	rootCmd.AddCommand(scoreCmd)
}

func runScore(cmd *cobra.Command, _ []string) error {
	registry, err := loadRegistry(appConfig)
	if err != nil {
		return err
	}
	quiz, ok := registry.Get(catalog.Kind(scoreQuiz))
	if !ok {
		return fmt.Errorf("unknown quiz %q", scoreQuiz)
	}

	answers, err := loadAnswers(scoreAnswers)
	if err != nil {
		return err
	}
	for id, rating := range answers {
		if _, ok := quiz.Question(id); !ok {
			return fmt.Errorf("answers file references unknown question %d", id)
		}
		if rating < catalog.MinRating || rating > catalog.MaxRating {
			return fmt.Errorf("question %d: rating %d is outside 1-5", id, rating)
		}
	}
	if !scoring.Answered(quiz, answers) {
		logger.Warn("answer set is incomplete; unanswered categories are omitted",
			zap.Int("answered", len(answers)),
			zap.Int("total", len(quiz.Questions)))
	}

	results := scoring.ComputeResults(quiz, answers)
	overall := maturity.ClassifyOverall(quiz, scoring.ComputeOverall(results))
	reports := maturity.ClassifyCategories(quiz, maturity.TeamActions, results)

	if scorePDF != "" {
		if err := writePDF(scorePDF, report.BuildDocument(quiz, overall, reports)); err != nil {
			return err
		}
		logger.Info("wrote report", zap.String("path", scorePDF))
	}

	out := cmd.OutOrStdout()
	if scoreJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(scoreOutput{
			Kind:     quiz.Kind,
			Answered: len(answers),
			Total:    len(quiz.Questions),
			Results:  results,
			Overall:  overall,
			Report:   reports,
		})
	}

	printer := observability.NewPrinter(out)
	printer.PrintOverall(quiz.Title, overall)
	printer.PrintCategories(reports)
	return nil
}

// loadAnswers reads a question id to rating map. Files ending in .yaml or .yml are YAML, anything else JSON.
func loadAnswers(path string) (scoring.AnswerSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read answers file: %w", err)
	}

	answers := scoring.AnswerSet{}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &answers); err != nil {
			return nil, fmt.Errorf("failed to parse answers YAML: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &answers); err != nil {
			return nil, fmt.Errorf("failed to parse answers JSON: %w", err)
		}
	}
	if len(answers) == 0 {
		return nil, fmt.Errorf("answers file %s contains no answers", path)
	}
	return answers, nil
}

func writePDF(path string, doc report.Document) error {
	return writeOutput(path, func(w io.Writer) error { return report.RenderPDF(w, doc) })
}

// writeOutput creates path and fills it with render. A failed render leaves no file behind.
func writeOutput(path string, render func(io.Writer) error) error {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create PDF file: %w", err)
	}
	if err := render(f); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return err
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(path)
		return fmt.Errorf("failed to write PDF file: %w", err)
	}
	return nil
}
