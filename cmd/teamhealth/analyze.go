package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/teamhealth/internal/analysis"
	"github.com/jonathan/teamhealth/internal/llm"
	"github.com/jonathan/teamhealth/internal/observability"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Score a meeting transcript against team health criteria",
	Long:  "Sends a meeting transcript to the Gemini API and prints a summary, a 0-10 score per criterion, strengths and improvements.",
	RunE:  runAnalyze,
}

var (
	analyzeTranscript string
	analyzeCriteria   []string
	analyzeAPIKey     string
	analyzeTier       string
	analyzeModel      string
	analyzeJSON       bool
)

func init() {
	analyzeCmd.Flags().StringVarP(&analyzeTranscript, "transcript", "t", "", "Path to transcript text file (required)")
	analyzeCmd.Flags().StringSliceVarP(&analyzeCriteria, "criteria", "c", analysis.DefaultCriteria, "Criteria to score")
	analyzeCmd.Flags().StringVar(&analyzeAPIKey, "api-key", "", "Gemini API key (overrides GEMINI_API_KEY env var)")
	analyzeCmd.Flags().StringVar(&analyzeTier, "tier", string(llm.TierStandard), "Model tier: lite, standard or advanced")
	analyzeCmd.Flags().StringVar(&analyzeModel, "model", "", "Gemini model name for the selected tier (overrides the default)")
	analyzeCmd.Flags().BoolVar(&analyzeJSON, "json", false, "Print JSON instead of formatted text")

	if err := analyzeCmd.MarkFlagRequired("transcript"); err != nil {
		panic(fmt.Sprintf("failed to mark transcript flag as required: %v", err))
	}

	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, _ []string) error {
	transcript, err := os.ReadFile(analyzeTranscript)
	if err != nil {
		return fmt.Errorf("failed to read transcript file: %w", err)
	}

	// Get API key from flag or config
	apiKey := analyzeAPIKey
	if apiKey == "" {
		apiKey = appConfig.GeminiAPIKey
	}
	if apiKey == "" {
		return fmt.Errorf("API key is required (set GEMINI_API_KEY environment variable or use --api-key flag)")
	}

	tier := llm.ModelTier(analyzeTier)
	llmConfig := llm.DefaultConfig()
	if analyzeModel != "" {
		llmConfig = llmConfig.WithModel(tier, analyzeModel)
	}

	client, err := llm.NewGeminiClient(cmd.Context(), llmConfig, apiKey)
	if err != nil {
		return err
	}
	defer func() { _ = client.Close() }()

	analyzer := analysis.NewAnalyzer(client, logger.Named("analysis")).WithTier(tier)
	result, err := analyzer.Analyze(cmd.Context(), string(transcript), analyzeCriteria)
	if err != nil {
		return err
	}

	if analyzeJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}
	observability.NewPrinter(cmd.OutOrStdout()).PrintAnalysis(result)
	return nil
}
