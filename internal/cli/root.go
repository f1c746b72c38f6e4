// Package cli implements benchctl, the offline companion to the bench-analytics
// service. It runs the same aggregation core over benchmark results loaded
// from a JSON file, without a database or a running server.
package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"bench-analytics/internal/aggregators"
	"bench-analytics/internal/models"

	"github.com/spf13/cobra"
)

var (
	inputPath      string
	windowName     string
	jitterGreenMs  float64
	jitterYellowMs float64
)

var rootCmd = &cobra.Command{
	Use:   "benchctl",
	Short: "benchctl — offline analysis of AI provider benchmark results",
	Long: `benchctl reads raw benchmark results (the JSON accepted by the
bench-analytics ingest API) from a file and computes the same provider
summaries, rankings, and head-to-head comparisons the dashboard serves.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&inputPath, "input", "i", "", "path to a JSON file of benchmark results (required)")
	rootCmd.PersistentFlags().StringVarP(&windowName, "window", "w", "24h", "time window label for the report (1h, 24h, 7d, 30d)")
	rootCmd.PersistentFlags().Float64Var(&jitterGreenMs, "jitter-green-ms", aggregators.DefaultJitterGreenMs, "jitter below this reads green")
	rootCmd.PersistentFlags().Float64Var(&jitterYellowMs, "jitter-yellow-ms", aggregators.DefaultJitterYellowMs, "jitter below this reads yellow")
	_ = rootCmd.MarkPersistentFlagRequired("input")
}

// loadResults reads benchmark results from the input file. Both a bare JSON
// array and the ingest batch envelope ({"results": [...]}) are accepted.
func loadResults() ([]*models.BenchmarkResult, models.TimeWindow, error) {
	window, err := models.NewTimeWindowFromString(windowName)
	if err != nil {
		return nil, "", err
	}

	data, err := os.ReadFile(inputPath)
	if err != nil {
		return nil, "", fmt.Errorf("unable to read results file %s: %w", inputPath, err)
	}

	var results []*models.BenchmarkResult
	if err := json.Unmarshal(data, &results); err == nil {
		return results, window, nil
	}

	var envelope struct {
		Results []*models.BenchmarkResult `json:"results"`
	}
	if err := json.Unmarshal(data, &envelope); err != nil {
		return nil, "", fmt.Errorf("unable to parse results JSON %s: %w", inputPath, err)
	}
	return envelope.Results, window, nil
}

func newAggregator() aggregators.ProviderAggregator {
	return aggregators.NewProviderAggregator(aggregators.JitterThresholds{
		GreenMs:  jitterGreenMs,
		YellowMs: jitterYellowMs,
	})
}
