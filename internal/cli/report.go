package cli

import (
	"fmt"
	"strings"

	"bench-analytics/internal/aggregators"
	"bench-analytics/internal/models"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var reportTopN int

var (
	greenText  = color.New(color.FgGreen).SprintFunc()
	yellowText = color.New(color.FgYellow).SprintFunc()
	redText    = color.New(color.FgRed).SprintFunc()
	boldText   = color.New(color.Bold).SprintFunc()
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Print provider summaries and rankings for a results file",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		results, window, err := loadResults()
		if err != nil {
			return err
		}

		snapshot := aggregators.BuildSnapshot(newAggregator(), window, results, reportTopN)
		printSnapshot(cmd, snapshot)
		return nil
	},
}

func init() {
	reportCmd.Flags().IntVar(&reportTopN, "top", 3, "how many providers to list per ranking")
	rootCmd.AddCommand(reportCmd)
}

func printSnapshot(cmd *cobra.Command, snapshot *aggregators.DashboardSnapshot) {
	cmd.Printf("%s  window=%s  samples=%d  providers=%d\n\n",
		boldText("Benchmark report"), snapshot.Window, snapshot.SampleSize, len(snapshot.Providers))

	cmd.Printf("%-14s %9s %9s %9s %9s %10s %8s %8s\n",
		"PROVIDER", "AVG TTFT", "P50", "P95", "JITTER", "AVG TPS", "$/1M", "VALUE")
	for _, p := range snapshot.Providers {
		cmd.Printf("%-14s %9.1f %9.1f %9.1f %9s %10.1f %8.2f %8.0f\n",
			p.ProviderDisplayName,
			p.AvgTTFT, p.P50TTFT, p.P95TTFT,
			colorJitter(p),
			p.AvgTPS, p.AvgCost, p.ValueScore)
	}

	cmd.Printf("\n%s\n", boldText("Rankings"))
	cmd.Printf("  Fastest:      %s\n", providerNames(snapshot.TopFastest))
	cmd.Printf("  Slowest:      %s\n", providerNames(snapshot.TopSlowest))
	cmd.Printf("  Best value:   %s\n", providerNames(snapshot.TopBestValue))
	cmd.Printf("  Most stable:  %s\n", providerNames(snapshot.TopMostStable))

	cmd.Printf("\n%s\n", boldText("Fleet"))
	cmd.Printf("  Speed gap:    %.0f×\n", snapshot.SpeedGap)
	cmd.Printf("  Cost spread:  %.1f×\n", snapshot.CostSpread)
	cmd.Printf("  Reliability:  %.1f%%\n", snapshot.ReliabilityRate)
	cmd.Printf("  MTBF:         %s\n", snapshot.MTBF)

	if len(snapshot.Efficiency) > 0 {
		cmd.Printf("\n%s\n", boldText("Efficiency"))
		for _, e := range snapshot.Efficiency {
			cmd.Printf("  %-14s %3d\n", models.DisplayName(e.Provider), e.Score)
		}
	}

	if len(snapshot.Stability) > 0 {
		cmd.Printf("\n%s\n", boldText("Stability (ratio to median TTFT)"))
		for _, s := range snapshot.Stability {
			cmd.Printf("  %-14s p95 %.1f  p99 %.1f  (n=%d)\n",
				models.DisplayName(s.Provider), s.P95ToMedian, s.P99ToMedian, s.SampleSize)
		}
	}
}

func colorJitter(p *models.ProviderMetrics) string {
	value := fmt.Sprintf("%.1f", p.Jitter)
	switch p.JitterColor {
	case models.JitterGreen:
		return greenText(value)
	case models.JitterYellow:
		return yellowText(value)
	default:
		return redText(value)
	}
}

func providerNames(metrics []*models.ProviderMetrics) string {
	if len(metrics) == 0 {
		return "-"
	}
	names := make([]string, 0, len(metrics))
	for _, p := range metrics {
		names = append(names, p.ProviderDisplayName)
	}
	return strings.Join(names, ", ")
}
