package cli

import (
	"fmt"
	"strings"

	"bench-analytics/internal/aggregators"

	"github.com/spf13/cobra"
)

var compareCmd = &cobra.Command{
	Use:   "compare <provider[/model]> <provider[/model]>",
	Short: "Head-to-head comparison of two provider+model identities",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		results, window, err := loadResults()
		if err != nil {
			return err
		}

		a := identityFromArg(args[0])
		b := identityFromArg(args[1])

		comparison := aggregators.BuildComparison(newAggregator(), window, results, a, b)
		printComparison(cmd, comparison)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(compareCmd)
}

// identityFromArg splits "provider/model" into its parts. A bare provider
// compares across all of its models.
func identityFromArg(arg string) aggregators.ModelIdentity {
	if idx := strings.IndexByte(arg, '/'); idx >= 0 {
		return aggregators.ModelIdentity{Provider: arg[:idx], Model: arg[idx+1:]}
	}
	return aggregators.ModelIdentity{Provider: arg}
}

func printComparison(cmd *cobra.Command, comparison *aggregators.Comparison) {
	cmd.Printf("%s  window=%s\n\n", boldText("Head-to-head"), comparison.Window)
	cmd.Printf("  A: %s (n=%d)\n", sideLabel(comparison.A.Provider, comparison.A.Model), comparison.A.SampleSize)
	cmd.Printf("  B: %s (n=%d)\n\n", sideLabel(comparison.B.Provider, comparison.B.Model), comparison.B.SampleSize)

	cmd.Printf("%-12s %12s %12s   %s\n", "METRIC", "A", "B", "VERDICT")
	for _, row := range comparison.Metrics {
		verdict := row.Delta
		if row.Winner != "" {
			verdict = fmt.Sprintf("%s %s", greenText(row.Winner), row.Delta)
		}
		cmd.Printf("%-12s %12.2f %12.2f   %s\n", row.Metric, row.A, row.B, verdict)
	}
}

func sideLabel(provider, model string) string {
	if model == "" {
		return provider
	}
	return provider + "/" + model
}
