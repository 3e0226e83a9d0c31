package cmd

import (
	"fmt"
	"sort"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/readiness-sim/readiness-sim/sim/experiment"
	"github.com/readiness-sim/readiness-sim/sim/trace"
)

var (
	tracePolicy string // Policy to replay
	traceTrial  int    // Trial index to replay
	traceOrders bool   // Print every order record
)

// traceCmd replays one trial of one policy with decision tracing enabled
var traceCmd = &cobra.Command{
	Use:   "trace",
	Short: "Replay a single trial and print its order and stockout trace",
	Run: func(cmd *cobra.Command, args []string) {
		setupLogging()
		sc := loadScenario(cmd)
		if tracePolicy == "" {
			logrus.Fatalf("--policy is required")
		}
		driver, err := experiment.NewDriver(sc)
		if err != nil {
			logrus.Fatalf("Invalid scenario: %v", err)
		}
		res, st, err := driver.TraceTrial(tracePolicy, traceTrial)
		if err != nil {
			logrus.Fatalf("Trace failed: %v", err)
		}

		if traceOrders {
			for _, o := range st.Orders {
				fmt.Printf("period %3d %-13s position=%6.0f signal=%.2f proposed=%5.0f placed=%5.0f arrives=%d\n",
					o.Period, o.Reason, o.Position, o.Signal, o.Proposed, o.Placed, o.ArrivalPeriod)
			}
		}
		s := trace.Summarize(st)
		fmt.Printf("=== Trace: %s, trial %d ===\n", tracePolicy, traceTrial)
		fmt.Printf("Total cost: $%.0f  Service level: %.1f%%\n", res.TotalCost, res.ServiceLevel*100)
		fmt.Printf("Decisions: %d  Orders placed: %d  Suppressed: %d\n", s.TotalDecisions, s.OrdersPlaced, s.OrdersSuppressed)
		fmt.Printf("Units proposed: %.0f  placed: %.0f  capped: %.0f\n", s.ProposedUnits, s.PlacedUnits, s.CappedUnits)
		reasons := make([]string, 0, len(s.ReasonDistribution))
		for r := range s.ReasonDistribution {
			reasons = append(reasons, r)
		}
		sort.Strings(reasons)
		for _, r := range reasons {
			fmt.Printf("  %s: %d\n", r, s.ReasonDistribution[r])
		}
		fmt.Printf("Stockout periods: %d  Missed units: %.0f  Longest stockout: %d periods\n",
			s.StockoutPeriods, s.MissedUnits, s.LongestStockout)
	},
}

func init() {
	addScenarioFlags(traceCmd)
	traceCmd.Flags().StringVar(&tracePolicy, "policy", "", "Policy to replay")
	traceCmd.Flags().IntVar(&traceTrial, "trial", 0, "Trial index to replay")
	traceCmd.Flags().BoolVar(&traceOrders, "orders", false, "Print every order record")

	rootCmd.AddCommand(traceCmd)
}
