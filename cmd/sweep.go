package cmd

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/readiness-sim/readiness-sim/sim/experiment"
)

var (
	sweepParameter string    // Parameter to sweep
	sweepPolicy    string    // Policy under test
	sweepValues    []float64 // Values of the swept parameter
	breakEvenAxis  string    // "value" or "precision"
)

// sweepCmd repeats the batch for each value of one parameter and reports the break-even point
var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Sweep one scenario parameter and find where a policy beats the baseline",
	Run: func(cmd *cobra.Command, args []string) {
		setupLogging()
		sc := loadScenario(cmd)

		spec := sweepSpec(cmd, sc)
		sc.Sweep = &spec

		axis, err := parseBreakEvenAxis(breakEvenAxis)
		if err != nil {
			logrus.Fatalf("%v", err)
		}

		driver, err := experiment.NewDriver(sc)
		if err != nil {
			logrus.Fatalf("Invalid scenario: %v", err)
		}
		res, err := driver.Sweep(spec)
		if err != nil {
			logrus.Fatalf("Sweep failed: %v", err)
		}
		printSweep(res, axis)

		writeReport(&experiment.Report{
			Seed:    sc.Seed,
			Trials:  sc.Trials,
			Horizon: sc.Horizon,
			Sweep:   res.Report(axis),
		})
	},
}

// sweepSpec starts from the scenario's own sweep, if any, and applies the
// sweep flags that were explicitly set.
func sweepSpec(cmd *cobra.Command, sc *experiment.Scenario) experiment.SweepSpec {
	spec := experiment.SweepSpec{}
	if sc.Sweep != nil {
		spec = *sc.Sweep
		spec.Values = append([]float64(nil), sc.Sweep.Values...)
	}
	flags := cmd.Flags()
	if flags.Changed("parameter") {
		spec.Parameter = experiment.SweepParameter(sweepParameter)
	}
	if flags.Changed("policy") {
		spec.Policy = sweepPolicy
	}
	if flags.Changed("values") {
		spec.Values = sweepValues
	}
	return spec
}

func parseBreakEvenAxis(name string) (experiment.BreakEvenAxis, error) {
	switch axis := experiment.BreakEvenAxis(name); axis {
	case experiment.AxisValue, experiment.AxisPrecision:
		return axis, nil
	default:
		return "", fmt.Errorf("invalid break-even axis %q; valid: value, precision", name)
	}
}

// addSweepFlags registers the flags that select and shape a sweep.
func addSweepFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&sweepParameter, "parameter", "", "Parameter to sweep (false_positive_rate, stockout_penalty, signal_threshold, lead_time, demand_mean)")
	cmd.Flags().StringVar(&sweepPolicy, "policy", "", "Policy under test")
	cmd.Flags().Float64SliceVar(&sweepValues, "values", nil, "Comma-separated values of the swept parameter")
	cmd.Flags().StringVar(&breakEvenAxis, "break-even-axis", "value", "Axis the break-even point is reported on (value, precision)")
}

func init() {
	addScenarioFlags(sweepCmd)
	addSweepFlags(sweepCmd)
	sweepCmd.Flags().StringVar(&outputPath, "output", "", "Write the sweep report as YAML to this path")

	rootCmd.AddCommand(sweepCmd)
}
