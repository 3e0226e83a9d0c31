package cmd

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/readiness-sim/readiness-sim/sim/experiment"
)

var (
	// Scenario selection
	configPath string // YAML scenario file; empty uses the preset
	preset     string // Named built-in scenario

	// Overrides applied on top of the scenario when the flag is set
	seed       int64   // Seed for demand and signal generation
	trials     int     // Number of Monte-Carlo trials
	horizon    int     // Periods per trial
	workers    int     // Trials run concurrently
	periodDays float64 // Days per period, for reporting backorder durations

	logLevel   string // Log verbosity level
	outputPath string // Optional YAML report path
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "readiness-sim",
	Short: "Monte-Carlo simulator for inventory replenishment policies",
}

// runCmd runs every configured policy over the same trials and prints the comparison
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Compare replenishment policies over a Monte-Carlo batch",
	Run: func(cmd *cobra.Command, args []string) {
		setupLogging()
		sc := loadScenario(cmd)

		driver, err := experiment.NewDriver(sc)
		if err != nil {
			logrus.Fatalf("Invalid scenario: %v", err)
		}
		result, err := driver.Run()
		if err != nil {
			logrus.Fatalf("Simulation failed: %v", err)
		}
		result.Print(os.Stdout, sc.PeriodDays)

		report := result.Report()
		if sc.Sweep != nil {
			sweep, err := driver.Sweep(*sc.Sweep)
			if err != nil {
				logrus.Fatalf("Sweep failed: %v", err)
			}
			printSweep(sweep, experiment.AxisValue)
			report.Sweep = sweep.Report(experiment.AxisValue)
		}
		writeReport(report)
		logrus.Info("Simulation complete.")
	},
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func setupLogging() {
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		logrus.Fatalf("Invalid log level: %s", logLevel)
	}
	logrus.SetLevel(level)
}

// loadScenario resolves the scenario from --config or --preset, then applies
// the command-line overrides that were explicitly set.
func loadScenario(cmd *cobra.Command) *experiment.Scenario {
	var sc *experiment.Scenario
	if configPath != "" {
		var err error
		sc, err = experiment.LoadScenario(configPath)
		if err != nil {
			logrus.Fatalf("Failed to load scenario: %v", err)
		}
		logrus.Infof("Loaded scenario from %s", configPath)
	} else {
		var ok bool
		sc, ok = experiment.Preset(preset)
		if !ok {
			logrus.Fatalf("Unknown preset %q; valid presets: %v", preset, experiment.PresetNames())
		}
	}
	applyOverrides(cmd, sc)
	return sc
}

func applyOverrides(cmd *cobra.Command, sc *experiment.Scenario) {
	flags := cmd.Flags()
	if flags.Changed("seed") {
		sc.Seed = seed
	}
	if flags.Changed("trials") {
		sc.Trials = trials
	}
	if flags.Changed("horizon") {
		sc.Horizon = horizon
	}
	if flags.Changed("workers") {
		sc.Workers = workers
	}
	if flags.Changed("period-days") {
		sc.PeriodDays = periodDays
	}
}

func writeReport(report *experiment.Report) {
	if outputPath == "" {
		return
	}
	if err := experiment.WriteYAML(outputPath, report); err != nil {
		logrus.Fatalf("Failed to write report: %v", err)
	}
	logrus.Infof("Report written to %s", outputPath)
}

func printSweep(res *experiment.SweepResult, axis experiment.BreakEvenAxis) {
	fmt.Printf("=== Sweep: %s on %s ===\n", res.Parameter, res.Policy)
	for _, p := range res.Points {
		line := fmt.Sprintf("%s=%-8g cost=$%.0f service=%.1f%% precision=%.3f",
			res.Parameter, p.Value, p.Summary.TotalCost.Mean, p.Summary.ServiceLevel.Mean*100, p.Summary.RealizedPrecision)
		if p.Baseline != nil {
			line += fmt.Sprintf(" | %s cost=$%.0f", res.Baseline, p.Baseline.TotalCost.Mean)
		}
		fmt.Println(line)
	}
	if x, ok := res.BreakEven(axis); ok {
		fmt.Printf("Break-even %s: %g\n", axis, x)
	} else if res.Baseline != "" {
		fmt.Printf("No %s beats %s\n", axis, res.Baseline)
	}
}

// addScenarioFlags registers the flags shared by every scenario-driven command.
func addScenarioFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&configPath, "config", "", "Path to a YAML scenario file")
	cmd.Flags().StringVar(&preset, "preset", "baseline", "Built-in scenario used when --config is not given")
	cmd.Flags().Int64Var(&seed, "seed", 42, "Seed for demand and signal generation")
	cmd.Flags().IntVar(&trials, "trials", 1000, "Number of Monte-Carlo trials")
	cmd.Flags().IntVar(&horizon, "horizon", 36, "Periods per trial")
	cmd.Flags().IntVar(&workers, "workers", 1, "Trials run concurrently")
	cmd.Flags().Float64Var(&periodDays, "period-days", 30, "Days per period when reporting backorder durations (0 reports periods)")
	cmd.Flags().StringVar(&logLevel, "log", "warn", "Log level (trace, debug, info, warn, error, fatal, panic)")
}

// init sets up CLI flags and subcommands
func init() {
	addScenarioFlags(runCmd)
	runCmd.Flags().StringVar(&outputPath, "output", "", "Write the report as YAML to this path")

	rootCmd.AddCommand(runCmd)
}
