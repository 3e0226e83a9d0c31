package cmd

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/readiness-sim/readiness-sim/sim/experiment"
)

// newScenarioCmd returns a fresh command carrying the scenario and sweep flags.
// Registering the flags resets the package-level flag variables to their defaults.
func newScenarioCmd(t *testing.T) *cobra.Command {
	t.Helper()
	c := &cobra.Command{Use: "test"}
	addScenarioFlags(c)
	addSweepFlags(c)
	t.Cleanup(resetFlagVars)
	return c
}

func resetFlagVars() {
	configPath, preset, outputPath, logLevel = "", "baseline", "", "warn"
	sweepParameter, sweepPolicy, sweepValues, breakEvenAxis = "", "", nil, "value"
}

// captureStdout runs fn and returns what it wrote to os.Stdout.
func captureStdout(t *testing.T, fn func()) string {
	t.Helper()
	old := os.Stdout
	r, w, err := os.Pipe()
	require.NoError(t, err)
	os.Stdout = w

	done := make(chan string)
	go func() {
		var buf bytes.Buffer
		_, _ = io.Copy(&buf, r)
		done <- buf.String()
	}()

	fn()

	_ = w.Close()
	os.Stdout = old
	return <-done
}

func TestApplyOverrides_OnlyChangedFlagsWin(t *testing.T) {
	// GIVEN a scenario whose values differ from every flag default
	c := newScenarioCmd(t)
	sc := experiment.DefaultScenario()
	sc.Seed, sc.Trials, sc.Horizon, sc.Workers, sc.PeriodDays = 7, 250, 24, 3, 7

	// WHEN only --trials and --period-days are set on the command line
	require.NoError(t, c.Flags().Set("trials", "12"))
	require.NoError(t, c.Flags().Set("period-days", "0"))
	applyOverrides(c, sc)

	// THEN those two override the scenario and the rest keep the scenario's values
	assert.Equal(t, 12, sc.Trials)
	assert.Equal(t, 0.0, sc.PeriodDays)
	assert.Equal(t, int64(7), sc.Seed, "unset --seed must not reset the scenario seed to the flag default")
	assert.Equal(t, 24, sc.Horizon)
	assert.Equal(t, 3, sc.Workers)
}

func TestApplyOverrides_SeedFlag(t *testing.T) {
	c := newScenarioCmd(t)
	sc := experiment.DefaultScenario()

	require.NoError(t, c.Flags().Set("seed", "99"))
	applyOverrides(c, sc)

	assert.Equal(t, int64(99), sc.Seed)
	assert.Equal(t, experiment.DefaultScenario().Trials, sc.Trials)
}

func TestLoadScenario_PresetFallback(t *testing.T) {
	// GIVEN no --config and --preset black-swan
	c := newScenarioCmd(t)
	require.NoError(t, c.Flags().Set("preset", "black-swan"))

	// WHEN the scenario is resolved
	sc := loadScenario(c)

	// THEN it is the black-swan preset
	want := experiment.ScenarioBlackSwan()
	assert.Equal(t, want.Demand, sc.Demand)
	assert.Equal(t, want.Trials, sc.Trials)
}

func TestLoadScenario_DefaultPresetIsBaseline(t *testing.T) {
	c := newScenarioCmd(t)

	sc := loadScenario(c)

	assert.Equal(t, experiment.DefaultScenario(), sc)
}

func TestLoadScenario_ConfigFileTakesPrecedence(t *testing.T) {
	// GIVEN a scenario file and a preset flag at the same time
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	require.NoError(t, os.WriteFile(path, []byte("seed: 7\ntrials: 30\nhorizon: 12\n"), 0o644))
	c := newScenarioCmd(t)
	require.NoError(t, c.Flags().Set("config", path))
	require.NoError(t, c.Flags().Set("preset", "black-swan"))
	require.NoError(t, c.Flags().Set("trials", "4"))

	// WHEN the scenario is resolved
	sc := loadScenario(c)

	// THEN the file wins over the preset, and the changed flag wins over the file
	assert.Equal(t, int64(7), sc.Seed)
	assert.Equal(t, 12, sc.Horizon)
	assert.Equal(t, 4, sc.Trials)
	assert.Equal(t, "poisson", sc.Demand.Process)
}

func TestLoadScenario_UnknownPresetIsFatal(t *testing.T) {
	logger := logrus.StandardLogger()
	exit := logger.ExitFunc
	logger.ExitFunc = func(int) { panic("exit") }
	defer func() { logger.ExitFunc = exit }()

	c := newScenarioCmd(t)
	require.NoError(t, c.Flags().Set("preset", "no-such-study"))

	assert.Panics(t, func() { loadScenario(c) })
}

func TestSweepSpec_FlagsOverrideScenarioSweep(t *testing.T) {
	// GIVEN the signal-precision preset with its own nine-value sweep
	c := newScenarioCmd(t)
	sc := experiment.ScenarioSignalPrecision()

	// WHEN only --values is given
	require.NoError(t, c.Flags().Set("values", "0.1,0.3"))
	spec := sweepSpec(c, sc)

	// THEN the values are replaced and parameter and policy come from the scenario
	assert.Equal(t, experiment.SweepFalsePositiveRate, spec.Parameter)
	assert.Equal(t, "readiness", spec.Policy)
	assert.Equal(t, []float64{0.1, 0.3}, spec.Values)
	assert.Len(t, sc.Sweep.Values, 9, "scenario sweep must not be modified")
}

func TestSweepSpec_FromFlagsOnly(t *testing.T) {
	c := newScenarioCmd(t)
	sc := experiment.DefaultScenario()

	require.NoError(t, c.Flags().Set("parameter", "stockout_penalty"))
	require.NoError(t, c.Flags().Set("policy", "hybrid"))
	require.NoError(t, c.Flags().Set("values", "10000,50000"))
	spec := sweepSpec(c, sc)

	assert.Equal(t, experiment.SweepStockoutPenalty, spec.Parameter)
	assert.Equal(t, "hybrid", spec.Policy)
	assert.Equal(t, []float64{10000, 50000}, spec.Values)
	assert.NoError(t, spec.Validate(sc))
}

func TestParseBreakEvenAxis(t *testing.T) {
	tests := []struct {
		in      string
		want    experiment.BreakEvenAxis
		wantErr bool
	}{
		{"value", experiment.AxisValue, false},
		{"precision", experiment.AxisPrecision, false},
		{"cost", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseBreakEvenAxis(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSweepCommand_PrintsPointsAndWritesReport(t *testing.T) {
	// GIVEN a small precision sweep with a YAML report path
	t.Cleanup(resetFlagVars)
	resetFlagVars()
	path := filepath.Join(t.TempDir(), "sweep.yaml")
	rootCmd.SetArgs([]string{"sweep", "--preset", "signal-precision", "--trials", "3",
		"--values", "0,0.4", "--break-even-axis", "precision", "--output", path})
	defer rootCmd.SetArgs(nil)

	// WHEN the command runs
	out := captureStdout(t, func() {
		require.NoError(t, rootCmd.Execute())
	})

	// THEN one line per value is printed and the report holds the sweep
	assert.Contains(t, out, "=== Sweep: false_positive_rate on readiness ===")
	assert.Contains(t, out, "false_positive_rate=0 ")
	assert.Contains(t, out, "false_positive_rate=0.4 ")
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "parameter: false_positive_rate")
	assert.Contains(t, string(data), "mean_cost_by_value:")
}

func TestRunCommand_PrintsEveryPolicy(t *testing.T) {
	t.Cleanup(resetFlagVars)
	resetFlagVars()
	rootCmd.SetArgs([]string{"run", "--preset", "credit", "--trials", "2", "--horizon", "12"})
	defer rootCmd.SetArgs(nil)

	out := captureStdout(t, func() {
		require.NoError(t, rootCmd.Execute())
	})

	assert.Contains(t, out, "Trials: 2  Horizon: 12 periods")
	for _, name := range []string{"legacy-erp", "legacy-erp-capped", "readiness", "readiness-capped"} {
		assert.Contains(t, out, name)
	}
}
