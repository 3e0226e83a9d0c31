package blackswan

// H2 Black Swan Demand Spike
//
// Hypothesis: a tenfold demand spike over periods [12, 18) overwhelms the
// legacy 12-period lead time, while a signal correlated with upcoming demand
// lets the 3-period readiness policy recover much of the lost service.
//
// Method:
//   Run the default study and the black-swan preset with identical seeds and
//   compare stockout events and service level per policy.

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/readiness-sim/readiness-sim/sim/experiment"
)

func run(t *testing.T, sc *experiment.Scenario) *experiment.EvaluationResult {
	t.Helper()
	sc.Trials = 200
	sc.Workers = 4
	d, err := experiment.NewDriver(sc)
	require.NoError(t, err)
	res, err := d.Run()
	require.NoError(t, err)
	return res
}

func TestH2_BlackSwan(t *testing.T) {
	calm := run(t, experiment.DefaultScenario())
	swan := run(t, experiment.ScenarioBlackSwan())

	for _, name := range []string{"legacy-erp", "readiness", "hybrid"} {
		c, _ := calm.Summary(name)
		s, _ := swan.Summary(name)
		t.Logf("%-12s stockouts calm=%.2f swan=%.2f service calm=%.3f swan=%.3f",
			name, c.StockoutEvents, s.StockoutEvents, c.ServiceLevel.Mean, s.ServiceLevel.Mean)
	}

	calmLegacy, _ := calm.Summary("legacy-erp")
	swanLegacy, _ := swan.Summary("legacy-erp")
	assert.Greater(t, swanLegacy.StockoutEvents, calmLegacy.StockoutEvents)
	assert.Less(t, swanLegacy.ServiceLevel.Mean, calmLegacy.ServiceLevel.Mean)

	swanReadiness, _ := swan.Summary("readiness")
	assert.Greater(t, swanReadiness.ServiceLevel.Mean, swanLegacy.ServiceLevel.Mean)
}
