package precision

// H3 Signal Precision Break-Even
//
// Hypothesis: realized precision falls as the false-positive rate rises, and
// below some precision the readiness policy costs more than the legacy system.
//
// Method:
//   Sweep the false-positive rate of a rates signal (TPR 0.9) from 0 to 0.8
//   and report mean cost per value and the break-even precision.

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/readiness-sim/readiness-sim/sim/experiment"
)

func TestH3_SignalPrecision(t *testing.T) {
	sc := experiment.ScenarioSignalPrecision()
	sc.Trials = 200
	sc.Workers = 4

	d, err := experiment.NewDriver(sc)
	require.NoError(t, err)
	res, err := d.Sweep(*sc.Sweep)
	require.NoError(t, err)

	for _, p := range res.Points {
		t.Logf("fpr=%.1f precision=%.3f cost=%.0f baseline=%.0f",
			p.Value, p.Summary.RealizedPrecision, p.Summary.TotalCost.Mean, p.Baseline.TotalCost.Mean)
	}
	if x, ok := res.BreakEven(experiment.AxisPrecision); ok {
		t.Logf("break-even precision: %.3f", x)
	} else {
		t.Log("readiness never beats legacy-erp in this sweep")
	}

	first, last := res.Points[0], res.Points[len(res.Points)-1]
	assert.Equal(t, 1.0, first.Summary.RealizedPrecision)
	assert.Less(t, last.Summary.RealizedPrecision, first.Summary.RealizedPrecision)
	assert.Greater(t, last.Summary.OrdersPlaced, first.Summary.OrdersPlaced, "false alarms turn into orders")
}
