package experiment

import (
	"sort"

	"github.com/readiness-sim/readiness-sim/sim"
	"github.com/readiness-sim/readiness-sim/sim/workload"
)

// Built-in scenario presets for the studies the simulator is usually run for.
// Each returns a fresh, valid Scenario built on DefaultScenario.
var presets = map[string]func() *Scenario{
	"baseline":         DefaultScenario,
	"black-swan":       ScenarioBlackSwan,
	"hybrid":           ScenarioHybrid,
	"signal-precision": ScenarioSignalPrecision,
	"cost-sensitivity": ScenarioCostSensitivity,
	"credit":           ScenarioCredit,
}

// Preset returns the named scenario preset.
func Preset(name string) (*Scenario, bool) {
	f, ok := presets[name]
	if !ok {
		return nil, false
	}
	return f(), true
}

// PresetNames returns the preset names in sorted order.
func PresetNames() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ScenarioBlackSwan hits the default study with a tenfold demand spike over
// periods [12, 18) and a demand-correlated signal that sees it coming.
func ScenarioBlackSwan() *Scenario {
	sc := DefaultScenario()
	sc.Trials = 500
	sc.Demand = workload.DemandSpec{Process: "spike", Mean: 5, SpikeLevel: 50, SpikeStart: 12, SpikeEnd: 18}
	sc.Signal = workload.SignalSpec{Process: "correlated"}
	return sc
}

// ScenarioHybrid compares the legacy system, a pure signal policy and a hybrid
// with a low reorder-point safety net, all three on fixed 60-unit lots.
func ScenarioHybrid() *Scenario {
	sc := DefaultScenario()
	sc.Trials = 500
	sc.Policies = []sim.PolicyConfig{
		{Name: "legacy-erp", Kind: sim.PolicyReorderPoint, LeadTime: 12, ReorderPoint: 80, LotSize: 60},
		{Name: "readiness", Kind: sim.PolicySignal, LeadTime: 3, SignalThreshold: 0.75, LotSize: 60},
		{Name: "hybrid", Kind: sim.PolicyHybrid, LeadTime: 3, ReorderPoint: 40, OrderUpTo: 100, SignalThreshold: 0.8, LotSize: 60},
	}
	return sc
}

// ScenarioSignalPrecision sweeps the signal's false-positive rate to find the
// precision below which the readiness policy stops beating the legacy system.
func ScenarioSignalPrecision() *Scenario {
	sc := DefaultScenario()
	sc.Trials = 500
	sc.Signal = workload.SignalSpec{Process: "rates", TruePositiveRate: 0.9, FalsePositiveRate: 0.1}
	sc.Sweep = &SweepSpec{
		Parameter: SweepFalsePositiveRate,
		Policy:    "readiness",
		Values:    []float64{0, 0.1, 0.2, 0.3, 0.4, 0.5, 0.6, 0.7, 0.8},
	}
	return sc
}

// ScenarioCostSensitivity sweeps the stockout penalty.
func ScenarioCostSensitivity() *Scenario {
	sc := DefaultScenario()
	sc.Trials = 500
	sc.Sweep = &SweepSpec{
		Parameter: SweepStockoutPenalty,
		Policy:    "readiness",
		Values:    []float64{10000, 25000, 50000, 100000, 200000},
	}
	return sc
}

// ScenarioCredit runs the legacy and readiness policies with and without a
// credit limit on the value of the inventory position.
func ScenarioCredit() *Scenario {
	sc := DefaultScenario()
	limit := 500000.0
	sc.Policies = []sim.PolicyConfig{
		{Name: "legacy-erp", Kind: sim.PolicyReorderPoint, LeadTime: 12, ReorderPoint: 80, LotSize: 60},
		{Name: "legacy-erp-capped", Kind: sim.PolicyReorderPoint, LeadTime: 12, ReorderPoint: 80, LotSize: 60, CreditLimit: &limit},
		{Name: "readiness", Kind: sim.PolicySignal, LeadTime: 3, SignalThreshold: 0.75, LotSize: 60},
		{Name: "readiness-capped", Kind: sim.PolicySignal, LeadTime: 3, SignalThreshold: 0.75, LotSize: 60, CreditLimit: &limit},
	}
	return sc
}
