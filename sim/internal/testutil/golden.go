// Package testutil provides shared test infrastructure for the simulator.
// It holds the golden trial dataset types and assertion helpers used across
// the sim/ and sim/experiment/ test packages. It must not import sim, since
// sim's own tests import it.
package testutil

import (
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

// GoldenDataset represents the structure of testdata/golden_trials.json.
type GoldenDataset struct {
	Tests []GoldenTrialCase `json:"tests"`
}

// GoldenTrialCase is one deterministic trial with hand-checked expected metrics.
type GoldenTrialCase struct {
	Name             string          `json:"name"`
	Horizon          int             `json:"horizon"`
	InitialInventory float64         `json:"initial_inventory"`
	ConstantDemand   *float64        `json:"constant_demand,omitempty"`
	Demand           []float64       `json:"demand,omitempty"`
	Signal           []float64       `json:"signal,omitempty"`
	Surge            []bool          `json:"surge,omitempty"`
	Economics        GoldenEconomics `json:"economics"`
	Policy           GoldenPolicy    `json:"policy"`
	Metrics          GoldenMetrics   `json:"metrics"`
}

// GoldenEconomics mirrors the unit economics of a trial.
type GoldenEconomics struct {
	HoldingCostPerUnit float64 `json:"holding_cost_per_unit"`
	StockoutPenalty    float64 `json:"stockout_penalty"`
	OrderingCost       float64 `json:"ordering_cost"`
	UnitCost           float64 `json:"unit_cost"`
	RevenuePerUnit     float64 `json:"revenue_per_unit"`
}

// GoldenPolicy mirrors a policy configuration.
type GoldenPolicy struct {
	Kind            string   `json:"kind"`
	LeadTime        int      `json:"lead_time"`
	ReorderPoint    float64  `json:"reorder_point"`
	OrderUpTo       float64  `json:"order_up_to"`
	LotSize         float64  `json:"lot_size"`
	SignalThreshold float64  `json:"signal_threshold"`
	CreditLimit     *float64 `json:"credit_limit,omitempty"`
}

// GoldenMetrics represents the expected metrics from a golden trial.
type GoldenMetrics struct {
	// Exact match metrics
	StockoutEvents int     `json:"stockout_events"`
	OrdersPlaced   int     `json:"orders_placed"`
	TruePositives  int     `json:"true_positives"`
	FalsePositives int     `json:"false_positives"`
	EnqueuedUnits  float64 `json:"enqueued_units"`
	ReceivedUnits  float64 `json:"received_units"`
	PendingUnits   float64 `json:"pending_units"`

	// Costs
	TotalCost    float64 `json:"total_cost"`
	HoldingCost  float64 `json:"holding_cost"`
	StockoutCost float64 `json:"stockout_cost"`
	OrderingCost float64 `json:"ordering_cost"`

	// Ratios, compared with relative tolerance
	ServiceLevel          float64 `json:"service_level"`
	MeanBackorderDuration float64 `json:"mean_backorder_duration"`
	CapitalEfficiency     float64 `json:"capital_efficiency"`
}

// DemandSeries returns the case's demand, expanding constant_demand to the horizon.
func (c GoldenTrialCase) DemandSeries() []float64 {
	if c.ConstantDemand != nil {
		return ConstantSeries(c.Horizon, *c.ConstantDemand)
	}
	return c.Demand
}

// LoadGoldenDataset loads the golden dataset from the testdata directory.
// The path is resolved relative to this source file: sim/internal/testutil/ → testdata/.
func LoadGoldenDataset(t *testing.T) *GoldenDataset {
	t.Helper()

	_, thisFile, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("Failed to get current file path")
	}
	// Navigate from sim/internal/testutil/ to repo root testdata/
	path := filepath.Join(filepath.Dir(thisFile), "..", "..", "..", "testdata", "golden_trials.json")
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read golden dataset: %v", err)
	}

	var dataset GoldenDataset
	if err := json.Unmarshal(data, &dataset); err != nil {
		t.Fatalf("Failed to parse golden dataset: %v", err)
	}

	return &dataset
}

// ConstantSeries returns n copies of v.
func ConstantSeries(n int, v float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = v
	}
	return out
}

// AssertFloat64Equal compares two float64 values with relative tolerance.
func AssertFloat64Equal(t *testing.T, name string, want, got, relTol float64) {
	t.Helper()
	if want == 0 && got == 0 {
		return
	}
	diff := math.Abs(want - got)
	maxVal := math.Max(math.Abs(want), math.Abs(got))
	if diff/maxVal > relTol {
		t.Errorf("%s: got %v, want %v (diff=%v, relDiff=%v)", name, got, want, diff, diff/maxVal)
	}
}
