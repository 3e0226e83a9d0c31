package experiment

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Report is the serializable form of an EvaluationResult.
type Report struct {
	RunID      string       `yaml:"run_id"`
	Seed       int64        `yaml:"seed"`
	Trials     int          `yaml:"trials"`
	Horizon    int          `yaml:"horizon"`
	Summaries  []Summary    `yaml:"summaries"`
	Sweep      *SweepReport `yaml:"sweep,omitempty"`
	WallTimeMs int64        `yaml:"wall_time_ms"`
}

// SweepReport is the serializable form of a SweepResult.
type SweepReport struct {
	Parameter string              `yaml:"parameter"`
	Policy    string              `yaml:"policy"`
	Baseline  string              `yaml:"baseline,omitempty"`
	Costs     map[float64]float64 `yaml:"mean_cost_by_value"`
	Points    []SweepPoint        `yaml:"points"`
	BreakEven *float64            `yaml:"break_even,omitempty"`
}

// Report builds the serializable form of r.
func (r *EvaluationResult) Report() *Report {
	return &Report{
		RunID:      r.RunID,
		Seed:       r.Scenario.Seed,
		Trials:     r.Scenario.Trials,
		Horizon:    r.Scenario.Horizon,
		Summaries:  r.Summaries,
		WallTimeMs: r.WallTime.Milliseconds(),
	}
}

// Print writes a human-readable comparison table.
// periodDays converts backorder durations to days; 0 reports periods.
func (r *EvaluationResult) Print(w io.Writer, periodDays float64) {
	unit, scale := "periods", 1.0
	if periodDays > 0 {
		unit, scale = "days", periodDays
	}
	fmt.Fprintf(w, "=== Simulation Summary (run %s) ===\n", r.RunID)
	fmt.Fprintf(w, "Trials: %d  Horizon: %d periods  Seed: %d\n", r.Scenario.Trials, r.Scenario.Horizon, r.Scenario.Seed)
	for _, s := range r.Summaries {
		fmt.Fprintf(w, "%-16s Total Cost=$%.0f (p5 $%.0f, p95 $%.0f) | Service Level=%.1f%% | Backorder=%.1f %s | Capital Efficiency=%.2fx\n",
			s.Policy, s.TotalCost.Mean, s.TotalCost.P5, s.TotalCost.P95,
			s.ServiceLevel.Mean*100, s.BackorderDuration.Mean*scale, unit, s.CapitalEfficiency.Mean)
		fmt.Fprintf(w, "%-16s   holding=$%.0f stockout=$%.0f ordering=$%.0f orders=%.1f stockouts=%.1f\n",
			"", s.HoldingCost, s.StockoutCost, s.OrderingCost, s.OrdersPlaced, s.StockoutEvents)
	}
}

// WriteYAML writes the report to path.
func WriteYAML(path string, report any) error {
	data, err := yaml.Marshal(report)
	if err != nil {
		return fmt.Errorf("encoding report: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}
	return nil
}
