package experiment

import (
	"fmt"
	"math"
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/readiness-sim/readiness-sim/sim"
)

// SweepParameter names a scenario parameter that can be swept.
type SweepParameter string

const (
	SweepFalsePositiveRate SweepParameter = "false_positive_rate"
	SweepStockoutPenalty   SweepParameter = "stockout_penalty"
	SweepSignalThreshold   SweepParameter = "signal_threshold"
	SweepLeadTime          SweepParameter = "lead_time"
	SweepDemandMean        SweepParameter = "demand_mean"
)

// ValidSweepParameters is the set of recognized sweep parameters.
var ValidSweepParameters = map[SweepParameter]bool{
	SweepFalsePositiveRate: true,
	SweepStockoutPenalty:   true,
	SweepSignalThreshold:   true,
	SweepLeadTime:          true,
	SweepDemandMean:        true,
}

// SweepSpec repeats the full N-trial batch once per value of Parameter for
// the policy under test. The scenario's baseline, when set, is run alongside
// at every value.
type SweepSpec struct {
	Parameter SweepParameter `yaml:"parameter"`
	Policy    string         `yaml:"policy"`
	Values    []float64      `yaml:"values"`
}

// Validate checks the sweep against the scenario it will modify.
func (s *SweepSpec) Validate(sc *Scenario) error {
	if !ValidSweepParameters[s.Parameter] {
		return fmt.Errorf("%w: unknown sweep parameter %q", sim.ErrInvalidConfig, s.Parameter)
	}
	pc, ok := sc.Policy(s.Policy)
	if !ok {
		return fmt.Errorf("%w: sweep policy %q is not a configured policy", sim.ErrInvalidConfig, s.Policy)
	}
	if len(s.Values) == 0 {
		return fmt.Errorf("%w: sweep has no values", sim.ErrInvalidConfig)
	}
	switch s.Parameter {
	case SweepFalsePositiveRate:
		if sc.Signal.Process != "rates" {
			return fmt.Errorf("%w: sweeping %s needs the rates signal process, got %q", sim.ErrInvalidConfig, s.Parameter, sc.Signal.Process)
		}
	case SweepSignalThreshold:
		if !pc.UsesSignal() {
			return fmt.Errorf("%w: policy %q has no signal threshold", sim.ErrInvalidConfig, s.Policy)
		}
	case SweepLeadTime:
		for _, v := range s.Values {
			if v != math.Trunc(v) {
				return fmt.Errorf("%w: lead_time sweep values must be whole periods, got %v", sim.ErrInvalidConfig, v)
			}
		}
	case SweepDemandMean:
		if sc.Demand.Process != "poisson" && sc.Demand.Process != "spike" {
			return fmt.Errorf("%w: sweeping %s needs a poisson or spike demand process, got %q", sim.ErrInvalidConfig, s.Parameter, sc.Demand.Process)
		}
	}
	// Every value must yield a valid scenario before the first batch runs.
	for _, v := range s.Values {
		out, err := sc.withSweepValue(*s, v)
		if err != nil {
			return err
		}
		if err := out.Validate(); err != nil {
			return fmt.Errorf("sweep %s=%v: %w", s.Parameter, v, err)
		}
	}
	return nil
}

// SweepPoint is the outcome at one sweep value.
type SweepPoint struct {
	Value    float64  `yaml:"value"`
	Summary  Summary  `yaml:"summary"`
	Baseline *Summary `yaml:"baseline,omitempty"`
}

// SweepResult holds one point per sweep value, in the order given.
type SweepResult struct {
	Parameter SweepParameter
	Policy    string
	Baseline  string
	Points    []SweepPoint
}

// Sweep runs spec against the driver's scenario. Each value gets its own
// scenario copy; the driver's configuration is never modified.
func (d *Driver) Sweep(spec SweepSpec) (*SweepResult, error) {
	if err := spec.Validate(d.scenario); err != nil {
		return nil, err
	}
	res := &SweepResult{
		Parameter: spec.Parameter,
		Policy:    spec.Policy,
		Baseline:  d.scenario.Baseline,
		Points:    make([]SweepPoint, 0, len(spec.Values)),
	}
	for _, v := range spec.Values {
		sc, err := d.scenario.withSweepValue(spec, v)
		if err != nil {
			return nil, err
		}
		sub, err := NewDriver(sc)
		if err != nil {
			return nil, fmt.Errorf("sweep %s=%v: %w", spec.Parameter, v, err)
		}
		eval, err := sub.Run()
		if err != nil {
			return nil, fmt.Errorf("sweep %s=%v: %w", spec.Parameter, v, err)
		}
		point := SweepPoint{Value: v}
		point.Summary, _ = eval.Summary(spec.Policy)
		if res.Baseline != "" && res.Baseline != spec.Policy {
			if b, ok := eval.Summary(res.Baseline); ok {
				point.Baseline = &b
			}
		}
		logrus.Infof("sweep %s=%v: mean cost %.0f, realized precision %.3f",
			spec.Parameter, v, point.Summary.TotalCost.Mean, point.Summary.RealizedPrecision)
		res.Points = append(res.Points, point)
	}
	return res, nil
}

// withSweepValue returns a copy of sc holding the policy under test (and the
// baseline, if any) with the swept parameter set to v.
func (sc *Scenario) withSweepValue(spec SweepSpec, v float64) (*Scenario, error) {
	out := sc.Clone()
	out.Sweep = nil
	kept := out.Policies[:0]
	for _, pc := range out.Policies {
		if pc.Label() == spec.Policy || (sc.Baseline != "" && pc.Label() == sc.Baseline) {
			kept = append(kept, pc)
		}
	}
	out.Policies = kept
	target, _ := out.Policy(spec.Policy)

	switch spec.Parameter {
	case SweepFalsePositiveRate:
		out.Signal.FalsePositiveRate = v
	case SweepStockoutPenalty:
		out.Economics.StockoutPenalty = v
	case SweepSignalThreshold:
		target.SignalThreshold = v
	case SweepLeadTime:
		target.LeadTime = int(v)
	case SweepDemandMean:
		out.Demand.Mean = v
	default:
		return nil, fmt.Errorf("%w: unknown sweep parameter %q", sim.ErrInvalidConfig, spec.Parameter)
	}
	return out, nil
}

// CostByValue maps each sweep value to the policy's mean total cost.
func (r *SweepResult) CostByValue() map[float64]float64 {
	out := make(map[float64]float64, len(r.Points))
	for _, p := range r.Points {
		out[p.Value] = p.Summary.TotalCost.Mean
	}
	return out
}

// BreakEvenAxis selects the x-axis a break-even point is reported on.
type BreakEvenAxis string

const (
	// AxisValue orders points by the swept value.
	AxisValue BreakEvenAxis = "value"
	// AxisPrecision orders points by realized signal precision.
	AxisPrecision BreakEvenAxis = "precision"
)

// BreakEven walks the points in ascending order of axis and returns the x of
// the first point whose mean cost is below the baseline's mean cost at that
// point. ok is false when no point beats the baseline or no baseline was run.
func (r *SweepResult) BreakEven(axis BreakEvenAxis) (x float64, ok bool) {
	type candidate struct {
		x, cost, baseline float64
	}
	cands := make([]candidate, 0, len(r.Points))
	for _, p := range r.Points {
		if p.Baseline == nil {
			continue
		}
		c := candidate{x: p.Value, cost: p.Summary.TotalCost.Mean, baseline: p.Baseline.TotalCost.Mean}
		if axis == AxisPrecision {
			c.x = p.Summary.RealizedPrecision
		}
		cands = append(cands, c)
	}
	sort.SliceStable(cands, func(i, j int) bool { return cands[i].x < cands[j].x })
	for _, c := range cands {
		if c.cost < c.baseline {
			return c.x, true
		}
	}
	return 0, false
}

// Report builds the serializable form of r.
func (r *SweepResult) Report(axis BreakEvenAxis) *SweepReport {
	rep := &SweepReport{
		Parameter: string(r.Parameter),
		Policy:    r.Policy,
		Baseline:  r.Baseline,
		Costs:     r.CostByValue(),
		Points:    r.Points,
	}
	if x, ok := r.BreakEven(axis); ok {
		rep.BreakEven = &x
	}
	return rep
}
