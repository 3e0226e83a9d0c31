package experiment

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/readiness-sim/readiness-sim/sim"
	"github.com/readiness-sim/readiness-sim/sim/workload"
)

// Scenario is the full configuration bundle of a Monte-Carlo run, loadable
// from YAML via LoadScenario(path).
type Scenario struct {
	Horizon          int                 `yaml:"horizon"`
	Trials           int                 `yaml:"trials"`
	Seed             int64               `yaml:"seed"`
	Workers          int                 `yaml:"workers,omitempty"` // 0 or 1 = sequential
	InitialInventory float64             `yaml:"initial_inventory"`
	PeriodDays       float64             `yaml:"period_days,omitempty"` // reporting only
	Economics        sim.Economics       `yaml:"economics"`
	Demand           workload.DemandSpec `yaml:"demand"`
	Signal           workload.SignalSpec `yaml:"signal"`
	Policies         []sim.PolicyConfig  `yaml:"policies"`
	Baseline         string              `yaml:"baseline,omitempty"` // policy name used for break-even
	Sweep            *SweepSpec          `yaml:"sweep,omitempty"`
}

// DefaultScenario returns the canonical 36-period readiness study: a legacy
// reorder-point system on a 12-period lead time against signal-driven,
// (s, S), oracle and hybrid policies.
func DefaultScenario() *Scenario {
	return &Scenario{
		Horizon:          36,
		Trials:           1000,
		Seed:             42,
		Workers:          1,
		InitialInventory: 60,
		PeriodDays:       30,
		Economics: sim.Economics{
			HoldingCostPerUnit: 500,
			StockoutPenalty:    50000,
			OrderingCost:       2000,
			UnitCost:           5000,
			RevenuePerUnit:     8000,
		},
		Demand: workload.DemandSpec{Process: "poisson", Mean: 5},
		Signal: workload.SignalSpec{Process: "uniform"},
		Policies: []sim.PolicyConfig{
			{Name: "legacy-erp", Kind: sim.PolicyReorderPoint, LeadTime: 12, ReorderPoint: 80, LotSize: 60},
			{Name: "readiness", Kind: sim.PolicySignal, LeadTime: 3, SignalThreshold: 0.75, LotSize: 60},
			{Name: "min-max", Kind: sim.PolicyMinMax, LeadTime: 12, ReorderPoint: 60, OrderUpTo: 180},
			{Name: "oracle", Kind: sim.PolicyOracle, LeadTime: 3},
			{Name: "hybrid", Kind: sim.PolicyHybrid, LeadTime: 3, ReorderPoint: 40, OrderUpTo: 80, SignalThreshold: 0.8, LotSize: 60},
		},
		Baseline: "legacy-erp",
	}
}

// LoadScenario reads and parses a YAML scenario file.
// Uses strict field checking: unknown keys are errors.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scenario: %w", err)
	}
	return ParseScenario(data)
}

// ParseScenario parses YAML scenario bytes. Fields absent from the document
// keep their DefaultScenario values, except policies, which replace the
// defaults wholesale when given.
func ParseScenario(data []byte) (*Scenario, error) {
	sc := DefaultScenario()
	sc.Policies = nil
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(sc); err != nil {
		return nil, fmt.Errorf("parsing scenario: %w", err)
	}
	if sc.Policies == nil {
		sc.Policies = DefaultScenario().Policies
	}
	return sc, nil
}

// TrialConfig returns the policy-independent trial configuration.
func (sc *Scenario) TrialConfig() *sim.TrialConfig {
	return &sim.TrialConfig{
		Horizon:          sc.Horizon,
		InitialInventory: sc.InitialInventory,
		Economics:        sc.Economics,
	}
}

// Validate checks every part of the scenario. It runs before any trial.
func (sc *Scenario) Validate() error {
	if sc.Trials < 0 {
		return fmt.Errorf("%w: trials must be non-negative, got %d", sim.ErrInvalidConfig, sc.Trials)
	}
	if sc.Workers < 0 {
		return fmt.Errorf("%w: workers must be non-negative, got %d", sim.ErrInvalidConfig, sc.Workers)
	}
	tc := sc.TrialConfig()
	if err := tc.Validate(); err != nil {
		return err
	}
	if err := sc.Demand.Validate(sc.Horizon); err != nil {
		return fmt.Errorf("%w: %v", sim.ErrInvalidConfig, err)
	}
	if err := sc.Signal.Validate(); err != nil {
		return fmt.Errorf("%w: %v", sim.ErrInvalidConfig, err)
	}
	if len(sc.Policies) == 0 {
		return fmt.Errorf("%w: no policies configured", sim.ErrInvalidConfig)
	}
	seen := make(map[string]bool, len(sc.Policies))
	for i := range sc.Policies {
		pc := &sc.Policies[i]
		if err := tc.CheckPolicy(pc); err != nil {
			return err
		}
		if seen[pc.Label()] {
			return fmt.Errorf("%w: duplicate policy name %q", sim.ErrInvalidConfig, pc.Label())
		}
		seen[pc.Label()] = true
	}
	if sc.Baseline != "" && !seen[sc.Baseline] {
		return fmt.Errorf("%w: baseline %q is not a configured policy", sim.ErrInvalidConfig, sc.Baseline)
	}
	if sc.Sweep != nil {
		if err := sc.Sweep.Validate(sc); err != nil {
			return err
		}
	}
	return nil
}

// Policy returns the configuration of the named policy.
func (sc *Scenario) Policy(name string) (*sim.PolicyConfig, bool) {
	for i := range sc.Policies {
		if sc.Policies[i].Label() == name {
			return &sc.Policies[i], true
		}
	}
	return nil, false
}

// Clone returns a deep copy, so a sweep can change one parameter without
// touching configuration shared with other runs.
func (sc *Scenario) Clone() *Scenario {
	out := *sc
	out.Policies = make([]sim.PolicyConfig, len(sc.Policies))
	for i, pc := range sc.Policies {
		if pc.CreditLimit != nil {
			limit := *pc.CreditLimit
			pc.CreditLimit = &limit
		}
		out.Policies[i] = pc
	}
	if sc.Demand.Values != nil {
		out.Demand.Values = append([]float64(nil), sc.Demand.Values...)
	}
	if sc.Signal.Noise != nil {
		noise := *sc.Signal.Noise
		out.Signal.Noise = &noise
	}
	if sc.Sweep != nil {
		sweep := *sc.Sweep
		sweep.Values = append([]float64(nil), sc.Sweep.Values...)
		out.Sweep = &sweep
	}
	return &out
}
