package sim

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidConfig is wrapped by every configuration validation failure.
var ErrInvalidConfig = errors.New("invalid configuration")

func invalidf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidConfig, fmt.Sprintf(format, args...))
}

// numericField is a named configuration value checked by Validate methods.
type numericField struct {
	name string
	v    float64
}

func finiteNonNegative(v float64) bool {
	return v >= 0 && !math.IsInf(v, 0)
}

// PolicyKind names one of the ordering policy variants.
type PolicyKind string

const (
	// PolicyReorderPoint orders a fixed lot when inventory position drops below the reorder point.
	PolicyReorderPoint PolicyKind = "reorder-point"
	// PolicyMinMax is the (s, S) policy: below s, order up to S.
	PolicyMinMax PolicyKind = "min-max"
	// PolicySignal orders a fixed lot whenever the readiness signal exceeds its threshold.
	PolicySignal PolicyKind = "signal"
	// PolicyOracle orders exactly the demand that will be due when the order lands.
	PolicyOracle PolicyKind = "oracle"
	// PolicyHybrid combines a reorder-point safety net with a signal surge trigger.
	PolicyHybrid PolicyKind = "hybrid"
)

// ValidPolicyKinds is the set of recognized policy kinds.
// Shared by PolicyConfig.Validate() and NewPolicy() to avoid duplication.
var ValidPolicyKinds = map[PolicyKind]bool{
	PolicyReorderPoint: true,
	PolicyMinMax:       true,
	PolicySignal:       true,
	PolicyOracle:       true,
	PolicyHybrid:       true,
}

// IsValidPolicyKind returns true if name is a recognized policy kind.
func IsValidPolicyKind(name string) bool {
	return ValidPolicyKinds[PolicyKind(name)]
}

// PolicyConfig holds the static parameters of one policy under test.
// Fields a kind does not use are ignored.
//
//   - reorder-point: ReorderPoint, LotSize
//   - min-max:       ReorderPoint (s), OrderUpTo (S)
//   - signal:        SignalThreshold, LotSize
//   - oracle:        none
//   - hybrid:        ReorderPoint (low s), OrderUpTo, SignalThreshold, LotSize
//
// A non-nil CreditLimit caps every order against the capital exposure limit.
type PolicyConfig struct {
	Name            string     `yaml:"name"`
	Kind            PolicyKind `yaml:"kind"`
	LeadTime        int        `yaml:"lead_time"`
	ReorderPoint    float64    `yaml:"reorder_point,omitempty"`
	OrderUpTo       float64    `yaml:"order_up_to,omitempty"`
	LotSize         float64    `yaml:"lot_size,omitempty"`
	SignalThreshold float64    `yaml:"signal_threshold,omitempty"`
	CreditLimit     *float64   `yaml:"credit_limit,omitempty"`
}

// Label returns the display name of the policy, falling back to its kind.
func (c *PolicyConfig) Label() string {
	if c.Name != "" {
		return c.Name
	}
	return string(c.Kind)
}

// UsesSignal reports whether the policy reads the readiness signal.
func (c *PolicyConfig) UsesSignal() bool {
	return c.Kind == PolicySignal || c.Kind == PolicyHybrid
}

// Validate checks the policy kind and the parameters that kind requires.
func (c *PolicyConfig) Validate() error {
	if !ValidPolicyKinds[c.Kind] {
		return invalidf("unknown policy kind %q", c.Kind)
	}
	if c.LeadTime < 1 {
		return invalidf("policy %q: lead_time must be at least 1 period, got %d", c.Label(), c.LeadTime)
	}
	fields := []numericField{
		{"reorder_point", c.ReorderPoint},
		{"order_up_to", c.OrderUpTo},
		{"lot_size", c.LotSize},
		{"signal_threshold", c.SignalThreshold},
	}
	if c.CreditLimit != nil {
		fields = append(fields, numericField{"credit_limit", *c.CreditLimit})
	}
	for _, f := range fields {
		if !finiteNonNegative(f.v) {
			return invalidf("policy %q: %s must be a finite non-negative number, got %v", c.Label(), f.name, f.v)
		}
	}
	switch c.Kind {
	case PolicyReorderPoint:
		if c.LotSize <= 0 {
			return invalidf("policy %q: lot_size must be positive, got %v", c.Label(), c.LotSize)
		}
	case PolicyMinMax:
		if c.OrderUpTo <= c.ReorderPoint {
			return invalidf("policy %q: order_up_to (%v) must exceed reorder_point (%v)", c.Label(), c.OrderUpTo, c.ReorderPoint)
		}
	case PolicySignal:
		if c.LotSize <= 0 {
			return invalidf("policy %q: lot_size must be positive, got %v", c.Label(), c.LotSize)
		}
		if c.SignalThreshold < 0 || c.SignalThreshold > 1 {
			return invalidf("policy %q: signal_threshold must be in [0, 1], got %v", c.Label(), c.SignalThreshold)
		}
	case PolicyHybrid:
		if c.LotSize <= 0 {
			return invalidf("policy %q: lot_size must be positive, got %v", c.Label(), c.LotSize)
		}
		if c.OrderUpTo <= 0 {
			return invalidf("policy %q: order_up_to must be positive, got %v", c.Label(), c.OrderUpTo)
		}
		if c.SignalThreshold < 0 || c.SignalThreshold > 1 {
			return invalidf("policy %q: signal_threshold must be in [0, 1], got %v", c.Label(), c.SignalThreshold)
		}
	}
	return nil
}

// Economics groups the unit economics of a trial.
type Economics struct {
	HoldingCostPerUnit float64 `yaml:"holding_cost_per_unit"` // per unit per period, charged on end-of-period stock
	StockoutPenalty    float64 `yaml:"stockout_penalty"`      // per period with any unmet demand
	OrderingCost       float64 `yaml:"ordering_cost"`         // per order placed
	UnitCost           float64 `yaml:"unit_cost"`             // purchase cost; drives capital exposure
	RevenuePerUnit     float64 `yaml:"revenue_per_unit"`      // sale price of a filled unit
}

// Validate rejects negative, NaN or infinite economics.
func (e Economics) Validate() error {
	fields := []numericField{
		{"holding_cost_per_unit", e.HoldingCostPerUnit},
		{"stockout_penalty", e.StockoutPenalty},
		{"ordering_cost", e.OrderingCost},
		{"unit_cost", e.UnitCost},
		{"revenue_per_unit", e.RevenuePerUnit},
	}
	for _, f := range fields {
		if !finiteNonNegative(f.v) {
			return invalidf("%s must be a finite non-negative number, got %v", f.name, f.v)
		}
	}
	return nil
}

// TrialConfig holds everything about a trial that does not vary by policy.
// Read-only once a run starts.
type TrialConfig struct {
	Horizon          int
	InitialInventory float64
	Economics        Economics
}

// Validate checks horizon, starting stock and economics.
func (c *TrialConfig) Validate() error {
	if c.Horizon < 0 {
		return invalidf("horizon must be non-negative, got %d", c.Horizon)
	}
	if !finiteNonNegative(c.InitialInventory) {
		return invalidf("initial_inventory must be non-negative, got %v", c.InitialInventory)
	}
	return c.Economics.Validate()
}

// CheckPolicy validates pc and its compatibility with this trial configuration.
func (c *TrialConfig) CheckPolicy(pc *PolicyConfig) error {
	if err := pc.Validate(); err != nil {
		return err
	}
	if pc.CreditLimit != nil && c.Economics.UnitCost <= 0 {
		return invalidf("policy %q: credit_limit requires a positive unit_cost", pc.Label())
	}
	return nil
}
