package sim

import "fmt"

// TriggerReason records which rule produced an order.
type TriggerReason string

const (
	ReasonNone         TriggerReason = ""
	ReasonReorderPoint TriggerReason = "reorder-point"
	ReasonOrderUpTo    TriggerReason = "order-up-to"
	ReasonSignal       TriggerReason = "signal"
	ReasonForecast     TriggerReason = "forecast"
)

// DecisionInput is the trial state a policy may look at when deciding.
// Position is on-hand plus in-transit, measured after this period's arrivals
// and fulfillment and before any new order.
type DecisionInput struct {
	Period    int
	Position  float64
	OnHand    float64
	InTransit float64
	Signal    float64
	// Future is the whole demand series of the trial. Only the oracle may
	// read periods after Period.
	Future Forecast
}

// Decision is a policy's answer for one period. Quantity is never negative;
// zero means no order.
type Decision struct {
	Quantity float64
	Reason   TriggerReason
}

// Policy decides how much to order in a period. Implementations are pure:
// the same input always yields the same decision, and they hold no mutable
// state, so one Policy value is shared by every trial in a run.
type Policy interface {
	Decide(in DecisionInput) Decision
	Config() *PolicyConfig
}

// ReorderPoint orders a fixed lot when the inventory position falls below the reorder point.
type ReorderPoint struct {
	cfg *PolicyConfig
}

func (p *ReorderPoint) Config() *PolicyConfig { return p.cfg }

func (p *ReorderPoint) Decide(in DecisionInput) Decision {
	if in.Position < p.cfg.ReorderPoint {
		return Decision{Quantity: p.cfg.LotSize, Reason: ReasonReorderPoint}
	}
	return Decision{}
}

// MinMax is the (s, S) policy: below s, order enough to bring the position up to S.
type MinMax struct {
	cfg *PolicyConfig
}

func (p *MinMax) Config() *PolicyConfig { return p.cfg }

func (p *MinMax) Decide(in DecisionInput) Decision {
	if in.Position < p.cfg.ReorderPoint {
		return Decision{Quantity: p.cfg.OrderUpTo - in.Position, Reason: ReasonOrderUpTo}
	}
	return Decision{}
}

// SignalTrigger orders a fixed lot whenever the signal exceeds the threshold.
// It ignores inventory entirely: a strategic pre-emptive buy. Under a
// sustained high signal it keeps ordering every period.
type SignalTrigger struct {
	cfg *PolicyConfig
}

func (p *SignalTrigger) Config() *PolicyConfig { return p.cfg }

func (p *SignalTrigger) Decide(in DecisionInput) Decision {
	if in.Signal > p.cfg.SignalThreshold {
		return Decision{Quantity: p.cfg.LotSize, Reason: ReasonSignal}
	}
	return Decision{}
}

// Oracle orders exactly the demand due in the period its order will land.
// Near the end of the horizon, where that period is past the series, it orders nothing.
type Oracle struct {
	cfg *PolicyConfig
}

func (p *Oracle) Config() *PolicyConfig { return p.cfg }

func (p *Oracle) Decide(in DecisionInput) Decision {
	demand, ok := in.Future.At(in.Period + p.cfg.LeadTime)
	if !ok || demand <= 0 {
		return Decision{}
	}
	return Decision{Quantity: demand, Reason: ReasonForecast}
}

// Hybrid checks both a reorder-point safety net and a signal surge trigger.
// The safety net orders up to OrderUpTo; the surge orders a fixed lot. When
// both fire the larger quantity wins.
type Hybrid struct {
	cfg *PolicyConfig
}

func (p *Hybrid) Config() *PolicyConfig { return p.cfg }

func (p *Hybrid) Decide(in DecisionInput) Decision {
	var d Decision
	if in.Position < p.cfg.ReorderPoint {
		if q := p.cfg.OrderUpTo - in.Position; q > 0 {
			d = Decision{Quantity: q, Reason: ReasonOrderUpTo}
		}
	}
	if in.Signal > p.cfg.SignalThreshold && p.cfg.LotSize > d.Quantity {
		d = Decision{Quantity: p.cfg.LotSize, Reason: ReasonSignal}
	}
	return d
}

// NewPolicy creates the policy variant named by cfg.Kind. cfg is kept by
// reference and must not be mutated afterwards.
func NewPolicy(cfg *PolicyConfig) (Policy, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	switch cfg.Kind {
	case PolicyReorderPoint:
		return &ReorderPoint{cfg: cfg}, nil
	case PolicyMinMax:
		return &MinMax{cfg: cfg}, nil
	case PolicySignal:
		return &SignalTrigger{cfg: cfg}, nil
	case PolicyOracle:
		return &Oracle{cfg: cfg}, nil
	case PolicyHybrid:
		return &Hybrid{cfg: cfg}, nil
	default:
		return nil, fmt.Errorf("unhandled policy kind %q", cfg.Kind)
	}
}
