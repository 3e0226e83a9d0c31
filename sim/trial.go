package sim

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/readiness-sim/readiness-sim/sim/trace"
)

// Trial is the single-trial state machine. It owns its on-hand stock,
// pipeline and ledger; nothing in it is shared with another trial.
//
// Each Step runs, in order: arrival, fulfillment, holding cost, ordering
// decision, clock advance.
type Trial struct {
	cfg      *TrialConfig
	policy   Policy
	capital  Capper
	series   Series
	forecast Forecast

	// Trace, when enabled, records every order decision and stockout.
	Trace *trace.SimulationTrace

	Clock    int
	OnHand   float64
	Pipeline *OrderPipeline
	Ledger   CostLedger

	totalDemand       float64
	totalFilled       float64
	revenue           float64
	workingCapitalSum float64
	stockoutEvents    int
	ordersPlaced      int
	currentStockout   int
	stockoutRuns      []int
	truePositives     int
	falsePositives    int
	enqueued          float64
	received          float64
	overdue           int
	finished          bool
}

// NewTrial creates a trial at period 0 holding cfg.InitialInventory.
// cfg and the policy's config are shared by reference and read only.
func NewTrial(cfg *TrialConfig, policy Policy, series Series) *Trial {
	return &Trial{
		cfg:      cfg,
		policy:   policy,
		capital:  NewCapper(policy.Config(), cfg.Economics),
		series:   series,
		forecast: NewForecast(series.Demand),
		OnHand:   cfg.InitialInventory,
		Pipeline: NewOrderPipeline(),
	}
}

// Done reports whether the clock has reached the horizon.
func (t *Trial) Done() bool {
	return t.Clock >= t.cfg.Horizon
}

// Position returns on-hand plus in-transit stock.
func (t *Trial) Position() float64 {
	return t.OnHand + t.Pipeline.PositionQuantity()
}

// Step advances the trial by one period.
func (t *Trial) Step() error {
	if t.Done() {
		return fmt.Errorf("trial already at horizon %d", t.cfg.Horizon)
	}
	if t.Clock >= len(t.series.Demand) {
		return fmt.Errorf("no demand for period %d", t.Clock)
	}
	period := t.Clock
	econ := &t.cfg.Economics

	// 1. Arrival
	arrived, overdue := t.Pipeline.CollectArrivals(period)
	if overdue > 0 {
		logrus.Warnf("[period %03d] collected %d overdue order(s)", period, overdue)
		t.overdue += overdue
	}
	t.OnHand += arrived
	t.received += arrived
	t.workingCapitalSum += t.OnHand * econ.UnitCost

	// 2. Fulfillment
	demand := t.series.Demand[period]
	filled := min(t.OnHand, demand)
	t.OnHand -= filled
	missed := demand - filled
	t.totalDemand += demand
	t.totalFilled += filled
	t.revenue += filled * econ.RevenuePerUnit
	if missed > 0 {
		t.stockoutEvents++
		t.Ledger.Stockout += econ.StockoutPenalty
		t.currentStockout++
		if t.Trace.Enabled() {
			t.Trace.RecordStockout(trace.StockoutRecord{
				Period:   period,
				Demand:   demand,
				Missed:   missed,
				Duration: t.currentStockout,
			})
		}
	} else if t.currentStockout > 0 {
		t.stockoutRuns = append(t.stockoutRuns, t.currentStockout)
		t.currentStockout = 0
	}

	// 3. Holding cost on end-of-period stock
	t.Ledger.Holding += t.OnHand * econ.HoldingCostPerUnit

	// 4. Ordering decision
	signal := t.signalAt(period)
	t.countSignal(period, signal)
	inTransit := t.Pipeline.PositionQuantity()
	in := DecisionInput{
		Period:    period,
		Position:  t.OnHand + inTransit,
		OnHand:    t.OnHand,
		InTransit: inTransit,
		Signal:    signal,
		Future:    t.forecast,
	}
	decision := t.policy.Decide(in)
	placed := 0.0
	if decision.Quantity > 0 {
		placed = t.capital.Cap(decision.Quantity, in.Position)
	}
	pc := t.policy.Config()
	if t.Pipeline.Enqueue(period, placed, pc.LeadTime) {
		t.enqueued += placed
		t.ordersPlaced++
		t.Ledger.Ordering += econ.OrderingCost
	}
	if decision.Quantity > 0 && t.Trace.Enabled() {
		t.Trace.RecordOrder(trace.OrderRecord{
			Period:        period,
			Policy:        pc.Label(),
			Reason:        string(decision.Reason),
			Position:      in.Position,
			Signal:        signal,
			Proposed:      decision.Quantity,
			Placed:        placed,
			ArrivalPeriod: period + pc.LeadTime,
		})
	}
	logrus.Debugf("[period %03d] %s demand=%.0f filled=%.0f on_hand=%.0f position=%.0f order=%.0f",
		period, pc.Label(), demand, filled, t.OnHand, in.Position, placed)

	// 5. Advance
	t.Clock++
	return nil
}

// Run validates the series, steps to the horizon and returns the result.
// A malformed series fails the trial; nothing is recovered.
func (t *Trial) Run() (TrialResult, error) {
	if err := t.series.Validate(t.cfg.Horizon); err != nil {
		return TrialResult{}, fmt.Errorf("policy %q: %w", t.policy.Config().Label(), err)
	}
	for !t.Done() {
		if err := t.Step(); err != nil {
			return TrialResult{}, err
		}
	}
	t.finish()
	return t.Result(), nil
}

// finish closes a stockout run still open at the horizon.
func (t *Trial) finish() {
	if t.finished {
		return
	}
	t.finished = true
	if t.currentStockout > 0 {
		t.stockoutRuns = append(t.stockoutRuns, t.currentStockout)
		t.currentStockout = 0
	}
}

// Result snapshots the trial's metrics.
func (t *Trial) Result() TrialResult {
	pending := t.Pipeline.PositionQuantity()
	return TrialResult{
		Policy:                t.policy.Config().Label(),
		TotalCost:             t.Ledger.Total(),
		HoldingCost:           t.Ledger.Holding,
		StockoutCost:          t.Ledger.Stockout,
		OrderingCost:          t.Ledger.Ordering,
		ServiceLevel:          serviceLevel(t.totalFilled, t.totalDemand),
		MeanBackorderDuration: meanInts(t.stockoutRuns),
		CapitalEfficiency:     capitalEfficiency(t.revenue, t.workingCapitalSum, t.Clock),
		TotalDemand:           t.totalDemand,
		TotalFilled:           t.totalFilled,
		Revenue:               t.revenue,
		StockoutEvents:        t.stockoutEvents,
		OrdersPlaced:          t.ordersPlaced,
		TruePositives:         t.truePositives,
		FalsePositives:        t.falsePositives,
		EnqueuedUnits:         t.enqueued,
		ReceivedUnits:         t.received,
		PendingUnits:          pending,
		OverdueArrivals:       t.overdue,
	}
}

func (t *Trial) signalAt(period int) float64 {
	if period < len(t.series.Signal) {
		return t.series.Signal[period]
	}
	return 0
}

// countSignal scores a signal fire against the surge mask.
func (t *Trial) countSignal(period int, signal float64) {
	pc := t.policy.Config()
	if !pc.UsesSignal() || period >= len(t.series.Surge) {
		return
	}
	if signal <= pc.SignalThreshold {
		return
	}
	if t.series.Surge[period] {
		t.truePositives++
	} else {
		t.falsePositives++
	}
}
