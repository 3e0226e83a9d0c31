// Tracks per-trial cost and service metrics.

package sim

import "github.com/shopspring/decimal"

// CostLedger holds the running cost totals of one trial. Each field only grows.
type CostLedger struct {
	Holding  float64
	Stockout float64
	Ordering float64
}

// Total returns holding + stockout + ordering cost.
func (l CostLedger) Total() float64 {
	return l.Holding + l.Stockout + l.Ordering
}

// TrialResult summarizes one completed trial. Immutable once returned.
type TrialResult struct {
	Policy string

	TotalCost    float64
	HoldingCost  float64
	StockoutCost float64
	OrderingCost float64

	ServiceLevel          float64 // filled / demanded; 1 when nothing was demanded
	MeanBackorderDuration float64 // mean length of completed stockout runs, in periods
	CapitalEfficiency     float64 // revenue / mean working capital

	TotalDemand    float64
	TotalFilled    float64
	Revenue        float64
	StockoutEvents int
	OrdersPlaced   int

	// Signal accounting: a fire is a period where the signal exceeded the
	// policy's threshold, judged against the series' surge mask.
	TruePositives  int
	FalsePositives int

	// Pipeline bookkeeping. EnqueuedUnits == ReceivedUnits + PendingUnits.
	EnqueuedUnits   float64
	ReceivedUnits   float64
	PendingUnits    float64
	OverdueArrivals int
}

// RealizedPrecision returns TP / (TP + FP), or 1 when the signal never fired.
func (r TrialResult) RealizedPrecision() float64 {
	fired := r.TruePositives + r.FalsePositives
	if fired == 0 {
		return 1.0
	}
	return float64(r.TruePositives) / float64(fired)
}

// serviceLevel returns filled / demand, treating zero demand as fully served.
func serviceLevel(filled, demand float64) float64 {
	if demand == 0 {
		return 1.0
	}
	return filled / demand
}

// capitalEfficiency returns revenue / (workingCapitalSum / periods).
// Zero when no capital was ever tied up.
func capitalEfficiency(revenue, workingCapitalSum float64, periods int) float64 {
	if periods == 0 || workingCapitalSum <= 0 {
		return 0
	}
	avg := decimal.NewFromFloat(workingCapitalSum).Div(decimal.NewFromInt(int64(periods)))
	if !avg.IsPositive() {
		return 0
	}
	return decimal.NewFromFloat(revenue).Div(avg).InexactFloat64()
}

func meanInts(values []int) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0
	for _, v := range values {
		sum += v
	}
	return float64(sum) / float64(len(values))
}
