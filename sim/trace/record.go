// Package trace provides decision-trace recording for single-trial policy analysis.
// This package has no dependencies on sim/ or sim/experiment/; it stores plain data types.
package trace

// OrderRecord captures one period in which a policy wanted to order.
// Placed is below Proposed when a credit limit cut the order; zero means the
// order was suppressed entirely.
type OrderRecord struct {
	Period        int
	Policy        string
	Reason        string
	Position      float64
	Signal        float64
	Proposed      float64
	Placed        float64
	ArrivalPeriod int
}

// StockoutRecord captures a period with unmet demand.
type StockoutRecord struct {
	Period   int
	Demand   float64
	Missed   float64
	Duration int // consecutive stockout periods including this one
}
