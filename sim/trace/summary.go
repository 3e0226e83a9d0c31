package trace

// TraceSummary aggregates statistics from a SimulationTrace.
type TraceSummary struct {
	TotalDecisions     int
	OrdersPlaced       int
	OrdersSuppressed   int
	ProposedUnits      float64
	PlacedUnits        float64
	CappedUnits        float64
	ReasonDistribution map[string]int // trigger reason → count of orders placed
	StockoutPeriods    int
	MissedUnits        float64
	LongestStockout    int
}

// Summarize computes aggregate statistics from a SimulationTrace.
// Safe for nil or empty traces (returns zero-value fields).
func Summarize(st *SimulationTrace) *TraceSummary {
	summary := &TraceSummary{
		ReasonDistribution: make(map[string]int),
	}
	if st == nil {
		return summary
	}

	summary.TotalDecisions = len(st.Orders)
	for _, o := range st.Orders {
		summary.ProposedUnits += o.Proposed
		summary.PlacedUnits += o.Placed
		if o.Placed > 0 {
			summary.OrdersPlaced++
			summary.ReasonDistribution[o.Reason]++
		} else {
			summary.OrdersSuppressed++
		}
	}
	summary.CappedUnits = summary.ProposedUnits - summary.PlacedUnits

	summary.StockoutPeriods = len(st.Stockouts)
	for _, s := range st.Stockouts {
		summary.MissedUnits += s.Missed
		if s.Duration > summary.LongestStockout {
			summary.LongestStockout = s.Duration
		}
	}

	return summary
}
