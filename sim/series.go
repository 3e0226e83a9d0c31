package sim

import (
	"fmt"
	"math"
)

// Series is the full per-trial input, generated once before the first period.
// Demand is indexed by period. Signal and Surge are optional; when present
// they have the same length as Demand. Surge marks the periods in which the
// readiness signal ought to fire and is used only for precision accounting.
type Series struct {
	Demand []float64
	Signal []float64
	Surge  []bool
}

// Validate checks that the series covers exactly horizon periods and that
// every demand value is a finite non-negative number.
func (s Series) Validate(horizon int) error {
	if len(s.Demand) != horizon {
		return fmt.Errorf("demand series has %d periods, want %d", len(s.Demand), horizon)
	}
	if s.Signal != nil && len(s.Signal) != horizon {
		return fmt.Errorf("signal series has %d periods, want %d", len(s.Signal), horizon)
	}
	if s.Surge != nil && len(s.Surge) != horizon {
		return fmt.Errorf("surge mask has %d periods, want %d", len(s.Surge), horizon)
	}
	for i, d := range s.Demand {
		if d < 0 || math.IsNaN(d) || math.IsInf(d, 0) {
			return fmt.Errorf("demand at period %d is %v", i, d)
		}
	}
	return nil
}

// Forecast gives read access to a trial's demand series. Only the oracle
// policy reads periods beyond the current one.
type Forecast struct {
	demand []float64
}

// NewForecast wraps a demand series.
func NewForecast(demand []float64) Forecast {
	return Forecast{demand: demand}
}

// At returns the demand for period, or false when period is outside the series.
func (f Forecast) At(period int) (float64, bool) {
	if period < 0 || period >= len(f.demand) {
		return 0, false
	}
	return f.demand[period], true
}
