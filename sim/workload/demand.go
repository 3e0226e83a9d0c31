package workload

import (
	"fmt"
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"
)

// DemandProcess generates a demand series of the given length.
type DemandProcess interface {
	// Demand returns horizon non-negative per-period demand counts.
	Demand(rng *rand.Rand, horizon int) []float64
}

// PoissonDemand draws each period independently from Poisson(mean).
type PoissonDemand struct {
	mean float64
}

func (d *PoissonDemand) Demand(rng *rand.Rand, horizon int) []float64 {
	out := make([]float64, horizon)
	if d.mean == 0 {
		return out
	}
	dist := distuv.Poisson{Lambda: d.mean, Src: rng}
	for i := range out {
		out[i] = dist.Rand()
	}
	return out
}

// ConstantDemand repeats one value every period.
type ConstantDemand struct {
	value float64
}

func (d *ConstantDemand) Demand(_ *rand.Rand, horizon int) []float64 {
	out := make([]float64, horizon)
	for i := range out {
		out[i] = d.value
	}
	return out
}

// SpikeDemand is Poisson demand with a black-swan window in which the mean
// jumps to spikeLevel.
type SpikeDemand struct {
	mean       float64
	spikeLevel float64
	start, end int
}

func (d *SpikeDemand) Demand(rng *rand.Rand, horizon int) []float64 {
	out := make([]float64, horizon)
	base := distuv.Poisson{Lambda: d.mean, Src: rng}
	spike := distuv.Poisson{Lambda: d.spikeLevel, Src: rng}
	for i := range out {
		inWindow := i >= d.start && i < d.end
		switch {
		case inWindow && d.spikeLevel > 0:
			out[i] = spike.Rand()
		case !inWindow && d.mean > 0:
			out[i] = base.Rand()
		}
	}
	return out
}

// FixedDemand replays an explicit series, for fixed scenarios.
type FixedDemand struct {
	values []float64
}

func (d *FixedDemand) Demand(_ *rand.Rand, horizon int) []float64 {
	out := make([]float64, horizon)
	copy(out, d.values)
	return out
}

// NewDemandProcess creates a DemandProcess from a validated spec.
func NewDemandProcess(spec DemandSpec) (DemandProcess, error) {
	switch spec.Process {
	case "poisson":
		return &PoissonDemand{mean: spec.Mean}, nil
	case "constant":
		return &ConstantDemand{value: spec.Value}, nil
	case "spike":
		return &SpikeDemand{mean: spec.Mean, spikeLevel: spec.SpikeLevel, start: spec.SpikeStart, end: spec.SpikeEnd}, nil
	case "fixed":
		values := make([]float64, len(spec.Values))
		copy(values, spec.Values)
		return &FixedDemand{values: values}, nil
	default:
		return nil, fmt.Errorf("unknown demand process %q", spec.Process)
	}
}
