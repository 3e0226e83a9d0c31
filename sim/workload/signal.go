package workload

import (
	"fmt"
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"
)

// SignalProcess generates a readiness signal series from the trial's demand.
type SignalProcess interface {
	// Signal returns one value in [0, 1] per demand period.
	Signal(rng *rand.Rand, demand []float64, surge []bool) []float64
}

// NoSignal emits a flat zero signal.
type NoSignal struct{}

func (NoSignal) Signal(_ *rand.Rand, demand []float64, _ []bool) []float64 {
	return make([]float64, len(demand))
}

// UniformSignal is independent of demand: each period is Uniform[0, 1).
type UniformSignal struct{}

func (UniformSignal) Signal(rng *rand.Rand, demand []float64, _ []bool) []float64 {
	out := make([]float64, len(demand))
	dist := distuv.Uniform{Min: 0, Max: 1, Src: rng}
	for i := range out {
		out[i] = dist.Rand()
	}
	return out
}

// CorrelatedSignal reads high in surge periods and low otherwise, plus Gaussian noise.
type CorrelatedSignal struct {
	high, low, noise float64
}

func (s *CorrelatedSignal) Signal(rng *rand.Rand, demand []float64, surge []bool) []float64 {
	out := make([]float64, len(demand))
	noise := distuv.Normal{Mu: 0, Sigma: s.noise, Src: rng}
	for i := range out {
		level := s.low
		if surge[i] {
			level = s.high
		}
		out[i] = clamp01(level + noiseDraw(noise, s.noise))
	}
	return out
}

// RateSignal fires with probability tpr in surge periods and fpr elsewhere.
// A firing period reads high, a quiet one low.
type RateSignal struct {
	tpr, fpr         float64
	high, low, noise float64
}

func (s *RateSignal) Signal(rng *rand.Rand, demand []float64, surge []bool) []float64 {
	out := make([]float64, len(demand))
	hit := distuv.Bernoulli{P: s.tpr, Src: rng}
	falseAlarm := distuv.Bernoulli{P: s.fpr, Src: rng}
	noise := distuv.Normal{Mu: 0, Sigma: s.noise, Src: rng}
	for i := range out {
		var fire float64
		if surge[i] {
			fire = hit.Rand()
		} else {
			fire = falseAlarm.Rand()
		}
		level := s.low
		if fire == 1 {
			level = s.high
		}
		out[i] = clamp01(level + noiseDraw(noise, s.noise))
	}
	return out
}

// NewSignalProcess creates a SignalProcess from a spec with defaults applied.
func NewSignalProcess(spec SignalSpec) (SignalProcess, error) {
	switch spec.Process {
	case "", "none":
		return NoSignal{}, nil
	case "uniform":
		return UniformSignal{}, nil
	case "correlated":
		return &CorrelatedSignal{high: spec.High, low: spec.Low, noise: *spec.Noise}, nil
	case "rates":
		return &RateSignal{
			tpr: spec.TruePositiveRate, fpr: spec.FalsePositiveRate,
			high: spec.High, low: spec.Low, noise: *spec.Noise,
		}, nil
	default:
		return nil, fmt.Errorf("unknown signal process %q", spec.Process)
	}
}

// SurgeMask marks period t as a surge when mean(demand[t:t+window]) > level.
// The window is truncated at the end of the series.
func SurgeMask(demand []float64, window int, level float64) []bool {
	mask := make([]bool, len(demand))
	if window < 1 {
		window = 1
	}
	for i := range demand {
		end := min(i+window, len(demand))
		sum := 0.0
		for _, d := range demand[i:end] {
			sum += d
		}
		mask[i] = sum/float64(end-i) > level
	}
	return mask
}

func noiseDraw(dist distuv.Normal, sigma float64) float64 {
	if sigma == 0 {
		return 0
	}
	return dist.Rand()
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
