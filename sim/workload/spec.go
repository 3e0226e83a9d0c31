package workload

import (
	"fmt"
	"math"
)

// DemandSpec parameterizes the per-period demand process.
type DemandSpec struct {
	Process    string    `yaml:"process"`
	Mean       float64   `yaml:"mean,omitempty"`
	Value      float64   `yaml:"value,omitempty"`       // constant
	SpikeLevel float64   `yaml:"spike_level,omitempty"` // spike: Poisson mean inside the window
	SpikeStart int       `yaml:"spike_start,omitempty"` // spike: first period of the window
	SpikeEnd   int       `yaml:"spike_end,omitempty"`   // spike: first period after the window
	Values     []float64 `yaml:"values,omitempty"`      // fixed
}

// SignalSpec parameterizes the readiness signal process.
//
// Every process also derives a ground-truth surge mask from the demand
// series: period t is a surge when the mean demand over [t, t+Window) exceeds
// SurgeLevel.
type SignalSpec struct {
	Process           string   `yaml:"process"`
	Window            int      `yaml:"window,omitempty"`
	SurgeLevel        float64  `yaml:"surge_level,omitempty"`
	Noise             *float64 `yaml:"noise,omitempty"`
	TruePositiveRate  float64  `yaml:"true_positive_rate,omitempty"`
	FalsePositiveRate float64  `yaml:"false_positive_rate,omitempty"`
	High              float64  `yaml:"high,omitempty"`
	Low               float64  `yaml:"low,omitempty"`
}

// Defaults for the signal surge model.
const (
	DefaultSurgeWindow = 3
	DefaultSurgeLevel  = 7.0
	DefaultSignalHigh  = 0.9
	DefaultSignalLow   = 0.1
	DefaultNoise       = 0.1
)

// Valid value registries.
var (
	validDemandProcesses = map[string]bool{
		"poisson": true, "constant": true, "spike": true, "fixed": true,
	}
	validSignalProcesses = map[string]bool{
		"": true, "none": true, "uniform": true, "correlated": true, "rates": true,
	}
)

// IsValidDemandProcess returns true if name is a recognized demand process.
func IsValidDemandProcess(name string) bool { return validDemandProcesses[name] }

// IsValidSignalProcess returns true if name is a recognized signal process.
func IsValidSignalProcess(name string) bool { return validSignalProcesses[name] }

func finiteNonNegative(v float64) bool {
	return v >= 0 && !math.IsInf(v, 0)
}

// Validate checks the demand process against horizon.
func (s *DemandSpec) Validate(horizon int) error {
	if !validDemandProcesses[s.Process] {
		return fmt.Errorf("unknown demand process %q", s.Process)
	}
	switch s.Process {
	case "poisson":
		if !finiteNonNegative(s.Mean) {
			return fmt.Errorf("demand mean must be a finite non-negative number, got %v", s.Mean)
		}
	case "constant":
		if !finiteNonNegative(s.Value) {
			return fmt.Errorf("constant demand must be a finite non-negative number, got %v", s.Value)
		}
	case "spike":
		if !finiteNonNegative(s.Mean) || !finiteNonNegative(s.SpikeLevel) {
			return fmt.Errorf("spike demand means must be finite and non-negative, got mean=%v spike_level=%v", s.Mean, s.SpikeLevel)
		}
		if s.SpikeStart < 0 || s.SpikeEnd < s.SpikeStart {
			return fmt.Errorf("spike window [%d, %d) is invalid", s.SpikeStart, s.SpikeEnd)
		}
	case "fixed":
		if len(s.Values) != horizon {
			return fmt.Errorf("fixed demand has %d values, want %d", len(s.Values), horizon)
		}
		for i, v := range s.Values {
			if !finiteNonNegative(v) {
				return fmt.Errorf("fixed demand at period %d must be a finite non-negative number, got %v", i, v)
			}
		}
	}
	return nil
}

// Validate checks the signal process parameters.
func (s *SignalSpec) Validate() error {
	if !validSignalProcesses[s.Process] {
		return fmt.Errorf("unknown signal process %q", s.Process)
	}
	if s.Window < 0 {
		return fmt.Errorf("signal window must be non-negative, got %d", s.Window)
	}
	if s.Noise != nil && !finiteNonNegative(*s.Noise) {
		return fmt.Errorf("signal noise must be non-negative, got %v", *s.Noise)
	}
	for name, p := range map[string]float64{
		"true_positive_rate":  s.TruePositiveRate,
		"false_positive_rate": s.FalsePositiveRate,
		"high":                s.High,
		"low":                 s.Low,
	} {
		if !(p >= 0 && p <= 1) {
			return fmt.Errorf("%s must be in [0, 1], got %v", name, p)
		}
	}
	return nil
}

// withDefaults returns a copy of s with unset fields filled in.
func (s SignalSpec) withDefaults() SignalSpec {
	if s.Process == "" {
		s.Process = "none"
	}
	if s.Window == 0 {
		s.Window = DefaultSurgeWindow
	}
	if s.SurgeLevel == 0 {
		s.SurgeLevel = DefaultSurgeLevel
	}
	if s.High == 0 && s.Low == 0 {
		s.High, s.Low = DefaultSignalHigh, DefaultSignalLow
	}
	if s.Noise == nil {
		noise := 0.0
		if s.Process == "correlated" {
			noise = DefaultNoise
		}
		s.Noise = &noise
	}
	return s
}
