package workload

import (
	"fmt"

	"github.com/readiness-sim/readiness-sim/sim"
)

// Generator produces the demand and signal series for one trial.
// Safe for concurrent use: it holds only immutable parameters, and every
// call draws from the caller's PartitionedRNG.
type Generator struct {
	horizon    int
	demand     DemandProcess
	signal     SignalProcess
	window     int
	surgeLevel float64
}

// NewGenerator validates the specs and builds a Generator for horizon periods.
func NewGenerator(demand DemandSpec, signal SignalSpec, horizon int) (*Generator, error) {
	if err := demand.Validate(horizon); err != nil {
		return nil, fmt.Errorf("%w: %v", sim.ErrInvalidConfig, err)
	}
	if err := signal.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", sim.ErrInvalidConfig, err)
	}
	signal = signal.withDefaults()
	dp, err := NewDemandProcess(demand)
	if err != nil {
		return nil, err
	}
	sp, err := NewSignalProcess(signal)
	if err != nil {
		return nil, err
	}
	return &Generator{
		horizon:    horizon,
		demand:     dp,
		signal:     sp,
		window:     signal.Window,
		surgeLevel: signal.SurgeLevel,
	}, nil
}

// Generate draws a fresh series from rng's demand and signal subsystems.
func (g *Generator) Generate(rng *sim.PartitionedRNG) sim.Series {
	demand := g.demand.Demand(rng.ForSubsystem(sim.SubsystemDemand), g.horizon)
	surge := SurgeMask(demand, g.window, g.surgeLevel)
	signal := g.signal.Signal(rng.ForSubsystem(sim.SubsystemSignal), demand, surge)
	return sim.Series{Demand: demand, Signal: signal, Surge: surge}
}
