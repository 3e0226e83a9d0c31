// Package experiment runs Monte-Carlo batches of trials and reduces them to
// per-policy summaries, parameter sweeps and break-even points.
package experiment

import (
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/readiness-sim/readiness-sim/sim"
	"github.com/readiness-sim/readiness-sim/sim/trace"
	"github.com/readiness-sim/readiness-sim/sim/workload"
)

// Driver owns the outer Monte-Carlo loop for one validated Scenario.
//
// Trial i draws its series from PartitionedRNG(seed).ForTrial(i) and runs
// every policy on that same series, so policy comparisons are paired. Results
// do not depend on the worker count.
type Driver struct {
	scenario  *Scenario
	trial     *sim.TrialConfig
	policies  []sim.Policy
	generator *workload.Generator
	rng       *sim.PartitionedRNG
}

// NewDriver validates sc and prepares policies and the series generator.
// Configuration errors surface here, before any trial runs.
func NewDriver(sc *Scenario) (*Driver, error) {
	if err := sc.Validate(); err != nil {
		return nil, err
	}
	gen, err := workload.NewGenerator(sc.Demand, sc.Signal, sc.Horizon)
	if err != nil {
		return nil, err
	}
	policies := make([]sim.Policy, len(sc.Policies))
	for i := range sc.Policies {
		p, err := sim.NewPolicy(&sc.Policies[i])
		if err != nil {
			return nil, err
		}
		policies[i] = p
	}
	return &Driver{
		scenario:  sc,
		trial:     sc.TrialConfig(),
		policies:  policies,
		generator: gen,
		rng:       sim.NewPartitionedRNG(sim.NewSimulationKey(sc.Seed)),
	}, nil
}

// Scenario returns the scenario the driver was built from.
func (d *Driver) Scenario() *Scenario {
	return d.scenario
}

// Run executes the full batch and aggregates one Summary per policy.
func (d *Driver) Run() (*EvaluationResult, error) {
	start := time.Now()
	logrus.Infof("Starting %d trials x %d policies, horizon=%d periods, workers=%d",
		d.scenario.Trials, len(d.policies), d.scenario.Horizon, d.workers())

	results, err := d.RunTrials()
	if err != nil {
		return nil, err
	}

	summaries := make([]Summary, len(d.policies))
	for j, p := range d.policies {
		summaries[j] = Aggregate(p.Config().Label(), results[j])
	}
	wall := time.Since(start)
	logrus.Infof("Completed %d trials in %v", d.scenario.Trials, wall)
	return NewEvaluationResult(d.scenario, summaries, results, wall), nil
}

// RunTrials executes every trial and returns results indexed [policy][trial].
// The first failing trial aborts the run.
func (d *Driver) RunTrials() ([][]sim.TrialResult, error) {
	n := d.scenario.Trials
	results := make([][]sim.TrialResult, len(d.policies))
	for j := range results {
		results[j] = make([]sim.TrialResult, n)
	}
	// each trial writes only its own column of results
	errs := forEachTrial(n, d.workers(), func(idx int) error {
		return d.runTrial(idx, results)
	})

	for i, err := range errs {
		if err != nil {
			return nil, fmt.Errorf("trial %d: %w", i, err)
		}
	}
	return results, nil
}

// forEachTrial runs fn for every index in [0, n) on at most workers goroutines
// and returns the per-index errors.
func forEachTrial(n, workers int, fn func(idx int) error) []error {
	errs := make([]error, n)
	if workers > n {
		workers = n
	}
	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				errs[idx] = fn(idx)
			}
		}()
	}
	for i := 0; i < n; i++ {
		jobs <- i
	}
	close(jobs)
	wg.Wait()
	return errs
}

func (d *Driver) runTrial(idx int, results [][]sim.TrialResult) error {
	series := d.generator.Generate(d.rng.ForTrial(idx))
	for j, p := range d.policies {
		res, err := sim.NewTrial(d.trial, p, series).Run()
		if err != nil {
			return err
		}
		results[j][idx] = res
	}
	return nil
}

// TraceTrial replays trial idx for one policy with decision tracing on.
func (d *Driver) TraceTrial(policy string, idx int) (sim.TrialResult, *trace.SimulationTrace, error) {
	if idx < 0 || idx >= d.scenario.Trials {
		return sim.TrialResult{}, nil, fmt.Errorf("trial %d is outside the batch [0, %d)", idx, d.scenario.Trials)
	}
	for _, p := range d.policies {
		if p.Config().Label() != policy {
			continue
		}
		series := d.generator.Generate(d.rng.ForTrial(idx))
		t := sim.NewTrial(d.trial, p, series)
		t.Trace = trace.NewSimulationTrace(trace.TraceConfig{Level: trace.TraceLevelDecisions})
		res, err := t.Run()
		if err != nil {
			return sim.TrialResult{}, nil, err
		}
		return res, t.Trace, nil
	}
	return sim.TrialResult{}, nil, fmt.Errorf("unknown policy %q", policy)
}

func (d *Driver) workers() int {
	if d.scenario.Workers < 1 {
		return 1
	}
	return d.scenario.Workers
}
