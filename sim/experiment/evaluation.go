package experiment

import (
	"time"

	"github.com/google/uuid"

	"github.com/readiness-sim/readiness-sim/sim"
)

// EvaluationResult bundles all outputs from one Monte-Carlo batch.
type EvaluationResult struct {
	RunID     string
	Scenario  *Scenario
	Summaries []Summary
	Trials    [][]sim.TrialResult // [policy][trial], same order as Summaries

	WallTime time.Duration // wall-clock duration of Run()
}

// NewEvaluationResult constructs an EvaluationResult with a fresh run ID.
func NewEvaluationResult(sc *Scenario, summaries []Summary, trials [][]sim.TrialResult, wallTime time.Duration) *EvaluationResult {
	return &EvaluationResult{
		RunID:     uuid.NewString(),
		Scenario:  sc,
		Summaries: summaries,
		Trials:    trials,
		WallTime:  wallTime,
	}
}

// Summary returns the summary of the named policy.
func (r *EvaluationResult) Summary(policy string) (Summary, bool) {
	for _, s := range r.Summaries {
		if s.Policy == policy {
			return s, true
		}
	}
	return Summary{}, false
}
