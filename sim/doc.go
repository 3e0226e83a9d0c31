// Package sim provides the core period-stepped inventory simulation engine.
//
// # Reading Guide
//
// Start with these files to understand the simulation kernel:
//   - pipeline.go: in-flight replenishment orders and their arrival bookkeeping
//   - policy.go: the ordering policy variants and their trigger/sizing rules
//   - trial.go: the per-period state machine (arrival, fulfillment, holding, ordering)
//
// # Architecture
//
// The sim package defines the trial state machine and the policy contract;
// everything around it lives in sub-packages:
//   - sim/workload/: demand and readiness-signal generation
//   - sim/experiment/: Monte-Carlo driver, scenario loading, sweeps and aggregation
//   - sim/trace/: optional per-trial decision trace
//
// # Key Interfaces
//
//   - Policy: decide an order quantity from the current inventory position and signal
//   - Capper: cap an order quantity against a credit limit
//
// A Trial owns its on-hand stock, OrderPipeline and CostLedger exclusively.
// PolicyConfig and TrialConfig values are shared by pointer across trials and
// must never be mutated once a run has started.
package sim
