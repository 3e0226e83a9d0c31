package sim

import (
	"fmt"
	"hash/fnv"
	"math/rand/v2"
)

// === SimulationKey ===

// SimulationKey uniquely identifies a reproducible Monte-Carlo run.
// Two runs with the same SimulationKey and identical configuration
// MUST produce bit-for-bit identical results.
type SimulationKey int64

// NewSimulationKey creates a SimulationKey from a seed value.
func NewSimulationKey(seed int64) SimulationKey {
	return SimulationKey(seed)
}

// === Subsystem Constants ===

const (
	// SubsystemDemand is the RNG subsystem for demand series generation.
	SubsystemDemand = "demand"

	// SubsystemSignal is the RNG subsystem for readiness signal generation.
	SubsystemSignal = "signal"
)

// SubsystemTrial returns the stream name for trial N.
func SubsystemTrial(id int) string {
	return fmt.Sprintf("trial_%d", id)
}

// === PartitionedRNG ===

// PartitionedRNG provides deterministic, isolated RNG instances per subsystem.
//
// Derivation formula: each subsystem is a PCG stream seeded with
// (masterSeed XOR trialStream, fnv1a64(subsystemName)). The root RNG has a zero
// trial stream; ForTrial derives one per trial index.
//
// Thread-safety: NOT thread-safe. Each trial must own its own PartitionedRNG.
type PartitionedRNG struct {
	key        SimulationKey
	stream     uint64
	subsystems map[string]*rand.Rand
}

// NewPartitionedRNG creates a PartitionedRNG from a SimulationKey.
func NewPartitionedRNG(key SimulationKey) *PartitionedRNG {
	return &PartitionedRNG{
		key:        key,
		subsystems: make(map[string]*rand.Rand),
	}
}

// ForTrial returns a fresh PartitionedRNG isolated to trial id. The result
// depends only on the key and the trial index, so trials can be generated in
// any order or concurrently.
func (p *PartitionedRNG) ForTrial(id int) *PartitionedRNG {
	return &PartitionedRNG{
		key:        p.key,
		stream:     uint64(fnv1a64(SubsystemTrial(id))),
		subsystems: make(map[string]*rand.Rand),
	}
}

// ForSubsystem returns a deterministically-seeded RNG for the named subsystem.
// The same subsystem name always returns the same *rand.Rand instance (cached).
// Never returns nil.
func (p *PartitionedRNG) ForSubsystem(name string) *rand.Rand {
	if rng, ok := p.subsystems[name]; ok {
		return rng
	}
	rng := rand.New(rand.NewPCG(uint64(p.key)^p.stream, uint64(fnv1a64(name))))
	p.subsystems[name] = rng
	return rng
}

// Key returns the SimulationKey used to create this PartitionedRNG.
func (p *PartitionedRNG) Key() SimulationKey {
	return p.key
}

// fnv1a64 computes a 64-bit FNV-1a hash of the input string.
func fnv1a64(s string) int64 {
	h := fnv.New64a()
	h.Write([]byte(s))
	return int64(h.Sum64())
}
