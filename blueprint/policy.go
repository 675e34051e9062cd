// Package blueprint implements the persisted infoset → action-
// probability policy table (spec.md §4.6) and the EV/prior blending
// used at decision time. The JSON encode/decode-to-a-file shape is
// grounded on the teacher's cfr/memory.go MemoryBuffer.Save/Load
// (os.Create + json.NewEncoder, os.Open + json.NewDecoder), generalized
// from an ad hoc sample buffer to the strategy-file format spec.md §6
// defines, and the backing map is guarded the way the teacher's
// common/safemap wraps a plain map with a mutex.
package blueprint

import "holdem-engine/holdem"

// CheckpointRecord summarizes one trainer checkpoint, per spec.md §4.7.
type CheckpointRecord struct {
	Iteration       int                `json:"iteration"`
	InfosetCount    int                `json:"infoset_count"`
	ThroughputPerS  float64            `json:"throughput_per_s"`
	MemoryBytes     int64              `json:"memory_bytes"`
	Drift           float64            `json:"drift"`
	EvalPerProfile  map[string]float64 `json:"eval_per_profile"`
	EvalAggregate   float64            `json:"eval_aggregate"`
}

// Meta is the strategy file's meta block, per spec.md §6.
type Meta struct {
	Iterations         int                `json:"iterations"`
	Seed               int64              `json:"seed"`
	SmallBlind         float64            `json:"small_blind"`
	BigBlind           float64            `json:"big_blind"`
	StartStack         float64            `json:"start_stack"`
	MaxRaises          int                `json:"max_raises"`
	EquityTrials       int                `json:"equity_trials"`
	AbstractionVersion string             `json:"abstraction_version"`
	StoppingReason     string             `json:"stopping_reason"`
	Checkpoints        []CheckpointRecord `json:"checkpoints"`
}

// StrategyFile is the on-disk trainer output / runtime prior input, per
// spec.md §6: a meta block plus a policy mapping infoset key to an
// 8-length probability vector in canonical action order.
type StrategyFile struct {
	Meta   Meta                        `json:"meta"`
	Policy map[string][holdem.NumActions]float64 `json:"policy"`
}

// vectorSum sums an action-probability vector.
func vectorSum(v [holdem.NumActions]float64) float64 {
	sum := 0.0
	for _, p := range v {
		sum += p
	}
	return sum
}

// round8 rounds to 8 decimal places, per spec.md §6's on-disk format.
func round8(x float64) float64 {
	const scale = 1e8
	if x < 0 {
		x = 0
	}
	return float64(int64(x*scale+0.5)) / scale
}

// Rounded returns a copy of the strategy file with every probability
// rounded to 8 decimals, ready for serialization.
func (s *StrategyFile) Rounded() StrategyFile {
	out := StrategyFile{Meta: s.Meta, Policy: make(map[string][holdem.NumActions]float64, len(s.Policy))}
	for k, v := range s.Policy {
		var rv [holdem.NumActions]float64
		for i, p := range v {
			rv[i] = round8(p)
		}
		out.Policy[k] = rv
	}
	return out
}
