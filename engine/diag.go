package engine

import "sync/atomic"

// Diag holds the decision engine's diagnostic counters from spec.md
// §6/§7, grounded on the teacher pack's pool.go use of typed
// sync/atomic counters (handCounter, timeoutCounter) for cross-request
// totals that outlive any one session.
type Diag struct {
	BoardInvariantWarnings atomic.Int64
	EvalSuspectWarnings    atomic.Int64
	IllegalStateWarnings   atomic.Int64
	PriorHits              atomic.Int64
	PriorMisses            atomic.Int64
	RealtimeHits           atomic.Int64
	RealtimeFallbacks      atomic.Int64
}

// Snapshot is a point-in-time, non-atomic copy of Diag suitable for
// returning from the diag() operation.
type DiagSnapshot struct {
	BoardInvariantWarnings int64
	EvalSuspectWarnings    int64
	IllegalStateWarnings   int64
	PriorHits              int64
	PriorMisses            int64
	RealtimeHits           int64
	RealtimeFallbacks      int64
}

func (d *Diag) Snapshot() DiagSnapshot {
	return DiagSnapshot{
		BoardInvariantWarnings: d.BoardInvariantWarnings.Load(),
		EvalSuspectWarnings:    d.EvalSuspectWarnings.Load(),
		IllegalStateWarnings:   d.IllegalStateWarnings.Load(),
		PriorHits:              d.PriorHits.Load(),
		PriorMisses:            d.PriorMisses.Load(),
		RealtimeHits:           d.RealtimeHits.Load(),
		RealtimeFallbacks:      d.RealtimeFallbacks.Load(),
	}
}
