package dcfr

import (
	"math/rand"
	"time"

	"holdem-engine/blueprint"
	"holdem-engine/equity"
	"holdem-engine/holdem"
	"holdem-engine/infoset"
	"holdem-engine/preflop"
)

// Config bundles the DCFR trainer's tunables from spec.md §4.7 / §6.
type Config struct {
	TargetIterations      int
	Seed                  int64
	EquityTrials          int
	CheckpointEvery       int
	MinItersBeforeStop    int
	DriftPlateauThreshold float64
	EVPlateauThreshold    float64
	EvalHandsPerProfile   int
	GameCfg               holdem.Config
}

// DefaultConfig matches spec.md §4.7 and §6's stated defaults.
func DefaultConfig() Config {
	return Config{
		TargetIterations:      200_000,
		Seed:                  1,
		EquityTrials:          equity.DefaultTrainTrials,
		CheckpointEvery:       10_000,
		MinItersBeforeStop:    50_000,
		DriftPlateauThreshold: 0.015,
		EVPlateauThreshold:    0.02,
		EvalHandsPerProfile:   200,
		GameCfg:               holdem.DefaultConfig(),
	}
}

// Trainer runs the offline DCFR loop and owns the infoset arena, per
// spec.md §4.7. Sequential and deterministic given a seed, per spec.md
// §5's "the DCFR trainer is sequential within a run".
type Trainer struct {
	Cfg   Config
	Arena *Arena

	rng         *rand.Rand
	equityCache *equity.Cache
	prevPolicy  map[string][holdem.NumActions]float64

	Checkpoints []blueprint.CheckpointRecord
	StopReason  string
}

// NewTrainer builds a trainer with a fresh arena and equity cache.
func NewTrainer(cfg Config) *Trainer {
	return &Trainer{
		Cfg:         cfg,
		Arena:       NewArena(),
		rng:         rand.New(rand.NewSource(cfg.Seed)),
		equityCache: equity.NewCache(equity.DefaultCacheLimit),
		prevPolicy:  map[string][holdem.NumActions]float64{},
	}
}

// Run executes the trainer loop until plateau or target iterations,
// per spec.md §4.7's stopping rule, and returns the stopping reason.
// onCheckpoint, if non-nil, is invoked after every checkpoint with the
// iteration reached so far and the checkpoint just recorded — callers
// report the DCFR run's progress from it rather than from Run's
// return, which only arrives once the whole run is done.
func (tr *Trainer) Run(onCheckpoint func(iter int, cp blueprint.CheckpointRecord)) string {
	start := time.Now()
	for t := 1; t <= tr.Cfg.TargetIterations; t++ {
		tr.iterate(t)

		if tr.Cfg.CheckpointEvery > 0 && t%tr.Cfg.CheckpointEvery == 0 {
			cp := tr.checkpoint(t, start)
			tr.Checkpoints = append(tr.Checkpoints, cp)
			if onCheckpoint != nil {
				onCheckpoint(t, cp)
			}
			if tr.plateaued(t) {
				tr.StopReason = "plateau_reached"
				return tr.StopReason
			}
		}
	}
	tr.StopReason = "target_iterations_reached"
	return tr.StopReason
}

// iterate runs one DCFR iteration for an alternating traverser, per
// spec.md §4.7.
func (tr *Trainer) iterate(t int) {
	traverser := (t - 1) % 2
	hand := holdem.NewHand(tr.Cfg.GameCfg, tr.rng)

	tr.simulatePreflop(hand)
	if hand.State.Terminal {
		return
	}

	tr.traverse(hand, traverser, t)
}

// simulatePreflop advances the hand through preflop using the
// heuristic mix for both seats, per spec.md §4.7 step 2.
func (tr *Trainer) simulatePreflop(hand *holdem.Hand) {
	for hand.State.StreetIdx == 0 && !hand.State.Terminal {
		seat := hand.State.ToAct
		legal := hand.LegalActions()
		hs := tr.handStrength(hand, seat)
		facingRaise := hand.State.ToCall(seat) > tr.Cfg.GameCfg.Epsilon
		tier := preflop.Classify(hand.Ctx.Hole[seat])
		mix := preflop.Distribution(legal, tier, facingRaise, hs, preflop.OpponentTendency{})

		action, err := Sample(tr.rng, mix)
		if err != nil {
			action = legal.Slice()[0]
		}
		hand.Apply(action)
	}
}

// handStrength estimates hero's equity vs a random hand at the
// current board, cached and clamped to training trial bounds.
func (tr *Trainer) handStrength(hand *holdem.Hand, seat int) float64 {
	trials := equity.ClampTrain(tr.Cfg.EquityTrials)
	board := hand.Board()
	hero := hand.Ctx.Hole[seat][:]
	r := tr.equityCache.EstimateCached(tr.rng.Int63(), hero, board, nil, trials)
	return r.Equity
}

func (tr *Trainer) infosetKey(hand *holdem.Hand, seat int, hs float64) string {
	s := &hand.State
	k := infoset.Build(s.StreetIdx, seat, hand.Board(), s.Stack[seat], s.Pot, s.ToCall(seat), tr.Cfg.GameCfg.Epsilon, s.Raises, hs)
	return k.String()
}

func terminalUtility(hand *holdem.Hand, traverser int, bigBlind float64) float64 {
	return hand.Payoff(traverser) / bigBlind
}

// traverse implements spec.md §4.7 step 4: full enumeration and regret
// updates at traverser nodes, single external-sample recursion at
// opponent nodes. Snapshot/Restore substitutes for the teacher's
// Step/StepBack undo mechanism.
func (tr *Trainer) traverse(hand *holdem.Hand, traverser, iter int) float64 {
	if hand.State.Terminal {
		return terminalUtility(hand, traverser, tr.Cfg.GameCfg.BigBlind)
	}

	seat := hand.State.ToAct
	legal := hand.LegalActions()
	hs := tr.handStrength(hand, seat)
	key := tr.infosetKey(hand, seat, hs)
	node := tr.Arena.Get(key)
	strat := CurrentStrategy(node, legal)

	if seat != traverser {
		AccumulateStrategySum(node, legal, strat)
		action, err := Sample(tr.rng, strat)
		if err != nil {
			action = legal.Slice()[0]
		}
		hand.Snapshot()
		hand.Apply(action)
		u := tr.traverse(hand, traverser, iter)
		hand.Restore()
		return u
	}

	utils := make(map[holdem.Action]float64, legal.Count())
	nodeUtil := 0.0
	for _, a := range legal.Slice() {
		hand.Snapshot()
		hand.Apply(a)
		u := tr.traverse(hand, traverser, iter)
		hand.Restore()
		utils[a] = u
		nodeUtil += strat[a] * u
	}

	AccumulateStrategySum(node, legal, strat)
	DiscountRegrets(node, iter)
	for _, a := range legal.Slice() {
		node.Regrets[a] += utils[a] - nodeUtil
	}
	return nodeUtil
}

// ExportPolicy snapshots the arena's average strategy as a map from
// infoset key to action-probability vector, per spec.md §4.7's
// checkpoint export step.
func (tr *Trainer) ExportPolicy() map[string][holdem.NumActions]float64 {
	out := make(map[string][holdem.NumActions]float64, tr.Arena.Len())
	tr.Arena.ForEach(func(key string, n *NodeStats) {
		out[key] = AverageStrategy(n)
	})
	return out
}
