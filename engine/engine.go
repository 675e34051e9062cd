// Package engine orchestrates the online decision engine's session
// lifecycle (spec.md §3/§6): dealing hands, stepping the bot through
// its own turns, applying the human's action, tracking score/stats/
// belief, and exposing health/diag. Grounded on the teacher pack's
// internal/game/engine.go GameEngine — an explicit handle owning a
// *log.Logger and the mutable game state, stepping one seat at a time
// and logging each transition, generalized from its N-player table
// loop to this module's two-seat session table.
package engine

import (
	"math/rand"
	"os"
	"sync/atomic"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/google/uuid"

	"holdem-engine/belief"
	"holdem-engine/blueprint"
	"holdem-engine/cards"
	"holdem-engine/common/safemap"
	"holdem-engine/equity"
	"holdem-engine/holdem"
	"holdem-engine/subgame"
)

// Config bundles the parameters engine.New needs, read from
// config.EngineConfig by the caller (cmd/decide).
type Config struct {
	GameCfg      holdem.Config
	EquityTrials int
	EVBlend      float64
	ProbFloor    float64
	Subgame      subgame.Config
	Seed         int64
}

// Engine owns the session table, the shared blueprint prior, the
// equity cache, and the diagnostic counters, per spec.md §9's "expose
// as explicit engine-handle that owns the diag struct and the session
// table; pass by reference" redesign note.
type Engine struct {
	GameCfg      holdem.Config
	EquityTrials int
	EVBlend      float64
	ProbFloor    float64
	SubgameCfg   subgame.Config

	Blueprint   *blueprint.Store
	EquityCache *equity.Cache
	Clock       quartz.Clock
	Diag        Diag
	Logger      *log.Logger

	seed        int64
	seedCounter atomic.Int64

	sessions safemap.Safemap[uuid.UUID, *Session]
}

// New constructs an Engine. bp may be nil (no blueprint prior loaded);
// every lookup then misses per spec.md §7's MissingPrior handling.
func New(cfg Config, bp *blueprint.Store, logger *log.Logger) *Engine {
	if logger == nil {
		logger = log.New(os.Stderr)
	}
	return &Engine{
		GameCfg:      cfg.GameCfg,
		EquityTrials: cfg.EquityTrials,
		EVBlend:      cfg.EVBlend,
		ProbFloor:    cfg.ProbFloor,
		SubgameCfg:   cfg.Subgame,
		Blueprint:    bp,
		EquityCache:  equity.NewCache(equity.DefaultCacheLimit),
		Clock:        quartz.NewReal(),
		Logger:       logger,
		seed:         cfg.Seed,
		sessions:     safemap.New[uuid.UUID, *Session](),
	}
}

func (e *Engine) nextSeed() int64 {
	return e.seed + e.seedCounter.Add(1)
}

func (e *Engine) rng() *rand.Rand {
	return rand.New(rand.NewSource(e.nextSeed()))
}

// HealthReport is the static-configuration payload of the health()
// operation from spec.md §6.
type HealthReport struct {
	StartStack         float64
	SmallBlind         float64
	BigBlind            float64
	MaxRaises           int
	EquityTrials        int
	RTSubgameMS         int
	AbstractionVersion  string
	BlueprintLoaded     bool
	BlueprintEntryCount int
}

// Health reports the engine's static configuration.
func (e *Engine) Health() HealthReport {
	loaded := e.Blueprint != nil
	count := 0
	if loaded {
		count = e.Blueprint.Len()
	}
	return HealthReport{
		StartStack:          e.GameCfg.StartStack,
		SmallBlind:           e.GameCfg.SmallBlind,
		BigBlind:             e.GameCfg.BigBlind,
		MaxRaises:            e.GameCfg.MaxRaises,
		EquityTrials:         e.EquityTrials,
		RTSubgameMS:          e.SubgameCfg.BudgetMS,
		AbstractionVersion:   "infoset_v1",
		BlueprintLoaded:      loaded,
		BlueprintEntryCount:  count,
	}
}

// DiagReport returns a snapshot of the diagnostic counters.
func (e *Engine) DiagReport() DiagSnapshot {
	return e.Diag.Snapshot()
}

// StateSnapshot is the state-view handed back to callers after
// new_hand/apply_human_action, per spec.md §6.
type StateSnapshot struct {
	StreetIdx   int
	Pot         float64
	CurrentBet  float64
	Commit      [2]float64
	Stack       [2]float64
	Board       []cards.Card
	ToAct       int
	Terminal    bool
	Winner      int
	LegalToAct  []holdem.Action // legal actions for ToAct, populated only when it is the human's turn and not terminal
}

// BotActionRecord logs one action the bot took while playing through
// its own turns.
type BotActionRecord struct {
	Seat      int
	Action    holdem.Action
	StreetIdx int
}

// TerminalResult reports a hand's outcome, per spec.md §4.1's payoff
// rule and §8 scenario 1/2.
type TerminalResult struct {
	Winner      int
	HumanPayoff float64
	Score       Score
}

func (e *Engine) snapshot(s *Session) StateSnapshot {
	st := s.Hand.State
	snap := StateSnapshot{
		StreetIdx:  st.StreetIdx,
		Pot:        st.Pot,
		CurrentBet: st.CurrentBet,
		Commit:     st.Commit,
		Stack:      st.Stack,
		Board:      append([]cards.Card{}, s.Hand.Board()...),
		ToAct:      st.ToAct,
		Terminal:   st.Terminal,
		Winner:     st.Winner,
	}
	if !st.Terminal && st.ToAct == s.HumanSeat {
		s.humanLegal = s.Hand.LegalActions()
		snap.LegalToAct = s.humanLegal.Slice()
	}
	return snap
}

// NewHand deals a fresh hand for humanSeat, plays the bot through any
// of its own leading turns, and returns the session plus the state
// snapshot and bot-action log up to the point control returns to the
// human (or the hand ends without the human acting at all).
func (e *Engine) NewHand(humanSeat int) (*Session, StateSnapshot, []BotActionRecord, *TerminalResult) {
	s := newSession(humanSeat)
	s.Hand = holdem.NewHand(e.GameCfg, e.rng())

	e.sessions.Set(s.ID, s)

	e.Logger.Debug("dealt hand", "session", s.ID, "human_seat", humanSeat)
	botLog := e.playBotTurns(s)
	snap := e.snapshot(s)
	var term *TerminalResult
	if s.Hand.State.Terminal {
		term = e.settle(s)
	}
	return s, snap, botLog, term
}

// NewHandInSession deals a new hand within an already-existing session,
// per spec.md §3's lifecycle rule: "next hand reuses session stats and
// belief priors reset per hand" — Score, Stats, and HandIndex carry
// over from the session's prior hands; only RangeBelief and the hand
// itself reset. humanSeat lets the caller alternate which seat the
// human occupies hand to hand, as cmd/decide's REPL does.
func (e *Engine) NewHandInSession(sessionID uuid.UUID, humanSeat int) (*Session, StateSnapshot, []BotActionRecord, *TerminalResult, error) {
	s, ok := e.sessions.Get(sessionID)
	if !ok {
		return nil, StateSnapshot{}, nil, nil, ErrUnknownSession
	}

	s.resetForNewHand(humanSeat)
	s.Hand = holdem.NewHand(e.GameCfg, e.rng())

	e.Logger.Debug("dealt hand", "session", s.ID, "human_seat", humanSeat, "hand_index", s.HandIndex)
	botLog := e.playBotTurns(s)
	snap := e.snapshot(s)
	var term *TerminalResult
	if s.Hand.State.Terminal {
		term = e.settle(s)
	}
	return s, snap, botLog, term, nil
}

// ApplyHumanAction validates and applies the human's chosen action
// (indexed into the legal set returned by the previous snapshot), then
// plays the bot through any subsequent turns, per spec.md §6.
func (e *Engine) ApplyHumanAction(sessionID uuid.UUID, actionIndex int) (StateSnapshot, []BotActionRecord, *TerminalResult, error) {
	s, ok := e.sessions.Get(sessionID)
	if !ok {
		return StateSnapshot{}, nil, nil, ErrUnknownSession
	}
	if s.Hand == nil || s.Hand.State.Terminal {
		return StateSnapshot{}, nil, nil, ErrHandTerminal
	}

	legal := s.humanLegal
	choices := legal.Slice()
	if actionIndex < 0 || actionIndex >= len(choices) {
		return StateSnapshot{}, nil, nil, ErrBadActionIndex
	}
	action := choices[actionIndex]

	e.recordHumanAction(s, action)
	s.Hand.Apply(action)

	botLog := e.playBotTurns(s)
	snap := e.snapshot(s)
	var term *TerminalResult
	if s.Hand.State.Terminal {
		term = e.settle(s)
	}
	return snap, botLog, term, nil
}

// playBotTurns steps the bot through every consecutive turn it owns,
// updating its belief about the human from whatever the human (or a
// prior bot action) just did is handled by the caller; this loop only
// ever acts for the bot's own seat.
func (e *Engine) playBotTurns(s *Session) []BotActionRecord {
	var log []BotActionRecord
	hand := s.Hand
	botSeat := 1 - s.HumanSeat
	for !hand.State.Terminal && hand.State.ToAct == botSeat {
		rng := e.rng()
		dec := e.botDecide(rng, s)
		street := hand.State.StreetIdx
		hand.Apply(dec.Action)
		e.Logger.Debug("bot action", "street", street, "action", dec.Action, "realtime", dec.UsedRealtime)
		log = append(log, BotActionRecord{Seat: botSeat, Action: dec.Action, StreetIdx: street})
	}
	return log
}

// recordHumanAction folds the human's action into the persistent Stats
// and updates the bot's belief about the human's range, per spec.md
// §4.9 and §3.
func (e *Engine) recordHumanAction(s *Session, action holdem.Action) {
	hand := s.Hand
	humanSeat := s.HumanSeat
	facingBet := hand.State.ToCall(humanSeat) > hand.Cfg.Epsilon
	kind := classifyAction(action)

	if hand.State.StreetIdx == 0 {
		if facingBet {
			s.Stats.Preflop.FacingRaise++
			switch kind {
			case belief.Aggressive:
				s.Stats.Preflop.ThreeBet++
			case belief.Passive:
				s.Stats.Preflop.CallVsRaise++
			}
		}
	} else {
		st := s.Stats.streetStats(hand.State.StreetIdx)
		if facingBet {
			st.FacingBet++
			switch kind {
			case belief.Fold:
				st.FoldVsBet++
			case belief.Passive:
				st.CallVsBet++
			case belief.Aggressive:
				st.RaiseVsBet++
			}
		}
	}

	s.RangeBelief[humanSeat] = s.RangeBelief[humanSeat].Update(facingBet, kind)
}

// settle finalizes a terminal hand: records the human's payoff into
// score, per spec.md §4.1/§8 scenario 1/2. Idempotent by construction —
// a second call against the same hand returns the first call's cached
// result instead of re-adding the payoff into Score, since
// ApplyHumanAction now rejects further actions on an already-terminal
// hand (ErrHandTerminal) but NewHand/NewHandInSession can still observe
// a hand that ends terminal as dealt and settle it exactly once.
func (e *Engine) settle(s *Session) *TerminalResult {
	if s.handSettled {
		return s.lastResult
	}

	payoff := s.Hand.Payoff(s.HumanSeat)
	s.Score.Net += payoff
	switch {
	case payoff > 0:
		s.Score.Wins++
	case payoff < 0:
		s.Score.Losses++
	default:
		s.Score.Ties++
	}
	s.HandIndex++
	e.Logger.Info("hand settled", "session", s.ID, "winner", s.Hand.State.Winner, "human_payoff", payoff, "net", s.Score.Net)
	result := &TerminalResult{
		Winner:      s.Hand.State.Winner,
		HumanPayoff: payoff,
		Score:       s.Score,
	}
	s.handSettled = true
	s.lastResult = result
	return result
}
