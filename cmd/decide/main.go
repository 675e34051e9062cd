// Command decide runs the online decision engine as an interactive
// stdin/stdout loop: deal a hand, print the bot's actions and the
// human's legal choices, read a chosen index, repeat. No CLI flags or
// server transport — every tunable comes from the environment via
// config.LoadEngineConfig, per spec.md §6's explicit non-goal on
// argument parsing and on a network-facing API.
//
// Grounded on the teacher pack's cmd/holdem-client/main.go REPL shape
// (fmt.Scanln reading a line of stdin in a loop, a *log.Logger writing
// to stderr), stripped of its kong flag parsing and bubbletea TUI.
package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"holdem-engine/blueprint"
	"holdem-engine/config"
	"holdem-engine/engine"
	"holdem-engine/holdem"
	"holdem-engine/subgame"
)

func main() {
	logger := log.New(os.Stderr)

	cfg, err := config.LoadEngineConfig()
	if err != nil {
		logger.Fatal("load engine config", "err", err)
	}

	bp := blueprint.NewStore()
	if err := bp.Load(cfg.BlueprintPath); err != nil {
		logger.Warn("no blueprint loaded, falling back to EV-only scoring", "path", cfg.BlueprintPath, "err", err)
		bp = nil
	}

	e := engine.New(engine.Config{
		GameCfg: holdem.Config{
			StartStack: cfg.StartStack,
			SmallBlind: cfg.SmallBlind,
			BigBlind:   cfg.BigBlind,
			MaxRaises:  cfg.MaxRaises,
			Epsilon:    1e-9,
		},
		EquityTrials: cfg.EquityTrials,
		EVBlend:      cfg.EVBlend,
		ProbFloor:    cfg.ProbFloor,
		Subgame: subgame.Config{
			BudgetMS:    cfg.RTSubgameMS,
			PriorWeight: cfg.RTPriorWeight,
			Depth:       cfg.RTSubgameDepth,
			TriggerPot:  cfg.RTTriggerPot,
			TriggerSPR:  cfg.RTTriggerSPR,
		},
		Seed: time.Now().UnixNano(),
	}, bp, logger)

	h := e.Health()
	logger.Info("engine ready",
		"blueprint_loaded", h.BlueprintLoaded, "blueprint_entries", h.BlueprintEntryCount,
		"start_stack", h.StartStack, "small_blind", h.SmallBlind, "big_blind", h.BigBlind,
	)

	in := bufio.NewScanner(os.Stdin)
	runRepl(e, in, logger)

	diag := e.DiagReport()
	logger.Info("session diagnostics",
		"prior_hits", diag.PriorHits, "prior_misses", diag.PriorMisses,
		"realtime_hits", diag.RealtimeHits, "realtime_fallbacks", diag.RealtimeFallbacks,
		"eval_suspect", diag.EvalSuspectWarnings, "illegal_state", diag.IllegalStateWarnings,
	)
}

func runRepl(e *engine.Engine, in *bufio.Scanner, logger *log.Logger) {
	humanSeat := 0
	handIndex := 0
	var sessionID uuid.UUID
	for {
		var s *engine.Session
		var snap engine.StateSnapshot
		var botLog []engine.BotActionRecord
		var term *engine.TerminalResult
		if handIndex == 0 {
			s, snap, botLog, term = e.NewHand(humanSeat)
			sessionID = s.ID
		} else {
			var err error
			s, snap, botLog, term, err = e.NewHandInSession(sessionID, humanSeat)
			if err != nil {
				logger.Fatal("deal hand in session", "session", sessionID, "err", err)
			}
		}
		fmt.Printf("\n=== hand %d (you are seat %d, session net %.2f) ===\n", handIndex, humanSeat, s.Score.Net)
		printBotLog(botLog)

		for term == nil {
			printSnapshot(snap)
			idx, quit := readActionIndex(in, snap)
			if quit {
				return
			}
			var err error
			var afterBotLog []engine.BotActionRecord
			snap, afterBotLog, term, err = e.ApplyHumanAction(s.ID, idx)
			if err != nil {
				fmt.Printf("invalid action: %v\n", err)
				continue
			}
			printBotLog(afterBotLog)
		}

		fmt.Printf("hand over: winner=seat%d your_payoff=%.2f net=%.2f record=%d-%d-%d\n",
			term.Winner, term.HumanPayoff, term.Score.Net, term.Score.Wins, term.Score.Losses, term.Score.Ties)
		handIndex++
		humanSeat = 1 - humanSeat
	}
}

func printSnapshot(snap engine.StateSnapshot) {
	fmt.Printf("street=%d pot=%.2f board=%v stacks=%.2f/%.2f commit=%.2f/%.2f\n",
		snap.StreetIdx, snap.Pot, snap.Board, snap.Stack[0], snap.Stack[1], snap.Commit[0], snap.Commit[1])
	fmt.Print("choose: ")
	for i, a := range snap.LegalToAct {
		fmt.Printf("[%d] %s  ", i, a)
	}
	fmt.Println()
}

func printBotLog(botLog []engine.BotActionRecord) {
	for _, rec := range botLog {
		fmt.Printf("bot (seat %d) on street %d: %s\n", rec.Seat, rec.StreetIdx, rec.Action)
	}
}

// readActionIndex reads one line of stdin and parses it as a legal
// action index, looping on malformed input; quit is true on EOF or a
// "q" line.
func readActionIndex(in *bufio.Scanner, snap engine.StateSnapshot) (idx int, quit bool) {
	for {
		if !in.Scan() {
			return 0, true
		}
		line := strings.TrimSpace(in.Text())
		if line == "q" || line == "quit" {
			return 0, true
		}
		n, err := strconv.Atoi(line)
		if err != nil || n < 0 || n >= len(snap.LegalToAct) {
			fmt.Printf("enter a number 0-%d (or q to quit): ", len(snap.LegalToAct)-1)
			continue
		}
		return n, false
	}
}
