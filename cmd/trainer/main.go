// Command trainer runs the offline DCFR blueprint trainer (spec.md
// §4.7) to completion, checkpointing progress to sqlite and writing
// the final strategy file. No CLI flags: every tunable comes from the
// environment via config.LoadTrainerConfig, per spec.md §6's explicit
// non-goal on argument parsing.
//
// Grounded on the teacher's main.go training loop shape (log the
// config, run, report throughput/stop-reason at the end), adapted from
// its goroutine-pool deep-CFR actor loop to this module's sequential
// per-iteration trainer, with progress reported via
// schollz/progressbar instead of the teacher's raw log lines.
package main

import (
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/dustin/go-humanize"
	"github.com/schollz/progressbar/v3"

	"holdem-engine/blueprint"
	"holdem-engine/config"
	"holdem-engine/dcfr"
	"holdem-engine/holdem"
	"holdem-engine/store"
)

func main() {
	logger := log.New(os.Stderr)

	cfg, err := config.LoadTrainerConfig()
	if err != nil {
		logger.Fatal("load trainer config", "err", err)
	}
	logger.Info("starting dcfr training",
		"target_iterations", humanize.Comma(int64(cfg.TargetIterations)),
		"seed", cfg.Seed, "checkpoint_every", cfg.CheckpointEvery,
	)

	db, err := store.Open(cfg.DBPath)
	if err != nil {
		logger.Fatal("open checkpoint store", "err", err)
	}
	defer db.Close()

	tr := dcfr.NewTrainer(dcfr.Config{
		TargetIterations:      cfg.TargetIterations,
		Seed:                  cfg.Seed,
		EquityTrials:          cfg.EquityTrials,
		CheckpointEvery:       cfg.CheckpointEvery,
		MinItersBeforeStop:    cfg.MinItersBeforeStop,
		DriftPlateauThreshold: cfg.DriftPlateau,
		EVPlateauThreshold:    cfg.EVPlateau,
		EvalHandsPerProfile:   cfg.EvalHandsPerProfile,
		GameCfg:               holdem.DefaultConfig(),
	})

	bar := progressbar.NewOptions(cfg.TargetIterations,
		progressbar.OptionSetDescription("training"),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWriter(os.Stderr),
	)

	start := time.Now()
	reason := tr.Run(func(iter int, _ blueprint.CheckpointRecord) {
		_ = bar.Set(iter)
	})
	_ = bar.Finish()

	for _, cp := range tr.Checkpoints {
		persistCheckpoint(db, cp, logger)
	}

	elapsed := time.Since(start)
	logger.Info("training finished",
		"reason", reason, "elapsed", elapsed, "infosets", humanize.Comma(int64(tr.Arena.Len())),
	)

	sf := blueprint.StrategyFile{
		Meta: blueprint.Meta{
			Iterations:         cfg.TargetIterations,
			Seed:               cfg.Seed,
			SmallBlind:         tr.Cfg.GameCfg.SmallBlind,
			BigBlind:           tr.Cfg.GameCfg.BigBlind,
			StartStack:         tr.Cfg.GameCfg.StartStack,
			MaxRaises:          tr.Cfg.GameCfg.MaxRaises,
			EquityTrials:       cfg.EquityTrials,
			AbstractionVersion: "infoset_v1",
			StoppingReason:     reason,
			Checkpoints:        tr.Checkpoints,
		},
		Policy: tr.ExportPolicy(),
	}
	if err := blueprint.Save(cfg.OutputPath, sf); err != nil {
		logger.Fatal("save strategy file", "err", err)
	}
	logger.Info("wrote strategy file", "path", cfg.OutputPath, "policy_size", len(sf.Policy))
}

func persistCheckpoint(db *store.Store, cp blueprint.CheckpointRecord, logger *log.Logger) {
	if err := db.SaveCheckpoint(cp); err != nil {
		logger.Error("save checkpoint", "iteration", cp.Iteration, "err", err)
		return
	}
	logger.Debug("checkpoint saved", "iteration", cp.Iteration, "drift", cp.Drift, "eval", cp.EvalAggregate)
}
