// Package config loads the engine's and trainer's tunables from the
// environment via cleanenv, adapted from the teacher's
// appconfig.LoadAppConfig (cleanenv.ReadEnv into a tagged struct),
// generalized from an empty placeholder struct to the full parameter
// table spec.md §6 names, each carrying its spec default as the env
// tag's fallback.
package config

import "github.com/ilyakaznacheev/cleanenv"

// EngineConfig holds the online decision engine's tunables.
type EngineConfig struct {
	StartStack   float64 `env:"START_STACK" env-default:"200"`
	SmallBlind   float64 `env:"SMALL_BLIND" env-default:"1"`
	BigBlind     float64 `env:"BIG_BLIND" env-default:"2"`
	MaxRaises    int     `env:"MAX_RAISES" env-default:"3"`
	EquityTrials int     `env:"EQUITY_TRIALS" env-default:"600"`

	RTSubgameMS     int     `env:"RT_SUBGAME_MS" env-default:"300"`
	RTSubgameDepth  int     `env:"RT_SUBGAME_DEPTH" env-default:"5"`
	RTTriggerPot    float64 `env:"RT_TRIGGER_POT" env-default:"60"`
	RTTriggerSPR    float64 `env:"RT_TRIGGER_SPR" env-default:"4"`
	RTPriorWeight   float64 `env:"RT_PRIOR_WEIGHT" env-default:"0.65"`

	EVBlend   float64 `env:"EV_BLEND" env-default:"0.4"`
	ProbFloor float64 `env:"PROB_FLOOR" env-default:"0.0001"`

	BlueprintPath string `env:"BLUEPRINT_PATH" env-default:"blueprint.json"`
}

// TrainerConfig holds the offline DCFR trainer's tunables.
type TrainerConfig struct {
	TargetIterations int     `env:"TARGET_ITERATIONS" env-default:"200000"`
	Seed             int64   `env:"SEED" env-default:"1"`
	EquityTrials     int     `env:"EQUITY_TRIALS" env-default:"180"`
	CheckpointEvery  int     `env:"CHECKPOINT_EVERY" env-default:"10000"`

	MinItersBeforeStop   int     `env:"MIN_ITERS_BEFORE_STOP" env-default:"50000"`
	DriftPlateau         float64 `env:"DRIFT_PLATEAU" env-default:"0.015"`
	EVPlateau            float64 `env:"EV_PLATEAU" env-default:"0.02"`
	EvalHandsPerProfile  int     `env:"EVAL_HANDS_PER_PROFILE" env-default:"200"`

	OutputPath string `env:"OUTPUT_PATH" env-default:"blueprint.json"`
	DBPath     string `env:"CHECKPOINT_DB_PATH" env-default:"checkpoints.db"`
}

// LoadEngineConfig reads an EngineConfig from the environment.
func LoadEngineConfig() (*EngineConfig, error) {
	cfg := &EngineConfig{}
	if err := cleanenv.ReadEnv(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadTrainerConfig reads a TrainerConfig from the environment.
func LoadTrainerConfig() (*TrainerConfig, error) {
	cfg := &TrainerConfig{}
	if err := cleanenv.ReadEnv(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
