// Package config holds the game's tuning numbers and loads overrides from a
// YAML file in the user's config directory.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

const (
	configDirName  = "candychase"
	tuningFileName = "tuning.yaml"

	EnvConfigDir = "CANDYCHASE_CONFIG_DIR"
	EnvSeed      = "CANDYCHASE_SEED"
)

var ErrInvalidTuning = errors.New("invalid tuning")

// Tuning is every constant the simulation reads. Durations are in ticks,
// speeds in pixels per tick, distances in tiles unless noted.
type Tuning struct {
	TileSize       int `yaml:"tile_size"`
	TicksPerSecond int `yaml:"ticks_per_second"`

	PlayerSpeed       float64 `yaml:"player_speed"`
	GhostSpeed        float64 `yaml:"ghost_speed"`
	GhostScaredSpeed  float64 `yaml:"ghost_scared_speed"`
	EatenSpeedFactor  float64 `yaml:"eaten_speed_factor"`
	TunnelSpeedFactor float64 `yaml:"tunnel_speed_factor"`
	// AlignTolerance is in pixels.
	AlignTolerance float64 `yaml:"align_tolerance"`

	ScatterTicks    int `yaml:"scatter_ticks"`
	ChaseTicks      int `yaml:"chase_ticks"`
	FrightenedTicks int `yaml:"frightened_ticks"`

	HouseReleaseTicks int `yaml:"house_release_ticks"`
	HouseReturnTicks  int `yaml:"house_return_ticks"`

	// CollisionRadius is a fraction of TileSize.
	CollisionRadius   float64 `yaml:"collision_radius"`
	AmbushLookahead   int     `yaml:"ambush_lookahead"`
	OpportunistRadius float64 `yaml:"opportunist_radius"`
	FleeSpread        int     `yaml:"flee_spread"`

	DotScore    int `yaml:"dot_score"`
	PelletScore int `yaml:"pellet_score"`
	GhostScore  int `yaml:"ghost_score"`

	StartingLives   int `yaml:"starting_lives"`
	LevelPauseTicks int `yaml:"level_pause_ticks"`
	// MaxLevel ends the game with a win after that level is cleared.
	// Zero means levels never run out.
	MaxLevel int `yaml:"max_level"`

	Seed int64 `yaml:"seed"`
}

func Default() Tuning {
	return Tuning{
		TileSize:       20,
		TicksPerSecond: 60,

		PlayerSpeed:       2.0,
		GhostSpeed:        1.8,
		GhostScaredSpeed:  1.2,
		EatenSpeedFactor:  2.0,
		TunnelSpeedFactor: 0.6,
		AlignTolerance:    1.0,

		ScatterTicks:    420,
		ChaseTicks:      1200,
		FrightenedTicks: 300,

		HouseReleaseTicks: 60,
		HouseReturnTicks:  180,

		CollisionRadius:   0.7,
		AmbushLookahead:   4,
		OpportunistRadius: 8,
		FleeSpread:        10,

		DotScore:    10,
		PelletScore: 50,
		GhostScore:  200,

		StartingLives:   3,
		LevelPauseTicks: 120,
	}
}

// Validate rejects values the simulation cannot run with.
func (t Tuning) Validate() error {
	switch {
	case t.TileSize <= 0:
		return fmt.Errorf("%w: tile_size must be positive", ErrInvalidTuning)
	case t.TicksPerSecond <= 0:
		return fmt.Errorf("%w: ticks_per_second must be positive", ErrInvalidTuning)
	case t.PlayerSpeed <= 0 || t.GhostSpeed <= 0 || t.GhostScaredSpeed <= 0:
		return fmt.Errorf("%w: speeds must be positive", ErrInvalidTuning)
	case t.EatenSpeedFactor <= 0:
		return fmt.Errorf("%w: eaten_speed_factor must be positive", ErrInvalidTuning)
	case t.TunnelSpeedFactor <= 0 || t.TunnelSpeedFactor > 1:
		return fmt.Errorf("%w: tunnel_speed_factor must be in (0,1]", ErrInvalidTuning)
	case t.AlignTolerance < 0 || t.AlignTolerance >= float64(t.TileSize)/2:
		return fmt.Errorf("%w: align_tolerance must be in [0, tile_size/2)", ErrInvalidTuning)
	case t.ScatterTicks <= 0 || t.ChaseTicks <= 0 || t.FrightenedTicks <= 0:
		return fmt.Errorf("%w: mode durations must be positive", ErrInvalidTuning)
	case t.HouseReleaseTicks < 0 || t.HouseReturnTicks < 0 || t.LevelPauseTicks < 0:
		return fmt.Errorf("%w: timers must not be negative", ErrInvalidTuning)
	case t.CollisionRadius <= 0:
		return fmt.Errorf("%w: collision_radius must be positive", ErrInvalidTuning)
	case t.StartingLives <= 0:
		return fmt.Errorf("%w: starting_lives must be positive", ErrInvalidTuning)
	case t.MaxLevel < 0:
		return fmt.Errorf("%w: max_level must not be negative", ErrInvalidTuning)
	}
	return nil
}

// Dir returns the directory holding tuning.yaml. CANDYCHASE_CONFIG_DIR wins
// when set; otherwise UserConfigDir()/candychase is used. The directory is
// created if missing.
func Dir() (string, error) {
	if env := os.Getenv(EnvConfigDir); env != "" {
		if err := os.MkdirAll(env, 0o755); err != nil {
			return "", err
		}
		return env, nil
	}
	base, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	dir := filepath.Join(base, configDirName)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	return dir, nil
}

// Load overlays the YAML file at path on Default and validates the result.
// Keys missing from the file keep their default values.
func Load(path string) (Tuning, error) {
	t := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return t, fmt.Errorf("read tuning: %w", err)
	}
	if err := yaml.Unmarshal(data, &t); err != nil {
		return t, fmt.Errorf("parse tuning %s: %w", path, err)
	}
	if err := t.Validate(); err != nil {
		return t, err
	}
	return t, nil
}

// LoadDefault reads tuning.yaml from Dir if it exists, then applies
// environment overrides. A missing file is not an error.
func LoadDefault() (Tuning, error) {
	t := Default()
	dir, err := Dir()
	if err != nil {
		return t, fmt.Errorf("config dir: %w", err)
	}
	path := filepath.Join(dir, tuningFileName)
	if _, statErr := os.Stat(path); statErr == nil {
		if t, err = Load(path); err != nil {
			return t, err
		}
	} else if !errors.Is(statErr, os.ErrNotExist) {
		return t, fmt.Errorf("stat tuning: %w", statErr)
	}
	if err := ApplyEnv(&t); err != nil {
		return t, err
	}
	return t, nil
}

// ApplyEnv applies CANDYCHASE_SEED when set.
func ApplyEnv(t *Tuning) error {
	if s := os.Getenv(EnvSeed); s != "" {
		seed, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return fmt.Errorf("%w: %s=%q: %v", ErrInvalidTuning, EnvSeed, s, err)
		}
		t.Seed = seed
	}
	return nil
}

// Save writes t as YAML to path, replacing it atomically.
func Save(path string, t Tuning) error {
	if err := t.Validate(); err != nil {
		return err
	}
	data, err := yaml.Marshal(t)
	if err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
