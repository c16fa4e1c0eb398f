// Package config loads game and engine settings. Defaults come from code, an
// optional YAML file overrides them, and BLOCKPUSH_* environment variables
// (optionally read from a .env file) override both.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/milk9111/blockpush/common"
	"github.com/milk9111/blockpush/ecs/component"
	"gopkg.in/yaml.v3"
)

// PhysicsConfig tunes the collision engine.
type PhysicsConfig struct {
	StaticThreshold float64 `yaml:"static_threshold"`
	CellMultiplier  int     `yaml:"cell_multiplier"`
	Gravity         float64 `yaml:"gravity"`
	TickRate        int     `yaml:"tick_rate"`
}

// PlayerConfig holds player impulses, applied per input tick.
type PlayerConfig struct {
	MoveImpulse float64 `yaml:"move_impulse"`
	JumpImpulse float64 `yaml:"jump_impulse"`
}

// DebugConfig controls the debug HTTP server. An empty Addr disables it.
type DebugConfig struct {
	Addr        string  `yaml:"addr"`
	BroadcastHz float64 `yaml:"broadcast_hz"`
}

type WindowConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

type Config struct {
	Physics PhysicsConfig `yaml:"physics"`
	Player  PlayerConfig  `yaml:"player"`
	Debug   DebugConfig   `yaml:"debug"`
	Window  WindowConfig  `yaml:"window"`
	// PrefabDir, when set, is searched for prefab overrides and watched.
	PrefabDir string `yaml:"prefab_dir"`
	// Level is the level to start on.
	Level string `yaml:"level"`
}

func Default() Config {
	return Config{
		Physics: PhysicsConfig{
			StaticThreshold: common.StaticThreshold,
			CellMultiplier:  common.CellMultiplier,
			Gravity:         component.DefaultGravity,
			TickRate:        common.TickRate,
		},
		Player: PlayerConfig{
			MoveImpulse: 200,
			JumpImpulse: 1000,
		},
		Debug: DebugConfig{
			BroadcastHz: 10,
		},
		Window: WindowConfig{
			Width:  800,
			Height: 800,
		},
	}
}

// Load builds a Config from defaults, the YAML file at path (skipped when
// missing or empty) and the environment. envFile is loaded into the
// environment first when it exists.
func Load(path, envFile string) (Config, error) {
	cfg := Default()

	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return cfg, fmt.Errorf("config: load %s: %w", envFile, err)
		}
	}

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return cfg, fmt.Errorf("config: read %s: %w", path, err)
		default:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return cfg, fmt.Errorf("config: unmarshal %s: %w", path, err)
			}
		}
	}

	applyEnv(&cfg)
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.Physics.StaticThreshold <= 0 {
		return fmt.Errorf("config: static_threshold must be positive, got %v", c.Physics.StaticThreshold)
	}
	if c.Physics.CellMultiplier < 1 {
		return fmt.Errorf("config: cell_multiplier must be at least 1, got %d", c.Physics.CellMultiplier)
	}
	if c.Physics.TickRate < 1 {
		return fmt.Errorf("config: tick_rate must be at least 1, got %d", c.Physics.TickRate)
	}
	return nil
}

// DeltaTime is the fixed tick length in seconds.
func (c Config) DeltaTime() float64 {
	return 1 / float64(c.Physics.TickRate)
}

func applyEnv(cfg *Config) {
	if v := getEnvFloat("BLOCKPUSH_STATIC_THRESHOLD", -1); v > 0 {
		cfg.Physics.StaticThreshold = v
	}
	if v := getEnvInt("BLOCKPUSH_CELL_MULTIPLIER", 0); v > 0 {
		cfg.Physics.CellMultiplier = v
	}
	if v := getEnvFloat("BLOCKPUSH_GRAVITY", -1); v >= 0 {
		cfg.Physics.Gravity = v
	}
	if v := getEnvInt("BLOCKPUSH_TICK_RATE", 0); v > 0 {
		cfg.Physics.TickRate = v
	}
	if v := getEnvFloat("BLOCKPUSH_MOVE_IMPULSE", -1); v >= 0 {
		cfg.Player.MoveImpulse = v
	}
	if v := getEnvFloat("BLOCKPUSH_JUMP_IMPULSE", -1); v >= 0 {
		cfg.Player.JumpImpulse = v
	}
	if v, ok := os.LookupEnv("BLOCKPUSH_DEBUG_ADDR"); ok {
		cfg.Debug.Addr = v
	}
	if v := getEnvFloat("BLOCKPUSH_BROADCAST_HZ", 0); v > 0 {
		cfg.Debug.BroadcastHz = v
	}
	if v, ok := os.LookupEnv("BLOCKPUSH_PREFAB_DIR"); ok {
		cfg.PrefabDir = v
	}
	if v, ok := os.LookupEnv("BLOCKPUSH_LEVEL"); ok {
		cfg.Level = v
	}
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func getEnvFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}
