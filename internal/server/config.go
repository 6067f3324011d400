package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"math"
	"os"
	"path/filepath"
	"strconv"

	. "WurmDuel/internal/game"

	"github.com/joho/godotenv"
)

const (
	EnvAddr   = "WURM_ADDR"
	EnvSeed   = "WURM_SEED"
	EnvConfig = "WURM_CONFIG"
)

// WorldSettings is the resolved tuning for every room on the server.
type WorldSettings struct {
	Width           int
	Height          int
	Seed            *int64
	TickHz          float64
	BroadcastHz     float64
	SimulateCeiling int
	BotThinkS       float64
}

func DefaultWorldSettings() WorldSettings {
	return WorldSettings{
		Width:           WorldW,
		Height:          WorldH,
		TickHz:          SimHz,
		BroadcastHz:     UpdateRateHz,
		SimulateCeiling: DefaultSimulateTicks,
		BotThinkS:       BotThinkS,
	}
}

// GameConfig is the per-room configuration handed to the hub.
func (s WorldSettings) GameConfig() Config {
	return Config{
		Width:           s.Width,
		Height:          s.Height,
		Seed:            s.Seed,
		TickHz:          s.TickHz,
		SimulateCeiling: s.SimulateCeiling,
		BotThink:        s.BotThinkS,
	}
}

// SanitizeWorldSettings replaces unusable values with defaults.
func SanitizeWorldSettings(s WorldSettings) WorldSettings {
	def := DefaultWorldSettings()
	if s.Width <= 0 || s.Height <= 0 {
		log.Printf("world config: dimensions %dx%d rejected, using %dx%d", s.Width, s.Height, def.Width, def.Height)
		s.Width, s.Height = def.Width, def.Height
	}
	if s.TickHz <= 0 || math.IsNaN(s.TickHz) {
		s.TickHz = def.TickHz
	}
	if s.BroadcastHz <= 0 || math.IsNaN(s.BroadcastHz) {
		s.BroadcastHz = def.BroadcastHz
	}
	if s.BroadcastHz > s.TickHz {
		s.BroadcastHz = s.TickHz
	}
	if s.SimulateCeiling <= 0 {
		s.SimulateCeiling = def.SimulateCeiling
	}
	if s.BotThinkS < 0 || math.IsNaN(s.BotThinkS) {
		s.BotThinkS = def.BotThinkS
	}
	return s
}

type worldFileConfig struct {
	Width           *int     `json:"width"`
	Height          *int     `json:"height"`
	Seed            *int64   `json:"seed"`
	TickHz          *float64 `json:"tickHz"`
	BroadcastHz     *float64 `json:"broadcastHz"`
	SimulateCeiling *int     `json:"simulateCeiling"`
	BotThinkSeconds *float64 `json:"botThinkSeconds"`
}

type fileConfig struct {
	World *worldFileConfig `json:"world"`
}

// WorldOverrides are optional command-line or environment overrides.
type WorldOverrides struct {
	Width           *int
	Height          *int
	Seed            *int64
	TickHz          *float64
	BroadcastHz     *float64
	SimulateCeiling *int
	BotThinkS       *float64
}

func (o WorldOverrides) apply(base WorldSettings) WorldSettings {
	if o.Width != nil {
		base.Width = *o.Width
	}
	if o.Height != nil {
		base.Height = *o.Height
	}
	if o.Seed != nil {
		seed := *o.Seed
		base.Seed = &seed
	}
	if o.TickHz != nil {
		base.TickHz = *o.TickHz
	}
	if o.BroadcastHz != nil {
		base.BroadcastHz = *o.BroadcastHz
	}
	if o.SimulateCeiling != nil {
		base.SimulateCeiling = *o.SimulateCeiling
	}
	if o.BotThinkS != nil {
		base.BotThinkS = *o.BotThinkS
	}
	return SanitizeWorldSettings(base)
}

func mergeWorldConfig(base WorldSettings, cfg *worldFileConfig) WorldSettings {
	if cfg == nil {
		return base
	}
	return WorldOverrides{
		Width:           cfg.Width,
		Height:          cfg.Height,
		Seed:            cfg.Seed,
		TickHz:          cfg.TickHz,
		BroadcastHz:     cfg.BroadcastHz,
		SimulateCeiling: cfg.SimulateCeiling,
		BotThinkS:       cfg.BotThinkSeconds,
	}.apply(base)
}

func loadWorldSettingsFromFile(path string, base WorldSettings) (WorldSettings, error) {
	if path == "" {
		return SanitizeWorldSettings(base), nil
	}
	cleanPath := filepath.Clean(path)
	data, err := os.ReadFile(cleanPath)
	if err != nil {
		if os.IsNotExist(err) {
			return SanitizeWorldSettings(base), nil
		}
		return SanitizeWorldSettings(base), fmt.Errorf("read world config %q: %w", cleanPath, err)
	}
	var cfg fileConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return SanitizeWorldSettings(base), fmt.Errorf("parse world config %q: %w", cleanPath, err)
	}
	return mergeWorldConfig(base, cfg.World), nil
}

// LoadDotEnv reads KEY=VALUE pairs from the given files (".env" when none are
// named) into the process environment. Variables already set win. A missing
// file is not an error.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	var present []string
	for _, f := range files {
		if _, err := os.Stat(f); err == nil {
			present = append(present, f)
		} else if !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("stat %q: %w", f, err)
		}
	}
	if len(present) == 0 {
		return nil
	}
	if err := godotenv.Load(present...); err != nil {
		return fmt.Errorf("load env: %w", err)
	}
	log.Printf("loaded environment from %v", present)
	return nil
}

// EnvOr returns the variable's value, or fallback when it is unset or empty.
func EnvOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// EnvSeedOverride parses WURM_SEED. Unset yields nil; garbage is an error.
func EnvSeedOverride() (*int64, error) {
	raw := os.Getenv(EnvSeed)
	if raw == "" {
		return nil, nil
	}
	seed, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%s=%q: %w", EnvSeed, raw, err)
	}
	return &seed, nil
}
