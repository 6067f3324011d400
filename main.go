package main

import (
	"flag"
	"log"
	"math"

	"WurmDuel/internal/server"
)

func main() {
	if err := server.LoadDotEnv(); err != nil {
		log.Printf("env: %v", err)
	}

	addr := flag.String("addr", server.EnvOr(server.EnvAddr, ":8080"), "address to listen on (e.g., 127.0.0.1:8080)")
	configPath := flag.String("config", server.EnvOr(server.EnvConfig, "configs/world.json"), "path to world tuning JSON")
	width := flag.Int("width", 0, "override terrain width in px")
	height := flag.Int("height", 0, "override terrain height in px")
	seed := flag.Int64("seed", math.MinInt64, "override terrain seed")
	tickHz := flag.Float64("tick-hz", math.NaN(), "override simulation tick rate")
	pushHz := flag.Float64("push-hz", math.NaN(), "override state broadcast rate")
	ceiling := flag.Int("simulate-ceiling", 0, "override ticks before an unresolved shot is reported")
	botThink := flag.Float64("bot-think", math.NaN(), "override seconds the bot waits before firing")
	flag.Parse()

	cfg := server.DefaultAppConfig()
	cfg.WorldConfigPath = *configPath

	var overrides server.WorldOverrides

	envSeed, err := server.EnvSeedOverride()
	if err != nil {
		log.Printf("env: %v", err)
	}
	overrides.Seed = envSeed

	if *width != 0 {
		val := *width
		overrides.Width = &val
	}
	if *height != 0 {
		val := *height
		overrides.Height = &val
	}
	if *seed != math.MinInt64 {
		val := *seed
		overrides.Seed = &val
	}
	if !math.IsNaN(*tickHz) {
		val := *tickHz
		overrides.TickHz = &val
	}
	if !math.IsNaN(*pushHz) {
		val := *pushHz
		overrides.BroadcastHz = &val
	}
	if *ceiling != 0 {
		val := *ceiling
		overrides.SimulateCeiling = &val
	}
	if !math.IsNaN(*botThink) {
		val := *botThink
		overrides.BotThinkS = &val
	}

	cfg.Overrides = overrides

	server.StartApp(*addr, cfg)
}
