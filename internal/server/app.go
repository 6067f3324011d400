package server

import (
	"context"
	"log"
	"net/http"
	"time"

	. "WurmDuel/internal/game"
)

type AppConfig struct {
	WorldConfigPath string
	Overrides       WorldOverrides
}

func DefaultAppConfig() AppConfig {
	return AppConfig{
		WorldConfigPath: "configs/world.json",
	}
}

func resolveWorldSettings(cfg AppConfig) WorldSettings {
	settings := DefaultWorldSettings()
	loaded, err := loadWorldSettingsFromFile(cfg.WorldConfigPath, settings)
	if err != nil {
		log.Printf("world config: %v (using defaults)", err)
	} else {
		settings = loaded
	}
	return cfg.Overrides.apply(settings)
}

func StartApp(addr string, cfg AppConfig) {
	settings := resolveWorldSettings(cfg)
	hub := NewHub(settings.GameConfig())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go hub.Run(ctx)

	// Periodic cleanup of empty rooms (every 60 seconds)
	go func() {
		ticker := time.NewTicker(60 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				hub.CleanupEmptyRooms()
			}
		}
	}()

	seed := "random"
	if settings.Seed != nil {
		seed = formatSeed(*settings.Seed)
	}
	log.Printf("starting web server on %s (world %dx%d, seed %s, tick %.0fHz, push %.0fHz)",
		addr, settings.Width, settings.Height, seed, settings.TickHz, settings.BroadcastHz)
	log.Fatal(http.ListenAndServe(addr, newMux(hub, settings)))
}
