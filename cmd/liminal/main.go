// Package main is the entry point for liminal.
package main

import (
	"context"
	"flag"
	"log"

	"github.com/joho/godotenv"

	"github.com/samdwyer/liminal/internal/game"
	"github.com/samdwyer/liminal/internal/logging"
	"github.com/samdwyer/liminal/internal/telemetry"
	"github.com/samdwyer/liminal/internal/world"
)

func main() {
	seed := flag.Int64("seed", 0, "level generation seed (0 = random)")
	startBiome := flag.String("biome", "office", "starting biome: office or poolrooms")
	flag.Parse()

	// Load .env for local development; env vars may also be set directly.
	if err := godotenv.Load(); err != nil {
		log.Printf("Note: .env file not loaded: %v", err)
	}

	if err := logging.Init(); err != nil {
		log.Printf("Warning: log file not opened: %v", err)
	}

	ctx := context.Background()

	shutdown, err := telemetry.Setup(ctx)
	if err != nil {
		log.Printf("Warning: telemetry setup failed: %v", err)
		log.Printf("Game will run without observability")
	} else {
		defer func() {
			if err := shutdown(ctx); err != nil {
				log.Printf("Error shutting down telemetry: %v", err)
			}
		}()
	}

	biome := world.BiomeOffice
	if *startBiome == "poolrooms" {
		biome = world.BiomePoolrooms
	}

	g, err := game.New(game.Config{Seed: *seed, Biome: biome})
	if err != nil {
		log.Fatalf("Failed to initialize game: %v", err)
	}

	if err := g.Run(ctx); err != nil {
		log.Fatalf("Game error: %v", err)
	}
}
