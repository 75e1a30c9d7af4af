package game

import "github.com/samdwyer/liminal/internal/world"

// Config holds game startup options.
type Config struct {
	// Seed for random number generation, used for reproducible levels and
	// entity behavior. A seed of 0 means derive one from the clock.
	Seed int64

	// Biome is the level theme the game starts in.
	Biome world.Biome
}
