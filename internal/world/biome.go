package world

// Biome selects the level theme. It controls the room-type palette, the
// chance of a room being lit, and whether pools and the entity exist.
type Biome int

const (
	// BiomeOffice is the endless fluorescent office maze. Mostly dark.
	BiomeOffice Biome = iota
	// BiomePoolrooms is the tiled, half-flooded variant. Better lit, no entity.
	BiomePoolrooms
)

// String returns a human-readable biome name.
func (b Biome) String() string {
	switch b {
	case BiomeOffice:
		return "office"
	case BiomePoolrooms:
		return "poolrooms"
	default:
		return "unknown"
	}
}

// ID returns the biome identifier used for data lookup.
func (b Biome) ID() string {
	return b.String()
}

// LitChance returns the probability that a freshly placed room is lit.
func (b Biome) LitChance() float64 {
	if b == BiomePoolrooms {
		return 0.7
	}
	return 0.3
}

// RoomTarget returns how many rooms generation aims to place.
func (b Biome) RoomTarget() int {
	if b == BiomePoolrooms {
		return 15
	}
	return 20
}
