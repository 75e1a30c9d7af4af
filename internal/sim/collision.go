// Package sim implements the per-tick simulation core: movement, visibility,
// exploration memory, and the roaming entity. Components are functions over
// the shared Sim state; the only cross-tick mutations are the grid (written
// once at generation) and the exploration map.
package sim

import (
	"math"

	"github.com/samdwyer/liminal/internal/world"
)

// ActorHalfExtent is half the side length of an actor's square footprint,
// in world units. Both the player and the entity use the same footprint.
const ActorHalfExtent = 8.0

// CellOf maps a continuous world coordinate to its grid cell.
func CellOf(x, y float64) world.Point {
	return world.Point{
		X: int(math.Floor(x / world.TileSize)),
		Y: int(math.Floor(y / world.TileSize)),
	}
}

// CanOccupy reports whether an actor with the given footprint half-extent
// can stand at world position (x, y). Five probe points are tested: the
// four footprint corners and the center. A probe fails on a blocking tile
// or out of bounds; out-of-bounds always blocks.
func CanOccupy(lv *world.Level, x, y, halfExtent float64) bool {
	probes := [5][2]float64{
		{x - halfExtent, y - halfExtent},
		{x + halfExtent, y - halfExtent},
		{x - halfExtent, y + halfExtent},
		{x + halfExtent, y + halfExtent},
		{x, y},
	}

	for _, p := range probes {
		cell := CellOf(p[0], p[1])
		if !lv.InBounds(cell.X, cell.Y) {
			return false
		}
		if lv.Tiles[cell.Y][cell.X].Blocks() {
			return false
		}
	}
	return true
}
