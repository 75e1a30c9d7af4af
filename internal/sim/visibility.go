package sim

import (
	"math"

	"github.com/zyedidia/generic/mapset"

	"github.com/samdwyer/liminal/internal/world"
)

const (
	// flashlightConeDegrees is the total angular width of the cone.
	flashlightConeDegrees = 60

	// flashlightStepDegrees is the angular spacing between cast rays.
	flashlightStepDegrees = 2

	// flashlightRangeTiles is how far a ray travels, in grid units.
	flashlightRangeTiles = 4.0

	// rayStepTiles is the march increment along a ray, in grid units.
	rayStepTiles = 0.1
)

// ComputeVisible recomputes the set of grid cells visible to the player,
// from scratch. Two sources are unioned: if the player stands in a lit room,
// the room's whole rectangle is visible regardless of line of sight; the
// flashlight cone is cast unconditionally on top of that.
func ComputeVisible(lv *world.Level, p *Player) mapset.Set[world.Point] {
	visible := mapset.New[world.Point]()

	cell := p.Cell()
	if room := lv.RoomAt(cell.X, cell.Y); room != nil && room.Lit {
		for y := room.Y; y < room.Y+room.Height; y++ {
			for x := room.X; x < room.X+room.Width; x++ {
				if lv.InBounds(x, y) {
					visible.Put(world.Point{X: x, Y: y})
				}
			}
		}
	}

	castFlashlight(lv, p, visible)

	return visible
}

// castFlashlight marks the cells touched by a fan of rays centered on the
// player's heading.
func castFlashlight(lv *world.Level, p *Player, visible mapset.Set[world.Point]) {
	start := int(p.Heading - flashlightConeDegrees/2)
	end := int(p.Heading + flashlightConeDegrees/2)

	for deg := start; deg <= end; deg += flashlightStepDegrees {
		castRay(lv,
			p.X/world.TileSize,
			p.Y/world.TileSize,
			float64(deg)*math.Pi/180,
			flashlightRangeTiles,
			visible,
		)
	}
}

// castRay marches outward from (startX, startY) in grid units, marking every
// traversed cell visible. Walls are marked and then terminate the ray; every
// other tile kind is transparent. Leaving the grid also terminates the ray.
func castRay(lv *world.Level, startX, startY, angle, maxDistance float64, visible mapset.Set[world.Point]) {
	dx := math.Cos(angle)
	dy := math.Sin(angle)

	x, y := startX, startY
	for distance := 0.0; distance < maxDistance; distance += rayStepTiles {
		gx := int(math.Floor(x))
		gy := int(math.Floor(y))

		if !lv.InBounds(gx, gy) {
			return
		}

		visible.Put(world.Point{X: gx, Y: gy})

		if lv.Tiles[gy][gx].Opaque() {
			return
		}

		x += dx * rayStepTiles
		y += dy * rayStepTiles
	}
}
