package sim

import (
	"math"
	"math/rand"

	"github.com/sirupsen/logrus"
	"github.com/zyedidia/generic/mapset"

	"github.com/samdwyer/liminal/internal/logging"
	"github.com/samdwyer/liminal/internal/world"
)

const (
	entitySpeed        = 1.0 // Slightly slower than the player
	entityEaseFraction = 0.1 // How much of the heading gap closes per tick
	entityRetargetTick = 60  // Ticks between random heading changes

	entitySpawnRetries   = 20
	entityMinSpawnDist   = 120
	entityMaxSpawnDist   = 180
	entityRetryDelay     = 60
	entityFirstSpawnMin  = 1800
	entityFirstSpawnMax  = 3600
	entityRespawnMin     = 1200
	entityRespawnMax     = 2400
	entityVisibleMin     = 120
	entityVisibleMax     = 300
)

// Entity is the roaming figure that intermittently appears near the player,
// moving like a distant second player. Two states: hidden (a countdown runs
// toward the next appearance) and visible (it wanders until its duration
// expires). It exists only in the office biome.
type Entity struct {
	X, Y    float64
	Visible bool
	Heading float64 // Facing direction in degrees

	targetHeading float64
	spawnTimer    int
	visibleTimer  int
	moveTimer     int

	rng *rand.Rand
	log *logrus.Entry
}

// NewEntity creates a hidden entity. The first appearance countdown is drawn
// from a wider range than later ones, so a fresh level gets a long quiet
// opening stretch.
func NewEntity(rng *rand.Rand) *Entity {
	return &Entity{
		spawnTimer: intRange(rng, entityFirstSpawnMin, entityFirstSpawnMax),
		rng:        rng,
		log:        logging.Component("entity"),
	}
}

// Update advances the entity one tick. The visible set must be the one
// computed earlier this same tick, so a spawn can never land on a cell the
// player currently sees.
func (e *Entity) Update(lv *world.Level, playerX, playerY float64, visible mapset.Set[world.Point]) {
	// The poolrooms have no entity. Hard-disabled, timers and all.
	if lv.Biome != world.BiomeOffice {
		e.Visible = false
		return
	}

	e.spawnTimer--

	if e.spawnTimer <= 0 && !e.Visible {
		e.trySpawn(lv, playerX, playerY, visible)
	}

	if e.Visible {
		e.wander(lv)
	}
}

// trySpawn attempts to place the entity on a floor cell in a close band
// around the player, outside the currently visible set. On success it
// becomes visible and draws its duration and next spawn countdown; after
// exhausting all retries it backs off briefly instead.
func (e *Entity) trySpawn(lv *world.Level, playerX, playerY float64, visible mapset.Set[world.Point]) {
	for attempt := 0; attempt < entitySpawnRetries; attempt++ {
		distance := float64(intRange(e.rng, entityMinSpawnDist, entityMaxSpawnDist))
		angle := e.rng.Float64() * 2 * math.Pi

		x := playerX + math.Cos(angle)*distance
		y := playerY + math.Sin(angle)*distance

		cell := CellOf(x, y)
		if !lv.InBounds(cell.X, cell.Y) || lv.Tiles[cell.Y][cell.X] != world.TileFloor {
			continue
		}
		if visible.Has(cell) {
			continue
		}

		e.X = x
		e.Y = y
		e.Heading = e.rng.Float64() * 360
		e.targetHeading = e.Heading
		e.Visible = true
		e.visibleTimer = intRange(e.rng, entityVisibleMin, entityVisibleMax)
		e.spawnTimer = intRange(e.rng, entityRespawnMin, entityRespawnMax)
		e.moveTimer = 0

		e.log.WithFields(logrus.Fields{
			"cell_x":   cell.X,
			"cell_y":   cell.Y,
			"duration": e.visibleTimer,
		}).Debug("entity appeared")
		return
	}

	e.spawnTimer = entityRetryDelay
}

// wander runs one visible-state tick: ease toward the target heading, step
// forward, and vanish when the duration runs out.
func (e *Entity) wander(lv *world.Level) {
	e.visibleTimer--
	e.moveTimer++

	if e.moveTimer%entityRetargetTick == 0 {
		e.targetHeading = e.rng.Float64() * 360
	}

	// Ease along the shortest angular arc; the raw difference can point
	// the long way around the circle.
	diff := e.targetHeading - e.Heading
	if diff > 180 {
		diff -= 360
	} else if diff < -180 {
		diff += 360
	}
	e.Heading += diff * entityEaseFraction

	rad := e.Heading * math.Pi / 180
	nx := e.X + math.Cos(rad)*entitySpeed
	ny := e.Y + math.Sin(rad)*entitySpeed

	// Single combined step. On a blocked step the position is discarded
	// and a fresh target heading is drawn immediately.
	if CanOccupy(lv, nx, ny, ActorHalfExtent) {
		e.X = nx
		e.Y = ny
	} else {
		e.targetHeading = e.rng.Float64() * 360
	}

	if e.visibleTimer <= 0 {
		e.Visible = false
		e.log.Debug("entity vanished")
	}
}

// Cell returns the grid cell the entity's center occupies.
func (e *Entity) Cell() world.Point {
	return CellOf(e.X, e.Y)
}

// intRange returns a uniform value in [lo, hi].
func intRange(rng *rand.Rand, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + rng.Intn(hi-lo+1)
}
