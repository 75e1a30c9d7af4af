package sim

import (
	"context"
	"math/rand"

	"github.com/zyedidia/generic/mapset"
	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/liminal/internal/gamedata"
	"github.com/samdwyer/liminal/internal/telemetry"
	"github.com/samdwyer/liminal/internal/world"
)

// Input carries one tick's worth of player intent, translated from raw
// device events by the surrounding layer.
type Input struct {
	MoveX, MoveY float64 // Movement delta before sprint scaling
	Sprint       bool    // Sprint key held
	Ping         bool    // Ping requested this tick
	PointerX     float64 // Pointer position in world coordinates
	PointerY     float64
}

// Sim is the simulation context: the level, both actors, and the two
// visibility structures. Step mutates it in a fixed component order;
// everything else reads it.
type Sim struct {
	Level  *world.Level
	Player *Player
	Entity *Entity

	// Visible is the set of cells lit this tick, rebuilt from scratch
	// every Step.
	Visible mapset.Set[world.Point]

	// Explored maps previously seen cells to a fade strength in (0, 1].
	// Cells decay out of the map entirely once forgotten.
	Explored map[world.Point]float64

	Ping Ping

	// ExitCells caches the level-exit positions for the ping overlay.
	ExitCells []world.Point

	defs *gamedata.RoomRegistry
	rng  *rand.Rand
	tick uint64
}

// New creates a simulation with no level loaded; call Regenerate before the
// first Step. The rng is the only nondeterminism in the whole simulation.
func New(defs *gamedata.RoomRegistry, rng *rand.Rand) *Sim {
	return &Sim{
		Player:   NewPlayer(0, 0),
		Visible:  mapset.New[world.Point](),
		Explored: make(map[world.Point]float64),
		defs:     defs,
		rng:      rng,
	}
}

// Regenerate builds a fresh level for the given biome and resets all
// per-level state. The player object survives (stamina carries across
// levels) but is moved to the first room's center, or the grid center when
// generation produced no rooms at all.
func (s *Sim) Regenerate(ctx context.Context, biome world.Biome) {
	tracer := telemetry.Tracer("sim")
	ctx, span := tracer.Start(ctx, "sim.regenerate")
	defer span.End()

	level := world.NewLevel(world.DefaultWidth, world.DefaultHeight, biome, s.defs, s.rng)
	level.Generate(ctx)
	s.Level = level

	if len(level.Rooms) > 0 {
		cx, cy := level.Rooms[0].Center()
		s.Player.X = float64(cx * world.TileSize)
		s.Player.Y = float64(cy * world.TileSize)
	} else {
		s.Player.X = float64(level.Width * world.TileSize / 2)
		s.Player.Y = float64(level.Height * world.TileSize / 2)
	}

	s.Visible = mapset.New[world.Point]()
	s.Explored = make(map[world.Point]float64)
	s.Entity = NewEntity(s.rng)
	s.Ping = Ping{}
	s.ExitCells = level.ExitCells()

	span.SetAttributes(
		attribute.String("level.id", level.ID.String()),
		attribute.String("level.biome", biome.String()),
		attribute.Int("level.rooms", len(level.Rooms)),
		attribute.Int("level.exits", len(s.ExitCells)),
	)
}

// Step advances the simulation one tick. Component order is fixed:
// movement, then visibility, then exploration decay, then the entity, so
// the entity always sees the visible set computed this same tick.
func (s *Sim) Step(in Input) {
	s.tick++

	s.Player.Move(s.Level, in.MoveX, in.MoveY, in.Sprint)
	s.Player.FaceToward(in.PointerX, in.PointerY)

	s.Visible = ComputeVisible(s.Level, s.Player)
	UpdateMemory(s.Explored, s.Visible)

	if in.Ping {
		s.Ping.Trigger()
	}
	s.Ping.Update()

	s.Entity.Update(s.Level, s.Player.X, s.Player.Y, s.Visible)
}

// Tick returns the number of Steps taken since the simulation was created.
func (s *Sim) Tick() uint64 {
	return s.tick
}

// PlayerOnExit reports whether the player's cell is a level-exit tile.
func (s *Sim) PlayerOnExit() bool {
	cell := s.Player.Cell()
	return s.Level.Tile(cell.X, cell.Y) == world.TileLevelExit
}
