package world

import (
	"context"
	"math/rand"
	"testing"

	"github.com/samdwyer/liminal/internal/gamedata"
)

func testRegistry(t *testing.T) *gamedata.RoomRegistry {
	t.Helper()
	registry, err := gamedata.LoadRoomRegistry()
	if err != nil {
		t.Fatalf("Failed to load room registry: %v", err)
	}
	return registry
}

func TestLevelReproducibility(t *testing.T) {
	// Generate two levels with the same seed
	seed := int64(12345)
	registry := testRegistry(t)

	rng1 := rand.New(rand.NewSource(seed))
	rng2 := rand.New(rand.NewSource(seed))

	l1 := NewLevel(DefaultWidth, DefaultHeight, BiomeOffice, registry, rng1)
	l2 := NewLevel(DefaultWidth, DefaultHeight, BiomeOffice, registry, rng2)

	ctx := context.Background()
	l1.Generate(ctx)
	l2.Generate(ctx)

	if len(l1.Rooms) != len(l2.Rooms) {
		t.Fatalf("Room count mismatch: %d != %d", len(l1.Rooms), len(l2.Rooms))
	}

	for i := range l1.Rooms {
		r1, r2 := l1.Rooms[i], l2.Rooms[i]
		if r1.X != r2.X || r1.Y != r2.Y || r1.Width != r2.Width || r1.Height != r2.Height ||
			r1.Type != r2.Type || r1.Lit != r2.Lit {
			t.Errorf("Room %d mismatch: %+v != %+v", i, r1, r2)
		}
	}

	for y := 0; y < l1.Height; y++ {
		for x := 0; x < l1.Width; x++ {
			if l1.Tiles[y][x] != l2.Tiles[y][x] {
				t.Errorf("Tile mismatch at (%d,%d): %v != %v", x, y, l1.Tiles[y][x], l2.Tiles[y][x])
			}
		}
	}
}

func TestRoomsDoNotOverlap(t *testing.T) {
	registry := testRegistry(t)
	ctx := context.Background()

	for _, biome := range []Biome{BiomeOffice, BiomePoolrooms} {
		for seed := int64(1); seed <= 5; seed++ {
			rng := rand.New(rand.NewSource(seed))
			l := NewLevel(DefaultWidth, DefaultHeight, biome, registry, rng)
			l.Generate(ctx)

			for i := 0; i < len(l.Rooms); i++ {
				for j := i + 1; j < len(l.Rooms); j++ {
					if l.Rooms[i].Intersects(l.Rooms[j]) {
						t.Errorf("biome %s seed %d: rooms %d and %d overlap: %+v %+v",
							biome, seed, i, j, l.Rooms[i], l.Rooms[j])
					}
				}
			}
		}
	}
}

func TestRoomTargetRespected(t *testing.T) {
	registry := testRegistry(t)
	ctx := context.Background()

	rng := rand.New(rand.NewSource(7))
	l := NewLevel(DefaultWidth, DefaultHeight, BiomeOffice, registry, rng)
	l.Generate(ctx)

	if len(l.Rooms) == 0 {
		t.Fatal("Expected at least one room on a full-size grid")
	}
	if len(l.Rooms) > BiomeOffice.RoomTarget() {
		t.Errorf("Expected at most %d rooms, got %d", BiomeOffice.RoomTarget(), len(l.Rooms))
	}

	for _, room := range l.Rooms {
		if room.Type == RoomPoolArea || room.Type == RoomPoolCorridor || room.Type == RoomPoolChanging {
			t.Errorf("Office level placed pool room type %s", room.Type.ID())
		}
	}
}

// floodFill returns all non-blocking cells reachable from start via
// 4-connected adjacency.
func floodFill(l *Level, start Point) map[Point]bool {
	reached := make(map[Point]bool)
	if l.Tile(start.X, start.Y).Blocks() {
		return reached
	}

	queue := []Point{start}
	reached[start] = true
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, d := range [4]Point{{1, 0}, {-1, 0}, {0, 1}, {0, -1}} {
			next := Point{X: cur.X + d.X, Y: cur.Y + d.Y}
			if reached[next] || !l.InBounds(next.X, next.Y) || l.Tile(next.X, next.Y).Blocks() {
				continue
			}
			reached[next] = true
			queue = append(queue, next)
		}
	}
	return reached
}

func TestAllRoomsReachable(t *testing.T) {
	registry := testRegistry(t)
	ctx := context.Background()

	for seed := int64(1); seed <= 5; seed++ {
		rng := rand.New(rand.NewSource(seed))
		l := NewLevel(DefaultWidth, DefaultHeight, BiomeOffice, registry, rng)
		l.Generate(ctx)

		if len(l.Rooms) < 2 {
			continue
		}

		cx, cy := l.Rooms[0].Center()
		reached := floodFill(l, Point{X: cx, Y: cy})

		for i, room := range l.Rooms {
			rx, ry := room.Center()
			if !reached[Point{X: rx, Y: ry}] {
				t.Errorf("seed %d: room %d center (%d,%d) not reachable from room 0", seed, i, rx, ry)
			}
		}
	}
}

func TestTwoRoomCorridor(t *testing.T) {
	registry := testRegistry(t)
	rng := rand.New(rand.NewSource(42))

	l := NewLevel(20, 20, BiomeOffice, registry, rng)
	a := Room{X: 0, Y: 0, Width: 4, Height: 4, Type: RoomStorageRoom}
	b := Room{X: 10, Y: 10, Width: 4, Height: 4, Type: RoomStorageRoom}
	l.Rooms = []Room{a, b}
	l.carveRoom(a)
	l.carveRoom(b)

	l.connectRooms()

	// Both interiors must now sit in a single floor component.
	ax, ay := a.Center()
	reached := floodFill(l, Point{X: ax, Y: ay})

	bx, by := b.Center()
	if !reached[Point{X: bx, Y: by}] {
		t.Fatal("Room B center not reachable from room A after connection")
	}

	// Every floor tile belongs to that one component: no stray carving.
	for y := 0; y < l.Height; y++ {
		for x := 0; x < l.Width; x++ {
			if l.Tiles[y][x] == TileFloor && !reached[Point{X: x, Y: y}] {
				t.Errorf("Floor tile (%d,%d) disconnected from the corridor component", x, y)
			}
		}
	}

	if len(l.Rooms[0].Connections) == 0 || len(l.Rooms[1].Connections) == 0 {
		t.Error("Expected connection links recorded on both rooms")
	}
}

func TestLevelExitInCorner(t *testing.T) {
	registry := testRegistry(t)
	rng := rand.New(rand.NewSource(1))

	l := NewLevel(30, 30, BiomeOffice, registry, rng)
	room := Room{X: 5, Y: 5, Width: 10, Height: 10, Type: RoomLobby}
	l.Rooms = []Room{room}
	l.carveRoom(room)

	l.placeLevelExit()

	exits := l.ExitCells()
	if len(exits) != 1 {
		t.Fatalf("Expected exactly one exit, got %d", len(exits))
	}
	// Fixed corner order means the top-left interior cell wins.
	want := Point{X: 6, Y: 6}
	if exits[0] != want {
		t.Errorf("Expected exit at %+v, got %+v", want, exits[0])
	}
}

func TestLevelExitSkipsOccupiedCorners(t *testing.T) {
	registry := testRegistry(t)
	rng := rand.New(rand.NewSource(1))

	l := NewLevel(30, 30, BiomeOffice, registry, rng)
	room := Room{X: 5, Y: 5, Width: 10, Height: 10, Type: RoomLobby}
	l.Rooms = []Room{room}
	l.carveRoom(room)
	l.Tiles[6][6] = TileVent // occupy the first candidate corner

	l.placeLevelExit()

	exits := l.ExitCells()
	if len(exits) != 1 {
		t.Fatalf("Expected exactly one exit, got %d", len(exits))
	}
	want := Point{X: 13, Y: 6} // top-right interior, the second candidate
	if exits[0] != want {
		t.Errorf("Expected exit at %+v, got %+v", want, exits[0])
	}
}

func TestNoRoomsIsNotFatal(t *testing.T) {
	registry := testRegistry(t)
	rng := rand.New(rand.NewSource(1))

	l := NewLevel(10, 10, BiomeOffice, registry, rng)

	// All passes must tolerate an empty room list without panicking.
	l.connectRooms()
	l.paintFeatures()
	l.digPools()
	l.placeLevelExit()

	if got := len(l.ExitCells()); got != 0 {
		t.Errorf("Expected no exits on an empty level, got %d", got)
	}
	for y := 0; y < l.Height; y++ {
		for x := 0; x < l.Width; x++ {
			if l.Tiles[y][x] != TileWall {
				t.Errorf("Expected all walls, found %v at (%d,%d)", l.Tiles[y][x], x, y)
			}
		}
	}
}

func TestPoolRespectsRoomMargin(t *testing.T) {
	registry := testRegistry(t)
	rng := rand.New(rand.NewSource(3))

	l := NewLevel(40, 40, BiomePoolrooms, registry, rng)
	room := Room{X: 5, Y: 5, Width: 20, Height: 16, Type: RoomPoolArea}
	l.Rooms = []Room{room}
	l.carveRoom(room)

	l.digPools()

	foundPool := false
	for y := 0; y < l.Height; y++ {
		for x := 0; x < l.Width; x++ {
			tile := l.Tiles[y][x]
			if tile != TilePool && tile != TilePoolEdge {
				continue
			}
			foundPool = true
			if x < room.X+poolMargin || x > room.X+room.Width-poolMargin-1 ||
				y < room.Y+poolMargin || y > room.Y+room.Height-poolMargin-1 {
				t.Errorf("Pool tile %v at (%d,%d) violates the %d-cell room margin", tile, x, y, poolMargin)
			}
		}
	}
	if !foundPool {
		t.Error("Expected a pool in a 20x16 pool area room")
	}
}

func TestFeaturePaintingOnlyOverwritesFloor(t *testing.T) {
	registry := testRegistry(t)
	rng := rand.New(rand.NewSource(9))

	l := NewLevel(30, 30, BiomeOffice, registry, rng)
	room := Room{X: 5, Y: 5, Width: 8, Height: 8, Type: RoomStorageRoom}
	l.Rooms = []Room{room}
	l.carveRoom(room)

	// Pre-paint the interior with vents; scatter must leave them alone.
	for y := room.Y + 1; y < room.Y+room.Height-1; y++ {
		for x := room.X + 1; x < room.X+room.Width-1; x++ {
			l.Tiles[y][x] = TileVent
		}
	}

	l.paintFeatures()

	for y := room.Y; y < room.Y+room.Height; y++ {
		for x := room.X; x < room.X+room.Width; x++ {
			if l.Tiles[y][x] == TileExit {
				t.Errorf("Scatter overwrote a non-floor cell at (%d,%d)", x, y)
			}
		}
	}
}

func TestRoomTypeIDsMatchRoomTable(t *testing.T) {
	registry := testRegistry(t)

	for _, def := range registry.All() {
		typ, ok := RoomTypeByID(def.ID)
		if !ok {
			t.Errorf("Room table entry %q has no RoomType", def.ID)
			continue
		}
		if typ.ID() != def.ID {
			t.Errorf("RoomType round trip mismatch: %q != %q", typ.ID(), def.ID)
		}
	}
}
