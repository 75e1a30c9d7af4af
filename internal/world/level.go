package world

import (
	"context"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/liminal/internal/gamedata"
	"github.com/samdwyer/liminal/internal/logging"
	"github.com/samdwyer/liminal/internal/telemetry"
)

const (
	// DefaultWidth and DefaultHeight are the generated grid dimensions.
	DefaultWidth  = 288
	DefaultHeight = 162

	// placementAttempts bounds the room placement loop. Generation that
	// runs out of attempts simply keeps whatever rooms it has.
	placementAttempts = 150

	// exitRoomMinArea is the preferred minimum area for the room that
	// receives the level exit.
	exitRoomMinArea = 64

	// poolMargin is how many cells of clear floor stay between a pool's
	// ring and the room border.
	poolMargin = 2
)

// featureTiles maps room table feature identifiers to tile kinds.
var featureTiles = map[string]Tile{
	"exit":         TileExit,
	"vent":         TileVent,
	"water_damage": TileWaterDamage,
	"electrical":   TileElectrical,
}

// Level is the game map: a fixed-size tile grid plus the rooms placed on it.
// After Generate returns, the grid is read-only for the rest of the level's
// lifetime.
type Level struct {
	ID     uuid.UUID
	Biome  Biome
	Width  int
	Height int
	Tiles  [][]Tile
	Rooms  []Room

	defs *gamedata.RoomRegistry
	rng  *rand.Rand
}

// NewLevel creates a new level filled with walls. The rng is the sole source
// of randomness during generation, so a seeded rng reproduces the layout.
func NewLevel(width, height int, biome Biome, defs *gamedata.RoomRegistry, rng *rand.Rand) *Level {
	tiles := make([][]Tile, height)
	for y := range tiles {
		tiles[y] = make([]Tile, width)
		for x := range tiles[y] {
			tiles[y][x] = TileWall
		}
	}

	return &Level{
		ID:     uuid.New(),
		Biome:  biome,
		Width:  width,
		Height: height,
		Tiles:  tiles,
		Rooms:  make([]Room, 0),
		defs:   defs,
		rng:    rng,
	}
}

// Generate builds the level layout: room placement, corridor connection,
// feature painting, pools (poolrooms only), and the level exit. Every pass
// degrades gracefully; an empty or under-filled room list is not an error.
func (l *Level) Generate(ctx context.Context) {
	tracer := telemetry.Tracer("world")
	_, span := tracer.Start(ctx, "level.generate")
	defer span.End()

	start := time.Now()

	l.placeRooms()
	l.connectRooms()
	l.paintFeatures()
	if l.Biome == BiomePoolrooms {
		l.digPools()
	}
	l.placeLevelExit()

	span.SetAttributes(
		attribute.String("level.id", l.ID.String()),
		attribute.String("level.biome", l.Biome.String()),
		attribute.Int("level.width", l.Width),
		attribute.Int("level.height", l.Height),
		attribute.Int("level.room_count", len(l.Rooms)),
		attribute.Int64("level.generation_ms", time.Since(start).Milliseconds()),
	)

	logging.Component("world").WithFields(logrus.Fields{
		"level_id": l.ID.String(),
		"biome":    l.Biome.String(),
		"rooms":    len(l.Rooms),
		"exits":    len(l.ExitCells()),
	}).Info("level generated")
}

// InBounds returns true if the given cell lies on the grid.
func (l *Level) InBounds(x, y int) bool {
	return x >= 0 && x < l.Width && y >= 0 && y < l.Height
}

// Tile returns the tile at the given cell. Out-of-bounds cells read as wall,
// which makes the grid edge block movement and light without special cases.
func (l *Level) Tile(x, y int) Tile {
	if !l.InBounds(x, y) {
		return TileWall
	}
	return l.Tiles[y][x]
}

// RoomAt returns the first room in list order containing the cell, or nil.
// Rooms do not overlap, so first match is the only match.
func (l *Level) RoomAt(x, y int) *Room {
	for i := range l.Rooms {
		if l.Rooms[i].Contains(x, y) {
			return &l.Rooms[i]
		}
	}
	return nil
}

// ExitCells returns the positions of all level-exit tiles.
func (l *Level) ExitCells() []Point {
	var exits []Point
	for y := 0; y < l.Height; y++ {
		for x := 0; x < l.Width; x++ {
			if l.Tiles[y][x] == TileLevelExit {
				exits = append(exits, Point{X: x, Y: y})
			}
		}
	}
	return exits
}

// placeRooms samples room types from the biome's palette and places them by
// rejection: a room is kept only if its rectangle overlaps no earlier room.
// Accepted rooms are carved to floor immediately.
func (l *Level) placeRooms() {
	target := l.Biome.RoomTarget()

	for attempts := 0; len(l.Rooms) < target && attempts < placementAttempts; attempts++ {
		def := l.defs.Sample(l.rng, l.Biome.ID())
		if def == nil {
			return
		}
		typ, ok := RoomTypeByID(def.ID)
		if !ok {
			continue
		}

		w := randRange(l.rng, def.MinWidth, def.MaxWidth)
		h := randRange(l.rng, def.MinHeight, def.MaxHeight)
		if w > l.Width-2 || h > l.Height-2 {
			continue
		}

		room := Room{
			X:      1 + l.rng.Intn(l.Width-w-1),
			Y:      1 + l.rng.Intn(l.Height-h-1),
			Width:  w,
			Height: h,
			Type:   typ,
			Lit:    l.rng.Float64() < l.Biome.LitChance(),
		}

		overlaps := false
		for _, existing := range l.Rooms {
			if room.Intersects(existing) {
				overlaps = true
				break
			}
		}
		if overlaps {
			continue
		}

		l.Rooms = append(l.Rooms, room)
		l.carveRoom(room)
	}
}

// carveRoom sets all tiles within the room to floor.
func (l *Level) carveRoom(room Room) {
	for y := room.Y; y < room.Y+room.Height; y++ {
		for x := room.X; x < room.X+room.Width; x++ {
			if l.InBounds(x, y) {
				l.Tiles[y][x] = TileFloor
			}
		}
	}
}

// connectRooms carves a spanning tree of corridors so every room is
// reachable from room 0, then adds len(rooms)/3 extra corridors between
// arbitrary pairs for loops and shortcuts.
func (l *Level) connectRooms() {
	if len(l.Rooms) < 2 {
		return
	}

	connected := []int{0}
	unconnected := make([]int, 0, len(l.Rooms)-1)
	for i := 1; i < len(l.Rooms); i++ {
		unconnected = append(unconnected, i)
	}

	for len(unconnected) > 0 {
		a := connected[l.rng.Intn(len(connected))]
		pick := l.rng.Intn(len(unconnected))
		b := unconnected[pick]

		l.carveCorridor(a, b)

		connected = append(connected, b)
		unconnected = append(unconnected[:pick], unconnected[pick+1:]...)
	}

	for i := 0; i < len(l.Rooms)/3; i++ {
		a := l.rng.Intn(len(l.Rooms))
		b := l.rng.Intn(len(l.Rooms))
		if a != b {
			l.carveCorridor(a, b)
		}
	}
}

// carveCorridor carves an L-shaped corridor between two room centers,
// choosing horizontal-first or vertical-first at random.
func (l *Level) carveCorridor(a, b int) {
	x1, y1 := l.Rooms[a].Center()
	x2, y2 := l.Rooms[b].Center()

	if l.rng.Intn(2) == 0 {
		l.carveHorizontalRun(x1, x2, y1)
		l.carveVerticalRun(y1, y2, x2)
	} else {
		l.carveVerticalRun(y1, y2, x1)
		l.carveHorizontalRun(x1, x2, y2)
	}

	l.Rooms[a].Connections = append(l.Rooms[a].Connections, Point{X: x2, Y: y2})
	l.Rooms[b].Connections = append(l.Rooms[b].Connections, Point{X: x1, Y: y1})
}

// carveHorizontalRun paints floor along a horizontal segment, bounds-checked.
func (l *Level) carveHorizontalRun(x1, x2, y int) {
	if x1 > x2 {
		x1, x2 = x2, x1
	}
	for x := x1; x <= x2; x++ {
		if l.InBounds(x, y) {
			l.Tiles[y][x] = TileFloor
		}
	}
}

// carveVerticalRun paints floor along a vertical segment, bounds-checked.
func (l *Level) carveVerticalRun(y1, y2, x int) {
	if y1 > y2 {
		y1, y2 = y2, y1
	}
	for y := y1; y <= y2; y++ {
		if l.InBounds(x, y) {
			l.Tiles[y][x] = TileFloor
		}
	}
}

// paintFeatures overwrites a small number of floor cells in each room with
// the room type's feature tile. Only plain floor is ever overwritten, so
// corridors and earlier features survive.
func (l *Level) paintFeatures() {
	for _, room := range l.Rooms {
		def := l.defs.ByID(room.Type.ID())
		if def == nil || def.Feature == "" {
			continue
		}
		tile, ok := featureTiles[def.Feature]
		if !ok {
			continue
		}

		if def.FeaturePlacement == gamedata.PlacementBlock {
			l.paintCenterBlock(room, tile)
			continue
		}
		l.scatterFeature(room, tile, randRange(l.rng, def.FeatureMin, def.FeatureMax))
	}
}

// scatterFeature converts count random interior floor cells to the feature
// tile. Cells that already hold something else are left alone.
func (l *Level) scatterFeature(room Room, tile Tile, count int) {
	if room.Width < 3 || room.Height < 3 {
		return
	}
	for i := 0; i < count; i++ {
		x := randRange(l.rng, room.X+1, room.X+room.Width-2)
		y := randRange(l.rng, room.Y+1, room.Y+room.Height-2)
		if l.Tiles[y][x] == TileFloor {
			l.Tiles[y][x] = tile
		}
	}
}

// paintCenterBlock paints a centered rectangular block roughly half the
// room's size, clipped to the room's strict interior.
func (l *Level) paintCenterBlock(room Room, tile Tile) {
	cx, cy := room.Center()
	bw := max(2, room.Width/2)
	bh := max(2, room.Height/2)
	sx := cx - bw/2
	sy := cy - bh/2

	for y := sy; y < sy+bh; y++ {
		for x := sx; x < sx+bw; x++ {
			if x > room.X && x < room.X+room.Width-1 &&
				y > room.Y && y < room.Y+room.Height-1 &&
				l.Tiles[y][x] == TileFloor {
				l.Tiles[y][x] = tile
			}
		}
	}
}

// digPools adds a centered pool to every pool-area room: a water interior
// ringed by one cell of raised edge. Edge and water cells that would fall
// within poolMargin cells of the room border are skipped, so small rooms
// can end up with a partial or missing ring.
func (l *Level) digPools() {
	for _, room := range l.Rooms {
		if room.Type != RoomPoolArea {
			continue
		}

		pw := max(3, min(room.Width-6, room.Width/2))
		ph := max(3, min(room.Height-6, room.Height/2))
		sx := room.X + (room.Width-pw)/2
		sy := room.Y + (room.Height-ph)/2

		innerX1 := room.X + poolMargin
		innerX2 := room.X + room.Width - poolMargin - 1
		innerY1 := room.Y + poolMargin
		innerY2 := room.Y + room.Height - poolMargin - 1

		for y := sy - 1; y <= sy+ph; y++ {
			for x := sx - 1; x <= sx+pw; x++ {
				if x < innerX1 || x > innerX2 || y < innerY1 || y > innerY2 {
					continue
				}
				onRing := x == sx-1 || x == sx+pw || y == sy-1 || y == sy+ph
				if !onRing {
					continue
				}
				// Ring cells touching the margin band are dropped entirely.
				if x <= innerX1 || x >= innerX2 || y <= innerY1 || y >= innerY2 {
					continue
				}
				l.Tiles[y][x] = TilePoolEdge
			}
		}

		for y := sy; y < sy+ph; y++ {
			for x := sx; x < sx+pw; x++ {
				if x > innerX1 && x < innerX2 && y > innerY1 && y < innerY2 {
					l.Tiles[y][x] = TilePool
				}
			}
		}
	}
}

// placeLevelExit converts one corner floor cell of a preferably large room
// into the level exit. Rooms with area under exitRoomMinArea are used only
// if no larger room exists; with no rooms at all, no exit is placed. A level
// can also end up with no exit when all four candidate corners were already
// overwritten by features. Both are accepted degenerate outcomes.
func (l *Level) placeLevelExit() {
	if len(l.Rooms) == 0 {
		return
	}

	var suitable []Room
	for _, room := range l.Rooms {
		if room.Area() >= exitRoomMinArea {
			suitable = append(suitable, room)
		}
	}
	if len(suitable) == 0 {
		suitable = l.Rooms
	}

	room := suitable[l.rng.Intn(len(suitable))]

	corners := [4]Point{
		{X: room.X + 1, Y: room.Y + 1},
		{X: room.X + room.Width - 2, Y: room.Y + 1},
		{X: room.X + 1, Y: room.Y + room.Height - 2},
		{X: room.X + room.Width - 2, Y: room.Y + room.Height - 2},
	}

	for _, c := range corners {
		if l.InBounds(c.X, c.Y) && l.Tiles[c.Y][c.X] == TileFloor {
			l.Tiles[c.Y][c.X] = TileLevelExit
			return
		}
	}
}

// randRange returns a uniform value in [lo, hi]. A degenerate range
// collapses to lo.
func randRange(rng *rand.Rand, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + rng.Intn(hi-lo+1)
}
