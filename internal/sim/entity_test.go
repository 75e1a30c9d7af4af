package sim

import (
	"math"
	"math/rand"
	"testing"

	"github.com/zyedidia/generic/mapset"

	"github.com/samdwyer/liminal/internal/world"
)

func TestEntityDisabledInPoolrooms(t *testing.T) {
	l := openLevel(30, 30, world.BiomePoolrooms)
	e := NewEntity(rand.New(rand.NewSource(1)))
	e.spawnTimer = 1

	for tick := 0; tick < 5000; tick++ {
		e.Update(l, 300, 300, mapset.New[world.Point]())
		if e.Visible {
			t.Fatalf("Tick %d: entity appeared in the poolrooms", tick)
		}
	}
}

func TestEntitySpawnBandAndExclusion(t *testing.T) {
	l := openLevel(40, 40, world.BiomeOffice)

	for seed := int64(1); seed <= 20; seed++ {
		e := NewEntity(rand.New(rand.NewSource(seed)))

		// Mark a patch around the player visible so spawns must avoid it.
		playerX, playerY := 400.0, 400.0
		visible := mapset.New[world.Point]()
		pc := CellOf(playerX, playerY)
		for dy := -9; dy <= 9; dy++ {
			for dx := -9; dx <= 0; dx++ {
				visible.Put(world.Point{X: pc.X + dx, Y: pc.Y + dy})
			}
		}

		// The placement itself; Update would wander a step on top of it.
		e.trySpawn(l, playerX, playerY, visible)
		if !e.Visible {
			t.Fatalf("Seed %d: expected a spawn on an open level", seed)
		}

		dist := math.Hypot(e.X-playerX, e.Y-playerY)
		if dist < entityMinSpawnDist || dist > entityMaxSpawnDist {
			t.Errorf("Seed %d: spawn distance %v outside [%d, %d]", seed, dist, entityMinSpawnDist, entityMaxSpawnDist)
		}

		cell := e.Cell()
		if visible.Has(cell) {
			t.Errorf("Seed %d: entity spawned on visible cell %v", seed, cell)
		}
		if l.Tiles[cell.Y][cell.X] != world.TileFloor {
			t.Errorf("Seed %d: entity spawned on non-floor cell %v", seed, cell)
		}
	}
}

func TestEntitySpawnRetryBackoff(t *testing.T) {
	// All-wall level: no floor anywhere, every attempt fails.
	l := world.NewLevel(30, 30, world.BiomeOffice, nil, nil)
	e := NewEntity(rand.New(rand.NewSource(3)))
	e.spawnTimer = 1

	e.Update(l, 300, 300, mapset.New[world.Point]())

	if e.Visible {
		t.Fatal("Expected no spawn on an all-wall level")
	}
	if e.spawnTimer != entityRetryDelay {
		t.Errorf("Expected backoff timer %d, got %d", entityRetryDelay, e.spawnTimer)
	}
}

func TestEntityVanishesWhenDurationExpires(t *testing.T) {
	l := openLevel(60, 60, world.BiomeOffice)
	e := NewEntity(rand.New(rand.NewSource(7)))
	e.spawnTimer = 1

	empty := mapset.New[world.Point]()
	e.Update(l, 600, 600, empty)
	if !e.Visible {
		t.Fatal("Expected a spawn on an open level")
	}

	for tick := 0; tick <= entityVisibleMax; tick++ {
		e.Update(l, 600, 600, empty)
	}
	if e.Visible {
		t.Error("Expected entity hidden after its visible duration expired")
	}
}

func TestEntityBlockedStepKeepsPosition(t *testing.T) {
	// A single free cell: any step from its center is blocked.
	l := world.NewLevel(9, 9, world.BiomeOffice, nil, nil)
	l.Tiles[4][4] = world.TileFloor

	e := NewEntity(rand.New(rand.NewSource(11)))
	e.X = 4*world.TileSize + 8.2 // close to the west probe limit
	e.Y = 4*world.TileSize + 10
	e.Heading = 180 // step straight west, into the wall
	e.targetHeading = 180
	e.Visible = true
	e.visibleTimer = 10
	e.moveTimer = 1 // keep the retarget tick away

	beforeX, beforeY := e.X, e.Y
	e.wander(l)

	if e.X != beforeX || e.Y != beforeY {
		t.Errorf("Expected entity to stay at (%v,%v) when blocked, got (%v,%v)", beforeX, beforeY, e.X, e.Y)
	}
}
