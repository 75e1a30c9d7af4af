package gamedata

import (
	"math/rand"
	"testing"

	"github.com/gdamore/tcell/v2"
)

func TestLoadRoomDefs(t *testing.T) {
	defs, err := LoadRoomDefs()
	if err != nil {
		t.Fatalf("Failed to load room defs: %v", err)
	}
	if len(defs) != 15 {
		t.Fatalf("Expected 15 room defs, got %d", len(defs))
	}

	for _, d := range defs {
		if d.ID == "" || d.Name == "" || d.Biome == "" {
			t.Errorf("Room def %+v missing required fields", d)
		}
		if d.MinWidth < 3 || d.MaxWidth < d.MinWidth {
			t.Errorf("Room %q has invalid width range [%d, %d]", d.ID, d.MinWidth, d.MaxWidth)
		}
		if d.MinHeight < 3 || d.MaxHeight < d.MinHeight {
			t.Errorf("Room %q has invalid height range [%d, %d]", d.ID, d.MinHeight, d.MaxHeight)
		}
		if d.Feature != "" && d.FeaturePlacement != PlacementScatter && d.FeaturePlacement != PlacementBlock {
			t.Errorf("Room %q has feature %q with unknown placement %q", d.ID, d.Feature, d.FeaturePlacement)
		}
		if d.FloorColor == "" {
			t.Errorf("Room %q has no floor color", d.ID)
		}
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load[RoomsFile]("missing.json"); err == nil {
		t.Error("Expected an error for a missing game data file")
	}
}

func TestRoomRegistryBiomes(t *testing.T) {
	registry, err := LoadRoomRegistry()
	if err != nil {
		t.Fatalf("Failed to load room registry: %v", err)
	}

	if got := len(registry.ForBiome("office")); got != 12 {
		t.Errorf("Expected 12 office room types, got %d", got)
	}
	if got := len(registry.ForBiome("poolrooms")); got != 3 {
		t.Errorf("Expected 3 poolrooms room types, got %d", got)
	}
	if registry.Count() != 15 {
		t.Errorf("Expected 15 room types total, got %d", registry.Count())
	}

	if registry.ByID("pool_area") == nil {
		t.Error("Expected pool_area in the registry")
	}
	if registry.ByID("throne_room") != nil {
		t.Error("Expected unknown ID to return nil")
	}
}

func TestRoomRegistrySampleRespectsBiome(t *testing.T) {
	registry, err := LoadRoomRegistry()
	if err != nil {
		t.Fatalf("Failed to load room registry: %v", err)
	}
	rng := rand.New(rand.NewSource(1))

	for i := 0; i < 100; i++ {
		d := registry.Sample(rng, "poolrooms")
		if d == nil {
			t.Fatal("Expected a sample for the poolrooms biome")
		}
		if d.Biome != "poolrooms" {
			t.Fatalf("Sample returned %q from biome %q", d.ID, d.Biome)
		}
	}

	if registry.Sample(rng, "caves") != nil {
		t.Error("Expected nil sample for an unknown biome")
	}
}

func TestFloodedAreaUsesBlockPlacement(t *testing.T) {
	registry, err := LoadRoomRegistry()
	if err != nil {
		t.Fatalf("Failed to load room registry: %v", err)
	}

	d := registry.ByID("flooded_area")
	if d == nil {
		t.Fatal("Expected flooded_area in the registry")
	}
	if d.Feature != "water_damage" || d.FeaturePlacement != PlacementBlock {
		t.Errorf("Expected flooded_area to paint a water_damage block, got feature %q placement %q", d.Feature, d.FeaturePlacement)
	}
}

func TestParseHexColor(t *testing.T) {
	color, err := ParseHexColor("#FF8000")
	if err != nil {
		t.Fatalf("Failed to parse valid hex color: %v", err)
	}
	if color != tcell.NewRGBColor(255, 128, 0) {
		t.Errorf("Expected RGB(255,128,0), got %v", color)
	}

	if _, err := ParseHexColor("not-a-color"); err == nil {
		t.Error("Expected an error for a malformed hex color")
	}

	fallback := tcell.NewRGBColor(1, 2, 3)
	if got := ParseHexColorDefault("garbage", fallback); got != fallback {
		t.Errorf("Expected fallback color, got %v", got)
	}
	if got := ParseHexColorDefault("#010203", fallback); got != tcell.NewRGBColor(1, 2, 3) {
		t.Errorf("Expected parsed color, got %v", got)
	}
}
