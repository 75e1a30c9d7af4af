package gamedata

import (
	"errors"
	"math/rand"
)

// RoomRegistry holds loaded room type definitions and provides biome-aware
// sampling for the level generator.
type RoomRegistry struct {
	byID    map[string]*RoomDef
	byBiome map[string][]*RoomDef
	all     []RoomDef
}

// NewRoomRegistry creates a registry from loaded room definitions.
func NewRoomRegistry(defs []RoomDef) *RoomRegistry {
	registry := &RoomRegistry{
		byID:    make(map[string]*RoomDef),
		byBiome: make(map[string][]*RoomDef),
		all:     defs,
	}
	for i := range defs {
		d := &registry.all[i]
		registry.byID[d.ID] = d
		registry.byBiome[d.Biome] = append(registry.byBiome[d.Biome], d)
	}
	return registry
}

// LoadRoomRegistry loads and creates a registry from the embedded rooms.json.
func LoadRoomRegistry() (*RoomRegistry, error) {
	defs, err := LoadRoomDefs()
	if err != nil {
		return nil, err
	}
	if len(defs) == 0 {
		return nil, errors.New("no room types loaded from rooms.json")
	}
	return NewRoomRegistry(defs), nil
}

// MustLoadRoomRegistry loads a registry, panicking on error.
func MustLoadRoomRegistry() *RoomRegistry {
	registry, err := LoadRoomRegistry()
	if err != nil {
		panic(err)
	}
	return registry
}

// Sample returns a uniformly random room definition valid for the given
// biome, or nil if the biome has no room types.
func (r *RoomRegistry) Sample(rng *rand.Rand, biome string) *RoomDef {
	defs := r.byBiome[biome]
	if len(defs) == 0 {
		return nil
	}
	return defs[rng.Intn(len(defs))]
}

// ByID returns the room definition with the given ID, or nil if not found.
func (r *RoomRegistry) ByID(id string) *RoomDef {
	return r.byID[id]
}

// ForBiome returns all room definitions belonging to the given biome.
func (r *RoomRegistry) ForBiome(biome string) []*RoomDef {
	return r.byBiome[biome]
}

// All returns all room definitions.
func (r *RoomRegistry) All() []RoomDef {
	return r.all
}

// Count returns the number of room types in the registry.
func (r *RoomRegistry) Count() int {
	return len(r.all)
}
