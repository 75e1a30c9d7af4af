package gamedata

// Feature placement modes. Scatter converts individual random interior
// cells; block paints one centered rectangle roughly half the room's size.
const (
	PlacementScatter = "scatter"
	PlacementBlock   = "block"
)

// RoomDef defines a room type loaded from JSON. It is the single lookup
// table driving type-specific generation behavior: size ranges, which biome
// the type belongs to, and what feature tiles the room receives.
type RoomDef struct {
	ID               string `json:"id"`               // Unique identifier (e.g., "office_space")
	Name             string `json:"name"`             // Display name (e.g., "Office Space")
	Biome            string `json:"biome"`            // Biome palette this type belongs to
	MinWidth         int    `json:"minWidth"`         // Sampled room width range, inclusive
	MaxWidth         int    `json:"maxWidth"`
	MinHeight        int    `json:"minHeight"`        // Sampled room height range, inclusive
	MaxHeight        int    `json:"maxHeight"`
	Feature          string `json:"feature"`          // Feature tile identifier, empty for none
	FeatureMin       int    `json:"featureMin"`       // Feature count range for scatter placement
	FeatureMax       int    `json:"featureMax"`
	FeaturePlacement string `json:"featurePlacement"` // "scatter" or "block"
	FloorColor       string `json:"floorColor"`       // Hex color for rendering this room's floor
}

// RoomsFile represents the structure of rooms.json.
type RoomsFile struct {
	Rooms []RoomDef `json:"rooms"`
}

// LoadRoomDefs loads room type definitions from the embedded rooms.json file.
func LoadRoomDefs() ([]RoomDef, error) {
	file, err := Load[RoomsFile]("rooms.json")
	if err != nil {
		return nil, err
	}
	return file.Rooms, nil
}

// MustLoadRoomDefs loads room type definitions, panicking on error.
func MustLoadRoomDefs() []RoomDef {
	defs, err := LoadRoomDefs()
	if err != nil {
		panic(err)
	}
	return defs
}
