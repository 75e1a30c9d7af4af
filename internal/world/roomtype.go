package world

// RoomType tags a room with its flavor. Size ranges, feature tiles, and
// feature counts for each type are looked up in the gamedata room table.
type RoomType int

const (
	RoomOfficeSpace RoomType = iota
	RoomLongHallway
	RoomConferenceRoom
	RoomStorageRoom
	RoomElectricalRoom
	RoomFloodedArea
	RoomMaintenance
	RoomLobby
	RoomCafeteria
	RoomBathroom
	RoomServerRoom
	RoomAbandonedOffice
	RoomPoolArea
	RoomPoolCorridor
	RoomPoolChanging
)

// roomTypeIDs maps each type to its data identifier, in declaration order.
var roomTypeIDs = [...]string{
	"office_space",
	"long_hallway",
	"conference_room",
	"storage_room",
	"electrical_room",
	"flooded_area",
	"maintenance",
	"lobby",
	"cafeteria",
	"bathroom",
	"server_room",
	"abandoned_office",
	"pool_area",
	"pool_corridor",
	"pool_changing",
}

// ID returns the room type identifier for data lookup.
func (r RoomType) ID() string {
	if int(r) < 0 || int(r) >= len(roomTypeIDs) {
		return "unknown"
	}
	return roomTypeIDs[r]
}

// RoomTypeByID returns the room type for a data identifier.
// The second result is false for unrecognized identifiers.
func RoomTypeByID(id string) (RoomType, bool) {
	for i, s := range roomTypeIDs {
		if s == id {
			return RoomType(i), true
		}
	}
	return 0, false
}
