// Package world provides level generation and map state for the simulation.
package world

// TileSize is the length of one grid cell in world units. Actor positions
// are continuous world coordinates; dividing by TileSize maps them to cells.
const TileSize = 20

// Tile represents a single map cell kind.
type Tile int

const (
	TileEmpty Tile = iota
	TileWall
	TileFloor
	TileDoor
	TileExit
	TileVent
	TileWaterDamage
	TileElectrical
	TileStairwell
	TileElevator
	TileLevelExit
	TilePool
	TilePoolEdge
)

// Blocks returns true if actors cannot stand on this tile.
// Pool water is walkable; only its raised edge blocks.
func (t Tile) Blocks() bool {
	return t == TileWall || t == TilePoolEdge
}

// Opaque returns true if the tile stops light. Walls are the only opaque
// tile; everything else is transparent to the flashlight.
func (t Tile) Opaque() bool {
	return t == TileWall
}

// Rune returns the tile's display character for text rendering and dumps.
func (t Tile) Rune() rune {
	switch t {
	case TileWall:
		return '#'
	case TileFloor:
		return '.'
	case TileDoor:
		return '+'
	case TileExit:
		return 'E'
	case TileVent:
		return 'v'
	case TileWaterDamage:
		return '~'
	case TileElectrical:
		return '!'
	case TileStairwell:
		return '<'
	case TileElevator:
		return '='
	case TileLevelExit:
		return 'X'
	case TilePool:
		return 'o'
	case TilePoolEdge:
		return 'O'
	default:
		return ' '
	}
}

// Point is a grid cell coordinate.
type Point struct {
	X, Y int
}
