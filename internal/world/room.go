package world

// Room represents a placed rectangular room. Rooms never move or resize
// after placement, and no two rooms in a finished level overlap.
type Room struct {
	X, Y          int // Top-left corner in grid cells
	Width, Height int
	Type          RoomType
	Lit           bool

	// Connections records the centers of rooms this one was tunneled to.
	// Populated during corridor carving; nothing reads it after that.
	Connections []Point
}

// Center returns the center cell of the room.
func (r Room) Center() (int, int) {
	return r.X + r.Width/2, r.Y + r.Height/2
}

// Contains returns true if the given cell is inside the room.
func (r Room) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.Width && y >= r.Y && y < r.Y+r.Height
}

// Intersects returns true if this room overlaps with another room.
func (r Room) Intersects(other Room) bool {
	return r.X < other.X+other.Width &&
		r.X+r.Width > other.X &&
		r.Y < other.Y+other.Height &&
		r.Y+r.Height > other.Y
}

// Area returns the room's cell count.
func (r Room) Area() int {
	return r.Width * r.Height
}
