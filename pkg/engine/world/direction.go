package world

// Direction represents a cardinal direction on the tile grid.
// North points towards negative Z.
type Direction int

// Direction constants
const (
	North Direction = iota
	East
	South
	West
)

// AllDirections returns all valid directions for iteration
func AllDirections() []Direction {
	return []Direction{North, East, South, West}
}

// Delta returns the tile offset for this direction
func (d Direction) Delta() Coord {
	switch d {
	case North:
		return Coord{0, -1}
	case East:
		return Coord{1, 0}
	case South:
		return Coord{0, 1}
	case West:
		return Coord{-1, 0}
	default:
		return Coord{}
	}
}
