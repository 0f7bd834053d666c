package components

// Position is an animal's tile coordinate on the grid.
type Position struct {
	X, Y int
}

// Direction is a single-step move on the grid.
type Direction uint8

const (
	DirUp Direction = iota
	DirDown
	DirLeft
	DirRight
	DirStay

	NumDirections = iota
)

// Directions lists every direction in index order.
var Directions = [NumDirections]Direction{DirUp, DirDown, DirLeft, DirRight, DirStay}

// Delta returns the (dx, dy) step. Y grows downward.
func (d Direction) Delta() (dx, dy int) {
	switch d {
	case DirUp:
		return 0, -1
	case DirDown:
		return 0, 1
	case DirLeft:
		return -1, 0
	case DirRight:
		return 1, 0
	}
	return 0, 0
}

// Opposite returns the reverse direction. Stay is its own opposite.
func (d Direction) Opposite() Direction {
	switch d {
	case DirUp:
		return DirDown
	case DirDown:
		return DirUp
	case DirLeft:
		return DirRight
	case DirRight:
		return DirLeft
	}
	return DirStay
}

// Step applies d to (x, y) on a width x height torus.
func (d Direction) Step(x, y, width, height int) (int, int) {
	dx, dy := d.Delta()
	return Wrap(x+dx, width), Wrap(y+dy, height)
}

// Wrap maps v into [0, n).
func Wrap(v, n int) int {
	v %= n
	if v < 0 {
		v += n
	}
	return v
}
