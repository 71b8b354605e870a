package game

import "fmt"

// Cell is a single board coordinate. X grows right, Y grows down.
type Cell struct {
	X int
	Y int
}

// Direction is a unit step on the board.
type Direction struct {
	Dx, Dy int
}

var (
	DirUp    = Direction{Dx: 0, Dy: -1}
	DirDown  = Direction{Dx: 0, Dy: 1}
	DirLeft  = Direction{Dx: -1, Dy: 0}
	DirRight = Direction{Dx: 1, Dy: 0}
)

// directions is the neighbor visitation order for every search in this
// package (UP, DOWN, LEFT, RIGHT). Tie-breaks between equal-length paths
// depend on this order, so it is fixed.
var directions = []Direction{DirUp, DirDown, DirLeft, DirRight}

// Opposite returns the 180-degree reversal of d.
func (d Direction) Opposite() Direction {
	return Direction{Dx: -d.Dx, Dy: -d.Dy}
}

// IsOpposite reports whether o reverses d. The zero Direction opposes nothing.
func (d Direction) IsOpposite(o Direction) bool {
	return (d.Dx != 0 || d.Dy != 0) && d.Dx+o.Dx == 0 && d.Dy+o.Dy == 0
}

func (d Direction) String() string {
	switch d {
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	default:
		return fmt.Sprintf("(%d,%d)", d.Dx, d.Dy)
	}
}

// Step returns the cell one move from c in direction d.
func (c Cell) Step(d Direction) Cell {
	return Cell{X: c.X + d.Dx, Y: c.Y + d.Dy}
}

// Body is the snake, head first, tail last. Segments never repeat within a
// consistent snapshot. The game loop owns the live body; the pilot only ever
// sees a copy.
type Body []Cell

func (b Body) Head() Cell { return b[0] }
func (b Body) Tail() Cell { return b[len(b)-1] }

// Occupies reports whether c is covered by a segment. With excludeTail set
// the tail cell does not count, since it vacates on a non-growing move.
func (b Body) Occupies(c Cell, excludeTail bool) bool {
	segments := b
	if excludeTail && len(segments) > 0 {
		segments = segments[:len(segments)-1]
	}
	for _, s := range segments {
		if s == c {
			return true
		}
	}
	return false
}

// Clone returns an independent copy of the body.
func (b Body) Clone() Body {
	out := make(Body, len(b))
	copy(out, b)
	return out
}

// Grid is the fixed playing field. Never mutated after construction.
type Grid struct {
	Width  int
	Height int
}

func NewGrid(width, height int) (Grid, error) {
	if width <= 0 || height <= 0 {
		return Grid{}, fmt.Errorf("grid dimensions must be positive, got %dx%d", width, height)
	}
	return Grid{Width: width, Height: height}, nil
}

func (g Grid) InBounds(c Cell) bool {
	return c.X >= 0 && c.X < g.Width && c.Y >= 0 && c.Y < g.Height
}

// Index maps an in-bounds cell to its slot in a flat width*height array.
func (g Grid) Index(c Cell) int {
	return c.Y*g.Width + c.X
}

func (g Grid) CellCount() int {
	return g.Width * g.Height
}

// IsFree reports whether c is in bounds and not occupied by the body.
func (g Grid) IsFree(c Cell, body Body, excludeTail bool) bool {
	return g.InBounds(c) && !body.Occupies(c, excludeTail)
}

func getManhattanDistance(a, b Cell) int {
	dx := a.X - b.X
	if dx < 0 {
		dx = -dx
	}
	dy := a.Y - b.Y
	if dy < 0 {
		dy = -dy
	}
	return dx + dy
}
