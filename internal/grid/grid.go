package grid

// Coordinate is an integer (row, col) cell address. Coordinates have no
// total order of their own; they compare by Manhattan distance to a pivot.
type Coordinate struct {
	Row int
	Col int
}

// Manhattan returns |a.Row-b.Row| + |a.Col-b.Col|.
func Manhattan(a, b Coordinate) int {
	return absInt(a.Row-b.Row) + absInt(a.Col-b.Col)
}

// Chebyshev returns max(|a.Row-b.Row|, |a.Col-b.Col|).
func Chebyshev(a, b Coordinate) int {
	dr := absInt(a.Row - b.Row)
	dc := absInt(a.Col - b.Col)
	if dr > dc {
		return dr
	}
	return dc
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// Direction is one of the four cardinal steps.
type Direction int

const (
	Up Direction = iota
	Down
	Left
	Right
)

func (d Direction) String() string {
	switch d {
	case Up:
		return "UP"
	case Down:
		return "DOWN"
	case Left:
		return "LEFT"
	case Right:
		return "RIGHT"
	}
	return "?"
}

// Offset returns the coordinate one step from c in direction d.
// Row grows downward, col grows rightward.
func (d Direction) Offset(c Coordinate) Coordinate {
	switch d {
	case Up:
		return Coordinate{Row: c.Row - 1, Col: c.Col}
	case Down:
		return Coordinate{Row: c.Row + 1, Col: c.Col}
	case Left:
		return Coordinate{Row: c.Row, Col: c.Col - 1}
	default:
		return Coordinate{Row: c.Row, Col: c.Col + 1}
	}
}

// Toward picks the cardinal direction pointing from 'from' to an adjacent
// offset (dr, dc). Vertical wins when both axes differ; callers use it on
// window offsets where one axis dominates.
func Toward(dr, dc int) Direction {
	switch {
	case dr < 0:
		return Up
	case dr > 0:
		return Down
	case dc < 0:
		return Left
	default:
		return Right
	}
}

// Quadrant is one of the four diagonal probe anchors around the agent.
type Quadrant int

const (
	TopLeft Quadrant = iota
	TopRight
	BottomLeft
	BottomRight
)

var Quadrants = [4]Quadrant{TopLeft, TopRight, BottomLeft, BottomRight}

func (q Quadrant) String() string {
	switch q {
	case TopLeft:
		return "TOP_LEFT"
	case TopRight:
		return "TOP_RIGHT"
	case BottomLeft:
		return "BOTTOM_LEFT"
	}
	return "BOTTOM_RIGHT"
}

// ProbePoint returns the quadrant's representative probe cell, offset by
// radius in both axes from c.
func (q Quadrant) ProbePoint(c Coordinate, radius int) Coordinate {
	switch q {
	case TopLeft:
		return Coordinate{Row: c.Row - radius, Col: c.Col - radius}
	case TopRight:
		return Coordinate{Row: c.Row - radius, Col: c.Col + radius}
	case BottomLeft:
		return Coordinate{Row: c.Row + radius, Col: c.Col - radius}
	default:
		return Coordinate{Row: c.Row + radius, Col: c.Col + radius}
	}
}
