package battleship

const (
	DefaultGridSize             = 10
	DefaultMaxPlacementAttempts = 100
)

type Coordinates struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func NewCoordinates(row, col int) Coordinates {
	return Coordinates{Row: row, Col: col}
}

// neighbours returns the four axis-adjacent coordinates in the order
// up, down, left, right. Bounds are not checked.
func (c Coordinates) neighbours() [4]Coordinates {
	return [4]Coordinates{
		{Row: c.Row - 1, Col: c.Col},
		{Row: c.Row + 1, Col: c.Col},
		{Row: c.Row, Col: c.Col - 1},
		{Row: c.Row, Col: c.Col + 1},
	}
}

func isInGrid(c Coordinates, gridSize int) bool {
	return c.Row >= 0 && c.Row < gridSize && c.Col >= 0 && c.Col < gridSize
}

const (
	OrientationHorizontal uint8 = iota
	OrientationVertical
)

// ShipCells lays out a straight run of length cells starting at anchor.
// Horizontal keeps the row and grows the column; vertical grows the row.
func ShipCells(anchor Coordinates, length int, orientation uint8) []Coordinates {
	cells := make([]Coordinates, length)
	for i := 0; i < length; i++ {
		if orientation == OrientationHorizontal {
			cells[i] = NewCoordinates(anchor.Row, anchor.Col+i)
		} else {
			cells[i] = NewCoordinates(anchor.Row+i, anchor.Col)
		}
	}
	return cells
}

func isOrientationValid(orientation uint8) bool {
	return orientation == OrientationHorizontal || orientation == OrientationVertical
}
