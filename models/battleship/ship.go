package battleship

import (
	cerr "github.com/saeidalz13/battleship-solo/internal/error"
)

type Ship struct {
	name    string
	length  int
	cells   []Coordinates
	cellSet map[Coordinates]struct{}
	hits    map[Coordinates]struct{}
}

func NewShip(name string, length int) *Ship {
	return &Ship{
		name:   name,
		length: length,
		hits:   make(map[Coordinates]struct{}, length),
	}
}

func (sh *Ship) Name() string {
	return sh.name
}

func (sh *Ship) Length() int {
	return sh.length
}

func (sh *Ship) IsPlaced() bool {
	return sh.cells != nil
}

// Place assigns the occupied cells. Board checks the length before calling;
// cells can only be assigned once.
func (sh *Ship) Place(cells []Coordinates) error {
	if sh.IsPlaced() {
		return cerr.ErrShipPlacedTwice(sh.name)
	}

	sh.cells = make([]Coordinates, len(cells))
	copy(sh.cells, cells)

	sh.cellSet = make(map[Coordinates]struct{}, len(cells))
	for _, c := range cells {
		sh.cellSet[c] = struct{}{}
	}
	return nil
}

func (sh *Ship) Cells() []Coordinates {
	cells := make([]Coordinates, len(sh.cells))
	copy(cells, sh.cells)
	return cells
}

func (sh *Ship) Occupies(c Coordinates) bool {
	_, prs := sh.cellSet[c]
	return prs
}

// RegisterHit is idempotent. Coordinates outside the ship are ignored so
// hits always stay a subset of cells.
func (sh *Ship) RegisterHit(c Coordinates) {
	if !sh.Occupies(c) {
		return
	}
	sh.hits[c] = struct{}{}
}

func (sh *Ship) HitCount() int {
	return len(sh.hits)
}

func (sh *Ship) IsSunk() bool {
	if !sh.IsPlaced() {
		return false
	}
	for _, c := range sh.cells {
		if _, prs := sh.hits[c]; !prs {
			return false
		}
	}
	return true
}
