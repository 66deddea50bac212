package battleship

import (
	"math/rand"

	cerr "github.com/saeidalz13/battleship-solo/internal/error"
)

const (
	OutcomeMiss uint8 = iota
	OutcomeHit
	OutcomeSunk
)

type ShotOutcome struct {
	Kind     uint8  `json:"kind"`
	ShipName string `json:"ship_name,omitempty"`
}

func (so ShotOutcome) IsHit() bool {
	return so.Kind == OutcomeHit || so.Kind == OutcomeSunk
}

func (so ShotOutcome) String() string {
	switch so.Kind {
	case OutcomeHit:
		return "Hit"
	case OutcomeSunk:
		return "Sunk: " + so.ShipName
	default:
		return "Miss"
	}
}

type Board struct {
	size                 int
	maxPlacementAttempts int
	occupancy            [][]*Ship
	ships                []*Ship
}

func NewBoard(cfg Config) *Board {
	occupancy := make([][]*Ship, cfg.GridSize)
	for i := range occupancy {
		occupancy[i] = make([]*Ship, cfg.GridSize)
	}

	return &Board{
		size:                 cfg.GridSize,
		maxPlacementAttempts: cfg.MaxPlacementAttempts,
		occupancy:            occupancy,
		ships:                make([]*Ship, 0, len(cfg.Roster)),
	}
}

func (b *Board) Size() int {
	return b.size
}

func (b *Board) Ships() []*Ship {
	ships := make([]*Ship, len(b.ships))
	copy(ships, b.ships)
	return ships
}

func (b *Board) InBounds(c Coordinates) bool {
	return isInGrid(c, b.size)
}

func (b *Board) ShipAt(c Coordinates) *Ship {
	if !b.InBounds(c) {
		return nil
	}
	return b.occupancy[c.Row][c.Col]
}

// validatePlacement checks every cell without touching the board.
func (b *Board) validatePlacement(ship *Ship, cells []Coordinates) error {
	if ship.IsPlaced() {
		return cerr.ErrShipPlacedTwice(ship.Name())
	}
	if len(cells) != ship.Length() {
		return cerr.ErrCellsLengthMismatch(ship.Name(), ship.Length(), len(cells))
	}

	seen := make(map[Coordinates]struct{}, len(cells))
	for _, c := range cells {
		if !b.InBounds(c) {
			return cerr.ErrCoordsOutOfGridBound(c.Row, c.Col)
		}
		if b.occupancy[c.Row][c.Col] != nil {
			return cerr.ErrCellAlreadyOccupied(c.Row, c.Col)
		}
		if _, prs := seen[c]; prs {
			return cerr.ErrCellAlreadyOccupied(c.Row, c.Col)
		}
		seen[c] = struct{}{}
	}
	return nil
}

// PlaceShip validates all cells before mutating anything, so a failed
// placement leaves the board untouched.
func (b *Board) PlaceShip(ship *Ship, cells []Coordinates) error {
	if err := b.validatePlacement(ship, cells); err != nil {
		return err
	}

	if err := ship.Place(cells); err != nil {
		return err
	}
	for _, c := range cells {
		b.occupancy[c.Row][c.Col] = ship
	}
	b.ships = append(b.ships, ship)
	return nil
}

// PlaceShipRandomly picks an orientation and an anchor that keeps the ship
// inside the grid, retrying with fresh choices up to the configured bound.
func (b *Board) PlaceShipRandomly(ship *Ship, rng *rand.Rand) error {
	if ship.IsPlaced() {
		return cerr.ErrShipPlacedTwice(ship.Name())
	}
	if ship.Length() <= 0 || ship.Length() > b.size {
		return cerr.ErrRandomPlacementExhausted(ship.Name(), 0)
	}

	for attempt := 0; attempt < b.maxPlacementAttempts; attempt++ {
		var anchor Coordinates
		orientation := uint8(rng.Intn(2))
		if orientation == OrientationHorizontal {
			anchor = NewCoordinates(rng.Intn(b.size), rng.Intn(b.size-ship.Length()+1))
		} else {
			anchor = NewCoordinates(rng.Intn(b.size-ship.Length()+1), rng.Intn(b.size))
		}

		cells := ShipCells(anchor, ship.Length(), orientation)
		if b.validatePlacement(ship, cells) != nil {
			continue
		}
		return b.PlaceShip(ship, cells)
	}

	return cerr.ErrRandomPlacementExhausted(ship.Name(), b.maxPlacementAttempts)
}

// ResolveShot may be called twice on the same coordinates; ships register
// hits idempotently.
func (b *Board) ResolveShot(c Coordinates) (ShotOutcome, error) {
	if !b.InBounds(c) {
		return ShotOutcome{}, cerr.ErrCoordsOutOfGridBound(c.Row, c.Col)
	}

	ship := b.occupancy[c.Row][c.Col]
	if ship == nil {
		return ShotOutcome{Kind: OutcomeMiss}, nil
	}

	ship.RegisterHit(c)
	if ship.IsSunk() {
		return ShotOutcome{Kind: OutcomeSunk, ShipName: ship.Name()}, nil
	}
	return ShotOutcome{Kind: OutcomeHit}, nil
}

func (b *Board) AllShipsSunk() bool {
	if len(b.ships) == 0 {
		return false
	}
	for _, ship := range b.ships {
		if !ship.IsSunk() {
			return false
		}
	}
	return true
}

func (b *Board) SunkenShips() int {
	sunken := 0
	for _, ship := range b.ships {
		if ship.IsSunk() {
			sunken++
		}
	}
	return sunken
}

// OccupancyBits flattens the grid row by row: 1 for a ship cell, 0 for water.
func (b *Board) OccupancyBits() []uint8 {
	bits := make([]uint8, 0, b.size*b.size)
	for row := 0; row < b.size; row++ {
		for col := 0; col < b.size; col++ {
			if b.occupancy[row][col] != nil {
				bits = append(bits, 1)
			} else {
				bits = append(bits, 0)
			}
		}
	}
	return bits
}
