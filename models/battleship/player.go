package battleship

import (
	cerr "github.com/saeidalz13/battleship-solo/internal/error"
)

const (
	PlayerHuman uint8 = iota
	PlayerComputer
)

// ShotHistory is the read-only view of a player's fired coordinates that
// targeting strategies consult.
type ShotHistory interface {
	HasFiredAt(c Coordinates) bool
	ShotCount() int
}

type Player struct {
	name       string
	board      *Board
	shotsFired map[Coordinates]struct{}
	shotOrder  []Coordinates
	hitCount   int
	missCount  int
}

var _ ShotHistory = (*Player)(nil)

func NewPlayer(name string, cfg Config) *Player {
	return &Player{
		name:       name,
		board:      NewBoard(cfg),
		shotsFired: make(map[Coordinates]struct{}, cfg.GridSize*cfg.GridSize),
		shotOrder:  make([]Coordinates, 0, cfg.GridSize*cfg.GridSize),
	}
}

func (p *Player) Name() string {
	return p.name
}

func (p *Player) Board() *Board {
	return p.board
}

func (p *Player) HitCount() int {
	return p.hitCount
}

func (p *Player) MissCount() int {
	return p.missCount
}

func (p *Player) HasFiredAt(c Coordinates) bool {
	_, prs := p.shotsFired[c]
	return prs
}

func (p *Player) ShotCount() int {
	return len(p.shotsFired)
}

// Shots returns fired coordinates in firing order.
func (p *Player) Shots() []Coordinates {
	shots := make([]Coordinates, len(p.shotOrder))
	copy(shots, p.shotOrder)
	return shots
}

// Fire rejects out of grid and repeated coordinates before recording
// anything, so hitCount + missCount always equals the number of shots.
func (p *Player) Fire(c Coordinates, opponentBoard *Board) (ShotOutcome, error) {
	if !opponentBoard.InBounds(c) {
		return ShotOutcome{}, cerr.ErrCoordsOutOfGridBound(c.Row, c.Col)
	}
	if p.HasFiredAt(c) {
		return ShotOutcome{}, cerr.ErrPositionAlreadyTargeted(c.Row, c.Col)
	}

	outcome, err := opponentBoard.ResolveShot(c)
	if err != nil {
		return ShotOutcome{}, err
	}

	p.shotsFired[c] = struct{}{}
	p.shotOrder = append(p.shotOrder, c)
	if outcome.IsHit() {
		p.hitCount++
	} else {
		p.missCount++
	}
	return outcome, nil
}

func (p *Player) HasLost() bool {
	return p.board.AllShipsSunk()
}
