package battleship

import (
	cerr "github.com/saeidalz13/battleship-solo/internal/error"
)

type ShipSpec struct {
	Name   string `json:"name"`
	Length int    `json:"length"`
}

// Config carries the fixed parameters of the engine. Boards, players and
// matches are built from it rather than from package level literals so
// smaller grids and rosters can be exercised in tests.
type Config struct {
	GridSize             int
	Roster               []ShipSpec
	MaxPlacementAttempts int
}

func DefaultRoster() []ShipSpec {
	return []ShipSpec{
		{Name: "Aircraft Carrier", Length: 5},
		{Name: "Cruiser", Length: 4},
		{Name: "Destroyer", Length: 3},
		{Name: "Destroyer", Length: 3},
		{Name: "Submarine", Length: 2},
		{Name: "Submarine", Length: 2},
	}
}

func DefaultConfig() Config {
	return Config{
		GridSize:             DefaultGridSize,
		Roster:               DefaultRoster(),
		MaxPlacementAttempts: DefaultMaxPlacementAttempts,
	}
}

func (c Config) Validate() error {
	if c.GridSize <= 0 {
		return cerr.ErrConfigInvalid("grid size must be positive")
	}
	if len(c.Roster) == 0 {
		return cerr.ErrConfigInvalid("roster is empty")
	}
	if c.MaxPlacementAttempts <= 0 {
		return cerr.ErrConfigInvalid("max placement attempts must be positive")
	}

	for _, spec := range c.Roster {
		if spec.Length <= 0 || spec.Length > c.GridSize {
			return cerr.ErrConfigInvalid("ship length must be within (0, grid size]: " + spec.Name)
		}
	}
	return nil
}

// NewFleet creates one unplaced ship per roster entry, in roster order.
func (c Config) NewFleet() []*Ship {
	fleet := make([]*Ship, len(c.Roster))
	for i, spec := range c.Roster {
		fleet[i] = NewShip(spec.Name, spec.Length)
	}
	return fleet
}
