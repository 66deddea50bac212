package battleship

import (
	"errors"
	"math/rand"
	"testing"

	cerr "github.com/saeidalz13/battleship-solo/internal/error"
)

// scriptedStrategy fires at a fixed list of targets in order.
type scriptedStrategy struct {
	targets []Coordinates
}

func (ss *scriptedStrategy) ChooseTarget(ShotHistory) (Coordinates, error) {
	if len(ss.targets) == 0 {
		return Coordinates{}, cerr.ErrNoTargetsLeft
	}
	next := ss.targets[0]
	ss.targets = ss.targets[1:]
	return next, nil
}

func (ss *scriptedStrategy) RecordOutcome(Coordinates, ShotOutcome, ShotHistory) {}

func (ss *scriptedStrategy) Reset() {}

func newTestMatch(t *testing.T, difficulty uint8, seed int64) *Match {
	t.Helper()

	m, err := NewMatch(DefaultConfig(), difficulty, WithRand(rand.New(rand.NewSource(seed))))
	if err != nil {
		t.Fatal(err)
	}
	return m
}

func shipCellsOf(b *Board) []Coordinates {
	cells := make([]Coordinates, 0)
	for _, ship := range b.Ships() {
		cells = append(cells, ship.Cells()...)
	}
	return cells
}

func waterCellsOf(b *Board) []Coordinates {
	cells := make([]Coordinates, 0)
	for row := 0; row < b.Size(); row++ {
		for col := 0; col < b.Size(); col++ {
			if b.ShipAt(NewCoordinates(row, col)) == nil {
				cells = append(cells, NewCoordinates(row, col))
			}
		}
	}
	return cells
}

// placeRosterInRows puts ship i on row i, starting at column 0.
func placeRosterInRows(t *testing.T, m *Match) {
	t.Helper()

	for i := range m.Config().Roster {
		if _, err := m.PlaceShip(i, NewCoordinates(i, 0), OrientationHorizontal); err != nil {
			t.Fatalf("placing ship %d: %v", i, err)
		}
	}
}

func TestNewMatchPlacesComputerFleet(t *testing.T) {
	for seed := int64(0); seed < 50; seed++ {
		m := newTestMatch(t, DifficultyEasy, seed)

		if m.Phase() != PhasePlacement {
			t.Fatalf("expected phase: %s\tgot: %s", PhaseName(PhasePlacement), PhaseName(m.Phase()))
		}
		if len(m.Computer().Board().Ships()) != len(DefaultRoster()) {
			t.Fatalf("seed %d: expected computer ships: %d\tgot: %d", seed, len(DefaultRoster()), len(m.Computer().Board().Ships()))
		}
		if len(m.Human().Board().Ships()) != 0 {
			t.Fatal("expected human board empty at match start")
		}
		assertBoardInvariants(t, m.Computer().Board())
	}
}

func TestNewMatchRejectsBadInput(t *testing.T) {
	if _, err := NewMatch(DefaultConfig(), 7); !errors.Is(err, cerr.ErrInvalidDifficulty) {
		t.Fatalf("expected error: %v\tgot: %v", cerr.ErrInvalidDifficulty, err)
	}

	cfg := DefaultConfig()
	cfg.GridSize = 3
	if _, err := NewMatch(cfg, DifficultyEasy); !errors.Is(err, cerr.ErrInvalidConfig) {
		t.Fatalf("expected error: %v\tgot: %v", cerr.ErrInvalidConfig, err)
	}
}

func TestPlacementPhase(t *testing.T) {
	m := newTestMatch(t, DifficultyEasy, 1)

	if _, err := m.Fire(NewCoordinates(0, 0)); !errors.Is(err, cerr.ErrWrongPhase) {
		t.Fatalf("expected error: %v\tgot: %v", cerr.ErrWrongPhase, err)
	}

	tests := []struct {
		name        string
		shipIndex   int
		anchor      Coordinates
		orientation uint8
		expectedErr error
	}{
		{name: "index too large", shipIndex: 6, anchor: NewCoordinates(0, 0), expectedErr: cerr.ErrInvalidShipIndex},
		{name: "negative index", shipIndex: -1, anchor: NewCoordinates(0, 0), expectedErr: cerr.ErrInvalidShipIndex},
		{name: "bad orientation", shipIndex: 0, anchor: NewCoordinates(0, 0), orientation: 5, expectedErr: cerr.ErrInvalidOrientation},
		{name: "carrier runs off the grid", shipIndex: 0, anchor: NewCoordinates(0, 6), orientation: OrientationHorizontal, expectedErr: cerr.ErrOutOfBounds},
		{name: "carrier placed", shipIndex: 0, anchor: NewCoordinates(0, 0), orientation: OrientationVertical},
		{name: "carrier placed twice", shipIndex: 0, anchor: NewCoordinates(0, 5), orientation: OrientationVertical, expectedErr: cerr.ErrShipAlreadyPlaced},
		{name: "cruiser crosses carrier", shipIndex: 1, anchor: NewCoordinates(2, 0), orientation: OrientationHorizontal, expectedErr: cerr.ErrCellOccupied},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := m.PlaceShip(test.shipIndex, test.anchor, test.orientation)
			if test.expectedErr == nil {
				if err != nil {
					t.Fatal(err)
				}
				return
			}
			if !errors.Is(err, test.expectedErr) {
				t.Fatalf("expected error: %v\tgot: %v", test.expectedErr, err)
			}
		})
	}

	if len(m.RemainingShips()) != 5 {
		t.Fatalf("expected remaining ships: %d\tgot: %d", 5, len(m.RemainingShips()))
	}
	if m.Phase() != PhasePlacement {
		t.Fatalf("expected phase: %s\tgot: %s", PhaseName(PhasePlacement), PhaseName(m.Phase()))
	}
	assertBoardInvariants(t, m.Human().Board())
}

func TestLastPlacementStartsFiring(t *testing.T) {
	m := newTestMatch(t, DifficultyHard, 2)
	placeRosterInRows(t, m)

	if m.Phase() != PhaseFiring {
		t.Fatalf("expected phase: %s\tgot: %s", PhaseName(PhaseFiring), PhaseName(m.Phase()))
	}
	if m.ActivePlayer() != PlayerHuman {
		t.Fatal("expected human to fire first")
	}
	if _, err := m.PlaceShip(0, NewCoordinates(9, 0), OrientationHorizontal); !errors.Is(err, cerr.ErrWrongPhase) {
		t.Fatalf("expected error: %v\tgot: %v", cerr.ErrWrongPhase, err)
	}
	if err := m.SetDifficulty(DifficultyEasy); !errors.Is(err, cerr.ErrWrongPhase) {
		t.Fatalf("expected error: %v\tgot: %v", cerr.ErrWrongPhase, err)
	}
}

func TestSetDifficultyDuringPlacement(t *testing.T) {
	m := newTestMatch(t, DifficultyEasy, 3)

	if err := m.SetDifficulty(DifficultyHard); err != nil {
		t.Fatal(err)
	}
	if _, ok := m.strategy.(*HuntStrategy); !ok {
		t.Fatal("expected hunt strategy after switching to hard")
	}
	if err := m.SetDifficulty(42); !errors.Is(err, cerr.ErrInvalidDifficulty) {
		t.Fatalf("expected error: %v\tgot: %v", cerr.ErrInvalidDifficulty, err)
	}
	if m.Difficulty() != DifficultyHard {
		t.Fatal("expected difficulty unchanged after invalid request")
	}
}

func TestPlaceFleetRandomly(t *testing.T) {
	m := newTestMatch(t, DifficultyEasy, 4)
	if _, err := m.PlaceShip(2, NewCoordinates(9, 0), OrientationHorizontal); err != nil {
		t.Fatal(err)
	}

	if err := m.PlaceFleetRandomly(); err != nil {
		t.Fatal(err)
	}

	if m.Phase() != PhaseFiring {
		t.Fatalf("expected phase: %s\tgot: %s", PhaseName(PhaseFiring), PhaseName(m.Phase()))
	}
	if len(m.Human().Board().Ships()) != len(DefaultRoster()) {
		t.Fatalf("expected human ships: %d\tgot: %d", len(DefaultRoster()), len(m.Human().Board().Ships()))
	}
	if m.Human().Board().ShipAt(NewCoordinates(9, 0)).Name() != "Destroyer" {
		t.Fatal("expected manually placed ship to stay where it was")
	}
	assertBoardInvariants(t, m.Human().Board())
}

func TestFireOneComputerShotPerTurn(t *testing.T) {
	m := newTestMatch(t, DifficultyHard, 5)
	placeRosterInRows(t, m)

	for i, target := range waterCellsOf(m.Computer().Board())[:10] {
		result, err := m.Fire(target)
		if err != nil {
			t.Fatal(err)
		}
		if result.HumanShot.Outcome.Kind != OutcomeMiss {
			t.Fatalf("expected miss on water\tgot: %s", result.HumanShot.Outcome)
		}
		if result.ComputerShot == nil {
			t.Fatal("expected a computer reply")
		}
		if m.Computer().ShotCount() != i+1 || m.Human().ShotCount() != i+1 {
			t.Fatalf("expected %d shots each\tgot: human %d computer %d", i+1, m.Human().ShotCount(), m.Computer().ShotCount())
		}
		if m.ActivePlayer() != PlayerHuman {
			t.Fatal("expected turn back with the human")
		}
	}
}

func TestFireRejectedLeavesMatchUnchanged(t *testing.T) {
	m := newTestMatch(t, DifficultyEasy, 6)
	placeRosterInRows(t, m)

	if _, err := m.Fire(NewCoordinates(0, 0)); err != nil {
		t.Fatal(err)
	}

	for _, target := range []Coordinates{{Row: 0, Col: 0}, {Row: -1, Col: 3}} {
		if _, err := m.Fire(target); err == nil {
			t.Fatalf("expected error firing at %v", target)
		}
	}

	if m.Human().ShotCount() != 1 || m.Computer().ShotCount() != 1 {
		t.Fatalf("expected one shot each\tgot: human %d computer %d", m.Human().ShotCount(), m.Computer().ShotCount())
	}
}

func TestHumanWins(t *testing.T) {
	m := newTestMatch(t, DifficultyHard, 8)
	placeRosterInRows(t, m)

	targets := shipCellsOf(m.Computer().Board())
	var result TurnResult
	for _, target := range targets {
		var err error
		result, err = m.Fire(target)
		if err != nil {
			t.Fatal(err)
		}
	}

	if result.HumanShot.Outcome.Kind != OutcomeSunk {
		t.Fatalf("expected last shot to sink\tgot: %s", result.HumanShot.Outcome)
	}
	if result.ComputerShot != nil {
		t.Fatal("expected no computer reply after the human won")
	}
	if m.Phase() != PhaseFinished || m.Winner() == nil || *m.Winner() != PlayerHuman {
		t.Fatal("expected match finished with the human as winner")
	}
	if m.Human().HitCount() != len(targets) || m.Human().MissCount() != 0 {
		t.Fatalf("expected hits: %d misses: 0\tgot: %d %d", len(targets), m.Human().HitCount(), m.Human().MissCount())
	}
	if m.Computer().ShotCount() != len(targets)-1 {
		t.Fatalf("expected computer shots: %d\tgot: %d", len(targets)-1, m.Computer().ShotCount())
	}
}

func TestComputerWins(t *testing.T) {
	m := newTestMatch(t, DifficultyEasy, 9)
	placeRosterInRows(t, m)
	humanCells := shipCellsOf(m.Human().Board())
	m.strategy = &scriptedStrategy{targets: humanCells}

	water := waterCellsOf(m.Computer().Board())
	for i := range humanCells {
		result, err := m.Fire(water[i])
		if err != nil {
			t.Fatal(err)
		}
		if i < len(humanCells)-1 && result.Phase != PhaseFiring {
			t.Fatalf("expected match to continue after turn %d", i)
		}
	}

	if m.Phase() != PhaseFinished || m.Winner() == nil || *m.Winner() != PlayerComputer {
		t.Fatal("expected match finished with the computer as winner")
	}
	if !m.Human().HasLost() {
		t.Fatal("expected human fleet sunk")
	}
}

func TestFinishedMatchIgnoresFire(t *testing.T) {
	m := newTestMatch(t, DifficultyEasy, 10)
	placeRosterInRows(t, m)
	for _, target := range shipCellsOf(m.Computer().Board()) {
		if _, err := m.Fire(target); err != nil {
			t.Fatal(err)
		}
	}

	humanShots, computerShots := m.Human().ShotCount(), m.Computer().ShotCount()
	water := waterCellsOf(m.Computer().Board())
	if _, err := m.Fire(water[0]); !errors.Is(err, cerr.ErrMatchFinished) {
		t.Fatalf("expected error: %v\tgot: %v", cerr.ErrMatchFinished, err)
	}
	if m.Human().ShotCount() != humanShots || m.Computer().ShotCount() != computerShots {
		t.Fatal("expected finished match to stay unchanged")
	}
	if err := m.PlaceFleetRandomly(); !errors.Is(err, cerr.ErrWrongPhase) {
		t.Fatalf("expected error: %v\tgot: %v", cerr.ErrWrongPhase, err)
	}
}

func TestRevealFleet(t *testing.T) {
	m := newTestMatch(t, DifficultyEasy, 12)

	if _, err := m.RevealFleet(); !errors.Is(err, cerr.ErrFleetNotRevealable) {
		t.Fatalf("expected error: %v\tgot: %v", cerr.ErrFleetNotRevealable, err)
	}

	placeRosterInRows(t, m)
	for _, target := range shipCellsOf(m.Computer().Board()) {
		if _, err := m.Fire(target); err != nil {
			t.Fatal(err)
		}
	}

	reveal, err := m.RevealFleet()
	if err != nil {
		t.Fatal(err)
	}
	ok, err := VerifyFleetReveal(m.Commitment().RootHex, reveal)
	if err != nil {
		t.Fatal(err)
	}
	if !ok {
		t.Fatal("expected revealed fleet to match the commitment")
	}
}

func TestComputerTurnFailureKeepsHumanShot(t *testing.T) {
	m := newTestMatch(t, DifficultyEasy, 12)
	placeRosterInRows(t, m)
	m.strategy = &scriptedStrategy{}

	target := waterCellsOf(m.Computer().Board())[0]
	result, err := m.Fire(target)
	if !errors.Is(err, cerr.ErrNoTargetsLeft) {
		t.Fatalf("expected error: %v\tgot: %v", cerr.ErrNoTargetsLeft, err)
	}
	if result.HumanShot.Target != target || result.HumanShot.Outcome.Kind != OutcomeMiss {
		t.Fatalf("expected human miss at %v\tgot: %+v", target, result.HumanShot)
	}
	if result.ComputerShot != nil {
		t.Fatal("expected no computer shot")
	}
	if m.ActivePlayer() != PlayerHuman {
		t.Fatal("expected turn back with the human")
	}
	if !m.Human().HasFiredAt(target) || m.Computer().ShotCount() != 0 {
		t.Fatal("expected the human shot to be recorded and no computer shot")
	}
}

func TestPlaceFleetRandomlyFailureLeavesBoard(t *testing.T) {
	cfg := Config{
		GridSize:             3,
		Roster:               []ShipSpec{{Name: "A", Length: 3}, {Name: "B", Length: 3}, {Name: "C", Length: 1}, {Name: "D", Length: 1}},
		MaxPlacementAttempts: 100,
	}
	m, err := NewMatch(cfg, DifficultyEasy, WithRand(rand.New(rand.NewSource(13))))
	if err != nil {
		t.Fatal(err)
	}

	// (0,0) and (1,1) leave only row 2 and column 2 free, which cross
	if _, err := m.PlaceShip(2, NewCoordinates(0, 0), OrientationHorizontal); err != nil {
		t.Fatal(err)
	}
	if _, err := m.PlaceShip(3, NewCoordinates(1, 1), OrientationHorizontal); err != nil {
		t.Fatal(err)
	}

	if err := m.PlaceFleetRandomly(); !errors.Is(err, cerr.ErrPlacementExhausted) {
		t.Fatalf("expected error: %v\tgot: %v", cerr.ErrPlacementExhausted, err)
	}
	if got := len(m.Human().Board().Ships()); got != 2 {
		t.Fatalf("expected ships on board: 2\tgot: %d", got)
	}
	if remaining := m.RemainingShips(); len(remaining) != 2 || remaining[0] != 0 || remaining[1] != 1 {
		t.Fatalf("expected remaining: [0 1]\tgot: %v", remaining)
	}
	if m.Phase() != PhasePlacement {
		t.Fatalf("expected phase: %s\tgot: %s", PhaseName(PhasePlacement), PhaseName(m.Phase()))
	}
	assertBoardInvariants(t, m.Human().Board())
}
