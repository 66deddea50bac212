package battleship

import (
	"fmt"
	"math/rand"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	cerr "github.com/saeidalz13/battleship-solo/internal/error"
)

const (
	PhasePlacement uint8 = iota
	PhaseFiring
	PhaseFinished
)

func PhaseName(phase uint8) string {
	switch phase {
	case PhasePlacement:
		return "Placement"
	case PhaseFiring:
		return "Firing"
	case PhaseFinished:
		return "Finished"
	default:
		return "Unknown"
	}
}

const (
	HumanPlayerName    = "Player"
	ComputerPlayerName = "Computer"
)

type ShotReport struct {
	Target  Coordinates `json:"target"`
	Outcome ShotOutcome `json:"outcome"`
}

// TurnResult is what a single human fire request produces: the human's shot
// and, unless the match ended on it, exactly one computer reply.
type TurnResult struct {
	HumanShot    ShotReport  `json:"human_shot"`
	ComputerShot *ShotReport `json:"computer_shot,omitempty"`
	Phase        uint8       `json:"phase"`
	Winner       *uint8      `json:"winner,omitempty"`
}

// Match drives one human against the computer through
// Placement -> Firing -> Finished. It is not safe for concurrent use; the
// owner feeds it one request at a time.
type Match struct {
	uuid         string
	cfg          Config
	difficulty   uint8
	phase        uint8
	activePlayer uint8
	winner       *uint8
	createdAt    time.Time

	// unix nanos of the last request; read by the registry cleanup goroutine
	lastActivity atomic.Int64

	human        *Player
	computer     *Player
	humanFleet   []*Ship
	strategy     TargetingStrategy
	rng          *rand.Rand
	commitment   FleetCommitment
	secretReveal FleetReveal
}

type MatchOption func(*Match)

func WithRand(rng *rand.Rand) MatchOption {
	return func(m *Match) {
		m.rng = rng
	}
}

func WithUuid(matchUuid string) MatchOption {
	return func(m *Match) {
		m.uuid = matchUuid
	}
}

// NewMatch builds both players and places the computer's whole fleet right
// away. An exhausted random placement is returned as is.
func NewMatch(cfg Config, difficulty uint8, opts ...MatchOption) (*Match, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if !IsDifficultyValid(difficulty) {
		return nil, cerr.ErrGameDifficultyInvalid(difficulty)
	}

	m := &Match{
		cfg:          cfg,
		difficulty:   difficulty,
		phase:        PhasePlacement,
		activePlayer: PlayerHuman,
		createdAt:    time.Now(),
		human:        NewPlayer(HumanPlayerName, cfg),
		computer:     NewPlayer(ComputerPlayerName, cfg),
		humanFleet:   cfg.NewFleet(),
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.uuid == "" {
		m.uuid = uuid.NewString()
	}
	m.touch(m.createdAt)
	if m.rng == nil {
		m.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	strategy, err := NewTargetingStrategy(difficulty, cfg.GridSize, m.rng)
	if err != nil {
		return nil, err
	}
	m.strategy = strategy

	for _, ship := range cfg.NewFleet() {
		if err := m.computer.Board().PlaceShipRandomly(ship, m.rng); err != nil {
			return nil, fmt.Errorf("computer fleet placement: %w", err)
		}
	}

	commitment, reveal, err := CommitFleet(m.computer.Board())
	if err != nil {
		return nil, fmt.Errorf("computer fleet commitment: %w", err)
	}
	m.commitment = commitment
	m.secretReveal = reveal

	return m, nil
}

func (m *Match) Uuid() string {
	return m.uuid
}

func (m *Match) Config() Config {
	return m.cfg
}

func (m *Match) Difficulty() uint8 {
	return m.difficulty
}

func (m *Match) Phase() uint8 {
	return m.phase
}

func (m *Match) ActivePlayer() uint8 {
	return m.activePlayer
}

// Winner is nil until the match is finished.
func (m *Match) Winner() *uint8 {
	if m.winner == nil {
		return nil
	}
	winner := *m.winner
	return &winner
}

func (m *Match) Human() *Player {
	return m.human
}

func (m *Match) Computer() *Player {
	return m.computer
}

func (m *Match) Elapsed() time.Duration {
	return time.Since(m.createdAt)
}

func (m *Match) CreatedAt() time.Time {
	return m.createdAt
}

// LastActivity is when the match last received a request.
func (m *Match) LastActivity() time.Time {
	return time.Unix(0, m.lastActivity.Load())
}

func (m *Match) touch(now time.Time) {
	m.lastActivity.Store(now.UnixNano())
}

func (m *Match) Commitment() FleetCommitment {
	return m.commitment
}

// RemainingShips lists roster indexes the human has not placed yet.
func (m *Match) RemainingShips() []int {
	remaining := make([]int, 0, len(m.humanFleet))
	for i, ship := range m.humanFleet {
		if !ship.IsPlaced() {
			remaining = append(remaining, i)
		}
	}
	return remaining
}

func (m *Match) SetDifficulty(difficulty uint8) error {
	m.touch(time.Now())
	if m.phase != PhasePlacement {
		return cerr.ErrPhaseNotAllowed("set difficulty", PhaseName(m.phase))
	}
	if difficulty == m.difficulty {
		return nil
	}

	strategy, err := NewTargetingStrategy(difficulty, m.cfg.GridSize, m.rng)
	if err != nil {
		return err
	}
	m.difficulty = difficulty
	m.strategy = strategy
	return nil
}

// PlaceShip places the roster ship at shipIndex for the human. Placing the
// last ship moves the match to Firing.
func (m *Match) PlaceShip(shipIndex int, anchor Coordinates, orientation uint8) ([]Coordinates, error) {
	m.touch(time.Now())
	if m.phase != PhasePlacement {
		return nil, cerr.ErrPhaseNotAllowed("place ship", PhaseName(m.phase))
	}
	if shipIndex < 0 || shipIndex >= len(m.humanFleet) {
		return nil, cerr.ErrShipIndexInvalid(shipIndex)
	}
	if !isOrientationValid(orientation) {
		return nil, cerr.ErrShipOrientationInvalid(orientation)
	}

	ship := m.humanFleet[shipIndex]
	cells := ShipCells(anchor, ship.Length(), orientation)
	if err := m.human.Board().PlaceShip(ship, cells); err != nil {
		return nil, err
	}

	m.startFiringIfReady()
	return ship.Cells(), nil
}

// PlaceFleetRandomly places every remaining human ship the way the
// computer's fleet is placed. The layout is worked out on a scratch board
// first, so a failure leaves the human's board as it was.
func (m *Match) PlaceFleetRandomly() error {
	m.touch(time.Now())
	if m.phase != PhasePlacement {
		return cerr.ErrPhaseNotAllowed("place fleet randomly", PhaseName(m.phase))
	}

	scratch := NewBoard(m.cfg)
	for _, ship := range m.human.Board().Ships() {
		ghost := NewShip(ship.Name(), ship.Length())
		if err := scratch.PlaceShip(ghost, ship.Cells()); err != nil {
			return err
		}
	}

	remaining := m.RemainingShips()
	layout := make([][]Coordinates, len(remaining))
	for i, idx := range remaining {
		ghost := NewShip(m.humanFleet[idx].Name(), m.humanFleet[idx].Length())
		if err := scratch.PlaceShipRandomly(ghost, m.rng); err != nil {
			return err
		}
		layout[i] = ghost.Cells()
	}

	for i, idx := range remaining {
		if err := m.human.Board().PlaceShip(m.humanFleet[idx], layout[i]); err != nil {
			return err
		}
	}

	m.startFiringIfReady()
	return nil
}

func (m *Match) startFiringIfReady() {
	if len(m.RemainingShips()) == 0 {
		m.phase = PhaseFiring
		m.activePlayer = PlayerHuman
	}
}

// Fire resolves the human's shot and, if the match continues, exactly one
// computer shot. Rejected shots leave the match unchanged. If the computer
// cannot take its turn, the human's shot stands and is returned along with
// the error.
func (m *Match) Fire(target Coordinates) (TurnResult, error) {
	m.touch(time.Now())
	switch m.phase {
	case PhaseFinished:
		return TurnResult{}, cerr.ErrMatchFinished
	case PhasePlacement:
		return TurnResult{}, cerr.ErrPhaseNotAllowed("fire", PhaseName(m.phase))
	}

	outcome, err := m.human.Fire(target, m.computer.Board())
	if err != nil {
		return TurnResult{}, err
	}
	result := TurnResult{HumanShot: ShotReport{Target: target, Outcome: outcome}}

	if m.computer.HasLost() {
		m.finish(PlayerHuman)
		result.Phase, result.Winner = m.phase, m.Winner()
		return result, nil
	}

	m.activePlayer = PlayerComputer
	computerShot, err := m.playComputerTurn()
	if err != nil {
		m.activePlayer = PlayerHuman
		result.Phase = m.phase
		return result, err
	}
	result.ComputerShot = &computerShot

	if m.human.HasLost() {
		m.finish(PlayerComputer)
	} else {
		m.activePlayer = PlayerHuman
	}

	result.Phase, result.Winner = m.phase, m.Winner()
	return result, nil
}

func (m *Match) playComputerTurn() (ShotReport, error) {
	target, err := m.strategy.ChooseTarget(m.computer)
	if err != nil {
		return ShotReport{}, err
	}

	outcome, err := m.computer.Fire(target, m.human.Board())
	if err != nil {
		return ShotReport{}, err
	}
	m.strategy.RecordOutcome(target, outcome, m.computer)

	return ShotReport{Target: target, Outcome: outcome}, nil
}

func (m *Match) finish(winner uint8) {
	m.phase = PhaseFinished
	m.winner = &winner
	m.activePlayer = winner
}

// RevealFleet discloses the computer's committed layout once the match is
// over.
func (m *Match) RevealFleet() (FleetReveal, error) {
	if m.phase != PhaseFinished {
		return FleetReveal{}, cerr.ErrFleetNotRevealable
	}
	return m.secretReveal, nil
}
