package battleship

import (
	"math/rand"

	cerr "github.com/saeidalz13/battleship-solo/internal/error"
)

const (
	DifficultyEasy uint8 = iota
	DifficultyHard
)

func IsDifficultyValid(difficulty uint8) bool {
	return difficulty == DifficultyEasy || difficulty == DifficultyHard
}

// TargetingStrategy picks the computer's next shot. RecordOutcome is called
// after every shot the computer fires so stateful strategies can react.
type TargetingStrategy interface {
	ChooseTarget(history ShotHistory) (Coordinates, error)
	RecordOutcome(target Coordinates, outcome ShotOutcome, history ShotHistory)
	Reset()
}

func NewTargetingStrategy(difficulty uint8, gridSize int, rng *rand.Rand) (TargetingStrategy, error) {
	switch difficulty {
	case DifficultyEasy:
		return NewRandomStrategy(gridSize, rng), nil
	case DifficultyHard:
		return NewHuntStrategy(gridSize, rng), nil
	default:
		return nil, cerr.ErrGameDifficultyInvalid(difficulty)
	}
}

type RandomStrategy struct {
	gridSize int
	rng      *rand.Rand
}

var _ TargetingStrategy = (*RandomStrategy)(nil)

func NewRandomStrategy(gridSize int, rng *rand.Rand) *RandomStrategy {
	return &RandomStrategy{gridSize: gridSize, rng: rng}
}

// ChooseTarget resamples until it draws coordinates the history has not
// fired at yet.
func (rs *RandomStrategy) ChooseTarget(history ShotHistory) (Coordinates, error) {
	return randomUntried(rs.gridSize, rs.rng, history)
}

func (rs *RandomStrategy) RecordOutcome(Coordinates, ShotOutcome, ShotHistory) {}

func (rs *RandomStrategy) Reset() {}

func randomUntried(gridSize int, rng *rand.Rand, history ShotHistory) (Coordinates, error) {
	if history.ShotCount() >= gridSize*gridSize {
		return Coordinates{}, cerr.ErrNoTargetsLeft
	}

	for {
		c := NewCoordinates(rng.Intn(gridSize), rng.Intn(gridSize))
		if !history.HasFiredAt(c) {
			return c, nil
		}
	}
}

// HuntStrategy probes the neighbours of every hit before going back to
// random shots. Candidates stay queued after a sink; stale ones are
// skipped when popped.
type HuntStrategy struct {
	gridSize       int
	rng            *rand.Rand
	pendingTargets []Coordinates
}

var _ TargetingStrategy = (*HuntStrategy)(nil)

func NewHuntStrategy(gridSize int, rng *rand.Rand) *HuntStrategy {
	return &HuntStrategy{
		gridSize:       gridSize,
		rng:            rng,
		pendingTargets: make([]Coordinates, 0, 4),
	}
}

func (hs *HuntStrategy) ChooseTarget(history ShotHistory) (Coordinates, error) {
	for len(hs.pendingTargets) > 0 {
		candidate := hs.pendingTargets[0]
		hs.pendingTargets = hs.pendingTargets[1:]

		if !history.HasFiredAt(candidate) {
			return candidate, nil
		}
	}
	return randomUntried(hs.gridSize, hs.rng, history)
}

func (hs *HuntStrategy) RecordOutcome(target Coordinates, outcome ShotOutcome, history ShotHistory) {
	if !outcome.IsHit() {
		return
	}

	for _, n := range target.neighbours() {
		if isInGrid(n, hs.gridSize) && !history.HasFiredAt(n) {
			hs.pendingTargets = append(hs.pendingTargets, n)
		}
	}
}

// PendingTargets returns a copy of the hunt queue, front first.
func (hs *HuntStrategy) PendingTargets() []Coordinates {
	pending := make([]Coordinates, len(hs.pendingTargets))
	copy(pending, hs.pendingTargets)
	return pending
}

func (hs *HuntStrategy) Reset() {
	hs.pendingTargets = hs.pendingTargets[:0]
}
