package error

import (
	"errors"
	"fmt"
)

// Placement errors
var (
	ErrLengthMismatch     = errors.New("number of cells does not match ship length")
	ErrOutOfBounds        = errors.New("coordinates out of grid bound")
	ErrCellOccupied       = errors.New("cell already occupied by another ship")
	ErrPlacementExhausted = errors.New("random placement attempts exhausted")
	ErrShipAlreadyPlaced  = errors.New("ship is already placed")
)

// Fire errors
var (
	ErrAlreadyTargeted = errors.New("coordinates already targeted")
	ErrNoTargetsLeft   = errors.New("no untargeted coordinates left")
)

// Match errors
var (
	ErrWrongPhase          = errors.New("operation not allowed in current phase")
	ErrMatchFinished       = errors.New("match is finished")
	ErrInvalidShipIndex    = errors.New("invalid ship index")
	ErrInvalidDifficulty   = errors.New("invalid match difficulty")
	ErrInvalidOrientation  = errors.New("invalid ship orientation")
	ErrInvalidConfig       = errors.New("invalid engine config")
	ErrFleetNotRevealable  = errors.New("fleet can only be revealed after the match is finished")
	ErrMatchNotExists      = errors.New("match does not exist")
	ErrMatchExists         = errors.New("match with this uuid already exists")
	ErrSessionNotFound     = errors.New("session not found")
	ErrSessionMatchMissing = errors.New("session has no match")
)

func ErrCoordsOutOfGridBound(row, col int) error {
	return fmt.Errorf("%w\trow: %d\tcol: %d", ErrOutOfBounds, row, col)
}

func ErrCellsLengthMismatch(shipName string, want, got int) error {
	return fmt.Errorf("%w\tship: %s\texpected: %d\tgot: %d", ErrLengthMismatch, shipName, want, got)
}

func ErrCellAlreadyOccupied(row, col int) error {
	return fmt.Errorf("%w\trow: %d\tcol: %d", ErrCellOccupied, row, col)
}

func ErrRandomPlacementExhausted(shipName string, attempts int) error {
	return fmt.Errorf("%w\tship: %s\tattempts: %d", ErrPlacementExhausted, shipName, attempts)
}

func ErrShipPlacedTwice(shipName string) error {
	return fmt.Errorf("%w\tship: %s", ErrShipAlreadyPlaced, shipName)
}

func ErrPositionAlreadyTargeted(row, col int) error {
	return fmt.Errorf("%w\trow: %d\tcol: %d", ErrAlreadyTargeted, row, col)
}

func ErrPhaseNotAllowed(op, phase string) error {
	return fmt.Errorf("%w\top: %s\tphase: %s", ErrWrongPhase, op, phase)
}

func ErrShipIndexInvalid(idx int) error {
	return fmt.Errorf("%w\tindex: %d", ErrInvalidShipIndex, idx)
}

func ErrGameDifficultyInvalid(difficulty uint8) error {
	return fmt.Errorf("%w\tdifficulty: %d", ErrInvalidDifficulty, difficulty)
}

func ErrShipOrientationInvalid(orientation uint8) error {
	return fmt.Errorf("%w\torientation: %d", ErrInvalidOrientation, orientation)
}

func ErrConfigInvalid(reason string) error {
	return fmt.Errorf("%w: %s", ErrInvalidConfig, reason)
}

func ErrMatchNotExist(matchUuid string) error {
	return fmt.Errorf("%w, uuid: %s", ErrMatchNotExists, matchUuid)
}

func ErrMatchUuidTaken(matchUuid string) error {
	return fmt.Errorf("%w, uuid: %s", ErrMatchExists, matchUuid)
}

func ErrSessionNotExist(sessionId string) error {
	return fmt.Errorf("%w, id: %s", ErrSessionNotFound, sessionId)
}
