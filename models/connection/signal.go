package connection

const (
	CodeSessionID uint8 = iota
	CodeReceivedInvalidSessionID
	CodeCreateMatch
	CodeSetDifficulty
	CodePlaceShip
	CodePlaceFleetRandomly

	// Sent by the server once the whole fleet is placed
	CodeStartFiring
	CodeFire
	CodeEndMatch
	CodeRestartMatch
	CodeMatchState
	CodeInvalidSignal

	// if the req msg does not contain "code" field
	CodeSignalAbsent
)

type Signal struct {
	Code uint8 `json:"code"`
}

func NewSignal(code uint8) Signal {
	return Signal{Code: code}
}
