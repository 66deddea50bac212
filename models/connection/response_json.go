package connection

import (
	mb "github.com/saeidalz13/battleship-solo/models/battleship"
)

type RespSessionId struct {
	SessionID string `json:"session_id"`
}

type RespShipSpec struct {
	Index  int    `json:"index"`
	Name   string `json:"name"`
	Length int    `json:"length"`
}

type RespCreateMatch struct {
	MatchUuid       string         `json:"match_uuid"`
	Difficulty      uint8          `json:"difficulty"`
	GridSize        int            `json:"grid_size"`
	Roster          []RespShipSpec `json:"roster"`
	FleetCommitment string         `json:"fleet_commitment"`
}

type RespPlaceShip struct {
	ShipIndex      int              `json:"ship_index"`
	Cells          []mb.Coordinates `json:"cells"`
	RemainingShips []int            `json:"remaining_ships"`
	Phase          uint8            `json:"phase"`
}

type RespPlaceFleet struct {
	Ships []RespPlacedShip `json:"ships"`
	Phase uint8            `json:"phase"`
}

type RespPlacedShip struct {
	Name  string           `json:"name"`
	Cells []mb.Coordinates `json:"cells"`
}

type RespShot struct {
	Row      int    `json:"row"`
	Col      int    `json:"col"`
	Outcome  uint8  `json:"outcome"`
	SunkShip string `json:"sunk_ship,omitempty"`
}

type RespFire struct {
	HumanShot      RespShot  `json:"human_shot"`
	ComputerShot   *RespShot `json:"computer_shot,omitempty"`
	Phase          uint8     `json:"phase"`
	HumanHits      int       `json:"human_hits"`
	HumanMisses    int       `json:"human_misses"`
	ComputerHits   int       `json:"computer_hits"`
	ComputerMisses int       `json:"computer_misses"`
}

type RespEndMatch struct {
	Winner          uint8          `json:"winner"`
	FleetCommitment string         `json:"fleet_commitment"`
	FleetReveal     mb.FleetReveal `json:"fleet_reveal"`
}

type RespMatchState struct {
	MatchUuid      string `json:"match_uuid"`
	Phase          uint8  `json:"phase"`
	ActivePlayer   uint8  `json:"active_player"`
	Difficulty     uint8  `json:"difficulty"`
	RemainingShips []int  `json:"remaining_ships"`
	Winner         *uint8 `json:"winner,omitempty"`
	HumanHits      int    `json:"human_hits"`
	HumanMisses    int    `json:"human_misses"`
	ComputerHits   int    `json:"computer_hits"`
	ComputerMisses int    `json:"computer_misses"`
	ElapsedSeconds int64  `json:"elapsed_seconds"`
}

type RespErr struct {
	ErrorDetails string `json:"error_details,omitempty"`
	Message      string `json:"message,omitempty"`
}

func NewRespErr(errorDetails, message string) *RespErr {
	return &RespErr{
		ErrorDetails: errorDetails,
		Message:      message,
	}
}

func NewRespShot(report mb.ShotReport) RespShot {
	return RespShot{
		Row:      report.Target.Row,
		Col:      report.Target.Col,
		Outcome:  report.Outcome.Kind,
		SunkShip: report.Outcome.ShipName,
	}
}

func NewRespMatchState(match *mb.Match) RespMatchState {
	return RespMatchState{
		MatchUuid:      match.Uuid(),
		Phase:          match.Phase(),
		ActivePlayer:   match.ActivePlayer(),
		Difficulty:     match.Difficulty(),
		RemainingShips: match.RemainingShips(),
		Winner:         match.Winner(),
		HumanHits:      match.Human().HitCount(),
		HumanMisses:    match.Human().MissCount(),
		ComputerHits:   match.Computer().HitCount(),
		ComputerMisses: match.Computer().MissCount(),
		ElapsedSeconds: int64(match.Elapsed().Seconds()),
	}
}
