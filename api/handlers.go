package api

import (
	"encoding/json"
	"errors"

	cerr "github.com/saeidalz13/battleship-solo/internal/error"
	mb "github.com/saeidalz13/battleship-solo/models/battleship"
	mc "github.com/saeidalz13/battleship-solo/models/connection"
)

// Every incoming valid request has this structure. The payload is the raw
// message and is decoded by each handler into its own request type.
type Request struct {
	payload []byte
}

func NewRequest(payload ...[]byte) Request {
	var req Request
	if len(payload) != 0 {
		req.payload = payload[0]
	}
	return req
}

func decodePayload[T any](payload []byte) (T, error) {
	var msg mc.Message[T]
	if err := json.Unmarshal(payload, &msg); err != nil {
		return msg.Payload, err
	}
	return msg.Payload, nil
}

func respCreateMatch(match *mb.Match) mc.RespCreateMatch {
	cfg := match.Config()

	roster := make([]mc.RespShipSpec, len(cfg.Roster))
	for i, spec := range cfg.Roster {
		roster[i] = mc.RespShipSpec{Index: i, Name: spec.Name, Length: spec.Length}
	}

	return mc.RespCreateMatch{
		MatchUuid:       match.Uuid(),
		Difficulty:      match.Difficulty(),
		GridSize:        cfg.GridSize,
		Roster:          roster,
		FleetCommitment: match.Commitment().RootHex,
	}
}

func (r Request) HandleCreateMatch(matchManager mb.MatchManager) (*mb.Match, mc.Message[mc.RespCreateMatch]) {
	resp := mc.NewMessage[mc.RespCreateMatch](mc.CodeCreateMatch)

	reqPayload, err := decodePayload[mc.ReqCreateMatch](r.payload)
	if err != nil {
		resp.AddErr(err, "invalid create match payload")
		return nil, resp
	}

	match, err := matchManager.CreateMatch(reqPayload.Difficulty)
	if err != nil {
		resp.AddErr(err, "could not create match")
		return nil, resp
	}

	resp.AddPayload(respCreateMatch(match))
	return match, resp
}

func (r Request) HandleSetDifficulty(match *mb.Match) mc.Message[mc.RespMatchState] {
	resp := mc.NewMessage[mc.RespMatchState](mc.CodeSetDifficulty)
	if match == nil {
		resp.AddErr(cerr.ErrSessionMatchMissing, "create a match first")
		return resp
	}

	reqPayload, err := decodePayload[mc.ReqSetDifficulty](r.payload)
	if err != nil {
		resp.AddErr(err, "invalid set difficulty payload")
		return resp
	}

	if err := match.SetDifficulty(reqPayload.Difficulty); err != nil {
		resp.AddErr(err, "could not change difficulty")
		return resp
	}

	resp.AddPayload(mc.NewRespMatchState(match))
	return resp
}

func (r Request) HandlePlaceShip(match *mb.Match) mc.Message[mc.RespPlaceShip] {
	resp := mc.NewMessage[mc.RespPlaceShip](mc.CodePlaceShip)
	if match == nil {
		resp.AddErr(cerr.ErrSessionMatchMissing, "create a match first")
		return resp
	}

	reqPayload, err := decodePayload[mc.ReqPlaceShip](r.payload)
	if err != nil {
		resp.AddErr(err, "invalid place ship payload")
		return resp
	}

	anchor := mb.NewCoordinates(reqPayload.Row, reqPayload.Col)
	cells, err := match.PlaceShip(reqPayload.ShipIndex, anchor, reqPayload.Orientation)
	if err != nil {
		resp.AddErr(err, "could not place ship")
		return resp
	}

	resp.AddPayload(mc.RespPlaceShip{
		ShipIndex:      reqPayload.ShipIndex,
		Cells:          cells,
		RemainingShips: match.RemainingShips(),
		Phase:          match.Phase(),
	})
	return resp
}

func (r Request) HandlePlaceFleetRandomly(match *mb.Match) mc.Message[mc.RespPlaceFleet] {
	resp := mc.NewMessage[mc.RespPlaceFleet](mc.CodePlaceFleetRandomly)
	if match == nil {
		resp.AddErr(cerr.ErrSessionMatchMissing, "create a match first")
		return resp
	}

	if err := match.PlaceFleetRandomly(); err != nil {
		resp.AddErr(err, "could not place fleet")
		return resp
	}

	ships := match.Human().Board().Ships()
	placed := make([]mc.RespPlacedShip, len(ships))
	for i, ship := range ships {
		placed[i] = mc.RespPlacedShip{Name: ship.Name(), Cells: ship.Cells()}
	}

	resp.AddPayload(mc.RespPlaceFleet{Ships: placed, Phase: match.Phase()})
	return resp
}

func (r Request) HandleFire(match *mb.Match) mc.Message[mc.RespFire] {
	resp := mc.NewMessage[mc.RespFire](mc.CodeFire)
	if match == nil {
		resp.AddErr(cerr.ErrSessionMatchMissing, "create a match first")
		return resp
	}

	reqPayload, err := decodePayload[mc.ReqFire](r.payload)
	if err != nil {
		resp.AddErr(err, "invalid fire payload")
		return resp
	}

	result, err := match.Fire(mb.NewCoordinates(reqPayload.Row, reqPayload.Col))
	if err != nil && !errors.Is(err, cerr.ErrNoTargetsLeft) {
		resp.AddErr(err, "shot rejected")
		return resp
	}

	payload := mc.RespFire{
		HumanShot:      mc.NewRespShot(result.HumanShot),
		Phase:          result.Phase,
		HumanHits:      match.Human().HitCount(),
		HumanMisses:    match.Human().MissCount(),
		ComputerHits:   match.Computer().HitCount(),
		ComputerMisses: match.Computer().MissCount(),
	}
	if result.ComputerShot != nil {
		computerShot := mc.NewRespShot(*result.ComputerShot)
		payload.ComputerShot = &computerShot
	}

	resp.AddPayload(payload)
	if err != nil {
		// the human shot landed but the computer could not answer
		resp.AddErr(err, "computer turn failed")
	}
	return resp
}

// HandleEndMatch reports the winner together with the computer's fleet
// reveal, so the client can check it against the commitment it got when the
// match was created.
func (r Request) HandleEndMatch(match *mb.Match) mc.Message[mc.RespEndMatch] {
	resp := mc.NewMessage[mc.RespEndMatch](mc.CodeEndMatch)
	if match == nil {
		resp.AddErr(cerr.ErrSessionMatchMissing, "create a match first")
		return resp
	}

	reveal, err := match.RevealFleet()
	if err != nil {
		resp.AddErr(err, "match is not over")
		return resp
	}

	resp.AddPayload(mc.RespEndMatch{
		Winner:          *match.Winner(),
		FleetCommitment: match.Commitment().RootHex,
		FleetReveal:     reveal,
	})
	return resp
}

func (r Request) HandleRestartMatch(matchManager mb.MatchManager, match *mb.Match) (*mb.Match, mc.Message[mc.RespCreateMatch]) {
	resp := mc.NewMessage[mc.RespCreateMatch](mc.CodeRestartMatch)
	if match == nil {
		resp.AddErr(cerr.ErrSessionMatchMissing, "create a match first")
		return nil, resp
	}

	restarted, err := matchManager.RestartMatch(match)
	if err != nil {
		resp.AddErr(err, "could not restart match")
		return nil, resp
	}

	resp.AddPayload(respCreateMatch(restarted))
	return restarted, resp
}

func (r Request) HandleMatchState(match *mb.Match) mc.Message[mc.RespMatchState] {
	resp := mc.NewMessage[mc.RespMatchState](mc.CodeMatchState)
	if match == nil {
		resp.AddErr(cerr.ErrSessionMatchMissing, "create a match first")
		return resp
	}

	resp.AddPayload(mc.NewRespMatchState(match))
	return resp
}
