package connection

type ReqCreateMatch struct {
	Difficulty uint8 `json:"difficulty"`
}

type ReqSetDifficulty struct {
	Difficulty uint8 `json:"difficulty"`
}

type ReqPlaceShip struct {
	ShipIndex   int   `json:"ship_index"`
	Row         int   `json:"row"`
	Col         int   `json:"col"`
	Orientation uint8 `json:"orientation"`
}

type ReqFire struct {
	Row int `json:"row"`
	Col int `json:"col"`
}
