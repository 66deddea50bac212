package battleship

import (
	"errors"
	"testing"

	cerr "github.com/saeidalz13/battleship-solo/internal/error"
)

func TestShipSunkOnlyWhenEveryCellHit(t *testing.T) {
	ship := NewShip("Cruiser", 3)
	cells := []Coordinates{{Row: 2, Col: 2}, {Row: 2, Col: 3}, {Row: 2, Col: 4}}
	if err := ship.Place(cells); err != nil {
		t.Fatal(err)
	}

	for i, c := range cells {
		if ship.IsSunk() {
			t.Fatalf("expected ship afloat before hit no. %d", i+1)
		}
		ship.RegisterHit(c)
	}

	if !ship.IsSunk() {
		t.Fatal("expected ship sunk after every cell was hit")
	}
}

func TestShipRegisterHit(t *testing.T) {
	tests := []struct {
		name         string
		hits         []Coordinates
		expectedHits int
		expectedSunk bool
	}{
		{
			name:         "same cell twice counts once",
			hits:         []Coordinates{{Row: 0, Col: 0}, {Row: 0, Col: 0}},
			expectedHits: 1,
		},
		{
			name:         "cell outside ship ignored",
			hits:         []Coordinates{{Row: 5, Col: 5}},
			expectedHits: 0,
		},
		{
			name:         "both cells with a repeat",
			hits:         []Coordinates{{Row: 0, Col: 0}, {Row: 0, Col: 1}, {Row: 0, Col: 1}},
			expectedHits: 2,
			expectedSunk: true,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			ship := NewShip("Submarine", 2)
			if err := ship.Place([]Coordinates{{Row: 0, Col: 0}, {Row: 0, Col: 1}}); err != nil {
				t.Fatal(err)
			}

			for _, c := range test.hits {
				ship.RegisterHit(c)
			}

			if ship.HitCount() != test.expectedHits {
				t.Fatalf("expected hits: %d\tgot: %d", test.expectedHits, ship.HitCount())
			}
			if ship.IsSunk() != test.expectedSunk {
				t.Fatalf("expected sunk: %t\tgot: %t", test.expectedSunk, ship.IsSunk())
			}
		})
	}
}

func TestShipPlaceOnlyOnce(t *testing.T) {
	ship := NewShip("Submarine", 2)
	if err := ship.Place([]Coordinates{{Row: 0, Col: 0}, {Row: 0, Col: 1}}); err != nil {
		t.Fatal(err)
	}

	err := ship.Place([]Coordinates{{Row: 1, Col: 0}, {Row: 1, Col: 1}})
	if !errors.Is(err, cerr.ErrShipAlreadyPlaced) {
		t.Fatalf("expected error: %v\tgot: %v", cerr.ErrShipAlreadyPlaced, err)
	}
	if ship.Cells()[0] != NewCoordinates(0, 0) {
		t.Fatalf("expected cells unchanged, got: %v", ship.Cells())
	}
}

func TestUnplacedShipIsNotSunk(t *testing.T) {
	if NewShip("Destroyer", 3).IsSunk() {
		t.Fatal("expected unplaced ship not to be sunk")
	}
}
