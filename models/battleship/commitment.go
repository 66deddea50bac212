package battleship

import (
	"crypto/rand"
	"fmt"
	"math/big"

	bnmimc "github.com/consensys/gnark-crypto/ecc/bn254/fr/mimc"
)

// 31 bytes keeps the salt below the BN254 scalar field modulus.
const saltSize = 31

type FleetCommitment struct {
	RootHex string `json:"root_hex"`
}

type FleetReveal struct {
	Cells   []uint8 `json:"cells"`
	SaltHex string  `json:"salt_hex"`
}

// encodes a field element as 32-byte big-endian
func feBytes(x *big.Int) []byte {
	out := make([]byte, 32)
	x.FillBytes(out)
	return out
}

func mimcHash(elems ...*big.Int) (*big.Int, error) {
	h := bnmimc.NewMiMC()
	for _, e := range elems {
		if _, err := h.Write(feBytes(e)); err != nil {
			return nil, err
		}
	}
	return new(big.Int).SetBytes(h.Sum(nil)), nil
}

// fleetRoot builds a binary MiMC Merkle tree over the cell bits, padded with
// zero leaves up to the next power of two, and returns its root.
func fleetRoot(cells []uint8) (*big.Int, error) {
	size := 1
	for size < len(cells) {
		size *= 2
	}

	level := make([]*big.Int, size)
	for i := range level {
		var bit uint8
		if i < len(cells) {
			bit = cells[i]
		}
		leaf, err := mimcHash(new(big.Int).SetUint64(uint64(bit)))
		if err != nil {
			return nil, err
		}
		level[i] = leaf
	}

	for len(level) > 1 {
		up := make([]*big.Int, len(level)/2)
		for i := range up {
			node, err := mimcHash(level[2*i], level[2*i+1])
			if err != nil {
				return nil, err
			}
			up[i] = node
		}
		level = up
	}
	return level[0], nil
}

func saltedRootHex(cells []uint8, salt *big.Int) (string, error) {
	root, err := fleetRoot(cells)
	if err != nil {
		return "", err
	}
	salted, err := mimcHash(salt, root)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("0x%x", salted), nil
}

// CommitFleet commits to the board's occupancy so the layout can be proven
// unchanged once revealed.
func CommitFleet(b *Board) (FleetCommitment, FleetReveal, error) {
	saltBytes := make([]byte, saltSize)
	if _, err := rand.Read(saltBytes); err != nil {
		return FleetCommitment{}, FleetReveal{}, err
	}
	salt := new(big.Int).SetBytes(saltBytes)

	cells := b.OccupancyBits()
	rootHex, err := saltedRootHex(cells, salt)
	if err != nil {
		return FleetCommitment{}, FleetReveal{}, err
	}

	return FleetCommitment{RootHex: rootHex}, FleetReveal{Cells: cells, SaltHex: fmt.Sprintf("0x%x", salt)}, nil
}

func VerifyFleetReveal(rootHex string, reveal FleetReveal) (bool, error) {
	if len(reveal.SaltHex) < 3 || reveal.SaltHex[:2] != "0x" {
		return false, fmt.Errorf("missing or invalid salt hex: %q", reveal.SaltHex)
	}
	salt, ok := new(big.Int).SetString(reveal.SaltHex[2:], 16)
	if !ok {
		return false, fmt.Errorf("cannot parse salt hex: %q", reveal.SaltHex)
	}

	for _, bit := range reveal.Cells {
		if bit != 0 && bit != 1 {
			return false, fmt.Errorf("revealed cell is not binary: %d", bit)
		}
	}

	computed, err := saltedRootHex(reveal.Cells, salt)
	if err != nil {
		return false, err
	}
	return computed == rootHex, nil
}
