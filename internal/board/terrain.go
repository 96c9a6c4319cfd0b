package board

import (
	"errors"

	"github.com/udisondev/hexgrid/internal/hex"
)

// ErrNilTerrain is returned when a board is built without terrain data.
var ErrNilTerrain = errors.New("board: nil terrain")

// ErrInvalidSize is returned for boards without a positive width and height.
var ErrInvalidSize = errors.New("board: invalid size")

// Terrain supplies per-hex data when a board is built. Heights are in feet
// above the hex's own ground; costs below zero forbid the step. New calls
// the methods from several goroutines at once.
type Terrain interface {
	Passable(c hex.HexCoords) bool
	ElevationLevel(c hex.HexCoords) int
	TerrainHeight(c hex.HexCoords) int
	HexsideHeight(c hex.HexCoords, s hex.Hexside) int
	// EntryCost is the cost of entering c across its hexside s.
	EntryCost(c hex.HexCoords, s hex.Hexside) int
	// ExitCost is the cost of leaving c across its hexside s.
	ExitCost(c hex.HexCoords, s hex.Hexside) int
}

// Funcs adapts plain callbacks to Terrain. Passable and EntryCost are
// required; the others default to flat, open ground with free exits.
type Funcs struct {
	PassableFunc       func(c hex.HexCoords) bool
	ElevationLevelFunc func(c hex.HexCoords) int
	TerrainHeightFunc  func(c hex.HexCoords) int
	HexsideHeightFunc  func(c hex.HexCoords, s hex.Hexside) int
	EntryCostFunc      func(c hex.HexCoords, s hex.Hexside) int
	ExitCostFunc       func(c hex.HexCoords, s hex.Hexside) int
}

func (f Funcs) validate() error {
	if f.PassableFunc == nil || f.EntryCostFunc == nil {
		return ErrNilTerrain
	}
	return nil
}

func (f Funcs) Passable(c hex.HexCoords) bool { return f.PassableFunc(c) }

func (f Funcs) ElevationLevel(c hex.HexCoords) int {
	if f.ElevationLevelFunc == nil {
		return 0
	}
	return f.ElevationLevelFunc(c)
}

func (f Funcs) TerrainHeight(c hex.HexCoords) int {
	if f.TerrainHeightFunc == nil {
		return 0
	}
	return f.TerrainHeightFunc(c)
}

func (f Funcs) HexsideHeight(c hex.HexCoords, s hex.Hexside) int {
	if f.HexsideHeightFunc == nil {
		return 0
	}
	return f.HexsideHeightFunc(c, s)
}

func (f Funcs) EntryCost(c hex.HexCoords, s hex.Hexside) int { return f.EntryCostFunc(c, s) }

func (f Funcs) ExitCost(c hex.HexCoords, s hex.Hexside) int {
	if f.ExitCostFunc == nil {
		return 0
	}
	return f.ExitCostFunc(c, s)
}
