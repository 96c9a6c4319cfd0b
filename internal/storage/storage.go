// Package storage maps board coordinates to per-hex payloads.
//
// Two layouts share one contract: Flat keeps a single row-major slice and
// suits small boards; Blocked partitions the board into 32×32 tiles so a
// hex and its neighbourhood usually share a tile on large boards.
package storage

import (
	"runtime"

	"github.com/udisondev/hexgrid/internal/hex"
)

// Tile geometry for Blocked storage.
const (
	BlockShift = 5
	BlockSide  = 1 << BlockShift // 32
	BlockMask  = BlockSide - 1   // 31
	BlockCells = BlockSide * BlockSide
)

// DefaultBlockedThreshold is the board area (in hexes) from which New picks
// Blocked storage.
const DefaultBlockedThreshold = 64 * 64

// InitFunc produces the payload for one hex during a build. ok=false leaves
// the hex empty. It is called concurrently from several workers.
type InitFunc[T any] func(c hex.HexCoords) (v T, ok bool)

// Storage is an indexed container holding one optional payload per hex.
// Off-board reads return ok=false; off-board writes are no-ops.
type Storage[T any] interface {
	// MapSize returns the board extent.
	MapSize() hex.MapSize
	// Get returns the payload at c.
	Get(c hex.HexCoords) (v T, ok bool)
	// ForEach calls fn for every present payload, in parallel.
	// fn must be safe for concurrent use.
	ForEach(fn func(c hex.HexCoords, v T))
	// ForEachSerial calls fn for every present payload in row-major order.
	ForEachSerial(fn func(c hex.HexCoords, v T))
	// ForAllNeighbours calls fn for each on-board, present neighbour of c.
	ForAllNeighbours(c hex.HexCoords, fn func(side hex.Hexside, v T))
	// SetItem replaces the payload at c. Not safe concurrently with iteration.
	SetItem(c hex.HexCoords, v T)
}

// New builds Flat storage for boards smaller than threshold hexes and
// Blocked storage otherwise. threshold <= 0 uses DefaultBlockedThreshold.
func New[T any](size hex.MapSize, threshold int, init InitFunc[T]) Storage[T] {
	if threshold <= 0 {
		threshold = DefaultBlockedThreshold
	}
	if size.Area() < threshold {
		return NewFlat(size, init)
	}
	return NewBlocked(size, init)
}

func workers() int {
	return runtime.GOMAXPROCS(0)
}

func forAllNeighbours[T any](s Storage[T], c hex.HexCoords, fn func(side hex.Hexside, v T)) {
	for _, side := range hex.Hexsides {
		if v, ok := s.Get(c.Neighbour(side)); ok {
			fn(side, v)
		}
	}
}
