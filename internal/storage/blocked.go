package storage

import (
	"golang.org/x/sync/errgroup"

	"github.com/udisondev/hexgrid/internal/hex"
)

// block is one 32×32 tile, row-major within the tile.
type block[T any] struct {
	items   [BlockCells]T
	present [BlockCells]bool
}

func cellIndex(x, y int) int {
	return (y&BlockMask)<<BlockShift | x&BlockMask
}

// Blocked stores payloads in 32×32 tiles. Index resolution uses shifts and
// masks only; edge tiles are allocated full size.
type Blocked[T any] struct {
	size       hex.MapSize
	blocksWide int
	blocksHigh int
	// rows[by][bx]; each tile row is produced by exactly one worker.
	rows [][]*block[T]
}

// NewBlocked builds Blocked storage. Tile rows are dealt round-robin to the
// workers; each worker builds whole tile rows, which are assembled into the
// fixed row slice afterwards, so layout never depends on scheduling.
func NewBlocked[T any](size hex.MapSize, init InitFunc[T]) *Blocked[T] {
	s := &Blocked[T]{
		size:       size,
		blocksWide: (size.Width + BlockMask) >> BlockShift,
		blocksHigh: (size.Height + BlockMask) >> BlockShift,
	}
	s.rows = make([][]*block[T], s.blocksHigh)

	n := min(workers(), max(s.blocksHigh, 1))
	built := make([]map[int][]*block[T], n)

	var g errgroup.Group
	for w := range n {
		g.Go(func() error {
			mine := make(map[int][]*block[T])
			for by := w; by < s.blocksHigh; by += n {
				mine[by] = s.buildTileRow(by, init)
			}
			built[w] = mine
			return nil
		})
	}
	_ = g.Wait() // workers never fail

	for _, mine := range built {
		for by, row := range mine {
			s.rows[by] = row
		}
	}
	return s
}

func (s *Blocked[T]) buildTileRow(by int, init InitFunc[T]) []*block[T] {
	row := make([]*block[T], s.blocksWide)
	for bx := range row {
		b := &block[T]{}
		row[bx] = b
		if init == nil {
			continue
		}
		for cy := range BlockSide {
			y := by<<BlockShift | cy
			if y >= s.size.Height {
				break
			}
			for cx := range BlockSide {
				x := bx<<BlockShift | cx
				if x >= s.size.Width {
					break
				}
				if v, ok := init(hex.NewUser(x, y)); ok {
					i := cellIndex(x, y)
					b.items[i] = v
					b.present[i] = true
				}
			}
		}
	}
	return row
}

func (s *Blocked[T]) locate(c hex.HexCoords) (*block[T], int, bool) {
	if !s.size.IsOnBoard(c) {
		return nil, 0, false
	}
	u := c.User()
	return s.rows[u.Y>>BlockShift][u.X>>BlockShift], cellIndex(u.X, u.Y), true
}

// MapSize returns the board extent.
func (s *Blocked[T]) MapSize() hex.MapSize { return s.size }

// Get returns the payload at c.
func (s *Blocked[T]) Get(c hex.HexCoords) (T, bool) {
	b, i, ok := s.locate(c)
	if !ok || !b.present[i] {
		var zero T
		return zero, false
	}
	return b.items[i], true
}

// SetItem replaces the payload at c. Off-board writes are ignored.
func (s *Blocked[T]) SetItem(c hex.HexCoords, v T) {
	if b, i, ok := s.locate(c); ok {
		b.items[i] = v
		b.present[i] = true
	}
}

// ForEach calls fn for every present payload, one tile row per worker task.
func (s *Blocked[T]) ForEach(fn func(c hex.HexCoords, v T)) {
	var g errgroup.Group
	g.SetLimit(workers())
	for by := range s.blocksHigh {
		g.Go(func() error {
			s.forTileRow(by, fn)
			return nil
		})
	}
	_ = g.Wait()
}

// ForEachSerial calls fn for every present payload in row-major board order.
func (s *Blocked[T]) ForEachSerial(fn func(c hex.HexCoords, v T)) {
	for y := range s.size.Height {
		tiles := s.rows[y>>BlockShift]
		for x := range s.size.Width {
			b := tiles[x>>BlockShift]
			if i := cellIndex(x, y); b.present[i] {
				fn(hex.NewUser(x, y), b.items[i])
			}
		}
	}
}

func (s *Blocked[T]) forTileRow(by int, fn func(c hex.HexCoords, v T)) {
	for bx, b := range s.rows[by] {
		for i := range BlockCells {
			if !b.present[i] {
				continue
			}
			x := bx<<BlockShift | i&BlockMask
			y := by<<BlockShift | i>>BlockShift
			fn(hex.NewUser(x, y), b.items[i])
		}
	}
}

// ForAllNeighbours calls fn for each on-board, present neighbour of c.
func (s *Blocked[T]) ForAllNeighbours(c hex.HexCoords, fn func(side hex.Hexside, v T)) {
	forAllNeighbours[T](s, c, fn)
}
