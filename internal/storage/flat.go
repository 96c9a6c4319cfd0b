package storage

import (
	"golang.org/x/sync/errgroup"

	"github.com/udisondev/hexgrid/internal/hex"
)

// Flat stores payloads in one contiguous row-major slice.
type Flat[T any] struct {
	size    hex.MapSize
	items   []T
	present []bool
}

// NewFlat builds Flat storage, one board row per worker task.
func NewFlat[T any](size hex.MapSize, init InitFunc[T]) *Flat[T] {
	s := &Flat[T]{
		size:    size,
		items:   make([]T, size.Area()),
		present: make([]bool, size.Area()),
	}
	if init == nil {
		return s
	}

	var g errgroup.Group
	g.SetLimit(workers())
	for y := range size.Height {
		g.Go(func() error {
			row := y * size.Width
			for x := range size.Width {
				if v, ok := init(hex.NewUser(x, y)); ok {
					s.items[row+x] = v
					s.present[row+x] = true
				}
			}
			return nil
		})
	}
	_ = g.Wait() // workers never fail
	return s
}

func (s *Flat[T]) index(c hex.HexCoords) (int, bool) {
	if !s.size.IsOnBoard(c) {
		return 0, false
	}
	u := c.User()
	return u.Y*s.size.Width + u.X, true
}

// MapSize returns the board extent.
func (s *Flat[T]) MapSize() hex.MapSize { return s.size }

// Get returns the payload at c.
func (s *Flat[T]) Get(c hex.HexCoords) (T, bool) {
	i, ok := s.index(c)
	if !ok || !s.present[i] {
		var zero T
		return zero, false
	}
	return s.items[i], true
}

// SetItem replaces the payload at c. Off-board writes are ignored.
func (s *Flat[T]) SetItem(c hex.HexCoords, v T) {
	if i, ok := s.index(c); ok {
		s.items[i] = v
		s.present[i] = true
	}
}

// ForEach calls fn for every present payload, one row per worker task.
func (s *Flat[T]) ForEach(fn func(c hex.HexCoords, v T)) {
	var g errgroup.Group
	g.SetLimit(workers())
	for y := range s.size.Height {
		g.Go(func() error {
			s.forRow(y, fn)
			return nil
		})
	}
	_ = g.Wait()
}

// ForEachSerial calls fn for every present payload in row-major order.
func (s *Flat[T]) ForEachSerial(fn func(c hex.HexCoords, v T)) {
	for y := range s.size.Height {
		s.forRow(y, fn)
	}
}

func (s *Flat[T]) forRow(y int, fn func(c hex.HexCoords, v T)) {
	row := y * s.size.Width
	for x := range s.size.Width {
		if s.present[row+x] {
			fn(hex.NewUser(x, y), s.items[row+x])
		}
	}
}

// ForAllNeighbours calls fn for each on-board, present neighbour of c.
func (s *Flat[T]) ForAllNeighbours(c hex.HexCoords, fn func(side hex.Hexside, v T)) {
	forAllNeighbours[T](s, c, fn)
}
