package landmark

import (
	"context"
	"errors"
	"fmt"

	"github.com/udisondev/hexgrid/internal/hex"
)

var (
	// ErrNoLandmarks is returned when no requested landmark lies on the board.
	ErrNoLandmarks = errors.New("landmark: no landmark on board")
	// ErrNilSource is returned when Build is given no graph.
	ErrNilSource = errors.New("landmark: nil graph")
)

// Collection is an immutable set of landmarks built for one board.
type Collection struct {
	size      hex.MapSize
	landmarks []*Landmark
}

// DefaultCoords returns the four corners and the four edge midpoints of a
// board, skipping duplicates on degenerate sizes.
func DefaultCoords(size hex.MapSize) []hex.HexCoords {
	w, h := size.Width-1, size.Height-1
	candidates := []hex.HexCoords{
		hex.NewUser(0, 0),
		hex.NewUser(w/2, 0),
		hex.NewUser(w, 0),
		hex.NewUser(w, h/2),
		hex.NewUser(w, h),
		hex.NewUser(w/2, h),
		hex.NewUser(0, h),
		hex.NewUser(0, h/2),
	}
	out := make([]hex.HexCoords, 0, len(candidates))
	seen := make(map[hex.HexCoords]struct{}, len(candidates))
	for _, c := range candidates {
		if _, dup := seen[c]; dup || !size.IsOnBoard(c) {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	return out
}

// Build computes the distance tables of every on-board hex in coords.
// Off-board and repeated coordinates are skipped. ctx is checked before each
// landmark. A panic raised by g is returned as an error.
func Build(ctx context.Context, g Graph, coords []hex.HexCoords) (c *Collection, err error) {
	if g == nil {
		return nil, ErrNilSource
	}
	defer func() {
		if r := recover(); r != nil {
			c, err = nil, fmt.Errorf("landmark: build panicked: %v", r)
		}
	}()

	size := g.MapSize()
	c = &Collection{size: size}
	seen := make(map[hex.HexCoords]struct{}, len(coords))
	for _, lc := range coords {
		if _, dup := seen[lc]; dup || !size.IsOnBoard(lc) {
			continue
		}
		seen[lc] = struct{}{}
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("landmark: build %v: %w", lc, err)
		}
		c.landmarks = append(c.landmarks, newLandmark(g, lc))
	}
	if len(c.landmarks) == 0 {
		return nil, ErrNoLandmarks
	}
	return c, nil
}

// Len returns the number of landmarks.
func (c *Collection) Len() int { return len(c.landmarks) }

// At returns landmark i.
func (c *Collection) At(i int) *Landmark { return c.landmarks[i] }

// All returns the landmarks in build order.
func (c *Collection) All() []*Landmark { return c.landmarks }

// Heuristic returns a lower bound on the cost of the cheapest path from a to
// b. Every landmark contributes both directed triangle bounds; the result is
// never negative.
func (c *Collection) Heuristic(a, b hex.HexCoords) int {
	best := 0
	for _, l := range c.landmarks {
		if fa, fb := l.HexDistance(a), l.HexDistance(b); fa != Unreachable && fb != Unreachable {
			best = max(best, fb-fa)
		}
		if ta, tb := l.DistanceTo(a), l.DistanceTo(b); ta != Unreachable && tb != Unreachable {
			best = max(best, ta-tb)
		}
	}
	return best
}
