package fov

import (
	"context"
	"errors"

	"golang.org/x/sync/errgroup"

	"github.com/udisondev/hexgrid/internal/hex"
)

var (
	// ErrNilMarker is returned when no visibility callback is supplied.
	ErrNilMarker = errors.New("fov: nil visibility marker")
	// ErrNilSource is returned when no height source is supplied.
	ErrNilSource = errors.New("fov: nil height source")
)

// Source supplies board extent and heights in feet above sea level.
type Source interface {
	MapSize() hex.MapSize
	// ElevationASL is the ground surface of c.
	ElevationASL(c hex.HexCoords) int
	// TerrainHeightASL is the top of whatever blocks sight in c.
	TerrainHeightASL(c hex.HexCoords) int
	// HexsideHeightASL is the top of a feature along hexside s of c, or
	// anything at or below the ground when there is none.
	HexsideHeightASL(c hex.HexCoords, s hex.Hexside) int
}

// Compute marks every hex visible from origin within radius. Each visible
// hex is passed to mark exactly once per dodecant covering it, so mark may
// see a hex more than once and must tolerate concurrent calls unless
// cfg.Serial is set.
func Compute(ctx context.Context, src Source, origin hex.HexCoords, radius, observerHeight int, cfg Config, mark func(hex.HexCoords)) error {
	if mark == nil {
		return ErrNilMarker
	}
	if src == nil {
		return ErrNilSource
	}
	size := src.MapSize()
	if !size.IsOnBoard(origin) {
		return nil
	}
	mark(origin)

	radius = clampRadius(size, origin, radius)
	if radius == 0 {
		return nil
	}

	if cfg.Serial {
		for i := range dodecants {
			s := newSweep(src, cfg, &dodecants[i], origin, radius, observerHeight, mark)
			if err := s.run(ctx); err != nil {
				return err
			}
		}
		return nil
	}

	g, gctx := errgroup.WithContext(ctx)
	for i := range dodecants {
		g.Go(func() error {
			return newSweep(src, cfg, &dodecants[i], origin, radius, observerHeight, mark).run(gctx)
		})
	}
	return g.Wait()
}

// FieldOfView runs Compute into a fresh Mask.
func FieldOfView(ctx context.Context, src Source, origin hex.HexCoords, radius, observerHeight int, cfg Config) (*Mask, error) {
	if src == nil {
		return nil, ErrNilSource
	}
	m := NewMask(src.MapSize())
	if err := Compute(ctx, src, origin, radius, observerHeight, cfg, m.Set); err != nil {
		return nil, err
	}
	return m, nil
}

// clampRadius limits radius to the farthest board corner.
func clampRadius(size hex.MapSize, origin hex.HexCoords, radius int) int {
	if radius <= 0 {
		return 0
	}
	far := 0
	for _, corner := range []hex.HexCoords{
		hex.NewUser(0, 0),
		hex.NewUser(size.Width-1, 0),
		hex.NewUser(0, size.Height-1),
		hex.NewUser(size.Width-1, size.Height-1),
	} {
		far = max(far, hex.Range(origin, corner))
	}
	return min(radius, far)
}

// sweep is the shadow-casting state of one dodecant.
type sweep struct {
	src    Source
	cfg    Config
	d      *dodecant
	origin hex.HexCoords
	size   hex.MapSize
	radius int
	// observer is the observer height above its own ground; eye is the
	// absolute height all slopes are measured from. Both are in cfg units.
	observer int
	eye      int
	mark     func(hex.HexCoords)
	queue    coneQueue
}

func newSweep(src Source, cfg Config, d *dodecant, origin hex.HexCoords, radius, observerHeight int, mark func(hex.HexCoords)) *sweep {
	s := &sweep{
		src:      src,
		cfg:      cfg,
		d:        d,
		origin:   origin,
		size:     src.MapSize(),
		radius:   radius,
		observer: cfg.toUnits(observerHeight),
		mark:     mark,
	}
	s.eye = s.observer
	if cfg.Mode != EqualHeights {
		s.eye += cfg.toUnits(src.ElevationASL(origin))
	}
	return s
}

func (s *sweep) run(ctx context.Context) error {
	s.push(FovCone{Range: 1, VTop: wedgeTop, VBottom: wedgeBottom, RiseRun: negInfinity})
	current := 0
	for {
		cone, ok := s.queue.pop()
		if !ok {
			return nil
		}
		if cone.Range != current {
			if err := ctx.Err(); err != nil {
				return err
			}
			current = cone.Range
		}
		s.process(cone)
	}
}

func (s *sweep) push(c FovCone) {
	if c.Range > s.radius {
		return
	}
	s.queue.push(c)
}

// process walks the hexes of cone from top to bottom, marks the visible ones
// and queues the sub-cones each hex leaves open at the next range.
func (s *sweep) process(cone FovCone) {
	r := cone.Range
	top, bottom := cone.top(), cone.bottom()
	for y := r / 2; y >= 0; y-- {
		lo := hex.IntVector2D{X: 2 * r, Y: 2*y - 1}
		hi := hex.IntVector2D{X: 2 * r, Y: 2*y + 1}
		if !bottom.Less(angle(hi.X, hi.Y)) {
			// Hexes further down are below the cone too.
			return
		}
		if !angle(lo.X, lo.Y).Less(top) {
			continue
		}

		c := s.d.toBoard(s.origin, r, y)
		onBoard := s.size.IsOnBoard(c)
		if onBoard {
			centre := angle(r, y)
			if !centre.Less(bottom) && !top.Less(centre) &&
				!(RiseRun{Rise: s.targetRise(c, r), Run: r}).Less(cone.RiseRun) {
				s.mark(c)
			}
		}

		upper := shallower(hi, cone.VTop)
		lower := steeper(lo, cone.VBottom)
		split := steeper(shallower(hex.IntVector2D{X: 3*r - 2, Y: 3*y - 1}, upper), lower)

		upperRR, lowerRR := cone.RiseRun, cone.RiseRun
		if onBoard {
			upperRR = upperRR.Max(RiseRun{Rise: s.blockRise(c, r, hex.Southwest), Run: r})
			lowerRR = lowerRR.Max(RiseRun{Rise: s.blockRise(c, r, hex.Northwest), Run: r})
		}
		s.push(FovCone{Range: r + 1, VTop: upper, VBottom: split, RiseRun: upperRR})
		s.push(FovCone{Range: r + 1, VTop: split, VBottom: lower, RiseRun: lowerRR})
	}
}

// targetRise is the height of what must be seen in c relative to the eye.
func (s *sweep) targetRise(c hex.HexCoords, r int) int {
	h := s.observer
	switch s.cfg.Mode {
	case TargetZero:
		h = s.cfg.toUnits(s.src.ElevationASL(c))
	case TargetActual:
		h += s.cfg.toUnits(s.src.ElevationASL(c))
	}
	return h - s.eye - s.cfg.curvatureDrop(r)
}

// blockRise is the height of what c blocks relative to the eye, counting the
// given local hexside facing the observer.
func (s *sweep) blockRise(c hex.HexCoords, r int, local hex.Hexside) int {
	h := max(s.src.TerrainHeightASL(c), s.src.HexsideHeightASL(c, s.d.hexside(local)))
	if s.cfg.Mode == EqualHeights {
		h -= s.src.ElevationASL(c)
	}
	return s.cfg.toUnits(h) - s.eye - s.cfg.curvatureDrop(r)
}
