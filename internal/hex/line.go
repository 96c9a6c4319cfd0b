package hex

import "math"

// LineIterator steps hex by hex along the straight line between two hexes,
// start and end inclusive.
type LineIterator struct {
	aq, ar, as float64
	dq, dr, ds float64
	steps      int
	i          int
	current    HexCoords
}

// Line returns an iterator over the hexes from a to b.
func Line(a, b HexCoords) *LineIterator {
	aq, ar := axial(a)
	bq, br := axial(b)
	// Nudge off exact vertex ties so rounding is deterministic.
	const eps = 1e-6
	fa := [3]float64{float64(aq) + eps, float64(ar) + 2*eps, float64(-aq-ar) - 3*eps}
	fb := [3]float64{float64(bq) + eps, float64(br) + 2*eps, float64(-bq-br) - 3*eps}
	return &LineIterator{
		aq: fa[0], ar: fa[1], as: fa[2],
		dq: fb[0] - fa[0], dr: fb[1] - fa[1], ds: fb[2] - fa[2],
		steps: Range(a, b),
		i:     -1,
	}
}

// Next advances to the next hex. Returns false after the end hex.
func (it *LineIterator) Next() bool {
	if it.i >= it.steps {
		return false
	}
	it.i++
	t := 0.0
	if it.steps > 0 {
		t = float64(it.i) / float64(it.steps)
	}
	q, r := cubeRound(it.aq+it.dq*t, it.ar+it.dr*t, it.as+it.ds*t)
	it.current = NewCanon(q, r+q)
	return true
}

// Coords returns the current hex.
func (it *LineIterator) Coords() HexCoords { return it.current }

// Collect drains the iterator into a slice.
func (it *LineIterator) Collect() []HexCoords {
	out := make([]HexCoords, 0, it.steps+1)
	for it.Next() {
		out = append(out, it.current)
	}
	return out
}

// axial converts canonical coordinates to cube axial (q, r); s = -q-r.
func axial(c HexCoords) (q, r int) {
	return c.canon.X, c.canon.Y - c.canon.X
}

func cubeRound(fq, fr, fs float64) (q, r int) {
	rq, rr, rs := math.Round(fq), math.Round(fr), math.Round(fs)
	dq, dr, ds := math.Abs(rq-fq), math.Abs(rr-fr), math.Abs(rs-fs)
	switch {
	case dq > dr && dq > ds:
		rq = -rr - rs
	case dr > ds:
		rr = -rq - rs
	}
	return int(rq), int(rr)
}
