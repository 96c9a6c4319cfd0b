package fov

import (
	"fmt"

	"github.com/udisondev/hexgrid/internal/hex"
)

// FovCone is a wedge of dodecant zero still to be swept at Range. VTop and
// VBottom are local vectors bounding it by angle; RiseRun is the minimum
// elevation slope a target needs to be seen through the wedge.
type FovCone struct {
	Range   int
	VTop    hex.IntVector2D
	VBottom hex.IntVector2D
	RiseRun RiseRun
}

func (c FovCone) top() RiseRun    { return angle(c.VTop.X, c.VTop.Y) }
func (c FovCone) bottom() RiseRun { return angle(c.VBottom.X, c.VBottom.Y) }

// empty reports a wedge of zero width.
func (c FovCone) empty() bool { return !c.bottom().Less(c.top()) }

func (c FovCone) String() string {
	return fmt.Sprintf("Y: (%d, %v-%v, %v)", c.Range, c.VTop, c.VBottom, c.RiseRun)
}

// coneQueue is the FIFO of pending cones of one dodecant. Cones arrive
// ordered by range and, within a range, from top to bottom.
type coneQueue struct {
	items []FovCone
	head  int
}

// push appends c, widening the last queued cone instead when both share a
// range and a RiseRun and touch. The merge is exact.
func (q *coneQueue) push(c FovCone) {
	if c.empty() {
		return
	}
	if n := len(q.items); n > q.head {
		last := &q.items[n-1]
		if last.Range == c.Range && last.RiseRun.Equal(c.RiseRun) && last.bottom().Equal(c.top()) {
			last.VBottom = c.VBottom
			return
		}
	}
	q.items = append(q.items, c)
}

// pop removes the oldest cone.
func (q *coneQueue) pop() (FovCone, bool) {
	if q.head >= len(q.items) {
		return FovCone{}, false
	}
	c := q.items[q.head]
	q.head++
	if q.head == len(q.items) {
		q.items = q.items[:0]
		q.head = 0
	}
	return c, true
}

func (q *coneQueue) len() int { return len(q.items) - q.head }

// steeper returns whichever of a and b lies at the larger angle.
func steeper(a, b hex.IntVector2D) hex.IntVector2D {
	if angle(a.X, a.Y).Less(angle(b.X, b.Y)) {
		return b
	}
	return a
}

// shallower returns whichever of a and b lies at the smaller angle.
func shallower(a, b hex.IntVector2D) hex.IntVector2D {
	if angle(b.X, b.Y).Less(angle(a.X, a.Y)) {
		return b
	}
	return a
}
