package landmark

import (
	"container/heap"

	"github.com/udisondev/hexgrid/internal/hex"
)

// Unreachable is the distance reported for hexes no path connects.
const Unreachable = -1

// Graph is the directed step-cost view of a board.
type Graph interface {
	MapSize() hex.MapSize
	// StepCost is the cost of moving from c across hexside s into the
	// neighbouring hex; false when that step is not allowed.
	StepCost(c hex.HexCoords, s hex.Hexside) (int, bool)
}

// Landmark holds exact directed distances between one hex and every hex of
// the board.
type Landmark struct {
	coords hex.HexCoords
	size   hex.MapSize
	from   []int
	to     []int
}

// Coords returns the landmark hex.
func (l *Landmark) Coords() hex.HexCoords { return l.coords }

// HexDistance returns the cheapest path cost from the landmark to c, or
// Unreachable.
func (l *Landmark) HexDistance(c hex.HexCoords) int { return l.lookup(l.from, c) }

// DistanceTo returns the cheapest path cost from c to the landmark, or
// Unreachable.
func (l *Landmark) DistanceTo(c hex.HexCoords) int { return l.lookup(l.to, c) }

func (l *Landmark) lookup(table []int, c hex.HexCoords) int {
	if !l.size.IsOnBoard(c) {
		return Unreachable
	}
	u := c.User()
	return table[u.Y*l.size.Width+u.X]
}

// newLandmark expands the whole board from c in both directions.
func newLandmark(g Graph, c hex.HexCoords) *Landmark {
	size := g.MapSize()
	return &Landmark{
		coords: c,
		size:   size,
		from:   expand(g, c, false),
		to:     expand(g, c, true),
	}
}

// expand runs Dijkstra from source over the whole board. With reverse set it
// follows steps backwards, so the table holds costs into source.
func expand(g Graph, source hex.HexCoords, reverse bool) []int {
	size := g.MapSize()
	dist := make([]int, size.Area())
	for i := range dist {
		dist[i] = Unreachable
	}
	index := func(c hex.HexCoords) int {
		u := c.User()
		return u.Y*size.Width + u.X
	}

	open := &frontier{}
	heap.Push(open, item{coords: source})
	seq := 0
	for open.Len() > 0 {
		cur := heap.Pop(open).(item)
		i := index(cur.coords)
		if dist[i] != Unreachable {
			continue
		}
		dist[i] = cur.cost

		for _, s := range hex.Hexsides {
			n := cur.coords.Neighbour(s)
			if !size.IsOnBoard(n) || dist[index(n)] != Unreachable {
				continue
			}
			var cost int
			var ok bool
			if reverse {
				cost, ok = g.StepCost(n, s.Reversed())
			} else {
				cost, ok = g.StepCost(cur.coords, s)
			}
			if !ok {
				continue
			}
			seq++
			heap.Push(open, item{coords: n, cost: cur.cost + cost, seq: seq})
		}
	}
	return dist
}

type item struct {
	coords hex.HexCoords
	cost   int
	seq    int
}

// frontier is a min-heap by cost, first pushed first.
type frontier []item

func (h frontier) Len() int { return len(h) }
func (h frontier) Less(i, j int) bool {
	if h[i].cost != h[j].cost {
		return h[i].cost < h[j].cost
	}
	return h[i].seq < h[j].seq
}
func (h frontier) Swap(i, j int) { h[i], h[j] = h[j], h[i] }
func (h *frontier) Push(x any)   { *h = append(*h, x.(item)) }
func (h *frontier) Pop() any {
	old := *h
	n := len(old)
	it := old[n-1]
	*h = old[:n-1]
	return it
}
