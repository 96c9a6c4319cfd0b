package path

import (
	"container/heap"

	"github.com/udisondev/hexgrid/internal/hex"
)

const unknown = -1

// frontier holds the state of one search direction over board indices.
type frontier struct {
	size   hex.MapSize
	g      []int
	closed []bool
	// parent[v] is the neighbour v was reached from; via[v] the hexside
	// crossed between them in travel direction.
	parent []int
	via    []hex.Hexside
	open   nodeHeap
	seq    int
}

func newFrontier(size hex.MapSize) *frontier {
	n := size.Area()
	f := &frontier{
		size:   size,
		g:      make([]int, n),
		closed: make([]bool, n),
		parent: make([]int, n),
		via:    make([]hex.Hexside, n),
	}
	for i := range n {
		f.g[i] = unknown
		f.parent[i] = unknown
	}
	return f
}

func (f *frontier) index(c hex.HexCoords) int {
	u := c.User()
	return u.Y*f.size.Width + u.X
}

func (f *frontier) coords(i int) hex.HexCoords {
	return hex.NewUser(i%f.size.Width, i/f.size.Width)
}

// relax records a route to i of cost g and queues it when it improves on the
// best known one.
func (f *frontier) relax(i, from int, via hex.Hexside, g, h int) bool {
	if f.closed[i] || (f.g[i] != unknown && f.g[i] <= g) {
		return false
	}
	f.g[i] = g
	f.parent[i] = from
	f.via[i] = via
	f.seq++
	heap.Push(&f.open, &node{index: i, g: g, h: h, f: g + h, seq: f.seq})
	return true
}

// pop returns the cheapest open index that is not yet closed and closes it.
func (f *frontier) pop() (*node, bool) {
	for f.open.Len() > 0 {
		n := heap.Pop(&f.open).(*node)
		if f.closed[n.index] || n.g != f.g[n.index] {
			continue
		}
		f.closed[n.index] = true
		return n, true
	}
	return nil, false
}

// peek returns the smallest key among live open entries.
func (f *frontier) peek() (int, bool) {
	for f.open.Len() > 0 {
		n := f.open[0]
		if f.closed[n.index] || n.g != f.g[n.index] {
			heap.Pop(&f.open)
			continue
		}
		return n.f, true
	}
	return 0, false
}

// node is an entry of the open list.
type node struct {
	index int
	g     int // cost from the search origin
	h     int // heuristic estimate to the search target
	f     int // g + h
	seq   int // discovery order
}

// nodeHeap is a min-heap by f, then h, then discovery order.
type nodeHeap []*node

func (h nodeHeap) Len() int { return len(h) }
func (h nodeHeap) Less(i, j int) bool {
	a, b := h[i], h[j]
	if a.f != b.f {
		return a.f < b.f
	}
	if a.h != b.h {
		return a.h < b.h
	}
	return a.seq < b.seq
}
func (h nodeHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }
func (h *nodeHeap) Push(x any)   { *h = append(*h, x.(*node)) }
func (h *nodeHeap) Pop() any {
	old := *h
	n := len(old)
	nd := old[n-1]
	old[n-1] = nil // GC
	*h = old[:n-1]
	return nd
}
