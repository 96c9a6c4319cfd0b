package path

import (
	"fmt"

	"github.com/udisondev/hexgrid/internal/hex"
)

// DefaultRangeCutoff is the hex range up to which the unidirectional search
// is used.
const DefaultRangeCutoff = 20

// Graph is the directed movement view of a board.
type Graph interface {
	MapSize() hex.MapSize
	Passable(c hex.HexCoords) bool
	// StepCost is the cost of moving from c across hexside s into the
	// neighbouring hex; false when that step is not allowed.
	StepCost(c hex.HexCoords, s hex.Hexside) (int, bool)
}

// Heuristic returns a lower bound on the cost from a to b.
type Heuristic interface {
	Heuristic(a, b hex.HexCoords) int
}

// Config tunes a search.
type Config struct {
	// RangeCutoff selects the bidirectional landmark search for endpoints
	// further apart than this.
	RangeCutoff int
	// MinStepCost is a lower bound on every step cost; the distance
	// heuristic is range times this value.
	MinStepCost int
}

// DefaultConfig returns the default cutoff and a unit minimum step cost.
func DefaultConfig() Config {
	return Config{RangeCutoff: DefaultRangeCutoff, MinStepCost: 1}
}

// Strategy names the search algorithm that answered a query.
type Strategy uint8

const (
	// Trivial answers start == goal and impassable endpoints.
	Trivial Strategy = iota
	// Unidirectional is A* with the range heuristic.
	Unidirectional
	// Bidirectional is a two-sided A* with the landmark heuristic.
	Bidirectional
)

func (s Strategy) String() string {
	switch s {
	case Trivial:
		return "trivial"
	case Unidirectional:
		return "unidirectional"
	case Bidirectional:
		return "bidirectional"
	}
	return fmt.Sprintf("Strategy(%d)", s)
}

// Result describes a finished search. Path is nil when no path exists.
type Result struct {
	Path     *DirectedPath
	Strategy Strategy
	Expanded int
}

// Find returns the cheapest path from start to goal. It reports false when
// an endpoint is off the board or impassable, or when the goal cannot be
// reached. start == goal yields a single zero-cost step.
func Find(g Graph, landmarks Heuristic, start, goal hex.HexCoords, cfg Config) (*DirectedPath, bool) {
	r := Search(g, landmarks, start, goal, cfg)
	return r.Path, r.Path != nil
}

// Search is Find reporting which strategy ran and how many hexes it
// expanded. Searches within cfg.RangeCutoff use the range bound alone;
// landmarks only guide the bidirectional search and may be nil.
func Search(g Graph, landmarks Heuristic, start, goal hex.HexCoords, cfg Config) Result {
	size := g.MapSize()
	if !size.IsOnBoard(start) || !size.IsOnBoard(goal) || !g.Passable(start) || !g.Passable(goal) {
		return Result{Strategy: Trivial}
	}
	if start == goal {
		return Result{Path: goalStep(goal), Strategy: Trivial}
	}

	est := estimator{minStep: max(cfg.MinStepCost, 0)}
	if start.Range(goal) <= cfg.RangeCutoff {
		return astar(g, est, start, goal)
	}
	est.landmarks = landmarks
	return bidirectional(g, est, start, goal)
}

// estimator combines the range bound with the landmark bound, when set.
type estimator struct {
	minStep   int
	landmarks Heuristic
}

func (e estimator) estimate(a, b hex.HexCoords) int {
	h := a.Range(b) * e.minStep
	if e.landmarks != nil {
		h = max(h, e.landmarks.Heuristic(a, b))
	}
	return h
}

// astar searches forward from start.
func astar(g Graph, est estimator, start, goal hex.HexCoords) Result {
	res := Result{Strategy: Unidirectional}
	fwd := newFrontier(g.MapSize())
	target := fwd.index(goal)
	fwd.relax(fwd.index(start), unknown, hex.HexsideNone, 0, est.estimate(start, goal))

	for {
		cur, ok := fwd.pop()
		if !ok {
			return res
		}
		res.Expanded++
		if cur.index == target {
			res.Path = fwd.trace(target, goalStep(goal))
			return res
		}
		c := fwd.coords(cur.index)
		for _, s := range hex.Hexsides {
			n := c.Neighbour(s)
			if !fwd.size.IsOnBoard(n) {
				continue
			}
			cost, ok := g.StepCost(c, s)
			if !ok {
				continue
			}
			fwd.relax(fwd.index(n), cur.index, s, cur.g+cost, est.estimate(n, goal))
		}
	}
}

// bidirectional alternates a forward search from start and a backward search
// from goal, each guided by its own consistent bound, and stops once either
// side can no longer beat the best meeting found.
func bidirectional(g Graph, est estimator, start, goal hex.HexCoords) Result {
	res := Result{Strategy: Bidirectional}
	size := g.MapSize()
	fwd, bwd := newFrontier(size), newFrontier(size)
	fwd.relax(fwd.index(start), unknown, hex.HexsideNone, 0, est.estimate(start, goal))
	bwd.relax(bwd.index(goal), unknown, hex.HexsideNone, 0, est.estimate(start, goal))

	best, meet := unknown, unknown
	meeting := func(i int) {
		if fwd.g[i] == unknown || bwd.g[i] == unknown {
			return
		}
		if total := fwd.g[i] + bwd.g[i]; best == unknown || total < best {
			best, meet = total, i
		}
	}

	for {
		fk, fok := fwd.peek()
		bk, bok := bwd.peek()
		if !fok || !bok {
			break
		}
		if best != unknown && (fk >= best || bk >= best) {
			break
		}

		if fwd.open.Len() <= bwd.open.Len() {
			cur, _ := fwd.pop()
			res.Expanded++
			c := fwd.coords(cur.index)
			for _, s := range hex.Hexsides {
				n := c.Neighbour(s)
				if !size.IsOnBoard(n) {
					continue
				}
				cost, ok := g.StepCost(c, s)
				if !ok {
					continue
				}
				i := fwd.index(n)
				if fwd.relax(i, cur.index, s, cur.g+cost, est.estimate(n, goal)) {
					meeting(i)
				}
			}
			continue
		}

		cur, _ := bwd.pop()
		res.Expanded++
		c := bwd.coords(cur.index)
		for _, s := range hex.Hexsides {
			p := c.Neighbour(s)
			if !size.IsOnBoard(p) {
				continue
			}
			exit := s.Reversed()
			cost, ok := g.StepCost(p, exit)
			if !ok {
				continue
			}
			i := bwd.index(p)
			if bwd.relax(i, cur.index, exit, cur.g+cost, est.estimate(start, p)) {
				meeting(i)
			}
		}
	}

	if meet == unknown {
		return res
	}
	tail := goalStep(goal)
	var chain []int
	for i := meet; i != bwd.index(goal); i = bwd.parent[i] {
		chain = append(chain, i)
	}
	for k := len(chain) - 1; k >= 0; k-- {
		i := chain[k]
		tail = prepend(bwd.coords(i), bwd.via[i], bwd.g[i]-bwd.g[bwd.parent[i]], tail)
	}
	res.Path = fwd.trace(meet, tail)
	return res
}

// trace prepends the forward route ending at index i to tail, whose head
// must be the hex at i.
func (f *frontier) trace(i int, tail *DirectedPath) *DirectedPath {
	p := tail
	for f.parent[i] != unknown {
		from := f.parent[i]
		p = prepend(f.coords(from), f.via[i], f.g[i]-f.g[from], p)
		i = from
	}
	return p
}
