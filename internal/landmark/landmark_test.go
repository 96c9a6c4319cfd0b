package landmark

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/hexgrid/internal/hex"
)

// grid is a Graph with a per-hex entry cost; zero cost hexes are impassable.
// Stepping North costs uphill extra. A symmetric grid charges both ends of a
// step so that every path costs the same both ways.
type grid struct {
	size      hex.MapSize
	cost      map[hex.HexCoords]int
	uniform   int
	uphill    int
	symmetric bool
}

func newGrid(w, h, uniform int) *grid {
	return &grid{size: hex.MapSize{Width: w, Height: h}, cost: map[hex.HexCoords]int{}, uniform: uniform}
}

func (g *grid) MapSize() hex.MapSize { return g.size }

func (g *grid) weight(c hex.HexCoords) int {
	if v, ok := g.cost[c]; ok {
		return v
	}
	return g.uniform
}

func (g *grid) StepCost(c hex.HexCoords, s hex.Hexside) (int, bool) {
	n := c.Neighbour(s)
	if !g.size.IsOnBoard(c) || !g.size.IsOnBoard(n) {
		return 0, false
	}
	cost := g.weight(n)
	if cost == 0 {
		return 0, false
	}
	if g.symmetric {
		if g.weight(c) == 0 {
			return 0, false
		}
		cost += g.weight(c)
	}
	if s == hex.North {
		cost += g.uphill
	}
	return cost, true
}

// shortest is an independent Bellman-Ford reference.
func shortest(g Graph, from hex.HexCoords) map[hex.HexCoords]int {
	size := g.MapSize()
	dist := map[hex.HexCoords]int{from: 0}
	for changed := true; changed; {
		changed = false
		for x := range size.Width {
			for y := range size.Height {
				c := hex.NewUser(x, y)
				d, ok := dist[c]
				if !ok {
					continue
				}
				for _, s := range hex.Hexsides {
					cost, ok := g.StepCost(c, s)
					if !ok {
						continue
					}
					n := c.Neighbour(s)
					if old, seen := dist[n]; !seen || d+cost < old {
						dist[n] = d + cost
						changed = true
					}
				}
			}
		}
	}
	return dist
}

func allHexes(size hex.MapSize) []hex.HexCoords {
	out := make([]hex.HexCoords, 0, size.Area())
	for y := range size.Height {
		for x := range size.Width {
			out = append(out, hex.NewUser(x, y))
		}
	}
	return out
}

func TestDefaultCoords(t *testing.T) {
	tests := []struct {
		name string
		size hex.MapSize
		want int
	}{
		{"square", hex.MapSize{Width: 5, Height: 5}, 8},
		{"wide", hex.MapSize{Width: 40, Height: 3}, 8},
		{"single row", hex.MapSize{Width: 5, Height: 1}, 3},
		{"single hex", hex.MapSize{Width: 1, Height: 1}, 1},
		{"empty", hex.MapSize{}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			coords := DefaultCoords(tt.size)
			assert.Len(t, coords, tt.want)
			for _, c := range coords {
				assert.True(t, tt.size.IsOnBoard(c))
			}
		})
	}
}

func TestHexDistanceOnOpenBoard(t *testing.T) {
	g := newGrid(9, 7, 4)
	coll, err := Build(context.Background(), g, DefaultCoords(g.size))
	require.NoError(t, err)
	require.Equal(t, 8, coll.Len())

	for _, l := range coll.All() {
		for _, c := range allHexes(g.size) {
			want := 4 * l.Coords().Range(c)
			assert.Equal(t, want, l.HexDistance(c), "%v to %v", l.Coords(), c)
			assert.Equal(t, want, l.DistanceTo(c), "%v from %v", l.Coords(), c)
		}
	}
	assert.Equal(t, Unreachable, coll.At(0).HexDistance(hex.NewUser(-1, 0)))
}

func TestDirectedTablesMatchReference(t *testing.T) {
	g := newGrid(8, 8, 3)
	g.uphill = 5
	for y := 1; y < 7; y++ {
		g.cost[hex.NewUser(4, y)] = 0
	}
	g.cost[hex.NewUser(2, 2)] = 9

	l := newLandmark(g, hex.NewUser(0, 0))
	from := shortest(g, l.Coords())
	for _, c := range allHexes(g.size) {
		want, ok := from[c]
		if !ok {
			want = Unreachable
		}
		assert.Equal(t, want, l.HexDistance(c), "to %v", c)

		back, ok := shortest(g, c)[l.Coords()]
		if !ok {
			back = Unreachable
		}
		assert.Equal(t, back, l.DistanceTo(c), "from %v", c)
	}
}

func TestTriangleInequality(t *testing.T) {
	g := newGrid(7, 6, 2)
	g.symmetric = true
	g.cost[hex.NewUser(3, 2)] = 0
	g.cost[hex.NewUser(3, 3)] = 7
	g.cost[hex.NewUser(1, 4)] = 5

	coll, err := Build(context.Background(), g, DefaultCoords(g.size))
	require.NoError(t, err)

	hexes := allHexes(g.size)
	for _, a := range hexes {
		truth := shortest(g, a)
		for _, b := range hexes {
			cost, ok := truth[b]
			if !ok {
				continue
			}
			for _, l := range coll.All() {
				da, db := l.HexDistance(a), l.HexDistance(b)
				if da == Unreachable || db == Unreachable {
					continue
				}
				assert.LessOrEqual(t, abs(da-db), cost, "landmark %v, %v to %v", l.Coords(), a, b)
			}
			assert.LessOrEqual(t, coll.Heuristic(a, b), cost, "%v to %v", a, b)
		}
	}
}

func TestHeuristicWithAsymmetricCosts(t *testing.T) {
	g := newGrid(6, 9, 1)
	g.uphill = 10

	coll, err := Build(context.Background(), g, DefaultCoords(g.size))
	require.NoError(t, err)

	hexes := allHexes(g.size)
	for _, a := range hexes {
		truth := shortest(g, a)
		for _, b := range hexes {
			h := coll.Heuristic(a, b)
			assert.GreaterOrEqual(t, h, 0)
			assert.LessOrEqual(t, h, truth[b], "%v to %v", a, b)
		}
	}
	bottom, top := hex.NewUser(2, 8), hex.NewUser(2, 0)
	assert.Greater(t, coll.Heuristic(bottom, top), coll.Heuristic(top, bottom))
}

type panicky struct{ *grid }

func (p panicky) StepCost(c hex.HexCoords, s hex.Hexside) (int, bool) {
	if c == hex.NewUser(2, 2) {
		panic("terrain lookup failed")
	}
	return p.grid.StepCost(c, s)
}

func TestBuildFailures(t *testing.T) {
	g := newGrid(5, 5, 1)

	t.Run("nil graph", func(t *testing.T) {
		_, err := Build(context.Background(), nil, DefaultCoords(g.size))
		assert.ErrorIs(t, err, ErrNilSource)
	})

	t.Run("no landmark on board", func(t *testing.T) {
		_, err := Build(context.Background(), g, []hex.HexCoords{hex.NewUser(9, 9), hex.NewUser(-1, 0)})
		assert.ErrorIs(t, err, ErrNoLandmarks)
	})

	t.Run("duplicates collapse", func(t *testing.T) {
		c, err := Build(context.Background(), g, []hex.HexCoords{hex.NewUser(0, 0), hex.NewUser(0, 0), hex.NewUser(9, 9)})
		require.NoError(t, err)
		assert.Equal(t, 1, c.Len())
	})

	t.Run("cancelled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := Build(ctx, g, DefaultCoords(g.size))
		assert.ErrorIs(t, err, context.Canceled)
	})

	t.Run("panic is returned", func(t *testing.T) {
		c, err := Build(context.Background(), panicky{g}, DefaultCoords(g.size))
		require.Error(t, err)
		assert.Nil(t, c)
		assert.Contains(t, err.Error(), "terrain lookup failed")
	})
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func BenchmarkBuild(b *testing.B) {
	g := newGrid(64, 64, 4)
	coords := DefaultCoords(g.size)
	for b.Loop() {
		_, _ = Build(context.Background(), g, coords)
	}
}
