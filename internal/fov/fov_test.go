package fov

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/hexgrid/internal/hex"
)

// heights is an in-memory Source. Unset hexes sit at sea level with nothing
// on them.
type heights struct {
	size    hex.MapSize
	ground  map[hex.HexCoords]int
	terrain map[hex.HexCoords]int
	sides   map[hex.HexCoords]map[hex.Hexside]int
}

func newHeights(w, h int) *heights {
	return &heights{
		size:    hex.MapSize{Width: w, Height: h},
		ground:  map[hex.HexCoords]int{},
		terrain: map[hex.HexCoords]int{},
		sides:   map[hex.HexCoords]map[hex.Hexside]int{},
	}
}

func (h *heights) MapSize() hex.MapSize { return h.size }

func (h *heights) ElevationASL(c hex.HexCoords) int { return h.ground[c] }

func (h *heights) TerrainHeightASL(c hex.HexCoords) int { return h.ground[c] + h.terrain[c] }

func (h *heights) HexsideHeightASL(c hex.HexCoords, s hex.Hexside) int {
	return h.ground[c] + h.sides[c][s]
}

func (h *heights) setSide(c hex.HexCoords, s hex.Hexside, height int) {
	if h.sides[c] == nil {
		h.sides[c] = map[hex.Hexside]int{}
	}
	h.sides[c][s] = height
}

// rolling fills the board with a deterministic pattern of hills and woods.
func rolling(w, h int) *heights {
	src := newHeights(w, h)
	for x := range w {
		for y := range h {
			c := hex.NewUser(x, y)
			src.ground[c] = (x*7 + y*13) % 5 * 10
			if (x*31+y*17)%11 == 0 {
				src.terrain[c] = 40
			}
		}
	}
	return src
}

func fieldOfView(t *testing.T, src Source, origin hex.HexCoords, radius, observer int, cfg Config) *Mask {
	t.Helper()
	m, err := FieldOfView(context.Background(), src, origin, radius, observer, cfg)
	require.NoError(t, err)
	return m
}

func TestRiseRunCompare(t *testing.T) {
	tests := []struct {
		name string
		a, b RiseRun
		want int
	}{
		{"equal fractions", RiseRun{1, 2}, RiseRun{2, 4}, 0},
		{"shallower", RiseRun{1, 3}, RiseRun{1, 2}, -1},
		{"steeper", RiseRun{3, 4}, RiseRun{2, 3}, 1},
		{"negative", RiseRun{-5, 2}, RiseRun{-2, 1}, -1},
		{"zero", RiseRun{0, 7}, RiseRun{0, 1}, 0},
		{"negative infinity", negInfinity, RiseRun{-1000000, 1}, -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.a.Compare(tt.b))
			assert.Equal(t, -tt.want, tt.b.Compare(tt.a))
		})
	}
	assert.Equal(t, RiseRun{3, 4}, RiseRun{3, 4}.Max(RiseRun{1, 2}))
	assert.Equal(t, RiseRun{3, 4}, RiseRun{1, 2}.Max(RiseRun{3, 4}))
}

func TestDodecantsCoverEveryDirection(t *testing.T) {
	for i := range DodecantCount {
		_, ok := Matrix(i).Inverse()
		require.True(t, ok, "dodecant %d", i)
	}

	origin := hex.NewCanon(0, 0)
	for x := -6; x <= 6; x++ {
		for y := -6; y <= 6; y++ {
			v := hex.IntVector2D{X: x, Y: y}
			target := origin.Translate(v)
			covered := 0
			for i := range DodecantCount {
				inv, _ := Matrix(i).Inverse()
				local := v.Transform(inv)
				if local.Y < 0 || 2*local.Y > local.X {
					continue
				}
				covered++
				assert.Equal(t, origin.Range(target), local.X, "dodecant %d keeps range of %v", i, v)
				assert.Equal(t, target, dodecants[i].toBoard(origin, local.X, local.Y))
			}
			assert.GreaterOrEqual(t, covered, 1, "%v is in no dodecant", v)
		}
	}
}

func TestDodecantHexsidesFollowMatrix(t *testing.T) {
	for i := range DodecantCount {
		d := dodecants[i]
		seen := hex.HexsideFlags(0)
		for _, s := range hex.Hexsides {
			mapped := d.hexside(s)
			assert.Equal(t, s.Vector().Transform(d.matrix), mapped.Vector())
			seen = seen.With(mapped)
		}
		assert.Equal(t, hex.AllHexsides, seen, "dodecant %d", i)
	}
}

func TestConeQueueMerge(t *testing.T) {
	var q coneQueue
	rr := RiseRun{-1, 2}

	q.push(FovCone{Range: 2, VTop: hex.IntVector2D{X: 2, Y: 1}, VBottom: hex.IntVector2D{X: 4, Y: 1}, RiseRun: rr})
	q.push(FovCone{Range: 2, VTop: hex.IntVector2D{X: 8, Y: 2}, VBottom: hex.IntVector2D{X: 1, Y: 0}, RiseRun: rr})
	assert.Equal(t, 1, q.len(), "touching cones with equal slope merge")

	q.push(FovCone{Range: 3, VTop: hex.IntVector2D{X: 2, Y: 1}, VBottom: hex.IntVector2D{X: 1, Y: 0}, RiseRun: rr})
	assert.Equal(t, 2, q.len(), "different range")

	q.push(FovCone{Range: 3, VTop: hex.IntVector2D{X: 1, Y: 0}, VBottom: hex.IntVector2D{X: 2, Y: 1}, RiseRun: rr})
	assert.Equal(t, 2, q.len(), "empty cone is dropped")

	c, ok := q.pop()
	require.True(t, ok)
	assert.Equal(t, 2, c.Range)
	assert.Equal(t, hex.IntVector2D{X: 2, Y: 1}, c.VTop)
	assert.Equal(t, hex.IntVector2D{X: 1, Y: 0}, c.VBottom)

	c, ok = q.pop()
	require.True(t, ok)
	assert.Equal(t, 3, c.Range)

	_, ok = q.pop()
	assert.False(t, ok)
}

func TestOriginAlwaysVisible(t *testing.T) {
	src := rolling(9, 9)
	for _, radius := range []int{-1, 0, 1, 4} {
		for _, mode := range []TargetMode{TargetZero, TargetActual, EqualHeights} {
			cfg := DefaultConfig()
			cfg.Mode = mode
			m := fieldOfView(t, src, hex.NewUser(4, 4), radius, 6, cfg)
			assert.True(t, m.IsVisible(hex.NewUser(4, 4)), "radius %d mode %v", radius, mode)
			if radius <= 0 {
				assert.Equal(t, 1, m.Count())
			}
		}
	}
}

func TestOpenBoard(t *testing.T) {
	src := newHeights(5, 5)
	centre := hex.NewUser(2, 2)

	t.Run("radius reaching every corner sees everything", func(t *testing.T) {
		m := fieldOfView(t, src, centre, 3, 6, DefaultConfig())
		assert.Equal(t, 25, m.Count(), "\n%s", m)
	})

	t.Run("radius is a hard range cutoff", func(t *testing.T) {
		m := fieldOfView(t, src, centre, 2, 6, DefaultConfig())
		for x := range 5 {
			for y := range 5 {
				c := hex.NewUser(x, y)
				assert.Equal(t, centre.Range(c) <= 2, m.IsVisible(c), "%v", c)
			}
		}
	})

	t.Run("ground level observer", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Mode = TargetZero
		m := fieldOfView(t, src, centre, 10, 0, cfg)
		assert.Equal(t, 25, m.Count(), "\n%s", m)
	})
}

func TestWallOccludesOnlyWhatIsBehindIt(t *testing.T) {
	origin := hex.NewUser(4, 8)
	north := hex.North.Vector()
	wall := origin.Translate(north.Scale(2))
	behind := origin.Translate(north.Scale(4))
	left := origin.Translate(hex.IntVector2D{X: -1, Y: -4})
	right := origin.Translate(hex.IntVector2D{X: 1, Y: -3})
	require.Equal(t, 4, origin.Range(left))
	require.Equal(t, 4, origin.Range(right))

	src := newHeights(9, 10)
	before := fieldOfView(t, src, origin, 6, 6, DefaultConfig())
	assert.True(t, before.IsVisible(behind))

	src.terrain[wall] = 100
	after := fieldOfView(t, src, origin, 6, 6, DefaultConfig())
	assert.True(t, after.IsVisible(wall))
	assert.False(t, after.IsVisible(behind), "\n%s", after)
	assert.True(t, after.IsVisible(left), "\n%s", after)
	assert.True(t, after.IsVisible(right), "\n%s", after)
}

func TestHexsideFeatureBlocks(t *testing.T) {
	origin := hex.NewUser(4, 8)
	near := origin.Translate(hex.North.Vector())
	behind := origin.Translate(hex.North.Vector().Scale(3))

	src := newHeights(9, 10)
	src.setSide(near, hex.South, 100)
	m := fieldOfView(t, src, origin, 6, 6, DefaultConfig())
	assert.True(t, m.IsVisible(near))
	assert.False(t, m.IsVisible(behind), "\n%s", m)

	src = newHeights(9, 10)
	src.setSide(near, hex.North, 0)
	m = fieldOfView(t, src, origin, 6, 6, DefaultConfig())
	assert.True(t, m.IsVisible(behind))
}

func TestRaisingTerrainOnlyHides(t *testing.T) {
	origin := hex.NewUser(10, 10)
	bearing := hex.Line(origin, hex.NewUser(19, 3)).Collect()
	require.Greater(t, len(bearing), 4)

	for _, blocker := range bearing[1 : len(bearing)-1] {
		src := rolling(20, 20)
		base := fieldOfView(t, src, origin, 12, 6, DefaultConfig())

		src.terrain[blocker] += 200
		raised := fieldOfView(t, src, origin, 12, 6, DefaultConfig())

		for x := range 20 {
			for y := range 20 {
				c := hex.NewUser(x, y)
				if raised.IsVisible(c) {
					assert.True(t, base.IsVisible(c), "raising %v revealed %v", blocker, c)
				}
			}
		}
		assert.LessOrEqual(t, raised.Count(), base.Count())
	}
}

func TestSerialAndParallelAgree(t *testing.T) {
	src := rolling(40, 36)
	for _, mode := range []TargetMode{TargetZero, TargetActual, EqualHeights} {
		for _, origin := range []hex.HexCoords{hex.NewUser(0, 0), hex.NewUser(17, 20), hex.NewUser(39, 35)} {
			cfg := DefaultConfig()
			cfg.Mode = mode
			cfg.HexesPerMile = 4
			parallel := fieldOfView(t, src, origin, 30, 6, cfg)

			cfg.Serial = true
			serial := fieldOfView(t, src, origin, 30, 6, cfg)
			again := fieldOfView(t, src, origin, 30, 6, cfg)

			assert.True(t, parallel.Equal(serial), "mode %v origin %v", mode, origin)
			assert.Equal(t, serial.Bytes(), again.Bytes())
		}
	}
}

func TestCurvatureHidesDistantGround(t *testing.T) {
	src := newHeights(30, 30)
	origin := hex.NewUser(0, 15)
	far := hex.NewUser(20, 15)
	require.Equal(t, 20, origin.Range(far))

	cfg := DefaultConfig()
	cfg.Mode = TargetZero
	flat := fieldOfView(t, src, origin, 30, 6, cfg)
	assert.True(t, flat.IsVisible(far))

	cfg.HexesPerMile = 1
	curved := fieldOfView(t, src, origin, 30, 6, cfg)
	assert.False(t, curved.IsVisible(far))
	assert.True(t, curved.IsVisible(origin.Neighbour(hex.Northeast)))
	assert.Less(t, curved.Count(), flat.Count())
}

func TestTargetModes(t *testing.T) {
	origin := hex.NewUser(4, 8)
	north := hex.North.Vector()
	hill := origin.Translate(north.Scale(2))
	behind := origin.Translate(north.Scale(4))

	src := newHeights(9, 10)
	src.ground[hill] = 100

	tests := []struct {
		mode TargetMode
		want bool
	}{
		{TargetZero, false},
		{TargetActual, false},
		{EqualHeights, true},
	}
	for _, tt := range tests {
		t.Run(tt.mode.String(), func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.Mode = tt.mode
			m := fieldOfView(t, src, origin, 6, 6, cfg)
			assert.Equal(t, tt.want, m.IsVisible(behind), "\n%s", m)
			assert.True(t, m.IsVisible(hill))
		})
	}
}

func TestMetricUnits(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Units = Metric
	assert.Equal(t, 18, cfg.toUnits(6))
	assert.Equal(t, 305, cfg.toUnits(100))

	src := newHeights(7, 7)
	m := fieldOfView(t, src, hex.NewUser(3, 3), 5, 6, cfg)
	assert.Equal(t, 49, m.Count())

	wall := hex.NewUser(3, 3).Translate(hex.North.Vector().Scale(1))
	src.terrain[wall] = 100
	m = fieldOfView(t, src, hex.NewUser(3, 3), 5, 6, cfg)
	assert.False(t, m.IsVisible(hex.NewUser(3, 3).Translate(hex.North.Vector().Scale(3))))
}

func TestComputeContract(t *testing.T) {
	src := newHeights(5, 5)

	t.Run("nil marker", func(t *testing.T) {
		err := Compute(context.Background(), src, hex.NewUser(2, 2), 3, 6, DefaultConfig(), nil)
		assert.ErrorIs(t, err, ErrNilMarker)
	})

	t.Run("nil source", func(t *testing.T) {
		_, err := FieldOfView(context.Background(), nil, hex.NewUser(2, 2), 3, 6, DefaultConfig())
		assert.ErrorIs(t, err, ErrNilSource)
	})

	t.Run("off-board origin", func(t *testing.T) {
		calls := 0
		err := Compute(context.Background(), src, hex.NewUser(7, 2), 3, 6, DefaultConfig(), func(hex.HexCoords) { calls++ })
		require.NoError(t, err)
		assert.Zero(t, calls)
	})

	t.Run("cancelled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		for _, serial := range []bool{true, false} {
			cfg := DefaultConfig()
			cfg.Serial = serial
			var mu sync.Mutex
			var seen []hex.HexCoords
			err := Compute(ctx, src, hex.NewUser(2, 2), 3, 6, cfg, func(c hex.HexCoords) {
				mu.Lock()
				seen = append(seen, c)
				mu.Unlock()
			})
			assert.ErrorIs(t, err, context.Canceled)
			assert.Equal(t, []hex.HexCoords{hex.NewUser(2, 2)}, seen)
		}
	})
}

func TestParseConfigValues(t *testing.T) {
	m, err := ParseTargetMode("equal")
	require.NoError(t, err)
	assert.Equal(t, EqualHeights, m)

	_, err = ParseTargetMode("sideways")
	assert.Error(t, err)

	u, err := ParseUnits("metric")
	require.NoError(t, err)
	assert.Equal(t, Metric, u)

	_, err = ParseUnits("cubits")
	assert.Error(t, err)
}

func BenchmarkFieldOfView(b *testing.B) {
	src := rolling(64, 64)
	origin := hex.NewUser(32, 32)
	cfg := DefaultConfig()
	for b.Loop() {
		_, _ = FieldOfView(context.Background(), src, origin, 40, 6, cfg)
	}
}
