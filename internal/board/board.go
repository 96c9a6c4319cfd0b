package board

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/udisondev/hexgrid/internal/fov"
	"github.com/udisondev/hexgrid/internal/hex"
	"github.com/udisondev/hexgrid/internal/landmark"
	"github.com/udisondev/hexgrid/internal/metrics"
	"github.com/udisondev/hexgrid/internal/path"
	"github.com/udisondev/hexgrid/internal/storage"
)

// Elevation model defaults, in feet.
const (
	DefaultElevationBase = 0
	DefaultElevationStep = 10
	DefaultHeightOfMan   = 6
)

// Board is a rectangular hex map with cached terrain data. It is safe for
// concurrent queries; landmark resets replace the collection atomically.
type Board struct {
	size  hex.MapSize
	hexes storage.Storage[Hex]

	elevationBase int
	elevationStep int
	heightOfMan   int
	threshold     int

	fovCfg  fov.Config
	pathCfg path.Config

	landmarkCoords []hex.HexCoords
	landmarks      atomic.Pointer[landmark.Collection]
	backgroundLM   bool

	resetMu   sync.Mutex
	mu        sync.Mutex // guards listeners
	listeners []func(LandmarkResult)

	logger  *slog.Logger
	metrics *metrics.Collector
}

// Option configures a Board.
type Option func(*Board)

// WithLogger sets the logger; nil keeps slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(b *Board) {
		if l != nil {
			b.logger = l
		}
	}
}

// WithMetrics records computations into c.
func WithMetrics(c *metrics.Collector) Option {
	return func(b *Board) { b.metrics = c }
}

// WithFOVConfig sets units, serial mode and curvature for fields of view.
// The target mode is chosen per query.
func WithFOVConfig(cfg fov.Config) Option {
	return func(b *Board) { b.fovCfg = cfg }
}

// WithPathConfig sets the range cutoff of path searches. The minimum step
// cost is always derived from the board.
func WithPathConfig(cfg path.Config) Option {
	return func(b *Board) { b.pathCfg = cfg }
}

// WithLandmarks replaces the default landmark hexes.
func WithLandmarks(coords []hex.HexCoords) Option {
	return func(b *Board) { b.landmarkCoords = coords }
}

// WithLandmarksReady registers fn as with OnLandmarksReady before New starts
// the first reset, so a background build is never missed.
func WithLandmarksReady(fn func(LandmarkResult)) Option {
	return func(b *Board) { b.listeners = append(b.listeners, fn) }
}

// WithBackgroundLandmarks makes New start the first landmark reset in the
// background instead of waiting for it.
func WithBackgroundLandmarks() Option {
	return func(b *Board) { b.backgroundLM = true }
}

// WithElevation sets the sea-level offset of level zero, the height of one
// elevation level and the default observer height, all in feet.
func WithElevation(base, step, heightOfMan int) Option {
	return func(b *Board) {
		b.elevationBase, b.elevationStep, b.heightOfMan = base, step, heightOfMan
	}
}

// WithBlockedThreshold sets the hex count from which tiled storage is used.
func WithBlockedThreshold(n int) Option {
	return func(b *Board) { b.threshold = n }
}

// New builds a board of the given size from t. The landmark collection is
// built before New returns unless WithBackgroundLandmarks is given.
func New(size hex.MapSize, t Terrain, opts ...Option) (*Board, error) {
	if size.Width <= 0 || size.Height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidSize, size.Width, size.Height)
	}
	if t == nil {
		return nil, ErrNilTerrain
	}
	if v, ok := t.(interface{ validate() error }); ok {
		if err := v.validate(); err != nil {
			return nil, err
		}
	}

	b := &Board{
		size:          size,
		elevationBase: DefaultElevationBase,
		elevationStep: DefaultElevationStep,
		heightOfMan:   DefaultHeightOfMan,
		threshold:     storage.DefaultBlockedThreshold,
		fovCfg:        fov.DefaultConfig(),
		pathCfg:       path.DefaultConfig(),
		logger:        slog.Default(),
	}
	for _, opt := range opts {
		opt(b)
	}
	if b.landmarkCoords == nil {
		b.landmarkCoords = landmark.DefaultCoords(size)
	}

	start := time.Now()
	b.hexes = storage.New(size, b.threshold, func(c hex.HexCoords) (Hex, bool) {
		return newHex(t, c), true
	})
	b.pathCfg.MinStepCost = b.minStepCost()
	b.logger.Info("board built",
		"width", size.Width,
		"height", size.Height,
		"storage", fmt.Sprintf("%T", b.hexes),
		"min_step_cost", b.pathCfg.MinStepCost,
		"elapsed", time.Since(start))

	if b.backgroundLM {
		b.ResetLandmarksAsync(context.Background())
		return b, nil
	}
	if res := b.ResetLandmarks(context.Background()); res.Err != nil {
		return nil, fmt.Errorf("building landmarks: %w", res.Err)
	}
	return b, nil
}

// minStepCost is the cheapest allowed step on the board, or zero when no
// step is allowed.
func (b *Board) minStepCost() int {
	var mu sync.Mutex
	best := -1
	b.hexes.ForEach(func(c hex.HexCoords, h Hex) {
		local := -1
		for _, s := range hex.Hexsides {
			if cost, ok := b.StepCost(c, s); ok && (local < 0 || cost < local) {
				local = cost
			}
		}
		if local < 0 {
			return
		}
		mu.Lock()
		if best < 0 || local < best {
			best = local
		}
		mu.Unlock()
	})
	return max(best, 0)
}

// MapSize returns the board extent.
func (b *Board) MapSize() hex.MapSize { return b.size }

// HeightOfMan returns the default observer height in feet.
func (b *Board) HeightOfMan() int { return b.heightOfMan }

// IsOnBoard reports whether c lies on the board.
func (b *Board) IsOnBoard(c hex.HexCoords) bool { return b.size.IsOnBoard(c) }

// Hex returns the record at c.
func (b *Board) Hex(c hex.HexCoords) (Hex, bool) { return b.hexes.Get(c) }

// Neighbour returns the record across hexside s of c.
func (b *Board) Neighbour(c hex.HexCoords, s hex.Hexside) (Hex, bool) {
	return b.hexes.Get(c.Neighbour(s))
}

// ForEach calls fn for every hex, concurrently across storage rows.
func (b *Board) ForEach(fn func(h Hex)) {
	b.hexes.ForEach(func(_ hex.HexCoords, h Hex) { fn(h) })
}

// Passable reports whether c is on the board and can be entered at all.
func (b *Board) Passable(c hex.HexCoords) bool {
	h, ok := b.hexes.Get(c)
	return ok && h.Passable
}

// StepCost returns the exit cost of c across s plus the entry cost of the
// neighbour across the opposite hexside, from the cached costs.
func (b *Board) StepCost(c hex.HexCoords, s hex.Hexside) (int, bool) {
	from, ok := b.hexes.Get(c)
	if !ok {
		return 0, false
	}
	to, ok := b.hexes.Get(c.Neighbour(s))
	if !ok {
		return 0, false
	}
	exit, entry := from.Costs.Exit[s], to.Costs.Entry[s.Reversed()]
	if exit < 0 || entry < 0 {
		return 0, false
	}
	return exit + entry, true
}

// ElevationASL returns the ground height of c above sea level in feet.
func (b *Board) ElevationASL(c hex.HexCoords) int {
	h, ok := b.hexes.Get(c)
	if !ok {
		return b.elevationBase
	}
	return b.elevationBase + h.ElevationLevel*b.elevationStep
}

// TerrainHeightASL returns the top of the blocking terrain in c above sea
// level in feet.
func (b *Board) TerrainHeightASL(c hex.HexCoords) int {
	h, ok := b.hexes.Get(c)
	if !ok {
		return b.elevationBase
	}
	return b.ElevationASL(c) + h.TerrainHeight
}

// HexsideHeightASL returns the top of the feature along hexside s of c
// above sea level in feet.
func (b *Board) HexsideHeightASL(c hex.HexCoords, s hex.Hexside) int {
	h, ok := b.hexes.Get(c)
	if !ok {
		return b.elevationBase
	}
	return b.ElevationASL(c) + h.SideHeights[s]
}

// GetFieldOfView returns the hexes visible from origin within radius for an
// observer standing observerHeight feet above the ground.
func (b *Board) GetFieldOfView(ctx context.Context, origin hex.HexCoords, radius, observerHeight int, mode fov.TargetMode) (*fov.Mask, error) {
	cfg := b.fovCfg
	cfg.Mode = mode
	start := time.Now()
	m, err := fov.FieldOfView(ctx, b, origin, radius, observerHeight, cfg)
	if err != nil {
		return nil, fmt.Errorf("field of view from %v: %w", origin, err)
	}
	b.metrics.ObserveFOV(time.Since(start), m.Count())
	return m, nil
}

// FOVResult is delivered by GetFieldOfViewAsync.
type FOVResult struct {
	Mask *fov.Mask
	Err  error
}

// GetFieldOfViewAsync runs GetFieldOfView on its own goroutine. The channel
// receives exactly one result.
func (b *Board) GetFieldOfViewAsync(ctx context.Context, origin hex.HexCoords, radius, observerHeight int, mode fov.TargetMode) <-chan FOVResult {
	out := make(chan FOVResult, 1)
	go func() {
		m, err := b.GetFieldOfView(ctx, origin, radius, observerHeight, mode)
		out <- FOVResult{Mask: m, Err: err}
	}()
	return out
}

// GetPath returns the cheapest directed path from start to goal, or false
// when an endpoint is unusable or the goal cannot be reached.
func (b *Board) GetPath(start, goal hex.HexCoords) (*path.DirectedPath, bool) {
	var h path.Heuristic
	if lm := b.landmarks.Load(); lm != nil {
		h = lm
	}
	res := path.Search(b, h, start, goal, b.pathCfg)
	b.metrics.ObservePath(res.Strategy.String(), res.Expanded, res.Path != nil)
	return res.Path, res.Path != nil
}
