package terrain

import (
	"strings"

	"github.com/udisondev/hexgrid/internal/hex"
)

// WallHeight is the blocking height of a hexside wall in feet.
const WallHeight = 12

// Map is a board-sized grid of terrain kinds with optional hexside walls.
// It satisfies board.Terrain.
type Map struct {
	size  hex.MapSize
	kinds []Kind
	walls []hex.HexsideFlags
}

// NewMap returns an all-clear map.
func NewMap(size hex.MapSize) *Map {
	return &Map{
		size:  size,
		kinds: make([]Kind, size.Area()),
		walls: make([]hex.HexsideFlags, size.Area()),
	}
}

// MapSize returns the map extent.
func (m *Map) MapSize() hex.MapSize { return m.size }

func (m *Map) index(c hex.HexCoords) (int, bool) {
	if !m.size.IsOnBoard(c) {
		return 0, false
	}
	u := c.User()
	return u.Y*m.size.Width + u.X, true
}

// Kind returns the terrain kind at c.
func (m *Map) Kind(c hex.HexCoords) (Kind, bool) {
	i, ok := m.index(c)
	if !ok {
		return 0, false
	}
	return m.kinds[i], true
}

// SetKind sets the terrain kind at c. Off-map writes are ignored.
func (m *Map) SetKind(c hex.HexCoords, k Kind) {
	if i, ok := m.index(c); ok {
		m.kinds[i] = k
	}
}

// Walls returns the walled hexsides of c.
func (m *Map) Walls(c hex.HexCoords) hex.HexsideFlags {
	if i, ok := m.index(c); ok {
		return m.walls[i]
	}
	return 0
}

// SetWall puts a wall on hexside s of c, and on the matching side of the
// neighbour so the wall is seen from both hexes.
func (m *Map) SetWall(c hex.HexCoords, s hex.Hexside) {
	if i, ok := m.index(c); ok {
		m.walls[i] = m.walls[i].With(s)
	}
	if i, ok := m.index(c.Neighbour(s)); ok {
		m.walls[i] = m.walls[i].With(s.Reversed())
	}
}

func (m *Map) props(c hex.HexCoords) (Props, bool) {
	k, ok := m.Kind(c)
	if !ok {
		return Props{}, false
	}
	return k.Props(), true
}

// Passable reports whether units may stand on c.
func (m *Map) Passable(c hex.HexCoords) bool {
	p, ok := m.props(c)
	return ok && p.Passable
}

// ElevationLevel returns the ground level of c in elevation steps.
func (m *Map) ElevationLevel(c hex.HexCoords) int {
	p, _ := m.props(c)
	return p.ElevationLevel
}

// TerrainHeight returns the blocking height above ground of c in feet.
func (m *Map) TerrainHeight(c hex.HexCoords) int {
	p, _ := m.props(c)
	return p.Height
}

// HexsideHeight returns the wall height on hexside s of c in feet.
func (m *Map) HexsideHeight(c hex.HexCoords, s hex.Hexside) int {
	if m.Walls(c).Has(s) {
		return WallHeight
	}
	return 0
}

// EntryCost returns the cost to enter c across its hexside s, or -1 when
// c cannot be entered that way.
func (m *Map) EntryCost(c hex.HexCoords, s hex.Hexside) int {
	p, ok := m.props(c)
	if !ok || !p.Passable || m.Walls(c).Has(s) {
		return -1
	}
	return p.StepCost
}

// ExitCost returns the cost to leave c across its hexside s, or -1 when
// c cannot be left that way.
func (m *Map) ExitCost(c hex.HexCoords, s hex.Hexside) int {
	p, ok := m.props(c)
	if !ok || !p.Passable || m.Walls(c).Has(s) {
		return -1
	}
	return p.ExitCost
}

// String renders the map as ASCII rows, the inverse of ParseASCII.
func (m *Map) String() string {
	var sb strings.Builder
	for y := range m.size.Height {
		for x := range m.size.Width {
			sb.WriteByte(m.kinds[y*m.size.Width+x].Props().Symbol)
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
