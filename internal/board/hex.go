package board

import "github.com/udisondev/hexgrid/internal/hex"

// HexsideCosts caches the directed step costs of one hex. A negative cost
// forbids the step.
type HexsideCosts struct {
	Entry [hex.HexsideCount]int
	Exit  [hex.HexsideCount]int
}

// Hex is the stored record of one board hex. It holds no reference to the
// board; heights are in feet above the hex's own ground.
type Hex struct {
	Coords         hex.HexCoords
	Passable       bool
	ElevationLevel int
	TerrainHeight  int
	SideHeights    [hex.HexsideCount]int
	Costs          HexsideCosts
}

func newHex(t Terrain, c hex.HexCoords) Hex {
	h := Hex{
		Coords:         c,
		Passable:       t.Passable(c),
		ElevationLevel: t.ElevationLevel(c),
		TerrainHeight:  t.TerrainHeight(c),
	}
	for _, s := range hex.Hexsides {
		h.SideHeights[s] = t.HexsideHeight(c, s)
		h.Costs.Entry[s] = t.EntryCost(c, s)
		h.Costs.Exit[s] = t.ExitCost(c, s)
		if !h.Passable {
			h.Costs.Entry[s], h.Costs.Exit[s] = -1, -1
		}
	}
	return h
}
