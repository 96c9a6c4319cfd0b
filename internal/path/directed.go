package path

import (
	"fmt"
	"strings"

	"github.com/udisondev/hexgrid/internal/hex"
)

// DirectedPath is one step of an immutable path. The head returned by a
// search is the start hex; each step links to the rest of the path toward
// the goal and carries the cost still to pay from its hex to the goal, so
// costs grow walking from the goal back to the start.
type DirectedPath struct {
	coords    hex.HexCoords
	exit      hex.Hexside
	totalCost int
	next      *DirectedPath
}

// Coords returns the hex of this step.
func (p *DirectedPath) Coords() hex.HexCoords { return p.coords }

// Hexside returns the hexside this step leaves by, or hex.HexsideNone at
// the goal.
func (p *DirectedPath) Hexside() hex.Hexside { return p.exit }

// TotalCost returns the cost from this step to the goal.
func (p *DirectedPath) TotalCost() int { return p.totalCost }

// Next returns the following step, nil at the goal.
func (p *DirectedPath) Next() *DirectedPath { return p.next }

// Len returns the number of hexes on the path, endpoints included.
func (p *DirectedPath) Len() int {
	n := 0
	for s := p; s != nil; s = s.next {
		n++
	}
	return n
}

// Goal returns the last step.
func (p *DirectedPath) Goal() *DirectedPath {
	s := p
	for s.next != nil {
		s = s.next
	}
	return s
}

// Steps returns the hexes from start to goal.
func (p *DirectedPath) Steps() []hex.HexCoords {
	out := make([]hex.HexCoords, 0, p.Len())
	for s := p; s != nil; s = s.next {
		out = append(out, s.coords)
	}
	return out
}

func (p *DirectedPath) String() string {
	var sb strings.Builder
	for s := p; s != nil; s = s.next {
		if s != p {
			sb.WriteString(" ")
		}
		if s.exit == hex.HexsideNone {
			fmt.Fprintf(&sb, "%v[%d]", s.coords.User(), s.totalCost)
			continue
		}
		fmt.Fprintf(&sb, "%v[%d]-%v->", s.coords.User(), s.totalCost, s.exit)
	}
	return sb.String()
}

// prepend returns a step at c leaving by exit whose remaining cost is
// stepCost more than rest.
func prepend(c hex.HexCoords, exit hex.Hexside, stepCost int, rest *DirectedPath) *DirectedPath {
	return &DirectedPath{coords: c, exit: exit, totalCost: rest.totalCost + stepCost, next: rest}
}

func goalStep(c hex.HexCoords) *DirectedPath {
	return &DirectedPath{coords: c, exit: hex.HexsideNone}
}
