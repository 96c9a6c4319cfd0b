// Package terrain describes what stands on each hex: a terrain kind looked up
// in a per-kind table, plus optional walls along hexsides.
package terrain

import "fmt"

// Kind is a terrain type.
type Kind uint8

const (
	Clear Kind = iota
	Road
	Woods
	Hill
	Mountain
	Marsh
	Building
	Water
	Cliff
	kindCount
)

// Props is the per-kind data used by the board.
type Props struct {
	Name   string
	Symbol byte
	// ElevationLevel is the ground level in board elevation steps.
	ElevationLevel int
	// Height is the blocking height above ground in feet (trees, walls).
	Height int
	// StepCost is the cost to enter a hex of this kind.
	StepCost int
	// ExitCost is the extra cost to leave a hex of this kind.
	ExitCost int
	Passable bool
}

// Table holds the props of every kind, indexed by Kind.
var Table = [kindCount]Props{
	Clear:    {Name: "clear", Symbol: '.', StepCost: 4, Passable: true},
	Road:     {Name: "road", Symbol: 'R', StepCost: 2, Passable: true},
	Woods:    {Name: "woods", Symbol: 'F', Height: 30, StepCost: 8, Passable: true},
	Hill:     {Name: "hill", Symbol: '2', ElevationLevel: 1, StepCost: 6, Passable: true},
	Mountain: {Name: "mountain", Symbol: '3', ElevationLevel: 2, StepCost: 10, Passable: true},
	Marsh:    {Name: "marsh", Symbol: 'S', StepCost: 8, ExitCost: 2, Passable: true},
	Building: {Name: "building", Symbol: 'B', Height: 40, StepCost: 10, Passable: true},
	Water:    {Name: "water", Symbol: 'W', Passable: false},
	Cliff:    {Name: "cliff", Symbol: 'C', ElevationLevel: 2, Height: 20, Passable: false},
}

// Props returns the table entry for k.
func (k Kind) Props() Props {
	if k >= kindCount {
		return Props{Name: "unknown", Symbol: '?'}
	}
	return Table[k]
}

func (k Kind) String() string { return k.Props().Name }

// KindFromSymbol returns the kind drawn with symbol b in ASCII maps.
func KindFromSymbol(b byte) (Kind, error) {
	for k := range kindCount {
		if Table[k].Symbol == b {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown terrain symbol %q", b)
}
