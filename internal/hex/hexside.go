package hex

import "strings"

// Hexside is one of the six sides of a flat-top hex, clockwise from North.
type Hexside uint8

const (
	North Hexside = iota
	Northeast
	Southeast
	South
	Southwest
	Northwest
)

// HexsideCount is the number of sides of a hex.
const HexsideCount = 6

// HexsideNone marks "no hexside", e.g. the first step of a path.
const HexsideNone Hexside = 0xFF

// Hexsides lists all hexsides in enumeration order. Path searches expand
// neighbours in this order.
var Hexsides = [HexsideCount]Hexside{North, Northeast, Southeast, South, Southwest, Northwest}

var hexsideNames = [HexsideCount]string{"North", "Northeast", "Southeast", "South", "Southwest", "Northwest"}

// canonVectors[s] is the canonical step across hexside s.
var canonVectors = [HexsideCount]IntVector2D{
	{0, -1}, {1, 0}, {1, 1}, {0, 1}, {-1, 0}, {-1, -1},
}

// Reversed returns the opposite hexside.
func (s Hexside) Reversed() Hexside {
	if s >= HexsideCount {
		return s
	}
	return (s + 3) % HexsideCount
}

// Clockwise returns the next hexside clockwise.
func (s Hexside) Clockwise() Hexside { return (s + 1) % HexsideCount }

// CounterClockwise returns the next hexside counter-clockwise.
func (s Hexside) CounterClockwise() Hexside { return (s + HexsideCount - 1) % HexsideCount }

// Vector returns the canonical step across s.
func (s Hexside) Vector() IntVector2D { return canonVectors[s] }

// Flag returns the single-bit HexsideFlags for s.
func (s Hexside) Flag() HexsideFlags { return 1 << s }

func (s Hexside) String() string {
	if s >= HexsideCount {
		return "None"
	}
	return hexsideNames[s]
}

// HexsideFromVector returns the hexside whose canonical step equals v.
func HexsideFromVector(v IntVector2D) (Hexside, bool) {
	for i, cv := range canonVectors {
		if cv == v {
			return Hexside(i), true
		}
	}
	return HexsideNone, false
}

// HexsideFlags is a set of hexsides.
type HexsideFlags uint8

// AllHexsides has every side set.
const AllHexsides HexsideFlags = 0x3F

// Has reports whether s is in the set.
func (f HexsideFlags) Has(s Hexside) bool { return s < HexsideCount && f&(1<<s) != 0 }

// With returns f with s added.
func (f HexsideFlags) With(s Hexside) HexsideFlags { return f | 1<<s }

func (f HexsideFlags) String() string {
	if f == 0 {
		return "None"
	}
	var parts []string
	for _, s := range Hexsides {
		if f.Has(s) {
			parts = append(parts, s.String())
		}
	}
	return strings.Join(parts, "|")
}
