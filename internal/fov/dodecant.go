package fov

import "github.com/udisondev/hexgrid/internal/hex"

// DodecantCount is the number of 30° wedges a sweep is folded into.
const DodecantCount = 12

// In dodecant zero a hex (x, y) in local canonical coordinates satisfies
// 0 <= 2y <= x: the wedge from the Northeast axis to the vertex direction
// between Northeast and Southeast. Its range from the observer is x.
var (
	// rotate60 turns canonical vectors one hexside clockwise.
	rotate60 = hex.NewLinear(1, 1, -1, 0)
	// reflect swaps the Northeast and Southeast axes, fixing the vertex
	// direction between them.
	reflect = hex.NewLinear(1, 1, 0, -1)
)

// dodecant maps sweep-local coordinates to canonical board offsets.
type dodecant struct {
	index  int
	matrix hex.IntMatrix2D
	// sides[local] is the board hexside matching a local hexside.
	sides [hex.HexsideCount]hex.Hexside
}

var dodecants = buildDodecants()

func buildDodecants() [DodecantCount]dodecant {
	var out [DodecantCount]dodecant
	rot := hex.Identity
	for i := range hex.HexsideCount {
		out[2*i] = newDodecant(2*i, rot)
		out[2*i+1] = newDodecant(2*i+1, reflect.Mul(rot))
		rot = rot.Mul(rotate60)
	}
	return out
}

func newDodecant(index int, m hex.IntMatrix2D) dodecant {
	d := dodecant{index: index, matrix: m}
	for _, s := range hex.Hexsides {
		mapped, ok := hex.HexsideFromVector(s.Vector().Transform(m))
		if !ok {
			panic("fov: dodecant matrix does not preserve hexsides")
		}
		d.sides[s] = mapped
	}
	return d
}

// toBoard returns the board hex at local (x, y) from origin.
func (d *dodecant) toBoard(origin hex.HexCoords, x, y int) hex.HexCoords {
	return origin.Translate(hex.IntVector2D{X: x, Y: y}.Transform(d.matrix))
}

// hexside maps a local hexside to the board hexside.
func (d *dodecant) hexside(local hex.Hexside) hex.Hexside {
	return d.sides[local]
}

// Matrix returns the local-to-canonical transform of dodecant i.
func Matrix(i int) hex.IntMatrix2D {
	return dodecants[i%DodecantCount].matrix
}

// angle returns the angular position of the local point (x, y), at any
// uniform scale, as a slope measured from the Northeast axis. It is
// monotone in the true bearing within and slightly beyond dodecant zero:
// 0 on the axis, 1/3 on the vertex direction.
func angle(x, y int) RiseRun {
	return RiseRun{Rise: y, Run: 2*x - y}
}

// Wedge bounds of dodecant zero as vectors.
var (
	wedgeBottom = hex.IntVector2D{X: 1, Y: 0}
	wedgeTop    = hex.IntVector2D{X: 2, Y: 1}
)
