package hex

import "fmt"

// Coordinate transforms between user (column/row offset) and canonical
// (skewed axial) space. Columns are flat-top; odd columns sit half a hex
// higher than even ones.
var (
	// MatrixUserToCanon maps user (x,y) to canonical (x, y + floor(x/2)).
	MatrixUserToCanon = IntMatrix2D{M11: 2, M12: 1, M21: 0, M22: 2, Norm: 2}
	// MatrixCanonToUser maps canonical (x,y) to user (x, y - floor(x/2)).
	MatrixCanonToUser = IntMatrix2D{M11: 2, M12: -1, M21: 0, M22: 2, M32: 1, Norm: 2}
)

// HexCoords holds a hex position in both representations. The two are
// always consistent; construct values with NewUser or NewCanon.
type HexCoords struct {
	user  IntVector2D
	canon IntVector2D
}

// EmptyCoords is the origin hex (0,0).
var EmptyCoords = NewUser(0, 0)

// NewUser creates HexCoords from user (column, row) coordinates.
func NewUser(x, y int) HexCoords {
	u := IntVector2D{x, y}
	return HexCoords{user: u, canon: ToCanonical(u)}
}

// NewCanon creates HexCoords from canonical coordinates.
func NewCanon(x, y int) HexCoords {
	c := IntVector2D{x, y}
	return HexCoords{user: ToUser(c), canon: c}
}

// ToCanonical converts user coordinates to canonical coordinates.
func ToCanonical(user IntVector2D) IntVector2D {
	return user.Transform(MatrixUserToCanon)
}

// ToUser converts canonical coordinates to user coordinates.
func ToUser(canon IntVector2D) IntVector2D {
	return canon.Transform(MatrixCanonToUser)
}

// User returns the user (column, row) coordinates.
func (c HexCoords) User() IntVector2D { return c.user }

// Canon returns the canonical coordinates.
func (c HexCoords) Canon() IntVector2D { return c.canon }

// Range returns the hex distance between c and o.
func (c HexCoords) Range(o HexCoords) int {
	return Range(c, o)
}

// Neighbour returns the adjacent hex across hexside s.
func (c HexCoords) Neighbour(s Hexside) HexCoords {
	return Neighbor(c, s)
}

// Offset returns the canonical vector from c to o.
func (c HexCoords) Offset(o HexCoords) IntVector2D {
	return o.canon.Sub(c.canon)
}

// Translate returns c shifted by the canonical vector v.
func (c HexCoords) Translate(v IntVector2D) HexCoords {
	return NewCanon(c.canon.X+v.X, c.canon.Y+v.Y)
}

func (c HexCoords) String() string {
	return fmt.Sprintf("User: (%d,%d)", c.user.X, c.user.Y)
}

// Range returns the hex distance between a and b, computed from canonical
// coordinates. It is exact and symmetric.
func Range(a, b HexCoords) int {
	dx := b.canon.X - a.canon.X
	dy := b.canon.Y - a.canon.Y
	return (abs(dx) + abs(dy) + abs(dx-dy)) / 2
}

// Neighbor steps from c across hexside s using the user-space offset table
// for c's column parity.
func Neighbor(c HexCoords, s Hexside) HexCoords {
	d := userOffsets[c.user.X&1][s]
	return NewUser(c.user.X+d.X, c.user.Y+d.Y)
}

// userOffsets[parity][hexside] is the user-space step to the neighbour.
var userOffsets = [2][HexsideCount]IntVector2D{
	{{0, -1}, {1, 0}, {1, 1}, {0, 1}, {-1, 1}, {-1, 0}},   // even column
	{{0, -1}, {1, -1}, {1, 0}, {0, 1}, {-1, 0}, {-1, -1}}, // odd column
}

// MapSize is the board extent in hexes.
type MapSize struct {
	Width  int
	Height int
}

// Area returns the number of hexes on the board.
func (s MapSize) Area() int { return s.Width * s.Height }

// IsOnBoard reports whether c lies inside the board.
func (s MapSize) IsOnBoard(c HexCoords) bool {
	return IsOnBoard(c, s)
}

// IsOnBoard reports whether c lies inside a board of the given size.
func IsOnBoard(c HexCoords, size MapSize) bool {
	return c.user.X >= 0 && c.user.X < size.Width && c.user.Y >= 0 && c.user.Y < size.Height
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
