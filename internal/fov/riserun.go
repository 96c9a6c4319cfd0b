package fov

import "fmt"

// RiseRun is an exact rational slope. Run must be positive; slopes are
// ordered by cross-multiplication, never by division.
type RiseRun struct {
	Rise int
	Run  int
}

// negInfinity is below any slope a board can produce.
var negInfinity = RiseRun{Rise: -(1 << 40), Run: 1}

// Compare returns -1, 0 or +1 as r is shallower than, equal to, or steeper
// than o.
func (r RiseRun) Compare(o RiseRun) int {
	a := r.Rise * o.Run
	b := o.Rise * r.Run
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// Less reports whether r is strictly shallower than o.
func (r RiseRun) Less(o RiseRun) bool { return r.Compare(o) < 0 }

// Equal reports whether r and o denote the same slope.
func (r RiseRun) Equal(o RiseRun) bool { return r.Compare(o) == 0 }

// Max returns the steeper of r and o.
func (r RiseRun) Max(o RiseRun) RiseRun {
	if r.Less(o) {
		return o
	}
	return r
}

func (r RiseRun) String() string { return fmt.Sprintf("%d/%d", r.Rise, r.Run) }
