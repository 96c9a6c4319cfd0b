package fov

import (
	"math/bits"
	"strings"
	"sync"

	"github.com/udisondev/hexgrid/internal/hex"
)

// Mask is a board-sized visibility bitmap. Set is safe for concurrent use;
// reads are meant for after the computation that filled it has returned.
type Mask struct {
	size  hex.MapSize
	mu    sync.Mutex
	words []uint64
}

// NewMask returns an all-hidden mask.
func NewMask(size hex.MapSize) *Mask {
	return &Mask{
		size:  size,
		words: make([]uint64, (size.Area()+63)/64),
	}
}

// MapSize returns the board extent.
func (m *Mask) MapSize() hex.MapSize { return m.size }

func (m *Mask) bit(c hex.HexCoords) (int, bool) {
	if !m.size.IsOnBoard(c) {
		return 0, false
	}
	u := c.User()
	return u.Y*m.size.Width + u.X, true
}

// Set marks c visible. Off-board hexes are ignored. Dodecant workers may
// touch bits of the same word, hence the lock.
func (m *Mask) Set(c hex.HexCoords) {
	i, ok := m.bit(c)
	if !ok {
		return
	}
	m.mu.Lock()
	m.words[i>>6] |= 1 << (i & 63)
	m.mu.Unlock()
}

// IsVisible reports whether c was marked visible.
func (m *Mask) IsVisible(c hex.HexCoords) bool {
	i, ok := m.bit(c)
	return ok && m.words[i>>6]&(1<<(i&63)) != 0
}

// Count returns the number of visible hexes.
func (m *Mask) Count() int {
	n := 0
	for _, w := range m.words {
		n += bits.OnesCount64(w)
	}
	return n
}

// Equal reports whether both masks mark exactly the same hexes.
func (m *Mask) Equal(o *Mask) bool {
	if m.size != o.size {
		return false
	}
	for i, w := range m.words {
		if o.words[i] != w {
			return false
		}
	}
	return true
}

// Bytes returns a copy of the bitmap, least significant bit first.
func (m *Mask) Bytes() []byte {
	out := make([]byte, 0, len(m.words)*8)
	for _, w := range m.words {
		for s := 0; s < 64; s += 8 {
			out = append(out, byte(w>>s))
		}
	}
	return out
}

// String renders the mask as rows of '#' (visible) and '.' (hidden).
func (m *Mask) String() string {
	var sb strings.Builder
	for y := range m.size.Height {
		for x := range m.size.Width {
			if m.IsVisible(hex.NewUser(x, y)) {
				sb.WriteByte('#')
			} else {
				sb.WriteByte('.')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
