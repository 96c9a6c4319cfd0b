package terrain

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/udisondev/hexgrid/internal/hex"
)

// ErrEmptyMap is returned when an ASCII map has no rows.
var ErrEmptyMap = errors.New("terrain: empty map")

// ParseASCII builds a Map from character rows, one character per hex. All
// rows must have the same width. Trailing whitespace is ignored.
func ParseASCII(rows []string) (*Map, error) {
	trimmed := make([]string, 0, len(rows))
	for _, r := range rows {
		r = strings.TrimRight(r, " \t\r")
		if r == "" {
			continue
		}
		trimmed = append(trimmed, r)
	}
	if len(trimmed) == 0 {
		return nil, ErrEmptyMap
	}

	size := hex.MapSize{Width: len(trimmed[0]), Height: len(trimmed)}
	m := NewMap(size)
	for y, row := range trimmed {
		if len(row) != size.Width {
			return nil, fmt.Errorf("parse map row %d: width %d, want %d", y, len(row), size.Width)
		}
		for x := range size.Width {
			k, err := KindFromSymbol(row[x])
			if err != nil {
				return nil, fmt.Errorf("parse map row %d col %d: %w", y, x, err)
			}
			m.kinds[y*size.Width+x] = k
		}
	}
	return m, nil
}

// ReadASCII reads an ASCII map from r.
func ReadASCII(r io.Reader) (*Map, error) {
	var rows []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		rows = append(rows, sc.Text())
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading map: %w", err)
	}
	return ParseASCII(rows)
}
