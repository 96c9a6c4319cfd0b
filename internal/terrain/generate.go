package terrain

import (
	"fmt"
	"math"

	"github.com/aquilax/go-perlin"
	opensimplex "github.com/ojrac/opensimplex-go"

	"github.com/udisondev/hexgrid/internal/hex"
)

// Generator selects the noise source for Generate.
type Generator string

const (
	GeneratorSimplex Generator = "simplex"
	GeneratorPerlin  Generator = "perlin"
)

// GenConfig holds map generation parameters. Levels are thresholds on
// noise normalized to [0,1].
type GenConfig struct {
	Size          hex.MapSize
	Seed          int64
	Generator     Generator
	Frequency     float64
	WaterLevel    float64
	HillLevel     float64
	MountainLevel float64
	WoodsLevel    float64
}

// DefaultGenConfig returns a mostly open map with scattered woods and hills.
func DefaultGenConfig(size hex.MapSize) GenConfig {
	return GenConfig{
		Size:          size,
		Seed:          1,
		Generator:     GeneratorSimplex,
		Frequency:     0.08,
		WaterLevel:    0.22,
		HillLevel:     0.66,
		MountainLevel: 0.80,
		WoodsLevel:    0.62,
	}
}

type noise2D func(x, y float64) float64

func newNoise(g Generator, seed int64) (noise2D, error) {
	switch g {
	case GeneratorSimplex, "":
		n := opensimplex.NewNormalized(seed)
		return n.Eval2, nil
	case GeneratorPerlin:
		p := perlin.NewPerlin(2, 2, 3, seed)
		return func(x, y float64) float64 {
			return clamp01((p.Noise2D(x, y) + 1) / 2)
		}, nil
	default:
		return nil, fmt.Errorf("unknown generator %q", g)
	}
}

// Generate builds a Map from two independent noise layers: one for
// elevation (water, hills, mountains) and one for vegetation (woods).
// Output is a pure function of cfg.
func Generate(cfg GenConfig) (*Map, error) {
	elev, err := newNoise(cfg.Generator, cfg.Seed)
	if err != nil {
		return nil, err
	}
	veg, err := newNoise(cfg.Generator, cfg.Seed+1)
	if err != nil {
		return nil, err
	}

	m := NewMap(cfg.Size)
	for y := range cfg.Size.Height {
		for x := range cfg.Size.Width {
			// Flat-top hex centres; odd columns sit half a hex higher.
			px := float64(x) * math.Sqrt(3) / 2
			py := float64(y) - 0.5*float64(x&1)
			e := elev(px*cfg.Frequency, py*cfg.Frequency)
			v := veg(px*cfg.Frequency*2, py*cfg.Frequency*2)

			k := Clear
			switch {
			case e < cfg.WaterLevel:
				k = Water
			case e >= cfg.MountainLevel:
				k = Mountain
			case e >= cfg.HillLevel:
				k = Hill
			case v >= cfg.WoodsLevel:
				k = Woods
			}
			m.kinds[y*cfg.Size.Width+x] = k
		}
	}
	return m, nil
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
