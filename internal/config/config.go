package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/udisondev/hexgrid/internal/fov"
	"github.com/udisondev/hexgrid/internal/hex"
	"github.com/udisondev/hexgrid/internal/path"
	"github.com/udisondev/hexgrid/internal/storage"
	"github.com/udisondev/hexgrid/internal/terrain"
)

// Hexgrid holds all configuration for the hexgrid tool.
type Hexgrid struct {
	LogLevel  string          `yaml:"log_level"`
	Board     BoardConfig     `yaml:"board"`
	FOV       FOVConfig       `yaml:"fov"`
	Path      PathConfig      `yaml:"path"`
	Landmarks LandmarksConfig `yaml:"landmarks"`
}

// BoardConfig describes where the map comes from. MapFile wins over the
// generator when set.
type BoardConfig struct {
	Width            int    `yaml:"width"`
	Height           int    `yaml:"height"`
	BlockedThreshold int    `yaml:"blocked_threshold"` // hex count
	MapFile          string `yaml:"map_file"`
	Generator        string `yaml:"generator"` // simplex | perlin
	Seed             int64  `yaml:"seed"`
}

// FOVConfig holds field-of-view settings.
type FOVConfig struct {
	Units          string `yaml:"units"` // imperial | metric
	Mode           string `yaml:"mode"`  // zero | actual | equal
	Serial         bool   `yaml:"serial"`
	HexesPerMile   int    `yaml:"hexes_per_mile"`
	ObserverHeight int    `yaml:"observer_height"` // feet
	Radius         int    `yaml:"radius"`
}

// PathConfig holds path search settings.
type PathConfig struct {
	RangeCutoff int `yaml:"range_cutoff"`
}

// LandmarksConfig lists landmark hexes as [x, y] user coordinates. Empty
// means the board's default set.
type LandmarksConfig struct {
	Coords [][2]int `yaml:"coords"`
	Async  bool     `yaml:"async"`
}

// DefaultHexgrid returns a 64x64 simplex board with imperial, parallel
// fields of view.
func DefaultHexgrid() Hexgrid {
	return Hexgrid{
		LogLevel: "info",
		Board: BoardConfig{
			Width:            64,
			Height:           64,
			BlockedThreshold: storage.DefaultBlockedThreshold,
			Generator:        string(terrain.GeneratorSimplex),
			Seed:             1,
		},
		FOV: FOVConfig{
			Units:          "imperial",
			Mode:           "actual",
			ObserverHeight: 6,
			Radius:         20,
		},
		Path: PathConfig{
			RangeCutoff: path.DefaultRangeCutoff,
		},
	}
}

// LoadHexgrid loads config from a YAML file.
// If the file doesn't exist, returns defaults.
func LoadHexgrid(path string) (Hexgrid, error) {
	cfg := DefaultHexgrid()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("validating config %s: %w", path, err)
	}

	return cfg, nil
}

// Validate checks values that would otherwise fail deep inside a run.
func (c Hexgrid) Validate() error {
	if c.Board.MapFile == "" && (c.Board.Width <= 0 || c.Board.Height <= 0) {
		return fmt.Errorf("board size %dx%d must be positive", c.Board.Width, c.Board.Height)
	}
	if _, err := c.FOVSettings(); err != nil {
		return err
	}
	if c.Path.RangeCutoff < 0 {
		return fmt.Errorf("path range cutoff %d is negative", c.Path.RangeCutoff)
	}
	return nil
}

// FOVSettings converts the fov section to an fov.Config.
func (c Hexgrid) FOVSettings() (fov.Config, error) {
	units, err := fov.ParseUnits(c.FOV.Units)
	if err != nil {
		return fov.Config{}, err
	}
	mode, err := fov.ParseTargetMode(c.FOV.Mode)
	if err != nil {
		return fov.Config{}, err
	}
	return fov.Config{
		Units:        units,
		Mode:         mode,
		Serial:       c.FOV.Serial,
		HexesPerMile: c.FOV.HexesPerMile,
	}, nil
}

// PathSettings converts the path section to a path.Config.
func (c Hexgrid) PathSettings() path.Config {
	cfg := path.DefaultConfig()
	cfg.RangeCutoff = c.Path.RangeCutoff
	return cfg
}

// LandmarkCoords returns the configured landmark hexes, nil for defaults.
func (c Hexgrid) LandmarkCoords() []hex.HexCoords {
	if len(c.Landmarks.Coords) == 0 {
		return nil
	}
	out := make([]hex.HexCoords, 0, len(c.Landmarks.Coords))
	for _, xy := range c.Landmarks.Coords {
		out = append(out, hex.NewUser(xy[0], xy[1]))
	}
	return out
}

// MapSize returns the configured board size.
func (c Hexgrid) MapSize() hex.MapSize {
	return hex.MapSize{Width: c.Board.Width, Height: c.Board.Height}
}
