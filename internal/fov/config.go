package fov

import (
	"fmt"
	"math"
)

// Units selects the shared integer height unit used in slope comparisons.
type Units uint8

const (
	// Imperial compares heights in inches.
	Imperial Units = iota
	// Metric compares heights in decimeters.
	Metric
)

// TargetMode selects how target heights are modelled.
type TargetMode uint8

const (
	// TargetZero sees a hex when its ground surface is visible.
	TargetZero TargetMode = iota
	// TargetActual sees a hex when an observer-height figure standing on it
	// is visible.
	TargetActual
	// EqualHeights ignores ground elevation: observer and targets all stand
	// at observer height on a flat plane; terrain blocks by its height above
	// its own ground.
	EqualHeights
)

func (m TargetMode) String() string {
	switch m {
	case TargetZero:
		return "zero"
	case TargetActual:
		return "actual"
	case EqualHeights:
		return "equal"
	}
	return fmt.Sprintf("TargetMode(%d)", m)
}

// ParseTargetMode parses "zero", "actual" or "equal".
func ParseTargetMode(s string) (TargetMode, error) {
	switch s {
	case "zero":
		return TargetZero, nil
	case "actual", "":
		return TargetActual, nil
	case "equal":
		return EqualHeights, nil
	}
	return 0, fmt.Errorf("unknown target mode %q", s)
}

// ParseUnits parses "imperial" or "metric".
func ParseUnits(s string) (Units, error) {
	switch s {
	case "imperial", "":
		return Imperial, nil
	case "metric":
		return Metric, nil
	}
	return 0, fmt.Errorf("unknown height units %q", s)
}

// Config is passed to every computation; there is no package-level state.
type Config struct {
	Units Units
	Mode  TargetMode
	// Serial sweeps the dodecants one after another on the calling goroutine.
	Serial bool
	// HexesPerMile enables the curvature-of-earth correction when > 0.
	HexesPerMile int
}

// DefaultConfig returns imperial units, actual target heights and a
// parallel sweep without curvature correction.
func DefaultConfig() Config {
	return Config{Units: Imperial, Mode: TargetActual}
}

// toUnits converts feet to the configured unit.
func (c Config) toUnits(feet int) int {
	if c.Units == Metric {
		return int(math.Round(float64(feet) * 3.048))
	}
	return feet * 12
}

// curvatureDrop returns how far the earth's surface falls away at the given
// range, in the configured unit: about 8 inches (2.03 decimeters) per
// square mile of distance.
func (c Config) curvatureDrop(rng int) int {
	if c.HexesPerMile <= 0 {
		return 0
	}
	sq := rng * rng
	hpm2 := c.HexesPerMile * c.HexesPerMile
	if c.Units == Metric {
		return sq * 203 / (100 * hpm2)
	}
	return sq * 8 / hpm2
}
