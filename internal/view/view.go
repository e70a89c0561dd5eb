// Package view provides the consumption-only query surface the rendering
// and UI layers read from the document model: element display colors and
// bond segment geometry. Nothing in this package mutates a molecule.
package view

import (
	"math"
	"strings"
)

// ElementColor returns the display color (RGB, 0..1) for an element.
// Lookup is case-insensitive; unrecognized elements render light gray.
func ElementColor(element string) [3]float32 {
	switch strings.ToUpper(strings.TrimSpace(element)) {
	case "H":
		return [3]float32{1.0, 1.0, 1.0}
	case "C":
		return [3]float32{0.2, 0.2, 0.2}
	case "N":
		return [3]float32{0.2, 0.2, 1.0}
	case "O":
		return [3]float32{1.0, 0.2, 0.2}
	default:
		return [3]float32{0.7, 0.7, 0.7}
	}
}

// Segment is the rendered geometry of a bond: the midpoint between its
// endpoints, the unit direction from the first endpoint to the second, and
// the distance between them.
type Segment struct {
	Midpoint  [3]float32
	Direction [3]float32
	Length    float32
}

// BondSegment computes a bond's segment geometry from its two endpoint
// positions. When the endpoints coincide the direction defaults to +Y,
// avoiding a degenerate normalize.
func BondSegment(a, b [3]float32) Segment {
	delta := [3]float32{b[0] - a[0], b[1] - a[1], b[2] - a[2]}
	length := float32(math.Sqrt(float64(delta[0]*delta[0] + delta[1]*delta[1] + delta[2]*delta[2])))
	direction := [3]float32{0, 1, 0}
	if length > 0 {
		direction = [3]float32{delta[0] / length, delta[1] / length, delta[2] / length}
	}
	return Segment{
		Midpoint:  [3]float32{(a[0] + b[0]) * 0.5, (a[1] + b[1]) * 0.5, (a[2] + b[2]) * 0.5},
		Direction: direction,
		Length:    length,
	}
}
