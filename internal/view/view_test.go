package view

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestElementColor_Table(t *testing.T) {
	assert.Equal(t, [3]float32{1, 1, 1}, ElementColor("H"))
	assert.Equal(t, [3]float32{0.2, 0.2, 0.2}, ElementColor("C"))
	assert.Equal(t, [3]float32{0.2, 0.2, 1}, ElementColor("N"))
	assert.Equal(t, [3]float32{1, 0.2, 0.2}, ElementColor("O"))
}

func TestElementColor_UnknownIsLightGray(t *testing.T) {
	assert.Equal(t, [3]float32{0.7, 0.7, 0.7}, ElementColor("Xe"))
	assert.Equal(t, [3]float32{0.7, 0.7, 0.7}, ElementColor(""))
}

func TestElementColor_CaseInsensitive(t *testing.T) {
	assert.Equal(t, ElementColor("H"), ElementColor("h"))
	assert.Equal(t, ElementColor("O"), ElementColor(" o "))
}

func TestBondSegment_DirectionAndLength(t *testing.T) {
	segment := BondSegment([3]float32{0, 0, 0}, [3]float32{0, 2, 0})

	assert.Equal(t, float32(2), segment.Length)
	assert.Equal(t, [3]float32{0, 1, 0}, segment.Direction)
	assert.Equal(t, [3]float32{0, 1, 0}, segment.Midpoint)
}

func TestBondSegment_NegativeAxis(t *testing.T) {
	segment := BondSegment([3]float32{3, 0, 0}, [3]float32{0, 0, 0})

	assert.Equal(t, float32(3), segment.Length)
	assert.Equal(t, [3]float32{-1, 0, 0}, segment.Direction)
	assert.Equal(t, [3]float32{1.5, 0, 0}, segment.Midpoint)
}

func TestBondSegment_CoincidentEndpointsDefaultUp(t *testing.T) {
	segment := BondSegment([3]float32{1, 1, 1}, [3]float32{1, 1, 1})

	assert.Equal(t, float32(0), segment.Length)
	assert.Equal(t, [3]float32{0, 1, 0}, segment.Direction)
	assert.Equal(t, [3]float32{1, 1, 1}, segment.Midpoint)
}

func TestBondSegment_Diagonal(t *testing.T) {
	segment := BondSegment([3]float32{0, 0, 0}, [3]float32{1, 2, 2})

	assert.InDelta(t, 3.0, float64(segment.Length), 1e-6)
	assert.InDelta(t, 1.0/3.0, float64(segment.Direction[0]), 1e-6)
	assert.InDelta(t, 2.0/3.0, float64(segment.Direction[1]), 1e-6)
	assert.InDelta(t, 2.0/3.0, float64(segment.Direction[2]), 1e-6)
}
