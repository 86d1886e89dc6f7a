package pptxraster

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTransformBoundsUnrotated(t *testing.T) {
	tr := Transform{OffsetX: 10, OffsetY: 20, Width: 100, Height: 50}
	b := tr.Bounds()
	assert.Equal(t, Rect{Point{10, 20}, Point{110, 70}}, b)
	assert.Equal(t, 100, b.Dx())
	assert.Equal(t, 50, b.Dy())
}

func TestTransformRotatedBoundsSquareIsStableAt90(t *testing.T) {
	tr := Transform{OffsetX: 0, OffsetY: 0, Width: 100, Height: 100, RotationDeg: 90}
	b := tr.RotatedBounds()
	assert.InDelta(t, 100, b.Dx(), 1)
	assert.InDelta(t, 100, b.Dy(), 1)
}

func TestTransformRotatedBoundsWidensForNonSquareAt45(t *testing.T) {
	tr := Transform{OffsetX: 0, OffsetY: 0, Width: 200, Height: 50, RotationDeg: 45}
	unrotated := tr.Bounds()
	rotated := tr.RotatedBounds()
	assert.Greater(t, rotated.Dx(), unrotated.Dx())
	assert.Greater(t, rotated.Dy(), unrotated.Dy())
}

func TestNewTransformConvertsEMURotation(t *testing.T) {
	tr := NewTransform(0, 0, 10, 10, 2700000, false, true)
	assert.Equal(t, 45, tr.RotationDeg)
	assert.False(t, tr.FlipH)
	assert.True(t, tr.FlipV)
}

func TestRectToImageRect(t *testing.T) {
	r := Rect{Point{1, 2}, Point{3, 4}}
	ir := r.toImageRect()
	assert.Equal(t, 1, ir.Min.X)
	assert.Equal(t, 2, ir.Min.Y)
	assert.Equal(t, 3, ir.Max.X)
	assert.Equal(t, 4, ir.Max.Y)
}
