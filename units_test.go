package pptxraster

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInchEMURoundTrip(t *testing.T) {
	assert.Equal(t, int64(914400), Inch(1))
	assert.InDelta(t, 1.0, EMUToInch(Inch(1)), 1e-9)
	assert.InDelta(t, 2.5, EMUToInch(Inch(2.5)), 1e-9)
}

func TestPointEMURoundTrip(t *testing.T) {
	assert.Equal(t, int64(12700), Point(1))
	assert.InDelta(t, 12.0, EMUToPoint(Point(12)), 1e-9)
}

func TestCentimeterMillimeterRoundTrip(t *testing.T) {
	assert.InDelta(t, 1.0, EMUToCentimeter(Centimeter(1)), 1e-9)
	assert.InDelta(t, 10.0, EMUToMillimeter(Millimeter(10)), 1e-9)
	assert.Equal(t, Centimeter(1), Millimeter(10))
}

func TestAngleRoundTrip(t *testing.T) {
	assert.Equal(t, 2700000, Angle(45))
	assert.InDelta(t, 45.0, AngleToDegrees(Angle(45)), 1e-9)
	assert.InDelta(t, 180.0, AngleToDegrees(Angle(180)), 1e-9)
}

func TestPercentRoundTrip(t *testing.T) {
	assert.Equal(t, 50000, Percent(0.5))
	assert.InDelta(t, 0.5, PercentToFraction(Percent(0.5)), 1e-9)
	assert.InDelta(t, 1.0, PercentToFraction(Percent(1.0)), 1e-9)
}

func TestHundredthsOfPointRoundTrip(t *testing.T) {
	assert.Equal(t, 1800, HundredthsOfPoint(18))
	assert.InDelta(t, 18.0, HundredthsOfPointToPoints(HundredthsOfPoint(18)), 1e-9)
}
