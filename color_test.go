package pptxraster

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyTintTowardWhite(t *testing.T) {
	c := NewColor("FF0000")
	applyTint(&c, 0.5)
	require.Equal(t, uint8(255), c.GetRed())
	assert.InDelta(t, 128, int(c.GetGreen()), 2)
	assert.InDelta(t, 128, int(c.GetBlue()), 2)
}

func TestApplyTintFullWhite(t *testing.T) {
	c := NewColor("112233")
	applyTint(&c, 1.0)
	assert.Equal(t, uint8(255), c.GetRed())
	assert.Equal(t, uint8(255), c.GetGreen())
	assert.Equal(t, uint8(255), c.GetBlue())
}

func TestApplyShadeTowardBlack(t *testing.T) {
	c := NewColor("FFFFFF")
	applyShade(&c, 1.0)
	assert.Equal(t, uint8(0), c.GetRed())
	assert.Equal(t, uint8(0), c.GetGreen())
	assert.Equal(t, uint8(0), c.GetBlue())
}

func TestApplyLumModDarkens(t *testing.T) {
	c := NewColor("808080")
	before := c.GetRed()
	applyLumMod(&c, 0.5)
	assert.Less(t, c.GetRed(), before)
}

func TestApplyLumOffLightens(t *testing.T) {
	c := NewColor("202020")
	before := c.GetRed()
	applyLumOff(&c, 0.5)
	assert.Greater(t, c.GetRed(), before)
}

func TestApplySatModGrayscale(t *testing.T) {
	c := NewColor("FF0000")
	applySatMod(&c, 0)
	// Zero saturation collapses to a gray: all channels equal.
	assert.Equal(t, c.GetRed(), c.GetGreen())
	assert.Equal(t, c.GetGreen(), c.GetBlue())
}

func TestApplyHueModRotatesHue(t *testing.T) {
	c := NewColor("00FF00") // green, hue 120
	applyHueMod(&c, 0.5)    // -> hue 60 (yellow)
	h, _, _ := rgbToHSL(&c)
	assert.InDelta(t, 60, h, 1)
}

func TestApplyAlphaModScalesAlpha(t *testing.T) {
	c := NewColor("80FF0000")
	applyAlphaMod(&c, 0.5)
	assert.InDelta(t, 64, int(c.GetAlpha()), 1)
}

func TestGammaRoundTrip(t *testing.T) {
	c := NewColor("3399CC")
	orig := c
	applyGamma(&c)
	applyInvGamma(&c)
	assert.InDelta(t, int(orig.GetRed()), int(c.GetRed()), 2)
	assert.InDelta(t, int(orig.GetGreen()), int(c.GetGreen()), 2)
	assert.InDelta(t, int(orig.GetBlue()), int(c.GetBlue()), 2)
}

func TestRgbToHSLAndBackRoundTrips(t *testing.T) {
	c := NewColor("4472C4")
	h, s, l := rgbToHSL(&c)
	out := NewColor("000000")
	setHSL(&out, h, s, l)
	assert.InDelta(t, int(c.GetRed()), int(out.GetRed()), 2)
	assert.InDelta(t, int(c.GetGreen()), int(out.GetGreen()), 2)
	assert.InDelta(t, int(c.GetBlue()), int(out.GetBlue()), 2)
}
