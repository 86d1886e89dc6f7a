package pptxraster

import (
	"image"
	"image/color"
	"image/draw"
	"math"
)

// Point is a pixel-space coordinate, the named type spec.md's data model
// calls for in place of bare (int, int) pairs threaded through rendering.
type Point struct {
	X, Y int
}

// Rect is an axis-aligned pixel-space bounding box, used wherever a shape's
// on-slide extent is computed ahead of actually drawing into it.
type Rect struct {
	Min, Max Point
}

// Dx returns the rectangle's width in pixels.
func (r Rect) Dx() int { return r.Max.X - r.Min.X }

// Dy returns the rectangle's height in pixels.
func (r Rect) Dy() int { return r.Max.Y - r.Min.Y }

// toImageRect converts to the stdlib image.Rectangle rendering actually
// draws with.
func (r Rect) toImageRect() image.Rectangle {
	return image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Max.Y)
}

// Transform is a shape's resolved on-slide placement: pixel offset and
// extent plus the rotation/flip a <a:xfrm> element can carry. Rotation is
// degrees clockwise, matching DrawingML's `rot` attribute (in 60,000ths of
// a degree before resolveRotation divides it down).
type Transform struct {
	OffsetX, OffsetY int
	Width, Height    int
	RotationDeg      int
	FlipH, FlipV     bool
}

// Bounds returns the transform's unrotated pixel rectangle.
func (t Transform) Bounds() Rect {
	return Rect{Point{t.OffsetX, t.OffsetY}, Point{t.OffsetX + t.Width, t.OffsetY + t.Height}}
}

// RotatedBounds returns the axis-aligned pixel rectangle that encloses the
// transform's rect after rotation, centered on the rect's own center.
func (t Transform) RotatedBounds() Rect {
	cx := float64(t.OffsetX) + float64(t.Width)/2
	cy := float64(t.OffsetY) + float64(t.Height)/2
	b := rotatedBounds(cx, cy, t.Width, t.Height, t.RotationDeg)
	return Rect{Point{b.Min.X, b.Min.Y}, Point{b.Max.X, b.Max.Y}}
}

// rotatedBounds returns the axis-aligned image.Rectangle enclosing a w x h
// box centered at (cx, cy) after rotating it by angleDeg.
func rotatedBounds(cx, cy float64, w, h int, angleDeg int) image.Rectangle {
	rad := float64(angleDeg) * math.Pi / 180.0
	cos := math.Abs(math.Cos(rad))
	sin := math.Abs(math.Sin(rad))
	fw, fh := float64(w), float64(h)
	newW := fw*cos + fh*sin
	newH := fw*sin + fh*cos
	return image.Rect(
		int(cx-newW/2), int(cy-newH/2),
		int(cx+newW/2)+1, int(cy+newH/2)+1,
	)
}

// rotateAndComposite rotates src (sw x sh) by angleDeg and composites it into
// dst at (dx, dy) fitting into a dw x dh area. Used for vertical text where
// the text is drawn into a buffer with swapped dimensions then rotated back.
func rotateAndComposite(dst *image.RGBA, src *image.RGBA, dx, dy, dw, dh, angleDeg int) {
	sw := src.Bounds().Dx()
	sh := src.Bounds().Dy()
	if sw <= 0 || sh <= 0 || dw <= 0 || dh <= 0 {
		return
	}
	rad := float64(angleDeg) * math.Pi / 180.0
	cosA := math.Cos(rad)
	sinA := math.Sin(rad)
	// Center of source
	scx := float64(sw) / 2
	scy := float64(sh) / 2
	// Center of destination area
	dcx := float64(dx) + float64(dw)/2
	dcy := float64(dy) + float64(dh)/2

	dstBounds := dst.Bounds()
	minDY := maxInt(dy, dstBounds.Min.Y)
	maxDY := minInt(dy+dh, dstBounds.Max.Y)
	minDX := maxInt(dx, dstBounds.Min.X)
	maxDX := minInt(dx+dw, dstBounds.Max.X)

	for py := minDY; py < maxDY; py++ {
		ry := float64(py) - dcy
		for px := minDX; px < maxDX; px++ {
			rx := float64(px) - dcx
			// Inverse rotation to find source pixel
			sx := rx*cosA + ry*sinA + scx
			sy := -rx*sinA + ry*cosA + scy
			ix, iy := int(sx), int(sy)
			if ix >= 0 && ix < sw && iy >= 0 && iy < sh {
				sOff := iy*src.Stride + ix*4
				a := src.Pix[sOff+3]
				if a == 0 {
					continue
				}
				dOff := py*dst.Stride + px*4
				if a == 255 || dst.Pix[dOff+3] == 0 {
					copy(dst.Pix[dOff:dOff+4], src.Pix[sOff:sOff+4])
				} else {
					// Alpha blend
					sa := uint32(a)
					da := uint32(dst.Pix[dOff+3])
					outA := sa + da*(255-sa)/255
					if outA > 0 {
						dst.Pix[dOff] = uint8((uint32(src.Pix[sOff])*sa + uint32(dst.Pix[dOff])*(255-sa)) / 255)
						dst.Pix[dOff+1] = uint8((uint32(src.Pix[sOff+1])*sa + uint32(dst.Pix[dOff+1])*(255-sa)) / 255)
						dst.Pix[dOff+2] = uint8((uint32(src.Pix[sOff+2])*sa + uint32(dst.Pix[dOff+2])*(255-sa)) / 255)
						dst.Pix[dOff+3] = uint8(outA)
					}
				}
			}
		}
	}
}

func (r *renderer) renderRotated(x, y, w, h, rotation int, flipH, flipV bool, drawFn func(tmp *renderer)) {
	r.renderRotatedExpanded(x, y, w, h, h, rotation, flipH, flipV, drawFn)
}

// renderRotatedExpanded is like renderRotated but uses bufH for the temp buffer
// height, allowing text to overflow the shape bounds without being clipped.
// The rotation center remains at the center of the original shape (w × h).
func (r *renderer) renderRotatedExpanded(x, y, w, h, bufH, rotation int, flipH, flipV bool, drawFn func(tmp *renderer)) {
	if w <= 0 || h <= 0 {
		return
	}
	if bufH < h {
		bufH = h
	}
	tmp := image.NewRGBA(image.Rect(0, 0, w, bufH))
	tmpR := &renderer{img: tmp, scaleX: r.scaleX, scaleY: r.scaleY, fontCache: r.fontCache, dpi: r.dpi, fontScale: r.fontScale}
	drawFn(tmpR)

	if rotation == 0 && !flipH && !flipV {
		draw.Draw(r.img, image.Rect(x, y, x+w, y+bufH), tmp, image.Point{}, draw.Over)
		return
	}

	// Handle flip-only case (no rotation)
	if rotation == 0 {
		for py := 0; py < bufH; py++ {
			sy := py
			if flipV {
				sy = bufH - 1 - py
			}
			for px := 0; px < w; px++ {
				sx := px
				if flipH {
					sx = w - 1 - px
				}
				sOff := sy*tmp.Stride + sx*4
				if tmp.Pix[sOff+3] > 0 {
					r.blendPixel(x+px, y+py, color.RGBA{
						R: tmp.Pix[sOff], G: tmp.Pix[sOff+1],
						B: tmp.Pix[sOff+2], A: tmp.Pix[sOff+3],
					})
				}
			}
		}
		return
	}

	// OOXML transform order: rotate first, then flip.
	// We combine both into a single inverse mapping from destination to source.
	rad := -float64(rotation) * math.Pi / 180.0
	cosA := math.Cos(rad)
	sinA := math.Sin(rad)
	cx := float64(w) / 2
	cy := float64(h) / 2
	destCX := float64(x) + cx
	destCY := float64(y) + cy

	bounds := rotatedBounds(destCX, destCY, w, bufH, rotation)
	imgBounds := r.img.Bounds()
	minDY := maxInt(bounds.Min.Y, imgBounds.Min.Y)
	maxDY := minInt(bounds.Max.Y, imgBounds.Max.Y)
	minDX := maxInt(bounds.Min.X, imgBounds.Min.X)
	maxDX := minInt(bounds.Max.X, imgBounds.Max.X)

	for dy := minDY; dy < maxDY; dy++ {
		ry := float64(dy) - destCY
		for dx := minDX; dx < maxDX; dx++ {
			rx := float64(dx) - destCX
			// Step 1: un-flip (flip is self-inverse, applied in rotated space)
			fx, fy := rx, ry
			if flipH {
				fx = -fx
			}
			if flipV {
				fy = -fy
			}
			// Step 2: un-rotate (inverse rotation)
			sx := fx*cosA + fy*sinA + cx
			sy := -fx*sinA + fy*cosA + cy
			ix, iy := int(sx), int(sy)
			if ix >= 0 && ix < w && iy >= 0 && iy < bufH {
				sOff := iy*tmp.Stride + ix*4
				if tmp.Pix[sOff+3] > 0 {
					r.blendPixel(dx, dy, color.RGBA{
						R: tmp.Pix[sOff], G: tmp.Pix[sOff+1],
						B: tmp.Pix[sOff+2], A: tmp.Pix[sOff+3],
					})
				}
			}
		}
	}
}

// NewTransform builds a Transform from a shape's EMU-space offset/extent and
// PowerPoint's EMU-scaled rotation attribute (60,000ths of a degree).
func NewTransform(offsetXPx, offsetYPx, widthPx, heightPx int, rotEMU int, flipH, flipV bool) Transform {
	return Transform{
		OffsetX: offsetXPx, OffsetY: offsetYPx,
		Width: widthPx, Height: heightPx,
		RotationDeg: rotEMU / 60000,
		FlipH:       flipH, FlipV: flipV,
	}
}
