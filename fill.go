package pptxraster

import (
	"image"
	"image/color"
	"math"
)

// --- Fill rendering ---

func (r *renderer) renderFill(fill *Fill, rect image.Rectangle) {
	if fill == nil || fill.Type == FillNone {
		return
	}
	switch fill.Type {
	case FillSolid:
		fc := argbToRGBA(fill.Color)
		fc = r.scaleAlpha(fc)
		r.fillRectBlend(rect, fc)
	case FillGradientLinear:
		r.fillGradientLinear(rect, fill)
	case FillGradientPath:
		r.fillGradientPath(rect, fill)
	}
}

// renderCustomPathFill fills a custom geometry path within the given shape bounds.
func (r *renderer) renderCustomPathFill(cp *CustomGeomPath, fill *Fill, ox, oy, w, h int) {
	if fill == nil || fill.Type == FillNone || cp == nil || len(cp.Commands) == 0 {
		return
	}
	// Convert path coordinates to pixel coordinates
	pts := r.customPathToPixelPoints(cp, ox, oy, w, h)
	if len(pts) < 3 {
		return
	}
	fc := argbToRGBA(fill.Color)
	fc = r.scaleAlpha(fc)
	r.fillPolygon(pts, fc)
}

// customPathToPixelPoints converts a custom geometry path to pixel-space fpoints.
func (r *renderer) customPathToPixelPoints(cp *CustomGeomPath, ox, oy, w, h int) []fpoint {
	if cp.Width <= 0 || cp.Height <= 0 {
		return nil
	}
	scX := float64(w) / float64(cp.Width)
	scY := float64(h) / float64(cp.Height)

	toPixel := func(p PathPoint) fpoint {
		return fpoint{float64(ox) + float64(p.X)*scX, float64(oy) + float64(p.Y)*scY}
	}

	var pts []fpoint
	var lastPt fpoint
	for _, cmd := range cp.Commands {
		switch cmd.Type {
		case "moveTo", "lnTo":
			if len(cmd.Pts) > 0 {
				p := toPixel(cmd.Pts[0])
				pts = append(pts, p)
				lastPt = p
			}
		case "cubicBezTo":
			// Flatten cubic bezier into line segments for accurate curves
			if len(cmd.Pts) >= 3 {
				cp1 := toPixel(cmd.Pts[0])
				cp2 := toPixel(cmd.Pts[1])
				ep := toPixel(cmd.Pts[2])
				bezPts := r.flattenCubicBezier(lastPt.x, lastPt.y, cp1.x, cp1.y, cp2.x, cp2.y, ep.x, ep.y, 0)
				pts = append(pts, bezPts...)
				pts = append(pts, ep)
				lastPt = ep
			}
		case "quadBezTo":
			// Flatten quadratic bezier by converting to cubic
			if len(cmd.Pts) >= 2 {
				cp1 := toPixel(cmd.Pts[0])
				ep := toPixel(cmd.Pts[1])
				// Convert quadratic to cubic: CP1' = P0 + 2/3*(CP-P0), CP2' = EP + 2/3*(CP-EP)
				c1x := lastPt.x + 2.0/3.0*(cp1.x-lastPt.x)
				c1y := lastPt.y + 2.0/3.0*(cp1.y-lastPt.y)
				c2x := ep.x + 2.0/3.0*(cp1.x-ep.x)
				c2y := ep.y + 2.0/3.0*(cp1.y-ep.y)
				bezPts := r.flattenCubicBezier(lastPt.x, lastPt.y, c1x, c1y, c2x, c2y, ep.x, ep.y, 0)
				pts = append(pts, bezPts...)
				pts = append(pts, ep)
				lastPt = ep
			}
		case "close":
			// close is implicit in fillPolygon
		case "arcTo":
			// OOXML arcTo: wR/hR are ellipse radii in path coords,
			// stAng/swAng are in 60000ths of a degree.
			// The arc is drawn on an ellipse whose center is computed so
			// that the arc starts at lastPt.
			wR := float64(cmd.WR) * scX
			hR := float64(cmd.HR) * scY
			stAngDeg := float64(cmd.StAng) / 60000.0
			swAngDeg := float64(cmd.SwAng) / 60000.0
			stRad := stAngDeg * math.Pi / 180.0
			swRad := swAngDeg * math.Pi / 180.0

			if wR < 0.5 || hR < 0.5 {
				// Degenerate arc — skip
				break
			}

			// Center of the ellipse: lastPt is on the ellipse at stAng
			cx := lastPt.x - wR*math.Cos(stRad)
			cy := lastPt.y - hR*math.Sin(stRad)

			// Number of steps proportional to arc length
			steps := maxInt(int(math.Abs(swRad)*(wR+hR)*0.5), 8)
			angleStep := swRad / float64(steps)
			for i := 1; i <= steps; i++ {
				a := stRad + angleStep*float64(i)
				p := fpoint{cx + wR*math.Cos(a), cy + hR*math.Sin(a)}
				pts = append(pts, p)
				lastPt = p
			}
		}
	}
	return pts
}

// scaleAlpha applies the overlayOpacityScale to semi-transparent colors.
func (r *renderer) scaleAlpha(c color.RGBA) color.RGBA {
	scale := r.overlayOpacityScale
	if scale <= 0 || scale >= 1.0 {
		return c
	}
	if c.A < 255 && c.A > 0 {
		c.A = uint8(float64(c.A) * scale)
	}
	return c
}

func (r *renderer) fillGradientLinear(rect image.Rectangle, fill *Fill) {
	startC := argbToRGBA(fill.Color)
	endC := argbToRGBA(fill.EndColor)
	w := rect.Dx()
	h := rect.Dy()
	if w <= 0 || h <= 0 {
		return
	}
	rad := float64(fill.Rotation) * math.Pi / 180.0
	cosA := math.Cos(rad)
	sinA := math.Sin(rad)
	cx := float64(w) / 2
	cy := float64(h) / 2
	maxProj := math.Abs(cx*cosA) + math.Abs(cy*sinA)
	if maxProj < 1 {
		maxProj = 1
	}
	invMaxProj := 1.0 / (2 * maxProj)

	// Pre-compute row-independent part
	pix := r.img.Pix
	bounds := r.img.Bounds()
	stride := r.img.Stride

	for py := rect.Min.Y; py < rect.Max.Y; py++ {
		if py < bounds.Min.Y || py >= bounds.Max.Y {
			continue
		}
		dyf := float64(py-rect.Min.Y) - cy
		rowBase := dyf*sinA + maxProj
		off := (py-bounds.Min.Y)*stride + (maxInt(rect.Min.X, bounds.Min.X)-bounds.Min.X)*4
		for px := maxInt(rect.Min.X, bounds.Min.X); px < minInt(rect.Max.X, bounds.Max.X); px++ {
			dxf := float64(px-rect.Min.X) - cx
			t := (dxf*cosA + rowBase) * invMaxProj
			if t < 0 {
				t = 0
			} else if t > 1 {
				t = 1
			}
			it := 1 - t
			pix[off] = uint8(float64(startC.R)*it + float64(endC.R)*t)
			pix[off+1] = uint8(float64(startC.G)*it + float64(endC.G)*t)
			pix[off+2] = uint8(float64(startC.B)*it + float64(endC.B)*t)
			pix[off+3] = uint8(float64(startC.A)*it + float64(endC.A)*t)
			off += 4
		}
	}
}

func (r *renderer) fillGradientPath(rect image.Rectangle, fill *Fill) {
	startC := argbToRGBA(fill.Color)
	endC := argbToRGBA(fill.EndColor)
	w := rect.Dx()
	h := rect.Dy()
	if w <= 0 || h <= 0 {
		return
	}
	cx := float64(w) / 2
	cy := float64(h) / 2
	maxDist := math.Sqrt(cx*cx + cy*cy)
	if maxDist < 1 {
		maxDist = 1
	}
	invMaxDist := 1.0 / maxDist

	pix := r.img.Pix
	bounds := r.img.Bounds()
	stride := r.img.Stride

	for py := rect.Min.Y; py < rect.Max.Y; py++ {
		if py < bounds.Min.Y || py >= bounds.Max.Y {
			continue
		}
		dyf := float64(py-rect.Min.Y) - cy
		dy2 := dyf * dyf
		off := (py-bounds.Min.Y)*stride + (maxInt(rect.Min.X, bounds.Min.X)-bounds.Min.X)*4
		for px := maxInt(rect.Min.X, bounds.Min.X); px < minInt(rect.Max.X, bounds.Max.X); px++ {
			dxf := float64(px-rect.Min.X) - cx
			t := math.Sqrt(dxf*dxf+dy2) * invMaxDist
			if t > 1 {
				t = 1
			}
			it := 1 - t
			pix[off] = uint8(float64(startC.R)*it + float64(endC.R)*t)
			pix[off+1] = uint8(float64(startC.G)*it + float64(endC.G)*t)
			pix[off+2] = uint8(float64(startC.B)*it + float64(endC.B)*t)
			pix[off+3] = uint8(float64(startC.A)*it + float64(endC.A)*t)
			off += 4
		}
	}
}

func lerpColor(a, b color.RGBA, t float64) color.RGBA {
	it := 1 - t
	return color.RGBA{
		R: uint8(float64(a.R)*it + float64(b.R)*t),
		G: uint8(float64(a.G)*it + float64(b.G)*t),
		B: uint8(float64(a.B)*it + float64(b.B)*t),
		A: uint8(float64(a.A)*it + float64(b.A)*t),
	}
}
