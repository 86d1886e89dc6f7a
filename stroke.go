package pptxraster

import (
	"image"
	"image/color"
	"math"
)

// --- Drawing primitives ---

func (r *renderer) drawRect(rect image.Rectangle, c color.RGBA, width int) {
	for i := 0; i < width; i++ {
		// Top and bottom horizontal lines
		r.fillRectBlend(image.Rect(rect.Min.X, rect.Min.Y+i, rect.Max.X, rect.Min.Y+i+1), c)
		r.fillRectBlend(image.Rect(rect.Min.X, rect.Max.Y-1-i, rect.Max.X, rect.Max.Y-i), c)
		// Left and right vertical lines
		for y := rect.Min.Y; y < rect.Max.Y; y++ {
			r.blendPixel(rect.Min.X+i, y, c)
			r.blendPixel(rect.Max.X-1-i, y, c)
		}
	}
}

func (r *renderer) drawRectBorder(rect image.Rectangle, c color.RGBA, width int, style BorderStyle) {
	if style == BorderSolid || style == BorderNone {
		r.drawRect(rect, c, width)
		return
	}
	dashLen, gapLen := 6, 4
	if style == BorderDot {
		dashLen, gapLen = 2, 2
	}
	for i := 0; i < width; i++ {
		r.drawDashedHLine(rect.Min.X, rect.Max.X, rect.Min.Y+i, c, dashLen, gapLen)
		r.drawDashedHLine(rect.Min.X, rect.Max.X, rect.Max.Y-1-i, c, dashLen, gapLen)
		r.drawDashedVLine(rect.Min.X+i, rect.Min.Y, rect.Max.Y, c, dashLen, gapLen)
		r.drawDashedVLine(rect.Max.X-1-i, rect.Min.Y, rect.Max.Y, c, dashLen, gapLen)
	}
}

func (r *renderer) drawDashedHLine(x1, x2, y int, c color.RGBA, dashLen, gapLen int) {
	period := dashLen + gapLen
	for x := x1; x < x2; x++ {
		if (x-x1)%period < dashLen {
			r.blendPixel(x, y, c)
		}
	}
}

func (r *renderer) drawDashedVLine(x, y1, y2 int, c color.RGBA, dashLen, gapLen int) {
	period := dashLen + gapLen
	for y := y1; y < y2; y++ {
		if (y-y1)%period < dashLen {
			r.blendPixel(x, y, c)
		}
	}
}

func (r *renderer) drawLineThick(x1, y1, x2, y2 int, c color.RGBA, width int) {
	if width <= 1 {
		r.drawLine(x1, y1, x2, y2, c)
		return
	}
	dx := float64(x2 - x1)
	dy := float64(y2 - y1)
	length := math.Sqrt(dx*dx + dy*dy)
	if length < 0.5 {
		r.blendPixel(x1, y1, c)
		return
	}
	nx := -dy / length
	ny := dx / length
	hw := float64(width) / 2.0
	for i := 0; i < width; i++ {
		offset := -hw + float64(i) + 0.5
		r.drawLine(x1+int(offset*nx), y1+int(offset*ny), x2+int(offset*nx), y2+int(offset*ny), c)
	}
}

func (r *renderer) drawLine(x1, y1, x2, y2 int, c color.RGBA) {
	dx := abs(x2 - x1)
	dy := abs(y2 - y1)
	sx, sy := 1, 1
	if x1 > x2 {
		sx = -1
	}
	if y1 > y2 {
		sy = -1
	}
	err := dx - dy
	for {
		r.blendPixel(x1, y1, c)
		if x1 == x2 && y1 == y2 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x1 += sx
		}
		if e2 < dx {
			err += dx
			y1 += sy
		}
	}
}

func (r *renderer) drawLineAA(x1, y1, x2, y2 int, c color.RGBA, width int) {
	if width <= 1 {
		r.drawLineWu(float64(x1), float64(y1), float64(x2), float64(y2), c)
		return
	}
	dx := float64(x2 - x1)
	dy := float64(y2 - y1)
	length := math.Sqrt(dx*dx + dy*dy)
	if length < 0.5 {
		r.blendPixel(x1, y1, c)
		return
	}
	nx := -dy / length
	ny := dx / length
	hw := float64(width) / 2.0
	for i := 0; i < width; i++ {
		offset := -hw + float64(i) + 0.5
		ox := offset * nx
		oy := offset * ny
		r.drawLineWu(float64(x1)+ox, float64(y1)+oy, float64(x2)+ox, float64(y2)+oy, c)
	}
}

// drawDashedLineAA draws a dashed or dotted anti-aliased line.
func (r *renderer) drawDashedLineAA(x1, y1, x2, y2 int, c color.RGBA, width int, style BorderStyle) {
	if style == BorderSolid || style == BorderNone {
		r.drawLineAA(x1, y1, x2, y2, c, width)
		return
	}
	dx := float64(x2 - x1)
	dy := float64(y2 - y1)
	length := math.Sqrt(dx*dx + dy*dy)
	if length < 1 {
		r.blendPixel(x1, y1, c)
		return
	}
	dashLen := 12.0
	gapLen := 6.0
	if style == BorderDot {
		dashLen = 3.0
		gapLen = 3.0
	}
	// Scale dash/gap by line width for visual consistency
	if width > 1 {
		dashLen *= float64(width) * 0.4
		gapLen *= float64(width) * 0.4
	}
	ux := dx / length
	uy := dy / length
	pos := 0.0
	drawing := true
	segStart := 0.0
	for pos < length {
		segLen := dashLen
		if !drawing {
			segLen = gapLen
		}
		segEnd := pos + segLen
		if segEnd > length {
			segEnd = length
		}
		if drawing {
			sx := x1 + int(ux*segStart)
			sy := y1 + int(uy*segStart)
			ex := x1 + int(ux*segEnd)
			ey := y1 + int(uy*segEnd)
			r.drawLineAA(sx, sy, ex, ey, c, width)
		}
		pos = segEnd
		segStart = segEnd
		drawing = !drawing
	}
}

// drawDashedPolylineAA draws a dashed/dotted polyline with continuous dash pattern
// across all segments, so the dash state carries over from one segment to the next.
func (r *renderer) drawDashedPolylineAA(pts []fpoint, c color.RGBA, width int, style BorderStyle) {
	if len(pts) < 2 {
		return
	}
	dashLen := 12.0
	gapLen := 6.0
	if style == BorderDot {
		dashLen = 3.0
		gapLen = 3.0
	}
	if width > 1 {
		dashLen *= float64(width) * 0.4
		gapLen *= float64(width) * 0.4
	}
	drawing := true
	remain := dashLen // remaining length in current dash/gap phase

	for i := 1; i < len(pts); i++ {
		sx, sy := pts[i-1].x, pts[i-1].y
		ex, ey := pts[i].x, pts[i].y
		dx := ex - sx
		dy := ey - sy
		segLen := math.Sqrt(dx*dx + dy*dy)
		if segLen < 0.5 {
			continue
		}
		ux := dx / segLen
		uy := dy / segLen
		pos := 0.0
		for pos < segLen {
			step := remain
			if pos+step > segLen {
				step = segLen - pos
			}
			if drawing {
				ax := int(sx + ux*pos)
				ay := int(sy + uy*pos)
				bx := int(sx + ux*(pos+step))
				by := int(sy + uy*(pos+step))
				r.drawLineAA(ax, ay, bx, by, c, width)
			}
			pos += step
			remain -= step
			if remain <= 0 {
				drawing = !drawing
				if drawing {
					remain = dashLen
				} else {
					remain = gapLen
				}
			}
		}
	}
}

// drawCubicBezierAA draws a cubic Bezier curve using adaptive subdivision.
func (r *renderer) drawCubicBezierAA(x0, y0, x1, y1, x2, y2, x3, y3 float64, c color.RGBA, width int) {
	// Flatten the Bezier into line segments
	pts := r.flattenCubicBezier(x0, y0, x1, y1, x2, y2, x3, y3, 0)
	pts = append([]fpoint{{x0, y0}}, pts...)
	pts = append(pts, fpoint{x3, y3})
	for i := 1; i < len(pts); i++ {
		r.drawLineAA(int(pts[i-1].x), int(pts[i-1].y), int(pts[i].x), int(pts[i].y), c, width)
	}
}

// drawDashedCubicBezierAA draws a dashed cubic Bezier curve.
func (r *renderer) drawDashedCubicBezierAA(x0, y0, x1, y1, x2, y2, x3, y3 float64, c color.RGBA, width int, style BorderStyle) {
	if style == BorderSolid || style == BorderNone {
		r.drawCubicBezierAA(x0, y0, x1, y1, x2, y2, x3, y3, c, width)
		return
	}
	pts := r.flattenCubicBezier(x0, y0, x1, y1, x2, y2, x3, y3, 0)
	pts = append([]fpoint{{x0, y0}}, pts...)
	pts = append(pts, fpoint{x3, y3})
	for i := 1; i < len(pts); i++ {
		r.drawDashedLineAA(int(pts[i-1].x), int(pts[i-1].y), int(pts[i].x), int(pts[i].y), c, width, style)
	}
}

// flattenCubicBezier recursively subdivides a cubic Bezier into line segments.
func (r *renderer) flattenCubicBezier(x0, y0, x1, y1, x2, y2, x3, y3 float64, depth int) []fpoint {
	if depth > 8 {
		return nil
	}
	// Check if the curve is flat enough
	dx := x3 - x0
	dy := y3 - y0
	d := math.Sqrt(dx*dx + dy*dy)
	if d < 0.5 {
		return nil
	}
	// Distance of control points from the line (x0,y0)-(x3,y3)
	d1 := math.Abs((x1-x0)*dy-(y1-y0)*dx) / d
	d2 := math.Abs((x2-x0)*dy-(y2-y0)*dx) / d
	if d1+d2 < 1.0 {
		return nil
	}
	// Subdivide at t=0.5
	mx01 := (x0 + x1) / 2
	my01 := (y0 + y1) / 2
	mx12 := (x1 + x2) / 2
	my12 := (y1 + y2) / 2
	mx23 := (x2 + x3) / 2
	my23 := (y2 + y3) / 2
	mx012 := (mx01 + mx12) / 2
	my012 := (my01 + my12) / 2
	mx123 := (mx12 + mx23) / 2
	my123 := (my12 + my23) / 2
	mx0123 := (mx012 + mx123) / 2
	my0123 := (my012 + my123) / 2

	left := r.flattenCubicBezier(x0, y0, mx01, my01, mx012, my012, mx0123, my0123, depth+1)
	right := r.flattenCubicBezier(mx0123, my0123, mx123, my123, mx23, my23, x3, y3, depth+1)
	result := append(left, fpoint{mx0123, my0123})
	result = append(result, right...)
	return result
}

func (r *renderer) drawLineWu(x0, y0, x1, y1 float64, c color.RGBA) {
	steep := math.Abs(y1-y0) > math.Abs(x1-x0)
	if steep {
		x0, y0 = y0, x0
		x1, y1 = y1, x1
	}
	if x0 > x1 {
		x0, x1 = x1, x0
		y0, y1 = y1, y0
	}
	dx := x1 - x0
	dy := y1 - y0
	gradient := 0.0
	if dx != 0 {
		gradient = dy / dx
	}

	// First endpoint
	xend := math.Round(x0)
	yend := y0 + gradient*(xend-x0)
	xgap := 1.0 - fpart(x0+0.5)
	xpxl1 := int(xend)
	ypxl1 := int(math.Floor(yend))
	if steep {
		r.blendPixelF(ypxl1, xpxl1, c, (1-fpart(yend))*xgap)
		r.blendPixelF(ypxl1+1, xpxl1, c, fpart(yend)*xgap)
	} else {
		r.blendPixelF(xpxl1, ypxl1, c, (1-fpart(yend))*xgap)
		r.blendPixelF(xpxl1, ypxl1+1, c, fpart(yend)*xgap)
	}
	intery := yend + gradient

	// Second endpoint
	xend = math.Round(x1)
	yend = y1 + gradient*(xend-x1)
	xgap = fpart(x1 + 0.5)
	xpxl2 := int(xend)
	ypxl2 := int(math.Floor(yend))
	if steep {
		r.blendPixelF(ypxl2, xpxl2, c, (1-fpart(yend))*xgap)
		r.blendPixelF(ypxl2+1, xpxl2, c, fpart(yend)*xgap)
	} else {
		r.blendPixelF(xpxl2, ypxl2, c, (1-fpart(yend))*xgap)
		r.blendPixelF(xpxl2, ypxl2+1, c, fpart(yend)*xgap)
	}

	for x := xpxl1 + 1; x < xpxl2; x++ {
		iy := int(math.Floor(intery))
		f := fpart(intery)
		if steep {
			r.blendPixelF(iy, x, c, 1-f)
			r.blendPixelF(iy+1, x, c, f)
		} else {
			r.blendPixelF(x, iy, c, 1-f)
			r.blendPixelF(x, iy+1, c, f)
		}
		intery += gradient
	}
}

func fpart(x float64) float64 { return x - math.Floor(x) }

