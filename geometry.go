package pptxraster

import (
	"image"
	"image/color"
	"math"
)

// --- Preset shape geometry ---

// PresetGeometryPoint is a single vertex of a preset-shape outline in
// pixel space, the unit TransformCalculator-adjacent geometry functions
// below build up before handing off to the polygon fill/stroke routines.
type PresetGeometryPoint = fpoint

func (r *renderer) fillRegularPolygon(x, y, w, h, sides int, startAngle float64, c color.RGBA) {
	pts := regularPolygonPoints(x, y, w, h, sides, startAngle)
	r.fillPolygon(pts, c)
}

func regularPolygonPoints(x, y, w, h, sides int, startAngle float64) []fpoint {
	cx := float64(x) + float64(w)/2
	cy := float64(y) + float64(h)/2
	rx := float64(w) / 2
	ry := float64(h) / 2
	pts := make([]fpoint, sides)
	for i := 0; i < sides; i++ {
		angle := startAngle + float64(i)*2*math.Pi/float64(sides)
		pts[i] = fpoint{cx + rx*math.Cos(angle), cy + ry*math.Sin(angle)}
	}
	return pts
}

func (r *renderer) fillPentagon(x, y, w, h int, c color.RGBA) {
	r.fillRegularPolygon(x, y, w, h, 5, -math.Pi/2, c)
}

func (r *renderer) fillHexagon(x, y, w, h int, c color.RGBA) {
	r.fillRegularPolygon(x, y, w, h, 6, 0, c)
}

func (r *renderer) fillStar(x, y, w, h, points int, c color.RGBA) {
	cx := float64(x) + float64(w)/2
	cy := float64(y) + float64(h)/2
	outerRx, outerRy := float64(w)/2, float64(h)/2
	innerRx, innerRy := outerRx*0.4, outerRy*0.4
	n := points * 2
	pts := make([]fpoint, n)
	for i := 0; i < n; i++ {
		angle := -math.Pi/2 + float64(i)*2*math.Pi/float64(n)
		rx, ry := outerRx, outerRy
		if i%2 == 1 {
			rx, ry = innerRx, innerRy
		}
		pts[i] = fpoint{cx + rx*math.Cos(angle), cy + ry*math.Sin(angle)}
	}
	r.fillPolygon(pts, c)
}

func (r *renderer) fillArrowRight(x, y, w, h int, c color.RGBA) {
	shaftH := float64(h) * 0.4
	headW := float64(w) * 0.35
	shaftW := float64(w) - headW
	top := float64(y) + (float64(h)-shaftH)/2
	bot := top + shaftH
	r.fillPolygon([]fpoint{
		{float64(x), top}, {float64(x) + shaftW, top}, {float64(x) + shaftW, float64(y)},
		{float64(x + w), float64(y) + float64(h)/2},
		{float64(x) + shaftW, float64(y + h)}, {float64(x) + shaftW, bot}, {float64(x), bot},
	}, c)
}

func (r *renderer) fillArrowLeft(x, y, w, h int, c color.RGBA) {
	shaftH := float64(h) * 0.4
	headW := float64(w) * 0.35
	top := float64(y) + (float64(h)-shaftH)/2
	bot := top + shaftH
	r.fillPolygon([]fpoint{
		{float64(x + w), top}, {float64(x) + headW, top}, {float64(x) + headW, float64(y)},
		{float64(x), float64(y) + float64(h)/2},
		{float64(x) + headW, float64(y + h)}, {float64(x) + headW, bot}, {float64(x + w), bot},
	}, c)
}

func (r *renderer) fillArrowUp(x, y, w, h int, c color.RGBA) {
	shaftW := float64(w) * 0.4
	headH := float64(h) * 0.35
	left := float64(x) + (float64(w)-shaftW)/2
	right := left + shaftW
	r.fillPolygon([]fpoint{
		{float64(x) + float64(w)/2, float64(y)},
		{float64(x + w), float64(y) + headH}, {right, float64(y) + headH},
		{right, float64(y + h)}, {left, float64(y + h)},
		{left, float64(y) + headH}, {float64(x), float64(y) + headH},
	}, c)
}

func (r *renderer) fillArrowDown(x, y, w, h int, c color.RGBA) {
	shaftW := float64(w) * 0.4
	headH := float64(h) * 0.35
	shaftTop := float64(h) - headH
	left := float64(x) + (float64(w)-shaftW)/2
	right := left + shaftW
	r.fillPolygon([]fpoint{
		{left, float64(y)}, {right, float64(y)},
		{right, float64(y) + shaftTop}, {float64(x + w), float64(y) + shaftTop},
		{float64(x) + float64(w)/2, float64(y + h)},
		{float64(x), float64(y) + shaftTop}, {left, float64(y) + shaftTop},
	}, c)
}

func (r *renderer) fillHeart(x, y, w, h int, c color.RGBA) {
	cx := float64(x) + float64(w)/2
	topY := float64(y) + float64(h)*0.3
	halfW := float64(w) / 2
	hScale := float64(h) * 0.7

	for py := y; py < y+h; py++ {
		ny := 1 - (float64(py)-topY)/hScale
		ny2 := ny * ny
		ny3 := ny2 * ny
		for px := x; px < x+w; px++ {
			nx := (float64(px) - cx) / halfW
			nx2 := nx * nx
			val := (nx2 + ny2 - 1)
			val = val * val * val
			val -= nx2 * ny3
			if val <= 0 {
				r.blendPixel(px, py, c)
			}
		}
	}
}

func (r *renderer) fillPlus(x, y, w, h int, c color.RGBA) {
	armW := w / 3
	armH := h / 3
	r.fillRectBlend(image.Rect(x, y+armH, x+w, y+h-armH), c)
	r.fillRectBlend(image.Rect(x+armW, y, x+w-armW, y+h), c)
}

func (r *renderer) fillChevron(x, y, w, h int, c color.RGBA) {
	notch := w / 4
	pts := []fpoint{
		{float64(x), float64(y)},
		{float64(x + w - notch), float64(y)},
		{float64(x + w), float64(y + h/2)},
		{float64(x + w - notch), float64(y + h)},
		{float64(x), float64(y + h)},
		{float64(x + notch), float64(y + h/2)},
	}
	r.fillPolygon(pts, c)
}

func (r *renderer) fillParallelogram(x, y, w, h int, c color.RGBA) {
	offset := w / 4
	pts := []fpoint{
		{float64(x + offset), float64(y)},
		{float64(x + w), float64(y)},
		{float64(x + w - offset), float64(y + h)},
		{float64(x), float64(y + h)},
	}
	r.fillPolygon(pts, c)
}

func (r *renderer) fillLeftRightArrow(x, y, w, h int, c color.RGBA) {
	headW := w / 4
	bodyH := h / 3
	pts := []fpoint{
		{float64(x), float64(y + h/2)},
		{float64(x + headW), float64(y)},
		{float64(x + headW), float64(y + bodyH)},
		{float64(x + w - headW), float64(y + bodyH)},
		{float64(x + w - headW), float64(y)},
		{float64(x + w), float64(y + h/2)},
		{float64(x + w - headW), float64(y + h)},
		{float64(x + w - headW), float64(y + h - bodyH)},
		{float64(x + headW), float64(y + h - bodyH)},
		{float64(x + headW), float64(y + h)},
	}
	r.fillPolygon(pts, c)
}

func (r *renderer) fillRtTriangle(x, y, w, h int, c color.RGBA) {
	pts := []fpoint{
		{float64(x), float64(y + h)},
		{float64(x), float64(y)},
		{float64(x + w), float64(y + h)},
	}
	r.fillPolygon(pts, c)
}

func (r *renderer) fillHomePlate(x, y, w, h int, c color.RGBA) {
	notch := w / 5
	pts := []fpoint{
		{float64(x), float64(y)},
		{float64(x + w - notch), float64(y)},
		{float64(x + w), float64(y + h/2)},
		{float64(x + w - notch), float64(y + h)},
		{float64(x), float64(y + h)},
	}
	r.fillPolygon(pts, c)
}

// snip2SameRectPoints computes the polygon points for a snip2SameRect shape.
// In OOXML snip2SameRect, adj1 controls the bottom-left and bottom-right snip,
// adj2 controls the top-left and top-right snip.
func (r *renderer) snip2SameRectPoints(x, y, w, h int, adj map[string]int) []fpoint {
	adj1v := 16667 // default snip for bottom corners
	adj2v := 0     // default snip for top corners
	if adj != nil {
		if v, ok := adj["adj1"]; ok {
			adj1v = v
		}
		if v, ok := adj["adj2"]; ok {
			adj2v = v
		}
	}
	ss := minInt(w, h)
	snipBot := float64(ss) * float64(adj1v) / 100000.0
	snipTop := float64(ss) * float64(adj2v) / 100000.0
	fx, fy := float64(x), float64(y)
	fw, fh := float64(w), float64(h)

	return []fpoint{
		{fx + snipTop, fy},           // top-left snip end
		{fx + fw - snipTop, fy},      // top-right snip start
		{fx + fw, fy + snipTop},      // top-right snip end
		{fx + fw, fy + fh - snipBot}, // bottom-right snip start
		{fx + fw - snipBot, fy + fh}, // bottom-right snip end
		{fx + snipBot, fy + fh},      // bottom-left snip start
		{fx, fy + fh - snipBot},      // bottom-left snip end
		{fx, fy + snipTop},           // top-left snip start
	}
}

func (r *renderer) fillSnip2SameRect(x, y, w, h int, c color.RGBA, adj map[string]int) {
	pts := r.snip2SameRectPoints(x, y, w, h, adj)
	r.fillPolygon(pts, c)
}


func (r *renderer) fillBentArrow(x, y, w, h int, c color.RGBA, adj map[string]int) {
	// OOXML bentArrow preset geometry.
	// L-shaped arrow: vertical shaft going up, then turns right with arrowhead.
	// adj1 = shaft width as fraction of width / 100000 (default 25000)
	// adj2 = arrowhead extra width / 100000 (default 25000)
	// adj3 = arrowhead length as fraction of width / 100000 (default 25000)
	// adj4 = bend position as fraction of height / 100000 (default 43750)
	adj1v := 25000
	adj2v := 25000
	adj3v := 25000
	adj4v := 43750
	if adj != nil {
		if v, ok := adj["adj1"]; ok {
			adj1v = v
		}
		if v, ok := adj["adj2"]; ok {
			adj2v = v
		}
		if v, ok := adj["adj3"]; ok {
			adj3v = v
		}
		if v, ok := adj["adj4"]; ok {
			adj4v = v
		}
	}

	fx, fy := float64(x), float64(y)
	fw, fh := float64(w), float64(h)

	shaftW := fw * float64(adj1v) / 100000.0
	headExtra := fw * float64(adj2v) / 100000.0
	headLen := fw * float64(adj3v) / 100000.0
	bendY := fy + fh*float64(adj4v)/100000.0

	tipX := fx + fw
	arrowCenterY := bendY - shaftW/2
	arrowBaseX := tipX - headLen
	arrowTop := arrowCenterY - shaftW/2 - headExtra
	arrowBot := arrowCenterY + shaftW/2 + headExtra

	// Corner radius for rounded corners
	cornerR := shaftW * 0.85
	if cornerR < 1 {
		cornerR = 1
	}

	pts := []fpoint{
		{fx, fy + fh}, // bottom-left
	}

	// Outer corner: rounded arc from vertical outer edge to horizontal top
	// The outer corner is at (fx, bendY - shaftW)
	outerCornerX := fx
	outerCornerY := bendY - shaftW
	outerR := cornerR
	// Clamp outer radius so it doesn't exceed available space
	maxOuterR := math.Min(outerCornerY-(fy), fw*0.3)
	if outerR > maxOuterR && maxOuterR > 0 {
		outerR = maxOuterR
	}
	// Arc from vertical (going up) to horizontal (going right)
	// Arc center at (outerCornerX + outerR, outerCornerY + outerR)
	ocx := outerCornerX + outerR
	ocy := outerCornerY + outerR
	arcSteps := 12
	// Start point: on the vertical edge, approaching the corner from below
	pts = append(pts, fpoint{fx, ocy})
	for i := 0; i <= arcSteps; i++ {
		t := float64(i) / float64(arcSteps)
		angle := math.Pi + t*math.Pi/2.0 // π to 3π/2
		ax := ocx + outerR*math.Cos(angle)
		ay := ocy + outerR*math.Sin(angle)
		pts = append(pts, fpoint{ax, ay})
	}

	pts = append(pts,
		fpoint{arrowBaseX, bendY - shaftW}, // top edge to arrowhead base
		fpoint{arrowBaseX, arrowTop},       // arrowhead top
		fpoint{tipX, arrowCenterY},         // arrowhead tip
		fpoint{arrowBaseX, arrowBot},       // arrowhead bottom
		fpoint{arrowBaseX, bendY},          // bottom of horizontal shaft
	)

	// Inner corner: rounded arc from horizontal bottom to vertical inner edge
	innerX := fx + shaftW
	innerR := cornerR
	// Clamp inner radius
	maxInnerR := math.Min(fh-fh*float64(adj4v)/100000.0, shaftW*0.9)
	if innerR > maxInnerR && maxInnerR > 0 {
		innerR = maxInnerR
	}
	cxArc := innerX + innerR
	cyArc := bendY + innerR
	pts = append(pts, fpoint{cxArc, bendY}) // start of inner arc
	for i := 0; i <= arcSteps; i++ {
		t := float64(i) / float64(arcSteps)
		angle := math.Pi/2.0 + t*math.Pi/2.0 // π/2 to π
		ax := cxArc + innerR*math.Cos(angle)
		ay := cyArc - innerR*math.Sin(angle)
		pts = append(pts, fpoint{ax, ay})
	}

	pts = append(pts, fpoint{innerX, fy + fh}) // bottom of inner vertical edge
	r.fillPolygon(pts, c)
}

func (r *renderer) fillUturnArrow(x, y, w, h int, c color.RGBA, adj map[string]int) {
	// OOXML uturnArrow preset geometry.
	// Two vertical shafts connected by a semicircular arc at the BOTTOM.
	// The LEFT shaft has an arrowhead pointing UP.
	//
	// adj1 = shaft width (fraction of w / 100000)
	// adj2 = arrowhead extra width beyond shaft (fraction of w / 100000)
	// adj3 = arrowhead height (fraction of h / 100000)
	// adj4 = horizontal span of U-turn (fraction of w / 100000) — distance
	//        between outer edges of the two shafts
	// adj5 = total height used (fraction of h / 100000)
	adj1v := 25000
	adj2v := 25000
	adj3v := 25000
	adj4v := 43750
	adj5v := 100000
	if adj != nil {
		if v, ok := adj["adj1"]; ok {
			adj1v = v
		}
		if v, ok := adj["adj2"]; ok {
			adj2v = v
		}
		if v, ok := adj["adj3"]; ok {
			adj3v = v
		}
		if v, ok := adj["adj4"]; ok {
			adj4v = v
		}
		if v, ok := adj["adj5"]; ok {
			adj5v = v
		}
	}

	fx, fy := float64(x), float64(y)
	fw, fh := float64(w), float64(h)

	shaftW := fw * float64(adj1v) / 100000.0
	headExtra := fw * float64(adj2v) / 100000.0
	headH := fh * float64(adj3v) / 100000.0
	uWidth := fw * float64(adj4v) / 100000.0
	totalH := fh * float64(adj5v) / 100000.0

	// Two shafts side by side, connected by U-turn arc at bottom.
	// Left shaft: x=0 to x=shaftW
	// Right shaft: x=(uWidth-shaftW) to x=uWidth
	leftOuter := fx
	leftInner := fx + shaftW
	rightOuter := fx + uWidth
	rightInner := rightOuter - shaftW
	if rightInner < leftInner {
		rightInner = leftInner
	}

	// Arc at BOTTOM connecting the two shafts
	outerRx := uWidth / 2
	gap := rightInner - leftInner
	if gap < 0 {
		gap = 0
	}
	innerRx := gap / 2
	arcCX := (leftOuter + rightOuter) / 2

	// Arc Ry: semicircular — use outerRx as Ry for a circular arc,
	// but cap to available height after arrowhead.
	availH := totalH - headH
	outerRy := outerRx
	if outerRy > availH*0.5 {
		outerRy = availH * 0.5
	}
	if outerRy < 1 {
		outerRy = 1
	}
	innerRy := outerRy * innerRx / outerRx
	if outerRx == 0 {
		innerRy = 0
	}

	shaftTop := fy
	arcCY := fy + totalH - outerRy

	// Arrowhead on LEFT shaft, pointing UP
	arrowCenterX := (leftOuter + leftInner) / 2
	halfHead := shaftW/2 + headExtra
	arrowLeft := arrowCenterX - halfHead
	arrowRight := arrowCenterX + halfHead
	if arrowLeft < fx {
		arrowLeft = fx
	}
	if arrowRight > fx+fw {
		arrowRight = fx + fw
	}
	arrowTipY := shaftTop
	arrowBaseY := shaftTop + headH

	pts := make([]fpoint, 0, 80)
	steps := 40

	// Start: right shaft outer, from top going down to arc
	pts = append(pts, fpoint{rightOuter, shaftTop})
	pts = append(pts, fpoint{rightOuter, arcCY})

	// Outer arc (right to left, curving DOWN)
	for i := 0; i <= steps; i++ {
		angle := math.Pi * float64(i) / float64(steps)
		px := arcCX + outerRx*math.Cos(angle)
		py := arcCY + outerRy*math.Sin(angle)
		pts = append(pts, fpoint{px, py})
	}

	// Left shaft outer, going up to arrowhead base
	pts = append(pts, fpoint{leftOuter, arcCY})
	pts = append(pts, fpoint{leftOuter, arrowBaseY})

	// Arrowhead left wing
	pts = append(pts, fpoint{arrowLeft, arrowBaseY})

	// Arrow tip (pointing up)
	pts = append(pts, fpoint{arrowCenterX, arrowTipY})

	// Arrowhead right wing
	pts = append(pts, fpoint{arrowRight, arrowBaseY})

	// Left shaft inner, going down to arc
	pts = append(pts, fpoint{leftInner, arrowBaseY})
	pts = append(pts, fpoint{leftInner, arcCY})

	// Inner arc (left to right, curving DOWN)
	for i := steps; i >= 0; i-- {
		angle := math.Pi * float64(i) / float64(steps)
		px := arcCX + innerRx*math.Cos(angle)
		py := arcCY + innerRy*math.Sin(angle)
		pts = append(pts, fpoint{px, py})
	}

	// Right shaft inner, going up to top
	pts = append(pts, fpoint{rightInner, arcCY})
	pts = append(pts, fpoint{rightInner, shaftTop})

	r.fillPolygon(pts, c)
}

// fillUturnArrowTransposed draws a U-turn arrow geometry transposed in the
// w×h buffer. The adj fractions that normally use w now use h (visual width)
// and those that use h now use w (visual height). The shafts run horizontally
// (along X) and the U-turn arc is at the right side (high X).
// This is used for 90°/270° rotations where the geometry needs to fill the
// full buffer width to span the full visual height after rotation.
func (r *renderer) fillUturnArrowTransposed(x, y, w, h int, c color.RGBA, adj map[string]int) {
	adj1v := 25000
	adj2v := 25000
	adj3v := 25000
	adj4v := 43750
	adj5v := 100000
	if adj != nil {
		if v, ok := adj["adj1"]; ok {
			adj1v = v
		}
		if v, ok := adj["adj2"]; ok {
			adj2v = v
		}
		if v, ok := adj["adj3"]; ok {
			adj3v = v
		}
		if v, ok := adj["adj4"]; ok {
			adj4v = v
		}
		if v, ok := adj["adj5"]; ok {
			adj5v = v
		}
	}

	fx, fy := float64(x), float64(y)
	fw, fh := float64(w), float64(h)

	// Transposed geometry: shafts run along X, arc connects them vertically.
	// adj1/adj2/adj4 control Y-direction dimensions → use fh (short axis in buffer,
	// becomes visual width after 270° rotation).
	// adj3/adj5 control X-direction dimensions → use fw (long axis in buffer,
	// becomes visual height after rotation, must span all boxes).
	shaftW := fh * float64(adj1v) / 100000.0    // shaft thickness (Y direction)
	headExtra := fh * float64(adj2v) / 100000.0 // extra arrowhead width beyond shaft
	headH := fw * float64(adj3v) / 100000.0     // arrowhead length (X direction)
	uWidth := fh * float64(adj4v) / 100000.0    // U-turn span between shafts (Y direction)
	totalH := fw * float64(adj5v) / 100000.0    // total shaft length (X direction)

	// Two shafts side by side in Y, running along X.
	// U-turn arc at LEFT (low X), arrowhead at RIGHT (high X).
	// After flipV + 270° CW rotation: left→top (U-turn at visual top),
	// right→bottom (arrowhead at visual bottom). But original PPT shows
	// arrowhead pointing UP and U-turn at bottom, so we need:
	// arc at RIGHT (high X) → maps to visual bottom after rotation
	// arrowhead at LEFT (low X) → maps to visual top after rotation
	topOuter := fy
	topInner := fy + shaftW
	botOuter := fy + uWidth
	botInner := botOuter - shaftW
	if botInner < topInner {
		botInner = topInner
	}

	// Arc at RIGHT connecting the two shafts
	outerRy := uWidth / 2
	gap := botInner - topInner
	if gap < 0 {
		gap = 0
	}
	innerRy := gap / 2
	arcCY := (topOuter + botOuter) / 2

	availW := totalH - headH
	outerRx := outerRy // circular arc
	if outerRx > availW*0.5 {
		outerRx = availW * 0.5
	}
	if outerRx < 1 {
		outerRx = 1
	}
	innerRx := outerRx * innerRy / outerRy
	if outerRy == 0 {
		innerRx = 0
	}

	shaftLeft := fx                // left edge (arrowhead end)
	arcCX := fx + totalH - outerRx // arc center near right edge

	// Arrowhead on TOP shaft, pointing LEFT (→ visual top after rotation)
	arrowCenterY := (topOuter + topInner) / 2
	halfHead := shaftW/2 + headExtra
	arrowTop := arrowCenterY - halfHead
	arrowBot := arrowCenterY + halfHead
	if arrowTop < fy {
		arrowTop = fy
	}
	if arrowBot > fy+fh {
		arrowBot = fy + fh
	}
	arrowTipX := shaftLeft
	arrowBaseX := shaftLeft + headH

	pts := make([]fpoint, 0, 80)
	steps := 40

	// Layout: arrowhead at LEFT (low X), U-turn arc at RIGHT (high X).
	// Top shaft has the arrowhead; bottom shaft is plain.
	// Outer path goes clockwise:
	//   bottom-shaft left edge → right along bottom outer → arc curves RIGHT →
	//   left along top outer → arrowhead → back along top inner →
	//   arc inner curves RIGHT (reverse) → left along bottom inner → close

	// 1. Bottom shaft outer: left edge to arc
	pts = append(pts, fpoint{shaftLeft, botOuter})
	pts = append(pts, fpoint{arcCX, botOuter})

	// 2. Outer arc: from bottom (botOuter) to top (topOuter), curving RIGHT
	//    At angle -π/2 (bottom): cy + outerRy = botOuter ✓
	//    At angle +π/2 (top):    cy - outerRy = topOuter ✓
	for i := 0; i <= steps; i++ {
		angle := -math.Pi/2 + math.Pi*float64(i)/float64(steps)
		px := arcCX + outerRx*math.Cos(angle)
		py := arcCY - outerRy*math.Sin(angle)
		pts = append(pts, fpoint{px, py})
	}

	// 3. Top shaft outer: from arc to arrowhead base
	pts = append(pts, fpoint{arcCX, topOuter})
	pts = append(pts, fpoint{arrowBaseX, topOuter})

	// 4. Arrowhead pointing LEFT
	pts = append(pts, fpoint{arrowBaseX, arrowTop})
	pts = append(pts, fpoint{arrowTipX, arrowCenterY})
	pts = append(pts, fpoint{arrowBaseX, arrowBot})

	// 5. Top shaft inner: from arrowhead back to arc
	pts = append(pts, fpoint{arrowBaseX, topInner})
	pts = append(pts, fpoint{arcCX, topInner})

	// 6. Inner arc: from top (topInner) to bottom (botInner), curving RIGHT (reverse)
	for i := steps; i >= 0; i-- {
		angle := -math.Pi/2 + math.Pi*float64(i)/float64(steps)
		px := arcCX + innerRx*math.Cos(angle)
		py := arcCY - innerRy*math.Sin(angle)
		pts = append(pts, fpoint{px, py})
	}

	// 7. Bottom shaft inner: from arc back to left edge
	pts = append(pts, fpoint{arcCX, botInner})
	pts = append(pts, fpoint{shaftLeft, botInner})

	r.fillPolygon(pts, c)
}
