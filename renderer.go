package pptxraster

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	_ "image/gif"
	"image/jpeg"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
	_ "golang.org/x/image/tiff"
)

// ImageFormat represents the output image format.
type ImageFormat int

const (
	ImageFormatPNG ImageFormat = iota
	ImageFormatJPEG
)

// RenderOptions configures slide-to-image rendering.
type RenderOptions struct {
	// Width is the output image width in pixels. Height is calculated from slide aspect ratio.
	// Default: 960
	Width int
	// Format is the output image format (PNG or JPEG).
	Format ImageFormat
	// JPEGQuality is the JPEG quality (1-100). Default: 90.
	JPEGQuality int
	// BackgroundColor overrides the slide background. Nil means use slide background or white.
	BackgroundColor *color.RGBA
	// DPI is the rendering DPI for font sizing. Default: 96.
	DPI float64
	// FontDirs specifies additional directories to search for TrueType/OpenType fonts.
	// System font directories are always searched automatically.
	FontDirs []string
	// FontCache allows sharing a pre-configured FontCache across multiple renders.
	// If nil, a new FontCache is created using FontDirs.
	FontCache *FontCache
	// OverlayOpacityScale scales the opacity of semi-transparent shape fills.
	// Value between 0.0 and 1.0. Default 0 means use 1.0 (no change).
	// Set to e.g. 0.5 to halve the opacity of overlays, making dark backgrounds brighter.
	OverlayOpacityScale float64
	// LogLevel controls diagnostic output (UnsupportedFeature fallbacks,
	// media decode failures) during Render. Default: LogLevelOff.
	LogLevel LogLevel
}

// DefaultRenderOptions returns default rendering options.
func DefaultRenderOptions() *RenderOptions {
	return &RenderOptions{
		Width:       960,
		Format:      ImageFormatPNG,
		JPEGQuality: 90,
		DPI:         96,
	}
}

// SlideToImage renders a single slide to an image.
func (p *Presentation) SlideToImage(slideIndex int, opts *RenderOptions) (image.Image, error) {
	if slideIndex < 0 || slideIndex >= len(p.slides) {
		return nil, fmt.Errorf("slide index %d out of range (0-%d)", slideIndex, len(p.slides)-1)
	}
	if opts == nil {
		opts = DefaultRenderOptions()
	}
	if opts.Width <= 0 {
		opts.Width = 960
	}

	slide := p.slides[slideIndex]
	layout := p.layout

	slideW := float64(layout.CX)
	slideH := float64(layout.CY)
	imgW := opts.Width
	imgH := int(float64(imgW) * slideH / slideW)

	scaleX := float64(imgW) / slideW
	scaleY := float64(imgH) / slideH

	img := image.NewRGBA(image.Rect(0, 0, imgW, imgH))

	fc := opts.FontCache
	if fc == nil {
		fc = NewFontCache(opts.FontDirs...)
	}
	dpi := opts.DPI
	if dpi <= 0 {
		dpi = 96
	}

	r := &renderer{
		img:                 img,
		scaleX:              scaleX,
		scaleY:              scaleY,
		fontCache:           fc,
		dpi:                 dpi,
		overlayOpacityScale: opts.OverlayOpacityScale,
		logger:              NewLogger(opts.LogLevel),
	}

	// Fill background
	bgColor := color.RGBA{R: 255, G: 255, B: 255, A: 255}
	drawn := false
	if opts.BackgroundColor != nil {
		bgColor = *opts.BackgroundColor
	} else if slide.background != nil {
		switch slide.background.Type {
		case FillSolid:
			bgColor = argbToRGBA(slide.background.Color)
		case FillGradientLinear:
			r.fillGradientLinear(img.Bounds(), slide.background)
			drawn = true
		case FillGradientPath:
			r.fillGradientPath(img.Bounds(), slide.background)
			drawn = true
		}
	}
	if !drawn {
		r.fillRectFast(img.Bounds(), bgColor)
	}

	// Render shapes in their original XML order (z-order).
	// Shapes that appear earlier in the spTree are behind shapes that appear later,
	// matching PowerPoint's rendering behavior.
	for _, shape := range slide.shapes {
		r.renderShape(shape)
	}

	return img, nil
}

// SlidesToImages renders all slides to images.
func (p *Presentation) SlidesToImages(opts *RenderOptions) ([]image.Image, error) {
	if opts == nil {
		opts = DefaultRenderOptions()
	}
	if opts.FontCache == nil {
		opts.FontCache = NewFontCache(opts.FontDirs...)
	}
	images := make([]image.Image, len(p.slides))
	for i := range p.slides {
		img, err := p.SlideToImage(i, opts)
		if err != nil {
			return nil, fmt.Errorf("slide %d: %w", i, err)
		}
		images[i] = img
	}
	return images, nil
}

// SaveSlideAsImage renders a slide and saves it to a file.
func (p *Presentation) SaveSlideAsImage(slideIndex int, path string, opts *RenderOptions) error {
	img, err := p.SlideToImage(slideIndex, opts)
	if err != nil {
		return err
	}
	return saveImage(img, path, opts)
}

// SaveSlidesAsImages renders all slides and saves them to files.
// The pattern should contain %d for the slide number (1-based), e.g. "slide_%d.png".
func (p *Presentation) SaveSlidesAsImages(pattern string, opts *RenderOptions) error {
	for i := range p.slides {
		path := fmt.Sprintf(pattern, i+1)
		if err := p.SaveSlideAsImage(i, path, opts); err != nil {
			return fmt.Errorf("slide %d: %w", i+1, err)
		}
	}
	return nil
}

func saveImage(img image.Image, path string, opts *RenderOptions) error {
	if opts == nil {
		opts = DefaultRenderOptions()
	}
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("create directory: %w", err)
		}
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return fmt.Errorf("create file: %w", err)
	}
	var encodeErr error
	switch opts.Format {
	case ImageFormatJPEG:
		quality := opts.JPEGQuality
		if quality <= 0 || quality > 100 {
			quality = 90
		}
		encodeErr = jpeg.Encode(f, img, &jpeg.Options{Quality: quality})
	default:
		encodeErr = png.Encode(f, img)
	}
	closeErr := f.Close()
	if encodeErr != nil {
		return encodeErr
	}
	return closeErr
}

// --- renderer core ---

type renderer struct {
	img                 *image.RGBA
	scaleX              float64
	scaleY              float64
	fontCache           *FontCache
	dpi                 float64
	overlayOpacityScale float64 // 0 means 1.0 (no change)
	fontScale           float64 // normAutofit font scale factor (0 or 1.0 = no scaling)
	logger              *Logger
}

func (r *renderer) renderShape(shape Shape) {
	switch s := shape.(type) {
	case *RichTextShape:
		r.renderRichText(s)
	case *PlaceholderShape:
		r.renderRichText(&s.RichTextShape)
	case *DrawingShape:
		r.renderDrawing(s)
	case *AutoShape:
		r.renderAutoShape(s)
	case *LineShape:
		r.renderLine(s)
	case *TableShape:
		r.renderTable(s)
	case *ChartShape:
		r.renderChart(s)
	case *GroupShape:
		r.renderGroup(s)
	}
}

func (r *renderer) emuToPixelX(emu int64) int { return int(math.Round(float64(emu) * r.scaleX)) }
func (r *renderer) emuToPixelY(emu int64) int { return int(math.Round(float64(emu) * r.scaleY)) }

// hundredthPtToPixelY converts hundredths of a point (from spcPts) to pixels.
// spcPts values are in 1/100 of a point, e.g. 1200 = 12pt.
// 1 point = 12700 EMU, so 1/100 point = 127 EMU.
func (r *renderer) hundredthPtToPixelY(val int) int {
	emu := float64(val) * 127.0
	return int(emu * r.scaleY)
}

func argbToRGBA(c Color) color.RGBA {
	return color.RGBA{R: c.GetRed(), G: c.GetGreen(), B: c.GetBlue(), A: c.GetAlpha()}
}

// --- Pixel operations (performance-critical) ---

// blendPixel alpha-blends color c over the existing pixel at (x, y).
// Uses direct Pix slice access for performance.
func (r *renderer) blendPixel(x, y int, c color.RGBA) {
	b := r.img.Bounds()
	if x < b.Min.X || x >= b.Max.X || y < b.Min.Y || y >= b.Max.Y {
		return
	}
	if c.A == 0 {
		return
	}
	off := (y-b.Min.Y)*r.img.Stride + (x-b.Min.X)*4
	pix := r.img.Pix
	if c.A == 255 {
		pix[off] = c.R
		pix[off+1] = c.G
		pix[off+2] = c.B
		pix[off+3] = 255
		return
	}
	a := uint32(c.A)
	ia := 255 - a
	pix[off] = uint8((uint32(c.R)*a + uint32(pix[off])*ia) / 255)
	pix[off+1] = uint8((uint32(c.G)*a + uint32(pix[off+1])*ia) / 255)
	pix[off+2] = uint8((uint32(c.B)*a + uint32(pix[off+2])*ia) / 255)
	pix[off+3] = uint8(uint32(pix[off+3]) + (255-uint32(pix[off+3]))*a/255)
}

// blendPixelF blends with fractional coverage (0.0–1.0) for anti-aliasing.
func (r *renderer) blendPixelF(x, y int, c color.RGBA, coverage float64) {
	if coverage <= 0 {
		return
	}
	if coverage >= 1.0 {
		r.blendPixel(x, y, c)
		return
	}
	r.blendPixel(x, y, color.RGBA{R: c.R, G: c.G, B: c.B, A: uint8(float64(c.A) * coverage)})
}

// fillRectFast fills a rectangle with an opaque color using draw.Draw.
func (r *renderer) fillRectFast(rect image.Rectangle, c color.RGBA) {
	draw.Draw(r.img, rect, &image.Uniform{c}, image.Point{}, draw.Over)
}

// fillRectBlend fills a rectangle with alpha blending, using row-based direct Pix access.
func (r *renderer) fillRectBlend(rect image.Rectangle, c color.RGBA) {
	b := r.img.Bounds()
	rect = rect.Intersect(b)
	if rect.Empty() {
		return
	}
	if c.A == 0 {
		return
	}
	if c.A == 255 {
		r.fillRectFast(rect, c)
		return
	}
	a := uint32(c.A)
	ia := 255 - a
	cr, cg, cb := uint32(c.R)*a, uint32(c.G)*a, uint32(c.B)*a
	pix := r.img.Pix
	stride := r.img.Stride
	minX := rect.Min.X - b.Min.X
	minY := rect.Min.Y - b.Min.Y
	w := rect.Dx()
	for dy := 0; dy < rect.Dy(); dy++ {
		off := (minY+dy)*stride + minX*4
		for dx := 0; dx < w; dx++ {
			pix[off] = uint8((cr + uint32(pix[off])*ia) / 255)
			pix[off+1] = uint8((cg + uint32(pix[off+1])*ia) / 255)
			pix[off+2] = uint8((cb + uint32(pix[off+2])*ia) / 255)
			pix[off+3] = uint8(uint32(pix[off+3]) + (255-uint32(pix[off+3]))*a/255)
			off += 4
		}
	}
}


func (r *renderer) renderGroup(g *GroupShape) {
	// Transform child coordinates from child space (chOff/chExt) to group space (off/ext)
	if g.childExtX > 0 && g.childExtY > 0 {
		for _, gs := range g.shapes {
			bs := gs.base()
			origX := bs.offsetX
			origY := bs.offsetY
			origW := bs.width
			origH := bs.height
			bs.offsetX = g.offsetX + (origX-g.childOffX)*g.width/g.childExtX
			bs.offsetY = g.offsetY + (origY-g.childOffY)*g.height/g.childExtY
			bs.width = origW * g.width / g.childExtX
			bs.height = origH * g.height / g.childExtY
			defer func(s Shape, ox, oy, ow, oh int64) {
				b := s.base()
				b.offsetX = ox
				b.offsetY = oy
				b.width = ow
				b.height = oh
			}(gs, origX, origY, origW, origH)
		}
	}

	rotation := g.GetRotation()
	flipH := g.GetFlipHorizontal()
	flipV := g.GetFlipVertical()
	if rotation == 0 && !flipH && !flipV {
		for _, gs := range g.shapes {
			r.renderShape(gs)
		}
		return
	}
	x := r.emuToPixelX(g.offsetX)
	y := r.emuToPixelY(g.offsetY)
	w := r.emuToPixelX(g.width)
	h := r.emuToPixelY(g.height)
	r.renderRotated(x, y, w, h, rotation, flipH, flipV, func(tmp *renderer) {
		// Shift children to render relative to (0,0) in the temp buffer.
		// Children have absolute slide coordinates; subtract group origin.
		for _, gs := range g.shapes {
			bs := gs.base()
			bs.offsetX -= g.offsetX
			bs.offsetY -= g.offsetY
		}
		defer func() {
			for _, gs := range g.shapes {
				bs := gs.base()
				bs.offsetX += g.offsetX
				bs.offsetY += g.offsetY
			}
		}()
		for _, gs := range g.shapes {
			tmp.renderShape(gs)
		}
	})
}

// --- Shape rendering ---

func (r *renderer) renderRichText(s *RichTextShape) {
	x := r.emuToPixelX(s.offsetX)
	y := r.emuToPixelY(s.offsetY)
	w := r.emuToPixelX(s.width)
	h := r.emuToPixelY(s.height)
	rotation := s.GetRotation()
	flipH := s.GetFlipHorizontal()
	flipV := s.GetFlipVertical()

	// Apply normAutofit font scale
	prevFontScale := r.fontScale
	if s.fontScale > 0 && s.fontScale != 100000 {
		r.fontScale = float64(s.fontScale) / 100000.0
	}
	defer func() { r.fontScale = prevFontScale }()

	// Text insets (padding). PowerPoint defaults: lIns=91440, rIns=91440, tIns=45720, bIns=45720
	lIns, rIns, tIns, bIns := int64(91440), int64(91440), int64(45720), int64(45720)
	if s.insetsSet {
		lIns, rIns, tIns, bIns = s.insetLeft, s.insetRight, s.insetTop, s.insetBottom
	}
	pxL := r.emuToPixelX(lIns)
	pxR := r.emuToPixelX(rIns)
	pxT := r.emuToPixelY(tIns)
	pxB := r.emuToPixelY(bIns)

	// Clamp default insets when they consume too much of the shape dimensions.
	// This happens for small shapes inside nested groups where group coordinate
	// transforms scale shape dimensions but insets remain absolute EMU values.
	if !s.insetsSet {
		maxInsetH := int(float64(h) * 0.35)
		maxInsetW := int(float64(w) * 0.35)
		if pxT+pxB > maxInsetH {
			scale := float64(maxInsetH) / float64(pxT+pxB)
			pxT = int(float64(pxT) * scale)
			pxB = int(float64(pxB) * scale)
		}
		if pxL+pxR > maxInsetW {
			scale := float64(maxInsetW) / float64(pxL+pxR)
			pxL = int(float64(pxL) * scale)
			pxR = int(float64(pxR) * scale)
		}
	}

	// Vertical text direction adds implicit rotation
	vertRotation := 0
	if s.textDirection == "vert" || s.textDirection == "eaVert" || s.textDirection == "wordArtVert" {
		vertRotation = 270
	} else if s.textDirection == "vert270" {
		vertRotation = 90
	}

	// Estimate total text height to detect overflow.
	// PowerPoint does not clip text to the text box boundary, so we must
	// expand the rendering buffer when text overflows.
	tw := w - pxL - pxR
	th := h - pxT - pxB
	if tw < 1 {
		tw = w
	}
	if th < 1 {
		th = h
	}

	// spAutoFit: shape resizes to fit text. When the shape has word-wrap
	// enabled, PowerPoint expands the shape vertically while keeping the
	// width fixed. We cannot resize the shape at render time, but we
	// should still honour word-wrap so text wraps within the available
	// width instead of overflowing horizontally and overlapping adjacent
	// shapes. Only disable word-wrap when the original shape had it off
	// (rare case where the box expands horizontally).
	wordWrap := s.wordWrap

	// When default insets are used and text overflows, progressively reduce
	// insets to make room. Font metric differences between systems can cause
	// text to be slightly larger than the original authoring environment
	// expected, so shrinking insets first avoids unnecessary text overflow.
	if !s.insetsSet {
		textH := r.measureParagraphsHeight(s.paragraphs, tw, th, s.textAnchor, wordWrap)
		if textH > th && th > 0 && (pxT+pxB) > 0 {
			needed := textH - th
			avail := pxT + pxB
			if needed >= avail {
				pxT = 0
				pxB = 0
			} else {
				scale := float64(avail-needed) / float64(avail)
				pxT = int(float64(pxT) * scale)
				pxB = int(float64(pxB) * scale)
			}
			th = h - pxT - pxB
			if th < 1 {
				th = h
			}
		}
	}

	// Auto-shrink text when normAutofit is set without an explicit fontScale.
	// PowerPoint dynamically calculates the scale to fit text within the box.
	// Also apply auto-shrink for AutoFitNone when text still overflows after
	// inset reduction — Go's CJK font metrics often produce larger line heights
	// than PowerPoint, causing text to overflow shapes that fit perfectly in
	// the original authoring environment.
	shouldAutoShrink := false
	if s.autoFit == AutoFitNormal && (s.fontScale == 0 || s.fontScale == 100000) {
		shouldAutoShrink = true
	} else if s.autoFit == AutoFitNone && (s.fontScale == 0 || s.fontScale == 100000) {
		textH := r.measureParagraphsHeight(s.paragraphs, tw, th, s.textAnchor, wordWrap)
		if textH > h && h > 0 {
			// Text exceeds the full shape height — font metrics are too large
			shouldAutoShrink = true
		}
	}
	if shouldAutoShrink {
		textH := r.measureParagraphsHeight(s.paragraphs, tw, th, s.textAnchor, wordWrap)
		if textH > th && th > 0 {
			// Binary search for the right scale factor
			lo, hi := 0.1, 1.0
			for i := 0; i < 10; i++ {
				mid := (lo + hi) / 2
				r.fontScale = mid
				mh := r.measureParagraphsHeight(s.paragraphs, tw, th, s.textAnchor, wordWrap)
				if mh > th {
					hi = mid
				} else {
					lo = mid
				}
			}
			r.fontScale = lo
		}
	}

	textH := r.measureParagraphsHeight(s.paragraphs, tw, th, s.textAnchor, wordWrap)
	// Extra height needed beyond the shape box
	overflowH := 0
	if textH+pxT+pxB > h {
		overflowH = textH + pxT + pxB - h
	}
	// Use expanded height for the temp buffer when rotated
	bufH := h + overflowH

	// skipText is used to split geometry and text rendering when flip is set.
	// PowerPoint flips shape geometry but keeps text readable (un-flipped).
	skipText := false

	drawContent := func(tr *renderer) {
		ox, oy := x, y
		if tr != r {
			ox, oy = 0, 0
		}
		rect := image.Rect(ox, oy, ox+w, oy+h)

		// Shadow BEFORE fill (so shadow appears behind)
		if s.shadow != nil && s.shadow.Visible {
			tr.renderShadow(s.shadow, rect)
		}
		if s.customPath != nil {
			tr.renderCustomPathFill(s.customPath, s.fill, ox, oy, w, h)
		} else {
			tr.renderFill(s.fill, rect)
		}
		if s.border != nil && s.border.Style != BorderNone {
			pw := maxInt(int(float64(maxInt(s.border.Width, 1))*12700.0*tr.scaleX), 1)
			if s.customPath != nil {
				// Draw border along the custom geometry path
				pts := tr.customPathToPixelPoints(s.customPath, ox, oy, w, h)
				bc := argbToRGBA(s.border.Color)
				if len(pts) >= 2 {
					if s.border.Style == BorderDash || s.border.Style == BorderDot {
						tr.drawDashedPolylineAA(pts, bc, pw, s.border.Style)
					} else {
						for i := 1; i < len(pts); i++ {
							tr.drawLineAA(int(pts[i-1].x), int(pts[i-1].y), int(pts[i].x), int(pts[i].y), bc, pw)
						}
					}
					// Draw arrowheads at the ends of the custom path
					intPts := make([][2]int, len(pts))
					for i, p := range pts {
						intPts[i] = [2]int{int(p.x), int(p.y)}
					}
					if s.headEnd != nil && s.headEnd.Type != ArrowNone && s.headEnd.Type != "" {
						tr.drawArrowOnPath(intPts[0][0], intPts[0][1], intPts, bc, pw, s.headEnd)
					}
					if s.tailEnd != nil && s.tailEnd.Type != ArrowNone && s.tailEnd.Type != "" {
						last := intPts[len(intPts)-1]
						tr.drawArrowOnPath(last[0], last[1], intPts, bc, pw, s.tailEnd)
					}
				}
			} else {
				tr.drawRectBorder(rect, argbToRGBA(s.border.Color), pw, s.border.Style)
			}
		} else if s.customPath != nil && (s.headEnd != nil || s.tailEnd != nil) {
			// No visible border but has arrowheads — still need to draw them along the path
			pts := tr.customPathToPixelPoints(s.customPath, ox, oy, w, h)
			if len(pts) >= 2 {
				pw := maxInt(int(tr.scaleX*12700.0), 1)
				bc := color.RGBA{A: 255} // default black
				if s.border != nil {
					bc = argbToRGBA(s.border.Color)
				}
				intPts := make([][2]int, len(pts))
				for i, p := range pts {
					intPts[i] = [2]int{int(p.x), int(p.y)}
				}
				if s.headEnd != nil && s.headEnd.Type != ArrowNone && s.headEnd.Type != "" {
					tr.drawArrowOnPath(intPts[0][0], intPts[0][1], intPts, bc, pw, s.headEnd)
				}
				if s.tailEnd != nil && s.tailEnd.Type != ArrowNone && s.tailEnd.Type != "" {
					last := intPts[len(intPts)-1]
					tr.drawArrowOnPath(last[0], last[1], intPts, bc, pw, s.tailEnd)
				}
			}
		}

		// Text area with insets applied; use bufH to allow overflow
		tx := ox + pxL
		ty := oy + pxT
		drawTH := bufH - pxT - pxB
		if drawTH < th {
			drawTH = th
		}

		if !skipText {
			if vertRotation != 0 {
				// For vertical text, draw into a rotated buffer with swapped dimensions.
				vtw, vth := drawTH, tw // text area: width=drawTH, height=tw (before rotation)
				if vtw > 0 && vth > 0 {
					tmp := image.NewRGBA(image.Rect(0, 0, vtw, vth))
					tmpR := &renderer{img: tmp, scaleX: tr.scaleX, scaleY: tr.scaleY, fontCache: tr.fontCache, dpi: tr.dpi, fontScale: tr.fontScale}
					tmpR.drawParagraphs(s.paragraphs, 0, 0, vtw, vth, s.textAnchor, wordWrap)
					rotateAndComposite(tr.img, tmp, tx, ty, tw, drawTH, vertRotation)
				}
			} else {
				tr.drawParagraphs(s.paragraphs, tx, ty, tw, drawTH, s.textAnchor, wordWrap)
			}
		}
	}

	// When flip is set, PowerPoint flips the shape geometry (fill/border)
	// but keeps text readable (un-flipped). We achieve this by rendering
	// geometry with flip, then compositing text separately without flip.
	if (flipH || flipV) && len(s.paragraphs) > 0 {
		// Phase 1: render geometry only (with flip)
		skipText = true
		r.renderRotatedExpanded(x, y, w, h, bufH, rotation, flipH, flipV, drawContent)
		// Phase 2: render text only (rotation only, no flip)
		skipText = false
		textOnly := func(tr *renderer) {
			ox, oy := x, y
			if tr != r {
				ox, oy = 0, 0
			}
			tx := ox + pxL
			ty := oy + pxT
			drawTH := bufH - pxT - pxB
			if drawTH < th {
				drawTH = th
			}
			if vertRotation != 0 {
				vtw, vth := drawTH, tw
				if vtw > 0 && vth > 0 {
					tmp := image.NewRGBA(image.Rect(0, 0, vtw, vth))
					tmpR := &renderer{img: tmp, scaleX: tr.scaleX, scaleY: tr.scaleY, fontCache: tr.fontCache, dpi: tr.dpi, fontScale: tr.fontScale}
					tmpR.drawParagraphs(s.paragraphs, 0, 0, vtw, vth, s.textAnchor, wordWrap)
					rotateAndComposite(tr.img, tmp, tx, ty, tw, drawTH, vertRotation)
				}
			} else {
				tr.drawParagraphs(s.paragraphs, tx, ty, tw, drawTH, s.textAnchor, wordWrap)
			}
		}
		if rotation != 0 {
			r.renderRotatedExpanded(x, y, w, h, bufH, rotation, false, false, textOnly)
		} else {
			textOnly(r)
		}
	} else if rotation != 0 {
		r.renderRotatedExpanded(x, y, w, h, bufH, rotation, false, false, drawContent)
	} else {
		drawContent(r)
	}
}

func (r *renderer) renderDrawing(s *DrawingShape) {
	x := r.emuToPixelX(s.offsetX)
	y := r.emuToPixelY(s.offsetY)
	w := r.emuToPixelX(s.width)
	h := r.emuToPixelY(s.height)

	imgData := s.data
	if len(imgData) == 0 && s.path != "" {
		if data, err := os.ReadFile(s.path); err == nil {
			imgData = data
		}
	}
	if len(imgData) == 0 {
		return
	}

	srcImg, _, err := image.Decode(bytes.NewReader(imgData))
	if err != nil {
		// Try to extract bitmap from WMF/EMF metafiles
		if extracted := decodeMetafileBitmap(imgData, r.fontCache); extracted != nil {
			srcImg = extracted
			err = nil
		}
	}
	if err != nil {
		r.drawRect(image.Rect(x, y, x+w, y+h), color.RGBA{R: 200, G: 200, B: 200, A: 255}, 1)
		return
	}

	rotation := s.GetRotation()
	flipH := s.GetFlipHorizontal()
	flipV := s.GetFlipVertical()

	drawImg := func(tr *renderer) {
		ox, oy := x, y
		if tr != r {
			ox, oy = 0, 0
		}
		scaledImg := scaleImageBilinear(srcImg, w, h)
		draw.Draw(tr.img, image.Rect(ox, oy, ox+w, oy+h), scaledImg, image.Point{}, draw.Over)
	}

	if rotation != 0 || flipH || flipV {
		r.renderRotated(x, y, w, h, rotation, flipH, flipV, drawImg)
	} else {
		drawImg(r)
	}
}

func (r *renderer) renderAutoShape(s *AutoShape) {
	x := r.emuToPixelX(s.offsetX)
	y := r.emuToPixelY(s.offsetY)
	w := r.emuToPixelX(s.width)
	h := r.emuToPixelY(s.height)
	rotation := s.GetRotation()
	flipH := s.GetFlipHorizontal()
	flipV := s.GetFlipVertical()

	// Apply normAutofit font scale
	prevFontScale := r.fontScale
	if s.fontScale > 0 && s.fontScale != 100000 {
		r.fontScale = float64(s.fontScale) / 100000.0
	}
	defer func() { r.fontScale = prevFontScale }()

	// Vertical text direction
	vertRotation := 0
	if s.textDirection == "vert" || s.textDirection == "eaVert" || s.textDirection == "wordArtVert" {
		vertRotation = 270
	} else if s.textDirection == "vert270" {
		vertRotation = 90
	}

	drawContent := func(tr *renderer) {
		ox, oy := x, y
		if tr != r {
			ox, oy = 0, 0
		}
		rect := image.Rect(ox, oy, ox+w, oy+h)
		if s.shadow != nil && s.shadow.Visible {
			switch s.shapeType {
			case AutoShapeRoundedRect:
				sRadius := minInt(w, h) * 16667 / 100000
				if s.adjustValues != nil {
					if adj, ok := s.adjustValues["adj"]; ok {
						sRadius = minInt(w, h) * adj / 200000
					}
				}
				tr.renderShadowRounded(s.shadow, rect, sRadius)
			case AutoShapeRectangle, "":
				tr.renderShadow(s.shadow, rect)
			default:
				// For non-rectangular shapes (arrows, triangles, ellipses, etc.),
				// skip the rectangular shadow — it would fill the entire
				// bounding box and look like a gray background.
			}
		}
		tr.renderAutoShapeFill(s, ox, oy, w, h)
		tr.renderAutoShapeBorder(s, ox, oy, w, h)
		// Arc shapes are stroke-only; if no explicit border was set, draw
		// the arc with a default black stroke so it remains visible.
		if s.shapeType == AutoShapeArc && (s.border == nil || s.border.Style == BorderNone) {
			defPw := maxInt(int(tr.scaleX*12700.0), 1)
			defC := color.RGBA{A: 255}
			tr.renderArcBorder(s, ox, oy, w, h, defC, defPw)
		}
		if len(s.paragraphs) > 0 {
			// Compute text area with insets
			lIns, rIns, tIns, bIns := int64(91440), int64(91440), int64(45720), int64(45720)
			if s.insetsSet {
				lIns, rIns, tIns, bIns = s.insetLeft, s.insetRight, s.insetTop, s.insetBottom
			}
			pxL := r.emuToPixelX(lIns)
			pxR := r.emuToPixelX(rIns)
			pxT := r.emuToPixelY(tIns)
			pxB := r.emuToPixelY(bIns)

			// Clamp default insets when they consume too much of the shape dimensions.
			if !s.insetsSet {
				maxInsetH := int(float64(h) * 0.35)
				maxInsetW := int(float64(w) * 0.35)
				if pxT+pxB > maxInsetH {
					scale := float64(maxInsetH) / float64(pxT+pxB)
					pxT = int(float64(pxT) * scale)
					pxB = int(float64(pxB) * scale)
				}
				if pxL+pxR > maxInsetW {
					scale := float64(maxInsetW) / float64(pxL+pxR)
					pxL = int(float64(pxL) * scale)
					pxR = int(float64(pxR) * scale)
				}
			}

			tx, ty, tw, th := ox+pxL, oy+pxT, w-pxL-pxR, h-pxT-pxB

			// For ellipses, further constrain text to the inscribed rectangle
			// The inscribed rect of an ellipse insets by factor (1 - 1/√2) ≈ 0.2929
			if s.shapeType == AutoShapeEllipse {
				insetX := int(float64(w) * 0.1464) // half of 0.2929
				insetY := int(float64(h) * 0.1464)
				etx := ox + insetX
				ety := oy + insetY
				etw := w - 2*insetX
				eth := h - 2*insetY
				// Use the tighter of explicit insets vs ellipse inscribed rect
				if etx > tx {
					tx = etx
				}
				if ety > ty {
					ty = ety
				}
				if etx+etw < ox+pxL+tw {
					tw = etx + etw - tx
				}
				if ety+eth < oy+pxT+th {
					th = ety + eth - ty
				}
			}

			if tw < 1 {
				tw = w
			}
			if th < 1 {
				th = h
			}

			// When default insets are used and text overflows, reduce insets
			// to make room. This handles font metric differences between systems.
			if !s.insetsSet {
				textH := r.measureParagraphsHeight(s.paragraphs, tw, th, s.textAnchor, true)
				if textH > th && th > 0 && (pxT+pxB) > 0 {
					needed := textH - th
					avail := pxT + pxB
					if needed >= avail {
						pxT = 0
						pxB = 0
					} else {
						sc := float64(avail-needed) / float64(avail)
						pxT = int(float64(pxT) * sc)
						pxB = int(float64(pxB) * sc)
					}
					tx = ox + pxL
					ty = oy + pxT
					th = h - pxT - pxB
					if th < 1 {
						th = h
					}
				}
			}

			// Auto-shrink when text overflows the full shape height —
			// CJK font metrics in Go are often larger than PowerPoint's.
			if (s.fontScale == 0 || s.fontScale == 100000) {
				atextH := r.measureParagraphsHeight(s.paragraphs, tw, th, s.textAnchor, true)
				if atextH > h && h > 0 && atextH > th && th > 0 {
					lo, hi := 0.1, 1.0
					for i := 0; i < 10; i++ {
						mid := (lo + hi) / 2
						r.fontScale = mid
						mh := r.measureParagraphsHeight(s.paragraphs, tw, th, s.textAnchor, true)
						if mh > th {
							hi = mid
						} else {
							lo = mid
						}
					}
					r.fontScale = lo
				}
			}

			if vertRotation != 0 {
				vtw, vth := th, tw
				if vtw > 0 && vth > 0 {
					tmp := image.NewRGBA(image.Rect(0, 0, vtw, vth))
					tmpR := &renderer{img: tmp, scaleX: tr.scaleX, scaleY: tr.scaleY, fontCache: tr.fontCache, dpi: tr.dpi, fontScale: tr.fontScale}
					tmpR.drawParagraphs(s.paragraphs, 0, 0, vtw, vth, s.textAnchor, true)
					rotateAndComposite(tr.img, tmp, tx, ty, tw, th, vertRotation)
				}
			} else {
				tr.drawParagraphs(s.paragraphs, tx, ty, tw, th, s.textAnchor, true)
			}
		} else if s.text != "" {
			tr.drawStringCentered(s.text, tr.getFace(NewFont()), color.RGBA{A: 255}, rect)
		}
	}

	// For uturnArrow with 90/270 rotation, swap geometry dimensions.
	needsGeomSwap := s.shapeType == AutoShapeUturnArrow &&
		(rotation == 90 || rotation == 270)

	// For rtTriangle with 90/270 rotation, OOXML ext gives the rotated
	// bounding box size. Draw the mirror-image triangle in the buffer so
	// that after rotation the filled area covers the correct half.
	needsRtTriSwap := s.shapeType == AutoShapeRtTriangle &&
		(rotation == 90 || rotation == 270)

	if needsRtTriSwap {
		drawSwapped := func(tr *renderer) {
			if s.fill != nil && s.fill.Type != FillNone {
				fc := argbToRGBA(s.fill.Color)
				fc = tr.scaleAlpha(fc)
				pts := []fpoint{
					{0, 0},
					{float64(w), 0},
					{float64(w), float64(h)},
				}
				tr.fillPolygon(pts, fc)
			}
		}
		r.renderRotated(x, y, w, h, rotation, flipH, flipV, drawSwapped)
	} else if needsGeomSwap {
		drawSwapped := func(tr *renderer) {
			if s.fill != nil && s.fill.Type != FillNone {
				fc := argbToRGBA(s.fill.Color)
				fc = tr.scaleAlpha(fc)
				tr.fillUturnArrowTransposed(0, 0, w, h, fc, s.adjustValues)
			}
		}
		r.renderRotated(x, y, w, h, rotation, flipH, flipV, drawSwapped)
	} else if rotation != 0 || flipH || flipV {
		r.renderRotated(x, y, w, h, rotation, flipH, flipV, drawContent)
	} else {
		drawContent(r)
	}
}

func (r *renderer) renderAutoShapeFill(s *AutoShape, x, y, w, h int) {
	if s.fill == nil || s.fill.Type == FillNone {
		return
	}
	fc := argbToRGBA(s.fill.Color)
	fc = r.scaleAlpha(fc)
	rect := image.Rect(x, y, x+w, y+h)

	switch s.shapeType {
	case AutoShapeEllipse:
		if s.fill.Type == FillSolid {
			r.fillEllipseAA(x, y, w, h, fc)
		} else {
			r.fillGradientLinear(rect, s.fill)
		}
	case AutoShapeRoundedRect:
		radius := minInt(w, h) * 16667 / 100000
		if s.adjustValues != nil {
			if adj, ok := s.adjustValues["adj"]; ok {
				radius = minInt(w, h) * adj / 200000
			}
		}
		if s.fill.Type == FillSolid {
			r.fillRoundedRect(x, y, w, h, radius, fc)
		} else {
			r.fillGradientLinear(rect, s.fill)
		}
	case AutoShapeTriangle:
		r.fillTriangle(x, y, w, h, fc)
	case AutoShapeDiamond:
		r.fillDiamond(x, y, w, h, fc)
	case AutoShapeHexagon:
		r.fillHexagon(x, y, w, h, fc)
	case AutoShapeFlowchartPreparation:
		r.fillHexagon(x, y, w, h, fc)
	case AutoShapePentagon:
		r.fillPentagon(x, y, w, h, fc)
	case AutoShapeArrowRight:
		r.fillArrowRight(x, y, w, h, fc)
	case AutoShapeArrowLeft:
		r.fillArrowLeft(x, y, w, h, fc)
	case AutoShapeArrowUp:
		r.fillArrowUp(x, y, w, h, fc)
	case AutoShapeArrowDown:
		r.fillArrowDown(x, y, w, h, fc)
	case AutoShapeStar5:
		r.fillStar(x, y, w, h, 5, fc)
	case AutoShapeStar4:
		r.fillStar(x, y, w, h, 4, fc)
	case AutoShapeHeart:
		r.fillHeart(x, y, w, h, fc)
	case AutoShapePlus:
		r.fillPlus(x, y, w, h, fc)
	case AutoShapeChevron:
		r.fillChevron(x, y, w, h, fc)
	case AutoShapeParallelogram:
		r.fillParallelogram(x, y, w, h, fc)
	case AutoShapeLeftRightArrow:
		r.fillLeftRightArrow(x, y, w, h, fc)
	case AutoShapeRtTriangle:
		r.fillRtTriangle(x, y, w, h, fc)
	case AutoShapeHomePlate:
		r.fillHomePlate(x, y, w, h, fc)
	case AutoShapeSnip2SameRect:
		r.fillSnip2SameRect(x, y, w, h, fc, s.adjustValues)
	case AutoShapeUturnArrow:
		r.fillUturnArrow(x, y, w, h, fc, s.adjustValues)
	case AutoShapeBentArrow:
		r.fillBentArrow(x, y, w, h, fc, s.adjustValues)
	case AutoShapeArc:
		// Arc preset geometry has no fill by default (it's just a stroke).
		// Skip fill for arc shapes.
	case AutoShapeRectangle, "":
		r.renderFill(s.fill, rect)
	default:
		r.logger.Debug("preset geometry %q has no dedicated point generator, falling back to rect fill", s.shapeType)
		r.renderFill(s.fill, rect)
	}
}

func (r *renderer) renderAutoShapeBorder(s *AutoShape, x, y, w, h int) {
	if s.border == nil || s.border.Style == BorderNone {
		return
	}
	bc := argbToRGBA(s.border.Color)
	pw := maxInt(int(float64(maxInt(s.border.Width, 1))*12700.0*r.scaleX), 1)

	switch s.shapeType {
	case AutoShapeEllipse:
		r.drawEllipseAA(x, y, w, h, bc, pw)
	case AutoShapeRoundedRect:
		radius := minInt(w, h) * 16667 / 100000
		if s.adjustValues != nil {
			if adj, ok := s.adjustValues["adj"]; ok {
				radius = minInt(w, h) * adj / 200000
			}
		}
		r.drawRoundedRect(x, y, w, h, radius, bc, pw)
	case AutoShapeTriangle:
		r.drawTriangle(x, y, w, h, bc, pw)
	case AutoShapeDiamond:
		r.drawDiamond(x, y, w, h, bc, pw)
	case AutoShapeFlowchartPreparation:
		pts := regularPolygonPoints(x, y, w, h, 6, 0)
		r.drawPolygon(pts, bc, pw)
	case AutoShapeChevron:
		notch := w / 4
		pts := []fpoint{
			{float64(x), float64(y)},
			{float64(x + w - notch), float64(y)},
			{float64(x + w), float64(y + h/2)},
			{float64(x + w - notch), float64(y + h)},
			{float64(x), float64(y + h)},
			{float64(x + notch), float64(y + h/2)},
		}
		r.drawPolygon(pts, bc, pw)
	case AutoShapeParallelogram:
		offset := w / 4
		pts := []fpoint{
			{float64(x + offset), float64(y)},
			{float64(x + w), float64(y)},
			{float64(x + w - offset), float64(y + h)},
			{float64(x), float64(y + h)},
		}
		r.drawPolygon(pts, bc, pw)
	case AutoShapeBentArrow:
		// Draw border following the bentArrow shape outline
		adj1v, adj2v, adj3v, adj4v := 25000, 25000, 25000, 43750
		if s.adjustValues != nil {
			if v, ok := s.adjustValues["adj1"]; ok {
				adj1v = v
			}
			if v, ok := s.adjustValues["adj2"]; ok {
				adj2v = v
			}
			if v, ok := s.adjustValues["adj3"]; ok {
				adj3v = v
			}
			if v, ok := s.adjustValues["adj4"]; ok {
				adj4v = v
			}
		}
		fx, fy := float64(x), float64(y)
		fw, fh := float64(w), float64(h)
		shaftW := fw * float64(adj1v) / 100000.0
		headExtra := fw * float64(adj2v) / 100000.0
		headLen := fw * float64(adj3v) / 100000.0
		bendYf := fy + fh*float64(adj4v)/100000.0
		tipX := fx + fw
		arrowCenterY := bendYf - shaftW/2
		arrowBaseX := tipX - headLen
		arrowTop := arrowCenterY - shaftW/2 - headExtra
		arrowBot := arrowCenterY + shaftW/2 + headExtra
		cornerR := shaftW * 0.85
		if cornerR < 1 {
			cornerR = 1
		}
		bpts := []fpoint{{fx, fy + fh}}
		// Outer corner arc
		outerR := cornerR
		maxOR := math.Min(bendYf-shaftW-fy, fw*0.3)
		if outerR > maxOR && maxOR > 0 {
			outerR = maxOR
		}
		ocx := fx + outerR
		ocy := bendYf - shaftW + outerR
		bpts = append(bpts, fpoint{fx, ocy})
		for i := 0; i <= 12; i++ {
			t := float64(i) / 12.0
			a := math.Pi + t*math.Pi/2.0
			bpts = append(bpts, fpoint{ocx + outerR*math.Cos(a), ocy + outerR*math.Sin(a)})
		}
		bpts = append(bpts,
			fpoint{arrowBaseX, bendYf - shaftW},
			fpoint{arrowBaseX, arrowTop},
			fpoint{tipX, arrowCenterY},
			fpoint{arrowBaseX, arrowBot},
			fpoint{arrowBaseX, bendYf},
		)
		// Inner corner arc
		innerR := cornerR
		maxIR := math.Min(fh-fh*float64(adj4v)/100000.0, shaftW*0.9)
		if innerR > maxIR && maxIR > 0 {
			innerR = maxIR
		}
		icx := fx + shaftW + innerR
		icy := bendYf + innerR
		bpts = append(bpts, fpoint{icx, bendYf})
		for i := 0; i <= 12; i++ {
			t := float64(i) / 12.0
			a := math.Pi/2.0 + t*math.Pi/2.0
			bpts = append(bpts, fpoint{icx + innerR*math.Cos(a), icy - innerR*math.Sin(a)})
		}
		bpts = append(bpts, fpoint{fx + shaftW, fy + fh})
		r.drawPolygon(bpts, bc, pw)
	case AutoShapeRtTriangle:
		pts := []fpoint{
			{float64(x), float64(y + h)},
			{float64(x), float64(y)},
			{float64(x + w), float64(y + h)},
		}
		r.drawPolygon(pts, bc, pw)
	case AutoShapeSnip2SameRect:
		pts := r.snip2SameRectPoints(x, y, w, h, s.adjustValues)
		r.drawPolygon(pts, bc, pw)
	case AutoShapeArc:
		r.renderArcBorder(s, x, y, w, h, bc, pw)
	default:
		r.drawRectBorder(image.Rect(x, y, x+w, y+h), bc, pw, s.border.Style)
	}
}

// renderArcBorder draws an arc shape's stroke and arrowheads.
// OOXML arc preset: adj1 = start angle, adj2 = end angle (in 60000ths of a degree).
// Default: adj1=16200000 (270°), adj2=0 (0°) — a quarter-circle arc from top to right.
func (r *renderer) renderArcBorder(s *AutoShape, x, y, w, h int, bc color.RGBA, pw int) {
	// Get adjustment values (angles in 60000ths of a degree)
	stAng := 16200000 // default start: 270°
	endAng := 0       // default end: 0°
	if s.adjustValues != nil {
		if v, ok := s.adjustValues["adj1"]; ok {
			stAng = v
		}
		if v, ok := s.adjustValues["adj2"]; ok {
			endAng = v
		}
	}

	stRad := float64(stAng) / 60000.0 * math.Pi / 180.0
	endRad := float64(endAng) / 60000.0 * math.Pi / 180.0

	// Ensure we sweep in the positive direction
	if endRad <= stRad {
		endRad += 2 * math.Pi
	}

	rx := float64(w) / 2.0
	ry := float64(h) / 2.0
	cx := float64(x) + rx
	cy := float64(y) + ry

	// Generate arc points
	sweep := endRad - stRad
	steps := maxInt(int(math.Abs(sweep)*(rx+ry)*0.5), 60)
	pts := make([]fpoint, steps+1)
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		a := stRad + sweep*t
		pts[i] = fpoint{cx + rx*math.Cos(a), cy + ry*math.Sin(a)}
	}

	// Draw the arc stroke
	ls := BorderSolid
	if s.border != nil {
		ls = s.border.Style
	}
	if ls == BorderDash || ls == BorderDot {
		r.drawDashedPolylineAA(pts, bc, pw, ls)
	} else {
		for i := 1; i < len(pts); i++ {
			r.drawLineAA(int(pts[i-1].x), int(pts[i-1].y), int(pts[i].x), int(pts[i].y), bc, pw)
		}
	}

	// Draw arrowheads
	intPts := make([][2]int, len(pts))
	for i, p := range pts {
		intPts[i] = [2]int{int(p.x), int(p.y)}
	}
	if s.headEnd != nil && s.headEnd.Type != ArrowNone && s.headEnd.Type != "" {
		r.drawArrowOnPath(intPts[0][0], intPts[0][1], intPts, bc, pw, s.headEnd)
	}
	if s.tailEnd != nil && s.tailEnd.Type != ArrowNone && s.tailEnd.Type != "" {
		last := intPts[len(intPts)-1]
		r.drawArrowOnPath(last[0], last[1], intPts, bc, pw, s.tailEnd)
	}
}

func (r *renderer) renderLine(s *LineShape) {
	rotation := s.GetRotation()
	if rotation != 0 {
		// For rotated connectors, compute the path in local coordinates,
		// apply flip and rotation transforms, then draw on the main canvas.
		r.renderLineRotated(s)
		return
	}
	ox := r.emuToPixelX(s.offsetX)
	oy := r.emuToPixelY(s.offsetY)
	r.renderLineAt(s, ox, oy)
}

// renderLineRotated handles connectors with rotation by transforming path points.
func (r *renderer) renderLineRotated(s *LineShape) {
	// Use float64 EMU coordinates throughout to avoid precision loss.
	// When the bounding box is very narrow (e.g. width=10390 EMU -> 1 pixel),
	// computing in pixel space destroys the adjustment value information.
	wEmu := float64(s.width)
	hEmu := float64(s.height)
	oxEmu := float64(s.offsetX)
	oyEmu := float64(s.offsetY)
	rotation := s.GetRotation()

	// Custom geometry path with rotation — convert path to pixel coords,
	// then rotate around the bounding box center.
	if s.customPath != nil && len(s.customPath.Commands) > 0 {
		ox := r.emuToPixelX(s.offsetX)
		oy := r.emuToPixelY(s.offsetY)
		w := r.emuToPixelX(s.width)
		h := r.emuToPixelY(s.height)
		pts := r.customPathToPixelPoints(s.customPath, ox, oy, w, h)
		if len(pts) >= 2 {
			// Rotate around bounding box center
			cxPx := float64(ox) + float64(w)/2.0
			cyPx := float64(oy) + float64(h)/2.0
			rad := float64(rotation) * math.Pi / 180.0
			cosA := math.Cos(rad)
			sinA := math.Sin(rad)
			for i := range pts {
				dx := pts[i].x - cxPx
				dy := pts[i].y - cyPx
				pts[i].x = dx*cosA - dy*sinA + cxPx
				pts[i].y = dx*sinA + dy*cosA + cyPx
			}

			pw := maxInt(int(float64(s.GetLineWidthEMU())*r.scaleX), 1)
			c := argbToRGBA(s.lineColor)
			ls := s.lineStyle
			if ls == BorderDash || ls == BorderDot {
				r.drawDashedPolylineAA(pts, c, pw, ls)
			} else {
				for i := 1; i < len(pts); i++ {
					r.drawLineAA(int(pts[i-1].x), int(pts[i-1].y), int(pts[i].x), int(pts[i].y), c, pw)
				}
			}
			intPts := make([][2]int, len(pts))
			for i, p := range pts {
				intPts[i] = [2]int{int(p.x), int(p.y)}
			}
			if s.headEnd != nil && s.headEnd.Type != ArrowNone && s.headEnd.Type != "" {
				r.drawArrowOnPath(intPts[0][0], intPts[0][1], intPts, c, pw, s.headEnd)
			}
			if s.tailEnd != nil && s.tailEnd.Type != ArrowNone && s.tailEnd.Type != "" {
				last := intPts[len(intPts)-1]
				r.drawArrowOnPath(last[0], last[1], intPts, c, pw, s.tailEnd)
			}
		}
		return
	}

	// Build path in local EMU coordinates (0,0)-(wEmu,hEmu)
	type fpt [2]float64
	var pathPts []fpt

	switch {
	case s.connectorType == "bentConnector3":
		adjPct := 50000.0
		if v, ok := s.adjustValues["adj1"]; ok {
			adjPct = float64(v)
		}
		midX := wEmu * adjPct / 100000.0
		pathPts = []fpt{{0, 0}, {midX, 0}, {midX, hEmu}, {wEmu, hEmu}}

	case s.connectorType == "bentConnector2":
		pathPts = []fpt{{0, 0}, {wEmu, 0}, {wEmu, hEmu}}

	case s.connectorType == "bentConnector4":
		adjPct1 := 50000.0
		adjPct2 := 50000.0
		if v, ok := s.adjustValues["adj1"]; ok {
			adjPct1 = float64(v)
		}
		if v, ok := s.adjustValues["adj2"]; ok {
			adjPct2 = float64(v)
		}
		midX := wEmu * adjPct1 / 100000.0
		midY := hEmu * adjPct2 / 100000.0
		pathPts = []fpt{{0, 0}, {midX, 0}, {midX, midY}, {wEmu, midY}, {wEmu, hEmu}}

	case s.connectorType == "bentConnector5":
		adjPct1 := 50000.0
		adjPct2 := 50000.0
		adjPct3 := 50000.0
		if v, ok := s.adjustValues["adj1"]; ok {
			adjPct1 = float64(v)
		}
		if v, ok := s.adjustValues["adj2"]; ok {
			adjPct2 = float64(v)
		}
		if v, ok := s.adjustValues["adj3"]; ok {
			adjPct3 = float64(v)
		}
		midX1 := wEmu * adjPct1 / 100000.0
		midY := hEmu * adjPct2 / 100000.0
		midX2 := wEmu * adjPct3 / 100000.0
		pathPts = []fpt{{0, 0}, {midX1, 0}, {midX1, midY}, {midX2, midY}, {midX2, hEmu}, {wEmu, hEmu}}

	case strings.HasPrefix(s.connectorType, "curvedConnector"):
		// For curved connectors with rotation, compute endpoints in EMU,
		// rotate, convert to pixels, then delegate to renderCurvedConnector.
		cx := wEmu / 2.0
		cy := hEmu / 2.0
		rad := float64(rotation) * math.Pi / 180.0
		cosA := math.Cos(rad)
		sinA := math.Sin(rad)
		destCX := oxEmu + cx
		destCY := oyEmu + cy

		sx, sy := 0.0, 0.0
		ex, ey := wEmu, hEmu
		if s.flipHorizontal {
			sx, ex = wEmu-sx, wEmu-ex
		}
		if s.flipVertical {
			sy, ey = hEmu-sy, hEmu-ey
		}
		rsx := (sx-cx)*cosA - (sy-cy)*sinA + destCX
		rsy := (sx-cx)*sinA + (sy-cy)*cosA + destCY
		rex := (ex-cx)*cosA - (ey-cy)*sinA + destCX
		rey := (ex-cx)*sinA + (ey-cy)*cosA + destCY

		px1 := int(math.Round(rsx * r.scaleX))
		py1 := int(math.Round(rsy * r.scaleY))
		px2 := int(math.Round(rex * r.scaleX))
		py2 := int(math.Round(rey * r.scaleY))

		pw := maxInt(int(float64(s.GetLineWidthEMU())*r.scaleX), 1)
		c := argbToRGBA(s.lineColor)
		r.renderCurvedConnector(s.connectorType, px1, py1, px2, py2, s.adjustValues, c, pw, s.lineStyle, s.headEnd, s.tailEnd)
		return

	default:
		pathPts = []fpt{{0, 0}, {wEmu, hEmu}}
	}

	// Apply flips in EMU space
	if s.flipHorizontal {
		for i := range pathPts {
			pathPts[i][0] = wEmu - pathPts[i][0]
		}
	}
	if s.flipVertical {
		for i := range pathPts {
			pathPts[i][1] = hEmu - pathPts[i][1]
		}
	}

	// Rotate each point around the center of the bounding box in EMU space
	cx := wEmu / 2.0
	cy := hEmu / 2.0
	rad := float64(rotation) * math.Pi / 180.0
	cosA := math.Cos(rad)
	sinA := math.Sin(rad)
	destCX := oxEmu + cx
	destCY := oyEmu + cy

	// Transform to slide EMU coordinates, then convert to pixels
	transformed := make([][2]int, len(pathPts))
	for i, pt := range pathPts {
		rx := pt[0] - cx
		ry := pt[1] - cy
		nx := rx*cosA - ry*sinA + destCX
		ny := rx*sinA + ry*cosA + destCY
		transformed[i] = [2]int{
			int(math.Round(nx * r.scaleX)),
			int(math.Round(ny * r.scaleY)),
		}
	}

	pw := maxInt(int(float64(s.GetLineWidthEMU())*r.scaleX), 1)
	c := argbToRGBA(s.lineColor)
	ls := s.lineStyle

	drawSeg := func(ax, ay, bx, by int) {
		if ls == BorderDash || ls == BorderDot {
			r.drawDashedLineAA(ax, ay, bx, by, c, pw, ls)
		} else {
			r.drawLineAA(ax, ay, bx, by, c, pw)
		}
	}

	for i := 0; i+1 < len(transformed); i++ {
		drawSeg(transformed[i][0], transformed[i][1],
			transformed[i+1][0], transformed[i+1][1])
	}

	if s.headEnd != nil && s.headEnd.Type != ArrowNone && s.headEnd.Type != "" {
		r.drawArrowOnPath(transformed[0][0], transformed[0][1], transformed, c, pw, s.headEnd)
	}
	if s.tailEnd != nil && s.tailEnd.Type != ArrowNone && s.tailEnd.Type != "" {
		last := transformed[len(transformed)-1]
		r.drawArrowOnPath(last[0], last[1], transformed, c, pw, s.tailEnd)
	}
}

// renderLineAt draws a line/connector with the bounding box top-left at (ox, oy).
// Flip and adjust values are applied relative to this origin.
func (r *renderer) renderLineAt(s *LineShape, ox, oy int) {
	w := r.emuToPixelX(s.width)
	h := r.emuToPixelY(s.height)

	// Visual start/end (after flip) — headEnd is at visual start (x1,y1),
	// tailEnd is at visual end (x2,y2). Flip attributes determine which
	// geometric corner maps to the visual start/end.
	gx1 := ox
	gy1 := oy
	gx2 := ox + w
	gy2 := oy + h

	x1, y1, x2, y2 := gx1, gy1, gx2, gy2
	if s.flipHorizontal {
		x1, x2 = x2, x1
	}
	if s.flipVertical {
		y1, y2 = y2, y1
	}
	// lineWidth in EMU, convert to pixels
	pw := maxInt(int(float64(s.GetLineWidthEMU())*r.scaleX), 1)
	c := argbToRGBA(s.lineColor)
	ls := s.lineStyle

	// Custom geometry path (freeform curved arrows, etc.)
	if s.customPath != nil && len(s.customPath.Commands) > 0 {
		pts := r.customPathToPixelPoints(s.customPath, ox, oy, w, h)
		if len(pts) >= 2 {
			if ls == BorderDash || ls == BorderDot {
				r.drawDashedPolylineAA(pts, c, pw, ls)
			} else {
				for i := 1; i < len(pts); i++ {
					r.drawLineAA(int(pts[i-1].x), int(pts[i-1].y), int(pts[i].x), int(pts[i].y), c, pw)
				}
			}
			intPts := make([][2]int, len(pts))
			for i, p := range pts {
				intPts[i] = [2]int{int(p.x), int(p.y)}
			}
			if s.headEnd != nil && s.headEnd.Type != ArrowNone && s.headEnd.Type != "" {
				r.drawArrowOnPath(intPts[0][0], intPts[0][1], intPts, c, pw, s.headEnd)
			}
			if s.tailEnd != nil && s.tailEnd.Type != ArrowNone && s.tailEnd.Type != "" {
				last := intPts[len(intPts)-1]
				r.drawArrowOnPath(last[0], last[1], intPts, c, pw, s.tailEnd)
			}
		}
		return
	}

	// drawSeg draws a line segment respecting the connector's dash style.
	drawSeg := func(ax, ay, bx, by int) {
		if ls == BorderDash || ls == BorderDot {
			r.drawDashedLineAA(ax, ay, bx, by, c, pw, ls)
		} else {
			r.drawLineAA(ax, ay, bx, by, c, pw)
		}
	}

	switch {
	case s.connectorType == "bentConnector3":
		// Elbow connector with 3 segments: horizontal, vertical, horizontal
		adjPct := 50000
		if v, ok := s.adjustValues["adj1"]; ok {
			adjPct = v
		}
		midX := x1 + int(float64(x2-x1)*float64(adjPct)/100000.0)
		drawSeg(x1, y1, midX, y1)
		drawSeg(midX, y1, midX, y2)
		drawSeg(midX, y2, x2, y2)
		pathPts := [][2]int{{x1, y1}, {midX, y1}, {midX, y2}, {x2, y2}}
		if s.headEnd != nil && s.headEnd.Type != ArrowNone && s.headEnd.Type != "" {
			r.drawArrowOnPath(x1, y1, pathPts, c, pw, s.headEnd)
		}
		if s.tailEnd != nil && s.tailEnd.Type != ArrowNone && s.tailEnd.Type != "" {
			r.drawArrowOnPath(x2, y2, pathPts, c, pw, s.tailEnd)
		}

	case s.connectorType == "bentConnector2":
		drawSeg(x1, y1, x2, y1)
		drawSeg(x2, y1, x2, y2)
		pathPts := [][2]int{{x1, y1}, {x2, y1}, {x2, y2}}
		if s.headEnd != nil && s.headEnd.Type != ArrowNone && s.headEnd.Type != "" {
			r.drawArrowOnPath(x1, y1, pathPts, c, pw, s.headEnd)
		}
		if s.tailEnd != nil && s.tailEnd.Type != ArrowNone && s.tailEnd.Type != "" {
			r.drawArrowOnPath(x2, y2, pathPts, c, pw, s.tailEnd)
		}

	case s.connectorType == "bentConnector4":
		adjPct1 := 50000
		adjPct2 := 50000
		if v, ok := s.adjustValues["adj1"]; ok {
			adjPct1 = v
		}
		if v, ok := s.adjustValues["adj2"]; ok {
			adjPct2 = v
		}
		midX := x1 + int(float64(x2-x1)*float64(adjPct1)/100000.0)
		midY := y1 + int(float64(y2-y1)*float64(adjPct2)/100000.0)
		drawSeg(x1, y1, midX, y1)
		drawSeg(midX, y1, midX, midY)
		drawSeg(midX, midY, x2, midY)
		drawSeg(x2, midY, x2, y2)
		pathPts := [][2]int{{x1, y1}, {midX, y1}, {midX, midY}, {x2, midY}, {x2, y2}}
		if s.headEnd != nil && s.headEnd.Type != ArrowNone && s.headEnd.Type != "" {
			r.drawArrowOnPath(x1, y1, pathPts, c, pw, s.headEnd)
		}
		if s.tailEnd != nil && s.tailEnd.Type != ArrowNone && s.tailEnd.Type != "" {
			r.drawArrowOnPath(x2, y2, pathPts, c, pw, s.tailEnd)
		}

	case s.connectorType == "bentConnector5":
		adjPct1 := 50000
		adjPct2 := 50000
		adjPct3 := 50000
		if v, ok := s.adjustValues["adj1"]; ok {
			adjPct1 = v
		}
		if v, ok := s.adjustValues["adj2"]; ok {
			adjPct2 = v
		}
		if v, ok := s.adjustValues["adj3"]; ok {
			adjPct3 = v
		}
		midX1 := x1 + int(float64(x2-x1)*float64(adjPct1)/100000.0)
		midY := y1 + int(float64(y2-y1)*float64(adjPct2)/100000.0)
		midX2 := x1 + int(float64(x2-x1)*float64(adjPct3)/100000.0)
		drawSeg(x1, y1, midX1, y1)
		drawSeg(midX1, y1, midX1, midY)
		drawSeg(midX1, midY, midX2, midY)
		drawSeg(midX2, midY, midX2, y2)
		drawSeg(midX2, y2, x2, y2)
		pathPts := [][2]int{{x1, y1}, {midX1, y1}, {midX1, midY}, {midX2, midY}, {midX2, y2}, {x2, y2}}
		if s.headEnd != nil && s.headEnd.Type != ArrowNone && s.headEnd.Type != "" {
			r.drawArrowOnPath(x1, y1, pathPts, c, pw, s.headEnd)
		}
		if s.tailEnd != nil && s.tailEnd.Type != ArrowNone && s.tailEnd.Type != "" {
			r.drawArrowOnPath(x2, y2, pathPts, c, pw, s.tailEnd)
		}

	case strings.HasPrefix(s.connectorType, "curvedConnector"):
		r.renderCurvedConnector(s.connectorType, x1, y1, x2, y2, s.adjustValues, c, pw, ls, s.headEnd, s.tailEnd)

	default:
		// Straight line connector (line, straightConnector1, etc.)
		drawSeg(x1, y1, x2, y2)
		// headEnd at visual start (x1,y1), tailEnd at visual end (x2,y2).
		// Arrow tip placed at the endpoint, direction from the other end.
		if s.headEnd != nil && s.headEnd.Type != ArrowNone && s.headEnd.Type != "" {
			r.drawArrowHead(x2, y2, x1, y1, c, pw, s.headEnd, false)
		}
		if s.tailEnd != nil && s.tailEnd.Type != ArrowNone && s.tailEnd.Type != "" {
			r.drawArrowHead(x1, y1, x2, y2, c, pw, s.tailEnd, false)
		}
	}
}

// renderCurvedConnector draws a curved connector using cubic Bezier curves.
// OOXML curved connectors (curvedConnector2..5) follow the same waypoint
// logic as bent connectors but replace the right-angle segments with smooth
// S-curves through the waypoints.
func (r *renderer) renderCurvedConnector(connType string, x1, y1, x2, y2 int, adj map[string]int, c color.RGBA, pw int, ls BorderStyle, headEnd, tailEnd *LineEnd) {
	drawBezier := func(bx0, by0, bx1, by1, bx2, by2, bx3, by3 float64) {
		if ls == BorderDash || ls == BorderDot {
			r.drawDashedCubicBezierAA(bx0, by0, bx1, by1, bx2, by2, bx3, by3, c, pw, ls)
		} else {
			r.drawCubicBezierAA(bx0, by0, bx1, by1, bx2, by2, bx3, by3, c, pw)
		}
	}

	// Build waypoints based on connector type (same as bent connectors)
	var waypoints []fpoint
	switch connType {
	case "curvedConnector2":
		waypoints = []fpoint{{float64(x1), float64(y1)}, {float64(x2), float64(y1)}, {float64(x2), float64(y2)}}
	case "curvedConnector3":
		adjPct := 50000
		if v, ok := adj["adj1"]; ok {
			adjPct = v
		}
		midX := float64(x1) + float64(x2-x1)*float64(adjPct)/100000.0
		waypoints = []fpoint{{float64(x1), float64(y1)}, {midX, float64(y1)}, {midX, float64(y2)}, {float64(x2), float64(y2)}}
	case "curvedConnector4":
		adjPct1 := 50000
		adjPct2 := 50000
		if v, ok := adj["adj1"]; ok {
			adjPct1 = v
		}
		if v, ok := adj["adj2"]; ok {
			adjPct2 = v
		}
		midX := float64(x1) + float64(x2-x1)*float64(adjPct1)/100000.0
		midY := float64(y1) + float64(y2-y1)*float64(adjPct2)/100000.0
		waypoints = []fpoint{{float64(x1), float64(y1)}, {midX, float64(y1)}, {midX, midY}, {float64(x2), midY}, {float64(x2), float64(y2)}}
	case "curvedConnector5":
		adjPct1 := 50000
		adjPct2 := 50000
		adjPct3 := 50000
		if v, ok := adj["adj1"]; ok {
			adjPct1 = v
		}
		if v, ok := adj["adj2"]; ok {
			adjPct2 = v
		}
		if v, ok := adj["adj3"]; ok {
			adjPct3 = v
		}
		midX1 := float64(x1) + float64(x2-x1)*float64(adjPct1)/100000.0
		midY := float64(y1) + float64(y2-y1)*float64(adjPct2)/100000.0
		midX2 := float64(x1) + float64(x2-x1)*float64(adjPct3)/100000.0
		waypoints = []fpoint{{float64(x1), float64(y1)}, {midX1, float64(y1)}, {midX1, midY}, {midX2, midY}, {midX2, float64(y2)}, {float64(x2), float64(y2)}}
	default:
		// Unknown curved connector variant, draw as straight
		waypoints = []fpoint{{float64(x1), float64(y1)}, {float64(x2), float64(y2)}}
	}

	if len(waypoints) < 2 {
		return
	}

	// Draw smooth curves through waypoints using cubic Bezier segments.
	// Each pair of consecutive waypoints becomes a Bezier segment where
	// the control points create a smooth S-curve between the two points.
	for i := 0; i < len(waypoints)-1; i++ {
		p0 := waypoints[i]
		p1 := waypoints[i+1]
		// Control points at 1/3 and 2/3 along the segment, but shifted
		// to create the S-curve effect (horizontal→vertical or vertical→horizontal)
		dx := p1.x - p0.x
		dy := p1.y - p0.y
		if math.Abs(dx) > math.Abs(dy) {
			// Primarily horizontal segment: curve vertically at midpoint
			drawBezier(p0.x, p0.y, p0.x+dx/2, p0.y, p0.x+dx/2, p1.y, p1.x, p1.y)
		} else {
			// Primarily vertical segment: curve horizontally at midpoint
			drawBezier(p0.x, p0.y, p0.x, p0.y+dy/2, p1.x, p0.y+dy/2, p1.x, p1.y)
		}
	}

	// Draw arrow heads using the tangent direction at the endpoints
	if headEnd != nil && headEnd.Type != ArrowNone && headEnd.Type != "" {
		// Direction from second waypoint toward first
		p0 := waypoints[0]
		p1 := waypoints[1]
		dx := p1.x - p0.x
		dy := p1.y - p0.y
		// Tangent at start: for our Bezier, the initial tangent points toward the first control point
		var fromX, fromY int
		if math.Abs(dx) > math.Abs(dy) {
			fromX = int(p0.x + dx/2)
			fromY = int(p0.y)
		} else {
			fromX = int(p0.x)
			fromY = int(p0.y + dy/2)
		}
		r.drawArrowHead(fromX, fromY, int(p0.x), int(p0.y), c, pw, headEnd, false)
	}
	if tailEnd != nil && tailEnd.Type != ArrowNone && tailEnd.Type != "" {
		n := len(waypoints)
		pLast := waypoints[n-1]
		pPrev := waypoints[n-2]
		dx := pLast.x - pPrev.x
		dy := pLast.y - pPrev.y
		var fromX, fromY int
		if math.Abs(dx) > math.Abs(dy) {
			fromX = int(pPrev.x + dx/2)
			fromY = int(pLast.y)
		} else {
			fromX = int(pLast.x)
			fromY = int(pPrev.y + dy/2)
		}
		r.drawArrowHead(fromX, fromY, int(pLast.x), int(pLast.y), c, pw, tailEnd, false)
	}
}

// drawArrowOnPath draws an arrow at the visual endpoint (vx,vy) using the
// direction from the visual path. It finds which end of the path is closest to
// the visual point and uses the appropriate segment for direction.
func (r *renderer) drawArrowOnPath(vx, vy int, pathPts [][2]int, c color.RGBA, lineWidth int, le *LineEnd) {
	if len(pathPts) < 2 {
		return
	}
	first := pathPts[0]
	last := pathPts[len(pathPts)-1]
	distFirst := abs(vx-first[0]) + abs(vy-first[1])
	distLast := abs(vx-last[0]) + abs(vy-last[1])

	if distFirst <= distLast {
		// Visual point is at the start of the path.
		// Find first non-zero-length segment for direction.
		for i := 0; i+1 < len(pathPts); i++ {
			dx := pathPts[i+1][0] - pathPts[i][0]
			dy := pathPts[i+1][1] - pathPts[i][1]
			if abs(dx) > 1 || abs(dy) > 1 {
				r.drawArrowHead(pathPts[i+1][0], pathPts[i+1][1], vx, vy, c, lineWidth, le, false)
				return
			}
		}
		r.drawArrowHead(last[0], last[1], vx, vy, c, lineWidth, le, false)
	} else {
		// Visual point is at the end of the path.
		// Find last non-zero-length segment for direction.
		for i := len(pathPts) - 1; i > 0; i-- {
			dx := pathPts[i][0] - pathPts[i-1][0]
			dy := pathPts[i][1] - pathPts[i-1][1]
			if abs(dx) > 1 || abs(dy) > 1 {
				r.drawArrowHead(pathPts[i-1][0], pathPts[i-1][1], vx, vy, c, lineWidth, le, false)
				return
			}
		}
		r.drawArrowHead(first[0], first[1], vx, vy, c, lineWidth, le, false)
	}
}

// drawArrowHead draws an arrow head at one end of a line.
// If atStart is true, the arrow is drawn at (x1,y1) pointing away from (x2,y2).
// If atStart is false, the arrow is drawn at (x2,y2) pointing away from (x1,y1).
func (r *renderer) drawArrowHead(x1, y1, x2, y2 int, c color.RGBA, lineWidth int, le *LineEnd, atStart bool) {
	// Compute arrow size based on line width and arrow size attributes.
	// PowerPoint arrow sizing: the OOXML spec defines arrow length/width in
	// terms of line width multiples. For "med" size on a 2pt line at 96 DPI:
	//   length ≈ 9px, width ≈ 7px
	// We use a formula that matches PowerPoint's rendering closely.
	lw := float64(lineWidth)
	baseLen := lw*3.0 + 4.0
	baseWidth := lw*2.5 + 3.0

	switch le.Length {
	case ArrowSizeSm:
		baseLen *= 0.6
	case ArrowSizeLg:
		baseLen *= 1.6
	}
	switch le.Width {
	case ArrowSizeSm:
		baseWidth *= 0.6
	case ArrowSizeLg:
		baseWidth *= 1.6
	}

	// Minimum arrow size for visibility
	if baseLen < 7 {
		baseLen = 7
	}
	if baseWidth < 5 {
		baseWidth = 5
	}

	// Direction vector
	var dx, dy float64
	if atStart {
		dx = float64(x1 - x2)
		dy = float64(y1 - y2)
	} else {
		dx = float64(x2 - x1)
		dy = float64(y2 - y1)
	}
	length := math.Sqrt(dx*dx + dy*dy)
	if length < 1 {
		return
	}
	dx /= length
	dy /= length

	// Tip point — extend 0.5px past the endpoint so the scanline at the
	// endpoint row hits the very tip of the triangle (the scanline samples
	// at pixel-center y+0.5, so without this offset the tip row is already
	// past the vertex and produces a flat bottom instead of a sharp point).
	var tipX, tipY float64
	if atStart {
		tipX = float64(x1) + dx*0.5
		tipY = float64(y1) + dy*0.5
	} else {
		tipX = float64(x2) + dx*0.5
		tipY = float64(y2) + dy*0.5
	}

	// Base center (behind the tip)
	baseX := tipX - dx*baseLen
	baseY := tipY - dy*baseLen

	// Perpendicular
	perpX := -dy
	perpY := dx

	halfW := baseWidth / 2.0

	switch le.Type {
	case ArrowTriangle:
		// Filled triangle arrow head
		p1 := fpoint{tipX, tipY}
		p2 := fpoint{baseX + perpX*halfW, baseY + perpY*halfW}
		p3 := fpoint{baseX - perpX*halfW, baseY - perpY*halfW}
		pts := []fpoint{p1, p2, p3}
		r.fillPolygon(pts, c)
	case ArrowStealth:
		// Stealth has a notch at the base
		p1 := fpoint{tipX, tipY}
		p2 := fpoint{baseX + perpX*halfW, baseY + perpY*halfW}
		p3 := fpoint{baseX - perpX*halfW, baseY - perpY*halfW}
		notchDepth := baseLen * 0.3
		notchX := baseX + dx*notchDepth
		notchY := baseY + dy*notchDepth
		pts := []fpoint{p1, p2, {notchX, notchY}, p3}
		r.fillPolygon(pts, c)
	case ArrowArrow:
		// Open arrow head — two lines forming a V (not filled)
		p2 := fpoint{baseX + perpX*halfW, baseY + perpY*halfW}
		p3 := fpoint{baseX - perpX*halfW, baseY - perpY*halfW}
		lw := maxInt(lineWidth, 1)
		r.drawLineAA(int(p2.x), int(p2.y), int(tipX), int(tipY), c, lw)
		r.drawLineAA(int(tipX), int(tipY), int(p3.x), int(p3.y), c, lw)
	case ArrowDiamond:
		// Diamond shape
		midX := tipX - dx*baseLen/2
		midY := tipY - dy*baseLen/2
		p1 := fpoint{tipX, tipY}
		p2 := fpoint{midX + perpX*halfW, midY + perpY*halfW}
		p3 := fpoint{baseX, baseY}
		p4 := fpoint{midX - perpX*halfW, midY - perpY*halfW}
		pts := []fpoint{p1, p2, p3, p4}
		r.fillPolygon(pts, c)
	case ArrowOval:
		// Oval/circle at the end
		cx := int(tipX - dx*baseLen/2)
		cy := int(tipY - dy*baseLen/2)
		rad := int(baseLen / 2)
		r.fillEllipseAA(cx-rad, cy-rad, rad*2, rad*2, c)
	}
}

func (r *renderer) renderTable(s *TableShape) {
	x := r.emuToPixelX(s.offsetX)
	y := r.emuToPixelY(s.offsetY)
	w := r.emuToPixelX(s.width)
	h := r.emuToPixelY(s.height)
	if s.numRows == 0 || s.numCols == 0 {
		return
	}

	// Compute column positions using individual widths if available
	colX := make([]int, s.numCols+1)
	colX[0] = x
	if len(s.colWidths) == s.numCols {
		for i, cw := range s.colWidths {
			colX[i+1] = colX[i] + r.emuToPixelX(cw)
		}
	} else {
		cellW := w / s.numCols
		for i := 0; i <= s.numCols; i++ {
			colX[i] = x + i*cellW
		}
	}

	// Compute row positions using individual heights if available
	rowY := make([]int, s.numRows+1)
	rowY[0] = y
	if len(s.rowHeights) == s.numRows {
		for i, rh := range s.rowHeights {
			rowY[i+1] = rowY[i] + r.emuToPixelY(rh)
		}
	} else {
		cellH := h / s.numRows
		for i := 0; i <= s.numRows; i++ {
			rowY[i] = y + i*cellH
		}
	}

	pad := 3

	for row := 0; row < s.numRows; row++ {
		if row >= len(s.rows) {
			break
		}
		for col := 0; col < len(s.rows[row]); col++ {
			if col >= s.numCols {
				break
			}
			cell := s.rows[row][col]
			// Skip merged continuation cells
			if cell.hMerge || cell.vMerge {
				continue
			}
			cx := colX[col]
			cy := rowY[row]
			// Handle column span
			endCol := col + cell.colSpan
			if endCol > s.numCols {
				endCol = s.numCols
			}
			// Handle row span
			endRow := row + cell.rowSpan
			if endRow > s.numRows {
				endRow = s.numRows
			}
			cellW := colX[endCol] - cx
			cellH := rowY[endRow] - cy
			cellRect := image.Rect(cx, cy, cx+cellW, cy+cellH)
			r.renderFill(cell.fill, cellRect)
			if cell.border != nil {
				r.renderCellBorders(cell.border, cellRect)
			} else {
				r.drawRect(cellRect, color.RGBA{A: 255}, 1)
			}
			r.drawParagraphs(cell.paragraphs, cx+pad, cy+pad, cellW-2*pad, cellH-2*pad, TextAnchorNone, true)
		}
	}
}

func (r *renderer) renderCellBorders(cb *CellBorders, rect image.Rectangle) {
	drawBorder := func(b *Border, x1, y1, x2, y2 int) {
		if b == nil || b.Style == BorderNone {
			return
		}
		pw := maxInt(int(float64(b.Width)*12700.0*r.scaleX), 1)
		r.drawLineThick(x1, y1, x2, y2, argbToRGBA(b.Color), pw)
	}
	drawBorder(cb.Top, rect.Min.X, rect.Min.Y, rect.Max.X, rect.Min.Y)
	drawBorder(cb.Bottom, rect.Min.X, rect.Max.Y-1, rect.Max.X, rect.Max.Y-1)
	drawBorder(cb.Left, rect.Min.X, rect.Min.Y, rect.Min.X, rect.Max.Y)
	drawBorder(cb.Right, rect.Max.X-1, rect.Min.Y, rect.Max.X-1, rect.Max.Y)
}

// --- Shadow rendering ---

func (r *renderer) renderShadow(shadow *Shadow, rect image.Rectangle) {
	if shadow == nil || !shadow.Visible {
		return
	}
	rad := float64(shadow.Direction) * math.Pi / 180.0
	dist := float64(shadow.Distance) * 12700.0 * r.scaleX
	dx := int(dist * math.Cos(rad))
	dy := int(dist * math.Sin(rad))
	shadowColor := argbToRGBA(shadow.Color)
	shadowColor.A = uint8(float64(shadow.Alpha) * 255 / 100)
	shadowRect := rect.Add(image.Pt(dx, dy))

	blur := shadow.BlurRadius
	if blur <= 0 {
		r.fillRectBlend(shadowRect, shadowColor)
		return
	}

	// Box-blur approximation: render shadow at full alpha, then apply a simple
	// multi-pass box expansion with decreasing alpha from outside in.
	// We draw from outermost ring inward so inner pixels get the strongest alpha.
	steps := minInt(blur, 10)
	for i := steps; i >= 0; i-- {
		t := float64(i) / float64(steps)
		alpha := uint8(float64(shadowColor.A) * (1 - t*t)) // quadratic falloff
		c := color.RGBA{R: shadowColor.R, G: shadowColor.G, B: shadowColor.B, A: alpha}
		expanded := shadowRect.Inset(-i)
		// Only draw the ring (not the interior) for outer layers
		if i > 0 {
			inner := shadowRect.Inset(-(i - 1))
			// Top strip
			r.fillRectBlend(image.Rect(expanded.Min.X, expanded.Min.Y, expanded.Max.X, inner.Min.Y), c)
			// Bottom strip
			r.fillRectBlend(image.Rect(expanded.Min.X, inner.Max.Y, expanded.Max.X, expanded.Max.Y), c)
			// Left strip
			r.fillRectBlend(image.Rect(expanded.Min.X, inner.Min.Y, inner.Min.X, inner.Max.Y), c)
			// Right strip
			r.fillRectBlend(image.Rect(inner.Max.X, inner.Min.Y, expanded.Max.X, inner.Max.Y), c)
		} else {
			r.fillRectBlend(expanded, c)
		}
	}
}


func (r *renderer) renderShadowRounded(shadow *Shadow, rect image.Rectangle, radius int) {
	if shadow == nil || !shadow.Visible {
		return
	}
	rad := float64(shadow.Direction) * math.Pi / 180.0
	dist := float64(shadow.Distance) * 12700.0 * r.scaleX
	dx := int(dist * math.Cos(rad))
	dy := int(dist * math.Sin(rad))
	shadowColor := argbToRGBA(shadow.Color)
	shadowColor.A = uint8(float64(shadow.Alpha) * 255 / 100)
	shadowRect := rect.Add(image.Pt(dx, dy))

	blur := shadow.BlurRadius
	if blur <= 0 {
		sw := shadowRect.Dx()
		sh := shadowRect.Dy()
		r.fillRoundedRect(shadowRect.Min.X, shadowRect.Min.Y, sw, sh, radius, shadowColor)
		return
	}

	steps := minInt(blur, 10)
	outerRect := shadowRect.Inset(-steps)
	tmpW := outerRect.Dx()
	tmpH := outerRect.Dy()
	if tmpW <= 0 || tmpH <= 0 {
		return
	}
	tmp := image.NewRGBA(image.Rect(0, 0, tmpW, tmpH))
	tmpR := &renderer{img: tmp, scaleX: r.scaleX, scaleY: r.scaleY}

	for i := steps; i >= 0; i-- {
		t := float64(i) / float64(steps)
		alpha := uint8(float64(shadowColor.A) * (1 - t*t))
		c := color.RGBA{R: shadowColor.R, G: shadowColor.G, B: shadowColor.B, A: alpha}
		expanded := shadowRect.Inset(-i)
		ex := expanded.Min.X - outerRect.Min.X
		ey := expanded.Min.Y - outerRect.Min.Y
		ew := expanded.Dx()
		eh := expanded.Dy()
		er := radius + i
		tmpR.fillRoundedRect(ex, ey, ew, eh, er, c)
	}

	bounds := r.img.Bounds()
	for py := 0; py < tmpH; py++ {
		ddy := outerRect.Min.Y + py
		if ddy < bounds.Min.Y || ddy >= bounds.Max.Y {
			continue
		}
		for px := 0; px < tmpW; px++ {
			ddx := outerRect.Min.X + px
			if ddx < bounds.Min.X || ddx >= bounds.Max.X {
				continue
			}
			sc := tmp.RGBAAt(px, py)
			if sc.A == 0 {
				continue
			}
			r.blendPixel(ddx, ddy, sc)
		}
	}
}

// --- Ellipse rendering (anti-aliased) ---

func (r *renderer) fillEllipseAA(cx, cy, w, h int, c color.RGBA) {
	if w <= 0 || h <= 0 {
		return
	}
	rx := float64(w) / 2
	ry := float64(h) / 2
	centerX := float64(cx) + rx
	centerY := float64(cy) + ry
	invRx2 := 1.0 / (rx * rx)
	invRy2 := 1.0 / (ry * ry)
	aaThreshold := 0.05

	bounds := r.img.Bounds()
	pix := r.img.Pix
	stride := r.img.Stride

	for py := cy; py < cy+h; py++ {
		if py < bounds.Min.Y || py >= bounds.Max.Y {
			continue
		}
		dyNorm := float64(py) + 0.5 - centerY
		dy2 := dyNorm * dyNorm * invRy2
		if dy2 > 1.0 {
			continue
		}
		hExtent := rx * math.Sqrt(1.0-dy2)
		minPx := maxInt(int(centerX-hExtent), cx)
		maxPx := minInt(int(centerX+hExtent+1), cx+w)
		minPx = maxInt(minPx, bounds.Min.X)
		maxPx = minInt(maxPx, bounds.Max.X)

		rowOff := (py-bounds.Min.Y)*stride + (minPx-bounds.Min.X)*4
		for px := minPx; px < maxPx; px++ {
			dxNorm := float64(px) + 0.5 - centerX
			d := dxNorm*dxNorm*invRx2 + dy2
			if d <= 1.0 {
				edge := 1.0 - d
				if edge < aaThreshold {
					r.blendPixelF(px, py, c, edge/aaThreshold)
				} else if c.A == 255 {
					pix[rowOff] = c.R
					pix[rowOff+1] = c.G
					pix[rowOff+2] = c.B
					pix[rowOff+3] = 255
				} else {
					a := uint32(c.A)
					ia := 255 - a
					pix[rowOff] = uint8((uint32(c.R)*a + uint32(pix[rowOff])*ia) / 255)
					pix[rowOff+1] = uint8((uint32(c.G)*a + uint32(pix[rowOff+1])*ia) / 255)
					pix[rowOff+2] = uint8((uint32(c.B)*a + uint32(pix[rowOff+2])*ia) / 255)
					pix[rowOff+3] = uint8(uint32(pix[rowOff+3]) + (255-uint32(pix[rowOff+3]))*a/255)
				}
			}
			rowOff += 4
		}
	}

}

func (r *renderer) drawEllipseAA(cx, cy, w, h int, c color.RGBA, lineWidth int) {
	if w <= 0 || h <= 0 {
		return
	}
	rx := float64(w) / 2
	ry := float64(h) / 2
	centerX := float64(cx) + rx
	centerY := float64(cy) + ry
	lw := float64(lineWidth)
	minR := math.Min(rx, ry)
	if minR < 1 {
		minR = 1
	}
	halfLW := lw / 2
	threshold := halfLW + 1

	for py := cy - lineWidth - 1; py < cy+h+lineWidth+1; py++ {
		dyNorm := (float64(py) + 0.5 - centerY) / ry
		dy2 := dyNorm * dyNorm
		if dy2 > 1.5 { // quick reject for rows far outside
			continue
		}
		for px := cx - lineWidth - 1; px < cx+w+lineWidth+1; px++ {
			dxNorm := (float64(px) + 0.5 - centerX) / rx
			d := math.Sqrt(dxNorm*dxNorm + dy2)
			distPx := math.Abs(d-1.0) * minR
			if distPx < threshold {
				coverage := 1.0
				if distPx > halfLW {
					coverage = 1.0 - (distPx - halfLW)
				}
				if coverage > 0 {
					r.blendPixelF(px, py, c, coverage)
				}
			}
		}
	}
}

// Legacy compatibility wrappers
func (r *renderer) fillEllipse(cx, cy, w, h int, c color.RGBA) { r.fillEllipseAA(cx, cy, w, h, c) }
func (r *renderer) drawEllipse(cx, cy, w, h int, c color.RGBA) { r.drawEllipseAA(cx, cy, w, h, c, 1) }

// --- Rounded rectangle ---

func (r *renderer) fillRoundedRect(x, y, w, h, radius int, c color.RGBA) {
	if radius <= 0 {
		r.fillRectBlend(image.Rect(x, y, x+w, y+h), c)
		return
	}
	radius = minInt(radius, minInt(w/2, h/2))
	r2 := float64(radius * radius)

	// Fill center rectangle (no corner checks needed)
	r.fillRectBlend(image.Rect(x+radius, y, x+w-radius, y+h), c)
	// Fill left/right strips (excluding corners)
	r.fillRectBlend(image.Rect(x, y+radius, x+radius, y+h-radius), c)
	r.fillRectBlend(image.Rect(x+w-radius, y+radius, x+w, y+h-radius), c)

	// Fill corners with circle test
	corners := [4][2]int{
		{x + radius, y + radius},         // top-left center
		{x + w - radius, y + radius},     // top-right center
		{x + radius, y + h - radius},     // bottom-left center
		{x + w - radius, y + h - radius}, // bottom-right center
	}
	cornerRects := [4]image.Rectangle{
		{Min: image.Pt(x, y), Max: image.Pt(x+radius, y+radius)},
		{Min: image.Pt(x+w-radius, y), Max: image.Pt(x+w, y+radius)},
		{Min: image.Pt(x, y+h-radius), Max: image.Pt(x+radius, y+h)},
		{Min: image.Pt(x+w-radius, y+h-radius), Max: image.Pt(x+w, y+h)},
	}
	for ci := 0; ci < 4; ci++ {
		ccx, ccy := corners[ci][0], corners[ci][1]
		cr := cornerRects[ci]
		for py := cr.Min.Y; py < cr.Max.Y; py++ {
			dy := float64(py - ccy)
			for px := cr.Min.X; px < cr.Max.X; px++ {
				dx := float64(px - ccx)
				if dx*dx+dy*dy <= r2 {
					r.blendPixel(px, py, c)
				}
			}
		}
	}
}

func (r *renderer) drawRoundedRect(x, y, w, h, radius int, c color.RGBA, lineWidth int) {
	r.drawLineThick(x+radius, y, x+w-radius, y, c, lineWidth)
	r.drawLineThick(x+radius, y+h-1, x+w-radius, y+h-1, c, lineWidth)
	r.drawLineThick(x, y+radius, x, y+h-radius, c, lineWidth)
	r.drawLineThick(x+w-1, y+radius, x+w-1, y+h-radius, c, lineWidth)
	r.drawArc(x, y, radius*2, radius*2, c, math.Pi, 1.5*math.Pi, lineWidth)
	r.drawArc(x+w-radius*2, y, radius*2, radius*2, c, 1.5*math.Pi, 2*math.Pi, lineWidth)
	r.drawArc(x, y+h-radius*2, radius*2, radius*2, c, 0.5*math.Pi, math.Pi, lineWidth)
	r.drawArc(x+w-radius*2, y+h-radius*2, radius*2, radius*2, c, 0, 0.5*math.Pi, lineWidth)
}

func (r *renderer) drawArc(cx, cy, w, h int, c color.RGBA, startAngle, endAngle float64, lineWidth int) {
	rx := float64(w) / 2
	ry := float64(h) / 2
	centerX := float64(cx) + rx
	centerY := float64(cy) + ry
	// Use enough steps for smooth arc
	circumference := math.Pi * (rx + ry) * (endAngle - startAngle) / (2 * math.Pi)
	steps := maxInt(int(circumference*2), 30)
	angleStep := (endAngle - startAngle) / float64(steps)

	var prevPx, prevPy int
	for i := 0; i <= steps; i++ {
		angle := startAngle + angleStep*float64(i)
		px := int(centerX + rx*math.Cos(angle))
		py := int(centerY + ry*math.Sin(angle))
		if i > 0 && (px != prevPx || py != prevPy) {
			r.drawLineThick(prevPx, prevPy, px, py, c, lineWidth)
		}
		prevPx, prevPy = px, py
	}
}

// --- Polygon shapes ---

type fpoint struct{ x, y float64 }

// fillPolygon fills a polygon using scanline algorithm with sort.Float64s.
func (r *renderer) fillPolygon(pts []fpoint, c color.RGBA) {
	if len(pts) < 3 {
		return
	}
	minY, maxY := pts[0].y, pts[0].y
	for _, p := range pts[1:] {
		if p.y < minY {
			minY = p.y
		}
		if p.y > maxY {
			maxY = p.y
		}
	}

	n := len(pts)
	// Pre-allocate intersection buffer
	intersections := make([]float64, 0, n)

	for y := int(minY); y <= int(maxY); y++ {
		fy := float64(y) + 0.5
		intersections = intersections[:0]
		for i := 0; i < n; i++ {
			j := (i + 1) % n
			py1, py2 := pts[i].y, pts[j].y
			if py1 > py2 {
				py1, py2 = py2, py1
			}
			if fy < py1 || fy >= py2 {
				continue
			}
			dy := pts[j].y - pts[i].y
			if dy == 0 {
				continue
			}
			t := (fy - pts[i].y) / dy
			intersections = append(intersections, pts[i].x+t*(pts[j].x-pts[i].x))
		}
		sort.Float64s(intersections)
		for i := 0; i+1 < len(intersections); i += 2 {
			x1 := int(math.Ceil(intersections[i]))
			x2 := int(math.Floor(intersections[i+1]))
			if x1 <= x2 {
				if c.A == 255 {
					r.fillRectFast(image.Rect(x1, y, x2+1, y+1), c)
				} else {
					r.fillRectBlend(image.Rect(x1, y, x2+1, y+1), c)
				}
			}
		}
	}
}

func (r *renderer) fillPolygonGradient(pts []fpoint, fill *Fill) {
	if len(pts) < 3 || fill == nil {
		return
	}
	startC := argbToRGBA(fill.Color)
	endC := argbToRGBA(fill.EndColor)

	// Compute bounding box
	minX, minY, maxX, maxY := pts[0].x, pts[0].y, pts[0].x, pts[0].y
	for _, p := range pts[1:] {
		if p.x < minX {
			minX = p.x
		}
		if p.y < minY {
			minY = p.y
		}
		if p.x > maxX {
			maxX = p.x
		}
		if p.y > maxY {
			maxY = p.y
		}
	}
	bw := maxX - minX
	bh := maxY - minY
	if bw <= 0 || bh <= 0 {
		return
	}

	rad := float64(fill.Rotation) * math.Pi / 180.0
	cosA := math.Cos(rad)
	sinA := math.Sin(rad)
	cx := bw / 2
	cy := bh / 2
	maxProj := math.Abs(cx*cosA) + math.Abs(cy*sinA)
	if maxProj < 1 {
		maxProj = 1
	}
	invMaxProj := 1.0 / (2 * maxProj)

	n := len(pts)
	intersections := make([]float64, 0, n)
	bounds := r.img.Bounds()
	pix := r.img.Pix
	stride := r.img.Stride

	for y := int(minY); y <= int(maxY); y++ {
		if y < bounds.Min.Y || y >= bounds.Max.Y {
			continue
		}
		fy := float64(y) + 0.5
		intersections = intersections[:0]
		for i := 0; i < n; i++ {
			j := (i + 1) % n
			py1, py2 := pts[i].y, pts[j].y
			if py1 > py2 {
				py1, py2 = py2, py1
			}
			if fy < py1 || fy >= py2 {
				continue
			}
			dy := pts[j].y - pts[i].y
			if dy == 0 {
				continue
			}
			t := (fy - pts[i].y) / dy
			intersections = append(intersections, pts[i].x+t*(pts[j].x-pts[i].x))
		}
		sort.Float64s(intersections)

		dyf := float64(y) - minY - cy
		rowBase := dyf*sinA + maxProj

		for i := 0; i+1 < len(intersections); i += 2 {
			x1 := int(math.Ceil(intersections[i]))
			x2 := int(math.Floor(intersections[i+1]))
			if x1 > x2 {
				continue
			}
			if x1 < bounds.Min.X {
				x1 = bounds.Min.X
			}
			if x2 >= bounds.Max.X {
				x2 = bounds.Max.X - 1
			}
			off := (y-bounds.Min.Y)*stride + (x1-bounds.Min.X)*4
			for px := x1; px <= x2; px++ {
				dxf := float64(px) - minX - cx
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
}

func (r *renderer) drawPolygon(pts []fpoint, c color.RGBA, width int) {
	n := len(pts)
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		r.drawLineAA(int(pts[i].x), int(pts[i].y), int(pts[j].x), int(pts[j].y), c, width)
	}
}

func (r *renderer) fillTriangle(x, y, w, h int, c color.RGBA) {
	r.fillPolygon([]fpoint{
		{float64(x) + float64(w)/2, float64(y)},
		{float64(x + w), float64(y + h)},
		{float64(x), float64(y + h)},
	}, c)
}

func (r *renderer) drawTriangle(x, y, w, h int, c color.RGBA, width int) {
	r.drawPolygon([]fpoint{
		{float64(x) + float64(w)/2, float64(y)},
		{float64(x + w), float64(y + h)},
		{float64(x), float64(y + h)},
	}, c, width)
}

func (r *renderer) fillDiamond(x, y, w, h int, c color.RGBA) {
	cx, cy := float64(x)+float64(w)/2, float64(y)+float64(h)/2
	r.fillPolygon([]fpoint{{cx, float64(y)}, {float64(x + w), cy}, {cx, float64(y + h)}, {float64(x), cy}}, c)
}

func (r *renderer) drawDiamond(x, y, w, h int, c color.RGBA, width int) {
	cx, cy := float64(x)+float64(w)/2, float64(y)+float64(h)/2
	r.drawPolygon([]fpoint{{cx, float64(y)}, {float64(x + w), cy}, {cx, float64(y + h)}, {float64(x), cy}}, c, width)
}

// --- Chart rendering ---

// defaultChartPalette is the default color palette for chart series.
var defaultChartPalette = []color.RGBA{
	{R: 79, G: 129, B: 189, A: 255},
	{R: 192, G: 80, B: 77, A: 255},
	{R: 155, G: 187, B: 89, A: 255},
	{R: 128, G: 100, B: 162, A: 255},
	{R: 75, G: 172, B: 198, A: 255},
	{R: 247, G: 150, B: 70, A: 255},
	{R: 119, G: 44, B: 42, A: 255},
	{R: 77, G: 93, B: 58, A: 255},
}

// chartColors returns the default color palette for chart series.
func chartColors() []color.RGBA {
	return defaultChartPalette
}

// getSeriesColor returns the color for a series, using its FillColor if set, otherwise a palette color.
func getSeriesColor(s *ChartSeries, idx int, palette []color.RGBA) color.RGBA {
	if s.FillColor.ARGB != "" && s.FillColor.ARGB != "00000000" {
		return argbToRGBA(s.FillColor)
	}
	return palette[idx%len(palette)]
}

func (r *renderer) renderChart(s *ChartShape) {
	x := r.emuToPixelX(s.offsetX)
	y := r.emuToPixelY(s.offsetY)
	w := r.emuToPixelX(s.width)
	h := r.emuToPixelY(s.height)

	// Background
	r.fillRectFast(image.Rect(x, y, x+w, y+h), color.RGBA{R: 255, G: 255, B: 255, A: 255})
	r.drawRect(image.Rect(x, y, x+w, y+h), color.RGBA{R: 200, G: 200, B: 200, A: 255}, 1)

	// Title
	titleH := 0
	if s.title != nil && s.title.Visible && s.title.Text != "" {
		face := r.getFace(s.title.Font)
		fc := argbToRGBA(s.title.Font.Color)
		titleH = face.Metrics().Height.Ceil() + 4
		r.drawStringCentered(s.title.Text, face, fc, image.Rect(x, y, x+w, y+titleH))
	}

	// Legend height
	legendH := 0
	if s.legend != nil && s.legend.Visible {
		legendH = 20
	}

	// Plot area
	plotX := x + 40
	plotY := y + titleH + 5
	plotW := w - 50
	plotH := h - titleH - legendH - 15
	if plotW < 10 {
		plotW = 10
	}
	if plotH < 10 {
		plotH = 10
	}

	ct := s.plotArea.GetType()
	if ct == nil {
		return
	}

	switch c := ct.(type) {
	case *BarChart:
		r.renderBarChart(c, plotX, plotY, plotW, plotH)
	case *Bar3DChart:
		r.renderBarChart(&c.BarChart, plotX, plotY, plotW, plotH)
	case *LineChart:
		r.renderLineChart(c, plotX, plotY, plotW, plotH)
	case *PieChart:
		r.renderPieChart(c.Series, plotX, plotY, plotW, plotH)
	case *Pie3DChart:
		r.renderPieChart(c.Series, plotX, plotY, plotW, plotH)
	case *DoughnutChart:
		r.renderDoughnutChart(c, plotX, plotY, plotW, plotH)
	case *AreaChart:
		r.renderAreaChart(c, plotX, plotY, plotW, plotH)
	case *ScatterChart:
		r.renderScatterChart(c, plotX, plotY, plotW, plotH)
	case *RadarChart:
		r.renderRadarChart(c, plotX, plotY, plotW, plotH)
	}

	// Legend
	if s.legend != nil && s.legend.Visible {
		r.renderChartLegend(s, x, y+h-legendH, w, legendH)
	}
}

func (r *renderer) renderBarChart(c *BarChart, px, py, pw, ph int) {
	if len(c.Series) == 0 {
		return
	}
	palette := chartColors()

	// Collect all categories and find value range
	cats := c.Series[0].Categories
	minVal := 0.0
	maxVal := 0.0
	first := true
	for _, s := range c.Series {
		for _, cat := range s.Categories {
			v := s.Values[cat]
			if first {
				minVal = v
				maxVal = v
				first = false
			} else {
				if v < minVal {
					minVal = v
				}
				if v > maxVal {
					maxVal = v
				}
			}
		}
	}
	if minVal > 0 {
		minVal = 0
	}
	if maxVal <= minVal {
		maxVal = minVal + 1
	}
	valRange := maxVal - minVal

	// Draw axes
	axisColor := color.RGBA{R: 128, G: 128, B: 128, A: 255}
	r.drawLine(px, py+ph, px+pw, py+ph, axisColor)
	r.drawLine(px, py, px, py+ph, axisColor)

	nCats := len(cats)
	nSeries := len(c.Series)
	if nCats == 0 {
		return
	}
	catW := pw / nCats
	barW := catW / (nSeries + 1)
	if barW < 1 {
		barW = 1
	}

	for ci, cat := range cats {
		for si, s := range c.Series {
			v := s.Values[cat]
			barH := int(float64(ph) * (v - minVal) / valRange)
			bx := px + ci*catW + (si+1)*barW - barW/2
			by := py + ph - barH
			sc := getSeriesColor(s, si, palette)
			r.fillRectBlend(image.Rect(bx, by, bx+barW-1, py+ph), sc)
		}
	}
}

func (r *renderer) renderLineChart(c *LineChart, px, py, pw, ph int) {
	if len(c.Series) == 0 {
		return
	}
	palette := chartColors()

	// Find value range
	minVal := math.MaxFloat64
	maxVal := -math.MaxFloat64
	for _, s := range c.Series {
		for _, v := range s.Values {
			if v < minVal {
				minVal = v
			}
			if v > maxVal {
				maxVal = v
			}
		}
	}
	if minVal > 0 {
		minVal = 0
	}
	if maxVal <= minVal {
		maxVal = minVal + 1
	}
	valRange := maxVal - minVal

	// Draw axes
	axisColor := color.RGBA{R: 128, G: 128, B: 128, A: 255}
	r.drawLine(px, py+ph, px+pw, py+ph, axisColor)
	r.drawLine(px, py, px, py+ph, axisColor)

	for si, s := range c.Series {
		sc := getSeriesColor(s, si, palette)
		cats := s.Categories
		nPts := len(cats)
		if nPts == 0 {
			continue
		}
		prevX, prevY := 0, 0
		for i, cat := range cats {
			v := s.Values[cat]
			ptX := px
			if nPts > 1 {
				ptX = px + i*pw/(nPts-1)
			}
			ptY := py + ph - int(float64(ph)*(v-minVal)/valRange)
			if i > 0 {
				r.drawLineAA(prevX, prevY, ptX, ptY, sc, 2)
			}
			// Draw marker
			r.fillEllipseAA(ptX-2, ptY-2, 5, 5, sc)
			prevX, prevY = ptX, ptY
		}
	}
}

func (r *renderer) renderPieChart(series []*ChartSeries, px, py, pw, ph int) {
	if len(series) == 0 || len(series[0].Categories) == 0 {
		return
	}
	palette := chartColors()
	s := series[0]

	// Sum values
	total := 0.0
	for _, cat := range s.Categories {
		v := s.Values[cat]
		if v > 0 {
			total += v
		}
	}
	if total == 0 {
		return
	}

	cx := px + pw/2
	cy := py + ph/2
	radius := minInt(pw, ph) / 2
	if radius < 5 {
		return
	}

	startAngle := -math.Pi / 2
	for i, cat := range s.Categories {
		v := s.Values[cat]
		if v <= 0 {
			continue
		}
		sweep := 2 * math.Pi * v / total
		endAngle := startAngle + sweep
		sc := palette[i%len(palette)]
		r.fillPieSlice(cx, cy, radius, startAngle, endAngle, sc)
		startAngle = endAngle
	}
}

// fillPieSlice fills a pie slice using scanline approach with row-level x-range.
func (r *renderer) fillPieSlice(cx, cy, radius int, startAngle, endAngle float64, c color.RGBA) {
	r2 := radius * radius
	for dy := -radius; dy <= radius; dy++ {
		dy2 := dy * dy
		if dy2 > r2 {
			continue
		}
		// Compute max dx for this row
		maxDx := int(math.Sqrt(float64(r2 - dy2)))
		for dx := -maxDx; dx <= maxDx; dx++ {
			angle := math.Atan2(float64(dy), float64(dx))
			if angleInSweep(angle, startAngle, endAngle) {
				r.blendPixel(cx+dx, cy+dy, c)
			}
		}
	}
}

// angleInSweep checks if angle is within the sweep from start to end (going clockwise).
func angleInSweep(angle, start, end float64) bool {
	// Normalize to [0, 2*pi)
	norm := func(a float64) float64 {
		for a < 0 {
			a += 2 * math.Pi
		}
		for a >= 2*math.Pi {
			a -= 2 * math.Pi
		}
		return a
	}
	a := norm(angle)
	s := norm(start)
	e := norm(end)
	if s <= e {
		return a >= s && a <= e
	}
	return a >= s || a <= e
}

func (r *renderer) renderDoughnutChart(c *DoughnutChart, px, py, pw, ph int) {
	if len(c.Series) == 0 || len(c.Series[0].Categories) == 0 {
		return
	}
	palette := chartColors()
	s := c.Series[0]

	total := 0.0
	for _, cat := range s.Categories {
		v := s.Values[cat]
		if v > 0 {
			total += v
		}
	}
	if total == 0 {
		return
	}

	cx := px + pw/2
	cy := py + ph/2
	outerR := minInt(pw, ph) / 2
	innerR := outerR * c.HoleSize / 100
	if outerR < 5 {
		return
	}

	startAngle := -math.Pi / 2
	for i, cat := range s.Categories {
		v := s.Values[cat]
		if v <= 0 {
			continue
		}
		sweep := 2 * math.Pi * v / total
		endAngle := startAngle + sweep
		sc := palette[i%len(palette)]
		r.fillDoughnutSlice(cx, cy, innerR, outerR, startAngle, endAngle, sc)
		startAngle = endAngle
	}
}

// fillDoughnutSlice fills a doughnut slice.
func (r *renderer) fillDoughnutSlice(cx, cy, innerR, outerR int, startAngle, endAngle float64, c color.RGBA) {
	or2 := outerR * outerR
	ir2 := innerR * innerR
	for dy := -outerR; dy <= outerR; dy++ {
		dy2 := dy * dy
		if dy2 > or2 {
			continue
		}
		maxDx := int(math.Sqrt(float64(or2 - dy2)))
		for dx := -maxDx; dx <= maxDx; dx++ {
			d2 := dx*dx + dy2
			if d2 < ir2 {
				continue
			}
			angle := math.Atan2(float64(dy), float64(dx))
			if angleInSweep(angle, startAngle, endAngle) {
				r.blendPixel(cx+dx, cy+dy, c)
			}
		}
	}
}

func (r *renderer) renderAreaChart(c *AreaChart, px, py, pw, ph int) {
	if len(c.Series) == 0 {
		return
	}
	palette := chartColors()

	minVal := math.MaxFloat64
	maxVal := -math.MaxFloat64
	for _, s := range c.Series {
		for _, v := range s.Values {
			if v < minVal {
				minVal = v
			}
			if v > maxVal {
				maxVal = v
			}
		}
	}
	if minVal > 0 {
		minVal = 0
	}
	if maxVal <= minVal {
		maxVal = minVal + 1
	}
	valRange := maxVal - minVal

	// Axes
	axisColor := color.RGBA{R: 128, G: 128, B: 128, A: 255}
	r.drawLine(px, py+ph, px+pw, py+ph, axisColor)
	r.drawLine(px, py, px, py+ph, axisColor)

	for si, s := range c.Series {
		sc := getSeriesColor(s, si, palette)
		// Semi-transparent fill
		fillC := color.RGBA{R: sc.R, G: sc.G, B: sc.B, A: 128}
		cats := s.Categories
		nPts := len(cats)
		if nPts == 0 {
			continue
		}

		pts := make([]fpoint, 0, nPts+2)
		for i, cat := range cats {
			v := s.Values[cat]
			ptX := float64(px)
			if nPts > 1 {
				ptX = float64(px) + float64(i)*float64(pw)/float64(nPts-1)
			}
			ptY := float64(py+ph) - float64(ph)*(v-minVal)/valRange
			pts = append(pts, fpoint{ptX, ptY})
		}
		// Close polygon along baseline
		pts = append(pts, fpoint{pts[len(pts)-1].x, float64(py + ph)})
		pts = append(pts, fpoint{pts[0].x, float64(py + ph)})
		r.fillPolygon(pts, fillC)

		// Draw line on top
		for i := 0; i < nPts-1; i++ {
			r.drawLineAA(int(pts[i].x), int(pts[i].y), int(pts[i+1].x), int(pts[i+1].y), sc, 2)
		}
	}
}

func (r *renderer) renderScatterChart(c *ScatterChart, px, py, pw, ph int) {
	if len(c.Series) == 0 {
		return
	}
	palette := chartColors()

	// For scatter, categories are X values (parsed as indices), values are Y
	minVal := math.MaxFloat64
	maxVal := -math.MaxFloat64
	for _, s := range c.Series {
		for _, v := range s.Values {
			if v < minVal {
				minVal = v
			}
			if v > maxVal {
				maxVal = v
			}
		}
	}
	if minVal > 0 {
		minVal = 0
	}
	if maxVal <= minVal {
		maxVal = minVal + 1
	}
	valRange := maxVal - minVal

	axisColor := color.RGBA{R: 128, G: 128, B: 128, A: 255}
	r.drawLine(px, py+ph, px+pw, py+ph, axisColor)
	r.drawLine(px, py, px, py+ph, axisColor)

	for si, s := range c.Series {
		sc := getSeriesColor(s, si, palette)
		cats := s.Categories
		nPts := len(cats)
		if nPts == 0 {
			continue
		}
		for i, cat := range cats {
			v := s.Values[cat]
			ptX := px + (i * pw / maxInt(nPts-1, 1))
			ptY := py + ph - int(float64(ph)*(v-minVal)/valRange)
			r.fillEllipseAA(ptX-3, ptY-3, 7, 7, sc)
		}
	}
}

func (r *renderer) renderRadarChart(c *RadarChart, px, py, pw, ph int) {
	if len(c.Series) == 0 {
		return
	}
	palette := chartColors()

	// Find max value
	maxVal := 0.0
	for _, s := range c.Series {
		for _, v := range s.Values {
			if v > maxVal {
				maxVal = v
			}
		}
	}
	if maxVal == 0 {
		maxVal = 1
	}

	cx := px + pw/2
	cy := py + ph/2
	radius := minInt(pw, ph) / 2

	// Draw radar grid
	gridColor := color.RGBA{R: 200, G: 200, B: 200, A: 255}
	nCats := len(c.Series[0].Categories)
	if nCats == 0 {
		return
	}
	for i := 0; i < nCats; i++ {
		angle := 2*math.Pi*float64(i)/float64(nCats) - math.Pi/2
		ex := cx + int(float64(radius)*math.Cos(angle))
		ey := cy + int(float64(radius)*math.Sin(angle))
		r.drawLine(cx, cy, ex, ey, gridColor)
	}

	// Draw series
	for si, s := range c.Series {
		sc := getSeriesColor(s, si, palette)
		cats := s.Categories
		nPts := len(cats)
		if nPts == 0 {
			continue
		}
		pts := make([]fpoint, nPts)
		for i, cat := range cats {
			v := s.Values[cat]
			angle := 2*math.Pi*float64(i)/float64(nPts) - math.Pi/2
			dist := float64(radius) * v / maxVal
			pts[i] = fpoint{
				x: float64(cx) + dist*math.Cos(angle),
				y: float64(cy) + dist*math.Sin(angle),
			}
		}
		// Draw polygon
		for i := 0; i < nPts; i++ {
			j := (i + 1) % nPts
			r.drawLineAA(int(pts[i].x), int(pts[i].y), int(pts[j].x), int(pts[j].y), sc, 2)
		}
		// Fill with semi-transparent
		fillC := color.RGBA{R: sc.R, G: sc.G, B: sc.B, A: 64}
		r.fillPolygon(pts, fillC)
	}
}

func (r *renderer) renderChartLegend(s *ChartShape, lx, ly, lw, lh int) {
	ct := s.plotArea.GetType()
	if ct == nil {
		return
	}
	palette := chartColors()
	face := r.getFace(s.legend.Font)

	var names []string
	var colors []color.RGBA

	switch c := ct.(type) {
	case *BarChart:
		for i, ser := range c.Series {
			names = append(names, ser.Title)
			colors = append(colors, getSeriesColor(ser, i, palette))
		}
	case *Bar3DChart:
		for i, ser := range c.Series {
			names = append(names, ser.Title)
			colors = append(colors, getSeriesColor(ser, i, palette))
		}
	case *LineChart:
		for i, ser := range c.Series {
			names = append(names, ser.Title)
			colors = append(colors, getSeriesColor(ser, i, palette))
		}
	case *PieChart:
		if len(c.Series) > 0 {
			for i, cat := range c.Series[0].Categories {
				names = append(names, cat)
				colors = append(colors, palette[i%len(palette)])
			}
		}
	case *Pie3DChart:
		if len(c.Series) > 0 {
			for i, cat := range c.Series[0].Categories {
				names = append(names, cat)
				colors = append(colors, palette[i%len(palette)])
			}
		}
	case *DoughnutChart:
		if len(c.Series) > 0 {
			for i, cat := range c.Series[0].Categories {
				names = append(names, cat)
				colors = append(colors, palette[i%len(palette)])
			}
		}
	case *AreaChart:
		for i, ser := range c.Series {
			names = append(names, ser.Title)
			colors = append(colors, getSeriesColor(ser, i, palette))
		}
	case *ScatterChart:
		for i, ser := range c.Series {
			names = append(names, ser.Title)
			colors = append(colors, getSeriesColor(ser, i, palette))
		}
	case *RadarChart:
		for i, ser := range c.Series {
			names = append(names, ser.Title)
			colors = append(colors, getSeriesColor(ser, i, palette))
		}
	}

	if len(names) == 0 {
		return
	}

	// Draw legend entries horizontally centered
	entryW := lw / len(names)
	for i, name := range names {
		ex := lx + i*entryW
		// Color box
		boxSize := 10
		bx := ex + 4
		by := ly + (lh-boxSize)/2
		r.fillRectFast(image.Rect(bx, by, bx+boxSize, by+boxSize), colors[i])
		// Text
		d := &font.Drawer{
			Dst:  r.img,
			Src:  image.NewUniform(color.RGBA{A: 255}),
			Face: face,
			Dot:  fixed.P(bx+boxSize+4, ly+lh/2+4),
		}
		d.DrawString(name)
	}
}

