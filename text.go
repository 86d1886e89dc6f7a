package pptxraster

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"strings"
	"unicode"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// --- Text rendering ---

// getFace returns a font.Face for the given Font, falling back to basicfont.Face7x13.
func (r *renderer) getFace(f *Font) font.Face {
	if r.fontCache == nil {
		return basicfont.Face7x13
	}
	sizePt := float64(f.Size)
	if sizePt <= 0 {
		sizePt = 10
	}
	// Apply normAutofit font scale if set
	if r.fontScale > 0 && r.fontScale != 1.0 {
		sizePt *= r.fontScale
	}
	// Convert point size to pixels using the rendering scale.
	// 1pt = 12700 EMU; scaleX converts EMU to pixels.
	sizePixels := sizePt * 12700.0 * r.scaleX

	face := r.fontCache.GetFace(f.Name, sizePixels, f.Bold, f.Italic)
	if face != nil {
		return face
	}
	// Try East Asian font name if specified
	if f.NameEA != "" {
		face = r.fontCache.GetFace(f.NameEA, sizePixels, f.Bold, f.Italic)
		if face != nil {
			return face
		}
	}
	// CJK fallback names
	for _, fallback := range []string{
		"Microsoft YaHei", "SimSun", "SimHei", "NSimSun",
		"Yu Gothic", "Meiryo", "MS Gothic",
		"Malgun Gothic", "Gulim",
		"Noto Sans CJK SC", "Noto Sans SC", "WenQuanYi Micro Hei",
		"Arial", "Helvetica", "DejaVu Sans",
	} {
		face = r.fontCache.GetFace(fallback, sizePixels, f.Bold, f.Italic)
		if face != nil {
			return face
		}
	}
	return basicfont.Face7x13
}

// getCJKFace returns a font face suitable for CJK characters.
// It tries NameEA first, then common CJK fonts.
func (r *renderer) getCJKFace(f *Font) font.Face {
	if r.fontCache == nil {
		return nil
	}
	sizePt := float64(f.Size)
	if sizePt <= 0 {
		sizePt = 10
	}
	// Apply normAutofit font scale if set
	if r.fontScale > 0 && r.fontScale != 1.0 {
		sizePt *= r.fontScale
	}
	sizePixels := sizePt * 12700.0 * r.scaleX

	// Try East Asian font name first
	if f.NameEA != "" {
		face := r.fontCache.GetFace(f.NameEA, sizePixels, f.Bold, f.Italic)
		if face != nil {
			return face
		}
	}
	// CJK fallback
	for _, name := range []string{
		"Microsoft YaHei", "SimSun", "SimHei", "NSimSun",
		"Yu Gothic", "Meiryo", "MS Gothic",
		"Malgun Gothic", "Gulim",
		"Noto Sans CJK SC", "Noto Sans SC", "WenQuanYi Micro Hei",
	} {
		face := r.fontCache.GetFace(name, sizePixels, f.Bold, f.Italic)
		if face != nil {
			return face
		}
	}
	return nil
}

// containsCJK returns true if the string contains any CJK characters.
func containsCJK(s string) bool {
	for _, r := range s {
		if isCJK(r) {
			return true
		}
	}
	return false
}

// splitRunByCJK splits a text run into sub-runs where CJK and non-CJK
// segments use different font faces. This ensures CJK characters are
// rendered with a CJK-capable font even when the primary font is Latin-only.
func (r *renderer) splitRunByCJK(text string, f *Font, latinFace, cjkFace font.Face) []textRun {
	if cjkFace == nil || latinFace == nil {
		// Can't split, return single run
		face := latinFace
		if face == nil {
			face = cjkFace
		}
		if face == nil {
			face = basicfont.Face7x13
		}
		return []textRun{{
			text:  text,
			font:  f,
			face:  face,
			width: measureStringWithKern(face, text).Ceil(),
		}}
	}

	var runs []textRun
	var buf strings.Builder
	wasCJK := false
	first := true

	for _, ch := range text {
		nowCJK := isCJK(ch)
		if !first && nowCJK != wasCJK {
			// Flush buffer
			seg := buf.String()
			face := latinFace
			if wasCJK {
				face = cjkFace
			}
			runs = append(runs, textRun{
				text:  seg,
				font:  f,
				face:  face,
				width: measureStringWithKern(face, seg).Ceil(),
			})
			buf.Reset()
		}
		buf.WriteRune(ch)
		wasCJK = nowCJK
		first = false
	}
	if buf.Len() > 0 {
		seg := buf.String()
		face := latinFace
		if wasCJK {
			face = cjkFace
		}
		runs = append(runs, textRun{
			text:  seg,
			font:  f,
			face:  face,
			width: measureStringWithKern(face, seg).Ceil(),
		})
	}
	return runs
}

// textRun holds a measured run of text with its formatting.
type textRun struct {
	text  string
	font  *Font
	face  font.Face
	width int
}

// textLine holds a line of text runs with total metrics.
type textLine struct {
	runs       []textRun
	width      int
	ascent     int
	descent    int
	lineHeight int
}

// buildTextLine measures a slice of textRuns and returns a textLine.
func (r *renderer) buildTextLine(runs []textRun) textLine {
	var tl textLine
	tl.runs = runs
	maxHeight := 0 // track font's recommended line-to-line height (includes line gap)
	for _, run := range runs {
		tl.width += run.width
		if run.face == nil {
			continue
		}
		metrics := run.face.Metrics()
		asc := metrics.Ascent.Ceil()
		desc := metrics.Descent.Ceil()
		if asc > tl.ascent {
			tl.ascent = asc
		}
		if desc > tl.descent {
			tl.descent = desc
		}
		// metrics.Height is the recommended line-to-line spacing which includes
		// the font's internal line gap (leading). PowerPoint's default single
		// spacing uses this full height, not just ascent+descent.
		if h := metrics.Height.Ceil(); h > maxHeight {
			maxHeight = h
		}
	}
	// Use the font's recommended height (ascent + descent + line gap) so that
	// default single spacing matches PowerPoint's behaviour. When the font
	// reports no line gap, fall back to ascent + descent.
	tl.lineHeight = maxHeight
	if tl.lineHeight < tl.ascent+tl.descent {
		tl.lineHeight = tl.ascent + tl.descent
	}
	if tl.lineHeight < 1 {
		tl.lineHeight = 14
	}
	return tl
}

// measureParagraphsHeight estimates the total pixel height needed to render
// the given paragraphs within the specified width, replicating the same line
// building and spacing logic used by drawParagraphs.
func (r *renderer) measureParagraphsHeight(paragraphs []*Paragraph, w, h int, anchor TextAnchorType, wordWrap bool) int {
	if len(paragraphs) == 0 {
		return 0
	}
	type lineInfo struct {
		lineHeight  int
		spaceBefore int
		spaceAfter  int
		lineSpacing int
	}
	var allLines []lineInfo

	for _, para := range paragraphs {
		marginLeft := 0
		marginRight := 0
		indent := 0
		if para.alignment != nil {
			marginLeft = r.emuToPixelX(para.alignment.MarginLeft)
			marginRight = r.emuToPixelX(para.alignment.MarginRight)
			indent = r.emuToPixelX(para.alignment.Indent)
		}
		var paraRuns []textRun
		if para.bullet != nil && para.bullet.Type != BulletTypeNone {
			bRun := r.buildBulletRun(para.bullet, para)
			if bRun.text != "" {
				paraRuns = append(paraRuns, bRun)
			}
		}
		for _, elem := range para.elements {
			switch e := elem.(type) {
			case *TextRun:
				if e.text == "" {
					continue
				}
				f := e.font
				if f == nil {
					f = NewFont()
				}
				if containsCJK(e.text) && r.fontCache != nil {
					sizePt := float64(f.Size)
					if sizePt <= 0 {
						sizePt = 10
					}
					if r.fontScale > 0 && r.fontScale != 1.0 {
						sizePt *= r.fontScale
					}
					scaledPt := sizePt * 12700.0 * r.scaleX
					latinFace := r.fontCache.GetFace(f.Name, scaledPt, f.Bold, f.Italic)
					if latinFace == nil {
						latinFace = r.getFace(f)
					}
					cjkFace := r.getCJKFace(f)
					subRuns := r.splitRunByCJK(e.text, f, latinFace, cjkFace)
					paraRuns = append(paraRuns, subRuns...)
				} else {
					face := r.getFace(f)
					paraRuns = append(paraRuns, textRun{
						text:  e.text,
						font:  f,
						face:  face,
						width: measureStringWithKern(face, e.text).Ceil(),
					})
				}
			case *BreakElement:
				paraRuns = append(paraRuns, textRun{text: "\n"})
			}
		}
		availW := w - marginLeft - marginRight - indent
		if availW < 10 {
			availW = w
		}
		if !wordWrap {
			availW = 999999
		}
		lines := r.wrapRunLine(paraRuns, availW)
		if len(lines) == 0 {
			lines = []textLine{{lineHeight: 14}}
		}
		for i, line := range lines {
			li := lineInfo{
				lineHeight:  line.lineHeight,
				lineSpacing: para.lineSpacing,
			}
			if i == 0 {
				li.spaceBefore = r.hundredthPtToPixelY(para.spaceBefore)
			}
			if i == len(lines)-1 {
				li.spaceAfter = r.hundredthPtToPixelY(para.spaceAfter)
			}
			allLines = append(allLines, li)
		}
	}

	totalH := 0
	for i, li := range allLines {
		if i > 0 {
			totalH += li.spaceBefore
		}
		lh := li.lineHeight
		if li.lineSpacing < 0 {
			lh = int(float64(lh) * float64(-li.lineSpacing) / 100000.0)
		} else if li.lineSpacing > 0 {
			lh = r.hundredthPtToPixelY(li.lineSpacing)
		}
		totalH += lh
		totalH += li.spaceAfter
	}
	return totalH
}

// drawParagraphs renders paragraphs within the given bounding box.
func (r *renderer) drawParagraphs(paragraphs []*Paragraph, x, y, w, h int, anchor TextAnchorType, wordWrap bool) {
	if len(paragraphs) == 0 {
		return
	}

	// Build all lines from all paragraphs, tracking per-paragraph spacing
	type lineInfo struct {
		line        textLine
		spaceBefore int
		spaceAfter  int
		lineSpacing int // 0 means default (single)
		hAlign      HorizontalAlignment
		paraIdx     int  // index into paragraphs slice
		isFirst     bool // first line of paragraph
		isLast      bool // last line of paragraph
	}
	var allLines []lineInfo

	for pi, para := range paragraphs {
		align := HorizontalLeft
		marginLeft := 0
		marginRight := 0
		indent := 0
		if para.alignment != nil {
			align = para.alignment.Horizontal
			marginLeft = r.emuToPixelX(para.alignment.MarginLeft)
			marginRight = r.emuToPixelX(para.alignment.MarginRight)
			indent = r.emuToPixelX(para.alignment.Indent)
		}

		// Build runs for this paragraph
		var paraRuns []textRun

		// Bullet run
		if para.bullet != nil && para.bullet.Type != BulletTypeNone {
			bRun := r.buildBulletRun(para.bullet, para)
			if bRun.text != "" {
				paraRuns = append(paraRuns, bRun)
			}
		}

		for _, elem := range para.elements {
			switch e := elem.(type) {
			case *TextRun:
				if e.text == "" {
					continue
				}
				f := e.font
				if f == nil {
					f = NewFont()
				}
				// If text contains CJK characters, split into CJK/Latin segments
				// so each segment uses an appropriate font face
				if containsCJK(e.text) && r.fontCache != nil {
					sizePt := float64(f.Size)
					if sizePt <= 0 {
						sizePt = 10
					}
					if r.fontScale > 0 && r.fontScale != 1.0 {
						sizePt *= r.fontScale
					}
					scaledPt := sizePt * 12700.0 * r.scaleX
					latinFace := r.fontCache.GetFace(f.Name, scaledPt, f.Bold, f.Italic)
					if latinFace == nil {
						latinFace = r.getFace(f)
					}
					cjkFace := r.getCJKFace(f)
					subRuns := r.splitRunByCJK(e.text, f, latinFace, cjkFace)
					paraRuns = append(paraRuns, subRuns...)
				} else {
					face := r.getFace(f)
					paraRuns = append(paraRuns, textRun{
						text:  e.text,
						font:  f,
						face:  face,
						width: measureStringWithKern(face, e.text).Ceil(),
					})
				}
			case *BreakElement:
				// Force a new line
				paraRuns = append(paraRuns, textRun{text: "\n"})
			}
		}

		// Wrap runs into lines
		availW := w - marginLeft - marginRight - indent
		if availW < 10 {
			availW = w
		}
		if !wordWrap {
			availW = 999999
		}
		lines := r.wrapRunLine(paraRuns, availW)
		if len(lines) == 0 {
			// Empty paragraph still takes space
			lines = []textLine{{lineHeight: 14}}
		}

		for i, line := range lines {
			li := lineInfo{
				line:        line,
				lineSpacing: para.lineSpacing,
				hAlign:      align,
				paraIdx:     pi,
				isFirst:     i == 0,
				isLast:      i == len(lines)-1,
			}
			if i == 0 {
				// spaceBefore is in hundredths of a point from spcPts
				li.spaceBefore = r.hundredthPtToPixelY(para.spaceBefore)
			}
			if i == len(lines)-1 {
				li.spaceAfter = r.hundredthPtToPixelY(para.spaceAfter)
			}
			allLines = append(allLines, li)
		}
	}

	// Calculate total height
	totalH := 0
	for i, li := range allLines {
		if i > 0 {
			totalH += li.spaceBefore
		}
		lh := li.line.lineHeight
		if li.lineSpacing < 0 {
			// spcPct: negative value, percentage * 1000 (e.g. -150000 = 150%)
			lh = int(float64(lh) * float64(-li.lineSpacing) / 100000.0)
		} else if li.lineSpacing > 0 {
			// spcPts: hundredths of a point (e.g. 1200 = 12pt)
			lh = r.hundredthPtToPixelY(li.lineSpacing)
		}
		totalH += lh
		totalH += li.spaceAfter
	}

	// Vertical anchor offset
	startY := y
	switch anchor {
	case TextAnchorMiddle:
		startY = y + (h-totalH)/2
		// When text overflows the available area, clamp to top so that
		// text only overflows at the bottom (matching PowerPoint behaviour).
		if startY < y {
			startY = y
		}
	case TextAnchorBottom:
		startY = y + h - totalH
		if startY < y {
			startY = y
		}
	}

	curY := startY
	for i, li := range allLines {
		if i > 0 {
			curY += li.spaceBefore
		}

		lh := li.line.lineHeight
		if li.lineSpacing < 0 {
			lh = int(float64(lh) * float64(-li.lineSpacing) / 100000.0)
		} else if li.lineSpacing > 0 {
			lh = r.hundredthPtToPixelY(li.lineSpacing)
		}

		// Horizontal alignment
		lineX := x
		para := paragraphs[li.paraIdx]
		if para.alignment != nil {
			lineX += r.emuToPixelX(para.alignment.MarginLeft)
			if li.isFirst {
				lineX += r.emuToPixelX(para.alignment.Indent)
			}
		}

		switch li.hAlign {
		case HorizontalCenter:
			lineX = x + (w-li.line.width)/2
		case HorizontalRight:
			lineX = x + w - li.line.width
			if para.alignment != nil {
				lineX -= r.emuToPixelX(para.alignment.MarginRight)
			}
		}

		baseline := curY + li.line.ascent

		// Draw each run
		drawX := lineX
		for _, run := range li.line.runs {
			if run.text == "\n" || run.text == "" {
				continue
			}
			if run.face == nil {
				continue
			}
			fc := color.RGBA{A: 255}
			if run.font != nil {
				fc = argbToRGBA(run.font.Color)
			}

			runBaseline := baseline
			if run.font != nil {
				if run.font.Superscript {
					runBaseline -= li.line.ascent / 3
				} else if run.font.Subscript {
					runBaseline += li.line.descent / 2
				}
			}

			d := &font.Drawer{
				Dst:  r.img,
				Src:  image.NewUniform(fc),
				Face: run.face,
				Dot:  fixed.P(drawX, runBaseline),
			}
			d.DrawString(run.text)

			// Synthetic bold: if bold was requested but the font face is the
			// regular weight (no bold variant found), re-draw with a 1px
			// horizontal offset to embolden the glyphs.
			if run.font != nil && run.font.Bold {
				d2 := &font.Drawer{
					Dst:  r.img,
					Src:  image.NewUniform(fc),
					Face: run.face,
					Dot:  fixed.P(drawX+1, runBaseline),
				}
				d2.DrawString(run.text)
			}

			// Underline
			if run.font != nil && run.font.Underline != UnderlineNone {
				uy := runBaseline + 2
				r.drawUnderline(drawX, drawX+run.width, uy, fc, run.font.Underline)
			}

			// Strikethrough
			if run.font != nil && run.font.Strikethrough {
				sy := runBaseline - li.line.ascent/3
				r.drawLine(drawX, sy, drawX+run.width, sy, fc)
			}

			drawX += run.width
		}

		curY += lh
		curY += li.spaceAfter
	}
}

// drawUnderline draws an underline of the given style.
func (r *renderer) drawUnderline(x1, x2, y int, c color.RGBA, style UnderlineType) {
	switch style {
	case UnderlineSingle:
		r.drawLine(x1, y, x2, y, c)
	case UnderlineDouble:
		r.drawLine(x1, y-1, x2, y-1, c)
		r.drawLine(x1, y+1, x2, y+1, c)
	case UnderlineHeavy:
		r.drawLine(x1, y-1, x2, y-1, c)
		r.drawLine(x1, y, x2, y, c)
		r.drawLine(x1, y+1, x2, y+1, c)
	case UnderlineDash:
		r.drawDashedHLine(x1, x2, y, c, 6, 3)
	case UnderlineWavy:
		for px := x1; px < x2; px++ {
			wy := y + int(math.Sin(float64(px-x1)*0.5)*2)
			r.blendPixel(px, wy, c)
		}
	default:
		r.drawLine(x1, y, x2, y, c)
	}
}

// buildBulletRun creates a textRun for a bullet prefix.
func (r *renderer) buildBulletRun(b *Bullet, para *Paragraph) textRun {
	if b == nil || b.Type == BulletTypeNone {
		return textRun{}
	}

	// Determine bullet font
	bulletFont := NewFont()
	bulletFont.Size = 10
	// Try to get size from first text run
	for _, elem := range para.elements {
		if tr, ok := elem.(*TextRun); ok && tr.font != nil {
			bulletFont.Size = tr.font.Size
			bulletFont.Color = tr.font.Color
			break
		}
	}
	if b.Color != nil {
		bulletFont.Color = *b.Color
	}
	if b.Font != "" {
		bulletFont.Name = b.Font
	}
	if b.Size > 0 && b.Size != 100 {
		bulletFont.Size = bulletFont.Size * b.Size / 100
		if bulletFont.Size < 1 {
			bulletFont.Size = 1
		}
	}

	var text string
	switch b.Type {
	case BulletTypeChar:
		text = b.Style + " "
	case BulletTypeNumeric, BulletTypeAutoNum:
		num := b.StartAt
		if num < 1 {
			num = 1
		}
		text = formatBulletNumber(num, b.NumFormat) + " "
	}

	// Handle symbol font characters (Wingdings, Symbol, etc.).
	// These fonts use a special encoding where characters map to the
	// Unicode Private Use Area (U+F000 + byte value) in TrueType.
	// First try rendering with the actual symbol font via PUA mapping;
	// if the font is not available, fall back to Unicode equivalents.
	if b.Type == BulletTypeChar && isSymbolFont(bulletFont.Name) {
		// Try PUA mapping with the actual symbol font first
		puaText := symbolToPUA(b.Style)
		puaFont := *bulletFont // copy
		face := r.getFace(&puaFont)
		if face != nil && r.fontCache != nil && r.fontCache.GetFace(bulletFont.Name, 12, false, false) != nil {
			// Use only the symbol glyph without trailing space — the space
			// character in symbol fonts often renders as .notdef (black box).
			// A gap is added via width padding below instead.
			text = puaText
		} else {
			// Font not available — fall back to Unicode equivalent
			mapped := mapSymbolChar(bulletFont.Name, b.Style)
			text = mapped + " "
			// Use the paragraph's text font instead of the symbol font
			bulletFont.Name = ""
			for _, elem := range para.elements {
				if tr, ok := elem.(*TextRun); ok && tr.font != nil {
					bulletFont.Name = tr.font.Name
					bulletFont.NameEA = tr.font.NameEA
					break
				}
			}
			if bulletFont.Name == "" {
				bulletFont.Name = "Calibri"
			}
		}
	}

	face := r.getFace(bulletFont)
	w := font.MeasureString(face, text).Ceil()
	// For symbol fonts rendered via PUA (no trailing space in text),
	// add a small gap so the bullet doesn't touch the text.
	if b.Type == BulletTypeChar && isSymbolFont(bulletFont.Name) {
		gap := int(bulletFont.Size / 3)
		if gap < 2 {
			gap = 2
		}
		w += gap
	}
	return textRun{
		text:  text,
		font:  bulletFont,
		face:  face,
		width: w,
	}
}

// isSymbolFont returns true if the font name is a symbol/dingbats font
// whose characters need mapping to Unicode equivalents.
func isSymbolFont(name string) bool {
	n := strings.ToLower(name)
	return n == "wingdings" || n == "wingdings 2" || n == "wingdings 3" ||
		n == "symbol" || n == "webdings"
}

// symbolToPUA maps a symbol font character to the Unicode Private Use Area.
// Symbol fonts like Wingdings store glyphs at U+F000 + original byte value
// in their TrueType cmap table.
func symbolToPUA(ch string) string {
	if len(ch) == 0 {
		return ch
	}
	r := []rune(ch)[0]
	if r < 0x100 {
		return string(rune(0xF000 + r))
	}
	return ch
}

// mapSymbolChar maps a character from a symbol font to a Unicode equivalent.
// Symbol fonts like Wingdings encode characters at code points that don't
// correspond to their visual appearance in Unicode.
func mapSymbolChar(fontName, ch string) string {
	if len(ch) == 0 {
		return "•"
	}
	r := []rune(ch)[0]
	n := strings.ToLower(fontName)

	if n == "wingdings" {
		// Wingdings character map (code point → Unicode equivalent)
		switch r {
		case 0xD8: // bowtie (two triangles forming a butterfly/wing shape)
			return "\u22C8"
		case 0xA8: // filled circle
			return "●"
		case 0x6C: // bullet
			return "●"
		case 0x6E: // filled square
			return "■"
		case 0x71: // open circle
			return "○"
		case 0x75, 0xA7: // diamond
			return "◆"
		case 0x76: // open diamond
			return "◇"
		case 0x77: // filled triangle right
			return "▶"
		case 0xFC: // check mark
			return "✓"
		case 0xFB: // cross mark
			return "✗"
		case 0xE0: // right arrow
			return "→"
		case 0xDF: // left arrow
			return "←"
		case 0xE1: // up arrow
			return "↑"
		case 0xE2: // down arrow
			return "↓"
		case 0xF0: // right pointing triangle
			return "►"
		case 0x9F: // star
			return "★"
		case 0xAB: // dash
			return "–"
		default:
			return "•" // fallback to standard bullet
		}
	}

	if n == "wingdings 2" {
		return "•"
	}

	if n == "wingdings 3" {
		switch r {
		case 0x75: // triangle right
			return "▶"
		case 0x76: // triangle left
			return "◀"
		default:
			return "•"
		}
	}

	if n == "symbol" {
		switch r {
		case 0xB7: // middle dot
			return "·"
		case 0xD8: // empty set
			return "∅"
		default:
			return string(r) // Symbol font mostly maps to Unicode directly
		}
	}

	return "•" // fallback
}

// formatBulletNumber formats a number according to the bullet format.
func formatBulletNumber(num int, format string) string {
	switch format {
	case NumFormatRomanUcPeriod:
		return toRoman(num) + "."
	case NumFormatRomanLcPeriod:
		return strings.ToLower(toRoman(num)) + "."
	case NumFormatAlphaUcPeriod:
		if num >= 1 && num <= 26 {
			return string(rune('A'+num-1)) + "."
		}
		return fmt.Sprintf("%d.", num)
	case NumFormatAlphaLcPeriod:
		if num >= 1 && num <= 26 {
			return string(rune('a'+num-1)) + "."
		}
		return fmt.Sprintf("%d.", num)
	case NumFormatAlphaLcParen:
		if num >= 1 && num <= 26 {
			return string(rune('a'+num-1)) + ")"
		}
		return fmt.Sprintf("%d)", num)
	case NumFormatArabicParen:
		return fmt.Sprintf("%d)", num)
	default: // arabicPeriod
		return fmt.Sprintf("%d.", num)
	}
}

// toRoman converts an integer to a Roman numeral string.
func toRoman(num int) string {
	if num <= 0 || num > 3999 {
		return fmt.Sprintf("%d", num)
	}
	vals := []int{1000, 900, 500, 400, 100, 90, 50, 40, 10, 9, 5, 4, 1}
	syms := []string{"M", "CM", "D", "CD", "C", "XC", "L", "XL", "X", "IX", "V", "IV", "I"}
	var buf strings.Builder
	for i, v := range vals {
		for num >= v {
			buf.WriteString(syms[i])
			num -= v
		}
	}
	return buf.String()
}

// isCJK reports whether the rune is a CJK character that can be broken
// at any position (no spaces between characters).
func isCJK(r rune) bool {
	return unicode.Is(unicode.Han, r) ||
		unicode.Is(unicode.Hangul, r) ||
		unicode.Is(unicode.Hiragana, r) ||
		unicode.Is(unicode.Katakana, r) ||
		(r >= 0x3000 && r <= 0x303F) || // CJK Symbols and Punctuation
		(r >= 0xFF00 && r <= 0xFFEF) // Fullwidth Forms
}
// isCJKClosingPunct returns true for CJK closing punctuation that must not
// start a new line (禁则処理 — line-start prohibited characters).
func isCJKClosingPunct(r rune) bool {
	switch r {
	case '）', '】', '》', '」', '』', '〉', '〕', '｝', '］',
		'。', '，', '、', '；', '：', '！', '？', '…',
		')', ']', '}', '>', '.', ',', ';', ':', '!', '?':
		return true
	}
	return false
}

// isCJKOpeningPunct returns true for CJK opening punctuation that must not
// end a line (line-end prohibited characters).
func isCJKOpeningPunct(r rune) bool {
	switch r {
	case '（', '【', '《', '「', '『', '〈', '〔', '｛', '［',
		'(', '[', '{', '<':
		return true
	}
	return false
}

// isClosingPunctRun returns true if the run text consists entirely of
// closing punctuation characters that should not start a new line.
func isClosingPunctRun(text string) bool {
	if text == "" {
		return false
	}
	for _, r := range text {
		if !isCJKClosingPunct(r) {
			return false
		}
	}
	return true
}

// splitCJKAware splits text into wrappable segments.
// CJK characters become individual segments; Latin words stay grouped.
// Spaces are preserved as separate segments to avoid inflating word widths.
func splitCJKAware(text string) []string {
	if text == "" {
		return nil
	}
	// Fast path: pure ASCII text (no CJK possible)
	ascii := true
	for i := 0; i < len(text); i++ {
		if text[i] >= 0x80 {
			ascii = false
			break
		}
	}
	if ascii {
		return splitASCIIWords(text)
	}
	// Slow path: handle CJK characters
	runes := []rune(text)
	segments := make([]string, 0, len(runes)/2+1)
	start := 0
	for i, r := range runes {
		if isCJK(r) {
			if i > start {
				segments = append(segments, string(runes[start:i]))
			}
			segments = append(segments, string(r))
			start = i + 1
		} else if r == ' ' || r == '\t' {
			if i > start {
				segments = append(segments, string(runes[start:i]))
			}
			segments = append(segments, string(r))
			start = i + 1
		}
	}
	if start < len(runes) {
		segments = append(segments, string(runes[start:]))
	}
	// Apply kinsoku (禁則処理): merge closing punctuation into the preceding
	// segment so it cannot start a new line.
	if len(segments) > 1 {
		merged := make([]string, 0, len(segments))
		for i, seg := range segments {
			rs := []rune(seg)
			if i > 0 && len(rs) == 1 && isCJKClosingPunct(rs[0]) && len(merged) > 0 {
				merged[len(merged)-1] += seg
			} else {
				merged = append(merged, seg)
			}
		}
		segments = merged
	}
	return segments
}

// splitASCIIWords splits ASCII text into words and spaces as separate segments.
func splitASCIIWords(text string) []string {
	segments := make([]string, 0, 8)
	start := 0
	for i := 0; i < len(text); i++ {
		if text[i] == ' ' || text[i] == '\t' {
			if i > start {
				segments = append(segments, text[start:i])
			}
			segments = append(segments, text[i:i+1])
			start = i + 1
		}
	}
	if start < len(text) {
		segments = append(segments, text[start:])
	}
	return segments
}

// measureStringWithKern measures the advance width of a string using the face's
// GlyphAdvance and Kern methods. Unlike font.MeasureString, this accounts for
// kerning pairs, producing measurements closer to what PowerPoint's DirectWrite
// renderer computes.
func measureStringWithKern(face font.Face, s string) fixed.Int26_6 {
	var advance fixed.Int26_6
	prevR := rune(-1)
	for _, r := range s {
		if prevR >= 0 {
			advance += face.Kern(prevR, r)
		}
		a, ok := face.GlyphAdvance(r)
		if ok {
			advance += a
		}
		prevR = r
	}
	return advance
}

// wrapRunLine wraps text runs into multiple lines that fit within maxWidth.
func (r *renderer) wrapRunLine(runs []textRun, maxWidth int) []textLine {
	if len(runs) == 0 {
		return nil
	}
	if maxWidth <= 0 {
		maxWidth = 1
	}

	maxW26_6 := fixed.I(maxWidth)
	// Add a small tolerance (~1%) to account for differences between Go's
	// text measurement and PowerPoint's DirectWrite renderer. Go's opentype
	// package doesn't apply the same GPOS/GSUB shaping as DirectWrite,
	// causing Latin text segments to measure slightly wider.
	maxW26_6 += maxW26_6 / 100

	var lines []textLine
	var currentRuns []textRun
	var currentWidth fixed.Int26_6 // fixed-point accumulation avoids Ceil rounding buildup

	for _, run := range runs {
		if run.text == "\n" {
			lines = append(lines, r.buildTextLine(currentRuns))
			currentRuns = nil
			currentWidth = 0
			continue
		}
		if run.face == nil {
			continue
		}

		runW := measureStringWithKern(run.face, run.text)

		// If the run fits, add it whole
		if currentWidth+runW <= maxW26_6 {
			currentRuns = append(currentRuns, run)
			currentWidth += runW
			continue
		}

		// Closing punctuation (e.g. ）】》) must not start a new line
		// (kinsoku / 禁則処理). Keep it on the current line even if it
		// slightly overflows.
		if isClosingPunctRun(run.text) {
			currentRuns = append(currentRuns, run)
			currentWidth += runW
			continue
		}

		// Run doesn't fit — try to split into wrappable segments (CJK-aware)
		segments := splitCJKAware(run.text)

		if len(segments) <= 1 {
			// Single segment doesn't fit, force it on new line
			if len(currentRuns) > 0 {
				lines = append(lines, r.buildTextLine(currentRuns))
				currentRuns = nil
				currentWidth = 0
			}
			currentRuns = append(currentRuns, run)
			currentWidth = runW
			continue
		}

		// Split by segments
		var partial strings.Builder
		for _, seg := range segments {
			test := partial.String() + seg
			tw := measureStringWithKern(run.face, test)
			if currentWidth+tw > maxW26_6 && (len(currentRuns) > 0 || partial.Len() > 0) {
				if partial.Len() > 0 {
					pText := partial.String()
					currentRuns = append(currentRuns, textRun{
						text:  pText,
						font:  run.font,
						face:  run.face,
						width: measureStringWithKern(run.face, pText).Ceil(),
					})
				}
				lines = append(lines, r.buildTextLine(currentRuns))
				currentRuns = nil
				currentWidth = 0
				partial.Reset()
				partial.WriteString(seg)
			} else {
				partial.WriteString(seg)
			}
		}
		if partial.Len() > 0 {
			pText := partial.String()
			pw := measureStringWithKern(run.face, pText)
			wr := textRun{
				text:  pText,
				font:  run.font,
				face:  run.face,
				width: pw.Ceil(),
			}
			currentRuns = append(currentRuns, wr)
			currentWidth += pw
		}
	}

	if len(currentRuns) > 0 {
		lines = append(lines, r.buildTextLine(currentRuns))
	}

	return lines
}

// drawStringCentered draws a string centered in the given rectangle.
func (r *renderer) drawStringCentered(text string, face font.Face, c color.RGBA, rect image.Rectangle) {
	if text == "" || face == nil {
		return
	}
	tw := font.MeasureString(face, text).Ceil()
	metrics := face.Metrics()
	th := (metrics.Ascent + metrics.Descent).Ceil()
	cx := rect.Min.X + (rect.Dx()-tw)/2
	cy := rect.Min.Y + (rect.Dy()-th)/2 + metrics.Ascent.Ceil()
	d := &font.Drawer{
		Dst:  r.img,
		Src:  image.NewUniform(c),
		Face: face,
		Dot:  fixed.P(cx, cy),
	}
	d.DrawString(text)
}

