package pptxraster

import (
	"bytes"
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/bmp"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"golang.org/x/text/encoding/simplifiedchinese"
)

// --- Raster image decoding and scaling ---

// --- Image scaling ---

// scaleImageBilinear scales an image to the target width and height using bilinear interpolation.
func scaleImageBilinear(src image.Image, dstW, dstH int) *image.RGBA {
	if dstW <= 0 || dstH <= 0 {
		return image.NewRGBA(image.Rect(0, 0, 1, 1))
	}
	bounds := src.Bounds()
	srcW := bounds.Dx()
	srcH := bounds.Dy()
	if srcW <= 0 || srcH <= 0 {
		return image.NewRGBA(image.Rect(0, 0, dstW, dstH))
	}

	dst := image.NewRGBA(image.Rect(0, 0, dstW, dstH))

	xRatio := float64(srcW) / float64(dstW)
	yRatio := float64(srcH) / float64(dstH)

	// Fast path for *image.RGBA source
	if srcRGBA, ok := src.(*image.RGBA); ok {
		for dy := 0; dy < dstH; dy++ {
			sy := float64(dy) * yRatio
			sy0 := int(sy)
			sy1 := sy0 + 1
			if sy1 >= srcH {
				sy1 = srcH - 1
			}
			fy := sy - float64(sy0)
			ify := 1 - fy
			srcOff0 := (sy0+bounds.Min.Y-srcRGBA.Rect.Min.Y)*srcRGBA.Stride + (bounds.Min.X-srcRGBA.Rect.Min.X)*4
			srcOff1 := (sy1+bounds.Min.Y-srcRGBA.Rect.Min.Y)*srcRGBA.Stride + (bounds.Min.X-srcRGBA.Rect.Min.X)*4
			dstOff := dy * dst.Stride

			for dx := 0; dx < dstW; dx++ {
				sx := float64(dx) * xRatio
				sx0 := int(sx)
				sx1 := sx0 + 1
				if sx1 >= srcW {
					sx1 = srcW - 1
				}
				fx := sx - float64(sx0)
				ifx := 1 - fx

				o00 := srcOff0 + sx0*4
				o10 := srcOff0 + sx1*4
				o01 := srcOff1 + sx0*4
				o11 := srcOff1 + sx1*4
				sp := srcRGBA.Pix

				for ch := 0; ch < 4; ch++ {
					top := float64(sp[o00+ch])*ifx + float64(sp[o10+ch])*fx
					bot := float64(sp[o01+ch])*ifx + float64(sp[o11+ch])*fx
					dst.Pix[dstOff+ch] = uint8(top*ify + bot*fy)
				}
				dstOff += 4
			}
		}
		return dst
	}

	// Generic path for other image types
	for dy := 0; dy < dstH; dy++ {
		sy := float64(dy) * yRatio
		sy0 := int(sy)
		sy1 := sy0 + 1
		if sy1 >= srcH {
			sy1 = srcH - 1
		}
		fy := sy - float64(sy0)

		for dx := 0; dx < dstW; dx++ {
			sx := float64(dx) * xRatio
			sx0 := int(sx)
			sx1 := sx0 + 1
			if sx1 >= srcW {
				sx1 = srcW - 1
			}
			fx := sx - float64(sx0)

			r00, g00, b00, a00 := src.At(bounds.Min.X+sx0, bounds.Min.Y+sy0).RGBA()
			r10, g10, b10, a10 := src.At(bounds.Min.X+sx1, bounds.Min.Y+sy0).RGBA()
			r01, g01, b01, a01 := src.At(bounds.Min.X+sx0, bounds.Min.Y+sy1).RGBA()
			r11, g11, b11, a11 := src.At(bounds.Min.X+sx1, bounds.Min.Y+sy1).RGBA()

			lerp := func(v00, v10, v01, v11 uint32) uint8 {
				top := float64(v00)*(1-fx) + float64(v10)*fx
				bot := float64(v01)*(1-fx) + float64(v11)*fx
				v := (top*(1-fy) + bot*fy) / 257.0
				if v > 255 {
					v = 255
				}
				return uint8(v + 0.5)
			}

			off := dy*dst.Stride + dx*4
			dst.Pix[off+0] = lerp(r00, r10, r01, r11)
			dst.Pix[off+1] = lerp(g00, g10, g01, g11)
			dst.Pix[off+2] = lerp(b00, b10, b01, b11)
			dst.Pix[off+3] = lerp(a00, a10, a01, a11)
		}
	}
	return dst
}

// scaleImage scales an image using bilinear interpolation.
func scaleImage(src image.Image, dstW, dstH int) *image.RGBA {
	return scaleImageBilinear(src, dstW, dstH)
}

// --- Utility functions ---

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// decodeMetafileBitmap attempts to extract a renderable image from WMF/EMF
// metafile data. It first scans for embedded PNG, JPEG or BMP data, then falls
// back to parsing WMF DIB (Device Independent Bitmap) records or EMF records.
func decodeMetafileBitmap(data []byte, fc *FontCache) image.Image {
	if len(data) < 10 {
		return nil
	}

	// Try to find embedded PNG (89 50 4E 47) or JPEG (FF D8 FF) inside the data
	if img := findEmbeddedImage(data); img != nil {
		return img
	}

	// WMF: magic 01 00 09 00
	if len(data) > 4 && data[0] == 0x01 && data[1] == 0x00 && data[2] == 0x09 && data[3] == 0x00 {
		return decodeWMFDIB(data, fc)
	}

	// Placeable WMF: magic D7 CD C6 9A (22-byte header before standard WMF)
	if len(data) > 26 && data[0] == 0xD7 && data[1] == 0xCD && data[2] == 0xC6 && data[3] == 0x9A {
		return decodeWMFDIB(data[22:], fc)
	}

	// EMF: first DWORD is record type 1 (EMR_HEADER), magic 01 00 00 00
	if len(data) > 8 && data[0] == 0x01 && data[1] == 0x00 && data[2] == 0x00 && data[3] == 0x00 {
		return decodeEMFBitmap(data)
	}

	return nil
}

// findEmbeddedImage scans binary data for embedded PNG, JPEG or BMP signatures
// and attempts to decode the first one found.
func findEmbeddedImage(data []byte) image.Image {
	for i := 0; i < len(data)-8; i++ {
		// PNG signature: 89 50 4E 47 0D 0A 1A 0A
		if data[i] == 0x89 && data[i+1] == 0x50 && data[i+2] == 0x4E && data[i+3] == 0x47 &&
			data[i+4] == 0x0D && data[i+5] == 0x0A && data[i+6] == 0x1A && data[i+7] == 0x0A {
			if img, _, err := image.Decode(bytes.NewReader(data[i:])); err == nil {
				return img
			}
		}
		// JPEG signature: FF D8 FF
		if data[i] == 0xFF && data[i+1] == 0xD8 && data[i+2] == 0xFF {
			if img, _, err := image.Decode(bytes.NewReader(data[i:])); err == nil {
				return img
			}
		}
		// BMP signature: "BM". Some WMF/EMF embeds and a few malformed
		// p:blip parts carry a standalone BMP rather than a DIB record;
		// golang.org/x/image/bmp is the only decoder in the pack for it.
		if data[i] == 'B' && data[i+1] == 'M' {
			if img, err := bmp.Decode(bytes.NewReader(data[i:])); err == nil {
				return img
			}
		}
	}
	return nil
}

// decodeWMFDIB extracts a DIB bitmap from a WMF file by scanning for
// StretchDIBits (0x0B41) or SetDIBitsToDevice (0x0D33) records that
// contain a BITMAPINFOHEADER.
func decodeWMFDIB(data []byte, fc *FontCache) image.Image {
	if len(data) < 18 {
		return nil
	}

	// Parse WMF header to get window extent
	winW := 102 // default
	winH := 84

	// Collect all drawing operations from WMF records
	type dibRecord struct {
		destX, destY, destW, destH int
		rasterOp                   uint32
		img                        image.Image
		bitCount                   uint16
	}
	type textRecord struct {
		x, y    int
		text    string
		centerH bool // TA_CENTER
	}

	var dibs []dibRecord
	var texts []textRecord
	textAlignCenter := false

	pos := 18
	for pos+6 < len(data) {
		recSize := uint32(data[pos]) | uint32(data[pos+1])<<8 | uint32(data[pos+2])<<16 | uint32(data[pos+3])<<24
		recFunc := uint16(data[pos+4]) | uint16(data[pos+5])<<8
		recBytes := int(recSize) * 2
		if recBytes < 6 || pos+recBytes > len(data) {
			break
		}

		switch recFunc {
		case 0x020C: // SetWindowExt
			if recBytes >= 10 {
				winH = int(int16(uint16(data[pos+6]) | uint16(data[pos+7])<<8))
				winW = int(int16(uint16(data[pos+8]) | uint16(data[pos+9])<<8))
			}

		case 0x0B41, 0x0D33: // StretchDIBits, SetDIBitsToDevice
			if recBytes >= 26 {
				p := pos + 6
				rop := uint32(data[p]) | uint32(data[p+1])<<8 | uint32(data[p+2])<<16 | uint32(data[p+3])<<24
				srcH := int(int16(uint16(data[p+4]) | uint16(data[p+5])<<8))
				srcW := int(int16(uint16(data[p+6]) | uint16(data[p+7])<<8))
				_ = srcH
				_ = srcW
				dstH := int(int16(uint16(data[p+12]) | uint16(data[p+13])<<8))
				dstW := int(int16(uint16(data[p+14]) | uint16(data[p+15])<<8))
				dstY := int(int16(uint16(data[p+16]) | uint16(data[p+17])<<8))
				dstX := int(int16(uint16(data[p+18]) | uint16(data[p+19])<<8))

				// Find BITMAPINFOHEADER
				for j := pos + 6; j+40 <= pos+recBytes; j++ {
					biSz := uint32(data[j]) | uint32(data[j+1])<<8 | uint32(data[j+2])<<16 | uint32(data[j+3])<<24
					if biSz != 40 {
						continue
					}
					biPlanes := uint16(data[j+12]) | uint16(data[j+13])<<8
					if biPlanes != 1 {
						continue
					}
					biBitCount := uint16(data[j+14]) | uint16(data[j+15])<<8
					if biBitCount != 1 && biBitCount != 4 && biBitCount != 8 && biBitCount != 24 && biBitCount != 32 {
						continue
					}
					biW := int32(uint32(data[j+4]) | uint32(data[j+5])<<8 | uint32(data[j+6])<<16 | uint32(data[j+7])<<24)
					biH := int32(uint32(data[j+8]) | uint32(data[j+9])<<8 | uint32(data[j+10])<<16 | uint32(data[j+11])<<24)
					if biW <= 0 || biW > 4096 {
						continue
					}
					absH := biH
					if absH < 0 {
						absH = -absH
					}
					if absH <= 0 || absH > 4096 {
						continue
					}
					if img := parseDIB(data[j:pos+recBytes], recBytes-(j-pos)); img != nil {
						dibs = append(dibs, dibRecord{dstX, dstY, dstW, dstH, rop, img, biBitCount})
					}
					break
				}
			}

		case 0x012E: // SetTextAlign
			if recBytes >= 8 {
				align := uint16(data[pos+6]) | uint16(data[pos+7])<<8
				textAlignCenter = (align & 0x06) == 0x06 // TA_CENTER
			}

		case 0x0A32: // ExtTextOut
			if recBytes >= 14 {
				p := pos + 6
				ty := int(int16(uint16(data[p]) | uint16(data[p+1])<<8))
				tx := int(int16(uint16(data[p+2]) | uint16(data[p+3])<<8))
				count := int(int16(uint16(data[p+4]) | uint16(data[p+5])<<8))
				opts := uint16(data[p+6]) | uint16(data[p+7])<<8
				strOff := 8
				if opts&0x0006 != 0 {
					strOff = 16
				}
				if p+strOff+count <= pos+recBytes && count > 0 {
					raw := data[p+strOff : p+strOff+count]
					text := decodeGBKToUTF8(raw)
					texts = append(texts, textRecord{tx, ty, text, textAlignCenter})
				}
			}
		}

		pos += recBytes
	}

	if len(dibs) == 0 && len(texts) == 0 {
		return nil
	}

	// Render at a higher resolution for quality (4x the WMF logical units)
	scale := 4
	imgW := winW * scale
	imgH := winH * scale
	if imgW <= 0 || imgH <= 0 {
		imgW = 408
		imgH = 336
	}

	canvas := image.NewRGBA(image.Rect(0, 0, imgW, imgH))
	// Fill with white background
	draw.Draw(canvas, canvas.Bounds(), &image.Uniform{color.White}, image.Point{}, draw.Src)

	// Draw DIBs with mask compositing
	var maskImg image.Image
	for _, d := range dibs {
		dx := d.destX * scale
		dy := d.destY * scale
		dw := d.destW * scale
		dh := d.destH * scale
		scaled := scaleImageBilinear(d.img, dw, dh)

		if d.rasterOp == 0x008800C6 { // SRCAND - this is the mask
			maskImg = scaled
		} else if d.rasterOp == 0x00660046 && maskImg != nil { // SRCINVERT with mask
			// Apply mask: where mask is black, use the color image; where white, keep background
			for py := 0; py < dh && py < imgH-dy; py++ {
				for px := 0; px < dw && px < imgW-dx; px++ {
					mr, _, _, _ := maskImg.At(px, py).RGBA()
					if mr < 0x8000 { // mask is dark = draw pixel
						canvas.Set(dx+px, dy+py, scaled.At(px, py))
					}
				}
			}
			maskImg = nil
		} else {
			// Simple draw
			draw.Draw(canvas, image.Rect(dx, dy, dx+dw, dy+dh), scaled, image.Point{}, draw.Over)
		}
	}

	// Draw text
	for _, t := range texts {
		tx := t.x * scale
		ty := t.y * scale
		drawWMFText(canvas, tx, ty, t.text, scale, t.centerH, fc)
	}

	return canvas
}

// decodeGBKToUTF8 converts GBK/GB2312 encoded bytes to a UTF-8 string.
func decodeGBKToUTF8(data []byte) string {
	decoded, err := simplifiedchinese.GBK.NewDecoder().Bytes(data)
	if err != nil {
		return string(data)
	}
	return string(decoded)
}

// drawWMFText draws text onto the canvas at the given position.
func drawWMFText(canvas *image.RGBA, x, y int, text string, scale int, centerH bool, fc *FontCache) {
	col := color.Black
	// Try to use a proper font that supports Chinese characters
	var face font.Face
	if fc != nil {
		// Try common Chinese fonts at a size proportional to the scale
		fontSize := float64(10 * scale)
		for _, name := range []string{"microsoft yahei", "微软雅黑", "simsun", "宋体", "simhei", "黑体"} {
			if f := fc.GetFace(name, fontSize, false, false); f != nil {
				face = f
				break
			}
		}
	}
	if face == nil {
		face = basicfont.Face7x13
	}
	d := &font.Drawer{
		Dst:  canvas,
		Src:  image.NewUniform(col),
		Face: face,
		Dot:  fixed.P(x, y+face.Metrics().Ascent.Ceil()),
	}
	if centerH {
		// Measure text width and offset x to center
		textWidth := d.MeasureString(text)
		d.Dot.X = fixed.I(x) - textWidth/2
	}
	d.DrawString(text)
}

// parseDIB parses a BITMAPINFOHEADER + pixel data into an image.
func parseDIB(data []byte, maxLen int) image.Image {
	if len(data) < 40 {
		return nil
	}
	biWidth := int(int32(uint32(data[4]) | uint32(data[5])<<8 | uint32(data[6])<<16 | uint32(data[7])<<24))
	biHeight := int(int32(uint32(data[8]) | uint32(data[9])<<8 | uint32(data[10])<<16 | uint32(data[11])<<24))
	biBitCount := int(uint16(data[14]) | uint16(data[15])<<8)

	if biWidth <= 0 || biWidth > 4096 {
		return nil
	}
	absHeight := biHeight
	bottomUp := true
	if biHeight < 0 {
		absHeight = -biHeight
		bottomUp = false
	}
	if absHeight <= 0 || absHeight > 4096 {
		return nil
	}

	// Calculate palette size
	paletteEntries := 0
	if biBitCount <= 8 {
		paletteEntries = 1 << biBitCount
	}
	paletteSize := paletteEntries * 4 // RGBQUAD = 4 bytes each
	pixelOffset := 40 + paletteSize

	if pixelOffset >= len(data) {
		return nil
	}

	// Read palette
	palette := make([]color.RGBA, paletteEntries)
	for i := 0; i < paletteEntries && 40+i*4+3 < len(data); i++ {
		off := 40 + i*4
		palette[i] = color.RGBA{R: data[off+2], G: data[off+1], B: data[off], A: 255}
	}

	img := image.NewRGBA(image.Rect(0, 0, biWidth, absHeight))
	pixData := data[pixelOffset:]

	// Row stride (padded to 4-byte boundary)
	bitsPerRow := biWidth * biBitCount
	stride := ((bitsPerRow + 31) / 32) * 4

	for row := 0; row < absHeight; row++ {
		srcRow := row
		dstRow := row
		if bottomUp {
			dstRow = absHeight - 1 - row
		}
		_ = srcRow
		rowStart := row * stride
		if rowStart >= len(pixData) {
			break
		}

		for col := 0; col < biWidth; col++ {
			var c color.RGBA
			switch biBitCount {
			case 1:
				byteIdx := rowStart + col/8
				if byteIdx >= len(pixData) {
					continue
				}
				bit := (pixData[byteIdx] >> (7 - uint(col%8))) & 1
				if int(bit) < len(palette) {
					c = palette[bit]
				}
			case 4:
				byteIdx := rowStart + col/2
				if byteIdx >= len(pixData) {
					continue
				}
				var nibble byte
				if col%2 == 0 {
					nibble = (pixData[byteIdx] >> 4) & 0x0F
				} else {
					nibble = pixData[byteIdx] & 0x0F
				}
				if int(nibble) < len(palette) {
					c = palette[nibble]
				}
			case 8:
				byteIdx := rowStart + col
				if byteIdx >= len(pixData) {
					continue
				}
				idx := pixData[byteIdx]
				if int(idx) < len(palette) {
					c = palette[idx]
				}
			case 24:
				byteIdx := rowStart + col*3
				if byteIdx+2 >= len(pixData) {
					continue
				}
				c = color.RGBA{R: pixData[byteIdx+2], G: pixData[byteIdx+1], B: pixData[byteIdx], A: 255}
			case 32:
				byteIdx := rowStart + col*4
				if byteIdx+3 >= len(pixData) {
					continue
				}
				c = color.RGBA{R: pixData[byteIdx+2], G: pixData[byteIdx+1], B: pixData[byteIdx], A: 255}
			default:
				continue
			}
			img.SetRGBA(col, dstRow, c)
		}
	}

	return img
}

// decodeEMFBitmap extracts a bitmap from an EMF (Enhanced Metafile) by
// scanning for EMR_STRETCHDIBITS (0x51) or EMR_BITBLT (0x4C) records
// that contain a BITMAPINFOHEADER.
func decodeEMFBitmap(data []byte) image.Image {
	if len(data) < 88 {
		return nil
	}
	// EMF header: first record is EMR_HEADER (type=1)
	// Each EMR record: DWORD type, DWORD size
	pos := 0
	var bestImg image.Image
	for pos+8 <= len(data) {
		recType := uint32(data[pos]) | uint32(data[pos+1])<<8 | uint32(data[pos+2])<<16 | uint32(data[pos+3])<<24
		recSize := uint32(data[pos+4]) | uint32(data[pos+5])<<8 | uint32(data[pos+6])<<16 | uint32(data[pos+7])<<24

		if recSize < 8 || pos+int(recSize) > len(data) {
			break
		}

		// EMR_STRETCHDIBITS = 0x51, EMR_BITBLT = 0x4C, EMR_SETDIBITSTODEVICE = 0x50
		if recType == 0x51 || recType == 0x4C || recType == 0x50 {
			recData := data[pos : pos+int(recSize)]
			// Scan for BITMAPINFOHEADER (biSize=40) with validation
			for j := 8; j+40 <= len(recData); j++ {
				biSz := uint32(recData[j]) | uint32(recData[j+1])<<8 | uint32(recData[j+2])<<16 | uint32(recData[j+3])<<24
				if biSz != 40 {
					continue
				}
				// Validate: biPlanes must be 1
				biPlanes := uint16(recData[j+12]) | uint16(recData[j+13])<<8
				if biPlanes != 1 {
					continue
				}
				// Validate: biBitCount must be valid
				biBitCount := uint16(recData[j+14]) | uint16(recData[j+15])<<8
				if biBitCount != 1 && biBitCount != 4 && biBitCount != 8 && biBitCount != 24 && biBitCount != 32 {
					continue
				}
				if img := parseDIB(recData[j:], len(recData)-j); img != nil {
					if bestImg == nil || biBitCount > 1 {
						bestImg = img
					}
				}
				break
			}
		}

		// EMR_EOF = 0x0E
		if recType == 0x0E {
			break
		}

		pos += int(recSize)
	}
	if bestImg != nil {
		return bestImg
	}
	// Fallback: try vector rendering for EMFs without embedded bitmaps
	return renderEMFVector(data)
}
