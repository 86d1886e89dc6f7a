package pptxraster

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
)

// Rgba is a resolved, alpha-aware color value, distinct from the teacher's
// hex-string Color: Color is "what the XML said" (a scheme reference, a
// literal hex, a modifier chain still to apply), Rgba is "the final pixel
// value" spec.md §3's data model calls for. Components are 0-255.
type Rgba struct {
	R, G, B, A uint8
}

// Rgba converts a resolved Color to its final pixel value.
func (c Color) Rgba() Rgba {
	return Rgba{R: c.GetRed(), G: c.GetGreen(), B: c.GetBlue(), A: c.GetAlpha()}
}

// SchemeColors is the twelve-slot `a:clrScheme` palette (dk1/lt1/dk2/lt2/
// accent1-6/hlink/folHlink). The tx1/bg1/tx2/bg2 names that slide and
// layout XML reference have no fields of their own; they name the same
// colors as Dk1/Lt1/Dk2/Lt2. Zero-value Rgba means the slot was never set
// by the theme part.
type SchemeColors struct {
	Dk1, Lt1, Dk2, Lt2                                 Rgba
	Accent1, Accent2, Accent3, Accent4, Accent5, Accent6 Rgba
	Hlink, FolHlink                                    Rgba
}

// FontScheme is the `a:fontScheme`'s major/minor typeface pair, used as the
// second tier of the font-resolution chain (embedded/system font -> theme
// major/minor -> hard-coded fallback face).
type FontScheme struct {
	MajorLatin string
	MinorLatin string
	MajorEA    string
	MinorEA    string
}

// StyleRef records one `<a:schemeClr>` found inside an `a:fmtScheme`
// fill/line/effect style list. Idx is 1-based and counts schemeClr elements
// in document order within that list, so it equals the `<a:lnRef idx="N">`
// style number only when every style entry holds exactly one schemeClr.
type StyleRef struct {
	Idx   int
	Color string // scheme color name this style entry is tinted with, if any
}

// ResolvedTheme is the fully parsed contents of a theme part: the color
// scheme slide XML resolves schemeClr references against, the font scheme
// the text-layout font-resolution chain falls back to, and the fill/line/
// effect style reference lists a shape's <p:style> indexes into.
type ResolvedTheme struct {
	Colors SchemeColors
	Fonts  FontScheme
	Fills  []StyleRef
	Lines  []StyleRef
	Effects []StyleRef
}

// schemeColorsFromMap builds the typed SchemeColors from the slot->hex map
// parseThemeXML already produces, which remains the representation
// reader_slide.go's schemeClr resolution looks up directly (cheap string
// keying, no per-lookup struct reflection in the hot parsing path).
func schemeColorsFromMap(m map[string]string) SchemeColors {
	get := func(key string) Rgba {
		hex, ok := m[key]
		if !ok || hex == "" {
			return Rgba{}
		}
		return NewColor(hex).Rgba()
	}
	return SchemeColors{
		Dk1: get("dk1"), Lt1: get("lt1"), Dk2: get("dk2"), Lt2: get("lt2"),
		Accent1: get("accent1"), Accent2: get("accent2"), Accent3: get("accent3"),
		Accent4: get("accent4"), Accent5: get("accent5"), Accent6: get("accent6"),
		Hlink: get("hlink"), FolHlink: get("folHlink"),
	}
}

// parseThemeXML extracts the color scheme from a theme part (e.g.
// ppt/theme/theme1.xml) into the scheme-name -> RGB-hex map used by
// schemeClr resolution during slide parsing.
//
// The twelve scheme slots are dk1, lt1, dk2, lt2, accent1-6, hlink and
// folHlink. dk1/lt1/dk2/lt2 are also exposed under their tx1/bg1/tx2/bg2
// aliases, matching how <a:schemeClr val="tx1"/> etc. are used in slide
// and layout XML.
func parseThemeXML(data []byte) (map[string]string, error) {
	decoder := xml.NewDecoder(bytes.NewReader(data))

	colors := make(map[string]string)
	var inClrScheme bool
	var currentSlot string

	for {
		token, err := decoder.Token()
		if err != nil {
			break
		}
		switch t := token.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "clrScheme":
				inClrScheme = true
			case "dk1", "lt1", "dk2", "lt2",
				"accent1", "accent2", "accent3", "accent4", "accent5", "accent6",
				"hlink", "folHlink":
				if inClrScheme {
					currentSlot = t.Name.Local
				}
			case "srgbClr":
				if inClrScheme && currentSlot != "" {
					for _, attr := range t.Attr {
						if attr.Name.Local == "val" {
							colors[currentSlot] = attr.Value
						}
					}
				}
			case "sysClr":
				if inClrScheme && currentSlot != "" {
					for _, attr := range t.Attr {
						if attr.Name.Local == "lastClr" {
							colors[currentSlot] = attr.Value
						}
					}
				}
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "clrScheme":
				inClrScheme = false
			case "dk1", "lt1", "dk2", "lt2",
				"accent1", "accent2", "accent3", "accent4", "accent5", "accent6",
				"hlink", "folHlink":
				currentSlot = ""
			}
		}
	}

	if v, ok := colors["dk1"]; ok {
		colors["tx1"] = v
	}
	if v, ok := colors["lt1"]; ok {
		colors["bg1"] = v
	}
	if v, ok := colors["dk2"]; ok {
		colors["tx2"] = v
	}
	if v, ok := colors["lt2"]; ok {
		colors["bg2"] = v
	}

	return colors, nil
}

// readTheme loads and parses the theme referenced (directly or via a slide
// master) by the presentation's relationships, returning both the
// slot->hex map (what schemeClr resolution in reader_slide.go looks up) and
// the fully typed ResolvedTheme (color/font/style schemes). Any failure to
// locate a theme returns (nil, nil, nil); callers treat that as "no theme
// available" rather than an error.
func (r *PPTXReader) readTheme(zr *zip.Reader, presRels []xmlRelForRead) (map[string]string, *ResolvedTheme, error) {
	themeTarget := findRelTarget(presRels, relTypeTheme)

	if themeTarget == "" {
		// Theme is usually one hop away, via the first slide master's rels.
		masterTarget := findRelTarget(presRels, relTypeSlideMaster)
		if masterTarget == "" {
			return nil, nil, nil
		}
		masterTarget = normalizeThemePath(masterTarget)
		masterRelsPath := relsPathFor(masterTarget)
		masterRels, err := r.readRelationships(zr, masterRelsPath)
		if err != nil {
			return nil, nil, nil
		}
		themeTarget = findRelTarget(masterRels, relTypeTheme)
		if themeTarget == "" {
			return nil, nil, nil
		}
	}

	themeTarget = normalizeThemePath(themeTarget)
	data, err := readFileFromZip(zr, themeTarget)
	if err != nil {
		return nil, nil, nil
	}
	colors, err := parseThemeXML(data)
	if err != nil {
		return nil, nil, err
	}
	theme := &ResolvedTheme{
		Colors: schemeColorsFromMap(colors),
		Fonts:  parseFontScheme(data),
	}
	theme.Fills, theme.Lines, theme.Effects = parseFormatScheme(data)
	return colors, theme, nil
}

// parseFontScheme extracts the major/minor Latin and East Asian typefaces
// from a theme part's <a:fontScheme>, used as the theme tier of the font
// resolution chain.
func parseFontScheme(data []byte) FontScheme {
	decoder := xml.NewDecoder(bytes.NewReader(data))
	var fs FontScheme
	var section string // "majorFont" or "minorFont"

	for {
		token, err := decoder.Token()
		if err != nil {
			break
		}
		start, ok := token.(xml.StartElement)
		if !ok {
			continue
		}
		switch start.Name.Local {
		case "majorFont", "minorFont":
			section = start.Name.Local
		case "latin":
			typeface := attrValue(start, "typeface")
			if section == "majorFont" {
				fs.MajorLatin = typeface
			} else if section == "minorFont" {
				fs.MinorLatin = typeface
			}
		case "ea":
			typeface := attrValue(start, "typeface")
			if section == "majorFont" {
				fs.MajorEA = typeface
			} else if section == "minorFont" {
				fs.MinorEA = typeface
			}
		}
	}
	return fs
}

// parseFormatScheme extracts the fill/line/effect style reference lists
// from a theme part's <a:fmtScheme>: one StyleRef per <a:schemeClr> inside
// each list, numbered from 1. A style entry with several schemeClr elements
// yields several refs and one with none yields no ref.
func parseFormatScheme(data []byte) (fills, lines, effects []StyleRef) {
	decoder := xml.NewDecoder(bytes.NewReader(data))
	var section string
	idx := map[string]int{}

	for {
		token, err := decoder.Token()
		if err != nil {
			break
		}
		switch t := token.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "fillStyleLst", "lnStyleLst", "effectStyleLst":
				section = t.Name.Local
				idx[section] = 0
			case "schemeClr":
				if section == "" {
					continue
				}
				idx[section]++
				ref := StyleRef{Idx: idx[section], Color: attrValue(t, "val")}
				switch section {
				case "fillStyleLst":
					fills = append(fills, ref)
				case "lnStyleLst":
					lines = append(lines, ref)
				case "effectStyleLst":
					effects = append(effects, ref)
				}
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "fillStyleLst", "lnStyleLst", "effectStyleLst":
				section = ""
			}
		}
	}
	return fills, lines, effects
}

func attrValue(t xml.StartElement, local string) string {
	for _, a := range t.Attr {
		if a.Name.Local == local {
			return a.Value
		}
	}
	return ""
}

func findRelTarget(rels []xmlRelForRead, relType string) string {
	for _, rel := range rels {
		if rel.Type == relType {
			return rel.Target
		}
	}
	return ""
}

func normalizeThemePath(target string) string {
	if !hasPPTPrefix(target) {
		return "ppt/" + target
	}
	return target
}

func hasPPTPrefix(s string) bool {
	return len(s) >= 4 && s[:4] == "ppt/"
}

func relsPathFor(target string) string {
	dir := ""
	file := target
	for i := len(target) - 1; i >= 0; i-- {
		if target[i] == '/' {
			dir = target[:i]
			file = target[i+1:]
			break
		}
	}
	return dir + "/_rels/" + file + ".rels"
}
