package pptxraster

import (
	"archive/zip"
	"strings"
)

// applyPlaceholderInheritance resolves the slide -> slide layout -> slide
// master `firstDefined` merge for every placeholder on the slide: a
// property left unset at the slide tier falls through to the layout, and a
// property left unset at the layout tier falls through to the master. This
// generalizes the teacher's original layout-only pass (which stopped one
// tier short, at the slide layout) by also resolving the layout's own
// relationship to its slide master and parsing that master's placeholder
// definitions as the final tier.
//
// It also prepends the layout's background and non-placeholder shapes
// behind the slide's own content, matching how PowerPoint composites a
// slide over its layout.
func (r *PPTXReader) applyPlaceholderInheritance(zr *zip.Reader, slide *Slide, rels []xmlRelForRead, slidePath string, pres *Presentation) {
	layoutPath := resolveRelTarget(rels, relTypeSlideLayout, slidePath)
	if layoutPath == "" {
		return
	}
	layoutData, err := readFileFromZip(zr, layoutPath)
	if err != nil {
		return
	}
	layoutRelsPath := relsPathFor(layoutPath)
	layoutRels, _ := r.readRelationships(zr, layoutRelsPath)

	layoutImages := r.parseLayoutImages(layoutData, layoutRels, zr, layoutPath, pres)
	if len(layoutImages) > 0 {
		slide.shapes = append(layoutImages, slide.shapes...)
	}
	layoutBg, bgImage := r.parseLayoutBackground(layoutData, layoutRels, zr, layoutPath, pres)
	applyInheritedBackground(slide, pres, layoutBg, bgImage)

	layoutPHs := r.parseLayoutPlaceholders(layoutData, pres)

	var masterPHs []layoutPlaceholder
	masterPath := resolveRelTarget(layoutRels, relTypeSlideMaster, layoutPath)
	if masterPath != "" {
		if masterData, err := readFileFromZip(zr, masterPath); err == nil {
			masterPHs = r.parseLayoutPlaceholders(masterData, pres)
		}
	}

	if len(layoutPHs) == 0 && len(masterPHs) == 0 {
		return
	}

	for _, shape := range slide.shapes {
		ph, ok := shape.(*PlaceholderShape)
		if !ok {
			continue
		}
		mergePlaceholder(ph, matchLayoutPlaceholder(layoutPHs, ph), matchLayoutPlaceholder(masterPHs, ph))
	}
}

// resolveRelTarget finds the relationship of relType and, if its target is
// a path relative to fromPath's directory, normalizes it to a full
// archive-rooted path.
func resolveRelTarget(rels []xmlRelForRead, relType, fromPath string) string {
	target := findRelTarget(rels, relType)
	if target == "" {
		return ""
	}
	if !strings.HasPrefix(target, "ppt/") {
		dir := strings.TrimSuffix(fromPath, "/"+lastPathComponent(fromPath))
		target = resolveRelativePath(dir, target)
	}
	return target
}

// matchLayoutPlaceholder finds the placeholder definition in phs (from a
// layout or master) that corresponds to ph, preferring an exact type+idx
// match, then type+idx==0, then type alone.
func matchLayoutPlaceholder(phs []layoutPlaceholder, ph *PlaceholderShape) *layoutPlaceholder {
	for i := range phs {
		lp := &phs[i]
		if lp.phType == string(ph.phType) && lp.phIdx == ph.phIdx {
			return lp
		}
		if lp.phType == string(ph.phType) && ph.phIdx == 0 && lp.phIdx == 0 {
			return lp
		}
	}
	for i := range phs {
		if phs[i].phType == string(ph.phType) {
			return &phs[i]
		}
	}
	return nil
}

// mergePlaceholder applies position/size, text insets, and default-font
// properties to ph from tiers (ordered slide-adjacent-first, i.e. layout
// before master). Position/size and insets each come from the first tier
// that defines them; all font properties come from the first tier that
// defines any font property, so a font property set only on a later tier
// is not applied.
func mergePlaceholder(ph *PlaceholderShape, tiers ...*layoutPlaceholder) {
	if ph.width == 0 && ph.height == 0 {
		if src := firstPlaceholderWithSize(tiers); src != nil {
			ph.offsetX, ph.offsetY, ph.width, ph.height = src.offX, src.offY, src.extCX, src.extCY
		}
	}

	if !ph.insetsSet {
		if src := firstPlaceholderWithInsets(tiers); src != nil {
			ph.insetLeft, ph.insetRight, ph.insetTop, ph.insetBottom = src.insetLeft, src.insetRight, src.insetTop, src.insetBottom
			ph.insetsSet = true
		}
	}

	src := firstPlaceholderWithFont(tiers)
	if src == nil {
		return
	}
	for _, para := range ph.paragraphs {
		for _, elem := range para.elements {
			tr, ok := elem.(*TextRun)
			if !ok || tr.font == nil {
				continue
			}
			// A run still carrying the bare defaults (Calibri, 18pt or <=10pt,
			// pure black) is treated as "unset" and takes the inherited value.
			if tr.font.Name == "Calibri" && src.fontName != "" {
				tr.font.Name = src.fontName
			}
			if tr.font.NameEA == "" && src.fontEA != "" {
				tr.font.NameEA = src.fontEA
			}
			if (tr.font.Size == 18 || tr.font.Size <= 10) && src.fontSize > 0 {
				tr.font.Size = src.fontSize
			}
			if src.fontBold {
				tr.font.Bold = true
			}
			if src.fontColor.ARGB != "" && src.fontColor.ARGB != "FF000000" && tr.font.Color.ARGB == "FF000000" {
				tr.font.Color = src.fontColor
			}
		}
	}
}

func firstPlaceholderWithSize(tiers []*layoutPlaceholder) *layoutPlaceholder {
	for _, t := range tiers {
		if t != nil && (t.extCX != 0 || t.extCY != 0) {
			return t
		}
	}
	return nil
}

func firstPlaceholderWithInsets(tiers []*layoutPlaceholder) *layoutPlaceholder {
	for _, t := range tiers {
		if t != nil && t.insetsSet {
			return t
		}
	}
	return nil
}

func firstPlaceholderWithFont(tiers []*layoutPlaceholder) *layoutPlaceholder {
	for _, t := range tiers {
		if t != nil && (t.fontName != "" || t.fontEA != "" || t.fontSize > 0 || t.fontBold || t.fontColor.ARGB != "") {
			return t
		}
	}
	return nil
}

// applyInheritedBackground fills in a slide's background from its layout
// when the slide defines none of its own, same precedence rule as every
// other placeholder property.
func applyInheritedBackground(slide *Slide, pres *Presentation, bg *Fill, bgImage *DrawingShape) {
	if slide.background == nil && bg != nil {
		slide.background = bg
	}
	if bgImage == nil || slide.background != nil {
		return
	}
	if len(slide.shapes) > 0 {
		if ds, ok := slide.shapes[0].(*DrawingShape); ok && ds.offsetX == 0 && ds.offsetY == 0 && ds.width == pres.layout.CX && ds.height == pres.layout.CY {
			return
		}
	}
	bgImage.offsetX = 0
	bgImage.offsetY = 0
	bgImage.width = pres.layout.CX
	bgImage.height = pres.layout.CY
	slide.shapes = append([]Shape{bgImage}, slide.shapes...)
}
