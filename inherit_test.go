package pptxraster

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatchLayoutPlaceholderPrefersExactTypeAndIdx(t *testing.T) {
	phs := []layoutPlaceholder{
		{phType: "body", phIdx: 0},
		{phType: "body", phIdx: 2, fontName: "Consolas"},
	}
	ph := &PlaceholderShape{phType: PlaceholderBody, phIdx: 2}

	match := matchLayoutPlaceholder(phs, ph)
	require.NotNil(t, match)
	assert.Equal(t, "Consolas", match.fontName)
}

func TestMatchLayoutPlaceholderFallsBackToTypeAlone(t *testing.T) {
	phs := []layoutPlaceholder{
		{phType: "body", phIdx: 5, fontName: "Georgia"},
	}
	ph := &PlaceholderShape{phType: PlaceholderBody, phIdx: 9}

	match := matchLayoutPlaceholder(phs, ph)
	require.NotNil(t, match)
	assert.Equal(t, "Georgia", match.fontName)
}

func TestMatchLayoutPlaceholderReturnsNilWhenNoTypeMatches(t *testing.T) {
	phs := []layoutPlaceholder{{phType: "title", phIdx: 0}}
	ph := &PlaceholderShape{phType: PlaceholderBody, phIdx: 0}

	assert.Nil(t, matchLayoutPlaceholder(phs, ph))
}

func TestMergePlaceholderFillsSizeFromLayoutBeforeMaster(t *testing.T) {
	layout := &layoutPlaceholder{extCX: 100, extCY: 200, offX: 1, offY: 2}
	master := &layoutPlaceholder{extCX: 999, extCY: 999}

	ph := &PlaceholderShape{}
	mergePlaceholder(ph, layout, master)

	assert.Equal(t, int64(1), ph.offsetX)
	assert.Equal(t, int64(2), ph.offsetY)
	assert.Equal(t, int64(100), ph.width)
	assert.Equal(t, int64(200), ph.height)
}

func TestMergePlaceholderFallsThroughToMasterWhenLayoutUnset(t *testing.T) {
	master := &layoutPlaceholder{extCX: 300, extCY: 400}

	ph := &PlaceholderShape{}
	mergePlaceholder(ph, nil, master)

	assert.Equal(t, int64(300), ph.width)
	assert.Equal(t, int64(400), ph.height)
}

func TestMergePlaceholderLeavesExplicitSlideSizeUntouched(t *testing.T) {
	layout := &layoutPlaceholder{extCX: 100, extCY: 200}

	ph := &PlaceholderShape{}
	ph.width, ph.height = 50, 60
	mergePlaceholder(ph, layout, nil)

	assert.Equal(t, int64(50), ph.width)
	assert.Equal(t, int64(60), ph.height)
}

func TestMergePlaceholderFillsInsetsOnlyWhenUnset(t *testing.T) {
	layout := &layoutPlaceholder{insetLeft: 10, insetRight: 20, insetTop: 30, insetBottom: 40, insetsSet: true}

	ph := &PlaceholderShape{}
	mergePlaceholder(ph, layout, nil)

	assert.True(t, ph.insetsSet)
	assert.Equal(t, int64(10), ph.insetLeft)
	assert.Equal(t, int64(40), ph.insetBottom)
}

func TestMergePlaceholderInheritsFontOntoDefaultRuns(t *testing.T) {
	layout := &layoutPlaceholder{fontName: "Georgia", fontSize: 32, fontBold: true}

	run := &TextRun{text: "Title", font: &Font{Name: "Calibri", Size: 18, Color: Color{ARGB: "FF000000"}}}
	para := &Paragraph{elements: []ParagraphElement{run}}
	ph := &PlaceholderShape{}
	ph.paragraphs = []*Paragraph{para}

	mergePlaceholder(ph, layout, nil)

	assert.Equal(t, "Georgia", run.font.Name)
	assert.Equal(t, 32, run.font.Size)
	assert.True(t, run.font.Bold)
}

func TestMergePlaceholderDoesNotOverrideExplicitNonDefaultFont(t *testing.T) {
	layout := &layoutPlaceholder{fontName: "Georgia", fontSize: 32}

	run := &TextRun{text: "Body", font: &Font{Name: "Arial", Size: 24, Color: Color{ARGB: "FF000000"}}}
	para := &Paragraph{elements: []ParagraphElement{run}}
	ph := &PlaceholderShape{}
	ph.paragraphs = []*Paragraph{para}

	mergePlaceholder(ph, layout, nil)

	assert.Equal(t, "Arial", run.font.Name)
	assert.Equal(t, 24, run.font.Size)
}

func TestFirstPlaceholderWithSizeSkipsNilAndEmptyTiers(t *testing.T) {
	empty := &layoutPlaceholder{}
	sized := &layoutPlaceholder{extCX: 10, extCY: 10}

	got := firstPlaceholderWithSize([]*layoutPlaceholder{nil, empty, sized})
	assert.Same(t, sized, got)
}

func TestFirstPlaceholderWithFontSkipsTiersWithNoFontProps(t *testing.T) {
	empty := &layoutPlaceholder{}
	withFont := &layoutPlaceholder{fontEA: "MS Gothic"}

	got := firstPlaceholderWithFont([]*layoutPlaceholder{empty, withFont})
	assert.Same(t, withFont, got)
}

func TestApplyInheritedBackgroundUsesLayoutOnlyWhenSlideHasNone(t *testing.T) {
	slide := &Slide{}
	bg := &Fill{}

	applyInheritedBackground(slide, &Presentation{}, bg, nil)
	assert.Same(t, bg, slide.background)

	applyInheritedBackground(slide, &Presentation{}, &Fill{}, nil)
	assert.Same(t, bg, slide.background, "an existing slide background must not be overwritten")
}
