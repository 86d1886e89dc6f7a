package pptxraster

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const testThemeXML = `<?xml version="1.0"?>
<a:theme xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main">
  <a:themeElements>
    <a:clrScheme name="Office">
      <a:dk1><a:sysClr val="windowText" lastClr="000000"/></a:dk1>
      <a:lt1><a:sysClr val="window" lastClr="FFFFFF"/></a:lt1>
      <a:dk2><a:srgbClr val="44546A"/></a:dk2>
      <a:lt2><a:srgbClr val="E7E6E6"/></a:lt2>
      <a:accent1><a:srgbClr val="4472C4"/></a:accent1>
      <a:accent2><a:srgbClr val="ED7D31"/></a:accent2>
      <a:accent3><a:srgbClr val="A5A5A5"/></a:accent3>
      <a:accent4><a:srgbClr val="FFC000"/></a:accent4>
      <a:accent5><a:srgbClr val="5B9BD5"/></a:accent5>
      <a:accent6><a:srgbClr val="70AD47"/></a:accent6>
      <a:hlink><a:srgbClr val="0563C1"/></a:hlink>
      <a:folHlink><a:srgbClr val="954F72"/></a:folHlink>
    </a:clrScheme>
    <a:fontScheme name="Office">
      <a:majorFont>
        <a:latin typeface="Calibri Light"/>
        <a:ea typeface="MS PGothic"/>
      </a:majorFont>
      <a:minorFont>
        <a:latin typeface="Calibri"/>
        <a:ea typeface="MS Gothic"/>
      </a:minorFont>
    </a:fontScheme>
    <a:fmtScheme name="Office">
      <a:fillStyleLst>
        <a:solidFill><a:schemeClr val="phClr"/></a:solidFill>
        <a:gradFill><a:gsLst><a:gs pos="0"><a:schemeClr val="phClr"/></a:gs></a:gsLst></a:gradFill>
      </a:fillStyleLst>
      <a:lnStyleLst>
        <a:ln><a:solidFill><a:schemeClr val="phClr"/></a:solidFill></a:ln>
      </a:lnStyleLst>
      <a:effectStyleLst>
        <a:effectStyle><a:effectLst/></a:effectStyle>
      </a:effectStyleLst>
    </a:fmtScheme>
  </a:themeElements>
</a:theme>`

func TestParseThemeXMLResolvesSchemeSlotsAndAliases(t *testing.T) {
	colors, err := parseThemeXML([]byte(testThemeXML))
	assert.NoError(t, err)
	assert.Equal(t, "000000", colors["dk1"])
	assert.Equal(t, "FFFFFF", colors["lt1"])
	assert.Equal(t, "4472C4", colors["accent1"])
	assert.Equal(t, colors["dk1"], colors["tx1"])
	assert.Equal(t, colors["lt1"], colors["bg1"])
}

func TestSchemeColorsFromMapConvertsHexToRgba(t *testing.T) {
	colors, err := parseThemeXML([]byte(testThemeXML))
	assert.NoError(t, err)
	sc := schemeColorsFromMap(colors)
	assert.Equal(t, Rgba{R: 0x44, G: 0x72, B: 0xC4, A: 0xFF}, sc.Accent1)
	assert.Equal(t, Rgba{}, SchemeColors{}.Accent2) // zero value stays zero when unset
}

func TestParseFontSchemeExtractsMajorMinorTypefaces(t *testing.T) {
	fs := parseFontScheme([]byte(testThemeXML))
	assert.Equal(t, "Calibri Light", fs.MajorLatin)
	assert.Equal(t, "Calibri", fs.MinorLatin)
	assert.Equal(t, "MS PGothic", fs.MajorEA)
	assert.Equal(t, "MS Gothic", fs.MinorEA)
}

func TestParseFormatSchemeIndexesEachStyleList(t *testing.T) {
	fills, lines, effects := parseFormatScheme([]byte(testThemeXML))
	assert.Len(t, fills, 2)
	assert.Equal(t, 1, fills[0].Idx)
	assert.Equal(t, 2, fills[1].Idx)
	assert.Len(t, lines, 1)
	assert.Equal(t, 1, lines[0].Idx)
	assert.Len(t, effects, 0)
}
