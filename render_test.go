package pptxraster

import (
	"archive/zip"
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testPresentationXML = `<?xml version="1.0"?>
<p:presentation xmlns:p="http://schemas.openxmlformats.org/presentationml/2006/main"
                 xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships">
  <p:sldIdLst>
    <p:sldId id="256" r:id="rId2"/>
  </p:sldIdLst>
  <p:sldSz cx="9144000" cy="6858000"/>
</p:presentation>`

const testPresentationRelsXML = `<?xml version="1.0"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
  <Relationship Id="rId2" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/slide" Target="slides/slide1.xml"/>
</Relationships>`

const testSlideXML = `<?xml version="1.0"?>
<p:sld xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main"
       xmlns:p="http://schemas.openxmlformats.org/presentationml/2006/main">
  <p:cSld>
    <p:spTree>
      <p:sp>
        <p:nvSpPr>
          <p:nvPr/>
        </p:nvSpPr>
        <p:spPr>
          <a:xfrm>
            <a:off x="457200" y="274638"/>
            <a:ext cx="8229600" cy="1143000"/>
          </a:xfrm>
          <a:solidFill><a:srgbClr val="FFFFFF"/></a:solidFill>
        </p:spPr>
        <p:txBody>
          <a:p>
            <a:r>
              <a:rPr sz="3200"/>
              <a:t>Hello, rendering</a:t>
            </a:r>
          </a:p>
        </p:txBody>
      </p:sp>
    </p:spTree>
  </p:cSld>
</p:sld>`

// buildMinimalPPTX assembles a single-slide .pptx-shaped zip entirely in
// memory: just enough of the part set (presentation.xml, its rels, one
// slide) for PPTXReader.ReadFromReader to walk end to end without touching
// disk, mirroring how RenderReader is meant to be used against an in-memory
// upload rather than a file path.
func buildMinimalPPTX(t *testing.T) *bytes.Reader {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	files := map[string]string{
		"ppt/presentation.xml":            testPresentationXML,
		"ppt/_rels/presentation.xml.rels": testPresentationRelsXML,
		"ppt/slides/slide1.xml":           testSlideXML,
	}
	for name, content := range files {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())

	return bytes.NewReader(buf.Bytes())
}

func TestRenderReaderRastersEverySlideToPNGByDefault(t *testing.T) {
	r := buildMinimalPPTX(t)
	result, err := RenderReader(r, int64(r.Len()), nil)
	require.NoError(t, err)
	require.Equal(t, 1, result.TotalSlides)
	assert.Equal(t, 1, result.SuccessfulSlides)
	require.Len(t, result.Slides, 1)

	slide := result.Slides[0]
	assert.True(t, slide.Success)
	assert.Equal(t, 1, slide.SlideNumber)
	assert.Greater(t, slide.Width, 0)
	assert.Greater(t, slide.Height, 0)
	assert.NotEmpty(t, slide.ImageData)
	// PNG signature.
	assert.Equal(t, []byte{0x89, 'P', 'N', 'G'}, slide.ImageData[:4])
}

func TestRenderReaderHonorsJPEGFormatOption(t *testing.T) {
	r := buildMinimalPPTX(t)
	opts := DefaultRenderOptions()
	opts.Format = ImageFormatJPEG
	opts.JPEGQuality = 80

	result, err := RenderReader(r, int64(r.Len()), opts)
	require.NoError(t, err)
	require.Len(t, result.Slides, 1)
	data := result.Slides[0].ImageData
	require.NotEmpty(t, data)
	// JPEG SOI marker.
	assert.Equal(t, []byte{0xFF, 0xD8, 0xFF}, data[:3])
}

func TestRenderReaderOnMalformedArchiveReturnsArchiveError(t *testing.T) {
	garbage := bytes.NewReader([]byte("not a zip file"))
	_, err := RenderReader(garbage, int64(garbage.Len()), nil)
	require.Error(t, err)
	var archiveErr *ArchiveError
	assert.ErrorAs(t, err, &archiveErr)
}

func TestRenderOnMissingFileReturnsArchiveError(t *testing.T) {
	_, err := Render("/nonexistent/path/to/deck.pptx", nil)
	require.Error(t, err)
	var archiveErr *ArchiveError
	assert.ErrorAs(t, err, &archiveErr)
}
