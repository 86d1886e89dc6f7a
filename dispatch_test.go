package pptxraster

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveAlternateContentPassesThroughUnaffectedXML(t *testing.T) {
	in := []byte(`<root><sp><nvSpPr/></sp></root>`)
	out, err := resolveAlternateContent(in)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestResolveAlternateContentKeepsFallbackWhenNoChoiceAllowlisted(t *testing.T) {
	in := []byte(`<root xmlns:mc="x"><mc:AlternateContent>` +
		`<mc:Choice Requires="a14"><newThing/></mc:Choice>` +
		`<mc:Fallback><oldThing/></mc:Fallback>` +
		`</mc:AlternateContent></root>`)
	out, err := resolveAlternateContent(in)
	require.NoError(t, err)
	assert.Contains(t, string(out), "oldThing")
	assert.NotContains(t, string(out), "newThing")
	assert.NotContains(t, string(out), "AlternateContent")
}

func TestResolveAlternateContentHandlesNestedAlternateContent(t *testing.T) {
	in := []byte(`<root xmlns:mc="x"><mc:AlternateContent>` +
		`<mc:Choice Requires="a14">` +
		`<mc:AlternateContent><mc:Choice Requires="a14"><inner/></mc:Choice><mc:Fallback><innerFallback/></mc:Fallback></mc:AlternateContent>` +
		`</mc:Choice>` +
		`<mc:Fallback><outerFallback/></mc:Fallback>` +
		`</mc:AlternateContent></root>`)
	out, err := resolveAlternateContent(in)
	require.NoError(t, err)
	assert.Contains(t, string(out), "outerFallback")
	assert.NotContains(t, string(out), "innerFallback")
	assert.NotContains(t, string(out), "<inner/>")
}

func TestResolveAlternateContentNoopsWithoutMarker(t *testing.T) {
	in := []byte(`<root><sp/></root>`)
	out, err := resolveAlternateContent(in)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}
