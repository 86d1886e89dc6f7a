package pptxraster

import (
	"bytes"

	"github.com/antchfx/xmlquery"
)

// parseRelationshipsXML parses a `_rels/*.rels` part into the relationship
// list, via xmlquery rather than the encoding/xml struct-tag unmarshalling
// the rest of the reader still uses for strongly-typed parts. A .rels part
// is a flat bag of `<Relationship>` elements with no nesting and no
// document-order dependency, which is exactly what xmlquery.Find's
// attribute-driven lookup is good at. This function parses data afresh on
// every call; RelTable.For instead reads the partStore's cached tree, the
// same cache theme/master lookups use.
func parseRelationshipsXML(data []byte) ([]xmlRelForRead, error) {
	doc, err := xmlquery.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, &XmlParseError{Part: "relationships", Err: err}
	}
	return relationshipsFromNode(doc), nil
}

func relationshipsFromNode(doc *xmlquery.Node) []xmlRelForRead {
	nodes := xmlquery.Find(doc, "//Relationship")
	rels := make([]xmlRelForRead, 0, len(nodes))
	for _, n := range nodes {
		rels = append(rels, xmlRelForRead{
			ID:         n.SelectAttr("Id"),
			Type:       n.SelectAttr("Type"),
			Target:     n.SelectAttr("Target"),
			TargetMode: n.SelectAttr("TargetMode"),
		})
	}
	return rels
}

// RelTable is a per-archive cache of parsed relationship lists, keyed by the
// .rels part path. Presentation, slide, layout, and master parts each carry
// their own .rels file; resolving a theme walks up to three of these in
// sequence (presentation -> slide master -> theme), so caching avoids
// re-parsing a master's relationships once per slide that uses it.
type RelTable struct {
	store *partStore
}

func newRelTable(store *partStore) *RelTable {
	return &RelTable{store: store}
}

// For returns the relationships declared by the .rels part at relsPath. A
// missing .rels part is not an error — most parts don't have one — and
// yields an empty slice.
func (t *RelTable) For(relsPath string) ([]xmlRelForRead, error) {
	if !t.store.hasPart(relsPath) {
		return nil, nil
	}
	doc, err := t.store.doc(relsPath)
	if err != nil {
		return nil, err
	}
	return relationshipsFromNode(doc), nil
}

// ByType returns the Target of the first relationship of the given type
// declared by relsPath, or "" if none matches.
func (t *RelTable) ByType(relsPath, relType string) string {
	rels, _ := t.For(relsPath)
	return findRelTarget(rels, relType)
}

// ByID returns the Target of the relationship with the given r:id.
func (t *RelTable) ByID(relsPath, id string) string {
	rels, _ := t.For(relsPath)
	for _, rel := range rels {
		if rel.ID == id {
			return rel.Target
		}
	}
	return ""
}
