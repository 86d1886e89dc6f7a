package pptxraster

import (
	"bytes"
	"encoding/xml"
)

// alternateContentAllowlist is the set of mc:Choice Requires namespace URIs
// this renderer understands. The renderer supports only baseline
// DrawingML/PresentationML (no 2010+ drawing extensions, no chart
// extensions), so the allowlist is empty: every mc:AlternateContent resolves
// to its mc:Fallback branch. It is a map, not a bool constant, so a future
// extension (e.g. a14 ink support) has a concrete place to register.
var alternateContentAllowlist = map[string]bool{}

// resolveAlternateContent rewrites mc:AlternateContent wrappers out of a
// part's raw XML before it reaches the streaming slide/layout/master
// parsers: each wrapper is replaced by the contents of whichever mc:Choice
// has an allowlisted Requires attribute, or by mc:Fallback's contents if
// none match. This keeps parseSlideXML and friends free of AlternateContent
// awareness — they only ever see a resolved, flat element tree, same as the
// teacher's parser already assumes.
func resolveAlternateContent(data []byte) ([]byte, error) {
	if !bytes.Contains(data, []byte("AlternateContent")) {
		return data, nil
	}

	decoder := xml.NewDecoder(bytes.NewReader(data))
	var buf bytes.Buffer
	enc := xml.NewEncoder(&buf)

	type frame struct {
		skip     bool // this element and its children are dropped
		resolved bool // an allowlisted Choice was already kept for the enclosing AlternateContent
	}
	var stack []frame

	skipping := func() bool {
		for i := len(stack) - 1; i >= 0; i-- {
			if stack[i].skip {
				return true
			}
		}
		return false
	}

	for {
		tok, err := decoder.Token()
		if err != nil {
			break
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "AlternateContent":
				stack = append(stack, frame{})
				continue
			case "Choice":
				requires := ""
				for _, a := range t.Attr {
					if a.Name.Local == "Requires" {
						requires = a.Value
					}
				}
				parent := len(stack) - 1
				alreadyResolved := parent >= 0 && stack[parent].resolved
				keep := alternateContentAllowlist[requires] && !alreadyResolved
				if keep && parent >= 0 {
					stack[parent].resolved = true
				}
				stack = append(stack, frame{skip: !keep})
				continue
			case "Fallback":
				parent := len(stack) - 1
				keep := parent < 0 || !stack[parent].resolved
				stack = append(stack, frame{skip: !keep})
				continue
			}
			if !skipping() {
				if err := enc.EncodeToken(t.Copy()); err != nil {
					return nil, err
				}
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "AlternateContent", "Choice", "Fallback":
				if len(stack) > 0 {
					stack = stack[:len(stack)-1]
				}
				continue
			}
			if !skipping() {
				if err := enc.EncodeToken(t); err != nil {
					return nil, err
				}
			}
		default:
			if !skipping() {
				if err := enc.EncodeToken(xml.CopyToken(tok)); err != nil {
					return nil, err
				}
			}
		}
	}

	if err := enc.Flush(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
