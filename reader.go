package pptxraster

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"strings"
)

// Reader is the interface for presentation readers.
type Reader interface {
	Read(path string) (*Presentation, error)
	ReadFromReader(r io.ReaderAt, size int64) (*Presentation, error)
}

// ReaderType represents the input format.
type ReaderType string

const (
	ReaderPowerPoint2007 ReaderType = "PowerPoint2007"
)

// NewReader creates a reader for the given format.
func NewReader(format ReaderType) (Reader, error) {
	switch format {
	case ReaderPowerPoint2007:
		return &PPTXReader{}, nil
	default:
		return nil, fmt.Errorf("unsupported reader format: %s", format)
	}
}

// PPTXReader reads PPTX files. store and rels are populated at the start of
// ReadFromReader and scope a part/relationship cache to that one read.
type PPTXReader struct {
	store *partStore
	rels  *RelTable
}

// Read reads a presentation from a file path.
func (r *PPTXReader) Read(path string) (*Presentation, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	return r.ReadFromReader(f, info.Size())
}

// ReadFromReader reads a presentation from an io.ReaderAt.
func (r *PPTXReader) ReadFromReader(reader io.ReaderAt, size int64) (*Presentation, error) {
	zr, err := zip.NewReader(reader, size)
	if err != nil {
		return nil, fmt.Errorf("failed to open zip: %w", err)
	}
	r.store = newPartStore(zr)
	r.rels = newRelTable(r.store)

	pres := &Presentation{
		properties:             NewDocumentProperties(),
		presentationProperties: NewPresentationProperties(),
		slides:                 make([]*Slide, 0),
		slideMasters:           make([]*SlideMaster, 0),
		layout:                 NewDocumentLayout(),
	}

	// Read core properties
	if err := r.readCoreProperties(zr, pres); err != nil {
		// Non-fatal: continue without properties
		_ = err
	}

	// Read presentation.xml to get slide list and layout
	slideRels, err := r.readPresentation(zr, pres)
	if err != nil {
		return nil, err
	}

	// Read presentation relationships
	presRels, err := r.readRelationships(zr, "ppt/_rels/presentation.xml.rels")
	if err != nil {
		return nil, err
	}

	// Read slides
	for _, relID := range slideRels {
		target := ""
		for _, rel := range presRels {
			if rel.ID == relID {
				target = rel.Target
				break
			}
		}
		if target == "" {
			continue
		}

		// Normalize path
		if !strings.HasPrefix(target, "ppt/") {
			target = "ppt/" + target
		}

		slide, err := r.readSlide(zr, target, pres)
		if err != nil {
			return nil, fmt.Errorf("failed to read slide %s: %w", target, err)
		}
		pres.slides = append(pres.slides, slide)
	}

	return pres, nil
}

// readPresentation parses ppt/presentation.xml for the slide ID list (in
// presentation order) and the slide size, then loads the theme color scheme
// via the slide master. It returns the ordered list of slide relationship
// IDs to resolve against presRels.
func (r *PPTXReader) readPresentation(zr *zip.Reader, pres *Presentation) ([]string, error) {
	data, err := readFileFromZip(zr, "ppt/presentation.xml")
	if err != nil {
		return nil, fmt.Errorf("failed to read ppt/presentation.xml: %w", err)
	}

	var slideRels []string
	decoder := xml.NewDecoder(bytes.NewReader(data))
	for {
		token, err := decoder.Token()
		if err != nil {
			break
		}
		switch t := token.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "sldId":
				for _, attr := range t.Attr {
					// r:id uses the relationships namespace; plain "id" is
					// the sequence number and must not be mistaken for it.
					if attr.Name.Local == "id" && attr.Name.Space != "" {
						slideRels = append(slideRels, attr.Value)
					}
				}
			case "sldSz":
				var cx, cy int64
				for _, attr := range t.Attr {
					switch attr.Name.Local {
					case "cx":
						fmt.Sscanf(attr.Value, "%d", &cx)
					case "cy":
						fmt.Sscanf(attr.Value, "%d", &cy)
					}
				}
				if cx > 0 && cy > 0 {
					pres.layout.CX = cx
					pres.layout.CY = cy
					pres.layout.Name = LayoutCustom
				}
			}
		}
	}

	presRels, err := r.readRelationships(zr, "ppt/_rels/presentation.xml.rels")
	if err == nil {
		if colors, resolved, themeErr := r.readTheme(zr, presRels); themeErr == nil && colors != nil {
			pres.themeColors = colors
			pres.theme = resolved
		}
	}

	return slideRels, nil
}

// readCoreProperties parses docProps/core.xml into the presentation's
// document properties. Missing or malformed core properties are non-fatal.
func (r *PPTXReader) readCoreProperties(zr *zip.Reader, pres *Presentation) error {
	data, err := readFileFromZip(zr, "docProps/core.xml")
	if err != nil {
		return err
	}

	var core struct {
		Title          string `xml:"title"`
		Subject        string `xml:"subject"`
		Creator        string `xml:"creator"`
		Keywords       string `xml:"keywords"`
		Description    string `xml:"description"`
		LastModifiedBy string `xml:"lastModifiedBy"`
		Category       string `xml:"category"`
		Revision       string `xml:"revision"`
	}
	if err := xml.Unmarshal(data, &core); err != nil {
		return fmt.Errorf("failed to parse docProps/core.xml: %w", err)
	}

	pres.properties.Title = core.Title
	pres.properties.Subject = core.Subject
	pres.properties.Creator = core.Creator
	pres.properties.Keywords = core.Keywords
	pres.properties.Description = core.Description
	pres.properties.LastModifiedBy = core.LastModifiedBy
	pres.properties.Category = core.Category
	pres.properties.Revision = core.Revision
	return nil
}

// maxZipEntrySize is the maximum allowed size for a single file extracted from a ZIP.
// This prevents zip bomb attacks.
const maxZipEntrySize = 256 << 20 // 256 MB

func readFileFromZip(zr *zip.Reader, name string) ([]byte, error) {
	for _, f := range zr.File {
		if f.Name == name {
			if f.UncompressedSize64 > maxZipEntrySize {
				return nil, fmt.Errorf("file %s exceeds maximum allowed size (%d bytes)", name, maxZipEntrySize)
			}
			rc, err := f.Open()
			if err != nil {
				return nil, err
			}
			defer rc.Close()
			return io.ReadAll(io.LimitReader(rc, int64(maxZipEntrySize)))
		}
	}
	return nil, fmt.Errorf("file not found in zip: %s", name)
}

// --- Relationship reading ---

// xmlRelForRead is one <Relationship> entry from a `_rels/*.rels` part. It
// is the shared return shape for relationship lookups regardless of which
// parser produced it.
type xmlRelForRead struct {
	ID         string
	Type       string
	Target     string
	TargetMode string
}

// readRelationships parses a `_rels/*.rels` part via the partStore-cached
// RelTable (relationships.go), falling back to a one-off xmlquery parse if
// called outside a ReadFromReader pass (store not yet populated). A missing
// .rels part is not an error — most parts in a .pptx archive don't have one.
func (r *PPTXReader) readRelationships(zr *zip.Reader, path string) ([]xmlRelForRead, error) {
	if r.rels != nil {
		rels, err := r.rels.For(path)
		if err != nil {
			return nil, fmt.Errorf("failed to parse relationships %s: %w", path, err)
		}
		return rels, nil
	}

	data, err := readFileFromZip(zr, path)
	if err != nil {
		return nil, nil
	}
	rels, err := parseRelationshipsXML(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse relationships %s: %w", path, err)
	}
	return rels, nil
}
