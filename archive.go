package pptxraster

import (
	"archive/zip"
	"bytes"
	"sync"

	"github.com/antchfx/xmlquery"
)

// partStore caches decompressed parts and their parsed xmlquery trees for a
// single archive read, so the relationship walk that resolves a theme
// (presentation -> slide master -> theme, each hop needing its own .rels
// part) never re-inflates or re-parses the same zip entry twice. One
// partStore is scoped to one ReadFromReader call.
type partStore struct {
	zr *zip.Reader

	mu   sync.RWMutex
	raw  map[string][]byte
	docs map[string]*xmlquery.Node
}

func newPartStore(zr *zip.Reader) *partStore {
	return &partStore{
		zr:   zr,
		raw:  make(map[string][]byte),
		docs: make(map[string]*xmlquery.Node),
	}
}

// part returns the raw bytes of a named part (e.g. "ppt/presentation.xml"),
// reading it from the zip archive at most once.
func (s *partStore) part(name string) ([]byte, error) {
	s.mu.RLock()
	b, ok := s.raw[name]
	s.mu.RUnlock()
	if ok {
		return b, nil
	}

	b, err := readFileFromZip(s.zr, name)
	if err != nil {
		return nil, &ArchiveError{Part: name, Err: err}
	}
	s.mu.Lock()
	s.raw[name] = b
	s.mu.Unlock()
	return b, nil
}

// doc returns the xmlquery-parsed tree of a named XML part, parsing it at
// most once per store.
func (s *partStore) doc(name string) (*xmlquery.Node, error) {
	s.mu.RLock()
	d, ok := s.docs[name]
	s.mu.RUnlock()
	if ok {
		return d, nil
	}

	data, err := s.part(name)
	if err != nil {
		return nil, err
	}
	doc, err := xmlquery.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, &XmlParseError{Part: name, Err: err}
	}
	s.mu.Lock()
	s.docs[name] = doc
	s.mu.Unlock()
	return doc, nil
}

// hasPart reports whether a part exists in the archive without caching a
// failed lookup (used for the optional-part probes sprinkled through the
// relationship walk, e.g. a slide master with no theme).
func (s *partStore) hasPart(name string) bool {
	for _, f := range s.zr.File {
		if f.Name == name {
			return true
		}
	}
	return false
}
