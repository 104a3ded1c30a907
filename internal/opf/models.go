package opf

import "fmt"

// Document is the bound package document.
type Document struct {
	Version  string
	Metadata []MetadataRecord
	Manifest *Manifest
	Spine    []SpineRecord

	// Guide is nil when the package document has no guide element; a
	// present but empty guide yields an empty non-nil slice.
	Guide []GuideRecord

	// Navigation is the manifest id of the item designated as the
	// table-of-contents source. Empty when the designated id did not
	// resolve against the manifest.
	Navigation string

	// MetaCoverID is the manifest id named by an EPUB 2.0
	// <meta name="cover"> element, if any.
	MetaCoverID string
}

// NavigationItem returns the manifest record designated as the
// table-of-contents source.
func (d *Document) NavigationItem() (*ManifestRecord, bool) {
	if d.Navigation == "" {
		return nil, false
	}
	return d.Manifest.Lookup(d.Navigation)
}

// MetadataRecord is a single Dublin Core metadata element.
type MetadataRecord struct {
	Name  string // local element name, e.g. "title"
	Value string // trimmed text content
	Attrs map[string]string
}

// ManifestRecord is a single resource declared in the manifest.
type ManifestRecord struct {
	ID         string
	Href       string
	MediaType  string
	Fallback   string // manifest id of the fallback item, if declared
	Properties []string
	Content    *Content
}

// SpineRecord is a single entry in the reading order. ID, Href and
// MediaType are copied from the referenced manifest record; spine
// entries have no content identity of their own.
type SpineRecord struct {
	ID        string
	Href      string
	MediaType string
	Order     int // 1-based position in document order
	Linear    bool
	Content   *Content
}

// GuideRecord is a single guide reference.
type GuideRecord struct {
	Title   string
	Type    string
	Href    string
	Content *Content
}

// Manifest maps item ids to records, preserving document order.
type Manifest struct {
	items map[string]*ManifestRecord
	order []string
}

func newManifest() *Manifest {
	return &Manifest{items: make(map[string]*ManifestRecord)}
}

func (m *Manifest) add(rec *ManifestRecord) error {
	if _, ok := m.items[rec.ID]; ok {
		return fmt.Errorf("manifest item %q: %w", rec.ID, ErrDuplicateID)
	}
	m.items[rec.ID] = rec
	m.order = append(m.order, rec.ID)
	return nil
}

// Get returns the record with the given id.
func (m *Manifest) Get(id string) (*ManifestRecord, error) {
	rec, ok := m.items[id]
	if !ok {
		return nil, fmt.Errorf("%q: %w", id, ErrItemNotFound)
	}
	return rec, nil
}

// Lookup returns the record with the given id, reporting presence.
func (m *Manifest) Lookup(id string) (*ManifestRecord, bool) {
	rec, ok := m.items[id]
	return rec, ok
}

// IDs returns the item ids in document order.
func (m *Manifest) IDs() []string {
	return m.order
}

// Len returns the number of manifest items.
func (m *Manifest) Len() int {
	return len(m.items)
}
