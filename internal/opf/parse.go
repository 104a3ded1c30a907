// Package opf binds EPUB package documents (OPF) into a typed document
// model: metadata, manifest, reading order and guide, with spine and
// navigation references resolved against the manifest.
package opf

import (
	"fmt"
	"strings"

	"github.com/beevik/etree"
	"go.uber.org/zap"
)

// defaultTOCID is the manifest id tried for the table-of-contents
// source when the spine carries no toc attribute.
const defaultTOCID = "ncx"

// Options configures a parse.
type Options struct {
	// Provider supplies file contents for deferred content access. May
	// be nil, in which case content access fails with
	// ErrContentUnavailable.
	Provider ResourceProvider

	// Logger receives warnings about ignored elements and unresolved
	// navigation references. Defaults to a no-op logger.
	Logger *zap.Logger
}

// Parse binds a package document from raw XML text.
func Parse(data []byte, opts Options) (*Document, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedXML, err)
	}
	return ParseDocument(doc, opts)
}

// ParseDocument binds a package document from an already parsed XML
// tree. Any section binder failure aborts the bind; no partial
// Document is returned.
func ParseDocument(doc *etree.Document, opts Options) (*Document, error) {
	if doc == nil {
		return nil, fmt.Errorf("%w: nil document", ErrInvalidInput)
	}
	root := doc.Root()
	if root == nil {
		return nil, fmt.Errorf("%w: document has no root element", ErrInvalidInput)
	}
	if root.Tag != "package" {
		return nil, fmt.Errorf("%w: unexpected root element %q", ErrInvalidInput, root.Tag)
	}

	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	b := &binder{
		ns:       buildNSTable(root),
		provider: opts.Provider,
		log:      log,
	}
	return b.bindPackage(root)
}

type binder struct {
	ns       *nsTable
	provider ResourceProvider
	log      *zap.Logger
}

func (b *binder) bindPackage(root *etree.Element) (*Document, error) {
	pkg := &Document{
		Version:  root.SelectAttrValue("version", ""),
		Manifest: newManifest(),
	}

	var metadataEl, manifestEl, spineEl, guideEl *etree.Element
	for _, child := range b.ns.childrenIn(root, NamespaceOPF) {
		switch child.Tag {
		case "metadata":
			metadataEl = child
		case "manifest":
			manifestEl = child
		case "spine":
			spineEl = child
		case "guide":
			guideEl = child
		default:
			b.log.Warn("Unexpected element in package, ignoring", zap.String("tag", child.Tag))
		}
	}

	if metadataEl != nil {
		pkg.Metadata, pkg.MetaCoverID = b.bindMetadata(metadataEl)
	}
	if manifestEl != nil {
		manifest, err := b.bindManifest(manifestEl)
		if err != nil {
			return nil, err
		}
		pkg.Manifest = manifest
	}
	if spineEl != nil {
		spine, navID, err := b.bindSpine(spineEl, pkg.Manifest)
		if err != nil {
			return nil, err
		}
		pkg.Spine = spine
		pkg.Navigation = navID
	}
	if guideEl != nil {
		pkg.Guide = b.bindGuide(guideEl)
	}

	return pkg, nil
}

// bindMetadata collects the Dublin Core children of the metadata
// element. Non-DC extension elements are skipped, except that an EPUB
// 2.0 <meta name="cover"> id is captured for cover detection.
func (b *binder) bindMetadata(el *etree.Element) ([]MetadataRecord, string) {
	var records []MetadataRecord
	for _, child := range b.ns.childrenIn(el, NamespaceDublinCore) {
		records = append(records, MetadataRecord{
			Name:  child.Tag,
			Value: strings.TrimSpace(child.Text()),
			Attrs: b.ns.extractAttributes(child),
		})
	}

	coverID := ""
	for _, child := range b.ns.childrenIn(el, NamespaceOPF) {
		if child.Tag != "meta" {
			continue
		}
		if child.SelectAttrValue("name", "") == "cover" {
			coverID = child.SelectAttrValue("content", "")
			break
		}
	}

	return records, coverID
}

func (b *binder) bindManifest(el *etree.Element) (*Manifest, error) {
	manifest := newManifest()
	for _, child := range b.ns.childrenIn(el, NamespaceOPF) {
		if child.Tag != "item" {
			continue
		}
		rec := &ManifestRecord{
			ID:        child.SelectAttrValue("id", ""),
			Href:      child.SelectAttrValue("href", ""),
			MediaType: child.SelectAttrValue("media-type", ""),
			Fallback:  child.SelectAttrValue("fallback", ""),
		}
		if props := child.SelectAttrValue("properties", ""); props != "" {
			rec.Properties = strings.Fields(props)
		}
		rec.Content = newContent(b.provider, rec.Href)
		if err := manifest.add(rec); err != nil {
			return nil, err
		}
	}
	return manifest, nil
}

// bindSpine binds the reading order and resolves the table-of-contents
// source. Every idref must resolve against the manifest; the toc id is
// resolved best-effort and an unresolved id leaves the navigation
// source unset.
func (b *binder) bindSpine(el *etree.Element, manifest *Manifest) ([]SpineRecord, string, error) {
	var spine []SpineRecord
	for _, child := range b.ns.childrenIn(el, NamespaceOPF) {
		if child.Tag != "itemref" {
			continue
		}
		idref := child.SelectAttrValue("idref", "")
		item, ok := manifest.Lookup(idref)
		if !ok {
			return nil, "", fmt.Errorf("spine itemref %q: %w", idref, ErrDanglingReference)
		}
		spine = append(spine, SpineRecord{
			ID:        item.ID,
			Href:      item.Href,
			MediaType: item.MediaType,
			Order:     len(spine) + 1,
			Linear:    child.SelectAttrValue("linear", "") != "no",
			Content:   newContent(b.provider, item.Href),
		})
	}

	tocID := el.SelectAttrValue("toc", "")
	if tocID == "" {
		tocID = defaultTOCID
	}
	if _, ok := manifest.Lookup(tocID); !ok {
		b.log.Warn("Navigation source not in manifest", zap.String("id", tocID))
		return spine, "", nil
	}
	return spine, tocID, nil
}

func (b *binder) bindGuide(el *etree.Element) []GuideRecord {
	resolved := b.ns.childrenIn(el, NamespaceOPF)
	refs := make([]GuideRecord, 0, len(resolved))
	for _, child := range resolved {
		if child.Tag != "reference" {
			continue
		}
		href := child.SelectAttrValue("href", "")
		refs = append(refs, GuideRecord{
			Title:   child.SelectAttrValue("title", ""),
			Type:    child.SelectAttrValue("type", ""),
			Href:    href,
			Content: newContent(b.provider, href),
		})
	}
	return refs
}
