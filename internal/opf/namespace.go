package opf

import (
	"github.com/beevik/etree"
)

// Namespace identifies a well-known XML namespace consumed by the binder.
type Namespace int

const (
	// NamespaceOPF is the package document namespace.
	NamespaceOPF Namespace = iota
	// NamespaceDublinCore is the Dublin Core metadata namespace.
	NamespaceDublinCore
	// NamespaceNCX is the NCX navigation document namespace.
	NamespaceNCX
)

const (
	opfNamespaceURI = "http://www.idpf.org/2007/opf"
	dcNamespaceURI  = "http://purl.org/dc/elements/1.1/"
	ncxNamespaceURI = "http://www.daisy.org/z3986/2005/ncx/"
)

// URI returns the namespace URI.
func (n Namespace) URI() string {
	switch n {
	case NamespaceOPF:
		return opfNamespaceURI
	case NamespaceDublinCore:
		return dcNamespaceURI
	case NamespaceNCX:
		return ncxNamespaceURI
	}
	return ""
}

// nsBinding is a single xmlns declaration. An empty prefix records the
// default namespace.
type nsBinding struct {
	prefix string
	uri    string
}

// nsTable holds the namespace declarations of a document, in
// declaration order. It is built once per parse; the first declaration
// of a prefix wins.
type nsTable struct {
	bindings []nsBinding
	prefixes map[string]bool
	uris     map[string]bool
}

// buildNSTable collects every xmlns declaration in the subtree rooted
// at el.
func buildNSTable(el *etree.Element) *nsTable {
	t := &nsTable{
		prefixes: make(map[string]bool),
		uris:     make(map[string]bool),
	}
	t.collect(el)
	return t
}

func (t *nsTable) collect(el *etree.Element) {
	for _, attr := range el.Attr {
		switch {
		case attr.Space == "xmlns":
			t.add(attr.Key, attr.Value)
		case attr.Space == "" && attr.Key == "xmlns":
			t.add("", attr.Value)
		}
	}
	for _, child := range el.ChildElements() {
		t.collect(child)
	}
}

func (t *nsTable) add(prefix, uri string) {
	if t.prefixes[prefix] {
		return
	}
	t.prefixes[prefix] = true
	t.uris[uri] = true
	t.bindings = append(t.bindings, nsBinding{prefix: prefix, uri: uri})
}

// hasPrefix reports whether prefix is declared anywhere in the document.
func (t *nsTable) hasPrefix(prefix string) bool {
	return t.prefixes[prefix]
}

// hasURI reports whether uri is bound to any prefix, including the
// default namespace, anywhere in the document.
func (t *nsTable) hasURI(uri string) bool {
	return t.uris[uri]
}

// childrenIn returns the direct child elements of el that belong to ns.
// When the namespace URI is not bound anywhere in the document, el is
// treated as already being in the target namespace and all direct
// children are returned; package documents commonly omit an explicit
// declaration for the OPF namespace. This is not a failure.
func (t *nsTable) childrenIn(el *etree.Element, ns Namespace) []*etree.Element {
	uri := ns.URI()
	if !t.hasURI(uri) {
		return el.ChildElements()
	}
	var children []*etree.Element
	for _, child := range el.ChildElements() {
		if child.NamespaceURI() == uri {
			children = append(children, child)
		}
	}
	return children
}

// extractAttributes flattens el's attributes into a single map.
// Unprefixed attributes are keyed by their local name; attributes whose
// prefix is declared in the document are keyed "prefix:local". xmlns
// declarations and attributes with undeclared prefixes are skipped.
func (t *nsTable) extractAttributes(el *etree.Element) map[string]string {
	attrs := make(map[string]string)
	for _, attr := range el.Attr {
		switch {
		case attr.Space == "xmlns":
			continue
		case attr.Space == "" && attr.Key == "xmlns":
			continue
		case attr.Space == "":
			attrs[attr.Key] = attr.Value
		case t.hasPrefix(attr.Space):
			attrs[attr.Space+":"+attr.Key] = attr.Value
		}
	}
	return attrs
}
