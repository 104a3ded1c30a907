package opf

import (
	"testing"

	"github.com/beevik/etree"
)

func mustParseXML(t *testing.T, s string) *etree.Document {
	t.Helper()
	doc := etree.NewDocument()
	if err := doc.ReadFromString(s); err != nil {
		t.Fatalf("failed to parse fixture: %v", err)
	}
	return doc
}

func TestNamespaceURI(t *testing.T) {
	if got := NamespaceOPF.URI(); got != "http://www.idpf.org/2007/opf" {
		t.Errorf("NamespaceOPF.URI() = %q", got)
	}
	if got := NamespaceDublinCore.URI(); got != "http://purl.org/dc/elements/1.1/" {
		t.Errorf("NamespaceDublinCore.URI() = %q", got)
	}
}

func TestBuildNSTable(t *testing.T) {
	doc := mustParseXML(t, `<root xmlns="http://www.idpf.org/2007/opf">
  <inner xmlns:dc="http://purl.org/dc/elements/1.1/" xmlns:opf="http://www.idpf.org/2007/opf"/>
</root>`)

	table := buildNSTable(doc.Root())

	if !table.hasURI("http://www.idpf.org/2007/opf") {
		t.Error("OPF URI not recorded")
	}
	if !table.hasURI("http://purl.org/dc/elements/1.1/") {
		t.Error("DC URI not recorded from nested declaration")
	}
	if !table.hasPrefix("dc") || !table.hasPrefix("opf") || !table.hasPrefix("") {
		t.Error("declared prefixes not recorded")
	}
	if table.hasPrefix("xlink") {
		t.Error("undeclared prefix reported as present")
	}
}

func TestChildrenIn_PrefixedNamespace(t *testing.T) {
	doc := mustParseXML(t, `<metadata xmlns:dc="http://purl.org/dc/elements/1.1/">
  <dc:title>Book</dc:title>
  <dc:creator>Author</dc:creator>
  <meta name="cover" content="img"/>
</metadata>`)

	table := buildNSTable(doc.Root())
	children := table.childrenIn(doc.Root(), NamespaceDublinCore)

	if len(children) != 2 {
		t.Fatalf("children count = %d, want 2", len(children))
	}
	if children[0].Tag != "title" || children[1].Tag != "creator" {
		t.Errorf("children = %q, %q; want title, creator", children[0].Tag, children[1].Tag)
	}
}

func TestChildrenIn_DefaultNamespace(t *testing.T) {
	// The OPF namespace is the unprefixed default, while the same URI is
	// also bound to the opf prefix for attribute use.
	doc := mustParseXML(t, `<package xmlns="http://www.idpf.org/2007/opf" xmlns:opf="http://www.idpf.org/2007/opf" xmlns:dc="http://purl.org/dc/elements/1.1/">
  <manifest/>
  <spine/>
  <dc:title>out of place</dc:title>
</package>`)

	table := buildNSTable(doc.Root())
	children := table.childrenIn(doc.Root(), NamespaceOPF)

	if len(children) != 2 {
		t.Fatalf("children count = %d, want 2", len(children))
	}
	if children[0].Tag != "manifest" || children[1].Tag != "spine" {
		t.Errorf("children = %q, %q; want manifest, spine", children[0].Tag, children[1].Tag)
	}
}

func TestChildrenIn_UnboundNamespaceFallsBack(t *testing.T) {
	// Without a binding for the target namespace the element is treated
	// as already being in it.
	doc := mustParseXML(t, `<manifest>
  <item id="a"/>
  <item id="b"/>
</manifest>`)

	table := buildNSTable(doc.Root())
	children := table.childrenIn(doc.Root(), NamespaceOPF)

	if len(children) != 2 {
		t.Fatalf("children count = %d, want 2", len(children))
	}
}

func TestExtractAttributes(t *testing.T) {
	doc := mustParseXML(t, `<root xmlns:dc="http://purl.org/dc/elements/1.1/">
  <el id="x" dc:file-as="Y" xmlns:local="urn:local" local:a="b"/>
</root>`)

	table := buildNSTable(doc.Root())
	el := doc.Root().SelectElement("el")
	if el == nil {
		t.Fatal("fixture element not found")
	}

	got := table.extractAttributes(el)
	want := map[string]string{
		"id":         "x",
		"dc:file-as": "Y",
		"local:a":    "b",
	}
	if len(got) != len(want) {
		t.Fatalf("attrs = %v, want %v", got, want)
	}
	for k, v := range want {
		if got[k] != v {
			t.Errorf("attrs[%q] = %q, want %q", k, got[k], v)
		}
	}
}

func TestExtractAttributes_SkipsXMLNSDeclarations(t *testing.T) {
	doc := mustParseXML(t, `<root xmlns="http://www.idpf.org/2007/opf" xmlns:dc="http://purl.org/dc/elements/1.1/" version="2.0"/>`)

	table := buildNSTable(doc.Root())
	got := table.extractAttributes(doc.Root())

	if len(got) != 1 || got["version"] != "2.0" {
		t.Errorf("attrs = %v, want only version=2.0", got)
	}
}
