package opf

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/beevik/etree"
)

// NCX represents the parsed navigation control structure of the
// publication.
type NCX struct {
	UID       string
	Depth     int
	DocTitle  string
	NavPoints []NavPoint
}

// NavPoint represents a single navigation point in the table of
// contents.
type NavPoint struct {
	ID          string
	PlayOrder   int
	Label       string
	ContentPath string // fragment-free path
	Fragment    string // fragment identifier (without #)
	Children    []NavPoint
}

// LoadNCX reads the document's designated navigation source and binds
// its navigation map. It fails when the document has no resolved
// navigation source or when the content cannot be retrieved.
func LoadNCX(d *Document) (*NCX, error) {
	item, ok := d.NavigationItem()
	if !ok {
		return nil, fmt.Errorf("navigation source: %w", ErrItemNotFound)
	}
	data, err := item.Content.Get()
	if err != nil {
		return nil, fmt.Errorf("navigation source %q: %w", item.ID, err)
	}

	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, fmt.Errorf("%w: NCX: %v", ErrMalformedXML, err)
	}
	root := doc.Root()
	if root == nil || root.Tag != "ncx" {
		return nil, fmt.Errorf("%w: not an NCX document", ErrInvalidInput)
	}

	ns := buildNSTable(root)
	ncx := &NCX{}
	for _, child := range ns.childrenIn(root, NamespaceNCX) {
		switch child.Tag {
		case "head":
			bindNCXHead(ns, child, ncx)
		case "docTitle":
			for _, text := range ns.childrenIn(child, NamespaceNCX) {
				if text.Tag == "text" {
					ncx.DocTitle = strings.TrimSpace(text.Text())
				}
			}
		case "navMap":
			for _, np := range ns.childrenIn(child, NamespaceNCX) {
				if np.Tag == "navPoint" {
					ncx.NavPoints = append(ncx.NavPoints, bindNavPoint(ns, np))
				}
			}
		}
	}
	return ncx, nil
}

func bindNCXHead(ns *nsTable, el *etree.Element, ncx *NCX) {
	for _, meta := range ns.childrenIn(el, NamespaceNCX) {
		if meta.Tag != "meta" {
			continue
		}
		content := meta.SelectAttrValue("content", "")
		switch meta.SelectAttrValue("name", "") {
		case "dtb:uid":
			ncx.UID = content
		case "dtb:depth":
			if v, err := strconv.Atoi(content); err == nil {
				ncx.Depth = v
			}
		}
	}
}

func bindNavPoint(ns *nsTable, el *etree.Element) NavPoint {
	np := NavPoint{
		ID: el.SelectAttrValue("id", ""),
	}
	if raw := el.SelectAttrValue("playOrder", ""); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil {
			np.PlayOrder = v
		}
	}
	for _, child := range ns.childrenIn(el, NamespaceNCX) {
		switch child.Tag {
		case "navLabel":
			for _, text := range ns.childrenIn(child, NamespaceNCX) {
				if text.Tag == "text" {
					np.Label = strings.TrimSpace(text.Text())
				}
			}
		case "content":
			np.ContentPath, np.Fragment = splitFragment(child.SelectAttrValue("src", ""))
		case "navPoint":
			np.Children = append(np.Children, bindNavPoint(ns, child))
		}
	}
	return np
}

// splitFragment splits a source path into the path and fragment
// identifier.
func splitFragment(src string) (path, fragment string) {
	if src == "" {
		return "", ""
	}
	parts := strings.SplitN(src, "#", 2)
	path = parts[0]
	if len(parts) == 2 {
		fragment = parts[1]
	}
	return path, fragment
}
