// Package content inspects publication resources: XHTML reference
// scanning and cover image processing.
package content

import (
	"bytes"
	"fmt"
	"path"

	"github.com/PuerkitoBio/goquery"
)

// Resource lists the references found in an XHTML content file.
type Resource struct {
	Href        string   // path of the scanned file
	Stylesheets []string // referenced CSS paths, resolved
	Images      []string // referenced image paths, resolved
}

// Scan parses an XHTML content file and collects its stylesheet and
// image references, resolved against the file's own directory.
func Scan(href string, data []byte) (*Resource, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse XHTML: %w", err)
	}

	res := &Resource{
		Href:        href,
		Stylesheets: []string{},
		Images:      []string{},
	}
	baseDir := path.Dir(href)

	doc.Find("link[rel='stylesheet']").Each(func(i int, s *goquery.Selection) {
		if ref, exists := s.Attr("href"); exists {
			res.Stylesheets = append(res.Stylesheets, resolveRef(baseDir, ref))
		}
	})
	doc.Find("img").Each(func(i int, s *goquery.Selection) {
		if src, exists := s.Attr("src"); exists {
			res.Images = append(res.Images, resolveRef(baseDir, src))
		}
	})

	return res, nil
}

// resolveRef resolves a relative reference against a base directory,
// collapsing . and .. segments. Publication paths use forward slashes.
func resolveRef(baseDir, ref string) string {
	if baseDir == "" || baseDir == "." {
		return path.Clean(ref)
	}
	return path.Clean(path.Join(baseDir, ref))
}
