package opf

import (
	"path"
	"strings"
)

// CoverInfo holds information about the detected cover image.
type CoverInfo struct {
	ManifestID      string
	Href            string
	MediaType       string
	DetectionMethod string // "properties", "meta", "guide", "filename"
}

// DetectCover detects the cover image of the publication using multiple
// methods, tried in priority order:
//  1. properties="cover-image" (EPUB 3.0)
//  2. meta name="cover" (EPUB 2.0)
//  3. guide type="cover" matched to image manifest items
//  4. filename pattern (basename contains "cover", case-insensitive,
//     SVG excluded)
//
// Returns nil if no cover image is found.
func (d *Document) DetectCover() *CoverInfo {
	for _, id := range d.Manifest.IDs() {
		item, _ := d.Manifest.Lookup(id)
		for _, prop := range item.Properties {
			if strings.EqualFold(prop, "cover-image") {
				return coverInfo(item, "properties")
			}
		}
	}

	if d.MetaCoverID != "" {
		if item, ok := d.Manifest.Lookup(d.MetaCoverID); ok {
			return coverInfo(item, "meta")
		}
	}

	for _, ref := range d.Guide {
		if !strings.EqualFold(ref.Type, "cover") {
			continue
		}
		guideHref := stripFragment(ref.Href)
		for _, id := range d.Manifest.IDs() {
			item, _ := d.Manifest.Lookup(id)
			if isImageMediaType(item.MediaType) && item.Href == guideHref {
				return coverInfo(item, "guide")
			}
		}
	}

	for _, id := range d.Manifest.IDs() {
		item, _ := d.Manifest.Lookup(id)
		if !isImageMediaType(item.MediaType) {
			continue
		}
		base := path.Base(item.Href)
		if strings.Contains(strings.ToLower(base), "cover") {
			return coverInfo(item, "filename")
		}
	}

	return nil
}

func coverInfo(item *ManifestRecord, method string) *CoverInfo {
	return &CoverInfo{
		ManifestID:      item.ID,
		Href:            item.Href,
		MediaType:       item.MediaType,
		DetectionMethod: method,
	}
}

func stripFragment(href string) string {
	if idx := strings.Index(href, "#"); idx >= 0 {
		return href[:idx]
	}
	return href
}

// isImageMediaType checks if a media type is a raster image (SVG
// excluded).
func isImageMediaType(mediaType string) bool {
	if mediaType == "image/svg+xml" {
		return false
	}
	return strings.HasPrefix(mediaType, "image/")
}
