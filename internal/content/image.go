package content

import (
	"bytes"
	"fmt"

	"github.com/disintegration/imaging"
)

const thumbnailJPEGQuality = 85

// Thumbnail downscales raster image data to at most maxWidth pixels
// wide, preserving aspect ratio, and re-encodes it as JPEG. Images
// already within the limit are re-encoded without resizing. A
// maxWidth of zero or less disables resizing.
func Thumbnail(data []byte, maxWidth int) ([]byte, error) {
	src, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	if maxWidth > 0 && src.Bounds().Dx() > maxWidth {
		src = imaging.Resize(src, maxWidth, 0, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, src, imaging.JPEG, imaging.JPEGQuality(thumbnailJPEGQuality)); err != nil {
		return nil, fmt.Errorf("failed to encode thumbnail: %w", err)
	}
	return buf.Bytes(), nil
}
