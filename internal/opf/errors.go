package opf

import "errors"

var (
	// ErrInvalidInput reports input that is not a package document tree.
	ErrInvalidInput = errors.New("invalid package document input")
	// ErrMalformedXML reports input rejected by the XML parser.
	ErrMalformedXML = errors.New("malformed XML")
	// ErrDanglingReference reports a spine itemref whose idref is not in
	// the manifest.
	ErrDanglingReference = errors.New("spine references missing manifest item")
	// ErrDuplicateID reports a manifest item id collision.
	ErrDuplicateID = errors.New("duplicate manifest item id")
	// ErrItemNotFound reports a manifest lookup miss.
	ErrItemNotFound = errors.New("manifest item not found")
	// ErrContentUnavailable reports content access without a resource
	// provider, or a provider failure.
	ErrContentUnavailable = errors.New("content unavailable")
)
