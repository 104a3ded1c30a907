// Package container reads EPUB zip containers: it validates the
// mimetype file, discovers the package document through
// META-INF/container.xml and serves file contents by path.
package container

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/beevik/etree"
)

const (
	mimetypeName  = "mimetype"
	mimetypeValue = "application/epub+zip"
	containerName = "META-INF/container.xml"

	// packageMediaType is the rootfile media type naming the package
	// document.
	packageMediaType = "application/oebps-package+xml"
)

var (
	ErrInvalidMimetype    = errors.New("invalid mimetype: must be 'application/epub+zip'")
	ErrMimetypeCompressed = errors.New("mimetype must not be compressed")
	ErrMimetypeNotFound   = errors.New("mimetype file not found")
	ErrContainerNotFound  = errors.New("META-INF/container.xml not found")
	ErrRootfileNotFound   = errors.New("package document path not found in container.xml")
	ErrFileNotFound       = errors.New("file not found in container")
)

// Reader provides access to the files of an EPUB container.
type Reader struct {
	zipReader   *zip.ReadCloser
	files       map[string]*zip.File
	packagePath string
}

// Open opens an EPUB container and validates its structure.
func Open(name string) (*Reader, error) {
	zr, err := zip.OpenReader(name)
	if err != nil {
		return nil, fmt.Errorf("failed to open EPUB: %w", err)
	}

	r := &Reader{
		zipReader: zr,
		files:     make(map[string]*zip.File),
	}
	for _, f := range zr.File {
		r.files[normalizePath(f.Name)] = f
	}

	if err := r.validateMimetype(); err != nil {
		zr.Close()
		return nil, err
	}
	if err := r.findPackagePath(); err != nil {
		zr.Close()
		return nil, err
	}

	return r, nil
}

// Close closes the underlying zip archive.
func (r *Reader) Close() error {
	return r.zipReader.Close()
}

// PackagePath returns the container-relative path of the package
// document.
func (r *Reader) PackagePath() string {
	return r.packagePath
}

// Files returns the normalized paths of all files in the container.
func (r *Reader) Files() []string {
	names := make([]string, 0, len(r.files))
	for name := range r.files {
		names = append(names, name)
	}
	return names
}

// ReadFile reads the contents of a file from the container.
func (r *Reader) ReadFile(name string) ([]byte, error) {
	name = normalizePath(name)
	f, ok := r.files[name]
	if !ok {
		return nil, fmt.Errorf("%q: %w", name, ErrFileNotFound)
	}

	rc, err := f.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open file %s: %w", name, err)
	}
	defer rc.Close()

	return io.ReadAll(rc)
}

// Rooted returns a view of the container that resolves paths relative
// to dir. The package binder sees hrefs relative to the package
// document, while the container stores paths relative to the zip root;
// a rooted view bridges the two.
func (r *Reader) Rooted(dir string) *RootedReader {
	return &RootedReader{reader: r, dir: dir}
}

// PackageRoot returns a view rooted at the package document directory.
func (r *Reader) PackageRoot() *RootedReader {
	dir := path.Dir(r.packagePath)
	if dir == "." {
		dir = ""
	}
	return r.Rooted(dir)
}

// RootedReader resolves relative paths against a base directory before
// reading from the container.
type RootedReader struct {
	reader *Reader
	dir    string
}

// ReadFile reads a file by a path relative to the base directory.
func (rr *RootedReader) ReadFile(name string) ([]byte, error) {
	return rr.reader.ReadFile(resolvePath(rr.dir, name))
}

// validateMimetype checks that the mimetype file exists, is stored
// uncompressed and carries the EPUB media type.
func (r *Reader) validateMimetype() error {
	f, ok := r.files[mimetypeName]
	if !ok {
		return ErrMimetypeNotFound
	}
	if f.Method != zip.Store {
		return ErrMimetypeCompressed
	}

	content, err := r.ReadFile(mimetypeName)
	if err != nil {
		return fmt.Errorf("failed to read mimetype: %w", err)
	}
	if string(content) != mimetypeValue {
		return ErrInvalidMimetype
	}
	return nil
}

// findPackagePath parses container.xml and extracts the package
// document path from its rootfile entries.
func (r *Reader) findPackagePath() error {
	content, err := r.ReadFile(containerName)
	if err != nil {
		return ErrContainerNotFound
	}

	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(content); err != nil {
		return fmt.Errorf("failed to parse container.xml: %w", err)
	}

	first := ""
	for _, rf := range doc.FindElements("//rootfile") {
		fullPath := rf.SelectAttrValue("full-path", "")
		if fullPath == "" {
			continue
		}
		if first == "" {
			first = fullPath
		}
		mediaType := rf.SelectAttrValue("media-type", "")
		if mediaType == packageMediaType || mediaType == "" {
			r.packagePath = normalizePath(fullPath)
			return nil
		}
	}

	// If no media-type match, use the first rootfile.
	if first != "" {
		r.packagePath = normalizePath(first)
		return nil
	}
	return ErrRootfileNotFound
}

// normalizePath normalizes container paths (removes ./ prefix).
func normalizePath(p string) string {
	return strings.TrimPrefix(p, "./")
}

// resolvePath resolves a relative path against a base directory,
// collapsing . and .. segments. Container paths always use forward
// slashes.
func resolvePath(baseDir, rel string) string {
	if baseDir == "" {
		return path.Clean(rel)
	}
	return path.Clean(path.Join(baseDir, rel))
}
