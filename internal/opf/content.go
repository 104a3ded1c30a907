package opf

import (
	"fmt"
	"sync"
)

// ResourceProvider supplies raw file bytes from the publication
// container. Paths are hrefs as declared in the package document.
type ResourceProvider interface {
	ReadFile(path string) ([]byte, error)
}

// Content lazily retrieves a record's raw bytes from the resource
// provider. The first Get reads from the provider; the result, success
// or failure, is memoized for all subsequent calls.
type Content struct {
	provider ResourceProvider
	href     string

	once sync.Once
	data []byte
	err  error
}

func newContent(provider ResourceProvider, href string) *Content {
	return &Content{provider: provider, href: href}
}

// Href returns the path this accessor reads from.
func (c *Content) Href() string {
	return c.href
}

// Get returns the raw content bytes. Without a configured provider, or
// when the provider fails, the error satisfies
// errors.Is(err, ErrContentUnavailable).
func (c *Content) Get() ([]byte, error) {
	c.once.Do(func() {
		if c.provider == nil {
			c.err = fmt.Errorf("%w: no resource provider for %q", ErrContentUnavailable, c.href)
			return
		}
		data, err := c.provider.ReadFile(c.href)
		if err != nil {
			c.err = fmt.Errorf("%w: %q: %v", ErrContentUnavailable, c.href, err)
			return
		}
		c.data = data
	})
	return c.data, c.err
}
