package page

import (
	"sort"
	"time"

	"git.home.luguber.info/inful/sitebuilder/internal/foundation/errors"
)

// Context keys attached to collision errors.
const (
	ContextExistingProducer = "existing_producer"
	ContextNewProducer      = "new_producer"
)

type entry struct {
	page     Page
	producer string
}

// Collection is an append-only set of pages keyed by output path.
type Collection struct {
	entries []entry
	index   map[string]int
	frozen  bool
}

// NewCollection returns an empty collection.
func NewCollection() *Collection {
	return &Collection{index: make(map[string]int)}
}

// Add appends p, recording producer as its origin. The page path is stored
// in its canonical form. A path that is already present yields a
// PageCollisionError naming the path and both producers.
func (c *Collection) Add(producer string, p Page) error {
	if c.frozen {
		return errors.InternalError("collection is frozen").WithPath(p.Path).Build()
	}
	p.Path = CleanPath(p.Path)
	if i, ok := c.index[p.Path]; ok {
		return errors.PageCollisionError("two pages share an output path").
			WithPath(p.Path).
			WithContext(ContextExistingProducer, c.entries[i].producer).
			WithContext(ContextNewProducer, producer).
			Build()
	}
	c.index[p.Path] = len(c.entries)
	c.entries = append(c.entries, entry{page: p, producer: producer})
	return nil
}

// AddAll adds pages in order, stopping at the first collision.
func (c *Collection) AddAll(producer string, pages []Page) error {
	for _, p := range pages {
		if err := c.Add(producer, p); err != nil {
			return err
		}
	}
	return nil
}

// Len returns the number of pages.
func (c *Collection) Len() int { return len(c.entries) }

// Has reports whether a page exists at path.
func (c *Collection) Has(path string) bool {
	_, ok := c.index[CleanPath(path)]
	return ok
}

// Get returns the page at path.
func (c *Collection) Get(path string) (Page, bool) {
	i, ok := c.index[CleanPath(path)]
	if !ok {
		return Page{}, false
	}
	return c.entries[i].page.clone(), true
}

// Pages returns a copy of the pages in insertion order.
func (c *Collection) Pages() []Page {
	out := make([]Page, len(c.entries))
	for i, e := range c.entries {
		out[i] = e.page.clone()
	}
	return out
}

// Producer returns the name of whatever added the page at path.
func (c *Collection) Producer(path string) string {
	if i, ok := c.index[CleanPath(path)]; ok {
		return c.entries[i].producer
	}
	return ""
}

// Freeze seals the collection and returns its snapshot. Later calls to Add
// fail; Freeze itself may be called again and returns an equal snapshot.
// The snapshot owns copies of the page contents.
func (c *Collection) Freeze() *Site {
	c.frozen = true
	return newSite(c.Pages())
}

// View is the read-only window content generators get onto the pages
// produced so far.
type View interface {
	Len() int
	Has(path string) bool
	Get(path string) (Page, bool)
	Pages() []Page
}

var _ View = (*Collection)(nil)

// Site is the frozen set of first-phase pages handed to one-time generators.
// It can only be obtained from Collection.Freeze. Every accessor returns
// copies, so callers cannot change the snapshot.
type Site struct {
	pages  []Page
	byPath map[string]int
}

func newSite(pages []Page) *Site {
	s := &Site{pages: pages, byPath: make(map[string]int, len(pages))}
	for i, p := range pages {
		s.byPath[p.Path] = i
	}
	return s
}

// Len returns the number of pages.
func (s *Site) Len() int { return len(s.pages) }

// Has reports whether a page exists at path.
func (s *Site) Has(path string) bool {
	_, ok := s.byPath[CleanPath(path)]
	return ok
}

// Get returns the page at path.
func (s *Site) Get(path string) (Page, bool) {
	i, ok := s.byPath[CleanPath(path)]
	if !ok {
		return Page{}, false
	}
	return s.pages[i].clone(), true
}

// Pages returns a copy of every page in insertion order.
func (s *Site) Pages() []Page {
	out := make([]Page, len(s.pages))
	for i, p := range s.pages {
		out[i] = p.clone()
	}
	return out
}

// ByKind returns the pages of kind k in insertion order.
func (s *Site) ByKind(k Kind) []Page {
	var out []Page
	for _, p := range s.pages {
		if p.Kind() == k {
			out = append(out, p.clone())
		}
	}
	return out
}

// Posts returns the post pages, newest first. Posts sharing a date keep
// path order.
func (s *Site) Posts() []Page {
	posts := s.ByKind(KindPost)
	sort.SliceStable(posts, func(i, j int) bool {
		di, dj := postDate(posts[i]), postDate(posts[j])
		if di.Equal(dj) {
			return posts[i].Path < posts[j].Path
		}
		return di.After(dj)
	})
	return posts
}

func postDate(p Page) time.Time {
	if m, ok := p.Metadata.(PostMeta); ok {
		return m.Date
	}
	return time.Time{}
}
