// Package page holds generated output pages and the collections that accumulate them.
package page

import (
	"bytes"
	"path"
	"path/filepath"
	"slices"
	"strings"
	"time"
)

// Kind classifies a page by what produced it.
type Kind string

const (
	KindPost     Kind = "post"
	KindDocument Kind = "document"
	KindHomepage Kind = "homepage"
	KindTag      Kind = "tag"
	KindFeed     Kind = "feed"
	KindSitemap  Kind = "sitemap"
)

// Kinds lists every page kind in reporting order.
var Kinds = []Kind{KindPost, KindDocument, KindHomepage, KindTag, KindFeed, KindSitemap}

// Metadata describes what a page represents. PostMeta, DocumentMeta and
// AggregateMeta are the only implementations.
type Metadata interface {
	Kind() Kind
	PageTitle() string
	isMetadata()
}

// PostMeta accompanies a page rendered from a post.
type PostMeta struct {
	Title       string
	Date        time.Time
	Tags        []string
	// Summary is the plain text of the first paragraph.
	Summary     string
	Source      string
	Fingerprint string
}

func (PostMeta) Kind() Kind          { return KindPost }
func (m PostMeta) PageTitle() string { return m.Title }
func (PostMeta) isMetadata()         {}

// DocumentMeta accompanies a page rendered from a standalone HTML document.
type DocumentMeta struct {
	Title        string
	LastModified time.Time
	Summary      string
	Source       string
	Fingerprint  string
}

func (DocumentMeta) Kind() Kind          { return KindDocument }
func (m DocumentMeta) PageTitle() string { return m.Title }
func (DocumentMeta) isMetadata()         {}

// AggregateMeta accompanies a page built from the whole site (homepage, tag
// index, feed, sitemap).
type AggregateMeta struct {
	Of    Kind
	Title string
	// Entries is the number of pages the aggregate lists.
	Entries int
}

func (m AggregateMeta) Kind() Kind        { return m.Of }
func (m AggregateMeta) PageTitle() string { return m.Title }
func (AggregateMeta) isMetadata()         {}

// Page is one output file.
type Page struct {
	// Path is slash-separated and relative to the output root.
	Path     string
	Contents []byte
	Metadata Metadata
}

// Kind returns the page kind from its metadata.
func (p Page) Kind() Kind {
	if p.Metadata == nil {
		return ""
	}
	return p.Metadata.Kind()
}

// Title returns the page title from its metadata.
func (p Page) Title() string {
	if p.Metadata == nil {
		return ""
	}
	return p.Metadata.PageTitle()
}

// RelativeURL is the site-absolute URL of the page.
func (p Page) RelativeURL() string {
	return RelativeURL(p.Path)
}

// RelativeURL returns "/" + p with any leading slashes collapsed.
func RelativeURL(p string) string {
	return "/" + strings.TrimLeft(p, "/")
}

// CleanPath returns the canonical form of an output path. Paths that name
// the same file under the output root have the same canonical form.
func CleanPath(p string) string {
	return path.Clean(filepath.ToSlash(p))
}

// clone returns a copy of p that shares no mutable memory with it.
func (p Page) clone() Page {
	p.Contents = bytes.Clone(p.Contents)
	if m, ok := p.Metadata.(PostMeta); ok {
		m.Tags = slices.Clone(m.Tags)
		p.Metadata = m
	}
	return p
}
