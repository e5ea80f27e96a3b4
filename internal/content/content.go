// Package content defines the typed records parsers produce from source files.
package content

import (
	"strings"
	"time"

	"github.com/inful/mdfp"

	"git.home.luguber.info/inful/sitebuilder/internal/frontmatter"
)

// Kind names an Item variant.
type Kind string

const (
	KindPost     Kind = "post"
	KindDocument Kind = "document"
)

// Item is a parsed source file. The set of variants is closed: *Post and
// *Document are the only implementations.
type Item interface {
	// SourcePath is the relative path of the file the item was parsed from.
	SourcePath() string
	ItemTitle() string
	Kind() Kind
	// Warnings lists problems found while parsing that do not stop the build.
	Warnings() []string
	isItem()
}

// Post is a dated markdown article.
type Post struct {
	Source      string
	Title       string
	Date        time.Time
	Body        string
	Tags        []string
	Fingerprint string
}

func (p *Post) SourcePath() string { return p.Source }
func (p *Post) ItemTitle() string  { return p.Title }
func (*Post) Kind() Kind           { return KindPost }
func (*Post) Warnings() []string   { return nil }
func (*Post) isItem()              {}

// Document is a standalone page whose body is already HTML.
type Document struct {
	Source       string
	Title        string
	Body         string
	LastModified time.Time
	// Summary is the leading plain text of Body.
	Summary       string
	Fingerprint   string
	ParseWarnings []string
}

func (d *Document) SourcePath() string { return d.Source }
func (d *Document) ItemTitle() string  { return d.Title }
func (*Document) Kind() Kind           { return KindDocument }
func (d *Document) Warnings() []string { return d.ParseWarnings }
func (*Document) isItem()              {}

// Fingerprint returns the content fingerprint of a split document: the hash of
// its front matter text (without the trailing newline) and body.
func Fingerprint(s frontmatter.Split) string {
	fm := s.FrontMatter
	if before, ok := strings.CutSuffix(fm, "\r\n"); ok {
		fm = before
	} else if before, ok := strings.CutSuffix(fm, "\n"); ok {
		fm = before
	}
	return mdfp.CalculateFingerprintFromParts(fm, s.Body)
}

// FingerprintField is the front matter key under which fingerprints are
// conventionally stored.
const FingerprintField = mdfp.FingerprintField
