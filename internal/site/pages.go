package site

import (
	"strings"
	"unicode/utf8"

	xhtml "golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"git.home.luguber.info/inful/sitebuilder/internal/content"
	"git.home.luguber.info/inful/sitebuilder/internal/foundation/errors"
	"git.home.luguber.info/inful/sitebuilder/internal/frontmatter"
	"git.home.luguber.info/inful/sitebuilder/internal/page"
	"git.home.luguber.info/inful/sitebuilder/internal/render"
	"git.home.luguber.info/inful/sitebuilder/internal/slug"
	"git.home.luguber.info/inful/sitebuilder/internal/source"
)

// PagesDir is the input directory holding standalone HTML pages.
const PagesDir = "pages"

// SummaryLength caps post and document summaries, in runes.
const SummaryLength = 200

type documentFrontMatter struct {
	Title string `yaml:"title"`
}

// DocumentParser reads HTML pages with a front matter title.
type DocumentParser struct{}

func (DocumentParser) Name() string { return "pages" }

func (DocumentParser) Supports(f source.File) bool { return f.Under(PagesDir) }

func (DocumentParser) Parse(f source.File) (content.Item, error) {
	split, err := frontmatter.SplitBytes(f.Content, frontmatter.DefaultDelimiter)
	if err != nil {
		return nil, err
	}

	var fm documentFrontMatter
	if err := frontmatter.Decode(split.FrontMatter, &fm); err != nil {
		return nil, err
	}
	if strings.TrimSpace(fm.Title) == "" {
		return nil, frontmatter.MissingField("title")
	}

	summary, unclosed := scanHTML(split.Body, SummaryLength)
	doc := &content.Document{
		Source:       f.Path,
		Title:        fm.Title,
		Body:         split.Body,
		LastModified: f.ModTime,
		Summary:      summary,
		Fingerprint:  content.Fingerprint(split),
	}
	if len(unclosed) > 0 {
		doc.ParseWarnings = append(doc.ParseWarnings, "page body has unclosed elements: "+strings.Join(unclosed, ", "))
	}
	return doc, nil
}

// scanHTML tokenizes body, returning its leading text (at most limit runes)
// and the names of elements left open at the end.
func scanHTML(body string, limit int) (summary string, unclosed []string) {
	z := xhtml.NewTokenizer(strings.NewReader(body))
	var text strings.Builder
	var open []atom.Atom
	skip := 0

	for {
		switch z.Next() {
		case xhtml.ErrorToken:
			// Reading from a string, the only error is io.EOF.
			for _, a := range open {
				unclosed = append(unclosed, a.String())
			}
			return truncateRunes(strings.Join(strings.Fields(text.String()), " "), limit), unclosed
		case xhtml.TextToken:
			if skip == 0 {
				text.Write(z.Text())
				text.WriteByte(' ')
			}
		case xhtml.StartTagToken:
			name, _ := z.TagName()
			a := atom.Lookup(name)
			if a == atom.Script || a == atom.Style {
				skip++
			}
			if !voidElements[a] {
				open = append(open, a)
			}
		case xhtml.EndTagToken:
			name, _ := z.TagName()
			a := atom.Lookup(name)
			if (a == atom.Script || a == atom.Style) && skip > 0 {
				skip--
			}
			for i := len(open) - 1; i >= 0; i-- {
				if open[i] == a {
					open = open[:i]
					break
				}
			}
		}
	}
}

var voidElements = map[atom.Atom]bool{
	atom.Area: true, atom.Base: true, atom.Br: true, atom.Col: true, atom.Embed: true,
	atom.Hr: true, atom.Img: true, atom.Input: true, atom.Link: true, atom.Meta: true,
	atom.Source: true, atom.Track: true, atom.Wbr: true,
}

func truncateRunes(s string, limit int) string {
	if limit <= 0 || utf8.RuneCountInString(s) <= limit {
		return s
	}
	r := []rune(s)
	return strings.TrimSpace(string(r[:limit])) + "…"
}

// DocumentPath returns the output path of a standalone page.
func DocumentPath(title string) string {
	return slug.Make(title) + ".html"
}

// DocumentGenerator wraps page bodies in the site layout.
type DocumentGenerator struct {
	tpl *render.Renderer
}

// NewDocumentGenerator returns a DocumentGenerator.
func NewDocumentGenerator(tpl *render.Renderer) *DocumentGenerator {
	return &DocumentGenerator{tpl: tpl}
}

func (*DocumentGenerator) Name() string { return "pages" }

func (*DocumentGenerator) Supports(item content.Item) bool {
	_, ok := item.(*content.Document)
	return ok
}

func (g *DocumentGenerator) Generate(item content.Item, _ page.View) ([]page.Page, error) {
	doc, ok := item.(*content.Document)
	if !ok {
		return nil, errors.InternalError("pages generator received a non-document item").WithFile(item.SourcePath()).Build()
	}

	html, err := g.tpl.Page(doc.Title, doc.Body)
	if err != nil {
		return nil, err
	}

	return []page.Page{{
		Path:     DocumentPath(doc.Title),
		Contents: html,
		Metadata: page.DocumentMeta{
			Title:        doc.Title,
			LastModified: doc.LastModified,
			Summary:      doc.Summary,
			Source:       doc.Source,
			Fingerprint:  doc.Fingerprint,
		},
	}}, nil
}
