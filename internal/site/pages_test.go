package site

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/sitebuilder/internal/content"
	"git.home.luguber.info/inful/sitebuilder/internal/foundation/errors"
	"git.home.luguber.info/inful/sitebuilder/internal/page"
	"git.home.luguber.info/inful/sitebuilder/internal/source"
)

func TestDocumentParser(t *testing.T) {
	mod := time.Date(2024, 2, 3, 10, 0, 0, 0, time.UTC)
	f := source.File{
		Path:    "pages/about.html",
		Content: []byte("---\ntitle: About Me\n---\n<h2>Hello</h2>\n<p>I write <em>code</em>.</p>\n<script>var x = 1;</script>\n"),
		ModTime: mod,
	}
	require.True(t, DocumentParser{}.Supports(f))

	item, err := DocumentParser{}.Parse(f)
	require.NoError(t, err)
	doc := item.(*content.Document)
	require.Equal(t, "About Me", doc.Title)
	require.Equal(t, mod, doc.LastModified)
	require.Equal(t, "Hello I write code .", doc.Summary)
	require.Empty(t, doc.Warnings())

	pages, err := NewDocumentGenerator(testRenderer(t)).Generate(item, page.NewCollection())
	require.NoError(t, err)
	require.Equal(t, "about_me.html", pages[0].Path)
	require.Contains(t, string(pages[0].Contents), "<div><h2>Hello</h2>")
	require.Equal(t, page.KindDocument, pages[0].Kind())
}

func TestDocumentParser_Errors(t *testing.T) {
	_, err := DocumentParser{}.Parse(source.File{Path: "pages/a.html", Content: []byte("<p>no front matter</p>")})
	require.True(t, errors.HasCategory(err, errors.CategoryParse))

	_, err = DocumentParser{}.Parse(source.File{Path: "pages/a.html", Content: []byte("---\n---\n<p>x</p>")})
	require.True(t, errors.HasCategory(err, errors.CategoryFrontMatter))
}

func TestDocumentParser_UnclosedElementsAreWarnings(t *testing.T) {
	f := source.File{Path: "pages/a.html", Content: []byte("---\ntitle: A\n---\n<div><p>open\n")}

	item, err := DocumentParser{}.Parse(f)
	require.NoError(t, err)
	require.Equal(t, []string{"page body has unclosed elements: div, p"}, item.Warnings())
}

func TestScanHTML(t *testing.T) {
	summary, unclosed := scanHTML("<div><p>one <b>two</b><br>three", 0)
	require.Equal(t, "one two three", summary)
	require.Equal(t, []string{"div", "p"}, unclosed)

	summary, unclosed = scanHTML("<p>"+strings.Repeat("word ", 100)+"</p>", 20)
	require.Empty(t, unclosed)
	require.LessOrEqual(t, len([]rune(summary)), 21)
	require.True(t, strings.HasSuffix(summary, "…"))
}
