// Package markdown converts post bodies to HTML with goldmark.
package markdown

import (
	"bytes"
	stdhtml "html"
	"strings"

	"github.com/yuin/goldmark"
	gmast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"

	"git.home.luguber.info/inful/sitebuilder/internal/foundation/errors"
)

// Options toggles the goldmark extensions used for rendering.
type Options struct {
	// Unsafe keeps raw HTML embedded in markdown.
	Unsafe bool
	// Typographer converts quotes and dashes to typographic entities.
	Typographer bool
}

// DefaultOptions mirror what posts are written against: GFM, footnotes,
// typographic punctuation and raw HTML.
func DefaultOptions() Options {
	return Options{Unsafe: true, Typographer: true}
}

// Renderer converts markdown text to HTML. It is safe for reuse.
type Renderer struct {
	md goldmark.Markdown
}

// NewRenderer builds a goldmark pipeline for opts.
func NewRenderer(opts Options) *Renderer {
	exts := []goldmark.Extender{extension.GFM, extension.Footnote}
	if opts.Typographer {
		exts = append(exts, extension.Typographer)
	}
	gmOpts := []goldmark.Option{goldmark.WithExtensions(exts...)}
	if opts.Unsafe {
		gmOpts = append(gmOpts, goldmark.WithRendererOptions(html.WithUnsafe()))
	}
	return &Renderer{md: goldmark.New(gmOpts...)}
}

// Render converts body to HTML.
func (r *Renderer) Render(body []byte) (string, error) {
	var buf bytes.Buffer
	if err := r.md.Convert(body, &buf); err != nil {
		return "", errors.RenderError("markdown conversion failed").WithCause(err).Build()
	}
	return buf.String(), nil
}

// Summary returns the plain text of the first paragraph in body, truncated to
// at most limit runes (0 means no limit).
func (r *Renderer) Summary(body []byte, limit int) string {
	root := r.md.Parser().Parse(text.NewReader(body))

	var para gmast.Node
	_ = gmast.Walk(root, func(n gmast.Node, entering bool) (gmast.WalkStatus, error) {
		if !entering {
			return gmast.WalkContinue, nil
		}
		if n.Kind() == gmast.KindParagraph {
			para = n
			return gmast.WalkStop, nil
		}
		return gmast.WalkContinue, nil
	})
	if para == nil {
		return ""
	}

	var b strings.Builder
	_ = gmast.Walk(para, func(n gmast.Node, entering bool) (gmast.WalkStatus, error) {
		if !entering {
			return gmast.WalkContinue, nil
		}
		switch t := n.(type) {
		case *gmast.Text:
			b.Write(t.Segment.Value(body))
			if t.SoftLineBreak() || t.HardLineBreak() {
				b.WriteByte(' ')
			}
		case *gmast.String:
			// Typographer replacements are stored as entities.
			b.WriteString(stdhtml.UnescapeString(string(t.Value)))
		}
		return gmast.WalkContinue, nil
	})

	return truncate(strings.TrimSpace(b.String()), limit)
}

func truncate(s string, limit int) string {
	if limit <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return strings.TrimSpace(string(runes[:limit])) + "…"
}
