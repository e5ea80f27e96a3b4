package site

import (
	"git.home.luguber.info/inful/sitebuilder/internal/page"
	"git.home.luguber.info/inful/sitebuilder/internal/render"
)

// HomepagePath is where the homepage is written.
const HomepagePath = "index.html"

// Homepage lists every post, newest first, followed by the configured projects.
type Homepage struct {
	tpl   *render.Renderer
	title string
}

// NewHomepage returns the homepage generator.
func NewHomepage(tpl *render.Renderer, title string) *Homepage {
	return &Homepage{tpl: tpl, title: title}
}

func (*Homepage) Name() string { return "homepage" }

func (h *Homepage) Generate(site *page.Site) ([]page.Page, error) {
	posts := site.Posts()
	html, err := h.tpl.Home(entries(posts))
	if err != nil {
		return nil, err
	}
	return []page.Page{{
		Path:     HomepagePath,
		Contents: html,
		Metadata: page.AggregateMeta{Of: page.KindHomepage, Title: h.title, Entries: len(posts)},
	}}, nil
}

// entries converts post pages into listing lines.
func entries(posts []page.Page) []render.Entry {
	out := make([]render.Entry, 0, len(posts))
	for _, p := range posts {
		meta, ok := p.Metadata.(page.PostMeta)
		if !ok {
			continue
		}
		out = append(out, render.Entry{Title: meta.Title, URL: p.RelativeURL(), Date: meta.Date})
	}
	return out
}
