package site

import (
	"path"
	"sort"

	"git.home.luguber.info/inful/sitebuilder/internal/page"
	"git.home.luguber.info/inful/sitebuilder/internal/render"
	"git.home.luguber.info/inful/sitebuilder/internal/slug"
)

// TagPath returns the output path of the index page for tag.
func TagPath(dir, tag string) string {
	return path.Join(dir, slug.Make(tag)+".html")
}

// TagIndex writes one page per distinct tag listing the posts that carry it.
// Tags that share a slug share a page, titled with the first spelling seen.
type TagIndex struct {
	tpl *render.Renderer
	dir string
}

// NewTagIndex returns the tag index generator writing under dir.
func NewTagIndex(tpl *render.Renderer, dir string) *TagIndex {
	return &TagIndex{tpl: tpl, dir: dir}
}

func (*TagIndex) Name() string { return "tags" }

type tagGroup struct {
	name  string
	posts []page.Page
}

func (t *TagIndex) Generate(site *page.Site) ([]page.Page, error) {
	groups := make(map[string]*tagGroup)
	for _, p := range site.Posts() {
		meta, ok := p.Metadata.(page.PostMeta)
		if !ok {
			continue
		}
		seen := make(map[string]struct{}, len(meta.Tags))
		for _, tag := range meta.Tags {
			key := slug.Make(tag)
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			g, ok := groups[key]
			if !ok {
				g = &tagGroup{name: tag}
				groups[key] = g
			}
			g.posts = append(g.posts, p)
		}
	}

	keys := make([]string, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pages := make([]page.Page, 0, len(keys))
	for _, k := range keys {
		g := groups[k]
		html, err := t.tpl.Tag(g.name, entries(g.posts))
		if err != nil {
			return nil, err
		}
		pages = append(pages, page.Page{
			Path:     TagPath(t.dir, g.name),
			Contents: html,
			Metadata: page.AggregateMeta{Of: page.KindTag, Title: g.name, Entries: len(g.posts)},
		})
	}
	return pages, nil
}
