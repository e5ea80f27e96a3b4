package site

import (
	"time"

	"github.com/gorilla/feeds"

	"git.home.luguber.info/inful/sitebuilder/internal/config"
	"git.home.luguber.info/inful/sitebuilder/internal/foundation/errors"
	"git.home.luguber.info/inful/sitebuilder/internal/page"
)

// Feed writes an RSS 2.0 feed of the newest posts.
type Feed struct {
	site  config.SiteConfig
	path  string
	limit int
	now   func() time.Time
}

// NewFeed returns the feed generator. limit caps the number of items; 0
// means every post.
func NewFeed(site config.SiteConfig, path string, limit int) *Feed {
	return &Feed{site: site, path: path, limit: limit, now: time.Now}
}

func (*Feed) Name() string { return "feed" }

func (f *Feed) Generate(site *page.Site) ([]page.Page, error) {
	posts := site.Posts()
	if f.limit > 0 && len(posts) > f.limit {
		posts = posts[:f.limit]
	}

	updated := f.now()
	if len(posts) > 0 {
		if meta, ok := posts[0].Metadata.(page.PostMeta); ok {
			updated = meta.Date
		}
	}

	feed := &feeds.Feed{
		Title:       f.site.Title,
		Link:        &feeds.Link{Href: f.absolute("/")},
		Description: f.site.Description,
		Copyright:   f.site.Copyright,
		Updated:     updated,
	}
	if f.site.Author != "" {
		feed.Author = &feeds.Author{Name: f.site.Author}
	}

	for _, p := range posts {
		meta, ok := p.Metadata.(page.PostMeta)
		if !ok {
			continue
		}
		url := f.absolute(p.RelativeURL())
		feed.Items = append(feed.Items, &feeds.Item{
			Title:       meta.Title,
			Link:        &feeds.Link{Href: url},
			Id:          url,
			Description: meta.Summary,
			Created:     meta.Date,
		})
	}

	rss, err := feed.ToRss()
	if err != nil {
		return nil, errors.RenderError("cannot encode feed").WithPath(f.path).WithCause(err).Build()
	}

	return []page.Page{{
		Path:     f.path,
		Contents: []byte(rss),
		Metadata: page.AggregateMeta{Of: page.KindFeed, Title: f.site.Title, Entries: len(feed.Items)},
	}}, nil
}

func (f *Feed) absolute(rel string) string {
	return f.site.BaseURL + rel
}
