// Package site registers the handlers of a blog: dated markdown posts,
// standalone HTML pages, the homepage, the feed, tag indexes and the sitemap.
package site

import (
	"log/slog"

	"git.home.luguber.info/inful/sitebuilder/internal/config"
	"git.home.luguber.info/inful/sitebuilder/internal/markdown"
	"git.home.luguber.info/inful/sitebuilder/internal/page"
	"git.home.luguber.info/inful/sitebuilder/internal/pipeline"
	"git.home.luguber.info/inful/sitebuilder/internal/render"
)

// NewRegistry wires every handler enabled by cfg.
func NewRegistry(cfg *config.Config) (*pipeline.Registry, error) {
	feedURL := ""
	if cfg.Feed.Enabled {
		feedURL = page.RelativeURL(cfg.Feed.Path)
	}
	tpl, err := render.New(cfg.Site, feedURL)
	if err != nil {
		return nil, err
	}

	tagsDir := ""
	if cfg.Tags.Enabled {
		tagsDir = cfg.Tags.Dir
	}

	reg := pipeline.NewRegistry()
	reg.Register(pipeline.Handler{
		Parser:    PostParser{},
		Generator: NewPostGenerator(markdown.NewRenderer(markdown.DefaultOptions()), tpl, tagsDir),
	})
	reg.Register(pipeline.Handler{
		Parser:    DocumentParser{},
		Generator: NewDocumentGenerator(tpl),
	})

	reg.RegisterOneTime(NewHomepage(tpl, cfg.Site.Title))
	if cfg.Feed.Enabled {
		reg.RegisterOneTime(NewFeed(cfg.Site, cfg.Feed.Path, cfg.Feed.Limit))
	}
	if cfg.Tags.Enabled {
		reg.RegisterOneTime(NewTagIndex(tpl, cfg.Tags.Dir))
	}
	if cfg.Sitemap.Enabled {
		if cfg.Site.BaseURL == "" {
			slog.Debug("Sitemap disabled: site.base_url is not set")
		} else {
			reg.RegisterOneTime(NewSitemap(cfg.Site.BaseURL, cfg.Sitemap.Path))
		}
	}
	return reg, nil
}
