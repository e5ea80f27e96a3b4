package site

import (
	"encoding/xml"

	"git.home.luguber.info/inful/sitebuilder/internal/foundation/errors"
	"git.home.luguber.info/inful/sitebuilder/internal/page"
)

const sitemapNS = "http://www.sitemaps.org/schemas/sitemap/0.9"

type urlset struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc     string `xml:"loc"`
	LastMod string `xml:"lastmod,omitempty"`
}

// Sitemap lists every first-phase page under the site base URL.
type Sitemap struct {
	baseURL string
	path    string
}

// NewSitemap returns the sitemap generator. baseURL must not be empty.
func NewSitemap(baseURL, path string) *Sitemap {
	return &Sitemap{baseURL: baseURL, path: path}
}

func (*Sitemap) Name() string { return "sitemap" }

func (s *Sitemap) Generate(site *page.Site) ([]page.Page, error) {
	set := urlset{XMLNS: sitemapNS}
	for _, p := range site.Pages() {
		u := sitemapURL{Loc: s.baseURL + p.RelativeURL()}
		switch m := p.Metadata.(type) {
		case page.PostMeta:
			u.LastMod = m.Date.Format(DateLayout)
		case page.DocumentMeta:
			if !m.LastModified.IsZero() {
				u.LastMod = m.LastModified.Format(DateLayout)
			}
		}
		set.URLs = append(set.URLs, u)
	}

	body, err := xml.MarshalIndent(set, "", "  ")
	if err != nil {
		return nil, errors.RenderError("cannot encode sitemap").WithPath(s.path).WithCause(err).Build()
	}

	return []page.Page{{
		Path:     s.path,
		Contents: append([]byte(xml.Header), body...),
		Metadata: page.AggregateMeta{Of: page.KindSitemap, Title: "sitemap", Entries: len(set.URLs)},
	}}, nil
}
