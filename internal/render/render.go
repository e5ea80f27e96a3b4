// Package render lays out page bodies in the shared site template.
package render

import (
	"bytes"
	"embed"
	"html/template"
	"time"

	"git.home.luguber.info/inful/sitebuilder/internal/config"
	"git.home.luguber.info/inful/sitebuilder/internal/foundation/errors"
)

//go:embed templates/*.html
var templateFS embed.FS

// Template names.
const (
	TemplatePost = "post"
	TemplatePage = "page"
	TemplateHome = "home"
	TemplateTag  = "tag"
)

// Link is a titled URL.
type Link struct {
	Name string
	URL  string
}

// Entry is one dated line of a post listing.
type Entry struct {
	Title string
	URL   string
	Date  time.Time
}

// Renderer executes the embedded templates. It is safe for reuse.
type Renderer struct {
	site    config.SiteConfig
	feedURL string
	pages   map[string]*template.Template
}

// New parses the embedded templates. feedURL is linked from every page when
// not empty.
func New(site config.SiteConfig, feedURL string) (*Renderer, error) {
	base, err := template.ParseFS(templateFS, "templates/base.html")
	if err != nil {
		return nil, errors.RenderError("parse base template").WithCause(err).Build()
	}

	r := &Renderer{site: site, feedURL: feedURL, pages: make(map[string]*template.Template)}
	for _, name := range []string{TemplatePost, TemplatePage, TemplateHome, TemplateTag} {
		clone, err := base.Clone()
		if err != nil {
			return nil, errors.RenderError("clone base template").WithCause(err).Build()
		}
		if _, err := clone.ParseFS(templateFS, "templates/"+name+".html"); err != nil {
			return nil, errors.RenderError("parse page template").WithContext("template", name).WithCause(err).Build()
		}
		r.pages[name] = clone
	}
	return r, nil
}

// Layout is the data every template shares.
type Layout struct {
	Site    config.SiteConfig
	FeedURL string
	Title   string
}

type postData struct {
	Layout
	Date time.Time
	Tags []Link
	Body template.HTML
}

type pageData struct {
	Layout
	Body template.HTML
}

type listData struct {
	Layout
	Tag      string
	Entries  []Entry
	Projects []config.Project
}

func (r *Renderer) layout(title string) Layout {
	return Layout{Site: r.site, FeedURL: r.feedURL, Title: title}
}

// Post renders a blog post. bodyHTML is inserted verbatim.
func (r *Renderer) Post(title string, date time.Time, tags []Link, bodyHTML string) ([]byte, error) {
	return r.execute(TemplatePost, postData{
		Layout: r.layout(title),
		Date:   date,
		Tags:   tags,
		Body:   template.HTML(bodyHTML), // #nosec G203 -- post HTML is rendered from the site's own markdown.
	})
}

// Page renders a standalone page, wrapping bodyHTML in a div.
func (r *Renderer) Page(title, bodyHTML string) ([]byte, error) {
	return r.execute(TemplatePage, pageData{
		Layout: r.layout(title),
		Body:   template.HTML(bodyHTML), // #nosec G203 -- page bodies are authored HTML.
	})
}

// Home renders the homepage listing.
func (r *Renderer) Home(entries []Entry) ([]byte, error) {
	return r.execute(TemplateHome, listData{
		Layout:   r.layout(r.site.Title),
		Entries:  entries,
		Projects: r.site.Projects,
	})
}

// Tag renders the listing of posts carrying tag.
func (r *Renderer) Tag(tag string, entries []Entry) ([]byte, error) {
	return r.execute(TemplateTag, listData{
		Layout:  r.layout(tag),
		Tag:     tag,
		Entries: entries,
	})
}

func (r *Renderer) execute(name string, data any) ([]byte, error) {
	var buf bytes.Buffer
	if err := r.pages[name].ExecuteTemplate(&buf, "base", data); err != nil {
		return nil, errors.RenderError("execute template").WithContext("template", name).WithCause(err).Build()
	}
	return buf.Bytes(), nil
}
