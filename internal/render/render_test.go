package render

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/sitebuilder/internal/config"
)

func newRenderer(t *testing.T) *Renderer {
	t.Helper()
	site := config.Default().Site
	site.Title = "Example"
	site.Copyright = "2016 Someone"
	site.Menu = []config.MenuItem{{Name: "home", URL: "/"}, {Name: "about", URL: "/about.html"}}
	site.Projects = []config.Project{{Name: "Calc", URL: "/calc.html", Description: "A calculator"}}
	r, err := New(site, "/feed.xml")
	require.NoError(t, err)
	return r
}

func TestPost(t *testing.T) {
	r := newRenderer(t)
	date := time.Date(2023, 4, 1, 0, 0, 0, 0, time.UTC)

	out, err := r.Post("Hello <World>", date, []Link{{Name: "go", URL: "/tags/go.html"}}, "<h1>Hi</h1>\n")
	require.NoError(t, err)
	html := string(out)

	require.Contains(t, html, "<title>Hello &lt;World&gt;</title>")
	require.Contains(t, html, "<h1>Hi</h1>")
	require.Contains(t, html, "<span>2023-04-01</span>")
	require.Contains(t, html, `href="/css/screen.css"`)
	require.Contains(t, html, `href="/css/syntax.css"`)
	require.Contains(t, html, `<a class="first extra" href="/">home</a>`)
	require.Contains(t, html, `<a class="extra" href="/about.html">about</a>`)
	require.Contains(t, html, `href="/tags/go.html"`)
	require.Contains(t, html, "&copy; 2016 Someone")
	require.Contains(t, html, `<a href="/feed.xml">`)
}

func TestPage_WrapsBodyInDiv(t *testing.T) {
	out, err := newRenderer(t).Page("About", "<p>me</p>")
	require.NoError(t, err)
	require.Contains(t, string(out), "<div><p>me</p></div>")
	require.Contains(t, string(out), "<title>About</title>")
}

func TestHome(t *testing.T) {
	out, err := newRenderer(t).Home([]Entry{
		{Title: "Hello", URL: "/posts/2023-04-01-hello.html", Date: time.Date(2023, 4, 1, 0, 0, 0, 0, time.UTC)},
	})
	require.NoError(t, err)
	html := string(out)
	require.Contains(t, html, `<span>01 Apr 2023</span> » <a href="/posts/2023-04-01-hello.html">Hello</a>`)
	require.Contains(t, html, "<h1>Projects</h1>")
	require.Contains(t, html, `<a href="/calc.html">Calc</a> A calculator`)
	require.Contains(t, html, "<title>Example</title>")
}

func TestNoFeedURLOmitsLink(t *testing.T) {
	r, err := New(config.Default().Site, "")
	require.NoError(t, err)
	out, err := r.Tag("go", nil)
	require.NoError(t, err)
	require.NotContains(t, string(out), "rss")
	require.NotContains(t, string(out), "Projects")
}
