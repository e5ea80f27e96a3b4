package site

import (
	"path"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/sitebuilder/internal/content"
	"git.home.luguber.info/inful/sitebuilder/internal/foundation/errors"
	"git.home.luguber.info/inful/sitebuilder/internal/frontmatter"
	"git.home.luguber.info/inful/sitebuilder/internal/markdown"
	"git.home.luguber.info/inful/sitebuilder/internal/page"
	"git.home.luguber.info/inful/sitebuilder/internal/render"
	"git.home.luguber.info/inful/sitebuilder/internal/slug"
	"git.home.luguber.info/inful/sitebuilder/internal/source"
)

// PostsDir is the input directory holding posts and the output directory
// their pages are written to.
const PostsDir = "posts"

// DateLayout is the filename date prefix of a post.
const DateLayout = "2006-01-02"

// TagList accepts either a whitespace-separated string or a YAML sequence.
type TagList []string

// UnmarshalYAML implements yaml.Unmarshaler.
func (t *TagList) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		*t = strings.Fields(value.Value)
		return nil
	case yaml.SequenceNode:
		var tags []string
		if err := value.Decode(&tags); err != nil {
			return err
		}
		var out []string
		for _, tag := range tags {
			out = append(out, strings.Fields(tag)...)
		}
		*t = out
		return nil
	default:
		return &yaml.TypeError{Errors: []string{"tags must be a string or a list of strings"}}
	}
}

type postFrontMatter struct {
	Title string  `yaml:"title"`
	Tags  TagList `yaml:"tags"`
}

// PostParser reads markdown posts named YYYY-MM-DD-*.
type PostParser struct{}

func (PostParser) Name() string { return "posts" }

func (PostParser) Supports(f source.File) bool { return f.Under(PostsDir) }

func (PostParser) Parse(f source.File) (content.Item, error) {
	date, err := PostDate(f.Name())
	if err != nil {
		return nil, err
	}

	split, err := frontmatter.SplitBytes(f.Content, frontmatter.DefaultDelimiter)
	if err != nil {
		return nil, err
	}

	var fm postFrontMatter
	if err := frontmatter.Decode(split.FrontMatter, &fm); err != nil {
		return nil, err
	}
	if strings.TrimSpace(fm.Title) == "" {
		return nil, frontmatter.MissingField("title")
	}

	return &content.Post{
		Source:      f.Path,
		Title:       fm.Title,
		Date:        date,
		Body:        split.Body,
		Tags:        []string(fm.Tags),
		Fingerprint: content.Fingerprint(split),
	}, nil
}

// PostDate parses the YYYY-MM-DD prefix of a post filename.
func PostDate(filename string) (time.Time, error) {
	if len(filename) < len(DateLayout) {
		return time.Time{}, errors.DateParseError("filename has no date prefix").
			WithContext("filename", filename).
			Build()
	}
	date, err := time.Parse(DateLayout, filename[:len(DateLayout)])
	if err != nil {
		return time.Time{}, errors.DateParseError("invalid filename date prefix").
			WithContext("filename", filename).
			WithCause(err).
			Build()
	}
	return date, nil
}

// PostPath returns the output path of a post.
func PostPath(date time.Time, title string) string {
	return path.Join(PostsDir, date.Format(DateLayout)+"-"+slug.Make(title)+".html")
}

// PostGenerator renders posts through markdown and the post template.
type PostGenerator struct {
	md      *markdown.Renderer
	tpl     *render.Renderer
	tagsDir string
}

// NewPostGenerator returns a PostGenerator. Tags link to tagsDir when it is
// not empty.
func NewPostGenerator(md *markdown.Renderer, tpl *render.Renderer, tagsDir string) *PostGenerator {
	return &PostGenerator{md: md, tpl: tpl, tagsDir: tagsDir}
}

func (*PostGenerator) Name() string { return "posts" }

func (*PostGenerator) Supports(item content.Item) bool {
	_, ok := item.(*content.Post)
	return ok
}

func (g *PostGenerator) Generate(item content.Item, _ page.View) ([]page.Page, error) {
	post, ok := item.(*content.Post)
	if !ok {
		return nil, errors.InternalError("posts generator received a non-post item").WithFile(item.SourcePath()).Build()
	}

	body, err := g.md.Render([]byte(post.Body))
	if err != nil {
		return nil, err
	}

	var links []render.Link
	if g.tagsDir != "" {
		for _, tag := range post.Tags {
			links = append(links, render.Link{Name: tag, URL: page.RelativeURL(TagPath(g.tagsDir, tag))})
		}
	}

	html, err := g.tpl.Post(post.Title, post.Date, links, body)
	if err != nil {
		return nil, err
	}

	return []page.Page{{
		Path:     PostPath(post.Date, post.Title),
		Contents: html,
		Metadata: page.PostMeta{
			Title:       post.Title,
			Date:        post.Date,
			Tags:        post.Tags,
			Summary:     g.md.Summary([]byte(post.Body), SummaryLength),
			Source:      post.Source,
			Fingerprint: post.Fingerprint,
		},
	}}, nil
}
