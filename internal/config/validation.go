package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"git.home.luguber.info/inful/sitebuilder/internal/foundation"
)

// Validate checks every field and reports all problems at once as a
// ValidationError.
func (c *Config) Validate() error {
	var p foundation.Problems
	foundation.Check(&p, "input", c.Input, foundation.NotBlank)
	foundation.Check(&p, "output", c.Output, foundation.NotBlank)
	foundation.Check(&p, "feed.limit", c.Feed.Limit, foundation.NonNegative)

	for i, dir := range c.StaticDirs {
		foundation.Check(&p, fmt.Sprintf("static_dirs[%d]", i), dir, foundation.NotBlank, foundation.RelativePath)
	}
	if c.Feed.Enabled {
		foundation.Check(&p, "feed.path", c.Feed.Path, foundation.NotBlank, foundation.RelativePath, foundation.FileName)
	}
	if c.Tags.Enabled {
		foundation.Check(&p, "tags.dir", c.Tags.Dir, foundation.NotBlank, foundation.RelativePath)
	}
	if c.Sitemap.Enabled {
		foundation.Check(&p, "sitemap.path", c.Sitemap.Path, foundation.NotBlank, foundation.RelativePath, foundation.FileName)
	}
	for i, m := range c.Site.Menu {
		foundation.Check(&p, fmt.Sprintf("site.menu[%d].name", i), m.Name, foundation.NotBlank)
	}

	if strings.TrimSpace(c.Input) != "" && strings.TrimSpace(c.Output) != "" {
		if overlaps(c.Input, c.Output) {
			p.Add(foundation.FieldError{
				Field:   "output",
				Code:    "overlaps_input",
				Message: fmt.Sprintf("output directory must not equal, contain or sit inside the input directory %q", c.Input),
				Value:   c.Output,
			})
		}
	}

	return p.Err()
}

// overlaps reports whether one directory is the other or lies below it.
// The output root is removed before writing, and anything under the input
// root is read as a source.
func overlaps(input, output string) bool {
	in, out := absDir(input), absDir(output)
	return within(in, out) || within(out, in)
}

func within(parent, child string) bool {
	rel, err := filepath.Rel(parent, child)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

func absDir(dir string) string {
	if abs, err := filepath.Abs(dir); err == nil {
		return abs
	}
	return filepath.Clean(dir)
}
