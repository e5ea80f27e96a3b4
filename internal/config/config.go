// Package config loads the sitebuilder build configuration.
package config

import (
	stderrors "errors"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/sitebuilder/internal/foundation/errors"
)

// DefaultFile is the configuration file read when none is named explicitly.
const DefaultFile = "sitebuilder.yaml"

// Config is the full configuration of one build. It is not modified once a
// build starts.
type Config struct {
	Build   `yaml:",inline"`
	Site    SiteConfig    `yaml:"site"`
	Feed    FeedConfig    `yaml:"feed"`
	Tags    TagsConfig    `yaml:"tags"`
	Sitemap SitemapConfig `yaml:"sitemap"`
	Log     LogConfig     `yaml:"log"`
}

// Build holds the input and output locations of a build.
type Build struct {
	Input        string   `yaml:"input"`
	Output       string   `yaml:"output"`
	RemoveOutput bool     `yaml:"remove_output"`
	StaticDirs   []string `yaml:"static_dirs"`
}

// SiteConfig describes the site shown in page templates.
type SiteConfig struct {
	Title       string     `yaml:"title"`
	Description string     `yaml:"description"`
	Author      string     `yaml:"author"`
	BaseURL     string     `yaml:"base_url"`
	Copyright   string     `yaml:"copyright"`
	Menu        []MenuItem `yaml:"menu"`
	Projects    []Project  `yaml:"projects"`
}

// MenuItem is one navigation link.
type MenuItem struct {
	Name string `yaml:"name"`
	URL  string `yaml:"url"`
}

// Project is one entry of the homepage projects section.
type Project struct {
	Name        string `yaml:"name"`
	URL         string `yaml:"url"`
	Description string `yaml:"description"`
}

// FeedConfig controls the RSS feed.
type FeedConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
	// Limit caps the number of posts in the feed; 0 means all.
	Limit int `yaml:"limit"`
}

// TagsConfig controls the per-tag index pages.
type TagsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Dir     string `yaml:"dir"`
}

// SitemapConfig controls sitemap.xml. It is only written when site.base_url is set.
type SitemapConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

// LogConfig selects the log level and handler format.
type LogConfig struct {
	Level  LogLevel  `yaml:"level"`
	Format LogFormat `yaml:"format"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Build: Build{
			Input:        "content",
			Output:       "public",
			RemoveOutput: true,
			StaticDirs:   []string{"static"},
		},
		Site: SiteConfig{
			Title: "My Blog",
			Menu:  []MenuItem{{Name: "home", URL: "/"}},
		},
		Feed:    FeedConfig{Enabled: true, Path: "feed.xml"},
		Tags:    TagsConfig{Enabled: true, Dir: "tags"},
		Sitemap: SitemapConfig{Enabled: true, Path: "sitemap.xml"},
		Log:     LogConfig{Level: LogLevelInfo, Format: LogFormatText},
	}
}

// Load reads the configuration at path on top of Default.
//
// A missing file yields the defaults unless required is set. .env files in the
// working directory are loaded first so ${VAR} references can resolve.
func Load(path string, required bool) (*Config, error) {
	LoadEnvFiles(DefaultEnvFiles...)

	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path) // #nosec G304 -- path is the user's config file.
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) && !required {
			return cfg, nil
		}
		return nil, errors.ConfigError("cannot read configuration file").WithPath(path).WithCause(err).Build()
	}

	if err := Parse(data, cfg); err != nil {
		if ce, ok := errors.AsClassified(err); ok {
			return nil, ce.WithContext(errors.ContextPath, path)
		}
		return nil, err
	}
	return cfg, nil
}

// Parse decodes YAML into cfg after expanding environment references, then
// normalizes enumerations and validates the result.
func Parse(data []byte, cfg *Config) error {
	expanded := os.ExpandEnv(string(data))
	if strings.TrimSpace(expanded) != "" {
		if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
			return errors.ConfigError("malformed configuration").WithCause(err).Build()
		}
	}
	cfg.Normalize()
	return cfg.Validate()
}

// Normalize case-folds enumerations, reduces output paths to their canonical
// form and trims separators from URLs. It is applied after every change to
// the configuration, including CLI overrides.
func (c *Config) Normalize() {
	c.Log.Level = NormalizeLogLevel(string(c.Log.Level))
	c.Log.Format = NormalizeLogFormat(string(c.Log.Format))
	c.Tags.Dir = outputPath(strings.Trim(c.Tags.Dir, "/"))
	c.Feed.Path = outputPath(strings.TrimLeft(c.Feed.Path, "/"))
	c.Sitemap.Path = outputPath(strings.TrimLeft(c.Sitemap.Path, "/"))
	c.Site.BaseURL = strings.TrimRight(c.Site.BaseURL, "/")
}

// outputPath cleans a path relative to the output root. Blank values stay
// blank so validation can report them.
func outputPath(p string) string {
	if strings.TrimSpace(p) == "" {
		return p
	}
	return path.Clean(filepath.ToSlash(p))
}

// Init writes an example configuration file.
func Init(path string, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return errors.ConfigError("configuration file already exists (use --force to overwrite)").WithPath(path).Build()
	}

	example := Default()
	example.Site = SiteConfig{
		Title:       "My Blog",
		Description: "Notes and articles",
		Author:      "${USER}",
		BaseURL:     "https://example.com",
		Copyright:   "All rights reserved",
		Menu: []MenuItem{
			{Name: "home", URL: "/"},
			{Name: "about", URL: "/about.html"},
		},
		Projects: []Project{
			{Name: "sitebuilder", URL: "https://example.com/sitebuilder", Description: "The generator of this site"},
		},
	}
	example.Feed.Limit = 20

	data, err := yaml.Marshal(example)
	if err != nil {
		return errors.InternalError("cannot encode example configuration").WithCause(err).Build()
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return errors.IOError("cannot write configuration file").WithPath(path).WithCause(err).Build()
	}
	return nil
}
