package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/sitebuilder/internal/foundation/errors"
)

func TestLoad_MissingOptionalFileYieldsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"), false)
	require.NoError(t, err)
	require.Equal(t, Default(), cfg)
	require.Equal(t, "content", cfg.Input)
	require.Equal(t, "public", cfg.Output)
	require.True(t, cfg.RemoveOutput)
	require.Equal(t, []string{"static"}, cfg.StaticDirs)
}

func TestLoad_MissingRequiredFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"), true)
	require.Error(t, err)
	require.True(t, errors.HasCategory(err, errors.CategoryConfig))
}

func TestLoad_OverridesAndExpandsEnv(t *testing.T) {
	t.Setenv("SITE_AUTHOR", "Jane")
	path := filepath.Join(t.TempDir(), "sitebuilder.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
input: src
output: out
remove_output: false
static_dirs: [assets, static]
site:
  title: Example
  author: ${SITE_AUTHOR}
  base_url: https://example.com/
feed:
  limit: 5
tags:
  dir: /topics/
log:
  level: DEBUG
  format: JSON
`), 0o600))

	cfg, err := Load(path, true)
	require.NoError(t, err)
	require.Equal(t, "src", cfg.Input)
	require.Equal(t, "out", cfg.Output)
	require.False(t, cfg.RemoveOutput)
	require.Equal(t, []string{"assets", "static"}, cfg.StaticDirs)
	require.Equal(t, "Jane", cfg.Site.Author)
	require.Equal(t, "https://example.com", cfg.Site.BaseURL)
	require.Equal(t, 5, cfg.Feed.Limit)
	require.True(t, cfg.Feed.Enabled)
	require.Equal(t, "topics", cfg.Tags.Dir)
	require.Equal(t, LogLevelDebug, cfg.Log.Level)
	require.Equal(t, LogFormatJSON, cfg.Log.Format)
}

func TestLoad_MalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("input: [unclosed\n"), 0o600))

	_, err := Load(path, true)
	require.True(t, errors.HasCategory(err, errors.CategoryConfig))
	ce, ok := errors.AsClassified(err)
	require.True(t, ok)
	p, _ := ce.Context().GetString(errors.ContextPath)
	require.Equal(t, path, p)
}

func TestValidate_ReportsEveryProblem(t *testing.T) {
	cfg := Default()
	cfg.Input = " "
	cfg.Feed.Limit = -1
	cfg.StaticDirs = []string{"../outside"}

	err := cfg.Validate()
	require.Error(t, err)
	require.True(t, errors.HasCategory(err, errors.CategoryValidation))
	require.Contains(t, err.Error(), "input")
	require.Contains(t, err.Error(), "feed.limit")
	require.Contains(t, err.Error(), "static_dirs")
}

func TestValidate_RejectsOverlappingRoots(t *testing.T) {
	cases := []struct {
		name   string
		input  string
		output string
	}{
		{"same directory", "/site/content", "/site/content"},
		{"same after cleaning", "/site/content", "/site/./content/"},
		{"output inside input", "/site/content", "/site/content/public"},
		{"input inside output", "/site/public/content", "/site/public"},
		{"relative same directory", "content", "./content"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			cfg.Input = tc.input
			cfg.Output = tc.output

			err := cfg.Validate()
			require.Error(t, err)
			require.True(t, errors.HasCategory(err, errors.CategoryValidation))
			ce, ok := errors.AsClassified(err)
			require.True(t, ok)
			got, _ := ce.Context().GetString("output")
			require.Equal(t, tc.output, got)
		})
	}

	cfg := Default()
	cfg.Input = "/site/content"
	cfg.Output = "/site/content-public"
	require.NoError(t, cfg.Validate())
}

func TestNormalize_CleansOutputPaths(t *testing.T) {
	cfg := Default()
	cfg.Feed.Path = "./index.html"
	cfg.Sitemap.Path = "/maps//sitemap.xml"
	cfg.Tags.Dir = "./tags/"
	cfg.Normalize()

	require.Equal(t, "index.html", cfg.Feed.Path)
	require.Equal(t, "maps/sitemap.xml", cfg.Sitemap.Path)
	require.Equal(t, "tags", cfg.Tags.Dir)

	cfg.Feed.Path = "./"
	cfg.Normalize()
	err := cfg.Validate()
	require.Error(t, err)
	require.Contains(t, err.Error(), "feed.path")
}

func TestValidate_DisabledFeaturesSkipTheirFields(t *testing.T) {
	cfg := Default()
	cfg.Feed = FeedConfig{Enabled: false}
	cfg.Tags = TagsConfig{Enabled: false}
	cfg.Sitemap = SitemapConfig{Enabled: false}
	require.NoError(t, cfg.Validate())
}

func TestInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sitebuilder.yaml")
	require.NoError(t, Init(path, false))

	err := Init(path, false)
	require.True(t, errors.HasCategory(err, errors.CategoryConfig))
	require.NoError(t, Init(path, true))

	t.Setenv("USER", "tester")
	cfg, err := Load(path, true)
	require.NoError(t, err)
	require.Equal(t, "tester", cfg.Site.Author)
	require.Len(t, cfg.Site.Projects, 1)
	require.Equal(t, 20, cfg.Feed.Limit)
}

func TestNormalizeLog(t *testing.T) {
	require.Equal(t, LogLevelWarn, NormalizeLogLevel("Warning"))
	require.Equal(t, LogLevelInfo, NormalizeLogLevel("verbose"))
	require.Equal(t, LogFormatText, NormalizeLogFormat(""))
	require.Equal(t, LogFormatJSON, NormalizeLogFormat(" json "))
}
