package manifest

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/sitebuilder/internal/config"
	"git.home.luguber.info/inful/sitebuilder/internal/metrics"
	"git.home.luguber.info/inful/sitebuilder/internal/page"
	"git.home.luguber.info/inful/sitebuilder/internal/pipeline"
)

func testReport() *pipeline.Report {
	start := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	return &pipeline.Report{
		BuildID: "build-123",
		Start:   start,
		End:     start.Add(1500 * time.Millisecond),
		Files:   3,
		Parsed:  2,
		Skipped: 1,
		Pages: []page.Page{
			{Path: "posts/2023-04-01-a.html", Contents: []byte("post"), Metadata: page.PostMeta{Title: "A", Summary: "First lines.", Fingerprint: "fp-a"}},
			{Path: "index.html", Contents: []byte("home page"), Metadata: page.AggregateMeta{Of: page.KindHomepage, Title: "Blog"}},
		},
		StaticFiles: 4,
		Outcome:     metrics.BuildOutcomeSuccess,
	}
}

func TestFromReport(t *testing.T) {
	m, err := FromReport(testReport(), config.Default())
	require.NoError(t, err)

	require.Equal(t, "build-123", m.ID)
	require.Equal(t, "success", m.Status)
	require.Equal(t, int64(1500), m.Duration)
	require.Equal(t, "content", m.Inputs.Directory)
	require.Equal(t, 3, m.Inputs.SourceFiles)
	require.NotEmpty(t, m.Inputs.ConfigHash)
	require.Equal(t, 4, m.Outputs.StaticFiles)

	require.Len(t, m.Outputs.Pages, 2)
	require.Equal(t, PageRecord{Path: "index.html", Kind: page.KindHomepage, Title: "Blog", Bytes: 9}, m.Outputs.Pages[0])
	require.Equal(t, "fp-a", m.Outputs.Pages[1].Fingerprint)
	require.Equal(t, "First lines.", m.Outputs.Pages[1].Summary)
}

func TestHash_TracksConfigAndFingerprints(t *testing.T) {
	a, err := FromReport(testReport(), config.Default())
	require.NoError(t, err)
	b, err := FromReport(testReport(), config.Default())
	require.NoError(t, err)

	ha, err := a.Hash()
	require.NoError(t, err)
	hb, err := b.Hash()
	require.NoError(t, err)
	require.Equal(t, ha, hb)

	cfg := config.Default()
	cfg.Site.Title = "Different"
	c, err := FromReport(testReport(), cfg)
	require.NoError(t, err)
	hc, err := c.Hash()
	require.NoError(t, err)
	require.NotEqual(t, ha, hc)
}

func TestWriteFileAndReadBack(t *testing.T) {
	m, err := FromReport(testReport(), config.Default())
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "manifest.json")
	require.NoError(t, m.WriteFile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	restored, err := FromJSON(data)
	require.NoError(t, err)
	require.Equal(t, m.ID, restored.ID)
	require.Equal(t, m.Outputs.Pages, restored.Outputs.Pages)
}
