package content

import (
	"testing"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/sitebuilder/internal/frontmatter"
)

func TestItemVariants(t *testing.T) {
	items := []Item{
		&Post{Source: "posts/2023-04-01-a.md", Title: "A"},
		&Document{Source: "pages/about.html", Title: "About"},
	}

	require.Equal(t, KindPost, items[0].Kind())
	require.Equal(t, KindDocument, items[1].Kind())
	require.Equal(t, "posts/2023-04-01-a.md", items[0].SourcePath())
	require.Equal(t, "About", items[1].ItemTitle())
}

func TestFingerprint_DeterministicAndContentSensitive(t *testing.T) {
	lf, err := frontmatter.SplitString("---\ntitle: A\n---\nbody", "---")
	require.NoError(t, err)
	again, err := frontmatter.SplitString("---\ntitle: A\n---\nbody", "---")
	require.NoError(t, err)

	fp := Fingerprint(lf)
	require.NotEmpty(t, fp)
	require.Equal(t, fp, Fingerprint(again))

	changed, err := frontmatter.SplitString("---\ntitle: A\n---\nother body", "---")
	require.NoError(t, err)
	require.NotEqual(t, fp, Fingerprint(changed))
}
