package source

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/sitebuilder/internal/foundation/errors"
)

func TestLoad_ReturnsAllFilesInLexicalOrder(t *testing.T) {
	fsys := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fsys, "/in/posts/2023-04-02-b.md", []byte("b"), 0o644))
	require.NoError(t, afero.WriteFile(fsys, "/in/posts/2023-04-01-a.md", []byte("a"), 0o644))
	require.NoError(t, afero.WriteFile(fsys, "/in/pages/about.html", []byte("about"), 0o644))
	require.NoError(t, afero.WriteFile(fsys, "/in/static/css/screen.css", []byte("css"), 0o644))
	require.NoError(t, afero.WriteFile(fsys, "/in/.hidden", []byte("h"), 0o644))

	files, err := NewLoader(fsys).Load("/in")
	require.NoError(t, err)
	require.Equal(t, []string{
		".hidden",
		"pages/about.html",
		"posts/2023-04-01-a.md",
		"posts/2023-04-02-b.md",
		"static/css/screen.css",
	}, Paths(files))
	require.Equal(t, []byte("a"), files[2].Content)
}

func TestLoad_MissingRoot(t *testing.T) {
	_, err := NewLoader(afero.NewMemMapFs()).Load("/nope")
	require.Error(t, err)
	require.True(t, errors.HasCategory(err, errors.CategoryIO))

	ce, ok := errors.AsClassified(err)
	require.True(t, ok)
	p, _ := ce.Context().GetString(errors.ContextPath)
	require.Equal(t, "/nope", p)
}

func TestLoad_RootIsFile(t *testing.T) {
	fsys := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fsys, "/in", []byte("x"), 0o644))

	_, err := NewLoader(fsys).Load("/in")
	require.True(t, errors.HasCategory(err, errors.CategoryIO))
}

func TestLoad_OSFilesystem(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "posts"), 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "posts", "x.md"), []byte("x"), 0o600))

	files, err := NewOSLoader().Load(dir)
	require.NoError(t, err)
	require.Len(t, files, 1)
	require.Equal(t, "posts/x.md", files[0].Path)
	require.False(t, files[0].ModTime.IsZero())
}

func TestFile_Under(t *testing.T) {
	f := File{Path: "posts/2023-04-01-a.md"}
	require.True(t, f.Under("posts"))
	require.True(t, f.Under("posts/"))
	require.True(t, f.Under(""))
	require.False(t, f.Under("post"))
	require.False(t, File{Path: "postscript/a.md"}.Under("posts"))
	require.Equal(t, ".md", f.Ext())
	require.Equal(t, "2023-04-01-a.md", f.Name())
}
