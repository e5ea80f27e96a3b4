// Package source enumerates the files of an input tree.
package source

import (
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/spf13/afero"

	"git.home.luguber.info/inful/sitebuilder/internal/foundation/errors"
)

// File is one regular file under the input root. It is never mutated after Load.
type File struct {
	// Path is slash-separated and relative to the input root.
	Path    string
	Content []byte
	ModTime time.Time
}

// Name returns the base name of the file.
func (f File) Name() string { return path.Base(f.Path) }

// Ext returns the file extension including the dot.
func (f File) Ext() string { return path.Ext(f.Path) }

// Under reports whether the file lives below dir. The comparison is component
// wise, so "posts" matches "posts/a.md" but not "postscript/a.md".
func (f File) Under(dir string) bool {
	dir = strings.Trim(path.Clean(filepath.ToSlash(dir)), "/")
	if dir == "" || dir == "." {
		return true
	}
	return strings.HasPrefix(f.Path, dir+"/")
}

// Loader reads every regular file under a root directory.
type Loader struct {
	fs afero.Fs
}

// NewLoader returns a Loader reading from fsys.
func NewLoader(fsys afero.Fs) *Loader {
	return &Loader{fs: fsys}
}

// NewOSLoader returns a Loader backed by the operating system filesystem.
func NewOSLoader() *Loader {
	return NewLoader(afero.NewOsFs())
}

// Load returns every regular file under root in lexicographic path order.
// Nothing is excluded. Entries that are not regular files (directories,
// symlinks, devices) are not returned themselves.
func (l *Loader) Load(root string) ([]File, error) {
	info, err := l.fs.Stat(root)
	if err != nil {
		return nil, errors.IOError("input root not found").WithPath(root).WithCause(err).Build()
	}
	if !info.IsDir() {
		return nil, errors.IOError("input root is not a directory").WithPath(root).Build()
	}

	var files []File
	walkErr := afero.Walk(l.fs, root, func(p string, fi os.FileInfo, err error) error {
		if err != nil {
			return errors.IOError("cannot read input path").WithPath(p).WithCause(err).Build()
		}
		if !fi.Mode().IsRegular() {
			return nil
		}

		rel, err := filepath.Rel(root, p)
		if err != nil {
			return errors.IOError("cannot relativize input path").WithPath(p).WithCause(err).Build()
		}

		data, err := afero.ReadFile(l.fs, p)
		if err != nil {
			return errors.IOError("cannot read input file").WithPath(p).WithCause(err).Build()
		}

		files = append(files, File{
			Path:    filepath.ToSlash(rel),
			Content: data,
			ModTime: fi.ModTime(),
		})
		return nil
	})
	if walkErr != nil {
		return nil, walkErr
	}

	// afero.Walk visits entries in lexical order per directory; sort the full
	// relative paths so ordering does not depend on separator placement.
	sort.Slice(files, func(i, j int) bool { return files[i].Path < files[j].Path })
	return files, nil
}

// Paths returns the relative paths of files, preserving order.
func Paths(files []File) []string {
	out := make([]string, len(files))
	for i, f := range files {
		out[i] = f.Path
	}
	return out
}
