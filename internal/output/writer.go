// Package output writes generated pages and static assets under the output root.
package output

import (
	"io"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"git.home.luguber.info/inful/sitebuilder/internal/foundation/errors"
	"git.home.luguber.info/inful/sitebuilder/internal/logfields"
	"git.home.luguber.info/inful/sitebuilder/internal/page"
)

const (
	dirPerm  os.FileMode = 0o755
	filePerm os.FileMode = 0o644
)

// Writer persists pages under Root. It remembers what it wrote so static
// assets cannot silently replace a generated page.
type Writer struct {
	fs      afero.Fs
	root    string
	logger  *slog.Logger
	written map[string]struct{}
}

// NewWriter returns a Writer rooted at root on fsys. A nil logger means
// slog.Default().
func NewWriter(fsys afero.Fs, root string, logger *slog.Logger) *Writer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Writer{fs: fsys, root: root, logger: logger, written: make(map[string]struct{})}
}

// Root returns the output root directory.
func (w *Writer) Root() string { return w.root }

// Prepare removes the output root first when remove is set, then ensures it exists.
func (w *Writer) Prepare(remove bool) error {
	if remove {
		if err := w.fs.RemoveAll(w.root); err != nil {
			return errors.IOError("cannot remove output directory").WithPath(w.root).WithCause(err).Build()
		}
		w.logger.Debug("Removed output directory", logfields.Output(w.root))
	}
	if err := w.fs.MkdirAll(w.root, dirPerm); err != nil {
		return errors.IOError("cannot create output directory").WithPath(w.root).WithCause(err).Build()
	}
	return nil
}

// WritePages writes every page to {root}/{page.Path}, creating parent
// directories and overwriting existing files.
func (w *Writer) WritePages(pages []page.Page) error {
	for _, p := range pages {
		if err := w.WritePage(p); err != nil {
			return err
		}
	}
	return nil
}

// WritePage writes a single page.
func (w *Writer) WritePage(p page.Page) error {
	full, err := w.resolve(p.Path)
	if err != nil {
		return err
	}
	if err := w.fs.MkdirAll(filepath.Dir(full), dirPerm); err != nil {
		return errors.IOError("cannot create page directory").WithPath(full).WithCause(err).Build()
	}
	if err := afero.WriteFile(w.fs, full, p.Contents, filePerm); err != nil {
		return errors.IOError("cannot write page").WithPath(full).WithCause(err).Build()
	}
	w.written[path.Clean(p.Path)] = struct{}{}
	w.logger.Debug("Wrote page", logfields.Path(p.Path), logfields.Kind(string(p.Kind())))
	return nil
}

// resolve maps a page path onto the output root, rejecting paths that are
// absolute or climb out of it.
func (w *Writer) resolve(rel string) (string, error) {
	if rel == "" {
		return "", errors.IOError("page path is empty").Build()
	}
	clean := path.Clean(filepath.ToSlash(rel))
	if path.IsAbs(clean) || filepath.IsAbs(rel) || clean == ".." || strings.HasPrefix(clean, "../") {
		return "", errors.IOError("page path escapes output directory").WithPath(rel).Build()
	}
	return filepath.Join(w.root, filepath.FromSlash(clean)), nil
}

// CopyStatic copies the contents of each dir (relative to inputRoot) into the
// output root, preserving relative structure. A declared directory that does
// not exist is skipped with a warning. It returns the number of files copied.
func (w *Writer) CopyStatic(inputRoot string, dirs []string) (int, error) {
	copied := 0
	for _, dir := range dirs {
		src := filepath.Join(inputRoot, filepath.FromSlash(dir))
		info, err := w.fs.Stat(src)
		if err != nil {
			if os.IsNotExist(err) {
				w.logger.Warn("Static directory not found; skipping", logfields.Path(src))
				continue
			}
			return copied, errors.IOError("cannot stat static directory").WithPath(src).WithCause(err).Build()
		}
		if !info.IsDir() {
			return copied, errors.IOError("static path is not a directory").WithPath(src).Build()
		}

		n, err := w.copyDir(src)
		copied += n
		if err != nil {
			return copied, err
		}
	}
	return copied, nil
}

func (w *Writer) copyDir(src string) (int, error) {
	copied := 0
	err := afero.Walk(w.fs, src, func(p string, fi os.FileInfo, err error) error {
		if err != nil {
			return errors.IOError("cannot read static path").WithPath(p).WithCause(err).Build()
		}
		rel, err := filepath.Rel(src, p)
		if err != nil {
			return errors.IOError("cannot relativize static path").WithPath(p).WithCause(err).Build()
		}
		dst := filepath.Join(w.root, rel)

		if fi.IsDir() {
			if err := w.fs.MkdirAll(dst, dirPerm); err != nil {
				return errors.IOError("cannot create static directory").WithPath(dst).WithCause(err).Build()
			}
			return nil
		}
		if !fi.Mode().IsRegular() {
			return nil
		}

		slashRel := filepath.ToSlash(rel)
		if _, clash := w.written[slashRel]; clash {
			return errors.PageCollisionError("static file would overwrite a generated page").
				WithPath(slashRel).
				WithContext(page.ContextExistingProducer, "pages").
				WithContext(page.ContextNewProducer, "static:"+src).
				Build()
		}

		if err := w.copyFile(p, dst, fi.Mode()); err != nil {
			return err
		}
		copied++
		return nil
	})
	return copied, err
}

func (w *Writer) copyFile(src, dst string, mode os.FileMode) error {
	in, err := w.fs.Open(src)
	if err != nil {
		return errors.IOError("cannot open static file").WithPath(src).WithCause(err).Build()
	}
	defer func() {
		_ = in.Close()
	}()

	out, err := w.fs.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, mode.Perm())
	if err != nil {
		return errors.IOError("cannot create static file").WithPath(dst).WithCause(err).Build()
	}
	defer func() {
		_ = out.Close()
	}()

	if _, err := io.Copy(out, in); err != nil {
		return errors.IOError("cannot copy static file").WithPath(dst).WithCause(err).Build()
	}
	return nil
}
