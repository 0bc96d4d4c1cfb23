package render

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/arthur-debert/scaffold/pkg/conditions"
	"github.com/arthur-debert/scaffold/pkg/errors"
	"github.com/arthur-debert/scaffold/pkg/logging"
	"github.com/arthur-debert/scaffold/pkg/manifest"
	"github.com/arthur-debert/scaffold/pkg/substitute"
	"github.com/arthur-debert/scaffold/pkg/types"
	"github.com/rs/zerolog"
)

// Options controls a single render
type Options struct {
	// Assignment maps variable names to their resolved values
	Assignment map[string]string
	// Exclusions holds base names pruned from the output
	Exclusions conditions.Set
	// SkipManifest leaves template.toml out of the output
	SkipManifest bool
	// Progress, when set, is called after each file is written
	Progress func(target string)
}

// Entry is one node of a planned render
type Entry struct {
	// Source is the absolute path inside the template
	Source string
	// Target is the absolute output path
	Target string
	// Rel is Target relative to the output root
	Rel   string
	Depth int
	Dir   bool
	// Binary is set for files that are copied without substitution
	Binary bool
	Mode   fs.FileMode
}

// Renderer walks template trees over a filesystem
type Renderer struct {
	fs types.FS
}

// New returns a renderer over fsys
func New(fsys types.FS) *Renderer {
	return &Renderer{fs: fsys}
}

// visitor receives every entry that survives exclusion. data is the
// already-read file content (nil for directories).
type visitor func(e Entry, data []byte) error

// Render copies src to dst, applying substitution and exclusions.
func (r *Renderer) Render(src, dst string, opts Options) error {
	logger := logging.GetLogger("render")
	done := logging.LogOperationStart(logger, "render")
	defer done()

	files := 0
	err := r.walk(src, dst, opts, true, func(e Entry, data []byte) error {
		if e.Dir {
			if err := r.fs.MkdirAll(e.Target, dirMode(e.Mode)); err != nil {
				return errors.Wrapf(err, errors.ErrDirCreate, "failed to create directory %s", e.Target).
					WithDetail("path", e.Target)
			}
			return nil
		}

		if !e.Binary {
			data = []byte(substitute.Substitute(string(data), opts.Assignment))
		}
		if err := r.fs.WriteFile(e.Target, data, e.Mode.Perm()); err != nil {
			return errors.Wrapf(err, errors.ErrFileWrite, "failed to write %s", e.Target).
				WithDetail("path", e.Target).
				WithDetail("source", e.Source)
		}
		logger.Trace().Str("source", e.Source).Str("target", e.Target).Bool("binary", e.Binary).Msg("wrote file")

		files++
		if opts.Progress != nil {
			opts.Progress(e.Target)
		}
		return nil
	})
	if err != nil {
		return err
	}

	logger.Debug().Str("src", src).Str("dst", dst).Int("files", files).Msg("render complete")
	return nil
}

// Plan returns the entries a render would produce, in walk order, without
// writing anything. The output root itself is the first entry.
func (r *Renderer) Plan(src, dst string, opts Options) ([]Entry, error) {
	var entries []Entry
	err := r.walk(src, dst, opts, true, func(e Entry, _ []byte) error {
		entries = append(entries, e)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// Preview writes the tree a render would produce as an indented listing.
func (r *Renderer) Preview(w io.Writer, src, dst string, opts Options) error {
	entries, err := r.Plan(src, dst, opts)
	if err != nil {
		return err
	}
	for _, e := range entries {
		name := filepath.Base(e.Target)
		if e.Dir {
			name += "/"
		}
		if _, err := fmt.Fprintf(w, "  %s%s\n", strings.Repeat("  ", e.Depth), name); err != nil {
			return err
		}
	}
	return nil
}

// Walk visits every entry of src that survives opts, with file contents
// already read. Targets are relative to an empty output root.
func (r *Renderer) Walk(src string, opts Options, fn func(e Entry, data []byte) error) error {
	return r.walk(src, "", opts, true, fn)
}

// CountFiles returns the number of files a render would write. File
// contents are not read.
func (r *Renderer) CountFiles(src string, opts Options) (int, error) {
	count := 0
	err := r.walk(src, "", opts, false, func(e Entry, _ []byte) error {
		if !e.Dir {
			count++
		}
		return nil
	})
	return count, err
}

// TargetRoot returns the output root for dst: its base name is substituted
// like any other directory name.
func TargetRoot(dst string, assignment map[string]string) string {
	if dst == "" {
		return dst
	}
	return filepath.Join(filepath.Dir(dst), substitute.Substitute(filepath.Base(dst), assignment))
}

// walker carries the per-call state of one walk. When readContents is
// false, visitors receive nil data and Entry.Binary is always false.
type walker struct {
	r            *Renderer
	opts         Options
	readContents bool
	visit        visitor
	logger       zerolog.Logger
}

func (r *Renderer) walk(src, dst string, opts Options, readContents bool, visit visitor) error {
	info, err := r.fs.Stat(src)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return errors.Newf(errors.ErrNotFound, "template directory %s does not exist", src).
				WithDetail("path", src)
		}
		return errors.Wrapf(err, errors.ErrFileRead, "failed to stat %s", src).WithDetail("path", src)
	}
	if !info.IsDir() {
		return errors.Newf(errors.ErrInvalidInput, "template path %s is not a directory", src).
			WithDetail("path", src)
	}

	root := TargetRoot(dst, opts.Assignment)
	if err := visit(Entry{Source: src, Target: root, Rel: ".", Dir: true, Mode: info.Mode()}, nil); err != nil {
		return err
	}
	w := &walker{
		r:            r,
		opts:         opts,
		readContents: readContents,
		visit:        visit,
		logger:       logging.GetLogger("render"),
	}
	return w.walkDir(src, root, ".", 1, []fs.FileInfo{info})
}

func (w *walker) walkDir(srcDir, dstDir, relDir string, depth int, ancestors []fs.FileInfo) error {
	r, opts, visit := w.r, w.opts, w.visit
	children, err := r.fs.ReadDir(srcDir)
	if err != nil {
		return errors.Wrapf(err, errors.ErrDirRead, "failed to read directory %s", srcDir).
			WithDetail("path", srcDir)
	}

	for _, child := range children {
		name := child.Name()
		if opts.SkipManifest && name == manifest.FileName {
			continue
		}
		if opts.Exclusions.Contains(name) {
			w.logger.Debug().Str("name", name).Str("dir", srcDir).Msg("excluded")
			continue
		}

		srcPath := filepath.Join(srcDir, name)
		// Stat follows symlinks so linked files and directories render as their targets
		info, err := r.fs.Stat(srcPath)
		if err != nil {
			return errors.Wrapf(err, errors.ErrFileRead, "failed to stat %s", srcPath).
				WithDetail("path", srcPath)
		}

		target, nameErr := targetName(name, opts.Assignment)
		if nameErr != nil {
			return nameErr.WithDetail("path", srcPath)
		}
		e := Entry{
			Source: srcPath,
			Target: filepath.Join(dstDir, target),
			Rel:    filepath.Join(relDir, target),
			Depth:  depth,
			Mode:   info.Mode(),
		}

		switch {
		case info.IsDir():
			for _, a := range ancestors {
				if os.SameFile(a, info) {
					return errors.Newf(errors.ErrInvalidInput, "symlink cycle at %s", srcPath).
						WithDetail("path", srcPath)
				}
			}
			e.Dir = true
			if err := visit(e, nil); err != nil {
				return err
			}
			if err := w.walkDir(srcPath, e.Target, e.Rel, depth+1, append(ancestors, info)); err != nil {
				return err
			}

		case info.Mode().IsRegular():
			var data []byte
			if w.readContents {
				data, err = r.fs.ReadFile(srcPath)
				if err != nil {
					return errors.Wrapf(err, errors.ErrFileRead, "failed to read %s", srcPath).
						WithDetail("path", srcPath)
				}
				e.Binary = !utf8.Valid(data)
			}
			if err := visit(e, data); err != nil {
				return err
			}

		default:
			w.logger.Warn().Str("path", srcPath).Str("mode", info.Mode().String()).
				Msg("skipping special file")
		}
	}
	return nil
}

// targetName substitutes into a single path segment and rejects results
// that would escape it.
func targetName(name string, assignment map[string]string) (string, *errors.ScaffoldError) {
	out := substitute.Substitute(name, assignment)
	if out == "" || out == "." || out == ".." || strings.ContainsAny(out, `/\`) {
		return "", errors.Newf(errors.ErrInvalidInput, "name %q renders to %q, which is not a valid file name", name, out)
	}
	return out, nil
}

func dirMode(m fs.FileMode) fs.FileMode {
	// Owner must be able to write into directories we create
	return m.Perm() | 0700
}
