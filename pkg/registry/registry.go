package registry

import (
	"context"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/scaffold/pkg/conditions"
	"github.com/arthur-debert/scaffold/pkg/errors"
	"github.com/arthur-debert/scaffold/pkg/logging"
	"github.com/arthur-debert/scaffold/pkg/manifest"
	"github.com/arthur-debert/scaffold/pkg/remote"
	"github.com/arthur-debert/scaffold/pkg/render"
	"github.com/arthur-debert/scaffold/pkg/types"
	"github.com/sahilm/fuzzy"
)

// BundledSource provides the directory holding bundled templates
type BundledSource interface {
	Ensure() (dir string, extracted bool, err error)
}

// Cloner checks out remote references
type Cloner interface {
	Clone(ctx context.Context, ref remote.Reference) (*remote.Checkout, error)
}

// Registry resolves templates from the local directory and the bundled set
type Registry struct {
	fs       types.FS
	localDir string
	bundled  BundledSource
	cloner   Cloner
}

// New creates a registry. bundled and cloner may be nil.
func New(fsys types.FS, localDir string, bundled BundledSource, cloner Cloner) *Registry {
	return &Registry{fs: fsys, localDir: localDir, bundled: bundled, cloner: cloner}
}

// LocalDir returns the local templates directory
func (r *Registry) LocalDir() string {
	return r.localDir
}

// Catalog is the result of one enumeration
type Catalog struct {
	index    *Index[Template]
	Warnings []Warning
}

// Templates returns local templates first, then unshadowed bundled ones
func (c *Catalog) Templates() []Template {
	return c.index.Values()
}

// Names returns template names in catalog order
func (c *Catalog) Names() []string {
	return c.index.Names()
}

// Get returns the named template. The not-found error suggests close names.
func (c *Catalog) Get(name string) (Template, error) {
	t, err := c.index.Get(name)
	if err == nil {
		return t, nil
	}

	notFound := errors.Newf(errors.ErrTemplateNotFound, "template '%s' not found", name).
		WithDetail("name", name)
	if s := c.Suggest(name); len(s) > 0 {
		notFound.WithDetail("suggestions", s)
		notFound.Message += ", did you mean " + strings.Join(quoteAll(s), " or ") + "?"
	}
	return Template{}, notFound
}

// Suggest returns up to three template names fuzzily matching name
func (c *Catalog) Suggest(name string) []string {
	var out []string
	for _, m := range fuzzy.Find(name, c.index.Names()) {
		out = append(out, m.Str)
		if len(out) == 3 {
			break
		}
	}
	return out
}

// List enumerates all templates. Only failure to read an existing local
// directory is fatal; broken entries become warnings.
func (r *Registry) List() (*Catalog, error) {
	logger := logging.GetLogger("registry")
	cat := &Catalog{index: NewIndex[Template]()}

	if err := r.scan(cat, r.localDir, SourceLocal); err != nil {
		return nil, err
	}

	if r.bundled != nil {
		dir, extracted, err := r.bundled.Ensure()
		if err != nil {
			logger.Warn().Err(err).Msg("bundled templates unavailable")
			cat.Warnings = append(cat.Warnings, Warning{Message: "bundled templates unavailable: " + errors.GetMessage(err)})
		} else {
			if extracted {
				logger.Debug().Str("dir", dir).Msg("bundled templates extracted")
			}
			if err := r.scan(cat, dir, SourceBundled); err != nil {
				logger.Warn().Err(err).Msg("failed to scan bundled templates")
				cat.Warnings = append(cat.Warnings, Warning{Dir: dir, Message: errors.GetMessage(err)})
			}
		}
	}

	logger.Debug().Int("templates", cat.index.Count()).Int("warnings", len(cat.Warnings)).Msg("templates enumerated")
	return cat, nil
}

func (r *Registry) scan(cat *Catalog, dir string, source Source) error {
	logger := logging.GetLogger("registry")

	entries, err := r.fs.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return errors.Wrapf(err, errors.ErrDirRead, "failed to read templates directory %s", dir).
			WithDetail("path", dir)
	}

	for _, e := range entries {
		name := e.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}
		path := filepath.Join(dir, name)
		info, err := r.fs.Stat(path)
		if err != nil || !info.IsDir() {
			continue
		}

		// Local names shadow bundled ones
		if source == SourceBundled && cat.index.Has(name) {
			logger.Debug().Str("template", name).Msg("bundled template shadowed by local template")
			continue
		}

		if !manifest.Exists(r.fs, path) {
			msg := "skipping '" + name + "' (no " + manifest.FileName + " found)"
			logger.Warn().Str("dir", path).Msg(msg)
			cat.Warnings = append(cat.Warnings, Warning{Dir: path, Message: msg})
			continue
		}

		m, err := manifest.Load(r.fs, path)
		if err != nil {
			msg := "skipping '" + name + "': " + errors.GetMessage(err)
			logger.Warn().Str("dir", path).Err(err).Msg("skipping template")
			cat.Warnings = append(cat.Warnings, Warning{Dir: path, Message: msg})
			continue
		}

		if err := cat.index.Register(name, Template{Name: name, Path: path, Source: source, Manifest: m}); err != nil {
			return err
		}
	}
	return nil
}

// Find resolves a template by name
func (r *Registry) Find(name string) (Template, error) {
	cat, err := r.List()
	if err != nil {
		return Template{}, err
	}
	return cat.Get(name)
}

// Add copies the template at source (a local path or remote reference) into
// the local templates directory under name. A partially copied template is
// removed on failure; a remote clone is always removed.
func (r *Registry) Add(ctx context.Context, source, name string) (Template, error) {
	logger := logging.GetLogger("registry")

	if err := ValidateName(name); err != nil {
		return Template{}, err
	}

	dst := filepath.Join(r.localDir, name)
	if _, err := r.fs.Stat(dst); err == nil {
		return Template{}, errors.Newf(errors.ErrTemplateExists, "template '%s' already exists", name).
			WithDetail("path", dst)
	}

	src := source
	if remote.IsRemote(source) {
		ref, err := remote.Parse(source)
		if err != nil {
			return Template{}, err
		}
		if r.cloner == nil {
			return Template{}, errors.New(errors.ErrRemote, "remote templates are not supported here")
		}
		checkout, err := r.cloner.Clone(ctx, ref)
		if err != nil {
			return Template{}, err
		}
		defer func() {
			if err := checkout.Close(); err != nil {
				logger.Warn().Err(err).Msg("failed to remove clone")
			}
		}()
		src = checkout.Root
	}

	info, err := r.fs.Stat(src)
	if err != nil || !info.IsDir() {
		return Template{}, errors.Newf(errors.ErrNotFound, "template path '%s' does not exist", src).
			WithDetail("path", src)
	}

	if within(dst, src) {
		return Template{}, errors.Newf(errors.ErrInvalidInput,
			"cannot add '%s' into templates directory %s, which lies inside it; choose another --templates-dir", src, r.localDir).
			WithDetail("path", src)
	}

	m, err := manifest.Load(r.fs, src)
	if err != nil {
		return Template{}, err
	}

	if err := r.fs.MkdirAll(r.localDir, 0755); err != nil {
		return Template{}, errors.Wrapf(err, errors.ErrDirCreate, "failed to create templates directory %s", r.localDir)
	}

	// Copy verbatim: no substitution, manifest kept, VCS metadata dropped
	err = render.New(r.fs).Render(src, dst, render.Options{Exclusions: conditions.NewSet(".git")})
	if err != nil {
		if rmErr := r.fs.RemoveAll(dst); rmErr != nil {
			logger.Warn().Err(rmErr).Str("path", dst).Msg("failed to remove partial template")
		}
		return Template{}, err
	}

	logger.Info().Str("template", name).Str("source", source).Msg("template added")
	return Template{Name: name, Path: dst, Source: SourceLocal, Manifest: m}, nil
}

// Remove deletes a local template. Bundled templates cannot be removed.
func (r *Registry) Remove(name string) (Template, error) {
	t, err := r.Find(name)
	if err != nil {
		return Template{}, err
	}
	if t.Source == SourceBundled {
		return Template{}, errors.Newf(errors.ErrTemplateBundled,
			"'%s' is a bundled template and cannot be removed; add a local template with the same name to override it", name).
			WithDetail("name", name)
	}

	if err := r.fs.RemoveAll(t.Path); err != nil {
		return Template{}, errors.Wrapf(err, errors.ErrFileWrite, "failed to remove template '%s'", name).
			WithDetail("path", t.Path)
	}
	logger := logging.GetLogger("registry")
	logger.Info().Str("template", name).Msg("template removed")
	return t, nil
}

// within reports whether path is dir or lies below it, after making both
// absolute.
func within(path, dir string) bool {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return false
	}
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return false
	}
	rel, err := filepath.Rel(absDir, absPath)
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}

func quoteAll(names []string) []string {
	out := make([]string, len(names))
	for i, n := range names {
		out[i] = "'" + n + "'"
	}
	return out
}
