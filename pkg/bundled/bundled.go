// Package bundled ships the built-in templates inside the binary and
// extracts them into the user cache on demand.
//
// The cache directory holds exactly one program version's templates: a
// .version marker records which, and any mismatch wipes the directory and
// extracts again. Two processes racing on a stale marker both re-extract,
// which is wasteful but safe.
package bundled

import (
	"embed"
	"io/fs"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/arthur-debert/scaffold/pkg/errors"
	"github.com/arthur-debert/scaffold/pkg/internal/hashutil"
	"github.com/arthur-debert/scaffold/pkg/logging"
	"github.com/arthur-debert/scaffold/pkg/paths"
	"github.com/arthur-debert/scaffold/pkg/types"
)

//go:embed all:templates
var embedded embed.FS

// Templates returns the embedded template set rooted at the template directories
func Templates() fs.FS {
	sub, err := fs.Sub(embedded, "templates")
	if err != nil {
		// Only fails for an invalid literal path
		panic(err)
	}
	return sub
}

// DevVersion is the version reported by builds without release ldflags
const DevVersion = "dev"

// MarkerVersion returns the value recorded in the cache marker for version.
// Development builds all report DevVersion, so their marker also carries a
// checksum of source and edited templates are extracted again.
func MarkerVersion(version string, source fs.FS) string {
	if version != DevVersion {
		return version
	}
	sum, err := hashutil.TreeChecksum(source)
	if err != nil {
		return version
	}
	return version + "+" + sum
}

// Names lists the bundled template directory names
func Names(source fs.FS) ([]string, error) {
	entries, err := fs.ReadDir(source, ".")
	if err != nil {
		return nil, err
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() && !strings.HasPrefix(e.Name(), ".") {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

// Extractor keeps a cache directory in sync with an embedded template set
type Extractor struct {
	fs      types.FS
	source  fs.FS
	dir     string
	version string
}

// NewExtractor returns an extractor writing the embedded templates to dir,
// keyed on version.
func NewExtractor(fsys types.FS, dir, version string) *Extractor {
	return &Extractor{fs: fsys, source: Templates(), dir: dir, version: version}
}

// WithSource replaces the embedded template set
func (e *Extractor) WithSource(source fs.FS) *Extractor {
	e.source = source
	return e
}

// Dir returns the cache directory
func (e *Extractor) Dir() string {
	return e.dir
}

func (e *Extractor) markerPath() string {
	return filepath.Join(e.dir, paths.VersionMarker)
}

// NeedsExtraction reports whether the marker is missing or records another version
func (e *Extractor) NeedsExtraction() bool {
	data, err := e.fs.ReadFile(e.markerPath())
	if err != nil {
		return true
	}
	return strings.TrimSpace(string(data)) != e.version
}

// Ensure extracts the templates if needed and returns the cache directory.
// extracted reports whether an extraction happened.
func (e *Extractor) Ensure() (dir string, extracted bool, err error) {
	if !e.NeedsExtraction() {
		return e.dir, false, nil
	}
	if err := e.Extract(); err != nil {
		return "", false, err
	}
	return e.dir, true, nil
}

// Extract wipes the cache directory and writes every embedded file followed
// by the version marker.
func (e *Extractor) Extract() error {
	logger := logging.GetLogger("bundled")
	logger.Info().Str("dir", e.dir).Str("version", e.version).Msg("extracting bundled templates")

	if err := e.fs.RemoveAll(e.dir); err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "failed to remove old bundled templates at %s", e.dir).
			WithDetail("path", e.dir)
	}
	if err := e.fs.MkdirAll(e.dir, 0755); err != nil {
		return errors.Wrapf(err, errors.ErrDirCreate, "failed to create %s", e.dir).
			WithDetail("path", e.dir)
	}

	files := 0
	err := fs.WalkDir(e.source, ".", func(p string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return errors.Wrapf(walkErr, errors.ErrFileRead, "failed to read embedded %s", p)
		}
		if p == "." {
			return nil
		}
		dest := filepath.Join(e.dir, filepath.FromSlash(p))
		if d.IsDir() {
			if err := e.fs.MkdirAll(dest, 0755); err != nil {
				return errors.Wrapf(err, errors.ErrDirCreate, "failed to create directory %s", dest).
					WithDetail("path", dest)
			}
			return nil
		}

		data, err := fs.ReadFile(e.source, p)
		if err != nil {
			return errors.Wrapf(err, errors.ErrFileRead, "failed to read embedded %s", p)
		}
		if err := e.fs.WriteFile(dest, data, modeFor(p)); err != nil {
			return errors.Wrapf(err, errors.ErrFileWrite, "failed to write %s", dest).
				WithDetail("path", dest)
		}
		files++
		return nil
	})
	if err != nil {
		return err
	}

	if err := e.fs.WriteFile(e.markerPath(), []byte(e.version), 0644); err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "failed to write version marker").
			WithDetail("path", e.markerPath())
	}

	logger.Debug().Int("files", files).Msg("bundled templates extracted")
	return nil
}

// embed.FS drops permission bits; shell scripts are the only files that need
// to stay executable
func modeFor(p string) fs.FileMode {
	if path.Ext(p) == ".sh" {
		return 0755
	}
	return 0644
}
