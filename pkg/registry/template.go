package registry

import (
	"regexp"
	"strings"

	"github.com/arthur-debert/scaffold/pkg/errors"
	"github.com/arthur-debert/scaffold/pkg/manifest"
)

// Source tags where a template came from
type Source string

const (
	SourceLocal   Source = "local"
	SourceBundled Source = "bundled"
)

// Template is a manifest bound to the directory it was loaded from. It is
// built fresh on every enumeration and never mutated.
type Template struct {
	// Name is the template directory name, used to select it
	Name     string
	Path     string
	Source   Source
	Manifest *manifest.Manifest
}

// Warning records a directory skipped during enumeration
type Warning struct {
	Dir     string
	Message string
}

var namePattern = regexp.MustCompile(`^[\p{L}\p{N}_-]+$`)

// ValidateName checks a name given to `add`: non-empty, no path
// separators, no leading dot, letters, digits, '-' and '_' only.
func ValidateName(name string) error {
	switch {
	case name == "":
		return errors.New(errors.ErrInvalidInput, "template name cannot be empty")
	case strings.ContainsAny(name, `/\`):
		return errors.Newf(errors.ErrInvalidInput, "template name %q cannot contain path separators", name)
	case strings.HasPrefix(name, "."):
		return errors.Newf(errors.ErrInvalidInput, "template name %q cannot start with '.'", name)
	case !namePattern.MatchString(name):
		return errors.Newf(errors.ErrInvalidInput, "template name %q can only contain letters, digits, hyphens and underscores", name)
	}
	return nil
}
