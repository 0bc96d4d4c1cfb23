// Package variables builds the assignment used for one render: the value
// of every template variable, as a string.
//
// Precedence, lowest first: manifest default, global default, value given
// on the command line. Variables still missing after that are either asked
// for through a Prompter or, in use-defaults mode, filled with a type
// fallback (bool: "false", choice: first choice, string: empty).
package variables

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/scaffold/pkg/errors"
	"github.com/arthur-debert/scaffold/pkg/logging"
	"github.com/arthur-debert/scaffold/pkg/manifest"
)

// ProjectNameVar is derived from the output directory when not given
const ProjectNameVar = "project_name"

// Assignment maps variable names to resolved values
type Assignment map[string]string

// Lookup is read access to the global defaults store
type Lookup interface {
	Lookup(name string) (string, bool)
}

// Prompter asks the user for values
type Prompter interface {
	Confirm(prompt string, def bool) (bool, error)
	Select(prompt string, options []string, def string) (string, error)
	Input(prompt string, def string) (string, error)
}

// ResolveOptions are the inputs to Resolve
type ResolveOptions struct {
	Manifest *manifest.Manifest
	// CLI holds values given with --var; they always win
	CLI map[string]string
	// Globals may be nil
	Globals Lookup
	// UseDefaults never prompts (--yes and --dry-run)
	UseDefaults bool
	// OutputDir is used to derive project_name
	OutputDir string
	// Prompter is required unless UseDefaults is set
	Prompter Prompter
}

// Resolve computes the assignment for a render
func Resolve(opts ResolveOptions) (Assignment, error) {
	logger := logging.GetLogger("variables")
	if opts.Manifest == nil {
		return nil, errors.New(errors.ErrInternal, "resolve called without a manifest")
	}
	if !opts.UseDefaults && opts.Prompter == nil {
		return nil, errors.New(errors.ErrInternal, "interactive resolve needs a prompter")
	}

	out := make(Assignment, len(opts.Manifest.Variables)+len(opts.CLI))
	for k, v := range opts.CLI {
		out[k] = v
	}

	derived := DeriveProjectName(opts.OutputDir)
	if opts.UseDefaults && derived != "" {
		if _, given := out[ProjectNameVar]; !given {
			out[ProjectNameVar] = derived
		}
	}

	for _, v := range opts.Manifest.Variables {
		if value, given := out[v.Name]; given {
			checked, err := checkValue(v, value)
			if err != nil {
				return nil, err
			}
			out[v.Name] = checked
			continue
		}

		def, hasDefault := EffectiveDefault(v, opts.Globals)
		if hasDefault {
			checked, err := checkValue(v, def)
			switch {
			case err == nil:
				def = checked
			case opts.UseDefaults:
				source := defaultSource(v, opts.Globals)
				return nil, errors.Wrapf(err, errors.ErrInvalidInput, "invalid %s default for '%s'", source, v.Name).
					WithDetail("variable", v.Name).
					WithDetail("source", source)
			default:
				logger.Warn().Err(err).Str("variable", v.Name).Msg("ignoring invalid default")
				def, hasDefault = "", false
			}
		}
		if !hasDefault && v.Name == ProjectNameVar && derived != "" {
			def, hasDefault = derived, true
		}

		var value string
		var err error
		if opts.UseDefaults {
			value = fallback(v, def, hasDefault)
		} else {
			value, err = ask(opts.Prompter, v, def, hasDefault)
			if err != nil {
				return nil, errors.Wrapf(err, errors.ErrInvalidInput, "failed to read value for %q", v.Name)
			}
		}
		out[v.Name] = value
		logger.Debug().Str("variable", v.Name).Str("value", value).Msg("variable resolved")
	}

	return out, nil
}

// EffectiveDefault returns the global default if set, else the manifest default
func EffectiveDefault(v manifest.Variable, globals Lookup) (string, bool) {
	if globals != nil {
		if g, ok := globals.Lookup(v.Name); ok {
			return g, true
		}
	}
	return v.DefaultValue()
}

// defaultSource names where EffectiveDefault found its value
func defaultSource(v manifest.Variable, globals Lookup) string {
	if globals != nil {
		if _, ok := globals.Lookup(v.Name); ok {
			return "global"
		}
	}
	return "manifest"
}

func fallback(v manifest.Variable, def string, hasDefault bool) string {
	if hasDefault {
		return def
	}
	switch v.Kind() {
	case manifest.TypeBool:
		return "false"
	case manifest.TypeChoice:
		if len(v.Choices) > 0 {
			return v.Choices[0]
		}
	}
	return ""
}

func ask(p Prompter, v manifest.Variable, def string, hasDefault bool) (string, error) {
	switch v.Kind() {
	case manifest.TypeBool:
		ok, err := p.Confirm(promptText(v), def == "true")
		if err != nil {
			return "", err
		}
		if ok {
			return "true", nil
		}
		return "false", nil

	case manifest.TypeChoice:
		if len(v.Choices) == 0 {
			return "", errors.Newf(errors.ErrConfigValid, "variable '%s' is type 'choice' but has no choices defined", v.Name)
		}
		if !hasDefault || !contains(v.Choices, def) {
			def = v.Choices[0]
		}
		return p.Select(promptText(v), v.Choices, def)

	default:
		return p.Input(promptText(v), def)
	}
}

func promptText(v manifest.Variable) string {
	if v.Description == "" {
		return v.Name
	}
	return fmt.Sprintf("%s (%s)", v.Description, v.Name)
}

// checkValue validates value against the variable type. Bool values are
// returned in canonical "true"/"false" form.
func checkValue(v manifest.Variable, value string) (string, error) {
	switch v.Kind() {
	case manifest.TypeBool:
		b, ok := manifest.ParseBool(value)
		if !ok {
			return "", errors.Newf(errors.ErrInvalidInput, "variable '%s' is a bool, got %q (use true or false)", v.Name, value).
				WithDetail("variable", v.Name)
		}
		return b, nil
	case manifest.TypeChoice:
		if !contains(v.Choices, value) {
			return "", errors.Newf(errors.ErrInvalidInput, "variable '%s' must be one of %s, got %q",
				v.Name, strings.Join(v.Choices, ", "), value).
				WithDetail("variable", v.Name)
		}
	}
	return value, nil
}

// DeriveProjectName turns an output directory into a project name: its base
// name with '-' replaced by '_'.
func DeriveProjectName(outputDir string) string {
	if outputDir == "" {
		return ""
	}
	base := filepath.Base(filepath.Clean(outputDir))
	if base == "." || base == string(filepath.Separator) {
		return ""
	}
	return strings.ReplaceAll(base, "-", "_")
}

// ParseKeyValue splits "key=value" on the first '='
func ParseKeyValue(s string) (string, string, error) {
	key, value, ok := strings.Cut(s, "=")
	key = strings.TrimSpace(key)
	if !ok || key == "" {
		return "", "", errors.Newf(errors.ErrInvalidInput, "invalid variable %q: expected KEY=VALUE", s)
	}
	return key, value, nil
}

// ParseAssignments parses repeated --var flags. Later flags win.
func ParseAssignments(pairs []string) (map[string]string, error) {
	out := make(map[string]string, len(pairs))
	for _, p := range pairs {
		k, v, err := ParseKeyValue(p)
		if err != nil {
			return nil, err
		}
		out[k] = v
	}
	return out, nil
}

func contains(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
