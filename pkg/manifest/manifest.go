// Package manifest reads and validates template.toml, the metadata file at
// the root of every template.
package manifest

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/arthur-debert/scaffold/pkg/conditions"
	"github.com/arthur-debert/scaffold/pkg/errors"
	"github.com/arthur-debert/scaffold/pkg/types"
	toml "github.com/pelletier/go-toml/v2"
)

// FileName is the manifest file expected at every template root
const FileName = "template.toml"

// VariableType discriminates how a variable is prompted for and defaulted
type VariableType string

const (
	TypeString VariableType = "string"
	TypeBool   VariableType = "bool"
	TypeChoice VariableType = "choice"
)

var identifierPattern = regexp.MustCompile(`^\w+$`)

// Manifest is the parsed content of template.toml
type Manifest struct {
	Name         string            `toml:"name" json:"name" yaml:"name"`
	Description  string            `toml:"description" json:"description" yaml:"description"`
	Variables    []Variable        `toml:"variables" json:"variables" yaml:"variables"`
	Conditionals []conditions.Rule `toml:"conditionals" json:"conditionals" yaml:"conditionals"`
	Hooks        Hooks             `toml:"hooks" json:"hooks" yaml:"hooks"`
}

// Variable declares one substitution variable
type Variable struct {
	Name        string       `toml:"name" json:"name" yaml:"name"`
	Description string       `toml:"description" json:"description" yaml:"description"`
	Default     *string      `toml:"default" json:"default,omitempty" yaml:"default,omitempty"`
	Type        VariableType `toml:"type" json:"type,omitempty" yaml:"type,omitempty"`
	Choices     []string     `toml:"choices" json:"choices,omitempty" yaml:"choices,omitempty"`
}

// Hooks lists commands run after a project is created
type Hooks struct {
	PostCreate []string `toml:"post_create" json:"post_create,omitempty" yaml:"post_create,omitempty"`
}

// Kind returns the variable type, defaulting to string
func (v Variable) Kind() VariableType {
	if v.Type == "" {
		return TypeString
	}
	return v.Type
}

// DefaultValue returns the declared default and whether one was declared
func (v Variable) DefaultValue() (string, bool) {
	if v.Default == nil {
		return "", false
	}
	return *v.Default, true
}

// ParseBool reads the spellings accepted for bool values (true, false, yes,
// no; any case) and returns the canonical "true" or "false".
func ParseBool(s string) (string, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "yes":
		return "true", true
	case "false", "no":
		return "false", true
	}
	return "", false
}

// Variable returns the declared variable with the given name
func (m *Manifest) Variable(name string) (Variable, bool) {
	for _, v := range m.Variables {
		if v.Name == name {
			return v, true
		}
	}
	return Variable{}, false
}

// Severity of a manifest problem
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Problem is a single validation finding
type Problem struct {
	Severity Severity
	Message  string
}

func (p Problem) String() string {
	return fmt.Sprintf("%s: %s", p.Severity, p.Message)
}

// Problems lists every defect in the manifest. Errors make the manifest
// unusable; warnings are reported by the validate command only.
func (m *Manifest) Problems() []Problem {
	var problems []Problem
	add := func(sev Severity, format string, args ...interface{}) {
		problems = append(problems, Problem{Severity: sev, Message: fmt.Sprintf(format, args...)})
	}

	if strings.TrimSpace(m.Name) == "" {
		add(SeverityError, "missing required field 'name'")
	}
	if strings.TrimSpace(m.Description) == "" {
		add(SeverityWarning, "missing 'description'")
	}

	seen := make(map[string]bool)
	for i, v := range m.Variables {
		switch {
		case v.Name == "":
			add(SeverityError, "variable #%d has no name", i+1)
			continue
		case !identifierPattern.MatchString(v.Name):
			add(SeverityError, "variable %q is not a valid identifier (letters, digits, underscore)", v.Name)
		}
		if seen[v.Name] {
			add(SeverityError, "variable %q is declared more than once", v.Name)
		}
		seen[v.Name] = true

		if v.Description == "" {
			add(SeverityWarning, "variable %q has no description", v.Name)
		}

		switch v.Kind() {
		case TypeString:
		case TypeBool:
			if d, ok := v.DefaultValue(); ok {
				if _, valid := ParseBool(d); !valid {
					add(SeverityWarning, "bool variable %q has default %q, expected \"true\" or \"false\"", v.Name, d)
				}
			}
		case TypeChoice:
			if len(v.Choices) == 0 {
				add(SeverityError, "choice variable %q has no choices", v.Name)
			} else if d, ok := v.DefaultValue(); ok && !contains(v.Choices, d) {
				add(SeverityWarning, "choice variable %q default %q is not one of its choices", v.Name, d)
			}
		default:
			add(SeverityError, "variable %q has unknown type %q (expected string, bool or choice)", v.Name, v.Type)
		}
	}

	for i, c := range m.Conditionals {
		if err := c.Validate(); err != nil {
			add(SeverityError, "conditional #%d: %s", i+1, errors.GetMessage(err))
			continue
		}
		if strings.ContainsAny(c.Path(), `/\`) {
			add(SeverityWarning, "conditional #%d path %q contains a separator; only single names are matched", i+1, c.Path())
		}
		expr, _ := conditions.Parse(c.When)
		if !seen[expr.Variable] {
			add(SeverityWarning, "conditional #%d refers to undeclared variable %q", i+1, expr.Variable)
		}
	}

	for i, cmd := range m.Hooks.PostCreate {
		if strings.TrimSpace(cmd) == "" {
			add(SeverityWarning, "post_create hook #%d is empty", i+1)
		}
	}

	return problems
}

// Validate returns a CONFIG_INVALID error listing every error-level problem
func (m *Manifest) Validate() error {
	var msgs []string
	for _, p := range m.Problems() {
		if p.Severity == SeverityError {
			msgs = append(msgs, p.Message)
		}
	}
	if len(msgs) == 0 {
		return nil
	}
	return errors.Newf(errors.ErrConfigValid, "invalid %s: %s", FileName, strings.Join(msgs, "; ")).
		WithDetail("problems", msgs)
}

// Decode parses manifest TOML without validating it
func Decode(data []byte) (*Manifest, error) {
	var m Manifest
	if err := toml.Unmarshal(data, &m); err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigParse, "failed to parse %s", FileName)
	}
	return &m, nil
}

// Parse decodes and validates a manifest
func Parse(data []byte) (*Manifest, error) {
	m, err := Decode(data)
	if err != nil {
		return nil, err
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}

// Path returns the manifest location inside a template root
func Path(dir string) string {
	return filepath.Join(dir, FileName)
}

// Exists reports whether dir directly contains a manifest file
func Exists(fsys types.FS, dir string) bool {
	info, err := fsys.Stat(Path(dir))
	return err == nil && !info.IsDir()
}

// Load reads, decodes and validates the manifest at the root of dir
func Load(fsys types.FS, dir string) (*Manifest, error) {
	path := Path(dir)
	data, err := fsys.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, errors.Newf(errors.ErrNotFound, "%s not found in %s", FileName, dir).
				WithDetail("path", path)
		}
		return nil, errors.Wrapf(err, errors.ErrFileRead, "failed to read %s", path).
			WithDetail("path", path)
	}

	m, err := Parse(data)
	if err != nil {
		var se *errors.ScaffoldError
		if errors.As(err, &se) {
			se.WithDetail("path", path)
		}
		return nil, err
	}
	return m, nil
}

func contains(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
