package validate

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/arthur-debert/scaffold/pkg/conditions"
	"github.com/arthur-debert/scaffold/pkg/errors"
	"github.com/arthur-debert/scaffold/pkg/logging"
	"github.com/arthur-debert/scaffold/pkg/manifest"
	"github.com/arthur-debert/scaffold/pkg/render"
	"github.com/arthur-debert/scaffold/pkg/substitute"
	"github.com/arthur-debert/scaffold/pkg/types"
)

// Level of a check line
type Level string

const (
	LevelOK      Level = "ok"
	LevelWarning Level = "warning"
	LevelError   Level = "error"
)

// Check is one line of the validation report
type Check struct {
	Level   Level  `json:"level" yaml:"level"`
	Message string `json:"message" yaml:"message"`
}

// ValidateTemplateOptions defines the options for the ValidateTemplate command.
type ValidateTemplateOptions struct {
	FS   types.FS
	Path string
}

// ValidateTemplateResult is the validation report
type ValidateTemplateResult struct {
	Path         string   `json:"path" yaml:"path"`
	Valid        bool     `json:"valid" yaml:"valid"`
	Checks       []Check  `json:"checks" yaml:"checks"`
	Name         string   `json:"name,omitempty" yaml:"name,omitempty"`
	Description  string   `json:"description,omitempty" yaml:"description,omitempty"`
	Variables    int      `json:"variables" yaml:"variables"`
	Conditionals int      `json:"conditionals" yaml:"conditionals"`
	Undefined    []string `json:"undefined,omitempty" yaml:"undefined,omitempty"`
	Unused       []string `json:"unused,omitempty" yaml:"unused,omitempty"`

	parsed bool
}

func (r *ValidateTemplateResult) add(level Level, format string, args ...interface{}) {
	r.Checks = append(r.Checks, Check{Level: level, Message: fmt.Sprintf(format, args...)})
}

// ValidateTemplate checks a template directory without rendering it. The
// report is returned even when validation fails, together with the error.
func ValidateTemplate(opts ValidateTemplateOptions) (*ValidateTemplateResult, error) {
	log := logging.GetLogger("commands.validate")
	log.Debug().Str("command", "ValidateTemplate").Str("path", opts.Path).Msg("Executing command")

	result := &ValidateTemplateResult{Path: opts.Path, Checks: []Check{}}

	info, err := opts.FS.Stat(opts.Path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			result.add(LevelError, "Directory does not exist")
			return result, errors.Newf(errors.ErrNotFound, "Template directory '%s' does not exist", opts.Path).
				WithDetail("path", opts.Path)
		}
		result.add(LevelError, "Directory cannot be read")
		return result, errors.Wrapf(err, errors.ErrFileRead, "failed to stat %s", opts.Path)
	}
	if !info.IsDir() {
		result.add(LevelError, "Path is not a directory")
		return result, errors.Newf(errors.ErrInvalidInput, "'%s' is not a directory", opts.Path)
	}

	if !manifest.Exists(opts.FS, opts.Path) {
		result.add(LevelError, "%s not found", manifest.FileName)
		return result, errors.Newf(errors.ErrNotFound, "%s not found in '%s'", manifest.FileName, opts.Path)
	}
	result.add(LevelOK, "%s found", manifest.FileName)

	data, err := opts.FS.ReadFile(manifest.Path(opts.Path))
	if err != nil {
		result.add(LevelError, "%s cannot be read", manifest.FileName)
		return result, errors.Wrapf(err, errors.ErrFileRead, "failed to read %s", manifest.Path(opts.Path))
	}
	m, err := manifest.Decode(data)
	if err != nil {
		result.add(LevelError, "%s parse error: %s", manifest.FileName, rootCause(err))
		return result, err
	}
	result.add(LevelOK, "%s is valid TOML", manifest.FileName)

	result.parsed = true
	result.Name = m.Name
	result.Description = m.Description
	result.Variables = len(m.Variables)
	result.Conditionals = len(m.Conditionals)

	describedAll := true
	errorCount := 0
	for _, p := range m.Problems() {
		level := LevelWarning
		if p.Severity == manifest.SeverityError {
			level = LevelError
			errorCount++
		}
		if strings.HasSuffix(p.Message, "has no description") {
			describedAll = false
		}
		result.add(level, "%s", capitalize(p.Message))
	}
	if describedAll && len(m.Variables) > 0 {
		result.add(LevelOK, "All variables have descriptions")
	}

	if err := result.checkTokens(opts.FS, m); err != nil {
		return result, err
	}

	result.Valid = errorCount == 0
	if !result.Valid {
		return result, errors.Newf(errors.ErrConfigValid, "template has %d error(s)", errorCount).
			WithDetail("path", opts.Path)
	}

	log.Info().Str("command", "ValidateTemplate").Int("checks", len(result.Checks)).Msg("Command finished")
	return result, nil
}

// checkTokens compares the tokens used in names and text files with the
// declared variables. Variables referenced only by conditionals count as used.
func (r *ValidateTemplateResult) checkTokens(fsys types.FS, m *manifest.Manifest) error {
	used := make(map[string]bool)
	err := render.New(fsys).Walk(r.Path, render.Options{SkipManifest: true}, func(e render.Entry, data []byte) error {
		if e.Rel == "." {
			return nil
		}
		for _, tok := range substitute.Tokens(filepath.Base(e.Source)) {
			used[tok] = true
		}
		if !e.Dir && !e.Binary {
			for _, tok := range substitute.Tokens(string(data)) {
				used[tok] = true
			}
		}
		return nil
	})
	if err != nil {
		r.add(LevelError, "Template files cannot be scanned: %s", errors.GetMessage(err))
		return err
	}

	defined := make(map[string]bool)
	for _, v := range m.Variables {
		defined[v.Name] = true
	}
	inConditions := make(map[string]bool)
	for _, c := range m.Conditionals {
		if expr, err := conditions.Parse(c.When); err == nil {
			inConditions[expr.Variable] = true
		}
	}

	for name := range used {
		if !defined[name] {
			r.Undefined = append(r.Undefined, name)
		}
	}
	for name := range defined {
		if !used[name] && !inConditions[name] {
			r.Unused = append(r.Unused, name)
		}
	}
	sort.Strings(r.Undefined)
	sort.Strings(r.Unused)

	for _, name := range r.Undefined {
		r.add(LevelWarning, "Variable '{{%s}}' used in files but not defined", name)
	}
	for _, name := range r.Unused {
		r.add(LevelWarning, "Variable '%s' defined but never used", name)
	}
	if len(r.Undefined) == 0 && len(r.Unused) == 0 && len(defined) > 0 {
		r.add(LevelOK, "All variables are defined and used")
	}
	return nil
}

// Text renders the report with style markup
func (r *ValidateTemplateResult) Text() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Validating template at: [info]%s[/info]\n\n", r.Path)
	for _, c := range r.Checks {
		switch c.Level {
		case LevelOK:
			fmt.Fprintf(&b, "[success]ok[/success] %s\n", c.Message)
		case LevelWarning:
			fmt.Fprintf(&b, "[warning]![/warning] %s\n", c.Message)
		default:
			fmt.Fprintf(&b, "[error]x[/error] %s\n", c.Message)
		}
	}
	if r.parsed {
		fmt.Fprintf(&b, "\nTemplate: [name]%s[/name]\n", r.Name)
		fmt.Fprintf(&b, "Description: %s\n", r.Description)
		fmt.Fprintf(&b, "Variables: %d\n", r.Variables)
		fmt.Fprintf(&b, "Conditionals: %d\n", r.Conditionals)
	}
	return b.String()
}

func rootCause(err error) string {
	var se *errors.ScaffoldError
	if errors.As(err, &se) && se.Wrapped != nil {
		return se.Wrapped.Error()
	}
	return err.Error()
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
