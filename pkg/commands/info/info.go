package info

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/scaffold/pkg/errors"
	"github.com/arthur-debert/scaffold/pkg/logging"
	"github.com/arthur-debert/scaffold/pkg/manifest"
	"github.com/arthur-debert/scaffold/pkg/registry"
	"github.com/arthur-debert/scaffold/pkg/types"
)

// readmeNames are tried in order
var readmeNames = []string{"README.md", "readme.md", "Readme.md", "README"}

// TemplateInfoOptions defines the options for the TemplateInfo command.
type TemplateInfoOptions struct {
	Registry *registry.Registry
	FS       types.FS
	Name     string
	// Readme loads the template's README when present
	Readme bool
}

// VariableInfo describes one declared variable
type VariableInfo struct {
	Name        string   `json:"name" yaml:"name"`
	Description string   `json:"description" yaml:"description"`
	Type        string   `json:"type" yaml:"type"`
	Default     *string  `json:"default,omitempty" yaml:"default,omitempty"`
	Choices     []string `json:"choices,omitempty" yaml:"choices,omitempty"`
}

// ConditionalInfo describes one conditional rule
type ConditionalInfo struct {
	Action string `json:"action" yaml:"action"`
	Path   string `json:"path" yaml:"path"`
	When   string `json:"when" yaml:"when"`
}

// TemplateInfoResult is everything known about a template
type TemplateInfoResult struct {
	Name         string            `json:"name" yaml:"name"`
	DisplayName  string            `json:"display_name" yaml:"display_name"`
	Description  string            `json:"description" yaml:"description"`
	Source       registry.Source   `json:"source" yaml:"source"`
	Path         string            `json:"path" yaml:"path"`
	Variables    []VariableInfo    `json:"variables" yaml:"variables"`
	Conditionals []ConditionalInfo `json:"conditionals,omitempty" yaml:"conditionals,omitempty"`
	Hooks        []string          `json:"hooks,omitempty" yaml:"hooks,omitempty"`
	Readme       string            `json:"readme,omitempty" yaml:"readme,omitempty"`
	ReadmePath   string            `json:"readme_path,omitempty" yaml:"readme_path,omitempty"`
}

// TemplateInfo describes a single template.
func TemplateInfo(opts TemplateInfoOptions) (*TemplateInfoResult, error) {
	log := logging.GetLogger("commands.info")
	log.Debug().Str("command", "TemplateInfo").Str("template", opts.Name).Msg("Executing command")

	t, err := opts.Registry.Find(opts.Name)
	if err != nil {
		return nil, err
	}

	m := t.Manifest
	result := &TemplateInfoResult{
		Name:        t.Name,
		DisplayName: m.Name,
		Description: m.Description,
		Source:      t.Source,
		Path:        t.Path,
		Variables:   []VariableInfo{},
		Hooks:       m.Hooks.PostCreate,
	}

	for _, v := range m.Variables {
		result.Variables = append(result.Variables, VariableInfo{
			Name:        v.Name,
			Description: v.Description,
			Type:        string(v.Kind()),
			Default:     v.Default,
			Choices:     v.Choices,
		})
	}

	for _, c := range m.Conditionals {
		action := "exclude"
		if c.IsInclude() {
			action = "include"
		}
		result.Conditionals = append(result.Conditionals, ConditionalInfo{Action: action, Path: c.Path(), When: c.When})
	}

	if opts.Readme {
		if err := result.loadReadme(opts.FS); err != nil {
			return nil, err
		}
	}

	log.Info().Str("command", "TemplateInfo").Str("template", t.Name).Msg("Command finished")
	return result, nil
}

func (r *TemplateInfoResult) loadReadme(fsys types.FS) error {
	for _, name := range readmeNames {
		path := filepath.Join(r.Path, name)
		data, err := fsys.ReadFile(path)
		if err == nil {
			r.Readme = string(data)
			r.ReadmePath = path
			return nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return errors.Wrapf(err, errors.ErrFileRead, "failed to read %s", path).WithDetail("path", path)
		}
	}
	return nil
}

// Text renders the description with style markup. The README is left out;
// callers render it separately.
func (r *TemplateInfoResult) Text() string {
	var b strings.Builder

	fmt.Fprintf(&b, "[name]%s[/name]", r.DisplayName)
	if r.Source == registry.SourceBundled {
		b.WriteString(" [muted](bundled)[/muted]")
	}
	fmt.Fprintf(&b, "\n%s\n\n", r.Description)

	if len(r.Variables) == 0 {
		b.WriteString("No variables defined.\n")
	} else {
		b.WriteString("Variables:\n\n")
		for _, v := range r.Variables {
			typeStr := ""
			switch manifest.VariableType(v.Type) {
			case manifest.TypeChoice:
				typeStr = " [muted][" + strings.Join(v.Choices, "|") + "][/muted]"
			case manifest.TypeBool:
				typeStr = " [muted][yes/no][/muted]"
			}
			def := ""
			if v.Default != nil {
				def = fmt.Sprintf(" (default: [muted]%s[/muted])", *v.Default)
			}
			fmt.Fprintf(&b, "  [success]%s[/success]%s - %s%s\n", v.Name, typeStr, v.Description, def)
		}
	}

	if len(r.Conditionals) > 0 {
		b.WriteString("\nConditional files:\n\n")
		for _, c := range r.Conditionals {
			fmt.Fprintf(&b, "  [info]%s %s[/info] when [muted]%s[/muted]\n", c.Action, c.Path, c.When)
		}
	}

	if len(r.Hooks) > 0 {
		b.WriteString("\nPost-create hooks:\n\n")
		for _, h := range r.Hooks {
			fmt.Fprintf(&b, "  [muted]%s[/muted]\n", h)
		}
	}

	return b.String()
}
