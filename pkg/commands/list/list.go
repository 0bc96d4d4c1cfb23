package list

import (
	"fmt"
	"strings"

	"github.com/arthur-debert/scaffold/pkg/logging"
	"github.com/arthur-debert/scaffold/pkg/registry"
)

// ListTemplatesOptions defines the options for the ListTemplates command.
type ListTemplatesOptions struct {
	Registry *registry.Registry
}

// TemplateSummary is one row of the listing
type TemplateSummary struct {
	Name        string          `json:"name" yaml:"name"`
	DisplayName string          `json:"display_name" yaml:"display_name"`
	Description string          `json:"description" yaml:"description"`
	Source      registry.Source `json:"source" yaml:"source"`
	Path        string          `json:"path" yaml:"path"`
}

// ListTemplatesResult holds every available template, local ones first
type ListTemplatesResult struct {
	Templates []TemplateSummary `json:"templates" yaml:"templates"`
	Warnings  []string          `json:"warnings,omitempty" yaml:"warnings,omitempty"`
}

// ListTemplates enumerates local and bundled templates.
func ListTemplates(opts ListTemplatesOptions) (*ListTemplatesResult, error) {
	log := logging.GetLogger("commands.list")
	log.Debug().Str("command", "ListTemplates").Msg("Executing command")

	cat, err := opts.Registry.List()
	if err != nil {
		return nil, err
	}

	result := &ListTemplatesResult{Templates: []TemplateSummary{}}
	for _, t := range cat.Templates() {
		result.Templates = append(result.Templates, TemplateSummary{
			Name:        t.Name,
			DisplayName: t.Manifest.Name,
			Description: t.Manifest.Description,
			Source:      t.Source,
			Path:        t.Path,
		})
	}
	for _, w := range cat.Warnings {
		result.Warnings = append(result.Warnings, w.Message)
	}

	log.Info().Str("command", "ListTemplates").Int("templateCount", len(result.Templates)).Msg("Command finished")
	return result, nil
}

// Text renders the listing with style markup
func (r *ListTemplatesResult) Text() string {
	if len(r.Templates) == 0 {
		return "No templates available. Run '[code]scaffold add <path> <name>[/code]' to add a template first.\n"
	}

	var b strings.Builder
	b.WriteString("Available templates:\n\n")
	for _, t := range r.Templates {
		tag := ""
		if t.Source == registry.SourceBundled {
			tag = " [muted](bundled)[/muted]"
		}
		fmt.Fprintf(&b, "  [name]%s[/name]%s - %s\n", t.Name, tag, t.Description)
	}
	return b.String()
}
