package remove

import (
	"fmt"

	"github.com/arthur-debert/scaffold/pkg/logging"
	"github.com/arthur-debert/scaffold/pkg/registry"
)

// RemoveTemplateOptions defines the options for the RemoveTemplate command.
type RemoveTemplateOptions struct {
	Registry *registry.Registry
	Name     string
}

// RemoveTemplateResult describes the removed template
type RemoveTemplateResult struct {
	Name string `json:"name" yaml:"name"`
	Path string `json:"path" yaml:"path"`
}

// RemoveTemplate deletes a local template. Bundled templates are refused.
func RemoveTemplate(opts RemoveTemplateOptions) (*RemoveTemplateResult, error) {
	log := logging.GetLogger("commands.remove")
	log.Debug().Str("command", "RemoveTemplate").Str("name", opts.Name).Msg("Executing command")

	t, err := opts.Registry.Remove(opts.Name)
	if err != nil {
		return nil, err
	}

	log.Info().Str("command", "RemoveTemplate").Str("path", t.Path).Msg("Command finished")
	return &RemoveTemplateResult{Name: t.Name, Path: t.Path}, nil
}

// Text renders the confirmation with style markup
func (r *RemoveTemplateResult) Text() string {
	return fmt.Sprintf("Template '[name]%s[/name]' removed.\n", r.Name)
}
