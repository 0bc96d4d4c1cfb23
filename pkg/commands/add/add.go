package add

import (
	"context"
	"fmt"

	"github.com/arthur-debert/scaffold/pkg/logging"
	"github.com/arthur-debert/scaffold/pkg/registry"
	"github.com/arthur-debert/scaffold/pkg/remote"
)

// AddTemplateOptions defines the options for the AddTemplate command.
type AddTemplateOptions struct {
	Registry *registry.Registry
	// Source is a local directory or a remote reference
	Source string
	Name   string
}

// AddTemplateResult describes the added template
type AddTemplateResult struct {
	Name        string `json:"name" yaml:"name"`
	DisplayName string `json:"display_name" yaml:"display_name"`
	Source      string `json:"source" yaml:"source"`
	Remote      bool   `json:"remote" yaml:"remote"`
	Path        string `json:"path" yaml:"path"`
}

// AddTemplate copies a template into the local templates directory.
func AddTemplate(ctx context.Context, opts AddTemplateOptions) (*AddTemplateResult, error) {
	log := logging.GetLogger("commands.add")
	log.Debug().Str("command", "AddTemplate").Str("source", opts.Source).Str("name", opts.Name).Msg("Executing command")

	t, err := opts.Registry.Add(ctx, opts.Source, opts.Name)
	if err != nil {
		return nil, err
	}

	log.Info().Str("command", "AddTemplate").Str("path", t.Path).Msg("Command finished")
	return &AddTemplateResult{
		Name:        t.Name,
		DisplayName: t.Manifest.Name,
		Source:      opts.Source,
		Remote:      remote.IsRemote(opts.Source),
		Path:        t.Path,
	}, nil
}

// Text renders the confirmation with style markup
func (r *AddTemplateResult) Text() string {
	return fmt.Sprintf("Template '[name]%s[/name]' added successfully.\n", r.Name)
}
