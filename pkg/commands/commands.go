// Package commands provides high-level command implementations for scaffold.
//
// This package contains the command orchestration layer that coordinates
// between the CLI interface and the template engine. Every command returns
// a result value that the CLI renders as text, JSON or YAML.
//
// Each command is implemented in its own subdirectory:
//   - list/     - ListTemplates
//   - info/     - TemplateInfo
//   - create/   - CreateProject
//   - add/      - AddTemplate
//   - remove/   - RemoveTemplate
//   - validate/ - ValidateTemplate
//   - defaults/ - config set/get/list/unset/reset
package commands

import (
	"context"

	"github.com/arthur-debert/scaffold/pkg/commands/add"
	"github.com/arthur-debert/scaffold/pkg/commands/create"
	"github.com/arthur-debert/scaffold/pkg/commands/info"
	"github.com/arthur-debert/scaffold/pkg/commands/list"
	"github.com/arthur-debert/scaffold/pkg/commands/remove"
	"github.com/arthur-debert/scaffold/pkg/commands/validate"
)

// ListTemplates enumerates local and bundled templates.
type ListTemplatesOptions = list.ListTemplatesOptions

func ListTemplates(opts ListTemplatesOptions) (*list.ListTemplatesResult, error) {
	return list.ListTemplates(opts)
}

// TemplateInfo describes a single template.
type TemplateInfoOptions = info.TemplateInfoOptions

func TemplateInfo(opts TemplateInfoOptions) (*info.TemplateInfoResult, error) {
	return info.TemplateInfo(opts)
}

// CreateProject renders a template into a new project directory.
type CreateProjectOptions = create.CreateProjectOptions

func CreateProject(ctx context.Context, opts CreateProjectOptions) (*create.CreateProjectResult, error) {
	return create.CreateProject(ctx, opts)
}

// AddTemplate copies a local or remote template into the templates directory.
type AddTemplateOptions = add.AddTemplateOptions

func AddTemplate(ctx context.Context, opts AddTemplateOptions) (*add.AddTemplateResult, error) {
	return add.AddTemplate(ctx, opts)
}

// RemoveTemplate deletes a local template.
type RemoveTemplateOptions = remove.RemoveTemplateOptions

func RemoveTemplate(opts RemoveTemplateOptions) (*remove.RemoveTemplateResult, error) {
	return remove.RemoveTemplate(opts)
}

// ValidateTemplate checks a template directory.
type ValidateTemplateOptions = validate.ValidateTemplateOptions

func ValidateTemplate(opts ValidateTemplateOptions) (*validate.ValidateTemplateResult, error) {
	return validate.ValidateTemplate(opts)
}
