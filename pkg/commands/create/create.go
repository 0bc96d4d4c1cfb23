package create

import (
	"bytes"
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/scaffold/pkg/conditions"
	"github.com/arthur-debert/scaffold/pkg/errors"
	"github.com/arthur-debert/scaffold/pkg/hooks"
	"github.com/arthur-debert/scaffold/pkg/logging"
	"github.com/arthur-debert/scaffold/pkg/registry"
	"github.com/arthur-debert/scaffold/pkg/render"
	"github.com/arthur-debert/scaffold/pkg/types"
	"github.com/arthur-debert/scaffold/pkg/variables"
)

// Progress tracks rendered files
type Progress interface {
	Increment()
	Stop()
}

// HookRunner executes post-create commands in the project directory
type HookRunner interface {
	Run(ctx context.Context, commands []string, dir string) []hooks.Result
}

// CreateProjectOptions defines the options for the CreateProject command.
type CreateProjectOptions struct {
	Registry *registry.Registry
	FS       types.FS

	// Template is the template name; empty selects one interactively
	Template string
	// OutputDir is the project directory; empty asks for it interactively
	OutputDir string
	// Vars are values given on the command line
	Vars    map[string]string
	Globals variables.Lookup

	// UseDefaults never prompts
	UseDefaults bool
	// DryRun resolves everything and previews the tree without writing
	DryRun  bool
	NoHooks bool

	// Prompter is required unless UseDefaults or DryRun is set
	Prompter variables.Prompter
	// Hooks may be nil, in which case hooks are skipped
	Hooks HookRunner
	// NewProgress may be nil
	NewProgress func(total int) Progress
	// Notify receives status lines with style markup; may be nil
	Notify func(msg string)
}

// HookOutcome reports a single post-create command
type HookOutcome struct {
	Command  string `json:"command" yaml:"command"`
	OK       bool   `json:"ok" yaml:"ok"`
	ExitCode int    `json:"exit_code" yaml:"exit_code"`
	Error    string `json:"error,omitempty" yaml:"error,omitempty"`
}

// CreateProjectResult describes what was (or would be) created
type CreateProjectResult struct {
	Template     string            `json:"template" yaml:"template"`
	OutputDir    string            `json:"output_dir" yaml:"output_dir"`
	DryRun       bool              `json:"dry_run" yaml:"dry_run"`
	Variables    map[string]string `json:"variables" yaml:"variables"`
	Excluded     []string          `json:"excluded,omitempty" yaml:"excluded,omitempty"`
	Preview      string            `json:"preview,omitempty" yaml:"preview,omitempty"`
	Files        int               `json:"files" yaml:"files"`
	Hooks        []HookOutcome     `json:"hooks,omitempty" yaml:"hooks,omitempty"`
	HooksSkipped bool              `json:"hooks_skipped,omitempty" yaml:"hooks_skipped,omitempty"`
}

// CreateProject renders a template into a new project directory.
func CreateProject(ctx context.Context, opts CreateProjectOptions) (*CreateProjectResult, error) {
	log := logging.GetLogger("commands.create")
	log.Debug().Str("command", "CreateProject").Str("template", opts.Template).Msg("Executing command")

	interactive := !opts.UseDefaults && !opts.DryRun
	if interactive && opts.Prompter == nil {
		return nil, errors.New(errors.ErrInvalidInput, "not running interactively: pass --yes to use defaults")
	}
	notify := opts.Notify
	if notify == nil {
		notify = func(string) {}
	}

	cat, err := opts.Registry.List()
	if err != nil {
		return nil, err
	}
	if len(cat.Templates()) == 0 {
		return nil, errors.New(errors.ErrTemplateNotFound,
			"No templates available. Run 'scaffold add <path> <name>' to add a template first.")
	}

	tmpl, err := selectTemplate(cat, opts.Template, interactive, opts.Prompter)
	if err != nil {
		return nil, err
	}
	notify(fmt.Sprintf("\nCreating project from: [name]%s[/name]\n", tmpl.Manifest.Name))

	output := opts.OutputDir
	if output == "" {
		if !interactive {
			return nil, errors.New(errors.ErrInvalidInput, "Output directory is required when using --yes or --dry-run")
		}
		output, err = opts.Prompter.Input("Output directory", "")
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrInvalidInput, "failed to read output directory")
		}
		if strings.TrimSpace(output) == "" {
			return nil, errors.New(errors.ErrInvalidInput, "output directory cannot be empty")
		}
	}

	if !opts.DryRun {
		if err := validateOutput(opts.FS, output); err != nil {
			return nil, err
		}
	}

	assignment, err := variables.Resolve(variables.ResolveOptions{
		Manifest:    tmpl.Manifest,
		CLI:         opts.Vars,
		Globals:     opts.Globals,
		UseDefaults: !interactive,
		OutputDir:   output,
		Prompter:    opts.Prompter,
	})
	if err != nil {
		return nil, err
	}

	// The output base name may itself carry tokens
	root := render.TargetRoot(output, assignment)
	if !opts.DryRun && root != output {
		if err := validateOutput(opts.FS, root); err != nil {
			return nil, err
		}
	}

	exclusions := conditions.Exclusions(tmpl.Manifest.Conditionals, assignment)
	renderOpts := render.Options{
		Assignment:   assignment,
		Exclusions:   exclusions,
		SkipManifest: true,
	}
	renderer := render.New(opts.FS)

	result := &CreateProjectResult{
		Template:  tmpl.Name,
		OutputDir: root,
		DryRun:    opts.DryRun,
		Variables: assignment,
		Excluded:  exclusions.Names(),
	}

	if opts.DryRun {
		var buf bytes.Buffer
		if err := renderer.Preview(&buf, tmpl.Path, output, renderOpts); err != nil {
			return nil, err
		}
		result.Preview = buf.String()
		count, err := renderer.CountFiles(tmpl.Path, renderOpts)
		if err != nil {
			return nil, err
		}
		result.Files = count
		log.Info().Str("command", "CreateProject").Bool("dryRun", true).Msg("Command finished")
		return result, nil
	}

	count, err := renderer.CountFiles(tmpl.Path, renderOpts)
	if err != nil {
		return nil, err
	}
	var progress Progress
	if opts.NewProgress != nil {
		progress = opts.NewProgress(count)
	}
	renderOpts.Progress = func(target string) {
		result.Files++
		if progress != nil {
			progress.Increment()
		}
	}

	err = renderer.Render(tmpl.Path, output, renderOpts)
	if progress != nil {
		progress.Stop()
	}
	if err != nil {
		return nil, err
	}

	result.runHooks(ctx, opts, tmpl, notify)

	log.Info().Str("command", "CreateProject").Str("output", root).Int("files", result.Files).Msg("Command finished")
	return result, nil
}

func (r *CreateProjectResult) runHooks(ctx context.Context, opts CreateProjectOptions, tmpl registry.Template, notify func(string)) {
	commands := tmpl.Manifest.Hooks.PostCreate
	if len(commands) == 0 {
		return
	}
	if opts.NoHooks || opts.Hooks == nil {
		r.HooksSkipped = true
		return
	}

	notify("\nRunning post-create hooks...")
	for _, res := range opts.Hooks.Run(ctx, commands, r.OutputDir) {
		outcome := HookOutcome{Command: res.Command, OK: res.OK(), ExitCode: res.ExitCode}
		if res.Err != nil {
			outcome.Error = errors.GetMessage(res.Err)
		}
		r.Hooks = append(r.Hooks, outcome)
	}
}

func selectTemplate(cat *registry.Catalog, name string, interactive bool, p variables.Prompter) (registry.Template, error) {
	if name != "" {
		return cat.Get(name)
	}
	if !interactive {
		return registry.Template{}, errors.New(errors.ErrInvalidInput, "a template name is required when using --yes or --dry-run")
	}

	templates := cat.Templates()
	items := make([]string, len(templates))
	for i, t := range templates {
		items[i] = t.Name + " - " + t.Manifest.Description
	}
	choice, err := p.Select("Select a template", items, items[0])
	if err != nil {
		return registry.Template{}, errors.Wrap(err, errors.ErrInvalidInput, "failed to select a template")
	}
	for i, item := range items {
		if item == choice {
			return templates[i], nil
		}
	}
	return registry.Template{}, errors.Newf(errors.ErrInternal, "unknown selection %q", choice)
}

// validateOutput refuses an existing output directory and a missing parent
func validateOutput(fsys types.FS, output string) error {
	if _, err := fsys.Stat(output); err == nil {
		return errors.Newf(errors.ErrAlreadyExists, "Output directory '%s' already exists", output).
			WithDetail("path", output)
	} else if !errors.Is(err, fs.ErrNotExist) {
		return errors.Wrapf(err, errors.ErrFileRead, "failed to check %s", output).WithDetail("path", output)
	}

	parent := filepath.Dir(filepath.Clean(output))
	info, err := fsys.Stat(parent)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return errors.Newf(errors.ErrNotFound, "parent directory '%s' does not exist", parent).
				WithDetail("path", parent)
		}
		return errors.Wrapf(err, errors.ErrFileRead, "failed to check %s", parent).WithDetail("path", parent)
	}
	if !info.IsDir() {
		return errors.Newf(errors.ErrInvalidInput, "'%s' is not a directory", parent).WithDetail("path", parent)
	}
	return nil
}

// FailedHooks returns one line per failed hook
func (r *CreateProjectResult) FailedHooks() []string {
	var out []string
	for _, h := range r.Hooks {
		if !h.OK {
			out = append(out, fmt.Sprintf("hook '%s' failed: %s", h.Command, h.Error))
		}
	}
	return out
}

// Text renders the outcome with style markup. Failed hooks are not part of
// it; see FailedHooks.
func (r *CreateProjectResult) Text() string {
	var b strings.Builder

	if r.DryRun {
		b.WriteString("\n[warning]Dry run - no files will be created[/warning]\n\nWould create:\n\n")
		b.WriteString(r.Preview)
		if len(r.Excluded) > 0 {
			fmt.Fprintf(&b, "\n[muted]Excluded: %s[/muted]\n", strings.Join(r.Excluded, ", "))
		}
		return b.String()
	}

	if r.HooksSkipped {
		b.WriteString("[muted]Post-create hooks skipped.[/muted]\n")
	}

	fmt.Fprintf(&b, "\nProject created at: [success]%s[/success]\n\n", r.OutputDir)
	b.WriteString("Next steps:\n\n")
	fmt.Fprintf(&b, "  cd %s\n", r.OutputDir)
	return b.String()
}
