package create_test

import (
	"context"
	"testing"

	"github.com/arthur-debert/scaffold/pkg/commands/create"
	"github.com/arthur-debert/scaffold/pkg/errors"
	"github.com/arthur-debert/scaffold/pkg/filesystem"
	"github.com/arthur-debert/scaffold/pkg/hooks"
	"github.com/arthur-debert/scaffold/pkg/registry"
	"github.com/arthur-debert/scaffold/pkg/testutil"
	"github.com/arthur-debert/scaffold/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const serviceManifest = `name = "Service"
description = "A small service"

[[variables]]
name = "project_name"
description = "Project name"

[[variables]]
name = "include_docker"
description = "Add Docker"
type = "bool"
default = "false"

[[conditionals]]
include = "Dockerfile"
when = "include_docker == true"

[hooks]
post_create = ["git init", "make setup"]
`

type fakeHooks struct {
	dir      string
	commands []string
	fail     string
}

func (f *fakeHooks) Run(_ context.Context, commands []string, dir string) []hooks.Result {
	f.dir = dir
	f.commands = commands
	var out []hooks.Result
	for _, c := range commands {
		r := hooks.Result{Command: c}
		if c == f.fail {
			r.ExitCode = 2
			r.Err = errors.New(errors.ErrHookExecute, "boom")
		}
		out = append(out, r)
	}
	return out
}

type countingProgress struct {
	total      int
	increments int
	stopped    bool
}

func (c *countingProgress) Increment() { c.increments++ }
func (c *countingProgress) Stop()      { c.stopped = true }

type fakePrompter struct {
	selectAnswer string
	inputs       map[string]string
	selects      []string
}

func (f *fakePrompter) Confirm(prompt string, def bool) (bool, error) { return def, nil }

func (f *fakePrompter) Select(prompt string, options []string, def string) (string, error) {
	f.selects = append(f.selects, prompt)
	if f.selectAnswer != "" {
		return f.selectAnswer, nil
	}
	return def, nil
}

func (f *fakePrompter) Input(prompt string, def string) (string, error) {
	if v, ok := f.inputs[prompt]; ok {
		return v, nil
	}
	return def, nil
}

func setup(t *testing.T) (types.FS, *registry.Registry) {
	t.Helper()
	fsys := filesystem.NewMemory()
	testutil.WriteTree(t, fsys, "/templates/service", map[string]string{
		"template.toml":                serviceManifest,
		"README.md":                    "# {{project_name}}",
		"Dockerfile":                   "FROM python",
		"{{project_name}}/main.py":     "print('{{project_name}}')",
		"{{project_name}}/__init__.py": "",
	})
	testutil.WriteTree(t, fsys, "/work", map[string]string{"existing/": ""})
	return fsys, registry.New(fsys, "/templates", nil, nil)
}

func TestCreateProject_WithDefaults(t *testing.T) {
	fsys, reg := setup(t)
	runner := &fakeHooks{}
	progress := &countingProgress{}
	var notes []string

	result, err := create.CreateProject(context.Background(), create.CreateProjectOptions{
		Registry:    reg,
		FS:          fsys,
		Template:    "service",
		OutputDir:   "/work/my-app",
		UseDefaults: true,
		Hooks:       runner,
		NewProgress: func(total int) create.Progress {
			progress.total = total
			return progress
		},
		Notify: func(msg string) { notes = append(notes, msg) },
	})
	require.NoError(t, err)

	assert.Equal(t, map[string]string{
		"README.md":          "# my_app",
		"my_app/main.py":     "print('my_app')",
		"my_app/__init__.py": "",
	}, testutil.ReadTree(t, fsys, "/work/my-app"))

	assert.Equal(t, "/work/my-app", result.OutputDir)
	assert.Equal(t, 3, result.Files)
	assert.Equal(t, []string{"Dockerfile"}, result.Excluded)
	assert.Equal(t, 3, progress.total)
	assert.Equal(t, 3, progress.increments)
	assert.True(t, progress.stopped)

	assert.Equal(t, "/work/my-app", runner.dir)
	assert.Equal(t, []string{"git init", "make setup"}, runner.commands)
	require.Len(t, result.Hooks, 2)
	assert.True(t, result.Hooks[0].OK)
	assert.Contains(t, notes, "\nRunning post-create hooks...")

	text := result.Text()
	assert.Contains(t, text, "Project created at: [success]/work/my-app[/success]")
	assert.Contains(t, text, "Next steps:\n\n  cd /work/my-app\n")
}

func TestCreateProject_VarOverrideIncludesDockerfile(t *testing.T) {
	fsys, reg := setup(t)

	_, err := create.CreateProject(context.Background(), create.CreateProjectOptions{
		Registry:    reg,
		FS:          fsys,
		Template:    "service",
		OutputDir:   "/work/svc",
		Vars:        map[string]string{"include_docker": "true", "project_name": "svc"},
		UseDefaults: true,
	})
	require.NoError(t, err)
	assert.Equal(t, "FROM python", testutil.ReadTree(t, fsys, "/work/svc")["Dockerfile"])
}

func TestCreateProject_DryRunWritesNothing(t *testing.T) {
	fsys, reg := setup(t)
	runner := &fakeHooks{}

	result, err := create.CreateProject(context.Background(), create.CreateProjectOptions{
		Registry:  reg,
		FS:        fsys,
		Template:  "service",
		OutputDir: "/work/existing",
		DryRun:    true,
		Hooks:     runner,
	})
	require.NoError(t, err, "dry run skips output validation")

	assert.True(t, result.DryRun)
	assert.Equal(t, 3, result.Files)
	assert.Equal(t, `  existing/
    README.md
    existing/
      __init__.py
      main.py
`, result.Preview)
	assert.Nil(t, runner.commands, "dry run never runs hooks")
	assert.Contains(t, result.Text(), "Dry run - no files will be created")
	assert.Contains(t, result.Text(), "Would create:")
	assert.Equal(t, map[string]string{"existing/": ""}, testutil.ReadTree(t, fsys, "/work"))
}

func TestCreateProject_NoHooks(t *testing.T) {
	fsys, reg := setup(t)
	runner := &fakeHooks{}

	result, err := create.CreateProject(context.Background(), create.CreateProjectOptions{
		Registry:    reg,
		FS:          fsys,
		Template:    "service",
		OutputDir:   "/work/app",
		UseDefaults: true,
		NoHooks:     true,
		Hooks:       runner,
	})
	require.NoError(t, err)
	assert.Nil(t, runner.commands)
	assert.True(t, result.HooksSkipped)
}

func TestCreateProject_HookFailureIsReported(t *testing.T) {
	fsys, reg := setup(t)

	result, err := create.CreateProject(context.Background(), create.CreateProjectOptions{
		Registry:    reg,
		FS:          fsys,
		Template:    "service",
		OutputDir:   "/work/app",
		UseDefaults: true,
		Hooks:       &fakeHooks{fail: "git init"},
	})
	require.NoError(t, err)
	require.Len(t, result.Hooks, 2)
	assert.False(t, result.Hooks[0].OK)
	assert.Equal(t, 2, result.Hooks[0].ExitCode)
	assert.True(t, result.Hooks[1].OK)
	assert.Equal(t, []string{"hook 'git init' failed: boom"}, result.FailedHooks())
}

func TestCreateProject_Errors(t *testing.T) {
	tests := []struct {
		name string
		opts create.CreateProjectOptions
		code errors.ErrorCode
	}{
		{
			name: "unknown template",
			opts: create.CreateProjectOptions{Template: "nope", OutputDir: "/work/x", UseDefaults: true},
			code: errors.ErrTemplateNotFound,
		},
		{
			name: "output exists",
			opts: create.CreateProjectOptions{Template: "service", OutputDir: "/work/existing", UseDefaults: true},
			code: errors.ErrAlreadyExists,
		},
		{
			name: "parent missing",
			opts: create.CreateProjectOptions{Template: "service", OutputDir: "/nowhere/app", UseDefaults: true},
			code: errors.ErrNotFound,
		},
		{
			name: "output required with --yes",
			opts: create.CreateProjectOptions{Template: "service", UseDefaults: true},
			code: errors.ErrInvalidInput,
		},
		{
			name: "template required with --dry-run",
			opts: create.CreateProjectOptions{OutputDir: "/work/x", DryRun: true},
			code: errors.ErrInvalidInput,
		},
		{
			name: "interactive without a prompter",
			opts: create.CreateProjectOptions{Template: "service", OutputDir: "/work/x"},
			code: errors.ErrInvalidInput,
		},
		{
			name: "bad bool value",
			opts: create.CreateProjectOptions{Template: "service", OutputDir: "/work/x", UseDefaults: true,
				Vars: map[string]string{"include_docker": "maybe"}},
			code: errors.ErrInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fsys, reg := setup(t)
			tt.opts.FS = fsys
			tt.opts.Registry = reg

			_, err := create.CreateProject(context.Background(), tt.opts)
			require.Error(t, err)
			assert.Equal(t, tt.code, errors.GetErrorCode(err))
		})
	}
}

func TestCreateProject_NoTemplates(t *testing.T) {
	fsys := filesystem.NewMemory()
	_, err := create.CreateProject(context.Background(), create.CreateProjectOptions{
		Registry:    registry.New(fsys, "/empty", nil, nil),
		FS:          fsys,
		OutputDir:   "/x",
		UseDefaults: true,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "No templates available")
}

func TestCreateProject_Interactive(t *testing.T) {
	fsys, reg := setup(t)
	p := &fakePrompter{inputs: map[string]string{
		"Output directory":            "/work/cool-app",
		"Project name (project_name)": "cool",
	}}

	result, err := create.CreateProject(context.Background(), create.CreateProjectOptions{
		Registry: reg,
		FS:       fsys,
		Prompter: p,
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"Select a template"}, p.selects)
	assert.Equal(t, "service", result.Template)
	assert.Equal(t, "cool", result.Variables["project_name"])
	assert.Equal(t, "print('cool')", testutil.ReadTree(t, fsys, "/work/cool-app")["cool/main.py"])
}
