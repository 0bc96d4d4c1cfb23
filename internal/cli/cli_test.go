package cli_test

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/scaffold/internal/cli"
	"github.com/arthur-debert/scaffold/pkg/errors"
	"github.com/arthur-debert/scaffold/pkg/filesystem"
	"github.com/arthur-debert/scaffold/pkg/testutil"
	"github.com/arthur-debert/scaffold/pkg/ui"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

const helloManifest = `name = "Hello"
description = "Greets someone"

[[variables]]
name = "name"
description = "Who to greet"
default = "world"

[[variables]]
name = "with_notes"
description = "Add a notes file"
type = "bool"
default = "false"

[[conditionals]]
include = "NOTES.md"
when = "with_notes == true"

[hooks]
post_create = ["echo created > hook.txt"]
`

type env struct {
	root      string
	templates string
	work      string
}

// setup points every scaffold directory at a fresh temp tree and adds a
// local "hello" template
func setup(t *testing.T) env {
	t.Helper()
	root := t.TempDir()
	e := env{
		root:      root,
		templates: filepath.Join(root, "templates"),
		work:      filepath.Join(root, "work"),
	}
	t.Setenv("SCAFFOLD_TEMPLATES_DIR", e.templates)
	t.Setenv("SCAFFOLD_CONFIG_DIR", filepath.Join(root, "config"))
	t.Setenv("SCAFFOLD_CACHE_DIR", filepath.Join(root, "cache"))
	t.Setenv("XDG_STATE_HOME", filepath.Join(root, "state"))
	t.Setenv("NO_COLOR", "1")

	testutil.WriteTree(t, filesystem.NewOS(), filepath.Join(e.templates, "hello"), map[string]string{
		"template.toml": helloManifest,
		"{{name}}.txt":  "Hello {{name}}\n",
		"NOTES.md":      "notes for {{name}}\n",
		"README.md":     "# Hello template\n\nSays hello.\n",
		"sub/keep.txt":  "kept\n",
	})
	require.NoError(t, os.MkdirAll(e.work, 0755))
	return e
}

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	cmd := cli.NewRootCmd()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	if args == nil {
		args = []string{}
	}
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestVersion(t *testing.T) {
	setup(t)
	out, _, err := run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "scaffold version")
	assert.Contains(t, out, "Commit:")
}

func TestNoCommand(t *testing.T) {
	setup(t)
	_, _, err := run(t)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
}

func TestList(t *testing.T) {
	setup(t)
	out, _, err := run(t, "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Available templates:")
	assert.Contains(t, out, "hello - Greets someone")
	assert.Contains(t, out, "fastapi (bundled)")
	assert.NotContains(t, out, "[name]")
}

func TestListJSON(t *testing.T) {
	setup(t)
	out, _, err := run(t, "list", "--format", "json")
	require.NoError(t, err)

	var decoded struct {
		Templates []struct {
			Name   string `json:"name"`
			Source string `json:"source"`
		} `json:"templates"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	sources := map[string]string{}
	for _, tpl := range decoded.Templates {
		sources[tpl.Name] = tpl.Source
	}
	assert.Equal(t, "local", sources["hello"])
	assert.Equal(t, "bundled", sources["fastapi"])
	assert.Equal(t, "bundled", sources["nextjs"])
}

func TestUnknownFormat(t *testing.T) {
	setup(t)
	_, _, err := run(t, "list", "--format", "xml")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
}

func TestInfo(t *testing.T) {
	setup(t)

	out, _, err := run(t, "info", "hello")
	require.NoError(t, err)
	assert.Contains(t, out, "Greets someone")
	assert.Contains(t, out, "with_notes")
	assert.Contains(t, out, "echo created > hook.txt")
	assert.NotContains(t, out, "Says hello.")

	out, _, err = run(t, "info", "hello", "--readme")
	require.NoError(t, err)
	assert.Contains(t, out, "Says hello.")
}

func TestInfoYAML(t *testing.T) {
	setup(t)
	out, _, err := run(t, "info", "hello", "--format", "yaml")
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, yaml.Unmarshal([]byte(out), &decoded))
	assert.Equal(t, "hello", decoded["name"])
	assert.Equal(t, "local", decoded["source"])
}

func TestInfoUnknownTemplate(t *testing.T) {
	setup(t)
	_, _, err := run(t, "info", "helo")
	require.Error(t, err)
	assert.True(t, errors.IsNotFound(err))
	assert.Contains(t, errors.GetMessage(err), "hello")
}

func TestCreate(t *testing.T) {
	e := setup(t)
	project := filepath.Join(e.work, "greeting")

	out, _, err := run(t, "create", "hello", "-o", project, "--yes", "-V", "name=gopher")
	require.NoError(t, err)
	assert.Contains(t, out, "Project created at: "+project)

	fsys := filesystem.NewOS()
	tree := testutil.ReadTree(t, fsys, project)
	assert.Equal(t, "Hello gopher\n", tree["gopher.txt"])
	assert.Equal(t, "kept\n", tree["sub/keep.txt"])
	assert.Equal(t, "created\n", tree["hook.txt"])
	assert.NotContains(t, tree, "NOTES.md")
	assert.NotContains(t, tree, "template.toml")
}

func TestCreateWithConditionalAndNoHooks(t *testing.T) {
	e := setup(t)
	project := filepath.Join(e.work, "notes")

	_, _, err := run(t, "create", "hello", "-o", project, "-y", "--var", "with_notes=true", "--no-hooks")
	require.NoError(t, err)

	fsys := filesystem.NewOS()
	tree := testutil.ReadTree(t, fsys, project)
	assert.Equal(t, "notes for world\n", tree["NOTES.md"])
	assert.NotContains(t, tree, "hook.txt")
}

func TestCreateUsesGlobalDefaults(t *testing.T) {
	e := setup(t)
	_, _, err := run(t, "config", "set", "name", "everyone")
	require.NoError(t, err)

	project := filepath.Join(e.work, "global")
	_, _, err = run(t, "create", "hello", "-o", project, "-y", "--no-hooks")
	require.NoError(t, err)
	assert.True(t, testutil.Exists(filesystem.NewOS(), filepath.Join(project, "everyone.txt")))
}

func TestCreateDryRun(t *testing.T) {
	e := setup(t)
	project := filepath.Join(e.work, "preview")

	out, _, err := run(t, "create", "hello", "-o", project, "--dry-run")
	require.NoError(t, err)
	assert.Contains(t, out, "Dry run")
	assert.Contains(t, out, "Would create:")
	assert.Contains(t, out, "world.txt")
	assert.NoDirExists(t, project)
}

func TestCreateFailures(t *testing.T) {
	e := setup(t)
	existing := filepath.Join(e.work, "taken")
	require.NoError(t, os.MkdirAll(existing, 0755))

	tests := []struct {
		name string
		args []string
		code errors.ErrorCode
	}{
		{"existing output", []string{"create", "hello", "-o", existing, "-y"}, errors.ErrAlreadyExists},
		{"missing parent", []string{"create", "hello", "-o", filepath.Join(e.work, "a", "b"), "-y"}, errors.ErrNotFound},
		{"missing output", []string{"create", "hello", "-y"}, errors.ErrInvalidInput},
		{"bad var", []string{"create", "hello", "-o", filepath.Join(e.work, "x"), "-y", "-V", "novalue"}, errors.ErrInvalidInput},
		{"bad bool", []string{"create", "hello", "-o", filepath.Join(e.work, "y"), "-y", "-V", "with_notes=maybe"}, errors.ErrInvalidInput},
		{"unknown template", []string{"create", "nope", "-o", filepath.Join(e.work, "z"), "-y"}, errors.ErrTemplateNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := run(t, tt.args...)
			require.Error(t, err)
			assert.Equal(t, tt.code, errors.GetErrorCode(err), errors.GetMessage(err))
		})
	}
}

func TestCreateNeedsTerminalWithoutYes(t *testing.T) {
	if ui.IsTerminal(os.Stdin) {
		t.Skip("stdin is a terminal")
	}
	e := setup(t)
	_, _, err := run(t, "create", "hello", "-o", filepath.Join(e.work, "p"))
	require.Error(t, err)
	assert.Contains(t, errors.GetMessage(err), "--yes")
}

func TestAddAndRemove(t *testing.T) {
	e := setup(t)
	src := filepath.Join(e.root, "src")
	testutil.WriteTree(t, filesystem.NewOS(), src, map[string]string{
		"template.toml": "name = \"Copied\"\ndescription = \"A copy\"\n",
		"file.txt":      "x\n",
	})

	out, _, err := run(t, "add", src, "copied")
	require.NoError(t, err)
	assert.Contains(t, out, "Template 'copied' added successfully.")
	assert.FileExists(t, filepath.Join(e.templates, "copied", "file.txt"))

	out, _, err = run(t, "list")
	require.NoError(t, err)
	assert.Contains(t, out, "copied - A copy")

	out, _, err = run(t, "remove", "copied")
	require.NoError(t, err)
	assert.Contains(t, out, "Template 'copied' removed.")
	assert.NoDirExists(t, filepath.Join(e.templates, "copied"))
}

func TestAddRejectsBadName(t *testing.T) {
	e := setup(t)
	_, _, err := run(t, "add", filepath.Join(e.templates, "hello"), "../escape")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
}

func TestRemoveBundledIsRefused(t *testing.T) {
	setup(t)
	_, _, err := run(t, "remove", "fastapi")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrTemplateBundled))
}

func TestValidate(t *testing.T) {
	e := setup(t)

	out, _, err := run(t, "validate", filepath.Join(e.templates, "hello"))
	require.NoError(t, err)
	assert.Contains(t, out, "Validating template at:")

	broken := filepath.Join(e.root, "broken")
	testutil.WriteTree(t, filesystem.NewOS(), broken, map[string]string{
		"template.toml": "name = \"Broken\"\n\n[[variables]]\nname = \"kind\"\ntype = \"choice\"\n",
	})
	out, _, err = run(t, "validate", broken)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigValid))
	assert.Contains(t, out, "Validating template at:")

	_, _, err = run(t, "validate", filepath.Join(e.root, "missing"))
	require.Error(t, err)
	assert.True(t, errors.IsNotFound(err))
}

func TestConfigCommands(t *testing.T) {
	e := setup(t)

	out, _, err := run(t, "config", "path")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(e.root, "config", "config.toml")+"\n", out)

	out, _, err = run(t, "config", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No defaults configured.")

	_, _, err = run(t, "config", "set", "author", "Jane Doe")
	require.NoError(t, err)

	out, _, err = run(t, "config", "get", "author")
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe\n", out)

	out, _, err = run(t, "config", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "author = Jane Doe")

	out, _, err = run(t, "config", "unset", "author")
	require.NoError(t, err)
	assert.Contains(t, out, "Removed author")

	out, _, err = run(t, "config", "get", "author")
	require.NoError(t, err)
	assert.Contains(t, out, "author: not set")

	out, _, err = run(t, "config", "reset")
	require.NoError(t, err)
	assert.Contains(t, out, "Config reset to defaults.")
}

func TestCompletion(t *testing.T) {
	setup(t)
	for _, shell := range []string{"bash", "zsh", "fish", "powershell"} {
		out, _, err := run(t, "completion", shell)
		require.NoError(t, err, shell)
		assert.Contains(t, out, "scaffold", shell)
	}

	_, _, err := run(t, "completion", "tcsh")
	require.Error(t, err)
}
