package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/arthur-debert/scaffold/internal/version"
	"github.com/arthur-debert/scaffold/pkg/bundled"
	"github.com/arthur-debert/scaffold/pkg/config"
	"github.com/arthur-debert/scaffold/pkg/errors"
	"github.com/arthur-debert/scaffold/pkg/filesystem"
	"github.com/arthur-debert/scaffold/pkg/paths"
	"github.com/arthur-debert/scaffold/pkg/registry"
	"github.com/arthur-debert/scaffold/pkg/remote"
	"github.com/arthur-debert/scaffold/pkg/types"
	"github.com/arthur-debert/scaffold/pkg/ui"
	"github.com/spf13/cobra"
)

// app bundles the collaborators every command needs
type app struct {
	paths    paths.Paths
	fs       types.FS
	registry *registry.Registry
	store    *config.Store
}

// newApp resolves paths from the --templates-dir flag and the environment
func newApp(cmd *cobra.Command) (*app, error) {
	templatesDir, _ := cmd.Flags().GetString("templates-dir")
	p, err := paths.New(templatesDir)
	if err != nil {
		return nil, fmt.Errorf(MsgErrInitPaths, err)
	}

	fsys := filesystem.NewOS()
	extractor := bundled.NewExtractor(fsys, p.BundledDir(), bundled.MarkerVersion(version.Version, bundled.Templates()))
	return &app{
		paths:    p,
		fs:       fsys,
		registry: registry.New(fsys, p.TemplatesDir(), extractor, remote.NewCloner()),
		store:    config.NewStore(p.ConfigFile()),
	}, nil
}

// output renders results in the format selected with --format
type output struct {
	format   ui.Format
	renderer ui.Renderer
	w        io.Writer
}

func newOutput(cmd *cobra.Command) (*output, error) {
	name, _ := cmd.Flags().GetString("format")
	format, err := ui.ParseFormat(name)
	if err != nil {
		return nil, errors.New(errors.ErrInvalidInput, err.Error())
	}

	w := cmd.OutOrStdout()
	if format == ui.FormatAuto {
		format = ui.FormatText
		if f, ok := w.(*os.File); ok {
			format = ui.DetectFormat(f)
		}
	}

	renderer, err := ui.NewRenderer(format, w)
	if err != nil {
		return nil, err
	}
	return &output{format: format, renderer: renderer, w: w}, nil
}

func (o *output) rich() bool {
	return o.format == ui.FormatTerminal
}

func (o *output) structured() bool {
	return o.format.Structured()
}

// stdinIsTerminal reports whether prompts can be shown
func stdinIsTerminal() bool {
	return ui.IsTerminal(os.Stdin)
}

// templateNamesCompletion completes template names for the first argument
func templateNamesCompletion(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	a, err := newApp(cmd)
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	cat, err := a.registry.List()
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	return cat.Names(), cobra.ShellCompDirectiveNoFileComp
}
