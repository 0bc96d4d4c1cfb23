package cli

import (
	"fmt"

	"github.com/arthur-debert/scaffold/pkg/commands"
	"github.com/arthur-debert/scaffold/pkg/commands/create"
	"github.com/arthur-debert/scaffold/pkg/hooks"
	"github.com/arthur-debert/scaffold/pkg/ui"
	"github.com/arthur-debert/scaffold/pkg/variables"
	"github.com/pterm/pterm"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func newCreateCmd() *cobra.Command {
	var (
		outputDir string
		vars      []string
		yes       bool
		dryRun    bool
		noHooks   bool
	)

	cmd := &cobra.Command{
		Use:               "create [template]",
		Short:             MsgCreateShort,
		Long:              MsgCreateLong,
		Example:           MsgCreateExample,
		GroupID:           "core",
		Args:              cobra.MaximumNArgs(1),
		ValidArgsFunction: templateNamesCompletion,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}
			out, err := newOutput(cmd)
			if err != nil {
				return err
			}

			assigned, err := variables.ParseAssignments(vars)
			if err != nil {
				return err
			}
			globals, err := a.store.Load()
			if err != nil {
				return err
			}

			opts := commands.CreateProjectOptions{
				Registry:    a.registry,
				FS:          a.fs,
				OutputDir:   outputDir,
				Vars:        assigned,
				Globals:     globals,
				UseDefaults: yes,
				DryRun:      dryRun,
				NoHooks:     noHooks,
			}
			if len(args) > 0 {
				opts.Template = args[0]
			}

			interactive := stdinIsTerminal()
			if interactive {
				opts.Prompter = ui.NewPrompter()
			}

			executor := hooks.NewExecutor()
			executor.Stdout = cmd.OutOrStdout()
			executor.Stderr = cmd.ErrOrStderr()
			if out.structured() {
				executor.Stdout = cmd.ErrOrStderr()
			} else {
				opts.Notify = func(msg string) {
					_ = out.renderer.RenderMessage(msg)
				}
			}
			opts.Hooks = executor

			showProgress := interactive && out.rich()
			opts.NewProgress = func(total int) create.Progress {
				return ui.NewProgress(MsgProgressTitle, total, showProgress)
			}

			log.Info().
				Str("template", opts.Template).
				Str("output", outputDir).
				Bool("dry_run", dryRun).
				Msg("Creating project")

			result, err := commands.CreateProject(cmd.Context(), opts)
			if err != nil {
				return err
			}
			for _, line := range result.FailedHooks() {
				ui.Warn(cmd.ErrOrStderr(), line)
			}
			return out.renderer.RenderResult(result)
		},
	}

	cmd.Flags().StringVarP(&outputDir, "output", "o", "", MsgFlagOutput)
	cmd.Flags().StringArrayVarP(&vars, "var", "V", nil, MsgFlagVar)
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, MsgFlagYes)
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, MsgFlagDryRun)
	cmd.Flags().BoolVar(&noHooks, "no-hooks", false, MsgFlagNoHooks)

	return cmd
}

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   MsgListShort,
		Long:    MsgListLong,
		GroupID: "templates",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}
			out, err := newOutput(cmd)
			if err != nil {
				return err
			}

			log.Info().Str("templates_dir", a.paths.TemplatesDir()).Msg("Listing templates")

			result, err := commands.ListTemplates(commands.ListTemplatesOptions{
				Registry: a.registry,
			})
			if err != nil {
				return err
			}
			return out.renderer.RenderResult(result)
		},
	}
}

func newInfoCmd() *cobra.Command {
	var readme bool

	cmd := &cobra.Command{
		Use:               "info <template>",
		Short:             MsgInfoShort,
		Long:              MsgInfoLong,
		Example:           MsgInfoExample,
		GroupID:           "templates",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: templateNamesCompletion,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}
			out, err := newOutput(cmd)
			if err != nil {
				return err
			}

			result, err := commands.TemplateInfo(commands.TemplateInfoOptions{
				Registry: a.registry,
				FS:       a.fs,
				Name:     args[0],
				Readme:   readme,
			})
			if err != nil {
				return err
			}
			if err := out.renderer.RenderResult(result); err != nil {
				return err
			}

			if out.structured() || result.Readme == "" {
				return nil
			}
			_, err = fmt.Fprintln(out.w, "\n"+ui.RenderMarkdown(result.Readme, out.rich(), pterm.GetTerminalWidth()))
			return err
		},
	}

	cmd.Flags().BoolVar(&readme, "readme", false, MsgFlagReadme)

	return cmd
}

func newAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "add <path|url> <name>",
		Short:   MsgAddShort,
		Long:    MsgAddLong,
		Example: MsgAddExample,
		GroupID: "templates",
		Args:    cobra.ExactArgs(2),
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			if len(args) == 0 {
				return nil, cobra.ShellCompDirectiveFilterDirs
			}
			return nil, cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}
			out, err := newOutput(cmd)
			if err != nil {
				return err
			}

			log.Info().Str("source", args[0]).Str("name", args[1]).Msg("Adding template")

			result, err := commands.AddTemplate(cmd.Context(), commands.AddTemplateOptions{
				Registry: a.registry,
				Source:   args[0],
				Name:     args[1],
			})
			if err != nil {
				return err
			}
			return out.renderer.RenderResult(result)
		},
	}
}

func newRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:               "remove <template>",
		Aliases:           []string{"rm"},
		Short:             MsgRemoveShort,
		Long:              MsgRemoveLong,
		GroupID:           "templates",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: templateNamesCompletion,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}
			out, err := newOutput(cmd)
			if err != nil {
				return err
			}

			result, err := commands.RemoveTemplate(commands.RemoveTemplateOptions{
				Registry: a.registry,
				Name:     args[0],
			})
			if err != nil {
				return err
			}
			return out.renderer.RenderResult(result)
		},
	}
}

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "validate <path>",
		Short:   MsgValidateShort,
		Long:    MsgValidateLong,
		GroupID: "templates",
		Args:    cobra.ExactArgs(1),
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			return nil, cobra.ShellCompDirectiveFilterDirs
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}
			out, err := newOutput(cmd)
			if err != nil {
				return err
			}

			path, err := a.paths.NormalizePath(args[0])
			if err != nil {
				return err
			}

			// The report is printed even when validation fails
			result, verr := commands.ValidateTemplate(commands.ValidateTemplateOptions{
				FS:   a.fs,
				Path: path,
			})
			if result != nil {
				if err := out.renderer.RenderResult(result); err != nil {
					return err
				}
			}
			return verr
		},
	}
}
