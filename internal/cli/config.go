package cli

import (
	"fmt"

	"github.com/arthur-debert/scaffold/pkg/commands/defaults"
	"github.com/arthur-debert/scaffold/pkg/ui"
	"github.com/spf13/cobra"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "config",
		Short:   MsgConfigShort,
		Long:    MsgConfigLong,
		Example: MsgConfigExample,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cmd.AddCommand(
		configSubcommand("set <key> <value>", MsgConfigSetShort, 2, func(a *app, args []string) (ui.Texter, error) {
			return defaults.SetDefault(a.store, args[0], args[1])
		}),
		configSubcommand("get <key>", MsgConfigGetShort, 1, func(a *app, args []string) (ui.Texter, error) {
			return defaults.GetDefault(a.store, args[0])
		}),
		configSubcommand("list", MsgConfigListShort, 0, func(a *app, args []string) (ui.Texter, error) {
			return defaults.ListDefaults(a.store)
		}),
		configSubcommand("unset <key>", MsgConfigUnsetShort, 1, func(a *app, args []string) (ui.Texter, error) {
			return defaults.UnsetDefault(a.store, args[0])
		}),
		configSubcommand("reset", MsgConfigResetShort, 0, func(a *app, args []string) (ui.Texter, error) {
			return defaults.ResetDefaults(a.store)
		}),
		newConfigPathCmd(),
	)

	return cmd
}

// configSubcommand builds a config subcommand taking exactly nargs arguments
func configSubcommand(use, short string, nargs int, run func(a *app, args []string) (ui.Texter, error)) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ExactArgs(nargs),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}
			out, err := newOutput(cmd)
			if err != nil {
				return err
			}
			result, err := run(a, args)
			if err != nil {
				return err
			}
			return out.renderer.RenderResult(result)
		},
	}
}

func newConfigPathCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: MsgConfigPathShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), a.store.Path())
			return err
		},
	}
}
