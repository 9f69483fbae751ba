package commands

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/diogo/wallchat/internal/config"
)

// NewConfigCmd creates the config command and its subcommands
func NewConfigCmd(deps *Dependencies) *cobra.Command {
	show := func(cmd *cobra.Command, args []string) error {
		cfg, err := deps.LoadConfig()
		if err != nil {
			return err
		}
		data, err := json.MarshalIndent(cfg, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal config: %w", err)
		}
		fmt.Fprintln(deps.Out, string(data))
		return nil
	}

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show, edit or change settings",
		Long: `Show or change the settings stored in ~/.wallchat/config.json.

Without a subcommand the effective configuration is printed.`,
		Args: cobra.NoArgs,
		RunE: show,
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "show",
			Short: "Print the effective configuration",
			Args:  cobra.NoArgs,
			RunE:  show,
		},
		&cobra.Command{
			Use:   "path",
			Short: "Print the config file path",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				path, err := deps.ConfigPath()
				if err != nil {
					return err
				}
				fmt.Fprintln(deps.Out, path)
				return nil
			},
		},
		&cobra.Command{
			Use:   "edit",
			Short: "Edit settings interactively",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				cfg, err := deps.LoadConfig()
				if err != nil {
					return err
				}
				path, err := deps.ConfigPath()
				if err != nil {
					return err
				}
				return deps.TUI.RunConfig(cmd.Context(), cfg, path, deps.SaveConfig)
			},
		},
		&cobra.Command{
			Use:   "set <key> <value>",
			Short: "Change one setting",
			Long:  "Change one setting. Keys: " + strings.Join(config.SettableKeys(), ", "),
			Args:  cobra.ExactArgs(2),
			ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
				if len(args) == 0 {
					return config.SettableKeys(), cobra.ShellCompDirectiveNoFileComp
				}
				return nil, cobra.ShellCompDirectiveNoFileComp
			},
			RunE: func(cmd *cobra.Command, args []string) error {
				cfg, err := deps.LoadConfig()
				if err != nil {
					return err
				}
				if err := cfg.Set(args[0], args[1]); err != nil {
					return err
				}
				if err := deps.SaveConfig(cfg); err != nil {
					return err
				}
				fmt.Fprintf(deps.Out, "%s updated\n", args[0])
				return nil
			},
		},
	)

	return cmd
}
