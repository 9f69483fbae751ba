package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/diogo/wallchat/internal/chat"
)

func newChatCmd(deps *Dependencies, flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "chat",
		Short: "Open the interactive chat screen",
		Long: `Open the chat screen. The wall refreshes on the poll interval.

Enter sends, Alt+Enter adds a line, Ctrl+Y copies the wall and Esc quits.
Type "/rename <name>" to change your display name.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := flags.resolve(cmd, deps, true)
			if err != nil {
				return err
			}
			defer rt.close()

			client, err := deps.NewClient(rt.cfg, rt.logger)
			if err != nil {
				return fmt.Errorf("failed to create client: %w", err)
			}
			defer client.Close()

			widget := chat.NewWidget(client,
				chat.WithInterval(rt.cfg.PollInterval()),
				chat.WithLogger(rt.logger),
			)
			return deps.TUI.RunChat(cmd.Context(), widget, rt.cfg.ServerURL)
		},
	}
}
