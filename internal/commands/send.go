package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/diogo/wallchat/internal/chat"
	apierrors "github.com/diogo/wallchat/internal/errors"
)

func newSendCmd(deps *Dependencies, flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "send <message...>",
		Short: "Send one message, or /rename <name>",
		Long: `Send the arguments, joined by spaces, as one message.

A message of the form "/rename <name>" changes your display name instead;
whitespace inside the name is removed.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := flags.resolve(cmd, deps, false)
			if err != nil {
				return err
			}
			defer rt.close()

			client, err := deps.NewClient(rt.cfg, rt.logger)
			if err != nil {
				return fmt.Errorf("failed to create client: %w", err)
			}
			defer client.Close()

			widget := chat.NewWidget(client, chat.WithLogger(rt.logger))
			widget.SetInput(strings.Join(args, " "))

			action, err := widget.Submit(cmd.Context())
			if err != nil {
				return err
			}

			switch action.Kind {
			case chat.ActionNone:
				return apierrors.ErrEmptyMessage
			case chat.ActionRename:
				fmt.Fprintf(deps.Out, "Renamed to %s\n", action.Name)
			default:
				fmt.Fprintln(deps.Out, "Sent")
			}
			return nil
		},
	}
}
