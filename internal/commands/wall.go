package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/diogo/wallchat/internal/api"
	"github.com/diogo/wallchat/internal/render"
	"github.com/diogo/wallchat/internal/tui"
)

func newWallCmd(deps *Dependencies, flags *globalFlags) *cobra.Command {
	var (
		watch bool
		raw   bool
	)

	cmd := &cobra.Command{
		Use:   "wall",
		Short: "Print the message wall",
		Long: `Print the current message wall as text.

With --watch the wall is polled on the configured interval and printed again
whenever it changes, until interrupted. --raw prints the HTML as served.`,
		Args: cobra.NoArgs,
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

			format := func(content string) string {
				if raw {
					return content
				}
				return render.WallText(content)
			}

			ctx := cmd.Context()
			if !watch {
				content, err := client.FetchWall(ctx)
				if err != nil {
					return err
				}
				printWall(deps, format(content))
				return nil
			}

			poller := api.NewPoller(client, rt.cfg.PollInterval(), api.WithPollerLogger(rt.logger))
			if err := poller.Start(ctx); err != nil {
				return err
			}
			defer poller.Stop()

			var (
				last    string
				printed bool
				failing bool
			)
			for {
				select {
				case <-ctx.Done():
					return nil
				case u := <-poller.Updates():
					if u.Err != nil {
						if !failing {
							fmt.Fprintln(deps.Err, tui.FormatError(u.Err))
						}
						failing = true
						continue
					}
					failing = false
					if printed && u.Content == last {
						continue
					}
					if printed {
						fmt.Fprintln(deps.Out, strings.Repeat("─", 20))
					}
					printWall(deps, format(u.Content))
					last = u.Content
					printed = true
				}
			}
		},
	}

	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "Keep polling and print the wall when it changes")
	cmd.Flags().BoolVar(&raw, "raw", false, "Print the wall HTML unchanged")
	return cmd
}

func printWall(deps *Dependencies, text string) {
	if text == "" {
		return
	}
	fmt.Fprintln(deps.Out, strings.TrimRight(text, "\n"))
}
