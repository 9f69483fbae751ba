package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/diogo/wallchat/internal/docs"
	"github.com/diogo/wallchat/internal/models"
	"github.com/diogo/wallchat/internal/render"
)

func newDocsCmd(deps *Dependencies, flags *globalFlags) *cobra.Command {
	var (
		plain bool
		file  string
	)

	cmd := &cobra.Command{
		Use:   "docs",
		Short: "Show the service's endpoint list",
		Long: `Show the endpoints the server lists at /help as collapsible cards.

With --plain, or when stdout is not a terminal, the list is rendered once as
markdown text instead. --file reads a local JSON or YAML document with the
same shape instead of asking the server.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			interactive := !plain && deps.IsTTY()
			rt, err := flags.resolve(cmd, deps, interactive)
			if err != nil {
				return err
			}
			defer rt.close()

			var (
				doc    *models.HelpDocument
				fetch  func(ctx context.Context) (*models.HelpDocument, error)
				source string
			)

			if file != "" {
				doc, err = docs.LoadFile(file)
				if err != nil {
					return err
				}
				source = file
			} else {
				client, err := deps.NewClient(rt.cfg, rt.logger)
				if err != nil {
					return fmt.Errorf("failed to create client: %w", err)
				}
				defer client.Close()
				fetch = client.FetchHelp
				source = rt.cfg.ServerURL
			}

			if interactive {
				return deps.TUI.RunDocs(cmd.Context(), fetch, doc, source)
			}

			if doc == nil {
				doc, err = fetchHelp(cmd.Context(), deps, render.GetTUITheme(rt.cfg.TUITheme), fetch)
				if err != nil {
					return err
				}
			}

			opts := render.OptionsFromConfigWithWidth(&rt.cfg, deps.TerminalWidth())
			if !deps.IsTTY() {
				opts.Style = render.StyleNoTTY
			}
			out, err := docs.Render(doc, opts)
			if err != nil {
				// Fall back to the markdown source
				out = docs.RenderDocMarkdown(doc)
			}
			fmt.Fprint(deps.Out, out)
			return nil
		},
	}

	cmd.Flags().BoolVar(&plain, "plain", false, "Print rendered text instead of the interactive list")
	cmd.Flags().StringVarP(&file, "file", "f", "", "Read endpoints from a local JSON or YAML file")
	return cmd
}

// fetchHelp loads the document, animating a spinner on an interactive stderr
func fetchHelp(ctx context.Context, deps *Dependencies, theme render.TUITheme, fetch func(context.Context) (*models.HelpDocument, error)) (*models.HelpDocument, error) {
	spin := newSpinner(deps.Err, "Fetching endpoints", theme)
	animate := deps.IsTTY() && isStderrTTY()
	if animate {
		spin.start()
	}

	doc, err := fetch(ctx)
	if err != nil {
		if animate {
			spin.stopWithError()
		}
		return nil, err
	}
	if animate {
		spin.stopWithSuccess(fmt.Sprintf("%d endpoints", doc.Len()))
	}
	return doc, nil
}

