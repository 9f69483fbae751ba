package commands

import (
	"context"
	"io"
	"os"

	"github.com/rs/zerolog"

	"github.com/diogo/wallchat/internal/api"
	"github.com/diogo/wallchat/internal/chat"
	"github.com/diogo/wallchat/internal/config"
	"github.com/diogo/wallchat/internal/models"
	"github.com/diogo/wallchat/internal/tui"
)

// TUIInterface defines the methods required from the TUI package.
type TUIInterface interface {
	RunChat(ctx context.Context, widget *chat.Widget, server string) error
	RunDocs(ctx context.Context, fetch tui.HelpFetcher, doc *models.HelpDocument, source string) error
	RunConfig(ctx context.Context, cfg config.Config, path string, save tui.SaveFunc) error
}

// Dependencies holds the external dependencies for the commands.
// This allows for dependency injection and easier testing.
type Dependencies struct {
	// NewClient builds the service client from the resolved configuration.
	NewClient func(cfg config.Config, logger zerolog.Logger) (api.ChatClientInterface, error)

	LoadConfig func() (config.Config, error)
	SaveConfig func(cfg config.Config) error
	ConfigPath func() (string, error)

	// TUI is the terminal user interface.
	TUI TUIInterface

	Out io.Writer
	Err io.Writer

	// IsTTY reports whether stdout is interactive
	IsTTY         func() bool
	TerminalWidth func() int
}

// DefaultTUI is the production implementation of TUIInterface.
type DefaultTUI struct{}

func (d *DefaultTUI) RunChat(ctx context.Context, widget *chat.Widget, server string) error {
	return tui.RunChat(ctx, widget, server)
}

func (d *DefaultTUI) RunDocs(ctx context.Context, fetch tui.HelpFetcher, doc *models.HelpDocument, source string) error {
	return tui.RunDocs(ctx, fetch, doc, source)
}

func (d *DefaultTUI) RunConfig(ctx context.Context, cfg config.Config, path string, save tui.SaveFunc) error {
	return tui.RunConfig(ctx, cfg, path, save)
}

// newAPIClient is the production client factory
func newAPIClient(cfg config.Config, logger zerolog.Logger) (api.ChatClientInterface, error) {
	return api.NewClient(cfg.ServerURL,
		api.WithTimeout(cfg.RequestTimeout()),
		api.WithLogger(logger),
	)
}

// NewDependencies creates a new Dependencies struct with default implementations.
func NewDependencies() *Dependencies {
	return &Dependencies{
		NewClient:     newAPIClient,
		LoadConfig:    config.LoadConfig,
		SaveConfig:    config.SaveConfig,
		ConfigPath:    config.GetConfigPath,
		TUI:           &DefaultTUI{},
		Out:           os.Stdout,
		Err:           os.Stderr,
		IsTTY:         isStdoutTTY,
		TerminalWidth: getTerminalWidth,
	}
}
