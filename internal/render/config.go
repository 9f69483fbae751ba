package render

import (
	"os"

	"github.com/diogo/wallchat/internal/config"
)

// EnvStyle overrides the configured markdown style
const EnvStyle = "GLAMOUR_STYLE"

// OptionsFromConfig builds render options from the user configuration.
// GLAMOUR_STYLE, when set, wins over the configured style.
func OptionsFromConfig(cfg *config.Config) Options {
	opts := DefaultOptions()

	if cfg != nil {
		md := cfg.Markdown
		if md.Style != "" {
			opts.Style = md.Style
		}
		opts.EnableEmoji = md.EnableEmoji
		opts.PreserveNewLines = md.PreserveNewLines
	}

	if style := os.Getenv(EnvStyle); style != "" {
		opts.Style = style
	}

	return opts
}

// OptionsFromConfigWithWidth is OptionsFromConfig with a fixed width
func OptionsFromConfigWithWidth(cfg *config.Config, width int) Options {
	opts := OptionsFromConfig(cfg)
	opts.Width = width
	return opts
}
