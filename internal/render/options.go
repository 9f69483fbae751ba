// Package render turns service content into terminal output: glamour
// markdown, wall HTML flattened to text, and the TUI colour themes.
package render

// Glamour standard style names accepted in Options.Style.
const (
	StyleAuto       = "auto"
	StyleDark       = "dark"
	StyleLight      = "light"
	StyleNoTTY      = "notty"
	StyleASCII      = "ascii"
	StyleDracula    = "dracula"
	StyleTokyoNight = "tokyo-night"
	StylePink       = "pink"
)

// Options selects how markdown is rendered. It is comparable and doubles
// as the renderer cache key.
type Options struct {
	// Width is the word-wrap column; 0 disables wrapping
	Width int
	// Style is a standard style name or a path to a glamour JSON style
	Style            string
	EnableEmoji      bool
	PreserveNewLines bool
}

// DefaultOptions wraps at 80 columns with the dark style
func DefaultOptions() Options {
	return Options{
		Width:            80,
		Style:            StyleDark,
		EnableEmoji:      true,
		PreserveNewLines: true,
	}
}

func (o Options) WithWidth(width int) Options {
	o.Width = width
	return o
}

func (o Options) WithStyle(style string) Options {
	o.Style = style
	return o
}

// StandardStyles lists glamour's built-in style names
func StandardStyles() []string {
	return []string{StyleAuto, StyleDark, StyleLight, StyleNoTTY, StyleASCII, StyleDracula, StyleTokyoNight, StylePink}
}

// IsStandardStyle reports whether style names one of glamour's built-in styles
func IsStandardStyle(style string) bool {
	for _, s := range StandardStyles() {
		if s == style {
			return true
		}
	}
	return false
}
