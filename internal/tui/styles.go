// Package tui provides the terminal user interfaces for wallchat.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/diogo/wallchat/internal/errors"
	"github.com/diogo/wallchat/internal/render"
)

// currentTheme is the palette the styles below were built from
var currentTheme render.TUITheme

// Color variables (updated from theme)
var (
	colorBorder lipgloss.Color

	colorPrimary   lipgloss.Color
	colorSecondary lipgloss.Color
	colorAccent    lipgloss.Color
	colorWarning   lipgloss.Color
	colorError     lipgloss.Color

	colorText     lipgloss.Color
	colorTextDim  lipgloss.Color
	colorTextMute lipgloss.Color
)

// Style variables (rebuilt when theme changes)
var (
	headerStyle   lipgloss.Style
	titleStyle    lipgloss.Style
	subtitleStyle lipgloss.Style
	hintStyle     lipgloss.Style

	// Wall panel
	wallAreaStyle lipgloss.Style
	wallTextStyle lipgloss.Style

	inputPanelStyle lipgloss.Style
	inputLabelStyle lipgloss.Style
	loadingStyle    lipgloss.Style

	statusBarStyle  lipgloss.Style
	statusKeyStyle  lipgloss.Style
	statusDescStyle lipgloss.Style
	noticeStyle     lipgloss.Style

	errorStyle lipgloss.Style

	welcomeStyle      lipgloss.Style
	welcomeTitleStyle lipgloss.Style

	// Docs cards
	cardStyle         lipgloss.Style
	cardSelectedStyle lipgloss.Style
	cardURLStyle      lipgloss.Style
	cardBodyStyle     lipgloss.Style
	cursorStyle       lipgloss.Style

	// Settings editor
	settingStyle         lipgloss.Style
	settingSelectedStyle lipgloss.Style
	settingValueStyle    lipgloss.Style
)

func init() {
	UpdateTheme(render.DefaultTUIThemeName)
}

// UpdateTheme switches to the named theme; unknown names fall back to the default
func UpdateTheme(name string) {
	theme := render.GetTUITheme(name)
	currentTheme = theme

	colorBorder = theme.Border
	colorPrimary = theme.Primary
	colorSecondary = theme.Secondary
	colorAccent = theme.Accent
	colorWarning = theme.Warning
	colorError = theme.Error
	colorText = theme.Text
	colorTextDim = theme.TextDim
	colorTextMute = theme.TextMute

	rebuildStyles()
}

// CurrentThemeName returns the active theme
func CurrentThemeName() string {
	return currentTheme.Name
}

func rebuildStyles() {
	headerStyle = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(colorBorder).
		Padding(0, 2)

	titleStyle = lipgloss.NewStyle().
		Foreground(colorPrimary).
		Bold(true)

	subtitleStyle = lipgloss.NewStyle().
		Foreground(colorTextDim)

	hintStyle = lipgloss.NewStyle().
		Foreground(colorTextMute).
		Italic(true)

	wallAreaStyle = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(colorBorder).
		Padding(0, 1)

	wallTextStyle = lipgloss.NewStyle().
		Foreground(colorText)

	inputPanelStyle = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(colorBorder).
		Padding(0, 1)

	inputLabelStyle = lipgloss.NewStyle().
		Foreground(colorPrimary).
		Bold(true).
		MarginRight(1)

	loadingStyle = lipgloss.NewStyle().
		Foreground(colorAccent).
		Bold(true)

	statusBarStyle = lipgloss.NewStyle().
		Foreground(colorTextMute)

	statusKeyStyle = lipgloss.NewStyle().
		Foreground(colorTextDim).
		Bold(true)

	statusDescStyle = lipgloss.NewStyle().
		Foreground(colorTextMute)

	noticeStyle = lipgloss.NewStyle().
		Foreground(colorSecondary)

	errorStyle = lipgloss.NewStyle().
		Foreground(colorError).
		Bold(true)

	welcomeStyle = lipgloss.NewStyle().
		Foreground(colorTextDim).
		Align(lipgloss.Center)

	welcomeTitleStyle = lipgloss.NewStyle().
		Foreground(colorPrimary).
		Bold(true).
		Align(lipgloss.Center)

	cardStyle = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(colorBorder).
		Padding(0, 1)

	cardSelectedStyle = cardStyle.
		BorderForeground(colorAccent)

	cardURLStyle = lipgloss.NewStyle().
		Foreground(colorText).
		Bold(true)

	cardBodyStyle = lipgloss.NewStyle().
		Foreground(colorTextDim).
		PaddingLeft(2)

	cursorStyle = lipgloss.NewStyle().
		Foreground(colorAccent)

	settingStyle = lipgloss.NewStyle().
		Foreground(colorText)

	settingSelectedStyle = lipgloss.NewStyle().
		Foreground(colorPrimary).
		Bold(true)

	settingValueStyle = lipgloss.NewStyle().
		Foreground(colorSecondary)
}

// operationBadge renders an HTTP operation in its theme color
func operationBadge(op string) string {
	if op == "" {
		return ""
	}
	return lipgloss.NewStyle().
		Foreground(currentTheme.OperationColor(op)).
		Bold(true).
		Render(strings.ToUpper(op))
}

// errorHint suggests a next step for err, or returns ""
func errorHint(err error) string {
	status := errors.GetHTTPStatus(err)
	switch {
	case errors.IsTimeoutError(err):
		return "Request timed out. Is the server slow or unreachable?"
	case errors.IsNetworkError(err):
		return "Cannot reach the server. Check --server and that it is running"
	case status == 404:
		return "Endpoint not found. Is --server pointing at a wallchat server?"
	case status >= 500:
		return "The server failed to handle the request. Try again"
	case status >= 400:
		return "The server rejected the request"
	case errors.IsParseError(err):
		return "The server answered with something that is not a help document"
	}
	return ""
}

// FormatError returns a styled error message with additional context.
func FormatError(err error) string {
	if err == nil {
		return ""
	}

	errStyle := lipgloss.NewStyle().Foreground(colorError)
	dimStyle := lipgloss.NewStyle().Foreground(colorTextDim)

	var sb strings.Builder
	sb.WriteString(errStyle.Render(fmt.Sprintf("✗ %v", err)))

	if status := errors.GetHTTPStatus(err); status > 0 {
		sb.WriteString(dimStyle.Render(fmt.Sprintf("\n  HTTP Status: %d", status)))
	}
	if endpoint := errors.GetEndpoint(err); endpoint != "" {
		sb.WriteString(dimStyle.Render(fmt.Sprintf("\n  Endpoint: %s", endpoint)))
	}
	if hint := errorHint(err); hint != "" {
		sb.WriteString(dimStyle.Render("\n  Hint: " + hint))
	}

	return sb.String()
}
