package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/diogo/wallchat/internal/config"
	"github.com/diogo/wallchat/internal/render"
)

// SaveFunc persists an edited configuration
type SaveFunc func(cfg config.Config) error

// configView represents the current view in the settings editor
type configView int

const (
	viewMain configView = iota
	viewIntervalSelect
	viewStyleSelect    // Markdown style
	viewTUIThemeSelect // TUI color theme
)

// Menu item indices for main view
const (
	menuPollInterval = iota
	menuStyle
	menuTUITheme
	menuEmoji
	menuPreserveNewLines
	menuExit
	menuItemCount
)

// pollChoicesMs are the intervals offered by the editor
var pollChoicesMs = []int{250, 500, 1000, 2000, 5000}

// feedbackClearMsg is sent to clear feedback messages
type feedbackClearMsg struct{}

// ConfigModel edits the settings file
type ConfigModel struct {
	config config.Config
	path   string
	save   SaveFunc

	// Navigation
	view   configView
	cursor int
	choice int

	// Feedback
	feedback        string
	feedbackErr     bool
	feedbackTimeout time.Duration

	// Dimensions
	width  int
	height int
	ready  bool
}

// NewConfigModel creates the editor for cfg, stored at path
func NewConfigModel(cfg config.Config, path string, save SaveFunc) ConfigModel {
	UpdateTheme(cfg.TUITheme)
	return ConfigModel{
		config:          cfg,
		path:            path,
		save:            save,
		view:            viewMain,
		feedbackTimeout: 2 * time.Second,
	}
}

// Config returns the configuration as edited so far
func (m ConfigModel) Config() config.Config {
	return m.config
}

// Init initializes the model
func (m ConfigModel) Init() tea.Cmd {
	return nil
}

// clearFeedback returns a command that clears the feedback message after a delay
func clearFeedback(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return feedbackClearMsg{}
	})
}

// Update handles messages and updates the model
func (m ConfigModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true

	case feedbackClearMsg:
		m.feedback = ""
		m.feedbackErr = false

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit

		case "esc", "q":
			if m.view != viewMain {
				m.view = viewMain
				return m, nil
			}
			return m, tea.Quit

		case "up", "k":
			if m.view == viewMain {
				m.cursor = wrap(m.cursor-1, menuItemCount)
			} else {
				m.choice = wrap(m.choice-1, len(m.choices()))
			}

		case "down", "j":
			if m.view == viewMain {
				m.cursor = wrap(m.cursor+1, menuItemCount)
			} else {
				m.choice = wrap(m.choice+1, len(m.choices()))
			}

		case "enter", " ":
			return m.handleSelect()
		}
	}

	return m, nil
}

func wrap(i, n int) int {
	if n == 0 {
		return 0
	}
	return (i%n + n) % n
}

// choices lists the values offered by the current sub-view
func (m ConfigModel) choices() []string {
	switch m.view {
	case viewIntervalSelect:
		out := make([]string, len(pollChoicesMs))
		for i, ms := range pollChoicesMs {
			out[i] = formatInterval(ms)
		}
		return out
	case viewStyleSelect:
		return render.StandardStyles()
	case viewTUIThemeSelect:
		return render.TUIThemeNames()
	}
	return nil
}

// current is the configured value for the current sub-view
func (m ConfigModel) current() string {
	switch m.view {
	case viewIntervalSelect:
		return m.pollInterval()
	case viewStyleSelect:
		return m.markdownStyle()
	case viewTUIThemeSelect:
		return m.tuiTheme()
	}
	return ""
}

func (m ConfigModel) pollInterval() string {
	return m.config.PollInterval().String()
}

func (m ConfigModel) markdownStyle() string {
	if m.config.Markdown.Style == "" {
		return render.StyleDark
	}
	return m.config.Markdown.Style
}

func (m ConfigModel) tuiTheme() string {
	if m.config.TUITheme == "" {
		return render.DefaultTUIThemeName
	}
	return m.config.TUITheme
}

func formatInterval(ms int) string {
	return (time.Duration(ms) * time.Millisecond).String()
}

// open switches to a sub-view with the cursor on the current value
func (m ConfigModel) open(view configView) ConfigModel {
	m.view = view
	m.choice = 0
	current := m.current()
	for i, c := range m.choices() {
		if c == current {
			m.choice = i
			break
		}
	}
	return m
}

// handleSelect handles menu item selection
func (m ConfigModel) handleSelect() (tea.Model, tea.Cmd) {
	switch m.view {
	case viewMain:
		switch m.cursor {
		case menuPollInterval:
			return m.open(viewIntervalSelect), nil
		case menuStyle:
			return m.open(viewStyleSelect), nil
		case menuTUITheme:
			return m.open(viewTUIThemeSelect), nil
		case menuEmoji:
			m.config.Markdown.EnableEmoji = !m.config.Markdown.EnableEmoji
			return m.persist("Emoji " + boolWord(m.config.Markdown.EnableEmoji))
		case menuPreserveNewLines:
			m.config.Markdown.PreserveNewLines = !m.config.Markdown.PreserveNewLines
			return m.persist("Preserve newlines " + boolWord(m.config.Markdown.PreserveNewLines))
		case menuExit:
			return m, tea.Quit
		}

	case viewIntervalSelect:
		m.config.PollIntervalMs = pollChoicesMs[m.choice]
		m.view = viewMain
		return m.persist("Poll interval set to " + formatInterval(m.config.PollIntervalMs))

	case viewStyleSelect:
		m.config.Markdown.Style = render.StandardStyles()[m.choice]
		m.view = viewMain
		return m.persist("Markdown style set to " + m.config.Markdown.Style)

	case viewTUIThemeSelect:
		m.config.TUITheme = render.TUIThemeNames()[m.choice]
		UpdateTheme(m.config.TUITheme)
		m.view = viewMain
		return m.persist("TUI theme set to " + m.config.TUITheme)
	}

	return m, nil
}

// persist saves the config and reports the outcome
func (m ConfigModel) persist(done string) (tea.Model, tea.Cmd) {
	m.feedbackErr = false
	m.feedback = done
	if m.save != nil {
		if err := m.save(m.config); err != nil {
			m.feedback = fmt.Sprintf("Error: %v", err)
			m.feedbackErr = true
		}
	}
	return m, clearFeedback(m.feedbackTimeout)
}

func boolWord(v bool) string {
	if v {
		return "enabled"
	}
	return "disabled"
}

// View renders the TUI
func (m ConfigModel) View() string {
	if !m.ready {
		return loadingStyle.Render("  Initializing...")
	}

	contentWidth := m.width - 4
	if contentWidth < 40 {
		contentWidth = 40
	}

	var sections []string

	header := headerStyle.Width(contentWidth).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			titleStyle.Render("✦ Settings"),
			subtitleStyle.Render(m.path),
		),
	)
	sections = append(sections, header)

	var body string
	if m.view == viewMain {
		body = m.renderMainMenu()
	} else {
		body = m.renderChoices()
	}
	sections = append(sections, cardStyle.Width(contentWidth).Render(body))

	if m.feedback != "" {
		if m.feedbackErr {
			sections = append(sections, errorStyle.Render("✗ "+m.feedback))
		} else {
			sections = append(sections, noticeStyle.Render("✓ "+m.feedback))
		}
	}

	sections = append(sections, m.renderStatusBar(contentWidth))
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// menuLine renders one row with the cursor marker when selected
func menuLine(selected bool, label, value string) string {
	cursor := "  "
	style := settingStyle
	if selected {
		cursor = cursorStyle.Render("▸ ")
		style = settingSelectedStyle
	}
	if value == "" {
		return cursor + style.Render(label)
	}
	pad := 20 - lipgloss.Width(label)
	if pad < 1 {
		pad = 1
	}
	return cursor + style.Render(label) + strings.Repeat(" ", pad) + settingValueStyle.Render(value)
}

// renderMainMenu renders the main settings menu
func (m ConfigModel) renderMainMenu() string {
	rows := []struct {
		label string
		value string
	}{
		{"Poll Interval", m.pollInterval()},
		{"Markdown Style", m.markdownStyle()},
		{"TUI Theme", m.tuiTheme()},
		{"Emoji", boolWord(m.config.Markdown.EnableEmoji)},
		{"Preserve Newlines", boolWord(m.config.Markdown.PreserveNewLines)},
	}

	items := []string{titleStyle.Render("⚙ Settings"), ""}
	for i, r := range rows {
		items = append(items, menuLine(m.cursor == i, r.label, r.value))
	}
	items = append(items, "", menuLine(m.cursor == menuExit, "Exit", ""))

	return lipgloss.JoinVertical(lipgloss.Left, items...)
}

// renderChoices renders the selection list of a sub-view
func (m ConfigModel) renderChoices() string {
	var title string
	switch m.view {
	case viewIntervalSelect:
		title = "Select Poll Interval"
	case viewStyleSelect:
		title = "Select Markdown Style"
	case viewTUIThemeSelect:
		title = "Select TUI Theme"
	}

	current := m.current()
	items := []string{titleStyle.Render(title), ""}
	for i, c := range m.choices() {
		line := menuLine(m.choice == i, c, "")
		if c == current {
			line += hintStyle.Render(" (current)")
		}
		items = append(items, line)
	}

	return lipgloss.JoinVertical(lipgloss.Left, items...)
}

// renderStatusBar renders the bottom status bar
func (m ConfigModel) renderStatusBar(width int) string {
	back := "Exit"
	if m.view != viewMain {
		back = "Back"
	}
	shortcuts := []struct {
		key  string
		desc string
	}{
		{"↑↓", "Navigate"},
		{"Enter", "Select"},
		{"Esc", back},
	}

	var items []string
	for _, s := range shortcuts {
		items = append(items, statusKeyStyle.Render(s.key)+statusDescStyle.Render(" "+s.desc))
	}

	return statusBarStyle.Width(width).Align(lipgloss.Center).Render(strings.Join(items, "  │  "))
}

// RunConfig starts the settings editor
func RunConfig(ctx context.Context, cfg config.Config, path string, save SaveFunc) error {
	p := tea.NewProgram(
		NewConfigModel(cfg, path, save),
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)

	_, err := p.Run()
	return err
}
