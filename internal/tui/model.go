package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/diogo/wallchat/internal/api"
	"github.com/diogo/wallchat/internal/chat"
	"github.com/diogo/wallchat/internal/render"
)

// Message types for the chat TUI
type (
	wallMsg api.WallUpdate

	sentMsg struct {
		action chat.Action
		err    error
	}

	noticeClearMsg struct {
		id int
	}

	sendErrClearMsg struct {
		id int
	}
)

const (
	noticeDuration  = 2 * time.Second
	sendErrDuration = 8 * time.Second
)

// ChatWidget is what the chat screen needs from chat.Widget
type ChatWidget interface {
	SetInput(s string)
	Wall() string
	Prepare() (chat.Action, bool)
	Dispatch(ctx context.Context, action chat.Action) error
}

// ChatModel is the chat screen: the wall, an input box and a status bar
type ChatModel struct {
	ctx     context.Context
	widget  ChatWidget
	server  string
	updates chan api.WallUpdate

	// copyToClipboard is swapped in tests
	copyToClipboard func(string) error

	// UI components
	viewport viewport.Model
	textarea textarea.Model
	spinner  spinner.Model

	// State
	ready      bool
	sending    int
	lastUpdate time.Time
	notice     string
	noticeID   int

	// pollErr is replaced by every poll; sendErr belongs to the user's last
	// action and outlives later polls.
	pollErr   error
	sendErr   error
	sendErrID int

	// Dimensions
	width  int
	height int
}

// NewChatModel creates the chat screen for widget. Wall updates reach it
// through Forward.
func NewChatModel(ctx context.Context, widget ChatWidget, server string) ChatModel {
	ta := textarea.New()
	ta.Placeholder = "Type a message, or /rename <name>..."
	ta.CharLimit = 0
	ta.ShowLineNumbers = false
	ta.SetHeight(2)
	ta.KeyMap.InsertNewline.SetEnabled(false)
	ta.Focus()

	ta.FocusedStyle.CursorLine = lipgloss.NewStyle()
	ta.FocusedStyle.Base = lipgloss.NewStyle().Foreground(colorText)
	ta.FocusedStyle.Placeholder = lipgloss.NewStyle().Foreground(colorTextDim)
	ta.BlurredStyle = ta.FocusedStyle

	s := spinner.New()
	s.Spinner = spinner.Points
	s.Style = loadingStyle

	return ChatModel{
		ctx:             ctx,
		widget:          widget,
		server:          server,
		updates:         make(chan api.WallUpdate, 1),
		copyToClipboard: clipboard.WriteAll,
		textarea:        ta,
		spinner:         s,
	}
}

// Forward hands a poll update to the screen, replacing one it has not read yet.
// It is meant to be passed to chat.Widget.Start.
func (m ChatModel) Forward(u api.WallUpdate) {
	for {
		select {
		case m.updates <- u:
			return
		default:
		}
		select {
		case <-m.updates:
		default:
		}
	}
}

func waitForWall(updates <-chan api.WallUpdate) tea.Cmd {
	return func() tea.Msg {
		return wallMsg(<-updates)
	}
}

// Init initializes the model
func (m ChatModel) Init() tea.Cmd {
	return tea.Batch(
		textarea.Blink,
		waitForWall(m.updates),
	)
}

// Update handles messages and updates the model
func (m ChatModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	m, cmd := m.update(msg)
	m.layout()
	return m, cmd
}

func (m ChatModel) update(msg tea.Msg) (ChatModel, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if !m.ready {
			m.viewport = viewport.New(m.contentWidth()-2, 3)
			m.ready = true
		}
		m.textarea.SetWidth(m.contentWidth() - 4)
		m.layout()
		m.refreshWall()

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit

		case "enter":
			return m.submit()

		case "alt+enter":
			m.textarea.InsertString("\n")
			return m, nil

		case "ctrl+y":
			text := render.WallText(m.widget.Wall())
			if err := m.copyToClipboard(text); err != nil {
				cmd := m.setSendErr(fmt.Errorf("copy wall: %w", err))
				return m, cmd
			}
			return m.setNotice("Wall copied to clipboard")
		}

	case wallMsg:
		m.pollErr = msg.Err
		if msg.Err == nil {
			m.lastUpdate = msg.At
			m.refreshWall()
		}
		cmds = append(cmds, waitForWall(m.updates))

	case sentMsg:
		if m.sending > 0 {
			m.sending--
		}
		if msg.err != nil {
			cmds = append(cmds, m.setSendErr(msg.err))
			break
		}
		m.sendErr = nil
		if msg.action.Kind == chat.ActionRename {
			m.notice = "Renamed to " + msg.action.Name
			cmds = append(cmds, m.noticeCmd())
		}

	case noticeClearMsg:
		if msg.id == m.noticeID {
			m.notice = ""
		}

	case sendErrClearMsg:
		if msg.id == m.sendErrID {
			m.sendErr = nil
		}

	case spinner.TickMsg:
		if m.sending > 0 {
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}
	}

	// Only pass KeyMsg to textarea to prevent escape sequence leaks
	if _, ok := msg.(tea.KeyMsg); ok {
		m.textarea, cmd = m.textarea.Update(msg)
		cmds = append(cmds, cmd)
	}

	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// submit runs the widget's send path for the textarea contents
func (m ChatModel) submit() (ChatModel, tea.Cmd) {
	m.widget.SetInput(m.textarea.Value())
	action, ok := m.widget.Prepare()
	if !ok {
		return m, nil
	}

	m.textarea.Reset()
	m.refreshWall()
	m.viewport.GotoBottom()
	m.sending++
	m.sendErr = nil

	return m, tea.Batch(m.dispatch(action), m.spinner.Tick)
}

func (m ChatModel) dispatch(action chat.Action) tea.Cmd {
	ctx := m.ctx
	widget := m.widget
	return func() tea.Msg {
		return sentMsg{action: action, err: widget.Dispatch(ctx, action)}
	}
}

func (m ChatModel) setNotice(text string) (ChatModel, tea.Cmd) {
	m.notice = text
	cmd := m.noticeCmd()
	return m, cmd
}

// noticeCmd schedules clearing of the current notice
func (m *ChatModel) noticeCmd() tea.Cmd {
	m.noticeID++
	id := m.noticeID
	return tea.Tick(noticeDuration, func(time.Time) tea.Msg {
		return noticeClearMsg{id: id}
	})
}

// setSendErr shows err until the next successful send or a timeout
func (m *ChatModel) setSendErr(err error) tea.Cmd {
	m.sendErr = err
	m.sendErrID++
	id := m.sendErrID
	return tea.Tick(sendErrDuration, func(time.Time) tea.Msg {
		return sendErrClearMsg{id: id}
	})
}

// visibleErr is the error shown under the status bar; the user's own
// action wins over a background poll failure.
func (m ChatModel) visibleErr() error {
	if m.sendErr != nil {
		return m.sendErr
	}
	return m.pollErr
}

func (m ChatModel) renderError() string {
	err := m.visibleErr()
	if err == nil {
		return ""
	}
	return lipgloss.NewStyle().Width(m.contentWidth() + 2).Render(FormatError(err))
}

// layout sizes the wall so the whole frame, error block included, fits
// the terminal height
func (m *ChatModel) layout() {
	if !m.ready {
		return
	}

	const (
		headerHeight = 3 // title line and border
		inputHeight  = 5 // label, two textarea lines and border
		statusHeight = 1
		wallBorders  = 2
	)

	vpHeight := m.height - headerHeight - inputHeight - statusHeight - wallBorders
	if block := m.renderError(); block != "" {
		vpHeight -= lipgloss.Height(block)
	}
	if vpHeight < 3 {
		vpHeight = 3
	}
	if vpHeight == m.viewport.Height && m.viewport.Width == m.contentWidth()-2 {
		return
	}

	m.viewport.Width = m.contentWidth() - 2
	m.viewport.Height = vpHeight
	m.refreshWall()
}

// refreshWall re-renders the wall, following the bottom if it was there
func (m *ChatModel) refreshWall() {
	if !m.ready {
		return
	}
	atBottom := m.viewport.AtBottom()

	text := render.WallText(m.widget.Wall())
	if text == "" {
		m.viewport.SetContent("")
		return
	}
	m.viewport.SetContent(wallTextStyle.Width(m.viewport.Width).Render(text))
	if atBottom {
		m.viewport.GotoBottom()
	}
}

func (m ChatModel) contentWidth() int {
	w := m.width - 2
	if w < 20 {
		w = 20
	}
	return w
}

// View renders the TUI
func (m ChatModel) View() string {
	if !m.ready {
		return loadingStyle.Render("  Initializing...")
	}

	var sections []string
	contentWidth := m.contentWidth()

	// Header
	headerContent := lipgloss.JoinHorizontal(lipgloss.Center,
		titleStyle.Render("✦ wallchat"),
		hintStyle.Render("  •  "),
		subtitleStyle.Render(m.server),
	)
	sections = append(sections, headerStyle.Width(contentWidth).Render(headerContent))

	// Wall
	wallContent := m.viewport.View()
	if strings.TrimSpace(render.WallText(m.widget.Wall())) == "" {
		wallContent = m.renderWelcome()
	}
	sections = append(sections, wallAreaStyle.
		Width(contentWidth).
		Height(m.viewport.Height).
		Render(wallContent))

	// Input
	label := inputLabelStyle.Render("You")
	if m.sending > 0 {
		label += m.spinner.View() + hintStyle.Render(" sending")
	}
	inputContent := lipgloss.JoinVertical(lipgloss.Left, label, m.textarea.View())
	sections = append(sections, inputPanelStyle.Width(contentWidth).Render(inputContent))

	// Status bar
	sections = append(sections, m.renderStatusBar(contentWidth))

	if block := m.renderError(); block != "" {
		sections = append(sections, block)
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m ChatModel) renderWelcome() string {
	width := m.viewport.Width
	title := welcomeTitleStyle.Width(width).Render("The wall is empty")
	sub := welcomeStyle.Width(width).Render("Say something, or pick a name with /rename <name>")
	content := lipgloss.JoinVertical(lipgloss.Center, title, "", sub)

	top := (m.viewport.Height - lipgloss.Height(content)) / 2
	if top < 0 {
		top = 0
	}
	return strings.Repeat("\n", top) + content
}

func (m ChatModel) renderStatusBar(width int) string {
	if m.notice != "" {
		return statusBarStyle.Width(width).Align(lipgloss.Center).Render(noticeStyle.Render(m.notice))
	}

	shortcuts := []struct {
		key  string
		desc string
	}{
		{"Enter", "Send"},
		{"Alt+Enter", "Newline"},
		{"Ctrl+Y", "Copy wall"},
		{"Esc", "Quit"},
	}

	var items []string
	for _, s := range shortcuts {
		items = append(items, statusKeyStyle.Render(s.key)+statusDescStyle.Render(" "+s.desc))
	}
	if !m.lastUpdate.IsZero() {
		items = append(items, statusDescStyle.Render("updated "+m.lastUpdate.Format("15:04:05")))
	}

	return statusBarStyle.Width(width).Align(lipgloss.Center).Render(strings.Join(items, "  │  "))
}

// RunChat runs the chat screen until the user quits. The widget's poll loop
// lives exactly as long as the screen.
func RunChat(ctx context.Context, widget *chat.Widget, server string) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	m := NewChatModel(ctx, widget, server)
	if err := widget.Start(ctx, m.Forward); err != nil {
		return fmt.Errorf("start polling: %w", err)
	}
	defer widget.Stop()

	p := tea.NewProgram(
		m,
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)

	_, err := p.Run()
	return err
}
