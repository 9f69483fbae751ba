package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/diogo/wallchat/internal/docs"
	"github.com/diogo/wallchat/internal/models"
)

// frameInterval paces the card open/close animation
const frameInterval = 16 * time.Millisecond

// HelpFetcher loads the help document
type HelpFetcher func(ctx context.Context) (*models.HelpDocument, error)

type (
	helpLoadedMsg struct {
		doc *models.HelpDocument
		err error
	}

	frameMsg time.Time
)

// DocsModel shows the endpoint list as collapsible cards
type DocsModel struct {
	ctx    context.Context
	fetch  HelpFetcher
	source string

	deck      *docs.Deck
	cursor    int
	loading   bool
	animating bool
	err       error

	viewport viewport.Model
	spinner  spinner.Model
	ready    bool

	width  int
	height int
}

// NewDocsModel creates the docs screen. With a nil doc the screen fetches
// on Init; fetch may be nil for documents loaded from a file, which also
// disables refetching.
func NewDocsModel(ctx context.Context, fetch HelpFetcher, doc *models.HelpDocument, source string) DocsModel {
	s := spinner.New()
	s.Spinner = spinner.Points
	s.Style = loadingStyle

	m := DocsModel{
		ctx:     ctx,
		fetch:   fetch,
		source:  source,
		spinner: s,
	}
	if doc != nil {
		m.deck = docs.NewDeck(doc, 0)
	}
	return m
}

func (m DocsModel) fetchCmd() tea.Cmd {
	ctx, fetch := m.ctx, m.fetch
	return func() tea.Msg {
		doc, err := fetch(ctx)
		return helpLoadedMsg{doc: doc, err: err}
	}
}

func frameTick() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

// Init initializes the model
func (m DocsModel) Init() tea.Cmd {
	if m.deck == nil && m.fetch != nil {
		return tea.Batch(m.fetchCmd(), m.spinner.Tick)
	}
	return nil
}

// Update handles messages and updates the model
func (m DocsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		vpHeight := m.height - 4
		if vpHeight < 3 {
			vpHeight = 3
		}
		if !m.ready {
			m.viewport = viewport.New(m.width, vpHeight)
			m.ready = true
		} else {
			m.viewport.Width = m.width
			m.viewport.Height = vpHeight
		}
		if m.deck != nil {
			m.deck.SetWidth(m.bodyWidth())
		}
		m.refresh()
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc", "q":
			return m, tea.Quit

		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
				m.refresh()
			}
			return m, nil

		case "down", "j":
			if m.deck != nil && m.cursor < m.deck.Len()-1 {
				m.cursor++
				m.refresh()
			}
			return m, nil

		case "enter", " ":
			if m.deck == nil || !m.deck.Toggle(m.cursor) {
				return m, nil
			}
			m.refresh()
			if !m.animating && m.deck.Animating() {
				m.animating = true
				return m, frameTick()
			}
			return m, nil

		case "r":
			if m.fetch == nil || m.loading {
				return m, nil
			}
			m.loading = true
			m.err = nil
			return m, tea.Batch(m.fetchCmd(), m.spinner.Tick)
		}

	case helpLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		m.deck = docs.NewDeck(msg.doc, m.bodyWidth())
		if m.cursor >= m.deck.Len() {
			m.cursor = max(m.deck.Len()-1, 0)
		}
		m.animating = false
		m.refresh()
		return m, nil

	case frameMsg:
		if m.deck == nil {
			m.animating = false
			return m, nil
		}
		if m.deck.Step() {
			m.refresh()
			return m, frameTick()
		}
		m.animating = false
		m.refresh()
		return m, nil

	case spinner.TickMsg:
		if m.loading || m.deck == nil {
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil
	}

	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

// bodyWidth is the wrap width for card bodies inside their borders
func (m DocsModel) bodyWidth() int {
	w := m.width - 10
	if w < 10 {
		return 0
	}
	return w
}

// refresh re-renders the cards and keeps the cursor card on screen
func (m *DocsModel) refresh() {
	if !m.ready || m.deck == nil {
		return
	}

	var b strings.Builder
	cursorTop, cursorBottom := 0, 0
	line := 0
	for i, c := range m.deck.Cards() {
		card := m.renderCard(i, c)
		h := lipgloss.Height(card)
		if i == m.cursor {
			cursorTop, cursorBottom = line, line+h
		}
		b.WriteString(card)
		b.WriteString("\n")
		line += h
	}
	m.viewport.SetContent(b.String())

	switch {
	case cursorTop < m.viewport.YOffset:
		m.viewport.SetYOffset(cursorTop)
	case cursorBottom > m.viewport.YOffset+m.viewport.Height:
		m.viewport.SetYOffset(cursorBottom - m.viewport.Height)
	}
}

func (m DocsModel) renderCard(i int, c *docs.Card) string {
	marker := "▸ "
	if c.Expanded() {
		marker = "▾ "
	}

	header := operationBadge(c.Endpoint.Operation)
	if header != "" {
		header += " "
	}
	header += cardURLStyle.Render(c.Endpoint.URL)

	style := cardStyle
	if i == m.cursor {
		style = cardSelectedStyle
		marker = cursorStyle.Render(marker)
	}

	content := marker + header
	if body := c.VisibleBody(m.deck.Width()); body != "" {
		content += "\n" + cardBodyStyle.Render(body)
	}
	if m.width > 4 {
		style = style.Width(m.width - 2)
	}
	return style.Render(content)
}

// View renders the TUI
func (m DocsModel) View() string {
	if !m.ready {
		return loadingStyle.Render("  Initializing...")
	}

	title := lipgloss.JoinHorizontal(lipgloss.Center,
		titleStyle.Render("✦ Endpoints"),
		hintStyle.Render("  •  "),
		subtitleStyle.Render(m.source),
	)

	var body string
	switch {
	case m.deck == nil && m.err != nil:
		body = FormatError(m.err)
	case m.deck == nil:
		body = m.spinner.View() + hintStyle.Render(" loading endpoints")
	case m.deck.Len() == 0:
		body = hintStyle.Render("  The service lists no endpoints.")
	default:
		body = m.viewport.View()
	}

	sections := []string{title, "", body}
	if m.deck != nil && m.err != nil {
		sections = append(sections, FormatError(m.err))
	}
	sections = append(sections, m.renderStatusBar())
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m DocsModel) renderStatusBar() string {
	items := []string{
		statusKeyStyle.Render("↑↓") + statusDescStyle.Render(" Move"),
		statusKeyStyle.Render("Enter") + statusDescStyle.Render(" Toggle"),
	}
	if m.fetch != nil {
		label := " Refresh"
		if m.loading {
			label = " Refreshing..."
		}
		items = append(items, statusKeyStyle.Render("r")+statusDescStyle.Render(label))
	}
	items = append(items, statusKeyStyle.Render("q")+statusDescStyle.Render(" Quit"))
	if m.deck != nil {
		items = append(items, statusDescStyle.Render(fmt.Sprintf("%d endpoints", m.deck.Len())))
	}
	return statusBarStyle.Render(strings.Join(items, "  │  "))
}

// RunDocs runs the docs screen until the user quits
func RunDocs(ctx context.Context, fetch HelpFetcher, doc *models.HelpDocument, source string) error {
	m := NewDocsModel(ctx, fetch, doc, source)
	p := tea.NewProgram(
		m,
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)

	_, err := p.Run()
	return err
}
