package commands

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/diogo/wallchat/internal/render"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// spinner animates a one-line progress message on a terminal writer
type spinner struct {
	out     io.Writer
	message string
	theme   render.TUITheme

	stop    chan struct{}
	done    chan struct{}
	once    sync.Once
	started bool
}

func newSpinner(out io.Writer, message string, theme render.TUITheme) *spinner {
	return &spinner{
		out:     out,
		message: message,
		theme:   theme,
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
	}
}

func (s *spinner) start() {
	s.started = true
	go func() {
		defer close(s.done)

		ticker := time.NewTicker(80 * time.Millisecond)
		defer ticker.Stop()

		fmt.Fprint(s.out, "\033[?25l")
		for frame := 0; ; frame++ {
			select {
			case <-s.stop:
				fmt.Fprint(s.out, "\r\033[K\033[?25h")
				return
			case <-ticker.C:
				fmt.Fprint(s.out, "\r\033[K"+s.frame(frame))
			}
		}
	}()
}

// frame renders animation step n
func (s *spinner) frame(n int) string {
	glyph := lipgloss.NewStyle().
		Foreground(s.theme.Primary).
		Render(spinnerFrames[n%len(spinnerFrames)])
	msg := lipgloss.NewStyle().Foreground(s.theme.TextDim).Render(s.message)
	return glyph + " " + msg
}

// halt stops the animation and waits until the line is cleared
func (s *spinner) halt() {
	s.once.Do(func() { close(s.stop) })
	if s.started {
		<-s.done
	}
}

func (s *spinner) stopWithSuccess(message string) {
	s.halt()
	ok := lipgloss.NewStyle().Foreground(s.theme.Secondary).Bold(true).Render("✓")
	fmt.Fprintf(s.out, "%s %s\n", ok, message)
}

func (s *spinner) stopWithError() {
	s.halt()
}

// getTerminalWidth returns the terminal width or a default value
func getTerminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return 80
	}
	return width
}

// isStdoutTTY returns true if stdout is connected to a terminal
func isStdoutTTY() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// isStderrTTY returns true if stderr is connected to a terminal
func isStderrTTY() bool {
	return term.IsTerminal(int(os.Stderr.Fd()))
}
