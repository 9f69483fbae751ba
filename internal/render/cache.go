package render

import (
	"sync"

	"github.com/charmbracelet/glamour"
)

// renderers holds idle glamour renderers per option set. A TermRenderer
// must not run two Render calls at once, so each call borrows its own.
var renderers = struct {
	mu    sync.Mutex
	idle  map[Options][]*glamour.TermRenderer
	known map[Options]bool
}{
	idle:  make(map[Options][]*glamour.TermRenderer),
	known: make(map[Options]bool),
}

// borrow returns an idle renderer for opts or builds a new one
func borrow(opts Options) (*glamour.TermRenderer, error) {
	renderers.mu.Lock()
	renderers.known[opts] = true
	if free := renderers.idle[opts]; len(free) > 0 {
		r := free[len(free)-1]
		renderers.idle[opts] = free[:len(free)-1]
		renderers.mu.Unlock()
		return r, nil
	}
	renderers.mu.Unlock()

	return newRenderer(opts)
}

// giveBack returns r to the idle set for opts
func giveBack(opts Options, r *glamour.TermRenderer) {
	if r == nil {
		return
	}
	renderers.mu.Lock()
	defer renderers.mu.Unlock()
	if !renderers.known[opts] {
		return
	}
	renderers.idle[opts] = append(renderers.idle[opts], r)
}

func newRenderer(opts Options) (*glamour.TermRenderer, error) {
	ropts := []glamour.TermRendererOption{glamour.WithWordWrap(opts.Width)}

	switch {
	case opts.Style == StyleAuto:
		ropts = append(ropts, glamour.WithAutoStyle())
	case IsStandardStyle(opts.Style):
		ropts = append(ropts, glamour.WithStandardStyle(opts.Style))
	default:
		ropts = append(ropts, glamour.WithStylePath(opts.Style))
	}
	if opts.EnableEmoji {
		ropts = append(ropts, glamour.WithEmoji())
	}
	if opts.PreserveNewLines {
		ropts = append(ropts, glamour.WithPreservedNewLines())
	}

	return glamour.NewTermRenderer(ropts...)
}

// ClearCache drops every idle renderer
func ClearCache() {
	renderers.mu.Lock()
	defer renderers.mu.Unlock()
	renderers.idle = make(map[Options][]*glamour.TermRenderer)
	renderers.known = make(map[Options]bool)
}

// CacheSize returns the number of distinct option sets seen since the last clear
func CacheSize() int {
	renderers.mu.Lock()
	defer renderers.mu.Unlock()
	return len(renderers.known)
}
