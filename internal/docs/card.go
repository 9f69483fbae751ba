// Package docs renders the service's endpoint list as collapsible cards.
package docs

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/diogo/wallchat/internal/models"
)

// AnimationStep is how many lines a card opens or closes per frame
const AnimationStep = 1

// Card is one endpoint: header is operation and URL, body is the handler.
// Cards start collapsed.
type Card struct {
	Endpoint models.EndpointDescriptor

	expanded bool
	visible  int
	natural  int
}

// Header returns "OPERATION url"
func (c *Card) Header() string {
	if c.Endpoint.Operation == "" {
		return c.Endpoint.URL
	}
	return c.Endpoint.Operation + " " + c.Endpoint.URL
}

// Body returns the handler text
func (c *Card) Body() string {
	return c.Endpoint.Handler
}

// Expanded reports the card's toggled state, regardless of animation
func (c *Card) Expanded() bool {
	return c.expanded
}

// VisibleLines is how many body lines are currently shown
func (c *Card) VisibleLines() int {
	return c.visible
}

// NaturalHeight is the body's full height at the deck width
func (c *Card) NaturalHeight() int {
	return c.natural
}

func (c *Card) target() int {
	if c.expanded {
		return c.natural
	}
	return 0
}

// Animating reports whether the visible height is still moving
func (c *Card) Animating() bool {
	return c.visible != c.target()
}

// VisibleBody returns the body cut to the visible height
func (c *Card) VisibleBody(width int) string {
	if c.visible <= 0 {
		return ""
	}
	lines := strings.Split(wrapBody(c.Body(), width), "\n")
	if c.visible < len(lines) {
		lines = lines[:c.visible]
	}
	return strings.Join(lines, "\n")
}

func (c *Card) step() {
	t := c.target()
	switch {
	case c.visible < t:
		c.visible = min(c.visible+AnimationStep, t)
	case c.visible > t:
		c.visible = max(c.visible-AnimationStep, t)
	}
}

func (c *Card) measure(width int) {
	c.natural = 0
	if c.Body() != "" {
		c.natural = lipgloss.Height(wrapBody(c.Body(), width))
	}
	if c.visible > c.natural {
		c.visible = c.natural
	}
}

func wrapBody(body string, width int) string {
	if width <= 0 {
		return body
	}
	return lipgloss.NewStyle().Width(width).Render(body)
}
