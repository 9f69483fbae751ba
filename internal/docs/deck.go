package docs

import (
	"github.com/diogo/wallchat/internal/models"
)

// Deck is the ordered set of cards built from a help document
type Deck struct {
	cards []*Card
	width int
}

// NewDeck builds one card per endpoint, in document order. Width is the
// body wrap width used to measure natural heights; zero disables wrapping.
func NewDeck(doc *models.HelpDocument, width int) *Deck {
	d := &Deck{width: width}
	if doc == nil {
		return d
	}

	d.cards = make([]*Card, 0, len(doc.Endpoints))
	for _, e := range doc.Endpoints {
		c := &Card{Endpoint: CleanEndpoint(e)}
		c.measure(width)
		d.cards = append(d.cards, c)
	}
	return d
}

// Len returns the number of cards
func (d *Deck) Len() int {
	return len(d.cards)
}

// Card returns card i, or nil when out of range
func (d *Deck) Card(i int) *Card {
	if i < 0 || i >= len(d.cards) {
		return nil
	}
	return d.cards[i]
}

// Cards returns the cards in order
func (d *Deck) Cards() []*Card {
	return d.cards
}

// Width returns the wrap width
func (d *Deck) Width() int {
	return d.width
}

// SetWidth re-measures every card for a new wrap width
func (d *Deck) SetWidth(width int) {
	d.width = width
	for _, c := range d.cards {
		c.measure(width)
	}
}

// Toggle flips card i and starts its animation. Out of range is a no-op.
func (d *Deck) Toggle(i int) bool {
	c := d.Card(i)
	if c == nil {
		return false
	}
	c.measure(d.width)
	c.expanded = !c.expanded
	return true
}

// Step advances every animating card by one frame and reports whether
// any card is still animating afterwards.
func (d *Deck) Step() bool {
	for _, c := range d.cards {
		c.step()
	}
	return d.Animating()
}

// Settle finishes all animations at once
func (d *Deck) Settle() {
	for _, c := range d.cards {
		c.visible = c.target()
	}
}

// Animating reports whether any card is mid-animation
func (d *Deck) Animating() bool {
	for _, c := range d.cards {
		if c.Animating() {
			return true
		}
	}
	return false
}
