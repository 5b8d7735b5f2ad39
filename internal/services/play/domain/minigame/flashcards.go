// Package minigame implements the practice games outside the level map: a
// flashcard deck and the real-or-fake domain pick.
package minigame

import "github.com/NickTran11/masterbait/internal/services/play/domain/catalog"

// HiddenPrompt is shown in place of the answer until the card is flipped.
const HiddenPrompt = "Click Flip to reveal the answer."

// Deck walks the flashcards in order.
type Deck struct {
	cards   []catalog.Flashcard
	index   int
	flipped bool
}

// CardView is what the player currently sees.
type CardView struct {
	Index   int    `json:"index"`
	Total   int    `json:"total"`
	Front   string `json:"front"`
	Body    string `json:"body"`
	Flipped bool   `json:"flipped"`
}

// NewDeck returns a deck over cards, showing the first card face down.
func NewDeck(cards []catalog.Flashcard) *Deck {
	return &Deck{cards: append([]catalog.Flashcard(nil), cards...)}
}

// Current returns the visible card.
func (d *Deck) Current() CardView {
	if len(d.cards) == 0 {
		return CardView{}
	}
	c := d.cards[d.index]
	body := HiddenPrompt
	if d.flipped {
		body = c.Back
	}
	return CardView{Index: d.index, Total: len(d.cards), Front: c.Front, Body: body, Flipped: d.flipped}
}

// Flip toggles the current card.
func (d *Deck) Flip() CardView {
	d.flipped = !d.flipped
	return d.Current()
}

// Next advances to the next card face down, wrapping at the end.
func (d *Deck) Next() CardView {
	if len(d.cards) > 0 {
		d.index = (d.index + 1) % len(d.cards)
	}
	d.flipped = false
	return d.Current()
}
