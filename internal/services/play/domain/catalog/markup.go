package catalog

import (
	"slices"
	"strings"

	"golang.org/x/net/html"
)

const hoverHintClass = "hoverhint"

// PlainText returns the text content of body markup with whitespace collapsed.
func PlainText(markup string) string {
	z := html.NewTokenizer(strings.NewReader(markup))
	var b strings.Builder
	for {
		switch z.Next() {
		case html.ErrorToken:
			return strings.Join(strings.Fields(b.String()), " ")
		case html.TextToken:
			b.Write(z.Text())
			b.WriteByte(' ')
		}
	}
}

// Snippet returns at most n runes of the body text for inbox previews,
// ending in an ellipsis when cut.
func Snippet(markup string, n int) string {
	text := []rune(PlainText(markup))
	if n < 0 || len(text) <= n {
		return string(text)
	}
	return string(text[:n]) + "…"
}

// HoverHints returns the data-hint values of hover-hint elements in markup,
// in document order.
func HoverHints(markup string) []string {
	z := html.NewTokenizer(strings.NewReader(markup))
	var hints []string
	for {
		tt := z.Next()
		switch tt {
		case html.ErrorToken:
			return hints
		case html.StartTagToken, html.SelfClosingTagToken:
			_, more := z.TagName()
			var class, hint string
			for more {
				var key, val []byte
				key, val, more = z.TagAttr()
				switch string(key) {
				case "class":
					class = string(val)
				case "data-hint":
					hint = string(val)
				}
			}
			if hint != "" && slices.Contains(strings.Fields(class), hoverHintClass) {
				hints = append(hints, hint)
			}
		}
	}
}

// LinkPreviewClue is the clue recorded when a player hovers a link chip.
func LinkPreviewClue(l Link) string { return "Preview URL: " + l.URL }

// LinkClickClue is the clue recorded when a player clicks a link chip.
func LinkClickClue(l Link) string { return "Clicked link chip: " + l.Label }

// Clues lists every clue the message can reveal on hover: body hints first,
// then one URL preview per link chip.
func (m EmailMessage) Clues() []string {
	clues := HoverHints(m.Body)
	for _, l := range m.Links {
		clues = append(clues, LinkPreviewClue(l))
	}
	return clues
}

// Snippet is the inbox preview of the message body.
func (m EmailMessage) Snippet() string { return Snippet(m.Body, 86) }

// Clues lists the hint of every bubble in the thread.
func (s SmsScenario) Clues() []string {
	clues := make([]string, 0, len(s))
	for _, m := range s {
		if m.Hint != "" {
			clues = append(clues, m.Hint)
		}
	}
	return clues
}
