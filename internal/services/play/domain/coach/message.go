package coach

import (
	"strings"

	"golang.org/x/text/message"

	"github.com/NickTran11/masterbait/internal/services/play/i18n"
)

// CheerLines are the supportive lines appended to every coach message.
var CheerLines = []string{
	i18n.CheerSharperKey,
	i18n.CheerDetailsKey,
	i18n.CheerSmoothKey,
	i18n.CheerInstinctKey,
}

// Intn yields a uniform int in [0, n). *rand.Rand satisfies it.
type Intn interface {
	Intn(n int) int
}

// Cheer picks a cheer line key.
func Cheer(src Intn) string {
	return CheerLines[src.Intn(len(CheerLines))]
}

// Title renders the localized title.
func Title(p *message.Printer, f Feedback) string {
	return p.Sprintf(f.Title)
}

// Tip renders the localized tip.
func Tip(p *message.Printer, f Feedback) string {
	return p.Sprintf(f.Tip)
}

// Message renders the text the coach types out, ending with the cheer line.
// Teaching points are catalog content and are not translated.
func Message(p *message.Printer, f Feedback) string {
	var b strings.Builder
	switch f.Kind {
	case KindDomainPick:
		b.WriteString(p.Sprintf(f.Summary, f.Detail))
	default:
		b.WriteString(p.Sprintf(f.Summary))
		b.WriteString("\n\n")
		b.WriteString(p.Sprintf(i18n.LessonsHeaderKey))
		for _, point := range f.TeachingPoints {
			b.WriteString("\n• ")
			b.WriteString(point)
		}
		b.WriteString("\n\n")
		b.WriteString(p.Sprintf(i18n.StarsLineKey, StarLine(f.Stars)))
		b.WriteString("\n")
		b.WriteString(p.Sprintf(i18n.ActionLineKey, strings.ToUpper(string(f.Action))))
	}
	if f.Cheer != "" {
		b.WriteString("\n\n")
		b.WriteString(p.Sprintf(f.Cheer))
	}
	return b.String()
}
