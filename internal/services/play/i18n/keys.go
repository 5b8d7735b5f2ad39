// Package i18n holds the player-facing message catalogs for the coach and
// notifications. Keys that are whole English sentences are their own
// English translation.
package i18n

// Coach titles.
const (
	TitleSuccessKey = "coach.title.success"
	TitleWarningKey = "coach.title.warning"
	TitleFailKey    = "coach.title.fail"
	TitleCorrectKey = "coach.title.correct"
	TitleNopeKey    = "coach.title.nope"
)

// Coach body fragments.
const (
	LessonsHeaderKey = "coach.lessons"
	StarsLineKey     = "coach.stars"
	ActionLineKey    = "coach.action"
	DomainRealKey    = "minigame.domain.real"
	DomainFakeKey    = "minigame.domain.fake"
)

// Tips shown under the coach bubble.
const (
	TipLevelKey  = "When unsure: do NOT click. Go to the official site yourself or Call IT."
	TipDomainKey = "Look for letter swaps: rn vs m, 0 vs o, I vs l."
)

// Level summaries.
const (
	SummaryCorrectKey   = "Good choice. You reduced risk and stayed calm."
	SummaryIncorrectKey = "Risky choice. In real life, this could expose data."
	SummaryTimeoutKey   = "Time ran out. Pressure causes mistakes."
)

// Cheer lines appended to every coach message.
const (
	CheerSharperKey  = "You’re getting sharper. That’s how you stop scams."
	CheerDetailsKey  = "Tiny details matter. Your brain is learning the pattern."
	CheerSmoothKey   = "Slow is smooth. Smooth is safe."
	CheerInstinctKey = "You’re building real security instincts."
)

// Distraction notifications.
const (
	NotifSystemTitleKey   = "System"
	NotifSystemTextKey    = "Background update running…"
	NotifChatTitleKey     = "Chat"
	NotifChatTextKey      = "Friend: “Click it fast!” (don’t listen)"
	NotifReminderTitleKey = "Reminder"
	NotifReminderTextKey  = "Breathe. Check the domain."
)
