// Package distraction picks the hard-mode notifications that interrupt a
// level.
package distraction

import "time"

// Interval is the default spacing between distractions.
const Interval = 6500 * time.Millisecond

// Category is the kind of notification.
type Category string

const (
	CategorySystem   Category = "system"
	CategoryChat     Category = "chat"
	CategoryReminder Category = "reminder"
)

// Notification is one distraction shown to the player.
type Notification struct {
	Category Category `json:"category"`
	Title    string   `json:"title"`
	Text     string   `json:"text"`
}

var (
	system   = Notification{Category: CategorySystem, Title: "System", Text: "Background update running…"}
	chat     = Notification{Category: CategoryChat, Title: "Chat", Text: "Friend: “Click it fast!” (don’t listen)"}
	reminder = Notification{Category: CategoryReminder, Title: "Reminder", Text: "Breathe. Check the domain."}
)

// Source yields uniform values in [0, 1). *rand.Rand satisfies it.
type Source interface {
	Float64() float64
}

// Pick maps a uniform draw onto the three categories at 0.35 / 0.35 / 0.30.
func Pick(r float64) Notification {
	switch {
	case r < 0.35:
		return system
	case r < 0.70:
		return chat
	default:
		return reminder
	}
}

// Next draws the next notification from src.
func Next(src Source) Notification {
	return Pick(src.Float64())
}
