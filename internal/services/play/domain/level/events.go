package level

import (
	"time"

	"github.com/NickTran11/masterbait/internal/services/play/domain/clue"
	"github.com/NickTran11/masterbait/internal/services/play/domain/coach"
	"github.com/NickTran11/masterbait/internal/services/play/domain/distraction"
	"github.com/NickTran11/masterbait/internal/services/play/domain/progress"
)

// EventType names an outbound event.
type EventType string

const (
	EventLevelStarted         EventType = "level.started"
	EventTick                 EventType = "level.tick"
	EventDistraction          EventType = "level.distraction"
	EventMessageSelected      EventType = "level.message_selected"
	EventClueRecorded         EventType = "level.clue_recorded"
	EventHardModeChanged      EventType = "level.hard_mode_changed"
	EventLevelResolved        EventType = "level.resolved"
	EventLevelExited          EventType = "level.exited"
	EventFeedbackAcknowledged EventType = "level.acknowledged"
	EventProgressionChanged   EventType = "progression.changed"
	EventCoachAwarded         EventType = "coach.awarded"
)

// Event is one outbound notification. Only the payload matching Type is set.
type Event struct {
	Type          EventType                 `json:"type"`
	At            time.Time                 `json:"at"`
	LevelID       int                       `json:"level_id,omitempty"`
	Phase         Phase                     `json:"phase"`
	TimeRemaining int                       `json:"time_remaining,omitempty"`
	MessageIndex  int                       `json:"message_index,omitempty"`
	HardMode      bool                      `json:"hard_mode,omitempty"`
	Distraction   *distraction.Notification `json:"distraction,omitempty"`
	Clue          *clue.Entry               `json:"clue,omitempty"`
	Feedback      *coach.Feedback           `json:"feedback,omitempty"`
	Progress      *progress.Snapshot        `json:"progress,omitempty"`
}

// Listener receives events in the order the controller produced them.
// OnEvent runs outside the controller lock but must not call back into the
// same controller synchronously.
type Listener interface {
	OnEvent(Event)
}

// ListenerFunc adapts a function to Listener.
type ListenerFunc func(Event)

// OnEvent implements Listener.
func (fn ListenerFunc) OnEvent(e Event) { fn(e) }

// Callbacks routes the presentation-facing events to individual handlers.
// Nil handlers are skipped.
type Callbacks struct {
	OnTick               func(timeRemaining int)
	OnDistraction        func(distraction.Notification)
	OnLevelResolved      func(coach.Feedback)
	OnProgressionChanged func(progress.Snapshot)
}

// OnEvent implements Listener.
func (c Callbacks) OnEvent(e Event) {
	switch e.Type {
	case EventTick:
		if c.OnTick != nil {
			c.OnTick(e.TimeRemaining)
		}
	case EventDistraction:
		if c.OnDistraction != nil && e.Distraction != nil {
			c.OnDistraction(*e.Distraction)
		}
	case EventLevelResolved:
		if c.OnLevelResolved != nil && e.Feedback != nil {
			c.OnLevelResolved(*e.Feedback)
		}
	case EventProgressionChanged:
		if c.OnProgressionChanged != nil && e.Progress != nil {
			c.OnProgressionChanged(*e.Progress)
		}
	}
}

// Multi fans events out to several listeners in order.
type Multi []Listener

// OnEvent implements Listener.
func (m Multi) OnEvent(e Event) {
	for _, l := range m {
		if l != nil {
			l.OnEvent(e)
		}
	}
}
