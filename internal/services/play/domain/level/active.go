package level

import "github.com/NickTran11/masterbait/internal/services/play/domain/catalog"

// Phase is the controller lifecycle state.
type Phase string

const (
	PhaseIdle     Phase = "idle"
	PhaseLoaded   Phase = "loaded"
	PhaseRunning  Phase = "running"
	PhaseResolved Phase = "resolved"
	PhaseExited   Phase = "exited"
)

// Active is the transient context of the level being played.
type Active struct {
	Level              catalog.Level          `json:"level"`
	Mode               catalog.Mode           `json:"mode"`
	ScenarioKey        string                 `json:"scenario_key"`
	Inbox              *catalog.EmailScenario `json:"inbox,omitempty"`
	Thread             catalog.SmsScenario    `json:"thread,omitempty"`
	MessageIndex       int                    `json:"message_index"`
	TimeRemaining      int                    `json:"time_remaining"`
	DistractionsActive bool                   `json:"distractions_active"`
}

// ActiveMessage returns the loaded email, or nil when none is loaded.
func (a *Active) ActiveMessage() *catalog.EmailMessage {
	if a == nil || a.Inbox == nil || a.MessageIndex < 0 || a.MessageIndex >= len(a.Inbox.Messages) {
		return nil
	}
	m := a.Inbox.Messages[a.MessageIndex]
	return &m
}

func (a *Active) inbox() catalog.EmailScenario {
	if a.Inbox == nil {
		return catalog.EmailScenario{}
	}
	return *a.Inbox
}

// load builds the context for lv, loading its inbox and thread.
func load(c *catalog.Catalog, lv catalog.Level) (*Active, error) {
	a := &Active{
		Level:         lv,
		Mode:          lv.Mode(),
		ScenarioKey:   lv.ScenarioKey,
		MessageIndex:  -1,
		TimeRemaining: lv.TimeLimitSeconds,
	}
	if a.Mode.HasEmail() {
		inbox, err := c.EmailScenario(lv.ScenarioKey)
		if err != nil {
			return nil, err
		}
		a.Inbox = &inbox
		if len(inbox.Messages) > 0 {
			a.MessageIndex = 0
		}
	}
	if a.Mode.HasSMS() {
		thread, err := c.SmsScenario(lv.ScenarioKey)
		if err != nil {
			return nil, err
		}
		a.Thread = thread
	}
	return a, nil
}
