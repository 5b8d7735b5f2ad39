package catalog

import (
	"fmt"
	"strings"
)

// LevelType names the channel a level is played through.
type LevelType string

const (
	LevelTypeEmail LevelType = "Email"
	LevelTypeSMS   LevelType = "SMS"
	LevelTypeCombo LevelType = "Combo"
)

// Mode is the runtime presentation mode derived from a LevelType.
type Mode string

const (
	ModeEmail Mode = "email"
	ModeSMS   Mode = "sms"
	ModeCombo Mode = "combo"
)

// HasEmail reports whether the mode shows an inbox.
func (m Mode) HasEmail() bool { return m == ModeEmail || m == ModeCombo }

// HasSMS reports whether the mode shows a phone.
func (m Mode) HasSMS() bool { return m == ModeSMS || m == ModeCombo }

// Difficulty is the authored difficulty label of a level.
type Difficulty string

const (
	DifficultyEasy     Difficulty = "Easy"
	DifficultyMedium   Difficulty = "Medium"
	DifficultyHard     Difficulty = "Hard"
	DifficultyHardPlus Difficulty = "Hard+"
)

// Truth is the ground truth of a message.
type Truth string

const (
	TruthPhish Truth = "phish"
	TruthSafe  Truth = "safe"
)

// Action is the decision vocabulary. ActionTimeout is produced by the
// countdown and is never a player choice.
type Action string

const (
	ActionReport  Action = "report"
	ActionIgnore  Action = "ignore"
	ActionCallIT  Action = "callit"
	ActionOpen    Action = "open"
	ActionReply   Action = "reply"
	ActionTimeout Action = "timeout"
)

// PlayerActions lists the actions a player may submit, in button order.
var PlayerActions = []Action{ActionReport, ActionIgnore, ActionCallIT, ActionOpen, ActionReply}

// Safe reports whether a is one of the cautious actions.
func (a Action) Safe() bool {
	return a == ActionReport || a == ActionIgnore || a == ActionCallIT
}

// Risky reports whether a engages with the message.
func (a Action) Risky() bool {
	return a == ActionOpen || a == ActionReply
}

// PlayerChoice reports whether a may be submitted by a player.
func (a Action) PlayerChoice() bool { return a.Safe() || a.Risky() }

// ParseAction normalizes s into an Action. It accepts the timeout action so
// callers decide whether to allow it.
func ParseAction(s string) (Action, error) {
	a := Action(strings.ToLower(strings.TrimSpace(s)))
	if a.PlayerChoice() || a == ActionTimeout {
		return a, nil
	}
	return "", fmt.Errorf("unknown action %q", s)
}

// Level is one node on the level map.
type Level struct {
	ID               int        `yaml:"id" json:"id"`
	Type             LevelType  `yaml:"type" json:"type"`
	Difficulty       Difficulty `yaml:"difficulty" json:"difficulty"`
	TimeLimitSeconds int        `yaml:"time_limit_seconds" json:"time_limit_seconds"`
	ScenarioKey      string     `yaml:"scenario" json:"scenario"`
	Title            string     `yaml:"title" json:"title"`
	Description      string     `yaml:"description" json:"description"`
}

// Mode maps the level type to its presentation mode.
func (l Level) Mode() Mode {
	switch l.Type {
	case LevelTypeEmail:
		return ModeEmail
	case LevelTypeSMS:
		return ModeSMS
	default:
		return ModeCombo
	}
}

// HardMode reports whether the level starts with distractions on.
func (l Level) HardMode() bool {
	return strings.Contains(string(l.Difficulty), "Hard")
}

// Link is a link chip shown under an email body.
type Link struct {
	Label string `yaml:"label" json:"label"`
	URL   string `yaml:"url" json:"url"`
}

// EmailMessage is one inbox entry.
type EmailMessage struct {
	Sender         string   `yaml:"sender" json:"sender"`
	Address        string   `yaml:"address" json:"address"`
	ReplyTo        string   `yaml:"reply_to" json:"reply_to"`
	Timestamp      string   `yaml:"timestamp" json:"timestamp"`
	Subject        string   `yaml:"subject" json:"subject"`
	Body           string   `yaml:"body" json:"body"`
	Links          []Link   `yaml:"links" json:"links"`
	Truth          Truth    `yaml:"truth" json:"truth"`
	BestAction     Action   `yaml:"best_action" json:"best_action"`
	TeachingPoints []string `yaml:"teaching_points" json:"teaching_points"`
}

// EmailScenario is an inbox with its trusted-guidance panel.
type EmailScenario struct {
	OfficialGuidance []string       `yaml:"official_guidance" json:"official_guidance"`
	Messages         []EmailMessage `yaml:"messages" json:"messages"`
}

// HasPhish reports whether any message in the scenario is phishing.
func (s EmailScenario) HasPhish() bool {
	for _, m := range s.Messages {
		if m.Truth == TruthPhish {
			return true
		}
	}
	return false
}

// SmsMessage is one bubble on the phone screen.
type SmsMessage struct {
	Sender    string `yaml:"sender" json:"sender"`
	Timestamp string `yaml:"timestamp" json:"timestamp"`
	Text      string `yaml:"text" json:"text"`
	Hint      string `yaml:"hint" json:"hint"`
}

// SmsScenario is an ordered SMS thread.
type SmsScenario []SmsMessage

// Flashcard is a term and its explanation.
type Flashcard struct {
	Front string `yaml:"front" json:"front"`
	Back  string `yaml:"back" json:"back"`
}

// DomainRound is one real domain and its look-alikes.
type DomainRound struct {
	Real  string   `yaml:"real" json:"real"`
	Fakes []string `yaml:"fakes" json:"fakes"`
}
