package catalog

import (
	stderrors "errors"
	"fmt"

	apperrors "github.com/NickTran11/masterbait/internal/platform/errors"
)

// Validate checks referential integrity of the catalog and reports every
// problem found as a single CATALOG_INVALID error.
func (c *Catalog) Validate() error {
	var problems []error
	add := func(format string, args ...any) {
		problems = append(problems, fmt.Errorf(format, args...))
	}

	if len(c.Levels) == 0 {
		add("no levels defined")
	}
	for i, lv := range c.Levels {
		if lv.ID != i+1 {
			add("level at position %d has id %d, want %d", i, lv.ID, i+1)
		}
		if lv.TimeLimitSeconds <= 0 {
			add("level %d: time limit must be positive", lv.ID)
		}
		switch lv.Difficulty {
		case DifficultyEasy, DifficultyMedium, DifficultyHard, DifficultyHardPlus:
		default:
			add("level %d: unknown difficulty %q", lv.ID, lv.Difficulty)
		}
		switch lv.Type {
		case LevelTypeEmail, LevelTypeSMS, LevelTypeCombo:
		default:
			add("level %d: unknown type %q", lv.ID, lv.Type)
			continue
		}
		mode := lv.Mode()
		if mode.HasEmail() {
			if _, ok := c.EmailScenarios[lv.ScenarioKey]; !ok {
				add("level %d: email scenario %q not found", lv.ID, lv.ScenarioKey)
			}
		}
		if mode.HasSMS() {
			if _, ok := c.SmsScenarios[lv.ScenarioKey]; !ok {
				add("level %d: sms scenario %q not found", lv.ID, lv.ScenarioKey)
			}
		}
	}

	for key, sc := range c.EmailScenarios {
		if len(sc.Messages) == 0 {
			add("email scenario %q has no messages", key)
		}
		for i, m := range sc.Messages {
			if m.Truth != TruthPhish && m.Truth != TruthSafe {
				add("email scenario %q message %d: unknown truth %q", key, i, m.Truth)
			}
			if !m.BestAction.PlayerChoice() {
				add("email scenario %q message %d: best action %q is not a player action", key, i, m.BestAction)
			}
		}
	}
	for key, sc := range c.SmsScenarios {
		if len(sc) == 0 {
			add("sms scenario %q has no messages", key)
		}
	}
	for i, r := range c.DomainRounds {
		if r.Real == "" || len(r.Fakes) == 0 {
			add("domain round %d needs a real domain and at least one fake", i)
		}
	}

	if len(problems) == 0 {
		return nil
	}
	return apperrors.Wrap(apperrors.CodeCatalogInvalid, "validate catalog", stderrors.Join(problems...))
}
