// Package catalog holds the hand-authored game content: levels, inboxes, SMS
// threads and mini-game decks. Content is embedded at build time and checked
// once on load, so lookups after a successful load cannot fail for ids the
// catalog lists.
package catalog

import (
	"bytes"
	_ "embed"
	"fmt"
	"strconv"
	"sync"

	"gopkg.in/yaml.v3"

	apperrors "github.com/NickTran11/masterbait/internal/platform/errors"
)

//go:embed catalog.yaml
var defaultYAML []byte

// Catalog is the immutable content set for a play session.
type Catalog struct {
	Levels         []Level                  `yaml:"levels" json:"levels"`
	EmailScenarios map[string]EmailScenario `yaml:"email_scenarios" json:"email_scenarios"`
	SmsScenarios   map[string]SmsScenario   `yaml:"sms_scenarios" json:"sms_scenarios"`
	Flashcards     []Flashcard              `yaml:"flashcards" json:"flashcards"`
	DomainRounds   []DomainRound            `yaml:"domain_rounds" json:"domain_rounds"`
}

var loadDefault = sync.OnceValues(func() (*Catalog, error) {
	return Parse(defaultYAML)
})

// Default returns the embedded catalog. It is decoded and validated once.
func Default() (*Catalog, error) {
	return loadDefault()
}

// Parse decodes and validates a YAML catalog. Unknown fields are rejected.
func Parse(data []byte) (*Catalog, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var c Catalog
	if err := dec.Decode(&c); err != nil {
		return nil, apperrors.Wrap(apperrors.CodeCatalogInvalid, "decode catalog", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// MaxLevel returns the highest level id.
func (c *Catalog) MaxLevel() int {
	return len(c.Levels)
}

// Level returns the level with id.
func (c *Catalog) Level(id int) (Level, error) {
	if id < 1 || id > len(c.Levels) {
		return Level{}, apperrors.WithMetadata(apperrors.CodeLevelNotFound,
			fmt.Sprintf("level %d not found", id),
			map[string]string{"LevelID": strconv.Itoa(id)})
	}
	return c.Levels[id-1], nil
}

// EmailScenario returns the inbox keyed by key.
func (c *Catalog) EmailScenario(key string) (EmailScenario, error) {
	sc, ok := c.EmailScenarios[key]
	if !ok {
		return EmailScenario{}, scenarioNotFound("email", key)
	}
	return sc, nil
}

// SmsScenario returns the SMS thread keyed by key.
func (c *Catalog) SmsScenario(key string) (SmsScenario, error) {
	sc, ok := c.SmsScenarios[key]
	if !ok {
		return nil, scenarioNotFound("sms", key)
	}
	return sc, nil
}

func scenarioNotFound(kind, key string) error {
	return apperrors.WithMetadata(apperrors.CodeScenarioNotFound,
		fmt.Sprintf("%s scenario %q not found", kind, key),
		map[string]string{"Kind": kind, "Key": key})
}
