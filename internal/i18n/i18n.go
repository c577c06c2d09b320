// Package i18n holds the embedded translations (Spanish and English) for
// generation prompts, placeholder texts, labels and notifications.
package i18n

import (
	"embed"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"

	"github.com/eduval/eduval/internal/instrument"
)

// DefaultLang is used when no language is configured.
const DefaultLang = "es"

//go:embed locales/*.json
var localeFS embed.FS

var (
	bundleOnce sync.Once
	bundle     *i18n.Bundle
	bundleErr  error
)

func loadBundle() (*i18n.Bundle, error) {
	bundleOnce.Do(func() {
		b := i18n.NewBundle(language.Spanish)
		b.RegisterUnmarshalFunc("json", json.Unmarshal)

		entries, err := localeFS.ReadDir("locales")
		if err != nil {
			bundleErr = fmt.Errorf("read locales dir: %w", err)
			return
		}
		for _, e := range entries {
			data, err := localeFS.ReadFile("locales/" + e.Name())
			if err != nil {
				bundleErr = fmt.Errorf("read locale file %s: %w", e.Name(), err)
				return
			}
			if _, err := b.ParseMessageFileBytes(data, e.Name()); err != nil {
				bundleErr = fmt.Errorf("parse locale file %s: %w", e.Name(), err)
				return
			}
		}
		bundle = b
	})
	return bundle, bundleErr
}

// Catalog localizes messages for one language.
type Catalog struct {
	lang string
	loc  *i18n.Localizer
}

// New returns a catalog for lang ("es", "en", "es-MX", ...). Unknown
// languages fall back to Spanish message by message.
func New(lang string) (*Catalog, error) {
	if lang == "" {
		lang = DefaultLang
	}
	tag, err := language.Parse(lang)
	if err != nil {
		return nil, fmt.Errorf("parse language %q: %w", lang, err)
	}
	b, err := loadBundle()
	if err != nil {
		return nil, err
	}
	return &Catalog{lang: tag.String(), loc: i18n.NewLocalizer(b, tag.String())}, nil
}

// MustNew is New for known-good languages, e.g. in tests.
func MustNew(lang string) *Catalog {
	c, err := New(lang)
	if err != nil {
		panic(err)
	}
	return c
}

// Lang returns the catalog's language tag.
func (c *Catalog) Lang() string { return c.lang }

// T translates a message by ID. Missing IDs are returned unchanged.
func (c *Catalog) T(id string) string {
	return c.Td(id, nil)
}

// Td translates a message by ID with template data.
func (c *Catalog) Td(id string, data map[string]any) string {
	s, err := c.loc.Localize(&i18n.LocalizeConfig{MessageID: id, TemplateData: data})
	if err != nil {
		return id
	}
	return s
}

// KindLabel is the display name of an instrument kind.
func (c *Catalog) KindLabel(k instrument.Kind) string {
	return c.T("kind." + string(k))
}

// QuestionTypeLabel is the display name of an exam question type.
func (c *Catalog) QuestionTypeLabel(t instrument.QuestionType) string {
	return c.T("ui.question." + string(t))
}

// Levels and Subjects are input suggestions for the generation form.
func (c *Catalog) Levels() []string   { return strings.Split(c.T("suggest.levels"), "|") }
func (c *Catalog) Subjects() []string { return strings.Split(c.T("suggest.subjects"), "|") }

// Placeholders returns the localized default texts for manually created
// instruments.
func (c *Catalog) Placeholders() instrument.Placeholders {
	titles := make(map[instrument.Kind]string, len(instrument.Kinds))
	for _, k := range instrument.Kinds {
		titles[k] = c.T("blank.title." + string(k))
	}

	var blankLevels, newLevels instrument.Levels
	for lvl := 1; lvl <= instrument.MaxLevel; lvl++ {
		blankLevels = blankLevels.With(lvl, c.T(fmt.Sprintf("blank.criterion.level%d", lvl)))
		newLevels = newLevels.With(lvl, c.Td("new.criterion.level", map[string]any{"Level": lvl}))
	}

	return instrument.Placeholders{
		Subject:          c.T("blank.subject"),
		Level:            c.T("blank.level"),
		Titles:           titles,
		ExamInstructions: c.T("blank.exam_instructions"),
		BlankCriterion: instrument.Criterion{
			Name:   c.T("blank.criterion.name"),
			Weight: 20,
			Levels: blankLevels,
		},
		BlankChecklistItem: c.T("blank.checklist_item"),
		BlankRatingItem:    c.T("blank.rating_item"),
		BlankAspect: instrument.Aspect{
			Indicator:   c.T("blank.aspect.indicator"),
			Description: c.T("blank.aspect.description"),
			Examples:    c.T("blank.aspect.examples"),
		},
		BlankQuestion: c.T("blank.question"),
		AddedCriterion: instrument.Criterion{
			Name:   c.T("new.criterion.name"),
			Weight: 10,
			Levels: newLevels,
		},
		NewChecklistItem: c.T("new.checklist_item"),
		NewRatingItem:    c.T("new.rating_item"),
		NewAspect:        instrument.Aspect{Indicator: c.T("new.aspect")},
		NewQuestion:      c.T("new.question"),
	}
}
