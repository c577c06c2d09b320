package i18n

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eduval/eduval/internal/instrument"
)

func TestLocalesHaveSameKeys(t *testing.T) {
	load := func(name string) map[string]string {
		data, err := localeFS.ReadFile("locales/" + name)
		require.NoError(t, err)
		var m map[string]string
		require.NoError(t, json.Unmarshal(data, &m))
		return m
	}
	es, en := load("es.json"), load("en.json")
	for k := range es {
		assert.Contains(t, en, k, "en.json is missing %q", k)
	}
	for k := range en {
		assert.Contains(t, es, k, "es.json is missing %q", k)
	}
}

func TestSpanishIsDefault(t *testing.T) {
	c, err := New("")
	require.NoError(t, err)
	assert.Equal(t, "es", c.Lang())
	assert.Equal(t, "Rúbrica", c.KindLabel(instrument.KindRubric))
}

func TestTemplatedPrompt(t *testing.T) {
	c := MustNew("en")
	got := c.Td("prompt.checklist", map[string]any{
		"Topic": "fractions", "Subject": "Mathematics", "Level": "Grade 7",
	})
	assert.Contains(t, got, "assess fractions in Mathematics for Grade 7")
	assert.Contains(t, got, "10 clear, observable indicators")
}

func TestMissingIDFallsBackToID(t *testing.T) {
	assert.Equal(t, "no.such.message", MustNew("en").T("no.such.message"))
}

func TestUnknownLanguageFallsBackToSpanish(t *testing.T) {
	c, err := New("fr")
	require.NoError(t, err)
	assert.Equal(t, "Examen", c.KindLabel(instrument.KindExam))

	_, err = New("not a tag!")
	assert.Error(t, err)
}

func TestPlaceholdersMatchDefaults(t *testing.T) {
	got := MustNew("en").Placeholders()
	assert.Equal(t, instrument.DefaultPlaceholders(), got)

	es := MustNew("es").Placeholders()
	assert.Equal(t, "Nueva Rúbrica", es.Titles[instrument.KindRubric])
	assert.Equal(t, "Nivel 3", es.AddedCriterion.Levels.At(3))
	assert.Equal(t, "Excelente", es.BlankCriterion.Levels.At(4))
}

func TestSuggestions(t *testing.T) {
	c := MustNew("es")
	assert.Len(t, c.Levels(), 6)
	assert.Contains(t, c.Subjects(), "Matemáticas")
}
