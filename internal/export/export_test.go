package export

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/eduval/eduval/internal/i18n"
	"github.com/eduval/eduval/internal/instrument"
)

func sampleChecklist() instrument.Checklist {
	return instrument.Checklist{
		Header: instrument.Meta{Title: "Lab safety", Subject: "Chemistry", Level: "Grade 9"},
		Items: []instrument.ChecklistItem{
			{ID: "a", Text: "Wears goggles", Checked: true},
			{ID: "b", Text: "Labels samples"},
		},
	}
}

func sampleRubric() instrument.Rubric {
	return instrument.Rubric{
		Header: instrument.Meta{Title: "Essay", Subject: "History"},
		Criteria: []instrument.Criterion{{
			ID: "c1", Name: "Argument", Weight: 40,
			Levels:        instrument.Levels{"Weak", "Fair", "Clear", "Compelling"},
			SelectedLevel: 3,
		}},
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"", FormatJSON, false},
		{"JSON", FormatJSON, false},
		{"yml", FormatYAML, false},
		{"txt", FormatText, false},
		{"pdf", "", true},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got)
	}
}

func TestJSONRoundTrips(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, sampleChecklist(), FormatJSON, nil))

	got, err := instrument.Unmarshal(buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, sampleChecklist(), got)
}

func TestYAMLEnvelope(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, sampleRubric(), FormatYAML, nil))

	var doc struct {
		Kind       string `yaml:"kind"`
		Score      string `yaml:"score"`
		Instrument struct {
			Criteria []struct {
				Name          string            `yaml:"name"`
				Levels        map[string]string `yaml:"levels"`
				SelectedLevel int               `yaml:"selected_level"`
			} `yaml:"criteria"`
		} `yaml:"instrument"`
	}
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &doc))
	assert.Equal(t, "rubric", doc.Kind)
	assert.Equal(t, "3.00", doc.Score)
	require.Len(t, doc.Instrument.Criteria, 1)
	assert.Equal(t, "Compelling", doc.Instrument.Criteria[0].Levels["4"])
	assert.Equal(t, 3, doc.Instrument.Criteria[0].SelectedLevel)
}

func TestSheet(t *testing.T) {
	cat := i18n.MustNew("en")
	out := Sheet(sampleChecklist(), cat)

	assert.True(t, strings.HasPrefix(out, "LAB SAFETY\nChecklist\n"))
	assert.Contains(t, out, "Subject: Chemistry")
	assert.Contains(t, out, "Student: ____")
	assert.Contains(t, out, "Wears goggles")
	assert.Contains(t, out, "[x]")
	assert.Contains(t, out, "Score: 5.00")
	assert.Less(t, strings.Index(out, "Wears goggles"), strings.Index(out, "Labels samples"))
}

func TestSheetUndefinedScore(t *testing.T) {
	cat := i18n.MustNew("en")
	guide := instrument.ObservationGuide{
		Header:  instrument.Meta{Title: "Group work"},
		Aspects: []instrument.Aspect{{ID: "x", Indicator: "Listens", Notes: "often"}},
	}
	out := Sheet(guide, cat)
	assert.Contains(t, out, "Score: "+instrument.Sentinel)
	assert.Contains(t, out, "often")
}

func TestWriteNil(t *testing.T) {
	assert.Error(t, Write(&bytes.Buffer{}, nil, FormatJSON, nil))
}
