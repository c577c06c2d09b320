package generate

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eduval/eduval/internal/instrument"
)

var mathCtx = Context{Subject: "Mathematics", Level: "Grade 7"}

const rubricReply = `{
	"title": "Problem solving",
	"description": "Assesses written solutions",
	"criteria": [
		{"name": "Strategy", "weight": 40, "levels": {"4": "Optimal", "3": "Sound", "2": "Partial", "1": "None"}},
		{"name": "Accuracy", "weight": 60, "levels": {"4": "No errors", "3": "Minor", "2": "Several", "1": "Many"}}
	]
}`

func TestMapRubric(t *testing.T) {
	inst, err := MapResponse(instrument.KindRubric, []byte(rubricReply), mathCtx)
	require.NoError(t, err)

	r := inst.(instrument.Rubric)
	assert.Equal(t, instrument.Meta{
		Title:       "Problem solving",
		Subject:     "Mathematics",
		Level:       "Grade 7",
		Description: "Assesses written solutions",
	}, r.Header)
	require.Len(t, r.Criteria, 2)
	assert.Equal(t, "Optimal", r.Criteria[0].Levels.At(4))
	assert.Equal(t, "Many", r.Criteria[1].Levels.At(1))
	assert.Zero(t, r.Criteria[0].SelectedLevel)
	assert.Equal(t, instrument.Sentinel, r.Score().String())
}

func TestMapChecklistAndRatingScale(t *testing.T) {
	reply := []byte(`{"title":"Reading","items":["Reads fluently","Uses intonation","Respects punctuation"]}`)

	inst, err := MapResponse(instrument.KindChecklist, reply, mathCtx)
	require.NoError(t, err)
	c := inst.(instrument.Checklist)
	assert.Equal(t, "Grade 7", c.Header.Level)
	require.Len(t, c.Items, 3)
	for _, it := range c.Items {
		assert.False(t, it.Checked)
	}
	assert.Equal(t, "0.00", c.Score().String())

	inst, err = MapResponse(instrument.KindRatingScale, reply, mathCtx)
	require.NoError(t, err)
	s := inst.(instrument.RatingScale)
	assert.Empty(t, s.Header.Subject, "rating scales carry no subject")
	assert.Equal(t, "Uses intonation", s.Items[1].Text)
	assert.Zero(t, s.Items[1].Value)
}

func TestMapObservationGuide(t *testing.T) {
	reply := []byte(`{"title":"Group work","aspects":[{"indicator":"Cooperation","description":"Works with peers","examples":"Shares materials"}]}`)
	inst, err := MapResponse(instrument.KindObservationGuide, reply, mathCtx)
	require.NoError(t, err)

	a := inst.(instrument.ObservationGuide).Aspects[0]
	assert.Equal(t, "Shares materials", a.Examples)
	assert.Empty(t, a.Notes)
}

func TestMapExam(t *testing.T) {
	reply := []byte(`{"title":"Fractions","instructions":"Show your work","questions":[
		{"text":"1/2 + 1/4?","type":"multiple-choice","points":2},
		{"text":"1/3 > 1/2","type":"true-false","points":1},
		{"text":"Explain equivalence","type":"free-response","points":3}
	]}`)
	inst, err := MapResponse(instrument.KindExam, reply, mathCtx)
	require.NoError(t, err)

	e := inst.(instrument.Exam)
	assert.Equal(t, "Mathematics", e.Header.Subject)
	assert.Empty(t, e.Header.Level, "exams carry the subject only")
	assert.Equal(t, "Show your work", e.Header.Description)
	assert.Equal(t, 6.0, e.TotalPoints())
	assert.Nil(t, e.Questions[0].ObtainedPoints)
	assert.Equal(t, instrument.QuestionFreeResponse, e.Questions[2].Type)
}

func TestMapAssignsFreshIDs(t *testing.T) {
	first, err := MapResponse(instrument.KindRubric, []byte(rubricReply), mathCtx)
	require.NoError(t, err)
	second, err := MapResponse(instrument.KindRubric, []byte(rubricReply), mathCtx)
	require.NoError(t, err)

	seen := map[string]bool{}
	for _, id := range append(first.IDs(), second.IDs()...) {
		assert.NotEmpty(t, id)
		assert.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}
}

func TestMapFailures(t *testing.T) {
	tests := []struct {
		name  string
		kind  instrument.Kind
		reply string
	}{
		{"not json", instrument.KindChecklist, `{"title":`},
		{"not an object", instrument.KindChecklist, `["a"]`},
		{"missing list", instrument.KindChecklist, `{"title":"x"}`},
		{"null list", instrument.KindRatingScale, `{"title":"x","items":null}`},
		{"ill-typed list", instrument.KindObservationGuide, `{"title":"x","aspects":"many"}`},
		{"ill-typed element", instrument.KindChecklist, `{"title":"x","items":[1,2]}`},
		{"unknown question type", instrument.KindExam, `{"questions":[{"text":"?","type":"essay","points":1}]}`},
		{"bad level key", instrument.KindRubric, `{"criteria":[{"name":"a","weight":1,"levels":{"9":"x"}}]}`},
		{"unknown kind", instrument.Kind("poster"), `{}`},
	}

	for _, tt := range tests {
		inst, err := MapResponse(tt.kind, []byte(tt.reply), mathCtx)
		assert.Nil(t, inst, tt.name)
		var me *MappingError
		if assert.True(t, errors.As(err, &me), "%s: got %v", tt.name, err) {
			assert.Equal(t, tt.kind, me.Kind)
		}
	}
}

func TestMapEmptyListIsValid(t *testing.T) {
	inst, err := MapResponse(instrument.KindChecklist, []byte(`{"title":"x","items":[]}`), mathCtx)
	require.NoError(t, err)
	assert.Empty(t, inst.IDs())
}
