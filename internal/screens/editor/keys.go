package editor

import (
	"github.com/eduval/eduval/internal/instrument"
)

// fieldKey describes which element field a key edits.
type fieldKey struct {
	field   string
	label   string // i18n id
	numeric bool
}

// elementFields maps edit keys to element fields per kind.
var elementFields = map[instrument.Kind]map[string]fieldKey{
	instrument.KindRubric: {
		"e": {"name", "ui.criterion", false},
		"w": {"weight", "ui.weight", true},
	},
	instrument.KindChecklist: {
		"e": {"text", "ui.indicator", false},
	},
	instrument.KindRatingScale: {
		"e": {"text", "ui.indicator", false},
	},
	instrument.KindObservationGuide: {
		"e": {"indicator", "ui.indicator", false},
		"d": {"description", "ui.description", false},
		"v": {"examples", "ui.examples", false},
		"n": {"notes", "ui.notes", false},
	},
	instrument.KindExam: {
		"e": {"text", "ui.question", false},
		"w": {"points", "ui.points", true},
		"o": {"obtained", "ui.obtained", true},
	},
}

// metaFields maps keys to header fields.
var metaFields = map[string]fieldKey{
	"t": {"title", "ui.title", false},
	"s": {"student", "ui.student", false},
}

// currentValue returns the text form of field on the element with id.
func currentValue(inst instrument.Instrument, id, field string) string {
	switch v := inst.(type) {
	case instrument.Rubric:
		c, ok := v.Criterion(id)
		if !ok {
			return ""
		}
		switch field {
		case "name":
			return c.Name
		case "weight":
			return num(c.Weight)
		}
		for l := 1; l <= instrument.MaxLevel; l++ {
			if field == levelField(l) {
				return c.Levels.At(l)
			}
		}
	case instrument.Checklist:
		for _, it := range v.Items {
			if it.ID == id {
				return it.Text
			}
		}
	case instrument.RatingScale:
		for _, it := range v.Items {
			if it.ID == id {
				return it.Text
			}
		}
	case instrument.ObservationGuide:
		for _, a := range v.Aspects {
			if a.ID != id {
				continue
			}
			switch field {
			case "indicator":
				return a.Indicator
			case "description":
				return a.Description
			case "examples":
				return a.Examples
			case "notes":
				return a.Notes
			}
		}
	case instrument.Exam:
		for _, q := range v.Questions {
			if q.ID != id {
				continue
			}
			switch field {
			case "text":
				return q.Text
			case "points":
				return num(q.Points)
			case "obtained":
				if q.ObtainedPoints != nil {
					return num(*q.ObtainedPoints)
				}
				return ""
			}
		}
	}
	return ""
}

func metaValue(m instrument.Meta, field string) string {
	switch field {
	case "title":
		return m.Title
	case "student":
		return m.Student
	}
	return ""
}

func withMetaValue(m instrument.Meta, field, value string) instrument.Meta {
	switch field {
	case "title":
		m.Title = value
	case "student":
		m.Student = value
	}
	return m
}

func levelField(l int) string {
	return "level" + string(rune('0'+l))
}

// nextQuestionType cycles multiple-choice, true-false, free-response.
func nextQuestionType(t instrument.QuestionType) instrument.QuestionType {
	types := instrument.QuestionTypes
	for i, qt := range types {
		if qt == t {
			return types[(i+1)%len(types)]
		}
	}
	return types[0]
}
