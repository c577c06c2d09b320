package generate

import (
	"github.com/eduval/eduval/internal/instrument"
	"github.com/eduval/eduval/internal/llm"
)

// Every object lists all of its properties as required and forbids
// additional ones so strict structured-output modes accept the schema.

func object(props map[string]any, order ...string) map[string]any {
	return map[string]any{
		"type":                 "object",
		"properties":           props,
		"required":             order,
		"additionalProperties": false,
	}
}

func arrayOf(item map[string]any) map[string]any {
	return map[string]any{"type": "array", "items": item}
}

var (
	str = map[string]any{"type": "string"}
	num = map[string]any{"type": "number"}
)

func questionTypes() []string {
	out := make([]string, len(instrument.QuestionTypes))
	for i, t := range instrument.QuestionTypes {
		out[i] = string(t)
	}
	return out
}

// schemaFor returns the response schema for kind. examplesDesc is the
// localized hint attached to observation-guide examples.
func schemaFor(kind instrument.Kind, examplesDesc string) *llm.Schema {
	var def map[string]any

	switch kind {
	case instrument.KindRubric:
		levels := object(map[string]any{"4": str, "3": str, "2": str, "1": str}, "4", "3", "2", "1")
		criterion := object(map[string]any{
			"name":   str,
			"weight": num,
			"levels": levels,
		}, "name", "weight", "levels")
		def = object(map[string]any{
			"title":       str,
			"description": str,
			"criteria":    arrayOf(criterion),
		}, "title", "description", "criteria")

	case instrument.KindChecklist, instrument.KindRatingScale:
		def = object(map[string]any{
			"title": str,
			"items": arrayOf(str),
		}, "title", "items")

	case instrument.KindObservationGuide:
		aspect := object(map[string]any{
			"indicator":   str,
			"description": str,
			"examples":    map[string]any{"type": "string", "description": examplesDesc},
		}, "indicator", "description", "examples")
		def = object(map[string]any{
			"title":   str,
			"aspects": arrayOf(aspect),
		}, "title", "aspects")

	case instrument.KindExam:
		question := object(map[string]any{
			"text":   str,
			"type":   map[string]any{"type": "string", "enum": questionTypes()},
			"points": num,
		}, "text", "type", "points")
		def = object(map[string]any{
			"title":        str,
			"instructions": str,
			"questions":    arrayOf(question),
		}, "title", "instructions", "questions")

	default:
		return nil
	}

	return &llm.Schema{
		Name:        "instrument-" + string(kind),
		Description: "Generated " + string(kind),
		Definition:  def,
	}
}
