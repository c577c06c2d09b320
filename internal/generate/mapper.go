package generate

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/eduval/eduval/internal/instrument"
)

// Context is injected into mapped instruments.
type Context struct {
	Subject string
	Level   string
}

type rubricPayload struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Criteria    []struct {
		Name   string            `json:"name"`
		Weight float64           `json:"weight"`
		Levels instrument.Levels `json:"levels"`
	} `json:"criteria"`
}

type itemsPayload struct {
	Title string   `json:"title"`
	Items []string `json:"items"`
}

type guidePayload struct {
	Title   string `json:"title"`
	Aspects []struct {
		Indicator   string `json:"indicator"`
		Description string `json:"description"`
		Examples    string `json:"examples"`
	} `json:"aspects"`
}

type examPayload struct {
	Title        string `json:"title"`
	Instructions string `json:"instructions"`
	Questions    []struct {
		Text   string  `json:"text"`
		Type   string  `json:"type"`
		Points float64 `json:"points"`
	} `json:"questions"`
}

// MapResponse converts a structured reply into a fresh instrument. Every
// element gets a new ID and starts ungraded. Nothing partial is returned
// on failure.
func MapResponse(kind instrument.Kind, raw []byte, ctx Context) (instrument.Instrument, error) {
	inst, err := mapResponse(kind, raw, ctx)
	if err != nil {
		return nil, &MappingError{Kind: kind, Err: err}
	}
	return inst, nil
}

func mapResponse(kind instrument.Kind, raw []byte, ctx Context) (instrument.Instrument, error) {
	field := kind.ListField()
	if field == "" {
		return nil, fmt.Errorf("unknown instrument kind %q", kind)
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}
	if list, ok := fields[field]; !ok || string(list) == "null" {
		return nil, fmt.Errorf("missing %q list", field)
	}

	switch kind {
	case instrument.KindRubric:
		var p rubricPayload
		if err := json.Unmarshal(raw, &p); err != nil {
			return nil, err
		}
		r := instrument.Rubric{Header: instrument.Meta{
			Title:       p.Title,
			Subject:     ctx.Subject,
			Level:       ctx.Level,
			Description: p.Description,
		}}
		for _, c := range p.Criteria {
			r, _ = r.Append(instrument.Criterion{Name: c.Name, Weight: c.Weight, Levels: c.Levels})
		}
		return r, nil

	case instrument.KindChecklist:
		var p itemsPayload
		if err := json.Unmarshal(raw, &p); err != nil {
			return nil, err
		}
		c := instrument.Checklist{Header: instrument.Meta{
			Title:   p.Title,
			Subject: ctx.Subject,
			Level:   ctx.Level,
		}}
		for _, text := range p.Items {
			c, _ = c.AddItem(text)
		}
		return c, nil

	case instrument.KindRatingScale:
		var p itemsPayload
		if err := json.Unmarshal(raw, &p); err != nil {
			return nil, err
		}
		s := instrument.RatingScale{Header: instrument.Meta{Title: p.Title}}
		for _, text := range p.Items {
			s, _ = s.Append(instrument.RatingItem{Text: text})
		}
		return s, nil

	case instrument.KindObservationGuide:
		var p guidePayload
		if err := json.Unmarshal(raw, &p); err != nil {
			return nil, err
		}
		g := instrument.ObservationGuide{Header: instrument.Meta{Title: p.Title}}
		for _, a := range p.Aspects {
			g, _ = g.Append(instrument.Aspect{
				Indicator:   a.Indicator,
				Description: a.Description,
				Examples:    a.Examples,
			})
		}
		return g, nil

	case instrument.KindExam:
		var p examPayload
		if err := json.Unmarshal(raw, &p); err != nil {
			return nil, err
		}
		e := instrument.Exam{Header: instrument.Meta{
			Title:       p.Title,
			Subject:     ctx.Subject,
			Description: p.Instructions,
		}}
		for _, q := range p.Questions {
			t, err := instrument.ParseQuestionType(q.Type)
			if err != nil {
				return nil, err
			}
			e, _ = e.Append(instrument.Question{Text: q.Text, Type: t, Points: q.Points})
		}
		return e, nil
	}
	return nil, errors.New("unreachable")
}
