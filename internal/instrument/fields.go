package instrument

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ErrUnknownField is wrapped by FieldError when the field name is not
// defined for the instrument kind.
var ErrUnknownField = errors.New("unknown field")

// FieldError reports a field update rejected at a text input boundary.
type FieldError struct {
	Kind  Kind
	Field string
	Value string
	Err   error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s field %q = %q: %v", e.Kind, e.Field, e.Value, e.Err)
}

func (e *FieldError) Unwrap() error { return e.Err }

// Fields returns the editable element field names for a kind.
func Fields(k Kind) []string {
	switch k {
	case KindRubric:
		return []string{"name", "weight", "level1", "level2", "level3", "level4", "selected"}
	case KindChecklist:
		return []string{"text", "checked"}
	case KindRatingScale:
		return []string{"text", "value"}
	case KindObservationGuide:
		return []string{"indicator", "description", "examples", "notes"}
	case KindExam:
		return []string{"text", "type", "points", "obtained"}
	}
	return nil
}

// SetField updates one named field of one element from its text form.
// An unknown id leaves the instrument unchanged.
func SetField(inst Instrument, id, field, value string) (Instrument, error) {
	fail := func(err error) (Instrument, error) {
		return inst, &FieldError{Kind: inst.Kind(), Field: field, Value: value, Err: err}
	}

	switch v := inst.(type) {
	case Rubric:
		switch field {
		case "name":
			return v.Update(id, func(c *Criterion) { c.Name = value }), nil
		case "weight":
			w, err := parseFloat(value)
			if err != nil {
				return fail(err)
			}
			return v.Update(id, func(c *Criterion) { c.Weight = w }), nil
		case "selected":
			n, err := parseRange(value, 0, MaxLevel)
			if err != nil {
				return fail(err)
			}
			return v.SelectLevel(id, n), nil
		}
		if lvl, ok := strings.CutPrefix(field, "level"); ok {
			n, err := strconv.Atoi(lvl)
			if err == nil && n >= 1 && n <= MaxLevel {
				return v.Update(id, func(c *Criterion) { c.Levels = c.Levels.With(n, value) }), nil
			}
		}

	case Checklist:
		switch field {
		case "text":
			return v.Update(id, func(it *ChecklistItem) { it.Text = value }), nil
		case "checked":
			b, err := strconv.ParseBool(strings.TrimSpace(value))
			if err != nil {
				return fail(err)
			}
			return v.Update(id, func(it *ChecklistItem) { it.Checked = b }), nil
		}

	case RatingScale:
		switch field {
		case "text":
			return v.Update(id, func(it *RatingItem) { it.Text = value }), nil
		case "value":
			n, err := parseRange(value, 0, MaxRating)
			if err != nil {
				return fail(err)
			}
			return v.Rate(id, n), nil
		}

	case ObservationGuide:
		var set func(*Aspect)
		switch field {
		case "indicator":
			set = func(a *Aspect) { a.Indicator = value }
		case "description":
			set = func(a *Aspect) { a.Description = value }
		case "examples":
			set = func(a *Aspect) { a.Examples = value }
		case "notes":
			set = func(a *Aspect) { a.Notes = value }
		}
		if set != nil {
			return v.Update(id, set), nil
		}

	case Exam:
		switch field {
		case "text":
			return v.Update(id, func(q *Question) { q.Text = value }), nil
		case "type":
			t, err := ParseQuestionType(strings.TrimSpace(value))
			if err != nil {
				return fail(err)
			}
			return v.Update(id, func(q *Question) { q.Type = t }), nil
		case "points":
			p, err := parseFloat(value)
			if err != nil {
				return fail(err)
			}
			if p <= 0 {
				return fail(errors.New("points must be positive"))
			}
			return v.Update(id, func(q *Question) { q.Points = p }), nil
		case "obtained":
			if strings.TrimSpace(value) == "" {
				return v.Update(id, func(q *Question) { q.ObtainedPoints = nil }), nil
			}
			p, err := parseFloat(value)
			if err != nil {
				return fail(err)
			}
			if p < 0 {
				return fail(errors.New("obtained points cannot be negative"))
			}
			return v.Grade(id, p), nil
		}
	}
	return fail(ErrUnknownField)
}

func parseFloat(s string) (float64, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, errors.New("value must be a finite number")
	}
	return f, nil
}

func parseRange(s string, lo, hi int) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, err
	}
	if n < lo || n > hi {
		return 0, fmt.Errorf("must be between %d and %d", lo, hi)
	}
	return n, nil
}
