// Package instrument defines the five assessment instrument variants
// (rubric, checklist, rating scale, observation guide, exam), their
// scoring formulas and the value-semantics editing operations shared by
// all of them.
package instrument

import "fmt"

// Kind identifies an instrument variant.
type Kind string

const (
	KindRubric           Kind = "rubric"
	KindChecklist        Kind = "checklist"
	KindRatingScale      Kind = "rating-scale"
	KindObservationGuide Kind = "observation-guide"
	KindExam             Kind = "exam"
)

// Kinds lists every variant in display order.
var Kinds = []Kind{
	KindRubric,
	KindChecklist,
	KindRatingScale,
	KindObservationGuide,
	KindExam,
}

// ParseKind validates a kind name.
func ParseKind(s string) (Kind, error) {
	for _, k := range Kinds {
		if string(k) == s {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown instrument kind %q", s)
}

// ListField returns the name of the element list in the kind's
// generation payload.
func (k Kind) ListField() string {
	switch k {
	case KindRubric:
		return "criteria"
	case KindChecklist, KindRatingScale:
		return "items"
	case KindObservationGuide:
		return "aspects"
	case KindExam:
		return "questions"
	}
	return ""
}

// Meta is the header shared by every instrument.
type Meta struct {
	Title   string `json:"title" yaml:"title"`
	Subject string `json:"subject,omitempty" yaml:"subject,omitempty"`
	Level   string `json:"level,omitempty" yaml:"level,omitempty"`

	// Description holds the rubric description or the exam instructions.
	Description string `json:"description,omitempty" yaml:"description,omitempty"`

	// Student is the name of the evaluated student, shown on exports.
	Student string `json:"student,omitempty" yaml:"student,omitempty"`
}

// Instrument is implemented by Rubric, Checklist, RatingScale,
// ObservationGuide and Exam. All methods are pure: mutators return a new
// value and leave the receiver untouched.
type Instrument interface {
	Kind() Kind
	Meta() Meta
	WithMeta(m Meta) Instrument

	// Score computes the instrument's current display score.
	Score() Score

	// IDs returns element identifiers in creation order.
	IDs() []string

	// AppendBlank appends the variant's default element, with texts taken
	// from p, and returns its ID.
	AppendBlank(p Placeholders) (Instrument, string)

	// RemoveElement drops the element with the given ID. Unknown IDs are
	// a no-op.
	RemoveElement(id string) Instrument
}

var (
	_ Instrument = Rubric{}
	_ Instrument = Checklist{}
	_ Instrument = RatingScale{}
	_ Instrument = ObservationGuide{}
	_ Instrument = Exam{}
)
