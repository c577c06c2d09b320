package instrument

import "fmt"

// Placeholders holds the default texts used for manually created
// instruments and for elements appended from an editor. The i18n package
// fills it in for the active language; DefaultPlaceholders is the English
// fallback.
type Placeholders struct {
	Subject string
	Level   string
	Titles  map[Kind]string

	ExamInstructions string

	// Blank* are the single elements of a freshly created instrument.
	BlankCriterion     Criterion
	BlankChecklistItem string
	BlankRatingItem    string
	BlankAspect        Aspect
	BlankQuestion      string

	// New* are the elements appended by "add" actions.
	AddedCriterion   Criterion
	NewChecklistItem string
	NewRatingItem    string
	NewAspect        Aspect
	NewQuestion      string
}

// DefaultPlaceholders returns English placeholder texts.
func DefaultPlaceholders() Placeholders {
	return Placeholders{
		Subject: "General",
		Level:   "Any",
		Titles: map[Kind]string{
			KindRubric:           "New Rubric",
			KindChecklist:        "New Checklist",
			KindRatingScale:      "New Rating Scale",
			KindObservationGuide: "New Observation Guide",
			KindExam:             "New Exam",
		},
		ExamInstructions: "Answer the following questions clearly.",
		BlankCriterion: Criterion{
			Name:   "New criterion",
			Weight: 20,
			Levels: Levels{"Needs improvement", "Sufficient", "Good", "Excellent"},
		},
		BlankChecklistItem: "First observable indicator",
		BlankRatingItem:    "Achievement indicator 1",
		BlankAspect: Aspect{
			Indicator:   "Class participation",
			Description: "Observe how often and how well the student contributes.",
			Examples:    "Raises a hand, waits for their turn, offers ideas related to the topic.",
		},
		BlankQuestion: "Sample question",
		AddedCriterion: Criterion{
			Name:   "New criterion",
			Weight: 10,
			Levels: Levels{"Level 1", "Level 2", "Level 3", "Level 4"},
		},
		NewChecklistItem: "New indicator",
		NewRatingItem:    "New indicator",
		NewAspect:        Aspect{Indicator: "New aspect"},
		NewQuestion:      "New question...",
	}
}

// NewCriterion returns the template for an appended rubric criterion.
func (p Placeholders) NewCriterion() Criterion {
	return p.AddedCriterion
}

func (p Placeholders) title(k Kind) string {
	if t, ok := p.Titles[k]; ok {
		return t
	}
	return string(k)
}

// NewBlank builds a manually created instrument holding exactly one
// placeholder element.
func NewBlank(kind Kind, p Placeholders) (Instrument, error) {
	switch kind {
	case KindRubric:
		r, _ := Rubric{Header: Meta{
			Title:   p.title(kind),
			Subject: p.Subject,
			Level:   p.Level,
		}}.Append(p.BlankCriterion)
		return r, nil
	case KindChecklist:
		c, _ := Checklist{Header: Meta{
			Title:   p.title(kind),
			Subject: p.Subject,
			Level:   p.Level,
		}}.AddItem(p.BlankChecklistItem)
		return c, nil
	case KindRatingScale:
		s, _ := RatingScale{Header: Meta{Title: p.title(kind)}}.
			Append(RatingItem{Text: p.BlankRatingItem})
		return s, nil
	case KindObservationGuide:
		g, _ := ObservationGuide{Header: Meta{Title: p.title(kind)}}.
			Append(p.BlankAspect)
		return g, nil
	case KindExam:
		e, _ := Exam{Header: Meta{
			Title:       p.title(kind),
			Subject:     p.Subject,
			Description: p.ExamInstructions,
		}}.AddQuestion(QuestionMultipleChoice, p.BlankQuestion)
		return e, nil
	}
	return nil, fmt.Errorf("unknown instrument kind %q", kind)
}
