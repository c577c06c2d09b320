package instrument

import "fmt"

// QuestionType is how an exam question is answered.
type QuestionType string

const (
	QuestionMultipleChoice QuestionType = "multiple-choice"
	QuestionTrueFalse      QuestionType = "true-false"
	QuestionFreeResponse   QuestionType = "free-response"
)

// QuestionTypes lists the accepted question types.
var QuestionTypes = []QuestionType{
	QuestionMultipleChoice,
	QuestionTrueFalse,
	QuestionFreeResponse,
}

// ParseQuestionType validates a question type name.
func ParseQuestionType(s string) (QuestionType, error) {
	for _, t := range QuestionTypes {
		if string(t) == s {
			return t, nil
		}
	}
	return "", fmt.Errorf("unknown question type %q", s)
}

// Question is one exam item.
type Question struct {
	ID     string       `json:"id" yaml:"id"`
	Text   string       `json:"text" yaml:"text"`
	Type   QuestionType `json:"type" yaml:"type"`
	Points float64      `json:"points" yaml:"points"`

	// ObtainedPoints is filled in when the exam is graded.
	ObtainedPoints *float64 `json:"obtained_points,omitempty" yaml:"obtained_points,omitempty"`
}

func (q Question) ElementID() string { return q.ID }

// Obtained returns the awarded points, treating ungraded as zero.
func (q Question) Obtained() float64 {
	if q.ObtainedPoints == nil {
		return 0
	}
	return *q.ObtainedPoints
}

// Exam is a structured test of mixed question types.
type Exam struct {
	Header    Meta       `json:"header" yaml:"header"`
	Questions []Question `json:"questions" yaml:"questions"`
}

func (e Exam) Kind() Kind { return KindExam }

func (e Exam) Meta() Meta { return e.Header }

func (e Exam) WithMeta(m Meta) Instrument {
	e.Header = m
	return e
}

// Score is obtained over possible points, scaled to 10. Totals are
// recomputed on every call.
func (e Exam) Score() Score {
	var obtained, possible float64
	for _, q := range e.Questions {
		obtained += q.Obtained()
		possible += q.Points
	}
	return ratio(obtained, possible)
}

// TotalPoints is the sum of possible points.
func (e Exam) TotalPoints() float64 {
	var total float64
	for _, q := range e.Questions {
		total += q.Points
	}
	return total
}

func (e Exam) IDs() []string { return idsOf(e.Questions) }

func (e Exam) Append(tmpl Question) (Exam, string) {
	tmpl.ID = NewID()
	e.Questions = appendElement(e.Questions, tmpl)
	return e, tmpl.ID
}

func (e Exam) Remove(id string) Exam {
	e.Questions = removeElement(e.Questions, id)
	return e
}

func (e Exam) Update(id string, fn func(*Question)) Exam {
	e.Questions = updateElement(e.Questions, id, fn)
	return e
}

// Grade records the points obtained on one question.
func (e Exam) Grade(id string, points float64) Exam {
	return e.Update(id, func(q *Question) { q.ObtainedPoints = &points })
}

// AddQuestion appends a question of the given type worth one point.
func (e Exam) AddQuestion(t QuestionType, text string) (Exam, string) {
	return e.Append(Question{Text: text, Type: t, Points: 1})
}

func (e Exam) AppendBlank(p Placeholders) (Instrument, string) {
	return e.AddQuestion(QuestionMultipleChoice, p.NewQuestion)
}

func (e Exam) RemoveElement(id string) Instrument { return e.Remove(id) }
