package instrument

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// MaxLevel is the highest rubric performance level. Levels run 1..MaxLevel
// with no intermediate values.
const MaxLevel = 4

// Levels holds the four performance-level descriptions of a criterion.
// Index 0 is level 1. Being an array, it copies by value.
type Levels [MaxLevel]string

// At returns the description for level (1-4), or "" when out of range.
func (l Levels) At(level int) string {
	if level < 1 || level > MaxLevel {
		return ""
	}
	return l[level-1]
}

// With returns a copy with the description for level replaced.
func (l Levels) With(level int, text string) Levels {
	if level >= 1 && level <= MaxLevel {
		l[level-1] = text
	}
	return l
}

// MarshalJSON encodes levels as an object keyed "1".."4".
func (l Levels) MarshalJSON() ([]byte, error) {
	return json.Marshal(l.asMap())
}

// UnmarshalJSON accepts an object keyed "1".."4". Missing keys stay empty.
func (l *Levels) UnmarshalJSON(data []byte) error {
	var m map[string]string
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}
	return l.fromMap(m)
}

// MarshalYAML encodes levels the same way as JSON.
func (l Levels) MarshalYAML() (any, error) {
	return l.asMap(), nil
}

func (l Levels) asMap() map[string]string {
	m := make(map[string]string, MaxLevel)
	for i, d := range l {
		m[strconv.Itoa(i+1)] = d
	}
	return m
}

func (l *Levels) fromMap(m map[string]string) error {
	var out Levels
	for k, v := range m {
		n, err := strconv.Atoi(k)
		if err != nil || n < 1 || n > MaxLevel {
			return fmt.Errorf("invalid rubric level %q", k)
		}
		out[n-1] = v
	}
	*l = out
	return nil
}

// Criterion is one row of a rubric.
type Criterion struct {
	ID   string `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`

	// Weight is the criterion's share of the final grade, nominally 0-100.
	// Weights are not required to sum to 100.
	Weight float64 `json:"weight" yaml:"weight"`

	Levels Levels `json:"levels" yaml:"levels"`

	// SelectedLevel is the level awarded (1-4), or 0 when not graded yet.
	SelectedLevel int `json:"selected_level,omitempty" yaml:"selected_level,omitempty"`
}

func (c Criterion) ElementID() string { return c.ID }

// Unit returns the criterion's own 0-10 grade and whether it is graded.
func (c Criterion) Unit() (float64, bool) {
	if c.SelectedLevel < 1 || c.SelectedLevel > MaxLevel {
		return 0, false
	}
	return float64(c.SelectedLevel) / MaxLevel * 10, true
}

// Rubric is an analytic rubric: weighted criteria graded on four levels.
type Rubric struct {
	Header   Meta        `json:"header" yaml:"header"`
	Criteria []Criterion `json:"criteria" yaml:"criteria"`
}

func (r Rubric) Kind() Kind { return KindRubric }

func (r Rubric) Meta() Meta { return r.Header }

func (r Rubric) WithMeta(m Meta) Instrument {
	r.Header = m
	return r
}

// Score is the weighted sum of graded criteria, each criterion
// contributing unit*weight/100. Ungraded criteria are skipped. The score
// is undefined until the graded criteria carry some weight.
func (r Rubric) Score() Score {
	var total, weight float64
	for _, c := range r.Criteria {
		unit, ok := c.Unit()
		if !ok {
			continue
		}
		total += unit * (c.Weight / 100)
		weight += c.Weight
	}
	if weight <= 0 {
		return Undefined
	}
	return Points(total)
}

func (r Rubric) IDs() []string { return idsOf(r.Criteria) }

// Append adds a criterion built from tmpl with a fresh ID.
func (r Rubric) Append(tmpl Criterion) (Rubric, string) {
	tmpl.ID = NewID()
	r.Criteria = appendElement(r.Criteria, tmpl)
	return r, tmpl.ID
}

// Remove drops a criterion.
func (r Rubric) Remove(id string) Rubric {
	r.Criteria = removeElement(r.Criteria, id)
	return r
}

// Update applies fn to one criterion.
func (r Rubric) Update(id string, fn func(*Criterion)) Rubric {
	r.Criteria = updateElement(r.Criteria, id, fn)
	return r
}

// SelectLevel grades a criterion. Level 0 clears the selection.
func (r Rubric) SelectLevel(id string, level int) Rubric {
	return r.Update(id, func(c *Criterion) { c.SelectedLevel = level })
}

// Criterion looks up a criterion by ID.
func (r Rubric) Criterion(id string) (Criterion, bool) {
	return find(r.Criteria, id)
}

func (r Rubric) AppendBlank(p Placeholders) (Instrument, string) {
	return r.Append(p.NewCriterion())
}

func (r Rubric) RemoveElement(id string) Instrument { return r.Remove(id) }
