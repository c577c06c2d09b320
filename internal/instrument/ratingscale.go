package instrument

// MaxRating is the top value of the rating scale. Zero means not rated.
const MaxRating = 5

// RatingItem is one performance indicator rated 0-5.
type RatingItem struct {
	ID    string `json:"id" yaml:"id"`
	Text  string `json:"text" yaml:"text"`
	Value int    `json:"value" yaml:"value"`
}

func (i RatingItem) ElementID() string { return i.ID }

// RatingScale rates each indicator on a 1-5 scale.
type RatingScale struct {
	Header Meta         `json:"header" yaml:"header"`
	Items  []RatingItem `json:"items" yaml:"items"`
}

func (s RatingScale) Kind() Kind { return KindRatingScale }

func (s RatingScale) Meta() Meta { return s.Header }

func (s RatingScale) WithMeta(m Meta) Instrument {
	s.Header = m
	return s
}

// Score is the sum of ratings over the maximum attainable, scaled to 10.
func (s RatingScale) Score() Score {
	var sum int
	for _, it := range s.Items {
		sum += it.Value
	}
	return ratio(float64(sum), float64(len(s.Items)*MaxRating))
}

func (s RatingScale) IDs() []string { return idsOf(s.Items) }

func (s RatingScale) Append(tmpl RatingItem) (RatingScale, string) {
	tmpl.ID = NewID()
	s.Items = appendElement(s.Items, tmpl)
	return s, tmpl.ID
}

func (s RatingScale) Remove(id string) RatingScale {
	s.Items = removeElement(s.Items, id)
	return s
}

func (s RatingScale) Update(id string, fn func(*RatingItem)) RatingScale {
	s.Items = updateElement(s.Items, id, fn)
	return s
}

// Rate sets the value of one item.
func (s RatingScale) Rate(id string, value int) RatingScale {
	return s.Update(id, func(it *RatingItem) { it.Value = value })
}

func (s RatingScale) AppendBlank(p Placeholders) (Instrument, string) {
	return s.Append(RatingItem{Text: p.NewRatingItem})
}

func (s RatingScale) RemoveElement(id string) Instrument { return s.Remove(id) }
