package instrument

// Aspect is one observation point of an observation guide.
type Aspect struct {
	ID          string `json:"id" yaml:"id"`
	Indicator   string `json:"indicator" yaml:"indicator"`
	Description string `json:"description" yaml:"description"`

	// Examples lists concrete behaviours or evidence to look for.
	Examples string `json:"examples" yaml:"examples"`

	// Notes is what the teacher recorded during the observation.
	Notes string `json:"notes" yaml:"notes"`
}

func (a Aspect) ElementID() string { return a.ID }

// ObservationGuide is a qualitative instrument; it has no numeric score.
type ObservationGuide struct {
	Header  Meta     `json:"header" yaml:"header"`
	Aspects []Aspect `json:"aspects" yaml:"aspects"`
}

func (g ObservationGuide) Kind() Kind { return KindObservationGuide }

func (g ObservationGuide) Meta() Meta { return g.Header }

func (g ObservationGuide) WithMeta(m Meta) Instrument {
	g.Header = m
	return g
}

// Score is always undefined.
func (g ObservationGuide) Score() Score { return Undefined }

func (g ObservationGuide) IDs() []string { return idsOf(g.Aspects) }

func (g ObservationGuide) Append(tmpl Aspect) (ObservationGuide, string) {
	tmpl.ID = NewID()
	g.Aspects = appendElement(g.Aspects, tmpl)
	return g, tmpl.ID
}

func (g ObservationGuide) Remove(id string) ObservationGuide {
	g.Aspects = removeElement(g.Aspects, id)
	return g
}

func (g ObservationGuide) Update(id string, fn func(*Aspect)) ObservationGuide {
	g.Aspects = updateElement(g.Aspects, id, fn)
	return g
}

func (g ObservationGuide) AppendBlank(p Placeholders) (Instrument, string) {
	return g.Append(p.NewAspect)
}

func (g ObservationGuide) RemoveElement(id string) Instrument { return g.Remove(id) }
