package instrument

// ChecklistItem is one observable yes/no indicator.
type ChecklistItem struct {
	ID      string `json:"id" yaml:"id"`
	Text    string `json:"text" yaml:"text"`
	Checked bool   `json:"checked" yaml:"checked"`
}

func (i ChecklistItem) ElementID() string { return i.ID }

// Checklist is a list of indicators marked as observed or not.
type Checklist struct {
	Header Meta            `json:"header" yaml:"header"`
	Items  []ChecklistItem `json:"items" yaml:"items"`
}

func (c Checklist) Kind() Kind { return KindChecklist }

func (c Checklist) Meta() Meta { return c.Header }

func (c Checklist) WithMeta(m Meta) Instrument {
	c.Header = m
	return c
}

// Score is the checked fraction scaled to 10; an empty checklist scores 0.
func (c Checklist) Score() Score {
	var checked int
	for _, it := range c.Items {
		if it.Checked {
			checked++
		}
	}
	return ratio(float64(checked), float64(len(c.Items)))
}

func (c Checklist) IDs() []string { return idsOf(c.Items) }

// AddItem appends an unchecked item with the given text.
func (c Checklist) AddItem(text string) (Checklist, string) {
	return c.Append(ChecklistItem{Text: text})
}

// Append adds an item built from tmpl with a fresh ID.
func (c Checklist) Append(tmpl ChecklistItem) (Checklist, string) {
	tmpl.ID = NewID()
	c.Items = appendElement(c.Items, tmpl)
	return c, tmpl.ID
}

func (c Checklist) Remove(id string) Checklist {
	c.Items = removeElement(c.Items, id)
	return c
}

func (c Checklist) Update(id string, fn func(*ChecklistItem)) Checklist {
	c.Items = updateElement(c.Items, id, fn)
	return c
}

// Toggle flips the checked state of one item.
func (c Checklist) Toggle(id string) Checklist {
	return c.Update(id, func(it *ChecklistItem) { it.Checked = !it.Checked })
}

func (c Checklist) AppendBlank(p Placeholders) (Instrument, string) {
	return c.AddItem(p.NewChecklistItem)
}

func (c Checklist) RemoveElement(id string) Instrument { return c.Remove(id) }
