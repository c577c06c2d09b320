package editor

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/eduval/eduval/internal/i18n"
	"github.com/eduval/eduval/internal/instrument"
	"github.com/eduval/eduval/internal/ui/theme"
)

// rows renders one list row per element, in creation order.
func rows(inst instrument.Instrument, cat *i18n.Catalog) []string {
	switch v := inst.(type) {
	case instrument.Rubric:
		out := make([]string, len(v.Criteria))
		for i, c := range v.Criteria {
			var levels []string
			for l := instrument.MaxLevel; l >= 1; l-- {
				text := fmt.Sprintf("%d %s", l, c.Levels.At(l))
				if l == c.SelectedLevel {
					text = theme.Checked.Render("● " + text)
				}
				levels = append(levels, text)
			}
			out[i] = fmt.Sprintf("%s  %s\n%s",
				c.Name,
				theme.Subtitle.Render(fmt.Sprintf("%s %s", cat.T("ui.weight"), num(c.Weight))),
				strings.Join(levels, "  ·  "))
		}
		return out

	case instrument.Checklist:
		out := make([]string, len(v.Items))
		for i, it := range v.Items {
			mark := "[ ]"
			if it.Checked {
				mark = theme.Checked.Render("[x]")
			}
			out[i] = mark + " " + it.Text
		}
		return out

	case instrument.RatingScale:
		out := make([]string, len(v.Items))
		for i, it := range v.Items {
			dots := strings.Repeat("●", it.Value) + strings.Repeat("○", instrument.MaxRating-it.Value)
			out[i] = fmt.Sprintf("%s  %s %s", it.Text, theme.Checked.Render(dots), strconv.Itoa(it.Value))
		}
		return out

	case instrument.ObservationGuide:
		out := make([]string, len(v.Aspects))
		for i, a := range v.Aspects {
			lines := []string{a.Indicator}
			if a.Description != "" {
				lines = append(lines, theme.Subtitle.Render(a.Description))
			}
			if a.Examples != "" {
				lines = append(lines, cat.T("ui.examples")+": "+a.Examples)
			}
			if a.Notes != "" {
				lines = append(lines, cat.T("ui.notes")+": "+a.Notes)
			}
			out[i] = strings.Join(lines, "\n")
		}
		return out

	case instrument.Exam:
		out := make([]string, len(v.Questions))
		for i, q := range v.Questions {
			obtained := "-"
			if q.ObtainedPoints != nil {
				obtained = num(*q.ObtainedPoints)
			}
			out[i] = fmt.Sprintf("%d. %s %s  %s",
				i+1,
				theme.Subtitle.Render("["+cat.QuestionTypeLabel(q.Type)+"]"),
				q.Text,
				theme.Label.Render(obtained+"/"+num(q.Points)))
		}
		return out
	}
	return nil
}

func num(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
