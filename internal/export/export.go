// Package export renders instruments as JSON, YAML or a printable text sheet.
package export

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"
	"gopkg.in/yaml.v3"

	"github.com/eduval/eduval/internal/i18n"
	"github.com/eduval/eduval/internal/instrument"
)

// Format selects an export encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatText Format = "text"
)

// Formats lists every supported format.
var Formats = []Format{FormatJSON, FormatYAML, FormatText}

// ParseFormat validates s. The empty string selects JSON.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return FormatJSON, nil
	case FormatJSON, FormatYAML, FormatText:
		return f, nil
	case "yml":
		return FormatYAML, nil
	case "txt":
		return FormatText, nil
	}
	return "", fmt.Errorf("unknown export format %q (want json, yaml or text)", s)
}

// ContentType returns the MIME type for f.
func (f Format) ContentType() string {
	switch f {
	case FormatYAML:
		return "application/yaml"
	case FormatText:
		return "text/plain; charset=utf-8"
	}
	return "application/json"
}

// Ext returns the file extension for f, without the dot.
func (f Format) Ext() string {
	if f == FormatText {
		return "txt"
	}
	return string(f)
}

// Write encodes inst in format f. cat supplies the labels of the text
// sheet and may be nil for JSON and YAML.
func Write(w io.Writer, inst instrument.Instrument, f Format, cat *i18n.Catalog) error {
	if inst == nil {
		return fmt.Errorf("nothing to export")
	}
	switch f {
	case FormatJSON:
		data, err := instrument.Marshal(inst)
		if err != nil {
			return err
		}
		_, err = w.Write(append(data, '\n'))
		return err
	case FormatYAML:
		return writeYAML(w, inst)
	case FormatText:
		if cat == nil {
			cat = i18n.MustNew(i18n.DefaultLang)
		}
		_, err := io.WriteString(w, Sheet(inst, cat))
		return err
	}
	return fmt.Errorf("unknown export format %q", f)
}

type yamlEnvelope struct {
	Kind       instrument.Kind       `yaml:"kind"`
	Score      string                `yaml:"score"`
	Instrument instrument.Instrument `yaml:"instrument"`
}

func writeYAML(w io.Writer, inst instrument.Instrument) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(yamlEnvelope{Kind: inst.Kind(), Score: inst.Score().String(), Instrument: inst}); err != nil {
		return fmt.Errorf("encoding %s as yaml: %w", inst.Kind(), err)
	}
	return enc.Close()
}

// Sheet renders inst as a plain-text sheet: header fields, one table row
// per element in creation order, and the score.
func Sheet(inst instrument.Instrument, cat *i18n.Catalog) string {
	m := inst.Meta()
	var b strings.Builder

	b.WriteString(strings.ToUpper(m.Title) + "\n")
	b.WriteString(cat.KindLabel(inst.Kind()) + "\n\n")
	if m.Subject != "" {
		fmt.Fprintf(&b, "%s: %s\n", cat.T("ui.subject"), m.Subject)
	}
	if m.Level != "" {
		fmt.Fprintf(&b, "%s: %s\n", cat.T("ui.level"), m.Level)
	}
	student := m.Student
	if student == "" {
		student = strings.Repeat("_", 30)
	}
	fmt.Fprintf(&b, "%s: %s\n", cat.T("ui.student"), student)
	if m.Description != "" {
		label := cat.T("ui.description")
		if inst.Kind() == instrument.KindExam {
			label = cat.T("ui.instructions")
		}
		fmt.Fprintf(&b, "%s: %s\n", label, m.Description)
	}
	b.WriteString("\n")

	headers, rows := tableFor(inst, cat)
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		Rows(rows...)
	b.WriteString(t.String())
	b.WriteString("\n\n")

	fmt.Fprintf(&b, "%s: %s\n", cat.T("ui.score"), inst.Score())
	return b.String()
}

func tableFor(inst instrument.Instrument, cat *i18n.Catalog) ([]string, [][]string) {
	switch v := inst.(type) {
	case instrument.Rubric:
		headers := []string{cat.T("ui.criterion"), cat.T("ui.weight")}
		for l := instrument.MaxLevel; l >= 1; l-- {
			headers = append(headers, strconv.Itoa(l))
		}
		headers = append(headers, cat.T("ui.selected"))
		rows := make([][]string, 0, len(v.Criteria))
		for _, c := range v.Criteria {
			row := []string{c.Name, num(c.Weight)}
			for l := instrument.MaxLevel; l >= 1; l-- {
				row = append(row, c.Levels.At(l))
			}
			row = append(row, optInt(c.SelectedLevel))
			rows = append(rows, row)
		}
		return headers, rows

	case instrument.Checklist:
		rows := make([][]string, 0, len(v.Items))
		for i, it := range v.Items {
			mark := "[ ]"
			if it.Checked {
				mark = "[x]"
			}
			rows = append(rows, []string{strconv.Itoa(i + 1), it.Text, mark})
		}
		return []string{"#", cat.T("ui.indicator"), cat.T("ui.done")}, rows

	case instrument.RatingScale:
		rows := make([][]string, 0, len(v.Items))
		for i, it := range v.Items {
			rows = append(rows, []string{strconv.Itoa(i + 1), it.Text, optInt(it.Value)})
		}
		return []string{"#", cat.T("ui.indicator"), cat.T("ui.value") + " (1-" + strconv.Itoa(instrument.MaxRating) + ")"}, rows

	case instrument.ObservationGuide:
		rows := make([][]string, 0, len(v.Aspects))
		for _, a := range v.Aspects {
			rows = append(rows, []string{a.Indicator, a.Description, a.Examples, a.Notes})
		}
		return []string{cat.T("ui.indicator"), cat.T("ui.description"), cat.T("ui.examples"), cat.T("ui.notes")}, rows

	case instrument.Exam:
		rows := make([][]string, 0, len(v.Questions))
		for i, q := range v.Questions {
			obtained := ""
			if q.ObtainedPoints != nil {
				obtained = num(*q.ObtainedPoints)
			}
			rows = append(rows, []string{strconv.Itoa(i + 1), q.Text, cat.QuestionTypeLabel(q.Type), num(q.Points), obtained})
		}
		return []string{"#", cat.T("ui.question"), cat.T("ui.type"), cat.T("ui.points"), cat.T("ui.obtained")}, rows
	}
	return nil, nil
}

func num(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// optInt renders unset (zero) selections as blank.
func optInt(n int) string {
	if n == 0 {
		return ""
	}
	return strconv.Itoa(n)
}
