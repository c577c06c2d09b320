package server

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/eduval/eduval/internal/i18n"
	"github.com/eduval/eduval/internal/workbench"
)

func TestNewRegistersAllTools(t *testing.T) {
	cat := i18n.MustNew("en")
	s := New(workbench.New(nil, cat.Placeholders(), nil), cat, "test")

	var names []string
	for name := range s.ListTools() {
		names = append(names, name)
	}
	sort.Strings(names)

	assert.Equal(t, []string{
		"instrument_add_element",
		"instrument_create",
		"instrument_generate",
		"instrument_remove_element",
		"instrument_score",
		"instrument_set_meta",
		"instrument_show",
		"instrument_update_element",
	}, names)
}
