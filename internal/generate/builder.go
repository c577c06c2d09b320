// Package generate turns a level/subject/topic description into a
// complete instrument: it builds the AI request, calls the provider and
// maps the structured reply onto the instrument types.
package generate

import (
	"github.com/eduval/eduval/internal/i18n"
	"github.com/eduval/eduval/internal/instrument"
	"github.com/eduval/eduval/internal/llm"
)

// Builder produces generation requests. It is deterministic and does not
// validate its inputs; callers check for empty parameters.
type Builder struct {
	cat *i18n.Catalog
}

// NewBuilder returns a Builder producing prompts in the catalog's language.
func NewBuilder(cat *i18n.Catalog) *Builder {
	return &Builder{cat: cat}
}

// Build returns the system prompt, user prompt and response schema for
// one instrument kind.
func (b *Builder) Build(kind instrument.Kind, level, subject, topic string) llm.Request {
	return llm.Request{
		System: b.cat.T("system_prompt"),
		Prompt: b.cat.Td("prompt."+string(kind), map[string]any{
			"Level":   level,
			"Subject": subject,
			"Topic":   topic,
		}),
		Schema: schemaFor(kind, b.cat.T("schema.examples")),
	}
}
