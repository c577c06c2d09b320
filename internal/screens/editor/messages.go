package editor

import (
	"github.com/eduval/eduval/internal/instrument"
)

// generatedMsg reports the end of a generation.
type generatedMsg struct {
	Kind instrument.Kind
	Err  error
}

func (generatedMsg) Background() {}
