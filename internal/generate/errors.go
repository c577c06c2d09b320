package generate

import (
	"fmt"

	"github.com/eduval/eduval/internal/instrument"
)

// MappingError reports a reply that could not be turned into an
// instrument: malformed JSON, a missing or ill-typed element list, or an
// unknown question type.
type MappingError struct {
	Kind instrument.Kind
	Err  error
}

func (e *MappingError) Error() string {
	return fmt.Sprintf("mapping %s response: %v", e.Kind, e.Err)
}

func (e *MappingError) Unwrap() error { return e.Err }

// TransportError reports a failure of the AI collaborator itself.
type TransportError struct {
	Kind instrument.Kind
	Err  error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("generating %s: %v", e.Kind, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }
