// Package workbench owns the five instrument slots a teacher edits, one
// per kind, and coordinates manual creation, AI generation and edits.
// It is safe for concurrent use.
package workbench

import (
	"context"
	"errors"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/eduval/eduval/internal/generate"
	"github.com/eduval/eduval/internal/instrument"
)

var (
	// ErrSlotEmpty is returned when editing a kind that was never created.
	ErrSlotEmpty = errors.New("instrument not created yet")

	// ErrSlotPopulated is returned by CreateManual on an existing instrument.
	ErrSlotPopulated = errors.New("instrument already exists")

	// ErrGenerationInFlight is returned when a generation for the same
	// kind is already running.
	ErrGenerationInFlight = errors.New("generation already in progress")

	// ErrMissingParams is returned when level, subject or topic is blank.
	ErrMissingParams = errors.New("level, subject and topic are required")
)

// Generator produces instruments from a description.
type Generator interface {
	Generate(ctx context.Context, kind instrument.Kind, p generate.Params) (instrument.Instrument, error)
}

// Workbench holds one optional instrument per kind.
type Workbench struct {
	gen          Generator
	placeholders instrument.Placeholders
	log          *zap.Logger

	mu       sync.RWMutex
	slots    map[instrument.Kind]instrument.Instrument
	inflight map[instrument.Kind]bool
}

// New returns an empty workbench. gen may be nil when generation is not
// configured; Generate then fails with a TransportError.
func New(gen Generator, p instrument.Placeholders, log *zap.Logger) *Workbench {
	if log == nil {
		log = zap.NewNop()
	}
	return &Workbench{
		gen:          gen,
		placeholders: p,
		log:          log,
		slots:        make(map[instrument.Kind]instrument.Instrument),
		inflight:     make(map[instrument.Kind]bool),
	}
}

// Placeholders returns the texts used for blank instruments and elements.
func (w *Workbench) Placeholders() instrument.Placeholders {
	return w.placeholders
}

// CreateManual fills an empty slot with a blank instrument holding one
// placeholder element.
func (w *Workbench) CreateManual(kind instrument.Kind) (instrument.Instrument, error) {
	if _, err := instrument.ParseKind(string(kind)); err != nil {
		return nil, err
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if _, ok := w.slots[kind]; ok {
		return nil, ErrSlotPopulated
	}
	inst, err := instrument.NewBlank(kind, w.placeholders)
	if err != nil {
		return nil, err
	}
	w.slots[kind] = inst
	w.log.Info("instrument created", zap.String("kind", string(kind)))
	return inst, nil
}

// Generate asks the generator for a new instrument and, on success,
// replaces the slot wholesale. The slot is not locked while the generator
// runs; on failure it is left untouched.
func (w *Workbench) Generate(ctx context.Context, kind instrument.Kind, p generate.Params) (instrument.Instrument, error) {
	if _, err := instrument.ParseKind(string(kind)); err != nil {
		return nil, err
	}
	if blank(p.Level) || blank(p.Subject) || blank(p.Topic) {
		return nil, ErrMissingParams
	}

	w.mu.Lock()
	if w.inflight[kind] {
		w.mu.Unlock()
		return nil, ErrGenerationInFlight
	}
	w.inflight[kind] = true
	w.mu.Unlock()

	defer func() {
		w.mu.Lock()
		delete(w.inflight, kind)
		w.mu.Unlock()
	}()

	if w.gen == nil {
		return nil, &generate.TransportError{Kind: kind, Err: errors.New("no AI provider configured")}
	}

	// The generator logs its own failures.
	inst, err := w.gen.Generate(ctx, kind, p)
	if err != nil {
		return nil, err
	}

	w.mu.Lock()
	w.slots[kind] = inst
	w.mu.Unlock()
	return inst, nil
}

// Apply replaces the instrument with fn's result. fn runs under the
// workbench lock and must not call back into the workbench.
func (w *Workbench) Apply(kind instrument.Kind, fn func(instrument.Instrument) (instrument.Instrument, error)) (instrument.Instrument, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	cur, ok := w.slots[kind]
	if !ok {
		return nil, ErrSlotEmpty
	}
	next, err := fn(cur)
	if err != nil {
		return cur, err
	}
	w.slots[kind] = next
	return next, nil
}

// AppendBlank adds the kind's default element and returns its ID.
func (w *Workbench) AppendBlank(kind instrument.Kind) (instrument.Instrument, string, error) {
	var id string
	inst, err := w.Apply(kind, func(cur instrument.Instrument) (instrument.Instrument, error) {
		next, newID := cur.AppendBlank(w.placeholders)
		id = newID
		return next, nil
	})
	return inst, id, err
}

// Remove drops one element. Removing the last element leaves an empty
// but still populated instrument.
func (w *Workbench) Remove(kind instrument.Kind, id string) (instrument.Instrument, error) {
	return w.Apply(kind, func(cur instrument.Instrument) (instrument.Instrument, error) {
		return cur.RemoveElement(id), nil
	})
}

// SetField updates one element field from its text form.
func (w *Workbench) SetField(kind instrument.Kind, id, field, value string) (instrument.Instrument, error) {
	return w.Apply(kind, func(cur instrument.Instrument) (instrument.Instrument, error) {
		return instrument.SetField(cur, id, field, value)
	})
}

// SetMeta replaces the header.
func (w *Workbench) SetMeta(kind instrument.Kind, m instrument.Meta) (instrument.Instrument, error) {
	return w.Apply(kind, func(cur instrument.Instrument) (instrument.Instrument, error) {
		return cur.WithMeta(m), nil
	})
}

// Get returns the current instrument, if any.
func (w *Workbench) Get(kind instrument.Kind) (instrument.Instrument, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	inst, ok := w.slots[kind]
	return inst, ok
}

// Score returns the current score of a populated slot.
func (w *Workbench) Score(kind instrument.Kind) (instrument.Score, error) {
	inst, ok := w.Get(kind)
	if !ok {
		return instrument.Undefined, ErrSlotEmpty
	}
	return inst.Score(), nil
}

// InFlight reports whether a generation for kind is running.
func (w *Workbench) InFlight(kind instrument.Kind) bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.inflight[kind]
}

// Snapshot returns the populated slots. Instruments are values, so the
// map can be read without further locking.
func (w *Workbench) Snapshot() map[instrument.Kind]instrument.Instrument {
	w.mu.RLock()
	defer w.mu.RUnlock()
	out := make(map[instrument.Kind]instrument.Instrument, len(w.slots))
	for k, v := range w.slots {
		out[k] = v
	}
	return out
}

// Load puts an instrument read from a file into its slot, replacing any
// existing one.
func (w *Workbench) Load(inst instrument.Instrument) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.slots[inst.Kind()] = inst
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}
