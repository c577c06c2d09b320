// Package api exposes the workbench over a JSON HTTP API.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"sort"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/eduval/eduval/internal/export"
	"github.com/eduval/eduval/internal/generate"
	"github.com/eduval/eduval/internal/i18n"
	"github.com/eduval/eduval/internal/instrument"
	"github.com/eduval/eduval/internal/workbench"
)

// Handler serves the instrument routes.
type Handler struct {
	wb  *workbench.Workbench
	cat *i18n.Catalog
	log *zap.Logger
}

// New returns a Handler. log may be nil.
func New(wb *workbench.Workbench, cat *i18n.Catalog, log *zap.Logger) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{wb: wb, cat: cat, log: log}
}

// Router returns a chi router with the API mounted under /api.
func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(h.requestLogger)
	r.Route("/api", h.Routes)
	return r
}

// Routes registers the instrument routes on r.
func (h *Handler) Routes(r chi.Router) {
	r.Get("/instruments", h.handleList)
	r.Route("/instruments/{kind}", func(r chi.Router) {
		r.Use(kindCtx)
		r.Get("/", h.handleGet)
		r.Post("/", h.handleCreate)
		r.Patch("/", h.handleSetMeta)
		r.Post("/generate", h.handleGenerate)
		r.Get("/score", h.handleScore)
		r.Get("/export", h.handleExport)
		r.Post("/elements", h.handleAddElement)
		r.Patch("/elements/{id}", h.handleUpdateElement)
		r.Delete("/elements/{id}", h.handleRemoveElement)
	})
}

func (h *Handler) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		h.log.Info("http request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("request_id", middleware.GetReqID(r.Context())),
		)
	})
}

// View is the JSON form of one slot.
type View struct {
	Kind       instrument.Kind       `json:"kind"`
	Label      string                `json:"label"`
	Score      string                `json:"score"`
	InFlight   bool                  `json:"in_flight"`
	Instrument instrument.Instrument `json:"instrument,omitempty"`
}

func (h *Handler) view(kind instrument.Kind, inst instrument.Instrument) View {
	v := View{
		Kind:       kind,
		Label:      h.cat.KindLabel(kind),
		Score:      instrument.Sentinel,
		InFlight:   h.wb.InFlight(kind),
		Instrument: inst,
	}
	if inst != nil {
		v.Score = inst.Score().String()
	}
	return v
}

func (h *Handler) handleList(w http.ResponseWriter, _ *http.Request) {
	snap := h.wb.Snapshot()
	views := make([]View, 0, len(instrument.Kinds))
	for _, k := range instrument.Kinds {
		views = append(views, h.view(k, snap[k]))
	}
	writeJSON(w, http.StatusOK, views)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	kind := kindFrom(r)
	inst, ok := h.wb.Get(kind)
	if !ok {
		h.writeError(w, workbench.ErrSlotEmpty)
		return
	}
	writeJSON(w, http.StatusOK, h.view(kind, inst))
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	kind := kindFrom(r)
	inst, err := h.wb.CreateManual(kind)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, h.view(kind, inst))
}

// metaPatch carries the header fields to change; absent fields are kept.
type metaPatch struct {
	Title       *string `json:"title"`
	Subject     *string `json:"subject"`
	Level       *string `json:"level"`
	Description *string `json:"description"`
	Student     *string `json:"student"`
}

func (p metaPatch) apply(m instrument.Meta) instrument.Meta {
	set := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	set(&m.Title, p.Title)
	set(&m.Subject, p.Subject)
	set(&m.Level, p.Level)
	set(&m.Description, p.Description)
	set(&m.Student, p.Student)
	return m
}

func (h *Handler) handleSetMeta(w http.ResponseWriter, r *http.Request) {
	kind := kindFrom(r)
	var patch metaPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "invalid JSON body: " + err.Error()})
		return
	}
	inst, err := h.wb.Apply(kind, func(cur instrument.Instrument) (instrument.Instrument, error) {
		return cur.WithMeta(patch.apply(cur.Meta())), nil
	})
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, h.view(kind, inst))
}

func (h *Handler) handleGenerate(w http.ResponseWriter, r *http.Request) {
	kind := kindFrom(r)
	var p generate.Params
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "invalid JSON body: " + err.Error()})
		return
	}
	inst, err := h.wb.Generate(r.Context(), kind, p)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, h.view(kind, inst))
}

type scoreBody struct {
	Kind    instrument.Kind `json:"kind"`
	Score   string          `json:"score"`
	Defined bool            `json:"defined"`
	Value   *float64        `json:"value,omitempty"`
}

func (h *Handler) handleScore(w http.ResponseWriter, r *http.Request) {
	kind := kindFrom(r)
	s, err := h.wb.Score(kind)
	if err != nil {
		h.writeError(w, err)
		return
	}
	body := scoreBody{Kind: kind, Score: s.String(), Defined: s.Defined()}
	if v, ok := s.Value(); ok {
		body.Value = &v
	}
	writeJSON(w, http.StatusOK, body)
}

func (h *Handler) handleExport(w http.ResponseWriter, r *http.Request) {
	kind := kindFrom(r)
	f, err := export.ParseFormat(r.URL.Query().Get("format"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: err.Error()})
		return
	}
	inst, ok := h.wb.Get(kind)
	if !ok {
		h.writeError(w, workbench.ErrSlotEmpty)
		return
	}
	w.Header().Set("Content-Type", f.ContentType())
	w.Header().Set("Content-Disposition", `attachment; filename="`+string(kind)+"."+f.Ext()+`"`)
	if err := export.Write(w, inst, f, h.cat); err != nil {
		h.log.Error("export failed", zap.String("kind", string(kind)), zap.Error(err))
	}
}

type elementBody struct {
	ID   string `json:"id"`
	View View   `json:"view"`
}

func (h *Handler) handleAddElement(w http.ResponseWriter, r *http.Request) {
	kind := kindFrom(r)
	inst, id, err := h.wb.AppendBlank(kind)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, elementBody{ID: id, View: h.view(kind, inst)})
}

// handleUpdateElement applies a map of field to text value. All fields
// are applied together or not at all.
func (h *Handler) handleUpdateElement(w http.ResponseWriter, r *http.Request) {
	kind := kindFrom(r)
	id := chi.URLParam(r, "id")

	var fields map[string]string
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "invalid JSON body: " + err.Error()})
		return
	}
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)

	inst, err := h.wb.Apply(kind, func(cur instrument.Instrument) (instrument.Instrument, error) {
		next := cur
		for _, name := range names {
			var err error
			if next, err = instrument.SetField(next, id, name, fields[name]); err != nil {
				return nil, err
			}
		}
		return next, nil
	})
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, elementBody{ID: id, View: h.view(kind, inst)})
}

func (h *Handler) handleRemoveElement(w http.ResponseWriter, r *http.Request) {
	kind := kindFrom(r)
	inst, err := h.wb.Remove(kind, chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, h.view(kind, inst))
}

type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// writeError maps workbench and instrument errors to HTTP statuses. The
// message field carries the localized notification.
func (h *Handler) writeError(w http.ResponseWriter, err error) {
	var (
		fe *instrument.FieldError
		te *generate.TransportError
		me *generate.MappingError
	)
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, workbench.ErrSlotEmpty):
		status = http.StatusNotFound
	case errors.Is(err, workbench.ErrSlotPopulated), errors.Is(err, workbench.ErrGenerationInFlight):
		status = http.StatusConflict
	case errors.Is(err, workbench.ErrMissingParams), errors.As(err, &fe):
		status = http.StatusBadRequest
	case errors.As(err, &te), errors.As(err, &me):
		status = http.StatusBadGateway
	}
	writeJSON(w, status, errorBody{
		Error:   err.Error(),
		Message: h.cat.T(workbench.NotificationFor(err).MessageID),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
