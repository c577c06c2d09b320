package api

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/eduval/eduval/internal/instrument"
)

type kindKey struct{}

// kindCtx validates the {kind} URL parameter.
func kindCtx(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		kind, err := instrument.ParseKind(chi.URLParam(r, "kind"))
		if err != nil {
			writeJSON(w, http.StatusNotFound, errorBody{Error: err.Error()})
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), kindKey{}, kind)))
	})
}

func kindFrom(r *http.Request) instrument.Kind {
	return r.Context().Value(kindKey{}).(instrument.Kind)
}
