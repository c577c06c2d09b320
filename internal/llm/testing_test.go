package llm

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

// checklistSchema mirrors the shape of a generated checklist.
func checklistSchema() *Schema {
	return &Schema{
		Name:        "test-checklist",
		Description: "A checklist",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"title": map[string]any{"type": "string"},
				"items": map[string]any{
					"type":  "array",
					"items": map[string]any{"type": "string"},
				},
			},
			"required":             []string{"title", "items"},
			"additionalProperties": false,
		},
	}
}

const checklistJSON = `{"title":"Reading aloud","items":["Reads fluently","Respects punctuation"]}`

func jsonServer(t *testing.T, status int, body any) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		json.NewEncoder(w).Encode(body)
	}))
	t.Cleanup(srv.Close)
	return srv
}
