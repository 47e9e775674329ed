package analytics

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/doctrove/doctrove/internal/registry"
)

// RegisterRoutes wires up the analytics endpoints.
func RegisterRoutes(r chi.Router, store *registry.Store) {
	r.Route("/analytics", func(r chi.Router) {
		r.Get("/document-types", func(w http.ResponseWriter, _ *http.Request) {
			writeJSON(w, DocumentTypes(store))
		})
		r.Get("/entity-distribution", func(w http.ResponseWriter, _ *http.Request) {
			writeJSON(w, EntityDistribution(store))
		})
		r.Get("/keyword-frequency", func(w http.ResponseWriter, _ *http.Request) {
			writeJSON(w, Keywords(store))
		})
		r.Get("/document-stats", func(w http.ResponseWriter, _ *http.Request) {
			writeJSON(w, DocumentStats(store))
		})
	})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("encoding response: %v", err)
	}
}
