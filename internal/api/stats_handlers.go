package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (s *Server) handleCollectionStats(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if r.URL.Query().Get("refresh") == "true" {
		if err := s.StatsService.RefreshCollectionStats(r.Context(), id); err != nil {
			handleError(w, r, err)
			return
		}
	}

	stats, err := s.StatsService.CollectionStats(r.Context(), id)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, stats)
}
