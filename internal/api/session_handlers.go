package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mrezvani/vocaflash/internal/models"
)

type responseRequest struct {
	Confidence int `json:"confidence" validate:"required,min=1,max=5"`
}

type gotoRequest struct {
	Index int `json:"index" validate:"min=0"`
}

func (s *Server) handleStartSession(w http.ResponseWriter, r *http.Request) {
	collectionID := chi.URLParam(r, "id")

	view, err := s.ReviewService.StartSession(r.Context(), collectionID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, view)
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	view, err := s.ReviewService.GetSession(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, view)
}

func (s *Server) handleSessionSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := s.ReviewService.Summary(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, summary)
}

func (s *Server) handleAbandonSession(w http.ResponseWriter, r *http.Request) {
	if err := s.ReviewService.AbandonSession(r.Context(), chi.URLParam(r, "id")); err != nil {
		handleError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleReveal(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "id")
	cardID := chi.URLParam(r, "cardID")

	if err := s.ReviewService.Reveal(r.Context(), sessionID, cardID); err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "revealed"})
}

func (s *Server) handleRecordResponse(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "id")
	cardID := chi.URLParam(r, "cardID")

	var req responseRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	card, err := s.ReviewService.RecordResponse(r.Context(), sessionID, cardID, models.ConfidenceLevel(req.Confidence))
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, card)
}

func (s *Server) handleResetCard(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "id")
	cardID := chi.URLParam(r, "cardID")

	if err := s.ReviewService.ResetCard(r.Context(), sessionID, cardID); err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "reset"})
}

func (s *Server) handleAdvance(w http.ResponseWriter, r *http.Request) {
	pos, err := s.ReviewService.Advance(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]int{"position": pos})
}

func (s *Server) handlePrevious(w http.ResponseWriter, r *http.Request) {
	pos, err := s.ReviewService.Previous(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]int{"position": pos})
}

func (s *Server) handleGoTo(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "id")

	var req gotoRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	if err := s.ReviewService.GoTo(r.Context(), sessionID, req.Index); err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]int{"position": req.Index})
}
