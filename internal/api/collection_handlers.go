package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mrezvani/vocaflash/internal/models"
)

type collectionRequest struct {
	Name           string `json:"name" validate:"required"`
	Description    string `json:"description"`
	Level          string `json:"level"`
	Language       string `json:"language"`
	TargetLanguage string `json:"target_language"`
}

func (s *Server) handleListCollections(w http.ResponseWriter, r *http.Request) {
	collections, err := s.CollectionService.ListCollections(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"collections": collections})
}

func (s *Server) handleCreateCollection(w http.ResponseWriter, r *http.Request) {
	var req collectionRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	created, err := s.CollectionService.CreateCollection(r.Context(), models.Collection{
		Name:           req.Name,
		Description:    req.Description,
		Level:          req.Level,
		Language:       req.Language,
		TargetLanguage: req.TargetLanguage,
	})
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, created)
}

func (s *Server) handleGetCollection(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	c, err := s.CollectionService.GetCollection(r.Context(), id)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, c)
}

func (s *Server) handleUpdateCollection(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req collectionRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	err := s.CollectionService.UpdateCollection(r.Context(), models.Collection{
		ID:             id,
		Name:           req.Name,
		Description:    req.Description,
		Level:          req.Level,
		Language:       req.Language,
		TargetLanguage: req.TargetLanguage,
	})
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

func (s *Server) handleDeleteCollection(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := s.CollectionService.DeleteCollection(r.Context(), id); err != nil {
		handleError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
