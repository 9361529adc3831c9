package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mrezvani/vocaflash/internal/models"
)

type cardRequest struct {
	Front        string                `json:"front" validate:"required"`
	FrontCore    string                `json:"front_core"`
	Back         string                `json:"back" validate:"required"`
	BackCore     string                `json:"back_core"`
	CardType     models.CardType       `json:"card_type"`
	PartOfSpeech models.PartOfSpeech   `json:"part_of_speech"`
	Definition   string                `json:"definition"`
	Synonyms     []string              `json:"synonyms"`
	Antonyms     []string              `json:"antonyms"`
	Examples     []models.UsageExample `json:"examples"`
	ImageURL     string                `json:"image_url"`
	AudioURL     string                `json:"audio_url"`
	Notes        string                `json:"notes"`
}

func (req cardRequest) toCard() models.Card {
	return models.Card{
		Front:        req.Front,
		FrontCore:    req.FrontCore,
		Back:         req.Back,
		BackCore:     req.BackCore,
		CardType:     req.CardType,
		PartOfSpeech: req.PartOfSpeech,
		Definition:   req.Definition,
		Synonyms:     req.Synonyms,
		Antonyms:     req.Antonyms,
		Examples:     req.Examples,
		ImageURL:     req.ImageURL,
		AudioURL:     req.AudioURL,
		Notes:        req.Notes,
	}
}

func (s *Server) handleAddCard(w http.ResponseWriter, r *http.Request) {
	collectionID := chi.URLParam(r, "id")

	var req cardRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	created, err := s.CardService.AddCard(r.Context(), collectionID, req.toCard())
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, created)
}

func (s *Server) handleGetCard(w http.ResponseWriter, r *http.Request) {
	collectionID := chi.URLParam(r, "id")
	cardID := chi.URLParam(r, "cardID")

	card, err := s.CardService.GetCard(r.Context(), collectionID, cardID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, card)
}

func (s *Server) handleListCards(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := models.CardFilter{
		CollectionID:   chi.URLParam(r, "id"),
		CardType:       models.CardType(q.Get("card_type")),
		LearningStatus: models.LearningStatus(q.Get("status")),
		Search:         q.Get("search"),
		Limit:          queryInt(r, "limit", 0),
		Offset:         queryInt(r, "offset", 0),
	}
	if q.Get("due") == "true" {
		filter.DueBefore = nowMilli()
	}

	cards, err := s.CardService.ListCards(r.Context(), filter)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"cards": cards})
}

func (s *Server) handleUpdateCard(w http.ResponseWriter, r *http.Request) {
	collectionID := chi.URLParam(r, "id")
	cardID := chi.URLParam(r, "cardID")

	var req cardRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	updated, err := s.CardService.UpdateCardContent(r.Context(), collectionID, cardID, req.toCard())
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, updated)
}

func (s *Server) handleDeleteCard(w http.ResponseWriter, r *http.Request) {
	collectionID := chi.URLParam(r, "id")
	cardID := chi.URLParam(r, "cardID")

	if err := s.CardService.DeleteCard(r.Context(), collectionID, cardID); err != nil {
		handleError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleCardHistory(w http.ResponseWriter, r *http.Request) {
	cardID := chi.URLParam(r, "cardID")
	limit := queryInt(r, "limit", 50)

	events, err := s.CardService.ReviewHistory(r.Context(), cardID, limit)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"history": events})
}
