package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mrezvani/vocaflash/internal/services"
)

// Server holds the HTTP handler dependencies.
type Server struct {
	CollectionService services.CollectionService
	CardService       services.CardService
	ReviewService     services.ReviewService
	StatsService      services.StatsService
}

// Routes builds the router.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(recoveryMiddleware)
	r.Use(loggingMiddleware)

	r.Get("/healthz", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Route("/collections", func(r chi.Router) {
			r.Get("/", s.handleListCollections)
			r.Post("/", s.handleCreateCollection)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", s.handleGetCollection)
				r.Put("/", s.handleUpdateCollection)
				r.Delete("/", s.handleDeleteCollection)
				r.Get("/stats", s.handleCollectionStats)
				r.Get("/cards", s.handleListCards)
				r.Post("/cards", s.handleAddCard)
				r.Route("/cards/{cardID}", func(r chi.Router) {
					r.Get("/", s.handleGetCard)
					r.Put("/", s.handleUpdateCard)
					r.Delete("/", s.handleDeleteCard)
					r.Get("/history", s.handleCardHistory)
				})
				r.Post("/sessions", s.handleStartSession)
			})
		})

		r.Route("/sessions/{id}", func(r chi.Router) {
			r.Get("/", s.handleGetSession)
			r.Get("/summary", s.handleSessionSummary)
			r.Delete("/", s.handleAbandonSession)
			r.Post("/advance", s.handleAdvance)
			r.Post("/previous", s.handlePrevious)
			r.Post("/goto", s.handleGoTo)
			r.Route("/cards/{cardID}", func(r chi.Router) {
				r.Post("/reveal", s.handleReveal)
				r.Post("/response", s.handleRecordResponse)
				r.Post("/reset", s.handleResetCard)
			})
		})
	})

	return r
}
