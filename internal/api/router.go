package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/kyamashiro/ygo-companion/internal/api/handlers"
	"github.com/kyamashiro/ygo-companion/internal/api/response"
)

// setupRoutes configures all API routes.
func (s *Server) setupRoutes() {
	// Health check endpoint (no versioning)
	s.router.Get("/health", s.healthCheck)

	// API v1 routes
	s.router.Route("/api/v1", func(r chi.Router) {
		// Deck routes
		deckHandler := handlers.NewDeckHandler(s.store, s.catalog, s.recommend)
		r.Route("/decks", func(r chi.Router) {
			r.Get("/", deckHandler.GetDecks)
			r.Post("/", deckHandler.CreateDeck)
			r.Post("/import", deckHandler.ImportDeck)
			r.Get("/{deckID}", deckHandler.GetDeck)
			r.Put("/{deckID}", deckHandler.UpdateDeck)
			r.Delete("/{deckID}", deckHandler.DeleteDeck)
			r.Post("/{deckID}/cards", deckHandler.AddCard)
			r.Delete("/{deckID}/cards/{entryID}", deckHandler.RemoveCard)
			r.Post("/{deckID}/cards/move", deckHandler.MoveCard)
			r.Post("/{deckID}/classify", deckHandler.ClassifyDeck)
			r.Post("/{deckID}/export", deckHandler.ExportDeck)
			r.Post("/{deckID}/autocomplete", deckHandler.AutoCompleteDeck)
		})

		// Card catalog routes
		cardHandler := handlers.NewCardHandler(s.catalog, s.archetypes)
		r.Route("/cards", func(r chi.Router) {
			r.Get("/", cardHandler.SearchCards)
			r.Post("/refresh", cardHandler.RefreshCatalog)
			r.Get("/{cardID}", cardHandler.GetCard)
		})

		// Archetype reference routes
		r.Route("/archetypes", func(r chi.Router) {
			r.Get("/", cardHandler.GetArchetypes)
			r.Post("/refresh", cardHandler.RefreshArchetypes)
		})
	})
}

// healthCheck returns server health status.
func (s *Server) healthCheck(w http.ResponseWriter, _ *http.Request) {
	response.JSON(w, http.StatusOK, map[string]interface{}{
		"status":  "healthy",
		"service": "ygo-companion-api",
	})
}
