package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/kyamashiro/ygo-companion/internal/api/response"
	"github.com/kyamashiro/ygo-companion/internal/archetype"
	"github.com/kyamashiro/ygo-companion/internal/catalog"
)

// CardHandler handles card catalog API requests.
type CardHandler struct {
	catalog    *catalog.Cache
	archetypes *archetype.ReferenceList
}

// NewCardHandler creates a new card handler.
func NewCardHandler(cache *catalog.Cache, ref *archetype.ReferenceList) *CardHandler {
	return &CardHandler{
		catalog:    cache,
		archetypes: ref,
	}
}

// SearchCards handles GET /api/v1/cards?q=
func (h *CardHandler) SearchCards(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		response.BadRequest(w, errors.New("query parameter 'q' is required"))
		return
	}

	cards := h.catalog.SearchByName(query)
	response.Success(w, map[string]interface{}{
		"cards": cards,
		"count": len(cards),
	})
}

// GetCard handles GET /api/v1/cards/{cardID}
func (h *CardHandler) GetCard(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "cardID"))
	if err != nil {
		response.BadRequest(w, errors.New("card ID must be numeric"))
		return
	}

	card, ok := h.catalog.Get(id)
	if !ok {
		response.NotFound(w, errors.New("card not found"))
		return
	}

	response.Success(w, card)
}

// RefreshCatalog handles POST /api/v1/cards/refresh
func (h *CardHandler) RefreshCatalog(w http.ResponseWriter, r *http.Request) {
	h.catalog.Reset()
	if err := h.catalog.FetchAll(r.Context()); err != nil {
		log.Printf("[API] Catalog refresh failed: %v", err)
		response.BadGateway(w, errors.New("failed to refresh card catalog"))
		return
	}

	response.Success(w, map[string]interface{}{
		"count": h.catalog.Len(),
	})
}

// GetArchetypes handles GET /api/v1/archetypes
func (h *CardHandler) GetArchetypes(w http.ResponseWriter, r *http.Request) {
	names := h.archetypes.Names()
	response.Success(w, map[string]interface{}{
		"archetypes": names,
		"count":      len(names),
	})
}

// RefreshArchetypes handles POST /api/v1/archetypes/refresh
func (h *CardHandler) RefreshArchetypes(w http.ResponseWriter, r *http.Request) {
	if err := h.archetypes.Refresh(r.Context()); err != nil {
		log.Printf("[API] Archetype refresh failed: %v", err)
		response.BadGateway(w, errors.New("failed to refresh archetype list"))
		return
	}

	names := h.archetypes.Names()
	response.Success(w, map[string]interface{}{
		"archetypes": names,
		"count":      len(names),
	})
}
