// Package handlers implements the REST API request handlers.
package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/kyamashiro/ygo-companion/internal/api/response"
	"github.com/kyamashiro/ygo-companion/internal/catalog"
	"github.com/kyamashiro/ygo-companion/internal/deck"
	"github.com/kyamashiro/ygo-companion/internal/deck/ydk"
	"github.com/kyamashiro/ygo-companion/internal/recommend"
)

// defaultDeckName names auto-vivified and unnamed decks.
const defaultDeckName = "New Deck"

// DeckHandler handles deck-related API requests.
type DeckHandler struct {
	store     *deck.Store
	catalog   *catalog.Cache
	recommend *recommend.Client
}

// NewDeckHandler creates a new DeckHandler. The recommendation client
// may be nil; auto-complete then answers 502.
func NewDeckHandler(store *deck.Store, cat *catalog.Cache, rec *recommend.Client) *DeckHandler {
	return &DeckHandler{store: store, catalog: cat, recommend: rec}
}

// writeDeckError maps store sentinel errors to HTTP status codes.
func writeDeckError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, deck.ErrDeckNotFound), errors.Is(err, deck.ErrEntryNotFound):
		response.NotFound(w, err)
	case errors.Is(err, deck.ErrZoneMismatch), errors.Is(err, deck.ErrCopyLimit):
		response.Conflict(w, err)
	case errors.Is(err, deck.ErrInvalidZone), errors.Is(err, deck.ErrInvalidIcon):
		response.BadRequest(w, err)
	default:
		response.InternalError(w, err)
	}
}

// resolved joins a deck copy against the catalog before rendering.
func (h *DeckHandler) resolved(d *deck.Deck) *deck.Deck {
	deck.ResolveCards(d, h.catalog)
	return d
}

// GetDecks returns all decks.
func (h *DeckHandler) GetDecks(w http.ResponseWriter, r *http.Request) {
	decks := h.store.List()
	for _, d := range decks {
		h.resolved(d)
	}
	response.Success(w, decks)
}

// CreateDeckRequest represents a request to create a deck.
type CreateDeckRequest struct {
	ID   string `json:"id,omitempty"`
	Name string `json:"name"`
	Icon string `json:"icon,omitempty"`
}

// CreateDeck creates a new deck. Creation is idempotent by id: posting
// an existing id returns that deck unchanged.
func (h *DeckHandler) CreateDeck(w http.ResponseWriter, r *http.Request) {
	var req CreateDeckRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, errors.New("invalid request body"))
		return
	}

	if req.ID == "" {
		req.ID = uuid.NewString()
	}
	if req.Name == "" {
		req.Name = defaultDeckName
	}

	d, err := h.store.Create(req.ID, req.Name, deck.Icon(req.Icon))
	if err != nil {
		writeDeckError(w, err)
		return
	}

	response.Created(w, h.resolved(d))
}

// GetDeck returns a single deck by id. With ?vivify=true a missing
// deck is created on the spot, mirroring first visit to a deck editor.
func (h *DeckHandler) GetDeck(w http.ResponseWriter, r *http.Request) {
	deckID := chi.URLParam(r, "deckID")
	if deckID == "" {
		response.BadRequest(w, errors.New("deck ID is required"))
		return
	}

	d, err := h.store.Get(deckID)
	if errors.Is(err, deck.ErrDeckNotFound) && r.URL.Query().Get("vivify") == "true" {
		d, err = h.store.Create(deckID, defaultDeckName, deck.IconNone)
	}
	if err != nil {
		writeDeckError(w, err)
		return
	}

	response.Success(w, h.resolved(d))
}

// UpdateDeckRequest represents a request to update deck metadata.
type UpdateDeckRequest struct {
	Name *string `json:"name,omitempty"`
	Icon *string `json:"icon,omitempty"`
}

// UpdateDeck renames a deck or changes its icon.
func (h *DeckHandler) UpdateDeck(w http.ResponseWriter, r *http.Request) {
	deckID := chi.URLParam(r, "deckID")

	var req UpdateDeckRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, errors.New("invalid request body"))
		return
	}

	if req.Name != nil {
		if err := h.store.Rename(deckID, *req.Name); err != nil {
			writeDeckError(w, err)
			return
		}
	}
	if req.Icon != nil {
		if err := h.store.SetIcon(deckID, deck.Icon(*req.Icon)); err != nil {
			writeDeckError(w, err)
			return
		}
	}

	d, err := h.store.Get(deckID)
	if err != nil {
		writeDeckError(w, err)
		return
	}
	response.Success(w, h.resolved(d))
}

// DeleteDeck deletes a deck.
func (h *DeckHandler) DeleteDeck(w http.ResponseWriter, r *http.Request) {
	deckID := chi.URLParam(r, "deckID")
	if err := h.store.Delete(deckID); err != nil {
		writeDeckError(w, err)
		return
	}
	response.NoContent(w)
}

// AddCardRequest adds one card to a zone.
type AddCardRequest struct {
	CardID int    `json:"card_id"`
	Zone   string `json:"zone"`
}

// AddCard adds a card to a deck zone. The card is resolved against the
// catalog; an unknown id becomes a stub entry, tolerated for catalogs
// that have not loaded yet.
func (h *DeckHandler) AddCard(w http.ResponseWriter, r *http.Request) {
	deckID := chi.URLParam(r, "deckID")

	var req AddCardRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, errors.New("invalid request body"))
		return
	}

	card, ok := h.catalog.Get(req.CardID)
	if !ok {
		card = catalog.Stub(req.CardID)
	}

	entry, err := h.store.AddCard(deckID, card, deck.Zone(req.Zone))
	if err != nil {
		writeDeckError(w, err)
		return
	}

	response.Created(w, entry)
}

// RemoveCard removes an entry from a deck zone.
func (h *DeckHandler) RemoveCard(w http.ResponseWriter, r *http.Request) {
	deckID := chi.URLParam(r, "deckID")
	entryID := chi.URLParam(r, "entryID")
	zone := r.URL.Query().Get("zone")

	if err := h.store.RemoveCard(deckID, entryID, deck.Zone(zone)); err != nil {
		writeDeckError(w, err)
		return
	}
	response.NoContent(w)
}

// MoveCardRequest relocates an entry between positions and zones.
type MoveCardRequest struct {
	From     int    `json:"from"`
	To       int    `json:"to"`
	FromZone string `json:"from_zone"`
	ToZone   string `json:"to_zone"`
}

// MoveCard handles drag-and-drop reordering.
func (h *DeckHandler) MoveCard(w http.ResponseWriter, r *http.Request) {
	deckID := chi.URLParam(r, "deckID")

	var req MoveCardRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, errors.New("invalid request body"))
		return
	}

	err := h.store.MoveCard(deckID, req.From, req.To, deck.Zone(req.FromZone), deck.Zone(req.ToZone))
	if err != nil {
		writeDeckError(w, err)
		return
	}

	d, err := h.store.Get(deckID)
	if err != nil {
		writeDeckError(w, err)
		return
	}
	response.Success(w, h.resolved(d))
}

// ClassifyDeck recomputes a deck's archetypes synchronously and
// returns the labels. This is the explicit consistency point; between
// mutations and this call the labels may be stale.
func (h *DeckHandler) ClassifyDeck(w http.ResponseWriter, r *http.Request) {
	deckID := chi.URLParam(r, "deckID")

	labels, err := h.store.Recompute(deckID)
	if err != nil {
		writeDeckError(w, err)
		return
	}
	response.Success(w, labels)
}

// ExportDeckResponse carries the rendered deck list.
type ExportDeckResponse struct {
	Content  string `json:"content"`
	Filename string `json:"filename"`
}

// ExportDeck renders a deck to the text deck list format.
func (h *DeckHandler) ExportDeck(w http.ResponseWriter, r *http.Request) {
	deckID := chi.URLParam(r, "deckID")

	d, err := h.store.Get(deckID)
	if err != nil {
		writeDeckError(w, err)
		return
	}

	response.Success(w, ExportDeckResponse{
		Content:  ydk.Export(d),
		Filename: fmt.Sprintf("%s.ydk", d.Name),
	})
}

// ImportDeckRequest carries a text deck list to import.
type ImportDeckRequest struct {
	ID      string `json:"id,omitempty"`
	Name    string `json:"name,omitempty"`
	Content string `json:"content"`
}

// ImportDeckResponse returns the imported deck and parse warnings.
type ImportDeckResponse struct {
	Deck     *deck.Deck `json:"deck"`
	Warnings []string   `json:"warnings,omitempty"`
}

// ImportDeck parses a deck list and bulk-replaces a (possibly new)
// deck's zones with the parsed card ids.
func (h *DeckHandler) ImportDeck(w http.ResponseWriter, r *http.Request) {
	var req ImportDeckRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, errors.New("invalid request body"))
		return
	}
	if req.Content == "" {
		response.BadRequest(w, errors.New("deck list content is required"))
		return
	}

	if req.ID == "" {
		req.ID = uuid.NewString()
	}
	if req.Name == "" {
		req.Name = defaultDeckName
	}

	parsed := ydk.Parse(req.Content)

	if _, err := h.store.Create(req.ID, req.Name, deck.IconNone); err != nil {
		writeDeckError(w, err)
		return
	}
	if err := h.store.ReplaceZones(req.ID, parsed.Main, parsed.Extra, parsed.Side); err != nil {
		writeDeckError(w, err)
		return
	}

	d, err := h.store.Get(req.ID)
	if err != nil {
		writeDeckError(w, err)
		return
	}

	response.Created(w, ImportDeckResponse{
		Deck:     h.resolved(d),
		Warnings: parsed.Warnings,
	})
}

// AutoCompleteDeck sends the deck's current zones to the
// recommendation service and bulk-replaces them with the response. The
// response shape is authoritative; no validation is applied.
func (h *DeckHandler) AutoCompleteDeck(w http.ResponseWriter, r *http.Request) {
	deckID := chi.URLParam(r, "deckID")

	if h.recommend == nil {
		response.BadGateway(w, errors.New("no recommendation service configured"))
		return
	}

	d, err := h.store.Get(deckID)
	if err != nil {
		writeDeckError(w, err)
		return
	}

	ids := func(entries []deck.Entry) []int {
		out := make([]int, 0, len(entries))
		for _, e := range entries {
			out = append(out, e.Card.ID)
		}
		return out
	}

	rec, err := h.recommend.Complete(r.Context(), &recommend.Request{
		Main:  ids(d.Main),
		Extra: ids(d.Extra),
		Side:  ids(d.Side),
	})
	if err != nil {
		log.Printf("[DeckHandler] Auto-complete failed for deck %s: %v", deckID, err)
		response.BadGateway(w, err)
		return
	}

	if err := h.store.ReplaceZones(deckID, rec.Main, rec.Extra, rec.Side); err != nil {
		writeDeckError(w, err)
		return
	}

	d, err = h.store.Get(deckID)
	if err != nil {
		writeDeckError(w, err)
		return
	}
	response.Success(w, h.resolved(d))
}
