package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/kyamashiro/ygo-companion/internal/archetype"
	"github.com/kyamashiro/ygo-companion/internal/catalog"
)

func newCardRouter(cache *catalog.Cache, ref *archetype.ReferenceList) *chi.Mux {
	h := NewCardHandler(cache, ref)
	r := chi.NewRouter()
	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/cards", func(r chi.Router) {
			r.Get("/", h.SearchCards)
			r.Post("/refresh", h.RefreshCatalog)
			r.Get("/{cardID}", h.GetCard)
		})
		r.Route("/archetypes", func(r chi.Router) {
			r.Get("/", h.GetArchetypes)
			r.Post("/refresh", h.RefreshArchetypes)
		})
	})
	return r
}

func archetypeServer(t *testing.T, names string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(names))
	}))
	t.Cleanup(server.Close)
	return server
}

func TestSearchCardsEndpoint(t *testing.T) {
	server := archetypeServer(t, `["Blue-Eyes"]`)
	router := newCardRouter(testCatalog(), archetype.NewReferenceList(server.URL))

	w := doJSON(t, router, http.MethodGet, "/api/v1/cards?q=blue-eyes", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var got struct {
		Cards []catalog.Card `json:"cards"`
		Count int            `json:"count"`
	}
	decodeData(t, w, &got)
	if got.Count != 2 || len(got.Cards) != 2 {
		t.Errorf("expected 2 results, got %+v", got)
	}
}

func TestSearchCardsRequiresQuery(t *testing.T) {
	server := archetypeServer(t, `[]`)
	router := newCardRouter(testCatalog(), archetype.NewReferenceList(server.URL))

	w := doJSON(t, router, http.MethodGet, "/api/v1/cards", nil)
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestGetCardEndpoint(t *testing.T) {
	server := archetypeServer(t, `[]`)
	router := newCardRouter(testCatalog(), archetype.NewReferenceList(server.URL))

	w := doJSON(t, router, http.MethodGet, "/api/v1/cards/46986414", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var card catalog.Card
	decodeData(t, w, &card)
	if card.Name != "Dark Magician" {
		t.Errorf("unexpected card: %+v", card)
	}

	w = doJSON(t, router, http.MethodGet, "/api/v1/cards/999", nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404 for unknown id, got %d", w.Code)
	}

	w = doJSON(t, router, http.MethodGet, "/api/v1/cards/abc", nil)
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for non-numeric id, got %d", w.Code)
	}
}

func TestGetArchetypesEndpoint(t *testing.T) {
	server := archetypeServer(t, `["Blue-Eyes", "Madolche"]`)
	router := newCardRouter(testCatalog(), archetype.NewReferenceList(server.URL))

	w := doJSON(t, router, http.MethodGet, "/api/v1/archetypes", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var got struct {
		Archetypes []string `json:"archetypes"`
		Count      int      `json:"count"`
	}
	decodeData(t, w, &got)
	if got.Count != 2 || len(got.Archetypes) != 2 {
		t.Errorf("unexpected archetypes: %+v", got)
	}
}

func TestRefreshArchetypesEndpoint(t *testing.T) {
	healthy := true
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !healthy {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte(`["Eldlich"]`))
	}))
	defer server.Close()

	router := newCardRouter(testCatalog(), archetype.NewReferenceList(server.URL))

	w := doJSON(t, router, http.MethodPost, "/api/v1/archetypes/refresh", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	healthy = false
	w = doJSON(t, router, http.MethodPost, "/api/v1/archetypes/refresh", nil)
	if w.Code != http.StatusBadGateway {
		t.Errorf("expected 502 on upstream failure, got %d", w.Code)
	}
}
