package api

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/kyamashiro/ygo-companion/internal/archetype"
	"github.com/kyamashiro/ygo-companion/internal/catalog"
	"github.com/kyamashiro/ygo-companion/internal/deck"
)

func newTestServer() *Server {
	cache := catalog.NewCache(nil)
	cache.SetAll([]catalog.Card{{ID: 1, Name: "Dark Magician", Type: "Normal Monster"}})

	return NewServer(DefaultConfig(), Deps{
		Store:      deck.NewStore(nil, nil),
		Catalog:    cache,
		Archetypes: archetype.NewReferenceList("http://invalid.localhost"),
		Recommend:  nil,
	})
}

func TestHealthCheck(t *testing.T) {
	server := newTestServer()

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	server.Handler().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "healthy") {
		t.Errorf("unexpected body: %s", w.Body.String())
	}
}

func TestContentTypeEnforcement(t *testing.T) {
	server := newTestServer()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/decks", strings.NewReader(`{"name":"Test"}`))
	req.Header.Set("Content-Type", "text/plain")
	w := httptest.NewRecorder()
	server.Handler().ServeHTTP(w, req)

	if w.Code != http.StatusUnsupportedMediaType {
		t.Errorf("expected 415, got %d", w.Code)
	}

	req = httptest.NewRequest(http.MethodPost, "/api/v1/decks", strings.NewReader(`{"name":"Test"}`))
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	server.Handler().ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Errorf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
}

func TestRoutesWired(t *testing.T) {
	server := newTestServer()

	tests := []struct {
		method string
		path   string
		status int
	}{
		{http.MethodGet, "/api/v1/decks", http.StatusOK},
		{http.MethodGet, "/api/v1/decks/missing", http.StatusNotFound},
		{http.MethodGet, "/api/v1/cards?q=dark", http.StatusOK},
		{http.MethodGet, "/api/v1/cards/1", http.StatusOK},
		{http.MethodGet, "/api/v1/archetypes", http.StatusOK},
	}

	for _, tt := range tests {
		req := httptest.NewRequest(tt.method, tt.path, nil)
		w := httptest.NewRecorder()
		server.Handler().ServeHTTP(w, req)
		if w.Code != tt.status {
			t.Errorf("%s %s: expected %d, got %d", tt.method, tt.path, tt.status, w.Code)
		}
	}
}
