package catalog

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFileSourceLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cards.json")
	content := `{"data": [
		{"id": 1, "name": "Blue-Eyes White Dragon", "type": "Normal Monster"},
		{"id": 2, "name": "Polymerization", "type": "Spell Card"}
	]}`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	cache := NewCache(nil)
	source := NewFileSource(path, cache)
	if err := source.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cache.Len() != 2 {
		t.Fatalf("expected 2 cards, got %d", cache.Len())
	}
	if !cache.Populated() {
		t.Error("expected cache populated after file load")
	}
	card, ok := cache.Get(1)
	if !ok || card.Name != "Blue-Eyes White Dragon" {
		t.Errorf("unexpected card: %+v", card)
	}
}

func TestFileSourceLoadErrors(t *testing.T) {
	cache := NewCache(nil)

	source := NewFileSource(filepath.Join(t.TempDir(), "missing.json"), cache)
	if err := source.Load(); err == nil {
		t.Error("expected error for missing file")
	}

	path := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(path, []byte("not json"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	source = NewFileSource(path, cache)
	if err := source.Load(); err == nil {
		t.Error("expected error for malformed file")
	}
}
