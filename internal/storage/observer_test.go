package storage

import (
	"context"
	"testing"

	"github.com/kyamashiro/ygo-companion/internal/deck"
	"github.com/kyamashiro/ygo-companion/internal/events"
)

type stubProjector struct {
	decks []deck.ProjectedDeck
}

func (p *stubProjector) Project() []deck.ProjectedDeck { return p.decks }

func TestSnapshotObserverPersistsOnEvent(t *testing.T) {
	snapshots := NewSnapshotStore(testDB(t), nil)
	projector := &stubProjector{decks: sampleProjection()}
	observer := NewSnapshotObserver(projector, snapshots)

	if err := observer.OnEvent(events.Event{Type: events.DeckUpdated, DeckID: "deck-1"}); err != nil {
		t.Fatalf("OnEvent failed: %v", err)
	}

	got, found, err := snapshots.Load(context.Background())
	if err != nil || !found {
		t.Fatalf("Load failed: found=%v err=%v", found, err)
	}
	if len(got) != 2 {
		t.Errorf("expected projection persisted, got %d decks", len(got))
	}
}

func TestSnapshotObserverHandlesDeckEventsOnly(t *testing.T) {
	observer := NewSnapshotObserver(&stubProjector{}, nil)

	for _, typ := range []string{events.DeckCreated, events.DeckUpdated, events.DeckRenamed, events.DeckDeleted} {
		if !observer.ShouldHandle(typ) {
			t.Errorf("expected %s handled", typ)
		}
	}
	if observer.ShouldHandle("catalog:refreshed") {
		t.Error("expected non-deck events ignored")
	}
}
