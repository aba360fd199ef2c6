package storage

import (
	"context"
	"strings"
	"time"

	"github.com/kyamashiro/ygo-companion/internal/deck"
	"github.com/kyamashiro/ygo-companion/internal/events"
)

const snapshotSaveTimeout = 5 * time.Second

// Projector yields the reduced deck projection to persist. *deck.Store
// satisfies it.
type Projector interface {
	Project() []deck.ProjectedDeck
}

// SnapshotObserver persists the reduced projection on every deck
// mutation event, so the stored snapshot always reflects the last
// committed state.
type SnapshotObserver struct {
	name      string
	projector Projector
	snapshots *SnapshotStore
}

// NewSnapshotObserver creates an observer that saves the projector's
// state through the given snapshot store.
func NewSnapshotObserver(projector Projector, snapshots *SnapshotStore) *SnapshotObserver {
	return &SnapshotObserver{
		name:      "SnapshotObserver",
		projector: projector,
		snapshots: snapshots,
	}
}

// OnEvent saves the current projection.
func (o *SnapshotObserver) OnEvent(events.Event) error {
	ctx, cancel := context.WithTimeout(context.Background(), snapshotSaveTimeout)
	defer cancel()
	return o.snapshots.Save(ctx, o.projector.Project())
}

// GetName returns the observer's name.
func (o *SnapshotObserver) GetName() string {
	return o.name
}

// ShouldHandle accepts every deck event: creations, renames and
// deletions all change the persisted projection.
func (o *SnapshotObserver) ShouldHandle(eventType string) bool {
	return strings.HasPrefix(eventType, "deck:")
}
