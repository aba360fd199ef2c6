package deck

import (
	"errors"
	"log"
	"sync"
	"time"

	"github.com/bep/debounce"

	"github.com/kyamashiro/ygo-companion/internal/events"
)

// DefaultRecomputeDelay is how long the recompute observer waits after
// the last mutation before reclassifying a deck.
const DefaultRecomputeDelay = 250 * time.Millisecond

// RecomputeObserver reclassifies a deck's archetypes after it changes,
// debounced per deck so a burst of drag-and-drop mutations triggers one
// recompute. This reproduces the original eventual-consistency contract
// for callers that never call Recompute themselves.
type RecomputeObserver struct {
	name  string
	store *Store
	delay time.Duration

	mu         sync.Mutex
	debouncers map[string]func(func())
}

// NewRecomputeObserver creates a recompute observer for the store. A
// non-positive delay selects DefaultRecomputeDelay.
func NewRecomputeObserver(store *Store, delay time.Duration) *RecomputeObserver {
	if delay <= 0 {
		delay = DefaultRecomputeDelay
	}
	return &RecomputeObserver{
		name:       "RecomputeObserver",
		store:      store,
		delay:      delay,
		debouncers: make(map[string]func(func())),
	}
}

// OnEvent schedules a debounced recompute for the updated deck, and
// drops the deck's debouncer on deletion.
func (o *RecomputeObserver) OnEvent(event events.Event) error {
	switch event.Type {
	case events.DeckUpdated:
		o.debouncer(event.DeckID)(func() {
			if _, err := o.store.Recompute(event.DeckID); err != nil {
				// The deck can be deleted between the mutation and the
				// debounced callback; that race is expected.
				if !errors.Is(err, ErrDeckNotFound) {
					log.Printf("[%s] Recompute failed for deck %s: %v", o.name, event.DeckID, err)
				}
			}
		})

	case events.DeckDeleted:
		o.mu.Lock()
		delete(o.debouncers, event.DeckID)
		o.mu.Unlock()
	}
	return nil
}

func (o *RecomputeObserver) debouncer(deckID string) func(func()) {
	o.mu.Lock()
	defer o.mu.Unlock()

	d, ok := o.debouncers[deckID]
	if !ok {
		d = debounce.New(o.delay)
		o.debouncers[deckID] = d
	}
	return d
}

// GetName returns the observer's name.
func (o *RecomputeObserver) GetName() string {
	return o.name
}

// ShouldHandle accepts updates and deletions.
func (o *RecomputeObserver) ShouldHandle(eventType string) bool {
	return eventType == events.DeckUpdated || eventType == events.DeckDeleted
}
