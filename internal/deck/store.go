package deck

import (
	"sync"

	"github.com/google/uuid"

	"github.com/kyamashiro/ygo-companion/internal/catalog"
	"github.com/kyamashiro/ygo-companion/internal/events"
)

// Copy limits counted across a card's home zone plus side.
const (
	maxCopies      = 3
	maxExtraCopies = 1
)

// Classifier derives a deck's dominant archetype labels from the
// resolved-or-stub cards of its main and extra zones.
type Classifier interface {
	Classify(cards []catalog.Card) []string
}

// Store owns the authoritative deck collection. All mutations are
// atomic under its lock; events are dispatched after the lock is
// released so observers see committed state.
//
// Archetypes are eventually consistent: mutations mark a deck dirty
// and Recompute (called explicitly, or by the debounced recompute
// observer) brings the labels back in line.
type Store struct {
	mu         sync.Mutex
	decks      []*Deck
	index      map[string]*Deck
	classifier Classifier
	dispatcher *events.Dispatcher
}

// NewStore creates an empty deck store. Both classifier and dispatcher
// may be nil; a nil classifier makes Recompute a no-op and a nil
// dispatcher suppresses events.
func NewStore(classifier Classifier, dispatcher *events.Dispatcher) *Store {
	return &Store{
		index:      make(map[string]*Deck),
		classifier: classifier,
		dispatcher: dispatcher,
	}
}

func (s *Store) dispatch(eventType, deckID string) {
	if s.dispatcher != nil {
		s.dispatcher.Dispatch(events.Event{Type: eventType, DeckID: deckID})
	}
}

// Create adds a new empty deck. Idempotent by id: if the deck already
// exists the call is a no-op and the existing deck (with its original
// name) is returned.
func (s *Store) Create(id, name string, icon Icon) (*Deck, error) {
	if !ValidIcon(icon) {
		icon = IconNone
	}

	s.mu.Lock()
	if existing, ok := s.index[id]; ok {
		out := existing.clone()
		s.mu.Unlock()
		return out, nil
	}

	d := &Deck{
		ID:         id,
		Name:       name,
		Icon:       icon,
		Main:       []Entry{},
		Extra:      []Entry{},
		Side:       []Entry{},
		Archetypes: []string{"New"},
	}
	s.decks = append(s.decks, d)
	s.index[id] = d
	out := d.clone()
	s.mu.Unlock()

	s.dispatch(events.DeckCreated, id)
	return out, nil
}

// Get returns a copy of the deck with the given id.
func (s *Store) Get(id string) (*Deck, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	d, ok := s.index[id]
	if !ok {
		return nil, ErrDeckNotFound
	}
	return d.clone(), nil
}

// List returns copies of all decks in creation order.
func (s *Store) List() []*Deck {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]*Deck, 0, len(s.decks))
	for _, d := range s.decks {
		out = append(out, d.clone())
	}
	return out
}

// Rename changes a deck's display name.
func (s *Store) Rename(id, name string) error {
	s.mu.Lock()
	d, ok := s.index[id]
	if !ok {
		s.mu.Unlock()
		return ErrDeckNotFound
	}
	d.Name = name
	s.mu.Unlock()

	s.dispatch(events.DeckRenamed, id)
	return nil
}

// SetIcon changes a deck's icon tag.
func (s *Store) SetIcon(id string, icon Icon) error {
	if !ValidIcon(icon) {
		return ErrInvalidIcon
	}

	s.mu.Lock()
	d, ok := s.index[id]
	if !ok {
		s.mu.Unlock()
		return ErrDeckNotFound
	}
	d.Icon = icon
	s.mu.Unlock()

	s.dispatch(events.DeckRenamed, id)
	return nil
}

// Delete removes a deck entirely.
func (s *Store) Delete(id string) error {
	s.mu.Lock()
	if _, ok := s.index[id]; !ok {
		s.mu.Unlock()
		return ErrDeckNotFound
	}
	delete(s.index, id)
	for i, d := range s.decks {
		if d.ID == id {
			s.decks = append(s.decks[:i], s.decks[i+1:]...)
			break
		}
	}
	s.mu.Unlock()

	s.dispatch(events.DeckDeleted, id)
	return nil
}

// zoneAllows reports whether the card's type is legal in the zone.
func zoneAllows(card catalog.Card, zone Zone) bool {
	switch zone {
	case ZoneMain:
		return !card.IsExtraDeck()
	case ZoneExtra:
		return card.IsExtraDeck()
	case ZoneSide:
		return true
	}
	return false
}

// AddCard appends a new entry for the card to the given zone,
// generating a fresh entry id. It enforces zone/type compatibility and
// the per-card copy limit and marks the deck's archetypes dirty.
func (s *Store) AddCard(deckID string, card catalog.Card, zone Zone) (Entry, error) {
	if _, err := ParseZone(string(zone)); err != nil {
		return Entry{}, err
	}

	s.mu.Lock()
	d, ok := s.index[deckID]
	if !ok {
		s.mu.Unlock()
		return Entry{}, ErrDeckNotFound
	}

	if !zoneAllows(card, zone) {
		s.mu.Unlock()
		return Entry{}, ErrZoneMismatch
	}

	limit := maxCopies
	if card.IsExtraDeck() {
		limit = maxExtraCopies
	}
	if d.copyCount(card) >= limit {
		s.mu.Unlock()
		return Entry{}, ErrCopyLimit
	}

	entry := Entry{ID: uuid.NewString(), Card: card}
	target := d.zone(zone)
	*target = append(*target, entry)
	d.dirty = true
	s.mu.Unlock()

	s.dispatch(events.DeckUpdated, deckID)
	return entry, nil
}

// RemoveCard removes the entry with the given entry id from the zone.
// The deck is untouched when the entry is not found.
func (s *Store) RemoveCard(deckID, entryID string, zone Zone) error {
	if _, err := ParseZone(string(zone)); err != nil {
		return err
	}

	s.mu.Lock()
	d, ok := s.index[deckID]
	if !ok {
		s.mu.Unlock()
		return ErrDeckNotFound
	}

	target := d.zone(zone)
	found := false
	for i, e := range *target {
		if e.ID == entryID {
			*target = append((*target)[:i], (*target)[i+1:]...)
			found = true
			break
		}
	}
	if !found {
		s.mu.Unlock()
		return ErrEntryNotFound
	}
	d.dirty = true
	s.mu.Unlock()

	s.dispatch(events.DeckUpdated, deckID)
	return nil
}

// MoveCard relocates the entry at from-index in fromZone to to-index
// in toZone. The destination index is clamped into [0, len] of the
// destination sequence after the removal, so a same-zone move accounts
// for the shift the removal causes.
//
// The move path re-validates zone/type compatibility (a drag that
// lands an extra-deck card in main would corrupt the deck) but not
// copy limits: relocation never changes a deck's copy totals, so the
// add-path limit cannot be exceeded here.
func (s *Store) MoveCard(deckID string, from, to int, fromZone, toZone Zone) error {
	if _, err := ParseZone(string(fromZone)); err != nil {
		return err
	}
	if _, err := ParseZone(string(toZone)); err != nil {
		return err
	}

	s.mu.Lock()
	d, ok := s.index[deckID]
	if !ok {
		s.mu.Unlock()
		return ErrDeckNotFound
	}

	src := d.zone(fromZone)
	if from < 0 || from >= len(*src) {
		s.mu.Unlock()
		return ErrEntryNotFound
	}
	entry := (*src)[from]

	if !zoneAllows(entry.Card, toZone) {
		s.mu.Unlock()
		return ErrZoneMismatch
	}

	*src = append((*src)[:from], (*src)[from+1:]...)

	dst := d.zone(toZone)
	if to < 0 {
		to = 0
	}
	if to > len(*dst) {
		to = len(*dst)
	}
	*dst = append(*dst, Entry{})
	copy((*dst)[to+1:], (*dst)[to:])
	(*dst)[to] = entry

	d.dirty = true
	s.mu.Unlock()

	s.dispatch(events.DeckUpdated, deckID)
	return nil
}

// ReplaceZones substitutes all three zones wholesale from card id
// lists, generating fresh entry ids and id-only stub cards. Used by
// deck list import and by auto-complete; the caller's lists are taken
// as authoritative and are not validated.
func (s *Store) ReplaceZones(deckID string, mainIDs, extraIDs, sideIDs []int) error {
	stubs := func(ids []int) []Entry {
		out := make([]Entry, 0, len(ids))
		for _, id := range ids {
			out = append(out, Entry{ID: uuid.NewString(), Card: catalog.Stub(id)})
		}
		return out
	}

	s.mu.Lock()
	d, ok := s.index[deckID]
	if !ok {
		s.mu.Unlock()
		return ErrDeckNotFound
	}
	d.Main = stubs(mainIDs)
	d.Extra = stubs(extraIDs)
	d.Side = stubs(sideIDs)
	d.dirty = true
	s.mu.Unlock()

	s.dispatch(events.DeckUpdated, deckID)
	return nil
}

// Recompute runs the classifier over the deck's main and extra zones,
// stores the result and clears the dirty flag. Side cards never count
// toward classification. With a nil classifier the labels are left
// untouched.
func (s *Store) Recompute(deckID string) ([]string, error) {
	s.mu.Lock()
	d, ok := s.index[deckID]
	if !ok {
		s.mu.Unlock()
		return nil, ErrDeckNotFound
	}
	if s.classifier == nil {
		out := append([]string(nil), d.Archetypes...)
		s.mu.Unlock()
		return out, nil
	}

	cards := make([]catalog.Card, 0, len(d.Main)+len(d.Extra))
	for _, e := range d.Main {
		cards = append(cards, e.Card)
	}
	for _, e := range d.Extra {
		cards = append(cards, e.Card)
	}
	s.mu.Unlock()

	// Classification may hit the reference list loader; keep it out of
	// the critical section. The deck can be deleted meanwhile.
	labels := s.classifier.Classify(cards)

	s.mu.Lock()
	d, ok = s.index[deckID]
	if !ok {
		s.mu.Unlock()
		return nil, ErrDeckNotFound
	}
	d.Archetypes = labels
	d.dirty = false
	s.mu.Unlock()

	return append([]string(nil), labels...), nil
}

// Project derives the reduced persistence projection of every deck:
// entry ids and card ids only.
func (s *Store) Project() []ProjectedDeck {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]ProjectedDeck, 0, len(s.decks))
	for _, d := range s.decks {
		out = append(out, ProjectedDeck{
			ID:    d.ID,
			Name:  d.Name,
			Icon:  d.Icon,
			Main:  projectZone(d.Main),
			Extra: projectZone(d.Extra),
			Side:  projectZone(d.Side),
		})
	}
	return out
}

// Load rehydrates the store from a persisted projection, replacing any
// current contents. Entries come back as id-only stubs and every deck
// is marked dirty so archetypes are recomputed once the catalog is
// available. No events are dispatched.
func (s *Store) Load(projected []ProjectedDeck) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.decks = s.decks[:0]
	s.index = make(map[string]*Deck, len(projected))
	for _, p := range projected {
		d := &Deck{
			ID:         p.ID,
			Name:       p.Name,
			Icon:       p.Icon,
			Main:       rehydrateZone(p.Main),
			Extra:      rehydrateZone(p.Extra),
			Side:       rehydrateZone(p.Side),
			Archetypes: []string{"New"},
			dirty:      true,
		}
		s.decks = append(s.decks, d)
		s.index[d.ID] = d
	}
}

// ResolveCards joins a deck copy's stub entries against the catalog,
// leaving entries untouched when the catalog has no match.
func ResolveCards(d *Deck, cat *catalog.Cache) {
	resolve := func(entries []Entry) {
		for i, e := range entries {
			if card, ok := cat.Get(e.Card.ID); ok {
				entries[i].Card = card
			}
		}
	}
	resolve(d.Main)
	resolve(d.Extra)
	resolve(d.Side)
}
