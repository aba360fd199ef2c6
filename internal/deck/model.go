// Package deck owns the authoritative in-memory deck collection and
// all structural mutation operations over it.
package deck

import (
	"github.com/kyamashiro/ygo-companion/internal/catalog"
)

// Zone is one of the three deck partitions.
type Zone string

const (
	ZoneMain  Zone = "main"
	ZoneExtra Zone = "extra"
	ZoneSide  Zone = "side"
)

// ParseZone validates a zone string.
func ParseZone(s string) (Zone, error) {
	switch Zone(s) {
	case ZoneMain, ZoneExtra, ZoneSide:
		return Zone(s), nil
	}
	return "", ErrInvalidZone
}

// Icon is a deck's display icon tag.
type Icon string

// Deck icons, one per card attribute plus none.
const (
	IconNone   Icon = ""
	IconDark   Icon = "dark"
	IconLight  Icon = "light"
	IconEarth  Icon = "earth"
	IconWater  Icon = "water"
	IconFire   Icon = "fire"
	IconWind   Icon = "wind"
	IconDivine Icon = "divine"
)

// ValidIcon reports whether the icon is one of the fixed enum values.
func ValidIcon(i Icon) bool {
	switch i {
	case IconNone, IconDark, IconLight, IconEarth, IconWater, IconFire, IconWind, IconDivine:
		return true
	}
	return false
}

// Entry is one physical slot in a deck. The entry id, not the card id,
// is the unit of identity for removal and reordering: a deck may hold
// several entries for the same card, up to the copy limit.
type Entry struct {
	ID   string       `json:"entry_id"`
	Card catalog.Card `json:"card"`
}

// Deck is a named collection of entries split across the three zones.
// Archetypes is derived state: it is only ever written by Recompute and
// may lag the zone contents until the dirty flag is cleared.
type Deck struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Icon       Icon     `json:"icon,omitempty"`
	Main       []Entry  `json:"main_cards"`
	Extra      []Entry  `json:"extra_cards"`
	Side       []Entry  `json:"side_cards"`
	Archetypes []string `json:"archetypes"`

	dirty bool
}

// Dirty reports whether the deck's archetypes are stale relative to
// its zone contents.
func (d *Deck) Dirty() bool { return d.dirty }

// zone returns a pointer to the slice backing the given zone.
func (d *Deck) zone(z Zone) *[]Entry {
	switch z {
	case ZoneMain:
		return &d.Main
	case ZoneExtra:
		return &d.Extra
	case ZoneSide:
		return &d.Side
	}
	return nil
}

// clone returns a deep copy of the deck, detached from the store.
func (d *Deck) clone() *Deck {
	out := *d
	out.Main = append([]Entry(nil), d.Main...)
	out.Extra = append([]Entry(nil), d.Extra...)
	out.Side = append([]Entry(nil), d.Side...)
	out.Archetypes = append([]string(nil), d.Archetypes...)
	return &out
}

// copyCount returns how many entries for the card id exist in the
// zones the copy limit is counted over: extra+side for extra-deck
// cards, main+side otherwise.
func (d *Deck) copyCount(card catalog.Card) int {
	zones := [][]Entry{d.Main, d.Side}
	if card.IsExtraDeck() {
		zones = [][]Entry{d.Extra, d.Side}
	}
	n := 0
	for _, zone := range zones {
		for _, e := range zone {
			if e.Card.ID == card.ID {
				n++
			}
		}
	}
	return n
}

// ProjectedEntry is the persisted form of an Entry: the entry id and
// the card id only. Full card data is re-joined against the catalog on
// the next load, so a deck's detail is only as fresh as the current
// catalog fetch.
type ProjectedEntry struct {
	EntryID string `json:"entry_id"`
	CardID  int    `json:"card_id"`
}

// ProjectedDeck is the reduced deck projection written to durable
// storage. Archetypes are deliberately absent; they are recomputed
// after rehydration.
type ProjectedDeck struct {
	ID    string           `json:"id"`
	Name  string           `json:"name"`
	Icon  Icon             `json:"icon,omitempty"`
	Main  []ProjectedEntry `json:"main"`
	Extra []ProjectedEntry `json:"extra"`
	Side  []ProjectedEntry `json:"side"`
}

func projectZone(entries []Entry) []ProjectedEntry {
	out := make([]ProjectedEntry, 0, len(entries))
	for _, e := range entries {
		out = append(out, ProjectedEntry{EntryID: e.ID, CardID: e.Card.ID})
	}
	return out
}

func rehydrateZone(entries []ProjectedEntry) []Entry {
	out := make([]Entry, 0, len(entries))
	for _, e := range entries {
		out = append(out, Entry{ID: e.EntryID, Card: catalog.Stub(e.CardID)})
	}
	return out
}
