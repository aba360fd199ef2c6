// Package catalog provides the card catalog: the card model, the
// YGOPRODeck API client, and the per-session in-memory cache.
package catalog

import "strings"

// ExtraDeckTypes are the monster categories that live in the extra deck.
// A card whose type line contains one of these may not be placed in the
// main zone, and is limited to a single copy across extra and side.
var ExtraDeckTypes = []string{"Fusion", "Synchro", "XYZ", "Link", "Pendulum"}

// Card represents a Yu-Gi-Oh! card as returned by the catalog API.
// Cards are read-only to this service; the catalog is their single
// source of truth.
type Card struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	Type      string `json:"type"`
	Desc      string `json:"desc,omitempty"`
	Archetype string `json:"archetype,omitempty"`

	// Monster stats. Pointers because spells and traps carry none.
	ATK   *int `json:"atk,omitempty"`
	DEF   *int `json:"def,omitempty"`
	Level *int `json:"level,omitempty"`

	Race      string `json:"race,omitempty"`
	Attribute string `json:"attribute,omitempty"`

	Images []CardImage `json:"card_images,omitempty"`
}

// CardImage holds the image URLs for one printing of a card.
type CardImage struct {
	ID       int    `json:"id"`
	URL      string `json:"image_url"`
	URLSmall string `json:"image_url_small,omitempty"`
}

// IsExtraDeck reports whether the card belongs in the extra deck,
// determined by a substring match of the type line against
// ExtraDeckTypes.
func (c Card) IsExtraDeck() bool {
	for _, t := range ExtraDeckTypes {
		if strings.Contains(c.Type, t) {
			return true
		}
	}
	return false
}

// Stub returns a placeholder card carrying only an identifier. Imports
// and snapshot rehydration produce stubs that are re-joined against the
// catalog on read.
func Stub(id int) Card {
	return Card{ID: id}
}

// IsStub reports whether the card carries an identifier only.
func (c Card) IsStub() bool {
	return c.Name == "" && c.Type == ""
}
