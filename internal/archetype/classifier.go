package archetype

import (
	"sort"
	"strings"

	"github.com/kyamashiro/ygo-companion/internal/catalog"
)

// Sentinel labels for decks that cannot be classified.
const (
	LabelNew   = "New"   // deck has no cards
	LabelMixed = "Mixed" // no archetype clears the threshold
)

// dominanceThreshold is the minimum tally for an archetype to count as
// dominant.
const dominanceThreshold = 3

// maxLabels caps how many dominant archetypes a deck carries.
const maxLabels = 2

// Classifier tallies archetype membership over a deck's main and extra
// cards. Cards carrying an explicit archetype tag count directly;
// untagged cards fall back to a substring scan of the card name
// against the reference list.
type Classifier struct {
	catalog *catalog.Cache
	ref     *ReferenceList
}

// NewClassifier creates a classifier over the given catalog and
// reference list.
func NewClassifier(cat *catalog.Cache, ref *ReferenceList) *Classifier {
	return &Classifier{catalog: cat, ref: ref}
}

// Classify returns up to two dominant archetype labels for the given
// cards (the caller passes main+extra entries; side never counts).
// Returns ["New"] for an empty deck and ["Mixed"] when nothing
// reaches the dominance threshold.
func (c *Classifier) Classify(cards []catalog.Card) []string {
	if len(cards) == 0 {
		return []string{LabelNew}
	}

	names := c.ref.Names()

	// Per-call lookup cache: imported decks repeat card ids, and the
	// same resolution would otherwise run once per copy.
	resolved := make(map[int]catalog.Card, len(cards))

	tally := make(map[string]int)
	for _, card := range cards {
		full, ok := resolved[card.ID]
		if !ok {
			full = c.resolve(card)
			resolved[card.ID] = full
		}

		// Explicit tag wins; no further checks for this card.
		if full.Archetype != "" {
			tally[full.Archetype]++
			continue
		}

		for _, name := range names {
			if strings.Contains(full.Name, name) {
				tally[name]++
				break
			}
		}
	}

	type count struct {
		name string
		n    int
	}
	counts := make([]count, 0, len(tally))
	for name, n := range tally {
		counts = append(counts, count{name, n})
	}
	sort.Slice(counts, func(i, j int) bool {
		if counts[i].n != counts[j].n {
			return counts[i].n > counts[j].n
		}
		return counts[i].name < counts[j].name
	})

	var labels []string
	for _, cnt := range counts {
		if cnt.n < dominanceThreshold {
			break
		}
		// An archetype named after an extra-deck type tag is a false
		// positive from type-line words leaking into card names.
		if isExtraDeckTypeTag(cnt.name) {
			continue
		}
		labels = append(labels, cnt.name)
		if len(labels) == maxLabels {
			break
		}
	}

	if len(labels) == 0 {
		return []string{LabelMixed}
	}
	return labels
}

// resolve looks the card up in the catalog by id, falling back to the
// embedded card itself. The fallback matters for freshly imported
// decks whose entries are id-only stubs until the catalog loads.
func (c *Classifier) resolve(card catalog.Card) catalog.Card {
	if c.catalog != nil {
		if full, ok := c.catalog.Get(card.ID); ok {
			return full
		}
	}
	return card
}

func isExtraDeckTypeTag(name string) bool {
	for _, t := range catalog.ExtraDeckTypes {
		if name == t {
			return true
		}
	}
	return false
}
