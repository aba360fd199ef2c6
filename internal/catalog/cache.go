package catalog

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Fetcher retrieves the full card catalog. *Client satisfies it; tests
// substitute their own.
type Fetcher interface {
	FetchAllCards(ctx context.Context) ([]Card, error)
}

// Cache holds the card catalog for the lifetime of the process. It is
// populated at most once per session by FetchAll; there is no eviction
// and no refresh. Safe for concurrent use.
type Cache struct {
	fetcher Fetcher

	mu      sync.RWMutex
	byID    map[int]Card
	ordered []int // insertion order of ids, for stable All()
	fetched bool
}

// NewCache creates an empty catalog cache backed by the given fetcher.
func NewCache(fetcher Fetcher) *Cache {
	return &Cache{
		fetcher: fetcher,
		byID:    make(map[int]Card),
	}
}

// FetchAll populates the cache from the catalog API. It is a no-op if
// the cache is already populated, guarding against duplicate fetches.
// On failure the catalog stays empty and callers are expected to
// tolerate that (skeleton states, stub cards).
func (c *Cache) FetchAll(ctx context.Context) error {
	c.mu.RLock()
	done := c.fetched
	c.mu.RUnlock()
	if done {
		return nil
	}

	cards, err := c.fetcher.FetchAllCards(ctx)
	if err != nil {
		return fmt.Errorf("catalog fetch: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.fetched {
		return nil
	}
	c.replaceLocked(cards)
	c.fetched = true
	return nil
}

// SetAll replaces the catalog contents directly, deduplicating by card
// id with last-write-wins. Used by alternate load paths (local file
// override, tests). Marks the cache populated.
func (c *Cache) SetAll(cards []Card) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.replaceLocked(cards)
	c.fetched = true
}

func (c *Cache) replaceLocked(cards []Card) {
	c.byID = make(map[int]Card, len(cards))
	c.ordered = c.ordered[:0]
	for _, card := range cards {
		if _, seen := c.byID[card.ID]; !seen {
			c.ordered = append(c.ordered, card.ID)
		}
		c.byID[card.ID] = card
	}
}

// Get returns the card with the given id.
func (c *Cache) Get(id int) (Card, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	card, ok := c.byID[id]
	return card, ok
}

// All returns every card in the catalog in load order.
func (c *Cache) All() []Card {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]Card, 0, len(c.ordered))
	for _, id := range c.ordered {
		out = append(out, c.byID[id])
	}
	return out
}

// SearchByName returns cards whose name contains the query,
// case-insensitive, sorted by name.
func (c *Cache) SearchByName(query string) []Card {
	query = strings.ToLower(query)

	c.mu.RLock()
	var out []Card
	for _, card := range c.byID {
		if strings.Contains(strings.ToLower(card.Name), query) {
			out = append(out, card)
		}
	}
	c.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Len returns the number of cards in the catalog.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.byID)
}

// Populated reports whether the catalog has been loaded this session.
func (c *Cache) Populated() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.fetched
}

// Reset empties the cache and clears the populated flag so the next
// FetchAll hits the API again.
func (c *Cache) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.byID = make(map[int]Card)
	c.ordered = nil
	c.fetched = false
}
