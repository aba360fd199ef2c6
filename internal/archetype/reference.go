// Package archetype derives a deck's dominant archetype labels from
// its card contents and a reference list of known archetype names.
package archetype

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"sync"
	"time"
)

// DefaultListURL is the public archetype name list.
const DefaultListURL = "https://db.ygoprodeck.com/api/v7/archetypes.php"

const listRequestTimeout = 15 * time.Second

// fallbackNames is the built-in reference list used when the fetch
// fails. Deliberately small: it covers the archetypes most likely to
// dominate a casual deck.
var fallbackNames = []string{
	"Blue-Eyes",
	"Dark Magician",
	"Red-Eyes",
	"Elemental HERO",
	"Cyber Dragon",
	"Blackwing",
	"Six Samurai",
	"Harpie",
	"Madolche",
	"Sky Striker",
	"Salamangreat",
	"Eldlich",
}

// ReferenceList loads and caches the archetype name list. The list is
// fetched at most once per process; a failed fetch caches the built-in
// fallback instead. Refresh forces a refetch, so a process that cached
// the fallback during a transient outage can recover without a
// restart.
type ReferenceList struct {
	url        string
	httpClient *http.Client

	mu     sync.Mutex
	names  []string
	loaded bool
}

// NewReferenceList creates a loader for the given URL. An empty URL
// selects DefaultListURL.
func NewReferenceList(url string) *ReferenceList {
	if url == "" {
		url = DefaultListURL
	}
	return &ReferenceList{
		url: url,
		httpClient: &http.Client{
			Timeout: listRequestTimeout,
		},
	}
}

// Names returns the cached reference list, fetching it on first use.
// Never fails: a fetch error caches and returns the fallback list.
func (r *ReferenceList) Names() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.loaded {
		return r.names
	}

	names, err := r.fetch(context.Background())
	if err != nil {
		log.Printf("[ReferenceList] Fetch failed, using fallback list: %v", err)
		names = fallbackNames
	}
	r.names = names
	r.loaded = true
	return r.names
}

// Refresh refetches the list, replacing whatever is cached. The cache
// is left untouched on failure.
func (r *ReferenceList) Refresh(ctx context.Context) error {
	names, err := r.fetch(ctx)
	if err != nil {
		return fmt.Errorf("failed to refresh archetype list: %w", err)
	}

	r.mu.Lock()
	r.names = names
	r.loaded = true
	r.mu.Unlock()
	return nil
}

// fetch retrieves the list. The endpoint returns either a bare JSON
// array of names or an array of {"archetype_name": ...} objects; both
// are accepted.
func (r *ReferenceList) fetch(ctx context.Context) ([]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("server returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	var names []string
	if err := json.Unmarshal(body, &names); err == nil {
		return names, nil
	}

	var objects []struct {
		Name string `json:"archetype_name"`
	}
	if err := json.Unmarshal(body, &objects); err != nil {
		return nil, fmt.Errorf("failed to decode archetype list: %w", err)
	}
	names = make([]string, 0, len(objects))
	for _, o := range objects {
		names = append(names, o.Name)
	}
	return names, nil
}
