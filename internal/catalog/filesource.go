package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// FileSource loads the card catalog from a local JSON file using the
// same envelope the API returns. When watched, edits to the file
// replace the in-memory catalog, which keeps an offline card database
// usable without restarting the service.
type FileSource struct {
	path  string
	cache *Cache
}

// NewFileSource creates a file-backed catalog source for the given
// cache.
func NewFileSource(path string, cache *Cache) *FileSource {
	return &FileSource{path: path, cache: cache}
}

// Load reads the file and replaces the cache contents.
func (f *FileSource) Load() error {
	data, err := os.ReadFile(f.path)
	if err != nil {
		return fmt.Errorf("failed to read catalog file: %w", err)
	}

	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return fmt.Errorf("failed to parse catalog file: %w", err)
	}

	f.cache.SetAll(env.Data)
	log.Printf("[FileSource] Loaded %d cards from %s", len(env.Data), f.path)
	return nil
}

// Watch blocks until ctx is cancelled, reloading the catalog whenever
// the file is written. The file's parent directory is watched because
// editors replace files by rename.
func (f *FileSource) Watch(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	dir := filepath.Dir(f.path)
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}

	target := filepath.Clean(f.path)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if err := f.Load(); err != nil {
				log.Printf("[FileSource] Reload failed: %v", err)
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Printf("[FileSource] Watcher error: %v", err)
		}
	}
}
