package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/kyamashiro/ygo-companion/internal/deck"
)

// SnapshotKey is the fixed key the deck snapshot is stored under.
// There is exactly one snapshot; every save replaces it.
const SnapshotKey = "decks"

// SnapshotStore persists the reduced deck projection. The payload is
// the JSON-encoded []deck.ProjectedDeck, optionally encrypted at rest.
type SnapshotStore struct {
	db         *DB
	encryption *EncryptionConfig // nil disables encryption
}

// NewSnapshotStore creates a snapshot store. A nil encryption config
// stores the payload in plaintext.
func NewSnapshotStore(db *DB, encryption *EncryptionConfig) *SnapshotStore {
	return &SnapshotStore{db: db, encryption: encryption}
}

// Save replaces the stored snapshot with the given projection.
func (s *SnapshotStore) Save(ctx context.Context, decks []deck.ProjectedDeck) error {
	payload, err := json.Marshal(decks)
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}

	encrypted := 0
	if s.encryption != nil {
		payload, err = EncryptData(payload, s.encryption)
		if err != nil {
			return fmt.Errorf("failed to encrypt snapshot: %w", err)
		}
		encrypted = 1
	}

	query := `
		INSERT INTO snapshots (key, payload, encrypted, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			payload = excluded.payload,
			encrypted = excluded.encrypted,
			updated_at = excluded.updated_at
	`

	_, err = s.db.conn.ExecContext(ctx, query, SnapshotKey, payload, encrypted, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to save snapshot: %w", err)
	}

	return nil
}

// Load retrieves the stored snapshot. The second return value is false
// when no snapshot has ever been saved.
func (s *SnapshotStore) Load(ctx context.Context) ([]deck.ProjectedDeck, bool, error) {
	query := `SELECT payload, encrypted FROM snapshots WHERE key = ?`

	var payload []byte
	var encrypted int
	err := s.db.conn.QueryRowContext(ctx, query, SnapshotKey).Scan(&payload, &encrypted)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to load snapshot: %w", err)
	}

	if encrypted == 1 {
		if s.encryption == nil {
			return nil, false, fmt.Errorf("snapshot is encrypted but no encryption config is set")
		}
		payload, err = DecryptData(payload, s.encryption)
		if err != nil {
			return nil, false, fmt.Errorf("failed to decrypt snapshot: %w", err)
		}
	}

	var decks []deck.ProjectedDeck
	if err := json.Unmarshal(payload, &decks); err != nil {
		return nil, false, fmt.Errorf("failed to decode snapshot: %w", err)
	}

	return decks, true, nil
}

// Delete removes the stored snapshot.
func (s *SnapshotStore) Delete(ctx context.Context) error {
	_, err := s.db.conn.ExecContext(ctx, `DELETE FROM snapshots WHERE key = ?`, SnapshotKey)
	if err != nil {
		return fmt.Errorf("failed to delete snapshot: %w", err)
	}
	return nil
}
