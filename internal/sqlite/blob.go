package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lingokit/phrasedeck/internal/store"
)

// BlobStore implements store.BlobStore for SQLite
type BlobStore struct {
	db *DB
}

// NewBlobStore creates a new BlobStore
func NewBlobStore(db *DB) *BlobStore {
	return &BlobStore{db: db}
}

// Put stores or replaces the blob for a key
func (s *BlobStore) Put(ctx context.Context, key string, data []byte) error {
	query := `
		INSERT INTO blobs (key, data) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET data = excluded.data
	`
	if _, err := s.db.ExecContext(ctx, query, key, data); err != nil {
		return fmt.Errorf("%w: put blob: %v", store.ErrUnavailable, err)
	}
	return nil
}

// Get retrieves the blob for a key; a missing key yields nil data
func (s *BlobStore) Get(ctx context.Context, key string) ([]byte, error) {
	var data []byte
	err := s.db.QueryRowContext(ctx, `SELECT data FROM blobs WHERE key = ?`, key).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: get blob: %v", store.ErrUnavailable, err)
	}
	return data, nil
}

// Delete removes the blob for a key; unknown keys are a no-op
func (s *BlobStore) Delete(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM blobs WHERE key = ?`, key); err != nil {
		return fmt.Errorf("%w: delete blob: %v", store.ErrUnavailable, err)
	}
	return nil
}
