// Package store defines the two durable-storage boundaries the engine
// persists through: a keyed binary blob store for source audio, and a
// structured record store for the project and phrase collections.
package store

import (
	"context"

	"github.com/lingokit/phrasedeck/internal/domain/phrase"
	"github.com/lingokit/phrasedeck/internal/domain/project"
)

// BlobStore holds one opaque source audio blob per project, keyed by
// the project ID.
type BlobStore interface {
	Put(ctx context.Context, key string, data []byte) error
	// Get returns nil data (not an error) when the key is absent.
	Get(ctx context.Context, key string) ([]byte, error)
	Delete(ctx context.Context, key string) error
}

// RecordStore persists the full project and phrase collections. Writes
// replace the whole collection; there is no incremental update.
type RecordStore interface {
	SaveProjects(ctx context.Context, projects []*project.Project) error
	LoadProjects(ctx context.Context) ([]*project.Project, error)
	SavePhrases(ctx context.Context, phrases []*phrase.AudioPhrase) error
	LoadPhrases(ctx context.Context) ([]*phrase.AudioPhrase, error)
	// SetActiveProjectID stores "" to mean no active project.
	SetActiveProjectID(ctx context.Context, id string) error
	ActiveProjectID(ctx context.Context) (string, error)
}
