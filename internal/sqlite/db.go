package sqlite

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// schemaVersion is stamped into PRAGMA user_version after migration.
// There was no versioning in the first persisted layout; the pragma is
// the hook future migrations key off.
const schemaVersion = 1

// DB wraps a SQLite database connection
type DB struct {
	*sql.DB
}

// New creates a new SQLite database connection
func New(dataSourceName string) (*DB, error) {
	db, err := sql.Open("sqlite", dataSourceName)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Enable foreign keys
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	return &DB{db}, nil
}

// RunMigrations creates the schema. Safe to call on an already-migrated
// database.
func (db *DB) RunMigrations() error {
	var version int
	if err := db.QueryRow("PRAGMA user_version").Scan(&version); err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}
	if version >= schemaVersion {
		return nil
	}

	migration := `
-- Projects, stored whole-collection; position preserves insertion order
CREATE TABLE projects (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    created_ms INTEGER NOT NULL,
    last_modified_ms INTEGER NOT NULL,
    phrase_ids TEXT NOT NULL,
    audio_file_refs TEXT,
    position INTEGER NOT NULL
);

-- Phrases, stored whole-collection
CREATE TABLE phrases (
    phrase_id TEXT PRIMARY KEY,
    project_id TEXT NOT NULL,
    phrase_start REAL NOT NULL,
    phrase_end REAL NOT NULL,
    complete INTEGER NOT NULL,
    speed INTEGER NOT NULL,
    phrase_name TEXT NOT NULL,
    color TEXT,
    last_accessed_ms INTEGER,
    position INTEGER NOT NULL
);
CREATE INDEX idx_phrase_project ON phrases(project_id);

-- Source audio blobs, one per project, keyed by project id
CREATE TABLE blobs (
    key TEXT PRIMARY KEY,
    data BLOB NOT NULL
);

-- Scalar settings (active project id)
CREATE TABLE meta (
    key TEXT PRIMARY KEY,
    value TEXT NOT NULL
);
`

	if _, err := db.Exec(migration); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	if _, err := db.Exec(fmt.Sprintf("PRAGMA user_version = %d", schemaVersion)); err != nil {
		return fmt.Errorf("failed to stamp schema version: %w", err)
	}

	return nil
}
