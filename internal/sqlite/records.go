package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/lingokit/phrasedeck/internal/domain/phrase"
	"github.com/lingokit/phrasedeck/internal/domain/project"
)

const activeProjectKey = "active_project_id"

// RecordStore implements store.RecordStore for SQLite. Every save
// replaces the whole collection in one transaction.
type RecordStore struct {
	db *DB
}

// NewRecordStore creates a new RecordStore
func NewRecordStore(db *DB) *RecordStore {
	return &RecordStore{db: db}
}

// SaveProjects replaces the stored project collection
func (s *RecordStore) SaveProjects(ctx context.Context, projects []*project.Project) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin save: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM projects`); err != nil {
		return fmt.Errorf("failed to clear projects: %w", err)
	}

	query := `
		INSERT INTO projects (id, name, created_ms, last_modified_ms, phrase_ids, audio_file_refs, position)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	for i, proj := range projects {
		phraseIDs, err := json.Marshal(proj.PhraseIDs)
		if err != nil {
			return fmt.Errorf("failed to encode phrase ids: %w", err)
		}
		var refs any
		if proj.AudioFileRefs != nil {
			encoded, err := json.Marshal(proj.AudioFileRefs)
			if err != nil {
				return fmt.Errorf("failed to encode audio refs: %w", err)
			}
			refs = string(encoded)
		}
		_, err = tx.ExecContext(ctx, query,
			proj.ID,
			proj.Name,
			proj.Created.UnixMilli(),
			proj.LastModified.UnixMilli(),
			string(phraseIDs),
			refs,
			i,
		)
		if err != nil {
			return fmt.Errorf("failed to save project: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit projects: %w", err)
	}
	return nil
}

// LoadProjects returns the stored project collection in saved order
func (s *RecordStore) LoadProjects(ctx context.Context) ([]*project.Project, error) {
	query := `
		SELECT id, name, created_ms, last_modified_ms, phrase_ids, audio_file_refs
		FROM projects
		ORDER BY position ASC
	`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to load projects: %w", err)
	}
	defer rows.Close()

	var projects []*project.Project
	for rows.Next() {
		var (
			proj       project.Project
			createdMS  int64
			modifiedMS int64
			phraseIDs  string
			refs       sql.NullString
		)
		if err := rows.Scan(&proj.ID, &proj.Name, &createdMS, &modifiedMS, &phraseIDs, &refs); err != nil {
			return nil, fmt.Errorf("failed to scan project: %w", err)
		}
		proj.Created = time.UnixMilli(createdMS)
		proj.LastModified = time.UnixMilli(modifiedMS)
		if err := json.Unmarshal([]byte(phraseIDs), &proj.PhraseIDs); err != nil {
			return nil, fmt.Errorf("failed to decode phrase ids: %w", err)
		}
		if refs.Valid {
			if err := json.Unmarshal([]byte(refs.String), &proj.AudioFileRefs); err != nil {
				return nil, fmt.Errorf("failed to decode audio refs: %w", err)
			}
		}
		projects = append(projects, &proj)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to load projects: %w", err)
	}
	return projects, nil
}

// SavePhrases replaces the stored phrase collection
func (s *RecordStore) SavePhrases(ctx context.Context, phrases []*phrase.AudioPhrase) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin save: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM phrases`); err != nil {
		return fmt.Errorf("failed to clear phrases: %w", err)
	}

	query := `
		INSERT INTO phrases (phrase_id, project_id, phrase_start, phrase_end, complete, speed, phrase_name, color, last_accessed_ms, position)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	for i, p := range phrases {
		var lastAccessed any
		if p.LastAccessed != nil {
			lastAccessed = p.LastAccessed.UnixMilli()
		}
		var color any
		if p.Color != "" {
			color = p.Color
		}
		_, err = tx.ExecContext(ctx, query,
			p.PhraseID,
			p.ProjectID,
			p.PhraseStart,
			p.PhraseEnd,
			p.Complete,
			p.Speed,
			p.PhraseName,
			color,
			lastAccessed,
			i,
		)
		if err != nil {
			return fmt.Errorf("failed to save phrase: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit phrases: %w", err)
	}
	return nil
}

// LoadPhrases returns the stored phrase collection in saved order
func (s *RecordStore) LoadPhrases(ctx context.Context) ([]*phrase.AudioPhrase, error) {
	query := `
		SELECT phrase_id, project_id, phrase_start, phrase_end, complete, speed, phrase_name, color, last_accessed_ms
		FROM phrases
		ORDER BY position ASC
	`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to load phrases: %w", err)
	}
	defer rows.Close()

	var phrases []*phrase.AudioPhrase
	for rows.Next() {
		var (
			p            phrase.AudioPhrase
			color        sql.NullString
			lastAccessed sql.NullInt64
		)
		err := rows.Scan(
			&p.PhraseID,
			&p.ProjectID,
			&p.PhraseStart,
			&p.PhraseEnd,
			&p.Complete,
			&p.Speed,
			&p.PhraseName,
			&color,
			&lastAccessed,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan phrase: %w", err)
		}
		if color.Valid {
			p.Color = color.String
		}
		if lastAccessed.Valid {
			t := time.UnixMilli(lastAccessed.Int64)
			p.LastAccessed = &t
		}
		phrases = append(phrases, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to load phrases: %w", err)
	}
	return phrases, nil
}

// SetActiveProjectID stores the active project id; "" clears it
func (s *RecordStore) SetActiveProjectID(ctx context.Context, id string) error {
	if id == "" {
		if _, err := s.db.ExecContext(ctx, `DELETE FROM meta WHERE key = ?`, activeProjectKey); err != nil {
			return fmt.Errorf("failed to clear active project: %w", err)
		}
		return nil
	}
	query := `
		INSERT INTO meta (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`
	if _, err := s.db.ExecContext(ctx, query, activeProjectKey, id); err != nil {
		return fmt.Errorf("failed to save active project: %w", err)
	}
	return nil
}

// ActiveProjectID returns the stored active project id, or "" when none
func (s *RecordStore) ActiveProjectID(ctx context.Context) (string, error) {
	var id string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM meta WHERE key = ?`, activeProjectKey).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to get active project: %w", err)
	}
	return id, nil
}
