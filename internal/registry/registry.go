// Package registry holds the in-memory authoritative view of all
// projects and phrases. Every mutation validates, updates memory, and
// persists the affected collections in one synchronous sequence; for
// the current session, memory is the source of truth and a failed
// persist is logged and retried implicitly on the next mutation.
package registry

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/lingokit/phrasedeck/internal/domain/phrase"
	"github.com/lingokit/phrasedeck/internal/domain/project"
	"github.com/lingokit/phrasedeck/internal/store"
)

// Registry is the project/phrase state engine. All mutating operations
// are serialized through one lock; a read-then-write race between two
// deletes could otherwise leave a dangling phrase reference.
type Registry struct {
	mu      sync.Mutex
	records store.RecordStore
	blobs   store.BlobStore
	logger  *slog.Logger

	projects    []*project.Project
	phrases     []*phrase.AudioPhrase
	projectByID map[string]*project.Project
	phraseByID  map[string]*phrase.AudioPhrase
	activeID    string

	nextPhraseNum int
}

// New creates a registry over the two storage boundaries. Load must be
// called before the first mutation.
func New(records store.RecordStore, blobs store.BlobStore, logger *slog.Logger) *Registry {
	if logger == nil {
		logger = slog.Default()
	}
	return &Registry{
		records:       records,
		blobs:         blobs,
		logger:        logger,
		projectByID:   make(map[string]*project.Project),
		phraseByID:    make(map[string]*phrase.AudioPhrase),
		nextPhraseNum: 1,
	}
}

// Load reads the persisted collections. Malformed or unreadable data is
// discarded and the registry starts empty rather than failing to start.
func (r *Registry) Load(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	projects, err := r.records.LoadProjects(ctx)
	if err != nil {
		r.logger.Warn("discarding persisted projects", "error", err)
		return nil
	}
	phrases, err := r.records.LoadPhrases(ctx)
	if err != nil {
		r.logger.Warn("discarding persisted phrases", "error", err)
		return nil
	}
	activeID, err := r.records.ActiveProjectID(ctx)
	if err != nil {
		r.logger.Warn("discarding persisted active project", "error", err)
		activeID = ""
	}

	for _, proj := range projects {
		r.projects = append(r.projects, proj)
		r.projectByID[proj.ID] = proj
	}
	for _, p := range phrases {
		if _, ok := r.projectByID[p.ProjectID]; !ok {
			r.logger.Warn("dropping orphan phrase", "phrase", p.PhraseID, "project", p.ProjectID)
			continue
		}
		r.phrases = append(r.phrases, p)
		r.phraseByID[p.PhraseID] = p
	}

	// Prune phrase references that no longer resolve, so the
	// referential-integrity invariant holds from the first mutation.
	for _, proj := range r.projects {
		kept := proj.PhraseIDs[:0]
		for _, id := range proj.PhraseIDs {
			if p, ok := r.phraseByID[id]; ok && p.ProjectID == proj.ID {
				kept = append(kept, id)
			} else {
				r.logger.Warn("dropping dangling phrase reference", "phrase", id, "project", proj.ID)
			}
		}
		proj.PhraseIDs = kept
	}

	if _, ok := r.projectByID[activeID]; ok {
		r.activeID = activeID
	}
	r.nextPhraseNum = len(r.phrases) + 1

	r.logger.Info("registry loaded",
		"projects", len(r.projects),
		"phrases", len(r.phrases),
		"active", r.activeID != "")
	return nil
}

// CreateProject creates a project and makes it active.
func (r *Registry) CreateProject(ctx context.Context, name string) *project.Project {
	r.mu.Lock()
	defer r.mu.Unlock()

	proj := project.New(name)
	r.projects = append(r.projects, proj)
	r.projectByID[proj.ID] = proj
	r.activeID = proj.ID

	r.persistProjects(ctx)
	r.persistActive(ctx)
	return proj.Clone()
}

// DeleteProject removes a project, its audio blob, and every phrase it
// owns. If it was active, any remaining project is promoted, or none.
// Unknown ids are a no-op.
func (r *Registry) DeleteProject(ctx context.Context, id string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	proj, ok := r.projectByID[id]
	if !ok {
		return
	}

	if err := r.blobs.Delete(ctx, id); err != nil {
		r.logger.Error("failed to delete project audio", "project", id, "error", err)
	}

	kept := r.phrases[:0]
	for _, p := range r.phrases {
		if p.ProjectID == id {
			delete(r.phraseByID, p.PhraseID)
			continue
		}
		kept = append(kept, p)
	}
	r.phrases = kept

	for i, existing := range r.projects {
		if existing == proj {
			r.projects = append(r.projects[:i], r.projects[i+1:]...)
			break
		}
	}
	delete(r.projectByID, id)

	if r.activeID == id {
		r.activeID = ""
		if len(r.projects) > 0 {
			r.activeID = r.projects[0].ID
		}
	}

	r.persistProjects(ctx)
	r.persistPhrases(ctx)
	r.persistActive(ctx)
}

// SetActiveProject switches the active-phrase scope. An empty id means
// no active project; unknown ids are rejected.
func (r *Registry) SetActiveProject(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if id != "" {
		if _, ok := r.projectByID[id]; !ok {
			return project.ErrNotFound
		}
	}
	r.activeID = id
	r.persistActive(ctx)
	return nil
}

// ActiveProjectID returns the active project id, or "" when none.
func (r *Registry) ActiveProjectID() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.activeID
}

// GetProject returns a copy of the project.
func (r *Registry) GetProject(id string) (*project.Project, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	proj, ok := r.projectByID[id]
	if !ok {
		return nil, project.ErrNotFound
	}
	return proj.Clone(), nil
}

// ListProjects returns copies of all projects in insertion order.
func (r *Registry) ListProjects() []*project.Project {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]*project.Project, 0, len(r.projects))
	for _, proj := range r.projects {
		out = append(out, proj.Clone())
	}
	return out
}

// AddPhrase creates a phrase bound to projectID, or to the active
// project when projectID is empty. The new phrase is appended to the
// owning project's PhraseIDs.
func (r *Registry) AddPhrase(ctx context.Context, projectID string) (*phrase.AudioPhrase, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if projectID == "" {
		if r.activeID == "" {
			return nil, ErrNoActiveProject
		}
		projectID = r.activeID
	}
	proj, ok := r.projectByID[projectID]
	if !ok {
		return nil, project.ErrNotFound
	}

	name := fmt.Sprintf("Phrase %d", r.nextPhraseNum)
	p, err := phrase.New(projectID, name)
	if err != nil {
		return nil, err
	}
	r.nextPhraseNum++

	r.phrases = append(r.phrases, p)
	r.phraseByID[p.PhraseID] = p
	proj.PhraseIDs = append(proj.PhraseIDs, p.PhraseID)
	proj.LastModified = time.Now()

	r.persistProjects(ctx)
	r.persistPhrases(ctx)
	return p.Clone(), nil
}

// DeletePhrase removes a phrase from the collection and from its owning
// project's PhraseIDs. Unknown ids are a no-op.
func (r *Registry) DeletePhrase(ctx context.Context, phraseID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.phraseByID[phraseID]
	if !ok {
		return
	}

	for i, existing := range r.phrases {
		if existing == p {
			r.phrases = append(r.phrases[:i], r.phrases[i+1:]...)
			break
		}
	}
	delete(r.phraseByID, phraseID)

	if proj, ok := r.projectByID[p.ProjectID]; ok {
		proj.RemovePhraseID(phraseID)
		proj.LastModified = time.Now()
	}

	r.persistProjects(ctx)
	r.persistPhrases(ctx)
}

// UpdatePhrase merges the partial update into the stored phrase and
// refreshes its LastAccessed. Updates that would violate the timing
// invariant fail and leave the phrase unchanged.
func (r *Registry) UpdatePhrase(ctx context.Context, phraseID string, upd phrase.Update) (*phrase.AudioPhrase, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.phraseByID[phraseID]
	if !ok {
		return nil, phrase.ErrNotFound
	}

	merged, err := upd.Apply(*p)
	if err != nil {
		return nil, err
	}
	merged.LastAccessed = p.LastAccessed
	*p = merged
	p.Touch()

	r.persistPhrases(ctx)
	return p.Clone(), nil
}

// GetPhrasesForProject returns copies of the project's phrases from the
// full collection, regardless of the active scope.
func (r *Registry) GetPhrasesForProject(projectID string) []*phrase.AudioPhrase {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.phrasesFor(projectID)
}

// ActivePhrases returns the derived active scope: phrases owned by the
// active project, or none when no project is active.
func (r *Registry) ActivePhrases() []*phrase.AudioPhrase {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.activeID == "" {
		return nil
	}
	return r.phrasesFor(r.activeID)
}

// AttachAudio stores the project's source audio blob and bumps its
// LastModified.
func (r *Registry) AttachAudio(ctx context.Context, projectID string, data []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	proj, ok := r.projectByID[projectID]
	if !ok {
		return project.ErrNotFound
	}
	if err := r.blobs.Put(ctx, projectID, data); err != nil {
		return fmt.Errorf("storing project audio: %w", err)
	}
	proj.LastModified = time.Now()
	r.persistProjects(ctx)
	return nil
}

func (r *Registry) phrasesFor(projectID string) []*phrase.AudioPhrase {
	var out []*phrase.AudioPhrase
	for _, p := range r.phrases {
		if p.ProjectID == projectID {
			out = append(out, p.Clone())
		}
	}
	return out
}

// Persist failures do not roll back memory; the next whole-collection
// write carries the change anyway.

func (r *Registry) persistProjects(ctx context.Context) {
	if err := r.records.SaveProjects(ctx, r.projects); err != nil {
		r.logger.Error("failed to persist projects", "error", err)
	}
}

func (r *Registry) persistPhrases(ctx context.Context) {
	if err := r.records.SavePhrases(ctx, r.phrases); err != nil {
		r.logger.Error("failed to persist phrases", "error", err)
	}
}

func (r *Registry) persistActive(ctx context.Context) {
	if err := r.records.SetActiveProjectID(ctx, r.activeID); err != nil {
		r.logger.Error("failed to persist active project", "error", err)
	}
}
