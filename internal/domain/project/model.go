package project

import (
	"time"

	"github.com/google/uuid"
)

// Project is a container owning one source audio blob (keyed externally
// by the project ID) and an ordered set of phrases.
type Project struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Created       time.Time `json:"created"`
	LastModified  time.Time `json:"lastModified"`
	PhraseIDs     []string  `json:"phraseIDs"`
	AudioFileRefs []string  `json:"audioFileRefs,omitempty"`
}

// New creates a project with a fresh identity, current timestamps, and
// no phrases.
func New(name string) *Project {
	now := time.Now()
	return &Project{
		ID:           uuid.NewString(),
		Name:         name,
		Created:      now,
		LastModified: now,
		PhraseIDs:    []string{},
	}
}

// Clone returns a deep copy so callers cannot mutate registry state.
func (p *Project) Clone() *Project {
	cp := *p
	cp.PhraseIDs = append([]string(nil), p.PhraseIDs...)
	if p.AudioFileRefs != nil {
		cp.AudioFileRefs = append([]string(nil), p.AudioFileRefs...)
	}
	return &cp
}

// RemovePhraseID drops id from PhraseIDs, preserving the order of the
// remaining entries. Returns true if the id was present.
func (p *Project) RemovePhraseID(id string) bool {
	for i, existing := range p.PhraseIDs {
		if existing == id {
			p.PhraseIDs = append(p.PhraseIDs[:i], p.PhraseIDs[i+1:]...)
			return true
		}
	}
	return false
}
