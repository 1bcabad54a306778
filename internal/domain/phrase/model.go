package phrase

import (
	"time"

	"github.com/google/uuid"
)

// DefaultSpeed is the playback rate assigned to new phrases, as a
// percentage of real time.
const DefaultSpeed = 100

// AudioPhrase is a named, time-bounded excerpt of a project's source
// audio. Bounds are in seconds relative to the start of the source.
type AudioPhrase struct {
	PhraseID     string     `json:"phraseID"`
	ProjectID    string     `json:"projectID"`
	PhraseStart  float64    `json:"phraseStart"`
	PhraseEnd    float64    `json:"phraseEnd"`
	Complete     bool       `json:"complete"`
	Speed        int        `json:"speed"`
	PhraseName   string     `json:"phraseName"`
	Color        string     `json:"color,omitempty"`
	LastAccessed *time.Time `json:"lastAccessed,omitempty"`
}

// New creates a phrase bound to the given project. A fresh phrase has
// zero bounds and is not exportable until the user times it.
func New(projectID, name string) (*AudioPhrase, error) {
	if projectID == "" {
		return nil, ErrInvalidInput
	}
	return &AudioPhrase{
		PhraseID:   uuid.NewString(),
		ProjectID:  projectID,
		Complete:   false,
		Speed:      DefaultSpeed,
		PhraseName: name,
	}, nil
}

// Clone returns a copy so callers cannot mutate registry state.
func (p *AudioPhrase) Clone() *AudioPhrase {
	cp := *p
	if p.LastAccessed != nil {
		t := *p.LastAccessed
		cp.LastAccessed = &t
	}
	return &cp
}

// Touch refreshes LastAccessed.
func (p *AudioPhrase) Touch() {
	now := time.Now()
	p.LastAccessed = &now
}
