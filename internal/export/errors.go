package export

import "errors"

var (
	// ErrEmptyProject indicates an export attempted on a project that
	// owns zero phrases.
	ErrEmptyProject = errors.New("no phrases found in project")
	// ErrNoAudio indicates the project has no stored source audio.
	ErrNoAudio = errors.New("no audio file found for project")
)
