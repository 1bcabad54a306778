package mcp

import (
	"errors"
	"fmt"

	"github.com/lingokit/phrasedeck/internal/audio"
	"github.com/lingokit/phrasedeck/internal/domain/phrase"
	"github.com/lingokit/phrasedeck/internal/domain/project"
	"github.com/lingokit/phrasedeck/internal/export"
	"github.com/lingokit/phrasedeck/internal/registry"
	"github.com/lingokit/phrasedeck/internal/store"
)

// APIError represents an MCP error response.
type APIError struct {
	Code         string `json:"code"`
	Message      string `json:"message"`
	RecoveryHint string `json:"recovery_hint,omitempty"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// MapError maps domain errors to MCP error codes. Unmapped errors pass
// through unchanged.
func MapError(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, project.ErrNotFound):
		return &APIError{Code: "PROJECT_NOT_FOUND", Message: "project not found", RecoveryHint: "Check the project id against list_projects"}
	case errors.Is(err, phrase.ErrNotFound):
		return &APIError{Code: "PHRASE_NOT_FOUND", Message: "phrase not found", RecoveryHint: "Check the phrase id against list_phrases"}
	case errors.Is(err, registry.ErrNoActiveProject):
		return &APIError{Code: "NO_ACTIVE_PROJECT", Message: "no active project", RecoveryHint: "Call set_active_project or pass project_id"}
	case errors.Is(err, phrase.ErrInvalidTiming):
		return &APIError{Code: "INVALID_TIMING", Message: "phrase bounds must satisfy start >= 0 and end > start"}
	case errors.Is(err, phrase.ErrInvalidInput):
		return &APIError{Code: "INVALID_INPUT", Message: "invalid phrase input"}
	case errors.Is(err, audio.ErrInvalidRange):
		return &APIError{Code: "INVALID_RANGE", Message: "extraction window malformed"}
	case errors.Is(err, audio.ErrDecode):
		return &APIError{Code: "DECODE_FAILED", Message: err.Error(), RecoveryHint: "Attach uncompressed PCM WAV source audio"}
	case errors.Is(err, export.ErrEmptyProject):
		return &APIError{Code: "EMPTY_PROJECT", Message: "no phrases found in project", RecoveryHint: "Add and time phrases before exporting"}
	case errors.Is(err, export.ErrNoAudio):
		return &APIError{Code: "NO_AUDIO", Message: "no audio file found for project", RecoveryHint: "Call attach_audio first"}
	case errors.Is(err, store.ErrUnavailable):
		return &APIError{Code: "STORAGE_UNAVAILABLE", Message: "storage backend unavailable"}
	default:
		return err
	}
}
