package mcp

import (
	"github.com/lingokit/phrasedeck/internal/domain/phrase"
	"github.com/lingokit/phrasedeck/internal/domain/project"
	"github.com/lingokit/phrasedeck/internal/export"
)

type CreateProjectParams struct {
	Name string `json:"name"`
}

type CreateProjectResult struct {
	Project project.Project `json:"project"`
}

type ListProjectsParams struct{}

type ListProjectsResult struct {
	Projects        []project.Project `json:"projects"`
	ActiveProjectID string            `json:"active_project_id,omitempty"`
}

type DeleteProjectParams struct {
	ID string `json:"id"`
}

type DeleteProjectResult struct {
	Deleted bool `json:"deleted"`
}

type SetActiveProjectParams struct {
	ID string `json:"id,omitempty"`
}

type SetActiveProjectResult struct {
	ActiveProjectID string `json:"active_project_id,omitempty"`
}

type AttachAudioParams struct {
	ProjectID   string `json:"project_id"`
	AudioBase64 string `json:"audio_base64"`
}

type AttachAudioResult struct {
	ProjectID string `json:"project_id"`
	Bytes     int    `json:"bytes"`
}

type AddPhraseParams struct {
	ProjectID string `json:"project_id,omitempty"`
}

type AddPhraseResult struct {
	Phrase phrase.AudioPhrase `json:"phrase"`
}

type UpdatePhraseParams struct {
	ID          string   `json:"id"`
	PhraseStart *float64 `json:"phrase_start,omitempty"`
	PhraseEnd   *float64 `json:"phrase_end,omitempty"`
	Complete    *bool    `json:"complete,omitempty"`
	Speed       *int     `json:"speed,omitempty"`
	PhraseName  *string  `json:"phrase_name,omitempty"`
	Color       *string  `json:"color,omitempty"`
}

type UpdatePhraseResult struct {
	Phrase phrase.AudioPhrase `json:"phrase"`
}

type DeletePhraseParams struct {
	ID string `json:"id"`
}

type DeletePhraseResult struct {
	Deleted bool `json:"deleted"`
}

type ListPhrasesParams struct {
	// ProjectID queries the full collection; omit for the active scope.
	ProjectID string `json:"project_id,omitempty"`
}

type ListPhrasesResult struct {
	Phrases []phrase.AudioPhrase `json:"phrases"`
}

type ValidateExportParams struct {
	ProjectID string `json:"project_id"`
}

type ValidateExportResult struct {
	Exportable bool   `json:"exportable"`
	Reason     string `json:"reason,omitempty"`
}

type ExportDeckParams struct {
	ProjectID string `json:"project_id"`
}

type ExportDeckResult struct {
	Filename      string            `json:"filename"`
	PackageBase64 string            `json:"package_base64"`
	Progress      []export.Progress `json:"progress"`
}
