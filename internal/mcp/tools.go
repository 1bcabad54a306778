package mcp

import (
	"context"
	"encoding/base64"
	"fmt"

	"github.com/lingokit/phrasedeck/internal/domain/phrase"
	"github.com/lingokit/phrasedeck/internal/domain/project"
	"github.com/lingokit/phrasedeck/internal/export"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

func registerTools(server *sdkmcp.Server, svc Services) {
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "create_project",
		Description: "Create a new project for one audio recording and make it active",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in CreateProjectParams) (*sdkmcp.CallToolResult, CreateProjectResult, error) {
		if in.Name == "" {
			return nil, CreateProjectResult{}, &APIError{Code: "INVALID_INPUT", Message: "project name is required"}
		}
		proj := svc.Registry.CreateProject(ctx, in.Name)
		return nil, CreateProjectResult{Project: *proj}, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "list_projects",
		Description: "List all projects and the active project id",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in ListProjectsParams) (*sdkmcp.CallToolResult, ListProjectsResult, error) {
		projects := svc.Registry.ListProjects()
		out := ListProjectsResult{
			Projects:        make([]project.Project, 0, len(projects)),
			ActiveProjectID: svc.Registry.ActiveProjectID(),
		}
		for _, proj := range projects {
			out.Projects = append(out.Projects, *proj)
		}
		return nil, out, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "delete_project",
		Description: "Delete a project, its source audio, and every phrase it owns",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in DeleteProjectParams) (*sdkmcp.CallToolResult, DeleteProjectResult, error) {
		svc.Registry.DeleteProject(ctx, in.ID)
		return nil, DeleteProjectResult{Deleted: true}, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "set_active_project",
		Description: "Switch the active project; omit id to deactivate",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in SetActiveProjectParams) (*sdkmcp.CallToolResult, SetActiveProjectResult, error) {
		if err := svc.Registry.SetActiveProject(ctx, in.ID); err != nil {
			return nil, SetActiveProjectResult{}, MapError(err)
		}
		return nil, SetActiveProjectResult{ActiveProjectID: svc.Registry.ActiveProjectID()}, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "attach_audio",
		Description: "Store a project's source audio (base64-encoded WAV)",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in AttachAudioParams) (*sdkmcp.CallToolResult, AttachAudioResult, error) {
		data, err := base64.StdEncoding.DecodeString(in.AudioBase64)
		if err != nil {
			return nil, AttachAudioResult{}, &APIError{Code: "INVALID_INPUT", Message: fmt.Sprintf("audio_base64: %v", err)}
		}
		if err := svc.Registry.AttachAudio(ctx, in.ProjectID, data); err != nil {
			return nil, AttachAudioResult{}, MapError(err)
		}
		return nil, AttachAudioResult{ProjectID: in.ProjectID, Bytes: len(data)}, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "add_phrase",
		Description: "Create a phrase in the given project, or the active project when omitted",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in AddPhraseParams) (*sdkmcp.CallToolResult, AddPhraseResult, error) {
		p, err := svc.Registry.AddPhrase(ctx, in.ProjectID)
		if err != nil {
			return nil, AddPhraseResult{}, MapError(err)
		}
		return nil, AddPhraseResult{Phrase: *p}, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "update_phrase",
		Description: "Merge partial fields into a phrase; timing edits are validated",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in UpdatePhraseParams) (*sdkmcp.CallToolResult, UpdatePhraseResult, error) {
		upd := phrase.Update{
			PhraseStart: in.PhraseStart,
			PhraseEnd:   in.PhraseEnd,
			Complete:    in.Complete,
			Speed:       in.Speed,
			PhraseName:  in.PhraseName,
			Color:       in.Color,
		}
		p, err := svc.Registry.UpdatePhrase(ctx, in.ID, upd)
		if err != nil {
			return nil, UpdatePhraseResult{}, MapError(err)
		}
		return nil, UpdatePhraseResult{Phrase: *p}, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "delete_phrase",
		Description: "Delete a phrase from its project",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in DeletePhraseParams) (*sdkmcp.CallToolResult, DeletePhraseResult, error) {
		svc.Registry.DeletePhrase(ctx, in.ID)
		return nil, DeletePhraseResult{Deleted: true}, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "list_phrases",
		Description: "List a project's phrases, or the active scope when project_id is omitted",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in ListPhrasesParams) (*sdkmcp.CallToolResult, ListPhrasesResult, error) {
		var phrases []*phrase.AudioPhrase
		if in.ProjectID != "" {
			phrases = svc.Registry.GetPhrasesForProject(in.ProjectID)
		} else {
			phrases = svc.Registry.ActivePhrases()
		}
		out := ListPhrasesResult{Phrases: make([]phrase.AudioPhrase, 0, len(phrases))}
		for _, p := range phrases {
			out.Phrases = append(out.Phrases, *p)
		}
		return nil, out, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "validate_export",
		Description: "Check whether a project can be exported without running the pipeline",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in ValidateExportParams) (*sdkmcp.CallToolResult, ValidateExportResult, error) {
		reason, err := svc.Exporter.ValidateForExport(in.ProjectID)
		if err != nil {
			return nil, ValidateExportResult{}, MapError(err)
		}
		return nil, ValidateExportResult{Exportable: reason == "", Reason: reason}, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "export_deck",
		Description: "Export every phrase of a project as WAV clips packaged into a deck",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in ExportDeckParams) (*sdkmcp.CallToolResult, ExportDeckResult, error) {
		var reports []export.Progress
		result, err := svc.Exporter.Export(ctx, in.ProjectID, func(p export.Progress) {
			reports = append(reports, p)
		})
		if err != nil {
			return nil, ExportDeckResult{Progress: reports}, MapError(err)
		}
		return nil, ExportDeckResult{
			Filename:      result.Filename,
			PackageBase64: base64.StdEncoding.EncodeToString(result.Package),
			Progress:      reports,
		}, nil
	})
}
