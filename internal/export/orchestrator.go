// Package export sequences registry lookups, segment extraction, WAV
// encoding, and deck generation into one staged pipeline.
package export

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/lingokit/phrasedeck/internal/audio"
	"github.com/lingokit/phrasedeck/internal/deck"
	"github.com/lingokit/phrasedeck/internal/domain/phrase"
	"github.com/lingokit/phrasedeck/internal/registry"
	"github.com/lingokit/phrasedeck/internal/store"
	"github.com/lingokit/phrasedeck/internal/textutil"
)

// exportBitDepth is the PCM depth of exported clips.
const exportBitDepth = 16

// Result is a finished export: the opaque package bytes plus a
// suggested filesystem-safe download filename.
type Result struct {
	Filename string
	Package  []byte
}

// Orchestrator runs exports. One export at a time; concurrent calls
// against the same project race on the blob read and the generator's
// shared state, so callers serialize.
type Orchestrator struct {
	registry  *registry.Registry
	blobs     store.BlobStore
	generator deck.Generator
	logger    *slog.Logger
}

// NewOrchestrator creates an export orchestrator.
func NewOrchestrator(reg *registry.Registry, blobs store.BlobStore, generator deck.Generator, logger *slog.Logger) *Orchestrator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Orchestrator{registry: reg, blobs: blobs, generator: generator, logger: logger}
}

// Export runs the full pipeline for one project. Any failure surfaces
// through the error stage and aborts; partial output is discarded.
// There is no cancellation once extraction begins beyond the context
// checks between stages.
func (o *Orchestrator) Export(ctx context.Context, projectID string, onProgress ProgressFunc) (*Result, error) {
	result, err := o.run(ctx, projectID, onProgress)
	if err != nil {
		o.logger.Error("export failed", "project", projectID, "error", err)
		report(onProgress, Progress{Stage: StageError, Message: err.Error(), Percent: 0})
		return nil, err
	}
	return result, nil
}

func (o *Orchestrator) run(ctx context.Context, projectID string, onProgress ProgressFunc) (*Result, error) {
	report(onProgress, Progress{Stage: StageInitializing, Message: "Initializing export...", Percent: 0})

	proj, err := o.registry.GetProject(projectID)
	if err != nil {
		return nil, err
	}
	phrases := o.registry.GetPhrasesForProject(projectID)
	if len(phrases) == 0 {
		return nil, ErrEmptyProject
	}

	report(onProgress, Progress{Stage: StageExtracting, Message: "Extracting audio segments...", Percent: 20})

	blob, err := o.blobs.Get(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("reading project audio: %w", err)
	}
	if blob == nil {
		return nil, ErrNoAudio
	}

	// Decode the source once; every phrase slices the same buffer.
	source, err := audio.Decode(blob)
	if err != nil {
		return nil, err
	}

	items, err := o.extractAll(proj.Name, phrases, source)
	if err != nil {
		return nil, err
	}

	report(onProgress, Progress{Stage: StageGenerating, Message: "Generating deck...", Percent: 60})

	pkg, err := o.generator.Generate(ctx, proj.Name, items)
	if err != nil {
		return nil, fmt.Errorf("generating deck: %w", err)
	}

	report(onProgress, Progress{Stage: StageDownloading, Message: "Preparing download...", Percent: 90})

	result := &Result{
		Filename: textutil.SanitizeFileName(proj.Name) + ".deck.zip",
		Package:  pkg,
	}

	report(onProgress, Progress{Stage: StageComplete, Message: "Export completed successfully!", Percent: 100})
	o.logger.Info("export complete", "project", projectID, "clips", len(items), "bytes", len(pkg))
	return result, nil
}

func (o *Orchestrator) extractAll(projectName string, phrases []*phrase.AudioPhrase, source *audio.Buffer) ([]deck.Item, error) {
	base := textutil.SanitizeFileName(projectName)
	items := make([]deck.Item, 0, len(phrases))
	for i, p := range phrases {
		segment, err := audio.Extract(source, p.PhraseStart, p.PhraseEnd)
		if err != nil {
			return nil, fmt.Errorf("extracting %s: %w", p.PhraseName, err)
		}
		encoded, err := audio.Encode(segment, exportBitDepth)
		if err != nil {
			return nil, fmt.Errorf("encoding %s: %w", p.PhraseName, err)
		}
		items = append(items, deck.Item{
			Filename: fmt.Sprintf("%s_phrase%d.wav", base, i+1),
			Audio:    encoded,
			Label:    p.PhraseName,
		})
	}
	return items, nil
}

// ValidateForExport reports why a project cannot be exported, or ""
// when it can. It never runs the pipeline.
func (o *Orchestrator) ValidateForExport(projectID string) (string, error) {
	if _, err := o.registry.GetProject(projectID); err != nil {
		return "", err
	}
	phrases := o.registry.GetPhrasesForProject(projectID)
	if len(phrases) == 0 {
		return "Project has no phrases to export", nil
	}
	invalid := 0
	for _, p := range phrases {
		if phrase.ValidateTiming(p.PhraseStart, p.PhraseEnd) != nil {
			invalid++
		}
	}
	if invalid > 0 {
		return fmt.Sprintf("%d phrase(s) have invalid timing", invalid), nil
	}
	return "", nil
}

func report(onProgress ProgressFunc, p Progress) {
	if onProgress != nil {
		onProgress(p)
	}
}
