package integration_test

import (
	"archive/zip"
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lingokit/phrasedeck/internal/audio"
	"github.com/lingokit/phrasedeck/internal/deck"
	"github.com/lingokit/phrasedeck/internal/domain/phrase"
	"github.com/lingokit/phrasedeck/internal/domain/project"
	"github.com/lingokit/phrasedeck/internal/export"
	"github.com/lingokit/phrasedeck/internal/registry"
	"github.com/lingokit/phrasedeck/internal/sqlite"
)

type testEnv struct {
	db       *sqlite.DB
	records  *sqlite.RecordStore
	blobs    *sqlite.BlobStore
	registry *registry.Registry
	exporter *export.Orchestrator
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := sqlite.New(dsn)
	require.NoError(t, err)
	require.NoError(t, db.RunMigrations())
	t.Cleanup(func() { _ = db.Close() })

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	records := sqlite.NewRecordStore(db)
	blobs := sqlite.NewBlobStore(db)
	reg := registry.New(records, blobs, logger)
	require.NoError(t, reg.Load(context.Background()))
	exporter := export.NewOrchestrator(reg, blobs, deck.NewZipGenerator(), logger)

	return &testEnv{
		db:       db,
		records:  records,
		blobs:    blobs,
		registry: reg,
		exporter: exporter,
	}
}

func toneWAV(t *testing.T, seconds float64) []byte {
	t.Helper()
	const rate = 44100
	frames := int(seconds * rate)
	samples := make([]float64, frames)
	for i := range samples {
		samples[i] = 0.4 * math.Sin(2*math.Pi*220*float64(i)/rate)
	}
	data, err := audio.Encode(&audio.Buffer{SampleRate: rate, Channels: [][]float64{samples}}, 16)
	require.NoError(t, err)
	return data
}

func setTiming(t *testing.T, env *testEnv, phraseID string, start, end float64) {
	t.Helper()
	_, err := env.registry.UpdatePhrase(context.Background(), phraseID, phrase.Update{
		PhraseStart: &start,
		PhraseEnd:   &end,
	})
	require.NoError(t, err)
}

func TestIntegration_ColdStartToExport(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	proj := env.registry.CreateProject(ctx, "Italian Basics")
	require.NoError(t, env.registry.AttachAudio(ctx, proj.ID, toneWAV(t, 3.0)))

	p1, err := env.registry.AddPhrase(ctx, "")
	require.NoError(t, err)
	setTiming(t, env, p1.PhraseID, 0.0, 1.0)

	p2, err := env.registry.AddPhrase(ctx, "")
	require.NoError(t, err)
	setTiming(t, env, p2.PhraseID, 1.5, 2.75)

	reason, err := env.exporter.ValidateForExport(proj.ID)
	require.NoError(t, err)
	require.Empty(t, reason)

	result, err := env.exporter.Export(ctx, proj.ID, nil)
	require.NoError(t, err)
	require.Equal(t, "Italian_Basics.deck.zip", result.Filename)

	zr, err := zip.NewReader(bytes.NewReader(result.Package), int64(len(result.Package)))
	require.NoError(t, err)
	names := make([]string, 0, len(zr.File))
	for _, f := range zr.File {
		names = append(names, f.Name)
	}
	require.Contains(t, names, "Italian_Basics_phrase1.wav")
	require.Contains(t, names, "Italian_Basics_phrase2.wav")
	require.Contains(t, names, "deck.json")
}

func TestIntegration_RestartRecoversState(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	proj := env.registry.CreateProject(ctx, "Session One")
	require.NoError(t, env.registry.AttachAudio(ctx, proj.ID, toneWAV(t, 2.0)))
	p, err := env.registry.AddPhrase(ctx, "")
	require.NoError(t, err)
	setTiming(t, env, p.PhraseID, 0.25, 1.25)

	// A second registry over the same database is a process restart.
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	reg2 := registry.New(env.records, env.blobs, logger)
	require.NoError(t, reg2.Load(ctx))

	require.Equal(t, proj.ID, reg2.ActiveProjectID())
	restored, err := reg2.GetProject(proj.ID)
	require.NoError(t, err)
	require.Equal(t, "Session One", restored.Name)
	require.Equal(t, []string{p.PhraseID}, restored.PhraseIDs)

	exporter := export.NewOrchestrator(reg2, env.blobs, deck.NewZipGenerator(), logger)
	result, err := exporter.Export(ctx, proj.ID, nil)
	require.NoError(t, err)
	require.NotEmpty(t, result.Package)
}

func TestIntegration_ProjectDeletionLeavesNoTrace(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	keep := env.registry.CreateProject(ctx, "Keep")
	doomed := env.registry.CreateProject(ctx, "Doomed")
	require.NoError(t, env.registry.AttachAudio(ctx, doomed.ID, toneWAV(t, 1.0)))
	_, err := env.registry.AddPhrase(ctx, doomed.ID)
	require.NoError(t, err)

	env.registry.DeleteProject(ctx, doomed.ID)

	// The persisted collections no longer mention the project.
	projects, err := env.records.LoadProjects(ctx)
	require.NoError(t, err)
	require.Len(t, projects, 1)
	require.Equal(t, keep.ID, projects[0].ID)

	phrases, err := env.records.LoadPhrases(ctx)
	require.NoError(t, err)
	require.Empty(t, phrases)

	blob, err := env.blobs.Get(ctx, doomed.ID)
	require.NoError(t, err)
	require.Nil(t, blob)

	_, err = env.registry.GetProject(doomed.ID)
	require.ErrorIs(t, err, project.ErrNotFound)
}
