package deck

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/json"
	"io"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestZipGenerator_PackagesItemsAndManifest(t *testing.T) {
	gen := NewZipGenerator()

	items := []Item{
		{Filename: "deck_phrase1.wav", Audio: []byte("one"), Label: "Greeting"},
		{Filename: "deck_phrase2.wav", Audio: []byte("two"), Label: "Farewell"},
	}

	pkg, err := gen.Generate(context.Background(), "My Deck", items)
	require.NoError(t, err)

	zr, err := zip.NewReader(bytes.NewReader(pkg), int64(len(pkg)))
	require.NoError(t, err)
	require.Len(t, zr.File, 3)

	contents := map[string][]byte{}
	for _, f := range zr.File {
		rc, err := f.Open()
		require.NoError(t, err)
		data, err := io.ReadAll(rc)
		require.NoError(t, err)
		require.NoError(t, rc.Close())
		contents[f.Name] = data
	}

	require.Equal(t, []byte("one"), contents["deck_phrase1.wav"])
	require.Equal(t, []byte("two"), contents["deck_phrase2.wav"])

	var m manifest
	require.NoError(t, json.Unmarshal(contents[manifestName], &m))
	require.Equal(t, "My Deck", m.Name)
	require.Len(t, m.Cards, 2)
	require.Equal(t, "Greeting", m.Cards[0].Label)
	require.Equal(t, "deck_phrase2.wav", m.Cards[1].Filename)
}

func TestZipGenerator_EmptyItems(t *testing.T) {
	gen := NewZipGenerator()

	pkg, err := gen.Generate(context.Background(), "Empty", nil)
	require.NoError(t, err)

	zr, err := zip.NewReader(bytes.NewReader(pkg), int64(len(pkg)))
	require.NoError(t, err)
	require.Len(t, zr.File, 1, "only the manifest")
}
