package deck

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
)

// manifestName is the label manifest entry inside a zip package.
const manifestName = "deck.json"

// ZipGenerator packages items into a zip archive holding the media
// files plus a manifest mapping filenames to phrase labels. It stands
// in for an external deck runtime; the output stays opaque bytes to the
// rest of the system.
type ZipGenerator struct{}

// NewZipGenerator creates a ZipGenerator.
func NewZipGenerator() *ZipGenerator {
	return &ZipGenerator{}
}

type manifestEntry struct {
	Filename string `json:"filename"`
	Label    string `json:"label"`
}

type manifest struct {
	Name  string          `json:"name"`
	Cards []manifestEntry `json:"cards"`
}

// Generate writes the deck package.
func (g *ZipGenerator) Generate(ctx context.Context, deckName string, items []Item) ([]byte, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	m := manifest{Name: deckName, Cards: make([]manifestEntry, 0, len(items))}
	for _, item := range items {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		w, err := zw.Create(item.Filename)
		if err != nil {
			return nil, fmt.Errorf("creating deck entry %s: %w", item.Filename, err)
		}
		if _, err := w.Write(item.Audio); err != nil {
			return nil, fmt.Errorf("writing deck entry %s: %w", item.Filename, err)
		}
		m.Cards = append(m.Cards, manifestEntry{Filename: item.Filename, Label: item.Label})
	}

	encoded, err := json.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("encoding deck manifest: %w", err)
	}
	w, err := zw.Create(manifestName)
	if err != nil {
		return nil, fmt.Errorf("creating deck manifest: %w", err)
	}
	if _, err := w.Write(encoded); err != nil {
		return nil, fmt.Errorf("writing deck manifest: %w", err)
	}

	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("finalizing deck package: %w", err)
	}
	return buf.Bytes(), nil
}
