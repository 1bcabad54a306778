// Package deck defines the boundary to the flashcard-deck package
// generator the exporter hands its output to.
package deck

import "context"

// Item is one exported clip: a stable filesystem-safe filename, the
// encoded audio bytes, and the user-visible phrase label.
type Item struct {
	Filename string
	Audio    []byte
	Label    string
}

// Generator turns an ordered list of items into one opaque binary
// package. Implementations share process-wide state at their own
// discretion; callers must serialize generations.
type Generator interface {
	Generate(ctx context.Context, deckName string, items []Item) ([]byte, error)
}
