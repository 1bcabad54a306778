package mcp

import (
	"context"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

type docResource struct {
	URI         string
	Name        string
	Title       string
	Description string
	Content     string
}

var docResources = []docResource{
	{
		URI:         "phrasedeck://docs/workflow",
		Name:        "workflow",
		Title:       "Phrasedeck workflow",
		Description: "How projects, phrases, and deck export fit together",
		Content: `# Phrasedeck workflow

A project owns one source audio recording and an ordered set of
phrases. Each phrase is a time-bounded excerpt with its own playback
speed and completion flag.

## Marking phrases

1. ` + "`create_project`" + ` — the new project becomes active.
2. ` + "`attach_audio`" + ` — store the recording (uncompressed PCM WAV).
3. ` + "`add_phrase`" + ` — phrases start with zero bounds.
4. ` + "`update_phrase`" + ` — set phrase_start/phrase_end (seconds); edits
   violating start >= 0 and end > start are rejected and leave the
   phrase unchanged. Mark ` + "`complete`" + ` once the timing is confirmed.

## Exporting

` + "`export_deck`" + ` slices every phrase out of the recording, encodes each
as 16-bit PCM WAV, and packages the clips into one deck file. A phrase
window reaching past the end of the recording is padded with silence.
Run ` + "`validate_export`" + ` first to catch empty projects or untimed
phrases. Exports are not concurrent-safe; run one at a time.
`,
	},
}

func registerDocResources(server *sdkmcp.Server) {
	for _, doc := range docResources {
		doc := doc

		server.AddResource(&sdkmcp.Resource{
			URI:         doc.URI,
			Name:        doc.Name,
			Title:       doc.Title,
			Description: doc.Description,
			MIMEType:    "text/markdown",
			Size:        int64(len(doc.Content)),
		}, func(_ context.Context, req *sdkmcp.ReadResourceRequest) (*sdkmcp.ReadResourceResult, error) {
			uri := doc.URI
			if req != nil && req.Params != nil && req.Params.URI != "" {
				uri = req.Params.URI
			}
			return &sdkmcp.ReadResourceResult{
				Contents: []*sdkmcp.ResourceContents{{
					URI:      uri,
					MIMEType: "text/markdown",
					Text:     doc.Content,
				}},
			}, nil
		})
	}
}
