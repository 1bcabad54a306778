package mcp

import (
	"log/slog"

	"github.com/lingokit/phrasedeck/internal/export"
	"github.com/lingokit/phrasedeck/internal/registry"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

const serverInstructions = `phrasedeck marks time-bounded phrases inside one audio recording per
project and exports each phrase as a playable clip packaged into a deck.

Typical flow: create_project, attach_audio, then add_phrase and
update_phrase to time each excerpt, and export_deck when done. Phrase
creation targets the active project unless project_id is passed.`

// Services contains the engine surfaces the tools call into.
type Services struct {
	Registry *registry.Registry
	Exporter *export.Orchestrator
}

// Config contains server configuration.
type Config struct {
	Services Services
	Logger   *slog.Logger
}

// NewServer creates and configures an MCP server with all tools and
// middleware.
func NewServer(cfg Config) *sdkmcp.Server {
	server := sdkmcp.NewServer(&sdkmcp.Implementation{
		Name:    "phrasedeck",
		Version: "0.1.0",
	}, &sdkmcp.ServerOptions{
		Instructions: serverInstructions,
		Logger:       cfg.Logger,
	})

	registerDocResources(server)

	server.AddReceivingMiddleware(trafficLoggingMiddleware(cfg.Logger, "inbound"))
	server.AddSendingMiddleware(trafficLoggingMiddleware(cfg.Logger, "outbound"))

	registerTools(server, cfg.Services)

	return server
}
