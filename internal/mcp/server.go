package mcp

import (
	"log/slog"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/pkarpov/crewdeck/internal/dashboard"
	"github.com/pkarpov/crewdeck/internal/domain/timelog"
)

const serverInstructions = `Crewdeck exposes the workspace dashboard over MCP.

Start with list_modules to discover the available modules and their tabs.
Use list_records to browse a tab with optional search, filters and sorting,
and get_metrics for a module's headline numbers. Records are created,
patched and deleted with create_record, update_record and delete_record.
start_timer and stop_timer drive the work timer; stopping records a time
log in the timelog module.`

// Config contains server configuration.
type Config struct {
	Registry *dashboard.Registry
	Tracker  *timelog.Tracker
	Logger   *slog.Logger
}

// NewServer creates and configures an MCP server with all tools and middleware.
func NewServer(cfg Config) *sdkmcp.Server {
	server := sdkmcp.NewServer(&sdkmcp.Implementation{
		Name:    "crewdeck",
		Version: "0.1.0",
	}, &sdkmcp.ServerOptions{
		Instructions: serverInstructions,
		Logger:       cfg.Logger,
	})

	server.AddReceivingMiddleware(trafficLoggingMiddleware(cfg.Logger, "inbound"))
	server.AddSendingMiddleware(trafficLoggingMiddleware(cfg.Logger, "outbound"))

	registerTools(server, cfg.Registry, cfg.Tracker)

	return server
}
