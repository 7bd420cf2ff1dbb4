package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/pkarpov/crewdeck/internal/collection"
	"github.com/pkarpov/crewdeck/internal/config"
	"github.com/pkarpov/crewdeck/internal/dashboard"
	"github.com/pkarpov/crewdeck/internal/domain/course"
	"github.com/pkarpov/crewdeck/internal/domain/crm"
	"github.com/pkarpov/crewdeck/internal/domain/finance"
	"github.com/pkarpov/crewdeck/internal/domain/goal"
	"github.com/pkarpov/crewdeck/internal/domain/job"
	"github.com/pkarpov/crewdeck/internal/domain/leave"
	"github.com/pkarpov/crewdeck/internal/domain/team"
	"github.com/pkarpov/crewdeck/internal/domain/timelog"
	"github.com/pkarpov/crewdeck/internal/mcp"
	"github.com/pkarpov/crewdeck/internal/sqlite"
	"github.com/pkarpov/crewdeck/internal/transport"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}

	// Use stderr for logs in stdio mode to keep stdout clean for JSON-RPC.
	logWriter := io.Writer(os.Stdout)
	if cfg.Transport.Mode == "stdio" {
		logWriter = os.Stderr
	}
	logger := slog.New(slog.NewTextHandler(logWriter, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.Log.Level),
	}))

	if err := ensureDBDir(cfg.DB.Path); err != nil {
		logger.Error("failed to prepare database path", "error", err)
		os.Exit(1)
	}

	db, err := sqlite.New(cfg.DB.Path)
	if err != nil {
		logger.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := db.RunMigrations(); err != nil {
		logger.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	telemetry := collection.SlogTelemetry{Logger: logger}

	crmModule := crm.NewModule(
		sqlite.NewSource[crm.Contact](db, "contacts"),
		sqlite.NewSource[crm.Lead](db, "leads"),
		sqlite.NewSource[crm.Interaction](db, "interactions"),
		telemetry,
	)
	financeModule := finance.NewModule(sqlite.NewSource[finance.Invoice](db, "invoices"), telemetry)
	courseModule := course.NewModule(sqlite.NewSource[course.Course](db, "courses"), telemetry)
	goalModule := goal.NewModule(
		sqlite.NewSource[goal.Objective](db, "objectives"),
		sqlite.NewSource[goal.KeyResult](db, "key_results"),
		telemetry,
	)
	timelogModule := timelog.NewModule(sqlite.NewSource[timelog.TimeLog](db, "time_logs"), telemetry, nil)
	leaveModule := leave.NewModule(sqlite.NewSource[leave.Request](db, "leave_requests"), telemetry)
	jobModule := job.NewModule(sqlite.NewSource[job.Application](db, "applications"), telemetry)
	teamModule := team.NewModule(sqlite.NewSource[team.Member](db, "members"), telemetry)

	registry := dashboard.NewRegistry(
		crmModule,
		financeModule,
		courseModule,
		goalModule,
		timelogModule.Module,
		leaveModule,
		jobModule,
		teamModule,
	)

	loadCtx, cancelLoad := context.WithTimeout(context.Background(), 30*time.Second)
	if err := registry.LoadAll(loadCtx); err != nil {
		logger.Warn("initial load incomplete", "error", err)
	}
	cancelLoad()

	if cfg.Transport.Mode == "stdio" {
		runStdioMode(logger, registry, timelogModule.Tracker)
	} else {
		runHTTPMode(logger, registry, timelogModule.Tracker, cfg)
	}
}

func runStdioMode(logger *slog.Logger, registry *dashboard.Registry, tracker *timelog.Tracker) {
	logger.Info("starting stdio transport")

	server := mcp.NewServer(mcp.Config{
		Registry: registry,
		Tracker:  tracker,
		Logger:   logger,
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-stop
		logger.Info("shutting down")
		cancel()
	}()

	// Run blocks until stdin closes or context is canceled.
	if err := server.Run(ctx, &sdkmcp.StdioTransport{}); err != nil {
		logger.Error("stdio server error", "error", err)
		os.Exit(1)
	}
}

func runHTTPMode(logger *slog.Logger, registry *dashboard.Registry, tracker *timelog.Tracker, cfg config.Config) {
	router := transport.NewServer(registry, tracker, cfg.Auth.Token, logger)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	httpServer := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	go func() {
		logger.Info("server listening", "addr", addr, "auth", cfg.Auth.Token != "")
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	waitForShutdown(logger, httpServer)
}

func waitForShutdown(logger *slog.Logger, server *http.Server) {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	logger.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("shutdown error", "error", err)
	}
}

func ensureDBDir(path string) error {
	if path == ":memory:" || path == "" {
		return nil
	}
	dir := filepath.Dir(path)
	if dir == "." {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
