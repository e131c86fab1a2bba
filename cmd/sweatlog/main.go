package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/claude/sweatlog/internal/config"
	"github.com/claude/sweatlog/internal/dates"
	"github.com/claude/sweatlog/internal/kv"
	"github.com/claude/sweatlog/internal/mcp"
	"github.com/claude/sweatlog/internal/models"
	"github.com/claude/sweatlog/internal/reminder"
	"github.com/claude/sweatlog/internal/server"
	"github.com/claude/sweatlog/internal/store"
	"github.com/claude/sweatlog/internal/watch"
	"github.com/claude/sweatlog/internal/youtube"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"tailscale.com/tsnet"
)

// Version is set at build time via -ldflags.
var Version = "dev"

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	log.Info("SweatLog starting", "version", Version)

	// Load config
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Open the key-value store
	state, err := openStore(cfg, log)
	if err != nil {
		log.Error("failed to open storage", "backend", cfg.Storage.Backend, "error", err)
		os.Exit(1)
	}
	defer state.Close()
	log.Info("storage opened", "backend", cfg.Storage.Backend)

	// Load the persisted collections
	logs, err := store.OpenLogBook(state)
	if err != nil {
		log.Error("failed to load exercise logs", "error", err)
		os.Exit(1)
	}
	playlist, err := store.OpenPlaylist(state)
	if err != nil {
		log.Error("failed to load playlist", "error", err)
		os.Exit(1)
	}
	log.Info("collections loaded", "logs", logs.Len(), "playlist", playlist.Len())

	yt := youtube.NewClient(cfg.YouTube.OEmbedURL)

	// Reminder scheduler
	var reminders *reminder.Scheduler
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if cfg.Reminder.Enabled {
		var notifier reminder.Notifier
		if cfg.Reminder.NotifyCommand != "" {
			notifier = reminder.CommandNotifier{Command: cfg.Reminder.NotifyCommand}
		}
		reminders = reminder.New(logs, state, notifier, log)
		go reminders.Run(ctx)
		log.Info("reminder scheduler running")
	}

	// Watch-session tracker over the browser-side player. A confirmed
	// session lands in the log book dated today.
	player := server.NewRemotePlayer()
	collect := func(r watch.Result) {
		l := models.NewExerciseLog(r.VideoURL, r.VideoID, r.ThumbnailURL, r.Title, r.DurationMinutes, dates.FormatISO(time.Now()))
		if err := logs.Append(l); err != nil {
			log.Error("failed to save confirmed session", "video", r.VideoID, "error", err)
			return
		}
		log.Info("session logged", "video", r.VideoID, "minutes", r.DurationMinutes)
		if reminders != nil {
			reminders.Check()
		}
	}
	tracker := watch.NewTracker(player, collect, log)

	srv := server.New(logs, playlist, tracker, player, yt, reminders, log)

	if cfg.MCP.Enabled {
		m := mcp.New(logs, playlist, yt, Version, log)
		srv.SetMCP(mcpserver.NewStreamableHTTPServer(m))
		log.Info("MCP endpoint mounted", "path", "/mcp")
	}

	// Start server — tsnet or plain HTTP
	var listener net.Listener
	var tsServer *tsnet.Server

	if cfg.Tailscale.Enabled {
		tsServer = &tsnet.Server{
			Hostname: cfg.Tailscale.Hostname,
			Dir:      cfg.Tailscale.StateDir,
		}
		if err := tsServer.Start(); err != nil {
			log.Error("tsnet start failed", "error", err)
			os.Exit(1)
		}
		defer tsServer.Close()

		listener, err = tsServer.Listen("tcp", ":80")
		if err != nil {
			log.Error("tsnet listen failed", "error", err)
			os.Exit(1)
		}
		log.Info("tsnet server starting", "hostname", cfg.Tailscale.Hostname)
	} else {
		addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
		listener, err = net.Listen("tcp", addr)
		if err != nil {
			log.Error("listen failed", "addr", addr, "error", err)
			os.Exit(1)
		}
		log.Info("server starting", "addr", addr, "mode", "local (no tailscale)")
	}

	httpSrv := &http.Server{Handler: srv}

	go func() {
		if err := httpSrv.Serve(listener); err != nil && err != http.ErrServerClosed {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	log.Info("shutting down", "signal", sig)
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown error", "error", err)
	}
	log.Info("server stopped")
}

// openStore selects and opens the configured key-value backend. The
// postgres backend runs its migrations first.
func openStore(cfg *config.Config, log *slog.Logger) (kv.Store, error) {
	switch cfg.Storage.Backend {
	case "sqlite":
		return kv.OpenSQLite(cfg.Storage.Dir)
	case "badger":
		return kv.OpenBadger(cfg.Storage.Dir)
	case "postgres":
		dsn := cfg.Storage.Postgres.DSN()
		if err := kv.RunMigrations(dsn, "migrations"); err != nil {
			return nil, fmt.Errorf("migration failed: %w", err)
		}
		log.Info("migrations applied")
		return kv.OpenPostgres(context.Background(), dsn)
	}
	return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
}
