package mcp

import (
	"log/slog"

	"github.com/claude/sweatlog/internal/store"
	"github.com/claude/sweatlog/internal/youtube"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// New creates an MCP server with all tools and resources registered.
func New(logs *store.LogBook, playlist *store.Playlist, yt *youtube.Client, version string, log *slog.Logger) *server.MCPServer {
	s := server.NewMCPServer("SweatLog", version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
		server.WithInstructions("SweatLog workout tracking server. Query and record YouTube workout sessions, browse the workout history, and manage the saved playlist."),
	)

	h := &handlers{logs: logs, playlist: playlist, yt: yt, log: log}

	// Tools
	s.AddTools(
		server.ServerTool{Tool: toolListWorkouts, Handler: h.listWorkouts},
		server.ServerTool{Tool: toolLogWorkout, Handler: h.logWorkout},
		server.ServerTool{Tool: toolDeleteWorkout, Handler: h.deleteWorkout},
		server.ServerTool{Tool: toolWorkoutSummary, Handler: h.workoutSummary},
		server.ServerTool{Tool: toolListPlaylist, Handler: h.listPlaylist},
		server.ServerTool{Tool: toolAddPlaylistItem, Handler: h.addPlaylistItem},
	)

	// Resources
	s.AddResources(
		server.ServerResource{Resource: resRecentWorkouts, Handler: h.recentWorkouts},
		server.ServerResource{Resource: resPlaylist, Handler: h.playlistResource},
	)

	return s
}

// handlers holds dependencies for MCP tool/resource handlers.
type handlers struct {
	logs     *store.LogBook
	playlist *store.Playlist
	yt       *youtube.Client
	log      *slog.Logger
}

// --- Resource definitions ---

var resRecentWorkouts = mcp.NewResource(
	"sweatlog://recent_workouts",
	"Recent Workouts",
	mcp.WithResourceDescription("Exercise logs from the last 14 days"),
	mcp.WithMIMEType("application/json"),
)

var resPlaylist = mcp.NewResource(
	"sweatlog://playlist",
	"Workout Playlist",
	mcp.WithResourceDescription("Saved workout videos, newest first"),
	mcp.WithMIMEType("application/json"),
)
