package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/claude/sweatlog/internal/reminder"
	"github.com/claude/sweatlog/internal/store"
	"github.com/claude/sweatlog/internal/watch"
	"github.com/claude/sweatlog/internal/youtube"
	"github.com/go-chi/chi/v5"
)

// Server holds dependencies for HTTP handlers.
type Server struct {
	logs      *store.LogBook
	playlist  *store.Playlist
	tracker   *watch.Tracker
	player    *RemotePlayer
	yt        *youtube.Client
	reminders *reminder.Scheduler
	log       *slog.Logger
	router    chi.Router
	now       func() time.Time
}

// New creates a new Server with all routes configured. reminders may
// be nil when the scheduler is disabled.
func New(logs *store.LogBook, playlist *store.Playlist, tracker *watch.Tracker, player *RemotePlayer, yt *youtube.Client, reminders *reminder.Scheduler, log *slog.Logger) *Server {
	s := &Server{
		logs:      logs,
		playlist:  playlist,
		tracker:   tracker,
		player:    player,
		yt:        yt,
		reminders: reminders,
		log:       log,
		router:    chi.NewRouter(),
		now:       time.Now,
	}
	s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	s.router.Use(RequestLogging(s.log))
	s.router.Use(CORS)

	s.router.Route("/api/v1", func(r chi.Router) {
		r.Get("/logs", s.handleListLogs)
		r.Post("/logs", s.handleCreateLog)
		r.Delete("/logs/{id}", s.handleDeleteLog)
		r.Get("/logs/calendar", s.handleCalendar)
		r.Get("/logs/months", s.handleMonthGroups)

		r.Get("/playlist", s.handleListPlaylist)
		r.Post("/playlist", s.handleAddPlaylistItem)
		r.Delete("/playlist/{id}", s.handleRemovePlaylistItem)

		r.Post("/resolve", s.handleResolve)

		r.Route("/player", func(r chi.Router) {
			r.Get("/", s.handlePlayerSnapshot)
			r.Post("/open", s.handlePlayerOpen)
			r.Post("/events", s.handlePlayerEvent)
			r.Post("/close", s.handlePlayerClose)
			r.Post("/confirm", s.handlePlayerConfirm)
			r.Post("/decline", s.handlePlayerDecline)
			r.Get("/commands", s.handlePlayerCommands)
		})
	})
}

// SetMCP mounts the MCP transport handler.
func (s *Server) SetMCP(h http.Handler) {
	s.router.Handle("/mcp", h)
	s.router.Handle("/mcp/*", h)
}
