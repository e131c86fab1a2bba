package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/claude/sweatlog/internal/store"
	"github.com/claude/sweatlog/internal/watch"
)

func (s *Server) handlePlayerSnapshot(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.tracker.Snapshot())
}

type playerOpenRequest struct {
	ItemID string `json:"itemId"`
}

func (s *Server) handlePlayerOpen(w http.ResponseWriter, r *http.Request) {
	var req playerOpenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}

	item, err := s.playlist.Get(req.ItemID)
	if errors.Is(err, store.ErrNotFound) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "playlist item not found"})
		return
	}
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	if err := s.tracker.Open(item); err != nil {
		// The session stays in loading; the client may re-request open.
		s.log.Warn("player open", "item", item.VideoID, "error", err)
		writeJSON(w, http.StatusServiceUnavailable, map[string]any{
			"error":   err.Error(),
			"session": s.tracker.Snapshot(),
		})
		return
	}
	writeJSON(w, http.StatusOK, s.tracker.Snapshot())
}

type playerEventRequest struct {
	Event string `json:"event"`
}

func (s *Server) handlePlayerEvent(w http.ResponseWriter, r *http.Request) {
	var req playerEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}

	switch req.Event {
	case "ready":
		s.tracker.HandleReady()
	case "playing":
		s.tracker.HandleEvent(watch.EventPlaying)
	case "ended":
		s.tracker.HandleEvent(watch.EventEnded)
	case "paused", "buffering", "cued":
		s.tracker.HandleEvent(watch.EventPaused)
	default:
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "unknown player event"})
		return
	}
	writeJSON(w, http.StatusOK, s.tracker.Snapshot())
}

func (s *Server) handlePlayerClose(w http.ResponseWriter, r *http.Request) {
	pending := s.tracker.RequestClose()
	writeJSON(w, http.StatusOK, map[string]any{
		"promptPending": pending,
		"session":       s.tracker.Snapshot(),
	})
}

func (s *Server) handlePlayerConfirm(w http.ResponseWriter, r *http.Request) {
	res, err := s.tracker.Confirm()
	if errors.Is(err, watch.ErrNoPrompt) {
		writeJSON(w, http.StatusConflict, map[string]string{"error": "no log prompt pending"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"logged":          true,
		"durationMinutes": res.DurationMinutes,
		"watched":         watch.WatchedPhrase(res.WatchedSeconds),
	})
}

func (s *Server) handlePlayerDecline(w http.ResponseWriter, r *http.Request) {
	if err := s.tracker.Decline(); errors.Is(err, watch.ErrNoPrompt) {
		writeJSON(w, http.StatusConflict, map[string]string{"error": "no log prompt pending"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"logged": false})
}

func (s *Server) handlePlayerCommands(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"commands": s.player.Drain()})
}
