package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/claude/sweatlog/internal/dates"
	"github.com/claude/sweatlog/internal/models"
	"github.com/claude/sweatlog/internal/store"
	"github.com/claude/sweatlog/internal/youtube"
	"github.com/go-chi/chi/v5"
)

func (s *Server) handleListLogs(w http.ResponseWriter, r *http.Request) {
	logs := s.logs.List()
	if logs == nil {
		logs = []models.ExerciseLog{}
	}
	writeJSON(w, http.StatusOK, logs)
}

type createLogRequest struct {
	VideoURL        string `json:"videoUrl"`
	DurationMinutes int    `json:"durationMinutes"`
	LoggedDate      string `json:"loggedDate"`
	Title           string `json:"title"`
}

func (s *Server) handleCreateLog(w http.ResponseWriter, r *http.Request) {
	var req createLogRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}

	videoID := youtube.ExtractVideoID(req.VideoURL)
	if videoID == "" {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"error": "could not extract a video ID from the URL"})
		return
	}
	if req.DurationMinutes < 1 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "duration must be at least 1 minute"})
		return
	}

	loggedDate := req.LoggedDate
	if loggedDate == "" {
		loggedDate = dates.FormatISO(s.now())
	}
	if !dates.ValidISO(loggedDate) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "loggedDate must be YYYY-MM-DD"})
		return
	}

	log := models.NewExerciseLog(req.VideoURL, videoID, youtube.ThumbnailURL(videoID), req.Title, req.DurationMinutes, loggedDate)
	if err := s.logs.Append(log); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if s.reminders != nil {
		s.reminders.Check()
	}
	writeJSON(w, http.StatusCreated, log)
}

func (s *Server) handleDeleteLog(w http.ResponseWriter, r *http.Request) {
	if !confirmed(r) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "deleting a log requires confirm=true"})
		return
	}

	removed, err := s.logs.Remove(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if !removed {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "log not found"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"deleted": true})
}

// calendarDay is one cell of the month grid.
type calendarDay struct {
	Date string               `json:"date"`
	Logs []models.ExerciseLog `json:"logs"`
}

// monthRef points the calendar navigation at an adjacent month.
type monthRef struct {
	Year  int `json:"year"`
	Month int `json:"month"`
}

func (s *Server) handleCalendar(w http.ResponseWriter, r *http.Request) {
	now := s.now()
	year, month := now.Year(), now.Month()

	if v := r.URL.Query().Get("year"); v != "" {
		y, err := strconv.Atoi(v)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid year"})
			return
		}
		year = y
	}
	if v := r.URL.Query().Get("month"); v != "" {
		m, err := strconv.Atoi(v)
		if err != nil || m < 1 || m > 12 {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "month must be 1-12"})
			return
		}
		month = time.Month(m)
	}

	days := dates.DaysInMonth(year, month)
	out := make([]calendarDay, len(days))
	today := ""
	for i, d := range days {
		date := dates.FormatISO(d)
		logs := s.logs.ForDate(date)
		if logs == nil {
			logs = []models.ExerciseLog{}
		}
		if dates.IsSameDay(d, now) {
			today = date
		}
		out[i] = calendarDay{Date: date, Logs: logs}
	}

	prev := dates.AddMonths(days[0], -1)
	next := dates.AddMonths(days[0], 1)

	writeJSON(w, http.StatusOK, map[string]any{
		"year":      year,
		"month":     int(month),
		"monthName": dates.MonthName(month),
		"today":     today,
		"prev":      monthRef{Year: prev.Year(), Month: int(prev.Month())},
		"next":      monthRef{Year: next.Year(), Month: int(next.Month())},
		"days":      out,
	})
}

func (s *Server) handleMonthGroups(w http.ResponseWriter, r *http.Request) {
	groups := s.logs.MonthGroups()
	if groups == nil {
		groups = []store.MonthGroup{}
	}
	writeJSON(w, http.StatusOK, groups)
}

func (s *Server) handleListPlaylist(w http.ResponseWriter, r *http.Request) {
	items := s.playlist.List()
	if items == nil {
		items = []models.PlaylistItem{}
	}
	writeJSON(w, http.StatusOK, items)
}

type addPlaylistRequest struct {
	VideoURL string `json:"videoUrl"`
}

func (s *Server) handleAddPlaylistItem(w http.ResponseWriter, r *http.Request) {
	var req addPlaylistRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}

	videoID := youtube.ExtractVideoID(req.VideoURL)
	if videoID == "" {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"error": "could not extract a video ID from the URL"})
		return
	}
	if s.playlist.ContainsVideo(videoID) {
		writeJSON(w, http.StatusConflict, map[string]string{"error": "this video is already in your playlist"})
		return
	}

	// Metadata is best-effort: a failed lookup falls back to a generic
	// title and a derived thumbnail, it never blocks the add.
	info, err := s.yt.FetchVideoInfo(req.VideoURL)
	if err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"error": err.Error()})
		return
	}

	item := models.NewPlaylistItem(req.VideoURL, info.VideoID, info.Title, info.ThumbnailURL, s.now())
	if err := s.playlist.Append(item); err != nil {
		if errors.Is(err, store.ErrDuplicateVideo) {
			writeJSON(w, http.StatusConflict, map[string]string{"error": "this video is already in your playlist"})
			return
		}
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusCreated, item)
}

func (s *Server) handleRemovePlaylistItem(w http.ResponseWriter, r *http.Request) {
	if !confirmed(r) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "removing a playlist item requires confirm=true"})
		return
	}

	removed, err := s.playlist.Remove(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if !removed {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "playlist item not found"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"deleted": true})
}

type resolveRequest struct {
	VideoURL string `json:"videoUrl"`
}

func (s *Server) handleResolve(w http.ResponseWriter, r *http.Request) {
	var req resolveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}

	videoID := youtube.ExtractVideoID(req.VideoURL)
	if videoID == "" {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"error": "could not extract a video ID from the URL"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"videoId":      videoID,
		"thumbnailUrl": youtube.ThumbnailURL(videoID),
		"watchUrl":     youtube.WatchURL(videoID),
	})
}

// confirmed reports whether the request carries the explicit
// confirmation destructive actions require.
func confirmed(r *http.Request) bool {
	return r.URL.Query().Get("confirm") == "true"
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
