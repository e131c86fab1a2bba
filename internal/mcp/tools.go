package mcp

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/claude/sweatlog/internal/dates"
	"github.com/claude/sweatlog/internal/models"
	"github.com/claude/sweatlog/internal/store"
	"github.com/claude/sweatlog/internal/youtube"
	"github.com/mark3labs/mcp-go/mcp"
)

// dateRange validates optional ISO date bounds. Empty strings mean
// unbounded on that side.
func dateRange(start, end string) (string, string, error) {
	if start != "" && !dates.ValidISO(start) {
		return "", "", fmt.Errorf("invalid start date %q, want YYYY-MM-DD", start)
	}
	if end != "" && !dates.ValidISO(end) {
		return "", "", fmt.Errorf("invalid end date %q, want YYYY-MM-DD", end)
	}
	return start, end, nil
}

// filterLogs keeps the logs dated within [start, end]. ISO dates compare
// lexicographically.
func filterLogs(logs []models.ExerciseLog, start, end string) []models.ExerciseLog {
	out := make([]models.ExerciseLog, 0, len(logs))
	for _, l := range logs {
		if start != "" && l.LoggedDate < start {
			continue
		}
		if end != "" && l.LoggedDate > end {
			continue
		}
		out = append(out, l)
	}
	return out
}

// --- Tool definitions ---

var toolListWorkouts = mcp.NewTool("list_workouts",
	mcp.WithDescription("List logged workout sessions, newest first. Each entry has the video, duration in minutes, and calendar date."),
	mcp.WithString("start", mcp.Description("Earliest date to include (YYYY-MM-DD). Defaults to unbounded.")),
	mcp.WithString("end", mcp.Description("Latest date to include (YYYY-MM-DD). Defaults to unbounded.")),
)

var toolLogWorkout = mcp.NewTool("log_workout",
	mcp.WithDescription("Record a completed workout session for a YouTube video. Title and thumbnail are resolved from the video when not given."),
	mcp.WithString("video_url", mcp.Required(), mcp.Description("YouTube video URL (watch, share, or embed form)")),
	mcp.WithNumber("duration_minutes", mcp.Required(), mcp.Description("Session length in whole minutes, at least 1")),
	mcp.WithString("date", mcp.Description("Calendar date of the session (YYYY-MM-DD). Defaults to today.")),
	mcp.WithString("title", mcp.Description("Title override. Defaults to the video's own title.")),
)

var toolDeleteWorkout = mcp.NewTool("delete_workout",
	mcp.WithDescription("Delete a logged workout session by its ID."),
	mcp.WithString("id", mcp.Required(), mcp.Description("Exercise log ID")),
)

var toolWorkoutSummary = mcp.NewTool("workout_summary",
	mcp.WithDescription("Summarize the workout history: total sessions, total minutes, and per-month counts."),
)

var toolListPlaylist = mcp.NewTool("list_playlist",
	mcp.WithDescription("List the saved workout videos, newest first."),
)

var toolAddPlaylistItem = mcp.NewTool("add_playlist_item",
	mcp.WithDescription("Save a YouTube workout video to the playlist. Each video can be saved once."),
	mcp.WithString("video_url", mcp.Required(), mcp.Description("YouTube video URL (watch, share, or embed form)")),
)

// --- Tool handlers ---

func (h *handlers) listWorkouts(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	start, end, err := dateRange(req.GetString("start", ""), req.GetString("end", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	logs := filterLogs(h.logs.List(), start, end)

	result, err := mcp.NewToolResultJSON(logs)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) logWorkout(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	videoURL, err := req.RequireString("video_url")
	if err != nil {
		return mcp.NewToolResultError("video_url parameter is required"), nil
	}
	minutes, err := req.RequireInt("duration_minutes")
	if err != nil {
		return mcp.NewToolResultError("duration_minutes parameter is required"), nil
	}

	date := req.GetString("date", "")
	if date == "" {
		date = dates.FormatISO(time.Now())
	} else if !dates.ValidISO(date) {
		return mcp.NewToolResultError(fmt.Sprintf("invalid date %q, want YYYY-MM-DD", date)), nil
	}

	info, err := h.yt.FetchVideoInfo(videoURL)
	if err != nil {
		return mcp.NewToolResultError("could not resolve a YouTube video from " + videoURL), nil
	}

	title := req.GetString("title", "")
	if title == "" {
		title = info.Title
	}

	log := models.NewExerciseLog(videoURL, info.VideoID, info.ThumbnailURL, title, minutes, date)
	if err := log.Validate(); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if err := h.logs.Append(log); err != nil {
		h.log.Error("mcp log_workout", "error", err)
		return mcp.NewToolResultError("saving failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(log)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) deleteWorkout(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError("id parameter is required"), nil
	}

	removed, err := h.logs.Remove(id)
	if err != nil {
		h.log.Error("mcp delete_workout", "error", err)
		return mcp.NewToolResultError("deleting failed: " + err.Error()), nil
	}
	if !removed {
		return mcp.NewToolResultError("no workout with ID " + id), nil
	}

	result, err := mcp.NewToolResultJSON(map[string]any{"deleted": true, "id": id})
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) workoutSummary(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	logs := h.logs.List()

	totalMinutes := 0
	for _, l := range logs {
		totalMinutes += l.DurationMinutes
	}

	type monthCount struct {
		Label    string `json:"label"`
		Sessions int    `json:"sessions"`
		Minutes  int    `json:"minutes"`
	}
	var months []monthCount
	for _, g := range h.logs.MonthGroups() {
		mc := monthCount{Label: g.Label, Sessions: len(g.Logs)}
		for _, l := range g.Logs {
			mc.Minutes += l.DurationMinutes
		}
		months = append(months, mc)
	}

	result, err := mcp.NewToolResultJSON(map[string]any{
		"totalSessions": len(logs),
		"totalMinutes":  totalMinutes,
		"months":        months,
	})
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) listPlaylist(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	result, err := mcp.NewToolResultJSON(h.playlist.List())
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) addPlaylistItem(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	videoURL, err := req.RequireString("video_url")
	if err != nil {
		return mcp.NewToolResultError("video_url parameter is required"), nil
	}

	videoID := youtube.ExtractVideoID(videoURL)
	if videoID == "" {
		return mcp.NewToolResultError("could not resolve a YouTube video from " + videoURL), nil
	}
	if h.playlist.ContainsVideo(videoID) {
		return mcp.NewToolResultError("video is already in the playlist"), nil
	}

	info, err := h.yt.FetchVideoInfo(videoURL)
	if err != nil {
		return mcp.NewToolResultError("could not resolve a YouTube video from " + videoURL), nil
	}

	item := models.NewPlaylistItem(videoURL, videoID, info.Title, info.ThumbnailURL, time.Now())
	if err := h.playlist.Append(item); err != nil {
		if errors.Is(err, store.ErrDuplicateVideo) {
			return mcp.NewToolResultError("video is already in the playlist"), nil
		}
		h.log.Error("mcp add_playlist_item", "error", err)
		return mcp.NewToolResultError("saving failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(item)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}
