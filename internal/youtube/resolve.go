package youtube

import (
	"net/url"
	"regexp"
	"strings"
)

const (
	watchBaseURL     = "https://www.youtube.com/watch?v="
	thumbnailBaseURL = "https://img.youtube.com/vi/"

	// Shown when the thumbnail cannot be derived at all.
	placeholderThumbnail = "https://picsum.photos/480/360?grayscale&blur=1"
)

// idPattern matches the 11-character video token in the URL shapes we
// accept: watch?v=, youtu.be/, /embed/ and /v/.
var idPattern = regexp.MustCompile(`(?:youtube\.com/(?:watch\?v=|embed/|v/)|youtu\.be/)([a-zA-Z0-9_-]{11})`)

// ExtractVideoID recovers the canonical 11-character video identifier
// from a user-supplied URL. It returns "" when no identifier can be
// recovered; callers must treat that as an unresolvable reference and
// block submission.
func ExtractVideoID(raw string) string {
	if raw == "" {
		return ""
	}

	var id string
	if u, err := url.Parse(raw); err == nil && u.Host != "" {
		switch u.Hostname() {
		case "www.youtube.com", "youtube.com", "m.youtube.com":
			id = u.Query().Get("v")
			if id == "" {
				// Embed and legacy /v/ paths carry the ID as the last segment.
				for _, prefix := range []string{"/embed/", "/v/"} {
					if rest, ok := strings.CutPrefix(u.Path, prefix); ok {
						id = rest
					}
				}
			}
		case "youtu.be":
			id = strings.TrimPrefix(u.Path, "/")
		}
	}

	if id == "" {
		if m := idPattern.FindStringSubmatch(raw); m != nil {
			id = m[1]
		}
	}

	// Strip trailing query junk that survived path extraction.
	if i := strings.IndexAny(id, "&?/"); i >= 0 {
		id = id[:i]
	}

	if len(id) != 11 {
		return ""
	}
	return id
}

// ThumbnailURL derives the standard thumbnail location for a video ID.
func ThumbnailURL(videoID string) string {
	if videoID == "" {
		return placeholderThumbnail
	}
	return thumbnailBaseURL + videoID + "/hqdefault.jpg"
}

// WatchURL builds the canonical watch URL for a video ID.
func WatchURL(videoID string) string {
	return watchBaseURL + videoID
}
