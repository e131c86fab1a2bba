package youtube

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// DefaultOEmbedURL is YouTube's oEmbed endpoint.
const DefaultOEmbedURL = "https://www.youtube.com/oembed"

// fallbackTitle is used whenever the oEmbed lookup fails.
const fallbackTitle = "YouTube Video"

// VideoInfo is the resolved metadata for a video reference.
type VideoInfo struct {
	VideoID      string `json:"videoId"`
	Title        string `json:"title"`
	ThumbnailURL string `json:"thumbnailUrl"`
}

// Client fetches video metadata from an oEmbed endpoint.
type Client struct {
	oembedURL  string
	httpClient *http.Client
}

// NewClient creates a metadata client. An empty oembedURL selects the
// public YouTube endpoint.
func NewClient(oembedURL string) *Client {
	if oembedURL == "" {
		oembedURL = DefaultOEmbedURL
	}
	return &Client{
		oembedURL: oembedURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

type oembedResponse struct {
	Title        string `json:"title"`
	ThumbnailURL string `json:"thumbnail_url"`
}

// FetchVideoInfo resolves title and thumbnail for a video URL via
// oEmbed. The lookup is best-effort: any transport, status or decode
// failure yields a synthesized fallback (generic title, thumbnail
// derived from the video ID) instead of an error. The only hard
// failure is an unresolvable video reference.
func (c *Client) FetchVideoInfo(videoURL string) (*VideoInfo, error) {
	videoID := ExtractVideoID(videoURL)
	if videoID == "" {
		return nil, fmt.Errorf("no video ID in %q", videoURL)
	}

	fallback := &VideoInfo{
		VideoID:      videoID,
		Title:        fallbackTitle,
		ThumbnailURL: ThumbnailURL(videoID),
	}

	// Query with the clean canonical watch URL regardless of what the
	// user pasted.
	reqURL := c.oembedURL + "?url=" + url.QueryEscape(WatchURL(videoID)) + "&format=json"

	resp, err := c.httpClient.Get(reqURL)
	if err != nil {
		return fallback, nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fallback, nil
	}

	var body oembedResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return fallback, nil
	}

	info := &VideoInfo{
		VideoID:      videoID,
		Title:        body.Title,
		ThumbnailURL: body.ThumbnailURL,
	}
	if info.Title == "" {
		info.Title = fallbackTitle
	}
	if info.ThumbnailURL == "" {
		info.ThumbnailURL = ThumbnailURL(videoID)
	}
	return info, nil
}
