package youtube

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

// TestFetchVideoInfoSuccess verifies the oEmbed happy path: the query
// carries the canonical watch URL and the response fields are mapped.
func TestFetchVideoInfoSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("url"); got != "https://www.youtube.com/watch?v=dQw4w9WgXcQ" {
			t.Errorf("oEmbed url param = %q", got)
		}
		if got := r.URL.Query().Get("format"); got != "json" {
			t.Errorf("oEmbed format param = %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"title":"Morning HIIT","thumbnail_url":"https://i.ytimg.com/vi/dQw4w9WgXcQ/hq720.jpg"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	info, err := c.FetchVideoInfo("https://youtu.be/dQw4w9WgXcQ?t=5")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if info.Title != "Morning HIIT" {
		t.Errorf("title = %q, want Morning HIIT", info.Title)
	}
	if info.ThumbnailURL != "https://i.ytimg.com/vi/dQw4w9WgXcQ/hq720.jpg" {
		t.Errorf("thumbnail = %q", info.ThumbnailURL)
	}
	if info.VideoID != "dQw4w9WgXcQ" {
		t.Errorf("videoID = %q", info.VideoID)
	}
}

// TestFetchVideoInfoFallback verifies that a failing endpoint still
// yields a usable result: generic title, thumbnail derived from the
// video ID.
func TestFetchVideoInfoFallback(t *testing.T) {
	for _, status := range []int{http.StatusNotFound, http.StatusInternalServerError} {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(status)
		}))

		c := NewClient(srv.URL)
		info, err := c.FetchVideoInfo("https://www.youtube.com/watch?v=dQw4w9WgXcQ")
		srv.Close()
		if err != nil {
			t.Fatalf("status %d: unexpected error: %v", status, err)
		}
		if info.Title != "YouTube Video" {
			t.Errorf("status %d: title = %q, want generic fallback", status, info.Title)
		}
		if info.ThumbnailURL != ThumbnailURL("dQw4w9WgXcQ") {
			t.Errorf("status %d: thumbnail = %q, want derived", status, info.ThumbnailURL)
		}
	}
}

// TestFetchVideoInfoMalformedBody covers a 200 response that is not
// valid JSON.
func TestFetchVideoInfoMalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>not json</html>"))
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	info, err := c.FetchVideoInfo("https://youtu.be/dQw4w9WgXcQ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if info.Title != "YouTube Video" || info.VideoID != "dQw4w9WgXcQ" {
		t.Errorf("fallback not applied: %+v", info)
	}
}

// TestFetchVideoInfoUnreachable covers a dead endpoint.
func TestFetchVideoInfoUnreachable(t *testing.T) {
	c := NewClient("http://127.0.0.1:1") // nothing listens here
	info, err := c.FetchVideoInfo("https://youtu.be/dQw4w9WgXcQ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if info == nil || info.Title != "YouTube Video" {
		t.Errorf("want fallback info, got %+v", info)
	}
}

// TestFetchVideoInfoUnresolvable is the one hard-failure case: no
// video ID means no metadata and no fallback.
func TestFetchVideoInfoUnresolvable(t *testing.T) {
	c := NewClient("")
	if _, err := c.FetchVideoInfo("not a url"); err == nil {
		t.Fatal("expected error for unresolvable reference")
	}
}
