package resolver

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hironha/nina/pkg/retrylimit"
)

func TestIsURL(t *testing.T) {
	assert.True(t, isURL("https://www.youtube.com/watch?v=dQw4w9WgXcQ"))
	assert.True(t, isURL("http://example.com/audio.mp3"))
	assert.False(t, isURL("never gonna give you up"))
	assert.False(t, isURL("ftp://example.com/file"))
	assert.False(t, isURL("youtube.com/watch?v=abc"))
}

func TestIsYouTubeURL(t *testing.T) {
	assert.True(t, isYouTubeURL("https://www.youtube.com/watch?v=dQw4w9WgXcQ"))
	assert.True(t, isYouTubeURL("https://youtu.be/dQw4w9WgXcQ"))
	assert.True(t, isYouTubeURL("https://music.youtube.com/watch?v=abc"))
	assert.False(t, isYouTubeURL("https://soundcloud.com/artist/track"))
}

func TestIsPlaylistURL(t *testing.T) {
	assert.True(t, isPlaylistURL("https://www.youtube.com/watch?v=abc&list=PL123"))
	assert.True(t, isPlaylistURL("https://www.youtube.com/playlist?list=PL123"))
	assert.False(t, isPlaylistURL("https://www.youtube.com/watch?v=abc"))
}

func newTestResolver(baseURL string) *Resolver {
	return &Resolver{
		http:    &http.Client{Timeout: time.Second},
		limiter: retrylimit.NewAdaptiveLimiter(100, 1, 100, 1, 0.5),
		baseURL: baseURL,
	}
}

func TestSearchFirstVideoURL(t *testing.T) {
	const videoID = "dQw4w9WgXcQ"
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/results", r.URL.Path)
		require.Equal(t, "rick astley", r.URL.Query().Get("search_query"))
		fmt.Fprintf(w, `<html>{"url":"/watch?v=%s&pp=abc"}</html>`, videoID)
	}))
	defer srv.Close()

	r := newTestResolver(srv.URL)
	found, err := r.searchFirstVideoURL(context.Background(), "rick astley")
	require.NoError(t, err)
	assert.Equal(t, srv.URL+"/watch?v="+videoID, found)
}

func TestSearchNoMatch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html>no videos here</html>`)
	}))
	defer srv.Close()

	r := newTestResolver(srv.URL)
	_, err := r.searchFirstVideoURL(context.Background(), "askdjhaksjdh")
	assert.ErrorIs(t, err, ErrNoMatch)
}

func TestSearchServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	r := newTestResolver(srv.URL)
	_, err := r.searchFirstVideoURL(context.Background(), "anything")
	assert.Error(t, err)
}

func TestResolveEmptyInput(t *testing.T) {
	r := newTestResolver("http://unused")
	_, err := r.Resolve(context.Background(), "   ", "tester")
	assert.ErrorIs(t, err, ErrNoMatch)
}
