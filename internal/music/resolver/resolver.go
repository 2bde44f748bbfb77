// Package resolver turns user input (a URL, a playlist URL, or a free-text
// query) into playable tracks. Metadata comes from the YouTube client where
// possible and from yt-dlp otherwise; free-text queries are resolved by
// scraping the first watch URL off the results page.
package resolver

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	youtube "github.com/kkdai/youtube/v2"

	"github.com/hironha/nina/internal/music/player"
	"github.com/hironha/nina/pkg/retrylimit"
)

const resolveAttempts = 3

var (
	// ErrNoMatch reports a query that produced no playable track.
	ErrNoMatch = errors.New("no track found for the given input")
	// ErrEmptyPlaylist reports a playlist URL with no entries.
	ErrEmptyPlaylist = errors.New("no tracks found in the playlist")
)

// Resolver resolves tracks. Safe for concurrent use across guilds; all
// outbound calls go through one adaptive rate limiter.
type Resolver struct {
	yt      *youtube.Client
	http    *http.Client
	limiter *retrylimit.AdaptiveLimiter

	// baseURL is the YouTube endpoint used for search; tests override it.
	baseURL string
}

// New returns a resolver with default clients.
func New() *Resolver {
	return &Resolver{
		yt:      &youtube.Client{},
		http:    &http.Client{Timeout: 10 * time.Second},
		limiter: retrylimit.NewAdaptiveLimiter(5, 1, 20, 1, 0.5),
		baseURL: "https://www.youtube.com",
	}
}

// Resolve turns input into one or more tracks in playback order. Free text
// is searched first; playlist URLs expand to all their entries. Failure
// leaves no side effects.
func (r *Resolver) Resolve(ctx context.Context, input, requestedBy string) ([]*player.Track, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil, ErrNoMatch
	}

	if !isURL(input) {
		found, err := r.searchFirstVideoURL(ctx, input)
		if err != nil {
			return nil, fmt.Errorf("search %q: %w", input, err)
		}
		log.Printf("[Resolver] Query %q resolved to %s", input, found)
		input = found
	}

	if isPlaylistURL(input) {
		return r.resolvePlaylist(ctx, input, requestedBy)
	}

	track, err := r.resolveVideo(ctx, input, requestedBy)
	if err != nil {
		return nil, err
	}
	return []*player.Track{track}, nil
}

// resolveVideo builds a single track from a video page URL.
func (r *Resolver) resolveVideo(ctx context.Context, pageURL, requestedBy string) (*player.Track, error) {
	if isYouTubeURL(pageURL) {
		var video *youtube.Video
		err := retrylimit.WithRetryMax(ctx, func() error {
			var err error
			video, err = r.yt.GetVideoContext(ctx, pageURL)
			return err
		}, r.limiter, resolveAttempts)
		if err == nil {
			return &player.Track{
				Title:       video.Title,
				URL:         pageURL,
				Duration:    video.Duration,
				RequestedBy: requestedBy,
			}, nil
		}
		log.Printf("[Resolver] YouTube client failed for %s, falling back to yt-dlp: %v", pageURL, err)
	}

	meta, err := r.ytdlpMetadata(ctx, pageURL)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", pageURL, err)
	}

	title := meta.Title
	if title == "" {
		title = "Unknown"
	}
	return &player.Track{
		Title:       title,
		URL:         pageURL,
		Duration:    time.Duration(meta.Duration * float64(time.Second)),
		RequestedBy: requestedBy,
	}, nil
}

func isURL(input string) bool {
	u, err := url.Parse(input)
	return err == nil && (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

func isYouTubeURL(input string) bool {
	u, err := url.Parse(input)
	if err != nil {
		return false
	}
	host := strings.TrimPrefix(strings.ToLower(u.Host), "www.")
	return host == "youtube.com" || host == "m.youtube.com" || host == "youtu.be" || host == "music.youtube.com"
}

func isPlaylistURL(input string) bool {
	u, err := url.Parse(input)
	if err != nil {
		return false
	}
	return u.Query().Get("list") != ""
}
