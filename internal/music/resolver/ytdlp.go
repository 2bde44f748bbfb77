package resolver

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"time"

	"github.com/hironha/nina/internal/music/player"
	"github.com/hironha/nina/pkg/retrylimit"
)

// audioFormat prefers audio-only formats with a known bitrate.
const audioFormat = "ba[abr>0][vcodec=none]/best"

type ytdlpEntry struct {
	URL      string  `json:"url"`
	Title    string  `json:"title"`
	Duration float64 `json:"duration"`
}

// ytdlpMetadata probes a single page URL for title and duration.
func (r *Resolver) ytdlpMetadata(ctx context.Context, pageURL string) (*ytdlpEntry, error) {
	var out []byte
	err := retrylimit.WithRetryMax(ctx, func() error {
		cmd := exec.CommandContext(ctx, "yt-dlp", "-j", "--no-playlist", "-f", audioFormat, pageURL)
		var err error
		out, err = cmd.Output()
		return err
	}, r.limiter, resolveAttempts)
	if err != nil {
		return nil, fmt.Errorf("yt-dlp metadata error: %w", err)
	}

	var entry ytdlpEntry
	if err := json.Unmarshal(out, &entry); err != nil {
		return nil, fmt.Errorf("yt-dlp json error: %w", err)
	}
	return &entry, nil
}

// resolvePlaylist expands a playlist URL into tracks in playlist order using
// yt-dlp's flat playlist mode, one JSON document per line.
func (r *Resolver) resolvePlaylist(ctx context.Context, playlistURL, requestedBy string) ([]*player.Track, error) {
	var out []byte
	err := retrylimit.WithRetryMax(ctx, func() error {
		cmd := exec.CommandContext(ctx, "yt-dlp", "-j", playlistURL, "-f", audioFormat, "--flat-playlist")
		var err error
		out, err = cmd.Output()
		return err
	}, r.limiter, resolveAttempts)
	if err != nil {
		return nil, fmt.Errorf("yt-dlp playlist error: %w", err)
	}

	tracks := make([]*player.Track, 0)
	for _, line := range bytes.Split(out, []byte{'\n'}) {
		if len(bytes.TrimSpace(line)) == 0 {
			continue
		}
		var entry ytdlpEntry
		if err := json.Unmarshal(line, &entry); err != nil {
			return nil, fmt.Errorf("yt-dlp playlist json error: %w", err)
		}
		title := entry.Title
		if title == "" {
			title = "Unknown"
		}
		tracks = append(tracks, &player.Track{
			Title:       title,
			URL:         entry.URL,
			Duration:    time.Duration(entry.Duration * float64(time.Second)),
			RequestedBy: requestedBy,
		})
	}

	if len(tracks) == 0 {
		return nil, ErrEmptyPlaylist
	}
	return tracks, nil
}
