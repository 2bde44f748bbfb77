package stream

import (
	"io"

	"github.com/hironha/nina/internal/music/player"
)

const (
	channels   = 2
	sampleRate = 48000
	frameSize  = 960 // 20ms at 48kHz
)

// Open builds a PCM pipeline for a track: ffmpeg straight off a resolved
// stream URL when available, yt-dlp piped through ffmpeg otherwise. The
// returned cleanup kills the pipeline processes and must be called once
// playback is over.
func Open(track *player.Track) (io.ReadCloser, func(), error) {
	if track.StreamURL != "" {
		return ffmpegLink(track.StreamURL)
	}
	return ytdlpPipe(track.URL)
}
