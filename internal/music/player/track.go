package player

import "time"

// Track is a resolved, playable unit of audio. Immutable once created.
type Track struct {
	Title       string
	URL         string        // page URL, input for the yt-dlp pipeline
	StreamURL   string        // direct audio URL when the resolver found one
	Duration    time.Duration // zero when unknown
	RequestedBy string
}
