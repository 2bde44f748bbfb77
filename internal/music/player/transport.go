package player

// Transport joins voice channels. The Discord adapter implements it; tests
// substitute a fake.
type Transport interface {
	Join(guildID, channelID string) (Connection, error)
}

// Connection is a live voice connection for one guild.
//
// Play blocks until the track ends, the stop channel closes, or the stream
// fails, and is only ever called from the session's playback goroutine.
// SetMute stops audio emission without interrupting the stream.
type Connection interface {
	ChannelID() string
	Play(track *Track, stop <-chan struct{}) error
	SetMute(mute bool)
	Close() error
}
