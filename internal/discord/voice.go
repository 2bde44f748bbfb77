package discord

import (
	"fmt"
	"log"
	"sync/atomic"

	"github.com/bwmarrin/discordgo"

	"github.com/hironha/nina/internal/music/player"
	"github.com/hironha/nina/internal/music/stream"
)

// voiceTransport implements player.Transport on top of discordgo.
type voiceTransport struct {
	dg *discordgo.Session
}

// Join connects to a voice channel, self-deafened (the bot never listens).
func (t *voiceTransport) Join(guildID, channelID string) (player.Connection, error) {
	vc, err := t.dg.ChannelVoiceJoin(guildID, channelID, false, true)
	if err != nil {
		return nil, fmt.Errorf("failed to join voice channel: %w", err)
	}
	return &voiceConnection{vc: vc}, nil
}

// voiceConnection implements player.Connection for one guild's stream.
type voiceConnection struct {
	vc    *discordgo.VoiceConnection
	muted atomic.Bool
}

func (c *voiceConnection) ChannelID() string {
	return c.vc.ChannelID
}

func (c *voiceConnection) SetMute(mute bool) {
	c.muted.Store(mute)
}

func (c *voiceConnection) Close() error {
	return c.vc.Disconnect()
}

// Play opens the track's PCM pipeline and pumps opus frames until the track
// ends or stop closes. Runs on the session's playback goroutine.
func (c *voiceConnection) Play(track *player.Track, stop <-chan struct{}) error {
	src, cleanup, err := stream.Open(track)
	if err != nil {
		return fmt.Errorf("failed to open stream: %w", err)
	}
	defer func() {
		if cleanup != nil {
			cleanup()
		}
	}()

	if err := c.vc.Speaking(true); err != nil {
		log.Println("[WARN] Failed setting speaking state:", err)
	}
	defer c.vc.Speaking(false)

	return stream.PlayPCM(src, stop, &c.muted, c.vc)
}
