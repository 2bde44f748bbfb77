package stream

import (
	"bytes"
	"io"
	"sync/atomic"
	"testing"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// pcmFrames returns n frames of silent 48kHz stereo s16le PCM.
func pcmFrames(n int) io.ReadCloser {
	return io.NopCloser(bytes.NewReader(make([]byte, n*frameSize*channels*2)))
}

func TestPlayPCMMutedKeepsRealTimePace(t *testing.T) {
	const frames = 10

	var muted atomic.Bool
	muted.Store(true)
	vc := &discordgo.VoiceConnection{OpusSend: make(chan []byte, 1)}

	start := time.Now()
	err := PlayPCM(pcmFrames(frames), make(chan struct{}), &muted, vc)
	elapsed := time.Since(start)

	require.NoError(t, err)
	// frames are dropped at the frame duration, not at decode speed
	assert.GreaterOrEqual(t, elapsed, (frames-1)*frameDuration)
	assert.Empty(t, vc.OpusSend)
}

func TestPlayPCMMutedStopsPromptly(t *testing.T) {
	var muted atomic.Bool
	muted.Store(true)
	vc := &discordgo.VoiceConnection{OpusSend: make(chan []byte, 1)}

	stop := make(chan struct{})
	done := make(chan error, 1)
	go func() {
		done <- PlayPCM(pcmFrames(500), stop, &muted, vc)
	}()

	close(stop)
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("muted playback did not react to stop")
	}
}

func TestPlayPCMUnmutedSendsEveryFrame(t *testing.T) {
	const frames = 5
	vc := &discordgo.VoiceConnection{OpusSend: make(chan []byte, frames)}

	err := PlayPCM(pcmFrames(frames), make(chan struct{}), nil, vc)
	require.NoError(t, err)
	assert.Len(t, vc.OpusSend, frames)
}
