package stream

import (
	"encoding/binary"
	"fmt"
	"io"
	"sync/atomic"
	"time"

	"github.com/bwmarrin/discordgo"
	"layeh.com/gopus"
)

const frameDuration = 20 * time.Millisecond

// PlayPCM reads 20ms PCM frames from src, encodes them to opus and sends
// them to the voice connection until the stream ends or stop closes. While
// muted is set, frames are still read and encoded but not sent; a ticker
// paces the dropped frames at the frame duration, so playback position keeps
// moving silently in real time instead of draining the pipeline at decode
// speed.
//
// A clean EOF (including a short final frame) is a natural track end and
// returns nil; any other read or encode failure is a stream error.
func PlayPCM(src io.ReadCloser, stop <-chan struct{}, muted *atomic.Bool, vc *discordgo.VoiceConnection) error {
	encoder, err := gopus.NewEncoder(sampleRate, channels, gopus.Audio)
	if err != nil {
		return fmt.Errorf("encoder error: %w", err)
	}

	defer src.Close()

	pcmBuf := make([]byte, frameSize*channels*2)
	intBuf := make([]int16, frameSize*channels)

	// created on the first muted frame, dropped on unmute
	var mutedTicker *time.Ticker
	defer func() {
		if mutedTicker != nil {
			mutedTicker.Stop()
		}
	}()

	for {
		select {
		case <-stop:
			return nil
		default:
		}

		_, err := io.ReadFull(src, pcmBuf)
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("read error: %w", err)
		}

		for i := range intBuf {
			intBuf[i] = int16(binary.LittleEndian.Uint16(pcmBuf[i*2 : i*2+2]))
		}

		frame, err := encoder.Encode(intBuf, frameSize, len(pcmBuf))
		if err != nil {
			return fmt.Errorf("encode error: %w", err)
		}

		if muted != nil && muted.Load() {
			if mutedTicker == nil {
				mutedTicker = time.NewTicker(frameDuration)
			}
			select {
			case <-mutedTicker.C:
			case <-stop:
				return nil
			}
			continue
		}
		if mutedTicker != nil {
			mutedTicker.Stop()
			mutedTicker = nil
		}

		select {
		case vc.OpusSend <- frame:
		case <-stop:
			return nil
		}
	}
}
