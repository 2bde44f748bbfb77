package stream

import (
	"fmt"
	"io"
	"os/exec"
)

// ytdlpPipe streams the best audio of a page URL through ffmpeg, producing
// 48kHz stereo s16le PCM on the returned reader.
func ytdlpPipe(url string) (io.ReadCloser, func(), error) {
	ytdlp := exec.Command("yt-dlp", "-o", "-", "-f", "bestaudio", url)
	ffmpeg := exec.Command("ffmpeg",
		"-i", "pipe:0",
		"-f", "s16le",
		"-ar", fmt.Sprintf("%d", sampleRate),
		"-ac", fmt.Sprintf("%d", channels),
		"-loglevel", "warning",
		"pipe:1",
	)

	ffmpegIn, err := ytdlp.StdoutPipe()
	if err != nil {
		return nil, nil, fmt.Errorf("yt-dlp stdout pipe error: %w", err)
	}
	ffmpeg.Stdin = ffmpegIn

	reader, err := ffmpeg.StdoutPipe()
	if err != nil {
		return nil, nil, fmt.Errorf("ffmpeg stdout pipe error: %w", err)
	}

	if err := ytdlp.Start(); err != nil {
		return nil, nil, fmt.Errorf("yt-dlp start error: %w", err)
	}
	if err := ffmpeg.Start(); err != nil {
		ytdlp.Process.Kill()
		return nil, nil, fmt.Errorf("ffmpeg start error: %w", err)
	}

	cleanup := func() {
		ffmpeg.Process.Kill()
		ytdlp.Process.Kill()
		ytdlp.Wait()
		ffmpeg.Wait()
	}

	return reader, cleanup, nil
}
