package media

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strconv"
)

// stderrTailLen is how much of the engine's diagnostic output is kept on
// failure. ffmpeg prints the actual error last, so the tail is what matters.
const stderrTailLen = 2000

// FFmpeg implements Transcoder using the ffmpeg CLI.
type FFmpeg struct {
	// ffmpegPath is the path to the ffmpeg binary. Defaults to "ffmpeg".
	ffmpegPath string
}

// NewFFmpeg creates a new FFmpeg transcoder.
// If ffmpegPath is empty, it defaults to "ffmpeg" (found via PATH).
func NewFFmpeg(ffmpegPath string) *FFmpeg {
	if ffmpegPath == "" {
		ffmpegPath = "ffmpeg"
	}
	return &FFmpeg{ffmpegPath: ffmpegPath}
}

// Transcode executes ffmpeg for the given spec and writes the result to
// outputPath. Nonzero exit returns a *FFmpegError with the stderr tail.
func (f *FFmpeg) Transcode(ctx context.Context, spec Spec, outputPath string) error {
	args := Args(spec, outputPath)

	// #nosec G204 - ffmpegPath is set by the application, not user input
	cmd := exec.CommandContext(ctx, f.ffmpegPath, args...)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	err := cmd.Run()
	if err != nil {
		if ctx.Err() != nil {
			return fmt.Errorf("ffmpeg cancelled: %w", ctx.Err())
		}
		return &FFmpegError{
			Args:   args,
			Stderr: tail(stderr.String(), stderrTailLen),
			Err:    err,
		}
	}

	return nil
}

// Args assembles the ffmpeg argument list for a spec. It is exposed
// separately from Transcode so the exact invocation can be tested without
// running the engine.
func Args(spec Spec, outputPath string) []string {
	args := []string{"-y"}

	for _, in := range spec.Inputs {
		if in.Loop {
			args = append(args, "-stream_loop", "-1")
		}
		args = append(args, "-i", in.Path)
	}

	args = append(args,
		"-t", strconv.Itoa(spec.DurationSec),
		"-filter_complex", spec.FilterComplex,
		"-map", spec.VideoMap,
		"-map", spec.AudioMap,
	)

	if spec.CopyVideo {
		args = append(args, "-c:v", "copy")
	} else {
		args = append(args,
			"-c:v", "libx264",
			"-preset", spec.Preset,
			"-crf", strconv.Itoa(spec.CRF),
		)
	}

	args = append(args,
		"-c:a", "aac",
		"-b:a", spec.AudioBitrate,
		"-shortest",
		outputPath,
	)

	return args
}

// tail returns at most the last n characters of s.
func tail(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[len(s)-n:]
}

// FFmpegError represents a failed ffmpeg run, including the tail of its
// stderr output.
type FFmpegError struct {
	Args   []string
	Stderr string
	Err    error
}

func (e *FFmpegError) Error() string {
	return fmt.Sprintf("ffmpeg error: %v\nargs: %v\nstderr: %s", e.Err, e.Args, e.Stderr)
}

func (e *FFmpegError) Unwrap() error {
	return e.Err
}
