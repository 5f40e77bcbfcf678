package media

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

// skipIfNoFFmpeg skips the test if ffmpeg is not available.
func skipIfNoFFmpeg(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("ffmpeg"); err != nil {
		t.Skip("ffmpeg not found in PATH, skipping test")
	}
}

// createTestVideo creates a simple test video with silent audio using ffmpeg.
func createTestVideo(t *testing.T, path string, duration float64) {
	t.Helper()

	cmd := exec.Command("ffmpeg",
		"-y",
		"-f", "lavfi",
		"-i", fmt.Sprintf("color=c=blue:s=64x64:d=%.1f", duration),
		"-c:v", "libx264",
		"-preset", "ultrafast",
		"-pix_fmt", "yuv420p",
		path,
	)
	if output, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("failed to create test video: %v\noutput: %s", err, output)
	}
}

// createTestAudio creates a short sine-wave audio file using ffmpeg.
func createTestAudio(t *testing.T, path string, duration float64) {
	t.Helper()

	cmd := exec.Command("ffmpeg",
		"-y",
		"-f", "lavfi",
		"-i", fmt.Sprintf("sine=frequency=440:duration=%.1f", duration),
		"-c:a", "libmp3lame",
		path,
	)
	if output, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("failed to create test audio: %v\noutput: %s", err, output)
	}
}

func TestNewFFmpeg(t *testing.T) {
	t.Run("default path", func(t *testing.T) {
		f := NewFFmpeg("")
		if f.ffmpegPath != "ffmpeg" {
			t.Errorf("expected default path 'ffmpeg', got %q", f.ffmpegPath)
		}
	})

	t.Run("custom path", func(t *testing.T) {
		f := NewFFmpeg("/usr/local/bin/ffmpeg")
		if f.ffmpegPath != "/usr/local/bin/ffmpeg" {
			t.Errorf("expected custom path, got %q", f.ffmpegPath)
		}
	})
}

func TestArgs_CopyVideo(t *testing.T) {
	spec := Spec{
		Inputs: []Input{
			{Path: "in.mp4"},
			{Path: "music.mp3", Loop: true},
		},
		FilterComplex: "[1:a]volume=0.15[a]",
		VideoMap:      "0:v:0",
		AudioMap:      "[a]",
		DurationSec:   7,
		CopyVideo:     true,
		AudioBitrate:  "128k",
	}

	got := strings.Join(Args(spec, "out.mp4"), " ")
	want := "-y -i in.mp4 -stream_loop -1 -i music.mp3 -t 7 " +
		"-filter_complex [1:a]volume=0.15[a] -map 0:v:0 -map [a] " +
		"-c:v copy -c:a aac -b:a 128k -shortest out.mp4"
	if got != want {
		t.Errorf("args mismatch\n got: %s\nwant: %s", got, want)
	}
}

func TestArgs_Reencode(t *testing.T) {
	spec := Spec{
		Inputs: []Input{
			{Path: "main.mp4"},
			{Path: "cta.mp4", Loop: true},
			{Path: "music.mp3", Loop: true},
		},
		FilterComplex: "[v0][v1]xfade=transition=fade:duration=0.70:offset=6.30[v];[2:a]volume=0.15[a]",
		VideoMap:      "[v]",
		AudioMap:      "[a]",
		DurationSec:   10,
		Preset:        "veryfast",
		CRF:           28,
		AudioBitrate:  "128k",
	}

	args := Args(spec, "out.mp4")
	joined := strings.Join(args, " ")

	for _, want := range []string{
		"-stream_loop -1 -i cta.mp4",
		"-stream_loop -1 -i music.mp3",
		"-t 10",
		"-c:v libx264 -preset veryfast -crf 28",
		"-c:a aac -b:a 128k",
		"-shortest",
	} {
		if !strings.Contains(joined, want) {
			t.Errorf("args missing %q\n got: %s", want, joined)
		}
	}
	if strings.Contains(joined, "-c:v copy") {
		t.Errorf("re-encode spec must not copy video: %s", joined)
	}
}

func TestTail(t *testing.T) {
	if got := tail("short", 2000); got != "short" {
		t.Errorf("expected unchanged string, got %q", got)
	}
	long := strings.Repeat("x", 2500) + "END"
	got := tail(long, 2000)
	if len(got) != 2000 || !strings.HasSuffix(got, "END") {
		t.Errorf("expected 2000-char suffix ending in END, got len=%d", len(got))
	}
}

func TestTranscode_SingleClip(t *testing.T) {
	skipIfNoFFmpeg(t)

	dir := t.TempDir()
	video := filepath.Join(dir, "in.mp4")
	audio := filepath.Join(dir, "music.mp3")
	out := filepath.Join(dir, "out.mp4")

	createTestVideo(t, video, 3.0)
	createTestAudio(t, audio, 1.0)

	spec := Spec{
		Inputs: []Input{
			{Path: video},
			{Path: audio, Loop: true},
		},
		FilterComplex: "[1:a]volume=0.15[a]",
		VideoMap:      "0:v:0",
		AudioMap:      "[a]",
		DurationSec:   2,
		CopyVideo:     true,
		AudioBitrate:  "128k",
	}

	f := NewFFmpeg("")
	if err := f.Transcode(context.Background(), spec, out); err != nil {
		t.Fatalf("Transcode failed: %v", err)
	}

	info, err := os.Stat(out)
	if err != nil {
		t.Fatalf("output not created: %v", err)
	}
	if info.Size() == 0 {
		t.Error("output file is empty")
	}
}

func TestTranscode_FailureReturnsFFmpegError(t *testing.T) {
	skipIfNoFFmpeg(t)

	spec := Spec{
		Inputs:        []Input{{Path: "/nonexistent/input.mp4"}},
		FilterComplex: "[0:a]volume=0.15[a]",
		VideoMap:      "0:v:0",
		AudioMap:      "[a]",
		DurationSec:   2,
		CopyVideo:     true,
		AudioBitrate:  "128k",
	}

	f := NewFFmpeg("")
	err := f.Transcode(context.Background(), spec, filepath.Join(t.TempDir(), "out.mp4"))
	if err == nil {
		t.Fatal("expected error for missing input")
	}

	var ffErr *FFmpegError
	if !errors.As(err, &ffErr) {
		t.Fatalf("expected *FFmpegError, got %T: %v", err, err)
	}
	if ffErr.Stderr == "" {
		t.Error("expected stderr tail in error")
	}
	if len(ffErr.Stderr) > stderrTailLen {
		t.Errorf("stderr tail exceeds %d chars: %d", stderrTailLen, len(ffErr.Stderr))
	}
}
