// Package media is the process boundary to the ffmpeg CLI. It turns a fully
// derived transcode Spec into an argument list, runs the engine, and
// classifies a nonzero exit as a transcode failure carrying the engine's
// diagnostic tail.
package media

import "context"

// Input is one ordered media input of a transcode.
type Input struct {
	// Path is the local file the engine reads from.
	Path string
	// Loop replays the input from its start whenever it ends, so a short
	// source can cover a longer output.
	Loop bool
}

// Spec fully determines a single transcode invocation. It is derived from a
// normalized merge request and has no identity beyond that invocation.
type Spec struct {
	// Inputs in engine order; filter labels refer to them by index.
	Inputs []Input
	// FilterComplex is the filter graph expression.
	FilterComplex string
	// VideoMap selects the output video stream, either a raw stream
	// selector ("0:v:0") or a graph label ("[v]").
	VideoMap string
	// AudioMap selects the output audio stream.
	AudioMap string
	// DurationSec caps the output length.
	DurationSec int
	// CopyVideo passes the video stream through without re-encoding.
	// When false the video is encoded with libx264 using Preset and CRF.
	CopyVideo bool
	// Preset is the libx264 speed preset used when re-encoding.
	Preset string
	// CRF is the libx264 constant rate factor used when re-encoding.
	CRF int
	// AudioBitrate is the AAC output bitrate, e.g. "128k".
	AudioBitrate string
}

// Transcoder runs the media engine for a derived Spec.
type Transcoder interface {
	// Transcode executes the engine and writes the result to outputPath.
	// A nonzero engine exit is returned as a *FFmpegError.
	Transcode(ctx context.Context, spec Spec, outputPath string) error
}
