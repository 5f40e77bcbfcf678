package pipeline

import (
	"fmt"
	"strconv"

	"github.com/reelforge/merge-api/internal/media"
)

// Target geometry for two-clip outputs. A crossfade needs both inputs on
// the same frame size, rate and pixel format, so both streams are
// normalized to vertical 1080x1920 at 30 fps before blending.
const (
	targetWidth  = 1080
	targetHeight = 1920
	targetFPS    = 30
)

// videoNormFilter is the per-stream chain that makes an arbitrary clip
// xfade-compatible: cover-scale to the target frame, crop the overflow,
// lock the frame rate, pixel format, sample aspect and timebase.
const videoNormFilter = "scale=%d:%d:force_original_aspect_ratio=increase," +
	"crop=%d:%d,fps=%d,format=yuv420p,setsar=1,settb=AVTB"

// EncodingPolicy holds the codec parameters used when a merge re-encodes
// video. Tuned for bounded memory over visual fidelity.
type EncodingPolicy struct {
	// Preset is the libx264 speed preset.
	Preset string
	// CRF is the libx264 constant rate factor.
	CRF int
	// AudioBitrate is the AAC output bitrate.
	AudioBitrate string
}

// DefaultEncodingPolicy returns the stock encoding parameters.
func DefaultEncodingPolicy() EncodingPolicy {
	return EncodingPolicy{
		Preset:       "veryfast",
		CRF:          28,
		AudioBitrate: "128k",
	}
}

// BuildGraph derives the transcode spec for a normalized request. The audio
// input is always stream-looped and gain-adjusted; looping defensively
// covers music shorter than the requested output. Single-clip mode passes
// the video stream through uncopied; two-clip mode normalizes both video
// streams and blends them with a cross-dissolve.
func BuildGraph(n Normalized, mainVideo, ctaVideo, audio string, enc EncodingPolicy) media.Spec {
	if !n.TwoClip {
		return media.Spec{
			Inputs: []media.Input{
				{Path: mainVideo},
				{Path: audio, Loop: true},
			},
			FilterComplex: fmt.Sprintf("[1:a]volume=%s[a]", formatVolume(n.Volume)),
			VideoMap:      "0:v:0",
			AudioMap:      "[a]",
			DurationSec:   n.TotalDurationSec,
			CopyVideo:     true,
			AudioBitrate:  enc.AudioBitrate,
		}
	}

	norm := fmt.Sprintf(videoNormFilter,
		targetWidth, targetHeight, targetWidth, targetHeight, targetFPS)

	filter := fmt.Sprintf(
		"[0:v]%s[v0];[1:v]%s[v1];"+
			"[v0][v1]xfade=transition=fade:duration=%.2f:offset=%.2f[v];"+
			"[2:a]volume=%s[a]",
		norm, norm, n.FadeDurationSec, n.FadeOffsetSec, formatVolume(n.Volume),
	)

	return media.Spec{
		Inputs: []media.Input{
			{Path: mainVideo},
			// The CTA clip may be shorter than the tail it has to fill;
			// looping guarantees the transition has source material.
			{Path: ctaVideo, Loop: true},
			{Path: audio, Loop: true},
		},
		FilterComplex: filter,
		VideoMap:      "[v]",
		AudioMap:      "[a]",
		DurationSec:   n.TotalDurationSec,
		Preset:        enc.Preset,
		CRF:           enc.CRF,
		AudioBitrate:  enc.AudioBitrate,
	}
}

// formatVolume renders the volume with full precision so values like
// 0.125 reach ffmpeg exactly as requested.
func formatVolume(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
