package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize_DurationClamping(t *testing.T) {
	tests := []struct {
		name string
		in   int
		want int
	}{
		{"below minimum", 0, 1},
		{"negative", -5, 1},
		{"minimum", 1, 1},
		{"typical", 7, 7},
		{"maximum", 58, 58},
		{"above maximum", 59, 58},
		{"far above maximum", 600, 58},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := Normalize(Request{
				VideoURL:    "https://example.com/v.mp4",
				AudioURL:    "https://example.com/a.mp3",
				DurationSec: tt.in,
			}, DefaultTransitionPolicy())

			assert.Equal(t, tt.want, n.MainDurationSec)
			assert.GreaterOrEqual(t, n.MainDurationSec, 1)
			assert.LessOrEqual(t, n.MainDurationSec, 58)
		})
	}
}

func TestNormalize_VolumeClamping(t *testing.T) {
	tests := []struct {
		name string
		in   float64
		want float64
	}{
		{"negative", -0.5, 0.0},
		{"zero", 0.0, 0.0},
		{"typical", 0.15, 0.15},
		{"full", 1.0, 1.0},
		{"above full", 1.7, 1.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := Normalize(Request{
				DurationSec: 7,
				MusicVolume: tt.in,
			}, DefaultTransitionPolicy())

			assert.InDelta(t, tt.want, n.Volume, 0.0001)
		})
	}
}

func TestNormalize_SingleClip(t *testing.T) {
	n := Normalize(Request{
		VideoURL:    "https://example.com/v.mp4",
		AudioURL:    "https://example.com/a.mp3",
		DurationSec: 7,
		MusicVolume: 0.15,
	}, DefaultTransitionPolicy())

	assert.False(t, n.TwoClip)
	assert.Equal(t, 7, n.TotalDurationSec)
	assert.Zero(t, n.FadeDurationSec)
	assert.Zero(t, n.FadeOffsetSec)
}

func TestNormalize_TwoClipTiming(t *testing.T) {
	pol := TransitionPolicy{FadeDurationSec: 0.7, OffsetFloorSec: 0.3}

	n := Normalize(Request{
		VideoURL:       "https://example.com/main.mp4",
		CTAVideoURL:    "https://example.com/cta.mp4",
		AudioURL:       "https://example.com/a.mp3",
		DurationSec:    7,
		CTADurationSec: 3,
	}, pol)

	assert.True(t, n.TwoClip)
	assert.Equal(t, 10, n.TotalDurationSec)
	assert.InDelta(t, 6.3, n.FadeOffsetSec, 0.0001)
	assert.InDelta(t, 0.7, n.FadeDurationSec, 0.0001)
}

func TestNormalize_FadeOffsetNeverNegative(t *testing.T) {
	// A fade longer than the main clip would push the offset negative;
	// the floor keeps it at the configured minimum instead.
	pol := TransitionPolicy{FadeDurationSec: 1.1, OffsetFloorSec: 0.7}

	n := Normalize(Request{
		CTAVideoURL:    "https://example.com/cta.mp4",
		DurationSec:    1,
		CTADurationSec: 3,
	}, pol)

	assert.InDelta(t, 0.7, n.FadeOffsetSec, 0.0001)
	assert.GreaterOrEqual(t, n.FadeOffsetSec, 0.0)
	assert.LessOrEqual(t, n.FadeOffsetSec, float64(n.MainDurationSec))
}

func TestNormalize_FadeOffsetWithinMainDuration(t *testing.T) {
	pol := DefaultTransitionPolicy()

	for _, dur := range []int{1, 2, 4, 7, 30, 58} {
		n := Normalize(Request{
			CTAVideoURL:    "https://example.com/cta.mp4",
			DurationSec:    dur,
			CTADurationSec: 4,
		}, pol)

		assert.GreaterOrEqual(t, n.FadeOffsetSec, 0.0, "duration %d", dur)
		assert.LessOrEqual(t, n.FadeOffsetSec, float64(dur), "duration %d", dur)
	}
}
