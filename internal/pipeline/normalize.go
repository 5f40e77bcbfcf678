// Package pipeline assembles short vertical clips: it normalizes request
// parameters, derives the transcode filter graph, and orchestrates
// fetch → transcode → publish for a single merge request.
package pipeline

// Platform short-form ceiling: outputs longer than this get rejected by the
// target platforms, so durations are clamped rather than trusted.
const (
	minDurationSec = 1
	maxDurationSec = 58
)

// Request describes one merge. CTAVideoURL empty means single-clip mode;
// set, the main clip cross-fades into the CTA clip.
type Request struct {
	VideoURL       string
	CTAVideoURL    string
	AudioURL       string
	DurationSec    int
	CTADurationSec int
	MusicVolume    float64
}

// TwoClip reports whether the request uses the two-clip crossfade mode.
func (r Request) TwoClip() bool {
	return r.CTAVideoURL != ""
}

// Result is the only artifact a merge leaves behind.
type Result struct {
	FinalURL string
}

// TransitionPolicy holds the deployment-tunable crossfade constants.
type TransitionPolicy struct {
	// FadeDurationSec is how long the cross-dissolve lasts.
	FadeDurationSec float64
	// OffsetFloorSec keeps the fade offset from going negative when the
	// main clip is shorter than the fade itself.
	OffsetFloorSec float64
}

// DefaultTransitionPolicy returns the stock transition constants.
func DefaultTransitionPolicy() TransitionPolicy {
	return TransitionPolicy{
		FadeDurationSec: 0.7,
		OffsetFloorSec:  0.3,
	}
}

// Normalized is a Request with every caller-supplied value clamped into a
// safe range and the crossfade timing derived. Normalization never fails.
type Normalized struct {
	TwoClip          bool
	MainDurationSec  int
	CTADurationSec   int
	Volume           float64
	FadeDurationSec  float64
	FadeOffsetSec    float64
	TotalDurationSec int
}

// Normalize clamps the request's durations and volume and, for two-clip
// requests, derives the fade offset and the total output length.
func Normalize(req Request, pol TransitionPolicy) Normalized {
	n := Normalized{
		TwoClip:         req.TwoClip(),
		MainDurationSec: clampDuration(req.DurationSec),
		Volume:          clampVolume(req.MusicVolume),
	}

	if !n.TwoClip {
		n.TotalDurationSec = n.MainDurationSec
		return n
	}

	n.CTADurationSec = clampDuration(req.CTADurationSec)
	n.FadeDurationSec = pol.FadeDurationSec
	n.FadeOffsetSec = max(pol.OffsetFloorSec, float64(n.MainDurationSec)-pol.FadeDurationSec)
	n.TotalDurationSec = n.MainDurationSec + n.CTADurationSec

	return n
}

func clampDuration(sec int) int {
	if sec < minDurationSec {
		return minDurationSec
	}
	if sec > maxDurationSec {
		return maxDurationSec
	}
	return sec
}

func clampVolume(v float64) float64 {
	if v < 0.0 {
		return 0.0
	}
	if v > 1.0 {
		return 1.0
	}
	return v
}
