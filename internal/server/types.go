// Package server provides the HTTP surface for the merge API.
// It includes handlers, middleware, routes, and DTOs separated from the
// pipeline's domain types.
package server

// Defaults applied to omitted request fields.
const (
	defaultDurationSec    = 7
	defaultCTADurationSec = 3
	defaultMusicVolume    = 0.15
)

// MergeRequest is the HTTP request body for a merge. Two variants share
// this shape: single-clip requests set video_url, two-clip requests set
// main_video_url and cta_video_url.
type MergeRequest struct {
	// VideoURL is the source clip for single-clip merges.
	VideoURL string `json:"video_url" validate:"omitempty,url"`
	// MainVideoURL is the first clip for two-clip merges.
	MainVideoURL string `json:"main_video_url" validate:"omitempty,url"`
	// CTAVideoURL is the clip cross-faded in after the main clip.
	CTAVideoURL string `json:"cta_video_url" validate:"omitempty,url"`
	// AudioURL is the background music track.
	AudioURL string `json:"audio_url" validate:"required,url"`
	// DurationSec is the output length for single-clip merges. Default 7.
	DurationSec *int `json:"duration_sec"`
	// MainDurationSec is the main clip length for two-clip merges. Default 7.
	MainDurationSec *int `json:"main_duration_sec"`
	// CTADurationSec is the CTA clip length for two-clip merges. Default 3.
	CTADurationSec *int `json:"cta_duration_sec"`
	// MusicVolume is the music gain, 0.0-1.0. Default 0.15.
	MusicVolume *float64 `json:"music_volume"`
}

// MergeResponse is the HTTP response for a successful merge.
type MergeResponse struct {
	// FinalURL is the public URL of the hosted result.
	FinalURL string `json:"final_url"`
}

// ErrorResponse is the standard error response format.
type ErrorResponse struct {
	// Error is the human-readable error message.
	Error string `json:"error"`
	// Code is the error code for programmatic handling.
	Code string `json:"code"`
}

// HealthResponse is the HTTP response for the health check endpoint.
type HealthResponse struct {
	// Status is the health status of the service.
	Status string `json:"status"`
}
