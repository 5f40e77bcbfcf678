package server

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/reelforge/merge-api/internal/fetch"
	"github.com/reelforge/merge-api/internal/media"
	"github.com/reelforge/merge-api/internal/pipeline"
	"github.com/reelforge/merge-api/internal/publish"
)

// Merger runs one merge request to completion.
type Merger interface {
	Merge(ctx context.Context, req pipeline.Request) (pipeline.Result, error)
}

// Handlers contains the HTTP handlers for the API.
type Handlers struct {
	merger    Merger
	validator *validator.Validate
	logger    *slog.Logger
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(merger Merger, logger *slog.Logger) *Handlers {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handlers{
		merger:    merger,
		validator: validator.New(),
		logger:    logger,
	}
}

// Health handles GET /health requests.
func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok"})
}

// Merge handles POST /merge requests. The merge runs synchronously; the
// caller gets the hosted URL or a single error naming the failing stage.
func (h *Handlers) Merge(w http.ResponseWriter, r *http.Request) {
	var req MergeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("failed to decode request body",
			slog.String("error", err.Error()),
		)
		writeError(w, http.StatusBadRequest, "invalid JSON body", "INVALID_JSON")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		h.logger.Warn("request validation failed",
			slog.String("error", err.Error()),
		)
		writeError(w, http.StatusBadRequest, err.Error(), "VALIDATION_ERROR")
		return
	}

	input, err := req.toPipelineRequest()
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error(), "VALIDATION_ERROR")
		return
	}

	result, err := h.merger.Merge(r.Context(), input)
	if err != nil {
		h.logger.Error("merge failed",
			slog.Bool("two_clip", input.TwoClip()),
			slog.String("error", err.Error()),
		)
		status, code := classifyError(err)
		writeError(w, status, err.Error(), code)
		return
	}

	h.logger.Info("merge succeeded",
		slog.Bool("two_clip", input.TwoClip()),
		slog.String("final_url", result.FinalURL),
	)

	writeJSON(w, http.StatusOK, MergeResponse{FinalURL: result.FinalURL})
}

// toPipelineRequest maps the DTO onto a pipeline request, applying defaults
// and checking that exactly one request variant is used.
func (r MergeRequest) toPipelineRequest() (pipeline.Request, error) {
	videoURL := r.VideoURL
	durationSec := valueOr(r.DurationSec, defaultDurationSec)

	if r.CTAVideoURL != "" {
		if r.MainVideoURL == "" {
			return pipeline.Request{}, errors.New("cta_video_url requires main_video_url")
		}
		videoURL = r.MainVideoURL
		durationSec = valueOr(r.MainDurationSec, defaultDurationSec)
	} else if videoURL == "" {
		videoURL = r.MainVideoURL
	}

	if videoURL == "" {
		return pipeline.Request{}, errors.New("video_url or main_video_url is required")
	}

	return pipeline.Request{
		VideoURL:       videoURL,
		CTAVideoURL:    r.CTAVideoURL,
		AudioURL:       r.AudioURL,
		DurationSec:    durationSec,
		CTADurationSec: valueOr(r.CTADurationSec, defaultCTADurationSec),
		MusicVolume:    valueOr(r.MusicVolume, defaultMusicVolume),
	}, nil
}

func valueOr[T any](p *T, def T) T {
	if p == nil {
		return def
	}
	return *p
}

// classifyError maps pipeline failures onto HTTP statuses. A remote error
// status points at a caller-supplied URL, so it surfaces as 400; connection
// and timeout failures may be our side's problem and stay 500, like every
// other processing failure.
func classifyError(err error) (status int, code string) {
	var ffErr *media.FFmpegError

	switch {
	case errors.Is(err, fetch.ErrRemoteStatus):
		return http.StatusBadRequest, "FETCH_FAILED"
	case errors.Is(err, fetch.ErrTransport):
		return http.StatusInternalServerError, "FETCH_FAILED"
	case errors.As(err, &ffErr):
		return http.StatusInternalServerError, "TRANSCODE_FAILED"
	case errors.Is(err, publish.ErrNotConfigured):
		return http.StatusInternalServerError, "PUBLISH_NOT_CONFIGURED"
	case errors.Is(err, publish.ErrUploadFailed), errors.Is(err, publish.ErrMissingSecureURL):
		return http.StatusInternalServerError, "PUBLISH_FAILED"
	default:
		return http.StatusInternalServerError, "MERGE_FAILED"
	}
}

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("failed to encode JSON response", slog.String("error", err.Error()))
	}
}

// writeError writes an error response in the standard format.
func writeError(w http.ResponseWriter, status int, message, code string) {
	writeJSON(w, status, ErrorResponse{
		Error: message,
		Code:  code,
	})
}
