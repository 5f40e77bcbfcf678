package pipeline

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/reelforge/merge-api/internal/media"
	"github.com/reelforge/merge-api/internal/workspace"
)

// Fetcher downloads a remote resource to a local file.
type Fetcher interface {
	Fetch(ctx context.Context, url, dest string) error
}

// Publisher uploads a produced file and returns its public URL.
type Publisher interface {
	Publish(ctx context.Context, filePath string) (string, error)
}

// Service runs one merge request end to end: workspace setup, input
// fetches, transcode, publish. The first failing stage aborts the request;
// the workspace is removed on every exit path.
type Service struct {
	fetcher    Fetcher
	transcoder media.Transcoder
	publisher  Publisher
	tempDir    string
	transition TransitionPolicy
	encoding   EncodingPolicy
	logger     *slog.Logger
}

// ServiceOption is a function that configures a Service.
type ServiceOption func(*Service)

// WithTransitionPolicy overrides the crossfade constants.
func WithTransitionPolicy(pol TransitionPolicy) ServiceOption {
	return func(s *Service) {
		s.transition = pol
	}
}

// WithEncodingPolicy overrides the re-encode parameters.
func WithEncodingPolicy(pol EncodingPolicy) ServiceOption {
	return func(s *Service) {
		s.encoding = pol
	}
}

// NewService creates a merge pipeline with the given collaborators.
// tempDir is the base directory request workspaces are created under.
func NewService(fetcher Fetcher, transcoder media.Transcoder, publisher Publisher, tempDir string, logger *slog.Logger, opts ...ServiceOption) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Service{
		fetcher:    fetcher,
		transcoder: transcoder,
		publisher:  publisher,
		tempDir:    tempDir,
		transition: DefaultTransitionPolicy(),
		encoding:   DefaultEncodingPolicy(),
		logger:     logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Merge executes a single request and returns the hosted result URL.
func (s *Service) Merge(ctx context.Context, req Request) (Result, error) {
	ws, err := workspace.New(s.tempDir)
	if err != nil {
		return Result{}, fmt.Errorf("pipeline: %w", err)
	}
	defer func() {
		if cerr := ws.Close(); cerr != nil {
			s.logger.Warn("workspace cleanup failed",
				slog.String("dir", ws.Dir()),
				slog.String("error", cerr.Error()),
			)
		}
	}()

	n := Normalize(req, s.transition)

	s.logger.Info("merge started",
		slog.Bool("two_clip", n.TwoClip),
		slog.Int("duration_sec", n.TotalDurationSec),
		slog.Float64("music_volume", n.Volume),
		slog.String("workspace", ws.Dir()),
	)

	// The inputs are independent and land in disjoint files, so they can
	// be fetched concurrently. Transcoding only starts once all are done.
	g, fetchCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return s.fetcher.Fetch(fetchCtx, req.VideoURL, ws.MainVideo())
	})
	if n.TwoClip {
		g.Go(func() error {
			return s.fetcher.Fetch(fetchCtx, req.CTAVideoURL, ws.CTAVideo())
		})
	}
	g.Go(func() error {
		return s.fetcher.Fetch(fetchCtx, req.AudioURL, ws.Audio())
	})
	if err := g.Wait(); err != nil {
		return Result{}, fmt.Errorf("fetch inputs: %w", err)
	}

	spec := BuildGraph(n, ws.MainVideo(), ws.CTAVideo(), ws.Audio(), s.encoding)
	if err := s.transcoder.Transcode(ctx, spec, ws.Output()); err != nil {
		return Result{}, fmt.Errorf("transcode: %w", err)
	}

	finalURL, err := s.publisher.Publish(ctx, ws.Output())
	if err != nil {
		return Result{}, fmt.Errorf("publish: %w", err)
	}

	s.logger.Info("merge completed",
		slog.String("final_url", finalURL),
	)

	return Result{FinalURL: finalURL}, nil
}
