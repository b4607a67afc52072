package service

import (
	"context"
	"image"
	"image/color"
	"strings"
	"time"

	"github.com/disintegration/imaging"

	"go-photometry/internal/analyzer"
	apperrors "go-photometry/internal/errors"
	"go-photometry/internal/observer"
	"go-photometry/internal/render"
	"go-photometry/internal/repository"
	"go-photometry/pkg/models"
	"go-photometry/pkg/validation"
)

// PhotometryService is the application-facing surface: it resolves a
// source into pixels, runs the photometric engine on the worker pool,
// and packages the result for the API.
type PhotometryService interface {
	AnalyzeSource(ctx context.Context, source string, opts analyzer.AnalysisOptions) (*models.AnalysisResponse, error)
	RenderHistogram(ctx context.Context, source, channel string, opts analyzer.AnalysisOptions) ([]byte, error)
	ValidateSource(source string) error
}

type photometryService struct {
	repo      repository.ImageRepository
	engine    analyzer.ImageAnalyzer
	pool      *analyzer.WorkerPool
	validator *validation.ResultValidator
	chart     *render.HistogramChart
	events    observer.Subject
}

// NewPhotometryService wires the service over its collaborators.
// events may be nil when no lifecycle reporting is wanted.
func NewPhotometryService(
	repo repository.ImageRepository,
	engine analyzer.ImageAnalyzer,
	pool *analyzer.WorkerPool,
	events observer.Subject,
) PhotometryService {
	return &photometryService{
		repo:      repo,
		engine:    engine,
		pool:      pool,
		validator: validation.NewResultValidator(),
		chart:     render.NewHistogramChart(),
		events:    events,
	}
}

type analysisOutcome struct {
	result *models.ImageAnalysisResult
	err    error
}

// AnalyzeSource fetches, analyzes and validates one image
func (s *photometryService) AnalyzeSource(ctx context.Context, source string, opts analyzer.AnalysisOptions) (*models.AnalysisResponse, error) {
	start := time.Now()
	s.publish(ctx, observer.AnalysisEvent{
		EventType: observer.AnalysisStarted,
		Timestamp: start,
		Source:    source,
	})

	result, err := s.analyze(ctx, source, opts)
	if err != nil {
		eventType := observer.AnalysisFailed
		if apperrors.IsType(err, apperrors.ErrorTypeCancelled) {
			eventType = observer.AnalysisCancelled
		}
		s.publish(ctx, observer.AnalysisEvent{
			EventType:      eventType,
			Timestamp:      time.Now(),
			Source:         source,
			ProcessingTime: time.Since(start),
			ErrorMessage:   err.Error(),
		})
		return nil, err
	}

	s.publish(ctx, observer.AnalysisEvent{
		EventType:      observer.AnalysisCompleted,
		Timestamp:      time.Now(),
		Source:         source,
		ProcessingTime: time.Since(start),
		Success:        true,
	})

	return &models.AnalysisResponse{
		Source:            source,
		Timestamp:         start.UTC().Format(time.RFC3339),
		ProcessingTimeSec: time.Since(start).Seconds(),
		Result:            *result,
		Issues:            s.validator.Validate(result),
	}, nil
}

// RenderHistogram analyzes the source and renders one channel's
// normalized histogram as a PNG chart
func (s *photometryService) RenderHistogram(ctx context.Context, source, channel string, opts analyzer.AnalysisOptions) ([]byte, error) {
	result, err := s.analyze(ctx, source, opts)
	if err != nil {
		return nil, err
	}

	var report models.HistogramReport
	var display color.Color
	switch strings.ToLower(channel) {
	case "red":
		report, display = result.Red, color.RGBA{R: 220, G: 60, B: 60, A: 255}
	case "green":
		report, display = result.Green, color.RGBA{R: 70, G: 200, B: 90, A: 255}
	case "blue":
		report, display = result.Blue, color.RGBA{R: 80, G: 120, B: 230, A: 255}
	case "luminance", "":
		report, display = result.Luminance, color.RGBA{R: 210, G: 210, B: 210, A: 255}
	default:
		return nil, apperrors.NewValidationError("unknown histogram channel: "+channel, nil)
	}

	png, err := s.chart.RenderPNG(report.Histogram.Bins[:], display)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to render histogram", err)
	}
	return png, nil
}

// ValidateSource checks the source reference without fetching it
func (s *photometryService) ValidateSource(source string) error {
	if err := s.repo.ValidateSource(source); err != nil {
		return apperrors.NewValidationError("invalid image source", err)
	}
	return nil
}

// analyze runs fetch, optional downscale, and the engine pass on the
// worker pool. The caller's context cancels both the queue wait and
// the pass itself.
func (s *photometryService) analyze(ctx context.Context, source string, opts analyzer.AnalysisOptions) (*models.ImageAnalysisResult, error) {
	if err := s.ValidateSource(source); err != nil {
		return nil, err
	}

	img, err := s.repo.FetchImage(ctx, source)
	if err != nil {
		s.publish(ctx, observer.AnalysisEvent{
			EventType:    observer.ImageFetchFailed,
			Timestamp:    time.Now(),
			Source:       source,
			ErrorMessage: err.Error(),
		})
		if ctx.Err() != nil {
			return nil, apperrors.NewCancelledError("image fetch cancelled", ctx.Err())
		}
		return nil, apperrors.NewNetworkError("failed to fetch image", err)
	}
	s.publish(ctx, observer.AnalysisEvent{
		EventType: observer.ImageFetched,
		Timestamp: time.Now(),
		Source:    source,
		Success:   true,
		Metadata: map[string]interface{}{
			"width":  img.Bounds().Dx(),
			"height": img.Bounds().Dy(),
		},
	})

	img = s.maybeDownscale(img, opts)

	ch := make(chan analysisOutcome, 1)
	job := func() {
		res, err := s.engine.AnalyzeWithOptions(ctx, analyzer.FromImage(img), opts)
		ch <- analysisOutcome{result: res, err: err}
	}
	if s.pool != nil {
		s.pool.Submit(job)
	} else {
		go job()
	}

	select {
	case out := <-ch:
		return out.result, out.err
	case <-ctx.Done():
		// The pass notices the same context at its next row boundary;
		// its late outcome lands in the buffered channel and is dropped.
		return nil, apperrors.NewCancelledError("analysis cancelled", ctx.Err())
	}
}

// maybeDownscale caps the longest edge in fast mode so the pass reads
// fewer pixels. Lanczos keeps the tonal distribution close enough for
// a quick exposure read.
func (s *photometryService) maybeDownscale(img image.Image, opts analyzer.AnalysisOptions) image.Image {
	if !opts.FastMode || opts.MaxAnalysisDimension <= 0 {
		return img
	}
	b := img.Bounds()
	if b.Dx() <= opts.MaxAnalysisDimension && b.Dy() <= opts.MaxAnalysisDimension {
		return img
	}
	return imaging.Fit(img, opts.MaxAnalysisDimension, opts.MaxAnalysisDimension, imaging.Lanczos)
}

func (s *photometryService) publish(ctx context.Context, event observer.AnalysisEvent) {
	if s.events != nil {
		s.events.NotifyObservers(ctx, event)
	}
}
