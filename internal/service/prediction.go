package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/emoscan/emoscan/internal/classifier"
	"github.com/emoscan/emoscan/internal/detector"
	"github.com/emoscan/emoscan/internal/domain"
	"github.com/emoscan/emoscan/internal/preprocess"
)

type SubmissionRepositoryInterface interface {
	Append(ctx context.Context, name string, emotion domain.EmotionLabel, confidence float64, imageData []byte, feedback string) (*domain.Submission, error)
	ListRecent(ctx context.Context, limit int) ([]domain.Submission, error)
}

// PredictionService runs the inference pipeline per request: locate a face,
// normalize the largest region, score it, resolve the label, then persist
// the submission best-effort. The detector and scorer are process-wide
// singletons injected at startup; the service itself holds no per-request
// state and is safe for concurrent use.
type PredictionService struct {
	detector detector.Detector
	scorer   classifier.Scorer
	repo     SubmissionRepositoryInterface
	logger   *slog.Logger
}

func NewPredictionService(
	faceDetector detector.Detector,
	scorer classifier.Scorer,
	repo SubmissionRepositoryInterface,
	logger *slog.Logger,
) *PredictionService {
	return &PredictionService{
		detector: faceDetector,
		scorer:   scorer,
		repo:     repo,
		logger:   logger,
	}
}

// Predict runs one pipeline pass over the uploaded image. Every stage
// failure is terminal for the request; there are no retries. The one
// exception is persistence: by the time the store is written the prediction
// is already final, so a storage failure is logged and swallowed rather
// than surfaced to the caller.
func (s *PredictionService) Predict(ctx context.Context, name string, imageBytes []byte) (*domain.Prediction, error) {
	img, err := detector.Decode(imageBytes)
	if err != nil {
		return nil, err
	}

	regions, err := s.detector.Detect(ctx, img)
	if err != nil {
		return nil, fmt.Errorf("detect faces: %w", err)
	}

	region, found := detector.Largest(regions)
	if !found {
		return nil, domain.ErrNoFaceDetected
	}

	tensor, err := preprocess.Normalize(img, region)
	if err != nil {
		return nil, err
	}

	probs, err := s.scorer.Score(ctx, tensor)
	if err != nil {
		return nil, err
	}

	prediction, err := domain.Resolve(probs)
	if err != nil {
		return nil, err
	}

	// The response is complete from here on; persistence must not change it.
	if _, err := s.repo.Append(ctx, name, prediction.Label, prediction.Confidence, imageBytes, prediction.Feedback); err != nil {
		s.logger.Warn("failed to persist submission",
			slog.String("name", name),
			slog.String("emotion", string(prediction.Label)),
			slog.Any("error", err),
		)
	}

	return &prediction, nil
}

// ListSubmissions returns the most recent submissions as a metadata
// projection, capped by the store.
func (s *PredictionService) ListSubmissions(ctx context.Context) ([]domain.Submission, error) {
	submissions, err := s.repo.ListRecent(ctx, 100)
	if err != nil {
		return nil, fmt.Errorf("list submissions: %w", err)
	}
	return submissions, nil
}
