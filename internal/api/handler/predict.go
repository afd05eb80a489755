package handler

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/emoscan/emoscan/internal/domain"
)

const (
	maxImageSize = 5 * 1024 * 1024 // 5MB
	minNameLen   = 2
)

var allowedExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".bmp":  true,
}

// PredictionService interface for the service
type PredictionService interface {
	Predict(ctx context.Context, name string, imageBytes []byte) (*domain.Prediction, error)
	ListSubmissions(ctx context.Context) ([]domain.Submission, error)
}

// PredictHandler handles emotion prediction requests
type PredictHandler struct {
	service PredictionService
	logger  *slog.Logger
}

// NewPredictHandler creates a new PredictHandler instance
func NewPredictHandler(service PredictionService, logger *slog.Logger) *PredictHandler {
	return &PredictHandler{
		service: service,
		logger:  logger,
	}
}

// PredictResponse response for the predict endpoint
type PredictResponse struct {
	Success    bool    `json:"success"`
	Name       string  `json:"name"`
	Emotion    string  `json:"emotion"`
	Confidence float64 `json:"confidence"`
	Message    string  `json:"message"`
}

// Predict POST /predict - run the emotion pipeline over an uploaded image
func (h *PredictHandler) Predict(c *fiber.Ctx) error {
	// 1. Validate the submitted name
	name := strings.TrimSpace(c.FormValue("name"))
	if len(name) < minNameLen {
		return domain.ErrValidationFailed.WithError(errors.New("name must be at least 2 characters"))
	}

	// 2. Extract and validate the image
	imageBytes, err := extractAndValidateImage(c)
	if err != nil {
		return err
	}

	// 3. Run the pipeline
	prediction, err := h.service.Predict(c.Context(), name, imageBytes)
	if err != nil {
		return err
	}

	// 4. Return response
	return c.JSON(PredictResponse{
		Success:    true,
		Name:       name,
		Emotion:    string(prediction.Label),
		Confidence: prediction.ConfidencePercent(),
		Message:    prediction.Feedback,
	})
}

// extractAndValidateImage extracts and validates the image from the form
func extractAndValidateImage(c *fiber.Ctx) ([]byte, error) {
	file, err := c.FormFile("image")
	if err != nil {
		return nil, domain.ErrValidationFailed.WithError(errors.New("image file is required"))
	}

	if file.Size == 0 {
		return nil, domain.ErrValidationFailed.WithError(errors.New("image file is empty"))
	}

	if file.Size > maxImageSize {
		return nil, domain.ErrValidationFailed.WithError(errors.New("image exceeds the 5MB limit"))
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedExtensions[ext] {
		return nil, domain.ErrValidationFailed.WithError(errors.New("unsupported image type, use jpg, jpeg, png, gif or bmp"))
	}

	f, err := file.Open()
	if err != nil {
		return nil, domain.ErrValidationFailed.WithError(err)
	}
	defer func() {
		_ = f.Close()
	}()

	imageBytes, err := io.ReadAll(f)
	if err != nil {
		return nil, domain.ErrValidationFailed.WithError(err)
	}

	return imageBytes, nil
}
