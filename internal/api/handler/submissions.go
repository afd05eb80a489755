package handler

import (
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"
)

// SubmissionsHandler serves the stored submission history
type SubmissionsHandler struct {
	service PredictionService
	logger  *slog.Logger
}

func NewSubmissionsHandler(service PredictionService, logger *slog.Logger) *SubmissionsHandler {
	return &SubmissionsHandler{
		service: service,
		logger:  logger,
	}
}

// SubmissionResponse is the metadata projection of one stored submission.
// Image bytes are never included.
type SubmissionResponse struct {
	ID          int64    `json:"id"`
	Name        string   `json:"name"`
	Email       *string  `json:"email,omitempty"`
	Age         *int     `json:"age,omitempty"`
	Emotion     string   `json:"emotion"`
	Confidence  *float64 `json:"confidence"`
	SubmittedAt string   `json:"submitted_at"`
	Feedback    *string  `json:"feedback,omitempty"`
}

type SubmissionsListResponse struct {
	Submissions []SubmissionResponse `json:"submissions"`
}

// List GET /submissions - most recent submissions, newest first
func (h *SubmissionsHandler) List(c *fiber.Ctx) error {
	submissions, err := h.service.ListSubmissions(c.Context())
	if err != nil {
		return err
	}

	out := make([]SubmissionResponse, 0, len(submissions))
	for _, s := range submissions {
		out = append(out, SubmissionResponse{
			ID:          s.ID,
			Name:        s.Name,
			Email:       s.Email,
			Age:         s.Age,
			Emotion:     string(s.Emotion),
			Confidence:  s.Confidence,
			SubmittedAt: s.SubmittedAt.UTC().Format(time.RFC3339),
			Feedback:    s.Feedback,
		})
	}

	return c.JSON(SubmissionsListResponse{Submissions: out})
}
