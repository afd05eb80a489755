package handler

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/emoscan/emoscan/internal/api/middleware"
	"github.com/emoscan/emoscan/internal/domain"
)

func submissionsApp(h *SubmissionsHandler) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: middleware.ErrorHandler(testLogger()),
	})
	app.Get("/submissions", h.List)
	return app
}

func TestSubmissionsHandler_List(t *testing.T) {
	t.Run("returns stored submissions newest first", func(t *testing.T) {
		email := "alice@example.com"
		confidence := 70.0
		feedback := "You're smiling! Great to see you happy!"
		submittedAt := time.Date(2025, 6, 1, 12, 30, 0, 0, time.UTC)

		mockService := &MockPredictionService{}
		mockService.On("ListSubmissions", mock.Anything).Return([]domain.Submission{
			{
				ID:          2,
				Name:        "Alice",
				Email:       &email,
				Emotion:     domain.EmotionHappy,
				Confidence:  &confidence,
				SubmittedAt: submittedAt,
				Feedback:    &feedback,
			},
			{
				ID:          1,
				Name:        "Bob",
				Emotion:     domain.EmotionSad,
				SubmittedAt: submittedAt.Add(-time.Hour),
			},
		}, nil)

		app := submissionsApp(NewSubmissionsHandler(mockService, testLogger()))

		req := httptest.NewRequest(fiber.MethodGet, "/submissions", nil)
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		defer func() {
			_ = resp.Body.Close()
		}()

		require.Equal(t, fiber.StatusOK, resp.StatusCode)

		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)

		var listResp SubmissionsListResponse
		require.NoError(t, json.Unmarshal(body, &listResp))
		require.Len(t, listResp.Submissions, 2)

		first := listResp.Submissions[0]
		assert.Equal(t, int64(2), first.ID)
		assert.Equal(t, "Alice", first.Name)
		require.NotNil(t, first.Email)
		assert.Equal(t, "alice@example.com", *first.Email)
		assert.Equal(t, "happy", first.Emotion)
		require.NotNil(t, first.Confidence)
		assert.InDelta(t, 70.0, *first.Confidence, 0.001)
		assert.Equal(t, "2025-06-01T12:30:00Z", first.SubmittedAt)
		require.NotNil(t, first.Feedback)

		second := listResp.Submissions[1]
		assert.Equal(t, "sad", second.Emotion)
		assert.Nil(t, second.Email)
		assert.Nil(t, second.Confidence)

		// Raw payload must never carry image bytes
		assert.NotContains(t, string(body), "image_data")
	})

	t.Run("empty store yields an empty array", func(t *testing.T) {
		mockService := &MockPredictionService{}
		mockService.On("ListSubmissions", mock.Anything).Return([]domain.Submission{}, nil)

		app := submissionsApp(NewSubmissionsHandler(mockService, testLogger()))

		resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/submissions", nil), -1)
		require.NoError(t, err)
		defer func() {
			_ = resp.Body.Close()
		}()

		require.Equal(t, fiber.StatusOK, resp.StatusCode)

		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		assert.JSONEq(t, `{"submissions":[]}`, string(body))
	})

	t.Run("storage failure maps to 500", func(t *testing.T) {
		mockService := &MockPredictionService{}
		mockService.On("ListSubmissions", mock.Anything).Return(nil, domain.ErrStorage)

		app := submissionsApp(NewSubmissionsHandler(mockService, testLogger()))

		resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/submissions", nil), -1)
		require.NoError(t, err)
		defer func() {
			_ = resp.Body.Close()
		}()

		require.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)

		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)

		var eb errorBody
		require.NoError(t, json.Unmarshal(body, &eb))
		assert.Equal(t, "STORAGE_FAILED", eb.Error.Code)
	})
}
