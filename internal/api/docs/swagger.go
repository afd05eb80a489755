package docs

import (
	"github.com/go-swagno/swagno"
	"github.com/go-swagno/swagno/components/endpoint"
	"github.com/go-swagno/swagno/components/http/response"
	"github.com/go-swagno/swagno/components/mime"
)

// PredictResponse represents a successful emotion prediction
type PredictResponse struct {
	Success    bool    `json:"success" example:"true"`
	Name       string  `json:"name" example:"Alice"`
	Emotion    string  `json:"emotion" example:"happy"`
	Confidence float64 `json:"confidence" example:"70.0"`
	Message    string  `json:"message" example:"You're smiling! Great to see you happy!"`
}

// SubmissionData represents one stored submission in the history listing
type SubmissionData struct {
	ID          int64   `json:"id" example:"42"`
	Name        string  `json:"name" example:"Alice"`
	Email       string  `json:"email,omitempty" example:"alice@example.com"`
	Age         int     `json:"age,omitempty" example:"30"`
	Emotion     string  `json:"emotion" example:"happy"`
	Confidence  float64 `json:"confidence" example:"70.0"`
	SubmittedAt string  `json:"submitted_at" example:"2025-06-01T12:30:00Z"`
	Feedback    string  `json:"feedback,omitempty" example:"You're smiling! Great to see you happy!"`
}

// SubmissionsResponse represents the submission history listing
type SubmissionsResponse struct {
	Submissions []SubmissionData `json:"submissions"`
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status  string `json:"status" example:"ok"`
	Version string `json:"version,omitempty" example:"0.1.0"`
}

// ErrorResponse represents a standard error response
type ErrorResponse struct {
	Code    string `json:"code" example:"VALIDATION_FAILED"`
	Message string `json:"message" example:"Request validation failed"`
}

func NewSwagger() *swagno.Swagger {
	sw := swagno.New(swagno.Config{
		Title:       "EmoScan Emotion Recognition API",
		Version:     "v0.1.0",
		Description: "Facial emotion recognition API: detects the largest face in an uploaded image and classifies it into one of seven emotions",
		Host:        "localhost:3000",
	})

	endpoints := []*endpoint.EndPoint{
		// POST /predict - Run the emotion pipeline
		endpoint.New(
			endpoint.POST,
			"/predict",
			endpoint.WithTags("Predictions"),
			endpoint.WithSummary("Predict the emotion on an uploaded face image"),
			endpoint.WithDescription("Accepts a multipart form with a name and an image (jpg/jpeg/png/gif/bmp, up to 5MB), detects the largest face and returns the predicted emotion with its confidence percentage."),
			endpoint.WithConsume([]mime.MIME{mime.MIME("multipart/form-data")}),
			endpoint.WithProduce([]mime.MIME{mime.JSON}),
			endpoint.WithSuccessfulReturns([]response.Response{
				response.New(PredictResponse{}, "200", "Prediction completed successfully"),
			}),
			endpoint.WithErrors([]response.Response{
				response.New(ErrorResponse{Code: "VALIDATION_FAILED", Message: "Request validation failed"}, "422", "Unprocessable Entity"),
				response.New(ErrorResponse{Code: "NO_FACE_DETECTED", Message: "No face detected in image. Please upload a clear face image"}, "422", "Unprocessable Entity"),
				response.New(ErrorResponse{Code: "PREPROCESSING_FAILED", Message: "Invalid image format or corrupted file"}, "422", "Unprocessable Entity"),
				response.New(ErrorResponse{Code: "PREDICTION_FAILED", Message: "Emotion prediction failed"}, "500", "Internal Server Error"),
				response.New(ErrorResponse{Code: "INTERNAL_ERROR", Message: "An unexpected error occurred"}, "500", "Internal Server Error"),
			}),
		),

		// GET /submissions - Submission history
		endpoint.New(
			endpoint.GET,
			"/submissions",
			endpoint.WithTags("Submissions"),
			endpoint.WithSummary("List recent submissions"),
			endpoint.WithDescription("Returns up to 100 of the most recent submissions, newest first. Image bytes are never included."),
			endpoint.WithProduce([]mime.MIME{mime.JSON}),
			endpoint.WithSuccessfulReturns([]response.Response{
				response.New(SubmissionsResponse{}, "200", "Submission history"),
			}),
			endpoint.WithErrors([]response.Response{
				response.New(ErrorResponse{Code: "STORAGE_FAILED", Message: "Failed to store submission"}, "500", "Internal Server Error"),
			}),
		),

		// GET /health - Liveness
		endpoint.New(
			endpoint.GET,
			"/health",
			endpoint.WithTags("Health"),
			endpoint.WithSummary("Liveness check"),
			endpoint.WithProduce([]mime.MIME{mime.JSON}),
			endpoint.WithSuccessfulReturns([]response.Response{
				response.New(HealthResponse{}, "200", "Service is running"),
			}),
		),

		// GET /ready - Readiness
		endpoint.New(
			endpoint.GET,
			"/ready",
			endpoint.WithTags("Health"),
			endpoint.WithSummary("Readiness check"),
			endpoint.WithDescription("Verifies database connectivity."),
			endpoint.WithProduce([]mime.MIME{mime.JSON}),
			endpoint.WithSuccessfulReturns([]response.Response{
				response.New(HealthResponse{}, "200", "Service is ready"),
			}),
			endpoint.WithErrors([]response.Response{
				response.New(HealthResponse{Status: "unavailable"}, "503", "Service Unavailable"),
			}),
		),
	}

	sw.AddEndpoints(endpoints)

	return sw
}
