package domain

import (
	"fmt"
)

type AppError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	StatusCode int    `json:"-"`
	Err        error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func (e *AppError) WithError(err error) *AppError {
	return &AppError{
		Code:       e.Code,
		Message:    e.Message,
		StatusCode: e.StatusCode,
		Err:        err,
	}
}

// Is lets errors.Is match a wrapped AppError against its predefined value by
// code, so ErrStorage.WithError(x) still matches ErrStorage.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	return ok && t.Code == e.Code
}

// Pre-defined errors
var (
	ErrInternal = &AppError{
		Code:       "INTERNAL_ERROR",
		Message:    "An unexpected error occurred",
		StatusCode: 500,
	}

	ErrBadRequest = &AppError{
		Code:       "BAD_REQUEST",
		Message:    "Invalid request",
		StatusCode: 400,
	}

	ErrValidationFailed = &AppError{
		Code:       "VALIDATION_FAILED",
		Message:    "Request validation failed",
		StatusCode: 422,
	}

	// ErrNoFaceDetected: the locator found zero face regions. User-correctable.
	ErrNoFaceDetected = &AppError{
		Code:       "NO_FACE_DETECTED",
		Message:    "No face detected in image. Please upload a clear face image",
		StatusCode: 422,
	}

	// ErrPreprocessing: undecodable image or degenerate crop region. Treated
	// as a caller input error.
	ErrPreprocessing = &AppError{
		Code:       "PREPROCESSING_FAILED",
		Message:    "Invalid image format or corrupted file",
		StatusCode: 422,
	}

	// ErrPrediction: the model produced an invalid result or the model
	// artifact is unavailable. Server-side, distinct from user error.
	ErrPrediction = &AppError{
		Code:       "PREDICTION_FAILED",
		Message:    "Emotion prediction failed",
		StatusCode: 500,
	}

	// ErrStorage: persistence failed. Logged by the orchestrator and never
	// propagated to the prediction response.
	ErrStorage = &AppError{
		Code:       "STORAGE_FAILED",
		Message:    "Failed to store submission",
		StatusCode: 500,
	}
)
