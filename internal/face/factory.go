// Package face wires a concrete detector backend from configuration.
package face

import (
	"context"
	"fmt"

	"github.com/emoscan/emoscan/internal/config"
	"github.com/emoscan/emoscan/internal/detector"
	"github.com/emoscan/emoscan/internal/detector/mock"
	"github.com/emoscan/emoscan/internal/detector/pigo"
	"github.com/emoscan/emoscan/internal/detector/rekognition"
)

// DetectorType defines supported face detector backends
type DetectorType string

const (
	// DetectorTypePigo is the bundled pure-Go cascade detector (default)
	DetectorTypePigo DetectorType = "pigo"
	// DetectorTypeRekognition is the AWS Rekognition detector (cloud)
	DetectorTypeRekognition DetectorType = "rekognition"
	// DetectorTypeMock is a canned detector for dev and tests
	DetectorTypeMock DetectorType = "mock"
)

// NewDetector creates a detector.Detector instance based on configuration.
// The detector is created once at startup and injected into the pipeline;
// it is treated as immutable thereafter.
//
// Environment variables:
//   - DETECTOR_TYPE: "pigo", "rekognition" or "mock" (default: "pigo")
//   - CASCADE_PATH: path to the pigo facefinder cascade
//   - AWS_REGION: region for Rekognition (credentials via the SDK chain)
func NewDetector(ctx context.Context, cfg *config.Config) (detector.Detector, error) {
	switch DetectorType(cfg.DetectorType) {
	case DetectorTypePigo, "":
		d, err := pigo.New(cfg.CascadePath)
		if err != nil {
			return nil, fmt.Errorf("create pigo detector: %w", err)
		}
		return d, nil

	case DetectorTypeRekognition:
		d, err := rekognition.New(ctx, rekognition.Config{Region: cfg.AWSRegion})
		if err != nil {
			return nil, fmt.Errorf("create rekognition detector: %w", err)
		}
		return d, nil

	case DetectorTypeMock:
		return mock.New(), nil

	default:
		return nil, fmt.Errorf("unknown detector type: %s (supported: %s, %s, %s)",
			cfg.DetectorType, DetectorTypePigo, DetectorTypeRekognition, DetectorTypeMock)
	}
}
