// Package rekognition implements face localization with AWS Rekognition's
// DetectFaces API. It is the cloud backend for deployments that prefer a
// managed detector over the bundled cascade.
package rekognition

import (
	"context"
	"errors"
	"fmt"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/rekognition"
	"github.com/aws/aws-sdk-go-v2/service/rekognition/types"
	"github.com/aws/smithy-go"

	"github.com/emoscan/emoscan/internal/detector"
	"github.com/emoscan/emoscan/internal/domain"
)

const (
	errCodeInvalidImage     = "InvalidImageFormatException"
	errCodeImageTooLarge    = "ImageTooLargeException"
	errCodeInvalidParameter = "InvalidParameterException"
)

type Detector struct {
	client *rekognition.Client
	config Config
}

// New creates a Rekognition-backed detector using the AWS default credential
// chain.
func New(ctx context.Context, cfg Config) (*Detector, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
	)
	if err != nil {
		return nil, fmt.Errorf("load AWS config: %w", err)
	}

	return &Detector{
		client: rekognition.NewFromConfig(awsCfg),
		config: cfg,
	}, nil
}

func (d *Detector) Detect(ctx context.Context, img *detector.Image) ([]detector.Region, error) {
	input := &rekognition.DetectFacesInput{
		Image: &types.Image{
			Bytes: img.Raw,
		},
		Attributes: []types.Attribute{types.AttributeDefault},
	}

	output, err := d.client.DetectFaces(ctx, input)
	if err != nil {
		var apiErr smithy.APIError
		if errors.As(err, &apiErr) {
			switch apiErr.ErrorCode() {
			case errCodeInvalidImage, errCodeImageTooLarge, errCodeInvalidParameter:
				return nil, domain.ErrPreprocessing.WithError(err)
			}
		}
		return nil, fmt.Errorf("rekognition detect faces: %w", err)
	}

	bounds := img.Raster.Bounds()
	width := float64(bounds.Dx())
	height := float64(bounds.Dy())

	regions := make([]detector.Region, 0, len(output.FaceDetails))
	for _, detail := range output.FaceDetails {
		box := detail.BoundingBox
		if box == nil || box.Left == nil || box.Top == nil || box.Width == nil || box.Height == nil {
			continue
		}

		// Rekognition reports boxes as ratios of the frame; convert to pixel
		// coordinates and clip to the raster.
		region, ok := detector.Clamp(detector.Region{
			X:      int(float64(*box.Left) * width),
			Y:      int(float64(*box.Top) * height),
			Width:  int(float64(*box.Width) * width),
			Height: int(float64(*box.Height) * height),
		}, bounds)
		if !ok {
			continue
		}

		regions = append(regions, region)
	}

	return regions, nil
}
