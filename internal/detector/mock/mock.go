// Package mock provides a detector stub for development and tests.
package mock

import (
	"context"

	"github.com/emoscan/emoscan/internal/detector"
)

// Detector implements detector.Detector with canned results. The zero value
// reports a single centered region covering most of the frame.
type Detector struct {
	// Regions overrides the default detection result when non-nil.
	Regions []detector.Region
	// Err is returned from Detect when set.
	Err error
}

func New() *Detector {
	return &Detector{}
}

func (d *Detector) Detect(ctx context.Context, img *detector.Image) ([]detector.Region, error) {
	if d.Err != nil {
		return nil, d.Err
	}

	if d.Regions != nil {
		return d.Regions, nil
	}

	bounds := img.Raster.Bounds()
	region, ok := detector.Clamp(detector.Region{
		X:      bounds.Dx() / 10,
		Y:      bounds.Dy() / 10,
		Width:  bounds.Dx() * 8 / 10,
		Height: bounds.Dy() * 8 / 10,
	}, bounds)
	if !ok {
		return []detector.Region{}, nil
	}

	return []detector.Region{region}, nil
}
