// Package pigo implements face localization with the pure-Go pigo cascade
// classifier. It is the default backend: no external services, a single
// cascade file loaded at startup.
package pigo

import (
	"context"
	"fmt"
	"os"

	pigo "github.com/esimov/pigo/core"

	"github.com/emoscan/emoscan/internal/detector"
)

const (
	// minFaceSize is the smallest face the cascade will consider, in pixels.
	minFaceSize = 20

	// iouThreshold controls clustering of overlapping detections.
	iouThreshold = 0.2

	// minQuality filters out weak detections. The cascade's quality score is
	// unbounded; 5.0 is the value the pigo author uses in the reference
	// examples.
	minQuality = 5.0
)

type Detector struct {
	classifier *pigo.Pigo
}

// New reads and unpacks a binary cascade file (the facefinder artifact
// shipped with pigo). The classifier is immutable after unpacking and safe
// for concurrent use.
func New(cascadePath string) (*Detector, error) {
	cascade, err := os.ReadFile(cascadePath)
	if err != nil {
		return nil, fmt.Errorf("read cascade file: %w", err)
	}

	classifier, err := pigo.NewPigo().Unpack(cascade)
	if err != nil {
		return nil, fmt.Errorf("unpack cascade file: %w", err)
	}

	return &Detector{classifier: classifier}, nil
}

func (d *Detector) Detect(ctx context.Context, img *detector.Image) ([]detector.Region, error) {
	src := pigo.ImgToNRGBA(img.Raster)
	pixels := pigo.RgbToGrayscale(src)
	cols, rows := src.Bounds().Max.X, src.Bounds().Max.Y

	maxSize := cols
	if rows > maxSize {
		maxSize = rows
	}

	cParams := pigo.CascadeParams{
		MinSize:     minFaceSize,
		MaxSize:     maxSize,
		ShiftFactor: 0.1,
		ScaleFactor: 1.1,

		ImageParams: pigo.ImageParams{
			Pixels: pixels,
			Rows:   rows,
			Cols:   cols,
			Dim:    cols,
		},
	}

	dets := d.classifier.RunCascade(cParams, 0.0)
	dets = d.classifier.ClusterDetections(dets, iouThreshold)

	regions := make([]detector.Region, 0, len(dets))
	for _, det := range dets {
		if det.Q < minQuality {
			continue
		}

		// pigo reports a center point and a scale; convert to a box and
		// clip anything hanging over the raster edge.
		half := det.Scale / 2
		region, ok := detector.Clamp(detector.Region{
			X:      det.Col - half,
			Y:      det.Row - half,
			Width:  det.Scale,
			Height: det.Scale,
		}, img.Raster.Bounds())
		if !ok {
			continue
		}

		regions = append(regions, region)
	}

	return regions, nil
}
