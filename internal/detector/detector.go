package detector

import (
	"bytes"
	"context"
	"fmt"
	"image"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"

	"github.com/emoscan/emoscan/internal/domain"
)

// Region is an axis-aligned face bounding box within an image raster.
// A valid region has positive width and height and lies fully inside the
// raster bounds.
type Region struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

func (r Region) Area() int {
	return r.Width * r.Height
}

// Image pairs the raw encoded bytes of an upload with its decoded raster.
// Both live only for the duration of one request: local detectors work on
// the raster, cloud detectors send the raw bytes.
type Image struct {
	Raw    []byte
	Raster image.Image
}

// Decode parses raw image bytes (JPEG, PNG, GIF or BMP). Undecodable input
// maps to ErrPreprocessing.
func Decode(raw []byte) (*Image, error) {
	raster, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, domain.ErrPreprocessing.WithError(fmt.Errorf("decode image: %w", err))
	}
	return &Image{Raw: raw, Raster: raster}, nil
}

// Detector locates candidate face regions in an image. Implementations make
// no ordering guarantee over the returned slice; selection policy belongs to
// the caller. Detectors are initialized once at startup and must be safe for
// concurrent use.
type Detector interface {
	Detect(ctx context.Context, img *Image) ([]Region, error)
}

// Largest returns the region with the greatest area. Ties keep the first
// region encountered, which makes selection deterministic given the
// detector's returned order. ok is false for an empty slice.
func Largest(regions []Region) (best Region, ok bool) {
	if len(regions) == 0 {
		return Region{}, false
	}
	best = regions[0]
	for _, r := range regions[1:] {
		if r.Area() > best.Area() {
			best = r
		}
	}
	return best, true
}

// Clamp intersects a candidate region with the raster bounds. ok is false
// when nothing usable remains after clamping.
func Clamp(r Region, bounds image.Rectangle) (Region, bool) {
	rect := image.Rect(r.X, r.Y, r.X+r.Width, r.Y+r.Height).Intersect(bounds)
	if rect.Empty() {
		return Region{}, false
	}
	return Region{
		X:      rect.Min.X,
		Y:      rect.Min.Y,
		Width:  rect.Dx(),
		Height: rect.Dy(),
	}, true
}
