// Package preprocess turns a detected face region into the fixed-shape
// tensor the emotion model expects.
package preprocess

import (
	"fmt"
	"image"
	"image/color"

	"github.com/nfnt/resize"

	"github.com/emoscan/emoscan/internal/detector"
	"github.com/emoscan/emoscan/internal/domain"
)

// Size is the side length of the model input, in pixels.
const Size = 48

// InputShape is the contracted tensor rank: explicit batch and channel
// dimensions of one around a Size×Size grayscale plane.
var InputShape = [4]int64{1, Size, Size, 1}

// Tensor is a normalized face crop: shape (1,48,48,1), values in [0,1],
// row-major. It is request-scoped and discarded after scoring.
type Tensor struct {
	Shape [4]int64
	Data  []float32
}

// Normalize converts the image to grayscale, crops the region, resizes to
// exactly Size×Size (aspect-distorting by contract, no padding) and scales
// sample values linearly from [0,255] to [0,1]. The transform is
// deterministic: the same (image, region) pair always yields bit-identical
// tensors. A degenerate or out-of-bounds region maps to ErrPreprocessing.
func Normalize(img *detector.Image, region detector.Region) (*Tensor, error) {
	if img == nil || img.Raster == nil {
		return nil, domain.ErrPreprocessing.WithError(fmt.Errorf("no decoded raster"))
	}
	if region.Width <= 0 || region.Height <= 0 {
		return nil, domain.ErrPreprocessing.WithError(
			fmt.Errorf("degenerate crop region %dx%d", region.Width, region.Height))
	}

	bounds := img.Raster.Bounds()
	rect := image.Rect(region.X, region.Y, region.X+region.Width, region.Y+region.Height)
	if !rect.In(bounds) {
		return nil, domain.ErrPreprocessing.WithError(
			fmt.Errorf("crop region %v outside raster bounds %v", rect, bounds))
	}

	crop := grayCrop(img.Raster, rect)
	resized := resize.Resize(Size, Size, crop, resize.Lanczos3)

	data := make([]float32, Size*Size)
	min := resized.Bounds().Min
	for y := 0; y < Size; y++ {
		for x := 0; x < Size; x++ {
			g := color.GrayModel.Convert(resized.At(min.X+x, min.Y+y)).(color.Gray)
			data[y*Size+x] = float32(g.Y) / 255.0
		}
	}

	return &Tensor{Shape: InputShape, Data: data}, nil
}

// grayCrop extracts rect from src as a single-channel grayscale image.
func grayCrop(src image.Image, rect image.Rectangle) *image.Gray {
	out := image.NewGray(image.Rect(0, 0, rect.Dx(), rect.Dy()))
	for y := 0; y < rect.Dy(); y++ {
		for x := 0; x < rect.Dx(); x++ {
			out.Set(x, y, color.GrayModel.Convert(src.At(rect.Min.X+x, rect.Min.Y+y)))
		}
	}
	return out
}
