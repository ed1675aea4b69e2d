package renderer

import (
	"image"
	"time"
)

// RenderStats contains statistics about the rendering process
type RenderStats struct {
	Width, Height    int           // Output image size
	TracedPixels     int           // Pixels traced, including supersampling
	Batches          int           // Result batches received by the aggregator
	NumWorkers       int           // Workers that drained the queue
	PixelsPerWorker  []int         // Pixels traced by each worker, indexed by worker ID
	Duration         time.Duration // Wall time of the render
	AverageLuminance float64       // Mean Rec. 709 luminance of the output image
}

// CalculateAverageLuminance returns the mean relative luminance of an image,
// with channels normalized to [0, 1]
func CalculateAverageLuminance(img *image.RGBA) float64 {
	bounds := img.Bounds()
	pixels := bounds.Dx() * bounds.Dy()
	if pixels == 0 {
		return 0
	}

	total := 0.0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			c := img.RGBAAt(x, y)
			r := float64(c.R) / 255.0
			g := float64(c.G) / 255.0
			b := float64(c.B) / 255.0
			total += 0.2126*r + 0.7152*g + 0.0722*b
		}
	}

	return total / float64(pixels)
}
