package renderer

import (
	"image"
	"time"
)

// RenderStats contains statistics about a finished render
type RenderStats struct {
	TotalPixels int           // Width × height
	LitPixels   int           // Pixels with a color other than black
	Rows        int           // Rows completed
	Duration    time.Duration // Wall time spent tracing
}

// Coverage returns the fraction of pixels that are not black
func (s RenderStats) Coverage() float64 {
	if s.TotalPixels == 0 {
		return 0
	}
	return float64(s.LitPixels) / float64(s.TotalPixels)
}

// CalculateAverageLuminance returns the mean Rec. 709 luminance of img in 0..1
func CalculateAverageLuminance(img *image.RGBA) float64 {
	bounds := img.Bounds()
	n := bounds.Dx() * bounds.Dy()
	if n == 0 {
		return 0
	}

	total := 0.0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			c := img.RGBAAt(x, y)
			total += 0.2126*float64(c.R)/255 + 0.7152*float64(c.G)/255 + 0.0722*float64(c.B)/255
		}
	}
	return total / float64(n)
}
