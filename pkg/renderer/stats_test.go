package renderer

import (
	"image"
	"image/color"
	"testing"
)

func TestCalculateAverageLuminance(t *testing.T) {
	// Red 0.2126, green 0.7152, blue 0.0722, black 0: average 0.25
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.RGBA{255, 0, 0, 255})
	img.Set(1, 0, color.RGBA{0, 255, 0, 255})
	img.Set(0, 1, color.RGBA{0, 0, 255, 255})
	img.Set(1, 1, color.RGBA{0, 0, 0, 255})

	avgLum := CalculateAverageLuminance(img)
	expected := 0.25
	tolerance := 0.0001

	if avgLum < expected-tolerance || avgLum > expected+tolerance {
		t.Errorf("Expected average luminosity %f, got %f", expected, avgLum)
	}
}

func TestCalculateAverageLuminance_White(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 1, 1))
	img.Set(0, 0, color.RGBA{255, 255, 255, 255})

	avgLum := CalculateAverageLuminance(img)
	expected := 1.0
	tolerance := 0.0001

	if avgLum < expected-tolerance || avgLum > expected+tolerance {
		t.Errorf("Expected average luminosity %f, got %f", expected, avgLum)
	}
}

func TestRenderStats_Coverage(t *testing.T) {
	tests := []struct {
		stats    RenderStats
		expected float64
	}{
		{RenderStats{}, 0},
		{RenderStats{TotalPixels: 4, LitPixels: 1}, 0.25},
		{RenderStats{TotalPixels: 10, LitPixels: 10}, 1},
	}

	for _, tt := range tests {
		if got := tt.stats.Coverage(); got != tt.expected {
			t.Errorf("Expected coverage %f for %+v, got %f", tt.expected, tt.stats, got)
		}
	}
}
