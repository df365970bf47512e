package renderer

import (
	"context"
	"fmt"
	"time"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Tracer returns the color seen along a world-space ray
type Tracer interface {
	ColorAt(ray core.Ray) core.Color
}

// Raytracer renders a Tracer through a Camera one pixel at a time in raster
// order
type Raytracer struct {
	tracer Tracer
	camera *Camera
	logger core.Logger

	// ProgressRows is how many rows pass between progress log lines; 0
	// disables them
	ProgressRows int
}

// NewRaytracer creates a raytracer. A nil logger discards output.
func NewRaytracer(tracer Tracer, camera *Camera, logger core.Logger) *Raytracer {
	if logger == nil {
		logger = NopLogger{}
	}
	return &Raytracer{
		tracer:       tracer,
		camera:       camera,
		logger:       logger,
		ProgressRows: max(camera.VSize/10, 1),
	}
}

// Camera returns the camera being rendered through
func (rt *Raytracer) Camera() *Camera {
	return rt.camera
}

// renderRow traces row y into canvas and returns how many pixels were not
// black
func (rt *Raytracer) renderRow(canvas *Canvas, y int) int {
	lit := 0
	for x := 0; x < rt.camera.HSize; x++ {
		color := rt.tracer.ColorAt(rt.camera.RayForPixel(x, y))
		if !color.IsBlack() {
			lit++
		}
		canvas.WritePixel(x, y, color)
	}
	return lit
}

// Render traces every pixel. The context is checked between rows; on
// cancellation the partial canvas is returned with the context's error.
func (rt *Raytracer) Render(ctx context.Context) (*Canvas, RenderStats, error) {
	canvas := NewCanvas(rt.camera.HSize, rt.camera.VSize)
	stats := RenderStats{TotalPixels: rt.camera.HSize * rt.camera.VSize}
	start := time.Now()

	rt.logger.Printf("Rendering %dx%d...\n", rt.camera.HSize, rt.camera.VSize)

	for y := 0; y < rt.camera.VSize; y++ {
		if err := ctx.Err(); err != nil {
			stats.Duration = time.Since(start)
			rt.logger.Printf("Rendering cancelled at row %d\n", y)
			return canvas, stats, fmt.Errorf("render cancelled: %w", err)
		}

		stats.LitPixels += rt.renderRow(canvas, y)
		stats.Rows++

		if rt.ProgressRows > 0 && stats.Rows%rt.ProgressRows == 0 {
			done := stats.Rows * rt.camera.HSize
			rt.logger.Printf("Computed %d/%d pixels (%.0f%%)\n",
				done, stats.TotalPixels, 100*float64(done)/float64(stats.TotalPixels))
		}
	}

	stats.Duration = time.Since(start)
	rt.logger.Printf("Render completed in %v\n", stats.Duration)
	return canvas, stats, nil
}
