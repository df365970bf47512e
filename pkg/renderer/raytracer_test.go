package renderer

import (
	"context"
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/world"
)

// MockTracer returns a color computed from the ray and counts calls
type MockTracer struct {
	colorFn func(ray core.Ray) core.Color
	calls   int
}

func (m *MockTracer) ColorAt(ray core.Ray) core.Color {
	m.calls++
	return m.colorFn(ray)
}

// recordingLogger keeps every formatted line
type recordingLogger struct {
	lines []string
}

func (l *recordingLogger) Printf(format string, args ...interface{}) {
	l.lines = append(l.lines, fmt.Sprintf(format, args...))
}

func newTestCamera(t *testing.T, hsize, vsize int) *Camera {
	t.Helper()
	c, err := NewCamera(hsize, vsize, math.Pi/2)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	return c
}

func TestRaytracer_RenderDefaultWorld(t *testing.T) {
	w := world.NewDefault()
	c := newTestCamera(t, 11, 11)
	if err := c.SetTransform(core.ViewTransform(core.Point(0, 0, -5), core.Point(0, 0, 0), core.Vector(0, 1, 0))); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	canvas, stats, err := NewRaytracer(w, c, nil).Render(context.Background())
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	expected := core.NewColor(0.38066, 0.47583, 0.2855)
	got := canvas.PixelAt(5, 5)
	if math.Abs(got.R-expected.R) > 1e-4 || math.Abs(got.G-expected.G) > 1e-4 || math.Abs(got.B-expected.B) > 1e-4 {
		t.Errorf("Expected center pixel %v, got %v", expected, got)
	}
	if stats.TotalPixels != 121 || stats.Rows != 11 {
		t.Errorf("Unexpected stats %+v", stats)
	}
	if stats.LitPixels == 0 || stats.LitPixels == stats.TotalPixels {
		t.Errorf("Expected some but not all pixels lit, got %d", stats.LitPixels)
	}
}

func TestRaytracer_RasterOrder(t *testing.T) {
	tracer := &MockTracer{colorFn: func(ray core.Ray) core.Color {
		// Column 0 looks toward +x, row 0 toward +y
		var c core.Color
		if ray.Direction.X > 0 {
			c.R = 1
		}
		if ray.Direction.Y > 0 {
			c.G = 1
		}
		return c
	}}
	logger := &recordingLogger{}
	rt := NewRaytracer(tracer, newTestCamera(t, 4, 2), logger)

	canvas, stats, err := rt.Render(context.Background())
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if tracer.calls != 8 {
		t.Errorf("Expected one ray per pixel, got %d", tracer.calls)
	}

	tests := []struct {
		x, y     int
		expected core.Color
	}{
		{0, 0, core.NewColor(1, 1, 0)},
		{3, 0, core.NewColor(0, 1, 0)},
		{0, 1, core.NewColor(1, 0, 0)},
		{3, 1, core.NewColor(0, 0, 0)},
	}
	for _, tt := range tests {
		if got := canvas.PixelAt(tt.x, tt.y); got != tt.expected {
			t.Errorf("Pixel (%d, %d): expected %v, got %v", tt.x, tt.y, tt.expected, got)
		}
	}
	if stats.LitPixels != 6 {
		t.Errorf("Expected 6 lit pixels, got %d", stats.LitPixels)
	}
	if len(logger.lines) == 0 {
		t.Errorf("Expected progress to be logged")
	}
}

func TestRaytracer_RenderCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	rows := 0
	tracer := &MockTracer{}
	camera := newTestCamera(t, 3, 10)
	tracer.colorFn = func(ray core.Ray) core.Color {
		if tracer.calls%camera.HSize == 0 {
			rows++
			if rows == 2 {
				cancel()
			}
		}
		return core.White()
	}

	_, stats, err := NewRaytracer(tracer, camera, NopLogger{}).Render(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Expected context.Canceled, got %v", err)
	}
	if stats.Rows != 2 {
		t.Errorf("Expected 2 finished rows, got %d", stats.Rows)
	}
}
