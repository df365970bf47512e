package renderer

import (
	"context"
	"image"
	"time"
)

// DefaultBandRows is the band height used when RenderOptions leaves it unset
const DefaultBandRows = 16

// RenderOptions configures banded rendering
type RenderOptions struct {
	BandRows    int  // Rows per band
	BandUpdates bool // Whether to generate band completion events
}

// BandResult contains a finished horizontal band of the image
type BandResult struct {
	Y          int         // First row of the band
	Image      *image.RGBA // Image data for just this band
	BandNumber int         // 1-based
	TotalBands int
}

// PassResult contains the finished render
type PassResult struct {
	Canvas *Canvas
	Stats  RenderStats
}

// RenderProgressive renders in bands of rows on a separate goroutine and
// reports through channels. The caller should read from these channels until
// they are closed. If options.BandUpdates is false the band channel is closed
// immediately. Tracing itself stays on one goroutine.
func (rt *Raytracer) RenderProgressive(ctx context.Context, options RenderOptions) (<-chan BandResult, <-chan PassResult, <-chan error) {
	bandRows := options.BandRows
	if bandRows <= 0 {
		bandRows = DefaultBandRows
	}
	totalBands := (rt.camera.VSize + bandRows - 1) / bandRows

	bandChan := make(chan BandResult, totalBands)
	passChan := make(chan PassResult, 1)
	errChan := make(chan error, 1)

	if !options.BandUpdates {
		close(bandChan)
	}

	go func() {
		defer close(passChan)
		if options.BandUpdates {
			defer close(bandChan)
		}
		defer close(errChan)

		canvas := NewCanvas(rt.camera.HSize, rt.camera.VSize)
		stats := RenderStats{TotalPixels: rt.camera.HSize * rt.camera.VSize}
		start := time.Now()

		rt.logger.Printf("Starting banded render with %d bands of %d rows...\n", totalBands, bandRows)

		for band := 0; band < totalBands; band++ {
			select {
			case <-ctx.Done():
				rt.logger.Printf("Rendering cancelled before band %d\n", band+1)
				errChan <- ctx.Err()
				return
			default:
			}

			y0 := band * bandRows
			y1 := min(y0+bandRows, rt.camera.VSize)
			for y := y0; y < y1; y++ {
				stats.LitPixels += rt.renderRow(canvas, y)
				stats.Rows++
			}

			if options.BandUpdates {
				result := BandResult{
					Y:          y0,
					Image:      canvas.RowsImage(y0, y1),
					BandNumber: band + 1,
					TotalBands: totalBands,
				}
				select {
				case bandChan <- result:
				case <-ctx.Done():
					errChan <- ctx.Err()
					return
				}
			}
		}

		stats.Duration = time.Since(start)
		rt.logger.Printf("Render completed in %v\n", stats.Duration)

		select {
		case passChan <- PassResult{Canvas: canvas, Stats: stats}:
		case <-ctx.Done():
			errChan <- ctx.Err()
		}
	}()

	return bandChan, passChan, errChan
}
