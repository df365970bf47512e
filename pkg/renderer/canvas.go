package renderer

import (
	"bufio"
	"fmt"
	"image"
	"image/png"
	"io"
	"strconv"
	"strings"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

const maxPPMLineLength = 70

// Canvas is a grid of linear colors, row-major with (0, 0) at the top left
type Canvas struct {
	Width  int
	Height int
	pixels []core.Color
}

// NewCanvas creates a black canvas
func NewCanvas(width, height int) *Canvas {
	return &Canvas{
		Width:  width,
		Height: height,
		pixels: make([]core.Color, width*height),
	}
}

func (c *Canvas) index(x, y int) (int, bool) {
	if x < 0 || x >= c.Width || y < 0 || y >= c.Height {
		return 0, false
	}
	return y*c.Width + x, true
}

// WritePixel sets the color at (x, y). Writes outside the canvas are ignored.
func (c *Canvas) WritePixel(x, y int, color core.Color) {
	if i, ok := c.index(x, y); ok {
		c.pixels[i] = color
	}
}

// PixelAt returns the color at (x, y), black outside the canvas
func (c *Canvas) PixelAt(x, y int) core.Color {
	if i, ok := c.index(x, y); ok {
		return c.pixels[i]
	}
	return core.Black()
}

// ToPPM returns the canvas as a plain (P3) PPM document
func (c *Canvas) ToPPM() string {
	var sb strings.Builder
	// strings.Builder never fails
	_ = c.WritePPM(&sb)
	return sb.String()
}

// WritePPM writes the canvas as plain PPM. Components are clamped to 0..255
// and no line is longer than 70 characters.
func (c *Canvas) WritePPM(w io.Writer) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "P3\n%d %d\n255\n", c.Width, c.Height)

	for y := 0; y < c.Height; y++ {
		lineLength := 0
		for x := 0; x < c.Width; x++ {
			r, g, b := c.PixelAt(x, y).ToBytes()
			for _, component := range [3]uint8{r, g, b} {
				s := strconv.Itoa(int(component))
				switch {
				case lineLength+len(s)+1 > maxPPMLineLength:
					bw.WriteByte('\n')
					lineLength = 0
				case lineLength > 0:
					bw.WriteByte(' ')
					lineLength++
				}
				bw.WriteString(s)
				lineLength += len(s)
			}
		}
		bw.WriteByte('\n')
	}
	return bw.Flush()
}

// ToImage converts the canvas to an RGBA image
func (c *Canvas) ToImage() *image.RGBA {
	return c.RowsImage(0, c.Height)
}

// RowsImage converts rows [y0, y1) to an image whose origin is row y0
func (c *Canvas) RowsImage(y0, y1 int) *image.RGBA {
	y0 = max(y0, 0)
	y1 = min(y1, c.Height)
	img := image.NewRGBA(image.Rect(0, 0, c.Width, max(y1-y0, 0)))
	for y := y0; y < y1; y++ {
		for x := 0; x < c.Width; x++ {
			img.SetRGBA(x, y-y0, c.PixelAt(x, y).ToRGBA())
		}
	}
	return img
}

// WritePNG encodes the canvas as PNG
func (c *Canvas) WritePNG(w io.Writer) error {
	return png.Encode(w, c.ToImage())
}
