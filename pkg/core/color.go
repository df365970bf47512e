package core

import (
	"image/color"
	"math"
)

// Color is a linear RGB color. Components are unbounded until output.
type Color struct {
	R, G, B float64
}

// NewColor creates a new Color
func NewColor(r, g, b float64) Color {
	return Color{R: r, G: g, B: b}
}

// Black returns (0, 0, 0)
func Black() Color {
	return Color{}
}

// White returns (1, 1, 1)
func White() Color {
	return Color{1, 1, 1}
}

// Add returns the sum of two colors
func (c Color) Add(other Color) Color {
	return Color{c.R + other.R, c.G + other.G, c.B + other.B}
}

// Subtract returns the difference of two colors
func (c Color) Subtract(other Color) Color {
	return Color{c.R - other.R, c.G - other.G, c.B - other.B}
}

// Multiply returns the color scaled by a scalar
func (c Color) Multiply(scalar float64) Color {
	return Color{c.R * scalar, c.G * scalar, c.B * scalar}
}

// MultiplyColor returns the component-wise (Hadamard) product
func (c Color) MultiplyColor(other Color) Color {
	return Color{c.R * other.R, c.G * other.G, c.B * other.B}
}

// Clamp returns a color with components clamped to [0, 1]
func (c Color) Clamp() Color {
	return Color{
		R: max(0, min(1, c.R)),
		G: max(0, min(1, c.G)),
		B: max(0, min(1, c.B)),
	}
}

// IsBlack reports whether every component is exactly zero
func (c Color) IsBlack() bool {
	return c.R == 0 && c.G == 0 && c.B == 0
}

// ApproxEqual compares the components within Epsilon
func (c Color) ApproxEqual(other Color) bool {
	return ApproxEqual(c.R, other.R) && ApproxEqual(c.G, other.G) && ApproxEqual(c.B, other.B)
}

// ToBytes scales the clamped color to 0..255 with rounding
func (c Color) ToBytes() (r, g, b uint8) {
	cl := c.Clamp()
	return toByte(cl.R), toByte(cl.G), toByte(cl.B)
}

// ToRGBA converts to an opaque image/color value
func (c Color) ToRGBA() color.RGBA {
	r, g, b := c.ToBytes()
	return color.RGBA{R: r, G: g, B: b, A: 255}
}

func toByte(v float64) uint8 {
	return uint8(math.Round(v * 255))
}
