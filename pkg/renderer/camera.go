package renderer

import (
	"fmt"
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Camera maps canvas pixels to world-space rays. The camera sits at the
// origin looking down -z with the canvas one unit in front; its transform
// moves the world, usually built with core.ViewTransform.
type Camera struct {
	HSize       int     // Canvas width in pixels
	VSize       int     // Canvas height in pixels
	FieldOfView float64 // Radians, across the longer side

	transform  core.Matrix
	inverse    core.Matrix
	halfWidth  float64
	halfHeight float64
	pixelSize  float64
}

// NewCamera creates a camera for an hsize × vsize canvas
func NewCamera(hsize, vsize int, fieldOfView float64) (*Camera, error) {
	if hsize <= 0 || vsize <= 0 {
		return nil, fmt.Errorf("camera size must be positive, got %dx%d", hsize, vsize)
	}
	if !(fieldOfView > 0 && fieldOfView < math.Pi) {
		return nil, fmt.Errorf("field of view must be in (0, π), got %f", fieldOfView)
	}

	c := &Camera{
		HSize:       hsize,
		VSize:       vsize,
		FieldOfView: fieldOfView,
		transform:   core.Identity(),
		inverse:     core.Identity(),
	}

	halfView := math.Tan(fieldOfView / 2)
	aspect := float64(hsize) / float64(vsize)
	if aspect >= 1 {
		c.halfWidth = halfView
		c.halfHeight = halfView / aspect
	} else {
		c.halfWidth = halfView * aspect
		c.halfHeight = halfView
	}
	c.pixelSize = c.halfWidth * 2 / float64(hsize)

	return c, nil
}

// SetTransform sets the view transform. A singular matrix is rejected.
func (c *Camera) SetTransform(m core.Matrix) error {
	inverse, ok := m.Inverse()
	if !ok {
		return fmt.Errorf("camera transform is not invertible")
	}
	c.transform = m
	c.inverse = inverse
	return nil
}

// Transform returns the view transform
func (c *Camera) Transform() core.Matrix {
	return c.transform
}

// PixelSize returns the world-space width of one pixel on the canvas plane
func (c *Camera) PixelSize() float64 {
	return c.pixelSize
}

// RayForPixel returns the ray from the camera through the center of pixel
// (px, py), with (0, 0) at the top left
func (c *Camera) RayForPixel(px, py int) core.Ray {
	xOffset := (float64(px) + 0.5) * c.pixelSize
	yOffset := (float64(py) + 0.5) * c.pixelSize

	worldX := c.halfWidth - xOffset
	worldY := c.halfHeight - yOffset

	pixel := c.inverse.MultiplyTuple(core.Point(worldX, worldY, -1))
	origin := c.inverse.MultiplyTuple(core.Point(0, 0, 0))
	return core.NewRay(origin, pixel.Subtract(origin).Normalize())
}
