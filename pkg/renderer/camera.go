package renderer

import (
	"math"

	"github.com/mfortier/go-whitted-raytracer/pkg/core"
)

// Camera maps pixel coordinates onto rays through a virtual canvas one unit
// in front of the camera
type Camera struct {
	HSize       int
	VSize       int
	FieldOfView float64
	Transform   *core.Transform

	pixelSize  float64
	halfWidth  float64
	halfHeight float64
}

// NewCamera creates a camera for the given canvas size and horizontal field
// of view in radians
func NewCamera(hsize, vsize int, fieldOfView float64) *Camera {
	c := &Camera{
		HSize:       hsize,
		VSize:       vsize,
		FieldOfView: fieldOfView,
		Transform:   core.NewTransform(core.Identity()),
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
	c.pixelSize = (c.halfWidth * 2) / float64(hsize)

	return c
}

// SetTransform replaces the camera's world-to-camera transform, typically
// built with core.ViewTransform
func (c *Camera) SetTransform(m core.Matrix) {
	c.Transform = core.NewTransform(m)
}

// PixelSize returns the world-space size of one pixel on the canvas
func (c *Camera) PixelSize() float64 {
	return c.pixelSize
}

// RayForPixel returns the world-space ray through the center of the pixel
func (c *Camera) RayForPixel(px, py int) core.Ray {
	xOffset := (float64(px) + 0.5) * c.pixelSize
	yOffset := (float64(py) + 0.5) * c.pixelSize

	// The canvas sits at z=-1; x grows left in camera space
	worldX := c.halfWidth - xOffset
	worldY := c.halfHeight - yOffset

	inv := c.Transform.Inverse()
	pixel := inv.MultiplyTuple(core.NewPoint(worldX, worldY, -1))
	origin := inv.MultiplyTuple(core.NewPoint(0, 0, 0))
	direction := pixel.Subtract(origin).Normalize()

	return core.NewRay(origin, direction)
}
