package geometry

import (
	"math"

	"github.com/df07/go-csg-pathtracer/pkg/core"
)

// DefaultVFov is the vertical field of view in degrees
const DefaultVFov = 60.0

// Camera is a pinhole camera at Position looking down +Z with +Y up
type Camera struct {
	Position core.Vec3
	VFov     float64 // Vertical field of view in degrees
}

// NewCamera creates a camera at the given position with the default field of view
func NewCamera(position core.Vec3) *Camera {
	return &Camera{
		Position: position,
		VFov:     DefaultVFov,
	}
}

// GetRay returns the ray through the center of pixel (x, y) of a width×height
// image. Pixel (0, 0) is the top-left corner. GetRay has no side effects.
func (c *Camera) GetRay(x, y, width, height int) core.Ray {
	aspectRatio := float64(width) / float64(height)
	scale := math.Tan(c.VFov * math.Pi / 360.0)

	// Normalized device coordinates in [-1, 1], +y up
	ndcX := 2*(float64(x)+0.5)/float64(width) - 1
	ndcY := 1 - 2*(float64(y)+0.5)/float64(height)

	direction := core.NewVec3(ndcX*scale*aspectRatio, ndcY*scale, 1)
	return core.NewRay(c.Position, direction)
}
