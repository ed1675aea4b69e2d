package lights

import (
	"math/rand"

	"github.com/df07/go-csg-pathtracer/pkg/core"
)

// DefaultIntensity is the brightness of a point light one unit away
const DefaultIntensity = 0.5

// PointLight is a small cubic area light. Sampling jitters inside a cube of
// half-width Size around Point, which softens shadow edges.
type PointLight struct {
	Point     core.Vec3
	Emission  core.Color
	Size      float64 // Half-width of the jitter cube, 0 for a hard point light
	Intensity float64 // Brightness at unit distance, falls off as 1/distance
}

// NewPointLight creates a point light with the default intensity
func NewPointLight(point core.Vec3, color core.Color, size float64) *PointLight {
	return &PointLight{
		Point:     point,
		Emission:  color,
		Size:      max(0, size),
		Intensity: DefaultIntensity,
	}
}

// SamplePoint implements Light
func (p *PointLight) SamplePoint(random *rand.Rand) core.Vec3 {
	if p.Size == 0 {
		return p.Point
	}
	return p.Point.Add(core.RandomInCube(random, p.Size))
}

// Color implements Light
func (p *PointLight) Color() core.Color {
	return p.Emission
}

// Falloff implements Light
func (p *PointLight) Falloff(distance float64) float64 {
	if distance <= 0 {
		return 0
	}
	return p.Intensity / distance
}
