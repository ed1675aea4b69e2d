package lights

import (
	"math/rand"

	"github.com/df07/go-csg-pathtracer/pkg/core"
)

// Light is a source of direct illumination
type Light interface {
	// SamplePoint returns a random point within the light's extent
	SamplePoint(random *rand.Rand) core.Vec3

	// Color returns the color of the emitted light
	Color() core.Color

	// Falloff returns the brightness factor at the given distance from the light
	Falloff(distance float64) float64
}
