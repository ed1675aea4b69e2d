package integrator

import (
	"math/rand"

	"github.com/df07/go-csg-pathtracer/pkg/core"
	"github.com/df07/go-csg-pathtracer/pkg/scene"
)

// Integrator defines the interface for light transport algorithms.
// Implementations must be safe for concurrent use with distinct random generators.
type Integrator interface {
	// Trace computes the color seen along a camera ray
	Trace(ray core.Ray, scene *scene.Scene, random *rand.Rand) core.Color
}
