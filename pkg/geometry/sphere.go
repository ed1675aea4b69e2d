package geometry

import (
	"math"

	"github.com/df07/go-csg-pathtracer/pkg/core"
)

// Sphere represents a sphere shape
type Sphere struct {
	Center core.Vec3
	Radius float64
}

// NewSphere creates a new sphere
func NewSphere(center core.Vec3, radius float64) *Sphere {
	return &Sphere{
		Center: center,
		Radius: radius,
	}
}

// AllIntersections returns the single entry/exit pair of the ray's line
// through the sphere, or nothing when it misses
func (s *Sphere) AllIntersections(ray core.Ray) []EntryExit {
	// Vector from ray origin to sphere center
	oc := ray.Origin.Subtract(s.Center)

	// Quadratic equation coefficients: at² + bt + c = 0
	a := ray.Direction.Dot(ray.Direction)
	halfB := oc.Dot(ray.Direction)
	c := oc.Dot(oc) - s.Radius*s.Radius

	discriminant := halfB*halfB - a*c
	if discriminant < 0 {
		return nil
	}

	sqrtD := math.Sqrt(discriminant)
	near := (-halfB - sqrtD) / a
	far := (-halfB + sqrtD) / a

	return []EntryExit{{
		Entry: newHit(ray, near, s.normalAt(ray.At(near))),
		Exit:  newHit(ray, far, s.normalAt(ray.At(far))),
	}}
}

// normalAt returns the outward normal at a surface point
func (s *Sphere) normalAt(point core.Vec3) core.Vec3 {
	return point.Subtract(s.Center).Multiply(1.0 / math.Abs(s.Radius))
}
