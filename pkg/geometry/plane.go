package geometry

import (
	"math"

	"github.com/df07/go-csg-pathtracer/pkg/core"
)

// Plane bounds the half-space behind its normal. The solid side is the
// one the normal points away from.
type Plane struct {
	Point  core.Vec3 // A point on the plane
	Normal core.Vec3 // Unit normal, pointing out of the solid
}

// NewPlane creates a new plane
func NewPlane(point, normal core.Vec3) *Plane {
	return &Plane{
		Point:  point,
		Normal: normal.Normalize(),
	}
}

// AllIntersections returns the ray's traversal of the half-space. The pair
// is unbounded on at least one side: rays entering the solid never leave it,
// rays leaving it were inside since -Inf.
func (p *Plane) AllIntersections(ray core.Ray) []EntryExit {
	denominator := ray.Direction.Dot(p.Normal)

	// Parallel rays never cross the boundary. Inside the solid they stay
	// inside for their whole length, which compound shapes rely on.
	if math.Abs(denominator) < 1e-12 {
		if ray.Origin.Subtract(p.Point).Dot(p.Normal) < 0 {
			return []EntryExit{{Entry: sentinelHit(math.Inf(-1)), Exit: sentinelHit(math.Inf(1))}}
		}
		return nil
	}

	t := p.Point.Subtract(ray.Origin).Dot(p.Normal) / denominator
	crossing := newHit(ray, t, p.Normal)

	if denominator < 0 {
		return []EntryExit{{Entry: crossing, Exit: sentinelHit(math.Inf(1))}}
	}
	return []EntryExit{{Entry: sentinelHit(math.Inf(-1)), Exit: crossing}}
}
