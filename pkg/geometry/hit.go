package geometry

import (
	"math"

	"github.com/df07/go-csg-pathtracer/pkg/core"
)

// Hit describes where a ray crosses a surface
type Hit struct {
	Point     core.Vec3 // Point of intersection
	Normal    core.Vec3 // Unit surface normal
	Distance  float64   // Signed distance from the ray origin along its direction
	FrontFace bool      // Set by FirstHit: whether the ray is entering the solid
}

// EntryExit bounds one traversal of a ray through solid material.
// Both normals are the solid's outward normals. Unbounded solids use
// ±Inf distances for the missing side.
type EntryExit struct {
	Entry Hit
	Exit  Hit
}

// flipped returns the hit with its normal reversed
func (h Hit) flipped() Hit {
	h.Normal = h.Normal.Negate()
	return h
}

// sentinelHit builds an unbounded boundary at -Inf or +Inf.
// It has no meaningful point or normal.
func sentinelHit(distance float64) Hit {
	return Hit{Distance: distance}
}

// newHit builds a hit at distance t along the ray
func newHit(ray core.Ray, t float64, normal core.Vec3) Hit {
	return Hit{
		Point:    ray.At(t),
		Normal:   normal,
		Distance: t,
	}
}

// isSentinel reports whether the hit lies at infinity
func (h Hit) isSentinel() bool {
	return math.IsInf(h.Distance, 0)
}
