package geometry

import "github.com/df07/go-csg-pathtracer/pkg/core"

// Shape is anything a ray can pass through. AllIntersections returns every
// entry/exit pair along the whole line of the ray, sorted by distance,
// including pairs that lie behind the origin.
//
// Implementations: *Sphere, *Plane, *Intersection, *Difference.
type Shape interface {
	AllIntersections(ray core.Ray) []EntryExit
}

// FirstIntersection returns the nearest pair whose exit lies beyond tMin
func FirstIntersection(shape Shape, ray core.Ray, tMin float64) (EntryExit, bool) {
	for _, pair := range shape.AllIntersections(ray) {
		if pair.Exit.Distance > tMin {
			return pair, true
		}
	}
	return EntryExit{}, false
}

// FirstHit returns the nearest surface crossing beyond tMin with the normal
// oriented against the ray. A ray starting inside the solid hits the exit.
func FirstHit(shape Shape, ray core.Ray, tMin float64) (Hit, bool) {
	pair, ok := FirstIntersection(shape, ray, tMin)
	if !ok {
		return Hit{}, false
	}

	if pair.Entry.Distance > tMin {
		if pair.Entry.isSentinel() {
			return Hit{}, false
		}
		hit := pair.Entry
		hit.FrontFace = true
		return hit, true
	}
	if pair.Exit.isSentinel() {
		return Hit{}, false
	}
	return pair.Exit.flipped(), true
}
