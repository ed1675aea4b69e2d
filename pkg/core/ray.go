package core

import (
	"math"
	"math/rand"
)

// Ray represents a ray with an origin and a unit direction
type Ray struct {
	Origin    Vec3
	Direction Vec3
}

// NewRay creates a new ray, normalizing the direction
func NewRay(origin, direction Vec3) Ray {
	return Ray{Origin: origin, Direction: direction.Normalize()}
}

// At returns the point at parameter t along the ray
func (r Ray) At(t float64) Vec3 {
	return r.Origin.Add(r.Direction.Multiply(t))
}

// Bounce mirror-reflects the ray about the normal, starting at point
func (r Ray) Bounce(point, normal Vec3) Ray {
	return NewRay(point, reflect(r.Direction, normal))
}

// Scatter returns a glossy continuation: the mirror bounce jittered inside
// its tangent plane by up to roughness along each of two orthogonal axes.
// A roughness of zero is an exact mirror bounce.
func (r Ray) Scatter(point, normal Vec3, roughness float64, random *rand.Rand) Ray {
	bounced := r.Bounce(point, normal)
	if roughness <= 0 {
		return bounced
	}

	d := bounced.Direction
	right := d.Cross(normal)
	if right.LengthSquared() < 1e-12 {
		// Head-on reflection: any axis perpendicular to d will do
		right = d.Cross(perpendicularAxis(d))
	}
	right = right.Normalize()
	up := right.Cross(d).Normalize()

	offsetRight := RandomInRange(random, -roughness, roughness)
	offsetUp := RandomInRange(random, -roughness, roughness)
	direction := d.Add(right.Multiply(offsetRight)).Add(up.Multiply(offsetUp))

	return NewRay(point, direction)
}

// Refract bends the ray through a surface with relative index of refraction eta
// (incident over transmitted). Returns false on total internal reflection.
func (r Ray) Refract(point, normal Vec3, eta float64) (Ray, bool) {
	cosI := -r.Direction.Dot(normal)
	sin2T := eta * eta * (1 - cosI*cosI)
	if sin2T > 1 {
		return Ray{}, false
	}
	cosT := math.Sqrt(1 - sin2T)
	direction := r.Direction.Multiply(eta).Add(normal.Multiply(eta*cosI - cosT))
	return NewRay(point, direction), true
}

// reflect calculates the reflection of a vector v off a surface with normal n
func reflect(v, n Vec3) Vec3 {
	// r = v - 2*dot(v,n)*n
	return v.Subtract(n.Multiply(2 * v.Dot(n)))
}

// perpendicularAxis picks the world axis least aligned with v
func perpendicularAxis(v Vec3) Vec3 {
	if math.Abs(v.X) > 0.1 {
		return NewVec3(0, 1, 0)
	}
	return NewVec3(1, 0, 0)
}
