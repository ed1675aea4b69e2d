package core

import "math/rand"

// RandomInRange returns a uniform value in [lo, hi)
func RandomInRange(random *rand.Rand, lo, hi float64) float64 {
	return lo + (hi-lo)*random.Float64()
}

// RandomInCube returns a uniform offset inside the axis-aligned cube of the given half-width
func RandomInCube(random *rand.Rand, halfWidth float64) Vec3 {
	return NewVec3(
		RandomInRange(random, -halfWidth, halfWidth),
		RandomInRange(random, -halfWidth, halfWidth),
		RandomInRange(random, -halfWidth, halfWidth),
	)
}

// CeilDiv divides n by d rounding up. Divisors below one leave n unchanged.
func CeilDiv(n, d int) int {
	if n <= 0 {
		return 0
	}
	if d <= 1 {
		return n
	}
	return (n + d - 1) / d
}
