package integrator

import (
	"math/rand"

	"github.com/df07/go-csg-pathtracer/pkg/core"
	"github.com/df07/go-csg-pathtracer/pkg/geometry"
	"github.com/df07/go-csg-pathtracer/pkg/material"
	"github.com/df07/go-csg-pathtracer/pkg/scene"
)

// PathTracingIntegrator estimates light transport by recursively sampling
// light sources and glossy bounces, with a budget that shrinks per bounce
type PathTracingIntegrator struct {
	config Config
}

// NewPathTracingIntegrator creates a new path tracing integrator
func NewPathTracingIntegrator(config Config) *PathTracingIntegrator {
	return &PathTracingIntegrator{
		config: config,
	}
}

// Config returns the integrator's configuration
func (pt *PathTracingIntegrator) Config() Config {
	return pt.config
}

// Trace computes the color for a camera ray, falling back to the sky when
// the ray contributes nothing
func (pt *PathTracingIntegrator) Trace(ray core.Ray, s *scene.Scene, random *rand.Rand) core.Color {
	if color, ok := pt.TraceRayColor(ray, s, pt.config.InitialBudget(), random); ok {
		return color
	}
	return SkyColor(ray)
}

// TraceRayColor returns the light arriving along the ray, or false when the
// ray misses everything or the budget has no bounces left
func (pt *PathTracingIntegrator) TraceRayColor(ray core.Ray, s *scene.Scene, budget Budget, random *rand.Rand) (core.Color, bool) {
	if budget.Bounces <= 0 {
		return core.Black, false
	}

	obj, hit, isHit := s.Hit(ray, 0)
	if !isHit {
		return core.Black, false
	}
	mat := obj.Material

	// Pull the shading point back toward the viewer so secondary rays don't
	// re-hit the surface they leave from
	biased := hit.Point.Subtract(ray.Direction.Multiply(pt.config.ShadowBias))

	surface := mat.Color.ApplyBrightness(pt.config.AmbientFactor).
		Add(pt.calculateDirectLighting(s, mat, hit, biased, budget.LightSamples, random)).
		Add(pt.calculateIndirectLighting(ray, s, mat, hit, biased, budget, random))

	if transmitted := mat.TransmittedFraction(); transmitted > 0 {
		through := pt.calculateTransmittedLight(ray, s, mat, hit, budget, random)
		surface = surface.ApplyBrightness(1 - transmitted).Add(through.ApplyBrightness(transmitted))
	}

	return surface.Add(mat.Emitted()), true
}

// calculateDirectLighting sums shadow-tested samples of every light,
// filtered by the surface color
func (pt *PathTracingIntegrator) calculateDirectLighting(s *scene.Scene, mat *material.Material, hit geometry.Hit, origin core.Vec3, samples int, random *rand.Rand) core.Color {
	if samples <= 0 {
		return core.Black
	}

	total := core.Black
	for _, light := range s.Lights() {
		for i := 0; i < samples; i++ {
			samplePoint := light.SamplePoint(random)
			toLight := samplePoint.Subtract(origin)
			if toLight.IsZero() {
				continue
			}
			distance := toLight.Length()
			direction := toLight.Multiply(1.0 / distance)

			// Light behind the surface contributes nothing
			cosine := hit.Normal.Dot(direction)
			if cosine <= 0 {
				continue
			}

			// The shadow ray targets the same jittered sample being shaded,
			// so a soft light's penumbra matches its sampled area
			if pt.occluded(s, core.Ray{Origin: origin, Direction: direction}, distance) {
				continue
			}

			brightness := light.Falloff(distance) * cosine / float64(samples)
			total = total.Add(light.Color().ApplyBrightness(brightness))
		}
	}

	return total.Multiply(mat.Color)
}

// occluded reports whether anything lies on the ray strictly before distance
func (pt *PathTracingIntegrator) occluded(s *scene.Scene, shadowRay core.Ray, distance float64) bool {
	_, blocker, blocked := s.Hit(shadowRay, 0)
	return blocked && blocker.Distance < distance
}

// calculateIndirectLighting averages scattered continuation rays traced with a decayed budget
func (pt *PathTracingIntegrator) calculateIndirectLighting(ray core.Ray, s *scene.Scene, mat *material.Material, hit geometry.Hit, origin core.Vec3, budget Budget, random *rand.Rand) core.Color {
	if mat.Reflectiveness <= 0 || budget.BounceSamples <= 0 {
		return core.Black
	}

	next := budget.Decay(pt.config)
	total := core.Black
	for i := 0; i < budget.BounceSamples; i++ {
		scattered := ray.Scatter(origin, hit.Normal, mat.Roughness, random)
		if incoming, ok := pt.TraceRayColor(scattered, s, next, random); ok {
			total = total.Add(incoming)
		}
	}

	return total.ApplyBrightness(mat.Reflectiveness / float64(budget.BounceSamples))
}

// calculateTransmittedLight follows the refracted ray through a transparent
// surface. Total internal reflection turns it into a mirror bounce.
func (pt *PathTracingIntegrator) calculateTransmittedLight(ray core.Ray, s *scene.Scene, mat *material.Material, hit geometry.Hit, budget Budget, random *rand.Rand) core.Color {
	ior := mat.Transparency.RefractiveIndex
	if ior <= 0 {
		ior = 1
	}
	eta := ior
	if hit.FrontFace {
		eta = 1.0 / ior
	}

	beyond := hit.Point.Add(ray.Direction.Multiply(pt.config.ShadowBias))
	continuation, ok := ray.Refract(beyond, hit.Normal, eta)
	if !ok {
		before := hit.Point.Subtract(ray.Direction.Multiply(pt.config.ShadowBias))
		continuation = ray.Bounce(before, hit.Normal)
	}

	incoming, ok := pt.TraceRayColor(continuation, s, budget.Decay(pt.config), random)
	if !ok {
		return core.Black
	}
	return incoming.Multiply(mat.Color)
}

// SkyColor is the background seen by camera rays that hit nothing
func SkyColor(ray core.Ray) core.Color {
	return core.ColorFromVec3(ray.Direction.Normalize().Abs())
}
