package integrator

import "github.com/df07/go-csg-pathtracer/pkg/core"

// Budget bounds the remaining work of one branch of the recursive estimator.
// It is passed by value, so each branch decays its own copy.
type Budget struct {
	Bounces       int // Remaining recursion depth
	LightSamples  int // Shadow rays per light at this depth
	BounceSamples int // Continuation rays at this depth
}

// Config contains the integrator's tunable constants
type Config struct {
	MaxBounces        int     // Initial recursion depth
	LightSamples      int     // Initial shadow rays per light
	BounceSamples     int     // Initial continuation rays
	LightSampleDecay  int     // Light samples are divided by this (rounded up) per bounce
	BounceSampleDecay int     // Bounce samples are divided by this (rounded up) per bounce
	AmbientFactor     float64 // Fraction of the surface color visible without any light
	ShadowBias        float64 // Offset of secondary ray origins off the surface
}

// DefaultConfig returns sensible default values
func DefaultConfig() Config {
	return Config{
		MaxBounces:        8,
		LightSamples:      16,
		BounceSamples:     16,
		LightSampleDecay:  4,
		BounceSampleDecay: 5,
		AmbientFactor:     0.1,
		ShadowBias:        1e-4,
	}
}

// InitialBudget returns the budget a camera ray starts with
func (c Config) InitialBudget() Budget {
	return Budget{
		Bounces:       c.MaxBounces,
		LightSamples:  c.LightSamples,
		BounceSamples: c.BounceSamples,
	}
}

// Decay returns the budget for the next recursion level: one bounce fewer
// and geometrically fewer samples
func (b Budget) Decay(config Config) Budget {
	return Budget{
		Bounces:       b.Bounces - 1,
		LightSamples:  core.CeilDiv(b.LightSamples, config.LightSampleDecay),
		BounceSamples: core.CeilDiv(b.BounceSamples, config.BounceSampleDecay),
	}
}
