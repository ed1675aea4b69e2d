package material

import "github.com/df07/go-csg-pathtracer/pkg/core"

// Transparency lets part of the light pass through the surface, bent by refraction
type Transparency struct {
	Amount          float64 // Fraction of light transmitted, 0.0 to 1.0
	RefractiveIndex float64 // Index of refraction (1.0 = air, 1.5 = glass)
}

// NewGlass creates a mostly transparent, refractive material
func NewGlass(color core.Color, refractiveIndex float64) *Material {
	m := NewMaterial(color, 0.0, 0.3)
	m.Transparency = &Transparency{
		Amount:          0.9,
		RefractiveIndex: refractiveIndex,
	}
	return m
}

// TransmittedFraction returns how much light passes through, 0 when opaque
func (m *Material) TransmittedFraction() float64 {
	if m.Transparency == nil {
		return 0
	}
	return clamp01(m.Transparency.Amount)
}
