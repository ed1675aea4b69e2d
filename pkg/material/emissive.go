package material

import "github.com/df07/go-csg-pathtracer/pkg/core"

// Emission makes a surface glow with its own color
type Emission struct {
	Strength float64
}

// NewEmissive creates a material that emits its color at the given strength
func NewEmissive(color core.Color, strength float64) *Material {
	m := NewMaterial(color, 1.0, 0.0)
	m.Emission = &Emission{Strength: strength}
	return m
}

// Emitted returns the light the surface emits, black when it has no emission
func (m *Material) Emitted() core.Color {
	if m.Emission == nil {
		return core.Black
	}
	return m.Color.ApplyBrightness(m.Emission.Strength)
}
