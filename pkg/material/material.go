package material

import "github.com/df07/go-csg-pathtracer/pkg/core"

// Material describes how a surface responds to light.
// Emission and Transparency are optional capabilities; nil means absent.
type Material struct {
	Color          core.Color // Surface color, also the absorption filter for direct light
	Roughness      float64    // 0.0 = perfect mirror bounce, 1.0 = widest scatter cone
	Reflectiveness float64    // Weight of the indirect (bounced) contribution
	Emission       *Emission
	Transparency   *Transparency
}

// NewMaterial creates a material with the given scatter properties
func NewMaterial(color core.Color, roughness, reflectiveness float64) *Material {
	return &Material{
		Color:          color,
		Roughness:      clamp01(roughness),
		Reflectiveness: clamp01(reflectiveness),
	}
}

// NewDiffuse creates a matte material: wide scatter, weak bounce light
func NewDiffuse(color core.Color) *Material {
	return NewMaterial(color, 1.0, 0.2)
}

// NewMirror creates a polished material with a sharp, strong reflection
func NewMirror(color core.Color) *Material {
	return NewMaterial(color, 0.0, 0.9)
}

// clamp01 clamps a value to the [0, 1] range
func clamp01(v float64) float64 {
	return max(0.0, min(1.0, v))
}
