package scene

import (
	"github.com/df07/go-csg-pathtracer/pkg/core"
	"github.com/df07/go-csg-pathtracer/pkg/geometry"
	"github.com/df07/go-csg-pathtracer/pkg/lights"
	"github.com/df07/go-csg-pathtracer/pkg/material"
)

// NewGlassScene exercises the optional material capabilities: a glass
// sphere, a glowing sphere and a mirror
func NewGlassScene() *Scene {
	s := New("glass")
	s.Camera = geometry.NewCamera(core.NewVec3(0, 0, 0))

	s.mustAdd(geometry.NewPlane(core.NewVec3(0, -1, 0), core.NewVec3(0, 1, 0)),
		material.NewDiffuse(core.NewColor(0.6, 0.6, 0.6)))
	s.mustAdd(geometry.NewSphere(core.NewVec3(0, 0, 5), 1),
		material.NewGlass(core.NewColor(0.95, 0.95, 1.0), 1.5))
	s.mustAdd(geometry.NewSphere(core.NewVec3(-1.5, -0.5, 8), 0.5),
		material.NewEmissive(core.NewColor(1.0, 0.6, 0.2), 2))
	s.mustAdd(geometry.NewSphere(core.NewVec3(2.2, 0.2, 7), 1.2),
		material.NewMirror(core.NewColor(0.8, 0.85, 0.9)))

	s.AddLight(lights.NewPointLight(core.NewVec3(0, 5, 4), core.NewColor(1, 1, 1), 0.5))

	return s
}
