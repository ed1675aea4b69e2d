package scene

import (
	"github.com/df07/go-csg-pathtracer/pkg/core"
	"github.com/df07/go-csg-pathtracer/pkg/geometry"
	"github.com/df07/go-csg-pathtracer/pkg/lights"
	"github.com/df07/go-csg-pathtracer/pkg/material"
)

// NewDefaultScene creates a red sphere resting above a floor, lit from above
func NewDefaultScene() *Scene {
	s := New("default")
	// Slightly below the sphere's top so the image center looks into it
	s.Camera = geometry.NewCamera(core.NewVec3(0, -0.5, 0))

	red := material.NewDiffuse(core.NewColor(1.0, 0.0, 0.0))
	floor := material.NewDiffuse(core.NewColor(0.8, 0.8, 0.8))

	s.mustAdd(geometry.NewSphere(core.NewVec3(0, -1, 5), 1), red)
	s.mustAdd(geometry.NewPlane(core.NewVec3(0, -2, 0), core.NewVec3(0, 1, 0)), floor)

	s.AddLight(lights.NewPointLight(
		core.NewVec3(-0.2, 2.2, 5), // above the sphere, slightly left
		core.NewColor(1, 1, 1),
		0.25,
	))

	return s
}
