package scene

import (
	"github.com/df07/go-csg-pathtracer/pkg/core"
	"github.com/df07/go-csg-pathtracer/pkg/geometry"
	"github.com/df07/go-csg-pathtracer/pkg/lights"
	"github.com/df07/go-csg-pathtracer/pkg/material"
)

// NewCSGScene showcases compound shapes: a lens, a cut sphere and a drilled cube
func NewCSGScene() *Scene {
	s := New("csg")
	s.Camera = geometry.NewCamera(core.NewVec3(0, 0.5, -1))

	floor := material.NewDiffuse(core.NewColor(0.7, 0.7, 0.75))
	gold := material.NewMaterial(core.NewColor(0.9, 0.7, 0.2), 0.15, 0.6)
	blue := material.NewMaterial(core.NewColor(0.2, 0.35, 0.9), 0.6, 0.3)
	mirror := material.NewMirror(core.NewColor(0.9, 0.9, 0.9))

	s.mustAdd(geometry.NewPlane(core.NewVec3(0, -1, 0), core.NewVec3(0, 1, 0)), floor)

	// Lens: overlap of two offset spheres
	lens := geometry.NewIntersection(
		geometry.NewSphere(core.NewVec3(-2.2, 0, 5.6), 1),
		geometry.NewSphere(core.NewVec3(-2.2, 0, 4.4), 1),
	)
	s.mustAdd(lens, gold)

	// Sphere with its top sliced off by a tilted half-space
	cut := geometry.NewDifference(
		geometry.NewSphere(core.NewVec3(2.2, 0, 6), 1),
		geometry.NewPlane(core.NewVec3(2.2, 0.4, 6), core.NewVec3(0.3, -1, -0.2)),
	)
	s.mustAdd(cut, blue)

	// Cube from six half-spaces with a sphere carved out of its center
	cube := NewBox(core.NewVec3(0, 0, 7), 0.9)
	dice := geometry.NewDifference(cube, geometry.NewSphere(core.NewVec3(0, 0, 7), 1.15))
	s.mustAdd(dice, mirror)

	s.AddLight(lights.NewPointLight(core.NewVec3(-1, 4, 3), core.NewColor(1, 0.95, 0.9), 0.4))
	s.AddLight(lights.NewPointLight(core.NewVec3(3, 3, 2), core.NewColor(0.3, 0.3, 0.4), 0.2))

	return s
}

// NewBox builds an axis-aligned cube of the given half-width as the
// intersection of six half-spaces
func NewBox(center core.Vec3, halfWidth float64) geometry.Shape {
	axes := []core.Vec3{
		core.NewVec3(1, 0, 0), core.NewVec3(-1, 0, 0),
		core.NewVec3(0, 1, 0), core.NewVec3(0, -1, 0),
		core.NewVec3(0, 0, 1), core.NewVec3(0, 0, -1),
	}

	var box geometry.Shape
	for _, axis := range axes {
		face := geometry.NewPlane(center.Add(axis.Multiply(halfWidth)), axis)
		if box == nil {
			box = face
			continue
		}
		box = geometry.NewIntersection(box, face)
	}
	return box
}
