package scene

import (
	"errors"
	"math"

	"github.com/df07/go-csg-pathtracer/pkg/core"
	"github.com/df07/go-csg-pathtracer/pkg/geometry"
	"github.com/df07/go-csg-pathtracer/pkg/lights"
	"github.com/df07/go-csg-pathtracer/pkg/material"
)

var (
	// ErrNilShape is returned when an object is added without a shape
	ErrNilShape = errors.New("scene: object has no shape")
	// ErrNilMaterial is returned when an object is added without a material
	ErrNilMaterial = errors.New("scene: object has no material")
)

// ObjectID identifies an object in a scene. IDs are dense and assigned in insertion order.
type ObjectID int

// Object pairs a shape with the material it is drawn with
type Object struct {
	ID       ObjectID
	Shape    geometry.Shape
	Material *material.Material
}

// Scene is an append-only registry of objects and lights.
// It is built once and must not be modified while rendering; concurrent
// reads during a render need no locking.
type Scene struct {
	Name   string
	Camera *geometry.Camera
	Width  int // Recommended image width
	Height int // Recommended image height

	objects []Object
	lights  []lights.Light
}

// New creates an empty scene with a camera at the origin
func New(name string) *Scene {
	return &Scene{
		Name:   name,
		Camera: geometry.NewCamera(core.NewVec3(0, 0, 0)),
		Width:  400,
		Height: 300,
	}
}

// AddObject registers a shape with its material and returns the new object's ID.
// Both must be non-nil so every registered ID resolves to a complete object.
func (s *Scene) AddObject(shape geometry.Shape, mat *material.Material) (ObjectID, error) {
	if shape == nil {
		return 0, ErrNilShape
	}
	if mat == nil {
		return 0, ErrNilMaterial
	}

	id := ObjectID(len(s.objects))
	s.objects = append(s.objects, Object{ID: id, Shape: shape, Material: mat})
	return id, nil
}

// AddLight appends a light to the scene
func (s *Scene) AddLight(light lights.Light) {
	s.lights = append(s.lights, light)
}

// Object returns the object registered under id
func (s *Scene) Object(id ObjectID) (Object, bool) {
	if id < 0 || int(id) >= len(s.objects) {
		return Object{}, false
	}
	return s.objects[id], true
}

// Objects returns all registered objects in ID order
func (s *Scene) Objects() []Object {
	return s.objects
}

// Lights returns the scene's lights in insertion order
func (s *Scene) Lights() []lights.Light {
	return s.lights
}

// Hit finds the nearest object surface along the ray beyond tMin
func (s *Scene) Hit(ray core.Ray, tMin float64) (Object, geometry.Hit, bool) {
	var (
		closestObject Object
		closestHit    geometry.Hit
	)
	closestSoFar := math.Inf(1)

	for _, object := range s.objects {
		hit, ok := geometry.FirstHit(object.Shape, ray, tMin)
		if ok && hit.Distance < closestSoFar {
			closestSoFar = hit.Distance
			closestObject = object
			closestHit = hit
		}
	}

	return closestObject, closestHit, !math.IsInf(closestSoFar, 1)
}

// mustAdd registers an object of a built-in scene, where a nil shape or
// material is a programming error
func (s *Scene) mustAdd(shape geometry.Shape, mat *material.Material) ObjectID {
	id, err := s.AddObject(shape, mat)
	if err != nil {
		panic(err)
	}
	return id
}
