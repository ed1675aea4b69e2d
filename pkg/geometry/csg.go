package geometry

import "github.com/df07/go-csg-pathtracer/pkg/core"

// Intersection is the solid shared by both children
type Intersection struct {
	A, B Shape
}

// NewIntersection creates the boolean intersection of two shapes
func NewIntersection(a, b Shape) *Intersection {
	return &Intersection{A: a, B: b}
}

// AllIntersections implements Shape
func (i *Intersection) AllIntersections(ray core.Ray) []EntryExit {
	a := i.A.AllIntersections(ray)
	if len(a) == 0 {
		return nil
	}
	b := i.B.AllIntersections(ray)
	if len(b) == 0 {
		return nil
	}
	return combine(a, b, keepIntersection)
}

// Difference is the solid of A with B carved out of it
type Difference struct {
	A, B Shape
}

// NewDifference creates the boolean difference A minus B
func NewDifference(a, b Shape) *Difference {
	return &Difference{A: a, B: b}
}

// AllIntersections implements Shape
func (d *Difference) AllIntersections(ray core.Ray) []EntryExit {
	a := d.A.AllIntersections(ray)
	if len(a) == 0 {
		return nil
	}
	b := d.B.AllIntersections(ray)
	if len(b) == 0 {
		return a
	}
	return combine(a, b, keepDifference)
}
