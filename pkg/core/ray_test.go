package core

import (
	"math"
	"math/rand"
	"testing"
)

func TestRay_NewRayNormalizes(t *testing.T) {
	ray := NewRay(NewVec3(0, 0, 0), NewVec3(0, 3, 4))
	if math.Abs(ray.Direction.Length()-1) > 1e-12 {
		t.Errorf("Expected unit direction, got %v", ray.Direction)
	}
	if got := ray.At(5); got.Subtract(NewVec3(0, 3, 4)).Length() > 1e-12 {
		t.Errorf("Expected At(5) = (0,3,4), got %v", got)
	}
}

func TestRay_Bounce(t *testing.T) {
	ray := NewRay(NewVec3(0, 1, 0), NewVec3(1, -1, 0))
	bounced := ray.Bounce(NewVec3(1, 0, 0), NewVec3(0, 1, 0))

	expected := NewVec3(1, 1, 0).Normalize()
	if bounced.Direction.Subtract(expected).Length() > 1e-12 {
		t.Errorf("Expected mirror direction %v, got %v", expected, bounced.Direction)
	}
	if bounced.Origin != NewVec3(1, 0, 0) {
		t.Errorf("Expected bounce to start at hit point, got %v", bounced.Origin)
	}
}

func TestRay_ScatterZeroRoughnessIsMirror(t *testing.T) {
	random := rand.New(rand.NewSource(42))
	ray := NewRay(NewVec3(-1, 2, -3), NewVec3(0.3, -1, 0.7))
	point := NewVec3(0, 0, 0)
	normal := NewVec3(0, 1, 0)

	for i := 0; i < 10; i++ {
		scattered := ray.Scatter(point, normal, 0, random)
		if scattered != ray.Bounce(point, normal) {
			t.Fatalf("Expected exact mirror bounce, got %v", scattered.Direction)
		}
	}
}

func TestRay_ScatterStaysNearMirror(t *testing.T) {
	random := rand.New(rand.NewSource(7))
	ray := NewRay(NewVec3(0, 1, -1), NewVec3(0, -1, 1))
	point := NewVec3(0, 0, 0)
	normal := NewVec3(0, 1, 0)
	mirror := ray.Bounce(point, normal).Direction

	roughness := 0.2
	// Offsets of at most roughness along two unit axes bound the angle to atan(roughness*sqrt2)
	maxAngle := math.Atan(roughness * math.Sqrt2)
	varied := false
	for i := 0; i < 100; i++ {
		d := ray.Scatter(point, normal, roughness, random).Direction
		if math.Abs(d.Length()-1) > 1e-9 {
			t.Fatalf("Scattered direction not normalized: %v", d)
		}
		angle := math.Acos(math.Min(1, d.Dot(mirror)))
		if angle > maxAngle+1e-9 {
			t.Fatalf("Scatter angle %f exceeds bound %f", angle, maxAngle)
		}
		if angle > 1e-6 {
			varied = true
		}
	}
	if !varied {
		t.Error("Expected rough scatter to perturb the mirror direction")
	}
}

func TestRay_ScatterHeadOn(t *testing.T) {
	random := rand.New(rand.NewSource(1))
	ray := NewRay(NewVec3(0, 1, 0), NewVec3(0, -1, 0))
	d := ray.Scatter(NewVec3(0, 0, 0), NewVec3(0, 1, 0), 0.5, random).Direction
	if math.IsNaN(d.X) || math.IsNaN(d.Y) || math.IsNaN(d.Z) {
		t.Fatalf("Head-on scatter produced NaN direction %v", d)
	}
}

func TestRay_Refract(t *testing.T) {
	ray := NewRay(NewVec3(0, 1, 0), NewVec3(0, -1, 0))
	refracted, ok := ray.Refract(NewVec3(0, 0, 0), NewVec3(0, 1, 0), 1/1.5)
	if !ok {
		t.Fatal("Expected head-on refraction to succeed")
	}
	if refracted.Direction.Subtract(NewVec3(0, -1, 0)).Length() > 1e-12 {
		t.Errorf("Head-on refraction should not bend, got %v", refracted.Direction)
	}

	grazing := NewRay(NewVec3(-1, 0.01, 0), NewVec3(1, -0.01, 0))
	if _, ok := grazing.Refract(NewVec3(0, 0, 0), NewVec3(0, 1, 0), 1.5); ok {
		t.Error("Expected total internal reflection at grazing angle from dense medium")
	}
}
