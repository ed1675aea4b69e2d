package core

import (
	"math/rand"
	"testing"
)

func TestRandomInCube(t *testing.T) {
	random := rand.New(rand.NewSource(42))
	for i := 0; i < 1000; i++ {
		p := RandomInCube(random, 0.5)
		if p.X < -0.5 || p.X >= 0.5 || p.Y < -0.5 || p.Y >= 0.5 || p.Z < -0.5 || p.Z >= 0.5 {
			t.Fatalf("Sample %v outside cube", p)
		}
	}
	if p := RandomInCube(random, 0); !p.IsZero() {
		t.Errorf("Zero-size cube should always sample the center, got %v", p)
	}
}

func TestCeilDiv(t *testing.T) {
	tests := []struct {
		n, d, expected int
	}{
		{16, 4, 4},
		{12, 5, 3},
		{3, 5, 1},
		{1, 4, 1},
		{0, 4, 0},
		{7, 1, 7},
		{7, 0, 7},
	}

	for _, tt := range tests {
		if got := CeilDiv(tt.n, tt.d); got != tt.expected {
			t.Errorf("CeilDiv(%d, %d) = %d, expected %d", tt.n, tt.d, got, tt.expected)
		}
	}
}
