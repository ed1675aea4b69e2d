package core

import "image/color"

// Color is an unclamped linear RGB accumulator.
// Values may leave [0, 1] while light is summed; ToRGBA clamps.
type Color struct {
	R, G, B float64
}

// NewColor creates a new Color
func NewColor(r, g, b float64) Color {
	return Color{R: r, G: g, B: b}
}

// Black is the additive identity
var Black = Color{}

// Add returns the component-wise sum of two colors
func (c Color) Add(other Color) Color {
	return Color{c.R + other.R, c.G + other.G, c.B + other.B}
}

// Multiply returns the component-wise product of two colors
func (c Color) Multiply(other Color) Color {
	return Color{c.R * other.R, c.G * other.G, c.B * other.B}
}

// ApplyBrightness scales every channel by the given factor
func (c Color) ApplyBrightness(brightness float64) Color {
	return Color{c.R * brightness, c.G * brightness, c.B * brightness}
}

// ToRGBA converts to 8-bit channels, clamping to [0, 1] first. Alpha is always opaque.
func (c Color) ToRGBA() color.RGBA {
	return color.RGBA{
		R: channelToByte(c.R),
		G: channelToByte(c.G),
		B: channelToByte(c.B),
		A: 255,
	}
}

func channelToByte(v float64) uint8 {
	switch {
	case v <= 0:
		return 0
	case v >= 1:
		return 255
	default:
		return uint8(v * 255)
	}
}

// ColorFromVec3 reinterprets a vector as a color
func ColorFromVec3(v Vec3) Color {
	return Color{R: v.X, G: v.Y, B: v.Z}
}
